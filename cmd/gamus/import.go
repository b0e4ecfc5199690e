package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cismu/gamus/internal/config"
	"github.com/cismu/gamus/internal/device"
	"github.com/cismu/gamus/internal/probe"
	"github.com/cismu/gamus/internal/report"
	"github.com/cismu/gamus/internal/scan"
	"github.com/cismu/gamus/internal/service"
	"github.com/cismu/gamus/internal/spectral"
	"github.com/cismu/gamus/internal/store"
	"github.com/cismu/gamus/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Scan configured roots and import them into the catalog",
	Long: `import runs the full ingestion pipeline: walk [scanner].roots,
probe each audio file for tags and stream properties, resolve artist
identity, and persist the result to the SQLite catalog, one
library:import:* progress event per step.`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringSlice("roots", nil, "root directories to scan (overrides [scanner].roots)")
	viper.BindPFlag("scanner.roots", importCmd.Flags().Lookup("roots"))
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	cfgPath := cfgFile
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if roots := viper.GetStringSlice("scanner.roots"); len(roots) > 0 {
		cfg.Scanner.Roots = roots
	}
	if len(cfg.Scanner.Roots) == 0 {
		return fmt.Errorf("no roots configured: set [scanner].roots in the config file or pass --roots")
	}

	dbPath := viper.GetString("db")
	if dbPath == "" {
		dbPath = cfg.Storage.DBPath
	}

	util.InfoLog("Opening catalog: %s", dbPath)
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer db.Close()

	cacheDir, err := config.CacheDir()
	if err != nil {
		return fmt.Errorf("resolving cache directory: %w", err)
	}
	reporter, err := report.NewJSONLReporter(cacheDir)
	if err != nil {
		util.WarnLog("failed to open progress log: %v", err)
	} else {
		defer reporter.Close()
		util.InfoLog("Progress log: %s", reporter.Path())
	}

	scanner := scan.New(scan.Config{
		Roots:        cfg.Scanner.Roots,
		AdditionalExts: cfg.Scanner.AudioExts,
		IgnoreHidden: cfg.Scanner.IgnoreHidden,
		MaxDepth:     cfg.Scanner.MaxDepth,
		Cache:        device.NewBandwidthCache(),
	})

	extractor := probe.NewWithAnalyzer(spectral.NewDefault())

	svc := service.New(scanner, extractor, db, reporter)

	start := time.Now()
	util.InfoLog("Starting import of %v", cfg.Scanner.Roots)

	if err := svc.Import(ctx); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	util.SuccessLog("Import finished in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
