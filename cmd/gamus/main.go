package main

import (
	"fmt"
	"os"

	"github.com/cismu/gamus/internal/config"
	"github.com/cismu/gamus/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time.
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "gamus",
		Short: "gamus - scans a music library into a SQLite catalog",
		Long: `gamus scans one or more directories of audio files, extracts tag and
spectral metadata, resolves artist/release identity, and persists the
result as a normalized SQLite catalog, reporting progress as it goes.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the platform config path)")
	rootCmd.PersistentFlags().String("db", "", "catalog database path (overrides [storage].db_path)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile == "" {
		if path, err := config.DefaultConfigPath(); err == nil {
			cfgFile = path
		}
	}

	viper.SetConfigFile(cfgFile)
	viper.SetConfigType("toml")

	viper.SetEnvPrefix("GAMUS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		util.InfoLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
