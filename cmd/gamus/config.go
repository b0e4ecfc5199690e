package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/cismu/gamus/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or edit the gamus configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <section> <key> <value>",
	Short: "Set one key in a config section, preserving the rest of the document",
	Long: `set reads the existing config, replaces a single key within the
named top-level section (adding the section if absent), and writes
the document back atomically. Values are parsed as TOML scalars, so
quote strings that need it and use "[a, b]" for lists.`,
	Args: cobra.ExactArgs(3),
	RunE: runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.DefaultConfigPath()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}

	fmt.Print(string(out))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	section, key, rawValue := args[0], args[1], args[2]

	path, err := configPath()
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	existing, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	sectionValues, err := sectionAsMap(existing, section)
	if err != nil {
		return err
	}

	// Parse rawValue as a bare TOML value by wrapping it in a one-key
	// document; fall back to a plain string if it doesn't parse.
	var value any
	wrapped := fmt.Sprintf("v = %s", rawValue)
	var holder map[string]any
	if err := toml.Unmarshal([]byte(wrapped), &holder); err != nil {
		value = rawValue
	} else {
		value = holder["v"]
	}

	sectionValues[key] = value

	if err := config.SetSection(path, section, sectionValues); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("%s.%s = %v\n", section, key, value)
	return nil
}

// sectionAsMap returns the named section of cfg as a generic map so a
// single key can be overlaid onto it before the whole section is
// handed to config.SetSection.
func sectionAsMap(cfg config.Config, section string) (map[string]any, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("rendering config: %w", err)
	}

	var doc map[string]map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("re-reading config: %w", err)
	}

	if m, ok := doc[section]; ok {
		return m, nil
	}
	return make(map[string]any), nil
}
