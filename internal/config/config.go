// Package config loads and persists gamus's TOML configuration: the
// [scanner], [storage], and [fs] sections of spec.md §6, with an
// atomic, section-preserving save path.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/cismu/gamus/internal/domain"
	"github.com/cismu/gamus/internal/util"
)

// ScannerConfig is the `[scanner]` section: what the Scanner walks.
type ScannerConfig struct {
	Roots        []string `toml:"roots"`
	AudioExts    []string `toml:"audio_exts"`
	IgnoreHidden bool     `toml:"ignore_hidden"`
	MaxDepth     int      `toml:"max_depth,omitempty"`
}

// StorageConfig is the `[storage]` section: where the catalog lives.
type StorageConfig struct {
	DBPath      string `toml:"db_path"`
	JournalMode string `toml:"journal_mode"`
}

// FsConfig is the `[fs]` section, used by the legacy walker fallback
// the same way spec.md §6 describes it.
type FsConfig struct {
	AudioExts    []string `toml:"audio_exts"`
	IgnoreHidden bool     `toml:"ignore_hidden"`
	MaxDepth     int      `toml:"max_depth,omitempty"`
}

// Config is the whole TOML document.
type Config struct {
	Scanner ScannerConfig `toml:"scanner"`
	Storage StorageConfig `toml:"storage"`
	Fs      FsConfig      `toml:"fs"`
}

// Default returns the configuration used when no file exists yet.
func Default() (Config, error) {
	dbPath, err := DefaultDBPath()
	if err != nil {
		return Config{}, fmt.Errorf("resolving default db path: %w", err)
	}

	exts := []string{"mp3", "flac", "ogg"}
	return Config{
		Scanner: ScannerConfig{
			AudioExts:    exts,
			IgnoreHidden: true,
		},
		Storage: StorageConfig{
			DBPath:      dbPath,
			JournalMode: "WAL",
		},
		Fs: FsConfig{
			AudioExts:    exts,
			IgnoreHidden: true,
		},
	}, nil
}

// Load reads and parses the TOML document at path. A missing file is
// not an error: it yields Default() so first-run behaves sanely.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default()
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, domain.ErrInvalidConfig)
	}
	return cfg, nil
}

// Save serializes cfg as TOML and writes it atomically: write to
// "<path>.tmp", fsync, rename over path. Grounded on the Rust
// TomlConfigBackend's save_section sequence (write-tmp, sync,
// rename) and on util.RetryableRename for the final step.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return atomicWrite(path, data)
}

// SetSection replaces one top-level TOML table, preserving the data of
// every other section. go-toml/v2 has no AST-editing API (unlike e.g.
// toml-edit in other ecosystems), so the whole document is parsed into
// a generic map, the named section is spliced in, and the result is
// re-serialized. Every section is rewritten this way: other sections
// keep their keys and values, but comments and formatting anywhere in
// the document are not preserved.
func SetSection(path string, section string, values map[string]any) error {
	doc := make(map[string]any)

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// no document yet; doc stays empty and the section becomes
		// the whole file.
	case err != nil:
		return fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("%s: %w", path, domain.ErrInvalidConfig)
		}
	}

	doc[section] = values

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return atomicWrite(path, data)
}

func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp config file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp config file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing temp config file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp config file: %w", err)
	}

	if err := util.RetryableRename(tmpPath, path, nil); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming config into place: %w", err)
	}
	return nil
}
