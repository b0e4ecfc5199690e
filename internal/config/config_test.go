package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamus.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load of a missing file returned an error: %v", err)
	}
	if cfg.Storage.JournalMode != "WAL" {
		t.Errorf("expected default journal_mode WAL, got %q", cfg.Storage.JournalMode)
	}
	if !cfg.Scanner.IgnoreHidden {
		t.Error("expected default ignore_hidden true")
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamus.toml")

	cfg := Config{
		Scanner: ScannerConfig{
			Roots:        []string{"/music", "/archive"},
			AudioExts:    []string{"mp3", "flac"},
			IgnoreHidden: true,
			MaxDepth:     12,
		},
		Storage: StorageConfig{DBPath: "/data/gamus.db", JournalMode: "WAL"},
		Fs:      FsConfig{AudioExts: []string{"mp3"}, IgnoreHidden: false},
	}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to exist after Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("expected the .tmp file to be gone after a successful Save")
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Scanner.Roots) != 2 || got.Scanner.Roots[0] != "/music" {
		t.Errorf("roots did not round-trip, got %+v", got.Scanner.Roots)
	}
	if got.Scanner.MaxDepth != 12 {
		t.Errorf("max_depth did not round-trip, got %d", got.Scanner.MaxDepth)
	}
	if got.Storage.DBPath != "/data/gamus.db" {
		t.Errorf("db_path did not round-trip, got %q", got.Storage.DBPath)
	}
}

func TestSetSectionPreservesOtherSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamus.toml")

	initial := Config{
		Scanner: ScannerConfig{Roots: []string{"/music"}, AudioExts: []string{"mp3"}},
		Storage: StorageConfig{DBPath: "/data/gamus.db", JournalMode: "WAL"},
	}
	if err := Save(path, initial); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	newScanner := map[string]any{
		"roots":         []string{"/music", "/new-root"},
		"audio_exts":    []string{"mp3", "flac", "ogg"},
		"ignore_hidden": true,
	}
	if err := SetSection(path, "scanner", newScanner); err != nil {
		t.Fatalf("SetSection failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load after SetSection failed: %v", err)
	}
	if len(got.Scanner.Roots) != 2 || got.Scanner.Roots[1] != "/new-root" {
		t.Errorf("expected updated roots, got %+v", got.Scanner.Roots)
	}
	if got.Storage.DBPath != "/data/gamus.db" {
		t.Errorf("expected [storage] section untouched, got %+v", got.Storage)
	}
}

func TestSetSectionOnMissingFileCreatesIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gamus.toml")

	if err := SetSection(path, "scanner", map[string]any{"roots": []string{"/music"}}); err != nil {
		t.Fatalf("SetSection on a missing file failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Scanner.Roots) != 1 || got.Scanner.Roots[0] != "/music" {
		t.Errorf("expected roots from the new section, got %+v", got.Scanner.Roots)
	}
}
