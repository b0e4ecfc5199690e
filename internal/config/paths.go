package config

import (
	"os"
	"path/filepath"
)

// baseDirEnv is the override spec.md §6 names: when set, every
// platform directory below is a subdirectory of it instead of the
// OS-specific default.
const baseDirEnv = "GAMUS_BASE_DIR"

// ConfigDir returns the directory the TOML config file lives in.
func ConfigDir() (string, error) {
	if base := os.Getenv(baseDirEnv); base != "" {
		return filepath.Join(base, "config"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gamus"), nil
}

// DataDir returns the directory the SQLite catalog lives in.
func DataDir() (string, error) {
	if base := os.Getenv(baseDirEnv); base != "" {
		return filepath.Join(base, "data"), nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".local", "share", "gamus"), nil
}

// CacheDir returns the directory transient/derived data lives in.
func CacheDir() (string, error) {
	if base := os.Getenv(baseDirEnv); base != "" {
		return filepath.Join(base, "cache"), nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gamus"), nil
}

// DefaultConfigPath returns the path to the config file itself.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gamus.toml"), nil
}

// DefaultDBPath returns the default `[storage].db_path`.
func DefaultDBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "gamus.db"), nil
}
