package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestScanFindsAudioFilesOnly(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "a.mp3"), 1024)
	writeFile(t, filepath.Join(root, "b.flac"), 2048)
	writeFile(t, filepath.Join(root, "notes.txt"), 16)
	writeFile(t, filepath.Join(root, "partial.tmp"), 16)

	s := New(Config{Roots: []string{root}, Concurrency: 2})

	groups, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	total := 0
	for _, g := range groups {
		total += len(g.Files)
	}
	if total != 2 {
		t.Fatalf("expected 2 audio files, got %d", total)
	}
}

func TestScanIgnoresHiddenDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".cache", "hidden.mp3"), 16)
	writeFile(t, filepath.Join(root, "visible.mp3"), 16)

	s := New(Config{Roots: []string{root}, IgnoreHidden: true, Concurrency: 2})

	groups, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	total := 0
	for _, g := range groups {
		total += len(g.Files)
	}
	if total != 1 {
		t.Fatalf("expected 1 visible audio file with hidden dirs ignored, got %d", total)
	}
}

func TestScanEmptyRootWithOnlyHiddenFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".hidden", "song.mp3"), 16)
	writeFile(t, filepath.Join(root, ".song.mp3"), 16)

	s := New(Config{Roots: []string{root}, IgnoreHidden: true, Concurrency: 2})

	groups, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected no groups when only hidden files exist, got %d", len(groups))
	}
}

func TestScanGroupsByDeviceAndAssignsBandwidth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.mp3"), 4096)

	s := New(Config{Roots: []string{root}, Concurrency: 1})

	groups, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected a single device group on one temp dir, got %d", len(groups))
	}
	if len(groups[0].Files) != 1 {
		t.Fatalf("expected one file in the group, got %d", len(groups[0].Files))
	}
}
