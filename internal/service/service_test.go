package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/cismu/gamus/internal/domain"
	"github.com/cismu/gamus/internal/ports"
)

type fakeScanner struct {
	groups []ports.ScanGroup
	err    error
}

func (f *fakeScanner) ScanLibraryFiles() ([]ports.ScanGroup, error) {
	return f.groups, f.err
}

type fakeExtractor struct {
	failOn map[string]bool
}

func (f *fakeExtractor) ExtractFromPath(_ context.Context, path string) (ports.ExtractedMetadata, error) {
	if f.failOn[path] {
		return ports.ExtractedMetadata{}, fmt.Errorf("simulated extraction failure for %s", path)
	}
	return ports.ExtractedMetadata{
		Song:            domain.Song{ID: domain.NewSongID(), Title: path},
		MainArtistNames: []string{"Shared Artist"},
	}, nil
}

type fakeRepo struct {
	mu      sync.Mutex
	artists map[string]*domain.Artist
	songs   map[domain.SongID]*domain.Song
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		artists: make(map[string]*domain.Artist),
		songs:   make(map[domain.SongID]*domain.Song),
	}
}

func (r *fakeRepo) SaveArtist(a *domain.Artist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artists[a.Name] = a
	return nil
}

func (r *fakeRepo) SaveSong(s *domain.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.songs[s.ID] = s
	return nil
}

func (r *fakeRepo) SaveRelease(*domain.Release) error           { return nil }
func (r *fakeRepo) SaveReleaseTrack(*domain.ReleaseTrack) error  { return nil }
func (r *fakeRepo) FindRelease(domain.ReleaseID) (*domain.Release, error) { return nil, nil }

func (r *fakeRepo) FindArtist(id domain.ArtistID) (*domain.Artist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.artists {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) FindArtistByName(name string) (*domain.Artist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.artists[name]; ok {
		return a, nil
	}
	return nil, nil
}

func (r *fakeRepo) FindSong(id domain.SongID) (*domain.Song, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.songs[id], nil
}

func (r *fakeRepo) ListArtists() ([]domain.Artist, error) { return nil, nil }
func (r *fakeRepo) ListSongs() ([]domain.Song, error)      { return nil, nil }
func (r *fakeRepo) ListReleases() ([]domain.Release, error) { return nil, nil }

type fakeReporter struct {
	mu           sync.Mutex
	started      bool
	finished     bool
	startTotal   int
	successCount int
	errorCount   int
	successAfterFinish bool
	errorAfterFinish   bool
}

func (r *fakeReporter) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = true
	r.startTotal = total
}

func (r *fakeReporter) OnSuccess(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successCount++
	if r.finished {
		r.successAfterFinish = true
	}
}

func (r *fakeReporter) OnError(path string, errMsg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorCount++
	if r.finished {
		r.errorAfterFinish = true
	}
}

func (r *fakeReporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = true
}

func scanGroupOf(deviceID string, paths ...string) ports.ScanGroup {
	files := make([]ports.ScannedFile, len(paths))
	for i, p := range paths {
		files[i] = ports.ScannedFile{Path: p}
	}
	return ports.ScanGroup{Device: ports.ScanDevice{ID: deviceID}, Files: files}
}

func TestImportReportsSuccessAndErrorExactlyOncePerFile(t *testing.T) {
	paths := []string{"a.mp3", "b.mp3", "c.mp3", "d.mp3"}
	scanner := &fakeScanner{groups: []ports.ScanGroup{
		scanGroupOf("dev1", paths[:2]...),
		scanGroupOf("dev2", paths[2:]...),
	}}
	extractor := &fakeExtractor{failOn: map[string]bool{"b.mp3": true, "d.mp3": true}}
	repo := newFakeRepo()
	reporter := &fakeReporter{}

	svc := New(scanner, extractor, repo, reporter)
	if err := svc.Import(context.Background()); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if !reporter.started {
		t.Error("expected Start to have been called")
	}
	if reporter.startTotal != len(paths) {
		t.Errorf("expected start total %d, got %d", len(paths), reporter.startTotal)
	}
	if !reporter.finished {
		t.Error("expected Finish to have been called")
	}
	if got := reporter.successCount + reporter.errorCount; got != len(paths) {
		t.Errorf("expected success+error to equal %d, got %d", len(paths), got)
	}
	if reporter.successCount != 2 || reporter.errorCount != 2 {
		t.Errorf("expected 2 successes and 2 errors, got %d/%d", reporter.successCount, reporter.errorCount)
	}
	if reporter.successAfterFinish || reporter.errorAfterFinish {
		t.Error("expected no progress events to fire after Finish")
	}
}

func TestImportReturnsErrorWhenScanFails(t *testing.T) {
	scanner := &fakeScanner{err: fmt.Errorf("boom")}
	svc := New(scanner, &fakeExtractor{}, newFakeRepo(), &fakeReporter{})

	if err := svc.Import(context.Background()); err == nil {
		t.Fatal("expected Import to return an error when the scan fails")
	}
}

func TestImportResolvesSharedArtistNameToOneID(t *testing.T) {
	paths := make([]string, 20)
	for i := range paths {
		paths[i] = fmt.Sprintf("track-%d.mp3", i)
	}
	scanner := &fakeScanner{groups: []ports.ScanGroup{scanGroupOf("dev1", paths...)}}
	repo := newFakeRepo()
	svc := New(scanner, &fakeExtractor{}, repo, &fakeReporter{})

	if err := svc.Import(context.Background()); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if len(repo.artists) != 1 {
		t.Errorf("expected exactly one artist row for a name shared by all files, got %d", len(repo.artists))
	}
}

func TestImportWithNoFilesStillStartsAndFinishes(t *testing.T) {
	scanner := &fakeScanner{groups: nil}
	reporter := &fakeReporter{}
	svc := New(scanner, &fakeExtractor{}, newFakeRepo(), reporter)

	if err := svc.Import(context.Background()); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if !reporter.started || reporter.startTotal != 0 {
		t.Errorf("expected Start(0), got started=%v total=%d", reporter.started, reporter.startTotal)
	}
	if !reporter.finished {
		t.Error("expected Finish to fire even with zero files")
	}
}
