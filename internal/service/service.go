// Package service implements the Library Service: the orchestrator
// that drives scanning, metadata/spectral extraction, and persistence
// end-to-end with bounded per-device concurrency and progress
// reporting.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/cismu/gamus/internal/device"
	"github.com/cismu/gamus/internal/domain"
	"github.com/cismu/gamus/internal/ports"
	"github.com/cismu/gamus/internal/util"
)

// Service orchestrates ingestion, wiring the four ports together:
// FileScanner, MetadataExtractor, LibraryRepository, ProgressReporter.
type Service struct {
	scanner   ports.FileScanner
	extractor ports.MetadataExtractor
	repo      ports.LibraryRepository
	reporter  ports.ProgressReporter

	// artistCacheMu guards artistCache, a process-local map from
	// resolved artist name to id, so concurrent workers in the same
	// group don't race to create the same artist twice.
	artistCacheMu sync.Mutex
	artistCache   map[string]domain.ArtistID
}

// New builds a Service from its four collaborators.
func New(scanner ports.FileScanner, extractor ports.MetadataExtractor, repo ports.LibraryRepository, reporter ports.ProgressReporter) *Service {
	return &Service{
		scanner:     scanner,
		extractor:   extractor,
		repo:        repo,
		reporter:    reporter,
		artistCache: make(map[string]domain.ArtistID),
	}
}

// Import runs the full ingestion algorithm of spec.md §4.4: scan,
// then for each device group in sequence, fan out probe+persist with
// a bandwidth-derived concurrency ceiling, streaming progress events
// throughout. It returns an error only when the scan itself fails;
// per-file failures are surfaced exclusively through the reporter.
func (s *Service) Import(ctx context.Context) error {
	groups, err := s.scanner.ScanLibraryFiles()
	if err != nil {
		return fmt.Errorf("scanning library: %w", err)
	}

	total := 0
	for _, g := range groups {
		total += len(g.Files)
	}
	s.reporter.Start(total)

	for _, group := range groups {
		s.importGroup(ctx, group)
	}

	s.reporter.Finish()
	return nil
}

// importGroup processes one device group with up to k concurrent
// file pipelines, k derived from the group's measured bandwidth.
// Groups themselves are always processed strictly sequentially by
// the caller, to avoid saturating cross-device I/O.
func (s *Service) importGroup(ctx context.Context, group ports.ScanGroup) {
	k := device.ConcurrencyFor(group.Device.BandwidthMBs)

	p := pool.New().WithMaxGoroutines(k)
	for _, file := range group.Files {
		file := file
		p.Go(func() {
			s.importFile(ctx, file.Path)
		})
	}
	p.Wait()
}

// importFile runs the probe-then-persist pipeline for one file and
// reports exactly one of on_success/on_error. It never returns an
// error directly: all failure information flows through the reporter.
func (s *Service) importFile(ctx context.Context, path string) {
	select {
	case <-ctx.Done():
		s.reporter.OnError(path, ctx.Err().Error())
		return
	default:
	}

	extracted, err := s.extractor.ExtractFromPath(ctx, path)
	if err != nil {
		util.WarnLog("service: extracting %s: %v", path, err)
		s.reporter.OnError(path, err.Error())
		return
	}

	if err := s.resolveCredits(&extracted); err != nil {
		util.WarnLog("service: resolving artist credits for %s: %v", path, err)
		s.reporter.OnError(path, err.Error())
		return
	}

	if err := s.persist(extracted); err != nil {
		util.WarnLog("service: persisting %s: %v", path, err)
		s.reporter.OnError(path, err.Error())
		return
	}

	s.reporter.OnSuccess(path)
}

// resolveCredits resolves every raw artist-name string on extracted
// to an ArtistID via find-or-create, and wires the result into
// Song/Release/Track. The extractor has no database access, so this
// orchestrator-level step is the only place identity resolution
// happens.
func (s *Service) resolveCredits(extracted *ports.ExtractedMetadata) error {
	performerIDs, err := s.resolveArtistNames(extracted.PerformerNames)
	if err != nil {
		return err
	}
	featuredIDs, err := s.resolveArtistNames(extracted.FeaturedNames)
	if err != nil {
		return err
	}
	composerIDs, err := s.resolveArtistNames(extracted.ComposerNames)
	if err != nil {
		return err
	}
	producerIDs, err := s.resolveArtistNames(extracted.ProducerNames)
	if err != nil {
		return err
	}
	mainArtistIDs, err := s.resolveArtistNames(extracted.MainArtistNames)
	if err != nil {
		return err
	}

	extracted.Song.PerformerIDs = performerIDs
	extracted.Song.FeaturedIDs = featuredIDs
	extracted.Song.ComposerIDs = composerIDs
	extracted.Song.ProducerIDs = producerIDs

	if extracted.Release != nil {
		extracted.Release.MainArtistIDs = mainArtistIDs
	}

	return nil
}

// resolveArtistNames maps each name to an ArtistID, creating a new
// Artist row the first time a name is seen (by this process or by a
// prior ingestion run). The in-memory cache avoids a repository round
// trip — and a duplicate-create race between concurrent workers in
// the same group — for names repeated across many files.
func (s *Service) resolveArtistNames(names []string) ([]domain.ArtistID, error) {
	if len(names) == 0 {
		return nil, nil
	}

	ids := make([]domain.ArtistID, 0, len(names))
	for _, name := range names {
		id, err := s.resolveArtistName(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Service) resolveArtistName(name string) (domain.ArtistID, error) {
	s.artistCacheMu.Lock()
	defer s.artistCacheMu.Unlock()

	if id, ok := s.artistCache[name]; ok {
		return id, nil
	}

	existing, err := s.repo.FindArtistByName(name)
	if err != nil {
		return domain.ArtistID{}, fmt.Errorf("looking up artist %q: %w", name, err)
	}

	var id domain.ArtistID
	if existing != nil {
		id = existing.ID
	} else {
		id = domain.NewArtistID()
		if err := s.repo.SaveArtist(&domain.Artist{ID: id, Name: name}); err != nil {
			return domain.ArtistID{}, fmt.Errorf("creating artist %q: %w", name, err)
		}
	}

	s.artistCache[name] = id

	return id, nil
}

// persist writes song, then release, then track, in that order so a
// track's foreign keys always resolve.
func (s *Service) persist(extracted ports.ExtractedMetadata) error {
	if err := s.repo.SaveSong(&extracted.Song); err != nil {
		return fmt.Errorf("saving song: %w", err)
	}

	if extracted.Release != nil {
		if err := s.repo.SaveRelease(extracted.Release); err != nil {
			return fmt.Errorf("saving release: %w", err)
		}
	}

	if extracted.Track != nil {
		extracted.Track.SongID = extracted.Song.ID
		if extracted.Release != nil {
			extracted.Track.ReleaseID = extracted.Release.ID
		}
		if err := s.repo.SaveReleaseTrack(extracted.Track); err != nil {
			return fmt.Errorf("saving release track: %w", err)
		}
	}

	return nil
}
