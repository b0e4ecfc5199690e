// Package scan implements the Scanner: it walks the configured root
// directories, classifies audio files, stats them, and groups the
// result by physical storage device so the orchestrator can budget
// concurrency per device.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cismu/gamus/internal/device"
	"github.com/cismu/gamus/internal/ports"
	"github.com/cismu/gamus/internal/util"
	"github.com/schollz/progressbar/v3"
)

// AudioExtensions are the default supported audio file extensions.
var AudioExtensions = []string{
	".mp3",
	".flac",
	".m4a",
	".aac",
	".ogg",
	".opus",
	".wav",
	".aiff",
	".aif",
	".wma",
	".ape",
	".wv",  // WavPack
	".mpc", // Musepack
}

// MaxDepth is the default recursion limit applied to each root.
const MaxDepth = 50

// Config configures a Scanner.
type Config struct {
	Roots          []string
	AdditionalExts []string
	IgnoreHidden   bool
	MaxDepth       int
	Concurrency    int
	Cache          *device.BandwidthCache
}

// Scanner discovers audio files under a set of roots and groups them
// by device, with a cached per-device throughput benchmark.
type Scanner struct {
	roots        []string
	extensions   map[string]bool
	ignoreHidden bool
	maxDepth     int
	statWorkers  int
	cache        *device.BandwidthCache
}

// New builds a Scanner from cfg, applying defaults matching spec.md §4.1.
func New(cfg Config) *Scanner {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = MaxDepth
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.Cache == nil {
		cfg.Cache = device.NewBandwidthCache()
	}

	extMap := make(map[string]bool)
	for _, ext := range AudioExtensions {
		extMap[strings.ToLower(ext)] = true
	}
	for _, ext := range cfg.AdditionalExts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[ext] = true
	}

	return &Scanner{
		roots:        cfg.Roots,
		extensions:   extMap,
		ignoreHidden: cfg.IgnoreHidden,
		maxDepth:     cfg.MaxDepth,
		statWorkers:  cfg.Concurrency,
		cache:        cfg.Cache,
	}
}

// ScanLibraryFiles implements ports.FileScanner.
func (s *Scanner) ScanLibraryFiles() ([]ports.ScanGroup, error) {
	return s.Scan(context.Background())
}

// Scan walks every configured root and returns the device-grouped
// result. Per-file stat errors are logged and the file is dropped;
// they never abort the scan. An unreadable root itself is fatal.
func (s *Scanner) Scan(ctx context.Context) ([]ports.ScanGroup, error) {
	paths := make(chan string, 256)
	found := make(chan ports.ScannedFile, 256)

	var wg sync.WaitGroup
	for i := 0; i < s.statWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				select {
				case <-ctx.Done():
					return
				default:
				}

				info, err := os.Stat(path)
				if err != nil {
					util.WarnLog("scan: stat failed for %s: %v", path, err)
					continue
				}

				found <- ports.ScannedFile{
					Path:         path,
					SizeBytes:    uint64(info.Size()),
					ModifiedUnix: uint64(info.ModTime().Unix()),
				}
			}
		}()
	}

	collected := make([]ports.ScannedFile, 0, 1024)
	var collectorWg sync.WaitGroup
	collectorWg.Add(1)
	go func() {
		defer collectorWg.Done()
		for f := range found {
			collected = append(collected, f)
		}
	}()

	bar := newScanProgressBar()

	var walkErr error
	for _, root := range s.roots {
		if err := s.walkRoot(ctx, root, s.maxDepth, paths, bar); err != nil {
			walkErr = err
			break
		}
	}

	close(paths)
	wg.Wait()
	close(found)
	collectorWg.Wait()

	if bar != nil {
		bar.Finish()
	}

	if walkErr != nil {
		return nil, fmt.Errorf("scan: root unreadable: %w", walkErr)
	}

	return s.groupByDevice(collected), nil
}

func newScanProgressBar() *progressbar.ProgressBar {
	if !util.IsTerminal(os.Stdout.Fd()) || util.IsQuiet() {
		return nil
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Scanning"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(200*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// walkRoot drives filepath.WalkDir with the filtering rules of
// spec.md §4.1 step 2: IgnoreDir for hidden names when configured,
// Ignore for .tmp files, Continue otherwise.
func (s *Scanner) walkRoot(ctx context.Context, root string, maxDepth int, out chan<- string, bar *progressbar.ProgressBar) error {
	rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == root {
				return err
			}
			util.WarnLog("scan: error accessing %s: %v", path, err)
			return nil
		}

		name := d.Name()

		if d.IsDir() {
			if path != root {
				depth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth
				if depth > maxDepth {
					return filepath.SkipDir
				}
				if s.ignoreHidden && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if s.ignoreHidden && strings.HasPrefix(name, ".") {
			return nil
		}

		if strings.EqualFold(filepath.Ext(path), ".tmp") {
			return nil
		}

		if !s.isAudioFile(path) {
			return nil
		}

		select {
		case out <- path:
		case <-ctx.Done():
			return ctx.Err()
		}

		if bar != nil {
			bar.Add(1)
		}

		return nil
	})
}

func (s *Scanner) isAudioFile(path string) bool {
	return s.extensions[strings.ToLower(filepath.Ext(path))]
}

// groupByDevice partitions files by their physical device identifier
// and resolves each device's bandwidth, probing at most once per
// device per process lifetime.
func (s *Scanner) groupByDevice(files []ports.ScannedFile) []ports.ScanGroup {
	byDevice := make(map[string][]ports.ScannedFile)
	order := make([]string, 0)

	for _, f := range files {
		id, err := device.IdentifyFile(f.Path)
		if err != nil {
			util.WarnLog("scan: device id failed for %s: %v", f.Path, err)
			id = device.UnknownDevice
		}
		if _, seen := byDevice[id]; !seen {
			order = append(order, id)
		}
		byDevice[id] = append(byDevice[id], f)
	}

	groups := make([]ports.ScanGroup, 0, len(order))
	for _, id := range order {
		groups = append(groups, ports.ScanGroup{
			Device: ports.ScanDevice{ID: id, BandwidthMBs: s.bandwidthFor(id, byDevice[id])},
			Files:  byDevice[id],
		})
	}
	return groups
}

// bandwidthFor returns the cached bandwidth for id, or runs the
// one-time throughput probe against the bucket's first file.
func (s *Scanner) bandwidthFor(id string, files []ports.ScannedFile) *float64 {
	if id == device.UnknownDevice {
		return nil
	}

	if cached, ok := s.cache.Lookup(id); ok {
		v := cached
		return &v
	}

	if len(files) == 0 {
		return nil
	}

	mbps, err := device.MeasureThroughput(files[0].Path)
	if err != nil {
		util.WarnLog("scan: throughput probe failed for device %s: %v", id, err)
		return nil
	}

	s.cache.Store(id, mbps)
	if mbps == 0.0 {
		return nil
	}
	return &mbps
}
