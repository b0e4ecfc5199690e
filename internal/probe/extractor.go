// Package probe extracts metadata from an audio file on disk,
// combining an embedded-tag reader with ffprobe's container/stream
// inspection. It implements ports.MetadataExtractor.
package probe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dhowden/tag"

	"github.com/cismu/gamus/internal/domain"
	"github.com/cismu/gamus/internal/ports"
	"github.com/cismu/gamus/internal/spectral"
	"github.com/cismu/gamus/internal/util"
)

// losslessCodecs lists ffprobe codec_name values that are lossless,
// including the pcm_* family matched by prefix below.
var losslessCodecs = map[string]bool{
	"flac":    true,
	"alac":    true,
	"ape":     true,
	"wavpack": true,
	"wv":      true,
	"tta":     true,
}

func isLosslessCodec(codec string) bool {
	codec = strings.ToLower(codec)
	if strings.HasPrefix(codec, "pcm_") {
		return true
	}
	return losslessCodecs[codec]
}

// Extractor reads metadata via dhowden/tag and ffprobe, merging the
// two: tag-library fields win for text tags, ffprobe wins for audio
// properties it alone reports (sample rate, channels, bitrate,
// duration). If
// analyzer is non-nil, every file is additionally run through the
// Spectral Analyzer per spec.md §4.2: "invoked when the probe was
// constructed with an analysis configuration (otherwise omitted)".
type Extractor struct {
	analyzer *spectral.Analyzer
}

// New builds an Extractor with no spectral analysis configured.
func New() *Extractor { return &Extractor{} }

// NewWithAnalyzer builds an Extractor that also runs every file
// through analyzer after the tag/ffprobe pass.
func NewWithAnalyzer(analyzer *spectral.Analyzer) *Extractor {
	return &Extractor{analyzer: analyzer}
}

// ExtractFromPath implements ports.MetadataExtractor.
func (e *Extractor) ExtractFromPath(ctx context.Context, path string) (ports.ExtractedMetadata, error) {
	tags, tagErr := readEmbeddedTags(path)

	info, probeErr := RunFFprobe(ctx, path)
	if tagErr != nil && probeErr != nil {
		return ports.ExtractedMetadata{}, fmt.Errorf("extracting %s: tag: %v, ffprobe: %v: %w", path, tagErr, probeErr, domain.ErrUnsupported)
	}

	merged := make(map[string]string)
	if info != nil && info.Format != nil {
		for k, v := range info.Format.Tags {
			merged[strings.ToLower(k)] = v
		}
	}
	for k, v := range tags {
		merged[strings.ToLower(k)] = v
	}

	title, _ := FindTagValue(merged, KeysTitle)
	if title == "" {
		title = titleFromFilename(path)
	}
	if title == "" {
		title = "Unknown Title"
	}

	song := domain.Song{
		ID:    domain.NewSongID(),
		Title: title,
	}

	result := ports.ExtractedMetadata{Song: song}

	if performer, ok := FindTagValue(merged, KeysArtistTrack); ok {
		result.PerformerNames = []string{performer}
	}
	if albumArtist, ok := FindTagValue(merged, KeysArtistAlbum); ok {
		result.MainArtistNames = []string{albumArtist}
	} else if len(result.PerformerNames) > 0 {
		result.MainArtistNames = result.PerformerNames
	}

	if genreTag, ok := FindTagValue(merged, KeysGenre); ok {
		result.Genres, result.Styles = classifyGenreTag(genreTag)
	}

	album, hasAlbum := FindTagValue(merged, KeysAlbum)
	switch {
	case hasAlbum:
		result.Release = buildRelease(album, result.MainArtistNames, merged)
	case albumFromParentDir(path) != "":
		result.Release = buildRelease(albumFromParentDir(path), result.MainArtistNames, merged)
	default:
		result.Release = buildRelease("Unknown Album", result.MainArtistNames, merged)
	}

	track := buildTrack(path, merged, info)
	result.Track = track

	if e.analyzer != nil {
		e.attachAnalysis(ctx, path, track)
	}

	return result, nil
}

// attachAnalysis runs the spectral analyzer and attaches its result
// to track. Per spec.md §4.2, "a spectral failure never fails the
// probe: it logs and returns no analysis" — so analyzer errors are
// logged and swallowed here rather than propagated.
func (e *Extractor) attachAnalysis(ctx context.Context, path string, track *domain.ReleaseTrack) {
	var bitrateBps int64
	if track.AudioDetails.BitrateKbps != nil {
		bitrateBps = int64(*track.AudioDetails.BitrateKbps) * 1000
	}

	quality, err := e.analyzer.AnalyzeFile(ctx, path, bitrateBps)
	if err != nil {
		util.WarnLog("probe: spectral analysis of %s: %v", path, err)
		return
	}

	track.AudioDetails.Analysis = &domain.AudioAnalysis{Quality: &quality}
}

func readEmbeddedTags(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("reading tags from %s: %w", path, err)
	}

	out := make(map[string]string)
	if v := m.Title(); v != "" {
		out["title"] = v
	}
	if v := m.Artist(); v != "" {
		out["artist"] = v
	}
	if v := m.Album(); v != "" {
		out["album"] = v
	}
	if v := m.AlbumArtist(); v != "" {
		out["album_artist"] = v
	}
	if v := m.Genre(); v != "" {
		out["genre"] = v
	}
	if m.Year() > 0 {
		out["date"] = strconv.Itoa(m.Year())
	}
	if track, total := m.Track(); track > 0 {
		if total > 0 {
			out["track"] = fmt.Sprintf("%d/%d", track, total)
		} else {
			out["track"] = strconv.Itoa(track)
		}
	}
	if disc, total := m.Disc(); disc > 0 {
		if total > 0 {
			out["disc"] = fmt.Sprintf("%d/%d", disc, total)
		} else {
			out["disc"] = strconv.Itoa(disc)
		}
	}
	return out, nil
}

func titleFromFilename(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func albumFromParentDir(path string) string {
	parent := filepath.Dir(path)
	name := filepath.Base(parent)
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// classifyGenreTag resolves a raw genre tag to the closed Genre
// taxonomy when possible, falling back to a Style so the information
// isn't dropped entirely when it doesn't match a top-level genre.
func classifyGenreTag(raw string) ([]domain.Genre, []domain.Style) {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == '\\' })
	var genres []domain.Genre
	var styles []domain.Style
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if g, err := domain.ParseGenre(p); err == nil {
			genres = append(genres, g)
			continue
		}
		styles = append(styles, domain.ParseStyle(p))
	}
	return genres, styles
}

// buildRelease constructs the Release; mainArtists is resolved to IDs
// by the import orchestrator, not here (see ExtractedMetadata).
func buildRelease(title string, mainArtists []string, tags map[string]string) *domain.Release {
	release := &domain.Release{
		ID:          domain.NewReleaseID(),
		Title:       title,
		ReleaseType: []domain.ReleaseType{domain.ParseReleaseType("Album")},
	}
	if date, ok := FindTagValue(tags, KeysDate); ok {
		release.ReleaseDate = &date
	}
	if genreTag, ok := FindTagValue(tags, KeysGenre); ok {
		release.Genres, release.Styles = classifyGenreTag(genreTag)
	}
	return release
}

func buildTrack(path string, tags map[string]string, info *FFprobeInfo) *domain.ReleaseTrack {
	track := &domain.ReleaseTrack{
		ID:          domain.NewReleaseTrackID(),
		TrackNumber: 1,
		DiscNumber:  1,
	}

	if n, ok := FindTagNumber(tags, KeysTrackNumber); ok {
		track.TrackNumber = n
	}
	if n, ok := FindTagNumber(tags, KeysDiscNumber); ok {
		track.DiscNumber = n
	}

	fi, err := os.Stat(path)
	if err == nil {
		track.FileDetails = domain.FileDetails{
			Path:         path,
			SizeBytes:    uint64(fi.Size()),
			ModifiedUnix: uint64(fi.ModTime().Unix()),
		}
	} else {
		track.FileDetails = domain.FileDetails{Path: path}
	}

	if info == nil {
		return track
	}

	stream, ok := info.BestAudioStream()
	if !ok {
		return track
	}

	details := domain.AudioDetails{}

	if stream.SampleRate > 0 {
		rate := uint32(stream.SampleRate)
		details.SampleRateHz = &rate
	}
	if stream.Channels > 0 {
		ch := uint8(stream.Channels)
		details.Channels = &ch
	}
	if stream.BitRate != "" {
		if n, err := strconv.ParseUint(stream.BitRate, 10, 32); err == nil {
			kbps := uint32(n / 1000)
			details.BitrateKbps = &kbps
		}
	} else if info.Format != nil && info.Format.BitRate != "" {
		if n, err := strconv.ParseUint(info.Format.BitRate, 10, 32); err == nil {
			kbps := uint32(n / 1000)
			details.BitrateKbps = &kbps
		}
	}

	durationStr := stream.Duration
	if durationStr == "" && info.Format != nil {
		durationStr = info.Format.Duration
	}
	if durationStr != "" {
		if secs, err := strconv.ParseFloat(durationStr, 64); err == nil {
			details.Duration = secondsToDuration(secs)
		}
	}

	track.AudioDetails = details
	return track
}

func secondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
