package ports

import (
	"context"

	"github.com/cismu/gamus/internal/domain"
)

// ExtractedMetadata is what a Probe produces for one file. Song is
// always present (in the worst case, derived from the filename).
// Release and Track are optional: a file may have no clear album.
//
// Artist fields carry raw tag strings rather than ArtistIDs: the
// extractor reads tags, it doesn't own artist identity. The import
// orchestrator resolves each name to an ArtistID (find-or-create
// against the repository) before saving Song/Release.
type ExtractedMetadata struct {
	Song    domain.Song
	Release *domain.Release
	Track   *domain.ReleaseTrack

	PerformerNames  []string
	FeaturedNames   []string
	ComposerNames   []string
	ProducerNames   []string
	MainArtistNames []string

	// Genre/Style text as read from tags, already parsed; nil slices
	// mean the tag was absent, not that parsing failed.
	Genres []domain.Genre
	Styles []domain.Style
}

// MetadataExtractor abstracts reading metadata from an audio file.
// Implementations may combine a tag reader with a native decoder
// (ffprobe/ffmpeg) and a spectral analyzer.
type MetadataExtractor interface {
	ExtractFromPath(ctx context.Context, path string) (ExtractedMetadata, error)
}
