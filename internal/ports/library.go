package ports

import "github.com/cismu/gamus/internal/domain"

// LibraryRepository is the write/read seam onto the catalog. Writes
// are upserts keyed by id; reads return (nil, nil) when absent rather
// than an error, matching a plain lookup semantics.
type LibraryRepository interface {
	SaveArtist(artist *domain.Artist) error
	SaveSong(song *domain.Song) error
	SaveRelease(release *domain.Release) error
	SaveReleaseTrack(track *domain.ReleaseTrack) error

	FindArtist(id domain.ArtistID) (*domain.Artist, error)
	FindSong(id domain.SongID) (*domain.Song, error)
	FindRelease(id domain.ReleaseID) (*domain.Release, error)

	// FindArtistByName looks up an artist by exact name match, used by
	// the import orchestrator to resolve tag artist strings to IDs
	// without creating duplicates on re-scan.
	FindArtistByName(name string) (*domain.Artist, error)

	ListArtists() ([]domain.Artist, error)
	ListSongs() ([]domain.Song, error)
	ListReleases() ([]domain.Release, error)
}
