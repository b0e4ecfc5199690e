package domain

import "github.com/google/uuid"

// ArtistID uniquely identifies an Artist row.
type ArtistID uuid.UUID

// NewArtistID mints a fresh random identifier.
func NewArtistID() ArtistID { return ArtistID(uuid.New()) }

// ArtistIDFromString parses a canonical UUID string.
func ArtistIDFromString(s string) (ArtistID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ArtistID{}, err
	}
	return ArtistID(u), nil
}

func (id ArtistID) String() string { return uuid.UUID(id).String() }

// SongID uniquely identifies a Song row (the abstract work).
type SongID uuid.UUID

func NewSongID() SongID { return SongID(uuid.New()) }

func SongIDFromString(s string) (SongID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return SongID{}, err
	}
	return SongID(u), nil
}

func (id SongID) String() string { return uuid.UUID(id).String() }

// ReleaseID uniquely identifies a Release row.
type ReleaseID uuid.UUID

func NewReleaseID() ReleaseID { return ReleaseID(uuid.New()) }

func ReleaseIDFromString(s string) (ReleaseID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ReleaseID{}, err
	}
	return ReleaseID(u), nil
}

func (id ReleaseID) String() string { return uuid.UUID(id).String() }

// ReleaseTrackID uniquely identifies the physical instance of a Song
// inside a Release — distinct from SongID (the abstract work) and
// ReleaseID (the product).
type ReleaseTrackID uuid.UUID

func NewReleaseTrackID() ReleaseTrackID { return ReleaseTrackID(uuid.New()) }

func ReleaseTrackIDFromString(s string) (ReleaseTrackID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ReleaseTrackID{}, err
	}
	return ReleaseTrackID(u), nil
}

func (id ReleaseTrackID) String() string { return uuid.UUID(id).String() }
