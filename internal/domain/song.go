package domain

// Song is the abstract musical work, independent of any particular
// recording or release. The same Song can appear as multiple
// ReleaseTracks (original album, compilation, remaster, regional
// edition...).
type Song struct {
	ID SongID

	// AcoustID is the acoustic fingerprint used for online
	// verification, when known.
	AcoustID *string

	Title string

	PerformerIDs []ArtistID
	FeaturedIDs  []ArtistID
	ComposerIDs  []ArtistID
	ProducerIDs  []ArtistID

	// Stats holds the user-interaction aggregate (rating, comments).
	// It is never written by ingestion; SaveSong preserves whatever is
	// already on file and only creates the row if absent.
	Stats SongStats
}
