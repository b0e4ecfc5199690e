package domain

// Release represents a musical release: a set of tracks plus editorial
// metadata (title, format, main artists, date, genres, styles,
// artwork). Semantically this is the "published object", not the
// individual song.
type Release struct {
	ID ReleaseID

	Title string

	// ReleaseType may hold more than one variant — some sources
	// classify the same release as Album *and* Compilation.
	ReleaseType []ReleaseType

	MainArtistIDs []ArtistID
	ReleaseTracks []ReleaseTrackID

	// ReleaseDate is kept as free-form text because source metadata
	// arrives in wildly different precisions ("1998", "1998-05",
	// "May 1998").
	ReleaseDate *string

	Artworks []Artwork

	Genres []Genre
	Styles []Style
}

// Artwork is an image associated with a Release: cover, back cover,
// alternate edition insert, etc.
type Artwork struct {
	Path        string
	MimeType    string
	Description *string

	// Hash identifies the artwork's content, used to de-duplicate
	// identical images referenced from multiple releases.
	Hash string

	Credits *string
}
