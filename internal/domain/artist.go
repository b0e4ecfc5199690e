package domain

// Artist is an abstract artistic identity: it groups a performer's
// works, credits, and name variations. It does not represent a
// specific file or a concrete role on a track.
type Artist struct {
	ID ArtistID

	// Name is the canonical display name.
	Name string

	// Variations are known aliases, translations, or romanizations.
	Variations []string

	// Bio is optional biographical text.
	Bio *string

	// Sites are relevant links: official pages, Discogs, Wikipedia, etc.
	Sites []string
}
