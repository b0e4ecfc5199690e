package domain

// ArtistRole is the specific part an artist plays on a given track.
type ArtistRole int

const (
	RolePerformer ArtistRole = iota
	RoleFeatured
	RoleComposer
	RoleProducer
	RoleRemixer
)

func (r ArtistRole) String() string {
	switch r {
	case RolePerformer:
		return "performer"
	case RoleFeatured:
		return "featured"
	case RoleComposer:
		return "composer"
	case RoleProducer:
		return "producer"
	case RoleRemixer:
		return "remixer"
	default:
		return "unknown"
	}
}

// ParseArtistRole is the inverse of String, used when reading credits
// back from storage.
func ParseArtistRole(s string) (ArtistRole, bool) {
	switch s {
	case "performer":
		return RolePerformer, true
	case "featured":
		return RoleFeatured, true
	case "composer":
		return RoleComposer, true
	case "producer":
		return RoleProducer, true
	case "remixer":
		return RoleRemixer, true
	default:
		return 0, false
	}
}

// ReleaseTrackArtistCredit attributes an artist to a specific track of
// a release in a specific role, with an optional display order.
type ReleaseTrackArtistCredit struct {
	ReleaseTrackID ReleaseTrackID
	ArtistID       ArtistID
	Role           ArtistRole
	Position       *uint32
}
