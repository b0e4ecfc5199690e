package domain

import "strings"

// ReleaseType classifies a Release using the industry-standard
// vocabulary (Album, EP, Single, ...), with Custom covering anything
// else (e.g. "Bootleg").
type ReleaseType struct {
	kind   releaseTypeKind
	custom string
}

type releaseTypeKind int

const (
	ReleaseTypeAlbum releaseTypeKind = iota
	ReleaseTypeEP
	ReleaseTypeSingle
	ReleaseTypeCompilation
	ReleaseTypeMix
	releaseTypeCustom
)

// NewCustomReleaseType builds the Custom(string) variant directly.
func NewCustomReleaseType(raw string) ReleaseType {
	return ReleaseType{kind: releaseTypeCustom, custom: raw}
}

func (r ReleaseType) IsCustom() bool  { return r.kind == releaseTypeCustom }
func (r ReleaseType) Custom() string  { return r.custom }

// ParseReleaseType normalizes s and maps it to a known variant,
// falling back to Custom(s). This never fails.
func ParseReleaseType(s string) ReleaseType {
	normalized := strings.ToLower(strings.TrimSpace(s))

	switch normalized {
	case "album", "cd", "lp", "vinyl", "album/cd":
		return ReleaseType{kind: ReleaseTypeAlbum}
	case "ep":
		return ReleaseType{kind: ReleaseTypeEP}
	case "single":
		return ReleaseType{kind: ReleaseTypeSingle}
	case "compilation":
		return ReleaseType{kind: ReleaseTypeCompilation}
	case "mix", "dj-mix", "mixtape":
		return ReleaseType{kind: ReleaseTypeMix}
	default:
		return ReleaseType{kind: releaseTypeCustom, custom: s}
	}
}

func (r ReleaseType) String() string {
	switch r.kind {
	case ReleaseTypeAlbum:
		return "Album"
	case ReleaseTypeEP:
		return "EP"
	case ReleaseTypeSingle:
		return "Single"
	case ReleaseTypeCompilation:
		return "Compilation"
	case ReleaseTypeMix:
		return "Mix"
	default:
		return r.custom
	}
}
