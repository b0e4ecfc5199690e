package domain

import (
	"fmt"
	"strings"
)

// Genre is one of the broad musical categories used throughout the
// catalog, inspired by the Discogs taxonomy. It does not capture
// subgenres; see Style for that.
type Genre int

const (
	GenreRock Genre = iota
	GenreElectronic
	GenrePop
	GenreFolkWorldAndCountry
	GenreJazz
	GenreFunkSoul
	GenreClassical
	GenreHipHop
	GenreLatin
	GenreStageAndScreen
	GenreReggae
	GenreBlues
	GenreNonMusic
	GenreChildrens
	GenreBrassAndMilitary
)

func (g Genre) String() string {
	switch g {
	case GenreRock:
		return "Rock"
	case GenreElectronic:
		return "Electronic"
	case GenrePop:
		return "Pop"
	case GenreFolkWorldAndCountry:
		return "Folk, World, & Country"
	case GenreJazz:
		return "Jazz"
	case GenreFunkSoul:
		return "Funk / Soul"
	case GenreClassical:
		return "Classical"
	case GenreHipHop:
		return "Hip Hop"
	case GenreLatin:
		return "Latin"
	case GenreStageAndScreen:
		return "Stage & Screen"
	case GenreReggae:
		return "Reggae"
	case GenreBlues:
		return "Blues"
	case GenreNonMusic:
		return "Non-Music"
	case GenreChildrens:
		return "Children's"
	case GenreBrassAndMilitary:
		return "Brass & Military"
	default:
		return "Unknown"
	}
}

// ErrInvalidGenre is returned by ParseGenre when the input does not
// normalize to any known variant.
type ErrInvalidGenre struct{ Input string }

func (e *ErrInvalidGenre) Error() string { return fmt.Sprintf("invalid genre: %s", e.Input) }

var genreReplacer = strings.NewReplacer("-", "", " ", "", ",", "", "&", "", "/", "", "'", "")

// ParseGenre normalizes s (lowercase, strip common separators) and
// matches it against the fixed taxonomy. Unlike ParseStyle this is a
// partial function: an unrecognized string is an error, not a
// fallback, because Genre has no Custom variant.
func ParseGenre(s string) (Genre, error) {
	normalized := genreReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))

	switch normalized {
	case "rock":
		return GenreRock, nil
	case "electronic":
		return GenreElectronic, nil
	case "pop":
		return GenrePop, nil
	case "folkworldandcountry", "folkworldcountry":
		return GenreFolkWorldAndCountry, nil
	case "jazz":
		return GenreJazz, nil
	case "funksoul":
		return GenreFunkSoul, nil
	case "classical":
		return GenreClassical, nil
	case "hiphop":
		return GenreHipHop, nil
	case "latin":
		return GenreLatin, nil
	case "stageandscreen", "stagescreen":
		return GenreStageAndScreen, nil
	case "reggae":
		return GenreReggae, nil
	case "blues":
		return GenreBlues, nil
	case "nonmusic":
		return GenreNonMusic, nil
	case "childrens", "children":
		return GenreChildrens, nil
	case "brassandmilitary", "brassmilitary":
		return GenreBrassAndMilitary, nil
	default:
		return 0, &ErrInvalidGenre{Input: s}
	}
}

// Style describes musical subgenres, movements, or scene tags more
// specific than a Genre (e.g. Synth-pop, Hardcore, J-pop). Custom
// preserves any value not in the known list, so parsing is total.
type Style struct {
	kind   styleKind
	custom string
}

type styleKind int

const (
	StylePopRock styleKind = iota
	StyleHouse
	StyleVocal
	StyleExperimental
	StylePunk
	StyleAlternativeRock
	StyleSynthPop
	StyleTechno
	StyleIndieRock
	StyleAmbient
	StyleSoul
	StyleDisco
	StyleHardcore
	StyleFolk
	StyleBallad
	StyleCountry
	StyleHardRock
	StyleElectro
	StyleRockAndRoll
	StyleChanson
	StyleRomantic
	StyleTrance
	StyleHeavyMetal
	StylePsychedelicRock
	StyleFolkRock
	StyleJpop
	StyleVocaloid
	styleCustom
)

// NewCustomStyle builds the Custom(string) variant directly.
func NewCustomStyle(raw string) Style { return Style{kind: styleCustom, custom: raw} }

// IsCustom reports whether this is a Custom(string) variant.
func (s Style) IsCustom() bool { return s.kind == styleCustom }

// Custom returns the raw string for a Custom variant, or "" otherwise.
func (s Style) Custom() string { return s.custom }

var styleNormalizer = strings.NewReplacer("-", "", " ", "")

// ParseStyle converts s into a Style, matching known variants or
// falling back to Custom(s). This never fails.
func ParseStyle(s string) Style {
	normalized := styleNormalizer.Replace(strings.ToLower(strings.TrimSpace(s)))

	switch normalized {
	case "poprock":
		return Style{kind: StylePopRock}
	case "house":
		return Style{kind: StyleHouse}
	case "vocal":
		return Style{kind: StyleVocal}
	case "experimental":
		return Style{kind: StyleExperimental}
	case "punk":
		return Style{kind: StylePunk}
	case "alternativerock":
		return Style{kind: StyleAlternativeRock}
	case "synthpop":
		return Style{kind: StyleSynthPop}
	case "techno":
		return Style{kind: StyleTechno}
	case "indierock":
		return Style{kind: StyleIndieRock}
	case "ambient":
		return Style{kind: StyleAmbient}
	case "soul":
		return Style{kind: StyleSoul}
	case "disco":
		return Style{kind: StyleDisco}
	case "hardcore":
		return Style{kind: StyleHardcore}
	case "folk":
		return Style{kind: StyleFolk}
	case "ballad":
		return Style{kind: StyleBallad}
	case "country":
		return Style{kind: StyleCountry}
	case "hardrock":
		return Style{kind: StyleHardRock}
	case "electro":
		return Style{kind: StyleElectro}
	case "rock&roll", "rockandroll":
		return Style{kind: StyleRockAndRoll}
	case "chanson":
		return Style{kind: StyleChanson}
	case "romantic":
		return Style{kind: StyleRomantic}
	case "trance":
		return Style{kind: StyleTrance}
	case "heavymetal":
		return Style{kind: StyleHeavyMetal}
	case "psychedelicrock":
		return Style{kind: StylePsychedelicRock}
	case "folkrock":
		return Style{kind: StyleFolkRock}
	case "jpop":
		return Style{kind: StyleJpop}
	case "vocaloid":
		return Style{kind: StyleVocaloid}
	default:
		return Style{kind: styleCustom, custom: s}
	}
}

func (s Style) String() string {
	switch s.kind {
	case StylePopRock:
		return "Pop Rock"
	case StyleHouse:
		return "House"
	case StyleVocal:
		return "Vocal"
	case StyleExperimental:
		return "Experimental"
	case StylePunk:
		return "Punk"
	case StyleAlternativeRock:
		return "Alternative Rock"
	case StyleSynthPop:
		return "Synth-pop"
	case StyleTechno:
		return "Techno"
	case StyleIndieRock:
		return "Indie Rock"
	case StyleAmbient:
		return "Ambient"
	case StyleSoul:
		return "Soul"
	case StyleDisco:
		return "Disco"
	case StyleHardcore:
		return "Hardcore"
	case StyleFolk:
		return "Folk"
	case StyleBallad:
		return "Ballad"
	case StyleCountry:
		return "Country"
	case StyleHardRock:
		return "Hard Rock"
	case StyleElectro:
		return "Electro"
	case StyleRockAndRoll:
		return "Rock & Roll"
	case StyleChanson:
		return "Chanson"
	case StyleRomantic:
		return "Romantic"
	case StyleTrance:
		return "Trance"
	case StyleHeavyMetal:
		return "Heavy Metal"
	case StylePsychedelicRock:
		return "Psychedelic Rock"
	case StyleFolkRock:
		return "Folk Rock"
	case StyleJpop:
		return "J-pop"
	case StyleVocaloid:
		return "Vocaloid"
	default:
		return s.custom
	}
}
