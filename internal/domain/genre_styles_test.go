package domain

import "testing"

func TestParseGenreNormalizesSeparators(t *testing.T) {
	cases := []struct {
		input string
		want  Genre
	}{
		{"Rock", GenreRock},
		{"Folk, World, & Country", GenreFolkWorldAndCountry},
		{"folk-world-country", GenreFolkWorldAndCountry},
		{"Hip Hop", GenreHipHop},
		{"hiphop", GenreHipHop},
		{"Children's", GenreChildrens},
		{"children", GenreChildrens},
	}

	for _, c := range cases {
		got, err := ParseGenre(c.input)
		if err != nil {
			t.Errorf("ParseGenre(%q) unexpected error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseGenre(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestParseGenreRejectsUnknown(t *testing.T) {
	if _, err := ParseGenre("some nonsense genre"); err == nil {
		t.Error("expected error for unrecognized genre")
	}
}

func TestParseStyleIsTotal(t *testing.T) {
	s := ParseStyle("some nonsense style")
	if !s.IsCustom() {
		t.Fatalf("expected unrecognized style to fall back to Custom")
	}
	if s.Custom() != "some nonsense style" {
		t.Errorf("Custom() = %q, want original input preserved", s.Custom())
	}
	if s.String() != "some nonsense style" {
		t.Errorf("String() = %q, want original input preserved", s.String())
	}
}

func TestParseStyleKnownVariants(t *testing.T) {
	s := ParseStyle("synth-pop")
	if s.IsCustom() {
		t.Fatal("synth-pop should match a known style")
	}
	if got := s.String(); got != "Synth-pop" {
		t.Errorf("String() = %q, want %q", got, "Synth-pop")
	}
}

func TestParseReleaseTypeNeverFails(t *testing.T) {
	rt := ParseReleaseType("Bootleg")
	if !rt.IsCustom() {
		t.Fatal("Bootleg should fall back to Custom")
	}
	if rt.String() != "Bootleg" {
		t.Errorf("String() = %q, want %q", rt.String(), "Bootleg")
	}

	for _, in := range []string{"CD", "vinyl", "dj-mix", "mixtape"} {
		got := ParseReleaseType(in)
		if got.IsCustom() {
			t.Errorf("ParseReleaseType(%q) unexpectedly fell back to Custom", in)
		}
	}
}
