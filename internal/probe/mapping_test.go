package probe

import "testing"

func TestFindTagValuePrefersFirstMatch(t *testing.T) {
	tags := map[string]string{"tit2": "Song A", "title": "Song B"}
	v, ok := FindTagValue(tags, KeysTitle)
	if !ok {
		t.Fatal("expected a match")
	}
	if v != "Song B" {
		t.Errorf("expected first-listed key to win, got %q", v)
	}
}

func TestFindTagValueSkipsBlank(t *testing.T) {
	tags := map[string]string{"title": "  ", "tit2": "Real Title"}
	v, ok := FindTagValue(tags, KeysTitle)
	if !ok || v != "Real Title" {
		t.Errorf("expected fallback to next key, got %q, ok=%v", v, ok)
	}
}

func TestFindTagValueAbsent(t *testing.T) {
	if _, ok := FindTagValue(map[string]string{}, KeysTitle); ok {
		t.Error("expected no match on empty tag map")
	}
}

func TestFindTagNumberPlain(t *testing.T) {
	n, ok := FindTagNumber(map[string]string{"track": "7"}, KeysTrackNumber)
	if !ok || n != 7 {
		t.Errorf("expected 7, got %d, ok=%v", n, ok)
	}
}

func TestFindTagNumberWithTotal(t *testing.T) {
	n, ok := FindTagNumber(map[string]string{"track": "3/12"}, KeysTrackNumber)
	if !ok || n != 3 {
		t.Errorf("expected 3, got %d, ok=%v", n, ok)
	}
}

func TestFindTagNumberUnparseable(t *testing.T) {
	if _, ok := FindTagNumber(map[string]string{"track": "unknown"}, KeysTrackNumber); ok {
		t.Error("expected unparseable track number to be rejected")
	}
}
