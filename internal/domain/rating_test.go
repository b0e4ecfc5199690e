package domain

import "testing"

func TestNewRatingRange(t *testing.T) {
	cases := []struct {
		name  string
		value float32
		ok    bool
	}{
		{"zero", 0.0, true},
		{"max", 5.0, true},
		{"mid", 3.5, true},
		{"below", -0.01, false},
		{"above", 5.01, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, ok := NewRating(c.value)
			if ok != c.ok {
				t.Fatalf("NewRating(%v) ok = %v, want %v", c.value, ok, c.ok)
			}
		})
	}
}

func TestRatingRoundTrip(t *testing.T) {
	for _, v := range []float32{0.0, 1.2345, 3.5, 4.9999, 5.0} {
		r, ok := NewRating(v)
		if !ok {
			t.Fatalf("NewRating(%v) unexpectedly failed", v)
		}
		got := r.AsFloat32()
		diff := got - v
		if diff < 0 {
			diff = -diff
		}
		if diff > 0.0001 {
			t.Errorf("round trip of %v = %v, diff %v exceeds 4-decimal precision", v, got, diff)
		}
	}
}

func TestRatingStringUsesFloorNotRound(t *testing.T) {
	r41, _ := NewRating(4.1)
	r49, _ := NewRating(4.9)
	r50, _ := NewRating(5.0)

	if got := r41.String(); got != "★★★★☆" {
		t.Errorf("4.1 rendered %q, want four full stars", got)
	}
	if got := r49.String(); got != "★★★★☆" {
		t.Errorf("4.9 rendered %q, want four full stars", got)
	}
	if got := r50.String(); got != "★★★★★" {
		t.Errorf("5.0 rendered %q, want five full stars", got)
	}
}

func TestUnratedAvgDisplay(t *testing.T) {
	if got := UnratedAvg.String(); got != "☆☆☆☆☆" {
		t.Errorf("unrated avg rendered %q", got)
	}
	if UnratedAvg.IsRated() {
		t.Error("zero-value AvgRating must not report itself as rated")
	}
}
