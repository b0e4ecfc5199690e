package device

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBandwidthCacheStoreLookup(t *testing.T) {
	c := NewBandwidthCache()

	if _, ok := c.Lookup("dev-1"); ok {
		t.Fatal("empty cache should have no entries")
	}

	c.Store("dev-1", 123.4)

	v, ok := c.Lookup("dev-1")
	if !ok {
		t.Fatal("expected dev-1 to be present after Store")
	}
	if v != 123.4 {
		t.Errorf("Lookup returned %v, want 123.4", v)
	}
}

func TestBandwidthCacheSnapshotIsACopy(t *testing.T) {
	c := NewBandwidthCache()
	c.Store("dev-1", 1.0)

	snap := c.Snapshot()
	snap["dev-1"] = 999.0

	v, _ := c.Lookup("dev-1")
	if v != 1.0 {
		t.Errorf("mutating the snapshot affected the cache: got %v", v)
	}
}

func TestConcurrencyForTiers(t *testing.T) {
	high, mid, low := 600.0, 150.0, 10.0

	cases := []struct {
		name string
		bw   *float64
		want int
	}{
		{"unknown", nil, 8},
		{"fast ssd", &high, 50},
		{"moderate", &mid, 20},
		{"slow", &low, 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ConcurrencyFor(c.bw); got != c.want {
				t.Errorf("ConcurrencyFor(%v) = %d, want %d", c.bw, got, c.want)
			}
		})
	}
}

func TestMeasureThroughputZeroLengthFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	mbps, err := MeasureThroughput(path)
	if err != nil {
		t.Fatalf("MeasureThroughput: %v", err)
	}
	if mbps != 0.0 {
		t.Errorf("empty file should yield 0.0 MiB/s, got %v", mbps)
	}
}
