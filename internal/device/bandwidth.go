// Package device identifies the physical storage volume backing a
// file path and measures/caches its read throughput, so the
// orchestrator can budget per-device concurrency. Device
// identification is platform-specific (see device_unix.go,
// device_windows.go, device_other.go); the cache and throughput probe
// below are platform-independent.
package device

import (
	"io"
	"os"
	"sync"
	"time"
)

// UnknownDevice is the sentinel device id used when no platform-level
// identity can be determined for a path.
const UnknownDevice = "UNKNOWN_DEVICE"

// SampleBytes is how much of a file is read to estimate a device's
// throughput: 20 MiB, matching the original benchmark's sample size.
const SampleBytes = 20 * 1024 * 1024

// BandwidthCache is a process-wide, mutex-guarded map from device id
// to measured MiB/s. It is safe for concurrent use. Entries live for
// the lifetime of the process; there is no teardown or expiry.
type BandwidthCache struct {
	mu   sync.RWMutex
	data map[string]float64
}

// NewBandwidthCache builds an empty cache.
func NewBandwidthCache() *BandwidthCache {
	return &BandwidthCache{data: make(map[string]float64)}
}

// Lookup returns the cached bandwidth for id, if any.
func (c *BandwidthCache) Lookup(id string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[id]
	return v, ok
}

// Snapshot returns a copy of the current map, so a caller can decide
// what still needs measuring without holding the lock while it
// performs I/O.
func (c *BandwidthCache) Snapshot() map[string]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]float64, len(c.data))
	for k, v := range c.data {
		out[k] = v
	}
	return out
}

// Store records a freshly measured bandwidth for id. Safe to call
// after I/O has completed; the lock is held only for the map write.
func (c *BandwidthCache) Store(id string, mbps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[id] = mbps
}

// MeasureThroughput reads up to SampleBytes from samplePath (or until
// EOF) and returns the observed read rate in MiB/s. A zero-duration
// read (tiny or cached-in-page file) yields 0.0, matching the
// original's "instant read" fallback.
func MeasureThroughput(samplePath string) (float64, error) {
	f, err := os.Open(samplePath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	start := time.Now()
	n, err := io.CopyN(io.Discard, f, SampleBytes)
	if err != nil && err != io.EOF {
		return 0, err
	}
	elapsed := time.Since(start)

	if elapsed <= 0 {
		return 0.0, nil
	}

	mib := float64(n) / (1024 * 1024)
	return mib / elapsed.Seconds(), nil
}

// ConcurrencyFor derives the per-group worker ceiling from a device's
// measured bandwidth, per the tiers fixed by the orchestrator design:
// faster devices get deeper fan-out, an unmeasured device gets a
// conservative middle value.
func ConcurrencyFor(bandwidthMBs *float64) int {
	if bandwidthMBs == nil {
		return 8
	}
	switch {
	case *bandwidthMBs > 500:
		return 50
	case *bandwidthMBs > 100:
		return 20
	default:
		return 4
	}
}
