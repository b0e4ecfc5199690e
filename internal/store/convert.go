package store

import (
	"encoding/binary"
	"math"
	"time"
)

// float32SliceToBytes packs a feature vector into a flat little-endian
// BLOB for storage; bytesToFloat32Slice is its inverse.
func float32SliceToBytes(values []float32) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func bytesToFloat32Slice(raw []byte) []float32 {
	n := len(raw) / 4
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out
}

func durationMsToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
