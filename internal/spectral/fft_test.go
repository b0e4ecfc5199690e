package spectral

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestFFTOfConstantSignalIsAllEnergyInDCBin(t *testing.T) {
	n := 64
	buf := make([]complex128, n)
	for i := range buf {
		buf[i] = complex(1, 0)
	}

	fft(buf)

	if math.Abs(cmplx.Abs(buf[0])-float64(n)) > 1e-6 {
		t.Errorf("expected DC bin magnitude %d, got %f", n, cmplx.Abs(buf[0]))
	}
	for i := 1; i < n; i++ {
		if cmplx.Abs(buf[i]) > 1e-6 {
			t.Errorf("expected bin %d to be ~0 for a constant signal, got %f", i, cmplx.Abs(buf[i]))
		}
	}
}

func TestFFTOfPureToneConcentratesEnergyAtItsBin(t *testing.T) {
	n := 64
	k := 5 // target bin
	buf := make([]complex128, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(k) * float64(i) / float64(n)
		buf[i] = complex(math.Cos(angle), 0)
	}

	fft(buf)

	peakBin := 0
	peakMag := 0.0
	for i, c := range buf {
		if m := cmplx.Abs(c); m > peakMag {
			peakMag = m
			peakBin = i
		}
	}

	if peakBin != k && peakBin != n-k {
		t.Errorf("expected peak at bin %d or %d, got %d", k, n-k, peakBin)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	cases := map[int]bool{0: false, 1: true, 2: true, 3: false, 8192: true, 8193: false}
	for n, want := range cases {
		if got := isPowerOfTwo(n); got != want {
			t.Errorf("isPowerOfTwo(%d) = %v, want %v", n, got, want)
		}
	}
}
