package spectral

import "math/cmplx"

// fft computes the in-place iterative radix-2 Cooley-Tukey FFT of
// buf, whose length must be a power of two. No third-party FFT
// library exists anywhere in the reference corpus for this project;
// this hand-rolled implementation on math/cmplx is the deliberate
// exception to the "never stdlib where the ecosystem has a library"
// rule (see the spectral analyzer entry in DESIGN.md).
func fft(buf []complex128) {
	n := len(buf)
	if n <= 1 {
		return
	}

	bitReverse(buf)

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		angleStep := -2 * pi / float64(size)
		for start := 0; start < n; start += size {
			for k := 0; k < half; k++ {
				twiddle := cmplx.Rect(1, angleStep*float64(k))
				even := buf[start+k]
				odd := buf[start+k+half] * twiddle
				buf[start+k] = even + odd
				buf[start+k+half] = even - odd
			}
		}
	}
}

const pi = 3.14159265358979323846

// bitReverse permutes buf into bit-reversed order in place, the
// standard prelude to an iterative FFT.
func bitReverse(buf []complex128) {
	n := len(buf)
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j &^= bit
		}
		j |= bit
		if i < j {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}
}

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
