package spectral

import "math"

// hannWindow returns a symmetric Hann window of length n, matching
// apodize::hanning_iter from the analyzer this package is ported
// from: w[i] = 0.5 * (1 - cos(2*pi*i/(n-1))).
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	if n <= 1 {
		for i := range w {
			w[i] = 1
		}
		return w
	}
	denom := float64(n - 1)
	for i := 0; i < n; i++ {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/denom))
	}
	return w
}
