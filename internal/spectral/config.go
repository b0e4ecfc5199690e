// Package spectral implements the reverse-scan spectral cutoff
// detector used to estimate a lossy-encoded track's effective
// frequency ceiling, and maps it to a 0-10 quality score.
package spectral

// NoiseConfig tunes how the background noise floor is estimated.
type NoiseConfig struct {
	// BaseFloorDB is the absolute noise floor (dB); anything below it
	// is treated as silence regardless of the dynamic margin.
	BaseFloorDB float32

	// DynamicMarginDB sets the floor relative to the loudest band:
	// noiseFloor = max(BaseFloorDB, globalMaxDB - DynamicMarginDB).
	DynamicMarginDB float32

	// FlatSpectrumStdThresholdDB is reserved for a flat-spectrum
	// detector the reverse scan does not currently implement.
	FlatSpectrumStdThresholdDB float32
}

// ReverseScanConfig tunes the high-frequency band walk.
type ReverseScanConfig struct {
	// BandWidthHz is the width of each band scanned from Nyquist down.
	BandWidthHz float32

	// MarginFromNyquistHz is how far below Nyquist the first
	// above-floor band must sit before it counts as a real cutoff
	// rather than noise right at the Nyquist edge.
	MarginFromNyquistHz float32
}

// CutoffBand maps a minimum cutoff frequency to a score; bands are
// evaluated high-to-low and the first satisfied threshold wins.
type CutoffBand struct {
	ThresholdHz float32
	Score       float32
}

// FullBandScores scores a track for which no cutoff was found at all.
type FullBandScores struct {
	At21kHz float32
	At20kHz float32
	Default float32
}

// ScoringConfig maps a detected cutoff (or its absence) to a score.
type ScoringConfig struct {
	CutoffBands         []CutoffBand
	CutoffFallbackScore float32
	FullBandScores      FullBandScores
}

// ScoreForCutoff returns the score for a detected cutoff at freqHz.
func (s ScoringConfig) ScoreForCutoff(freqHz float32) float32 {
	for _, band := range s.CutoffBands {
		if freqHz >= band.ThresholdHz {
			return band.Score
		}
	}
	return s.CutoffFallbackScore
}

// ScoreForFullBand returns the score for a track with no detected
// cutoff, i.e. energy present all the way to maxFreqHz.
func (s ScoringConfig) ScoreForFullBand(maxFreqHz float32) float32 {
	switch {
	case maxFreqHz >= 21000.0:
		return s.FullBandScores.At21kHz
	case maxFreqHz >= 20000.0:
		return s.FullBandScores.At20kHz
	default:
		return s.FullBandScores.Default
	}
}

// BitrateSafetyConfig caps the score when the container bitrate is
// known to be too low to support the spectral reading, protecting
// against a miscalibrated reverse scan on low-bitrate lossy files.
type BitrateSafetyConfig struct {
	VeryLowBpsMax int64
	LowBpsMax     int64
	MediumBpsMax  int64
	HighBpsMax    int64
	LossyBpsMax   int64

	VeryLowScoreCap float32
	LowScoreCap     float32
	MediumScoreCap  float32
	HighScoreCap    float32
	LossyScoreCap   float32
}

// ApplyCap lowers score (never raises it) based on bitrateBps, and
// appends a note to assessment when it does. A non-positive bitrate
// is treated as unknown and leaves score untouched.
func (b BitrateSafetyConfig) ApplyCap(bitrateBps int64, score *float32, assessment *string) {
	if bitrateBps <= 0 {
		return
	}

	switch {
	case bitrateBps < b.VeryLowBpsMax:
		if *score > b.VeryLowScoreCap {
			*score = b.VeryLowScoreCap
			*assessment += " (Very low bitrate)"
		}
	case bitrateBps < b.LowBpsMax:
		if *score > b.LowScoreCap {
			*score = b.LowScoreCap
			*assessment += " (Low bitrate)"
		}
	case bitrateBps < b.MediumBpsMax:
		if *score > b.MediumScoreCap {
			*score = b.MediumScoreCap
		}
	case bitrateBps < b.HighBpsMax:
		if *score > b.HighScoreCap {
			*score = b.HighScoreCap
		}
	case bitrateBps < b.LossyBpsMax:
		if *score > b.LossyScoreCap {
			*score = b.LossyScoreCap
		}
	default:
		// >= LossyBpsMax: probably lossless, no cap applied.
	}
}

// AnalysisConfig bundles every tunable of the spectral pass.
type AnalysisConfig struct {
	FFTWindowSize          int
	MaxAnalysisDurationSec float32

	Noise        NoiseConfig
	ReverseScan  ReverseScanConfig
	Scoring      ScoringConfig
	BitrateSafe  BitrateSafetyConfig
}

// DefaultAnalysisConfig returns the tuning used in production: an
// 8192-sample window, a 15s analysis cap per file, and the cutoff/
// bitrate tables calibrated against known lossy encoder profiles.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		FFTWindowSize:          8192,
		MaxAnalysisDurationSec: 15.0,
		Noise: NoiseConfig{
			BaseFloorDB:                -65.0,
			DynamicMarginDB:            70.0,
			FlatSpectrumStdThresholdDB: 4.0,
		},
		ReverseScan: ReverseScanConfig{
			BandWidthHz:         1000.0,
			MarginFromNyquistHz: 1500.0,
		},
		Scoring: ScoringConfig{
			CutoffBands: []CutoffBand{
				{ThresholdHz: 21000.0, Score: 10.0}, // lossless 44.1/48/96
				{ThresholdHz: 20000.0, Score: 9.5},
				{ThresholdHz: 18000.0, Score: 8.0}, // MP3 320/V0
				{ThresholdHz: 16500.0, Score: 7.0}, // ~192 kbps
				{ThresholdHz: 15000.0, Score: 6.0}, // ~128 kbps
				{ThresholdHz: 13000.0, Score: 4.5}, // poor / low-bitrate streaming
				{ThresholdHz: 11500.0, Score: 2.0}, // 64 kbps and below
			},
			CutoffFallbackScore: 4.0,
			FullBandScores:      FullBandScores{At21kHz: 10.0, At20kHz: 9.5, Default: 9.0},
		},
		BitrateSafe: BitrateSafetyConfig{
			VeryLowBpsMax: 80_000,
			LowBpsMax:     128_000,
			MediumBpsMax:  192_000,
			HighBpsMax:    256_000,
			LossyBpsMax:   400_000,

			VeryLowScoreCap: 3.0,
			LowScoreCap:     5.5,
			MediumScoreCap:  7.5,
			HighScoreCap:    8.5,
			LossyScoreCap:   9.0,
		},
	}
}
