package spectral

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/cismu/gamus/internal/domain"
)

func float32LEBytes(samples []float32) []byte {
	buf := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}
	return buf
}

func TestComputeAverageSpectrumOfSilenceIsAllFloor(t *testing.T) {
	a, err := New(AnalysisConfig{FFTWindowSize: 64, Noise: DefaultAnalysisConfig().Noise, ReverseScan: DefaultAnalysisConfig().ReverseScan, Scoring: DefaultAnalysisConfig().Scoring, BitrateSafe: DefaultAnalysisConfig().BitrateSafe})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	samples := make([]float32, 64*3)
	spectrum, err := a.computeAverageSpectrum(bytes.NewReader(float32LEBytes(samples)))
	if err != nil {
		t.Fatalf("computeAverageSpectrum: %v", err)
	}
	if len(spectrum) != 32 {
		t.Fatalf("expected 32 bins, got %d", len(spectrum))
	}
	for i, db := range spectrum {
		if db > -190 {
			t.Errorf("bin %d: expected floor-level dB for silence, got %f", i, db)
		}
	}
}

func TestComputeAverageSpectrumDropsTrailingPartialWindow(t *testing.T) {
	a, err := New(AnalysisConfig{FFTWindowSize: 64, Noise: DefaultAnalysisConfig().Noise, ReverseScan: DefaultAnalysisConfig().ReverseScan, Scoring: DefaultAnalysisConfig().Scoring, BitrateSafe: DefaultAnalysisConfig().BitrateSafe})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	samples := make([]float32, 64+10) // one full window + a short tail
	_, err = a.computeAverageSpectrum(bytes.NewReader(float32LEBytes(samples)))
	if err != nil {
		t.Fatalf("expected the single full window to be enough, got error: %v", err)
	}
}

func TestComputeAverageSpectrumErrorsOnNoFullWindow(t *testing.T) {
	a, err := New(AnalysisConfig{FFTWindowSize: 64, Noise: DefaultAnalysisConfig().Noise, ReverseScan: DefaultAnalysisConfig().ReverseScan, Scoring: DefaultAnalysisConfig().Scoring, BitrateSafe: DefaultAnalysisConfig().BitrateSafe})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	samples := make([]float32, 10)
	if _, err := a.computeAverageSpectrum(bytes.NewReader(float32LEBytes(samples))); err == nil {
		t.Fatal("expected an error when no full window is available")
	}
}

func TestScoreOutcomeCutoffDetected(t *testing.T) {
	a := NewDefault()
	outcome := domain.AnalysisOutcome{Kind: domain.OutcomeCutoffDetected, CutoffFreqHz: 16500}

	quality := a.scoreOutcome(outcome, 0)

	if quality.Score != 7.0 {
		t.Errorf("expected score 7.0 for a 16.5kHz cutoff, got %f", quality.Score)
	}
	if quality.Report.Level != domain.QualityMedium {
		t.Errorf("expected medium quality level, got %v", quality.Report.Level)
	}
}

func TestScoreOutcomeFullBand(t *testing.T) {
	a := NewDefault()
	outcome := domain.AnalysisOutcome{Kind: domain.OutcomeNoCutoffDetected, MaxFreqHz: 22000}

	quality := a.scoreOutcome(outcome, 0)

	if quality.Score != 10.0 {
		t.Errorf("expected score 10.0 for full-band audio above 21kHz, got %f", quality.Score)
	}
	if quality.Report.Level != domain.QualityPerfect {
		t.Errorf("expected perfect quality level, got %v", quality.Report.Level)
	}
}

func TestScoreOutcomeInconclusiveForcesZeroScoreAndLevel(t *testing.T) {
	a := NewDefault()
	outcome := domain.AnalysisOutcome{Kind: domain.OutcomeInconclusive, Reason: "silence"}

	quality := a.scoreOutcome(outcome, 999_999)

	if quality.Score != 0 {
		t.Errorf("expected score 0 for an inconclusive outcome, got %f", quality.Score)
	}
	if quality.Report.Level != domain.QualityInconclusive {
		t.Errorf("expected inconclusive level, got %v", quality.Report.Level)
	}
}

func TestBitrateSafetyCapOnlyReducesScore(t *testing.T) {
	a := NewDefault()
	outcome := domain.AnalysisOutcome{Kind: domain.OutcomeNoCutoffDetected, MaxFreqHz: 22000} // would score 10.0

	uncapped := a.scoreOutcome(outcome, 0)
	capped := a.scoreOutcome(outcome, 64_000) // very low bitrate

	if capped.Score > uncapped.Score {
		t.Fatalf("bitrate cap must never raise the score: uncapped=%f capped=%f", uncapped.Score, capped.Score)
	}
	if capped.Score != 3.0 {
		t.Errorf("expected very-low-bitrate cap of 3.0, got %f", capped.Score)
	}
}

func TestBitrateSafetyCapNoOpAboveLossyThreshold(t *testing.T) {
	a := NewDefault()
	outcome := domain.AnalysisOutcome{Kind: domain.OutcomeNoCutoffDetected, MaxFreqHz: 22000}

	uncapped := a.scoreOutcome(outcome, 0)
	notCapped := a.scoreOutcome(outcome, 500_000) // above LossyBpsMax

	if notCapped.Score != uncapped.Score {
		t.Errorf("expected no cap above the lossy bitrate threshold, got %f vs %f", notCapped.Score, uncapped.Score)
	}
}

func TestDetectCutoffOnSilentSpectrumIsInconclusive(t *testing.T) {
	a := NewDefault()
	spectrum := make([]float32, 4096)
	for i := range spectrum {
		spectrum[i] = -200
	}

	outcome := a.detectCutoff(spectrum, 44100)
	if outcome.Kind != domain.OutcomeInconclusive {
		t.Errorf("expected inconclusive outcome for a silent spectrum, got %v", outcome.Kind)
	}
}

func TestScoreIsAlwaysWithinZeroToTen(t *testing.T) {
	a := NewDefault()
	cases := []domain.AnalysisOutcome{
		{Kind: domain.OutcomeCutoffDetected, CutoffFreqHz: 9000},
		{Kind: domain.OutcomeCutoffDetected, CutoffFreqHz: 21000},
		{Kind: domain.OutcomeNoCutoffDetected, MaxFreqHz: 19000},
		{Kind: domain.OutcomeInconclusive, Reason: "x"},
	}
	for _, c := range cases {
		q := a.scoreOutcome(c, 128_000)
		if q.Score < 0 || q.Score > 10 {
			t.Errorf("score %f out of [0,10] range for outcome %+v", q.Score, c)
		}
	}
}
