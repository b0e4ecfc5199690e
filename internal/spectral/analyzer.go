package spectral

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"os/exec"
	"strconv"
	"strings"

	"github.com/cismu/gamus/internal/domain"
)

// Analyzer runs the reverse-scan spectral cutoff detector: it decodes
// a file to mono PCM, averages its magnitude spectrum across
// Hann-windowed FFT frames, walks down from Nyquist looking for the
// first band that rises above the noise floor, and maps the result
// to a 0-10 quality score.
type Analyzer struct {
	config AnalysisConfig
	window []float64
}

// New builds an Analyzer from config. config.FFTWindowSize must be a
// power of two.
func New(config AnalysisConfig) (*Analyzer, error) {
	if !isPowerOfTwo(config.FFTWindowSize) {
		return nil, fmt.Errorf("fft window size %d is not a power of two", config.FFTWindowSize)
	}
	return &Analyzer{config: config, window: hannWindow(config.FFTWindowSize)}, nil
}

// NewDefault builds an Analyzer using DefaultAnalysisConfig.
func NewDefault() *Analyzer {
	a, _ := New(DefaultAnalysisConfig())
	return a
}

// AnalyzeFile decodes path to mono PCM via ffmpeg, averages its
// spectrum, and scores the result. bitrateBps is the container
// bitrate if known (0 disables the bitrate safety cap).
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string, bitrateBps int64) (domain.AudioQuality, error) {
	out, err := exec.CommandContext(ctx, "ffprobe", "-v", "quiet", "-select_streams", "a:0",
		"-show_entries", "stream=sample_rate", "-of", "csv=p=0", path).Output()
	if err != nil {
		return domain.AudioQuality{}, fmt.Errorf("probing %s: %v: %w", path, err, domain.ErrUnsupported)
	}
	rate, err := strconv.ParseUint(strings.TrimSpace(string(out)), 10, 32)
	if err != nil || rate == 0 {
		return domain.AudioQuality{}, fmt.Errorf("no compatible audio track in %s: %w", path, domain.ErrUnsupported)
	}
	sampleRate := uint32(rate)

	pcm, err := decodeMonoPCM(ctx, path, sampleRate, a.config.MaxAnalysisDurationSec)
	if err != nil {
		return domain.AudioQuality{}, err
	}
	defer pcm.Close()

	spectrumDB, err := a.computeAverageSpectrum(pcm)
	if err != nil {
		return domain.AudioQuality{}, err
	}

	outcome := a.detectCutoff(spectrumDB, sampleRate)
	return a.scoreOutcome(outcome, bitrateBps), nil
}

// computeAverageSpectrum reads 32-bit little-endian float PCM samples
// from r in config.FFTWindowSize chunks, accumulates their windowed
// FFT magnitude, and converts the per-bin average to dB. A trailing
// partial window (fewer samples than the FFT size) is discarded, same
// as the reference analyzer this is ported from.
func (a *Analyzer) computeAverageSpectrum(r io.Reader) ([]float32, error) {
	windowSize := a.config.FFTWindowSize
	acc := make([]float64, windowSize/2)
	windowCount := 0

	samples := make([]float32, windowSize)
	fftBuf := make([]complex128, windowSize)

	br := bufio.NewReaderSize(r, 1<<16)
	raw := make([]byte, 4)
	idx := 0

	for {
		if _, err := io.ReadFull(br, raw); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, fmt.Errorf("reading pcm stream: %w", err)
		}

		bits := binary.LittleEndian.Uint32(raw)
		samples[idx] = math.Float32frombits(bits)
		idx++

		if idx == windowSize {
			a.processWindow(samples, fftBuf, acc)
			windowCount++
			idx = 0
		}
	}

	if windowCount == 0 {
		return nil, fmt.Errorf("not enough audio data for a single analysis window: %w", domain.ErrUnsupported)
	}

	spectrumDB := make([]float32, len(acc))
	for i, sum := range acc {
		avg := sum / float64(windowCount)
		if avg < 1e-10 {
			avg = 1e-10
		}
		spectrumDB[i] = float32(20 * math.Log10(avg))
	}
	return spectrumDB, nil
}

func (a *Analyzer) processWindow(samples []float32, fftBuf []complex128, acc []float64) {
	for i, s := range samples {
		fftBuf[i] = complex(float64(s)*a.window[i], 0)
	}
	fft(fftBuf)
	for i := range acc {
		acc[i] += cmplx.Abs(fftBuf[i])
	}
}

// bandDB averages spectrumDB's dB values over [start, end) Hz.
func bandDB(spectrumDB []float32, sampleRate uint32, start, end float32) (float32, bool) {
	nyquist := float32(sampleRate) / 2.0
	if start >= nyquist {
		return 0, false
	}
	if end > nyquist {
		end = nyquist
	}

	binWidth := nyquist / float32(len(spectrumDB))
	sBin := int(start / binWidth)
	eBin := int(end / binWidth)
	if eBin > len(spectrumDB) {
		eBin = len(spectrumDB)
	}
	if sBin >= eBin {
		return 0, false
	}

	var sum float32
	for _, v := range spectrumDB[sBin:eBin] {
		sum += v
	}
	return sum / float32(eBin-sBin), true
}

// detectCutoff walks bands of ReverseScan.BandWidthHz down from
// Nyquist and returns the first one whose average dB rises above the
// noise floor. A band close enough to Nyquist is treated as "no
// cutoff" (the track carries energy to the edge of its sample rate).
func (a *Analyzer) detectCutoff(spectrumDB []float32, sampleRate uint32) domain.AnalysisOutcome {
	nyquist := float32(sampleRate) / 2.0

	globalMax := float32(math.Inf(-1))
	for _, v := range spectrumDB {
		if v > globalMax {
			globalMax = v
		}
	}

	noiseFloor := a.config.Noise.BaseFloorDB
	if !math.IsInf(float64(globalMax), -1) {
		if dynFloor := globalMax - a.config.Noise.DynamicMarginDB; dynFloor > noiseFloor {
			noiseFloor = dynFloor
		}
	}

	stepHz := a.config.ReverseScan.BandWidthHz
	if stepHz < 100.0 {
		stepHz = 100.0
	}

	var foundCutoffFreq float32
	var maxDBFound float32 = -100.0

	f := float32(math.Floor(float64(nyquist/stepHz))) * stepHz
	for f >= stepHz {
		start, end := f-stepHz, f
		if db, ok := bandDB(spectrumDB, sampleRate, start, end); ok && db > noiseFloor {
			foundCutoffFreq = end
			maxDBFound = db
			break
		}
		f -= stepHz
	}

	if foundCutoffFreq <= 0 {
		return domain.AnalysisOutcome{
			Kind:   domain.OutcomeInconclusive,
			Reason: "silent audio or no significant high-frequency energy",
		}
	}

	if nyquist-foundCutoffFreq > a.config.ReverseScan.MarginFromNyquistHz {
		return domain.AnalysisOutcome{
			Kind:         domain.OutcomeCutoffDetected,
			CutoffFreqHz: foundCutoffFreq,
			CutoffRefDB:  maxDBFound,
			CutoffCutDB:  noiseFloor,
		}
	}
	return domain.AnalysisOutcome{
		Kind:      domain.OutcomeNoCutoffDetected,
		MaxFreqHz: foundCutoffFreq,
		MaxRefDB:  maxDBFound,
	}
}

// scoreOutcome maps outcome to a 0-10 score, applies the bitrate
// safety cap, and builds the accompanying report.
func (a *Analyzer) scoreOutcome(outcome domain.AnalysisOutcome, bitrateBps int64) domain.AudioQuality {
	var score float32
	var assessment string

	switch outcome.Kind {
	case domain.OutcomeCutoffDetected:
		score = a.config.Scoring.ScoreForCutoff(outcome.CutoffFreqHz)
		assessment = fmt.Sprintf("Spectral cutoff at %.1f kHz", outcome.CutoffFreqHz/1000.0)
	case domain.OutcomeNoCutoffDetected:
		score = a.config.Scoring.ScoreForFullBand(outcome.MaxFreqHz)
		assessment = "Full spectrum"
	default:
		score = 0
		assessment = fmt.Sprintf("Error: %s", outcome.Reason)
	}

	a.config.BitrateSafe.ApplyCap(bitrateBps, &score, &assessment)

	report := buildReport(outcome, score, assessment)
	return domain.AudioQuality{
		Score:      score,
		Assessment: assessment,
		Outcome:    outcome,
		Report:     &report,
	}
}

func qualityLevelFor(score float32) domain.QualityLevel {
	switch {
	case score >= 9.5:
		return domain.QualityPerfect
	case score >= 8.0:
		return domain.QualityHigh
	case score >= 5.5:
		return domain.QualityMedium
	default:
		return domain.QualityLow
	}
}

func buildReport(outcome domain.AnalysisOutcome, score float32, assessment string) domain.AudioQualityReport {
	switch outcome.Kind {
	case domain.OutcomeCutoffDetected:
		freq := outcome.CutoffFreqHz
		details := fmt.Sprintf(
			"The audio signal drops off sharply above %.1f kHz (level ~%.1f dB). Consistent with lossy compression (MP3/AAC).",
			freq/1000.0, outcome.CutoffRefDB,
		)
		return domain.AudioQualityReport{
			Level:        qualityLevelFor(score),
			Score:        score,
			Label:        assessment,
			Summary:      "High-frequency content was trimmed.",
			Details:      &details,
			CutoffFreqHz: &freq,
		}
	case domain.OutcomeNoCutoffDetected:
		freq := outcome.MaxFreqHz
		details := fmt.Sprintf(
			"The signal extends to %.1f kHz with no significant drop (final level ~%.1f dB). Consistent with lossless or high-quality audio.",
			freq/1000.0, outcome.MaxRefDB,
		)
		return domain.AudioQualityReport{
			Level:     qualityLevelFor(score),
			Score:     score,
			Label:     assessment,
			Summary:   "Excellent frequency response.",
			Details:   &details,
			MaxFreqHz: &freq,
		}
	default:
		reason := outcome.Reason
		return domain.AudioQualityReport{
			Level:   domain.QualityInconclusive,
			Score:   0,
			Label:   "Error",
			Summary: "Could not analyze.",
			Details: &reason,
		}
	}
}

// pcmStream wraps an ffmpeg subprocess streaming raw PCM on stdout.
type pcmStream struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
}

func (p *pcmStream) Read(b []byte) (int, error) { return p.stdout.Read(b) }

func (p *pcmStream) Close() error {
	p.stdout.Close()
	return p.cmd.Wait()
}

// decodeMonoPCM execs `ffmpeg -i <path> -map 0:a:0 -ac 1 -ar <rate> -f
// f32le -` and streams its stdout. ffmpeg stands in for the
// in-process decoder/resampler this corpus has no Go library for.
func decodeMonoPCM(ctx context.Context, path string, sampleRate uint32, maxDurationSec float32) (*pcmStream, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not available: %w", domain.ErrUnsupported)
	}

	args := []string{
		"-v", "quiet",
		"-i", path,
		"-map", "0:a:0",
		"-ac", "1",
		"-ar", strconv.FormatUint(uint64(sampleRate), 10),
	}
	if maxDurationSec > 0 {
		args = append(args, "-t", strconv.FormatFloat(float64(maxDurationSec), 'f', 3, 64))
	}
	args = append(args, "-f", "f32le", "-")

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting ffmpeg: %w", err)
	}
	return &pcmStream{cmd: cmd, stdout: stdout}, nil
}
