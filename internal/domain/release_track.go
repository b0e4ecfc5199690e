package domain

import "time"

// ReleaseTrack is the physical instance of a Song inside a Release:
// track/disc position within the release, the associated file, and
// technical details. One Song may back many ReleaseTracks.
type ReleaseTrack struct {
	ID ReleaseTrackID

	SongID    SongID
	ReleaseID ReleaseID

	TrackNumber uint32
	DiscNumber  uint32

	// TitleOverride renames the track for this release only (e.g.
	// "Remastered", "Radio Edit").
	TitleOverride *string

	// ArtistCredits attributes this specific track to artists beyond
	// the release's MainArtistIDs (e.g. a guest remixer on one track
	// of an otherwise single-artist release).
	ArtistCredits []ReleaseTrackArtistCredit

	AudioDetails AudioDetails
	FileDetails  FileDetails
}

// AudioDetails describes the technical characteristics of the audio
// content itself, not the file on disk.
type AudioDetails struct {
	Duration time.Duration

	BitrateKbps  *uint32
	SampleRateHz *uint32
	Channels     *uint8

	Analysis *AudioAnalysis

	// Fingerprint is an acoustic fingerprint (AcoustID/Chromaprint).
	Fingerprint *string
}

// AudioAnalysis is the result of deeper, optional audio analysis:
// perceptual quality, feature vectors, detected tempo.
type AudioAnalysis struct {
	Quality  *AudioQuality
	Features []float32
	BPM      *float32
}

// AudioQuality is the scalar quality measure plus, when it comes from
// the Spectral Analyzer, the structured AudioQualityReport. Only Score
// and Assessment are persisted; Outcome and Report are not stored.
type AudioQuality struct {
	Score      float32
	Assessment string

	// Report is the full structured output of the Spectral Analyzer;
	// Outcome identifies which branch produced it. Both are optional
	// because AudioQuality may also be constructed by hand (tests,
	// manual overrides) without a spectral pass.
	Outcome AnalysisOutcome
	Report  *AudioQualityReport
}

// AnalysisOutcomeKind distinguishes the three shapes a spectral pass
// can resolve to.
type AnalysisOutcomeKind int

const (
	OutcomeCutoffDetected AnalysisOutcomeKind = iota
	OutcomeNoCutoffDetected
	OutcomeInconclusive
)

// AnalysisOutcome is the result of the reverse-scan cutoff detector.
type AnalysisOutcome struct {
	Kind AnalysisOutcomeKind

	// Populated when Kind == OutcomeCutoffDetected.
	CutoffFreqHz float32
	CutoffRefDB  float32
	CutoffCutDB  float32

	// Populated when Kind == OutcomeNoCutoffDetected.
	MaxFreqHz float32
	MaxRefDB  float32

	// Populated when Kind == OutcomeInconclusive.
	Reason string
}

// QualityLevel buckets a numeric score into a human-facing tier.
type QualityLevel int

const (
	QualityPerfect QualityLevel = iota
	QualityHigh
	QualityMedium
	QualityLow
	QualityInconclusive
)

func (q QualityLevel) String() string {
	switch q {
	case QualityPerfect:
		return "perfect"
	case QualityHigh:
		return "high"
	case QualityMedium:
		return "medium"
	case QualityLow:
		return "low"
	default:
		return "inconclusive"
	}
}

// AudioQualityReport is the structured, human-readable explanation of
// a quality score: level, label, summary, and the frequency evidence
// that produced it.
type AudioQualityReport struct {
	Level   QualityLevel
	Score   float32
	Label   string
	Summary string
	Details *string

	CutoffFreqHz *float32
	MaxFreqHz    *float32
}

// FileDetails describes the file on disk backing a ReleaseTrack, not
// its musical content.
type FileDetails struct {
	// Path is always absolute.
	Path string

	SizeBytes uint64

	// ModifiedUnix is the file's mtime, seconds since epoch. Used to
	// detect changes and decide whether a re-scan is needed.
	ModifiedUnix uint64
}
