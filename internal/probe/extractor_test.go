package probe

import (
	"context"
	"testing"

	"github.com/cismu/gamus/internal/domain"
	"github.com/cismu/gamus/internal/spectral"
)

func TestTitleFromFilenameStripsExtension(t *testing.T) {
	got := titleFromFilename("/music/Artist/Album/07 Track Name.flac")
	if got != "07 Track Name" {
		t.Errorf("expected '07 Track Name', got %q", got)
	}
}

func TestAlbumFromParentDir(t *testing.T) {
	got := albumFromParentDir("/music/Artist/Greatest Hits/01 Intro.mp3")
	if got != "Greatest Hits" {
		t.Errorf("expected 'Greatest Hits', got %q", got)
	}
}

func TestAlbumFromParentDirAtRoot(t *testing.T) {
	got := albumFromParentDir("/track.mp3")
	if got != "" {
		t.Errorf("expected empty album at filesystem root, got %q", got)
	}
}

func TestClassifyGenreTagKnownGenre(t *testing.T) {
	genres, styles := classifyGenreTag("Rock")
	if len(genres) != 1 || len(styles) != 0 {
		t.Fatalf("expected 1 genre 0 styles, got %d genres %d styles", len(genres), len(styles))
	}
}

func TestClassifyGenreTagUnknownFallsBackToStyle(t *testing.T) {
	genres, styles := classifyGenreTag("Vaporwave")
	if len(genres) != 0 || len(styles) != 1 {
		t.Fatalf("expected 0 genres 1 style, got %d genres %d styles", len(genres), len(styles))
	}
	if !styles[0].IsCustom() || styles[0].Custom() != "Vaporwave" {
		t.Errorf("expected custom style Vaporwave, got %+v", styles[0])
	}
}

func TestClassifyGenreTagMixedList(t *testing.T) {
	genres, styles := classifyGenreTag("Rock;Synth-pop")
	if len(genres) != 1 {
		t.Fatalf("expected 1 genre, got %d", len(genres))
	}
	if len(styles) != 1 || styles[0].IsCustom() {
		t.Fatalf("expected 1 recognized style, got %+v", styles)
	}
}

func TestBuildReleaseDefaultsToAlbum(t *testing.T) {
	release := buildRelease("Greatest Hits", nil, map[string]string{"date": "1999"})
	if release.Title != "Greatest Hits" {
		t.Errorf("expected title Greatest Hits, got %q", release.Title)
	}
	if len(release.ReleaseType) != 1 || release.ReleaseType[0].String() != "Album" {
		t.Errorf("expected default release type Album, got %+v", release.ReleaseType)
	}
	if release.ReleaseDate == nil || *release.ReleaseDate != "1999" {
		t.Errorf("expected release date 1999, got %v", release.ReleaseDate)
	}
}

func TestBuildTrackParsesTrackAndDiscNumbers(t *testing.T) {
	tags := map[string]string{"track": "4/10", "disc": "1/2"}
	track := buildTrack("/nonexistent/file.mp3", tags, nil)

	if track.TrackNumber != 4 {
		t.Errorf("expected track number 4, got %d", track.TrackNumber)
	}
	if track.DiscNumber != 1 {
		t.Errorf("expected disc number 1, got %d", track.DiscNumber)
	}
}

func TestBuildTrackUsesAudioStreamDetails(t *testing.T) {
	info := &FFprobeInfo{
		Streams: []FFprobeStream{
			{CodecType: "audio", CodecName: "flac", SampleRate: 44100, Channels: 2, BitRate: "900000", Duration: "123.45"},
		},
	}

	track := buildTrack("/nonexistent/file.flac", map[string]string{}, info)

	if track.AudioDetails.SampleRateHz == nil || *track.AudioDetails.SampleRateHz != 44100 {
		t.Errorf("expected sample rate 44100, got %v", track.AudioDetails.SampleRateHz)
	}
	if track.AudioDetails.Channels == nil || *track.AudioDetails.Channels != 2 {
		t.Errorf("expected 2 channels, got %v", track.AudioDetails.Channels)
	}
	if track.AudioDetails.BitrateKbps == nil || *track.AudioDetails.BitrateKbps != 900 {
		t.Errorf("expected bitrate 900kbps, got %v", track.AudioDetails.BitrateKbps)
	}
	if track.AudioDetails.Duration.Seconds() < 123 || track.AudioDetails.Duration.Seconds() > 124 {
		t.Errorf("expected duration ~123.45s, got %v", track.AudioDetails.Duration)
	}
}

func TestAttachAnalysisSwallowsFailureOnUnprobeableFile(t *testing.T) {
	e := NewWithAnalyzer(spectral.NewDefault())
	track := &domain.ReleaseTrack{}

	e.attachAnalysis(context.Background(), "/nonexistent/file.flac", track)

	if track.AudioDetails.Analysis != nil {
		t.Errorf("expected no analysis to be attached when ffprobe fails, got %+v", track.AudioDetails.Analysis)
	}
}

func TestExtractorWithoutAnalyzerLeavesAnalysisNil(t *testing.T) {
	e := New()
	if e.analyzer != nil {
		t.Error("expected New() to build an Extractor with no analyzer configured")
	}
}

func TestIsLosslessCodec(t *testing.T) {
	cases := map[string]bool{
		"flac":      true,
		"alac":      true,
		"pcm_s16le": true,
		"mp3":       false,
		"aac":       false,
	}
	for codec, want := range cases {
		if got := isLosslessCodec(codec); got != want {
			t.Errorf("isLosslessCodec(%q) = %v, want %v", codec, got, want)
		}
	}
}
