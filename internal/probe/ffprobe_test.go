package probe

import (
	"encoding/json"
	"testing"
)

func TestIntOrStringUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "integer value", input: `{"value": 16}`, expected: 16},
		{name: "string integer", input: `{"value": "24"}`, expected: 24},
		{name: "N/A string", input: `{"value": "N/A"}`, expected: 0},
		{name: "empty string", input: `{"value": ""}`, expected: 0},
		{name: "zero", input: `{"value": 0}`, expected: 0},
		{name: "invalid string", input: `{"value": "invalid"}`, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result struct {
				Value IntOrString `json:"value"`
			}
			if err := json.Unmarshal([]byte(tt.input), &result); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if result.Value.Value != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result.Value.Value)
			}
		})
	}
}

func TestFFprobeStreamUnmarshal(t *testing.T) {
	jsonData := `{
		"index": 0,
		"codec_name": "pcm_s16le",
		"codec_type": "audio",
		"sample_rate": "44100",
		"channels": 2,
		"channel_layout": "stereo",
		"bits_per_sample": 16,
		"bits_per_raw_sample": "N/A",
		"duration": "180.5",
		"bit_rate": "1411200"
	}`

	var stream FFprobeStream
	if err := json.Unmarshal([]byte(jsonData), &stream); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if stream.CodecName != "pcm_s16le" {
		t.Errorf("expected codec_name pcm_s16le, got %s", stream.CodecName)
	}
	if stream.SampleRate != 44100 {
		t.Errorf("expected sample_rate 44100, got %d", stream.SampleRate)
	}
	if stream.BitsPerSample.Value != 16 {
		t.Errorf("expected bits_per_sample 16, got %d", stream.BitsPerSample.Value)
	}
	if stream.BitsPerRawSample.Value != 0 {
		t.Errorf("expected bits_per_raw_sample 0 from N/A, got %d", stream.BitsPerRawSample.Value)
	}
}

func TestBestAudioStream(t *testing.T) {
	info := &FFprobeInfo{
		Streams: []FFprobeStream{
			{Index: 0, CodecType: "video", CodecName: "h264"},
			{Index: 1, CodecType: "audio", CodecName: "flac"},
		},
	}

	stream, ok := info.BestAudioStream()
	if !ok {
		t.Fatal("expected an audio stream")
	}
	if stream.CodecName != "flac" {
		t.Errorf("expected flac, got %s", stream.CodecName)
	}
}

func TestBestAudioStreamNone(t *testing.T) {
	info := &FFprobeInfo{Streams: []FFprobeStream{{CodecType: "video"}}}
	if _, ok := info.BestAudioStream(); ok {
		t.Fatal("expected no audio stream")
	}
}
