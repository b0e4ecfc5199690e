package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/cismu/gamus/internal/domain"
)

// FFprobeInfo is the subset of ffprobe's JSON output this probe reads.
type FFprobeInfo struct {
	Streams []FFprobeStream `json:"streams"`
	Format  *FFprobeFormat  `json:"format"`
}

// IntOrString unmarshals JSON fields ffprobe sometimes renders as a
// quoted string (e.g. "N/A") and sometimes as a bare integer.
type IntOrString struct {
	Value int
}

func (i *IntOrString) UnmarshalJSON(data []byte) error {
	var intVal int
	if err := json.Unmarshal(data, &intVal); err == nil {
		i.Value = intVal
		return nil
	}

	var strVal string
	if err := json.Unmarshal(data, &strVal); err != nil {
		return err
	}
	if strVal == "" || strVal == "N/A" {
		i.Value = 0
		return nil
	}
	parsed, err := strconv.Atoi(strVal)
	if err != nil {
		i.Value = 0
		return nil
	}
	i.Value = parsed
	return nil
}

// FFprobeStream is one stream entry, audio fields only.
type FFprobeStream struct {
	Index            int         `json:"index"`
	CodecName        string      `json:"codec_name"`
	CodecType        string      `json:"codec_type"`
	SampleRate       int         `json:"sample_rate,string"`
	Channels         int         `json:"channels"`
	ChannelLayout    string      `json:"channel_layout"`
	BitsPerSample    IntOrString `json:"bits_per_sample"`
	BitsPerRawSample IntOrString `json:"bits_per_raw_sample"`
	Duration         string      `json:"duration"`
	BitRate          string      `json:"bit_rate"`
}

// FFprobeFormat is the container-level block.
type FFprobeFormat struct {
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	BitRate    string            `json:"bit_rate"`
	Tags       map[string]string `json:"tags"`
}

// RunFFprobe execs ffprobe and parses its JSON output. Returns
// domain.ErrUnsupported when the binary is missing or the file isn't
// a container ffprobe recognizes.
func RunFFprobe(ctx context.Context, path string) (*FFprobeInfo, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return nil, fmt.Errorf("ffprobe not available: %w", domain.ErrUnsupported)
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffprobe failed: %s: %w", string(exitErr.Stderr), domain.ErrUnsupported)
		}
		return nil, fmt.Errorf("ffprobe execution failed: %w", err)
	}

	var info FFprobeInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("parsing ffprobe output: %w", domain.ErrCorrupt)
	}

	return &info, nil
}

// BestAudioStream returns the first audio stream, if any.
func (i *FFprobeInfo) BestAudioStream() (FFprobeStream, bool) {
	for _, s := range i.Streams {
		if s.CodecType == "audio" {
			return s, true
		}
	}
	return FFprobeStream{}, false
}
