package ffmpeg

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"framecut/domain/clip"
)

// StreamInfo is what ffprobe reports about the first video stream.
type StreamInfo struct {
	Width      int
	Height     int
	FrameRate  float64
	Frames     int
	DurationS  float64
}

// Prober inspects containers with ffprobe so `info` works without the
// OpenCV build. The ffprobe binary is assumed to live beside ffmpeg.
type Prober struct {
	ffprobePath string
	runner      CommandRunner
}

// NewProber creates an ffprobe-backed prober.
func NewProber(ffprobePath string, runner CommandRunner) *Prober {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	if runner == nil {
		runner = &ExecCommandRunner{}
	}
	return &Prober{ffprobePath: ffprobePath, runner: runner}
}

// Probe reads frame count, frame rate, duration, and dimensions of the
// first video stream. Frame count falls back to duration × rate when the
// container omits nb_frames (common for matroska).
func (p *Prober) Probe(ctx context.Context, path string) (StreamInfo, error) {
	out, err := p.runner.Output(ctx, p.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,nb_frames,r_frame_rate,duration",
		"-of", "default=noprint_wrappers=1",
		path,
	)
	if err != nil {
		return StreamInfo{}, &clip.SourceOpenError{Path: path, Err: err}
	}

	info, err := parseProbeOutput(string(out))
	if err != nil {
		return StreamInfo{}, &clip.SourceOpenError{Path: path, Err: err}
	}
	return info, nil
}

func parseProbeOutput(out string) (StreamInfo, error) {
	fields := map[string]string{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, "=")
		if !ok || value == "N/A" {
			continue
		}
		fields[key] = value
	}
	if len(fields) == 0 {
		return StreamInfo{}, fmt.Errorf("no video stream found")
	}

	var info StreamInfo
	info.Width, _ = strconv.Atoi(fields["width"])
	info.Height, _ = strconv.Atoi(fields["height"])
	info.FrameRate = parseRate(fields["r_frame_rate"])
	info.DurationS, _ = strconv.ParseFloat(fields["duration"], 64)
	info.Frames, _ = strconv.Atoi(fields["nb_frames"])

	if info.Frames == 0 && info.DurationS > 0 && info.FrameRate > 0 {
		info.Frames = int(math.Round(info.DurationS * info.FrameRate))
	}
	if info.DurationS == 0 && info.Frames > 0 && info.FrameRate > 0 {
		info.DurationS = float64(info.Frames) / info.FrameRate
	}
	return info, nil
}

// parseRate handles ffprobe's rational form ("30000/1001") as well as
// plain decimals. Unreadable input yields 0; callers apply their fallback.
func parseRate(s string) float64 {
	if s == "" {
		return 0
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0
		}
		return n / d
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
