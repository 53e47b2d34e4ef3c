package ffmpeg

import (
	"fmt"

	"framecut/domain/clip"
)

// EncoderProfile is the concrete codec configuration behind a
// clip.Encoder choice. The hardware profile is host-specific and comes
// from configuration; the software profile is the fixed high-quality path.
type EncoderProfile struct {
	Codec string
	// Bitrate drives hardware encoders ("12M"); ignored when CRF is set.
	Bitrate string
	// CRF and Preset drive the software encoder.
	CRF    string
	Preset string
}

// DefaultSoftwareProfile is the high-quality libx264 path.
func DefaultSoftwareProfile() EncoderProfile {
	return EncoderProfile{Codec: "libx264", CRF: "18", Preset: "slow"}
}

// DefaultHardwareProfile targets the VideoToolbox encode block; override
// via configuration on hosts with NVENC/QSV instead.
func DefaultHardwareProfile() EncoderProfile {
	return EncoderProfile{Codec: "h264_videotoolbox", Bitrate: "12M"}
}

func (p EncoderProfile) args() []string {
	args := []string{"-c:v", p.Codec}
	if p.CRF != "" {
		args = append(args, "-crf", p.CRF)
	}
	if p.Preset != "" {
		args = append(args, "-preset", p.Preset)
	}
	if p.Bitrate != "" {
		args = append(args, "-b:v", p.Bitrate)
	}
	return args
}

// selectFilter builds the frame-selection filtergraph shared by both modes:
// keep frames whose 0-based index n lies in the inclusive [start, end]
// range, then re-timestamp the survivors to a constant rate. Commas inside
// between() are backslash-escaped in both modes — the filtergraph parser
// treats bare commas as filter separators, and the args reach ffmpeg
// through exec with no shell, so this is the only escaping layer.
func selectFilter(start, end int) string {
	return fmt.Sprintf("select=between(n\\,%d\\,%d),setpts=N/FRAME_RATE/TB", start, end)
}

// BuildTrimArgs maps a trim snapshot to the complete ffmpeg argument list.
// Audio is dropped and the output is re-timestamped at the source's rate.
// The builder only constructs arguments; it never executes anything.
func BuildTrimArgs(req clip.Request, profile EncoderProfile) []string {
	args := []string{
		"-i", req.SourcePath,
		"-vf", selectFilter(req.Start, req.End),
		"-r", formatRate(req.FrameRate),
		"-vsync", "vfr",
		"-an",
	}
	args = append(args, profile.args()...)
	args = append(args, "-y", req.TrimOutputPath())
	return args
}

// BuildFrameArgs maps a still-export snapshot to the ffmpeg argument list
// writing frame_0001, frame_0002, … under req.FramesDir(). The caller
// creates the directory; pre-existing contents are left alone.
func BuildFrameArgs(req clip.Request) []string {
	return []string{
		"-i", req.SourcePath,
		"-vf", selectFilter(req.Start, req.End),
		"-vsync", "0",
		"-y", req.FramePattern(),
	}
}

// formatRate renders the rate without trailing zeros; a degenerate rate
// falls back to 30 so ffmpeg never sees "-r 0".
func formatRate(rate float64) string {
	if rate <= 0 {
		return "30"
	}
	if rate == float64(int(rate)) {
		return fmt.Sprintf("%d", int(rate))
	}
	return fmt.Sprintf("%g", rate)
}
