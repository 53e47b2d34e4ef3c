package clip

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Mode selects what a job produces from the chosen frame range.
type Mode int

const (
	// ModeTrim writes a trimmed copy of the source video.
	ModeTrim Mode = iota
	// ModeFrames writes each selected frame as a numbered still image.
	ModeFrames
)

// String returns the mode name used in output and logs.
func (m Mode) String() string {
	switch m {
	case ModeTrim:
		return "trim"
	case ModeFrames:
		return "frames"
	default:
		return "unknown"
	}
}

// Encoder is the encoding profile for trim jobs.
type Encoder int

const (
	// EncoderSoftware is the high-quality libx264 profile.
	EncoderSoftware Encoder = iota
	// EncoderHardware offloads to a dedicated video-encode device.
	EncoderHardware
)

// ParseEncoder maps a user-supplied profile name to an Encoder.
func ParseEncoder(name string) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "software", "sw":
		return EncoderSoftware, nil
	case "hardware", "hw":
		return EncoderHardware, nil
	default:
		return EncoderSoftware, &InputValidationError{
			Field:  "encoder",
			Reason: fmt.Sprintf("unknown encoder profile %q (use hardware or software)", name),
		}
	}
}

// String returns the profile name.
func (e Encoder) String() string {
	if e == EncoderHardware {
		return "hardware"
	}
	return "software"
}

// Request is an immutable snapshot of everything a job needs, captured at
// the moment the user invokes the action. Jobs read only this snapshot;
// later edits to the live Selection cannot affect a running or chained job.
type Request struct {
	SourcePath string
	Start      int
	End        int
	FrameRate  float64
	Encoder    Encoder
	Mode       Mode
	// ImageExt is the still-image extension without dot, e.g. "png".
	ImageExt string
}

// NewRequest validates and builds a job snapshot from the current selection
// state. Start/end follow the Selection invariants: 0 ≤ start < end.
func NewRequest(sourcePath string, start, end int, frameRate float64, encoder Encoder, mode Mode, imageExt string) (Request, error) {
	if sourcePath == "" {
		return Request{}, &InputValidationError{Field: "source", Reason: "source path is required"}
	}
	if start < 0 {
		return Request{}, &InputValidationError{Field: "start", Reason: fmt.Sprintf("start frame %d must not be negative", start)}
	}
	if end <= start {
		return Request{}, &InputValidationError{Field: "end", Reason: fmt.Sprintf("end frame %d must be greater than start frame %d", end, start)}
	}
	if imageExt == "" {
		imageExt = "png"
	}
	return Request{
		SourcePath: sourcePath,
		Start:      start,
		End:        end,
		FrameRate:  frameRate,
		Encoder:    encoder,
		Mode:       mode,
		ImageExt:   strings.TrimPrefix(imageExt, "."),
	}, nil
}

// TrimOutputPath returns the trimmed-copy destination beside the source:
// <dir>/<basename>_trim_<start>_<end>.<ext>, keeping the source container.
func (r Request) TrimOutputPath() string {
	dir := filepath.Dir(r.SourcePath)
	ext := filepath.Ext(r.SourcePath)
	base := strings.TrimSuffix(filepath.Base(r.SourcePath), ext)
	return filepath.Join(dir, fmt.Sprintf("%s_trim_%d_%d%s", base, r.Start, r.End, ext))
}

// FramesDir returns the still-export directory beside the source:
// <dir>/frames_trim_<start>_<end>.
func (r Request) FramesDir() string {
	return filepath.Join(filepath.Dir(r.SourcePath), fmt.Sprintf("frames_trim_%d_%d", r.Start, r.End))
}

// FramePattern returns the ffmpeg output pattern for still export. ffmpeg
// numbers %04d sequences from 1, giving frame_0001, frame_0002, …
func (r Request) FramePattern() string {
	return filepath.Join(r.FramesDir(), "frame_%04d."+r.ImageExt)
}

// WithMode returns a copy of the snapshot with a different mode, used when
// a trim job's completion chains the still export for the same bounds.
func (r Request) WithMode(mode Mode) Request {
	r.Mode = mode
	return r
}
