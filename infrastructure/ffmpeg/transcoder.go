package ffmpeg

import (
	"context"
	"os"

	"framecut/domain/clip"
)

// Transcoder implements clip.Transcoder by shelling out to ffmpeg.
type Transcoder struct {
	ffmpegPath string
	hardware   EncoderProfile
	software   EncoderProfile
	runner     CommandRunner
	stat       func(path string) (os.FileInfo, error)
}

// TranscoderOption is a functional option for configuring Transcoder.
type TranscoderOption func(*Transcoder)

// WithRunner sets a custom command runner (for testing).
func WithRunner(runner CommandRunner) TranscoderOption {
	return func(t *Transcoder) { t.runner = runner }
}

// WithHardwareProfile overrides the hardware encoder profile.
func WithHardwareProfile(p EncoderProfile) TranscoderOption {
	return func(t *Transcoder) { t.hardware = p }
}

// WithTranscoderStat overrides binary probing (for testing).
func WithTranscoderStat(fn func(string) (os.FileInfo, error)) TranscoderOption {
	return func(t *Transcoder) { t.stat = fn }
}

// NewTranscoder creates a transcoder bound to a located ffmpeg binary.
func NewTranscoder(ffmpegPath string, opts ...TranscoderOption) *Transcoder {
	t := &Transcoder{
		ffmpegPath: ffmpegPath,
		hardware:   DefaultHardwareProfile(),
		software:   DefaultSoftwareProfile(),
		runner:     &ExecCommandRunner{},
		stat:       os.Stat,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Trim implements clip.Transcoder.
func (t *Transcoder) Trim(ctx context.Context, req clip.Request) error {
	profile := t.software
	if req.Encoder == clip.EncoderHardware {
		profile = t.hardware
	}
	return t.run(ctx, req.Mode.String(), BuildTrimArgs(req, profile))
}

// ExportFrames implements clip.Transcoder. The output directory is created
// if absent; pre-existing contents are not cleared.
func (t *Transcoder) ExportFrames(ctx context.Context, req clip.Request) error {
	if err := os.MkdirAll(req.FramesDir(), 0755); err != nil {
		return &clip.JobExecutionError{Mode: "frames", Diagnostic: err.Error(), Err: err}
	}
	return t.run(ctx, "frames", BuildFrameArgs(req))
}

func (t *Transcoder) run(ctx context.Context, mode string, args []string) error {
	// The binary can vanish between the startup check and the job; report
	// that as its own failure class rather than a tool error.
	if _, err := t.stat(t.ffmpegPath); err != nil {
		return &clip.DependencyNotFoundError{Path: t.ffmpegPath}
	}

	stderr, err := t.runner.Run(ctx, t.ffmpegPath, args...)
	if err != nil {
		return &clip.JobExecutionError{Mode: mode, Diagnostic: Summarize(stderr), Err: err}
	}
	return nil
}

// VerifyInstalled checks that the bound ffmpeg binary runs.
func (t *Transcoder) VerifyInstalled(ctx context.Context) error {
	if _, err := t.runner.Output(ctx, t.ffmpegPath, "-version"); err != nil {
		return &clip.DependencyNotFoundError{Path: t.ffmpegPath}
	}
	return nil
}

// Ensure Transcoder implements clip.Transcoder
var _ clip.Transcoder = (*Transcoder)(nil)
