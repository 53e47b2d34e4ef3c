package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"framecut/domain/clip"
	"framecut/infrastructure/config"
	"framecut/infrastructure/ffmpeg"
)

// locateFFmpegOrExit resolves the transcoder binary. When it is missing,
// the user is pointed at the download page and the process exits cleanly
// with status 0 — the deliberate startup behavior, not a failure.
func locateFFmpegOrExit(cfg *config.Config, out io.Writer) string {
	path, err := ffmpeg.NewLocator().Locate(cfg.FFmpeg.Path)
	if err != nil {
		var missing *clip.DependencyMissingError
		if errors.As(err, &missing) {
			fmt.Fprintf(out, "ffmpeg is required but was not found.\n")
			fmt.Fprintf(out, "Download it from %s and either place it on your PATH\n", missing.DownloadURL)
			fmt.Fprintf(out, "or next to the framecut executable, then try again.\n")
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return path
}

// newTranscoder binds the configured hardware profile to a located binary.
func newTranscoder(cfg *config.Config, ffmpegPath string) *ffmpeg.Transcoder {
	return ffmpeg.NewTranscoder(ffmpegPath,
		ffmpeg.WithHardwareProfile(ffmpeg.EncoderProfile{
			Codec:   cfg.FFmpeg.HardwareCodec,
			Bitrate: cfg.FFmpeg.HardwareBitrate,
		}),
	)
}

// probeForPath builds a prober whose ffprobe sits beside the located
// ffmpeg binary; a bare "ffmpeg" resolves ffprobe from the search path.
func probeForPath(ffmpegPath string) *ffmpeg.Prober {
	dir := filepath.Dir(ffmpegPath)
	if dir == "." || dir == "" {
		return ffmpeg.NewProber("", nil)
	}
	name := "ffprobe"
	if runtime.GOOS == "windows" {
		name = "ffprobe.exe"
	}
	return ffmpeg.NewProber(filepath.Join(dir, name), nil)
}

// presentJobError routes a failed job to the right presentation: execution
// failures get their scraped diagnostic as an error log, a vanished binary
// gets its own message, validation failures read as-is.
func presentJobError(err error, out io.Writer) {
	var execErr *clip.JobExecutionError
	if errors.As(err, &execErr) {
		fmt.Fprintf(out, "Job failed (%s):\n", execErr.Mode)
		for _, line := range strings.Split(execErr.Diagnostic, "\n") {
			fmt.Fprintf(out, "  | %s\n", line)
		}
		return
	}

	var gone *clip.DependencyNotFoundError
	if errors.As(err, &gone) {
		fmt.Fprintf(out, "ffmpeg disappeared before the job could run: %s\n", gone.Path)
		return
	}

	fmt.Fprintln(out, err)
}

// spinner animates the modal-style progress line for a running job. The
// line is always cleared, success or failure.
type spinner struct {
	out    io.Writer
	label  string
	states []string
	step   int
}

func newSpinner(out io.Writer, label string) *spinner {
	return &spinner{out: out, label: label, states: []string{"|", "/", "-", "\\"}}
}

func (s *spinner) Tick() {
	fmt.Fprintf(s.out, "\r%s %s", s.label, s.states[s.step%len(s.states)])
	s.step++
}

func (s *spinner) Dismiss() {
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.label)+2))
}
