package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"framecut/domain/clip"
)

func statAlways(string) (os.FileInfo, error) { return nil, nil }
func statNever(string) (os.FileInfo, error)  { return nil, errNotFound }

func TestTranscoderTrimInvokesFFmpeg(t *testing.T) {
	runner := &stubRunner{}
	tr := NewTranscoder("/usr/bin/ffmpeg", WithRunner(runner), WithTranscoderStat(statAlways))

	req, err := clip.NewRequest("/videos/take.mp4", 100, 240, 30, clip.EncoderSoftware, clip.ModeTrim, "png")
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.Trim(context.Background(), req); err != nil {
		t.Fatalf("Trim() error: %v", err)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("got %d invocations, want 1", len(runner.calls))
	}
	call := runner.calls[0]
	if call[0] != "/usr/bin/ffmpeg" {
		t.Errorf("binary = %q, want located ffmpeg", call[0])
	}
	joined := strings.Join(call, " ")
	if !strings.Contains(joined, `between(n\,100\,240)`) {
		t.Errorf("invocation %q missing frame-selection predicate", joined)
	}
}

func TestTranscoderHardwareProfileOverride(t *testing.T) {
	runner := &stubRunner{}
	tr := NewTranscoder("/usr/bin/ffmpeg",
		WithRunner(runner),
		WithTranscoderStat(statAlways),
		WithHardwareProfile(EncoderProfile{Codec: "h264_nvenc", Bitrate: "8M"}),
	)

	req, err := clip.NewRequest("/videos/take.mp4", 0, 10, 30, clip.EncoderHardware, clip.ModeTrim, "png")
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.Trim(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	joined := strings.Join(runner.calls[0], " ")
	if !strings.Contains(joined, "h264_nvenc") {
		t.Errorf("invocation %q missing configured hardware codec", joined)
	}
}

func TestTranscoderFailureCarriesDiagnostic(t *testing.T) {
	runner := &stubRunner{
		stderr: "ffmpeg version 6.0\n[mp4 @ 0x1] Error opening output\n",
		runErr: errors.New("exit status 1"),
	}
	tr := NewTranscoder("/usr/bin/ffmpeg", WithRunner(runner), WithTranscoderStat(statAlways))

	req, err := clip.NewRequest("/videos/take.mp4", 0, 10, 30, clip.EncoderSoftware, clip.ModeTrim, "png")
	if err != nil {
		t.Fatal(err)
	}

	trimErr := tr.Trim(context.Background(), req)
	var jobErr *clip.JobExecutionError
	if !errors.As(trimErr, &jobErr) {
		t.Fatalf("Trim() error = %v, want *JobExecutionError", trimErr)
	}
	if !strings.Contains(jobErr.Diagnostic, "Error opening output") {
		t.Errorf("Diagnostic = %q, want scraped error line", jobErr.Diagnostic)
	}
	if jobErr.Diagnostic == "" {
		t.Error("failed job must surface at least one diagnostic line")
	}
}

func TestTranscoderVanishedBinaryIsDistinctError(t *testing.T) {
	runner := &stubRunner{}
	tr := NewTranscoder("/usr/bin/ffmpeg", WithRunner(runner), WithTranscoderStat(statNever))

	req, err := clip.NewRequest("/videos/take.mp4", 0, 10, 30, clip.EncoderSoftware, clip.ModeTrim, "png")
	if err != nil {
		t.Fatal(err)
	}

	trimErr := tr.Trim(context.Background(), req)
	var gone *clip.DependencyNotFoundError
	if !errors.As(trimErr, &gone) {
		t.Fatalf("Trim() error = %v, want *DependencyNotFoundError", trimErr)
	}
	var jobErr *clip.JobExecutionError
	if errors.As(trimErr, &jobErr) {
		t.Error("vanished binary must not be classified as a job execution failure")
	}
	if len(runner.calls) != 0 {
		t.Error("tool must not be invoked when the binary is gone")
	}
}

func TestTranscoderExportFramesCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	runner := &stubRunner{}
	tr := NewTranscoder("/usr/bin/ffmpeg", WithRunner(runner), WithTranscoderStat(statAlways))

	source := filepath.Join(dir, "take.mp4")
	req, err := clip.NewRequest(source, 100, 240, 30, clip.EncoderSoftware, clip.ModeFrames, "png")
	if err != nil {
		t.Fatal(err)
	}

	// Pre-existing content must survive the export.
	if err := os.MkdirAll(req.FramesDir(), 0755); err != nil {
		t.Fatal(err)
	}
	keep := filepath.Join(req.FramesDir(), "keep.txt")
	if err := os.WriteFile(keep, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := tr.ExportFrames(context.Background(), req); err != nil {
		t.Fatalf("ExportFrames() error: %v", err)
	}

	if _, err := os.Stat(req.FramesDir()); err != nil {
		t.Errorf("frames dir missing: %v", err)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Errorf("pre-existing file was removed: %v", err)
	}

	joined := strings.Join(runner.calls[0], " ")
	if !strings.Contains(joined, filepath.Join("frames_trim_100_240", "frame_%04d.png")) {
		t.Errorf("invocation %q missing numbered frame pattern", joined)
	}
}
