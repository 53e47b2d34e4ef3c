package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"framecut/domain/clip"
	"framecut/domain/job"
)

// mockTranscoder records invocations for verification.
type mockTranscoder struct {
	mu          sync.Mutex
	trims       []clip.Request
	frameRuns   []clip.Request
	trimErr     error
	framesErr   error
}

func (m *mockTranscoder) Trim(ctx context.Context, req clip.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.trimErr != nil {
		return m.trimErr
	}
	m.trims = append(m.trims, req)
	return nil
}

func (m *mockTranscoder) ExportFrames(ctx context.Context, req clip.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.framesErr != nil {
		return m.framesErr
	}
	m.frameRuns = append(m.frameRuns, req)
	return nil
}

func (m *mockTranscoder) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.trims), len(m.frameRuns)
}

func testRequest(t *testing.T, mode clip.Mode) clip.Request {
	t.Helper()
	req, err := clip.NewRequest("/videos/take.mp4", 100, 240, 30, clip.EncoderSoftware, mode, "png")
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestRunTrimOnly(t *testing.T) {
	tr := &mockTranscoder{}
	var out bytes.Buffer
	svc := NewService(tr, job.NewRunner(), &out)

	result, err := svc.Run(context.Background(), testRequest(t, clip.ModeTrim), false, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	trims, frames := tr.counts()
	if trims != 1 || frames != 0 {
		t.Errorf("invocations = (%d trims, %d frame runs), want (1, 0)", trims, frames)
	}
	if !strings.HasSuffix(result.TrimPath, "take_trim_100_240.mp4") {
		t.Errorf("TrimPath = %q", result.TrimPath)
	}
	if !strings.Contains(out.String(), "Created:") {
		t.Errorf("output = %q, want creation line", out.String())
	}
}

func TestRunTrimChainsFrames(t *testing.T) {
	tr := &mockTranscoder{}
	var out bytes.Buffer
	svc := NewService(tr, job.NewRunner(), &out)

	result, err := svc.Run(context.Background(), testRequest(t, clip.ModeTrim), true, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	trims, frames := tr.counts()
	if trims != 1 || frames != 1 {
		t.Fatalf("invocations = (%d trims, %d frame runs), want (1, 1)", trims, frames)
	}

	// The chained job carries the trim job's captured bounds.
	chained := tr.frameRuns[0]
	if chained.Start != 100 || chained.End != 240 {
		t.Errorf("chained bounds = [%d, %d], want [100, 240]", chained.Start, chained.End)
	}
	if chained.Mode != clip.ModeFrames {
		t.Errorf("chained Mode = %v, want ModeFrames", chained.Mode)
	}
	if !strings.HasSuffix(result.FramesDir, "frames_trim_100_240") {
		t.Errorf("FramesDir = %q", result.FramesDir)
	}
}

func TestRunFramesOnly(t *testing.T) {
	tr := &mockTranscoder{}
	svc := NewService(tr, job.NewRunner(), &bytes.Buffer{})

	result, err := svc.Run(context.Background(), testRequest(t, clip.ModeFrames), false, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	trims, frames := tr.counts()
	if trims != 0 || frames != 1 {
		t.Errorf("invocations = (%d trims, %d frame runs), want (0, 1)", trims, frames)
	}
	if result.FramesDir == "" {
		t.Error("FramesDir not reported")
	}
}

func TestRunTrimFailureDoesNotChain(t *testing.T) {
	execErr := &clip.JobExecutionError{Mode: "trim", Diagnostic: "Conversion failed!", Err: errors.New("exit status 1")}
	tr := &mockTranscoder{trimErr: execErr}
	svc := NewService(tr, job.NewRunner(), &bytes.Buffer{})

	_, err := svc.Run(context.Background(), testRequest(t, clip.ModeTrim), true, nil)
	var jobErr *clip.JobExecutionError
	if !errors.As(err, &jobErr) {
		t.Fatalf("Run() error = %v, want *JobExecutionError", err)
	}
	if jobErr.Diagnostic == "" {
		t.Error("failure must surface diagnostic text")
	}

	_, frames := tr.counts()
	if frames != 0 {
		t.Errorf("frame runs after failed trim = %d, want 0", frames)
	}
}

func TestRunNoRetries(t *testing.T) {
	execErr := &clip.JobExecutionError{Mode: "frames", Diagnostic: "disk full", Err: errors.New("exit status 1")}
	tr := &mockTranscoder{framesErr: execErr}
	svc := NewService(tr, job.NewRunner(), &bytes.Buffer{})

	_, err := svc.Run(context.Background(), testRequest(t, clip.ModeFrames), false, nil)
	if err == nil {
		t.Fatal("Run() expected error")
	}

	trims, frames := tr.counts()
	if trims != 0 || frames != 0 {
		t.Errorf("successful invocations after failure = (%d, %d), want none (no retries)", trims, frames)
	}
}
