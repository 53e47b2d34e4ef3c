package session

import (
	"errors"
	"strings"
	"testing"

	"framecut/domain/clip"
)

// fakeSource counts Close calls so leak/double-release bugs show up.
type fakeSource struct {
	total      int
	rate       float64
	closeCalls int
	failAt     map[int]bool
}

func (f *fakeSource) TotalFrames() int   { return f.total }
func (f *fakeSource) FrameRate() float64 { return f.rate }

func (f *fakeSource) SeekAndFetch(index int) (clip.Frame, bool) {
	if index < 0 || index >= f.total || f.failAt[index] {
		return nil, false
	}
	return fakeFrame{}, true
}

func (f *fakeSource) Close() error {
	f.closeCalls++
	return nil
}

type fakeFrame struct{}

func (fakeFrame) Size() (int, int) { return 1920, 1080 }
func (fakeFrame) Close()           {}

type fakeOpener struct {
	sources map[string]*fakeSource
	failFor map[string]bool
}

func (f *fakeOpener) Open(path string) (clip.Source, error) {
	if f.failFor[path] {
		return nil, &clip.SourceOpenError{Path: path}
	}
	src, ok := f.sources[path]
	if !ok {
		return nil, &clip.SourceOpenError{Path: path}
	}
	return src, nil
}

type allExist struct{}

func (allExist) Exists(string) bool { return true }

func acceptVideo(path string) bool {
	return strings.HasSuffix(path, ".mp4") || strings.HasSuffix(path, ".mkv")
}

func newTestSession(opener clip.Opener) *Session {
	return New(opener, allExist{}, acceptVideo, "png")
}

func TestSessionLoad(t *testing.T) {
	src := &fakeSource{total: 500, rate: 30}
	s := newTestSession(&fakeOpener{sources: map[string]*fakeSource{"/v/a.mp4": src}})

	if err := s.Load("/v/a.mp4"); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !s.Loaded() || s.Path() != "/v/a.mp4" {
		t.Errorf("Loaded()=%v Path()=%q", s.Loaded(), s.Path())
	}
	if s.Selection().Total() != 500 {
		t.Errorf("selection total = %d, want 500", s.Selection().Total())
	}
	if s.FrameRate() != 30 {
		t.Errorf("FrameRate() = %v, want 30", s.FrameRate())
	}
}

func TestSessionLoadRejectsUnsupportedExtension(t *testing.T) {
	s := newTestSession(&fakeOpener{})
	err := s.Load("/v/notes.txt")
	var open *clip.SourceOpenError
	if !errors.As(err, &open) {
		t.Fatalf("Load() error = %v, want *SourceOpenError", err)
	}
}

func TestSessionReloadReleasesPriorExactlyOnce(t *testing.T) {
	first := &fakeSource{total: 100, rate: 30}
	second := &fakeSource{total: 200, rate: 24}
	s := newTestSession(&fakeOpener{sources: map[string]*fakeSource{
		"/v/a.mp4": first,
		"/v/b.mp4": second,
	}})

	if err := s.Load("/v/a.mp4"); err != nil {
		t.Fatal(err)
	}
	if err := s.Load("/v/b.mp4"); err != nil {
		t.Fatal(err)
	}

	if first.closeCalls != 1 {
		t.Errorf("prior handle Close calls = %d, want exactly 1", first.closeCalls)
	}
	if second.closeCalls != 0 {
		t.Errorf("new handle Close calls = %d, want 0", second.closeCalls)
	}
	if s.Selection().Total() != 200 {
		t.Errorf("selection total = %d, want new source's 200", s.Selection().Total())
	}
}

func TestSessionFailedLoadKeepsCurrentSource(t *testing.T) {
	src := &fakeSource{total: 100, rate: 30}
	s := newTestSession(&fakeOpener{
		sources: map[string]*fakeSource{"/v/a.mp4": src},
		failFor: map[string]bool{"/v/bad.mp4": true},
	})

	if err := s.Load("/v/a.mp4"); err != nil {
		t.Fatal(err)
	}
	if err := s.Load("/v/bad.mp4"); err == nil {
		t.Fatal("Load() expected error for bad source")
	}

	if src.closeCalls != 0 {
		t.Errorf("current handle was released on a failed load (%d closes)", src.closeCalls)
	}
	if s.Path() != "/v/a.mp4" {
		t.Errorf("Path() = %q, want previous source retained", s.Path())
	}
}

func TestSessionPreviewFrame(t *testing.T) {
	src := &fakeSource{total: 100, rate: 30, failAt: map[int]bool{50: true}}
	s := newTestSession(&fakeOpener{sources: map[string]*fakeSource{"/v/a.mp4": src}})
	if err := s.Load("/v/a.mp4"); err != nil {
		t.Fatal(err)
	}

	s.Selection().SetPosition(10)
	if _, ok := s.PreviewFrame(); !ok {
		t.Error("PreviewFrame() at decodable position should succeed")
	}

	s.Selection().SetPosition(50)
	if _, ok := s.PreviewFrame(); ok {
		t.Error("PreviewFrame() at failing position should report ok=false")
	}

	// Out-of-range fetch never panics, just reports failure.
	if _, ok := s.FrameAt(5000); ok {
		t.Error("FrameAt() out of range should report ok=false")
	}
}

func TestSessionSnapshot(t *testing.T) {
	src := &fakeSource{total: 500, rate: 29.97}
	s := newTestSession(&fakeOpener{sources: map[string]*fakeSource{"/v/a.mp4": src}})
	if err := s.Load("/v/a.mp4"); err != nil {
		t.Fatal(err)
	}
	s.Selection().SetStart(100)
	s.Selection().SetEnd(240)

	req, err := s.Snapshot(clip.EncoderHardware, clip.ModeTrim)
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}
	if req.Start != 100 || req.End != 240 {
		t.Errorf("snapshot bounds = [%d, %d], want [100, 240]", req.Start, req.End)
	}
	if req.FrameRate != 29.97 {
		t.Errorf("snapshot FrameRate = %v, want 29.97", req.FrameRate)
	}

	// Later selection edits must not leak into the snapshot.
	s.Selection().SetStart(1)
	if req.Start != 100 {
		t.Error("snapshot mutated by later selection change")
	}
}

func TestSessionSnapshotWithoutSource(t *testing.T) {
	s := newTestSession(&fakeOpener{})
	if _, err := s.Snapshot(clip.EncoderSoftware, clip.ModeTrim); !errors.Is(err, clip.ErrNoSource) {
		t.Errorf("Snapshot() error = %v, want ErrNoSource", err)
	}
}

func TestSessionCloseIdempotent(t *testing.T) {
	src := &fakeSource{total: 100, rate: 30}
	s := newTestSession(&fakeOpener{sources: map[string]*fakeSource{"/v/a.mp4": src}})
	if err := s.Load("/v/a.mp4"); err != nil {
		t.Fatal(err)
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if src.closeCalls != 1 {
		t.Errorf("Close calls = %d, want exactly 1", src.closeCalls)
	}
}
