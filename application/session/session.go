// Package session holds the state the interactive surface operates on: the
// open source handle, the scrub selection, and the loaded path. It is an
// explicit context object passed to callbacks, not ambient globals, and it
// is only ever touched from the interactive goroutine.
package session

import (
	"fmt"

	"framecut/domain/clip"
)

// Session owns at most one open source at a time.
type Session struct {
	opener     clip.Opener
	checker    clip.FileChecker
	accepts    func(path string) bool
	imageExt   string
	source     clip.Source
	path       string
	selection  *clip.Selection
}

// New creates an empty session. accepts filters load paths by container
// extension (nil accepts everything); imageExt is the still-export format.
func New(opener clip.Opener, checker clip.FileChecker, accepts func(path string) bool, imageExt string) *Session {
	return &Session{
		opener:    opener,
		checker:   checker,
		accepts:   accepts,
		imageExt:  imageExt,
		selection: clip.NewSelection(1),
	}
}

// Selection returns the scrub model. The same instance survives reloads so
// registered listeners stay attached.
func (s *Session) Selection() *clip.Selection { return s.selection }

// Path returns the loaded source path, or "" before the first Load.
func (s *Session) Path() string { return s.path }

// Loaded reports whether a source is open.
func (s *Session) Loaded() bool { return s.source != nil }

// FrameRate returns the open source's nominal rate, or 0 when nothing is
// loaded.
func (s *Session) FrameRate() float64 {
	if s.source == nil {
		return 0
	}
	return s.source.FrameRate()
}

// Load opens path as the session's source. On success the previous handle
// is released exactly once and the selection is re-clamped to the new frame
// count; on failure the previous source stays loaded and untouched.
func (s *Session) Load(path string) error {
	if s.accepts != nil && !s.accepts(path) {
		return &clip.SourceOpenError{Path: path, Err: fmt.Errorf("unsupported container extension")}
	}
	if s.checker != nil && !s.checker.Exists(path) {
		return &clip.SourceOpenError{Path: path, Err: fmt.Errorf("file does not exist")}
	}

	source, err := s.opener.Open(path)
	if err != nil {
		return err
	}

	previous := s.source
	s.source = source
	s.path = path
	if previous != nil {
		previous.Close()
	}

	s.selection.SetTotal(source.TotalFrames())
	s.selection.SetPosition(0)
	return nil
}

// PreviewFrame fetches the frame at the current scrub position. ok=false
// means the position is undecodable; the caller keeps the last good image.
func (s *Session) PreviewFrame() (clip.Frame, bool) {
	if s.source == nil {
		return nil, false
	}
	return s.source.SeekAndFetch(s.selection.Position())
}

// FrameAt fetches an arbitrary frame index without moving the scrub
// position.
func (s *Session) FrameAt(index int) (clip.Frame, bool) {
	if s.source == nil {
		return nil, false
	}
	return s.source.SeekAndFetch(index)
}

// Snapshot captures the immutable job request from the current selection.
// The returned Request is what jobs run against; later selection changes
// cannot reach it.
func (s *Session) Snapshot(encoder clip.Encoder, mode clip.Mode) (clip.Request, error) {
	if s.source == nil {
		return clip.Request{}, clip.ErrNoSource
	}
	return clip.NewRequest(
		s.path,
		s.selection.Start(),
		s.selection.End(),
		s.source.FrameRate(),
		encoder,
		mode,
		s.imageExt,
	)
}

// Close releases the source handle. Idempotent; called on reload paths via
// Load and once more at shutdown.
func (s *Session) Close() error {
	if s.source == nil {
		return nil
	}
	err := s.source.Close()
	s.source = nil
	s.path = ""
	return err
}
