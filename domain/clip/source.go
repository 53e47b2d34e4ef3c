package clip

import (
	"context"
	"image"
)

// Frame is one decoded image. Implementations may hold native decoder
// memory; callers must Close every fetched frame.
type Frame interface {
	// Size returns the native width and height in pixels.
	Size() (width, height int)
	// Close releases the underlying pixel buffer. Idempotent.
	Close()
}

// Source is an open, seekable video resource.
// This is a port implemented by the capture adapter.
type Source interface {
	// TotalFrames returns the container's frame count (≥ 0).
	TotalFrames() int
	// FrameRate returns the nominal frame rate; may be non-positive or
	// non-finite when the container metadata is unreadable.
	FrameRate() float64
	// SeekAndFetch positions the decode cursor at index and decodes one
	// frame. Returns ok=false for out-of-range indices or decode failures;
	// it never panics. Each call repositions explicitly — no sequential
	// access is assumed.
	SeekAndFetch(index int) (frame Frame, ok bool)
	// Close releases the resource. Idempotent.
	Close() error
}

// Opener opens a path as a decodable Source, failing with *SourceOpenError.
type Opener interface {
	Open(path string) (Source, error)
}

// Renderer scales a decoded frame for display. When fit is set the frame is
// scaled down (never up) to the bounding box preserving aspect ratio; the
// result is always in display channel order.
type Renderer interface {
	Render(frame Frame, maxWidth, maxHeight int, fit bool) (image.Image, error)
}

// Transcoder runs external-tool jobs built from a Request snapshot.
// Implementations block until the tool exits.
type Transcoder interface {
	// Trim produces the trimmed copy at req.TrimOutputPath().
	Trim(ctx context.Context, req Request) error
	// ExportFrames writes the numbered stills under req.FramesDir().
	ExportFrames(ctx context.Context, req Request) error
}

// FileChecker reports file existence; implemented by the filesystem adapter.
type FileChecker interface {
	Exists(path string) bool
}
