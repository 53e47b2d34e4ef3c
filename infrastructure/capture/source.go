//go:build preview

package capture

import (
	"math"

	"gocv.io/x/gocv"

	"framecut/domain/clip"
)

// frame wraps a decoded gocv Mat in BGR channel order.
type frame struct {
	mat    gocv.Mat
	closed bool
}

func (f *frame) Size() (int, int) { return f.mat.Cols(), f.mat.Rows() }

func (f *frame) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.mat.Close()
}

// Opener implements clip.Opener using GoCV's VideoCapture.
type Opener struct {
	fallbackFPS float64
}

// NewOpener creates an opener. fallbackFPS replaces a non-positive or
// non-finite container frame rate.
func NewOpener(fallbackFPS float64) *Opener {
	if fallbackFPS <= 0 {
		fallbackFPS = 30
	}
	return &Opener{fallbackFPS: fallbackFPS}
}

// Open implements clip.Opener.
func (o *Opener) Open(path string) (clip.Source, error) {
	cap, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return nil, &clip.SourceOpenError{Path: path, Err: err}
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, &clip.SourceOpenError{Path: path}
	}

	total := int(cap.Get(gocv.VideoCaptureFrameCount))
	if total < 0 {
		total = 0
	}
	rate := cap.Get(gocv.VideoCaptureFPS)
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = o.fallbackFPS
	}

	return &Source{cap: cap, total: total, rate: rate}, nil
}

// Source is an open VideoCapture handle.
type Source struct {
	cap    *gocv.VideoCapture
	total  int
	rate   float64
	closed bool
}

// TotalFrames implements clip.Source.
func (s *Source) TotalFrames() int { return s.total }

// FrameRate implements clip.Source.
func (s *Source) FrameRate() float64 { return s.rate }

// SeekAndFetch implements clip.Source. The cursor is repositioned on every
// call, so arbitrary access orders work; out-of-range indices and decode
// failures yield ok=false.
func (s *Source) SeekAndFetch(index int) (clip.Frame, bool) {
	if s.closed || index < 0 {
		return nil, false
	}
	if s.total > 0 && index >= s.total {
		return nil, false
	}

	s.cap.Set(gocv.VideoCapturePosFrames, float64(index))
	mat := gocv.NewMat()
	if ok := s.cap.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, false
	}
	return &frame{mat: mat}, true
}

// Close implements clip.Source; safe to call more than once.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.cap.Close()
}

// Ensure the adapter satisfies the ports
var (
	_ clip.Opener = (*Opener)(nil)
	_ clip.Source = (*Source)(nil)
)
