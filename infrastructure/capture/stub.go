//go:build !preview

package capture

import (
	"fmt"
	"image"

	"framecut/domain/clip"
)

// ErrNotBuilt explains how to enable frame preview.
var errNotBuilt = fmt.Errorf("preview not available: build with '-tags=preview' and install OpenCV/GoCV")

// Opener is a stub when GoCV/OpenCV is not available.
type Opener struct{}

// NewOpener creates a stub opener (requires building with -tags=preview).
func NewOpener(fallbackFPS float64) *Opener { return &Opener{} }

// Open returns an error indicating preview is not available.
func (o *Opener) Open(path string) (clip.Source, error) {
	return nil, &clip.SourceOpenError{Path: path, Err: errNotBuilt}
}

// Renderer is a stub when GoCV/OpenCV is not available.
type Renderer struct{}

// NewRenderer creates a stub renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Render returns an error indicating preview is not available.
func (r *Renderer) Render(f clip.Frame, maxWidth, maxHeight int, fit bool) (image.Image, error) {
	return nil, errNotBuilt
}

// Ensure the stubs satisfy the ports
var (
	_ clip.Opener   = (*Opener)(nil)
	_ clip.Renderer = (*Renderer)(nil)
)
