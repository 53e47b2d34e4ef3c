//go:build preview

package capture

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"framecut/domain/clip"
)

// Renderer implements clip.Renderer on GoCV Mats.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Render scales the frame into the bounding box (downscale only, aspect
// preserved) and converts the decoder's BGR order to display RGBA.
func (r *Renderer) Render(f clip.Frame, maxWidth, maxHeight int, fit bool) (image.Image, error) {
	fr, ok := f.(*frame)
	if !ok {
		return nil, fmt.Errorf("frame was not produced by this capture source")
	}
	if fr.closed || fr.mat.Empty() {
		return nil, fmt.Errorf("frame already released")
	}

	src := fr.mat
	width, height := fr.Size()

	scaled := gocv.NewMat()
	defer scaled.Close()
	if fit {
		w, h := clip.FitWithin(width, height, maxWidth, maxHeight)
		if w != width || h != height {
			gocv.Resize(src, &scaled, image.Pt(w, h), 0, 0, gocv.InterpolationArea)
			src = scaled
			width, height = w, h
		}
	}

	rgba := gocv.NewMat()
	defer rgba.Close()
	gocv.CvtColor(src, &rgba, gocv.ColorBGRToRGBA)

	return &image.RGBA{
		Pix:    rgba.ToBytes(),
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// Ensure Renderer implements clip.Renderer
var _ clip.Renderer = (*Renderer)(nil)
