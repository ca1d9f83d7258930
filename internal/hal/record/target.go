package record

import (
	"image"

	"scenerender/internal/hal"

	xdraw "golang.org/x/image/draw"
)

// Target is an offscreen render target backed by an RGBA image. Device
// coordinates have their origin at the bottom-left corner, image
// coordinates at the top-left.
type Target struct {
	img    *image.RGBA
	clears int
	begins int
}

// NewTarget creates a target of the given size in pixels.
func NewTarget(width, height int) *Target {
	return &Target{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (t *Target) Width() int  { return t.img.Bounds().Dx() }
func (t *Target) Height() int { return t.img.Bounds().Dy() }

// Begin binds the target as the destination of subsequent clears when h is
// a recording device.
func (t *Target) Begin(h hal.Hal) {
	t.begins++
	if d, ok := h.(*Device); ok {
		d.target = t
	}
}

// End unbinds the target.
func (t *Target) End(h hal.Hal) {
	if d, ok := h.(*Device); ok && d.target == t {
		d.target = nil
	}
}

// Image returns the colour buffer.
func (t *Target) Image() *image.RGBA { return t.img }

// Clears returns the number of Clear calls issued while the target was bound.
func (t *Target) Clears() int { return t.clears }

// Begins returns how many times the target was bound.
func (t *Target) Begins() int { return t.begins }

// Thumbnail returns a scaled copy of the colour buffer.
func (t *Target) Thumbnail(width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), t.img, t.img.Bounds(), xdraw.Src, nil)
	return dst
}

func (t *Target) flip(r image.Rectangle) image.Rectangle {
	h := t.Height()
	return image.Rect(r.Min.X, h-r.Max.Y, r.Max.X, h-r.Min.Y)
}
