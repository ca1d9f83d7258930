// Package capture turns rendered frames into annotated image files.
package capture

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"

	"scenerender/internal/graphics/renderer"
	"scenerender/internal/graphics/rvm"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LoadFace parses an OpenType font at the given pixel size. An empty path
// selects the built-in 7x13 bitmap face.
func LoadFace(path string, size float64) (font.Face, error) {
	if path == "" {
		return basicfont.Face7x13, nil
	}
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// Summary returns one caption line per fact about the frame.
func Summary(f *renderer.Frame) []string {
	lines := []string{"cameras " + strconv.Itoa(f.Cameras)}
	for _, c := range []rvm.Counter{rvm.DrawCalls, rvm.Triangles, rvm.ShaderSwitches, rvm.Skipped} {
		lines = append(lines, c.String()+" "+strconv.Itoa(f.Stats[c]))
	}
	return lines
}

// Annotate draws lines of text over a dark band in the top-left corner.
func Annotate(dst draw.Image, lines []string, face font.Face) {
	if len(lines) == 0 {
		return
	}
	if face == nil {
		face = basicfont.Face7x13
	}
	m := face.Metrics()
	lineHeight := (m.Ascent + m.Descent).Ceil() + 2

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(color.White), Face: face}
	width := 0
	for _, l := range lines {
		if w := d.MeasureString(l).Ceil(); w > width {
			width = w
		}
	}

	b := dst.Bounds()
	band := image.Rect(b.Min.X, b.Min.Y, b.Min.X+width+8, b.Min.Y+lineHeight*len(lines)+4).Intersect(b)
	draw.Draw(dst, band, image.NewUniform(color.RGBA{0, 0, 0, 160}), image.Point{}, draw.Over)

	for i, l := range lines {
		d.Dot = fixed.P(b.Min.X+4, b.Min.Y+2+lineHeight*i+m.Ascent.Ceil())
		d.DrawString(l)
	}
}

// Thumbnail scales img to the given width keeping its aspect ratio.
func Thumbnail(img image.Image, width int) *image.RGBA {
	b := img.Bounds()
	if width <= 0 || b.Dx() == 0 {
		width = b.Dx()
	}
	height := max(1, b.Dy()*width/max(1, b.Dx()))
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// ToRGBA returns img as a mutable RGBA copy.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
