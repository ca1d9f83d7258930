package glhal

import (
	"fmt"
	"image"

	"scenerender/internal/hal"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window renders into the default framebuffer of a GLFW window.
type Window struct {
	win *glfw.Window
}

// NewWindow wraps win as a render target.
func NewWindow(win *glfw.Window) *Window {
	return &Window{win: win}
}

func (w *Window) Width() int {
	fw, _ := w.win.GetFramebufferSize()
	return fw
}

func (w *Window) Height() int {
	_, fh := w.win.GetFramebufferSize()
	return fh
}

func (w *Window) Begin(hal.Hal) { gl.BindFramebuffer(gl.FRAMEBUFFER, 0) }
func (w *Window) End(hal.Hal)   {}

// Framebuffer is an offscreen colour and depth target whose pixels can be
// read back.
type Framebuffer struct {
	fbo, color, depth uint32
	width, height     int
}

// NewFramebuffer allocates an offscreen target.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	f := &Framebuffer{width: width, height: height}
	gl.GenFramebuffers(1, &f.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)

	gl.GenRenderbuffers(1, &f.color)
	gl.BindRenderbuffer(gl.RENDERBUFFER, f.color)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, f.color)

	gl.GenRenderbuffers(1, &f.depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, f.depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, f.depth)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		f.Delete()
		return nil, fmt.Errorf("glhal: framebuffer incomplete: 0x%x", status)
	}
	return f, nil
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

func (f *Framebuffer) Begin(hal.Hal) { gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo) }
func (f *Framebuffer) End(hal.Hal)   { gl.BindFramebuffer(gl.FRAMEBUFFER, 0) }

// Image reads the colour buffer back with a top-left origin.
func (f *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, f.fbo)
	gl.ReadPixels(0, 0, int32(f.width), int32(f.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	row := f.width * 4
	tmp := make([]byte, row)
	for y := 0; y < f.height/2; y++ {
		a := img.Pix[y*row : (y+1)*row]
		b := img.Pix[(f.height-1-y)*row : (f.height-y)*row]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
	return img
}

// Delete releases the GL objects.
func (f *Framebuffer) Delete() {
	gl.DeleteRenderbuffers(1, &f.depth)
	gl.DeleteRenderbuffers(1, &f.color)
	gl.DeleteFramebuffers(1, &f.fbo)
}
