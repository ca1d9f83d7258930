package main

import (
	"scenerender/internal/hal/glhal"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// runGL renders through OpenGL into an offscreen framebuffer owned by a
// hidden window.
func runGL(opts options) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(64, 64, "scenecap", nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()
	window.MakeContextCurrent()

	device, err := glhal.New()
	if err != nil {
		return err
	}
	fb, err := glhal.NewFramebuffer(opts.width, opts.height)
	if err != nil {
		return err
	}
	defer fb.Delete()

	return renderOnce(device, fb, opts)
}
