// Package viewer runs the interactive scene viewer loop.
package viewer

import (
	"time"

	"scenerender/internal/demo"
	"scenerender/internal/graphics/renderer"
	"scenerender/internal/input"
	"scenerender/internal/logging"
	"scenerender/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	orbitSpeed = 1.5 // radians per second
	zoomSpeed  = 6.0 // units per second
)

// App drives one window: input, animation, rendering and frame pacing.
type App struct {
	window *glfw.Window
	input  *input.Keys
	system *renderer.System
	scene  *demo.Scene

	mode    Mode
	bounds  bool
	verbose bool

	fpsLimiter *FPSLimiter
	start      time.Time
	lastTime   time.Time
}

// NewApp creates the viewer for a built scene.
func NewApp(window *glfw.Window, im *input.Keys, system *renderer.System, sc *demo.Scene, mode Mode) *App {
	a := &App{
		window:     window,
		input:      im,
		system:     system,
		scene:      sc,
		mode:       mode,
		fpsLimiter: NewFPSLimiter(),
		start:      time.Now(),
		lastTime:   time.Now(),
	}
	a.applyMode()
	return a
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) applyMode() {
	a.system.SetStages(Stages(a.scene.World, a.mode, a.bounds)...)
	logging.Logger().Info("render mode", "mode", a.mode.String(), "bounds", a.bounds)
}

func (a *App) tick() {
	profiling.ResetFrame()
	startTick := time.Now() // Measure pure processing time
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	glfw.PollEvents()
	a.update(dt)
	a.scene.Update(now.Sub(a.start).Seconds())

	a.scene.World.BeginFrame()
	if err := a.system.Render(); err != nil {
		logging.Logger().Error("render failed", "error", err)
		a.window.SetShouldClose(true)
	}

	a.window.SwapBuffers()

	// Check if frame took too long (> 16ms)
	processingDuration := time.Since(startTick)
	if a.verbose || processingDuration > 16*time.Millisecond {
		logging.Logger().Warn("slow frame",
			"duration", processingDuration,
			"top", profiling.TopN(5),
			"stats", a.system.Stats().String())
	}

	a.input.EndFrame()

	iconified := a.window.GetAttrib(glfw.Iconified) == glfw.True
	a.fpsLimiter.Wait(iconified)
}

func (a *App) update(dt float64) {
	keys := a.input
	if keys.Pressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if keys.Pressed(input.ActionNextMode) {
		a.mode = a.mode.Next()
		a.applyMode()
	}
	if keys.Pressed(input.ActionToggleBounds) {
		a.bounds = !a.bounds
		a.applyMode()
	}
	if keys.Pressed(input.ActionToggleProfiling) {
		a.verbose = !a.verbose
	}

	orbit := keys.Axis(input.ActionOrbitLeft, input.ActionOrbitRight) * orbitSpeed * float32(dt)
	zoom := keys.Axis(input.ActionZoomOut, input.ActionZoomIn) * zoomSpeed * float32(dt)
	if orbit != 0 || zoom != 0 {
		a.scene.Orbit(orbit, zoom)
	}
}
