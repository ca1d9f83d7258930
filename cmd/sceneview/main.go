package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"scenerender/internal/config"
	"scenerender/internal/demo"
	"scenerender/internal/graphics/renderer"
	"scenerender/internal/hal/glhal"
	"scenerender/internal/input"
	"scenerender/internal/logging"
	"scenerender/internal/viewer"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var (
		split     = flag.Bool("split", false, "Render a second, top-down camera side by side.")
		modeName  = flag.String("mode", "lit", "Initial render mode: lit|solid|wireframe|overdraw|normals.")
		fps       = flag.Int("fps", config.GetFPSLimit(), "Frame cap, 0 for unlimited.")
		shaderDir = flag.String("shaders", "", "Directory with <Model>.shader overrides.")
		asserts   = flag.Bool("assert", false, "Panic on fatal configuration errors.")
		verbose   = flag.Bool("v", false, "Log per-frame diagnostics.")
		width     = flag.Int("width", 1280, "Window width.")
		height    = flag.Int("height", 720, "Window height.")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	mode, ok := viewer.ParseMode(*modeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *modeName)
		os.Exit(2)
	}
	config.SetFPSLimit(*fps)
	config.SetShaderDir(*shaderDir)
	config.SetDebugAssertions(*asserts)

	if err := run(*width, *height, *split, mode); err != nil {
		logging.Logger().Error("sceneview failed", "error", err)
		os.Exit(1)
	}
}

func run(width, height int, split bool, mode viewer.Mode) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := setupWindow(width, height)
	if err != nil {
		return err
	}

	device, err := glhal.New()
	if err != nil {
		return err
	}
	ctx, err := renderer.NewContext(device)
	if err != nil {
		return err
	}

	sc, err := demo.Build(device, glhal.NewWindow(window), split)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}

	keys := input.NewKeys()
	keys.Attach(window)

	app := viewer.NewApp(window, keys, renderer.NewSystem(ctx, sc.World), sc, mode)
	app.Run()
	return nil
}
