package config

import "sync"

// RenderSettings holds render pipeline configuration
type RenderSettings struct {
	mu              sync.RWMutex
	commandCapacity int    // command slots per pass
	draw2DVertices  int    // vertex budget of the 2D renderer per batch
	debugAssertions bool   // panic on fatal configuration errors
	shaderDir       string // directory with <Model>.shader overrides
	fpsLimit        int    // 0 = unlimited
}

var globalRenderSettings = &RenderSettings{
	commandCapacity: 8000, // default value
	draw2DVertices:  16384,
	debugAssertions: false,
	fpsLimit:        144,
}

// GetCommandCapacity returns the number of commands a pass may emit
func GetCommandCapacity() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.commandCapacity
}

// SetCommandCapacity sets the number of commands a pass may emit
func SetCommandCapacity(n int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if n < 64 {
		n = 64
	}
	if n > 1<<20 {
		n = 1 << 20
	}

	globalRenderSettings.commandCapacity = n
}

// GetDraw2DVertexBudget returns the vertex capacity of one 2D batch
func GetDraw2DVertexBudget() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.draw2DVertices
}

// SetDraw2DVertexBudget sets the vertex capacity of one 2D batch
func SetDraw2DVertexBudget(n int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Line lists need an even count
	if n < 2 {
		n = 2
	}
	n &^= 1

	globalRenderSettings.draw2DVertices = n
}

// DebugAssertions reports whether fatal configuration errors panic
func DebugAssertions() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.debugAssertions
}

// SetDebugAssertions enables or disables panicking assertions
func SetDebugAssertions(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.debugAssertions = enabled
}

// GetShaderDir returns the directory searched for shader overrides
func GetShaderDir() string {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.shaderDir
}

// SetShaderDir sets the directory searched for shader overrides
func SetShaderDir(dir string) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.shaderDir = dir
}

// GetFPSLimit returns the viewer frame cap; 0 means unlimited
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the viewer frame cap; values <= 0 disable it
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRenderSettings.fpsLimit = limit
}
