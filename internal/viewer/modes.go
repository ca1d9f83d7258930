package viewer

import (
	"scenerender/internal/graphics/passes"
	"scenerender/internal/graphics/renderer"
	"scenerender/internal/scene"
)

// Mode selects the stage list the viewer renders with.
type Mode int

const (
	ModeLit Mode = iota
	ModeSolid
	ModeWireframe
	ModeOverdraw
	ModeNormals

	modeCount
)

var modeNames = [modeCount]string{"lit", "solid", "wireframe", "overdraw", "normals"}

func (m Mode) String() string {
	if m >= 0 && m < modeCount {
		return modeNames[m]
	}
	return "unknown"
}

// Next cycles to the following mode.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, bool) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return ModeLit, false
}

// Stages builds the stage list of mode for w, followed by the bounds
// overlays when bounds is set.
func Stages(w *scene.World, mode Mode, bounds bool) []renderer.Stage {
	var stages []renderer.Stage
	switch mode {
	case ModeSolid:
		stages = append(stages, passes.Solid(w))
	case ModeWireframe:
		stages = append(stages, passes.Wireframe(w))
	case ModeOverdraw:
		stages = append(stages, passes.Overdraw(w))
	case ModeNormals:
		stages = append(stages, passes.VertexNormals(w))
	default:
		stages = append(stages, passes.Lit(w)...)
	}
	if bounds {
		stages = append(stages, passes.Debug(w)...)
	}
	return stages
}
