package passes

import (
	"scenerender/internal/graphics/emitters"
	"scenerender/internal/graphics/renderer"
	"scenerender/internal/graphics/rvm"
	"scenerender/internal/graphics/shaders"
	"scenerender/internal/hal"
	"scenerender/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Debug colours.
var (
	OverdrawColor  = mgl32.Vec4{0.1, 0.04, 0.02, 1}
	WireframeColor = mgl32.Vec4{1, 1, 1, 1}
)

// Overdraw accumulates a dim constant colour for every rasterized fragment
// so that heavily overdrawn areas show up bright.
func Overdraw(w *scene.World) *renderer.Pass {
	p := renderer.NewPass("overdraw",
		emitters.NewStaticMeshes(w.StaticMeshes(), 0),
	)
	p.DefaultShader = shaders.ConstantColor
	p.Setup = func(ctx *renderer.Context, _ *renderer.View) {
		r := ctx.Rvm()
		policy := rvm.Preset(rvm.Additive).WithDepthTest(hal.Always)
		r.SetRasterizationMask(rvm.AllRenderModes, policy)
		r.SetRegister(rvm.ConstantColor, OverdrawColor)
	}
	return p
}

// Wireframe draws every mesh edge in a constant colour without culling.
func Wireframe(w *scene.World) *renderer.Pass {
	p := renderer.NewPass("wireframe",
		emitters.NewStaticMeshes(w.StaticMeshes(), 0),
	)
	p.DefaultShader = shaders.ConstantColor
	p.Setup = func(ctx *renderer.Context, _ *renderer.View) {
		r := ctx.Rvm()
		r.SetDefaultPolygonMode(hal.PolygonWire)
		r.SetDefaultCullFace(hal.FaceNone)
		r.SetRegister(rvm.ConstantColor, WireframeColor)
	}
	return p
}

// VertexNormals shades meshes by their world-space normals.
func VertexNormals(w *scene.World) *renderer.Pass {
	p := renderer.NewPass("normals",
		emitters.NewStaticMeshes(w.StaticMeshes(), emitters.RenderingMode),
	)
	p.DefaultShader = shaders.Normals
	return p
}

func MeshBounds(w *scene.World) *renderer.Pass {
	return renderer.NewPass("mesh-bounds", emitters.NewMeshBounds(w.StaticMeshes()))
}

func LightBounds(w *scene.World) *renderer.Pass {
	return renderer.NewPass("light-bounds", emitters.NewLightBounds(w.Lights()))
}

func ParticleBounds(w *scene.World) *renderer.Pass {
	return renderer.NewPass("particle-bounds", emitters.NewParticleBounds(w.Particles()))
}

// Debug returns the overlay passes.
func Debug(w *scene.World) []renderer.Stage {
	return []renderer.Stage{MeshBounds(w), LightBounds(w), ParticleBounds(w)}
}
