// Package passes assembles the standard render passes from emitters and
// rasterization overrides.
package passes

import (
	"scenerender/internal/graphics/emitters"
	"scenerender/internal/graphics/renderer"
	"scenerender/internal/graphics/rvm"
	"scenerender/internal/graphics/shaders"
	"scenerender/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultAmbient is the constant colour of the ambient pass.
var DefaultAmbient = mgl32.Vec4{0.25, 0.25, 0.25, 1}

// Solid draws every render mode with the built-in policies and no
// lighting. Particles and sprites share the pass.
func Solid(w *scene.World) *renderer.Pass {
	p := renderer.NewPass("solid",
		emitters.NewStaticMeshes(w.StaticMeshes(), emitters.Unlit),
		emitters.NewParticles(w.Particles()),
		emitters.NewSprites(w.Sprites()),
	)
	p.DefaultShader = shaders.Diffuse
	return p
}

// Ambient lays down the base colour of lit geometry scaled by a constant
// ambient term. Additive geometry is skipped.
func Ambient(w *scene.World, ambient mgl32.Vec4) *renderer.Pass {
	p := renderer.NewPass("ambient",
		emitters.NewStaticMeshes(w.StaticMeshes(), emitters.Lit).WithModel(shaders.Ambient),
	)
	p.DefaultShader = shaders.Diffuse
	p.Setup = func(ctx *renderer.Context, _ *renderer.View) {
		r := ctx.Rvm()
		r.SetRasterization(rvm.Additive, rvm.Skip)
		r.SetRegister(rvm.ConstantColor, ambient)
	}
	return p
}

// Translucent draws blended geometry, particles and sprites on top of the
// lit scene.
func Translucent(w *scene.World) *renderer.Pass {
	p := renderer.NewPass("translucent",
		emitters.NewStaticMeshes(w.StaticMeshes(), emitters.Unlit),
		emitters.NewParticles(w.Particles()),
		emitters.NewSprites(w.Sprites()),
	)
	p.DefaultShader = shaders.Diffuse
	p.Setup = func(ctx *renderer.Context, _ *renderer.View) {
		ctx.Rvm().SetRasterizationMask(rvm.OpaqueBit|rvm.CutoutBit, rvm.Skip)
	}
	return p
}

// Additive draws additive geometry unlit after the lighting passes.
func Additive(w *scene.World) *renderer.Pass {
	p := renderer.NewPass("additive",
		emitters.NewStaticMeshes(w.StaticMeshes(), emitters.Unlit),
	)
	p.DefaultShader = shaders.Diffuse
	p.Setup = func(ctx *renderer.Context, _ *renderer.View) {
		ctx.Rvm().SetRasterizationMask(rvm.OpaqueBit|rvm.CutoutBit|rvm.TranslucentBit, rvm.Skip)
	}
	return p
}

// Effects draws particles and sprites.
func Effects(w *scene.World) *renderer.Pass {
	p := renderer.NewPass("effects",
		emitters.NewParticles(w.Particles()),
		emitters.NewSprites(w.Sprites()),
	)
	p.DefaultShader = shaders.Textured
	return p
}

// Lit returns the stage list of a forward-lit frame: ambient, one additive
// pass per point light, unlit additive geometry, then particles and
// sprites.
func Lit(w *scene.World) []renderer.Stage {
	return []renderer.Stage{
		Ambient(w, DefaultAmbient),
		NewForwardLighting(w),
		Additive(w),
		Effects(w),
	}
}
