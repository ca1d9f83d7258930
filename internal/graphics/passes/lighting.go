package passes

import (
	"scenerender/internal/graphics/emitters"
	"scenerender/internal/graphics/renderer"
	"scenerender/internal/graphics/rvm"
	"scenerender/internal/graphics/shaders"
	"scenerender/internal/hal"
	"scenerender/internal/profiling"
	"scenerender/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

type pointLight struct {
	position mgl32.Vec4
	color    mgl32.Vec4
}

// ForwardLighting adds the contribution of each point light in view by
// running an inner Phong pass once per light with additive blending.
// Blended geometry is not lit.
type ForwardLighting struct {
	world  *scene.World
	pass   *renderer.Pass
	lights []pointLight
	active int
}

// NewForwardLighting creates the lighting stage for w.
func NewForwardLighting(w *scene.World) *ForwardLighting {
	f := &ForwardLighting{world: w}
	f.pass = renderer.NewPass("light",
		emitters.NewStaticMeshes(w.StaticMeshes(), emitters.Lit).WithModel(shaders.Phong),
	)
	f.pass.DefaultShader = shaders.Diffuse
	f.pass.Setup = f.setup
	return f
}

func (f *ForwardLighting) Name() string { return "forward-lighting" }

// Lights returns how many lights the last Execute drew.
func (f *ForwardLighting) Lights() int { return len(f.lights) }

func (f *ForwardLighting) Execute(ctx *renderer.Context, view *renderer.View) error {
	defer profiling.Track("pass.forward-lighting")()

	f.lights = f.lights[:0]
	_ = f.world.Lights().Each(func(_ scene.Entity, l *scene.Light, t *scene.Transform) error {
		if l.Type != scene.PointLight || l.Range <= 0 || l.Intensity <= 0 {
			return nil
		}
		if !view.Planes.InsideSphere(t.Position, l.Range) {
			return nil
		}
		f.lights = append(f.lights, pointLight{
			position: t.Position.Vec4(l.Range),
			color:    l.Color.Vec4(l.Intensity),
		})
		return nil
	})

	for i := range f.lights {
		f.active = i
		if err := f.pass.Execute(ctx, view); err != nil {
			return err
		}
	}
	return nil
}

func (f *ForwardLighting) setup(ctx *renderer.Context, _ *renderer.View) {
	r := ctx.Rvm()
	light := f.lights[f.active]

	add := rvm.Preset(rvm.Opaque).
		WithBlending(hal.BlendOne, hal.BlendOne).
		WithDepthWrite(false)
	r.SetRasterization(rvm.Opaque, add)
	r.SetRasterization(rvm.Cutout, add.WithAlphaTest(hal.Greater, rvm.Preset(rvm.Cutout).AlphaRef))
	r.SetRasterizationMask(rvm.BlendedModes, rvm.Skip)

	r.SetRegister(rvm.LightPosition, light.position)
	r.SetRegister(rvm.LightColor, light.color)
}

var _ renderer.Stage = (*ForwardLighting)(nil)
