package emitters

import (
	"scenerender/internal/graphics/renderer"
	"scenerender/internal/profiling"
	"scenerender/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Debug colours.
var (
	MeshBoundsColor     = mgl32.Vec4{0.2, 1, 0.2, 1}
	ParticleBoundsColor = mgl32.Vec4{1, 0.6, 0.1, 1}
)

// MeshBounds draws the world bounds of visible meshes as 2D lines. It
// emits no commands.
type MeshBounds struct {
	index *scene.Index[scene.StaticMesh]
}

func NewMeshBounds(index *scene.Index[scene.StaticMesh]) *MeshBounds {
	return &MeshBounds{index: index}
}

func (e *MeshBounds) Emit(ctx *renderer.Context, view *renderer.View) error {
	defer profiling.Track("emitters.MeshBounds")()
	lines := ctx.Draw2D()
	tag := view.Tag()
	return e.index.Each(func(_ scene.Entity, m *scene.StaticMesh, t *scene.Transform) error {
		if m.Mesh != nil && m.IsVisible(tag) {
			lines.WireBox(m.WorldBounds(t), MeshBoundsColor)
		}
		return nil
	})
}

// ParticleBounds draws the world bounds of visible particle systems.
type ParticleBounds struct {
	index *scene.Index[scene.Particles]
}

func NewParticleBounds(index *scene.Index[scene.Particles]) *ParticleBounds {
	return &ParticleBounds{index: index}
}

func (e *ParticleBounds) Emit(ctx *renderer.Context, view *renderer.View) error {
	lines := ctx.Draw2D()
	tag := view.Tag()
	return e.index.Each(func(_ scene.Entity, p *scene.Particles, t *scene.Transform) error {
		if len(p.Positions) > 0 && p.IsVisible(tag) {
			lines.WireBox(p.WorldBounds(t), ParticleBoundsColor)
		}
		return nil
	})
}

// LightBounds draws the range of point lights inside the view as spheres
// in the light colour.
type LightBounds struct {
	index *scene.Index[scene.Light]
}

func NewLightBounds(index *scene.Index[scene.Light]) *LightBounds {
	return &LightBounds{index: index}
}

func (e *LightBounds) Emit(ctx *renderer.Context, view *renderer.View) error {
	lines := ctx.Draw2D()
	return e.index.Each(func(_ scene.Entity, l *scene.Light, t *scene.Transform) error {
		if l.Type != scene.PointLight || !view.Planes.InsideSphere(t.Position, l.Range) {
			return nil
		}
		c := l.Color
		lines.WireSphere(t.Position, l.Range, mgl32.Vec4{c[0], c[1], c[2], 1})
		return nil
	})
}
