package emitters

import (
	"fmt"

	"scenerender/internal/graphics/renderer"
	"scenerender/internal/graphics/shaders"
	"scenerender/internal/hal"
	"scenerender/internal/profiling"
	"scenerender/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxParticles is the number of particles drawn per particle system.
const MaxParticles = 1024

// quadIndices returns two triangles per quad for n quads.
func quadIndices(n int) []uint16 {
	out := make([]uint16, 0, n*6)
	for i := 0; i < n; i++ {
		b := uint16(i * 4)
		out = append(out, b, b+1, b+2, b, b+2, b+3)
	}
	return out
}

// appendQuad appends four LayoutTextured vertices centred at c spanning
// right and up.
func appendQuad(dst []float32, c, right, up mgl32.Vec3, color mgl32.Vec4) []float32 {
	corners := [4]struct {
		sx, sy float32
		u, v   float32
	}{
		{-1, -1, 0, 0},
		{1, -1, 1, 0},
		{1, 1, 1, 1},
		{-1, 1, 0, 1},
	}
	for _, k := range corners {
		p := c.Add(right.Mul(k.sx)).Add(up.Mul(k.sy))
		dst = append(dst, p[0], p[1], p[2], color[0], color[1], color[2], color[3], k.u, k.v)
	}
	return dst
}

// Particles emits one command per visible particle system with its quads
// facing the camera.
type Particles struct {
	index *scene.Index[scene.Particles]

	indices hal.IndexBuffer
	buffers map[scene.Entity]hal.VertexBuffer
	seen    map[scene.Entity]bool
	scratch []float32
}

func NewParticles(index *scene.Index[scene.Particles]) *Particles {
	return &Particles{
		index:   index,
		buffers: make(map[scene.Entity]hal.VertexBuffer),
		seen:    make(map[scene.Entity]bool),
	}
}

func (e *Particles) Emit(ctx *renderer.Context, view *renderer.View) error {
	defer profiling.Track("emitters.Particles")()

	h := ctx.Hal()
	if e.indices == nil {
		ib, err := h.CreateIndexBuffer(quadIndices(MaxParticles))
		if err != nil {
			return fmt.Errorf("particles: %w", err)
		}
		e.indices = ib
	}

	r := ctx.Rvm()
	tag := view.Tag()
	right, up := view.Transform.Axes()
	shader := ctx.Shaders().ShaderByID(shaders.Textured)
	clear(e.seen)

	err := e.index.Each(func(ent scene.Entity, p *scene.Particles, t *scene.Transform) error {
		e.seen[ent] = true
		n := min(len(p.Positions), MaxParticles)
		if n == 0 || !p.IsVisible(tag) || !r.WillRender(p.Mode) {
			return nil
		}

		vb, ok := e.buffers[ent]
		if !ok {
			var err error
			if vb, err = h.CreateVertexBuffer(hal.LayoutTextured, MaxParticles*4, true); err != nil {
				return fmt.Errorf("particles: %w", err)
			}
			e.buffers[ent] = vb
		}

		world := t.Matrix()
		half := p.Size / 2
		e.scratch = e.scratch[:0]
		for _, pos := range p.Positions[:n] {
			c := mgl32.TransformCoordinate(pos, world)
			e.scratch = appendQuad(e.scratch, c, right.Mul(half), up.Mul(half), mgl32.Vec4{1, 1, 1, 1})
		}
		if err := vb.SetData(e.scratch); err != nil {
			return fmt.Errorf("particles: %w", err)
		}

		cmd, err := r.Emit()
		if err != nil {
			return err
		}
		cmd.Mode = p.Mode
		cmd.Shader = shader
		cmd.VertexBuffer = vb
		cmd.IndexBuffer = e.indices
		cmd.Count = n * 6
		cmd.Transform = mgl32.Ident4()
		cmd.Textures[0] = p.Texture
		cmd.SetColor(0, p.Color)
		if p.Mode.Blended() {
			cmd.Distance = view.Distance(p.WorldBounds(t).Center())
		}
		return nil
	})

	for ent, vb := range e.buffers {
		if !e.seen[ent] {
			vb.Release()
			delete(e.buffers, ent)
		}
	}
	return err
}

// Sprites emits one textured quad per visible sprite.
type Sprites struct {
	index *scene.Index[scene.Sprite]

	quad    hal.VertexBuffer
	indices hal.IndexBuffer
}

func NewSprites(index *scene.Index[scene.Sprite]) *Sprites {
	return &Sprites{index: index}
}

func (e *Sprites) init(h hal.Hal) error {
	vb, err := h.CreateVertexBuffer(hal.LayoutTextured, 4, false)
	if err != nil {
		return err
	}
	half := float32(0.5)
	data := appendQuad(nil, mgl32.Vec3{}, mgl32.Vec3{half, 0, 0}, mgl32.Vec3{0, half, 0}, mgl32.Vec4{1, 1, 1, 1})
	if err := vb.SetData(data); err != nil {
		return err
	}
	ib, err := h.CreateIndexBuffer(quadIndices(1))
	if err != nil {
		return err
	}
	e.quad, e.indices = vb, ib
	return nil
}

func (e *Sprites) Emit(ctx *renderer.Context, view *renderer.View) error {
	defer profiling.Track("emitters.Sprites")()

	if e.quad == nil {
		if err := e.init(ctx.Hal()); err != nil {
			return fmt.Errorf("sprites: %w", err)
		}
	}

	r := ctx.Rvm()
	tag := view.Tag()
	shader := ctx.Shaders().ShaderByID(shaders.Textured)
	return e.index.Each(func(_ scene.Entity, s *scene.Sprite, t *scene.Transform) error {
		if !s.IsVisible(tag) || !r.WillRender(s.Mode) {
			return nil
		}
		cmd, err := r.Emit()
		if err != nil {
			return err
		}
		cmd.Mode = s.Mode
		cmd.Shader = shader
		cmd.VertexBuffer = e.quad
		cmd.IndexBuffer = e.indices
		cmd.Transform = t.Matrix().Mul4(mgl32.Scale3D(s.Width, s.Height, 1))
		cmd.Textures[0] = s.Image
		cmd.SetColor(0, s.Color)
		if s.Mode.Blended() {
			cmd.Distance = view.Distance(t.Position)
		}
		return nil
	})
}

var (
	_ renderer.Emitter = (*StaticMeshes)(nil)
	_ renderer.Emitter = (*Particles)(nil)
	_ renderer.Emitter = (*Sprites)(nil)
)
