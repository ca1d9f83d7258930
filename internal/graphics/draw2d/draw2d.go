// Package draw2d is an immediate-mode line renderer used by debug passes.
// Lines are batched into one dynamic vertex buffer and drawn when the batch
// fills up or End is called.
package draw2d

import (
	"fmt"
	"math"

	"scenerender/internal/graphics/frustum"
	"scenerender/internal/hal"
	"scenerender/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const circleSegments = 24

// cubeEdges lists the 12 edges of a box as pairs of corner indices; corner
// bit 0 selects max X, bit 1 max Y, bit 2 max Z.
var cubeEdges = [12][2]int{
	// Front face
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	// Back face
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	// Connecting edges
	{0, 4}, {1, 5}, {3, 7}, {2, 6},
}

// Renderer batches coloured lines. It is not safe for concurrent use.
type Renderer struct {
	hal    hal.Hal
	shader hal.Shader
	vb     hal.VertexBuffer

	budget   int
	vertices []float32
	vp       mgl32.Mat4
	batches  int
}

// New creates a renderer holding up to budget vertices per batch. A nil
// shader makes every batch a no-op.
func New(h hal.Hal, shader hal.Shader, budget int) (*Renderer, error) {
	vb, err := h.CreateVertexBuffer(hal.LayoutColored, budget, true)
	if err != nil {
		return nil, fmt.Errorf("draw2d: create vertex buffer: %w", err)
	}
	return &Renderer{
		hal:      h,
		shader:   shader,
		vb:       vb,
		budget:   budget,
		vertices: make([]float32, 0, budget*hal.LayoutColored.Stride()),
		vp:       mgl32.Ident4(),
	}, nil
}

// Begin starts a batch drawn with the view-projection vp.
func (r *Renderer) Begin(vp mgl32.Mat4) {
	r.vp = vp
	r.vertices = r.vertices[:0]
}

// End draws the queued lines. Nothing reaches the HAL when no line was queued.
func (r *Renderer) End() {
	r.flush()
}

// Batches returns how many batches were drawn.
func (r *Renderer) Batches() int {
	return r.batches
}

// Pending returns the number of queued vertices.
func (r *Renderer) Pending() int {
	return len(r.vertices) / hal.LayoutColored.Stride()
}

// Line queues a line segment.
func (r *Renderer) Line(a, b mgl32.Vec3, c mgl32.Vec4) {
	if r.Pending()+2 > r.budget {
		r.flush()
	}
	r.vertices = append(r.vertices,
		a[0], a[1], a[2], c[0], c[1], c[2], c[3],
		b[0], b[1], b[2], c[0], c[1], c[2], c[3],
	)
}

// WireBox queues the edges of a world-space box.
func (r *Renderer) WireBox(b frustum.Bounds, c mgl32.Vec4) {
	r.OrientedBox(b, mgl32.Ident4(), c)
}

// OrientedBox queues the edges of a local box transformed by m.
func (r *Renderer) OrientedBox(b frustum.Bounds, m mgl32.Mat4, c mgl32.Vec4) {
	var corners [8]mgl32.Vec3
	for i := range corners {
		p := b.Min
		if i&1 != 0 {
			p[0] = b.Max[0]
		}
		if i&2 != 0 {
			p[1] = b.Max[1]
		}
		if i&4 != 0 {
			p[2] = b.Max[2]
		}
		corners[i] = mgl32.TransformCoordinate(p, m)
	}
	for _, e := range cubeEdges {
		r.Line(corners[e[0]], corners[e[1]], c)
	}
}

// WireSphere queues three axis-aligned circles.
func (r *Renderer) WireSphere(center mgl32.Vec3, radius float32, c mgl32.Vec4) {
	axes := [3][2]mgl32.Vec3{
		{{1, 0, 0}, {0, 1, 0}},
		{{0, 1, 0}, {0, 0, 1}},
		{{1, 0, 0}, {0, 0, 1}},
	}
	for _, ax := range axes {
		prev := center.Add(ax[0].Mul(radius))
		for i := 1; i <= circleSegments; i++ {
			a := 2 * math.Pi * float64(i) / circleSegments
			s, co := float32(math.Sin(a)), float32(math.Cos(a))
			next := center.Add(ax[0].Mul(co * radius)).Add(ax[1].Mul(s * radius))
			r.Line(prev, next, c)
			prev = next
		}
	}
}

func (r *Renderer) flush() {
	if len(r.vertices) == 0 {
		return
	}
	defer profiling.Track("draw2d.Flush")()

	count := r.Pending()
	if r.shader == nil {
		r.vertices = r.vertices[:0]
		return
	}
	if err := r.vb.SetData(r.vertices); err != nil {
		r.vertices = r.vertices[:0]
		return
	}

	h := r.hal
	h.SetShader(r.shader)
	r.shader.SetMat4(r.shader.Location("u_vp"), r.vp)
	h.SetVertexBuffer(r.vb)
	h.RenderPrimitives(hal.PrimLines, 0, count)
	h.SetVertexBuffer(nil)
	h.SetShader(nil)

	r.batches++
	r.vertices = r.vertices[:0]
}
