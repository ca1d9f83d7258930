// Package record implements hal.Hal as a headless device that records every
// call, tracks the currently bound state and software-clears the colour
// buffer of the bound Target. It backs the frame capture tool and serves as
// the test double for the rendering pipeline.
package record

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"scenerender/internal/hal"

	"github.com/go-gl/mathgl/mgl32"
	xdraw "golang.org/x/image/draw"
)

// ErrCompile is returned by CreateShader when FailCompile rejects a program.
var ErrCompile = errors.New("record: shader compilation failed")

// ErrStaticBuffer is returned when updating a buffer created as static.
var ErrStaticBuffer = errors.New("record: vertex buffer is not dynamic")

// ErrReleased is returned when a released buffer is written.
var ErrReleased = errors.New("record: vertex buffer was released")

// State is a snapshot of the device bindings and fixed-function state.
type State struct {
	Shader       uint32
	Textures     [hal.MaxTextureSlots]uint32
	VertexBuffer uint32
	DepthWrite   bool
	DepthTest    hal.Compare
	AlphaTest    hal.Compare
	AlphaRef     float32
	Blend        [2]hal.BlendFactor
	Culling      hal.TriangleFace
	Polygon      hal.PolygonMode
	Viewport     image.Rectangle
	Scissor      bool
	ScissorRect  image.Rectangle
}

// DefaultState is the state of a freshly created device and the state the
// pipeline must leave behind after every flush.
func DefaultState() State {
	return State{
		DepthWrite: true,
		DepthTest:  hal.LessEqual,
		Culling:    hal.FaceBack,
	}
}

// Device is a recording hal.Hal.
type Device struct {
	// FailCompile, when set, decides whether CreateShader fails.
	FailCompile func(vertex, fragment string) bool

	calls  []Call
	state  State
	nextID uint32
	target *Target
}

var _ hal.Hal = (*Device)(nil)

// NewDevice creates a device in DefaultState.
func NewDevice() *Device {
	return &Device{state: DefaultState()}
}

// Calls returns every recorded call in issue order.
func (d *Device) Calls() []Call {
	return d.calls
}

// Count returns how many calls of the given kind were recorded.
func (d *Device) Count(op Op) int {
	n := 0
	for i := range d.calls {
		if d.calls[i].Op == op {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls of the given kind.
func (d *Device) Filter(op Op) []Call {
	var out []Call
	for _, c := range d.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls drops the call log but keeps the bound state.
func (d *Device) ResetCalls() {
	d.calls = d.calls[:0]
}

// State returns the currently bound state.
func (d *Device) State() State {
	return d.state
}

func (d *Device) record(c Call) {
	d.calls = append(d.calls, c)
}

func (d *Device) allocID() uint32 {
	d.nextID++
	return d.nextID
}

// CreateShader implements hal.Hal.
func (d *Device) CreateShader(vertex, fragment string) (hal.Shader, error) {
	d.record(Call{Op: OpCreateShader})
	if d.FailCompile != nil && d.FailCompile(vertex, fragment) {
		return nil, ErrCompile
	}
	return newShader(d.allocID(), vertex, fragment), nil
}

// CreateVertexBuffer implements hal.Hal.
func (d *Device) CreateVertexBuffer(layout hal.VertexLayout, capacity int, dynamic bool) (hal.VertexBuffer, error) {
	return &VertexBuffer{id: d.allocID(), layout: layout, capacity: capacity, dynamic: dynamic}, nil
}

// CreateIndexBuffer implements hal.Hal.
func (d *Device) CreateIndexBuffer(indices []uint16) (hal.IndexBuffer, error) {
	return &IndexBuffer{id: d.allocID(), indices: append([]uint16(nil), indices...)}, nil
}

// CreateTexture2D implements hal.Hal.
// A nil image creates an empty texture.
func (d *Device) CreateTexture2D(img image.Image) (hal.Texture, error) {
	t := &Texture{id: d.allocID()}
	if img != nil {
		b := img.Bounds()
		t.width, t.height = b.Dx(), b.Dy()
	}
	d.record(Call{Op: OpCreateTexture, Texture: t.id})
	return t, nil
}

// SetShader implements hal.Hal.
func (d *Device) SetShader(s hal.Shader) {
	id := hal.ShaderID(s)
	d.record(Call{Op: OpSetShader, Shader: id})
	d.state.Shader = id
}

// SetTexture implements hal.Hal.
func (d *Device) SetTexture(slot int, t hal.Texture) {
	id := hal.TextureID(t)
	d.record(Call{Op: OpSetTexture, Slot: slot, Texture: id})
	d.state.Textures[slot] = id
}

// SetVertexBuffer implements hal.Hal.
func (d *Device) SetVertexBuffer(vb hal.VertexBuffer) {
	id := hal.VertexBufferID(vb)
	d.record(Call{Op: OpSetVertexBuffer, VertexBuffer: id})
	d.state.VertexBuffer = id
}

// RenderIndexed implements hal.Hal.
func (d *Device) RenderIndexed(prim hal.PrimitiveType, ib hal.IndexBuffer, first, count int) {
	var id uint32
	if ib != nil {
		id = ib.ID()
	}
	d.record(Call{
		Op:           OpRenderIndexed,
		Primitive:    prim,
		IndexBuffer:  id,
		First:        first,
		Count:        count,
		Shader:       d.state.Shader,
		VertexBuffer: d.state.VertexBuffer,
		Blend:        d.state.Blend,
	})
}

// RenderPrimitives implements hal.Hal.
func (d *Device) RenderPrimitives(prim hal.PrimitiveType, first, count int) {
	d.record(Call{
		Op:           OpRenderPrimitives,
		Primitive:    prim,
		First:        first,
		Count:        count,
		Shader:       d.state.Shader,
		VertexBuffer: d.state.VertexBuffer,
	})
}

// SetViewport implements hal.Hal.
func (d *Device) SetViewport(x, y, width, height int) {
	r := image.Rect(x, y, x+width, y+height)
	d.record(Call{Op: OpSetViewport, Rect: r})
	d.state.Viewport = r
}

// SetScissorTest implements hal.Hal.
func (d *Device) SetScissorTest(enabled bool, x, y, width, height int) {
	r := image.Rect(x, y, x+width, y+height)
	d.record(Call{Op: OpSetScissorTest, Enabled: enabled, Rect: r})
	d.state.Scissor = enabled
	d.state.ScissorRect = r
}

// Clear implements hal.Hal. The colour buffer of the bound target is
// filled within the scissor rectangle when scissoring is enabled.
func (d *Device) Clear(c mgl32.Vec4, depth float32, mask hal.ClearMask) {
	d.record(Call{Op: OpClear, Color: c, Depth: depth, Mask: mask})
	if d.target == nil {
		return
	}
	d.target.clears++
	if mask&hal.ClearColor == 0 {
		return
	}

	area := d.target.img.Bounds()
	if d.state.Scissor {
		area = d.target.flip(d.state.ScissorRect).Intersect(area)
	}
	fill := color.RGBA{
		R: uint8(mgl32.Clamp(c[0], 0, 1) * 255),
		G: uint8(mgl32.Clamp(c[1], 0, 1) * 255),
		B: uint8(mgl32.Clamp(c[2], 0, 1) * 255),
		A: uint8(mgl32.Clamp(c[3], 0, 1) * 255),
	}
	xdraw.Draw(d.target.img, area, image.NewUniform(fill), image.Point{}, xdraw.Src)
}

// SetDepthTest implements hal.Hal.
func (d *Device) SetDepthTest(write bool, fn hal.Compare) {
	d.record(Call{Op: OpSetDepthTest, Write: write, Compare: fn})
	d.state.DepthWrite = write
	d.state.DepthTest = fn
}

// SetAlphaTest implements hal.Hal.
func (d *Device) SetAlphaTest(fn hal.Compare, ref float32) {
	d.record(Call{Op: OpSetAlphaTest, Compare: fn, Ref: ref})
	d.state.AlphaTest = fn
	d.state.AlphaRef = ref
}

// SetBlendFactors implements hal.Hal.
func (d *Device) SetBlendFactors(src, dst hal.BlendFactor) {
	d.record(Call{Op: OpSetBlendFactors, Blend: [2]hal.BlendFactor{src, dst}})
	d.state.Blend = [2]hal.BlendFactor{src, dst}
}

// SetCulling implements hal.Hal.
func (d *Device) SetCulling(face hal.TriangleFace) {
	d.record(Call{Op: OpSetCulling, Face: face})
	d.state.Culling = face
}

// SetPolygonMode implements hal.Hal.
func (d *Device) SetPolygonMode(mode hal.PolygonMode) {
	d.record(Call{Op: OpSetPolygonMode, Polygon: mode})
	d.state.Polygon = mode
}

// uniformNames extracts the identifiers declared with the uniform keyword.
func uniformNames(sources ...string) []string {
	var names []string
	for _, src := range sources {
		for _, line := range strings.Split(src, "\n") {
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, "uniform ") {
				continue
			}
			decl := strings.TrimSuffix(line, ";")
			fields := strings.Fields(decl)
			if len(fields) < 3 {
				continue
			}
			for _, n := range strings.Split(strings.Join(fields[2:], ""), ",") {
				if n != "" {
					names = append(names, n)
				}
			}
		}
	}
	return names
}
