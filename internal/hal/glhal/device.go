// Package glhal implements hal.Hal on OpenGL 4.1 core. A context must be
// current on the calling thread for every call.
package glhal

import (
	"fmt"
	"image"

	"scenerender/internal/hal"
	"scenerender/internal/logging"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const alphaRefUniform = "u_alphaRef"

var blendFactors = [...]uint32{
	hal.BlendZero:        gl.ZERO,
	hal.BlendOne:         gl.ONE,
	hal.BlendSrcColor:    gl.SRC_COLOR,
	hal.BlendInvSrcColor: gl.ONE_MINUS_SRC_COLOR,
	hal.BlendDstColor:    gl.DST_COLOR,
	hal.BlendInvDstColor: gl.ONE_MINUS_DST_COLOR,
	hal.BlendSrcAlpha:    gl.SRC_ALPHA,
	hal.BlendInvSrcAlpha: gl.ONE_MINUS_SRC_ALPHA,
	hal.BlendDstAlpha:    gl.DST_ALPHA,
	hal.BlendInvDstAlpha: gl.ONE_MINUS_DST_ALPHA,
}

var compareFuncs = [...]uint32{
	hal.Always:       gl.ALWAYS,
	hal.Never:        gl.NEVER,
	hal.Equal:        gl.EQUAL,
	hal.NotEqual:     gl.NOTEQUAL,
	hal.Less:         gl.LESS,
	hal.LessEqual:    gl.LEQUAL,
	hal.Greater:      gl.GREATER,
	hal.GreaterEqual: gl.GEQUAL,
}

var primitives = [...]uint32{
	hal.PrimTriangles: gl.TRIANGLES,
	hal.PrimLines:     gl.LINES,
	hal.PrimPoints:    gl.POINTS,
}

// Device is the OpenGL hal.Hal.
type Device struct {
	shader *Shader
	vb     *VertexBuffer

	alphaTest  hal.Compare
	alphaRef   float32
	depthWrite bool
}

var _ hal.Hal = (*Device)(nil)

// New initializes the GL bindings for the current context and puts the
// pipeline in its default state.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glhal: init: %w", err)
	}
	logging.Logger().Info("OpenGL initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	d := &Device{}
	d.SetDepthTest(true, hal.LessEqual)
	d.SetCulling(hal.FaceBack)
	d.SetBlendFactors(hal.BlendDisabled, hal.BlendDisabled)
	return d, nil
}

func (d *Device) CreateShader(vertex, fragment string) (hal.Shader, error) {
	program, err := compileProgram(vertex, fragment)
	if err != nil {
		return nil, err
	}
	return &Shader{id: program, locations: make(map[string]int32)}, nil
}

func (d *Device) CreateVertexBuffer(layout hal.VertexLayout, capacity int, dynamic bool) (hal.VertexBuffer, error) {
	if layout.Stride() == 0 {
		return nil, fmt.Errorf("glhal: unknown vertex layout %d", layout)
	}
	return newVertexBuffer(layout, capacity, dynamic), nil
}

func (d *Device) CreateIndexBuffer(indices []uint16) (hal.IndexBuffer, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("glhal: empty index buffer")
	}
	return newIndexBuffer(indices), nil
}

func (d *Device) CreateTexture2D(img image.Image) (hal.Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("glhal: nil image")
	}
	return newTexture(img), nil
}

func (d *Device) SetShader(s hal.Shader) {
	if s == nil {
		d.shader = nil
		gl.UseProgram(0)
		return
	}
	d.shader = s.(*Shader)
	gl.UseProgram(d.shader.id)
}

func (d *Device) SetTexture(slot int, t hal.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(slot))
	if t == nil {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, t.ID())
	}
	gl.ActiveTexture(gl.TEXTURE0)
}

func (d *Device) SetVertexBuffer(vb hal.VertexBuffer) {
	if vb == nil {
		d.vb = nil
		gl.BindVertexArray(0)
		return
	}
	d.vb = vb.(*VertexBuffer)
	gl.BindVertexArray(d.vb.vao)
}

// applyAlphaTest pushes the emulated alpha test to the bound program.
// Fragments with alpha at or below the reference are discarded.
func (d *Device) applyAlphaTest() {
	if d.shader == nil {
		return
	}
	ref := float32(-1)
	switch d.alphaTest {
	case hal.Greater, hal.GreaterEqual:
		ref = d.alphaRef
	case hal.Never:
		ref = 1
	}
	d.shader.SetFloat(d.shader.Location(alphaRefUniform), ref)
}

func (d *Device) RenderIndexed(prim hal.PrimitiveType, ib hal.IndexBuffer, first, count int) {
	if d.vb == nil {
		return
	}
	if ib == nil {
		d.RenderPrimitives(prim, first, count)
		return
	}
	d.applyAlphaTest()
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.ID())
	gl.DrawElementsWithOffset(primitives[prim], int32(count), gl.UNSIGNED_SHORT, uintptr(first*2))
}

func (d *Device) RenderPrimitives(prim hal.PrimitiveType, first, count int) {
	if d.vb == nil {
		return
	}
	d.applyAlphaTest()
	gl.DrawArrays(primitives[prim], int32(first), int32(count))
}

func (d *Device) SetViewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) SetScissorTest(enabled bool, x, y, width, height int) {
	if !enabled {
		gl.Disable(gl.SCISSOR_TEST)
		return
	}
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) Clear(c mgl32.Vec4, depth float32, mask hal.ClearMask) {
	var bits uint32
	if mask&hal.ClearColor != 0 {
		gl.ClearColor(c[0], c[1], c[2], c[3])
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&hal.ClearDepth != 0 {
		gl.ClearDepth(float64(depth))
		// Depth clears obey the write mask.
		gl.DepthMask(true)
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&hal.ClearStencil != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	gl.Clear(bits)
	if mask&hal.ClearDepth != 0 {
		gl.DepthMask(d.depthWrite)
	}
}

func (d *Device) SetDepthTest(write bool, fn hal.Compare) {
	d.depthWrite = write
	gl.DepthMask(write)
	if fn == hal.CompareDisabled {
		gl.Disable(gl.DEPTH_TEST)
		return
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(compareFuncs[fn])
}

// SetAlphaTest records the test; it is applied per draw through the
// u_alphaRef uniform.
func (d *Device) SetAlphaTest(fn hal.Compare, ref float32) {
	d.alphaTest = fn
	d.alphaRef = ref
}

func (d *Device) SetBlendFactors(src, dst hal.BlendFactor) {
	if src == hal.BlendDisabled || dst == hal.BlendDisabled {
		gl.Disable(gl.BLEND)
		return
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(blendFactors[src], blendFactors[dst])
}

func (d *Device) SetCulling(face hal.TriangleFace) {
	switch face {
	case hal.FaceNone:
		gl.Disable(gl.CULL_FACE)
		return
	case hal.FaceFront:
		gl.CullFace(gl.FRONT)
	case hal.FaceBoth:
		gl.CullFace(gl.FRONT_AND_BACK)
	default:
		gl.CullFace(gl.BACK)
	}
	gl.Enable(gl.CULL_FACE)
}

func (d *Device) SetPolygonMode(mode hal.PolygonMode) {
	if mode == hal.PolygonWire {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		return
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}
