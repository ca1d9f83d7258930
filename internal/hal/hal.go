// Package hal defines the low-level graphics abstraction the rendering
// pipeline draws through. Implementations issue immediate, blocking calls;
// nothing in this package buffers or reorders work.
package hal

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxTextureSlots is the number of texture units a command may bind.
const MaxTextureSlots = 8

// Hal is the device interface consumed by the command buffer, the 2D
// renderer and the rendering system.
type Hal interface {
	// Resource creation
	CreateShader(vertex, fragment string) (Shader, error)
	CreateVertexBuffer(layout VertexLayout, capacity int, dynamic bool) (VertexBuffer, error)
	CreateIndexBuffer(indices []uint16) (IndexBuffer, error)
	CreateTexture2D(img image.Image) (Texture, error)

	// Bindings. A nil argument unbinds the slot.
	SetShader(s Shader)
	SetTexture(slot int, t Texture)
	SetVertexBuffer(vb VertexBuffer)

	// Draw calls
	RenderIndexed(prim PrimitiveType, ib IndexBuffer, first, count int)
	RenderPrimitives(prim PrimitiveType, first, count int)

	// Fixed-function state
	SetViewport(x, y, width, height int)
	SetScissorTest(enabled bool, x, y, width, height int)
	Clear(color mgl32.Vec4, depth float32, mask ClearMask)
	SetDepthTest(write bool, fn Compare)
	SetAlphaTest(fn Compare, ref float32)
	SetBlendFactors(src, dst BlendFactor)
	SetCulling(face TriangleFace)
	SetPolygonMode(mode PolygonMode)
}

// Shader is a linked GPU program. Location returns -1 for uniforms the
// program does not declare; setters ignore negative locations.
type Shader interface {
	ID() uint32
	Location(name string) int32
	SetInt(location int32, value int32)
	SetFloat(location int32, value float32)
	SetVec4(location int32, value mgl32.Vec4)
	SetMat4(location int32, value mgl32.Mat4)
}

// Texture is a sampled GPU image.
type Texture interface {
	ID() uint32
	Width() int
	Height() int
}

// VertexBuffer holds vertex data laid out according to a VertexLayout.
type VertexBuffer interface {
	ID() uint32
	Layout() VertexLayout
	// Len returns the number of vertices currently stored.
	Len() int
	// SetData replaces the buffer contents. Only dynamic buffers may be
	// updated after creation.
	SetData(vertices []float32) error
	// Release frees the buffer. The handle must not be used afterwards.
	Release()
}

// IndexBuffer holds 16-bit triangle/line indices.
type IndexBuffer interface {
	ID() uint32
	Len() int
}

// ShaderID returns the identity used for sorting and state tracking.
// A nil shader sorts first.
func ShaderID(s Shader) uint32 {
	if s == nil {
		return 0
	}
	return s.ID()
}

// TextureID returns the identity of t, or 0 when the slot is unbound.
func TextureID(t Texture) uint32 {
	if t == nil {
		return 0
	}
	return t.ID()
}

// VertexBufferID returns the identity of vb, or 0 when nothing is bound.
func VertexBufferID(vb VertexBuffer) uint32 {
	if vb == nil {
		return 0
	}
	return vb.ID()
}
