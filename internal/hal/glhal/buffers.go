package glhal

import (
	"fmt"

	"scenerender/internal/hal"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const floatSize = 4

// attributes lists the component count of each attribute location per
// layout.
var attributes = map[hal.VertexLayout][]int32{
	hal.LayoutMesh:     {3, 3, 2, 2},
	hal.LayoutColored:  {3, 4},
	hal.LayoutTextured: {3, 4, 2},
}

// VertexBuffer is a VAO with one interleaved VBO.
type VertexBuffer struct {
	vao, vbo uint32
	layout   hal.VertexLayout
	capacity int
	dynamic  bool
	written  bool
	length   int
}

func newVertexBuffer(layout hal.VertexLayout, capacity int, dynamic bool) *VertexBuffer {
	vb := &VertexBuffer{layout: layout, capacity: capacity, dynamic: dynamic}
	gl.GenVertexArrays(1, &vb.vao)
	gl.GenBuffers(1, &vb.vbo)

	gl.BindVertexArray(vb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)
	if dynamic && capacity > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, capacity*layout.Stride()*floatSize, nil, gl.DYNAMIC_DRAW)
	}

	stride := int32(layout.Stride() * floatSize)
	offset := 0
	for loc, n := range attributes[layout] {
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointerWithOffset(uint32(loc), n, gl.FLOAT, false, stride, uintptr(offset*floatSize))
		offset += int(n)
	}
	gl.BindVertexArray(0)
	return vb
}

func (vb *VertexBuffer) ID() uint32               { return vb.vao }
func (vb *VertexBuffer) Layout() hal.VertexLayout { return vb.layout }
func (vb *VertexBuffer) Len() int                 { return vb.length }

func (vb *VertexBuffer) SetData(vertices []float32) error {
	if !vb.dynamic && vb.written {
		return fmt.Errorf("glhal: vertex buffer %d is static", vb.vao)
	}
	n := len(vertices) / vb.layout.Stride()
	if vb.capacity > 0 && n > vb.capacity {
		return fmt.Errorf("glhal: %d vertices exceed buffer capacity %d", n, vb.capacity)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, vb.vbo)
	switch {
	case len(vertices) == 0:
	case vb.dynamic:
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*floatSize, gl.Ptr(vertices))
	default:
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	vb.length = n
	vb.written = true
	return nil
}

func (vb *VertexBuffer) Release() {
	gl.DeleteBuffers(1, &vb.vbo)
	gl.DeleteVertexArrays(1, &vb.vao)
	vb.vbo, vb.vao, vb.length = 0, 0, 0
}

// Delete releases the GL objects.
func (vb *VertexBuffer) Delete() {
	gl.DeleteBuffers(1, &vb.vbo)
	gl.DeleteVertexArrays(1, &vb.vao)
}

// IndexBuffer is an element array buffer of 16-bit indices.
type IndexBuffer struct {
	ebo    uint32
	length int
}

func newIndexBuffer(indices []uint16) *IndexBuffer {
	ib := &IndexBuffer{length: len(indices)}
	gl.GenBuffers(1, &ib.ebo)
	// Upload through COPY_WRITE so no VAO has to be bound.
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, ib.ebo)
	gl.BufferData(gl.COPY_WRITE_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	return ib
}

func (ib *IndexBuffer) ID() uint32 { return ib.ebo }
func (ib *IndexBuffer) Len() int   { return ib.length }

var (
	_ hal.VertexBuffer = (*VertexBuffer)(nil)
	_ hal.IndexBuffer  = (*IndexBuffer)(nil)
)
