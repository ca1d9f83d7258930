package record

import (
	"fmt"

	"scenerender/internal/hal"

	"github.com/go-gl/mathgl/mgl32"
)

// Shader is a recorded program. Uniform locations are assigned to every
// name declared with the uniform keyword in either source; values set
// through the hal.Shader setters are kept for inspection.
type Shader struct {
	id       uint32
	Vertex   string
	Fragment string

	locations map[string]int32
	ints      map[int32]int32
	floats    map[int32]float32
	vec4s     map[int32]mgl32.Vec4
	mat4s     map[int32]mgl32.Mat4
}

func newShader(id uint32, vertex, fragment string) *Shader {
	s := &Shader{
		id:        id,
		Vertex:    vertex,
		Fragment:  fragment,
		locations: make(map[string]int32),
		ints:      make(map[int32]int32),
		floats:    make(map[int32]float32),
		vec4s:     make(map[int32]mgl32.Vec4),
		mat4s:     make(map[int32]mgl32.Mat4),
	}
	for _, name := range uniformNames(vertex, fragment) {
		if _, ok := s.locations[name]; !ok {
			s.locations[name] = int32(len(s.locations))
		}
	}
	return s
}

func (s *Shader) ID() uint32 { return s.id }

func (s *Shader) Location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	return -1
}

func (s *Shader) SetInt(location int32, value int32) {
	if location >= 0 {
		s.ints[location] = value
	}
}

func (s *Shader) SetFloat(location int32, value float32) {
	if location >= 0 {
		s.floats[location] = value
	}
}

func (s *Shader) SetVec4(location int32, value mgl32.Vec4) {
	if location >= 0 {
		s.vec4s[location] = value
	}
}

func (s *Shader) SetMat4(location int32, value mgl32.Mat4) {
	if location >= 0 {
		s.mat4s[location] = value
	}
}

// Vec4 returns the last vec4 value set for the named uniform.
func (s *Shader) Vec4(name string) (mgl32.Vec4, bool) {
	v, ok := s.vec4s[s.Location(name)]
	return v, ok
}

// Mat4 returns the last matrix value set for the named uniform.
func (s *Shader) Mat4(name string) (mgl32.Mat4, bool) {
	v, ok := s.mat4s[s.Location(name)]
	return v, ok
}

// Int returns the last integer value set for the named uniform.
func (s *Shader) Int(name string) (int32, bool) {
	v, ok := s.ints[s.Location(name)]
	return v, ok
}

// Texture is a recorded 2D texture.
type Texture struct {
	id            uint32
	width, height int
}

// NewTexture creates a texture handle outside of a device, for tests.
func NewTexture(id uint32, width, height int) *Texture {
	return &Texture{id: id, width: width, height: height}
}

func (t *Texture) ID() uint32  { return t.id }
func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

// VertexBuffer is a recorded vertex buffer.
type VertexBuffer struct {
	id       uint32
	layout   hal.VertexLayout
	capacity int
	dynamic  bool
	released bool
	data     []float32
}

// NewVertexBuffer creates a static vertex buffer handle outside of a device.
func NewVertexBuffer(id uint32, vertices int) *VertexBuffer {
	return &VertexBuffer{id: id, layout: hal.LayoutMesh, capacity: vertices, data: make([]float32, vertices*hal.LayoutMesh.Stride())}
}

func (vb *VertexBuffer) ID() uint32               { return vb.id }
func (vb *VertexBuffer) Layout() hal.VertexLayout { return vb.layout }

func (vb *VertexBuffer) Len() int {
	stride := vb.layout.Stride()
	if stride == 0 {
		return 0
	}
	return len(vb.data) / stride
}

func (vb *VertexBuffer) SetData(vertices []float32) error {
	if vb.released {
		return ErrReleased
	}
	if !vb.dynamic && vb.data != nil {
		return ErrStaticBuffer
	}
	if n := len(vertices) / vb.layout.Stride(); vb.capacity > 0 && n > vb.capacity {
		return fmt.Errorf("record: %d vertices exceed buffer capacity %d", n, vb.capacity)
	}
	vb.data = append(vb.data[:0], vertices...)
	return nil
}

func (vb *VertexBuffer) Release() {
	vb.released = true
	vb.data = nil
}

// Released reports whether Release was called.
func (vb *VertexBuffer) Released() bool { return vb.released }

// Data returns the stored vertex floats.
func (vb *VertexBuffer) Data() []float32 { return vb.data }

// IndexBuffer is a recorded index buffer.
type IndexBuffer struct {
	id      uint32
	indices []uint16
}

// NewIndexBuffer creates an index buffer handle with n sequential indices.
func NewIndexBuffer(id uint32, n int) *IndexBuffer {
	ib := &IndexBuffer{id: id, indices: make([]uint16, n)}
	for i := range ib.indices {
		ib.indices[i] = uint16(i)
	}
	return ib
}

func (ib *IndexBuffer) ID() uint32 { return ib.id }
func (ib *IndexBuffer) Len() int   { return len(ib.indices) }

var (
	_ hal.Shader       = (*Shader)(nil)
	_ hal.Texture      = (*Texture)(nil)
	_ hal.VertexBuffer = (*VertexBuffer)(nil)
	_ hal.IndexBuffer  = (*IndexBuffer)(nil)
)
