package scene

import (
	"scenerender/internal/graphics/frustum"
	"scenerender/internal/graphics/rvm"
	"scenerender/internal/graphics/shaders"
	"scenerender/internal/hal"

	"github.com/go-gl/mathgl/mgl32"
)

// Visibility records per-camera culling results, one bit per camera tag.
type Visibility struct {
	mask uint16
}

// IsVisible reports whether the renderable passed culling for camera tag.
// Tags outside 0..frustum.MaxCameras-1 are never visible.
func (v *Visibility) IsVisible(tag int) bool {
	if tag < 0 || tag >= frustum.MaxCameras {
		return false
	}
	return v.mask&(1<<uint(tag)) != 0
}

// SetVisible sets or clears the bit of camera tag. Out of range tags are
// ignored.
func (v *Visibility) SetVisible(tag int, visible bool) {
	if tag < 0 || tag >= frustum.MaxCameras {
		return
	}
	if visible {
		v.mask |= 1 << uint(tag)
	} else {
		v.mask &^= 1 << uint(tag)
	}
}

// VisibilityMask returns the raw bit mask.
func (v *Visibility) VisibilityMask() uint16 {
	return v.mask
}

// MeshChunk is one drawable section of a mesh.
type MeshChunk struct {
	VertexBuffer hal.VertexBuffer
	IndexBuffer  hal.IndexBuffer
	Primitive    hal.PrimitiveType
	// First and Count select an index range; a zero Count draws to the
	// end of the buffer.
	First, Count int
	Bounds       frustum.Bounds
}

// Mesh is a list of chunks sharing local-space bounds.
type Mesh struct {
	Name   string
	Chunks []MeshChunk
	Bounds frustum.Bounds
}

// Material describes how a mesh chunk is shaded.
type Material struct {
	Mode  rvm.RenderMode
	Model shaders.Model
	// Shader, when set, replaces the lighting-model shader.
	Shader  shaders.ID
	Diffuse hal.Texture
	// Colors are bound to u_clr0..u_clr7; Colors[0] is the diffuse colour.
	Colors []mgl32.Vec4
}

// StaticMesh renders a mesh with one material per chunk. Chunks beyond the
// material list use the last material, or none.
type StaticMesh struct {
	Mesh      *Mesh
	Materials []*Material
	Visibility
}

// Material returns the material of chunk i.
func (s *StaticMesh) Material(i int) *Material {
	if len(s.Materials) == 0 {
		return nil
	}
	if i >= len(s.Materials) {
		i = len(s.Materials) - 1
	}
	return s.Materials[i]
}

// WorldBounds returns the mesh bounds in world space.
func (s *StaticMesh) WorldBounds(t *Transform) frustum.Bounds {
	if s.Mesh == nil {
		return frustum.Bounds{}
	}
	return s.Mesh.Bounds.Transformed(t.Matrix())
}

// Sprite is a camera-independent textured quad in the XY plane.
type Sprite struct {
	Image         hal.Texture
	Width, Height float32
	Color         mgl32.Vec4
	Mode          rvm.RenderMode
	Visibility
}

// NewSprite returns a translucent white sprite.
func NewSprite(img hal.Texture, width, height float32) Sprite {
	return Sprite{Image: img, Width: width, Height: height, Color: mgl32.Vec4{1, 1, 1, 1}, Mode: rvm.Translucent}
}

// WorldBounds returns the sprite quad bounds in world space.
func (s *Sprite) WorldBounds(t *Transform) frustum.Bounds {
	hw, hh := s.Width/2, s.Height/2
	local := frustum.Bounds{Min: mgl32.Vec3{-hw, -hh, 0}, Max: mgl32.Vec3{hw, hh, 0}}
	return local.Transformed(t.Matrix())
}

// Particles is a set of camera-facing quads at local positions.
type Particles struct {
	Texture   hal.Texture
	Mode      rvm.RenderMode
	Color     mgl32.Vec4
	Size      float32
	Positions []mgl32.Vec3
	Visibility
}

// LocalBounds returns the box enclosing every particle quad.
func (p *Particles) LocalBounds() frustum.Bounds {
	if len(p.Positions) == 0 {
		return frustum.Bounds{}
	}
	b := frustum.Bounds{Min: p.Positions[0], Max: p.Positions[0]}
	for _, pos := range p.Positions[1:] {
		for k := 0; k < 3; k++ {
			b.Min[k] = min(b.Min[k], pos[k])
			b.Max[k] = max(b.Max[k], pos[k])
		}
	}
	half := mgl32.Vec3{p.Size / 2, p.Size / 2, p.Size / 2}
	b.Min = b.Min.Sub(half)
	b.Max = b.Max.Add(half)
	return b
}

// WorldBounds returns the particle bounds in world space.
func (p *Particles) WorldBounds(t *Transform) frustum.Bounds {
	return p.LocalBounds().Transformed(t.Matrix())
}

// LightType selects the light shape.
type LightType uint8

const (
	PointLight LightType = iota
	DirectionalLight
)

// Light is a coloured light source. Range bounds point lights.
type Light struct {
	Type      LightType
	Color     mgl32.Vec3
	Intensity float32
	Range     float32
}
