// Package frustum extracts clipping planes from a view-projection matrix and
// tests bounding volumes against them.
package frustum

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxCameras is the number of distinct camera tags a visibility mask can hold.
const MaxCameras = 16

// Plane is a normalized half-space a*x + b*y + c*z + d >= 0.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// Distance returns the signed distance from p to the plane.
func (pl Plane) Distance(p mgl32.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.D
}

func normalizePlane(a, b, c, d float32) Plane {
	l := float32(math.Sqrt(float64(a*a + b*b + c*c)))
	if l == 0 {
		return Plane{Normal: mgl32.Vec3{a, b, c}, D: d}
	}
	return Plane{Normal: mgl32.Vec3{a / l, b / l, c / l}, D: d / l}
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transformed returns the axis-aligned box enclosing b after applying m.
func (b Bounds) Transformed(m mgl32.Mat4) Bounds {
	min := mgl32.Vec3{float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1))}
	max := mgl32.Vec3{float32(math.Inf(-1)), float32(math.Inf(-1)), float32(math.Inf(-1))}
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			corner[0] = b.Max[0]
		}
		if i&2 != 0 {
			corner[1] = b.Max[1]
		}
		if i&4 != 0 {
			corner[2] = b.Max[2]
		}
		p := mgl32.TransformCoordinate(corner, m)
		for k := 0; k < 3; k++ {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}
	return Bounds{Min: min, Max: max}
}

// Planes is the clip plane set of one camera for one frame. Planes are in
// order left, right, bottom, top, near, far.
type Planes struct {
	Planes [6]Plane
	tag    uint8
}

// FromViewProjection builds six planes from the combined projection*view
// matrix. The camera tag must be below MaxCameras.
func FromViewProjection(clip mgl32.Mat4, cameraTag int) Planes {
	// Matrix is in column-major order in mgl32
	r0, r1, r2, r3 := clip.Row(0), clip.Row(1), clip.Row(2), clip.Row(3)

	var p Planes
	p.tag = uint8(cameraTag & (MaxCameras - 1))
	// Left = r3 + r0, Right = r3 - r0
	p.Planes[0] = normalizePlane(r3[0]+r0[0], r3[1]+r0[1], r3[2]+r0[2], r3[3]+r0[3])
	p.Planes[1] = normalizePlane(r3[0]-r0[0], r3[1]-r0[1], r3[2]-r0[2], r3[3]-r0[3])
	// Bottom = r3 + r1, Top = r3 - r1
	p.Planes[2] = normalizePlane(r3[0]+r1[0], r3[1]+r1[1], r3[2]+r1[2], r3[3]+r1[3])
	p.Planes[3] = normalizePlane(r3[0]-r1[0], r3[1]-r1[1], r3[2]-r1[2], r3[3]-r1[3])
	// Near = r3 + r2, Far = r3 - r2
	p.Planes[4] = normalizePlane(r3[0]+r2[0], r3[1]+r2[1], r3[2]+r2[2], r3[3]+r2[3])
	p.Planes[5] = normalizePlane(r3[0]-r2[0], r3[1]-r2[1], r3[2]-r2[2], r3[3]-r2[3])
	return p
}

// Camera returns the tag of the camera that owns the plane set.
func (p *Planes) Camera() int {
	return int(p.tag)
}

// Mask returns the visibility bit of the owning camera.
func (p *Planes) Mask() uint16 {
	return 1 << p.tag
}

// InsideBounds reports whether the box is not strictly behind any plane.
func (p *Planes) InsideBounds(b Bounds) bool {
	for i := range p.Planes {
		pl := &p.Planes[i]
		// Select the positive vertex for this plane normal
		px := b.Max[0]
		if pl.Normal[0] < 0 {
			px = b.Min[0]
		}
		py := b.Max[1]
		if pl.Normal[1] < 0 {
			py = b.Min[1]
		}
		pz := b.Max[2]
		if pl.Normal[2] < 0 {
			pz = b.Min[2]
		}
		// If positive vertex is outside, the box is outside
		if pl.Normal[0]*px+pl.Normal[1]*py+pl.Normal[2]*pz+pl.D < 0 {
			return false
		}
	}
	return true
}

// InsideSphere reports whether the sphere is not strictly behind any plane.
func (p *Planes) InsideSphere(center mgl32.Vec3, radius float32) bool {
	for i := range p.Planes {
		if p.Planes[i].Distance(center) < -radius {
			return false
		}
	}
	return true
}
