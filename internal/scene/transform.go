package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform places an entity in world space.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// NewTransform returns an unrotated, unit-scale transform at pos.
func NewTransform(pos mgl32.Vec3) Transform {
	return Transform{Position: pos, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// LookAt returns a transform at eye whose -Z axis points at center.
func LookAt(eye, center, up mgl32.Vec3) Transform {
	t := NewTransform(eye)
	t.Rotation = mgl32.QuatLookAtV(eye, center, up)
	return t
}

// Matrix returns translation * rotation * scale. A zero rotation is treated
// as identity and a zero scale as unit scale.
func (t *Transform) Matrix() mgl32.Mat4 {
	rot := t.Rotation
	if rot == (mgl32.Quat{}) {
		rot = mgl32.QuatIdent()
	}
	scale := t.Scale
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(rot.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// Axes returns the world-space right and up vectors.
func (t *Transform) Axes() (right, up mgl32.Vec3) {
	rot := t.Rotation
	if rot == (mgl32.Quat{}) {
		rot = mgl32.QuatIdent()
	}
	return rot.Rotate(mgl32.Vec3{1, 0, 0}), rot.Rotate(mgl32.Vec3{0, 1, 0})
}
