package scene

import (
	"image"

	"scenerender/internal/hal"

	"github.com/go-gl/mathgl/mgl32"
)

// View is a render target a camera draws into.
type View interface {
	Width() int
	Height() int
	// Begin makes the target current on h; End releases it.
	Begin(h hal.Hal)
	End(h hal.Hal)
}

// Projection selects the camera projection.
type Projection uint8

const (
	Perspective Projection = iota
	// Ortho maps one world unit to one pixel with the origin at the
	// bottom-left corner of the viewport.
	Ortho
	// OrthoCenter is Ortho with the origin at the viewport centre.
	OrthoCenter
)

// ClearFlags selects which buffers a camera clears.
type ClearFlags uint8

const (
	ClearColor ClearFlags = 1 << iota
	ClearDepth
	// ClearDisabled marks the camera as already cleared this frame.
	ClearDisabled

	ClearAll = ClearColor | ClearDepth
)

// Rect is a rectangle in normalized [0, 1] target coordinates.
type Rect struct {
	X, Y, Width, Height float32
}

// FullRect covers the whole target.
var FullRect = Rect{0, 0, 1, 1}

// Camera renders the scene from its transform into Target.
type Camera struct {
	// ID orders cameras and tags their visibility bits; 0..15.
	ID         int
	Projection Projection
	NDC        Rect
	Near, Far  float32
	// Fov is the vertical field of view in degrees.
	Fov        float32
	Background mgl32.Vec4
	ClearMask  ClearFlags
	Target     View
}

// NewCamera returns a full-target perspective camera clearing colour and depth.
func NewCamera(id int, target View) Camera {
	return Camera{
		ID:         id,
		Projection: Perspective,
		NDC:        FullRect,
		Near:       0.1,
		Far:        1000,
		Fov:        60,
		ClearMask:  ClearAll,
		Target:     target,
	}
}

// Viewport returns the camera rectangle in target pixels with a
// bottom-left origin. It is empty when the camera has no target.
func (c *Camera) Viewport() image.Rectangle {
	if c.Target == nil {
		return image.Rectangle{}
	}
	w, h := float32(c.Target.Width()), float32(c.Target.Height())
	x0 := int(c.NDC.X * w)
	y0 := int(c.NDC.Y * h)
	x1 := int((c.NDC.X + c.NDC.Width) * w)
	y1 := int((c.NDC.Y + c.NDC.Height) * h)
	return image.Rect(x0, y0, x1, y1)
}

// ProjectionMatrix returns the projection for the current viewport. The
// viewport must not be empty.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	vp := c.Viewport()
	w, h := float32(vp.Dx()), float32(vp.Dy())
	switch c.Projection {
	case Ortho:
		return mgl32.Ortho(0, w, 0, h, -10000, 10000)
	case OrthoCenter:
		return mgl32.Ortho(-w/2, w/2, -h/2, h/2, -10000, 10000)
	default:
		return mgl32.Perspective(mgl32.DegToRad(c.Fov), w/h, c.Near, c.Far)
	}
}

// ViewProjection returns projection * inverse(transform).
func (c *Camera) ViewProjection(t *Transform) mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(t.Matrix().Inv())
}

// Cleared reports whether the camera already cleared this frame.
func (c *Camera) Cleared() bool {
	return c.ClearMask&ClearDisabled != 0
}

// Clear clears the requested buffers once per frame; later calls within the
// same frame do nothing.
func (c *Camera) Clear(h hal.Hal) {
	if c.Cleared() {
		return
	}
	var mask hal.ClearMask
	if c.ClearMask&ClearColor != 0 {
		mask |= hal.ClearColor
	}
	if c.ClearMask&ClearDepth != 0 {
		mask |= hal.ClearDepth
	}
	if mask != 0 {
		h.Clear(c.Background, 1, mask)
	}
	c.ClearMask |= ClearDisabled
}

// ResetClear re-arms the clear for the next frame.
func (c *Camera) ResetClear() {
	c.ClearMask &^= ClearDisabled
}
