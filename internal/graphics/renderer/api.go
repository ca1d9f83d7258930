package renderer

import (
	"errors"
	"image"

	"scenerender/internal/graphics/frustum"
	"scenerender/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNoCamera is returned when a pass begins without a camera.
	ErrNoCamera = errors.New("renderer: pass has no camera")
	// ErrNoTarget is reported for cameras without a render target.
	ErrNoTarget = errors.New("renderer: camera has no render target")
	// ErrCameraTag is reported for camera ids outside the visibility mask.
	ErrCameraTag = errors.New("renderer: camera id out of tag range")
)

// View is the per-camera state handed to every stage and emitter.
type View struct {
	Camera         *scene.Camera
	Transform      *scene.Transform
	ViewProjection mgl32.Mat4
	Planes         frustum.Planes
	// Viewport is the camera rectangle in target pixels, bottom-left origin.
	Viewport image.Rectangle
}

// Tag returns the visibility bit index of the view's camera.
func (v *View) Tag() int {
	return v.Planes.Camera()
}

// Position returns the camera position in world space.
func (v *View) Position() mgl32.Vec3 {
	return v.Transform.Position
}

// Distance returns the distance from the camera to p normalized by the
// far plane.
func (v *View) Distance(p mgl32.Vec3) float32 {
	d := p.Sub(v.Transform.Position).Len()
	if v.Camera.Far > 0 {
		d /= v.Camera.Far
	}
	return d
}

// Emitter converts matched entities into commands or 2D lines.
type Emitter interface {
	Emit(ctx *Context, view *View) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx *Context, view *View) error

func (f EmitterFunc) Emit(ctx *Context, view *View) error { return f(ctx, view) }

// Stage is one step of a camera's render. Pass is the common stage;
// composite stages run passes repeatedly.
type Stage interface {
	Name() string
	Execute(ctx *Context, view *View) error
}
