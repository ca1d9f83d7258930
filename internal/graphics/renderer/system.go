package renderer

import (
	"fmt"
	"image"

	"scenerender/internal/graphics/frustum"
	"scenerender/internal/graphics/rvm"
	"scenerender/internal/logging"
	"scenerender/internal/profiling"
	"scenerender/internal/scene"
)

// System renders every camera of a scene through an ordered list of stages.
type System struct {
	ctx    *Context
	world  *scene.World
	stages []Stage

	stats   rvm.Stats
	cameras int
}

// NewSystem creates a system drawing world through ctx.
func NewSystem(ctx *Context, world *scene.World) *System {
	return &System{ctx: ctx, world: world}
}

// Add appends stages; stages run in registration order for each camera.
func (s *System) Add(stages ...Stage) *System {
	s.stages = append(s.stages, stages...)
	return s
}

// SetStages replaces the stage list.
func (s *System) SetStages(stages ...Stage) {
	s.stages = append(s.stages[:0], stages...)
}

// Stages returns the registered stages.
func (s *System) Stages() []Stage {
	return s.stages
}

// Context returns the rendering context.
func (s *System) Context() *Context {
	return s.ctx
}

// Stats returns the command buffer counters of the last frame.
func (s *System) Stats() rvm.Stats {
	return s.stats
}

// Render draws every camera in ID order. Cameras without a target are
// reported and skipped; cameras with an empty viewport are skipped. A stage
// error aborts the frame.
func (s *System) Render() error {
	_, err := s.render(nil)
	return err
}

// Frame is the result of a capture.
type Frame struct {
	Target scene.View
	// Cameras is the number of cameras drawn into Target.
	Cameras int
	Stats   rvm.Stats
}

// Image returns the colour buffer of the target when it keeps one in
// memory, or nil.
func (f *Frame) Image() image.Image {
	if src, ok := f.Target.(interface{ Image() *image.RGBA }); ok {
		if img := src.Image(); img != nil {
			return img
		}
	}
	return nil
}

// Capture renders the cameras drawing into target and returns the frame.
func (s *System) Capture(target scene.View) (*Frame, error) {
	drawn, err := s.render(target)
	if err != nil {
		return nil, err
	}
	return &Frame{Target: target, Cameras: drawn, Stats: s.stats}, nil
}

func (s *System) render(only scene.View) (int, error) {
	defer profiling.Track("renderer.System.Render")()

	s.ctx.Rvm().ResetCounters()
	defer func() { s.stats = s.ctx.Rvm().Stats() }()

	drawn := 0
	var tags uint16
	for _, ref := range s.world.SortedCameras() {
		cam := ref.Camera
		if cam.Target == nil {
			logging.Assert(fmt.Errorf("%w: camera %d", ErrNoTarget, cam.ID))
			continue
		}
		if only != nil && cam.Target != only {
			continue
		}
		if cam.ID < 0 || cam.ID >= frustum.MaxCameras {
			logging.Assert(fmt.Errorf("%w: camera %d", ErrCameraTag, cam.ID))
			continue
		}

		vp := cam.Viewport()
		if vp.Dx() <= 0 || vp.Dy() <= 0 {
			logging.Logger().Debug("skipping camera with empty viewport", "camera", cam.ID, "viewport", vp.String())
			continue
		}
		if bit := uint16(1) << uint(cam.ID); tags&bit != 0 {
			logging.Logger().Warn("cameras share a visibility tag", "camera", cam.ID)
		} else {
			tags |= bit
		}

		if err := s.renderCamera(ref, vp); err != nil {
			return drawn, err
		}
		drawn++
	}
	return drawn, nil
}

func (s *System) renderCamera(ref scene.CameraRef, vp image.Rectangle) error {
	cam := ref.Camera
	h := s.ctx.Hal()

	view := &View{
		Camera:         cam,
		Transform:      ref.Transform,
		ViewProjection: cam.ViewProjection(ref.Transform),
		Viewport:       vp,
	}
	view.Planes = frustum.FromViewProjection(view.ViewProjection, cam.ID)

	cam.Target.Begin(h)
	h.SetViewport(vp.Min.X, vp.Min.Y, vp.Dx(), vp.Dy())
	h.SetScissorTest(true, vp.Min.X, vp.Min.Y, vp.Dx(), vp.Dy())
	cam.Clear(h)

	s.cull(view)

	var err error
	for _, st := range s.stages {
		if err = st.Execute(s.ctx, view); err != nil {
			err = fmt.Errorf("camera %d: %w", cam.ID, err)
			break
		}
	}

	w, ht := cam.Target.Width(), cam.Target.Height()
	h.SetViewport(0, 0, w, ht)
	h.SetScissorTest(false, 0, 0, w, ht)
	cam.Target.End(h)
	return err
}

// cull refreshes the visibility bit of the view's camera on every renderable.
func (s *System) cull(view *View) {
	defer profiling.Track("renderer.System.Cull")()

	tag := view.Tag()
	planes := &view.Planes
	_ = s.world.StaticMeshes().Each(func(_ scene.Entity, m *scene.StaticMesh, t *scene.Transform) error {
		m.SetVisible(tag, m.Mesh != nil && planes.InsideBounds(m.WorldBounds(t)))
		return nil
	})
	_ = s.world.Particles().Each(func(_ scene.Entity, p *scene.Particles, t *scene.Transform) error {
		p.SetVisible(tag, len(p.Positions) > 0 && planes.InsideBounds(p.WorldBounds(t)))
		return nil
	})
	_ = s.world.Sprites().Each(func(_ scene.Entity, sp *scene.Sprite, t *scene.Transform) error {
		sp.SetVisible(tag, planes.InsideBounds(sp.WorldBounds(t)))
		return nil
	})
}
