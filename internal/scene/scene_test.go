package scene

import (
	"errors"
	"image"
	"testing"

	"scenerender/internal/graphics/frustum"
	"scenerender/internal/hal"
	"scenerender/internal/hal/record"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTransformMatrix(t *testing.T) {
	var zero Transform
	if zero.Matrix() != mgl32.Ident4() {
		t.Errorf("zero transform matrix = %v", zero.Matrix())
	}

	tr := NewTransform(mgl32.Vec3{1, 2, 3})
	tr.Scale = mgl32.Vec3{2, 2, 2}
	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, tr.Matrix())
	if !p.ApproxEqual(mgl32.Vec3{3, 2, 3}) {
		t.Errorf("transformed point = %v", p)
	}
}

func TestVisibilityBits(t *testing.T) {
	var v Visibility
	v.SetVisible(0, true)
	v.SetVisible(15, true)
	if !v.IsVisible(0) || !v.IsVisible(15) || v.IsVisible(3) {
		t.Errorf("mask = %016b", v.VisibilityMask())
	}
	v.SetVisible(0, false)
	if v.IsVisible(0) || !v.IsVisible(15) {
		t.Errorf("mask after clear = %016b", v.VisibilityMask())
	}
	v.SetVisible(16, true)
	v.SetVisible(-1, true)
	if v.VisibilityMask() != 1<<15 || v.IsVisible(16) {
		t.Errorf("out of range tags changed the mask: %016b", v.VisibilityMask())
	}
}

func TestCameraViewport(t *testing.T) {
	target := record.NewTarget(800, 600)
	tests := []struct {
		name string
		ndc  Rect
		want image.Rectangle
	}{
		{"full", FullRect, image.Rect(0, 0, 800, 600)},
		{"left half", Rect{0, 0, 0.5, 1}, image.Rect(0, 0, 400, 600)},
		{"top right quarter", Rect{0.5, 0.5, 0.5, 0.5}, image.Rect(400, 300, 800, 600)},
		{"degenerate", Rect{0.2, 0.2, 0, 0.5}, image.Rect(160, 120, 160, 420)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(0, target)
			c.NDC = tt.ndc
			if got := c.Viewport(); got != tt.want {
				t.Errorf("Viewport = %v, want %v", got, tt.want)
			}
		})
	}

	var noTarget Camera
	if !noTarget.Viewport().Empty() {
		t.Error("camera without target has a viewport")
	}
}

func TestCameraProjectionKinds(t *testing.T) {
	c := NewCamera(0, record.NewTarget(200, 100))
	c.Projection = Ortho
	p := mgl32.TransformCoordinate(mgl32.Vec3{200, 100, 0}, c.ProjectionMatrix())
	if !p.ApproxEqual(mgl32.Vec3{1, 1, 0}) {
		t.Errorf("ortho corner = %v", p)
	}

	c.Projection = OrthoCenter
	p = mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 0}, c.ProjectionMatrix())
	if !p.ApproxEqual(mgl32.Vec3{0, 0, 0}) {
		t.Errorf("ortho centre origin = %v", p)
	}

	c.Projection = Perspective
	tr := LookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	p = mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 0}, c.ViewProjection(&tr))
	if !mgl32.FloatEqualThreshold(p[0], 0, 1e-5) || !mgl32.FloatEqualThreshold(p[1], 0, 1e-5) {
		t.Errorf("look-at target projects to %v", p)
	}
}

func TestCameraClearsOncePerFrame(t *testing.T) {
	d := record.NewDevice()
	c := NewCamera(0, record.NewTarget(4, 4))

	c.Clear(d)
	c.Clear(d)
	if got := d.Count(record.OpClear); got != 1 {
		t.Fatalf("clears = %d, want 1", got)
	}
	if mask := d.Filter(record.OpClear)[0].Mask; mask != hal.ClearColor|hal.ClearDepth {
		t.Errorf("clear mask = %v", mask)
	}

	c.ResetClear()
	c.Clear(d)
	if got := d.Count(record.OpClear); got != 2 {
		t.Errorf("clears after reset = %d, want 2", got)
	}

	none := NewCamera(1, nil)
	none.ClearMask = 0
	none.Clear(d)
	if d.Count(record.OpClear) != 2 || !none.Cleared() {
		t.Error("camera without clear flags issued a clear")
	}
}

func TestWorldIndices(t *testing.T) {
	w := NewWorld()
	mesh := &Mesh{Bounds: frustumUnitBox()}
	for i := 0; i < 3; i++ {
		w.AddStaticMesh(StaticMesh{Mesh: mesh}, NewTransform(mgl32.Vec3{float32(i), 0, 0}))
	}
	light := w.AddLight(Light{Range: 5}, NewTransform(mgl32.Vec3{}))
	w.AddSprite(NewSprite(nil, 1, 1), NewTransform(mgl32.Vec3{}))

	if n := w.StaticMeshes().Len(); n != 3 {
		t.Errorf("StaticMeshes().Len() = %d, want 3", n)
	}
	if n := w.Lights().Len(); n != 1 {
		t.Errorf("Lights().Len() = %d, want 1", n)
	}
	if n := w.Sprites().Len(); n != 1 {
		t.Errorf("Sprites().Len() = %d, want 1", n)
	}

	stop := errors.New("stop")
	visited := 0
	err := w.StaticMeshes().Each(func(e Entity, m *StaticMesh, tr *Transform) error {
		visited++
		return stop
	})
	if err != stop || visited != 1 {
		t.Errorf("Each did not stop early: err=%v visited=%d", err, visited)
	}

	if tr := w.Transform(light); tr == nil {
		t.Error("light has no transform")
	}
	w.Remove(light)
	if w.Alive(light) || w.Lights().Len() != 0 {
		t.Error("light not removed")
	}
}

func TestWorldsAreIndependent(t *testing.T) {
	a, b := NewWorld(), NewWorld()
	e := a.AddStaticMesh(StaticMesh{Mesh: &Mesh{Bounds: frustumUnitBox()}}, NewTransform(mgl32.Vec3{}))
	b.AddLight(Light{Range: 1}, NewTransform(mgl32.Vec3{}))

	if a.StaticMeshes().Len() != 1 || b.StaticMeshes().Len() != 0 {
		t.Errorf("meshes: a=%d b=%d", a.StaticMeshes().Len(), b.StaticMeshes().Len())
	}
	if a.Lights().Len() != 0 || b.Lights().Len() != 1 {
		t.Errorf("lights: a=%d b=%d", a.Lights().Len(), b.Lights().Len())
	}
	if m, tr := a.StaticMesh(e); m == nil || tr == nil {
		t.Error("mesh components not reachable through the world")
	}
	a.Remove(e)
	if a.Alive(e) || a.StaticMeshes().Len() != 0 {
		t.Error("mesh not removed")
	}
}

func TestSortedCamerasAndBeginFrame(t *testing.T) {
	w := NewWorld()
	target := record.NewTarget(10, 10)
	w.AddCamera(NewCamera(2, target), NewTransform(mgl32.Vec3{}))
	w.AddCamera(NewCamera(0, target), NewTransform(mgl32.Vec3{}))
	w.AddCamera(NewCamera(1, target), NewTransform(mgl32.Vec3{}))

	cams := w.SortedCameras()
	for i, ref := range cams {
		if ref.Camera.ID != i {
			t.Errorf("camera %d has ID %d", i, ref.Camera.ID)
		}
		ref.Camera.Clear(record.NewDevice())
	}

	w.BeginFrame()
	for _, ref := range w.SortedCameras() {
		if ref.Camera.Cleared() {
			t.Errorf("camera %d still marked cleared", ref.Camera.ID)
		}
	}
}

func TestParticlesBounds(t *testing.T) {
	p := Particles{Size: 2, Positions: []mgl32.Vec3{{0, 0, 0}, {4, -2, 1}}}
	b := p.LocalBounds()
	if b.Min != (mgl32.Vec3{-1, -3, -1}) || b.Max != (mgl32.Vec3{5, 1, 2}) {
		t.Errorf("bounds = %v", b)
	}
}

func frustumUnitBox() frustum.Bounds {
	return frustum.Bounds{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}}
}
