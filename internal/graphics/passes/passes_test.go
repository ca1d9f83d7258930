package passes

import (
	"errors"
	"image/color"
	"testing"

	"scenerender/internal/config"
	"scenerender/internal/graphics/frustum"
	"scenerender/internal/graphics/renderer"
	"scenerender/internal/graphics/rvm"
	"scenerender/internal/hal"
	"scenerender/internal/hal/record"
	"scenerender/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

type harness struct {
	dev    *record.Device
	world  *scene.World
	target *record.Target
	sys    *renderer.System
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	d := record.NewDevice()
	ctx, err := renderer.NewContext(d)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	w := scene.NewWorld()
	return &harness{dev: d, world: w, target: record.NewTarget(64, 32), sys: renderer.NewSystem(ctx, w)}
}

func (h *harness) camera(id int, mask scene.ClearFlags) *scene.Camera {
	cam := scene.NewCamera(id, h.target)
	cam.ClearMask = mask
	cam.Background = mgl32.Vec4{1, 0, 0, 1}
	e := h.world.AddCamera(cam, scene.LookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	c, _ := h.world.Camera(e)
	return c
}

// mesh adds a unit cube at pos with one chunk per material.
func (h *harness) mesh(pos mgl32.Vec3, mats ...*scene.Material) {
	m := &scene.Mesh{Bounds: frustum.Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}}
	for range mats {
		vb, _ := h.dev.CreateVertexBuffer(hal.LayoutMesh, 36, false)
		ib, _ := h.dev.CreateIndexBuffer(make([]uint16, 36))
		m.Chunks = append(m.Chunks, scene.MeshChunk{VertexBuffer: vb, IndexBuffer: ib, Bounds: m.Bounds})
	}
	h.world.AddStaticMesh(scene.StaticMesh{Mesh: m, Materials: mats}, scene.NewTransform(pos))
}

func TestAmbientSkipsAdditive(t *testing.T) {
	h := newHarness(t)
	h.camera(0, scene.ClearAll)
	h.mesh(mgl32.Vec3{}, &scene.Material{Mode: rvm.Opaque}, &scene.Material{Mode: rvm.Additive})
	h.sys.Add(Ambient(h.world, DefaultAmbient))

	if err := h.sys.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	draws := h.dev.Filter(record.OpRenderIndexed)
	if len(draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(draws))
	}
	if draws[0].Blend[0] != hal.BlendDisabled {
		t.Errorf("opaque draw blended with %v", draws[0].Blend)
	}
	if got := h.sys.Stats()[rvm.DrawCalls]; got != 1 {
		t.Errorf("DrawCalls = %d, want 1", got)
	}
	st, def := h.dev.State(), record.DefaultState()
	if st.Shader != 0 || st.VertexBuffer != 0 || st.Textures != def.Textures || st.DepthTest != def.DepthTest || st.Scissor {
		t.Errorf("state after frame = %+v", st)
	}
}

func TestSharedTargetClearedOnce(t *testing.T) {
	h := newHarness(t)
	h.camera(0, scene.ClearAll)
	h.camera(1, 0)
	h.mesh(mgl32.Vec3{}, &scene.Material{Mode: rvm.Opaque})
	h.sys.Add(Solid(h.world))

	if err := h.sys.Render(); err != nil {
		t.Fatal(err)
	}
	if got := h.target.Clears(); got != 1 {
		t.Errorf("target cleared %d times, want 1", got)
	}
	if got := h.target.Begins(); got != 2 {
		t.Errorf("target begun %d times, want 2", got)
	}
	if got := h.dev.Count(record.OpRenderIndexed); got != 2 {
		t.Errorf("draws = %d, want one per camera", got)
	}
	if got := h.target.Image().RGBAAt(10, 10); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel = %v, want the first camera's background", got)
	}

	// Without the per-frame tick the clear stays disarmed.
	if err := h.sys.Render(); err != nil {
		t.Fatal(err)
	}
	if got := h.target.Clears(); got != 1 {
		t.Errorf("clears without BeginFrame = %d, want 1", got)
	}
	h.world.BeginFrame()
	if err := h.sys.Render(); err != nil {
		t.Fatal(err)
	}
	if got := h.target.Clears(); got != 2 {
		t.Errorf("clears after BeginFrame = %d, want 2", got)
	}
}

func TestForwardLightingRunsPerLight(t *testing.T) {
	h := newHarness(t)
	h.camera(0, scene.ClearAll)
	h.mesh(mgl32.Vec3{}, &scene.Material{Mode: rvm.Opaque}, &scene.Material{Mode: rvm.Translucent})
	light := scene.Light{Color: mgl32.Vec3{1, 1, 1}, Intensity: 1, Range: 5}
	h.world.AddLight(light, scene.NewTransform(mgl32.Vec3{2, 0, 0}))
	h.world.AddLight(light, scene.NewTransform(mgl32.Vec3{-2, 0, 0}))
	h.world.AddLight(light, scene.NewTransform(mgl32.Vec3{0, 0, 100}))

	stages := Lit(h.world)
	h.sys.Add(stages...)
	if err := h.sys.Render(); err != nil {
		t.Fatal(err)
	}

	fl := stages[1].(*ForwardLighting)
	if fl.Lights() != 2 {
		t.Errorf("lights drawn = %d, want 2", fl.Lights())
	}
	var additive, blended int
	for _, c := range h.dev.Filter(record.OpRenderIndexed) {
		switch c.Blend {
		case [2]hal.BlendFactor{hal.BlendOne, hal.BlendOne}:
			additive++
		case [2]hal.BlendFactor{hal.BlendSrcAlpha, hal.BlendInvSrcAlpha}:
			blended++
		}
	}
	// The translucent chunk is drawn once by the ambient pass and never
	// lit.
	if additive != 2 || blended != 1 {
		t.Errorf("additive draws = %d, translucent draws = %d", additive, blended)
	}
}

func TestLitDrawsAdditiveMeshes(t *testing.T) {
	h := newHarness(t)
	h.camera(0, scene.ClearAll)
	h.mesh(mgl32.Vec3{}, &scene.Material{Mode: rvm.Additive})
	h.world.AddLight(scene.Light{Color: mgl32.Vec3{1, 1, 1}, Intensity: 1, Range: 5}, scene.NewTransform(mgl32.Vec3{2, 0, 0}))
	h.sys.Add(Lit(h.world)...)

	if err := h.sys.Render(); err != nil {
		t.Fatal(err)
	}
	draws := h.dev.Filter(record.OpRenderIndexed)
	if len(draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(draws))
	}
	if draws[0].Blend != [2]hal.BlendFactor{hal.BlendOne, hal.BlendOne} {
		t.Errorf("additive mesh blended with %v", draws[0].Blend)
	}
}

func TestWireframeRestoresPolygonMode(t *testing.T) {
	h := newHarness(t)
	h.camera(0, scene.ClearAll)
	h.mesh(mgl32.Vec3{}, &scene.Material{Mode: rvm.Opaque})
	h.sys.Add(Wireframe(h.world))

	if err := h.sys.Render(); err != nil {
		t.Fatal(err)
	}
	var wire bool
	for _, c := range h.dev.Filter(record.OpSetPolygonMode) {
		wire = wire || c.Polygon == hal.PolygonWire
	}
	if !wire {
		t.Error("wireframe pass never switched polygon mode")
	}
	if st := h.dev.State(); st.Polygon != hal.PolygonFill || st.Culling != hal.FaceBack {
		t.Errorf("state leaked: polygon %v culling %v", st.Polygon, st.Culling)
	}
}

func TestOverdrawBlendsEveryMode(t *testing.T) {
	h := newHarness(t)
	h.camera(0, scene.ClearAll)
	h.mesh(mgl32.Vec3{}, &scene.Material{Mode: rvm.Opaque}, &scene.Material{Mode: rvm.Translucent})
	h.sys.Add(Overdraw(h.world))

	if err := h.sys.Render(); err != nil {
		t.Fatal(err)
	}
	draws := h.dev.Filter(record.OpRenderIndexed)
	if len(draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(draws))
	}
	for _, d := range draws {
		if d.Blend != [2]hal.BlendFactor{hal.BlendOne, hal.BlendOne} {
			t.Errorf("draw blend = %v", d.Blend)
		}
	}
}

func TestDebugPassesDrawLines(t *testing.T) {
	h := newHarness(t)
	h.camera(0, scene.ClearAll)
	h.mesh(mgl32.Vec3{}, &scene.Material{Mode: rvm.Opaque})
	h.sys.Add(Debug(h.world)...)

	if err := h.sys.Render(); err != nil {
		t.Fatal(err)
	}
	if got := h.dev.Count(record.OpRenderIndexed); got != 0 {
		t.Errorf("debug passes issued %d indexed draws", got)
	}
	if got := h.dev.Count(record.OpRenderPrimitives); got != 1 {
		t.Errorf("line batches = %d, want 1", got)
	}
}

func TestPassWithoutCamera(t *testing.T) {
	h := newHarness(t)
	err := Solid(h.world).Execute(h.sys.Context(), &renderer.View{})
	if !errors.Is(err, renderer.ErrNoCamera) {
		t.Errorf("err = %v, want ErrNoCamera", err)
	}
}

func TestCameraWithoutTarget(t *testing.T) {
	h := newHarness(t)
	cam := h.camera(0, scene.ClearAll)
	cam.Target = nil
	h.mesh(mgl32.Vec3{}, &scene.Material{Mode: rvm.Opaque})
	h.sys.Add(Solid(h.world))

	if err := h.sys.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := h.dev.Count(record.OpRenderIndexed); got != 0 {
		t.Errorf("draws = %d for a camera without target", got)
	}

	config.SetDebugAssertions(true)
	defer config.SetDebugAssertions(false)
	defer func() {
		if recover() == nil {
			t.Error("expected assertion panic with debug assertions on")
		}
	}()
	_ = h.sys.Render()
}

func TestCameraTagOutOfRange(t *testing.T) {
	h := newHarness(t)
	h.camera(frustum.MaxCameras, scene.ClearAll)
	h.mesh(mgl32.Vec3{}, &scene.Material{Mode: rvm.Opaque})
	h.sys.Add(Solid(h.world))

	if err := h.sys.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if h.target.Begins() != 0 || h.dev.Count(record.OpRenderIndexed) != 0 {
		t.Errorf("camera %d rendered: begins %d", frustum.MaxCameras, h.target.Begins())
	}

	config.SetDebugAssertions(true)
	defer config.SetDebugAssertions(false)
	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, renderer.ErrCameraTag) {
			t.Errorf("recovered %v, want ErrCameraTag", err)
		}
	}()
	_ = h.sys.Render()
}

func TestEmptyViewportSkipped(t *testing.T) {
	h := newHarness(t)
	cam := h.camera(0, scene.ClearAll)
	cam.NDC = scene.Rect{X: 0.5, Y: 0, Width: 0, Height: 1}
	h.sys.Add(Solid(h.world))

	if err := h.sys.Render(); err != nil {
		t.Fatal(err)
	}
	if h.target.Begins() != 0 || h.target.Clears() != 0 {
		t.Errorf("empty viewport camera touched the target")
	}
}

func TestCaptureReturnsFrame(t *testing.T) {
	h := newHarness(t)
	h.camera(0, scene.ClearAll)
	other := record.NewTarget(8, 8)
	h.world.AddCamera(scene.NewCamera(1, other), scene.NewTransform(mgl32.Vec3{}))
	h.mesh(mgl32.Vec3{}, &scene.Material{Mode: rvm.Opaque})
	h.sys.Add(Solid(h.world))

	frame, err := h.sys.Capture(h.target)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Cameras != 1 || frame.Image() == nil {
		t.Errorf("frame = %+v", frame)
	}
	if frame.Stats[rvm.DrawCalls] != 1 {
		t.Errorf("frame draw calls = %d", frame.Stats[rvm.DrawCalls])
	}
	if other.Begins() != 0 {
		t.Error("capture rendered a camera of another target")
	}
}
