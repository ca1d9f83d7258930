package draw2d

import (
	"testing"

	"scenerender/internal/graphics/frustum"
	"scenerender/internal/hal/record"

	"github.com/go-gl/mathgl/mgl32"
)

func newRenderer(t *testing.T, budget int) (*Renderer, *record.Device) {
	t.Helper()
	d := record.NewDevice()
	s, err := d.CreateShader("uniform mat4 u_vp;", "")
	if err != nil {
		t.Fatal(err)
	}
	r, err := New(d, s, budget)
	if err != nil {
		t.Fatal(err)
	}
	d.ResetCalls()
	return r, d
}

func TestEmptyBatchTouchesNothing(t *testing.T) {
	r, d := newRenderer(t, 64)
	r.Begin(mgl32.Ident4())
	r.End()
	if n := len(d.Calls()); n != 0 {
		t.Errorf("empty batch issued %d calls", n)
	}
}

func TestWireBoxDrawsTwelveLines(t *testing.T) {
	r, d := newRenderer(t, 64)
	r.Begin(mgl32.Ident4())
	r.WireBox(frustum.Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}, mgl32.Vec4{1, 1, 1, 1})
	r.End()

	draws := d.Filter(record.OpRenderPrimitives)
	if len(draws) != 1 || draws[0].Count != 24 {
		t.Fatalf("draws = %v", draws)
	}
	if st := d.State(); st.Shader != 0 || st.VertexBuffer != 0 {
		t.Errorf("bindings leaked: %+v", st)
	}
}

func TestBatchSplitsAtBudget(t *testing.T) {
	r, d := newRenderer(t, 10)
	r.Begin(mgl32.Ident4())
	for i := 0; i < 7; i++ {
		r.Line(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec4{1, 0, 0, 1})
	}
	r.End()

	draws := d.Filter(record.OpRenderPrimitives)
	if len(draws) != 2 || draws[0].Count != 10 || draws[1].Count != 4 {
		t.Errorf("draws = %v", draws)
	}
	if r.Batches() != 2 {
		t.Errorf("Batches = %d, want 2", r.Batches())
	}
}

func TestWireSphereSegments(t *testing.T) {
	r, _ := newRenderer(t, 1024)
	r.Begin(mgl32.Ident4())
	r.WireSphere(mgl32.Vec3{}, 2, mgl32.Vec4{0, 1, 0, 1})
	if got := r.Pending(); got != 3*circleSegments*2 {
		t.Errorf("Pending = %d, want %d", got, 3*circleSegments*2)
	}
}
