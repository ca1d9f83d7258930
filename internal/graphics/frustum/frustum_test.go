package frustum

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func perspectiveVP() mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

func TestPlanesAreNormalized(t *testing.T) {
	p := FromViewProjection(perspectiveVP(), 3)
	for i, pl := range p.Planes {
		if l := pl.Normal.Len(); math.Abs(float64(l-1)) > 1e-4 {
			t.Errorf("plane %d normal length = %v", i, l)
		}
	}
	if p.Camera() != 3 || p.Mask() != 1<<3 {
		t.Errorf("tag = %d mask = %b", p.Camera(), p.Mask())
	}
}

func TestInsideBounds(t *testing.T) {
	p := FromViewProjection(perspectiveVP(), 0)

	tests := []struct {
		name   string
		bounds Bounds
		want   bool
	}{
		{
			name:   "box around near plane centre",
			bounds: Bounds{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}},
			want:   true,
		},
		{
			name:   "box in front of the camera",
			bounds: Bounds{Min: mgl32.Vec3{-1, -1, -11}, Max: mgl32.Vec3{1, 1, -9}},
			want:   true,
		},
		{
			name:   "box far to the right",
			bounds: Bounds{Min: mgl32.Vec3{500, -1, -11}, Max: mgl32.Vec3{502, 1, -9}},
			want:   false,
		},
		{
			name:   "box behind the camera",
			bounds: Bounds{Min: mgl32.Vec3{-1, -1, 5}, Max: mgl32.Vec3{1, 1, 7}},
			want:   false,
		},
		{
			name:   "box beyond the far plane",
			bounds: Bounds{Min: mgl32.Vec3{-1, -1, -300}, Max: mgl32.Vec3{1, 1, -200}},
			want:   false,
		},
		{
			name:   "box straddling the left plane",
			bounds: Bounds{Min: mgl32.Vec3{-20, -1, -11}, Max: mgl32.Vec3{-5, 1, -9}},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.InsideBounds(tt.bounds); got != tt.want {
				t.Errorf("InsideBounds(%v) = %v, want %v", tt.bounds, got, tt.want)
			}
		})
	}
}

func TestInsideSphere(t *testing.T) {
	p := FromViewProjection(perspectiveVP(), 0)
	if !p.InsideSphere(mgl32.Vec3{0, 0, -10}, 1) {
		t.Error("sphere in view reported outside")
	}
	if p.InsideSphere(mgl32.Vec3{0, 0, 10}, 1) {
		t.Error("sphere behind camera reported inside")
	}
	// Centre outside the far plane but the radius reaches back in.
	if !p.InsideSphere(mgl32.Vec3{0, 0, -101}, 2) {
		t.Error("sphere overlapping far plane reported outside")
	}
}

func TestBoundsTransformed(t *testing.T) {
	b := Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	m := mgl32.Translate3D(10, 0, 0).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(45)))
	got := b.Transformed(m)

	half := float32(math.Sqrt2)
	if !got.Min.ApproxEqualThreshold(mgl32.Vec3{10 - half, -1, -half}, 1e-4) ||
		!got.Max.ApproxEqualThreshold(mgl32.Vec3{10 + half, 1, half}, 1e-4) {
		t.Errorf("Transformed = %v", got)
	}
	if c := got.Center(); !c.ApproxEqualThreshold(mgl32.Vec3{10, 0, 0}, 1e-4) {
		t.Errorf("Center = %v", c)
	}
}
