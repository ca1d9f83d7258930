package glhal

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"scenerender/internal/hal"
	"scenerender/internal/hal/record"
)

func TestAttributesMatchStride(t *testing.T) {
	for _, layout := range []hal.VertexLayout{hal.LayoutMesh, hal.LayoutColored, hal.LayoutTextured} {
		var sum int32
		for _, n := range attributes[layout] {
			sum += n
		}
		if int(sum) != layout.Stride() {
			t.Errorf("layout %d: attributes sum to %d, stride is %d", layout, sum, layout.Stride())
		}
	}
}

func TestTextureCacheLoadsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checker.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 2))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	d := record.NewDevice()
	cache := NewTextureCache(d)
	a, err := cache.Get(path)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	b, _ := cache.Get(path)
	if a != b {
		t.Error("second Get returned a different texture")
	}
	if a.Width() != 4 || a.Height() != 2 {
		t.Errorf("size = %dx%d", a.Width(), a.Height())
	}
	if n := d.Count(record.OpCreateTexture); n != 1 {
		t.Errorf("textures created = %d, want 1", n)
	}

	if _, err := cache.Get(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
