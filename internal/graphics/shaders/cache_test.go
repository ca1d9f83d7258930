package shaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scenerender/internal/config"
	"scenerender/internal/hal/record"
)

func TestShaderByIDCompilesOnce(t *testing.T) {
	d := record.NewDevice()
	c := NewCache(d)

	first := c.ShaderByID(ConstantColor)
	if first == nil {
		t.Fatal("ShaderByID returned nil")
	}
	second := c.ShaderByID(ConstantColor)
	if first != second {
		t.Error("cached handle changed between calls")
	}
	if got := d.Count(record.OpCreateShader); got != 1 {
		t.Errorf("CreateShader calls = %d, want 1", got)
	}
	if c.ShaderByID(NoShader) != nil {
		t.Error("NoShader resolved to a program")
	}
}

func TestFailedCompileIsCached(t *testing.T) {
	d := record.NewDevice()
	d.FailCompile = func(v, f string) bool { return strings.Contains(f, "u_color") }
	c := NewCache(d)
	config.SetDebugAssertions(false)

	for i := 0; i < 3; i++ {
		if s := c.ShaderByID(ConstantColor); s != nil {
			t.Fatalf("failed shader returned %v", s)
		}
	}
	if got := d.Count(record.OpCreateShader); got != 1 {
		t.Errorf("CreateShader calls = %d, want 1", got)
	}
	if c.Fallback() == nil {
		t.Error("fallback should still compile")
	}
}

func TestFailedCompilePanicsWithAssertions(t *testing.T) {
	d := record.NewDevice()
	d.FailCompile = func(v, f string) bool { return true }
	c := NewCache(d)

	config.SetDebugAssertions(true)
	defer config.SetDebugAssertions(false)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	c.ShaderByID(Normals)
}

func TestMaterialShaderPermutations(t *testing.T) {
	d := record.NewDevice()
	c := NewCache(d)

	plain := c.MaterialShader(Unlit, 0)
	diffuse := c.MaterialShader(Unlit, FeatureDiffuse)
	if plain == nil || diffuse == nil || plain.ID() == diffuse.ID() {
		t.Fatalf("permutations not distinct: %v %v", plain, diffuse)
	}
	if c.MaterialShader(Unlit, FeatureDiffuse) != diffuse {
		t.Error("permutation recompiled")
	}
	if c.Compiles() != 2 {
		t.Errorf("Compiles = %d, want 2", c.Compiles())
	}

	src := diffuse.(*record.Shader).Fragment
	if !strings.HasPrefix(src, "#version 410 core\n#define USE_DIFFUSE_MAP\n") {
		t.Errorf("fragment header = %q", src[:60])
	}
	if strings.Contains(plain.(*record.Shader).Fragment, "#define") {
		t.Error("plain permutation has defines")
	}
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		name         string
		code         string
		vertex, frag string
		wantErr      bool
	}{
		{
			name:   "vertex then fragment",
			code:   "[VertexShader]\nV\n[FragmentShader]\nF\n",
			vertex: "\nV\n",
			frag:   "\nF\n",
		},
		{
			name:   "fragment then vertex",
			code:   "[FragmentShader]F[VertexShader]V",
			vertex: "V",
			frag:   "F",
		},
		{
			name: "fragment only",
			code: "[FragmentShader]F",
			frag: "F",
		},
		{
			name:    "no markers",
			code:    "void main() {}",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, f, err := ParseSource(tt.code)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if v != tt.vertex || f != tt.frag {
				t.Errorf("got (%q, %q), want (%q, %q)", v, f, tt.vertex, tt.frag)
			}
		})
	}
}

func TestLoadModels(t *testing.T) {
	dir := t.TempDir()
	code := "[VertexShader]\n#version 330 core\nuniform mat4 u_vp;\n[FragmentShader]\n#version 330 core\nout vec4 c;\n"
	if err := os.WriteFile(filepath.Join(dir, "Phong.shader"), []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}

	d := record.NewDevice()
	c := NewCache(d)
	before := c.MaterialShader(Phong, FeatureDiffuse)
	if err := c.LoadModels(dir); err != nil {
		t.Fatalf("LoadModels: %v", err)
	}
	after := c.MaterialShader(Phong, FeatureDiffuse)
	if after == before {
		t.Fatal("override did not drop cached permutation")
	}
	v := after.(*record.Shader).Vertex
	if !strings.HasPrefix(v, "#version 330 core\n#define USE_DIFFUSE_MAP\n") {
		t.Errorf("vertex = %q", v)
	}
	if got := c.MaterialShader(Unlit, 0).(*record.Shader).Fragment; !strings.Contains(got, "USE_DIFFUSE_MAP") {
		t.Error("Unlit lost its built-in source")
	}
}
