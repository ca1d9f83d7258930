// Package shaders compiles and caches the shader programs used by the
// rendering pipeline: a static table addressed by ID and lighting-model
// shaders compiled per feature permutation.
package shaders

import (
	"errors"
	"fmt"
	"strings"

	"scenerender/internal/hal"
	"scenerender/internal/logging"
)

// ErrCompile wraps shader compilation failures reported by the HAL.
var ErrCompile = errors.New("shaders: compilation failed")

// ID identifies a shader of the static table.
type ID uint8

const (
	NoShader ID = iota
	// Fallback renders solid magenta and stands in for missing shaders.
	Fallback
	ConstantColor
	Normals
	// Diffuse samples u_tex0 with the mesh UVs, unlit.
	Diffuse
	VertexColor
	Textured

	totalShaders
)

func (id ID) String() string {
	if id > NoShader && id < totalShaders {
		return staticSources[id].name
	}
	return fmt.Sprintf("ID(%d)", uint8(id))
}

// Model is a material lighting model.
type Model uint8

const (
	Unlit Model = iota
	Ambient
	Phong

	TotalModels
)

func (m Model) String() string {
	if m < TotalModels {
		return modelSources[m].name
	}
	return fmt.Sprintf("Model(%d)", uint8(m))
}

// Feature is a bit set of optional material shader features.
type Feature uint32

const (
	FeatureDiffuse Feature = 1 << iota
)

var featureDefines = []struct {
	mask Feature
	name string
}{
	{FeatureDiffuse, "USE_DIFFUSE_MAP"},
}

type permutation struct {
	model    Model
	features Feature
}

// Cache lazily compiles shaders through a HAL and keeps them for the
// lifetime of the rendering context. It is not safe for concurrent use.
type Cache struct {
	hal hal.Hal

	static   [totalShaders]hal.Shader
	compiled [totalShaders]bool

	models       [TotalModels]source
	permutations map[permutation]hal.Shader

	compiles int
}

type source struct {
	vertex, fragment string
}

// NewCache creates an empty cache using the built-in model sources.
func NewCache(h hal.Hal) *Cache {
	c := &Cache{
		hal:          h,
		permutations: make(map[permutation]hal.Shader),
	}
	for m := range c.models {
		c.models[m] = source{modelSources[m].vertex, modelSources[m].fragment}
	}
	return c
}

// ShaderByID returns the static shader id, compiling it on first use.
// A failed compilation is cached as nil and not retried.
func (c *Cache) ShaderByID(id ID) hal.Shader {
	if id == NoShader || id >= totalShaders {
		return nil
	}
	if c.compiled[id] {
		return c.static[id]
	}

	src := staticSources[id]
	logging.Logger().Debug("compiling shader", "shader", src.name)
	c.static[id] = c.compile(src.name, src.vertex, src.fragment, 0)
	c.compiled[id] = true
	return c.static[id]
}

// Fallback returns the magenta shader.
func (c *Cache) Fallback() hal.Shader {
	return c.ShaderByID(Fallback)
}

// MaterialShader returns the shader of a lighting model compiled with the
// given features. A failed permutation is cached as nil.
func (c *Cache) MaterialShader(model Model, features Feature) hal.Shader {
	if model >= TotalModels {
		return nil
	}
	key := permutation{model, features}
	if s, ok := c.permutations[key]; ok {
		return s
	}

	logging.Logger().Debug("compiling material shader", "model", model.String(), "features", uint32(features))
	src := c.models[model]
	s := c.compile(model.String(), src.vertex, src.fragment, features)
	c.permutations[key] = s
	return s
}

// SetModelSource replaces the source of a lighting model and drops its
// compiled permutations.
func (c *Cache) SetModelSource(model Model, vertex, fragment string) {
	c.models[model] = source{vertex, fragment}
	for key := range c.permutations {
		if key.model == model {
			delete(c.permutations, key)
		}
	}
}

// Compiles returns how many programs were sent to the HAL.
func (c *Cache) Compiles() int {
	return c.compiles
}

func (c *Cache) compile(name, vertex, fragment string, features Feature) hal.Shader {
	c.compiles++
	defines := definesFor(features)
	s, err := c.hal.CreateShader(withHeader(vertex, defines), withHeader(fragment, defines))
	if err != nil {
		logging.Assert(fmt.Errorf("%w: %s: %v", ErrCompile, name, err), "features", uint32(features))
		return nil
	}
	logging.Logger().Info("shader compiled", "shader", name, "features", uint32(features))
	return s
}

func definesFor(features Feature) string {
	var b strings.Builder
	for _, f := range featureDefines {
		if features&f.mask != 0 {
			b.WriteString("#define ")
			b.WriteString(f.name)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// withHeader places the version line and defines in front of src. A source
// that declares its own version keeps it as the first line.
func withHeader(src, defines string) string {
	trimmed := strings.TrimLeft(src, " \t\r\n")
	if strings.HasPrefix(trimmed, "#version") {
		version, rest, _ := strings.Cut(trimmed, "\n")
		return version + "\n" + defines + rest
	}
	return glslVersion + defines + src
}
