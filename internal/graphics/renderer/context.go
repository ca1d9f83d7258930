package renderer

import (
	"fmt"

	"scenerender/internal/config"
	"scenerender/internal/graphics/draw2d"
	"scenerender/internal/graphics/rvm"
	"scenerender/internal/graphics/shaders"
	"scenerender/internal/hal"
)

// Context bundles the command buffer, shader cache, HAL and 2D renderer of
// one output target family. It is not safe for concurrent use.
type Context struct {
	hal     hal.Hal
	rvm     *rvm.Rvm
	shaders *shaders.Cache
	draw2d  *draw2d.Renderer
}

// NewContext creates a context sized from the render settings.
func NewContext(h hal.Hal) (*Context, error) {
	cache := shaders.NewCache(h)
	if dir := config.GetShaderDir(); dir != "" {
		if err := cache.LoadModels(dir); err != nil {
			return nil, fmt.Errorf("load shader models: %w", err)
		}
	}

	lines, err := draw2d.New(h, cache.ShaderByID(shaders.VertexColor), config.GetDraw2DVertexBudget())
	if err != nil {
		return nil, err
	}

	return &Context{
		hal:     h,
		rvm:     rvm.New(h, config.GetCommandCapacity()),
		shaders: cache,
		draw2d:  lines,
	}, nil
}

func (c *Context) Hal() hal.Hal { return c.hal }
func (c *Context) Rvm() *rvm.Rvm { return c.rvm }
func (c *Context) Shaders() *shaders.Cache { return c.shaders }
func (c *Context) Draw2D() *draw2d.Renderer { return c.draw2d }
