package renderer

import (
	"fmt"

	"scenerender/internal/graphics/shaders"
	"scenerender/internal/logging"
	"scenerender/internal/profiling"
)

// Pass is a named stage that configures the command buffer, runs its
// emitters and flushes. Emitter output is sorted together.
type Pass struct {
	// DefaultShader is used by commands without a shader. NoShader selects
	// the magenta fallback.
	DefaultShader shaders.ID
	// Setup runs after the buffer is reset and may install rasterization
	// overrides and registers for this pass.
	Setup func(ctx *Context, view *View)

	name     string
	emitters []Emitter
}

// NewPass creates a pass with the given emitters.
func NewPass(name string, emitters ...Emitter) *Pass {
	return &Pass{name: name, emitters: emitters}
}

// Name returns the pass name.
func (p *Pass) Name() string { return p.name }

// AddEmitter appends an emitter; emitters run in registration order.
func (p *Pass) AddEmitter(e Emitter) *Pass {
	p.emitters = append(p.emitters, e)
	return p
}

// Emitters returns the registered emitters.
func (p *Pass) Emitters() []Emitter {
	return p.emitters
}

// Begin resets the command buffer for view.
func (p *Pass) Begin(ctx *Context, view *View) error {
	if view == nil || view.Camera == nil || view.Transform == nil {
		err := fmt.Errorf("pass %s: %w", p.name, ErrNoCamera)
		logging.Assert(err)
		return err
	}

	r := ctx.Rvm()
	r.Reset()
	r.SetViewProjection(view.ViewProjection)

	shader := ctx.Shaders().ShaderByID(p.DefaultShader)
	if shader == nil {
		if p.DefaultShader != shaders.NoShader {
			logging.Logger().Warn("pass default shader unavailable, using fallback", "pass", p.name, "shader", p.DefaultShader.String())
		}
		shader = ctx.Shaders().Fallback()
	}
	r.SetDefaultShader(shader)

	if p.Setup != nil {
		p.Setup(ctx, view)
	}
	ctx.Draw2D().Begin(view.ViewProjection)
	return nil
}

// Render runs every emitter.
func (p *Pass) Render(ctx *Context, view *View) error {
	for _, e := range p.emitters {
		if err := e.Emit(ctx, view); err != nil {
			return fmt.Errorf("pass %s: %w", p.name, err)
		}
	}
	return nil
}

// End flushes the command buffer and the 2D renderer.
func (p *Pass) End(ctx *Context, view *View) {
	ctx.Rvm().Flush()
	ctx.Draw2D().End()
}

// Execute runs Begin, Render and End. When an emitter fails the pending
// commands are discarded.
func (p *Pass) Execute(ctx *Context, view *View) error {
	defer profiling.Track("pass." + p.name)()

	if err := p.Begin(ctx, view); err != nil {
		return err
	}
	if err := p.Render(ctx, view); err != nil {
		ctx.Rvm().Clear()
		ctx.Draw2D().Begin(view.ViewProjection)
		return err
	}
	p.End(ctx, view)
	return nil
}

