// Package rvm implements the per-pass command buffer: commands are
// allocated from a fixed arena, sorted to minimise state changes and
// flushed to the HAL with redundant bindings elided.
package rvm

import (
	"errors"
	"fmt"
	"sort"

	"scenerender/internal/hal"
	"scenerender/internal/logging"
	"scenerender/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrArenaExhausted is returned by Emit when the command arena is full.
var ErrArenaExhausted = errors.New("rvm: command arena exhausted")

// Rvm accumulates the commands of one pass. It is not safe for concurrent use.
type Rvm struct {
	hal hal.Hal

	commands []Command
	order    []int32

	rasterization  [TotalRenderModes]Rasterization
	registers      [TotalRegisters]mgl32.Vec4
	registerMask   uint8
	viewProjection mgl32.Mat4

	defaultShader hal.Shader
	cullFace      hal.TriangleFace
	polygonMode   hal.PolygonMode

	last  Stats
	total Stats
}

// New creates a command buffer able to hold capacity commands per pass.
func New(h hal.Hal, capacity int) *Rvm {
	r := &Rvm{
		hal:      h,
		commands: make([]Command, 0, capacity),
		order:    make([]int32, 0, capacity),
	}
	r.Reset()
	return r
}

// Reset drops all commands and restores the per-pass configuration:
// preset rasterization for every mode, cleared registers, identity
// view-projection, no default shader, back-face culling and filled polygons.
func (r *Rvm) Reset() {
	r.commands = r.commands[:0]
	for m := Opaque; m < TotalRenderModes; m++ {
		r.rasterization[m] = presets[m]
	}
	r.registers = [TotalRegisters]mgl32.Vec4{}
	r.registerMask = 0
	r.viewProjection = mgl32.Ident4()
	r.defaultShader = nil
	r.cullFace = hal.FaceBack
	r.polygonMode = hal.PolygonFill
}

// Clear drops all commands and keeps the configuration.
func (r *Rvm) Clear() {
	r.commands = r.commands[:0]
}

// Len returns the number of commands emitted since the last reset or flush.
func (r *Rvm) Len() int { return len(r.commands) }

// Commands returns the commands emitted since the last reset or flush in
// emission order.
func (r *Rvm) Commands() []Command { return r.commands }

// Cap returns the arena capacity.
func (r *Rvm) Cap() int { return cap(r.commands) }

// SetRasterization overrides the policy of one mode until the next Reset.
func (r *Rvm) SetRasterization(mode RenderMode, policy Rasterization) {
	if mode >= TotalRenderModes {
		panic(fmt.Sprintf("rvm: invalid render mode %d", mode))
	}
	r.rasterization[mode] = policy
}

// SetRasterizationMask applies policy to every mode in mask; other modes
// keep their current policy.
func (r *Rvm) SetRasterizationMask(mask RenderModeMask, policy Rasterization) {
	for m := Opaque; m < TotalRenderModes; m++ {
		if mask.Has(m) {
			r.rasterization[m] = policy
		}
	}
}

// Rasterization returns the policy currently installed for mode.
func (r *Rvm) Rasterization(mode RenderMode) Rasterization {
	return r.rasterization[mode]
}

// WillRender reports whether commands of mode would be drawn. Emitters
// check it before emitting.
func (r *Rvm) WillRender(mode RenderMode) bool {
	return mode < TotalRenderModes && r.rasterization[mode].Enabled
}

// SetRegister stores a global uniform pushed to every command's shader.
func (r *Rvm) SetRegister(reg Register, value mgl32.Vec4) {
	r.registers[reg] = value
	r.registerMask |= 1 << reg
}

// SetViewProjection stores the matrix bound to u_vp during flush.
func (r *Rvm) SetViewProjection(m mgl32.Mat4) {
	r.viewProjection = m
}

// ViewProjection returns the matrix set by SetViewProjection.
func (r *Rvm) ViewProjection() mgl32.Mat4 {
	return r.viewProjection
}

// SetDefaultShader sets the shader used by commands that carry none.
func (r *Rvm) SetDefaultShader(s hal.Shader) {
	r.defaultShader = s
}

// DefaultShader returns the shader set by SetDefaultShader.
func (r *Rvm) DefaultShader() hal.Shader {
	return r.defaultShader
}

// SetDefaultCullFace sets the face culled during the flush.
func (r *Rvm) SetDefaultCullFace(face hal.TriangleFace) {
	r.cullFace = face
}

// SetDefaultPolygonMode sets the polygon mode used during the flush.
func (r *Rvm) SetDefaultPolygonMode(mode hal.PolygonMode) {
	r.polygonMode = mode
}

// Emit allocates a zeroed command from the arena.
func (r *Rvm) Emit() (*Command, error) {
	n := len(r.commands)
	if n == cap(r.commands) {
		err := fmt.Errorf("%w: capacity %d", ErrArenaExhausted, n)
		logging.Assert(err)
		return nil, err
	}
	r.commands = r.commands[:n+1]
	r.commands[n] = Command{}
	return &r.commands[n], nil
}

// LastFlush returns the counters of the most recent flush.
func (r *Rvm) LastFlush() Stats { return r.last }

// Stats returns the counters accumulated since the last ResetCounters.
func (r *Rvm) Stats() Stats { return r.total }

// Counter returns one accumulated counter.
func (r *Rvm) Counter(c Counter) int { return r.total[c] }

// ResetCounters zeroes the accumulated counters.
func (r *Rvm) ResetCounters() {
	r.total = Stats{}
	r.last = Stats{}
}

func (r *Rvm) shaderOf(c *Command) hal.Shader {
	if c.Shader != nil {
		return c.Shader
	}
	return r.defaultShader
}

// less orders blended commands after opaque ones and back to front, then
// groups by shader ascending, vertex buffer descending and texture slots
// descending.
func (r *Rvm) less(a, b *Command) bool {
	if ba, bb := a.Mode.Blended(), b.Mode.Blended(); ba != bb {
		return bb
	} else if ba && a.Distance != b.Distance {
		return a.Distance > b.Distance
	}

	if sa, sb := hal.ShaderID(r.shaderOf(a)), hal.ShaderID(r.shaderOf(b)); sa != sb {
		return sa < sb
	}
	if va, vb := hal.VertexBufferID(a.VertexBuffer), hal.VertexBufferID(b.VertexBuffer); va != vb {
		return va > vb
	}
	for i := 0; i < hal.MaxTextureSlots; i++ {
		if ta, tb := hal.TextureID(a.Textures[i]), hal.TextureID(b.Textures[i]); ta != tb {
			return ta > tb
		}
	}
	return false
}

// Flush sorts the commands, issues them to the HAL and restores the default
// bindings: no shader, no vertex buffer, every texture slot unbound, depth
// test LessEqual with writes on, blending and alpha test disabled. The
// command list is empty afterwards.
func (r *Rvm) Flush() Stats {
	defer profiling.Track("rvm.Flush")()

	var stats Stats
	stats[Commands] = len(r.commands)

	// Emitters check WillRender; commands of disabled modes that still
	// reach the buffer are counted and dropped.
	r.order = r.order[:0]
	for i := range r.commands {
		if !r.rasterization[r.commands[i].Mode].Enabled {
			stats[Skipped]++
			continue
		}
		r.order = append(r.order, int32(i))
	}
	sort.SliceStable(r.order, func(i, j int) bool {
		return r.less(&r.commands[r.order[i]], &r.commands[r.order[j]])
	})

	h := r.hal
	h.SetCulling(r.cullFace)
	h.SetPolygonMode(r.polygonMode)

	var (
		activeShader  hal.Shader
		activeVB      uint32
		activeTexture [hal.MaxTextureSlots]uint32
		activeMode    = TotalRenderModes
	)
	for _, idx := range r.order {
		cmd := &r.commands[idx]

		shader := r.shaderOf(cmd)
		if shader == nil {
			stats[Skipped]++
			continue
		}

		if cmd.Mode != activeMode {
			r.applyRasterization(r.rasterization[cmd.Mode])
			activeMode = cmd.Mode
			stats[ModeSwitches]++
		}

		if activeShader == nil || shader.ID() != activeShader.ID() {
			h.SetShader(shader)
			r.bindGlobals(shader)
			activeShader = shader
			stats[ShaderSwitches]++
		}

		for slot := range cmd.Textures {
			if id := hal.TextureID(cmd.Textures[slot]); id != activeTexture[slot] {
				h.SetTexture(slot, cmd.Textures[slot])
				activeTexture[slot] = id
				stats[TextureSwitches]++
			}
		}

		if id := hal.VertexBufferID(cmd.VertexBuffer); id != activeVB {
			h.SetVertexBuffer(cmd.VertexBuffer)
			activeVB = id
			stats[VertexBufferSwitches]++
		}

		for i := 0; i < MaxColors; i++ {
			if v, ok := cmd.Color(i); ok {
				shader.SetVec4(shader.Location(colorUniforms[i]), v)
			}
		}
		shader.SetMat4(shader.Location(transformUniform), cmd.Transform)

		r.draw(cmd, &stats)
	}

	h.SetShader(nil)
	h.SetVertexBuffer(nil)
	for slot := 0; slot < hal.MaxTextureSlots; slot++ {
		h.SetTexture(slot, nil)
	}
	h.SetDepthTest(true, hal.LessEqual)
	h.SetBlendFactors(hal.BlendDisabled, hal.BlendDisabled)
	h.SetAlphaTest(hal.CompareDisabled, 0)
	if r.cullFace != hal.FaceBack {
		h.SetCulling(hal.FaceBack)
	}
	if r.polygonMode != hal.PolygonFill {
		h.SetPolygonMode(hal.PolygonFill)
	}

	r.commands = r.commands[:0]
	r.last = stats
	r.total.Add(stats)
	if stats[Commands] > 0 {
		logging.Logger().Debug("rvm flush", stats.attrs()...)
	}
	return stats
}

func (r *Rvm) applyRasterization(p Rasterization) {
	if p.blending() {
		r.hal.SetBlendFactors(p.Blend[0], p.Blend[1])
	} else {
		r.hal.SetBlendFactors(hal.BlendDisabled, hal.BlendDisabled)
	}
	r.hal.SetAlphaTest(p.AlphaTest, p.AlphaRef)
	r.hal.SetDepthTest(p.DepthWrite, p.DepthTest)
}

// bindGlobals pushes the view-projection, registers and sampler units to a
// freshly bound shader.
func (r *Rvm) bindGlobals(s hal.Shader) {
	s.SetMat4(s.Location(viewProjectionUniform), r.viewProjection)
	for reg := Register(0); reg < TotalRegisters; reg++ {
		if r.registerMask&(1<<reg) != 0 {
			s.SetVec4(s.Location(reg.Uniform()), r.registers[reg])
		}
	}
	for slot, name := range samplerUniforms {
		s.SetInt(s.Location(name), int32(slot))
	}
}

func (r *Rvm) draw(cmd *Command, stats *Stats) {
	count := cmd.Count
	if cmd.IndexBuffer != nil {
		if count == 0 {
			count = cmd.IndexBuffer.Len() - cmd.First
		}
		r.hal.RenderIndexed(cmd.Primitive, cmd.IndexBuffer, cmd.First, count)
	} else {
		if count == 0 && cmd.VertexBuffer != nil {
			count = cmd.VertexBuffer.Len() - cmd.First
		}
		r.hal.RenderPrimitives(cmd.Primitive, cmd.First, count)
	}
	stats[DrawCalls]++
	stats[Vertices] += count
	if cmd.Primitive == hal.PrimTriangles {
		stats[Triangles] += count / 3
	}
}
