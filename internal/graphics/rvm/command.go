package rvm

import (
	"fmt"

	"scenerender/internal/hal"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxColors is the number of per-command colour parameters.
const MaxColors = 8

// Register is a global shader uniform set once per pass.
type Register uint8

const (
	ConstantColor Register = iota
	LightPosition
	LightColor

	TotalRegisters
)

var registerUniforms = [TotalRegisters]string{"u_color", "u_lightPosition", "u_lightColor"}

// Uniform returns the shader uniform the register is bound to.
func (r Register) Uniform() string {
	return registerUniforms[r]
}

// Uniform names used by Flush.
var (
	samplerUniforms [hal.MaxTextureSlots]string
	colorUniforms   [MaxColors]string
)

const (
	transformUniform      = "u_transform"
	viewProjectionUniform = "u_vp"
)

func init() {
	for i := range samplerUniforms {
		samplerUniforms[i] = fmt.Sprintf("u_tex%d", i)
	}
	for i := range colorUniforms {
		colorUniforms[i] = fmt.Sprintf("u_clr%d", i)
	}
}

// Command is one draw unit. Commands live in the Rvm arena and are only
// valid until the next Reset, Clear or Flush.
type Command struct {
	Mode RenderMode
	// Distance is the camera distance normalized by the far plane. Only
	// read for blended modes.
	Distance float32

	// Shader may be nil, in which case the buffer's default shader is used.
	Shader       hal.Shader
	VertexBuffer hal.VertexBuffer
	// IndexBuffer selects an indexed draw; when nil the vertex buffer is
	// drawn directly.
	IndexBuffer hal.IndexBuffer
	Primitive   hal.PrimitiveType
	// First and Count select a range of the index (or vertex) buffer. A zero
	// Count draws to the end of the buffer.
	First, Count int

	Textures  [hal.MaxTextureSlots]hal.Texture
	Transform mgl32.Mat4

	colors    [MaxColors]mgl32.Vec4
	colorMask uint8
}

// SetColor sets colour parameter i.
func (c *Command) SetColor(i int, v mgl32.Vec4) {
	c.colors[i] = v
	c.colorMask |= 1 << i
}

// Color returns colour parameter i and whether it was set.
func (c *Command) Color(i int) (mgl32.Vec4, bool) {
	return c.colors[i], c.colorMask&(1<<i) != 0
}
