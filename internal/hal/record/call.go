package record

import (
	"fmt"
	"image"

	"scenerender/internal/hal"

	"github.com/go-gl/mathgl/mgl32"
)

// Op identifies a recorded device call.
type Op uint8

const (
	OpCreateShader Op = iota
	OpSetShader
	OpSetTexture
	OpSetVertexBuffer
	OpRenderIndexed
	OpRenderPrimitives
	OpSetViewport
	OpSetScissorTest
	OpClear
	OpSetDepthTest
	OpSetAlphaTest
	OpSetBlendFactors
	OpSetCulling
	OpSetPolygonMode
	OpCreateTexture
)

var opNames = [...]string{
	OpCreateShader:     "CreateShader",
	OpSetShader:        "SetShader",
	OpSetTexture:       "SetTexture",
	OpSetVertexBuffer:  "SetVertexBuffer",
	OpRenderIndexed:    "RenderIndexed",
	OpRenderPrimitives: "RenderPrimitives",
	OpSetViewport:      "SetViewport",
	OpSetScissorTest:   "SetScissorTest",
	OpClear:            "Clear",
	OpSetDepthTest:     "SetDepthTest",
	OpSetAlphaTest:     "SetAlphaTest",
	OpSetBlendFactors:  "SetBlendFactors",
	OpSetCulling:       "SetCulling",
	OpSetPolygonMode:   "SetPolygonMode",
	OpCreateTexture:    "CreateTexture",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "Unknown"
}

// Call is one recorded device call. Only the fields relevant to Op are set.
// Draw calls also capture the shader, vertex buffer and blend state that
// were bound when they were issued.
type Call struct {
	Op Op

	Shader       uint32
	Slot         int
	Texture      uint32
	VertexBuffer uint32
	IndexBuffer  uint32

	Primitive hal.PrimitiveType
	First     int
	Count     int

	Rect    image.Rectangle
	Enabled bool

	Color mgl32.Vec4
	Depth float32
	Mask  hal.ClearMask

	Write   bool
	Compare hal.Compare
	Ref     float32
	Blend   [2]hal.BlendFactor
	Face    hal.TriangleFace
	Polygon hal.PolygonMode
}

func (c Call) String() string {
	switch c.Op {
	case OpSetShader:
		return fmt.Sprintf("%s(%d)", c.Op, c.Shader)
	case OpSetTexture:
		return fmt.Sprintf("%s(%d, %d)", c.Op, c.Slot, c.Texture)
	case OpSetVertexBuffer:
		return fmt.Sprintf("%s(%d)", c.Op, c.VertexBuffer)
	case OpRenderIndexed:
		return fmt.Sprintf("%s(%s, ib=%d, %d, %d)", c.Op, c.Primitive, c.IndexBuffer, c.First, c.Count)
	case OpRenderPrimitives:
		return fmt.Sprintf("%s(%s, %d, %d)", c.Op, c.Primitive, c.First, c.Count)
	case OpClear:
		return fmt.Sprintf("%s(mask=%d)", c.Op, c.Mask)
	case OpSetDepthTest:
		return fmt.Sprintf("%s(%t, %s)", c.Op, c.Write, c.Compare)
	case OpSetBlendFactors:
		return fmt.Sprintf("%s(%s, %s)", c.Op, c.Blend[0], c.Blend[1])
	}
	return c.Op.String()
}
