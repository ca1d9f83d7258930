package rvm

import "fmt"

// RenderMode is the blending category of a command.
type RenderMode uint8

const (
	Opaque RenderMode = iota
	Cutout
	Translucent
	Additive

	TotalRenderModes
)

var renderModeNames = [TotalRenderModes]string{"Opaque", "Cutout", "Translucent", "Additive"}

func (m RenderMode) String() string {
	if m < TotalRenderModes {
		return renderModeNames[m]
	}
	return fmt.Sprintf("RenderMode(%d)", uint8(m))
}

// Bit returns the mask bit of m.
func (m RenderMode) Bit() RenderModeMask {
	return 1 << m
}

// Blended reports whether commands of this mode are ordered back to front.
func (m RenderMode) Blended() bool {
	return m == Translucent || m == Additive
}

// RenderModeMask is a set of render modes.
type RenderModeMask uint8

const (
	OpaqueBit      = RenderModeMask(1 << Opaque)
	CutoutBit      = RenderModeMask(1 << Cutout)
	TranslucentBit = RenderModeMask(1 << Translucent)
	AdditiveBit    = RenderModeMask(1 << Additive)

	BlendedModes   = TranslucentBit | AdditiveBit
	AllRenderModes = OpaqueBit | CutoutBit | TranslucentBit | AdditiveBit
)

// Has reports whether m contains mode.
func (m RenderModeMask) Has(mode RenderMode) bool {
	return m&mode.Bit() != 0
}
