package rvm

import "scenerender/internal/hal"

// Rasterization is the blend, alpha-test and depth state applied to every
// command of one render mode. Values are copied; the With helpers return a
// modified copy and never touch the presets.
type Rasterization struct {
	Enabled    bool
	Blend      [2]hal.BlendFactor
	AlphaTest  hal.Compare
	AlphaRef   float32
	DepthWrite bool
	DepthTest  hal.Compare
}

// Skip disables rendering of a mode.
var Skip = Rasterization{}

var presets = [TotalRenderModes]Rasterization{
	Opaque: {
		Enabled:    true,
		Blend:      [2]hal.BlendFactor{hal.BlendDisabled, hal.BlendDisabled},
		AlphaTest:  hal.CompareDisabled,
		DepthWrite: true,
		DepthTest:  hal.LessEqual,
	},
	Cutout: {
		Enabled:    true,
		Blend:      [2]hal.BlendFactor{hal.BlendDisabled, hal.BlendDisabled},
		AlphaTest:  hal.Greater,
		AlphaRef:   0.5,
		DepthWrite: true,
		DepthTest:  hal.LessEqual,
	},
	Translucent: {
		Enabled:    true,
		Blend:      [2]hal.BlendFactor{hal.BlendSrcAlpha, hal.BlendInvSrcAlpha},
		AlphaTest:  hal.CompareDisabled,
		DepthWrite: false,
		DepthTest:  hal.LessEqual,
	},
	Additive: {
		Enabled:    true,
		Blend:      [2]hal.BlendFactor{hal.BlendOne, hal.BlendOne},
		AlphaTest:  hal.CompareDisabled,
		DepthWrite: false,
		DepthTest:  hal.LessEqual,
	},
}

// Preset returns the built-in policy of a render mode.
func Preset(mode RenderMode) Rasterization {
	return presets[mode]
}

// WithDepthWrite returns a copy with depth writes set.
func (r Rasterization) WithDepthWrite(write bool) Rasterization {
	r.DepthWrite = write
	return r
}

// WithDepthTest returns a copy with the depth function set.
func (r Rasterization) WithDepthTest(fn hal.Compare) Rasterization {
	r.DepthTest = fn
	return r
}

// WithBlending returns a copy with the blend factors set.
func (r Rasterization) WithBlending(src, dst hal.BlendFactor) Rasterization {
	r.Blend = [2]hal.BlendFactor{src, dst}
	return r
}

// WithAlphaTest returns a copy with the alpha test set.
func (r Rasterization) WithAlphaTest(fn hal.Compare, ref float32) Rasterization {
	r.AlphaTest = fn
	r.AlphaRef = ref
	return r
}

func (r Rasterization) blending() bool {
	return r.Blend[0] != hal.BlendDisabled && r.Blend[1] != hal.BlendDisabled
}
