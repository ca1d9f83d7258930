// Package emitters converts scene components into command buffer commands
// and debug lines.
package emitters

import (
	"scenerender/internal/graphics/renderer"
	"scenerender/internal/graphics/rvm"
	"scenerender/internal/graphics/shaders"
	"scenerender/internal/hal"
	"scenerender/internal/profiling"
	"scenerender/internal/scene"
)

// Feature selects which material properties a StaticMeshes emitter reads.
type Feature uint8

const (
	// Diffuse binds the material diffuse texture to slot 0.
	Diffuse Feature = 1 << iota
	// Shader resolves the command shader from the material.
	Shader
	// RenderingMode takes the render mode from the material; otherwise
	// every command is opaque.
	RenderingMode
	// Distance fills the camera distance of blended commands.
	Distance
	// LightModel resolves lighting-model shaders through the cache.
	LightModel
	// Colors binds the material colours.
	Colors

	Unlit = Diffuse | Shader | RenderingMode | Distance
	Lit   = Unlit | LightModel | Colors
)

// StaticMeshes emits one command per visible mesh chunk.
type StaticMeshes struct {
	index    *scene.Index[scene.StaticMesh]
	features Feature

	model    shaders.Model
	override bool
}

// NewStaticMeshes creates an emitter over index reading the given features.
func NewStaticMeshes(index *scene.Index[scene.StaticMesh], features Feature) *StaticMeshes {
	return &StaticMeshes{index: index, features: features}
}

// WithModel forces every material onto one lighting model.
func (e *StaticMeshes) WithModel(m shaders.Model) *StaticMeshes {
	e.model = m
	e.override = true
	return e
}

// Features returns the feature set.
func (e *StaticMeshes) Features() Feature {
	return e.features
}

func (e *StaticMeshes) Emit(ctx *renderer.Context, view *renderer.View) error {
	defer profiling.Track("emitters.StaticMeshes")()

	r := ctx.Rvm()
	tag := view.Tag()
	return e.index.Each(func(_ scene.Entity, m *scene.StaticMesh, t *scene.Transform) error {
		if m.Mesh == nil || !m.IsVisible(tag) {
			return nil
		}

		world := t.Matrix()
		for i := range m.Mesh.Chunks {
			chunk := &m.Mesh.Chunks[i]
			mat := m.Material(i)

			mode := rvm.Opaque
			if e.features&RenderingMode != 0 && mat != nil {
				mode = mat.Mode
			}
			if !r.WillRender(mode) {
				continue
			}

			cmd, err := r.Emit()
			if err != nil {
				return err
			}
			cmd.Mode = mode
			cmd.VertexBuffer = chunk.VertexBuffer
			cmd.IndexBuffer = chunk.IndexBuffer
			cmd.Primitive = chunk.Primitive
			cmd.First = chunk.First
			cmd.Count = chunk.Count
			cmd.Transform = world

			if mat != nil {
				if e.features&Diffuse != 0 && mat.Diffuse != nil {
					cmd.Textures[0] = mat.Diffuse
				}
				if e.features&Shader != 0 {
					cmd.Shader = e.shader(ctx, mat)
				}
				if e.features&Colors != 0 {
					for j, c := range mat.Colors {
						if j == rvm.MaxColors {
							break
						}
						cmd.SetColor(j, c)
					}
				}
			}

			if e.features&Distance != 0 && mode.Blended() {
				center := chunk.Bounds.Transformed(world).Center()
				cmd.Distance = view.Distance(center)
			}
		}
		return nil
	})
}

// shader returns the explicit material shader, or the lighting-model shader
// when LightModel is set. A nil result selects the pass default.
func (e *StaticMeshes) shader(ctx *renderer.Context, mat *scene.Material) hal.Shader {
	if mat.Shader != shaders.NoShader {
		if s := ctx.Shaders().ShaderByID(mat.Shader); s != nil {
			return s
		}
	}
	if e.features&LightModel == 0 {
		return nil
	}

	model := mat.Model
	if e.override {
		model = e.model
	}
	var features shaders.Feature
	if e.features&Diffuse != 0 && mat.Diffuse != nil {
		features |= shaders.FeatureDiffuse
	}
	return ctx.Shaders().MaterialShader(model, features)
}
