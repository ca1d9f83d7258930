// Package scene stores renderable components in an ark ECS world and
// exposes typed indices the rendering pipeline iterates.
package scene

import (
	"sort"

	"github.com/mlange-42/ark/ecs"
)

// Entity identifies a scene object.
type Entity = ecs.Entity

// Index iterates the entities that carry a component C and a Transform.
type Index[C any] struct {
	filter *ecs.Filter2[C, Transform]
}

func newIndex[C any](w *ecs.World) *Index[C] {
	return &Index[C]{filter: ecs.NewFilter2[C, Transform](w)}
}

// Each calls fn for every matching entity and stops at the first error.
func (ix *Index[C]) Each(fn func(e Entity, c *C, t *Transform) error) error {
	query := ix.filter.Query()
	for query.Next() {
		c, t := query.Get()
		if err := fn(query.Entity(), c, t); err != nil {
			query.Close()
			return err
		}
	}
	return nil
}

// Len returns the number of matching entities.
func (ix *Index[C]) Len() int {
	query := ix.filter.Query()
	n := query.Count()
	query.Close()
	return n
}

// World owns the scene entities. It is not safe for concurrent use.
type World struct {
	ecs *ecs.World

	meshes    *ecs.Map2[StaticMesh, Transform]
	cameras   *ecs.Map2[Camera, Transform]
	lights    *ecs.Map2[Light, Transform]
	particles *ecs.Map2[Particles, Transform]
	sprites   *ecs.Map2[Sprite, Transform]

	transforms *ecs.Map[Transform]

	meshIndex     *Index[StaticMesh]
	cameraIndex   *Index[Camera]
	lightIndex    *Index[Light]
	particleIndex *Index[Particles]
	spriteIndex   *Index[Sprite]
}

// NewWorld creates an empty scene.
func NewWorld() *World {
	w := &World{ecs: ecs.NewWorld()}
	w.meshes = ecs.NewMap2[StaticMesh, Transform](w.ecs)
	w.cameras = ecs.NewMap2[Camera, Transform](w.ecs)
	w.lights = ecs.NewMap2[Light, Transform](w.ecs)
	w.particles = ecs.NewMap2[Particles, Transform](w.ecs)
	w.sprites = ecs.NewMap2[Sprite, Transform](w.ecs)
	w.transforms = ecs.NewMap[Transform](w.ecs)

	w.meshIndex = newIndex[StaticMesh](w.ecs)
	w.cameraIndex = newIndex[Camera](w.ecs)
	w.lightIndex = newIndex[Light](w.ecs)
	w.particleIndex = newIndex[Particles](w.ecs)
	w.spriteIndex = newIndex[Sprite](w.ecs)
	return w
}

func (w *World) AddStaticMesh(m StaticMesh, t Transform) Entity {
	return w.meshes.NewEntity(&m, &t)
}

func (w *World) AddCamera(c Camera, t Transform) Entity {
	return w.cameras.NewEntity(&c, &t)
}

func (w *World) AddLight(l Light, t Transform) Entity {
	return w.lights.NewEntity(&l, &t)
}

func (w *World) AddParticles(p Particles, t Transform) Entity {
	return w.particles.NewEntity(&p, &t)
}

func (w *World) AddSprite(s Sprite, t Transform) Entity {
	return w.sprites.NewEntity(&s, &t)
}

// Remove deletes an entity and its components.
func (w *World) Remove(e Entity) {
	w.ecs.RemoveEntity(e)
}

// Alive reports whether e still exists.
func (w *World) Alive(e Entity) bool {
	return w.ecs.Alive(e)
}

// Camera returns the camera components of e.
func (w *World) Camera(e Entity) (*Camera, *Transform) {
	return w.cameras.Get(e)
}

// StaticMesh returns the mesh components of e.
func (w *World) StaticMesh(e Entity) (*StaticMesh, *Transform) {
	return w.meshes.Get(e)
}

// Transform returns the transform of e, or nil when it has none.
func (w *World) Transform(e Entity) *Transform {
	if !w.transforms.Has(e) {
		return nil
	}
	return w.transforms.Get(e)
}

func (w *World) StaticMeshes() *Index[StaticMesh] { return w.meshIndex }
func (w *World) Cameras() *Index[Camera]          { return w.cameraIndex }
func (w *World) Lights() *Index[Light]            { return w.lightIndex }
func (w *World) Particles() *Index[Particles]     { return w.particleIndex }
func (w *World) Sprites() *Index[Sprite]          { return w.spriteIndex }

// CameraRef is a camera entity with its components.
type CameraRef struct {
	Entity    Entity
	Camera    *Camera
	Transform *Transform
}

// SortedCameras returns every camera ordered by ID, then by creation.
func (w *World) SortedCameras() []CameraRef {
	var out []CameraRef
	_ = w.cameraIndex.Each(func(e Entity, c *Camera, t *Transform) error {
		out = append(out, CameraRef{Entity: e, Camera: c, Transform: t})
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Camera.ID < out[j].Camera.ID
	})
	return out
}

// BeginFrame re-arms every camera's one-shot clear. Call once per frame
// before rendering.
func (w *World) BeginFrame() {
	_ = w.cameraIndex.Each(func(_ Entity, c *Camera, _ *Transform) error {
		c.ResetClear()
		return nil
	})
}
