package demo

import (
	"image/color"
	"math"

	"scenerender/internal/graphics/rvm"
	"scenerender/internal/graphics/shaders"
	"scenerender/internal/hal"
	"scenerender/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene is the populated world plus the entities the tools animate.
type Scene struct {
	World   *scene.World
	Cameras []scene.Entity
	Lights  []scene.Entity
	Spinner scene.Entity

	orbit float32
}

// Build fills a new world with a floor, a ring of cubes in every render
// mode, point lights, a particle fountain and a sprite. Cameras draw into
// target: a main camera, and a second one side by side when split is set.
func Build(h hal.Hal, target scene.View, split bool) (*Scene, error) {
	w := scene.NewWorld()
	s := &Scene{World: w}

	cube, err := Cube(h, 1)
	if err != nil {
		return nil, err
	}
	twoTone, err := Cube(h, 2)
	if err != nil {
		return nil, err
	}

	stone, err := h.CreateTexture2D(Checker(32, color.RGBA{150, 150, 150, 255}, color.RGBA{90, 90, 100, 255}))
	if err != nil {
		return nil, err
	}
	grate, err := h.CreateTexture2D(Checker(32, color.RGBA{200, 120, 40, 255}, color.RGBA{}))
	if err != nil {
		return nil, err
	}
	dot, err := h.CreateTexture2D(Dot(16))
	if err != nil {
		return nil, err
	}

	floor := scene.NewTransform(mgl32.Vec3{0, -1, 0})
	floor.Scale = mgl32.Vec3{20, 1, 20}
	w.AddStaticMesh(scene.StaticMesh{
		Mesh:      cube,
		Materials: []*scene.Material{{Mode: rvm.Opaque, Model: shaders.Phong, Diffuse: stone, Colors: []mgl32.Vec4{{1, 1, 1, 1}}}},
	}, floor)

	materials := []*scene.Material{
		{Mode: rvm.Opaque, Model: shaders.Phong, Diffuse: stone, Colors: []mgl32.Vec4{{1, 0.8, 0.8, 1}}},
		{Mode: rvm.Cutout, Model: shaders.Phong, Diffuse: grate, Colors: []mgl32.Vec4{{1, 1, 1, 1}}},
		{Mode: rvm.Translucent, Model: shaders.Unlit, Colors: []mgl32.Vec4{{0.3, 0.6, 1, 0.5}}},
		{Mode: rvm.Additive, Model: shaders.Unlit, Colors: []mgl32.Vec4{{1, 0.4, 0.1, 1}}},
	}
	const ring = 8
	for i := 0; i < ring; i++ {
		a := float64(i) / ring * 2 * math.Pi
		t := scene.NewTransform(mgl32.Vec3{float32(math.Cos(a)) * 4, 0, float32(math.Sin(a)) * 4})
		w.AddStaticMesh(scene.StaticMesh{Mesh: cube, Materials: []*scene.Material{materials[i%len(materials)]}}, t)
	}

	s.Spinner = w.AddStaticMesh(scene.StaticMesh{
		Mesh:      twoTone,
		Materials: []*scene.Material{materials[0], {Mode: rvm.Opaque, Shader: shaders.Normals}},
	}, scene.NewTransform(mgl32.Vec3{0, 0.5, 0}))

	lights := []scene.Light{
		{Type: scene.PointLight, Color: mgl32.Vec3{1, 0.6, 0.3}, Intensity: 1.5, Range: 6},
		{Type: scene.PointLight, Color: mgl32.Vec3{0.3, 0.6, 1}, Intensity: 1.5, Range: 6},
		{Type: scene.DirectionalLight, Color: mgl32.Vec3{1, 1, 1}, Intensity: 0.2},
	}
	for _, l := range lights {
		s.Lights = append(s.Lights, w.AddLight(l, scene.NewTransform(mgl32.Vec3{0, 2, 0})))
	}

	fountain := scene.Particles{Texture: dot, Mode: rvm.Additive, Color: mgl32.Vec4{1, 0.8, 0.4, 1}, Size: 0.2}
	for i := 0; i < 64; i++ {
		a := float64(i) * 0.7
		fountain.Positions = append(fountain.Positions,
			mgl32.Vec3{float32(math.Cos(a)) * 0.5, float32(i) * 0.05, float32(math.Sin(a)) * 0.5})
	}
	w.AddParticles(fountain, scene.NewTransform(mgl32.Vec3{0, 1.5, 0}))

	sprite := scene.NewSprite(dot, 1, 1)
	sprite.Color = mgl32.Vec4{0.6, 1, 0.6, 0.8}
	w.AddSprite(sprite, scene.NewTransform(mgl32.Vec3{-2, 2.5, -2}))

	cam := scene.NewCamera(0, target)
	cam.Background = mgl32.Vec4{0.08, 0.09, 0.12, 1}
	if split {
		cam.NDC = scene.Rect{X: 0, Y: 0, Width: 0.5, Height: 1}
	}
	s.Cameras = append(s.Cameras, w.AddCamera(cam, scene.LookAt(mgl32.Vec3{0, 5, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})))

	if split {
		top := scene.NewCamera(1, target)
		top.NDC = scene.Rect{X: 0.5, Y: 0, Width: 0.5, Height: 1}
		top.Background = mgl32.Vec4{0.12, 0.09, 0.08, 1}
		s.Cameras = append(s.Cameras, w.AddCamera(top, scene.LookAt(mgl32.Vec3{0, 14, 0.01}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})))
	}

	s.Update(0)
	return s, nil
}

// Update animates lights and the spinner to time t in seconds.
func (s *Scene) Update(t float64) {
	for i, e := range s.Lights[:2] {
		a := t*0.8 + float64(i)*math.Pi
		tr := s.World.Transform(e)
		tr.Position = mgl32.Vec3{float32(math.Cos(a)) * 3, 1.5, float32(math.Sin(a)) * 3}
	}
	if tr := s.World.Transform(s.Spinner); tr != nil {
		tr.Rotation = mgl32.QuatRotate(float32(t), mgl32.Vec3{0, 1, 0})
	}
}

// Orbit rotates the main camera around the origin by delta radians and
// moves it by zoom along its view axis.
func (s *Scene) Orbit(delta, zoom float32) {
	tr := s.World.Transform(s.Cameras[0])
	if tr == nil {
		return
	}
	s.orbit += delta
	dist := mgl32.Vec2{tr.Position[0], tr.Position[2]}.Len() - zoom
	dist = mgl32.Clamp(dist, 2, 40)
	eye := mgl32.Vec3{
		float32(math.Sin(float64(s.orbit))) * dist,
		tr.Position[1],
		float32(math.Cos(float64(s.orbit))) * dist,
	}
	*tr = scene.LookAt(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}
