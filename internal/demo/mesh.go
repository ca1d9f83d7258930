// Package demo builds the sample scene shown by the viewer and capture
// tools.
package demo

import (
	"fmt"
	"image"
	"image/color"

	"scenerender/internal/graphics/frustum"
	"scenerender/internal/hal"
	"scenerender/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// cubeVertices holds position and normal for the 36 corners of a unit cube.
var cubeVertices = []float32{
	-0.5, -0.5, 0.5, 0, 0, 1,
	0.5, -0.5, 0.5, 0, 0, 1,
	0.5, 0.5, 0.5, 0, 0, 1,
	0.5, 0.5, 0.5, 0, 0, 1,
	-0.5, 0.5, 0.5, 0, 0, 1,
	-0.5, -0.5, 0.5, 0, 0, 1,
	0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, 0.5, -0.5, 0, 0, -1,
	-0.5, 0.5, -0.5, 0, 0, -1,
	0.5, 0.5, -0.5, 0, 0, -1,
	0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, -0.5, -0.5, -1, 0, 0,
	-0.5, -0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, -0.5, -1, 0, 0,
	-0.5, -0.5, -0.5, -1, 0, 0,
	0.5, -0.5, 0.5, 1, 0, 0,
	0.5, -0.5, -0.5, 1, 0, 0,
	0.5, 0.5, -0.5, 1, 0, 0,
	0.5, 0.5, -0.5, 1, 0, 0,
	0.5, 0.5, 0.5, 1, 0, 0,
	0.5, -0.5, 0.5, 1, 0, 0,
	-0.5, 0.5, 0.5, 0, 1, 0,
	0.5, 0.5, 0.5, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0,
	-0.5, 0.5, -0.5, 0, 1, 0,
	-0.5, 0.5, 0.5, 0, 1, 0,
	-0.5, -0.5, -0.5, 0, -1, 0,
	0.5, -0.5, -0.5, 0, -1, 0,
	0.5, -0.5, 0.5, 0, -1, 0,
	0.5, -0.5, 0.5, 0, -1, 0,
	-0.5, -0.5, 0.5, 0, -1, 0,
	-0.5, -0.5, -0.5, 0, -1, 0,
}

// faceUVs maps the six corners of each face to texture coordinates.
var faceUVs = [6][2]float32{{0, 0}, {1, 0}, {1, 1}, {1, 1}, {0, 1}, {0, 0}}

// CubeVertices returns the unit cube in hal.LayoutMesh.
func CubeVertices() []float32 {
	const corners = 36
	out := make([]float32, 0, corners*hal.LayoutMesh.Stride())
	for i := 0; i < corners; i++ {
		v := cubeVertices[i*6 : i*6+6]
		uv := faceUVs[i%6]
		out = append(out, v[0], v[1], v[2], v[3], v[4], v[5], uv[0], uv[1], uv[0], uv[1])
	}
	return out
}

// Cube uploads a unit cube with the given number of chunks. Each chunk
// covers a contiguous range of faces and can carry its own material.
func Cube(h hal.Hal, chunks int) (*scene.Mesh, error) {
	if chunks < 1 || chunks > 6 {
		return nil, fmt.Errorf("demo: cube chunks must be 1..6, got %d", chunks)
	}
	data := CubeVertices()
	vb, err := h.CreateVertexBuffer(hal.LayoutMesh, 36, false)
	if err != nil {
		return nil, err
	}
	if err := vb.SetData(data); err != nil {
		return nil, err
	}

	indices := make([]uint16, 36)
	for i := range indices {
		indices[i] = uint16(i)
	}
	ib, err := h.CreateIndexBuffer(indices)
	if err != nil {
		return nil, err
	}

	bounds := frustum.Bounds{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}}
	mesh := &scene.Mesh{Name: "cube", Bounds: bounds}
	faces := 6 / chunks
	for c := 0; c < chunks; c++ {
		n := faces
		if c == chunks-1 {
			n = 6 - faces*c
		}
		mesh.Chunks = append(mesh.Chunks, scene.MeshChunk{
			VertexBuffer: vb,
			IndexBuffer:  ib,
			Primitive:    hal.PrimTriangles,
			First:        c * faces * 6,
			Count:        n * 6,
			Bounds:       bounds,
		})
	}
	return mesh, nil
}

// Checker returns a size x size checkerboard of two colours in 4px cells.
func Checker(size int, a, b color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/4+y/4)%2 == 0 {
				img.Set(x, y, a)
			} else {
				img.Set(x, y, b)
			}
		}
	}
	return img
}

// Dot returns a round sprite with soft edges.
func Dot(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float32(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := mgl32.Vec2{float32(x) - c, float32(y) - c}.Len() / c
			a := mgl32.Clamp(1-d, 0, 1)
			img.Set(x, y, color.RGBA{255, 255, 255, uint8(a * 255)})
		}
	}
	return img
}
