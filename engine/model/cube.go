package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// cubeFaces lists the outward normal of each face and two in-plane axes with u × v = normal,
// so corners emitted in (-u-v, +u-v, +u+v, -u+v) order wind counter-clockwise from outside.
var cubeFaces = [6]struct{ normal, u, v mgl32.Vec3 }{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
}

// cubeEdges pairs the corner indices of cubeCorners that share an edge.
var cubeEdges = [12][2]uint32{
	{0, 1}, {1, 3}, {3, 2}, {2, 0}, // bottom (y = -0.5)
	{4, 5}, {5, 7}, {7, 6}, {6, 4}, // top (y = +0.5)
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // verticals
}

// NewCubeModel creates a unit cube centered at the origin for filled rendering:
// 24 vertices (4 per face, each with the face normal) and 36 triangle-list indices.
//
// Returns:
//   - Model: the solid cube model
func NewCubeModel() Model {
	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)

	for _, f := range cubeFaces {
		center := f.normal.Mul(0.5)
		u := f.u.Mul(0.5)
		v := f.v.Mul(0.5)
		base := uint32(len(vertices))
		vertices = append(vertices,
			GPUVertex{Position: center.Sub(u).Sub(v), Normal: f.normal},
			GPUVertex{Position: center.Add(u).Sub(v), Normal: f.normal},
			GPUVertex{Position: center.Add(u).Add(v), Normal: f.normal},
			GPUVertex{Position: center.Sub(u).Add(v), Normal: f.normal},
		)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return NewModel(WithName("cube"), WithVertices(vertices), WithIndices(indices))
}

// NewCubeWireModel creates the 12 edges of a unit cube centered at the origin for line-list rendering:
// 8 corner vertices and 24 indices.
//
// Returns:
//   - Model: the wireframe cube model
func NewCubeWireModel() Model {
	vertices := make([]GPUVertex, 0, 8)
	for i := range 8 {
		p := mgl32.Vec3{-0.5, -0.5, -0.5}
		if i&1 != 0 {
			p[0] = 0.5
		}
		if i&2 != 0 {
			p[2] = 0.5
		}
		if i&4 != 0 {
			p[1] = 0.5
		}
		// Corner normals point away from the center.
		vertices = append(vertices, GPUVertex{Position: p, Normal: p.Normalize()})
	}

	indices := make([]uint32, 0, 24)
	for _, e := range cubeEdges {
		indices = append(indices, e[0], e[1])
	}

	return NewModel(WithName("cube_wire"), WithVertices(vertices), WithIndices(indices))
}
