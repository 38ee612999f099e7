package mesh_test

import (
	"github.com/halfmesh/kernel/mesh"
	"github.com/halfmesh/kernel/vecmath"
)

func vec3(x, y, z float64) vecmath.Vec3 { return vecmath.Vec3{X: x, Y: y, Z: z} }

// buildCube returns an axis-aligned unit cube (vertices at +-1 on
// every axis) with 6 quad faces, wound outward. Used across this
// package's and rebuild's tests as the canonical "scenario 1" mesh.
func buildCube() (*mesh.Mesh, [8]mesh.VertexHandle) {
	m := mesh.New()
	p := [8]vecmath.Vec3{
		{X: -1, Y: -1, Z: -1}, // 0
		{X: 1, Y: -1, Z: -1},  // 1
		{X: 1, Y: 1, Z: -1},   // 2
		{X: -1, Y: 1, Z: -1},  // 3
		{X: -1, Y: -1, Z: 1},  // 4
		{X: 1, Y: -1, Z: 1},   // 5
		{X: 1, Y: 1, Z: 1},    // 6
		{X: -1, Y: 1, Z: 1},   // 7
	}
	var v [8]mesh.VertexHandle
	for i, pos := range p {
		v[i] = m.AddVertex(pos)
	}
	faces := [6][4]int{
		{0, 3, 2, 1}, // -Z
		{4, 5, 6, 7}, // +Z
		{0, 1, 5, 4}, // -Y
		{3, 7, 6, 2}, // +Y
		{0, 4, 7, 3}, // -X
		{1, 2, 6, 5}, // +X
	}
	for _, fv := range faces {
		_, err := m.AddFace(v[fv[0]], v[fv[1]], v[fv[2]], v[fv[3]])
		if err != nil {
			panic(err)
		}
	}
	return m, v
}
