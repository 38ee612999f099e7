package rebuild_test

import (
	"testing"

	"github.com/halfmesh/kernel/mesh"
	"github.com/halfmesh/kernel/rebuild"
	"github.com/halfmesh/kernel/vecmath"
	"github.com/stretchr/testify/require"
)

// buildCube returns an axis-aligned unit cube: 8 vertices, 6 quad
// faces wound outward.
func buildCube(t *testing.T) *mesh.Mesh {
	t.Helper()
	m := mesh.New()
	p := [8]vecmath.Vec3{
		{X: -1, Y: -1, Z: -1},
		{X: 1, Y: -1, Z: -1},
		{X: 1, Y: 1, Z: -1},
		{X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1},
		{X: 1, Y: -1, Z: 1},
		{X: 1, Y: 1, Z: 1},
		{X: -1, Y: 1, Z: 1},
	}
	var v [8]mesh.VertexHandle
	for i, pos := range p {
		v[i] = m.AddVertex(pos)
	}
	faces := [6][4]int{
		{0, 3, 2, 1},
		{4, 5, 6, 7},
		{0, 1, 5, 4},
		{3, 7, 6, 2},
		{0, 4, 7, 3},
		{1, 2, 6, 5},
	}
	for _, fv := range faces {
		_, err := m.AddFace(v[fv[0]], v[fv[1]], v[fv[2]], v[fv[3]])
		require.NoError(t, err)
	}
	return m
}

type recordingRenderMesh struct{ submeshes []rebuild.Submesh }

func (r *recordingRenderMesh) AddSubmesh(s rebuild.Submesh) { r.submeshes = append(r.submeshes, s) }

type recordingCollisionSink struct {
	triangles []rebuild.CollisionTriangle
	hulls     [][]vecmath.Vec3
}

func (r *recordingCollisionSink) AddCollision(triangles []rebuild.CollisionTriangle, hulls [][]vecmath.Vec3) {
	r.triangles = triangles
	r.hulls = hulls
}

func TestRebuild_UnitCube(t *testing.T) {
	m := buildCube(t)

	var renderSink recordingRenderMesh
	var collisionSink recordingCollisionSink
	model := rebuild.Rebuild(m, &renderSink, &collisionSink)

	require.Equal(t, mesh.Clean, m.State())
	require.Len(t, model.Submeshes, 1) // every face shares the unassigned default material
	require.Len(t, renderSink.submeshes, 1)

	sm := model.Submeshes[0]
	require.Len(t, sm.Vertices, 24) // 6 faces * 4 corners, no cross-material sharing
	require.Len(t, sm.Indices, 36)  // 6 faces * 2 triangles * 3 indices
	require.Len(t, sm.Triangles, 12)

	require.InDelta(t, -1, sm.Bounds.Min.X, 1e-9)
	require.InDelta(t, -1, sm.Bounds.Min.Y, 1e-9)
	require.InDelta(t, -1, sm.Bounds.Min.Z, 1e-9)
	require.InDelta(t, 1, sm.Bounds.Max.X, 1e-9)
	require.InDelta(t, 1, sm.Bounds.Max.Y, 1e-9)
	require.InDelta(t, 1, sm.Bounds.Max.Z, 1e-9)

	normals := map[vecmath.Vec3]bool{}
	for _, v := range sm.Vertices {
		n := v.Normal
		n = vecmath.Vec3{
			X: roundUnit(n.X),
			Y: roundUnit(n.Y),
			Z: roundUnit(n.Z),
		}
		normals[n] = true
	}
	require.Len(t, normals, 6) // each face's flat normal survives unsmoothed across 90-degree edges

	require.Len(t, model.Collision, 12)
	for _, tri := range model.Collision {
		require.Equal(t, byte(0xFF), tri.MaterialID) // unassigned (-1) material maps to the sentinel byte
	}
	require.Len(t, model.HullCandidates, 1)
	require.Len(t, model.HullCandidates[0], 24) // 6 faces * 4 corners, duplicated per face
}

func roundUnit(f float64) float64 {
	if f > 0.5 {
		return 1
	}
	if f < -0.5 {
		return -1
	}
	return 0
}

func TestRebuild_DropsFaceThatFailsToTriangulate(t *testing.T) {
	m := mesh.New()
	a := m.AddVertex(vecmath.Vec3{X: 0, Y: 0, Z: 0})
	b := m.AddVertex(vecmath.Vec3{X: 1, Y: 0, Z: 0})
	c := m.AddVertex(vecmath.Vec3{X: 2, Y: 0, Z: 0}) // colinear, degenerate plane fit
	_, err := m.AddFace(a, b, c)
	require.NoError(t, err)

	model := rebuild.Rebuild(m, nil, nil)
	require.Empty(t, model.Submeshes)
	require.Empty(t, model.Collision)
}

func TestRebuild_NilSinksAreOptional(t *testing.T) {
	m := buildCube(t)
	require.NotPanics(t, func() {
		rebuild.Rebuild(m, nil, nil)
	})
}
