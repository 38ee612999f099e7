package mesh_test

import (
	"testing"

	"github.com/halfmesh/kernel/mesh"
	"github.com/stretchr/testify/require"
)

func TestFlipAllFaces_TwiceIsIdentity(t *testing.T) {
	m, v := buildCube()
	f := faceTouching(m, v[4], v[5], v[6], v[7])
	require.False(t, f.IsInvalid())

	beforeLoop := m.VerticesOfFace(f)
	beforeUVs := m.CornerUVs(f)

	m.FlipAllFaces()
	m.FlipAllFaces()

	require.Equal(t, beforeLoop, m.VerticesOfFace(f))
	require.Equal(t, beforeUVs, m.CornerUVs(f))
}

func TestFlipAllFaces_CornerUVsFollowTheirVertices(t *testing.T) {
	m, v := buildCube()
	f := faceTouching(m, v[4], v[5], v[6], v[7])

	// Record each vertex's UV in this face before the flip.
	uvByVertex := map[mesh.VertexHandle][2]float64{}
	hes := m.HalfEdgesOfFace(f)
	uvs := m.CornerUVs(f)
	for i, h := range hes {
		end := m.Topology().EndVertex(h)
		uvByVertex[end] = [2]float64{uvs[i].X, uvs[i].Y}
	}

	m.FlipAllFaces()

	hes = m.HalfEdgesOfFace(f)
	uvs = m.CornerUVs(f)
	for i, h := range hes {
		end := m.Topology().EndVertex(h)
		want := uvByVertex[end]
		require.InDelta(t, want[0], uvs[i].X, 1e-12)
		require.InDelta(t, want[1], uvs[i].Y, 1e-12)
	}
}

func TestSplitEdges_DuplicateKeepsPosition(t *testing.T) {
	// Four quads in a 2x2 grid on Z=0; tearing the two internal edges
	// that meet at the grid's center splits the center vertex.
	m := mesh.New()
	var v [3][3]mesh.VertexHandle
	for i := 0; i <= 2; i++ {
		for j := 0; j <= 2; j++ {
			v[i][j] = m.AddVertex(vec3(float64(i), float64(j), 0))
		}
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			_, err := m.AddFace(v[i][j], v[i+1][j], v[i+1][j+1], v[i][j+1])
			require.NoError(t, err)
		}
	}
	e1, ok := m.EdgeBetween(v[1][0], v[1][1])
	require.True(t, ok)
	e2, ok := m.EdgeBetween(v[1][1], v[1][2])
	require.True(t, ok)

	dups, err := m.SplitEdges([]mesh.EdgeHandle{e1, e2})
	require.NoError(t, err)
	// The seam runs border to border, cutting the grid in half: the
	// center vertex and both border endpoints duplicate.
	require.Len(t, dups, 3)
	for _, d := range dups {
		require.InDelta(t, 1, m.Position(d).X, 1e-12)
	}
	require.Equal(t, mesh.Dirty, m.State())
}

func TestMergeEdges_RezipsTornSeam(t *testing.T) {
	m := mesh.New()
	a := m.AddVertex(vec3(0, 0, 0))
	b := m.AddVertex(vec3(1, 0, 0))
	c := m.AddVertex(vec3(1, 1, 0))
	d := m.AddVertex(vec3(0, 1, 0))
	_, err := m.AddFace(a, b, c)
	require.NoError(t, err)
	_, err = m.AddFace(a, c, d)
	require.NoError(t, err)

	diag, ok := m.EdgeBetween(a, c)
	require.True(t, ok)
	dups, err := m.SplitEdges([]mesh.EdgeHandle{diag})
	require.NoError(t, err)
	require.Len(t, dups, 2) // a tear reaching the border separates the triangles

	group := map[mesh.VertexHandle]bool{a: true, c: true}
	for _, d := range dups {
		group[d] = true
	}
	var seam []mesh.EdgeHandle
	m.Topology().EachEdge(func(e mesh.EdgeHandle) {
		x, y := m.VerticesOfEdge(e)
		if group[x] && group[y] {
			seam = append(seam, e)
		}
	})
	require.Len(t, seam, 2)

	v1, v2, err := m.MergeEdges(seam[0], seam[1])
	require.NoError(t, err)
	require.ElementsMatch(t, []mesh.VertexHandle{a, c}, []mesh.VertexHandle{v1, v2})
	require.Equal(t, 4, m.Topology().VertexCount())

	shared, ok := m.EdgeBetween(a, c)
	require.True(t, ok)
	f1, f2 := m.FacesOfEdge(shared)
	require.False(t, f1.IsInvalid())
	require.False(t, f2.IsInvalid())
}

func TestBevelFaces_ExtrudesQuad(t *testing.T) {
	m := mesh.New()
	a := m.AddVertex(vec3(0, 0, 0))
	b := m.AddVertex(vec3(1, 0, 0))
	c := m.AddVertex(vec3(1, 1, 0))
	d := m.AddVertex(vec3(0, 1, 0))
	f, err := m.AddFace(a, b, c, d)
	require.NoError(t, err)

	newFaces, walls, corresp, err := m.BevelFaces([]mesh.FaceHandle{f}, true, vec3(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, newFaces, 1)
	require.Len(t, walls, 4)
	require.Equal(t, newFaces, corresp)
	// Original bottom + 4 walls + 1 top: a closed shell.
	require.Equal(t, 6, m.Topology().FaceCount())
	require.True(t, m.Topology().IsValidFace(f))

	for _, nv := range m.VerticesOfFace(newFaces[0]) {
		require.InDelta(t, 1, m.Position(nv).Z, 1e-9)
	}
}

func TestBevelFaces_NoConnectLeavesFloatingDuplicate(t *testing.T) {
	m := mesh.New()
	a := m.AddVertex(vec3(0, 0, 0))
	b := m.AddVertex(vec3(1, 0, 0))
	c := m.AddVertex(vec3(1, 1, 0))
	d := m.AddVertex(vec3(0, 1, 0))
	f, err := m.AddFace(a, b, c, d)
	require.NoError(t, err)

	newFaces, walls, _, err := m.BevelFaces([]mesh.FaceHandle{f}, false, vec3(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, newFaces, 1)
	require.Empty(t, walls)
	// The original and its floating duplicate, nothing connecting them.
	require.Equal(t, 2, m.Topology().FaceCount())
	require.Equal(t, 8, m.Topology().EdgeCount())
}

func TestFindEdgeLoop_FollowsStraightContinuation(t *testing.T) {
	// A 3x1 strip of quads: the bottom edges form one straight loop.
	m := mesh.New()
	var top, bot [4]mesh.VertexHandle
	for i := 0; i < 4; i++ {
		bot[i] = m.AddVertex(vec3(float64(i), 0, 0))
		top[i] = m.AddVertex(vec3(float64(i), 1, 0))
	}
	for i := 0; i < 3; i++ {
		_, err := m.AddFace(bot[i], bot[i+1], top[i+1], top[i])
		require.NoError(t, err)
	}

	start, ok := m.EdgeBetween(bot[1], bot[2])
	require.True(t, ok)
	loop := m.FindEdgeLoop(start, 0)
	require.Len(t, loop, 3)
	for _, e := range loop {
		x, y := m.VerticesOfEdge(e)
		require.InDelta(t, 0, m.Position(x).Y, 1e-9)
		require.InDelta(t, 0, m.Position(y).Y, 1e-9)
	}
}

func TestFindEdgeLoop_RespectsStepLimit(t *testing.T) {
	m := mesh.New()
	var bot, top [5]mesh.VertexHandle
	for i := 0; i < 5; i++ {
		bot[i] = m.AddVertex(vec3(float64(i), 0, 0))
		top[i] = m.AddVertex(vec3(float64(i), 1, 0))
	}
	for i := 0; i < 4; i++ {
		_, err := m.AddFace(bot[i], bot[i+1], top[i+1], top[i])
		require.NoError(t, err)
	}
	start, ok := m.EdgeBetween(bot[0], bot[1])
	require.True(t, ok)
	require.Len(t, m.FindEdgeLoop(start, 2), 2)
}
