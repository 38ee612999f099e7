package mesh_test

import (
	"testing"

	"github.com/halfmesh/kernel/mesh"
	"github.com/stretchr/testify/require"
)

func TestMergeVerticesWithinDistance_WeldsCloseStandaloneVertices(t *testing.T) {
	m := mesh.New()
	a := m.AddVertex(vec3(0, 0, 0))
	b := m.AddVertex(vec3(0.01, 0, 0))
	c := m.AddVertex(vec3(10, 0, 0))

	merged, err := m.MergeVerticesWithinDistance([]mesh.VertexHandle{a, b, c}, 0.1, false, true)
	require.NoError(t, err)
	require.Equal(t, 1, merged)
	require.Equal(t, 2, m.Topology().VertexCount())
	require.True(t, m.Topology().IsValid(a))
	require.False(t, m.Topology().IsValid(b))
	require.InDelta(t, 0.005, m.Position(a).X, 1e-9)
}

func TestMergeVerticesWithinDistance_RejectsEmptySelection(t *testing.T) {
	m := mesh.New()
	_, err := m.MergeVerticesWithinDistance(nil, 0.1, false, true)
	require.ErrorIs(t, err, mesh.ErrEmpty)
}

func TestMergeVerticesWithinDistance_RejectsNegativeDistance(t *testing.T) {
	m := mesh.New()
	a := m.AddVertex(vec3(0, 0, 0))
	b := m.AddVertex(vec3(1, 0, 0))
	_, err := m.MergeVerticesWithinDistance([]mesh.VertexHandle{a, b}, -1, false, true)
	require.ErrorIs(t, err, mesh.ErrOutOfRange)
}

func TestMergeVerticesWithinDistance_NoPairWithinRange(t *testing.T) {
	m := mesh.New()
	a := m.AddVertex(vec3(0, 0, 0))
	b := m.AddVertex(vec3(10, 0, 0))
	merged, err := m.MergeVerticesWithinDistance([]mesh.VertexHandle{a, b}, 0.1, false, true)
	require.NoError(t, err)
	require.Equal(t, 0, merged)
}

func TestMergeVerticesWithinDistance_WeldsSeamWatertight(t *testing.T) {
	// Two triangles whose bottom corners pair up within 0.01 while the
	// apexes sit far apart: merging welds the near pairs and zips the
	// two co-located boundary edges into one interior edge.
	m := mesh.New()
	a1 := m.AddVertex(vec3(0, 0, 0))
	a2 := m.AddVertex(vec3(1, 0, 0))
	top := m.AddVertex(vec3(0.5, 1, 0))
	b1 := m.AddVertex(vec3(0.005, 0, 0))
	b2 := m.AddVertex(vec3(1.005, 0, 0))
	bottom := m.AddVertex(vec3(0.5, -1, 0))
	_, err := m.AddFace(a1, a2, top)
	require.NoError(t, err)
	_, err = m.AddFace(b2, b1, bottom)
	require.NoError(t, err)

	all := []mesh.VertexHandle{a1, a2, top, b1, b2, bottom}
	merged, err := m.MergeVerticesWithinDistance(all, 0.05, false, true)
	require.NoError(t, err)
	require.Equal(t, 2, merged)
	require.Equal(t, 4, m.Topology().VertexCount())

	// The welded seam is a single interior edge carrying both faces.
	interior := 0
	m.Topology().EachEdge(func(e mesh.EdgeHandle) {
		f1, f2 := m.FacesOfEdge(e)
		if !f1.IsInvalid() && !f2.IsInvalid() {
			interior++
		}
	})
	require.Equal(t, 1, interior)

	// The distant pair is untouched.
	require.True(t, m.Topology().IsValid(top))
	require.True(t, m.Topology().IsValid(bottom))
}
