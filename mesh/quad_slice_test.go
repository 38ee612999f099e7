package mesh_test

import (
	"testing"

	"github.com/halfmesh/kernel/mesh"
	"github.com/stretchr/testify/require"
)

func TestQuadSliceFaces_SplitsIntoGrid(t *testing.T) {
	m, v := buildCube()
	f := faceTouching(m, v[0], v[3], v[2], v[1])
	require.False(t, f.IsInvalid())

	created, err := m.QuadSliceFaces([]mesh.FaceHandle{f}, 1, 1, 10)
	require.NoError(t, err)
	require.Len(t, created, 4)
	require.False(t, m.Topology().IsValidFace(f))
	for _, nf := range created {
		require.Equal(t, 4, m.FaceVertexCount(nf))
	}
}

func TestQuadSliceFaces_SkipsNonQuad(t *testing.T) {
	m := mesh.New()
	a := m.AddVertex(vec3(0, 0, 0))
	b := m.AddVertex(vec3(1, 0, 0))
	c := m.AddVertex(vec3(0.5, 1, 0))
	f, err := m.AddFace(a, b, c)
	require.NoError(t, err)

	created, err := m.QuadSliceFaces([]mesh.FaceHandle{f}, 1, 1, 10)
	require.NoError(t, err)
	require.Empty(t, created)
	require.True(t, m.Topology().IsValidFace(f)) // untouched, not an error
}

func TestQuadSliceFaces_RejectsEmptySelection(t *testing.T) {
	m := mesh.New()
	_, err := m.QuadSliceFaces(nil, 1, 1, 10)
	require.ErrorIs(t, err, mesh.ErrEmpty)
}
