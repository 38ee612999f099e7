package mesh_test

import (
	"errors"
	"testing"

	"github.com/halfmesh/kernel/mesh"
	"github.com/stretchr/testify/require"
)

type stubResolver struct{ texW, texH int }

func (r stubResolver) Resolve(ref any) (surface any, texW, texH int, err error) {
	if ref == "missing" {
		return nil, 0, 0, errors.New("no such asset")
	}
	return ref, r.texW, r.texH, nil
}

func TestAssignMaterial_ResolvesOnceAndReusesID(t *testing.T) {
	m := mesh.New(mesh.WithMaterialResolver(stubResolver{texW: 64, texH: 64}))
	f := singleTriangleFace(m)

	require.NoError(t, m.AssignMaterial(f, "brick.png"))
	require.Equal(t, int32(0), m.MaterialID(f))

	f2 := singleTriangleFace(m)
	require.NoError(t, m.AssignMaterial(f2, "brick.png"))
	require.Equal(t, int32(0), m.MaterialID(f2)) // same ref reuses id 0, not a second table row

	require.NoError(t, m.AssignMaterial(f2, "stone.png"))
	require.Equal(t, int32(1), m.MaterialID(f2))

	surface, ok := m.MaterialSurface(1)
	require.True(t, ok)
	require.Equal(t, "stone.png", surface)
}

func TestAssignMaterial_UnresolvedWithoutResolver(t *testing.T) {
	m := mesh.New()
	f := singleTriangleFace(m)
	err := m.AssignMaterial(f, "brick.png")
	require.ErrorIs(t, err, mesh.ErrUnresolvedMaterial)
}

func TestAssignMaterial_ResolverFailureIsUnresolved(t *testing.T) {
	m := mesh.New(mesh.WithMaterialResolver(stubResolver{texW: 64, texH: 64}))
	f := singleTriangleFace(m)
	err := m.AssignMaterial(f, "missing")
	require.ErrorIs(t, err, mesh.ErrUnresolvedMaterial)
}

func TestCompactMaterials_DropsUnusedAndRemaps(t *testing.T) {
	m := mesh.New(mesh.WithMaterialResolver(stubResolver{texW: 64, texH: 64}))
	f1 := singleTriangleFace(m)
	f2 := singleTriangleFace(m)
	require.NoError(t, m.AssignMaterial(f1, "brick.png"))
	require.NoError(t, m.AssignMaterial(f2, "stone.png"))
	require.NoError(t, m.RemoveFace(f1, true))

	m.CompactMaterials()
	// "stone.png" is the only surviving reference; it should now be id 0.
	require.Equal(t, int32(0), m.MaterialID(f2))
	_, ok := m.MaterialSurface(1)
	require.False(t, ok)
}

func singleTriangleFace(m *mesh.Mesh) mesh.FaceHandle {
	a := m.AddVertex(vec3(0, 0, 0))
	b := m.AddVertex(vec3(1, 0, 0))
	c := m.AddVertex(vec3(0, 1, 0))
	f, err := m.AddFace(a, b, c)
	if err != nil {
		panic(err)
	}
	return f
}
