package mesh_test

import (
	"testing"

	"github.com/halfmesh/kernel/mesh"
	"github.com/stretchr/testify/require"
)

func TestSmoothing_DefaultsAndRoundTrip(t *testing.T) {
	m, v := buildCube()
	f := faceTouching(m, v[0], v[3], v[2], v[1])
	require.False(t, f.IsInvalid())

	hes := m.HalfEdgesOfFace(f)
	require.NotEmpty(t, hes)
	require.Equal(t, mesh.SmoothingDefault, m.Smoothing(hes[0]))

	m.SetSmoothing(hes[0], mesh.SmoothingHard)
	require.Equal(t, mesh.SmoothingHard, m.Smoothing(hes[0]))
}

func TestSmoothingThreshold_DefaultIsCos60(t *testing.T) {
	m := mesh.New()
	require.InDelta(t, 0.5, m.SmoothingThreshold(), 1e-9)

	m2 := mesh.New(mesh.WithSmoothingThreshold(0.9))
	require.InDelta(t, 0.9, m2.SmoothingThreshold(), 1e-9)
}

// faceTouching returns the one cube face (built by buildCube) whose
// vertex loop matches vs, for tests that need a concrete FaceHandle.
func faceTouching(m *mesh.Mesh, vs ...mesh.VertexHandle) mesh.FaceHandle {
	want := map[mesh.VertexHandle]bool{}
	for _, v := range vs {
		want[v] = true
	}
	var found mesh.FaceHandle
	m.Topology().EachFace(func(f mesh.FaceHandle) {
		if !found.IsInvalid() {
			return
		}
		loop := m.VerticesOfFace(f)
		if len(loop) != len(vs) {
			return
		}
		for _, v := range loop {
			if !want[v] {
				return
			}
		}
		found = f
	})
	return found
}
