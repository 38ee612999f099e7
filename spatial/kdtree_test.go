package spatial_test

import (
	"testing"

	"github.com/halfmesh/kernel/spatial"
	"github.com/halfmesh/kernel/vecmath"
	"github.com/stretchr/testify/require"
)

func TestRangeSearch_FindsNearbyPoints(t *testing.T) {
	tree := spatial.New()
	tree.Insert(vecmath.Vec3{X: 0, Y: 0, Z: 0}, 0)
	tree.Insert(vecmath.Vec3{X: 0.01, Y: 0, Z: 0}, 1)
	tree.Insert(vecmath.Vec3{X: 10, Y: 0, Z: 0}, 2)

	var found []int
	err := tree.RangeSearch(vecmath.Vec3{X: 0, Y: 0, Z: 0}, 0.1, func(id int) error {
		found = append(found, id)
		return nil
	})
	require.NoError(t, err)
	require.ElementsMatch(t, []int{0, 1}, found)
}

func TestRangeSearch_StopsEarly(t *testing.T) {
	tree := spatial.New()
	for i := 0; i < 20; i++ {
		tree.Insert(vecmath.Vec3{X: float64(i), Y: 0, Z: 0}, i)
	}
	count := 0
	err := tree.RangeSearch(vecmath.Vec3{X: 0, Y: 0, Z: 0}, 100, func(id int) error {
		count++
		return spatial.Stop
	})
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestNearest_ReturnsClosest(t *testing.T) {
	tree := spatial.New()
	tree.Insert(vecmath.Vec3{X: 5, Y: 0, Z: 0}, 100)
	tree.Insert(vecmath.Vec3{X: -5, Y: 0, Z: 0}, 200)
	id, dist, ok := tree.Nearest(vecmath.Vec3{X: 4, Y: 0, Z: 0})
	require.True(t, ok)
	require.Equal(t, 100, id)
	require.InDelta(t, 1.0, dist, 1e-9)
}

func TestNearest_EmptyTree(t *testing.T) {
	tree := spatial.New()
	_, _, ok := tree.Nearest(vecmath.Vec3{})
	require.False(t, ok)
}
