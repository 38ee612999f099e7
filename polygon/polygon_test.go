package polygon_test

import (
	"testing"

	"github.com/halfmesh/kernel/polygon"
	"github.com/halfmesh/kernel/vecmath"
	"github.com/stretchr/testify/require"
)

func square() []vecmath.Vec3 {
	return []vecmath.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}
}

func TestPlaneFit_FlatSquare(t *testing.T) {
	p := polygon.PlaneFit(square())
	require.InDelta(t, 1, absf(p.Normal.Z), 1e-9)
	require.InDelta(t, 0, p.Normal.X, 1e-9)
	require.InDelta(t, 0, p.Normal.Y, 1e-9)
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func TestTriangulate_Square(t *testing.T) {
	tris, err := polygon.Triangulate(square())
	require.NoError(t, err)
	require.Len(t, tris, 2)
}

func TestTriangulate_RejectsDegenerate(t *testing.T) {
	_, err := polygon.Triangulate([]vecmath.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}})
	require.ErrorIs(t, err, polygon.ErrDegenerate)
}

func TestTriangulate_ConcavePolygon(t *testing.T) {
	// an L-shape, which forces at least one reflex vertex
	pts := []vecmath.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
		{X: 2, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 1, Y: 2, Z: 0},
		{X: 0, Y: 2, Z: 0},
	}
	tris, err := polygon.Triangulate(pts)
	require.NoError(t, err)
	require.Len(t, tris, 4)
}

func TestClipBySegment_HalfPlane(t *testing.T) {
	poly := []vecmath.Vec2{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2},
	}
	clipped := polygon.ClipBySegment(poly, vecmath.Vec2{X: 1, Y: 0}, vecmath.Vec2{X: 1, Y: 1})
	require.NotEmpty(t, clipped)
	for _, p := range clipped {
		require.LessOrEqual(t, p.X, 1.0+1e-7)
	}
}

func TestClosestPointOnSegment_Clamped(t *testing.T) {
	a := vecmath.Vec3{X: 0, Y: 0, Z: 0}
	b := vecmath.Vec3{X: 2, Y: 0, Z: 0}
	got := polygon.ClosestPointOnSegment(vecmath.Vec3{X: 5, Y: 1, Z: 0}, a, b)
	require.InDelta(t, 2, got.X, 1e-9)
	require.InDelta(t, 0, got.Y, 1e-9)
}

func TestClosestSegmentBetweenLines_Perpendicular(t *testing.T) {
	p1 := vecmath.Vec3{X: -1, Y: 0, Z: 0}
	p2 := vecmath.Vec3{X: 1, Y: 0, Z: 0}
	p3 := vecmath.Vec3{X: 0, Y: -1, Z: 1}
	p4 := vecmath.Vec3{X: 0, Y: 1, Z: 1}
	t1, t2, err := polygon.ClosestSegmentBetweenLines(p1, p2, p3, p4)
	require.NoError(t, err)
	require.InDelta(t, 0.5, t1, 1e-9)
	require.InDelta(t, 0.5, t2, 1e-9)
}

func TestClosestSegmentBetweenLines_RejectsParallel(t *testing.T) {
	p1 := vecmath.Vec3{X: 0, Y: 0, Z: 0}
	p2 := vecmath.Vec3{X: 1, Y: 0, Z: 0}
	p3 := vecmath.Vec3{X: 0, Y: 1, Z: 0}
	p4 := vecmath.Vec3{X: 1, Y: 1, Z: 0}
	_, _, err := polygon.ClosestSegmentBetweenLines(p1, p2, p3, p4)
	require.ErrorIs(t, err, polygon.ErrParallel)
}
