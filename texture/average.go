package texture

import (
	"math"

	"github.com/halfmesh/kernel/vecmath"
)

// AverageVertexUVs takes the UV each incident face-corner currently
// holds for a shared vertex, shifts each by an integer number of tiles
// so it lands within 0.5 of the first entry (undoing any seam caused
// by different faces wrapping around the texture a different number
// of times), and returns the arithmetic mean — the value every
// corner's UV should be set to.
func AverageVertexUVs(uvs []vecmath.Vec2) vecmath.Vec2 {
	if len(uvs) == 0 {
		return vecmath.Vec2{}
	}
	ref := uvs[0]
	var sum vecmath.Vec2
	for _, uv := range uvs {
		sum = sum.Add(alignToReference(uv, ref))
	}
	return sum.Scale(1 / float64(len(uvs)))
}

// AverageEdgeUVs does the same as AverageVertexUVs but for an edge's
// two endpoint UVs as seen from each incident face; it returns the
// averaged (start, end) pair every face's edge corners should adopt.
func AverageEdgeUVs(pairs [][2]vecmath.Vec2) [2]vecmath.Vec2 {
	if len(pairs) == 0 {
		return [2]vecmath.Vec2{}
	}
	refStart, refEnd := pairs[0][0], pairs[0][1]
	var sumStart, sumEnd vecmath.Vec2
	for _, p := range pairs {
		sumStart = sumStart.Add(alignToReference(p[0], refStart))
		sumEnd = sumEnd.Add(alignToReference(p[1], refEnd))
	}
	n := float64(len(pairs))
	return [2]vecmath.Vec2{sumStart.Scale(1 / n), sumEnd.Scale(1 / n)}
}

// alignToReference shifts uv by whole tiles so it lands within 0.5 of
// ref on both axes.
func alignToReference(uv, ref vecmath.Vec2) vecmath.Vec2 {
	return vecmath.Vec2{
		X: uv.X - math.Round(uv.X-ref.X),
		Y: uv.Y - math.Round(uv.Y-ref.Y),
	}
}
