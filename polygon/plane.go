package polygon

import "github.com/halfmesh/kernel/vecmath"

// Plane is a world-space plane in point-normal form: for p on the
// plane, dot(Normal, p) + Dist == 0.
type Plane struct {
	Normal vecmath.Vec3
	Dist   float64
}

// PlaneFit computes the best-fit plane through pts via Newell's method:
// the (unnormalized) normal accumulates from successive edge pairs,
// which tolerates mild non-planarity and collinear runs far better than
// a single three-point cross product.
func PlaneFit(pts []vecmath.Vec3) Plane {
	n := len(pts)
	if n == 0 {
		return Plane{}
	}
	var normal, centroid vecmath.Vec3
	for i := 0; i < n; i++ {
		cur := pts[i]
		nxt := pts[(i+1)%n]
		normal.X += (cur.Y - nxt.Y) * (cur.Z + nxt.Z)
		normal.Y += (cur.Z - nxt.Z) * (cur.X + nxt.X)
		normal.Z += (cur.X - nxt.X) * (cur.Y + nxt.Y)
		centroid = centroid.Add(cur)
	}
	centroid = centroid.Scale(1 / float64(n))
	length := normal.Len() + 1e-20 // guard against an exactly-zero normal
	unit := normal.Scale(1 / length)
	return Plane{Normal: unit, Dist: -unit.Dot(centroid)}
}
