package polygon

import "github.com/halfmesh/kernel/vecmath"

const epsilon = 1e-7

// Triangulate ear-clips pts (assumed approximately planar) into
// triangles, returning index triples into pts. On success it returns
// exactly 3*(n-2) indices; on degenerate input (fewer than 3 points, a
// near-zero plane normal, or a self-intersecting loop that leaves no
// valid ear) it returns ErrDegenerate.
func Triangulate(pts []vecmath.Vec3) ([][3]int, error) {
	n := len(pts)
	if n < 3 {
		return nil, ErrDegenerate
	}
	plane := PlaneFit(pts)
	if plane.Normal.Len() < epsilon {
		return nil, ErrDegenerate
	}
	proj := projectToBestAxis(pts, plane.Normal)
	ccw := signedArea(proj) >= 0

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var tris [][3]int
	for len(idx) > 3 {
		cut := -1
		for i := range idx {
			i0 := idx[(i-1+len(idx))%len(idx)]
			i1 := idx[i]
			i2 := idx[(i+1)%len(idx)]
			if !isConvexCorner(proj[i0], proj[i1], proj[i2], ccw) {
				continue
			}
			if hasVertexInside(idx, i0, i1, i2, proj, ccw) {
				continue
			}
			cut = i
			tris = append(tris, [3]int{i0, i1, i2})
			break
		}
		if cut < 0 {
			return nil, ErrDegenerate
		}
		idx = append(idx[:cut], idx[cut+1:]...)
	}
	tris = append(tris, [3]int{idx[0], idx[1], idx[2]})

	if len(tris) != n-2 {
		return nil, ErrDegenerate
	}
	return tris, nil
}

func hasVertexInside(idx []int, i0, i1, i2 int, proj []vecmath.Vec2, ccw bool) bool {
	for _, j := range idx {
		if j == i0 || j == i1 || j == i2 {
			continue
		}
		if pointInTriangle(proj[j], proj[i0], proj[i1], proj[i2], ccw) {
			return true
		}
	}
	return false
}

func projectToBestAxis(pts []vecmath.Vec3, normal vecmath.Vec3) []vecmath.Vec2 {
	ax, ay, az := absf(normal.X), absf(normal.Y), absf(normal.Z)
	out := make([]vecmath.Vec2, len(pts))
	switch {
	case az >= ax && az >= ay:
		for i, p := range pts {
			out[i] = vecmath.Vec2{X: p.X, Y: p.Y}
		}
	case ay >= ax:
		for i, p := range pts {
			out[i] = vecmath.Vec2{X: p.X, Y: p.Z}
		}
	default:
		for i, p := range pts {
			out[i] = vecmath.Vec2{X: p.Y, Y: p.Z}
		}
	}
	return out
}

func signedArea(p []vecmath.Vec2) float64 {
	var a float64
	n := len(p)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return a * 0.5
}

func isConvexCorner(a, b, c vecmath.Vec2, ccw bool) bool {
	cr := b.Sub(a).Cross(c.Sub(a))
	if ccw {
		return cr > epsilon
	}
	return cr < -epsilon
}

func sameSide(p, a, b vecmath.Vec2, ccw bool) bool {
	cr := b.Sub(a).Cross(p.Sub(a))
	if ccw {
		return cr >= -epsilon
	}
	return cr <= epsilon
}

func pointInTriangle(p, a, b, c vecmath.Vec2, ccw bool) bool {
	return sameSide(p, a, b, ccw) && sameSide(p, b, c, ccw) && sameSide(p, c, a, ccw)
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
