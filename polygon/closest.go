package polygon

import "github.com/halfmesh/kernel/vecmath"

// ClosestPointOnSegment returns the point on segment a-b nearest to p.
func ClosestPointOnSegment(p, a, b vecmath.Vec3) vecmath.Vec3 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq < epsilon {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// ClosestSegmentBetweenLines solves for the parameters t1, t2 such that
// p1+t1*(p2-p1) and p3+t2*(p4-p3) are the closest pair of points
// between the two infinite lines. It returns ErrParallel when the lines
// are within 1e-6 of parallel, since no unique closest segment exists.
func ClosestSegmentBetweenLines(p1, p2, p3, p4 vecmath.Vec3) (t1, t2 float64, err error) {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)
	r := p1.Sub(p3)

	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	b := d1.Dot(d2)
	c := d1.Dot(r)

	denom := a*e - b*b
	if absf(denom) < 1e-6 {
		return 0, 0, ErrParallel
	}
	t1 = (b*f - c*e) / denom
	t2 = (a*f - b*c) / denom
	return t1, t2, nil
}
