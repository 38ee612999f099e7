package polygon

import "github.com/halfmesh/kernel/vecmath"

// ClipBySegment clips the convex polygon poly against the half-plane
// lying to the left of the directed line a->b, using Sutherland-Hodgman
// clipping. poly is assumed wound so that "inside" is the left side of
// each of its own edges; the same convention applies to a->b.
func ClipBySegment(poly []vecmath.Vec2, a, b vecmath.Vec2) []vecmath.Vec2 {
	if len(poly) == 0 {
		return nil
	}
	dir := b.Sub(a)

	inside := func(p vecmath.Vec2) bool {
		return dir.Cross(p.Sub(a)) >= -epsilon
	}
	intersect := func(p, q vecmath.Vec2) vecmath.Vec2 {
		pd := dir.Cross(p.Sub(a))
		qd := dir.Cross(q.Sub(a))
		t := pd / (pd - qd)
		return p.Add(q.Sub(p).Scale(t))
	}

	var out []vecmath.Vec2
	prev := poly[len(poly)-1]
	prevIn := inside(prev)
	for _, cur := range poly {
		curIn := inside(cur)
		switch {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn && !prevIn:
			out = append(out, intersect(prev, cur), cur)
		case !curIn && prevIn:
			out = append(out, intersect(prev, cur))
		}
		prev, prevIn = cur, curIn
	}
	return out
}
