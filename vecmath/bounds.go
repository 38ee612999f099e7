package vecmath

import "math"

// Bounds is an axis-aligned bounding box. EmptyBounds returns the empty
// box (Min holds +Inf, Max holds -Inf) that stays invalid until the
// first point is merged in, matching how mesh.Mesh.Bounds() accumulates
// over an arbitrary vertex set including the empty mesh. The zero Bounds
// is not empty: it is the single point at the origin.
type Bounds struct {
	Min, Max Vec3
}

// EmptyBounds returns a Bounds that contains no points.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: Vec3{X: inf, Y: inf, Z: inf},
		Max: Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Valid reports whether the Bounds has absorbed at least one point.
func (b Bounds) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Extend returns a Bounds enlarged to also contain p.
func (b Bounds) Extend(p Vec3) Bounds {
	return Bounds{
		Min: Vec3{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: Vec3{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Union returns a Bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if !o.Valid() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}
