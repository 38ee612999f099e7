package texture

import "github.com/halfmesh/kernel/vecmath"

type orientation struct {
	normal, right, down vecmath.Vec3
}

// orientationTable holds the six axis-aligned box-projection
// orientations, each giving a fixed (right, down) pair for faces whose
// normal points mostly along that axis.
var orientationTable = []orientation{
	{normal: vecmath.Vec3{X: 0, Y: 0, Z: 1}, right: vecmath.Vec3{X: 1, Y: 0, Z: 0}, down: vecmath.Vec3{X: 0, Y: -1, Z: 0}},  // +Z
	{normal: vecmath.Vec3{X: 0, Y: 0, Z: -1}, right: vecmath.Vec3{X: 1, Y: 0, Z: 0}, down: vecmath.Vec3{X: 0, Y: -1, Z: 0}}, // -Z
	{normal: vecmath.Vec3{X: 0, Y: -1, Z: 0}, right: vecmath.Vec3{X: 1, Y: 0, Z: 0}, down: vecmath.Vec3{X: 0, Y: 0, Z: -1}}, // -Y
	{normal: vecmath.Vec3{X: 0, Y: 1, Z: 0}, right: vecmath.Vec3{X: -1, Y: 0, Z: 0}, down: vecmath.Vec3{X: 0, Y: 0, Z: -1}}, // +Y
	{normal: vecmath.Vec3{X: -1, Y: 0, Z: 0}, right: vecmath.Vec3{X: 0, Y: -1, Z: 0}, down: vecmath.Vec3{X: 0, Y: 0, Z: -1}}, // -X
	{normal: vecmath.Vec3{X: 1, Y: 0, Z: 0}, right: vecmath.Vec3{X: 0, Y: 1, Z: 0}, down: vecmath.Vec3{X: 0, Y: 0, Z: -1}},  // +X
}

func pickOrientation(normal vecmath.Vec3) orientation {
	best := orientationTable[0]
	bestDot := -2.0
	for _, o := range orientationTable {
		d := o.normal.Dot(normal)
		if d > bestDot {
			bestDot, best = d, o
		}
	}
	return best
}

// AlignToGrid snaps a face's projection to the fixed orientation table
// entry whose axis most aligns with normal: offset zeroed, scale fixed
// at a quarter-tile, U/V taken directly from the table.
func AlignToGrid(normal vecmath.Vec3, w, h int) Params {
	o := pickOrientation(normal)
	return Params{
		U:      o.right,
		V:      o.down,
		Scale:  vecmath.Vec2{X: 0.25, Y: 0.25},
		Offset: vecmath.Vec2{},
		W:      w,
		H:      h,
	}
}

// AlignToFace is like AlignToGrid but re-derives U and V from the
// face's actual normal rather than the table's fixed axis, so the
// projection follows faces that are only roughly axis-aligned.
func AlignToFace(normal vecmath.Vec3, w, h int) Params {
	o := pickOrientation(normal)
	v := o.down
	u := normal.Cross(v).Normalize()
	v = u.Cross(normal).Normalize()
	return Params{
		U:      u,
		V:      v,
		Scale:  vecmath.Vec2{X: 0.25, Y: 0.25},
		Offset: vecmath.Vec2{},
		W:      w,
		H:      h,
	}
}
