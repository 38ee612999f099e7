package texture

import "github.com/halfmesh/kernel/vecmath"

// Mode selects how Justify repositions a face's UV bounding box
// against its (W, H) tile.
type Mode int

const (
	ModeNone Mode = iota
	ModeTop
	ModeBottom
	ModeLeft
	ModeRight
	ModeCenter
	ModeFit
	ModeFitX
	ModeFitY
)

const justifyEps = 1e-9

// Justify shifts (and, for the Fit modes, rescales) p's offset so the
// UV bounding box of coords touches the requested side of the tile.
// coords must be the result of CoordsFromParams(p, corners) for the
// same face; Justify derives the new params without re-querying
// geometry. Offsets are tracked internally in normalized tile units
// (coordinate space, not pre-division world units) since that is the
// space the bounding box itself is measured in.
func Justify(p Params, coords []vecmath.Vec2, mode Mode) Params {
	if len(coords) == 0 || mode == ModeNone {
		return p
	}
	w, h := p.dims()
	minU, maxU := coords[0].X, coords[0].X
	minV, maxV := coords[0].Y, coords[0].Y
	for _, c := range coords[1:] {
		minU, maxU = minf(minU, c.X), maxf(maxU, c.X)
		minV, maxV = minf(minV, c.Y), maxf(maxV, c.Y)
	}

	np := p
	shiftNorm := func(dx, dy float64) {
		np.Offset.X -= dx * w
		np.Offset.Y -= dy * h
	}

	switch mode {
	case ModeTop:
		shiftNorm(0, minV)
	case ModeBottom:
		shiftNorm(0, maxV-1)
	case ModeLeft:
		shiftNorm(minU, 0)
	case ModeRight:
		shiftNorm(maxU-1, 0)
	case ModeCenter:
		shiftNorm((minU+maxU)/2-0.5, (minV+maxV)/2-0.5)
	case ModeFit, ModeFitX, ModeFitY:
		uSpan, vSpan := maxU-minU, maxV-minV
		if mode != ModeFitY && uSpan > justifyEps {
			np.Scale.X *= uSpan
			np.Offset.X = (p.Offset.X - minU*w) / uSpan
		}
		if mode != ModeFitX && vSpan > justifyEps {
			np.Scale.Y *= vSpan
			np.Offset.Y = (p.Offset.Y - minV*h) / vSpan
		}
	}
	return np
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
