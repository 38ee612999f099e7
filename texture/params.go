package texture

import (
	"math"

	"github.com/halfmesh/kernel/vecmath"
)

// Params is a face's world-space UV projection: a unit U/V axis pair,
// a per-axis scale and offset, and the texture tile dimensions those
// are expressed against.
type Params struct {
	U, V   vecmath.Vec3
	Scale  vecmath.Vec2
	Offset vecmath.Vec2
	W, H   int
}

func (p Params) dims() (w, h float64) {
	w, h = float64(p.W), float64(p.H)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return
}

// CoordsFromParams projects each world-space corner position through
// p, producing one normalized texcoord per corner.
func CoordsFromParams(p Params, corners []vecmath.Vec3) []vecmath.Vec2 {
	w, h := p.dims()
	out := make([]vecmath.Vec2, len(corners))
	for i, c := range corners {
		u := p.U.Dot(c)/p.Scale.X + p.Offset.X
		v := p.V.Dot(c)/p.Scale.Y + p.Offset.Y
		out[i] = vecmath.Vec2{X: u / w, Y: v / h}
	}
	return out
}

const solverEps = 1e-9

// ParamsFromCoords solves for the projection parameters that
// reproduce the given per-corner UVs from the given per-corner
// world-space positions exactly on the best-conditioned triangle
// within the face. It returns ErrDegenerate if no well-conditioned
// triangle exists or the UV basis loses rank.
func ParamsFromCoords(corners []vecmath.Vec3, uvs []vecmath.Vec2, w, h int) (Params, error) {
	if len(corners) < 3 || len(corners) != len(uvs) {
		return Params{}, ErrDegenerate
	}
	ia, ib, ic, ok := bestConditionedTriangle(corners)
	if !ok {
		return Params{}, ErrDegenerate
	}
	a, b, c := corners[ia], corners[ib], corners[ic]
	uvA, uvB, uvC := uvs[ia], uvs[ib], uvs[ic]

	e0 := b.Sub(a)
	e1 := c.Sub(a)
	t00, t01 := uvB.X-uvA.X, uvB.Y-uvA.Y
	t10, t11 := uvC.X-uvA.X, uvC.Y-uvA.Y

	eDet := t00*t11 - t10*t01
	if math.Abs(eDet) < solverEps {
		return Params{}, ErrDegenerate
	}

	uWorld := e0.Scale(t11).Sub(e1.Scale(t01)).Scale(1 / eDet)
	vWorld := e1.Scale(t00).Sub(e0.Scale(t10)).Scale(1 / eDet)

	m := vecmath.Mat3FromRows(uWorld, vWorld, uWorld.Cross(vWorld))
	inv, err := m.Invert(solverEps)
	if err != nil {
		return Params{}, ErrDegenerate
	}
	uBasis := inv.Row(0)
	vBasis := inv.Row(1)

	lenU, lenV := uBasis.Len(), vBasis.Len()
	if lenU < solverEps || lenV < solverEps {
		return Params{}, ErrDegenerate
	}

	wf, hf := float64(w), float64(h)
	if wf < 1 {
		wf = 1
	}
	if hf < 1 {
		hf = 1
	}

	uNorm := uBasis.Normalize()
	vNorm := vBasis.Normalize()

	// uvA.X = (dot(U,a)/scale.X + offset.X)/W and dot(U,a)/(scale.X*W)
	// is exactly uNorm.a*lenU, so the normalized residual is offset/W;
	// offsets are only meaningful modulo one tile.
	offX := fractionalPart(uvA.X-uNorm.Dot(a)*lenU) * wf
	offY := fractionalPart(uvA.Y-vNorm.Dot(a)*lenV) * hf

	return Params{
		U:      uNorm,
		V:      vNorm,
		Scale:  vecmath.Vec2{X: 1 / (wf * lenU), Y: 1 / (hf * lenV)},
		Offset: vecmath.Vec2{X: offX, Y: offY},
		W:      w,
		H:      h,
	}, nil
}

func fractionalPart(x float64) float64 {
	return x - math.Floor(x)
}

// bestConditionedTriangle scans all corner triples and returns the one
// maximizing |ab|^2 * |ac|^2 * (1 - |a.c|), the product of long,
// near-perpendicular edges that yields the most numerically stable UV
// basis.
func bestConditionedTriangle(corners []vecmath.Vec3) (ia, ib, ic int, ok bool) {
	n := len(corners)
	if n < 3 {
		return 0, 0, 0, false
	}
	bestScore := -1.0
	found := false
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			for k := 0; k < n; k++ {
				if k == i || k == j {
					continue
				}
				ab := corners[j].Sub(corners[i])
				ac := corners[k].Sub(corners[i])
				lab, lac := ab.Len(), ac.Len()
				if lab < solverEps || lac < solverEps {
					continue
				}
				cosAngle := ab.Normalize().Dot(ac.Normalize())
				score := lab * lab * lac * lac * (1 - math.Abs(cosAngle))
				if score > bestScore {
					bestScore, ia, ib, ic, found = score, i, j, k, true
				}
			}
		}
	}
	return ia, ib, ic, found
}
