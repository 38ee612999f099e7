package vecmath

import "errors"

// ErrSingular indicates a Mat3 with (near-)zero determinant was asked
// to invert — used by texture.ParamsFromCoords when the texture-basis
// matrix loses rank.
var ErrSingular = errors.New("vecmath: singular matrix")

// Mat3 is a row-major 3x3 matrix. The texture-parameter solver is the
// only caller that ever needs a matrix inverse in this kernel (it
// always inverts a fixed 3x3 basis), so Mat3 carries exactly the
// operations that solver uses rather than a general NxN linear-algebra
// surface — see DESIGN.md for why a generic matrix package from the
// corpus was not pulled in for this.
type Mat3 [3]Vec3

// Mat3FromRows builds a Mat3 whose rows are r0, r1, r2 — the shape the
// texture solver uses when it assembles M = [U, V, U x V]^T.
func Mat3FromRows(r0, r1, r2 Vec3) Mat3 {
	return Mat3{r0, r1, r2}
}

// Row returns row i (0-2).
func (m Mat3) Row(i int) Vec3 { return m[i] }

// det returns the determinant via cofactor expansion along the first row.
func (m Mat3) det() float64 {
	a, b, c := m[0].X, m[0].Y, m[0].Z
	d, e, f := m[1].X, m[1].Y, m[1].Z
	g, h, i := m[2].X, m[2].Y, m[2].Z
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}

// Invert returns the matrix inverse via the classical adjugate /
// determinant formula, or ErrSingular if |det| is below eps.
func (m Mat3) Invert(eps float64) (Mat3, error) {
	det := m.det()
	if det < 0 {
		det = -det
	}
	if det < eps {
		return Mat3{}, ErrSingular
	}
	invDet := 1.0 / m.det()

	a, b, c := m[0].X, m[0].Y, m[0].Z
	d, e, f := m[1].X, m[1].Y, m[1].Z
	g, h, i := m[2].X, m[2].Y, m[2].Z

	// Cofactor matrix, transposed in place (adjugate), scaled by 1/det.
	return Mat3{
		{X: (e*i - f*h) * invDet, Y: (c*h - b*i) * invDet, Z: (b*f - c*e) * invDet},
		{X: (f*g - d*i) * invDet, Y: (a*i - c*g) * invDet, Z: (c*d - a*f) * invDet},
		{X: (d*h - e*g) * invDet, Y: (b*g - a*h) * invDet, Z: (a*e - b*d) * invDet},
	}, nil
}
