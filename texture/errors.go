package texture

import "errors"

// ErrDegenerate indicates a face had too few corners, a near-zero
// texture-basis determinant, or otherwise lost rank while solving for
// projection parameters from corner UVs.
var ErrDegenerate = errors.New("texture: degenerate basis")
