package polygon

import "errors"

// ErrDegenerate indicates a polygon had fewer than 3 points, a
// near-zero plane normal, or ear-clipping could not make progress
// (self-intersecting or otherwise malformed input).
var ErrDegenerate = errors.New("polygon: degenerate input")

// ErrParallel indicates two lines were within 1e-6 of parallel, so no
// unique closest segment exists between them.
var ErrParallel = errors.New("polygon: lines are parallel")
