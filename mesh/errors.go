package mesh

import (
	"errors"

	"github.com/halfmesh/kernel/topology"
)

// ErrStaleHandle is topology.ErrStaleHandle, re-exported at the mesh
// boundary so callers of this package never need to import topology
// just to match errors.Is against its sentinels.
var ErrStaleHandle = topology.ErrStaleHandle

// ErrBadPolygon is topology.ErrBadPolygon, re-exported.
var ErrBadPolygon = topology.ErrBadPolygon

// ErrNonManifold is topology.ErrNonManifold, re-exported.
var ErrNonManifold = topology.ErrNonManifold

// ErrEmpty indicates a batch operator was called with an empty
// selection, surfaced as an error so batch callers can distinguish it
// from real work done.
var ErrEmpty = errors.New("mesh: empty selection")

// ErrOutOfRange indicates a numeric argument outside its documented domain.
var ErrOutOfRange = errors.New("mesh: argument out of range")

// ErrDegenerate indicates a geometric operation (triangulation, plane
// fit, texture basis solve, chord-in-polygon test) lost rank or found
// no valid solution; the operator is skipped rather than corrupting
// topology.
var ErrDegenerate = errors.New("mesh: degenerate geometry")

// ErrNoCommonFace indicates connect_vertices was asked to chord two
// vertices that share no face.
var ErrNoCommonFace = errors.New("mesh: vertices share no face")

// ErrChordOutsideFace indicates connect_vertices' chord would leave
// the face's interior.
var ErrChordOutsideFace = errors.New("mesh: chord leaves face interior")

// ErrUnresolvedMaterial indicates AssignMaterial was called with a
// reference the configured MaterialResolver could not resolve.
var ErrUnresolvedMaterial = errors.New("mesh: material reference could not be resolved")

// ErrNotQuadlike indicates quad_slice_faces was given a face it could
// not locate four corners for.
var ErrNotQuadlike = errors.New("mesh: face is not quad-like")
