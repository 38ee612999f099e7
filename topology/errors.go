package topology

import "errors"

// Sentinel errors returned by Topology's Euler operators. Callers
// branch on these with errors.Is.
var (
	// ErrStaleHandle indicates a Handle whose generation no longer
	// matches the pool — the element it once named is gone.
	ErrStaleHandle = errors.New("topology: stale handle")

	// ErrBadPolygon indicates AddFace was given fewer than 3 vertices,
	// a repeated vertex, or a loop whose insertion would make some
	// vertex non-manifold.
	ErrBadPolygon = errors.New("topology: bad polygon")

	// ErrNonManifold indicates an edit that would place a third face on
	// a full edge, or that tries to zip/weld edges whose endpoints are
	// incompatible.
	ErrNonManifold = errors.New("topology: would break manifoldness")

	// ErrEmpty indicates an operator was called with an empty selection;
	// this is a no-op success, not a failure, but batch callers that want
	// to distinguish "nothing to do" check for it.
	ErrEmpty = errors.New("topology: empty selection")

	// ErrOutOfRange indicates a numeric argument outside its documented domain.
	ErrOutOfRange = errors.New("topology: argument out of range")

	// ErrNotOpenEdge indicates an operator that requires a boundary
	// (open) half-edge was given one that already belongs to a face.
	ErrNotOpenEdge = errors.New("topology: edge is not open")

	// ErrNoCommonVertex indicates two edges were expected to share an
	// endpoint (e.g. merge_edges, bridge_edges triangle case) but don't.
	ErrNoCommonVertex = errors.New("topology: edges share no vertex")

	// ErrWouldIdentifyFacedEdge indicates collapse_edge would merge its
	// two endpoints into a shared neighbor that already has a face-bearing
	// edge to one of them, producing two distinct full-edges between the
	// same vertex pair. Reconciling that would mean re-stitching two
	// independent face loops into one, which collapse_edge refuses to do
	// silently.
	ErrWouldIdentifyFacedEdge = errors.New("topology: collapse would identify a face-bearing edge")
)
