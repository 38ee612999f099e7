package topology

import "github.com/halfmesh/kernel/handle"

// AddVertex creates a new isolated vertex with no incident geometry.
func (t *Topology) AddVertex() VertexHandle {
	return t.allocVertex()
}

// setNext links a->b as consecutive half-edges (next/prev both sides).
func (t *Topology) setNext(a, b HalfEdgeHandle) {
	t.halfEdges[a.h.Index()].next = b.h
	t.halfEdges[b.h.Index()].prev = a.h
}

// findGapIn returns the open half-edge ending at v, if v has one. A
// manifold vertex has at most one: a closed fan has none, a boundary
// vertex has exactly one.
func (t *Topology) findGapIn(v VertexHandle) (HalfEdgeHandle, bool) {
	for _, h := range t.InHalfEdges(v) {
		if t.FaceOf(h).IsInvalid() {
			return h, true
		}
	}
	return HalfEdgeHandle{}, false
}

// AddFace closes a polygon over an existing vertex loop, allocating any
// edges that don't already exist and reusing open (boundary) edges that
// do. vs must name at least 3 distinct live vertices in loop order.
//
// Reused edges must currently be open on the vs[i]->vs[i+1] side, or the
// polygon would place a third face on one edge (ErrNonManifold). Newly
// touched vertices that already carry other incident geometry must have
// a boundary gap to attach into, so the vertex fan stays manifold.
//
// Splicing the new face's open (twin) edges into each touched vertex's
// existing boundary gap covers straight-line construction and sharing a
// single edge with one existing face (the patterns mesh.Mesh actually
// exercises); closing a hole by reusing two non-adjacent boundary edges
// of the same face in one call is not relinked beyond the vertices it
// touches directly.
func (t *Topology) AddFace(vs ...VertexHandle) (FaceHandle, error) {
	n := len(vs)
	if n < 3 {
		return FaceHandle{}, ErrBadPolygon
	}
	seen := make(map[VertexHandle]bool, n)
	for _, v := range vs {
		if !t.IsValid(v) {
			return FaceHandle{}, ErrStaleHandle
		}
		if seen[v] {
			return FaceHandle{}, ErrBadPolygon
		}
		seen[v] = true
	}

	reused := make([]bool, n)
	innerHE := make([]HalfEdgeHandle, n)
	for i := 0; i < n; i++ {
		a, b := vs[i], vs[(i+1)%n]
		if h, ok := t.HalfEdgeBetween(a, b); ok {
			if !t.FaceOf(h).IsInvalid() {
				return FaceHandle{}, ErrNonManifold
			}
			innerHE[i] = h
			reused[i] = true
		}
	}

	hadIncidence := make([]bool, n)
	gapIn := make([]HalfEdgeHandle, n)
	haveGap := make([]bool, n)
	for i, v := range vs {
		hadIncidence[i] = !t.vertices[v.h.Index()].outHE.IsZero()
		if hadIncidence[i] {
			g, ok := t.findGapIn(v)
			if !ok {
				return FaceHandle{}, ErrBadPolygon
			}
			gapIn[i] = g
			haveGap[i] = true
		}
	}
	// capture old Next/Prev of the gap anchors before any mutation
	gapPrevOld := make([]HalfEdgeHandle, n)
	gapOutOld := make([]HalfEdgeHandle, n)
	gapOutNextOld := make([]HalfEdgeHandle, n)
	for i := range vs {
		if !haveGap[i] {
			continue
		}
		gapPrevOld[i] = t.Prev(gapIn[i])
		gapOutOld[i] = t.Next(gapIn[i])
		gapOutNextOld[i] = t.Next(gapOutOld[i])
	}

	for i := 0; i < n; i++ {
		if reused[i] {
			continue
		}
		a, b := vs[i], vs[(i+1)%n]
		h1, h2, _ := t.allocHalfEdgePair()
		t.halfEdges[h1.h.Index()].end = b.h
		t.halfEdges[h2.h.Index()].end = a.h
		innerHE[i] = h1
	}

	face := t.allocFace(innerHE[0])
	for i := 0; i < n; i++ {
		t.halfEdges[innerHE[i].h.Index()].face = face.h
		t.setNext(innerHE[i], innerHE[(i+1)%n])
	}

	for i, v := range vs {
		inEdge := innerHE[(i-1+n)%n]
		outEdge := innerHE[i]
		outerArrive := t.Twin(outEdge)
		outerLeave := t.Twin(inEdge)
		arriveOpen := t.FaceOf(outerArrive).IsInvalid()
		leaveOpen := t.FaceOf(outerLeave).IsInvalid()

		if !hadIncidence[i] {
			if t.vertices[v.h.Index()].outHE.IsZero() {
				t.vertices[v.h.Index()].outHE = outerArrive.h
			}
			if arriveOpen && leaveOpen {
				t.setNext(outerArrive, outerLeave)
			}
			continue
		}

		// anchorPrev/anchorNext bound this vertex's pre-existing gap,
		// skipping past whichever of inEdge/outEdge was reused (and so
		// is no longer part of the open boundary).
		anchorPrev := gapIn[i]
		if reused[(i-1+n)%n] {
			anchorPrev = gapPrevOld[i]
		}
		anchorNext := gapOutOld[i]
		if reused[i] {
			anchorNext = gapOutNextOld[i]
		}

		switch {
		case leaveOpen && arriveOpen:
			t.setNext(anchorPrev, outerLeave)
			t.setNext(outerArrive, anchorNext)
		case leaveOpen:
			t.setNext(anchorPrev, outerLeave)
		case arriveOpen:
			t.setNext(outerArrive, anchorNext)
		default:
			t.setNext(anchorPrev, anchorNext)
		}
	}

	return face, nil
}

// RemoveFace deletes f, opening its half-edges back onto the boundary.
// If keepVertices is false, any vertex left with no remaining incident
// edge is also deleted.
func (t *Topology) RemoveFace(f FaceHandle, keepVertices bool) error {
	if !t.IsValidFace(f) {
		return ErrStaleHandle
	}
	hes := t.HalfEdgesOfFace(f)
	for _, h := range hes {
		t.halfEdges[h.h.Index()].face = handle.Handle{}
	}
	for _, h := range hes {
		twin := t.Twin(h)
		if t.FaceOf(twin).IsInvalid() {
			// both sides now open: h and twin form (or extend) a
			// simple 2-cycle boundary unless other faces still touch
			// their shared vertices; re-deriving the global boundary
			// walk here would require a full re-scan, so we only fix
			// up the local pair, matching this package's documented
			// relinking scope.
			t.setNext(h, twin)
			t.setNext(twin, h)
		}
	}
	t.freeFace(f)
	if !keepVertices {
		for _, h := range hes {
			v := t.EndVertex(h)
			if t.Degree(v) == 0 {
				t.freeVertex(v)
			}
		}
	}
	return nil
}

// RemoveEdge deletes the full-edge e, merging its two incident faces'
// loops into one open region (or simply opening both sides if e was
// already a boundary edge on one side). If e is the sole edge of a
// closed 2-gon or otherwise cannot be removed without leaving a
// half-edge without a valid next/prev, ErrNonManifold is returned.
func (t *Topology) RemoveEdge(e EdgeHandle, keepVertices bool) error {
	if !t.IsValidEdge(e) {
		return ErrStaleHandle
	}
	h1, h2 := t.HalfEdgesOfEdge(e)
	f1, f2 := t.FaceOf(h1), t.FaceOf(h2)
	if !f1.IsInvalid() && !f2.IsInvalid() && f1 == f2 {
		return ErrNonManifold
	}

	a, b := t.EndVertex(h2), t.EndVertex(h1)

	prev1, next1 := t.Prev(h1), t.Next(h1)
	prev2, next2 := t.Prev(h2), t.Next(h2)
	if !f1.IsInvalid() {
		t.freeFace(f1)
	}
	if !f2.IsInvalid() {
		t.freeFace(f2)
	}
	if prev1 != h2 {
		t.setNext(prev2, next1)
	}
	if prev2 != h1 {
		t.setNext(prev1, next2)
	}
	for _, v := range []VertexHandle{a, b} {
		if t.vertices[v.h.Index()].outHE == h1.h || t.vertices[v.h.Index()].outHE == h2.h {
			if g, ok := t.findGapIn(v); ok {
				t.vertices[v.h.Index()].outHE = g.h
			} else {
				t.vertices[v.h.Index()].outHE = handle.Handle{}
			}
		}
	}
	t.freeHalfEdgePair(h1)
	if !keepVertices {
		for _, v := range []VertexHandle{a, b} {
			if t.Degree(v) == 0 {
				t.freeVertex(v)
			}
		}
	}
	return nil
}

// RemoveVertex deletes v and every half-edge and face touching it,
// regardless of removeLooseEdges. Every face incident to v is opened
// first, then every edge directly incident to v is freed outright, so v
// always ends at degree 0 and is itself freed.
//
// removeLooseEdges only governs a side effect one step further out:
// opening a face incident to v can leave one of that face's OTHER
// edges (not touching v) open on both sides, a now-disconnected loose
// boundary edge belonging to no face. When removeLooseEdges is true,
// those edges are freed too; when false, they are left in place as
// degenerate open edges.
func (t *Topology) RemoveVertex(v VertexHandle, removeLooseEdges bool) error {
	if !t.IsValid(v) {
		return ErrStaleHandle
	}

	faces := t.FacesOfVertex(v)

	var sideCandidates []EdgeHandle
	if removeLooseEdges {
		for _, f := range faces {
			for _, h := range t.HalfEdgesOfFace(f) {
				e := t.EdgeOf(h)
				a, b := t.VerticesOfEdge(e)
				if a != v && b != v {
					sideCandidates = append(sideCandidates, e)
				}
			}
		}
	}

	for _, f := range faces {
		if err := t.RemoveFace(f, true); err != nil {
			return err
		}
	}

	for _, e := range t.EdgesOfVertex(v) {
		if err := t.RemoveEdge(e, true); err != nil {
			return err
		}
	}

	if removeLooseEdges {
		for _, e := range sideCandidates {
			if !t.IsValidEdge(e) {
				continue
			}
			h1, h2 := t.HalfEdgesOfEdge(e)
			if t.FaceOf(h1).IsInvalid() && t.FaceOf(h2).IsInvalid() {
				if err := t.RemoveEdge(e, true); err != nil {
					return err
				}
			}
		}
	}

	if t.Degree(v) == 0 {
		t.freeVertex(v)
	}
	return nil
}
