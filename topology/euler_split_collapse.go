package topology

import "github.com/halfmesh/kernel/handle"

// AddVertexToEdge splits e by inserting a new vertex at its midpoint
// (in connectivity only; callers set the new vertex's position). Both
// incident faces (if any) gain one extra side, becoming (n+1)-gons.
func (t *Topology) AddVertexToEdge(e EdgeHandle) (VertexHandle, error) {
	if !t.IsValidEdge(e) {
		return VertexHandle{}, ErrStaleHandle
	}
	h1, h2 := t.HalfEdgesOfEdge(e)
	a, _ := t.EndVertex(h2), t.EndVertex(h1) // a -(h1)-> b, b -(h2)-> a

	nv := t.allocVertex()

	na1, na2, _ := t.allocHalfEdgePair() // a -> nv , nv -> a
	t.halfEdges[na1.h.Index()].end = nv.h
	t.halfEdges[na2.h.Index()].end = a.h

	// h1 already ends at b; na1 becomes its new a -> nv predecessor.
	prevH1 := t.Prev(h1)
	t.setNext(prevH1, na1)
	t.setNext(na1, h1)
	t.halfEdges[na1.h.Index()].face = t.FaceOf(h1).h

	// h2 runs b -> a; split into b -> nv (h2, shrunk) and nv -> a (na2)
	nextH2 := t.Next(h2)
	t.halfEdges[h2.h.Index()].end = nv.h
	t.setNext(h2, na2)
	t.setNext(na2, nextH2)
	t.halfEdges[na2.h.Index()].face = t.FaceOf(h2).h
	t.halfEdges[na2.h.Index()].end = a.h
	if t.vertices[a.h.Index()].outHE == h2.h {
		t.vertices[a.h.Index()].outHE = na2.h // h2 now ends at nv
	}

	t.vertices[nv.h.Index()].outHE = na1.h // na1 ends at nv

	return nv, nil
}

// EdgeReplacement records one full-edge that collapse_edge identified
// with another as a side effect of merging its endpoints: Old is the
// edge that was removed, New is the edge it was folded into.
type EdgeReplacement struct {
	Old EdgeHandle
	New EdgeHandle
}

// CollapseEdge removes e, merging its two endpoints into one vertex
// (the edge's start vertex, by convention) and dropping any resulting
// degenerate (2-sided) faces. Returns the surviving vertex.
//
// If the doomed endpoint shares another neighbor w with the surviving
// endpoint, the collapse identifies doomed-w and survivor-w into a
// single edge; any such identification is reported in the returned
// slice. This always happens, safely, for the two other edges of a
// triangle that e itself borders (collapsing e degenerates that
// triangle to a 2-gon) as long as no more than one side of the
// resulting pair still carries an unrelated face. If both sides of an
// identified pair carry unrelated faces, reconciling them would mean
// re-stitching two independent face loops into one: CollapseEdge makes
// no change at all and returns ErrWouldIdentifyFacedEdge.
func (t *Topology) CollapseEdge(e EdgeHandle) (VertexHandle, []EdgeReplacement, error) {
	if !t.IsValidEdge(e) {
		return VertexHandle{}, nil, ErrStaleHandle
	}
	h1, h2 := t.HalfEdgesOfEdge(e)
	survivor, doomed := t.EndVertex(h2), t.EndVertex(h1)
	f1, f2 := t.FaceOf(h1), t.FaceOf(h2)

	hasFace := func(eh EdgeHandle) bool {
		a, b := t.HalfEdgesOfEdge(eh)
		return !t.FaceOf(a).IsInvalid() || !t.FaceOf(b).IsInvalid()
	}

	survivorEdgeTo := make(map[VertexHandle]EdgeHandle)
	for _, ee := range t.EdgesOfVertex(survivor) {
		if ee == e {
			continue
		}
		a, b := t.VerticesOfEdge(ee)
		other := a
		if a == survivor {
			other = b
		}
		survivorEdgeTo[other] = ee
	}

	// onDegeneratingFace reports whether de runs along f1 or f2: those
	// edges are already destined to be identified by the post-dissolve
	// cleanup below (via thirdVertexSafe), and must not also go through
	// the generic error-on-conflict path meant for unrelated duplicates.
	onDegeneratingFace := func(de EdgeHandle) bool {
		dh1, dh2 := t.HalfEdgesOfEdge(de)
		df1, df2 := t.FaceOf(dh1), t.FaceOf(dh2)
		return df1 == f1 || df2 == f1 || df1 == f2 || df2 == f2
	}

	type dupPair struct{ keep, dup EdgeHandle }
	var dups []dupPair
	for _, de := range t.EdgesOfVertex(doomed) {
		if de == e || onDegeneratingFace(de) {
			continue
		}
		a, b := t.VerticesOfEdge(de)
		other := a
		if a == doomed {
			other = b
		}
		if other == survivor {
			continue
		}
		keep, ok := survivorEdgeTo[other]
		if !ok {
			continue
		}
		if hasFace(de) && hasFace(keep) {
			return VertexHandle{}, nil, ErrWouldIdentifyFacedEdge
		}
		// Keep whichever of the two still carries a face (if either
		// does); the other is the redundant copy to drop.
		if hasFace(de) {
			keep, de = de, keep
		}
		dups = append(dups, dupPair{keep: keep, dup: de})
	}

	// thirdVertexSafe returns f's apex vertex w (the one that isn't
	// survivor or doomed) when f is a triangle about to degenerate, and
	// reports whether identifying edge(doomed,w) into edge(survivor,w)
	// is safe — i.e. at most one of the two already carries a face
	// other than f itself.
	thirdVertexSafe := func(f FaceHandle) (w VertexHandle, have, safe bool) {
		if f.IsInvalid() || t.FaceVertexCount(f) != 3 {
			return VertexHandle{}, false, true
		}
		for _, v := range t.VerticesOfFace(f) {
			if v != survivor && v != doomed {
				w, have = v, true
				break
			}
		}
		if !have {
			return VertexHandle{}, false, true
		}
		extraFace := func(eh EdgeHandle, ok bool) bool {
			if !ok {
				return false
			}
			a, b := t.HalfEdgesOfEdge(eh)
			return (!t.FaceOf(a).IsInvalid() && t.FaceOf(a) != f) ||
				(!t.FaceOf(b).IsInvalid() && t.FaceOf(b) != f)
		}
		nearE, nearOK := t.EdgeBetween(survivor, w)
		farE, farOK := t.EdgeBetween(doomed, w)
		if extraFace(nearE, nearOK) && extraFace(farE, farOK) {
			return w, true, false
		}
		return w, true, true
	}
	w1, haveW1, safe1 := thirdVertexSafe(f1)
	if !safe1 {
		return VertexHandle{}, nil, ErrWouldIdentifyFacedEdge
	}
	w2, haveW2, safe2 := thirdVertexSafe(f2)
	if !safe2 {
		return VertexHandle{}, nil, ErrWouldIdentifyFacedEdge
	}

	for _, h := range t.InHalfEdges(doomed) {
		t.halfEdges[h.h.Index()].end = survivor.h
	}
	for _, h := range t.OutHalfEdges(doomed) {
		twin := t.Twin(h)
		t.halfEdges[twin.h.Index()].end = survivor.h
	}

	// survivor's stored fan entry may be one of the halves about to be
	// freed; repoint it at any other half still arriving at survivor.
	if out := t.vertices[survivor.h.Index()].outHE; out.IsZero() || out == h1.h || out == h2.h {
		t.vertices[survivor.h.Index()].outHE = handle.Handle{}
		for _, hh := range t.inHalfEdgesByScan(survivor) {
			if hh != h1 && hh != h2 {
				t.vertices[survivor.h.Index()].outHE = hh.h
				break
			}
		}
	}

	// f1/f2 may be anchored at h1/h2, which are about to be freed;
	// re-anchor each at the half-edge that follows it in its loop.
	for _, f := range []FaceHandle{f1, f2} {
		if f.IsInvalid() {
			continue
		}
		if he := t.faces[f.h.Index()].he; he == h1.h || he == h2.h {
			t.faces[f.h.Index()].he = t.Next(HalfEdgeHandle{h: he}).h
		}
	}

	t.excise(h1)
	t.excise(h2)
	t.freeHalfEdgePair(h1)
	t.freeVertex(doomed)

	if !f1.IsInvalid() && t.FaceVertexCount(f1) < 3 {
		t.dissolveDegenerateFace(f1)
	}
	if !f2.IsInvalid() && f2 != f1 && t.FaceVertexCount(f2) < 3 {
		t.dissolveDegenerateFace(f2)
	}

	var replaced []EdgeReplacement
	for _, d := range dups {
		if err := t.RemoveEdge(d.dup, true); err != nil {
			return survivor, replaced, err
		}
		replaced = append(replaced, EdgeReplacement{Old: d.dup, New: d.keep})
	}
	if haveW1 {
		replaced = append(replaced, t.mergeDuplicateEdgesTo(survivor, w1)...)
	}
	if haveW2 {
		replaced = append(replaced, t.mergeDuplicateEdgesTo(survivor, w2)...)
	}

	return survivor, replaced, nil
}

// facesOn counts the live faces on e's two sides (0, 1 or 2).
func (t *Topology) facesOn(e EdgeHandle) int {
	h1, h2 := t.HalfEdgesOfEdge(e)
	n := 0
	if !t.FaceOf(h1).IsInvalid() {
		n++
	}
	if !t.FaceOf(h2).IsInvalid() {
		n++
	}
	return n
}

// zipOneFacedEdges folds dup into keep when each carries exactly one
// face and their endpoints already coincide: the two face-bearing
// halves become each other's twin, both open halves are discarded, and
// keep survives carrying both faces. Reports whether the fold happened
// (it refuses when the two faces wind the same way, since the twin
// pairing would then be directionally inconsistent).
func (t *Topology) zipOneFacedEdges(keep, dup EdgeHandle) bool {
	facedOpen := func(e EdgeHandle) (faced, open HalfEdgeHandle) {
		h1, h2 := t.HalfEdgesOfEdge(e)
		if t.FaceOf(h1).IsInvalid() {
			return h2, h1
		}
		return h1, h2
	}
	fa, oa := facedOpen(keep)
	fb, ob := facedOpen(dup)
	if t.EndVertex(fb) != t.StartVertex(fa) || t.StartVertex(fb) != t.EndVertex(fa) {
		return false
	}

	// Splice the boundary loops past the discarded open halves, then
	// re-pair the faced halves.
	pa, xa := t.Prev(oa), t.Next(oa)
	pb, xb := t.Prev(ob), t.Next(ob)
	if pa != ob {
		t.setNext(pa, xb)
	}
	if pb != oa {
		t.setNext(pb, xa)
	}
	t.halfEdges[fa.h.Index()].twin = fb.h
	t.halfEdges[fb.h.Index()].twin = fa.h
	t.halfEdges[fb.h.Index()].edge = t.halfEdges[fa.h.Index()].edge
	t.edgeHalf[keep.Index()] = fa.h
	t.freeHalfEdgeSolo(oa)
	t.freeHalfEdgeSolo(ob)
	t.freeEdgeSolo(dup)
	t.vertices[t.EndVertex(fa).h.Index()].outHE = fa.h
	t.vertices[t.EndVertex(fb).h.Index()].outHE = fb.h
	return true
}

// mergeDuplicateEdgesTo finds every full-edge directly between v and w
// and folds the duplicates into one, reporting each identification. A
// fully-open duplicate is simply removed; two one-faced duplicates zip
// into a single two-faced edge. Pairs whose combined face count
// exceeds two are left alone — callers guard against creating those.
func (t *Topology) mergeDuplicateEdgesTo(v, w VertexHandle) []EdgeReplacement {
	var matches []EdgeHandle
	for _, e := range t.EdgesOfVertex(v) {
		a, b := t.VerticesOfEdge(e)
		if (a == v && b == w) || (a == w && b == v) {
			matches = append(matches, e)
		}
	}
	if len(matches) < 2 {
		return nil
	}
	// Keep whichever duplicate carries the most faces; the barer copies
	// fold into it.
	keep := matches[0]
	for _, m := range matches {
		if t.facesOn(m) > t.facesOn(keep) {
			keep = m
		}
	}
	var out []EdgeReplacement
	for _, dup := range matches {
		if dup == keep {
			continue
		}
		switch {
		case t.facesOn(dup) == 0:
			if err := t.RemoveEdge(dup, true); err != nil {
				continue
			}
		case t.facesOn(dup) == 1 && t.facesOn(keep) == 1:
			if !t.zipOneFacedEdges(keep, dup) {
				continue
			}
		default:
			continue
		}
		out = append(out, EdgeReplacement{Old: dup, New: keep})
	}
	return out
}

// excise removes h from its face loop (or boundary loop), stitching
// prev(h) directly to next(h). It does not free h.
func (t *Topology) excise(h HalfEdgeHandle) {
	p, n := t.Prev(h), t.Next(h)
	if p != h {
		t.setNext(p, n)
	}
}

// dissolveDegenerateFace removes a face that collapse_edge or
// remove_colinear_vertex has reduced to fewer than 3 sides, opening its
// remaining half-edge(s) onto the boundary.
func (t *Topology) dissolveDegenerateFace(f FaceHandle) {
	if !t.IsValidFace(f) {
		return
	}
	for _, h := range t.HalfEdgesOfFace(f) {
		t.halfEdges[h.h.Index()].face = handle.Handle{}
		twin := t.Twin(h)
		if t.FaceOf(twin).IsInvalid() {
			t.setNext(h, twin)
			t.setNext(twin, h)
		}
	}
	t.freeFace(f)
}

// MergeVertices welds b into a: every half-edge incident to b is
// repointed to a, and a is returned as the surviving handle. Unlike
// CollapseEdge this does not require a and b to share an edge. If a
// and b have a common neighbor w, the weld identifies edge(a,w) and
// edge(b,w) into one — fine while the identified edge ends up with at
// most two faces (two one-faced copies zip into one interior edge, the
// watertight-seam weld), but refused with ErrNonManifold when it would
// carry more.
func (t *Topology) MergeVertices(a, b VertexHandle) (VertexHandle, error) {
	if !t.IsValid(a) || !t.IsValid(b) {
		return VertexHandle{}, ErrStaleHandle
	}
	if a == b {
		return a, nil
	}

	neighborOf := func(e EdgeHandle, v VertexHandle) VertexHandle {
		x, y := t.VerticesOfEdge(e)
		if x == v {
			return y
		}
		return x
	}
	facedEndsAt := func(e EdgeHandle, w VertexHandle) bool {
		h1, h2 := t.HalfEdgesOfEdge(e)
		f := h1
		if t.FaceOf(h1).IsInvalid() {
			f = h2
		}
		return t.EndVertex(f) == w
	}
	var common []VertexHandle
	for _, ea := range t.EdgesOfVertex(a) {
		w := neighborOf(ea, a)
		if w == b {
			continue
		}
		eb, ok := t.EdgeBetween(b, w)
		if !ok {
			continue
		}
		if t.facesOn(ea)+t.facesOn(eb) > 2 {
			return VertexHandle{}, ErrNonManifold
		}
		// Two one-faced copies must wind oppositely along the shared
		// edge or the fold would pinch the surface (a bow-tie), not
		// close a seam.
		if t.facesOn(ea) == 1 && t.facesOn(eb) == 1 &&
			facedEndsAt(ea, w) == facedEndsAt(eb, w) {
			return VertexHandle{}, ErrNonManifold
		}
		common = append(common, w)
	}

	t.weldVertices(a, b)
	for _, w := range common {
		t.mergeDuplicateEdgesTo(a, w)
	}
	return a, nil
}

// weldVertices repoints every half-edge incident to b at a and frees
// b, with no manifoldness guard and no duplicate-edge folding — the
// raw primitive under MergeVertices and MergeEdges.
func (t *Topology) weldVertices(a, b VertexHandle) {
	if a == b {
		return
	}
	for _, h := range t.InHalfEdges(b) {
		t.halfEdges[h.h.Index()].end = a.h
	}
	if t.vertices[a.h.Index()].outHE.IsZero() {
		t.vertices[a.h.Index()].outHE = t.vertices[b.h.Index()].outHE
	}
	t.freeVertex(b)
}

// MergeEdges zips full-edges a and b into one, merging their vertex
// pairs. When each edge carries exactly one face, the two open halves
// are discarded and the two face-bearing halves become each other's
// twin, so the surviving edge carries both faces; the weld pairing
// follows from their orientations. When either edge is fully open, a's
// endpoints weld with b's in the order VerticesOfEdge reports them.
// Edges that share a vertex zip naturally (the shared endpoint welds
// with itself). An edge that already carries two faces cannot be
// zipped (ErrNonManifold).
//
// Returns the two surviving vertices.
func (t *Topology) MergeEdges(a, b EdgeHandle) (v1, v2 VertexHandle, err error) {
	if !t.IsValidEdge(a) || !t.IsValidEdge(b) {
		return VertexHandle{}, VertexHandle{}, ErrStaleHandle
	}
	if a == b {
		x, y := t.VerticesOfEdge(a)
		return x, y, nil
	}

	facedHalf := func(e EdgeHandle) (faced, open HalfEdgeHandle, n int) {
		h1, h2 := t.HalfEdgesOfEdge(e)
		switch {
		case !t.FaceOf(h1).IsInvalid() && !t.FaceOf(h2).IsInvalid():
			return h1, h2, 2
		case !t.FaceOf(h1).IsInvalid():
			return h1, h2, 1
		case !t.FaceOf(h2).IsInvalid():
			return h2, h1, 1
		default:
			return h1, h2, 0
		}
	}
	fa, _, na := facedHalf(a)
	fb, _, nb := facedHalf(b)
	if na == 2 || nb == 2 {
		return VertexHandle{}, VertexHandle{}, ErrNonManifold
	}

	if na == 1 && nb == 1 {
		// fa runs p->q with its face on one side; for the twin pairing
		// to be consistent fb must end up running q->p, so end(fa)
		// welds with start(fb) and start(fa) with end(fb). The welds
		// deliberately skip MergeVertices' duplicate-edge guard: a and
		// b becoming parallel face-bearing edges is exactly what the
		// zip below resolves.
		v1, v2 = t.EndVertex(fa), t.StartVertex(fa)
		t.weldVertices(v1, t.StartVertex(fb))
		t.weldVertices(v2, t.EndVertex(fb))
		t.zipOneFacedEdges(a, b)
		return v1, v2, nil
	}

	// At most one side carries a face: weld endpoint pairs as given and
	// let duplicate-edge folding keep whichever copy has the face.
	a1, a2 := t.VerticesOfEdge(a)
	b1, b2 := t.VerticesOfEdge(b)
	v1, err = t.MergeVertices(a1, b1)
	if err != nil {
		return VertexHandle{}, VertexHandle{}, err
	}
	v2, err = t.MergeVertices(a2, b2)
	if err != nil {
		return VertexHandle{}, VertexHandle{}, err
	}
	t.mergeDuplicateEdgesTo(v1, v2)
	return v1, v2, nil
}

// BridgeEdges connects two open boundary edges with a new face: a quad
// when a and b share no vertex, a triangle when they share one.
func (t *Topology) BridgeEdges(a EdgeHandle, b EdgeHandle) (FaceHandle, error) {
	if !t.IsValidEdge(a) || !t.IsValidEdge(b) {
		return FaceHandle{}, ErrStaleHandle
	}
	openHalf := func(e EdgeHandle) (HalfEdgeHandle, bool) {
		h1, h2 := t.HalfEdgesOfEdge(e)
		if t.FaceOf(h1).IsInvalid() {
			return h1, true
		}
		if t.FaceOf(h2).IsInvalid() {
			return h2, true
		}
		return HalfEdgeHandle{}, false
	}
	oa, okA := openHalf(a)
	ob, okB := openHalf(b)
	if !okA || !okB {
		return FaceHandle{}, ErrNotOpenEdge
	}
	// Walk each edge along its open side so the bridge face reuses both
	// open half-edges and winds opposite the existing faces.
	loop := []VertexHandle{
		t.EndVertex(t.Twin(oa)), t.EndVertex(oa),
		t.EndVertex(t.Twin(ob)), t.EndVertex(ob),
	}
	dedup := loop[:0]
	for _, v := range loop {
		repeat := false
		for _, u := range dedup {
			if u == v {
				repeat = true
				break
			}
		}
		if !repeat {
			dedup = append(dedup, v)
		}
	}
	return t.AddFace(dedup...)
}
