package topology

import "github.com/halfmesh/kernel/handle"

// allocVertex reserves a new isolated vertex record.
func (t *Topology) allocVertex() VertexHandle {
	h := t.vertexPool.Alloc()
	n := t.vertexPool.Cap()
	for len(t.vertices) < n {
		t.vertices = append(t.vertices, vertexRecord{})
	}
	if t.onVertexGrow != nil {
		t.onVertexGrow(n)
	}
	return VertexHandle{h}
}

// freeVertex tombstones a vertex record.
func (t *Topology) freeVertex(v VertexHandle) {
	idx := v.h.Index()
	_ = t.vertexPool.Free(v.h)
	t.vertices[idx] = vertexRecord{}
	if t.onVertexFree != nil {
		t.onVertexFree(idx)
	}
}

// allocHalfEdgePair reserves a twinned pair of half-edges and the
// full-edge that owns them, wiring twin/edge fields but leaving
// end/next/prev/face for the caller to fill in (every Euler operator
// that calls this immediately finishes wiring before returning, so the
// half-wired state is never observable from outside the package).
func (t *Topology) allocHalfEdgePair() (h1, h2 HalfEdgeHandle, e EdgeHandle) {
	a := t.halfEdgePool.Alloc()
	b := t.halfEdgePool.Alloc()
	n := t.halfEdgePool.Cap()
	for len(t.halfEdges) < n {
		t.halfEdges = append(t.halfEdges, halfEdgeRecord{})
	}
	if t.onHalfEdgeGrow != nil {
		t.onHalfEdgeGrow(n)
	}

	eh := t.edgePool.Alloc()
	en := t.edgePool.Cap()
	for len(t.edgeHalf) < en {
		t.edgeHalf = append(t.edgeHalf, handle.Handle{})
	}
	t.edgeHalf[eh.Index()] = a

	t.halfEdges[a.Index()].twin = b
	t.halfEdges[b.Index()].twin = a
	t.halfEdges[a.Index()].edge = eh
	t.halfEdges[b.Index()].edge = eh

	return HalfEdgeHandle{a}, HalfEdgeHandle{b}, EdgeHandle{eh}
}

// freeHalfEdgePair tombstones both half-edges of a pair plus their
// owning full-edge.
func (t *Topology) freeHalfEdgePair(h HalfEdgeHandle) {
	rec := t.halfEdges[h.h.Index()]
	twin := rec.twin
	edge := rec.edge

	i1, i2 := h.h.Index(), twin.Index()
	_ = t.halfEdgePool.Free(h.h)
	_ = t.halfEdgePool.Free(twin)
	t.halfEdges[i1] = halfEdgeRecord{}
	t.halfEdges[i2] = halfEdgeRecord{}
	if t.onHalfEdgeFree != nil {
		t.onHalfEdgeFree(i1)
		t.onHalfEdgeFree(i2)
	}

	_ = t.edgePool.Free(edge)
	t.edgeHalf[edge.Index()] = handle.Handle{}
}

// freeHalfEdgeSolo tombstones one half-edge without touching its twin
// or owning edge. Only the edge zip (zipOneFacedEdges) uses it, after
// re-pairing the two surviving halves so the discarded open halves no
// longer belong to any pair.
func (t *Topology) freeHalfEdgeSolo(h HalfEdgeHandle) {
	idx := h.h.Index()
	_ = t.halfEdgePool.Free(h.h)
	t.halfEdges[idx] = halfEdgeRecord{}
	if t.onHalfEdgeFree != nil {
		t.onHalfEdgeFree(idx)
	}
}

// freeEdgeSolo tombstones a full-edge record whose half-edges have
// already been re-pointed at another edge.
func (t *Topology) freeEdgeSolo(e EdgeHandle) {
	_ = t.edgePool.Free(e.h)
	t.edgeHalf[e.Index()] = handle.Handle{}
}

// allocFace reserves a new face record pointing at he.
func (t *Topology) allocFace(he HalfEdgeHandle) FaceHandle {
	h := t.facePool.Alloc()
	n := t.facePool.Cap()
	for len(t.faces) < n {
		t.faces = append(t.faces, faceRecord{})
	}
	if t.onFaceGrow != nil {
		t.onFaceGrow(n)
	}
	t.faces[h.Index()] = faceRecord{he: he.h}
	return FaceHandle{h}
}

// freeFace tombstones a face record.
func (t *Topology) freeFace(f FaceHandle) {
	idx := f.h.Index()
	_ = t.facePool.Free(f.h)
	t.faces[idx] = faceRecord{}
	if t.onFaceFree != nil {
		t.onFaceFree(idx)
	}
}
