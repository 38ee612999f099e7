package topology

// Twin returns the other half-edge of h's full-edge pair. Twin is an
// involution: Twin(Twin(h)) == h.
func (t *Topology) Twin(h HalfEdgeHandle) HalfEdgeHandle {
	return HalfEdgeHandle{t.halfEdges[h.h.Index()].twin}
}

// Next returns the next half-edge in h's face loop (or, for an open
// half-edge, the next half-edge walking the open boundary).
func (t *Topology) Next(h HalfEdgeHandle) HalfEdgeHandle {
	return HalfEdgeHandle{t.halfEdges[h.h.Index()].next}
}

// Prev returns the previous half-edge in h's face loop.
func (t *Topology) Prev(h HalfEdgeHandle) HalfEdgeHandle {
	return HalfEdgeHandle{t.halfEdges[h.h.Index()].prev}
}

// EndVertex returns the vertex h points into.
func (t *Topology) EndVertex(h HalfEdgeHandle) VertexHandle {
	return VertexHandle{t.halfEdges[h.h.Index()].end}
}

// StartVertex returns the vertex h points out of: end(twin(h)).
func (t *Topology) StartVertex(h HalfEdgeHandle) VertexHandle {
	return t.EndVertex(t.Twin(h))
}

// FaceOf returns the face h belongs to, or FaceInvalid if h is on an
// open boundary.
func (t *Topology) FaceOf(h HalfEdgeHandle) FaceHandle {
	return FaceHandle{t.halfEdges[h.h.Index()].face}
}

// EdgeOf returns the full-edge owning h.
func (t *Topology) EdgeOf(h HalfEdgeHandle) EdgeHandle {
	return EdgeHandle{t.halfEdges[h.h.Index()].edge}
}

// HalfEdgesOfEdge returns the two half-edges of full-edge e.
func (t *Topology) HalfEdgesOfEdge(e EdgeHandle) (h1, h2 HalfEdgeHandle) {
	h1 = HalfEdgeHandle{t.edgeHalf[e.h.Index()]}
	h2 = t.Twin(h1)
	return
}

// VerticesOfEdge returns the two endpoints of full-edge e.
func (t *Topology) VerticesOfEdge(e EdgeHandle) (a, b VertexHandle) {
	h1, h2 := t.HalfEdgesOfEdge(e)
	return t.EndVertex(h2), t.EndVertex(h1)
}

// FacesOfEdge returns the (up to two) faces incident to full-edge e.
// A FaceInvalid entry means that side is an open boundary.
func (t *Topology) FacesOfEdge(e EdgeHandle) (f1, f2 FaceHandle) {
	h1, h2 := t.HalfEdgesOfEdge(e)
	return t.FaceOf(h1), t.FaceOf(h2)
}

// HalfEdgesOfFace returns every half-edge in f's loop, in face-loop
// (next) order starting at the face's stored entry half-edge.
func (t *Topology) HalfEdgesOfFace(f FaceHandle) []HalfEdgeHandle {
	start := HalfEdgeHandle{t.faces[f.h.Index()].he}
	out := []HalfEdgeHandle{start}
	for cur := t.Next(start); cur != start; cur = t.Next(cur) {
		out = append(out, cur)
	}
	return out
}

// VerticesOfFace returns the vertex loop of f, in face-loop order.
func (t *Topology) VerticesOfFace(f FaceHandle) []VertexHandle {
	hes := t.HalfEdgesOfFace(f)
	out := make([]VertexHandle, len(hes))
	for i, h := range hes {
		out[i] = t.EndVertex(h)
	}
	return out
}

// EntryHalfEdge returns the half-edge a face's loop is anchored at.
func (t *Topology) EntryHalfEdge(f FaceHandle) HalfEdgeHandle {
	return HalfEdgeHandle{t.faces[f.h.Index()].he}
}

// NextAroundVertex returns the next half-edge incoming to end(h),
// walking the vertex fan via twin(next(h)).
func (t *Topology) NextAroundVertex(h HalfEdgeHandle) HalfEdgeHandle {
	return t.Twin(t.Next(h))
}

// PrevAroundVertex returns the previous half-edge incoming to end(h),
// walking the vertex fan via prev(twin(h)), the inverse walk.
func (t *Topology) PrevAroundVertex(h HalfEdgeHandle) HalfEdgeHandle {
	return t.Prev(t.Twin(h))
}

// InHalfEdges returns every half-edge incoming to v (i.e. EndVertex(h)
// == v), by walking the vertex fan starting from v's stored incident
// half-edge. Complexity: O(degree(v)).
func (t *Topology) InHalfEdges(v VertexHandle) []HalfEdgeHandle {
	start := t.vertices[v.h.Index()].outHE
	if start.IsZero() {
		return nil
	}
	startH := HalfEdgeHandle{start}
	out := []HalfEdgeHandle{startH}
	for cur := t.NextAroundVertex(startH); cur != startH; cur = t.NextAroundVertex(cur) {
		out = append(out, cur)
		if len(out) > t.halfEdgePool.Cap()+1 {
			break // defensive: malformed fan, avoid infinite loop
		}
	}
	return out
}

// OutHalfEdges returns every half-edge outgoing from v.
func (t *Topology) OutHalfEdges(v VertexHandle) []HalfEdgeHandle {
	in := t.InHalfEdges(v)
	out := make([]HalfEdgeHandle, len(in))
	for i, h := range in {
		out[i] = t.Twin(h)
	}
	return out
}

// EdgesOfVertex returns the full-edges incident to v.
func (t *Topology) EdgesOfVertex(v VertexHandle) []EdgeHandle {
	in := t.InHalfEdges(v)
	out := make([]EdgeHandle, len(in))
	for i, h := range in {
		out[i] = t.EdgeOf(h)
	}
	return out
}

// FacesOfVertex returns the distinct live faces incident to v.
func (t *Topology) FacesOfVertex(v VertexHandle) []FaceHandle {
	var out []FaceHandle
	seen := map[FaceHandle]bool{}
	for _, h := range t.InHalfEdges(v) {
		f := t.FaceOf(h)
		if f.IsInvalid() || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// HalfEdgeBetween returns the half-edge from a to b (origin a, end b),
// if one exists.
func (t *Topology) HalfEdgeBetween(a, b VertexHandle) (HalfEdgeHandle, bool) {
	for _, h := range t.OutHalfEdges(a) {
		if t.EndVertex(h) == b {
			return h, true
		}
	}
	return HalfEdgeHandle{}, false
}

// EdgeBetween returns the full-edge connecting a and b, if one exists.
func (t *Topology) EdgeBetween(a, b VertexHandle) (EdgeHandle, bool) {
	h, ok := t.HalfEdgeBetween(a, b)
	if !ok {
		return EdgeHandle{}, false
	}
	return t.EdgeOf(h), true
}

// FaceBetween returns the face incident to both full-edges a and b, if
// one exists.
func (t *Topology) FaceBetween(a, b EdgeHandle) (FaceHandle, bool) {
	fa1, fa2 := t.FacesOfEdge(a)
	fb1, fb2 := t.FacesOfEdge(b)
	for _, f := range []FaceHandle{fa1, fa2} {
		if f.IsInvalid() {
			continue
		}
		if f == fb1 || f == fb2 {
			return f, true
		}
	}
	return FaceHandle{}, false
}

// Degree returns the number of full-edges incident to v.
func (t *Topology) Degree(v VertexHandle) int {
	return len(t.InHalfEdges(v))
}

// FaceVertexCount returns the number of vertices (== half-edges) in f's loop.
func (t *Topology) FaceVertexCount(f FaceHandle) int {
	return len(t.HalfEdgesOfFace(f))
}
