package topology

import "github.com/halfmesh/kernel/handle"

// FlipAllFaces reverses the winding of every live face in place: each
// half-edge's next/prev swap and its end vertex becomes its old start.
// Twin pairing, edges and faces are untouched; each vertex's stored fan
// entry moves to its twin, the half-edge that now arrives at the vertex.
func (t *Topology) FlipAllFaces() {
	oldEnd := make(map[int]handle.Handle)
	t.halfEdgePool.Each(func(h handle.Handle) {
		oldEnd[h.Index()] = t.halfEdges[h.Index()].end
	})
	t.halfEdgePool.Each(func(h handle.Handle) {
		idx := h.Index()
		twinIdx := t.halfEdges[idx].twin.Index()
		t.halfEdges[idx].end = oldEnd[twinIdx]
		t.halfEdges[idx].next, t.halfEdges[idx].prev = t.halfEdges[idx].prev, t.halfEdges[idx].next
	})
	t.vertexPool.Each(func(h handle.Handle) {
		if in := t.vertices[h.Index()].outHE; !in.IsZero() {
			t.vertices[h.Index()].outHE = t.halfEdges[in.Index()].twin
		}
	})
}

// VertexSplit records one seam vertex SplitEdges duplicated: New took
// over part of Old's half-edge fan. Callers copy per-vertex attribute
// streams from Old to New.
type VertexSplit struct {
	Old VertexHandle
	New VertexHandle
}

// SplitEdges tears the mesh along es: every internal edge (one face on
// each side) is duplicated into two co-located open edges, one per
// face. A seam vertex whose incident faces the tear (together with any
// pre-existing boundary) separates into disjoint sectors is duplicated,
// one vertex per sector, so every sector keeps a manifold fan; the
// duplications are reported so the caller can copy per-vertex streams.
// Boundary edges in es have nothing to tear and are skipped.
func (t *Topology) SplitEdges(es []EdgeHandle) ([]VertexSplit, error) {
	if len(es) == 0 {
		return nil, ErrEmpty
	}
	for _, e := range es {
		if !t.IsValidEdge(e) {
			return nil, ErrStaleHandle
		}
	}

	var touched []VertexHandle
	seen := map[VertexHandle]bool{}
	tore := false
	for _, e := range es {
		h1, h2 := t.HalfEdgesOfEdge(e)
		if t.FaceOf(h1).IsInvalid() || t.FaceOf(h2).IsInvalid() {
			continue
		}
		a, b := t.EndVertex(h2), t.EndVertex(h1)

		// o1 becomes h1's new open twin, o2 becomes h2's. Their
		// next/prev stay unset here; the relink pass below routes every
		// open half-edge around each touched vertex onto its own side
		// of the slit.
		o1, o2, ne := t.allocHalfEdgePair()
		t.halfEdges[h1.h.Index()].twin = o1.h
		t.halfEdges[o1.h.Index()].twin = h1.h
		t.halfEdges[h2.h.Index()].twin = o2.h
		t.halfEdges[o2.h.Index()].twin = h2.h
		t.halfEdges[o1.h.Index()].end = a.h
		t.halfEdges[o2.h.Index()].end = b.h
		t.halfEdges[o1.h.Index()].edge = e.h
		t.halfEdges[h2.h.Index()].edge = ne.h
		t.halfEdges[o2.h.Index()].edge = ne.h
		t.edgeHalf[e.Index()] = h1.h
		t.edgeHalf[ne.Index()] = h2.h
		tore = true

		for _, v := range []VertexHandle{a, b} {
			if !seen[v] {
				seen[v] = true
				touched = append(touched, v)
			}
		}
	}
	if !tore {
		return nil, nil
	}

	// Relink the boundary around every touched vertex: each open
	// half-edge arriving there continues onto the open half-edge found
	// by rotating through the contiguous faces on its own side of the
	// tear, which splices slit halves into each other (and into any
	// pre-existing boundary) per sector.
	for _, v := range touched {
		for _, o := range t.inHalfEdgesByScan(v) {
			if !t.FaceOf(o).IsInvalid() {
				continue
			}
			if out, ok := t.rotateToGap(o); ok {
				t.setNext(o, out)
			}
		}
	}

	// Partition each touched vertex's incident faces into sectors
	// joined by surviving two-faced edges; every sector past the first
	// becomes a duplicate vertex.
	var out []VertexSplit
	for _, v := range touched {
		ins := t.inHalfEdgesByScan(v)
		if len(ins) == 0 {
			continue
		}

		rep := map[FaceHandle]FaceHandle{}
		var find func(f FaceHandle) FaceHandle
		find = func(f FaceHandle) FaceHandle {
			r, ok := rep[f]
			if !ok || r == f {
				rep[f] = f
				return f
			}
			root := find(r)
			rep[f] = root
			return root
		}
		for _, h := range ins {
			e := t.EdgeOf(h)
			f1, f2 := t.FacesOfEdge(e)
			if !f1.IsInvalid() && !f2.IsInvalid() {
				rep[find(f1)] = find(f2)
			}
		}

		sectorOf := func(h HalfEdgeHandle) (FaceHandle, bool) {
			if f := t.FaceOf(h); !f.IsInvalid() {
				return find(f), true
			}
			if f := t.FaceOf(t.Twin(h)); !f.IsInvalid() {
				return find(f), true
			}
			return FaceHandle{}, false // floating edge, stays with the original
		}

		var order []FaceHandle
		groups := map[FaceHandle][]HalfEdgeHandle{}
		var loose []HalfEdgeHandle
		for _, h := range ins {
			key, ok := sectorOf(h)
			if !ok {
				loose = append(loose, h)
				continue
			}
			if _, exists := groups[key]; !exists {
				order = append(order, key)
			}
			groups[key] = append(groups[key], h)
		}
		if len(order) == 0 {
			continue
		}
		groups[order[0]] = append(groups[order[0]], loose...)

		t.vertices[v.h.Index()].outHE = groups[order[0]][0].h
		for _, key := range order[1:] {
			sector := groups[key]
			nv := t.allocVertex()
			for _, h := range sector {
				t.halfEdges[h.h.Index()].end = nv.h
			}
			t.vertices[nv.h.Index()].outHE = sector[0].h
			out = append(out, VertexSplit{Old: v, New: nv})
		}
	}
	return out, nil
}

// inHalfEdgesByScan returns every live half-edge ending at v by a full
// scan, in ascending slot order. The fan-walk InHalfEdges assumes a
// consistent fan and so can't be used mid-tear.
func (t *Topology) inHalfEdgesByScan(v VertexHandle) []HalfEdgeHandle {
	var ins []HalfEdgeHandle
	t.halfEdgePool.Each(func(h handle.Handle) {
		if t.halfEdges[h.Index()].end == v.h {
			ins = append(ins, HalfEdgeHandle{h})
		}
	})
	return ins
}

// rotateToGap finds the open half-edge that should follow the open
// half-edge o on its boundary loop: starting from o's (face-bearing)
// twin it rotates around o's end vertex through contiguous faces until
// the first outgoing open half-edge.
func (t *Topology) rotateToGap(o HalfEdgeHandle) (HalfEdgeHandle, bool) {
	cur := t.Twin(o)
	for i := 0; i <= t.halfEdgePool.Cap(); i++ {
		if t.FaceOf(cur).IsInvalid() {
			return cur, true
		}
		cur = t.Twin(t.Prev(cur))
	}
	return HalfEdgeHandle{}, false
}

// ExtendEdges extrudes the open boundary chain es outward: every
// touched vertex gets one duplicate (shared across all edges it
// appears in), and a quad "wall" face is added between each original
// edge and its duplicate. Returns the new rim vertices and wall faces;
// callers (mesh.Mesh) are responsible for positioning the duplicates.
func (t *Topology) ExtendEdges(es []EdgeHandle) ([]VertexHandle, []FaceHandle, error) {
	if len(es) == 0 {
		return nil, nil, ErrEmpty
	}
	dup := map[VertexHandle]VertexHandle{}
	faces := make([]FaceHandle, 0, len(es))
	for _, e := range es {
		h1, h2 := t.HalfEdgesOfEdge(e)
		h := h1
		if !t.FaceOf(h).IsInvalid() {
			h = h2
		}
		if !t.FaceOf(h).IsInvalid() {
			return nil, nil, ErrNotOpenEdge
		}
		a, b := t.StartVertex(h), t.EndVertex(h)
		na, ok := dup[a]
		if !ok {
			na = t.allocVertex()
			dup[a] = na
		}
		nb, ok := dup[b]
		if !ok {
			nb = t.allocVertex()
			dup[b] = nb
		}
		f, err := t.AddFace(a, b, nb, na)
		if err != nil {
			return nil, nil, err
		}
		faces = append(faces, f)
	}
	rim := make([]VertexHandle, 0, len(dup))
	for _, nv := range dup {
		rim = append(rim, nv)
	}
	return rim, faces, nil
}

// BevelResult is one face's outcome from BevelFaces: the ring of wall
// faces, the duplicated face, and the original-corner-to-duplicate
// vertex pairs (in the original's loop order) so callers can position
// and attribute the duplicates.
type BevelResult struct {
	Walls []FaceHandle
	Dup   FaceHandle
	Pairs []VertexSplit
}

// BevelFaces duplicates each face in fs and connects the duplicate to
// the original's rim with a quad wall per edge — the connectivity half
// of extrude. Geometry (where the duplicates go) is a mesh.Mesh
// concern; Topology only rewires.
//
// When every edge of the original is open on its far side the original
// survives and the walls attach there, closing the result into a
// manifold shell (the duplicate winds opposite the original, as the
// far cap of the shell must). Otherwise the original face is opened
// first and the walls take its place, turning the face into a hole
// rimmed by the duplicate — the shape beveling a face of a closed
// surface needs.
func (t *Topology) BevelFaces(fs []FaceHandle) ([]BevelResult, error) {
	if len(fs) == 0 {
		return nil, ErrEmpty
	}
	var out []BevelResult
	for _, f := range fs {
		if !t.IsValidFace(f) {
			return nil, ErrStaleHandle
		}
		verts := t.VerticesOfFace(f)
		n := len(verts)

		rimOpen := true
		for _, h := range t.HalfEdgesOfFace(f) {
			if !t.FaceOf(t.Twin(h)).IsInvalid() {
				rimOpen = false
				break
			}
		}

		newVerts := make([]VertexHandle, n)
		pairs := make([]VertexSplit, n)
		for i := range verts {
			newVerts[i] = t.allocVertex()
			pairs[i] = VertexSplit{Old: verts[i], New: newVerts[i]}
		}

		var res BevelResult
		res.Pairs = pairs
		if rimOpen {
			for i := 0; i < n; i++ {
				a, b := verts[i], verts[(i+1)%n]
				na, nb := newVerts[i], newVerts[(i+1)%n]
				wf, err := t.AddFace(b, a, na, nb)
				if err != nil {
					return nil, err
				}
				res.Walls = append(res.Walls, wf)
			}
			reversed := make([]VertexHandle, n)
			for i := range newVerts {
				reversed[i] = newVerts[n-1-i]
			}
			dup, err := t.AddFace(reversed...)
			if err != nil {
				return nil, err
			}
			res.Dup = dup
		} else {
			if err := t.RemoveFace(f, true); err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				a, b := verts[i], verts[(i+1)%n]
				na, nb := newVerts[i], newVerts[(i+1)%n]
				wf, err := t.AddFace(a, b, nb, na)
				if err != nil {
					return nil, err
				}
				res.Walls = append(res.Walls, wf)
			}
			dup, err := t.AddFace(newVerts...)
			if err != nil {
				return nil, err
			}
			res.Dup = dup
		}
		out = append(out, res)
	}
	return out, nil
}
