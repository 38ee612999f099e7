package mesh

// Traversal forwards expose topology.Topology's read-only query surface
// on Mesh itself, so most callers never need to import topology
// directly. Each holds the read lock for the duration of the call;
// batch callers that need a consistent snapshot across several of these
// should RLock/RUnlock themselves and call Topology() directly instead.

// Twin returns the other half-edge of h's full-edge pair.
func (m *Mesh) Twin(h HalfEdgeHandle) HalfEdgeHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.Twin(h)
}

// Next returns the next half-edge in h's face loop.
func (m *Mesh) Next(h HalfEdgeHandle) HalfEdgeHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.Next(h)
}

// Prev returns the previous half-edge in h's face loop.
func (m *Mesh) Prev(h HalfEdgeHandle) HalfEdgeHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.Prev(h)
}

// FaceOf returns the face h belongs to, or FaceInvalid if h is open.
func (m *Mesh) FaceOf(h HalfEdgeHandle) FaceHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.FaceOf(h)
}

// EdgeOf returns the full-edge h pairs into.
func (m *Mesh) EdgeOf(h HalfEdgeHandle) EdgeHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.EdgeOf(h)
}

// VerticesOfFace returns f's vertex loop, in face-winding order.
func (m *Mesh) VerticesOfFace(f FaceHandle) []VertexHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.VerticesOfFace(f)
}

// HalfEdgesOfFace returns f's half-edge loop, in face-winding order.
func (m *Mesh) HalfEdgesOfFace(f FaceHandle) []HalfEdgeHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.HalfEdgesOfFace(f)
}

// VerticesOfEdge returns e's two endpoints.
func (m *Mesh) VerticesOfEdge(e EdgeHandle) (a, b VertexHandle) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.VerticesOfEdge(e)
}

// FacesOfEdge returns the (up to two) faces incident to e.
func (m *Mesh) FacesOfEdge(e EdgeHandle) (f1, f2 FaceHandle) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.FacesOfEdge(e)
}

// EdgesOfVertex returns every full-edge incident to v.
func (m *Mesh) EdgesOfVertex(v VertexHandle) []EdgeHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.EdgesOfVertex(v)
}

// FacesOfVertex returns every face incident to v.
func (m *Mesh) FacesOfVertex(v VertexHandle) []FaceHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.FacesOfVertex(v)
}

// Degree returns the number of edges incident to v.
func (m *Mesh) Degree(v VertexHandle) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.Degree(v)
}

// FaceVertexCount returns the number of corners f has.
func (m *Mesh) FaceVertexCount(f FaceHandle) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.FaceVertexCount(f)
}

// EdgeBetween returns the full-edge directly joining a and b, if any.
func (m *Mesh) EdgeBetween(a, b VertexHandle) (EdgeHandle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.EdgeBetween(a, b)
}

// FaceBetween returns the face both full-edges a and b border, if any.
func (m *Mesh) FaceBetween(a, b EdgeHandle) (FaceHandle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.FaceBetween(a, b)
}

// FindEdgeRing returns the sequence of parallel edges opposite e across
// each intervening quad-like face.
func (m *Mesh) FindEdgeRing(e EdgeHandle) []EdgeHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.FindEdgeRing(e)
}

// FindEdgeLoop returns the edge loop through e: from each of e's
// endpoints the walk greedily continues onto the incident edge that
// best preserves its current direction (largest dot product against
// the arrival direction; a turn of 90 degrees or more is a dead end), until
// no continuation exists, an edge repeats, or stepLimit edges have
// been collected in total. stepLimit <= 0 means unbounded.
//
// Unlike the purely structural topology.FindEdgeLoop (which needs quad
// faces to define "opposite"), this walk uses vertex positions and so
// follows loops across any face valence.
func (m *Mesh) FindEdgeLoop(e EdgeHandle, stepLimit int) []EdgeHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.topo.IsValidEdge(e) {
		return nil
	}
	out := []EdgeHandle{e}
	seen := map[EdgeHandle]bool{e: true}
	a, b := m.topo.VerticesOfEdge(e)

	walk := func(from, to VertexHandle) {
		cur := to
		dir := m.position.Get(to.Index()).Sub(m.position.Get(from.Index())).Normalize()
		for stepLimit <= 0 || len(out) < stepLimit {
			bestDot := 0.0
			var bestEdge EdgeHandle
			var bestNext VertexHandle
			found := false
			for _, cand := range m.topo.EdgesOfVertex(cur) {
				if seen[cand] {
					continue
				}
				x, y := m.topo.VerticesOfEdge(cand)
				other := x
				if x == cur {
					other = y
				}
				d := m.position.Get(other.Index()).Sub(m.position.Get(cur.Index())).Normalize()
				if dot := dir.Dot(d); dot > bestDot {
					bestDot, bestEdge, bestNext, found = dot, cand, other, true
				}
			}
			if !found {
				return
			}
			seen[bestEdge] = true
			out = append(out, bestEdge)
			dir = m.position.Get(bestNext.Index()).Sub(m.position.Get(cur.Index())).Normalize()
			cur = bestNext
		}
	}
	walk(a, b)
	walk(b, a)
	return out
}

// FindEdgeIslands partitions every live edge into connected components.
func (m *Mesh) FindEdgeIslands() [][]EdgeHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.FindEdgeIslands()
}

// FindEdgeRibs returns, for the selection es, the edges that cross it
// transversally rather than running along it.
func (m *Mesh) FindEdgeRibs(es []EdgeHandle) []EdgeHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.FindEdgeRibs(es)
}

// ClassifyEdgeListConnectivity reports how es's edges connect to each
// other (disjoint, a single open chain, a single closed loop, or
// branching).
func (m *Mesh) ClassifyEdgeListConnectivity(es []EdgeHandle) ConnectivityClass {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.topo.ClassifyEdgeListConnectivity(es)
}
