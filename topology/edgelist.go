package topology

import "github.com/halfmesh/kernel/handle"

// FindEdgeRing returns the edge ring starting at e: repeatedly crossing
// each quad face by stepping to the opposite edge, in both directions
// from e, until the walk returns to e or reaches a non-quad face or an
// open boundary.
func (t *Topology) FindEdgeRing(e EdgeHandle) []EdgeHandle {
	out := []EdgeHandle{e}
	walk := func(start HalfEdgeHandle) {
		cur := start
		for {
			f := t.FaceOf(cur)
			if f.IsInvalid() || t.FaceVertexCount(f) != 4 {
				return
			}
			opposite := t.Next(t.Next(cur))
			next := t.Twin(opposite)
			ne := t.EdgeOf(next)
			if ne == e {
				return
			}
			out = append(out, ne)
			cur = next
			if len(out) > t.edgePool.Cap()+1 {
				return
			}
		}
	}
	h1, h2 := t.HalfEdgesOfEdge(e)
	walk(h1)
	walk(h2)
	return out
}

// FindEdgeLoop returns the edge loop containing e: the sequence of
// edges obtained by continuing, at each vertex, onto the edge across
// from the arriving one: two edges further around the vertex, through
// the two quad faces on that side (for a pure quad mesh this traces the
// usual isoline; at a non-quad face or an open boundary the walk stops).
func (t *Topology) FindEdgeLoop(e EdgeHandle) []EdgeHandle {
	out := []EdgeHandle{e}
	step := func(h HalfEdgeHandle) (HalfEdgeHandle, bool) {
		f := t.FaceOf(h)
		if f.IsInvalid() || t.FaceVertexCount(f) != 4 {
			return HalfEdgeHandle{}, false
		}
		across := t.Twin(t.Next(h))
		g := t.FaceOf(across)
		if g.IsInvalid() || t.FaceVertexCount(g) != 4 {
			return HalfEdgeHandle{}, false
		}
		return t.Next(across), true
	}
	h1, h2 := t.HalfEdgesOfEdge(e)
	for _, start := range []HalfEdgeHandle{h1, h2} {
		cur := start
		for {
			nxt, ok := step(cur)
			if !ok {
				break
			}
			ne := t.EdgeOf(nxt)
			if ne == e {
				break
			}
			out = append(out, ne)
			cur = nxt
			if len(out) > t.edgePool.Cap()+1 {
				break
			}
		}
	}
	return out
}

// FindEdgeIslands partitions every live edge into connected components
// under vertex adjacency (two edges are connected if they share a
// vertex), returning one slice per component.
func (t *Topology) FindEdgeIslands() [][]EdgeHandle {
	visited := map[EdgeHandle]bool{}
	var islands [][]EdgeHandle

	var allEdges []EdgeHandle
	t.edgePool.Each(func(h handle.Handle) {
		allEdges = append(allEdges, EdgeHandle{h})
	})

	for _, e := range allEdges {
		if visited[e] {
			continue
		}
		var island []EdgeHandle
		queue := []EdgeHandle{e}
		visited[e] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			island = append(island, cur)
			a, b := t.VerticesOfEdge(cur)
			for _, v := range []VertexHandle{a, b} {
				for _, adj := range t.EdgesOfVertex(v) {
					if !visited[adj] {
						visited[adj] = true
						queue = append(queue, adj)
					}
				}
			}
		}
		islands = append(islands, island)
	}
	return islands
}

// FindEdgeRibs returns, for each edge in es incident to a quad face,
// the perpendicular "rib" edge on the opposite side of that face (the
// two edges of the quad not parallel to the selected edge). Non-quad
// incident faces contribute nothing for that side.
func (t *Topology) FindEdgeRibs(es []EdgeHandle) []EdgeHandle {
	var out []EdgeHandle
	seen := map[EdgeHandle]bool{}
	add := func(e EdgeHandle) {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	for _, e := range es {
		h1, h2 := t.HalfEdgesOfEdge(e)
		for _, h := range []HalfEdgeHandle{h1, h2} {
			f := t.FaceOf(h)
			if f.IsInvalid() || t.FaceVertexCount(f) != 4 {
				continue
			}
			add(t.EdgeOf(t.Next(h)))
			add(t.EdgeOf(t.Prev(h)))
		}
	}
	return out
}

// ConnectivityClass describes how a set of edges relates to each other
// topologically, returned by ClassifyEdgeListConnectivity.
type ConnectivityClass int

const (
	ClassDisconnected ConnectivityClass = iota
	ClassOpenChain
	ClassClosedLoop
	ClassBranching
)

// ClassifyEdgeListConnectivity inspects es (assumed to lie within a
// single edge island) and reports whether it forms a single open
// chain, a single closed loop, a branching (non-manifold-as-a-graph)
// selection, or a disconnected set.
func (t *Topology) ClassifyEdgeListConnectivity(es []EdgeHandle) ConnectivityClass {
	if len(es) == 0 {
		return ClassDisconnected
	}
	degree := map[VertexHandle]int{}
	for _, e := range es {
		a, b := t.VerticesOfEdge(e)
		degree[a]++
		degree[b]++
	}
	for _, d := range degree {
		if d > 2 {
			return ClassBranching
		}
	}
	islands := t.edgeListIslands(es)
	if len(islands) != 1 {
		return ClassDisconnected
	}
	ends := 0
	for _, d := range degree {
		if d == 1 {
			ends++
		}
	}
	if ends == 0 {
		return ClassClosedLoop
	}
	if ends == 2 {
		return ClassOpenChain
	}
	return ClassBranching
}

// edgeListIslands partitions es (not the whole mesh) by shared-vertex
// connectivity, for use by ClassifyEdgeListConnectivity.
func (t *Topology) edgeListIslands(es []EdgeHandle) [][]EdgeHandle {
	adjacency := map[VertexHandle][]EdgeHandle{}
	for _, e := range es {
		a, b := t.VerticesOfEdge(e)
		adjacency[a] = append(adjacency[a], e)
		adjacency[b] = append(adjacency[b], e)
	}
	visited := map[EdgeHandle]bool{}
	var islands [][]EdgeHandle
	for _, e := range es {
		if visited[e] {
			continue
		}
		var island []EdgeHandle
		queue := []EdgeHandle{e}
		visited[e] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			island = append(island, cur)
			a, b := t.VerticesOfEdge(cur)
			for _, v := range []VertexHandle{a, b} {
				for _, adj := range adjacency[v] {
					if !visited[adj] {
						visited[adj] = true
						queue = append(queue, adj)
					}
				}
			}
		}
		islands = append(islands, island)
	}
	return islands
}
