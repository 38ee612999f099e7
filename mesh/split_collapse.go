package mesh

import (
	"github.com/halfmesh/kernel/topology"
	"github.com/halfmesh/kernel/vecmath"
)

func vec2Lerp(a, b vecmath.Vec2, t float64) vecmath.Vec2 {
	return vecmath.Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// AddVertexToEdge splits e by inserting a new vertex at its midpoint,
// interpolating texcoord linearly between the two face-vertex ends on
// each incident face. Returns the new vertex and the two full-edges the
// split produced, (a-new) and (new-b) in the orientation e's endpoints
// had before the split.
func (m *Mesh) AddVertexToEdge(e EdgeHandle) (nv VertexHandle, e1, e2 EdgeHandle, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.topo.IsValidEdge(e) {
		return VertexHandle{}, EdgeHandle{}, EdgeHandle{}, ErrStaleHandle
	}
	nv, e1, e2, err = m.addVertexToEdgeLocked(e)
	if err != nil {
		return VertexHandle{}, EdgeHandle{}, EdgeHandle{}, err
	}
	m.markDirty()
	return nv, e1, e2, nil
}

// CollapseEdge removes e, merging its two endpoints into one vertex at
// lerp(pos(a), pos(b), t) where a, b are e's endpoints in the order
// topology.Topology.VerticesOfEdge returns them (a survives). Any face
// left with fewer than 3 sides is dissolved (topology.CollapseEdge does
// this internally). If the collapse identifies another pair of edges
// sharing a common neighbor into one, that replacement is returned
// alongside the surviving vertex; if the identification can't be made
// without re-stitching two faces together, CollapseEdge fails with
// topology.ErrWouldIdentifyFacedEdge and changes nothing.
func (m *Mesh) CollapseEdge(e EdgeHandle, t float64) (VertexHandle, []topology.EdgeReplacement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.topo.IsValidEdge(e) {
		return VertexHandle{}, nil, ErrStaleHandle
	}
	h1, h2 := m.topo.HalfEdgesOfEdge(e)
	f1, f2 := m.topo.FaceOf(h1), m.topo.FaceOf(h2)
	if !f1.IsInvalid() && !f2.IsInvalid() && f1 == f2 {
		return VertexHandle{}, nil, ErrNonManifold
	}
	a, b := m.topo.VerticesOfEdge(e)
	posA, posB := m.position.Get(a.Index()), m.position.Get(b.Index())

	survivor, replaced, err := m.topo.CollapseEdge(e)
	if err != nil {
		return VertexHandle{}, nil, err
	}
	m.position.Set(survivor.Index(), vecmath.Lerp(posA, posB, t))
	m.markDirty()
	return survivor, replaced, nil
}

// MergeVertices welds b into a. If a and b already share an edge this
// behaves like CollapseEdge(edge, 0.5); otherwise it welds the two
// vertex fans directly (topology.MergeVertices), which the caller
// should only do when it knows the weld keeps the mesh manifold --
// Topology does not re-derive global manifoldness for an arbitrary
// weld, only CollapseEdge's own-edge case is checked here.
func (m *Mesh) MergeVertices(a, b VertexHandle) (VertexHandle, error) {
	m.mu.RLock()
	e, shared := m.topo.EdgeBetween(a, b)
	m.mu.RUnlock()
	if shared {
		survivor, _, err := m.CollapseEdge(e, 0.5)
		return survivor, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, err := m.topo.MergeVertices(a, b)
	if err != nil {
		return VertexHandle{}, err
	}
	m.markDirty()
	return v, nil
}

// MergeEdges zips full-edges a and b into one, merging their vertex
// pairs. When each edge carries one face the pairing follows from
// their orientations (topology.MergeEdges re-pairs the face-bearing
// halves as twins); when either edge is fully open the geometrically
// closer endpoint pairing is used. Each surviving vertex moves to the
// midpoint of the pair that welded into it.
func (m *Mesh) MergeEdges(a, b EdgeHandle) (v1, v2 VertexHandle, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.topo.IsValidEdge(a) || !m.topo.IsValidEdge(b) {
		return VertexHandle{}, VertexHandle{}, ErrStaleHandle
	}

	facedSide := func(e EdgeHandle) (HalfEdgeHandle, int) {
		h1, h2 := m.topo.HalfEdgesOfEdge(e)
		f1, f2 := m.topo.FaceOf(h1), m.topo.FaceOf(h2)
		switch {
		case !f1.IsInvalid() && !f2.IsInvalid():
			return h1, 2
		case !f1.IsInvalid():
			return h1, 1
		case !f2.IsInvalid():
			return h2, 1
		default:
			return HalfEdgeHandle{}, 0
		}
	}
	fa, na := facedSide(a)
	fb, nb := facedSide(b)
	if na == 2 || nb == 2 {
		return VertexHandle{}, VertexHandle{}, ErrNonManifold
	}

	if na == 1 && nb == 1 {
		p1 := vecmath.Lerp(m.position.Get(m.topo.EndVertex(fa).Index()), m.position.Get(m.topo.StartVertex(fb).Index()), 0.5)
		p2 := vecmath.Lerp(m.position.Get(m.topo.StartVertex(fa).Index()), m.position.Get(m.topo.EndVertex(fb).Index()), 0.5)
		v1, v2, err = m.topo.MergeEdges(a, b)
		if err != nil {
			return VertexHandle{}, VertexHandle{}, err
		}
		m.position.Set(v1.Index(), p1)
		m.position.Set(v2.Index(), p2)
		m.markDirty()
		return v1, v2, nil
	}

	a1, a2 := m.topo.VerticesOfEdge(a)
	b1, b2 := m.topo.VerticesOfEdge(b)
	pa1, pa2 := m.position.Get(a1.Index()), m.position.Get(a2.Index())
	pb1, pb2 := m.position.Get(b1.Index()), m.position.Get(b2.Index())
	straight := pa1.Sub(pb1).Len() + pa2.Sub(pb2).Len()
	crossed := pa1.Sub(pb2).Len() + pa2.Sub(pb1).Len()
	if crossed < straight {
		b1, b2 = b2, b1
		pb1, pb2 = pb2, pb1
	}

	v1, err = m.topo.MergeVertices(a1, b1)
	if err != nil {
		return VertexHandle{}, VertexHandle{}, err
	}
	v2, err = m.topo.MergeVertices(a2, b2)
	if err != nil {
		return VertexHandle{}, VertexHandle{}, err
	}
	m.position.Set(v1.Index(), vecmath.Lerp(pa1, pb1, 0.5))
	m.position.Set(v2.Index(), vecmath.Lerp(pa2, pb2, 0.5))
	m.markDirty()
	return v1, v2, nil
}

// BridgeEdges connects two open boundary edges with a new face,
// collapsing to a triangle when a and b already share a vertex.
func (m *Mesh) BridgeEdges(a, b EdgeHandle) (FaceHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.topo.BridgeEdges(a, b)
	if err != nil {
		return FaceHandle{}, err
	}
	m.initFaceLocked(f)
	m.markDirty()
	return f, nil
}
