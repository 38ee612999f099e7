package mesh

import (
	"math"

	"github.com/halfmesh/kernel/polygon"
	"github.com/halfmesh/kernel/vecmath"
)

// RemoveBadFaces drops every live face whose current corner positions
// don't triangulate to the expected 3*(N-2) indices: a zero-area
// sliver, a self-intersecting loop, or a fan whose planar fit collapsed.
// Positions are read, then faces removed, in two passes since
// Topology.EachFace forbids mutating during iteration.
//
// It returns the faces that were dropped.
func (m *Mesh) RemoveBadFaces() []FaceHandle {
	m.mu.Lock()
	defer m.mu.Unlock()

	var bad []FaceHandle
	m.topo.EachFace(func(f FaceHandle) {
		verts := m.topo.VerticesOfFace(f)
		pts := make([]vecmath.Vec3, len(verts))
		for i, v := range verts {
			pts[i] = m.position.Get(v.Index())
		}
		want := 3 * (len(pts) - 2)
		tris, err := polygon.Triangulate(pts)
		if err != nil || len(tris)*3 != want {
			bad = append(bad, f)
		}
	})
	for _, f := range bad {
		_ = m.topo.RemoveFace(f, true)
	}
	if len(bad) > 0 {
		m.markDirty()
	}
	return bad
}

// RemoveColinearVertex removes v if it has exactly two incident edges
// and the angle between them is within tolDeg of 180 degrees, welding
// the two edges into one. It is a no-op (removed=false) otherwise.
func (m *Mesh) RemoveColinearVertex(v VertexHandle, tolDeg float64) (removed bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.topo.IsValid(v) {
		return false, ErrStaleHandle
	}
	edges := m.topo.EdgesOfVertex(v)
	if len(edges) != 2 {
		return false, nil
	}
	var others [2]VertexHandle
	for i, e := range edges {
		a, b := m.topo.VerticesOfEdge(e)
		others[i] = a
		if a == v {
			others[i] = b
		}
	}
	center := m.position.Get(v.Index())
	d0 := m.position.Get(others[0].Index()).Sub(center).Normalize()
	d1 := m.position.Get(others[1].Index()).Sub(center).Normalize()
	cos := d0.Dot(d1)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	angleDeg := math.Acos(cos) * 180 / math.Pi
	if math.Abs(180-angleDeg) > tolDeg {
		return false, nil
	}

	// Open any incident faces first: CollapseEdge can't weld a vertex
	// that still corners a face, since welding the edges would dissolve
	// the face to a doubled-back sliver rather than a clean merge.
	for _, f := range m.topo.FacesOfVertex(v) {
		_ = m.topo.RemoveFace(f, true)
	}
	neighborPos := m.position.Get(others[0].Index())
	survivor, _, err := m.topo.CollapseEdge(edges[0])
	if err != nil {
		return false, err
	}
	// The collapse keeps whichever of {v, others[0]} topology.CollapseEdge
	// treats as survivor; pin it to the neighbor's own position so the
	// welded edge runs exactly between the two original neighbors rather
	// than kinking through v's (only approximately colinear) position.
	m.position.Set(survivor.Index(), neighborPos)
	m.markDirty()
	return true, nil
}
