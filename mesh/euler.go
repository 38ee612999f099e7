package mesh

import (
	"github.com/halfmesh/kernel/texture"
	"github.com/halfmesh/kernel/vecmath"
)

// AddVertex creates a new isolated vertex at pos.
func (m *Mesh) AddVertex(pos vecmath.Vec3) VertexHandle {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.topo.AddVertex()
	m.position.Set(v.Index(), pos)
	m.markDirty()
	return v
}

// initFaceLocked assigns f the mesh's default material and an
// AlignToGrid projection derived from its current geometry, then
// writes matching corner texcoords -- every face-creating operator
// calls this exactly once right after the face exists, so every
// stream holds a meaningful default rather than a zero value.
func (m *Mesh) initFaceLocked(f FaceHandle) {
	m.materialID.Set(f.Index(), m.defaultMaterial)
	w, h := m.texDims(f)
	p := texture.AlignToGrid(m.faceNormalLocked(f), w, h)
	m.texU.Set(f.Index(), p.U)
	m.texV.Set(f.Index(), p.V)
	m.texScale.Set(f.Index(), p.Scale)
	m.texOffset.Set(f.Index(), p.Offset)
	m.applyCoordsLocked(f, p)
}

// AddFace creates a face from an ordered, already-positioned vertex
// loop, wiring topology and initializing its texture/material streams
// via initFaceLocked. See topology.AddFace for the exact failure
// conditions (ErrBadPolygon, ErrStaleHandle, ErrNonManifold).
func (m *Mesh) AddFace(vs ...VertexHandle) (FaceHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.topo.AddFace(vs...)
	if err != nil {
		return FaceHandle{}, err
	}
	m.initFaceLocked(f)
	m.markDirty()
	return f, nil
}

// RemoveVertex removes v and every half-edge/face touching it.
// Incident faces always open to boundary first; removeLooseEdges then
// additionally strips the resulting open edges.
func (m *Mesh) RemoveVertex(v VertexHandle, removeLooseEdges bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.topo.RemoveVertex(v, removeLooseEdges); err != nil {
		return err
	}
	m.markDirty()
	return nil
}

// RemoveFace converts f's boundary half-edges to open and deletes f.
func (m *Mesh) RemoveFace(f FaceHandle, keepVertices bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.topo.RemoveFace(f, keepVertices); err != nil {
		return err
	}
	m.markDirty()
	return nil
}

// RemoveEdge removes the full-edge e, merging or opening its incident
// faces.
func (m *Mesh) RemoveEdge(e EdgeHandle, keepVertices bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.topo.RemoveEdge(e, keepVertices); err != nil {
		return err
	}
	m.markDirty()
	return nil
}

// FlipAllFaces reverses every live face's half-edge cycle. A corner UV
// belongs to the (face, vertex) pair, not the half-edge as such, and a
// flip changes which half-edge of a face ends at each vertex — so the
// texcoord stream rotates one step along every face loop to follow its
// vertex. Flipping twice restores both topology and streams exactly.
// Smoothing flags describe the full-edge crossing and stay put.
func (m *Mesh) FlipAllFaces() {
	m.mu.Lock()
	defer m.mu.Unlock()

	type move struct {
		to HalfEdgeHandle
		uv vecmath.Vec2
	}
	var moves []move
	m.topo.EachFace(func(f FaceHandle) {
		for _, h := range m.topo.HalfEdgesOfFace(f) {
			// After the flip, next(h) is the half-edge ending where h
			// ends today.
			moves = append(moves, move{to: m.topo.Next(h), uv: m.texcoord.Get(h.Index())})
		}
	})

	m.topo.FlipAllFaces()

	for _, mv := range moves {
		m.texcoord.Set(mv.to.Index(), mv.uv)
	}
	m.markDirty()
}
