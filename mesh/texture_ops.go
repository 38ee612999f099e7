package mesh

import (
	"github.com/halfmesh/kernel/polygon"
	"github.com/halfmesh/kernel/texture"
	"github.com/halfmesh/kernel/vecmath"
)

// texDims returns the texture tile dimensions for f's current material,
// defaulting to 512x512 when unassigned or unresolved.
func (m *Mesh) texDims(f FaceHandle) (w, h int) {
	id := m.materialID.Get(f.Index())
	if id < 0 || int(id) >= len(m.materials) {
		return 512, 512
	}
	e := m.materials[id]
	w, h = e.texW, e.texH
	if w <= 0 {
		w = 512
	}
	if h <= 0 {
		h = 512
	}
	return w, h
}

// Params returns f's current projection parameters.
func (m *Mesh) Params(f FaceHandle) texture.Params {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, h := m.texDims(f)
	return texture.Params{
		U:      m.texU.Get(f.Index()),
		V:      m.texV.Get(f.Index()),
		Scale:  m.texScale.Get(f.Index()),
		Offset: m.texOffset.Get(f.Index()),
		W:      w,
		H:      h,
	}
}

// setParamsLocked stores p's fields and applies CoordsFromParams to
// every corner's texcoord stream entry. Caller must hold the write
// lock.
func (m *Mesh) setParamsLocked(f FaceHandle, p texture.Params) {
	m.texU.Set(f.Index(), p.U)
	m.texV.Set(f.Index(), p.V)
	m.texScale.Set(f.Index(), p.Scale)
	m.texOffset.Set(f.Index(), p.Offset)
	m.applyCoordsLocked(f, p)
}

func (m *Mesh) applyCoordsLocked(f FaceHandle, p texture.Params) {
	hes := m.topo.HalfEdgesOfFace(f)
	verts := m.topo.VerticesOfFace(f)
	corners := make([]vecmath.Vec3, len(verts))
	for i, v := range verts {
		corners[i] = m.position.Get(v.Index())
	}
	coords := texture.CoordsFromParams(p, corners)
	for i, h := range hes {
		m.texcoord.Set(h.Index(), coords[i])
	}
}

// SetProjectionParams installs p on f and recomputes every corner's
// texcoord to match.
func (m *Mesh) SetProjectionParams(f FaceHandle, p texture.Params) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setParamsLocked(f, p)
	m.markDirty()
}

// CornerUVs returns f's current per-corner texcoords, in face-loop
// order.
func (m *Mesh) CornerUVs(f FaceHandle) []vecmath.Vec2 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	hes := m.topo.HalfEdgesOfFace(f)
	out := make([]vecmath.Vec2, len(hes))
	for i, h := range hes {
		out[i] = m.texcoord.Get(h.Index())
	}
	return out
}

// SetCornerUVs installs explicit per-corner UVs on f and re-derives
// projection parameters from them, so Params(f) stays meaningful for
// later callers.
func (m *Mesh) SetCornerUVs(f FaceHandle, uvs []vecmath.Vec2) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	hes := m.topo.HalfEdgesOfFace(f)
	if len(uvs) != len(hes) {
		return ErrOutOfRange
	}
	for i, h := range hes {
		m.texcoord.Set(h.Index(), uvs[i])
	}
	if err := m.paramsFromCoordsLocked(f); err != nil {
		return err
	}
	m.markDirty()
	return nil
}

// ParamsFromCoords recomputes and stores f's projection parameters
// from its current corner UVs and positions. Returns
// ErrDegenerate if no well-conditioned triangle / UV basis
// exists.
func (m *Mesh) ParamsFromCoords(f FaceHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.paramsFromCoordsLocked(f); err != nil {
		return err
	}
	m.markDirty()
	return nil
}

func (m *Mesh) paramsFromCoordsLocked(f FaceHandle) error {
	verts := m.topo.VerticesOfFace(f)
	hes := m.topo.HalfEdgesOfFace(f)
	corners := make([]vecmath.Vec3, len(verts))
	uvs := make([]vecmath.Vec2, len(hes))
	for i, v := range verts {
		corners[i] = m.position.Get(v.Index())
	}
	for i, h := range hes {
		uvs[i] = m.texcoord.Get(h.Index())
	}
	w, h := m.texDims(f)
	p, err := texture.ParamsFromCoords(corners, uvs, w, h)
	if err != nil {
		return ErrDegenerate
	}
	m.texU.Set(f.Index(), p.U)
	m.texV.Set(f.Index(), p.V)
	m.texScale.Set(f.Index(), p.Scale)
	m.texOffset.Set(f.Index(), p.Offset)
	return nil
}

// AlignToGrid snaps f's projection to the fixed orientation table.
func (m *Mesh) AlignToGrid(f FaceHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, h := m.texDims(f)
	m.setParamsLocked(f, texture.AlignToGrid(m.faceNormalLocked(f), w, h))
	m.markDirty()
}

// AlignToFace is like AlignToGrid but re-derives U/V from f's actual
// normal.
func (m *Mesh) AlignToFace(f FaceHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, h := m.texDims(f)
	m.setParamsLocked(f, texture.AlignToFace(m.faceNormalLocked(f), w, h))
	m.markDirty()
}

func (m *Mesh) faceNormalLocked(f FaceHandle) vecmath.Vec3 {
	verts := m.topo.VerticesOfFace(f)
	pts := make([]vecmath.Vec3, len(verts))
	for i, v := range verts {
		pts[i] = m.position.Get(v.Index())
	}
	return polygon.PlaneFit(pts).Normal
}

// Justify shifts (and, for Fit modes, rescales) f's current projection
// so its UV bounding box touches the requested side of its texture
// tile.
func (m *Mesh) Justify(f FaceHandle, mode texture.Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := texture.Params{
		U: m.texU.Get(f.Index()), V: m.texV.Get(f.Index()),
		Scale: m.texScale.Get(f.Index()), Offset: m.texOffset.Get(f.Index()),
	}
	p.W, p.H = m.texDims(f)
	coords := m.cornerUVsLocked(f)
	np := texture.Justify(p, coords, mode)
	m.setParamsLocked(f, np)
	m.markDirty()
}

func (m *Mesh) cornerUVsLocked(f FaceHandle) []vecmath.Vec2 {
	hes := m.topo.HalfEdgesOfFace(f)
	out := make([]vecmath.Vec2, len(hes))
	for i, h := range hes {
		out[i] = m.texcoord.Get(h.Index())
	}
	return out
}

// AverageVertexUVs replaces the UV every face-corner at v currently
// holds with their seam-aligned arithmetic mean, then recomputes
// projection params from coords on every affected face.
func (m *Mesh) AverageVertexUVs(v VertexHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	corners := m.cornersAtVertexLocked(v)
	if len(corners) == 0 {
		return
	}
	uvs := make([]vecmath.Vec2, len(corners))
	for i, h := range corners {
		uvs[i] = m.texcoord.Get(h.Index())
	}
	avg := texture.AverageVertexUVs(uvs)
	touched := map[FaceHandle]bool{}
	for _, h := range corners {
		m.texcoord.Set(h.Index(), avg)
		if f := m.topo.FaceOf(h); !f.IsInvalid() {
			touched[f] = true
		}
	}
	for f := range touched {
		_ = m.paramsFromCoordsLocked(f)
	}
	m.markDirty()
}

// cornersAtVertexLocked returns every half-edge ending at v (i.e. every
// face-corner whose UV lives at v).
func (m *Mesh) cornersAtVertexLocked(v VertexHandle) []HalfEdgeHandle {
	return m.topo.InHalfEdges(v)
}

// AverageEdgeUVs replaces the two endpoint UVs every face incident to
// e's full-edge holds for that edge with their seam-aligned arithmetic
// mean, then recomputes projection params on the affected faces.
func (m *Mesh) AverageEdgeUVs(e EdgeHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h1, h2 := m.topo.HalfEdgesOfEdge(e)
	canonA := m.topo.EndVertex(h2) // h1 runs canonA -> canonB, h2 the reverse
	var pairs [][2]vecmath.Vec2
	var halves [][2]HalfEdgeHandle
	for _, h := range []HalfEdgeHandle{h1, h2} {
		if m.topo.FaceOf(h).IsInvalid() {
			continue
		}
		// Slot 0 always holds canonA's corner so the two faces' pairs
		// average endpoint-to-endpoint even though their half-edges run
		// the edge in opposite directions.
		atEnd, atStart := h, m.topo.Prev(h)
		if m.topo.EndVertex(h) == canonA {
			pairs = append(pairs, [2]vecmath.Vec2{m.texcoord.Get(atEnd.Index()), m.texcoord.Get(atStart.Index())})
			halves = append(halves, [2]HalfEdgeHandle{atEnd, atStart})
		} else {
			pairs = append(pairs, [2]vecmath.Vec2{m.texcoord.Get(atStart.Index()), m.texcoord.Get(atEnd.Index())})
			halves = append(halves, [2]HalfEdgeHandle{atStart, atEnd})
		}
	}
	if len(pairs) == 0 {
		return
	}
	avg := texture.AverageEdgeUVs(pairs)
	touched := map[FaceHandle]bool{}
	for _, pair := range halves {
		m.texcoord.Set(pair[0].Index(), avg[0])
		m.texcoord.Set(pair[1].Index(), avg[1])
		if f := m.topo.FaceOf(pair[1]); !f.IsInvalid() {
			touched[f] = true
		}
	}
	for f := range touched {
		_ = m.paramsFromCoordsLocked(f)
	}
	m.markDirty()
}
