package mesh

import "github.com/halfmesh/kernel/vecmath"

// BevelFaces duplicates each face in faces, translates the duplicate
// by offset, and (if createConnecting) keeps the ring of quad "wall"
// faces stitched between each original edge and its duplicate -- the
// primitive behind extrude. A face whose rim is fully open keeps its
// original (the result is a closed shell); beveling a face interior
// to a surface opens it into a hole first (see topology.BevelFaces).
//
// newFaces holds the translated duplicate per input face, in input
// order; connectingFaces holds every wall face kept (empty if
// createConnecting is false); corresp holds, at index i, the face that
// now stands where faces[i] did.
func (m *Mesh) BevelFaces(faces []FaceHandle, createConnecting bool, offset vecmath.Vec3) (newFaces, connectingFaces, corresp []FaceHandle, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(faces) == 0 {
		return nil, nil, nil, ErrEmpty
	}

	matl := make([]int32, len(faces))
	for i, f := range faces {
		if !m.topo.IsValidFace(f) {
			return nil, nil, nil, ErrStaleHandle
		}
		matl[i] = m.materialID.Get(f.Index())
	}

	results, err := m.topo.BevelFaces(faces)
	if err != nil {
		return nil, nil, nil, err
	}

	for i, res := range results {
		for _, pair := range res.Pairs {
			m.position.Set(pair.New.Index(), m.position.Get(pair.Old.Index()).Add(offset))
		}
		m.initFaceLocked(res.Dup)
		m.materialID.Set(res.Dup.Index(), matl[i])

		if createConnecting {
			for _, w := range res.Walls {
				m.initFaceLocked(w)
				m.materialID.Set(w.Index(), matl[i])
			}
			connectingFaces = append(connectingFaces, res.Walls...)
		} else {
			var wallEdges []EdgeHandle
			for _, w := range res.Walls {
				for _, h := range m.topo.HalfEdgesOfFace(w) {
					wallEdges = append(wallEdges, m.topo.EdgeOf(h))
				}
			}
			for _, w := range res.Walls {
				_ = m.topo.RemoveFace(w, true)
			}
			// Strip the scaffolding edges the unconnected duplicate no
			// longer needs: anything left open on both sides.
			for _, e := range wallEdges {
				if !m.topo.IsValidEdge(e) {
					continue
				}
				h1, h2 := m.topo.HalfEdgesOfEdge(e)
				if m.topo.FaceOf(h1).IsInvalid() && m.topo.FaceOf(h2).IsInvalid() {
					_ = m.topo.RemoveEdge(e, true)
				}
			}
		}
		newFaces = append(newFaces, res.Dup)
		corresp = append(corresp, res.Dup)
	}
	m.markDirty()
	return newFaces, connectingFaces, corresp, nil
}

// ExtendEdges extrudes the open boundary chain es outward by amount
// along each edge's (adjacent face normal) x (edge direction). Returns
// the new rim vertices and wall faces topology.ExtendEdges created.
func (m *Mesh) ExtendEdges(es []EdgeHandle, amount float64) ([]VertexHandle, []FaceHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(es) == 0 {
		return nil, nil, ErrEmpty
	}

	offsets := map[VertexHandle]vecmath.Vec3{}
	counts := map[VertexHandle]int{}
	oldPos := map[VertexHandle]vecmath.Vec3{}
	for _, e := range es {
		h1, h2 := m.topo.HalfEdgesOfEdge(e)
		h := h1
		if !m.topo.FaceOf(h).IsInvalid() {
			h = h2
		}
		other := m.topo.Twin(h)
		f := m.topo.FaceOf(other)
		var normal vecmath.Vec3
		if !f.IsInvalid() {
			verts := m.topo.VerticesOfFace(f)
			pts := make([]vecmath.Vec3, len(verts))
			for i, v := range verts {
				pts[i] = m.position.Get(v.Index())
			}
			normal = faceNormalOf(pts)
		}
		a, b := m.topo.StartVertex(h), m.topo.EndVertex(h)
		pa, pb := m.position.Get(a.Index()), m.position.Get(b.Index())
		oldPos[a], oldPos[b] = pa, pb
		dir := pb.Sub(pa).Normalize()
		off := normal.Cross(dir).Scale(amount)
		offsets[a] = offsets[a].Add(off)
		offsets[b] = offsets[b].Add(off)
		counts[a]++
		counts[b]++
	}

	rim, walls, err := m.topo.ExtendEdges(es)
	if err != nil {
		return nil, nil, err
	}

	for _, nv := range rim {
		for orig, p := range oldPos {
			if _, ok := m.topo.EdgeBetween(orig, nv); ok {
				avg := offsets[orig].Scale(1 / float64(counts[orig]))
				m.position.Set(nv.Index(), p.Add(avg))
				break
			}
		}
	}
	for _, w := range walls {
		m.initFaceLocked(w)
	}
	m.markDirty()
	return rim, walls, nil
}

func faceNormalOf(pts []vecmath.Vec3) vecmath.Vec3 {
	var normal vecmath.Vec3
	n := len(pts)
	for i := 0; i < n; i++ {
		cur, nxt := pts[i], pts[(i+1)%n]
		normal.X += (cur.Y - nxt.Y) * (cur.Z + nxt.Z)
		normal.Y += (cur.Z - nxt.Z) * (cur.X + nxt.X)
		normal.Z += (cur.X - nxt.X) * (cur.Y + nxt.Y)
	}
	return normal.Normalize()
}

// SplitEdges duplicates each internal edge in es into two co-located
// open edges, tearing the mesh apart along that seam. Seam vertices the
// tear disconnects are duplicated; each duplicate starts at the same
// position as its original. Returns the duplicate vertices.
func (m *Mesh) SplitEdges(es []EdgeHandle) ([]VertexHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	splits, err := m.topo.SplitEdges(es)
	if err != nil {
		return nil, err
	}
	dups := make([]VertexHandle, len(splits))
	for i, s := range splits {
		m.position.Set(s.New.Index(), m.position.Get(s.Old.Index()))
		dups[i] = s.New
	}
	m.markDirty()
	return dups, nil
}

// BevelVertices replaces each vertex in vs with a small face whose
// corners are inset along incident edges by distance (or to the
// incident edge's midpoint if distance would overshoot it).
func (m *Mesh) BevelVertices(vs []VertexHandle, distance float64) ([]FaceHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(vs) == 0 {
		return nil, ErrEmpty
	}
	var out []FaceHandle
	for _, v := range vs {
		if !m.topo.IsValid(v) {
			return nil, ErrStaleHandle
		}
		out0, err := m.bevelOneVertexLocked(v, distance)
		if err != nil {
			return nil, err
		}
		out = append(out, out0)
	}
	m.markDirty()
	return out, nil
}

// bevelOneVertexLocked replaces a single vertex with a small inset face:
//
//  1. split every edge incident to v near v (AddVertexToEdge, then
//     override the midpoint position with the inset point), leaving v
//     surrounded by a ring of new vertices, one per original neighbor;
//  2. for each face v still corners (now degree+1, with the ring
//     vertices as v's immediate neighbors in that face's loop), cut off
//     v's corner by connecting the two ring vertices directly and
//     discarding the small corner face that splits off;
//  3. once every corner is cut, v has degree 0 and is removed; the ring
//     left behind is closed into one new face.
//
// This only handles a vertex whose incident faces fully surround it
// (no open boundary gap); a boundary vertex returns ErrOutOfRange since
// replacing it with a small face presumes a closed fan.
func (m *Mesh) bevelOneVertexLocked(v VertexHandle, distance float64) (FaceHandle, error) {
	center := m.position.Get(v.Index())
	outHE := m.topo.OutHalfEdges(v)
	if len(outHE) < 3 {
		return FaceHandle{}, ErrOutOfRange
	}
	for _, h := range outHE {
		if m.topo.FaceOf(h).IsInvalid() || m.topo.FaceOf(m.topo.Twin(h)).IsInvalid() {
			return FaceHandle{}, ErrOutOfRange
		}
	}

	ring := make([]VertexHandle, len(outHE))
	for i, h := range outHE {
		e := m.topo.EdgeOf(h)
		end := m.topo.EndVertex(h)
		p := m.position.Get(end.Index())
		d := p.Sub(center)
		l := d.Len()
		t := 0.5
		if l > 1e-12 {
			t = distance / l
			if t > 0.5 {
				t = 0.5
			}
		}
		nv, _, _, err := m.addVertexToEdgeLocked(e)
		if err != nil {
			return FaceHandle{}, err
		}
		m.position.Set(nv.Index(), center.Add(d.Scale(t)))
		ring[i] = nv
	}

	n := len(ring)
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		f, ok := m.commonFace(a, b)
		if !ok {
			continue
		}
		corner, rest, err := m.splitFaceByChordLocked(f, a, b)
		if err != nil {
			continue
		}
		cf := corner
		if len(m.topo.VerticesOfFace(rest)) < len(m.topo.VerticesOfFace(corner)) {
			cf = rest
		}
		_ = m.topo.RemoveFace(cf, true)
	}

	if err := m.topo.RemoveVertex(v, true); err != nil {
		return FaceHandle{}, err
	}
	inner, err := m.topo.AddFace(ring...)
	if err != nil {
		return FaceHandle{}, err
	}
	m.initFaceLocked(inner)
	return inner, nil
}
