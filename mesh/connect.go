package mesh

import (
	"github.com/halfmesh/kernel/polygon"
	"github.com/halfmesh/kernel/vecmath"
)

// commonFace returns a face incident to both a and b, if any.
func (m *Mesh) commonFace(a, b VertexHandle) (FaceHandle, bool) {
	fa := m.topo.FacesOfVertex(a)
	set := make(map[FaceHandle]bool, len(fa))
	for _, f := range fa {
		set[f] = true
	}
	for _, f := range m.topo.FacesOfVertex(b) {
		if set[f] {
			return f, true
		}
	}
	return FaceHandle{}, false
}

// chordInsideFace reports whether the straight chord a-b lies inside f,
// tested in 2D: f is projected onto the axis plane closest to its
// best-fit plane and the chord's midpoint is checked with an even-odd
// point-in-polygon test. Only the midpoint is tested; a chord whose
// midpoint is inside f but which crosses f's boundary elsewhere is not
// rejected.
func (m *Mesh) chordInsideFace(f FaceHandle, a, b VertexHandle) bool {
	verts := m.topo.VerticesOfFace(f)
	pts := make([]vecmath.Vec3, len(verts))
	idxA, idxB := -1, -1
	for i, v := range verts {
		pts[i] = m.position.Get(v.Index())
		if v == a {
			idxA = i
		}
		if v == b {
			idxB = i
		}
	}
	if idxA < 0 || idxB < 0 {
		return false
	}
	plane := polygon.PlaneFit(pts)
	if plane.Normal.Len() < 1e-9 {
		return false
	}
	proj := projectToPlane(pts, plane.Normal)
	mid := vecmath.Vec2{
		X: (proj[idxA].X + proj[idxB].X) / 2,
		Y: (proj[idxA].Y + proj[idxB].Y) / 2,
	}
	return pointInPolygon(mid, proj)
}

func projectToPlane(pts []vecmath.Vec3, normal vecmath.Vec3) []vecmath.Vec2 {
	ax, ay, az := absf(normal.X), absf(normal.Y), absf(normal.Z)
	out := make([]vecmath.Vec2, len(pts))
	switch {
	case az >= ax && az >= ay:
		for i, p := range pts {
			out[i] = vecmath.Vec2{X: p.X, Y: p.Y}
		}
	case ay >= ax:
		for i, p := range pts {
			out[i] = vecmath.Vec2{X: p.X, Y: p.Z}
		}
	default:
		for i, p := range pts {
			out[i] = vecmath.Vec2{X: p.Y, Y: p.Z}
		}
	}
	return out
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// pointInPolygon is an even-odd ray-cast test, sufficient for the
// simple polygons the mesh's faces are by construction.
func pointInPolygon(p vecmath.Vec2, poly []vecmath.Vec2) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xint := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xint {
				inside = !inside
			}
		}
	}
	return inside
}

// splitFaceByChordLocked cuts f into two faces along the chord a-b: it
// opens f, then rebuilds each half of its vertex loop (split at a and
// b) as its own face: the first AddFace creates the a-b edge and the
// second reuses its open side -- the shared primitive behind
// ConnectVertices and the corner cut BevelVertices performs per
// incident face.
func (m *Mesh) splitFaceByChordLocked(f FaceHandle, a, b VertexHandle) (f1, f2 FaceHandle, err error) {
	verts := m.topo.VerticesOfFace(f)
	ia, ib := -1, -1
	for i, v := range verts {
		if v == a {
			ia = i
		}
		if v == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia == ib {
		return FaceHandle{}, FaceHandle{}, ErrOutOfRange
	}
	n := len(verts)
	var loop1, loop2 []VertexHandle
	for i := ia; ; i = (i + 1) % n {
		loop1 = append(loop1, verts[i])
		if i == ib {
			break
		}
	}
	for i := ib; ; i = (i + 1) % n {
		loop2 = append(loop2, verts[i])
		if i == ia {
			break
		}
	}
	matl := m.materialID.Get(f.Index())
	if err := m.topo.RemoveFace(f, true); err != nil {
		return FaceHandle{}, FaceHandle{}, err
	}
	f1, err = m.topo.AddFace(loop1...)
	if err != nil {
		return FaceHandle{}, FaceHandle{}, err
	}
	f2, err = m.topo.AddFace(loop2...)
	if err != nil {
		return FaceHandle{}, FaceHandle{}, err
	}
	m.initFaceLocked(f1)
	m.initFaceLocked(f2)
	m.materialID.Set(f1.Index(), matl)
	m.materialID.Set(f2.Index(), matl)
	return f1, f2, nil
}

// ConnectVertices adds an edge splitting the face a and b share, if
// the chord stays inside that face's interior.
func (m *Mesh) ConnectVertices(a, b VertexHandle) (f1, f2 FaceHandle, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.commonFace(a, b)
	if !ok {
		return FaceHandle{}, FaceHandle{}, ErrNoCommonFace
	}
	if !m.chordInsideFace(f, a, b) {
		return FaceHandle{}, FaceHandle{}, ErrChordOutsideFace
	}
	f1, f2, err = m.splitFaceByChordLocked(f, a, b)
	if err != nil {
		return FaceHandle{}, FaceHandle{}, err
	}
	m.markDirty()
	return f1, f2, nil
}

// CreateEdgesConnectingVertexToPoint walks from start across face
// boundaries toward targetPoint, adding a vertex and connecting edge
// each time it crosses into the next face, until either the target is
// reached or no incident face admits the next chord. It returns the
// chain of new vertices created, ending at (or nearest to) targetPoint.
//
// Each step looks at every edge of the current vertex's incident faces
// that does not touch the current vertex, and picks the one the line
// from the current vertex toward targetPoint crosses farthest along
// without passing the target. It adds a vertex at that crossing via
// AddVertexToEdge, connects it to the current vertex by splitting the
// face they share, and continues from the new vertex.
func (m *Mesh) CreateEdgesConnectingVertexToPoint(start VertexHandle, targetPoint vecmath.Vec3) ([]VertexHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.topo.IsValid(start) {
		return nil, ErrStaleHandle
	}
	var chain []VertexHandle
	cur := start
	const maxSteps = 64
	for step := 0; step < maxSteps; step++ {
		curPos := m.position.Get(cur.Index())
		if curPos.Sub(targetPoint).Len() < 1e-6 {
			break
		}
		faces := m.topo.FacesOfVertex(cur)
		var bestFace FaceHandle
		var bestEdge EdgeHandle
		var bestExit vecmath.Vec3
		bestT := -1.0
		found := false
		for _, f := range faces {
			hes := m.topo.HalfEdgesOfFace(f)
			for _, h := range hes {
				ev := m.topo.EndVertex(h)
				if ev == cur {
					continue
				}
				sv := m.topo.StartVertex(h)
				if sv == cur {
					continue
				}
				a := m.position.Get(sv.Index())
				b := m.position.Get(ev.Index())
				t1, t2, err := polygon.ClosestSegmentBetweenLines(curPos, targetPoint, a, b)
				if err != nil || t2 < 0 || t2 > 1 || t1 <= 0 || t1 > 1 {
					continue
				}
				if t1 > bestT {
					bestT, bestFace, bestEdge, found = t1, f, m.topo.EdgeOf(h), true
					bestExit = a.Add(b.Sub(a).Scale(t2))
				}
			}
		}
		if !found {
			break
		}
		_ = bestFace
		preA, preB := m.topo.VerticesOfEdge(bestEdge)
		nv, _, _, err := m.addVertexToEdgeLocked(bestEdge)
		if err != nil {
			break
		}
		m.position.Set(nv.Index(), bestExit)
		_ = preA
		_ = preB
		if _, _, err := m.splitFaceIfCommonLocked(cur, nv); err != nil {
			// cur and nv may already be directly connected by the split
			// edge itself (when bestEdge was incident to cur); nothing
			// more to do in that case.
		}
		chain = append(chain, nv)
		cur = nv
	}
	if len(chain) > 0 {
		m.markDirty()
	}
	return chain, nil
}

// addVertexToEdgeLocked is AddVertexToEdge's body, factored out so
// CreateEdgesConnectingVertexToPoint can call it while already holding
// the write lock.
func (m *Mesh) addVertexToEdgeLocked(e EdgeHandle) (nv VertexHandle, e1, e2 EdgeHandle, err error) {
	h1, h2 := m.topo.HalfEdgesOfEdge(e)
	a, b := m.topo.EndVertex(h2), m.topo.EndVertex(h1)
	f1, f2 := m.topo.FaceOf(h1), m.topo.FaceOf(h2)

	var mid1, mid2 vecmath.Vec2
	haveMid1, haveMid2 := !f1.IsInvalid(), !f2.IsInvalid()
	if haveMid1 {
		mid1 = vec2Lerp(m.texcoord.Get(m.topo.Prev(h1).Index()), m.texcoord.Get(h1.Index()), 0.5)
	}
	if haveMid2 {
		mid2 = vec2Lerp(m.texcoord.Get(h2.Index()), m.texcoord.Get(m.topo.Prev(h2).Index()), 0.5)
	}
	posA, posB := m.position.Get(a.Index()), m.position.Get(b.Index())

	nv, err = m.topo.AddVertexToEdge(e)
	if err != nil {
		return VertexHandle{}, EdgeHandle{}, EdgeHandle{}, err
	}
	m.position.Set(nv.Index(), vecmath.Lerp(posA, posB, 0.5))
	if haveMid1 {
		m.texcoord.Set(m.topo.Prev(h1).Index(), mid1)
	}
	if haveMid2 {
		m.texcoord.Set(h2.Index(), mid2)
	}
	for _, cand := range m.topo.EdgesOfVertex(nv) {
		va, vb := m.topo.VerticesOfEdge(cand)
		other := va
		if va == nv {
			other = vb
		}
		if other == a {
			e1 = cand
		} else if other == b {
			e2 = cand
		}
	}
	return nv, e1, e2, nil
}

// splitFaceIfCommonLocked connects a and b if they share a face whose
// interior the chord stays inside; it is a no-op (not an error) when
// they don't.
func (m *Mesh) splitFaceIfCommonLocked(a, b VertexHandle) (f1, f2 FaceHandle, err error) {
	f, ok := m.commonFace(a, b)
	if !ok || !m.chordInsideFace(f, a, b) {
		return FaceHandle{}, FaceHandle{}, nil
	}
	return m.splitFaceByChordLocked(f, a, b)
}
