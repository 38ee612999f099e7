package rebuild

import (
	"github.com/halfmesh/kernel/mesh"
	"github.com/halfmesh/kernel/vecmath"
)

const smoothCosEps = 1e-6

// combinedSmoothing resolves the two smoothing_flag stream entries on
// either side of a full edge (one per half-edge) into a single
// classification: Hard wins over Soft, which wins
// over Default, so marking either corner of a seam Hard always splits
// it.
func combinedSmoothing(m *mesh.Mesh, h mesh.HalfEdgeHandle) mesh.Smoothing {
	s1, s2 := m.Smoothing(h), m.Smoothing(m.Twin(h))
	switch {
	case s1 == mesh.SmoothingHard || s2 == mesh.SmoothingHard:
		return mesh.SmoothingHard
	case s1 == mesh.SmoothingSoft || s2 == mesh.SmoothingSoft:
		return mesh.SmoothingSoft
	default:
		return mesh.SmoothingDefault
	}
}

// smoothedNormal computes the corner normal at half-edge h (ending at
// the vertex whose corner this is, in h's face) by walking the vertex
// fan in both directions from h's face and accumulating every
// reachable face's flat normal, stopping at a Hard edge, an open
// (boundary) edge, or — for a Default edge — a dihedral angle whose
// cosine falls at or below cosThreshold+eps. maxFanSteps bounds the
// walk the way every other local-incidence operator in this kernel is
// bounded.
func smoothedNormal(m *mesh.Mesh, h mesh.HalfEdgeHandle, cosThreshold float64, faceNormal map[mesh.FaceHandle]vecmath.Vec3) vecmath.Vec3 {
	startFace := m.FaceOf(h)
	sum := faceNormal[startFace]
	count := 1
	visited := map[mesh.FaceHandle]bool{startFace: true}

	crossOK := func(curFace, nextFace mesh.FaceHandle, sm mesh.Smoothing) bool {
		switch sm {
		case mesh.SmoothingHard:
			return false
		case mesh.SmoothingSoft:
			return true
		default:
			d := faceNormal[curFace].Dot(faceNormal[nextFace])
			return d > cosThreshold+smoothCosEps
		}
	}

	const maxFanSteps = 256

	cur := h
	for i := 0; i < maxFanSteps; i++ {
		crossEdge := m.Next(cur)
		nextH := m.Twin(crossEdge)
		nextFace := m.FaceOf(nextH)
		if nextFace.IsInvalid() || visited[nextFace] {
			break
		}
		if !crossOK(m.FaceOf(cur), nextFace, combinedSmoothing(m, crossEdge)) {
			break
		}
		visited[nextFace] = true
		sum = sum.Add(faceNormal[nextFace])
		count++
		cur = nextH
	}

	cur = h
	for i := 0; i < maxFanSteps; i++ {
		twinH := m.Twin(cur)
		nextFace := m.FaceOf(twinH)
		if nextFace.IsInvalid() || visited[nextFace] {
			break
		}
		if !crossOK(m.FaceOf(cur), nextFace, combinedSmoothing(m, cur)) {
			break
		}
		visited[nextFace] = true
		sum = sum.Add(faceNormal[nextFace])
		count++
		cur = m.Prev(twinH)
	}

	if count == 0 {
		return vecmath.Vec3{}
	}
	return sum.Scale(1 / float64(count)).Normalize()
}

// faceTangent projects uAxis onto the plane perpendicular to n and
// flips it so cross(n, t) agrees with vAxis's direction. It falls back
// to an arbitrary perpendicular axis if uAxis is parallel to n (a
// degenerate projection basis).
func faceTangent(n, uAxis, vAxis vecmath.Vec3) vecmath.Vec3 {
	t := uAxis.Sub(n.Scale(uAxis.Dot(n)))
	if t.Len() < 1e-9 {
		t = arbitraryPerp(n)
	} else {
		t = t.Normalize()
	}
	bitangent := vAxis.Sub(n.Scale(vAxis.Dot(n)))
	if n.Cross(t).Dot(bitangent) < 0 {
		t = t.Scale(-1)
	}
	return t
}

func arbitraryPerp(n vecmath.Vec3) vecmath.Vec3 {
	ref := vecmath.Vec3{X: 1, Y: 0, Z: 0}
	if absf(n.X) > 0.9 {
		ref = vecmath.Vec3{X: 0, Y: 1, Z: 0}
	}
	return n.Cross(ref).Normalize()
}

func absf(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
