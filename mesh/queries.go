package mesh

import (
	"github.com/halfmesh/kernel/polygon"
	"github.com/halfmesh/kernel/vecmath"
)

// FaceVertexPositions returns f's corner positions in face-loop order,
// optionally passed through xform (nil for raw local positions).
func (m *Mesh) FaceVertexPositions(f FaceHandle, xform func(vecmath.Vec3) vecmath.Vec3) []vecmath.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vs := m.topo.VerticesOfFace(f)
	out := make([]vecmath.Vec3, len(vs))
	for i, v := range vs {
		p := m.position.Get(v.Index())
		if xform != nil {
			p = xform(p)
		}
		out[i] = p
	}
	return out
}

// FaceCentroid returns the arithmetic mean of f's corner positions.
func (m *Mesh) FaceCentroid(f FaceHandle) vecmath.Vec3 {
	pts := m.FaceVertexPositions(f, nil)
	return centroidOf(pts)
}

func centroidOf(pts []vecmath.Vec3) vecmath.Vec3 {
	if len(pts) == 0 {
		return vecmath.Vec3{}
	}
	var sum vecmath.Vec3
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pts)))
}

// FacePlane fits f's corner positions with a Newell plane fit.
func (m *Mesh) FacePlane(f FaceHandle) polygon.Plane {
	return polygon.PlaneFit(m.FaceVertexPositions(f, nil))
}

// FaceNormal returns f's unit plane normal.
func (m *Mesh) FaceNormal(f FaceHandle) vecmath.Vec3 {
	return m.FacePlane(f).Normal
}

// EdgeLine returns the two endpoint positions of e's full-edge.
func (m *Mesh) EdgeLine(e EdgeHandle) (a, b vecmath.Vec3) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	va, vb := m.topo.VerticesOfEdge(e)
	return m.position.Get(va.Index()), m.position.Get(vb.Index())
}

// Bounds returns the axis-aligned bounding box over every live vertex
// position.
func (m *Mesh) Bounds() vecmath.Bounds {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b := vecmath.EmptyBounds()
	m.topo.EachVertex(func(v VertexHandle) {
		b = b.Extend(m.position.Get(v.Index()))
	})
	return b
}
