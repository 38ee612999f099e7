package meshio

import (
	"github.com/halfmesh/kernel/mesh"
	"github.com/halfmesh/kernel/texture"
	"github.com/halfmesh/kernel/vecmath"
)

// VertexRecord is one live vertex's persisted state: its stable
// index (mesh.VertexHandle.Index()) and position.
type VertexRecord struct {
	Index    int
	Position vecmath.Vec3
}

// EdgeRecord is one live full-edge's persisted state: its endpoints'
// indices and the smoothing flag carried by each of its two
// half-edges (A is the half-edge whose EndVertex is B's vertex, and
// vice versa — the pair is unordered from an external format's point
// of view, but consistently so within one Dump/WriteTo call).
type EdgeRecord struct {
	Index      int
	VertexA    int
	VertexB    int
	SmoothingA mesh.Smoothing
	SmoothingB mesh.Smoothing
}

// FaceRecord is one live face's persisted state: its vertex loop (by
// index, in face-loop order), material id, texture projection params
// and per-corner UVs.
type FaceRecord struct {
	Index      int
	Vertices   []int
	MaterialID int32
	Params     texture.Params
	CornerUVs  []vecmath.Vec2
}

// Snapshot is a full, order-preserving copy of one mesh's persisted
// state, as produced by Dump.
type Snapshot struct {
	Vertices []VertexRecord
	Edges    []EdgeRecord
	Faces    []FaceRecord
}

// Sink receives one WriteTo walk's records, in stable order: every
// live vertex, then every live edge, then every live face. A Sink
// implementation converts these into its own wire format; meshio
// itself defines none.
//
// Any error returned aborts the walk; WriteTo returns that error
// wrapped so the caller can tell which phase failed.
type Sink interface {
	Vertex(VertexRecord) error
	Edge(EdgeRecord) error
	Face(FaceRecord) error
}

// Dump walks m and returns a Snapshot holding every live vertex, edge
// and face in handle-stable order.
func Dump(m *mesh.Mesh) *Snapshot {
	snap := &Snapshot{}
	_ = WriteTo(m, snapshotSink{snap})
	return snap
}

// WriteTo walks m once, in handle-stable order (vertices, then edges,
// then faces), pushing each live record to sink. The walk reads m
// through its own locking getters; the caller owns m for the duration
// (the same single-owner rule every mesh operation relies on) and the
// sink must not mutate m mid-walk.
func WriteTo(m *mesh.Mesh, sink Sink) error {
	topo := m.Topology()

	var err error
	topo.EachVertex(func(v mesh.VertexHandle) {
		if err != nil {
			return
		}
		err = sink.Vertex(VertexRecord{Index: v.Index(), Position: m.Position(v)})
	})
	if err != nil {
		return &WalkError{Phase: "vertex", Err: err}
	}

	topo.EachEdge(func(e mesh.EdgeHandle) {
		if err != nil {
			return
		}
		a, b := m.VerticesOfEdge(e)
		h1, h2 := topo.HalfEdgesOfEdge(e)
		err = sink.Edge(EdgeRecord{
			Index:      e.Index(),
			VertexA:    a.Index(),
			VertexB:    b.Index(),
			SmoothingA: m.Smoothing(h1),
			SmoothingB: m.Smoothing(h2),
		})
	})
	if err != nil {
		return &WalkError{Phase: "edge", Err: err}
	}

	topo.EachFace(func(f mesh.FaceHandle) {
		if err != nil {
			return
		}
		vs := m.VerticesOfFace(f)
		idxs := make([]int, len(vs))
		for i, v := range vs {
			idxs[i] = v.Index()
		}
		err = sink.Face(FaceRecord{
			Index:      f.Index(),
			Vertices:   idxs,
			MaterialID: m.MaterialID(f),
			Params:     m.Params(f),
			CornerUVs:  m.CornerUVs(f),
		})
	})
	if err != nil {
		return &WalkError{Phase: "face", Err: err}
	}
	return nil
}

type snapshotSink struct{ snap *Snapshot }

func (s snapshotSink) Vertex(r VertexRecord) error {
	s.snap.Vertices = append(s.snap.Vertices, r)
	return nil
}

func (s snapshotSink) Edge(r EdgeRecord) error {
	s.snap.Edges = append(s.snap.Edges, r)
	return nil
}

func (s snapshotSink) Face(r FaceRecord) error {
	s.snap.Faces = append(s.snap.Faces, r)
	return nil
}
