package topology

import "github.com/halfmesh/kernel/handle"

// VertexHandle, HalfEdgeHandle, EdgeHandle and FaceHandle wrap
// handle.Handle with distinct Go types so a caller can't accidentally
// pass a face handle where a vertex handle is expected — the compiler
// catches what an opaque integer handle would otherwise only catch at
// runtime via a liveness check.
type (
	VertexHandle   struct{ h handle.Handle }
	HalfEdgeHandle struct{ h handle.Handle }
	EdgeHandle     struct{ h handle.Handle } // full-edge: canonical {half, twin} pair
	FaceHandle     struct{ h handle.Handle } // FaceInvalid (zero value) marks an open boundary
)

// FaceInvalid is the sentinel face handle used for a half-edge on an
// open boundary.
var FaceInvalid = FaceHandle{}

// IsInvalid reports whether f is the open-boundary sentinel.
func (f FaceHandle) IsInvalid() bool { return f.h.IsZero() }

func (v VertexHandle) String() string   { return "v" + v.h.String() }
func (h HalfEdgeHandle) String() string { return "he" + h.h.String() }
func (e EdgeHandle) String() string     { return "e" + e.h.String() }
func (f FaceHandle) String() string     { return "f" + f.h.String() }

// Index returns the underlying handle.Pool slot index, for callers
// (mesh.Mesh, stream.Stream) that address a parallel array directly
// rather than going through Topology's own record slices.
func (v VertexHandle) Index() int   { return v.h.Index() }
func (h HalfEdgeHandle) Index() int { return h.h.Index() }
func (e EdgeHandle) Index() int     { return e.h.Index() }
func (f FaceHandle) Index() int     { return f.h.Index() }

// vertexRecord holds the per-vertex connectivity state: one arbitrary
// incoming half-edge (one that ends at the vertex), used as the entry
// point into the vertex's fan.
// A vertex with no incident half-edges (isolated) has outHE zero.
type vertexRecord struct {
	outHE handle.Handle
}

// halfEdgeRecord holds the fields Topology maintains per half-edge: end
// vertex, twin, next/prev in the face loop, the owning face (zero if
// open), and the full-edge this half-edge pairs into.
type halfEdgeRecord struct {
	end  handle.Handle // vertex this half-edge points to
	twin handle.Handle
	next handle.Handle
	prev handle.Handle
	face handle.Handle // zero (FaceInvalid) if open
	edge handle.Handle // owning full-edge
}

// faceRecord holds one half-edge of the face's cycle; the rest of the
// loop is reached by walking next.
type faceRecord struct {
	he handle.Handle
}

// Topology is the manifold half-edge graph. See package doc for the
// ownership and locking model.
type Topology struct {
	vertexPool   *handle.Pool
	halfEdgePool *handle.Pool
	edgePool     *handle.Pool
	facePool     *handle.Pool

	vertices  []vertexRecord
	halfEdges []halfEdgeRecord
	edgeHalf  []handle.Handle // full-edge index -> one representative half-edge
	faces     []faceRecord

	onVertexGrow   func(n int)
	onVertexFree   func(i int)
	onHalfEdgeGrow func(n int)
	onHalfEdgeFree func(i int)
	onFaceGrow     func(n int)
	onFaceFree     func(i int)
}

// New returns an empty Topology. The onX callbacks (all optional) let
// an owner such as mesh.Mesh keep its attribute stream.Registry
// instances in lockstep with handle allocation/free without Topology
// needing to import stream itself.
func New() *Topology {
	return &Topology{
		vertexPool:   handle.NewPool(),
		halfEdgePool: handle.NewPool(),
		edgePool:     handle.NewPool(),
		facePool:     handle.NewPool(),
	}
}

// OnVertexLifecycle registers growth/free hooks for the vertex pool.
func (t *Topology) OnVertexLifecycle(grow func(n int), free func(i int)) {
	t.onVertexGrow, t.onVertexFree = grow, free
}

// OnHalfEdgeLifecycle registers growth/free hooks for the half-edge pool.
func (t *Topology) OnHalfEdgeLifecycle(grow func(n int), free func(i int)) {
	t.onHalfEdgeGrow, t.onHalfEdgeFree = grow, free
}

// OnFaceLifecycle registers growth/free hooks for the face pool.
func (t *Topology) OnFaceLifecycle(grow func(n int), free func(i int)) {
	t.onFaceGrow, t.onFaceFree = grow, free
}

// IsValid reports whether h still refers to a live vertex.
func (t *Topology) IsValid(h VertexHandle) bool { return t.vertexPool.IsValid(h.h) }

// IsValidHalfEdge reports whether h still refers to a live half-edge.
func (t *Topology) IsValidHalfEdge(h HalfEdgeHandle) bool { return t.halfEdgePool.IsValid(h.h) }

// IsValidEdge reports whether e still refers to a live full-edge.
func (t *Topology) IsValidEdge(e EdgeHandle) bool { return t.edgePool.IsValid(e.h) }

// IsValidFace reports whether f still refers to a live face.
func (t *Topology) IsValidFace(f FaceHandle) bool { return !f.IsInvalid() && t.facePool.IsValid(f.h) }

// VertexCount, HalfEdgeCount, EdgeCount and FaceCount return the
// current number of live elements of each kind.
func (t *Topology) VertexCount() int   { return t.vertexPool.Len() }
func (t *Topology) HalfEdgeCount() int { return t.halfEdgePool.Len() }
func (t *Topology) EdgeCount() int     { return t.edgePool.Len() }
func (t *Topology) FaceCount() int     { return t.facePool.Len() }

// EachVertex, EachHalfEdge, EachEdge and EachFace call fn once per live
// handle of that kind, in ascending slot-index order, which is the
// stable iteration order external persistence code relies on. fn must
// not mutate t.
func (t *Topology) EachVertex(fn func(VertexHandle)) {
	t.vertexPool.Each(func(h handle.Handle) { fn(VertexHandle{h}) })
}

func (t *Topology) EachHalfEdge(fn func(HalfEdgeHandle)) {
	t.halfEdgePool.Each(func(h handle.Handle) { fn(HalfEdgeHandle{h}) })
}

func (t *Topology) EachEdge(fn func(EdgeHandle)) {
	t.edgePool.Each(func(h handle.Handle) { fn(EdgeHandle{h}) })
}

func (t *Topology) EachFace(fn func(FaceHandle)) {
	t.facePool.Each(func(h handle.Handle) { fn(FaceHandle{h}) })
}
