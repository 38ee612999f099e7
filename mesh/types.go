package mesh

import (
	"sync"

	"github.com/halfmesh/kernel/stream"
	"github.com/halfmesh/kernel/topology"
	"github.com/halfmesh/kernel/vecmath"
)

// Re-exported handle types so a caller only needs to import mesh for
// the common editing surface, without also importing topology directly.
type (
	VertexHandle      = topology.VertexHandle
	HalfEdgeHandle    = topology.HalfEdgeHandle
	EdgeHandle        = topology.EdgeHandle
	FaceHandle        = topology.FaceHandle
	ConnectivityClass = topology.ConnectivityClass
)

// FaceInvalid is the open-boundary sentinel face handle.
var FaceInvalid = topology.FaceInvalid

// Smoothing classifies a half-edge's contribution to normal smoothing
// across its full-edge.
type Smoothing int

const (
	SmoothingDefault Smoothing = iota
	SmoothingHard
	SmoothingSoft
)

// State is the Mesh dirty/clean state machine.
type State int

const (
	Clean State = iota
	Dirty
)

func (s State) String() string {
	if s == Clean {
		return "Clean"
	}
	return "Dirty"
}

// materialEntry is one row of the compact external-material table:
// local ids are assigned in table order, [0, M).
type materialEntry struct {
	ref     any
	texW    int
	texH    int
	surface any
}

// MaterialResolver maps an external material reference to the data a
// face's texture-parameter math needs. It is called lazily, the first
// time a face is assigned ref. A nil Resolver makes AssignMaterial
// always fail.
type MaterialResolver interface {
	Resolve(ref any) (surface any, texW, texH int, err error)
}

// Option configures a Mesh at construction using the functional-options
// pattern.
type Option func(*Mesh)

// WithSmoothingThreshold sets the cosine of the maximum dihedral angle
// treated as smooth across a Default-smoothing edge. Larger cosine
// (closer to 1) means a stricter (smaller-angle) smoothing threshold.
// Default is cos(60deg) ~= 0.5.
func WithSmoothingThreshold(cosine float64) Option {
	return func(m *Mesh) { m.smoothThreshold = cosine }
}

// WithDefaultMaterial sets the material id newly created faces start
// with before any AssignMaterial call. Default is -1 (unassigned).
func WithDefaultMaterial(id int32) Option {
	return func(m *Mesh) { m.defaultMaterial = id }
}

// WithMaterialResolver installs the IMaterialResolver collaborator
// used by AssignMaterial.
func WithMaterialResolver(r MaterialResolver) Option {
	return func(m *Mesh) { m.resolver = r }
}

// Mesh owns a topology.Topology plus the standard attribute streams
// (position, texcoord, smoothing, texture projection, material id).
// See package doc for the locking model.
type Mesh struct {
	mu sync.RWMutex

	topo     *topology.Topology
	vertices *stream.Registry
	halfEdge *stream.Registry
	faces    *stream.Registry

	position *stream.Stream[vecmath.Vec3]

	texcoord  *stream.Stream[vecmath.Vec2]
	smoothing *stream.Stream[Smoothing]

	texU       *stream.Stream[vecmath.Vec3]
	texV       *stream.Stream[vecmath.Vec3]
	texScale   *stream.Stream[vecmath.Vec2]
	texOffset  *stream.Stream[vecmath.Vec2]
	materialID *stream.Stream[int32]

	materials       []materialEntry
	resolver        MaterialResolver
	defaultMaterial int32
	smoothThreshold float64

	state State
}

// New returns an empty, Clean Mesh with every standard stream
// registered and wired to topo's lifecycle hooks so every stream stays
// aligned with the handle pools across future grows and frees.
func New(opts ...Option) *Mesh {
	m := &Mesh{
		topo:            topology.New(),
		vertices:        stream.NewRegistry(),
		halfEdge:        stream.NewRegistry(),
		faces:           stream.NewRegistry(),
		position:        stream.New[vecmath.Vec3](),
		texcoord:        stream.New[vecmath.Vec2](),
		smoothing:       stream.New[Smoothing](),
		texU:            stream.New[vecmath.Vec3](),
		texV:            stream.New[vecmath.Vec3](),
		texScale:        stream.New[vecmath.Vec2](),
		texOffset:       stream.New[vecmath.Vec2](),
		materialID:      stream.New[int32](),
		defaultMaterial: -1,
		smoothThreshold: 0.5,
	}
	m.vertices.Register(stream.KindVertex, "position", m.position)
	m.halfEdge.Register(stream.KindHalfEdge, "texcoord", m.texcoord)
	m.halfEdge.Register(stream.KindHalfEdge, "smoothing", m.smoothing)
	m.faces.Register(stream.KindFace, "texture_u_axis", m.texU)
	m.faces.Register(stream.KindFace, "texture_v_axis", m.texV)
	m.faces.Register(stream.KindFace, "texture_scale", m.texScale)
	m.faces.Register(stream.KindFace, "texture_offset", m.texOffset)
	m.faces.Register(stream.KindFace, "material_id", m.materialID)

	m.topo.OnVertexLifecycle(
		func(n int) { m.vertices.GrowAll(stream.KindVertex, n) },
		func(i int) { m.vertices.ResetAll(stream.KindVertex, i) },
	)
	m.topo.OnHalfEdgeLifecycle(
		func(n int) { m.halfEdge.GrowAll(stream.KindHalfEdge, n) },
		func(i int) { m.halfEdge.ResetAll(stream.KindHalfEdge, i) },
	)
	m.topo.OnFaceLifecycle(
		func(n int) { m.faces.GrowAll(stream.KindFace, n) },
		func(i int) { m.faces.ResetAll(stream.KindFace, i) },
	)

	for _, o := range opts {
		o(m)
	}
	return m
}

// State reports whether m has been mutated since the last Rebuild.
func (m *Mesh) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Topology exposes the underlying topology.Topology for read-only
// traversal queries rebuild.Rebuild needs (HalfEdgesOfFace, Twin,
// FaceOf, ...) without mesh re-exporting every one of them.
//
// Callers outside this package and rebuild must not mutate through it.
func (m *Mesh) Topology() *topology.Topology { return m.topo }

func (m *Mesh) markDirty() { m.state = Dirty }

// MarkClean transitions m back to Clean. Only rebuild.Rebuild calls
// this, after it has consumed m's current state.
func (m *Mesh) MarkClean() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Clean
}

// Lock/Unlock/RLock/RUnlock expose m's mutex to rebuild.Rebuild so a
// rebuild can hold a consistent read snapshot across its whole
// traversal.
func (m *Mesh) Lock()    { m.mu.Lock() }
func (m *Mesh) Unlock()  { m.mu.Unlock() }
func (m *Mesh) RLock()   { m.mu.RLock() }
func (m *Mesh) RUnlock() { m.mu.RUnlock() }

// Position returns v's position. Callers must hold at least RLock (or
// call through a method that does).
func (m *Mesh) Position(v VertexHandle) vecmath.Vec3 {
	return m.position.Get(v.Index())
}
