package stream

// Kind identifies which element a Stream is indexed by.
type Kind int

const (
	// KindVertex streams are indexed by vertex handle.
	KindVertex Kind = iota
	// KindHalfEdge streams are indexed by half-edge handle.
	KindHalfEdge
	// KindFace streams are indexed by face handle.
	KindFace
)

// Registrable is the subset of Stream[T]'s API the Registry needs in
// order to broadcast allocation/free events without knowing T. Every
// *Stream[T] satisfies it.
type Registrable interface {
	Grow(n int)
	Reset(i int)
}

// Registry tracks every attribute stream registered against a given
// set of handle.Pools (one per Kind), so a single topology mutation
// (add/remove vertex, half-edge, or face) can keep every stream's
// length in lockstep -- every live handle has a value in every
// registered stream, without each stream needing to know about the
// others.
type Registry struct {
	streams map[Kind][]entry
}

type entry struct {
	name string
	s    Registrable
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{streams: make(map[Kind][]entry)}
}

// Register adds s under name for the given Kind. Registering the same
// name twice for the same Kind is a caller error (mesh.New wires every
// standard stream exactly once at construction); Register does not
// defend against it since it only ever runs at startup, not per-edit.
func (r *Registry) Register(kind Kind, name string, s Registrable) {
	r.streams[kind] = append(r.streams[kind], entry{name: name, s: s})
}

// GrowAll grows every stream of kind to length n. Called after a
// handle.Pool of that Kind allocates a new slot.
func (r *Registry) GrowAll(kind Kind, n int) {
	for _, e := range r.streams[kind] {
		e.s.Grow(n)
	}
}

// ResetAll tombstones index i in every stream of kind. Called after a
// handle.Pool of that Kind frees a slot.
func (r *Registry) ResetAll(kind Kind, i int) {
	for _, e := range r.streams[kind] {
		e.s.Reset(i)
	}
}

// Names returns the registered stream names for kind, in registration
// order.
func (r *Registry) Names(kind Kind) []string {
	entries := r.streams[kind]
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}
