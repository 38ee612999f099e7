// Package stream implements named, typed per-element attribute arrays
// kept aligned with a handle.Pool.
//
// A Stream[T] is a dense []T indexed by handle.Handle.Index(). On
// Grow (called when the owning Pool allocates a new slot) the stream
// appends the zero value of T; on Reset (called when the Pool frees a
// slot) the stream resets that slot to the zero value but keeps the
// backing array the same length so indices stay valid for every other
// live handle — the slot is tombstoned exactly the way the Pool
// tombstones its own generation counter, and reused on the next Grow
// for that index.
//
// Streams never resolve handles themselves; callers index with
// handle.Handle.Index() after confirming handle.Pool.IsValid, which is
// why every read/write method here takes a plain int index rather than
// a Handle — keeping one IsValid check at the topology/mesh boundary
// instead of duplicating it per attribute read.
package stream
