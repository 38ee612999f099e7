// Package handle provides stable integer handles for the four element
// kinds of a half-edge mesh (vertices, half-edges, full-edges, faces).
//
// A Handle is a 64-bit value packing a 32-bit slot index and a 32-bit
// generation counter. Pool is a free-list allocator: Alloc returns the
// lowest free slot, Free tombstones that slot and bumps its generation
// so any previously issued Handle referencing it becomes stale. This
// gives callers memory-safety against use-after-free without needing a
// garbage collector for the mesh's own internal arrays — deleting a
// vertex never invalidates unrelated handles, and stale reads fail
// loudly (ErrStale) instead of aliasing a reused slot.
//
// Pool carries no knowledge of what a slot represents; topology.Topology
// pairs one Pool per element kind with parallel record slices, and
// stream.* pairs one Pool with parallel attribute arrays. The zero
// Handle (index 0, generation 0) is never issued by Alloc and is always
// invalid, so a zero-valued Handle field reads naturally as "unset".
package handle
