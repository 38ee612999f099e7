// Package mesh is the editable core of the kernel: it pairs a
// topology.Topology with the standard attribute streams (per-vertex
// position, per-half-edge texcoord and smoothing flag, per-face
// texture projection and material id), and exposes every Euler-operator
// editing primitive as a geometry-aware wrapper that keeps those
// streams consistent with whatever topology.Topology just rewired.
//
// Mesh is single-owner: one sync.RWMutex guards topology, streams and
// the dirty flag together, a single lock for Mesh's one mutable
// surface rather than separate locks per concern.
// Every exported mutator takes the write lock for its whole body;
// queries take the read lock. A Mesh starts Clean, becomes Dirty on any
// successful mutation, and is returned to Clean only by
// rebuild.Rebuild.
package mesh
