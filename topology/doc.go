// Package topology implements a manifold half-edge graph: vertices,
// half-edges, full-edges and faces addressed by handle.Handle, plus the
// Euler operators and traversal queries that rewrite it while
// preserving twin involution, face-loop closure, vertex-fan
// consistency and manifoldness.
//
// Topology owns no geometry and no attribute data — it is pure
// connectivity. mesh.Mesh pairs a Topology with the standard
// stream.Stream attribute arrays (position, texcoord, ...) and is the
// layer users actually edit through; Topology's operators are exported
// so mesh.Mesh can call them directly without a geometry round-trip,
// keeping all topology mutation in one place and letting mesh.Mesh
// layer attribute semantics on top.
//
// Locking: Topology is not internally synchronized (single-owner, see
// mesh.Mesh's one mutex); every exported method is all-or-nothing —
// on error, no partial mutation is observable.
package topology
