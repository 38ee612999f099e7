// Package meshio exposes mesh.Mesh's handle-stable iteration order to
// external persistence code. The core defines no on-disk format of its
// own, but still requires that a caller be able to
// walk a mesh deterministically: vertices, then edges, then faces with
// their streams, each in ascending handle-index order, the same order
// topology.Topology.EachVertex/EachEdge/EachFace already guarantee.
//
// Dump builds this in a single pass into a Snapshot a caller can
// inspect or re-walk; WriteTo drives the same walk directly against a
// caller-supplied Sink for callers who want to stream straight into
// their own format without an intermediate copy. Neither writes any
// bytes itself — there is no canonical wire format here, only the
// order guarantee.
package meshio
