// Package rebuild implements the kernel's Rebuilder: it consumes a
// mesh.Mesh's current topology and attribute streams and produces a
// renderable submesh set (grouped by material, with smoothed normals,
// tangents and texcoords) plus a combined collision buffer.
//
// Rebuild never raises: a face that fails to triangulate, or whose
// world-space area collapses to ~0, is silently dropped rather than
// reported, so the worst outcome of a malformed mesh is a visibly
// smaller rebuild, never a crash or a partially-written Model.
//
// IRenderMesh and ICollisionSink are minimal stand-ins for the GPU
// buffer/collision-hull collaborators that sit outside this core; a
// caller with a real renderer implements them and passes them to
// Rebuild, or ignores them (pass nil) and reads the returned Model
// directly.
package rebuild
