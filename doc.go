// Package kernel is the root of an editable polygon-mesh kernel: a
// half-edge topological data structure with per-element attribute
// streams, Euler-operator editing primitives, and a texture-parameter
// model that keeps world-space projection parameters and per-corner UV
// coordinates in sync.
//
// The kernel is organized as a set of focused, independently importable
// subpackages:
//
//	handle/   — generation-counted handle pools (stable vertex/half-edge/face IDs)
//	stream/   — named, typed per-element attribute arrays kept aligned with handle/
//	topology/ — the manifold half-edge graph and its Euler operators
//	vecmath/  — vec2/vec3/mat3 helpers used by the geometric components
//	spatial/  — a k-d tree used for proximity-based vertex merging
//	texture/  — projection-parameter <-> corner-UV conversion
//	polygon/  — ear-clip triangulation, plane fit, segment clipping
//	mesh/     — Topology + standard streams + editing operators + dirty/clean state
//	rebuild/  — turns a clean Mesh into renderable submeshes and a collision buffer
//	meshio/   — handle-stable vertex/edge/face iteration order for external persistence
//
// A typical caller imports mesh (which re-exports topology's handle
// types), vecmath for positions, and rebuild.
//
//	m := mesh.New()
//	a := m.AddVertex(vecmath.Vec3{X: 0, Y: 0, Z: 0})
//	b := m.AddVertex(vecmath.Vec3{X: 1, Y: 0, Z: 0})
//	c := m.AddVertex(vecmath.Vec3{X: 0, Y: 1, Z: 0})
//	f, _ := m.AddFace(a, b, c)
//	model := rebuild.Rebuild(m, renderSink, collisionSink)
package kernel
