// Package polygon implements the small set of computational-geometry
// primitives the mesh kernel needs on top of raw vertex positions: ear-
// clip triangulation of a (near-)planar face, a Newell plane fit,
// convex-polygon clipping against a line, and the closest-point and
// closest-segment routines used by chord-walking and edge-ring code.
//
// Every routine here takes plain vecmath.Vec2/Vec3 slices — it knows
// nothing about handles, streams or Topology — so mesh.Mesh and rebuild
// are the callers that bridge it to live face data.
package polygon
