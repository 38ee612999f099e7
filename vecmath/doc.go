// Package vecmath provides the vector and small-matrix types used
// across the mesh kernel (positions, normals, tangents, texture-basis
// vectors). It is a thin domain-named wrapper over
// github.com/go-gl/mathgl/mgl64 — the vector-math library used for the
// equivalent purpose throughout this corpus's 3D-engine and CAD-style
// repositories — so call sites in topology/mesh/texture/polygon/rebuild
// read in mesh-kernel terms (vecmath.Vec3, vecmath.Cross) instead of
// leaking the underlying library's API.
package vecmath
