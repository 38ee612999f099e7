package rebuild

import (
	"github.com/halfmesh/kernel/mesh"
	"github.com/halfmesh/kernel/vecmath"
)

// Vertex is one render corner: position, smoothed normal, tangent and
// normalized texcoord. Position is in the same space every stream in
// mesh.Mesh already is — there is no separate world/local split inside
// this core, since the rigid transform to world space is an external
// collaborator's concern, not the kernel's.
type Vertex struct {
	Position vecmath.Vec3
	Normal   vecmath.Vec3
	Tangent  vecmath.Vec3
	Texcoord vecmath.Vec2
}

// Triangle records one emitted render triangle: the three indices into
// its owning Submesh.Vertices, and the FaceHandle it was triangulated
// from, so external picking code can map a hit triangle back to the
// editable face that produced it.
type Triangle struct {
	Indices [3]int
	Face    mesh.FaceHandle
}

// Submesh is one material group's renderable payload.
type Submesh struct {
	MaterialID int32
	Surface    any
	Vertices   []Vertex
	Indices    []int
	Triangles  []Triangle
	Bounds     vecmath.Bounds
	UVDensity  float64
}

// IRenderMesh receives one Submesh per distinct material id a Rebuild
// call produced, in ascending material-id order.
type IRenderMesh interface {
	AddSubmesh(Submesh)
}

// CollisionTriangle is one triangle in the combined collision buffer.
type CollisionTriangle struct {
	Positions  [3]vecmath.Vec3
	MaterialID byte
	Face       mesh.FaceHandle
}

// ICollisionSink receives the whole mesh's combined collision buffer
// plus one convex-hull candidate point cloud per material group, the
// customary input shape for an external hull builder.
type ICollisionSink interface {
	AddCollision(triangles []CollisionTriangle, hullCandidates [][]vecmath.Vec3)
}

// Model is everything one Rebuild call produced. It is always returned
// directly, whether or not sinks were also supplied.
type Model struct {
	Submeshes      []Submesh
	Collision      []CollisionTriangle
	HullCandidates [][]vecmath.Vec3
}
