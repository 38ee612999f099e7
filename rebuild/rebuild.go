package rebuild

import (
	"math"
	"sort"

	"github.com/halfmesh/kernel/mesh"
	"github.com/halfmesh/kernel/polygon"
	"github.com/halfmesh/kernel/vecmath"
)

// Rebuild consumes m's current topology and attribute streams, groups
// faces by (compacted) material id, triangulates each and computes
// smoothed normals, tangents and texcoords, then pushes the result
// through renderSink and collisionSink (either may be nil to skip that
// output) before returning the built Model and transitioning m to
// mesh.Clean.
//
// A face that fails to triangulate (polygon.ErrDegenerate) is skipped
// entirely; within a face that does triangulate, an individual triangle
// whose world-space area collapses to ~0 is dropped but its siblings
// still contribute — Rebuild never raises on a degenerate face.
func Rebuild(m *mesh.Mesh, renderSink IRenderMesh, collisionSink ICollisionSink, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m.CompactMaterials()

	var faces []mesh.FaceHandle
	m.Topology().EachFace(func(f mesh.FaceHandle) { faces = append(faces, f) })

	// Precompute every face's flat normal before classifying any
	// corner: smoothedNormal's fan walk looks up neighboring faces'
	// normals, so they all need to already be known.
	facePts := make(map[mesh.FaceHandle][]vecmath.Vec3, len(faces))
	faceNormal := make(map[mesh.FaceHandle]vecmath.Vec3, len(faces))
	for _, f := range faces {
		pts := m.FaceVertexPositions(f, nil)
		facePts[f] = pts
		faceNormal[f] = polygon.PlaneFit(pts).Normal
	}

	type accum struct {
		materialID int32
		surface    any
		vertices   []Vertex
		indices    []int
		triangles  []Triangle
		uvSamples  []float64
	}
	groups := map[int32]*accum{}
	var order []int32
	var collision []CollisionTriangle
	hullPts := map[int32][]vecmath.Vec3{}

	cosThreshold := m.SmoothingThreshold()

	for _, f := range faces {
		pts := facePts[f]
		tris, err := polygon.Triangulate(pts)
		if err != nil {
			continue
		}

		matID := m.MaterialID(f)
		g, ok := groups[matID]
		if !ok {
			surface, _ := m.MaterialSurface(matID)
			g = &accum{materialID: matID, surface: surface}
			groups[matID] = g
			order = append(order, matID)
		}

		hes := m.HalfEdgesOfFace(f)
		uvs := m.CornerUVs(f)
		params := m.Params(f)
		corners := make([]Vertex, len(pts))
		for i := range pts {
			n := smoothedNormal(m, hes[i], cosThreshold, faceNormal)
			corners[i] = Vertex{
				Position: pts[i],
				Normal:   n,
				Tangent:  faceTangent(n, params.U, params.V),
				Texcoord: uvs[i],
			}
		}

		base := len(g.vertices)
		g.vertices = append(g.vertices, corners...)
		hullPts[matID] = append(hullPts[matID], pts...)

		for _, tri := range tris {
			a, b, c := pts[tri[0]], pts[tri[1]], pts[tri[2]]
			worldArea2 := b.Sub(a).Cross(c.Sub(a)).Len()
			if worldArea2 < cfg.degenerateEps {
				continue
			}
			ia, ib, ic := base+tri[0], base+tri[1], base+tri[2]
			g.indices = append(g.indices, ia, ib, ic)
			g.triangles = append(g.triangles, Triangle{Indices: [3]int{ia, ib, ic}, Face: f})

			uvA, uvB, uvC := uvs[tri[0]], uvs[tri[1]], uvs[tri[2]]
			uvArea2 := absf(uvB.Sub(uvA).Cross(uvC.Sub(uvA)))
			if uvArea2 > cfg.degenerateEps {
				g.uvSamples = append(g.uvSamples, math.Sqrt(worldArea2/uvArea2))
			}

			matByte := byte(matID)
			if matID < 0 {
				matByte = 0xFF
			}
			collision = append(collision, CollisionTriangle{
				Positions:  [3]vecmath.Vec3{a, b, c},
				MaterialID: matByte,
				Face:       f,
			})
		}
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	var submeshes []Submesh
	var hullList [][]vecmath.Vec3
	for _, matID := range order {
		g := groups[matID]
		sm := Submesh{
			MaterialID: g.materialID,
			Surface:    g.surface,
			Vertices:   g.vertices,
			Indices:    g.indices,
			Triangles:  g.triangles,
			Bounds:     boundsOf(g.vertices),
			UVDensity:  percentileFromTop(g.uvSamples, cfg.percentile),
		}
		submeshes = append(submeshes, sm)
		if renderSink != nil {
			renderSink.AddSubmesh(sm)
		}
		hullList = append(hullList, hullPts[matID])
	}
	if collisionSink != nil {
		collisionSink.AddCollision(collision, hullList)
	}

	m.MarkClean()
	return Model{Submeshes: submeshes, Collision: collision, HullCandidates: hullList}
}

func boundsOf(vs []Vertex) vecmath.Bounds {
	b := vecmath.EmptyBounds()
	for _, v := range vs {
		b = b.Extend(v.Position)
	}
	return b
}

// percentileFromTop returns the sample value at frac from the top of
// the sorted distribution (frac=0.10 -> the 10th-percentile-from-top,
// i.e. the 90th percentile from the bottom). Returns 0 for an empty
// sample set.
func percentileFromTop(samples []float64, frac float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	idx := int(float64(len(sorted)) * (1 - frac))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}
