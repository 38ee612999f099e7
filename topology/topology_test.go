package topology_test

import (
	"testing"

	"github.com/halfmesh/kernel/topology"
	"github.com/stretchr/testify/require"
)

func buildTriangle(t *testing.T) (*topology.Topology, [3]topology.VertexHandle, topology.FaceHandle) {
	t.Helper()
	topo := topology.New()
	a, b, c := topo.AddVertex(), topo.AddVertex(), topo.AddVertex()
	f, err := topo.AddFace(a, b, c)
	require.NoError(t, err)
	return topo, [3]topology.VertexHandle{a, b, c}, f
}

func TestAddFace_Triangle(t *testing.T) {
	topo, vs, f := buildTriangle(t)
	require.True(t, topo.IsValidFace(f))
	require.Equal(t, 3, topo.FaceVertexCount(f))
	require.ElementsMatch(t, vs[:], topo.VerticesOfFace(f))
	require.Equal(t, 3, topo.VertexCount())
	require.Equal(t, 3, topo.EdgeCount())
	require.Equal(t, 1, topo.FaceCount())
}

func TestAddFace_RejectsTooFewVertices(t *testing.T) {
	topo := topology.New()
	a, b := topo.AddVertex(), topo.AddVertex()
	_, err := topo.AddFace(a, b)
	require.ErrorIs(t, err, topology.ErrBadPolygon)
}

func TestAddFace_RejectsRepeatedVertex(t *testing.T) {
	topo := topology.New()
	a, b := topo.AddVertex(), topo.AddVertex()
	_, err := topo.AddFace(a, b, a)
	require.ErrorIs(t, err, topology.ErrBadPolygon)
}

func TestAddFace_SharesEdgeWithNeighbor(t *testing.T) {
	topo := topology.New()
	a, b, c, d := topo.AddVertex(), topo.AddVertex(), topo.AddVertex(), topo.AddVertex()
	f1, err := topo.AddFace(a, b, c)
	require.NoError(t, err)
	f2, err := topo.AddFace(a, c, d)
	require.NoError(t, err)
	require.NotEqual(t, f1, f2)

	e, ok := topo.EdgeBetween(a, c)
	require.True(t, ok)
	fa, fb := topo.FacesOfEdge(e)
	require.ElementsMatch(t, []topology.FaceHandle{f1, f2}, []topology.FaceHandle{fa, fb})
}

func TestAddFace_RejectsThirdFaceOnSameEdge(t *testing.T) {
	topo := topology.New()
	a, b, c, d := topo.AddVertex(), topo.AddVertex(), topo.AddVertex(), topo.AddVertex()
	_, err := topo.AddFace(a, b, c)
	require.NoError(t, err)
	_, err = topo.AddFace(b, a, d) // second face on a-b, from its open side
	require.NoError(t, err)
	e := topo.AddVertex()
	_, err = topo.AddFace(a, b, e) // a third face on a-b
	require.Error(t, err)
}

func TestTwinIsInvolution(t *testing.T) {
	topo, _, f := buildTriangle(t)
	for _, h := range topo.HalfEdgesOfFace(f) {
		require.Equal(t, h, topo.Twin(topo.Twin(h)))
	}
}

func TestFaceLoopClosure(t *testing.T) {
	topo, _, f := buildTriangle(t)
	start := topo.EntryHalfEdge(f)
	cur := start
	count := 0
	for {
		cur = topo.Next(cur)
		count++
		if cur == start {
			break
		}
		require.Less(t, count, 10)
	}
	require.Equal(t, 3, count)
}

func TestRemoveFace_OpensBoundary(t *testing.T) {
	topo, _, f := buildTriangle(t)
	require.NoError(t, topo.RemoveFace(f, true))
	require.False(t, topo.IsValidFace(f))
	require.Equal(t, 3, topo.VertexCount())
	require.Equal(t, 3, topo.EdgeCount())
}

func TestRemoveFace_DropsVerticesWhenRequested(t *testing.T) {
	topo, _, f := buildTriangle(t)
	require.NoError(t, topo.RemoveFace(f, false))
	require.Equal(t, 0, topo.VertexCount())
	require.Equal(t, 0, topo.EdgeCount())
}

func TestCollapseEdge_MergesEndpoints(t *testing.T) {
	topo, vs, _ := buildTriangle(t)
	e, ok := topo.EdgeBetween(vs[0], vs[1])
	require.True(t, ok)
	survivor, replaced, err := topo.CollapseEdge(e)
	require.NoError(t, err)
	require.Empty(t, replaced)
	require.True(t, survivor == vs[0] || survivor == vs[1])
	require.Equal(t, 2, topo.VertexCount())
}

// buildTriangleFan builds three triangles sharing a central vertex o,
// closing into a fan: (o,p0,p1), (o,p1,p2), (o,p2,p0).
func buildTriangleFan(t *testing.T) (topo *topology.Topology, o topology.VertexHandle, p [3]topology.VertexHandle) {
	t.Helper()
	topo = topology.New()
	o = topo.AddVertex()
	p = [3]topology.VertexHandle{topo.AddVertex(), topo.AddVertex(), topo.AddVertex()}
	_, err := topo.AddFace(o, p[0], p[1])
	require.NoError(t, err)
	_, err = topo.AddFace(o, p[1], p[2])
	require.NoError(t, err)
	_, err = topo.AddFace(o, p[2], p[0])
	require.NoError(t, err)
	return topo, o, p
}

func TestCollapseEdge_IdentifiesDuplicateEdgeOnDegeneratingFace(t *testing.T) {
	topo, o, p := buildTriangleFan(t)
	e, ok := topo.EdgeBetween(o, p[0])
	require.True(t, ok)
	require.Equal(t, 4, topo.VertexCount())
	require.Equal(t, 3, topo.FaceCount())

	survivor, replaced, err := topo.CollapseEdge(e)
	require.NoError(t, err)
	require.Equal(t, 3, topo.VertexCount())
	require.NotEmpty(t, replaced)

	// p[1] and p[2] should each now have exactly one edge to survivor.
	for _, w := range []topology.VertexHandle{p[1], p[2]} {
		count := 0
		for _, ee := range topo.EdgesOfVertex(survivor) {
			a, b := topo.VerticesOfEdge(ee)
			if a == w || b == w {
				count++
			}
		}
		require.Equal(t, 1, count)
	}
}

func TestCollapseEdge_RejectsIdentificationOfTwoFacedEdges(t *testing.T) {
	topo := topology.New()
	a, b, c, d := topo.AddVertex(), topo.AddVertex(), topo.AddVertex(), topo.AddVertex()
	_, err := topo.AddFace(a, b, c) // f1, borders e=a-b
	require.NoError(t, err)
	_, err = topo.AddFace(b, a, d) // f2, borders e=a-b on the other side
	require.NoError(t, err)

	w := topo.AddVertex()
	_, err = topo.AddFace(a, c, w) // reuses a-c (shared with f1), new edges c-w, w-a
	require.NoError(t, err)
	_, err = topo.AddFace(b, d, w) // reuses b-d (shared with f2), new edges d-w, w-b
	require.NoError(t, err)

	e, ok := topo.EdgeBetween(a, b)
	require.True(t, ok)
	beforeVerts := topo.VertexCount()
	_, _, err = topo.CollapseEdge(e)
	require.ErrorIs(t, err, topology.ErrWouldIdentifyFacedEdge)
	require.Equal(t, beforeVerts, topo.VertexCount())
	require.True(t, topo.IsValidEdge(e))
}

func TestAddVertexToEdge_SplitsBothFaces(t *testing.T) {
	topo := topology.New()
	a, b, c, d := topo.AddVertex(), topo.AddVertex(), topo.AddVertex(), topo.AddVertex()
	_, err := topo.AddFace(a, b, c)
	require.NoError(t, err)
	_, err = topo.AddFace(a, c, d)
	require.NoError(t, err)

	e, ok := topo.EdgeBetween(a, c)
	require.True(t, ok)
	nv, err := topo.AddVertexToEdge(e)
	require.NoError(t, err)
	require.Equal(t, 5, topo.VertexCount())
	require.NotEqual(t, topology.VertexHandle{}, nv)
}

func TestFlipAllFaces_ReversesWinding(t *testing.T) {
	topo, _, f := buildTriangle(t)
	before := topo.VerticesOfFace(f)
	topo.FlipAllFaces()
	after := topo.VerticesOfFace(f)
	require.Equal(t, before[0], after[len(after)-1])
	require.Equal(t, before[1], after[1])
}

func TestBridgeEdges_JoinsTwoOpenEdges(t *testing.T) {
	topo := topology.New()
	a, b, c, d := topo.AddVertex(), topo.AddVertex(), topo.AddVertex(), topo.AddVertex()
	_, err := topo.AddFace(a, b, c, d)
	require.NoError(t, err)

	e1, f1, g1, h1 := topo.AddVertex(), topo.AddVertex(), topo.AddVertex(), topo.AddVertex()
	_, err = topo.AddFace(e1, f1, g1, h1)
	require.NoError(t, err)

	eAB, _ := topo.EdgeBetween(a, b)
	eEF, _ := topo.EdgeBetween(e1, f1)
	bridge, err := topo.BridgeEdges(eAB, eEF)
	require.NoError(t, err)
	require.Equal(t, 4, topo.FaceVertexCount(bridge))
}

func TestFindEdgeIslands_SeparatesDisjointGeometry(t *testing.T) {
	topo, _, _ := buildTriangle(t)
	x, y, z := topo.AddVertex(), topo.AddVertex(), topo.AddVertex()
	_, err := topo.AddFace(x, y, z)
	require.NoError(t, err)

	islands := topo.FindEdgeIslands()
	require.Len(t, islands, 2)
}

func TestClassifyEdgeListConnectivity(t *testing.T) {
	topo := topology.New()
	a, b, c := topo.AddVertex(), topo.AddVertex(), topo.AddVertex()
	f, err := topo.AddFace(a, b, c)
	require.NoError(t, err)
	hes := topo.HalfEdgesOfFace(f)
	all := make([]topology.EdgeHandle, len(hes))
	for i, h := range hes {
		all[i] = topo.EdgeOf(h)
	}
	require.Equal(t, topology.ClassClosedLoop, topo.ClassifyEdgeListConnectivity(all))
	require.Equal(t, topology.ClassOpenChain, topo.ClassifyEdgeListConnectivity(all[:2]))
}

func TestSplitEdges_TearsDiagonalApart(t *testing.T) {
	// Tearing the diagonal of two triangles cuts the surface from
	// boundary to boundary: both endpoints duplicate and the triangles
	// come fully apart.
	topo := topology.New()
	a, b, c, d := topo.AddVertex(), topo.AddVertex(), topo.AddVertex(), topo.AddVertex()
	_, err := topo.AddFace(a, b, c)
	require.NoError(t, err)
	_, err = topo.AddFace(a, c, d)
	require.NoError(t, err)

	e, ok := topo.EdgeBetween(a, c)
	require.True(t, ok)
	splits, err := topo.SplitEdges([]topology.EdgeHandle{e})
	require.NoError(t, err)

	require.Len(t, splits, 2)
	olds := []topology.VertexHandle{splits[0].Old, splits[1].Old}
	require.ElementsMatch(t, []topology.VertexHandle{a, c}, olds)
	require.Equal(t, 6, topo.VertexCount())
	require.Equal(t, 6, topo.EdgeCount())
	require.Equal(t, 2, topo.FaceCount())
	require.Len(t, topo.FindEdgeIslands(), 2)

	// Every edge, seam copies included, now borders exactly one face.
	topo.EachEdge(func(ee topology.EdgeHandle) {
		f1, f2 := topo.FacesOfEdge(ee)
		require.True(t, f1.IsInvalid() != f2.IsInvalid())
	})
}

func TestSplitEdges_SeamThroughInteriorVertexDuplicatesIt(t *testing.T) {
	// Four triangles fanned around o; tearing two opposite spokes cuts
	// the disk along a diameter: the center and both rim endpoints of
	// the seam split in two.
	topo := topology.New()
	o := topo.AddVertex()
	p := [4]topology.VertexHandle{topo.AddVertex(), topo.AddVertex(), topo.AddVertex(), topo.AddVertex()}
	for i := 0; i < 4; i++ {
		_, err := topo.AddFace(o, p[i], p[(i+1)%4])
		require.NoError(t, err)
	}
	e1, ok := topo.EdgeBetween(o, p[0])
	require.True(t, ok)
	e2, ok := topo.EdgeBetween(o, p[2])
	require.True(t, ok)

	splits, err := topo.SplitEdges([]topology.EdgeHandle{e1, e2})
	require.NoError(t, err)
	require.Len(t, splits, 3)
	olds := make([]topology.VertexHandle, len(splits))
	for i, s := range splits {
		olds[i] = s.Old
		require.True(t, topo.IsValid(s.New))
	}
	require.ElementsMatch(t, []topology.VertexHandle{o, p[0], p[2]}, olds)
	require.Equal(t, 8, topo.VertexCount())
	require.Equal(t, 4, topo.FaceCount())
	require.Len(t, topo.FindEdgeIslands(), 2)
}

func TestMergeEdges_ZipsTornSeamBackTogether(t *testing.T) {
	topo := topology.New()
	a, b, c, d := topo.AddVertex(), topo.AddVertex(), topo.AddVertex(), topo.AddVertex()
	_, err := topo.AddFace(a, b, c)
	require.NoError(t, err)
	_, err = topo.AddFace(a, c, d)
	require.NoError(t, err)

	e, ok := topo.EdgeBetween(a, c)
	require.True(t, ok)
	splits, err := topo.SplitEdges([]topology.EdgeHandle{e})
	require.NoError(t, err)
	require.Equal(t, 6, topo.EdgeCount())

	// Find the two co-located one-faced seam copies (their endpoints
	// are the torn originals or their duplicates) and zip them; the
	// mesh is watertight again.
	group := map[topology.VertexHandle]bool{a: true, c: true}
	for _, s := range splits {
		group[s.New] = true
	}
	var seam []topology.EdgeHandle
	topo.EachEdge(func(ee topology.EdgeHandle) {
		x, y := topo.VerticesOfEdge(ee)
		if group[x] && group[y] {
			seam = append(seam, ee)
		}
	})
	require.Len(t, seam, 2)

	v1, v2, err := topo.MergeEdges(seam[0], seam[1])
	require.NoError(t, err)
	require.ElementsMatch(t, []topology.VertexHandle{a, c}, []topology.VertexHandle{v1, v2})
	require.Equal(t, 4, topo.VertexCount())
	require.Equal(t, 5, topo.EdgeCount())
	require.Equal(t, 2, topo.FaceCount())

	shared, ok := topo.EdgeBetween(a, c)
	require.True(t, ok)
	f1, f2 := topo.FacesOfEdge(shared)
	require.False(t, f1.IsInvalid())
	require.False(t, f2.IsInvalid())
}

func TestMergeEdges_RejectsTwoFacedEdge(t *testing.T) {
	topo := topology.New()
	a, b, c, d := topo.AddVertex(), topo.AddVertex(), topo.AddVertex(), topo.AddVertex()
	_, err := topo.AddFace(a, b, c)
	require.NoError(t, err)
	_, err = topo.AddFace(a, c, d)
	require.NoError(t, err)
	interior, ok := topo.EdgeBetween(a, c)
	require.True(t, ok)
	boundary, ok := topo.EdgeBetween(a, b)
	require.True(t, ok)
	_, _, err = topo.MergeEdges(interior, boundary)
	require.ErrorIs(t, err, topology.ErrNonManifold)
}

func TestMergeVertices_RefusesDoublyFacedDuplicate(t *testing.T) {
	// Two triangles sharing only vertex w: welding their far corners
	// would identify two face-bearing edges into one overloaded edge.
	topo := topology.New()
	w := topo.AddVertex()
	a, b := topo.AddVertex(), topo.AddVertex()
	c, d := topo.AddVertex(), topo.AddVertex()
	_, err := topo.AddFace(w, a, b)
	require.NoError(t, err)
	_, err = topo.AddFace(w, c, d)
	require.NoError(t, err)

	before := topo.VertexCount()
	_, err = topo.MergeVertices(a, c)
	require.ErrorIs(t, err, topology.ErrNonManifold)
	require.Equal(t, before, topo.VertexCount())
}

func TestBridgeEdges_SharedVertexMakesTriangle(t *testing.T) {
	topo := topology.New()
	a, b, c := topo.AddVertex(), topo.AddVertex(), topo.AddVertex()
	x := topo.AddVertex()
	_, err := topo.AddFace(a, b, x)
	require.NoError(t, err)
	_, err = topo.AddFace(b, c, x)
	require.NoError(t, err)

	eAB, ok := topo.EdgeBetween(a, b)
	require.True(t, ok)
	eBC, ok := topo.EdgeBetween(b, c)
	require.True(t, ok)
	f, err := topo.BridgeEdges(eAB, eBC)
	require.NoError(t, err)
	require.Equal(t, 3, topo.FaceVertexCount(f))
}

func TestFaceBetween_FindsSharedFace(t *testing.T) {
	topo, vs, f := buildTriangle(t)
	eAB, ok := topo.EdgeBetween(vs[0], vs[1])
	require.True(t, ok)
	eBC, ok := topo.EdgeBetween(vs[1], vs[2])
	require.True(t, ok)
	got, ok := topo.FaceBetween(eAB, eBC)
	require.True(t, ok)
	require.Equal(t, f, got)

	x, y, z := topo.AddVertex(), topo.AddVertex(), topo.AddVertex()
	_, err := topo.AddFace(x, y, z)
	require.NoError(t, err)
	eXY, ok := topo.EdgeBetween(x, y)
	require.True(t, ok)
	_, ok = topo.FaceBetween(eAB, eXY)
	require.False(t, ok)
}
