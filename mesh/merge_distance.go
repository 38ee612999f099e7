package mesh

import (
	"math"

	"github.com/halfmesh/kernel/spatial"
	"github.com/halfmesh/kernel/vecmath"
)

// MergeVerticesWithinDistance spatially clusters vs and successively
// welds the closest pair within maxDistance until no pair remains
// within range or maxPasses iterations have run (a hard cap on a
// long-running bulk operator). Merged positions interpolate at t=0.5 when
// averagePositions is true, or snap to the second vertex of each pair
// (t=1.0) otherwise. If preConnect, any two vertices sharing a face but
// no edge are connected first via the same chord-in-polygon rule
// ConnectVertices uses, so a subsequent weld finds a real edge to
// collapse rather than only welding disconnected fans.
//
// Returns the number of vertices removed by merging.
func (m *Mesh) MergeVerticesWithinDistance(vs []VertexHandle, maxDistance float64, preConnect, averagePositions bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(vs) == 0 {
		return 0, ErrEmpty
	}
	if maxDistance < 0 {
		return 0, ErrOutOfRange
	}
	const maxPasses = 10
	t := 0.5
	if !averagePositions {
		t = 1.0
	}

	merged := 0
	for pass := 0; pass < maxPasses; pass++ {
		live := make([]VertexHandle, 0, len(vs))
		for _, v := range vs {
			if m.topo.IsValid(v) {
				live = append(live, v)
			}
		}
		if len(live) < 2 {
			break
		}
		if preConnect {
			m.preConnectWithinDistanceLocked(live, maxDistance)
		}
		// Merge closest-first until the pass runs dry. Pairs that refuse
		// to merge (ErrNonManifold and friends) are excluded for the
		// rest of the pass so they can't stall the scan.
		mergedThisPass := 0
		skip := map[[2]VertexHandle]bool{}
		for {
			a, b, found := m.closestPairWithinDistanceLocked(live, maxDistance, skip)
			if !found {
				break
			}
			if _, err := m.mergeVerticesLerpLocked(a, b, t); err != nil {
				skip[pairKey(a, b)] = true
				continue
			}
			mergedThisPass++
			next := live[:0]
			for _, v := range live {
				if m.topo.IsValid(v) {
					next = append(next, v)
				}
			}
			live = next
		}
		merged += mergedThisPass
		if mergedThisPass == 0 {
			break
		}
	}
	if merged > 0 {
		m.markDirty()
	}
	return merged, nil
}

// mergeVerticesLerpLocked welds b into a (or collapses their shared
// edge, if any), setting the survivor's position to lerp(pos(a),
// pos(b), t). Caller must hold the write lock.
func (m *Mesh) mergeVerticesLerpLocked(a, b VertexHandle, t float64) (VertexHandle, error) {
	pa, pb := m.position.Get(a.Index()), m.position.Get(b.Index())
	var survivor VertexHandle
	var err error
	if e, shared := m.topo.EdgeBetween(a, b); shared {
		h1, h2 := m.topo.HalfEdgesOfEdge(e)
		f1, f2 := m.topo.FaceOf(h1), m.topo.FaceOf(h2)
		if !f1.IsInvalid() && !f2.IsInvalid() && f1 == f2 {
			return VertexHandle{}, ErrNonManifold
		}
		survivor, _, err = m.topo.CollapseEdge(e)
	} else {
		survivor, err = m.topo.MergeVertices(a, b)
	}
	if err != nil {
		return VertexHandle{}, err
	}
	m.position.Set(survivor.Index(), vecmath.Lerp(pa, pb, t))
	return survivor, nil
}

// pairKey returns an order-independent map key for a vertex pair.
func pairKey(a, b VertexHandle) [2]VertexHandle {
	if b.Index() < a.Index() {
		a, b = b, a
	}
	return [2]VertexHandle{a, b}
}

// closestPairWithinDistanceLocked builds a spatial.Tree over vs's
// current positions (a k-d tree split at each inserted point) and returns the
// closest pair of distinct vertices whose distance is within
// maxDistance, ignoring pairs in skip.
func (m *Mesh) closestPairWithinDistanceLocked(vs []VertexHandle, maxDistance float64, skip map[[2]VertexHandle]bool) (a, b VertexHandle, found bool) {
	tree := spatial.New()
	pos := make([]vecmath.Vec3, len(vs))
	for i, v := range vs {
		pos[i] = m.position.Get(v.Index())
		tree.Insert(pos[i], i)
	}
	bestDist := math.Inf(1)
	bestA, bestB := -1, -1
	for i := range vs {
		_ = tree.RangeSearch(pos[i], maxDistance, func(j int) error {
			if j == i || skip[pairKey(vs[i], vs[j])] {
				return nil
			}
			d := pos[i].Sub(pos[j]).Len()
			if d < bestDist {
				bestDist, bestA, bestB = d, i, j
			}
			return nil
		})
	}
	if bestA < 0 {
		return VertexHandle{}, VertexHandle{}, false
	}
	return vs[bestA], vs[bestB], true
}

// preConnectWithinDistanceLocked connects every pair of vs within
// maxDistance that shares a face but no edge, so a later weld pass
// finds a collapsible edge instead of only welding disconnected fans.
func (m *Mesh) preConnectWithinDistanceLocked(vs []VertexHandle, maxDistance float64) {
	tree := spatial.New()
	pos := make([]vecmath.Vec3, len(vs))
	for i, v := range vs {
		pos[i] = m.position.Get(v.Index())
		tree.Insert(pos[i], i)
	}
	for i, v := range vs {
		_ = tree.RangeSearch(pos[i], maxDistance, func(j int) error {
			if j <= i {
				return nil
			}
			w := vs[j]
			if !m.topo.IsValid(v) || !m.topo.IsValid(w) {
				return nil
			}
			if _, shared := m.topo.EdgeBetween(v, w); shared {
				return nil
			}
			_, _, _ = m.splitFaceIfCommonLocked(v, w)
			return nil
		})
	}
}
