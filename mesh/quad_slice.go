package mesh

import (
	"math"
	"sort"

	"github.com/halfmesh/kernel/vecmath"
)

// QuadSliceFaces treats each quad-like face in faces as a bilinear grid
// and introduces cutsX x cutsY new internal edges, replacing it with
// (cutsX+1)*(cutsY+1) smaller quads. A face qualifies as quad-like if
// detectQuadCorners finds exactly four vertices whose incident edge
// direction turns by more than minCornerAngleDeg, spaced one apart in
// the face's loop (a literal quad, or an otherwise-four-sided polygon
// with no extra vertices along its sides). Faces that don't qualify are
// skipped, not treated as an error, matching spec semantics for
// "otherwise skip".
//
// Returns every new face created, across all input faces that did
// qualify.
func (m *Mesh) QuadSliceFaces(faces []FaceHandle, cutsX, cutsY int, minCornerAngleDeg float64) ([]FaceHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(faces) == 0 {
		return nil, ErrEmpty
	}
	if cutsX < 0 || cutsY < 0 {
		return nil, ErrOutOfRange
	}
	var out []FaceHandle
	for _, f := range faces {
		if !m.topo.IsValidFace(f) {
			return nil, ErrStaleHandle
		}
		created, err := m.quadSliceOneLocked(f, cutsX, cutsY, minCornerAngleDeg)
		if err != nil {
			continue
		}
		out = append(out, created...)
	}
	if len(out) > 0 {
		m.markDirty()
	}
	return out, nil
}

func (m *Mesh) quadSliceOneLocked(f FaceHandle, cutsX, cutsY int, minCornerAngleDeg float64) ([]FaceHandle, error) {
	verts := m.topo.VerticesOfFace(f)
	n := len(verts)
	if n < 4 {
		return nil, ErrNotQuadlike
	}
	pts := make([]vecmath.Vec3, n)
	for i, v := range verts {
		pts[i] = m.position.Get(v.Index())
	}
	corners, ok := detectQuadCorners(pts, minCornerAngleDeg)
	if !ok {
		return nil, ErrNotQuadlike
	}
	for i := 0; i < 4; i++ {
		if (corners[(i+1)%4]-corners[i]+n)%n != 1 {
			return nil, ErrNotQuadlike
		}
	}

	p0, p1, p2, p3 := pts[corners[0]], pts[corners[1]], pts[corners[2]], pts[corners[3]]
	matl := m.materialID.Get(f.Index())

	nx, ny := cutsX+1, cutsY+1
	grid := make([][]VertexHandle, nx+1)
	for i := 0; i <= nx; i++ {
		grid[i] = make([]VertexHandle, ny+1)
	}
	grid[0][0] = verts[corners[0]]
	grid[nx][0] = verts[corners[1]]
	grid[nx][ny] = verts[corners[2]]
	grid[0][ny] = verts[corners[3]]
	for i := 0; i <= nx; i++ {
		u := float64(i) / float64(nx)
		for j := 0; j <= ny; j++ {
			if (i == 0 || i == nx) && (j == 0 || j == ny) {
				continue // corner, already filled from the original loop
			}
			v := float64(j) / float64(ny)
			p := bilinear(p0, p1, p2, p3, u, v)
			nv := m.topo.AddVertex()
			m.position.Set(nv.Index(), p)
			grid[i][j] = nv
		}
	}

	if err := m.topo.RemoveFace(f, true); err != nil {
		return nil, err
	}

	var created []FaceHandle
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			loop := []VertexHandle{grid[i][j], grid[i+1][j], grid[i+1][j+1], grid[i][j+1]}
			nf, err := m.topo.AddFace(loop...)
			if err != nil {
				continue
			}
			m.initFaceLocked(nf)
			m.materialID.Set(nf.Index(), matl)
			created = append(created, nf)
		}
	}
	return created, nil
}

// bilinear evaluates the bilinear patch through p0 (u=0,v=0), p1
// (u=1,v=0), p2 (u=1,v=1), p3 (u=0,v=1) at (u, v).
func bilinear(p0, p1, p2, p3 vecmath.Vec3, u, v float64) vecmath.Vec3 {
	a := p0.Scale((1 - u) * (1 - v))
	b := p1.Scale(u * (1 - v))
	c := p2.Scale(u * v)
	d := p3.Scale((1 - u) * v)
	return a.Add(b).Add(c).Add(d)
}

// detectQuadCorners returns the (up to) four loop indices whose
// incident edge direction turns by more than minAngleDeg, the
// straightest-continuation-breaking test used to find a polygon's
// "real" corners the way a literal quad's four right angles would. It
// reports ok=false if fewer than four such vertices exist.
func detectQuadCorners(pts []vecmath.Vec3, minAngleDeg float64) ([4]int, bool) {
	type candidate struct {
		idx  int
		turn float64
	}
	n := len(pts)
	var cands []candidate
	for i := 0; i < n; i++ {
		prev, cur, next := pts[(i-1+n)%n], pts[i], pts[(i+1)%n]
		inDir := cur.Sub(prev).Normalize()
		outDir := next.Sub(cur).Normalize()
		cosT := inDir.Dot(outDir)
		if cosT > 1 {
			cosT = 1
		} else if cosT < -1 {
			cosT = -1
		}
		turn := math.Acos(cosT) * 180 / math.Pi
		if turn > minAngleDeg {
			cands = append(cands, candidate{idx: i, turn: turn})
		}
	}
	if len(cands) < 4 {
		return [4]int{}, false
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].turn > cands[j].turn })
	top := cands[:4]
	sort.Slice(top, func(i, j int) bool { return top[i].idx < top[j].idx })
	var out [4]int
	for i, c := range top {
		out[i] = c.idx
	}
	return out, true
}
