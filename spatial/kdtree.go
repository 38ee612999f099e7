package spatial

import (
	"errors"
	"math"

	"github.com/halfmesh/kernel/vecmath"
)

// Stop is a sentinel error a RangeSearch callback can return to end the
// search early without propagating an error to the caller.
var Stop = errors.New("spatial: stop")

// axis cycles X -> Y -> Z -> X as depth increases, the usual 3D k-d
// tree split rule.
type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

func (a axis) next() axis { return (a + 1) % 3 }

func (a axis) of(p vecmath.Vec3) float64 {
	switch a {
	case axisX:
		return p.X
	case axisY:
		return p.Y
	default:
		return p.Z
	}
}

type node struct {
	point       vecmath.Vec3
	recordID    int
	left, right int // index into tree.nodes, -1 if absent
}

// Tree is an in-memory k-d tree over 3D points. Its zero value is an
// empty tree. Insertion order affects balance; the tree does not
// rebalance itself, which is adequate for the one-shot point sets the
// mesh kernel builds it from (all of a mesh's live vertex positions).
type Tree struct {
	nodes []node
	root  int
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{root: -1}
}

// Insert adds a point/recordID pair to the tree.
func (t *Tree) Insert(p vecmath.Vec3, recordID int) {
	n := node{point: p, recordID: recordID, left: -1, right: -1}
	idx := len(t.nodes)
	t.nodes = append(t.nodes, n)
	if t.root == -1 {
		t.root = idx
		return
	}
	cur := t.root
	a := axisX
	for {
		if a.of(p) < a.of(t.nodes[cur].point) {
			if t.nodes[cur].left == -1 {
				t.nodes[cur].left = idx
				return
			}
			cur = t.nodes[cur].left
		} else {
			if t.nodes[cur].right == -1 {
				t.nodes[cur].right = idx
				return
			}
			cur = t.nodes[cur].right
		}
		a = a.next()
	}
}

// Len reports the number of points stored in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// RangeSearch calls callback with the recordID of every point within
// radius of center (inclusive). If callback returns Stop the search
// ends early and RangeSearch returns nil; any other error is returned
// immediately and also ends the search.
func (t *Tree) RangeSearch(center vecmath.Vec3, radius float64, callback func(recordID int) error) error {
	if t.root == -1 {
		return nil
	}
	radiusSq := radius * radius
	var recurse func(idx int, a axis) error
	recurse = func(idx int, a axis) error {
		if idx == -1 {
			return nil
		}
		n := &t.nodes[idx]
		if squaredDist(n.point, center) <= radiusSq {
			if err := callback(n.recordID); err != nil {
				return err
			}
		}
		delta := a.of(center) - a.of(n.point)
		near, far := n.left, n.right
		if delta >= 0 {
			near, far = n.right, n.left
		}
		if err := recurse(near, a.next()); err != nil {
			return err
		}
		if delta*delta <= radiusSq {
			if err := recurse(far, a.next()); err != nil {
				return err
			}
		}
		return nil
	}
	if err := recurse(t.root, axisX); err == Stop {
		return nil
	} else if err != nil {
		return err
	}
	return nil
}

// Nearest returns the recordID and distance of the point closest to p.
// It reports ok=false for an empty tree.
func (t *Tree) Nearest(p vecmath.Vec3) (recordID int, dist float64, ok bool) {
	if t.root == -1 {
		return 0, 0, false
	}
	bestIdx := -1
	bestDistSq := 0.0
	var recurse func(idx int, a axis)
	recurse = func(idx int, a axis) {
		if idx == -1 {
			return
		}
		n := &t.nodes[idx]
		d := squaredDist(n.point, p)
		if bestIdx == -1 || d < bestDistSq {
			bestIdx, bestDistSq = idx, d
		}
		delta := a.of(p) - a.of(n.point)
		near, far := n.left, n.right
		if delta >= 0 {
			near, far = n.right, n.left
		}
		recurse(near, a.next())
		if delta*delta < bestDistSq || bestIdx == -1 {
			recurse(far, a.next())
		}
	}
	recurse(t.root, axisX)
	if bestIdx == -1 {
		return 0, 0, false
	}
	return t.nodes[bestIdx].recordID, math.Sqrt(bestDistSq), true
}

func squaredDist(a, b vecmath.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}
