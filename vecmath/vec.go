package vecmath

import "github.com/go-gl/mathgl/mgl64"

// Vec2 is a 2D vector — used for texcoords and projected polygon
// points. Field names (X, Y) keep call sites readable in the kernel's
// own terms; arithmetic is delegated to mgl64.Vec2 under the hood.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) mgl() mgl64.Vec2 { return mgl64.Vec2{v.X, v.Y} }

func fromMgl2(m mgl64.Vec2) Vec2 { return Vec2{X: m[0], Y: m[1]} }

// Add returns v+w.
func (v Vec2) Add(w Vec2) Vec2 { return fromMgl2(v.mgl().Add(w.mgl())) }

// Sub returns v-w.
func (v Vec2) Sub(w Vec2) Vec2 { return fromMgl2(v.mgl().Sub(w.mgl())) }

// Scale returns v*s.
func (v Vec2) Scale(s float64) Vec2 { return fromMgl2(v.mgl().Mul(s)) }

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 { return v.mgl().Dot(w.mgl()) }

// Cross returns the scalar (z-component) 2D cross product v x w.
func (v Vec2) Cross(w Vec2) float64 { return v.X*w.Y - v.Y*w.X }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return v.mgl().Len() }

// Vec3 is a 3D vector — used for vertex positions, normals, tangents,
// and texture projection axes.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) mgl() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func fromMgl3(m mgl64.Vec3) Vec3 { return Vec3{X: m[0], Y: m[1], Z: m[2]} }

// Add returns v+w.
func (v Vec3) Add(w Vec3) Vec3 { return fromMgl3(v.mgl().Add(w.mgl())) }

// Sub returns v-w.
func (v Vec3) Sub(w Vec3) Vec3 { return fromMgl3(v.mgl().Sub(w.mgl())) }

// Scale returns v*s.
func (v Vec3) Scale(s float64) Vec3 { return fromMgl3(v.mgl().Mul(s)) }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 { return v.mgl().Dot(w.mgl()) }

// Cross returns the cross product v x w.
func (v Vec3) Cross(w Vec3) Vec3 { return fromMgl3(v.mgl().Cross(w.mgl())) }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return v.mgl().Len() }

// Normalize returns v scaled to unit length. If v is the zero vector
// the zero vector is returned rather than NaN — callers that need
// plane normals add a tiny epsilon to the length first (see
// polygon.PlaneFit) to avoid ever normalizing a true zero vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Lerp returns the linear interpolation between a and b at parameter t
// (t=0 -> a, t=1 -> b), used by collapse_edge and the k-d-tree vertex
// merge to compute merged positions.
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}
