package geometry

import (
	"math"

	"github.com/lixenwraith/lumen/vmath"
)

// AAQuad is a quad aligned to one of the coordinate planes: corner Q,
// plane axis index, and the signed spans U, V along the other two axes
type AAQuad struct {
	Q    vmath.Vec3
	U, V float64
	Axis int
}

func (q *AAQuad) uaxis() int { return (q.Axis + 1) % 3 }
func (q *AAQuad) vaxis() int { return (q.Axis + 2) % 3 }

func (q *AAQuad) Hit(r vmath.Ray, rayT vmath.Interval) (float64, bool) {
	// No hit if the ray is parallel to the plane
	if math.Abs(r.Dir.Axis(q.Axis)) < 1e-8 {
		return 0, false
	}

	t := (q.Q.Axis(q.Axis) - r.Orig.Axis(q.Axis)) / r.Dir.Axis(q.Axis)
	if !rayT.Contains(t) {
		return 0, false
	}

	u, v := q.UVs(r.At(t))
	if !isInterior(u, v) {
		return 0, false
	}

	return t, true
}

func (q *AAQuad) Normal() vmath.Vec3 {
	return vmath.Vec3{}.SetAxis(q.Axis, 1)
}

func (q *AAQuad) UVs(intersection vmath.Vec3) (u, v float64) {
	pq := intersection.Sub(q.Q)
	return pq.Axis(q.uaxis()) / q.U, pq.Axis(q.vaxis()) / q.V
}

// Bounds computes the box of all four vertices
func (q *AAQuad) Bounds() AABB {
	var u, v vmath.Vec3
	u = u.SetAxis(q.uaxis(), q.U)
	v = v.SetAxis(q.vaxis(), q.V)
	d1 := AABBFromPoints(q.Q, q.Q.Add(u).Add(v))
	d2 := AABBFromPoints(q.Q.Add(u), q.Q.Add(v))
	return Union(d1, d2)
}

func isInterior(a, b float64) bool {
	return vmath.UnitInterval.Contains(a) && vmath.UnitInterval.Contains(b)
}
