package geometry

import (
	"math"

	"github.com/lixenwraith/lumen/vmath"
)

// Quad is a general parallelogram: corner Q plus edge vectors U, V
type Quad struct {
	Q, U, V vmath.Vec3
}

func (q *Quad) Hit(r vmath.Ray, rayT vmath.Interval) (float64, bool) {
	n := q.U.Cross(q.V)
	normal := n.Unit()
	d := normal.Dot(q.Q)
	denom := normal.Dot(r.Dir)

	// No hit if the ray is parallel to the plane
	if math.Abs(denom) < 1e-8 {
		return 0, false
	}

	t := (d - normal.Dot(r.Orig)) / denom
	if !rayT.Contains(t) {
		return 0, false
	}

	u, v := q.UVs(r.At(t))
	if !isInterior(u, v) {
		return 0, false
	}

	return t, true
}

func (q *Quad) Normal() vmath.Vec3 {
	return q.U.Cross(q.V).Unit()
}

// UVs solves the plane coordinates of the intersection by projecting
// onto the (non-orthogonal) edge basis:
// (a×b)⋅(c×d) = (a⋅c)(b⋅d) - (a⋅d)(b⋅c)
func (q *Quad) UVs(intersection vmath.Vec3) (u, v float64) {
	pq := intersection.Sub(q.Q)
	uSquared := q.U.LengthSquared()
	vSquared := q.V.LengthSquared()
	dotUV := q.U.Dot(q.V)
	crossLenSq := uSquared*vSquared - dotUV*dotUV
	dotUQ := q.U.Dot(pq)
	dotVQ := q.V.Dot(pq)
	u = (dotUQ*vSquared - dotUV*dotVQ) / crossLenSq
	v = (uSquared*dotVQ - dotUQ*dotUV) / crossLenSq
	return u, v
}

func (q *Quad) Bounds() AABB {
	d1 := AABBFromPoints(q.Q, q.Q.Add(q.U).Add(q.V))
	d2 := AABBFromPoints(q.Q.Add(q.U), q.Q.Add(q.V))
	return Union(d1, d2)
}
