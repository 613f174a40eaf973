package geometry

import (
	"math"

	"github.com/lixenwraith/lumen/vmath"
)

// Box is an axis-aligned box tested as six faces. Each axis only tests
// the face opposing the ray direction; the other one cannot be the
// nearest hit
type Box struct {
	BBox AABB
}

// NewBox spans the box between two opposite corners
func NewBox(a, b vmath.Vec3) Box {
	return Box{BBox: AABBFromPoints(a, b)}
}

func (b *Box) Hit(r vmath.Ray, rayT vmath.Interval) (float64, bool) {
	best := 0.0
	didHit := false

	if t, ok := hitSide(b.BBox.X, b.BBox.Z, b.BBox.Y, 2, 1, r.Dir.X, r.Orig.X, r, rayT); ok {
		best, didHit = t, true
		rayT.Max = t
	}
	if t, ok := hitSide(b.BBox.Y, b.BBox.X, b.BBox.Z, 0, 2, r.Dir.Y, r.Orig.Y, r, rayT); ok {
		best, didHit = t, true
		rayT.Max = t
	}
	if t, ok := hitSide(b.BBox.Z, b.BBox.Y, b.BBox.X, 1, 0, r.Dir.Z, r.Orig.Z, r, rayT); ok {
		best, didHit = t, true
	}

	return best, didHit
}

func hitSide(ax, axU, axV vmath.Interval, axUIdx, axVIdx int, dir, orig float64, r vmath.Ray, rayT vmath.Interval) (float64, bool) {
	// No hit if the ray is parallel to the plane
	if math.Abs(dir) < 1e-8 {
		return 0, false
	}

	var d, normalDir float64
	// Only test the face that opposes the ray direction,
	// the other one is going to be missed
	if dir > 0 {
		d = ax.Min
		normalDir = 1
	} else {
		d = ax.Max
		normalDir = -1
	}

	t := (d - orig) / dir
	if !rayT.Contains(t) {
		return 0, false
	}

	intersection := r.At(t)
	alpha, beta := sideUVs(normalDir, axU, axV, axUIdx, axVIdx, intersection)

	if alpha < 0 || 1 < alpha || beta < 0 || 1 < beta {
		return 0, false
	}

	return t, true
}

func sideUVs(normalDir float64, axU, axV vmath.Interval, axUIdx, axVIdx int, intersection vmath.Vec3) (u, v float64) {
	betaDistance := axV.Min
	if normalDir > 0 {
		betaDistance = axV.Max
	}
	invUMag := 1 / axU.Size()
	invVMag := 1 / axV.Size()
	u = invUMag * (intersection.Axis(axUIdx) - axU.Min)
	v = -normalDir * invVMag * (intersection.Axis(axVIdx) - betaDistance)
	return u, v
}

func (b *Box) Normal(intersection vmath.Vec3) vmath.Vec3 {
	return b.BBox.Normal(intersection)
}

func (b *Box) UVs(intersection vmath.Vec3) (u, v float64) {
	return b.BBox.UVs(intersection)
}

func (b *Box) Bounds() AABB {
	return b.BBox
}
