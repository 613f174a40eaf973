package geometry

import (
	"github.com/lixenwraith/lumen/vmath"
)

// AABB is an axis-aligned box stored as one interval per axis
type AABB struct {
	X, Y, Z vmath.Interval
}

// EmptyAABB has every axis reversed so that a union with any box
// yields that box
var EmptyAABB = AABB{
	X: vmath.EmptyInterval,
	Y: vmath.EmptyInterval,
	Z: vmath.EmptyInterval,
}

// AABBFromPoints builds the box spanning the two corners a and b
func AABBFromPoints(a, b vmath.Vec3) AABB {
	return AABB{
		X: axisSpan(a.X, b.X),
		Y: axisSpan(a.Y, b.Y),
		Z: axisSpan(a.Z, b.Z),
	}
}

func axisSpan(a, b float64) vmath.Interval {
	if a <= b {
		return vmath.Interval{Min: a, Max: b}
	}
	return vmath.Interval{Min: b, Max: a}
}

// Union returns the smallest box enclosing both operands
func Union(a, b AABB) AABB {
	return AABB{
		X: unionInterval(a.X, b.X),
		Y: unionInterval(a.Y, b.Y),
		Z: unionInterval(a.Z, b.Z),
	}
}

func unionInterval(a, b vmath.Interval) vmath.Interval {
	out := a
	if b.Min < out.Min {
		out.Min = b.Min
	}
	if b.Max > out.Max {
		out.Max = b.Max
	}
	return out
}

// AxisInterval returns the interval for axis i (0=X, 1=Y, 2=Z)
func (b AABB) AxisInterval(i int) vmath.Interval {
	switch i {
	case 0:
		return b.X
	case 1:
		return b.Y
	default:
		return b.Z
	}
}

// LongestAxis returns the index of the widest axis
func (b AABB) LongestAxis() int {
	dx, dy, dz := b.X.Size(), b.Y.Size(), b.Z.Size()
	if dx > dy {
		if dx > dz {
			return 0
		}
		return 2
	}
	if dy > dz {
		return 1
	}
	return 2
}

// Shift returns the box translated by offset
func (b AABB) Shift(offset vmath.Vec3) AABB {
	return AABB{
		X: vmath.Interval{Min: b.X.Min + offset.X, Max: b.X.Max + offset.X},
		Y: vmath.Interval{Min: b.Y.Min + offset.Y, Max: b.Y.Max + offset.Y},
		Z: vmath.Interval{Min: b.Z.Min + offset.Z, Max: b.Z.Max + offset.Z},
	}
}

// Traverse slab-tests the ray against all three axes in one pass and
// returns the entry/exit interval along the ray. The interval is empty
// on a miss. The three axes are unrolled together so the compiler can
// keep the whole test in registers; the semantics are exactly the
// per-axis scalar reduction
func (b AABB) Traverse(r vmath.Ray) vmath.Interval {
	t0x := (b.X.Min - r.Orig.X) / r.Dir.X
	t1x := (b.X.Max - r.Orig.X) / r.Dir.X
	t0y := (b.Y.Min - r.Orig.Y) / r.Dir.Y
	t1y := (b.Y.Max - r.Orig.Y) / r.Dir.Y
	t0z := (b.Z.Min - r.Orig.Z) / r.Dir.Z
	t1z := (b.Z.Max - r.Orig.Z) / r.Dir.Z

	if t0x > t1x {
		t0x, t1x = t1x, t0x
	}
	if t0y > t1y {
		t0y, t1y = t1y, t0y
	}
	if t0z > t1z {
		t0z, t1z = t1z, t0z
	}

	tmin, tmax := t0x, t1x
	if t0y > tmin {
		tmin = t0y
	}
	if t1y < tmax {
		tmax = t1y
	}
	if t0z > tmin {
		tmin = t0z
	}
	if t1z < tmax {
		tmax = t1z
	}
	return vmath.Interval{Min: tmin, Max: tmax}
}

// Hit returns the entry parameter, sign-flipped on a miss so callers
// can chain branchlessly on the sign
func (b AABB) Hit(r vmath.Ray) float64 {
	intv := b.Traverse(r)
	res := intv.Min
	if intv.IsEmpty() {
		return -res
	}
	return res
}

// HitWithin reports whether the ray crosses the box inside rayT
func (b AABB) HitWithin(r vmath.Ray, rayT vmath.Interval) bool {
	intv := b.Traverse(r)
	if rayT.Min > intv.Min {
		intv.Min = rayT.Min
	}
	if rayT.Max < intv.Max {
		intv.Max = rayT.Max
	}
	return !intv.IsEmpty()
}

// Normal returns the outward axis normal of the face containing the
// intersection point. The point is assumed to lie on the surface
func (b AABB) Normal(intersection vmath.Vec3) vmath.Vec3 {
	for axis := 0; axis < 3; axis++ {
		intv := b.AxisInterval(axis)
		x := intersection.Axis(axis)
		if intv.AtBorder(x) {
			sign := 1.0
			if abs(x-intv.Min) < abs(x-intv.Max) {
				sign = -1
			}
			return vmath.Vec3{}.SetAxis(axis, sign)
		}
	}
	return vmath.Vec3{}
}

// UVs projects a surface point onto the face that contains it.
// The point is assumed to lie within the box bounds
func (b AABB) UVs(intersection vmath.Vec3) (u, v float64) {
	const eps = 1e-8
	for axis := 0; axis < 3; axis++ {
		uaxis := (axis + 2) % 3
		vaxis := (axis + 1) % 3

		intv := b.AxisInterval(axis)
		uintv := b.AxisInterval(uaxis)
		vintv := b.AxisInterval(vaxis)

		var betaDistance float64
		switch {
		case abs(intersection.Axis(axis)-intv.Min) < eps:
			betaDistance = vintv.Max
		case abs(intersection.Axis(axis)-intv.Max) < eps:
			betaDistance = vintv.Min
		default:
			continue
		}
		invUMag := 1 / uintv.Size()
		invVMag := 1 / vintv.Size()
		u = invUMag * (intersection.Axis(uaxis) - uintv.Min)
		v = -invVMag * (intersection.Axis(vaxis) - betaDistance)
		return u, v
	}
	return 0, 0
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
