package geometry

import (
	"math"

	"github.com/lixenwraith/lumen/vmath"
)

// TransformKind tags the closed set of supported transforms
type TransformKind uint8

const (
	TransformTranslate TransformKind = iota
	TransformRotateY
	TransformMove
)

// Transform is one element of a transform stack. Transforms map the
// incoming ray into local space and their reverses map the hit point
// and normal back out
type Transform struct {
	Kind TransformKind
	// Offset is the displacement for Translate, or the motion segment
	// for Move (scaled by ray time)
	Offset   vmath.Vec3
	Sin, Cos float64
}

// NewTranslate displaces an object by offset
func NewTranslate(offset vmath.Vec3) Transform {
	return Transform{Kind: TransformTranslate, Offset: offset}
}

// NewRotateY rotates an object around the Y axis by angle degrees
func NewRotateY(angleDegrees float64) Transform {
	radians := vmath.DegreesToRadians(angleDegrees)
	return Transform{
		Kind: TransformRotateY,
		Sin:  math.Sin(radians),
		Cos:  math.Cos(radians),
	}
}

// NewMove translates an object linearly over the ray time range
func NewMove(segment vmath.Vec3) Transform {
	return Transform{Kind: TransformMove, Offset: segment}
}

func rotYWorldToLocal(p vmath.Vec3, sin, cos float64) vmath.Vec3 {
	out := p
	out.X = cos*p.X - sin*p.Z
	out.Z = sin*p.X + cos*p.Z
	return out
}

func rotYLocalToWorld(p vmath.Vec3, sin, cos float64) vmath.Vec3 {
	out := p
	out.X = cos*p.X + sin*p.Z
	out.Z = -sin*p.X + cos*p.Z
	return out
}

// Ray maps a world-space ray into local space
func (tf Transform) Ray(r vmath.Ray) vmath.Ray {
	switch tf.Kind {
	case TransformTranslate:
		r.Orig = r.Orig.Sub(tf.Offset)
	case TransformRotateY:
		r.Orig = rotYWorldToLocal(r.Orig, tf.Sin, tf.Cos)
		r.Dir = rotYWorldToLocal(r.Dir, tf.Sin, tf.Cos)
	case TransformMove:
		r.Orig = r.Orig.Sub(tf.Offset.Scale(r.Time))
	}
	return r
}

// Point maps a world-space point into local space
func (tf Transform) Point(p vmath.Vec3, time float64) vmath.Vec3 {
	switch tf.Kind {
	case TransformTranslate:
		return p.Sub(tf.Offset)
	case TransformRotateY:
		return rotYWorldToLocal(p, tf.Sin, tf.Cos)
	case TransformMove:
		return p.Sub(tf.Offset.Scale(time))
	}
	return p
}

// RevPoint maps a local-space point back to world space
func (tf Transform) RevPoint(p vmath.Vec3, time float64) vmath.Vec3 {
	switch tf.Kind {
	case TransformTranslate:
		return p.Add(tf.Offset)
	case TransformRotateY:
		return rotYLocalToWorld(p, tf.Sin, tf.Cos)
	case TransformMove:
		return p.Add(tf.Offset.Scale(time))
	}
	return p
}

// RevNormal maps a local-space normal back to world space. Only the
// rotation affects directions
func (tf Transform) RevNormal(n vmath.Vec3) vmath.Vec3 {
	if tf.Kind == TransformRotateY {
		return rotYLocalToWorld(n, tf.Sin, tf.Cos)
	}
	return n
}

// BBox maps a local-space bounding box to world space
func (tf Transform) BBox(box AABB) AABB {
	switch tf.Kind {
	case TransformTranslate:
		return box.Shift(tf.Offset)
	case TransformRotateY:
		lo := vmath.Splat(vmath.Infinity)
		hi := vmath.Splat(-vmath.Infinity)
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				for k := 0; k < 2; k++ {
					x := float64(i)*box.X.Max + float64(1-i)*box.X.Min
					y := float64(j)*box.Y.Max + float64(1-j)*box.Y.Min
					z := float64(k)*box.Z.Max + float64(1-k)*box.Z.Min

					tester := rotYLocalToWorld(vmath.V3(x, y, z), tf.Sin, tf.Cos)

					for c := 0; c < 3; c++ {
						lo = lo.SetAxis(c, math.Min(lo.Axis(c), tester.Axis(c)))
						hi = hi.SetAxis(c, math.Max(hi.Axis(c), tester.Axis(c)))
					}
				}
			}
		}
		return AABBFromPoints(lo, hi)
	case TransformMove:
		return Union(box, box.Shift(tf.Offset))
	}
	return box
}
