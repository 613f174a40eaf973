package geometry

import (
	"math"

	"github.com/lixenwraith/lumen/vmath"
)

// Sphere is a sphere at Center1 with an optional linear motion over
// the ray time range. A still sphere has a zero Motion vector
type Sphere struct {
	Center1 vmath.Vec3
	Radius  float64
	Motion  vmath.Vec3
}

// Center interpolates the position at the given time, where t=0 yields
// Center1 and t=1 yields Center1+Motion
func (s *Sphere) Center(time float64) vmath.Vec3 {
	return s.Center1.Add(s.Motion.Scale(time))
}

// Hit solves the sphere quadratic and returns the nearest root that
// lies strictly inside rayT
func (s *Sphere) Hit(r vmath.Ray, rayT vmath.Interval) (float64, bool) {
	center := s.Center(r.Time)
	oc := center.Sub(r.Orig)
	a := r.Dir.LengthSquared()
	// Distance from ray origin to sphere center parallel to the ray direction
	ocAlongsideRay := r.Dir.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := ocAlongsideRay*ocAlongsideRay - a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtd := math.Sqrt(discriminant)

	// Find the nearest root that lies in the acceptable range
	root := (ocAlongsideRay - sqrtd) / a
	if !rayT.Surrounds(root) {
		root = (ocAlongsideRay + sqrtd) / a
		if !rayT.Surrounds(root) {
			return 0, false
		}
	}

	return root, true
}

func (s *Sphere) Normal(intersection vmath.Vec3, time float64) vmath.Vec3 {
	return intersection.Sub(s.Center(time)).Scale(1 / s.Radius)
}

// UVs maps a surface point to latitude/longitude coordinates:
// u is the angle around the Y axis from X=-1, v the angle from Y=-1
// to Y=+1, both normalized to [0,1]
func (s *Sphere) UVs(intersection vmath.Vec3, time float64) (u, v float64) {
	normal := s.Normal(intersection, time)

	theta := math.Acos(-normal.Y)
	phi := math.Atan2(-normal.Z, normal.X) + vmath.Pi

	return phi / (2 * vmath.Pi), theta / vmath.Pi
}

// Bounds unions the boxes at both ends of the motion segment
func (s *Sphere) Bounds() AABB {
	rvec := vmath.Splat(s.Radius)
	center2 := s.Center1.Add(s.Motion)
	box1 := AABBFromPoints(s.Center1.Sub(rvec), s.Center1.Add(rvec))
	box2 := AABBFromPoints(center2.Sub(rvec), center2.Add(rvec))
	return Union(box1, box2)
}
