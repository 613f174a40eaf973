package geometry

import (
	"math"

	"github.com/lixenwraith/lumen/vmath"
)

// ConstantMedium is an isotropic participating medium of constant
// density filling a boundary primitive. Hits inside the boundary are
// stochastic with mean free path 1/density
type ConstantMedium struct {
	Boundary *Primitive
	// NegInvDensity is -1/density; scaling ln(U) by it draws an
	// exponentially distributed scatter distance
	NegInvDensity float64
	// Albedo is the medium's solid response color
	Albedo vmath.Vec3
}

func NewConstantMedium(boundary *Primitive, density float64, albedo vmath.Vec3) ConstantMedium {
	return ConstantMedium{
		Boundary:      boundary,
		NegInvDensity: -1 / density,
		Albedo:        albedo,
	}
}

// Voidspace never disperses: its zero density pushes every sampled
// scatter distance to infinity
var Voidspace = ConstantMedium{NegInvDensity: math.Inf(-1), Albedo: vmath.V3(1, 1, 1)}

// SampleHit draws a stochastic scatter distance for the ray inside the
// boundary, clipped to maxT. Returns the scatter parameter t along the
// ray and whether the medium fired
func (m *ConstantMedium) SampleHit(r vmath.Ray, maxT float64, rng *vmath.Rand) (float64, bool) {
	// Entry point. The camera may sit inside the boundary, so the
	// search starts from the whole line, not from zero
	t1, ok := m.Boundary.Hit(r, vmath.UniverseInterval)
	if !ok {
		return 0, false
	}

	// Exit point. Boxes only report faces that oppose the ray, so the
	// exit is taken as the entry of the reversed ray over the whole line
	rev := vmath.Ray{Orig: r.Orig, Dir: r.Dir.Neg(), Time: r.Time}
	s, ok := m.Boundary.Hit(rev, vmath.UniverseInterval)
	if !ok {
		return 0, false
	}
	t2 := -s

	if t1 < 0 {
		t1 = 0
	}
	if t2 > maxT {
		t2 = maxT
	}
	if t1 >= t2 {
		return 0, false
	}

	rayLength := r.Dir.Length()
	distanceInsideBoundary := (t2 - t1) * rayLength
	hitDistance := m.NegInvDensity * math.Log(rng.Float())

	if hitDistance > distanceInsideBoundary {
		return 0, false
	}

	return t1 + hitDistance/rayLength, true
}
