// Package material implements the closed set of surface responses:
// Lambertian, metal, dielectric, isotropic and diffuse light.
package material

import (
	"math"

	"github.com/lixenwraith/lumen/vmath"
)

// Kind tags the material variants
type Kind uint8

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
	KindIsotropic
	KindDiffuseLight
)

// Material pairs a variant tag with its scalar parameter. Color comes
// from the texture paired with the primitive, not from the material
type Material struct {
	Kind Kind
	// Fuzz is the metal perturbation radius
	Fuzz float64
	// RefractionIndex is the dielectric index of refraction
	RefractionIndex float64
}

func NewLambertian() Material {
	return Material{Kind: KindLambertian}
}

func NewMetal(fuzz float64) Material {
	return Material{Kind: KindMetal, Fuzz: fuzz}
}

func NewDielectric(refractionIndex float64) Material {
	return Material{Kind: KindDielectric, RefractionIndex: refractionIndex}
}

func NewIsotropic() Material {
	return Material{Kind: KindIsotropic}
}

func NewDiffuseLight() Material {
	return Material{Kind: KindDiffuseLight}
}

// Reflectance is Schlick's approximation for dielectric Fresnel
func Reflectance(cosine, refractionIndex float64) float64 {
	r0 := (1 - refractionIndex) / (1 + refractionIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// Reflect mirrors v about the normal n
func Reflect(v, n vmath.Vec3) vmath.Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Refract bends the unit vector uv through a surface with unit normal
// n and relative index etaiOverEtat
func Refract(uv, n vmath.Vec3, etaiOverEtat float64) vmath.Vec3 {
	cosTheta := -uv.Dot(n)
	rOutPerp := uv.Add(n.Scale(cosTheta)).Scale(etaiOverEtat)
	rOutParallel := n.Scale(-math.Sqrt(math.Abs(1 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Scatter samples an outgoing direction for an incoming ray direction
// against the outward normal. It reports false when the sample is
// absorbed (metal scattering below the horizon). Diffuse lights never
// scatter; the tracer handles them before calling here
func (m Material) Scatter(rng *vmath.Rand, inDir, normal vmath.Vec3, frontFace bool) (vmath.Vec3, bool) {
	switch m.Kind {
	case KindIsotropic:
		return rng.UnitVector(), true

	case KindLambertian:
		scatterDirection := normal.Add(rng.UnitVector())

		// Catch degenerate scatter direction
		if scatterDirection.NearZero() {
			scatterDirection = normal
		}
		return scatterDirection, true

	case KindMetal:
		reflected := Reflect(inDir, normal)
		fv := rng.UnitVector().Scale(m.Fuzz)
		reflected = reflected.Unit().Add(fv)
		return reflected, reflected.Dot(normal) > 0

	case KindDielectric:
		ri := m.RefractionIndex
		if frontFace {
			ri = 1 / ri
		}

		unitDirection := inDir.Unit()
		cosTheta := -unitDirection.Dot(normal)

		cannotRefract := ri*ri*(1-cosTheta*cosTheta) > 1
		var direction vmath.Vec3
		if cannotRefract || Reflectance(cosTheta, ri) > rng.Float() {
			direction = Reflect(unitDirection, normal)
		} else {
			direction = Refract(unitDirection, normal, ri)
		}
		return direction, true

	default:
		// Diffuse light
		return vmath.Vec3{}, false
	}
}
