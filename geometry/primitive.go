package geometry

import (
	"github.com/lixenwraith/lumen/vmath"
)

// MinRayDist is the lower parameter bound for secondary rays,
// keeping bounces from re-hitting their own surface
const MinRayDist = 1e-3

// Kind tags the closed set of primitive variants
type Kind uint8

const (
	KindSphere Kind = iota
	KindAAQuad
	KindQuad
	KindBox
	KindTransformed
)

// Primitive is the tagged variant over all hittable shapes. The set is
// closed, so dispatch is a switch instead of dynamic calls and the
// slab/quadric tests stay inlineable.
// Rel indexes the world's parallel material/texture table
type Primitive struct {
	Kind Kind
	Rel  int32

	Sphere Sphere
	AAQuad AAQuad
	Quad   Quad
	Box    Box

	// Transformed wrapper: transforms apply to the ray left to right,
	// and in reverse to the resulting point and normal
	Inner      *Primitive
	Transforms []Transform
}

func NewSpherePrim(center vmath.Vec3, radius float64) Primitive {
	return Primitive{Kind: KindSphere, Sphere: Sphere{Center1: center, Radius: radius}}
}

func NewMovingSpherePrim(center vmath.Vec3, radius float64, motion vmath.Vec3) Primitive {
	return Primitive{Kind: KindSphere, Sphere: Sphere{Center1: center, Radius: radius, Motion: motion}}
}

func NewAAQuadPrim(q vmath.Vec3, axis int, u, v float64) Primitive {
	return Primitive{Kind: KindAAQuad, AAQuad: AAQuad{Q: q, Axis: axis, U: u, V: v}}
}

func NewQuadPrim(q, u, v vmath.Vec3) Primitive {
	return Primitive{Kind: KindQuad, Quad: Quad{Q: q, U: u, V: v}}
}

func NewBoxPrim(a, b vmath.Vec3) Primitive {
	return Primitive{Kind: KindBox, Box: NewBox(a, b)}
}

// NewTransformedPrim wraps inner with an ordered transform stack.
// The order is ray-application order, outermost transform first:
// a box that is rotated and then placed reads
// NewTransformedPrim(&box, NewTranslate(pos), NewRotateY(deg))
func NewTransformedPrim(inner *Primitive, transforms ...Transform) Primitive {
	return Primitive{Kind: KindTransformed, Inner: inner, Transforms: transforms}
}

// Hit tests the ray against this primitive within rayT. The returned
// parameter is valid in world space: the supported transforms preserve
// direction length, so t carries over unchanged
func (p *Primitive) Hit(r vmath.Ray, rayT vmath.Interval) (float64, bool) {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.Hit(r, rayT)
	case KindAAQuad:
		return p.AAQuad.Hit(r, rayT)
	case KindQuad:
		return p.Quad.Hit(r, rayT)
	case KindBox:
		return p.Box.Hit(r, rayT)
	default:
		local := r
		for _, tf := range p.Transforms {
			local = tf.Ray(local)
		}
		return p.Inner.Hit(local, rayT)
	}
}

// Normal returns the outward surface normal at a world-space
// intersection point
func (p *Primitive) Normal(intersection vmath.Vec3, time float64) vmath.Vec3 {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.Normal(intersection, time)
	case KindAAQuad:
		return p.AAQuad.Normal()
	case KindQuad:
		return p.Quad.Normal()
	case KindBox:
		return p.Box.Normal(intersection)
	default:
		local := intersection
		for _, tf := range p.Transforms {
			local = tf.Point(local, time)
		}
		n := p.Inner.Normal(local, time)
		for i := len(p.Transforms) - 1; i >= 0; i-- {
			n = p.Transforms[i].RevNormal(n)
		}
		return n
	}
}

// UVs returns the surface parameterization at a world-space
// intersection point
func (p *Primitive) UVs(intersection vmath.Vec3, time float64) (u, v float64) {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.UVs(intersection, time)
	case KindAAQuad:
		return p.AAQuad.UVs(intersection)
	case KindQuad:
		return p.Quad.UVs(intersection)
	case KindBox:
		return p.Box.UVs(intersection)
	default:
		local := intersection
		for _, tf := range p.Transforms {
			local = tf.Point(local, time)
		}
		return p.Inner.UVs(local, time)
	}
}

// Bounds returns the world-space bounding box
func (p *Primitive) Bounds() AABB {
	switch p.Kind {
	case KindSphere:
		return p.Sphere.Bounds()
	case KindAAQuad:
		return p.AAQuad.Bounds()
	case KindQuad:
		return p.Quad.Bounds()
	case KindBox:
		return p.Box.Bounds()
	default:
		// The object map runs opposite to the ray map, so boxes
		// compose through the stack right to left
		box := p.Inner.Bounds()
		for i := len(p.Transforms) - 1; i >= 0; i-- {
			box = p.Transforms[i].BBox(box)
		}
		return box
	}
}

// HitSpan linear-scans a primitive slice, tightening closest as it
// goes, and returns the best hit
func HitSpan(objects []*Primitive, r vmath.Ray, closest *float64) *Primitive {
	var best *Primitive
	for _, object := range objects {
		if t, ok := object.Hit(r, vmath.Interval{Min: MinRayDist, Max: *closest}); ok {
			*closest = t
			best = object
		}
	}
	return best
}
