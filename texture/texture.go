// Package texture evaluates the renderer's texture tree: solid colors,
// images, Perlin turbulence and recursive checkers.
//
// Checker nodes are resolved at enqueue time (ResolveChecker), so the
// deferred attenuation path only ever evaluates leaf kinds.
package texture

import (
	"math"

	"github.com/lixenwraith/lumen/asset"
	"github.com/lixenwraith/lumen/vmath"
)

// Kind tags the closed set of texture variants
type Kind uint8

const (
	KindSolid Kind = iota
	KindImage
	KindNoise
	KindChecker
)

// Texture is a tagged tree node. Checker children were built before
// their parent, so the tree is acyclic by construction and shares the
// scene arena's lifetime
type Texture struct {
	Kind Kind

	// Solid color, also the fallback payload
	Solid vmath.Vec3

	// Image payload
	Image *asset.Image

	// Noise payload: marble stripe frequency
	NoiseScale float64

	// Checker payload: cell frequency and the two alternating subtrees
	InvScale  float64
	Even, Odd *Texture
}

func NewSolid(c vmath.Vec3) Texture {
	return Texture{Kind: KindSolid, Solid: c}
}

func NewImage(img *asset.Image) Texture {
	return Texture{Kind: KindImage, Image: img}
}

func NewNoise(scale float64) Texture {
	return Texture{Kind: KindNoise, NoiseScale: scale}
}

// NewChecker alternates the two subtrees over unit cells scaled by
// invScale. Children must already exist; the constructor cannot form
// cycles
func NewChecker(invScale float64, even, odd *Texture) Texture {
	return Texture{Kind: KindChecker, InvScale: invScale, Even: even, Odd: odd}
}

// ResolveChecker walks checker nodes by cell parity at the given point
// until a non-checker leaf is reached
func ResolveChecker(tex *Texture, p vmath.Vec3) *Texture {
	for tex.Kind == KindChecker {
		xint := int(math.Floor(tex.InvScale * p.X))
		yint := int(math.Floor(tex.InvScale * p.Y))
		zint := int(math.Floor(tex.InvScale * p.Z))

		if (xint+yint+zint)%2 == 0 {
			tex = tex.Even
		} else {
			tex = tex.Odd
		}
	}
	return tex
}

// SampleImage taps the image with nearest-neighbor filtering. UVs are
// clamped to the unit square; v grows upward while rows grow downward
func SampleImage(img *asset.Image, u, v float64) vmath.Vec3 {
	u = vmath.UnitInterval.Clamp(u)
	v = vmath.UnitInterval.Clamp(v)

	i := int(u * float64(img.Width))
	j := int((1 - v) * float64(img.Height))
	r, g, b := img.PixelData(i, j)

	return vmath.V3(r, g, b)
}

// SampleNoise returns the grayscale marble value at p, modulating a
// sine stripe along z with turbulence
func SampleNoise(scale float64, p vmath.Vec3, noise *Perlin) float64 {
	return 0.5 * (1 + math.Sin(scale*p.Z+10*noise.Turb(p, 7)))
}

// Value fully evaluates the texture at a surface point. The deferred
// engine batches by kind instead; this entry point serves scene
// construction and tests
func (t *Texture) Value(u, v float64, p vmath.Vec3, noise *Perlin) vmath.Vec3 {
	switch t.Kind {
	case KindSolid:
		return t.Solid
	case KindImage:
		return SampleImage(t.Image, u, v)
	case KindNoise:
		g := SampleNoise(t.NoiseScale, p, noise)
		return vmath.V3(g, g, g)
	default:
		leaf := ResolveChecker(t, p)
		return leaf.Value(u, v, p, noise)
	}
}
