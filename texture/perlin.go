package texture

import (
	"math"
	"sync"

	"github.com/lixenwraith/lumen/vmath"
)

const pointCount = 256

// Perlin is an immutable gradient-noise table. One table is built for
// the whole process and shared by every worker
type Perlin struct {
	ranvec [pointCount]vmath.Vec3
	permX  [pointCount]int
	permY  [pointCount]int
	permZ  [pointCount]int
}

var (
	sharedPerlin     *Perlin
	sharedPerlinOnce sync.Once
)

// SharedPerlin returns the process-wide noise table, built on first use
// from a fixed seed so renders are repeatable
func SharedPerlin() *Perlin {
	sharedPerlinOnce.Do(func() {
		sharedPerlin = NewPerlin(vmath.NewRand(0x9e3779b9))
	})
	return sharedPerlin
}

// NewPerlin builds a table from the given generator
func NewPerlin(rng *vmath.Rand) *Perlin {
	p := &Perlin{}
	for i := range p.ranvec {
		p.ranvec[i] = rng.Vec(-1, 1).Unit()
	}
	generatePerm(rng, &p.permX)
	generatePerm(rng, &p.permY)
	generatePerm(rng, &p.permZ)
	return p
}

func generatePerm(rng *vmath.Rand, perm *[pointCount]int) {
	for i := range perm {
		perm[i] = i
	}
	for i := pointCount - 1; i > 0; i-- {
		target := int(rng.Float() * float64(i+1))
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Noise returns gradient noise in [-1, 1] at p
func (pl *Perlin) Noise(p vmath.Vec3) float64 {
	u := p.X - math.Floor(p.X)
	v := p.Y - math.Floor(p.Y)
	w := p.Z - math.Floor(p.Z)

	i := int(math.Floor(p.X))
	j := int(math.Floor(p.Y))
	k := int(math.Floor(p.Z))

	var c [2][2][2]vmath.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = pl.ranvec[pl.permX[(i+di)&255]^
					pl.permY[(j+dj)&255]^
					pl.permZ[(k+dk)&255]]
			}
		}
	}

	return trilinearInterp(&c, u, v, w)
}

func trilinearInterp(c *[2][2][2]vmath.Vec3, u, v, w float64) float64 {
	// Hermitian smoothing removes the grid-aligned banding
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float64(i), float64(j), float64(k)
				weight := vmath.V3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}

// Turb sums octaves of noise with halving weights, returning the
// absolute accumulated turbulence
func (pl *Perlin) Turb(p vmath.Vec3, depth int) float64 {
	accum := 0.0
	tempP := p
	weight := 1.0

	for i := 0; i < depth; i++ {
		accum += weight * pl.Noise(tempP)
		weight *= 0.5
		tempP = tempP.Scale(2)
	}

	return math.Abs(accum)
}
