package render

import (
	"github.com/lixenwraith/lumen/asset"
	"github.com/lixenwraith/lumen/texture"
	"github.com/lixenwraith/lumen/vmath"
)

// Deferred attenuation. Texture kinds have very different sampling
// costs: solids are free, noise is compute-bound, image taps are
// memory-bound. The bounce loop only records what to sample; after a
// pixel's samples are all drawn, each kind is evaluated in its own
// tight loop and multiplied into the sample colors.

type deferNoise struct {
	p     vmath.Vec3
	scale float64
}

type deferImage struct {
	img  *asset.Image
	u, v float64
}

// rlePair marks that `count` consecutive attenuations of one kind
// belong to pixel sample `sample`. Samples that produced none are
// simply absent
type rlePair struct {
	sample int32
	count  int32
}

// commitSave snapshots per-kind counts
type commitSave struct {
	solids int32
	noises int32
	images int32
}

func (c *commitSave) accept(other commitSave) {
	c.solids += other.solids
	c.noises += other.noises
	c.images += other.images
}

// scanlineBuffers is one worker's private scratch. Capacity covers the
// worst case of one attenuation per bounce for every sample of a
// pixel; nothing reallocates during rendering
type scanlineBuffers struct {
	solids []vmath.Vec3
	noises []deferNoise
	images []deferImage

	rleSolids []rlePair
	rleNoises []rlePair
	rleImages []rlePair

	// multiply stages evaluated noise grayscales before the RLE walk
	multiply []float64
	// samples holds each sample's terminal background/emission color
	samples []vmath.Vec3
}

func newScanlineBuffers(spp, maxDepth int) *scanlineBuffers {
	slots := spp * maxDepth
	return &scanlineBuffers{
		solids:    make([]vmath.Vec3, slots),
		noises:    make([]deferNoise, slots),
		images:    make([]deferImage, slots),
		rleSolids: make([]rlePair, spp),
		rleNoises: make([]rlePair, spp),
		rleImages: make([]rlePair, spp),
		multiply:  make([]float64, slots),
		samples:   make([]vmath.Vec3, spp),
	}
}

// sampleQueue records one sample's attenuations into the pixel's
// shared buffers. base is the pixel tally at the start of the sample,
// so reset only rolls back this sample's entries
type sampleQueue struct {
	buf   *scanlineBuffers
	base  commitSave
	tally commitSave
}

func (q *sampleQueue) emplaceSolid(c vmath.Vec3) {
	q.buf.solids[q.base.solids+q.tally.solids] = c
	q.tally.solids++
}

// emplace records the attenuation for a surface hit. Checker nodes
// resolve to their leaf right here, synchronously; only leaf kinds
// enter the buffers
func (q *sampleQueue) emplace(tex *texture.Texture, u, v float64, p vmath.Vec3) {
	tex = texture.ResolveChecker(tex, p)
	switch tex.Kind {
	case texture.KindSolid:
		q.emplaceSolid(tex.Solid)
	case texture.KindNoise:
		q.buf.noises[q.base.noises+q.tally.noises] = deferNoise{p: p, scale: tex.NoiseScale}
		q.tally.noises++
	case texture.KindImage:
		q.buf.images[q.base.images+q.tally.images] = deferImage{img: tex.Image, u: u, v: v}
		q.tally.images++
	}
}

// reset discards the sample's enqueued attenuations. Earlier samples'
// entries sit below base and are untouched
func (q *sampleQueue) reset() {
	q.tally = commitSave{}
}

// evaluate runs the deferred multiplication for one pixel: for every
// kind, walk its RLE groups and fold the evaluated attenuations into
// the group's sample color. Kinds commute, so their order is free;
// noise goes first to reuse the staged grayscale buffer
func (b *scanlineBuffers) evaluate(tally commitSave, nRLE commitSave, noise *texture.Perlin) {
	// noises
	for i := int32(0); i < tally.noises; i++ {
		d := &b.noises[i]
		b.multiply[i] = texture.SampleNoise(d.scale, d.p, noise)
	}
	start := int32(0)
	for rleI := int32(0); rleI < nRLE.noises; rleI++ {
		group := b.rleNoises[rleI]
		res := b.samples[group.sample]
		for _, grayscale := range b.multiply[start : start+group.count] {
			res = res.Scale(grayscale)
		}
		start += group.count
		b.samples[group.sample] = res
	}

	// images
	start = 0
	for rleI := int32(0); rleI < nRLE.images; rleI++ {
		group := b.rleImages[rleI]
		res := b.samples[group.sample]
		for _, d := range b.images[start : start+group.count] {
			res = res.Mul(texture.SampleImage(d.img, d.u, d.v))
		}
		start += group.count
		b.samples[group.sample] = res
	}

	// solids
	start = 0
	for rleI := int32(0); rleI < nRLE.solids; rleI++ {
		group := b.rleSolids[rleI]
		res := b.samples[group.sample]
		for _, col := range b.solids[start : start+group.count] {
			res = res.Mul(col)
		}
		start += group.count
		b.samples[group.sample] = res
	}
}
