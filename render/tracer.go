package render

import (
	"github.com/lixenwraith/lumen/material"
	"github.com/lixenwraith/lumen/scene"
	"github.com/lixenwraith/lumen/texture"
	"github.com/lixenwraith/lumen/vmath"
)

// traceRay walks one camera ray through up to depth interactions and
// returns its terminal color: the background, a light's white carrier,
// or black for absorbed and exhausted paths. Attenuations accumulate
// in q; a path that dies without reaching light resets q so its
// partial products never leak into the pixel
func traceRay(w *scene.World, r vmath.Ray, depth int, background vmath.Vec3, q *sampleQueue, rng *vmath.Rand) vmath.Vec3 {
	for {
		// Too deep and haven't found a light source
		if depth <= 0 {
			q.reset()
			return vmath.Vec3{}
		}

		prim, closestHit := w.HitSelect(r)

		maxT := vmath.Infinity
		if prim != nil {
			maxT = closestHit
		}

		// A medium can disperse the ray before it reaches the surface.
		// The camera may itself sit inside a medium, so this cannot be
		// skipped even on a clean surface hit
		if m, cmT, ok := w.SampleConstantMediums(r, maxT, rng); ok {
			// No UVs or normal: the response is isotropic
			r.Orig = r.At(cmT)
			q.emplaceSolid(m.Albedo)
			r.Dir = rng.UnitVector()
			depth--
			continue
		}

		if prim == nil {
			// The ray escaped into the sky
			q.reset()
			return background
		}

		p := r.At(closestHit)
		normal := prim.Normal(p, r.Time)

		frontFace := r.Dir.Dot(normal) < 0
		if !frontFace {
			normal = normal.Neg()
		}

		u, v := prim.UVs(p, r.Time)

		surf := w.Surface(prim)

		// Emission acts as the final carrier: the queue multiplies the
		// recorded attenuations through it afterwards
		if surf.Mat.Kind == material.KindDiffuseLight {
			q.emplace(surf.Tex, u, v, p)
			return vmath.V3(1, 1, 1)
		}

		scattered, ok := surf.Mat.Scatter(rng, r.Dir, normal, frontFace)
		if !ok {
			q.reset()
			return vmath.Vec3{}
		}

		depth--
		q.emplace(surf.Tex, u, v, p)
		r = vmath.Ray{Orig: p, Dir: scattered, Time: r.Time}
	}
}

// scanLine renders row j into pixels. All scratch lives in the
// worker-owned buffers
func scanLine(w *scene.World, cam *camera, s Settings, j int, pixels []vmath.Vec3, buf *scanlineBuffers, noise *texture.Perlin, rng *vmath.Rand) {
	for i := 0; i < s.ImageWidth; i++ {
		var tally commitSave
		var nRLE commitSave

		for sample := 0; sample < s.SamplesPerPixel; sample++ {
			r := getRay(cam, i, j, rng)

			q := sampleQueue{buf: buf, base: tally}

			bg := traceRay(w, r, s.MaxDepth, cam.background, &q, rng)
			attCount := q.tally
			tally.accept(attCount)

			if attCount.solids > 0 {
				buf.rleSolids[nRLE.solids] = rlePair{sample: int32(sample), count: attCount.solids}
				nRLE.solids++
			}
			if attCount.noises > 0 {
				buf.rleNoises[nRLE.noises] = rlePair{sample: int32(sample), count: attCount.noises}
				nRLE.noises++
			}
			if attCount.images > 0 {
				buf.rleImages[nRLE.images] = rlePair{sample: int32(sample), count: attCount.images}
				nRLE.images++
			}

			buf.samples[sample] = bg
		}

		buf.evaluate(tally, nRLE, noise)

		var pixelColor vmath.Vec3
		for sample := 0; sample < s.SamplesPerPixel; sample++ {
			pixelColor = pixelColor.Add(buf.samples[sample])
		}

		pixels[j*s.ImageWidth+i] = pixelColor.Scale(cam.pixelSamplesScale)
	}
}
