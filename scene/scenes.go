package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lixenwraith/lumen/asset"
	"github.com/lixenwraith/lumen/geometry"
	"github.com/lixenwraith/lumen/material"
	"github.com/lixenwraith/lumen/texture"
	"github.com/lixenwraith/lumen/vmath"
)

// ErrUnknownScene reports a scene identifier with no registered
// constructor and no matching file
var ErrUnknownScene = errors.New("unknown scene")

var builtins = map[string]func() (*World, Camera){
	"spheres": Spheres,
	"quads":   Quads,
	"perlin":  Perlin,
	"earth":   Earth,
	"light":   Light,
	"cornell": Cornell,
	"smoke":   Smoke,
	"final":   Final,
}

// Names lists the built-in scene identifiers
func Names() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ByName builds the named scene. Identifiers ending in .toml load as
// scene files instead
func ByName(name string) (*World, Camera, error) {
	if isTOMLPath(name) {
		return LoadTOML(name)
	}
	build, ok := builtins[name]
	if !ok {
		return nil, Camera{}, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	w, cam := build()
	return w, cam, nil
}

var skyBackground = vmath.V3(0.70, 0.80, 1.00)

// Spheres is the random sphere field: a checker ground, a grid of
// small spheres with mixed materials and some vertical motion, and
// three large feature spheres
func Spheres() (*World, Camera) {
	w := NewWorld()
	rng := vmath.NewRand(20530)

	even := w.SolidTexture(vmath.V3(0.2, 0.3, 0.1))
	odd := w.SolidTexture(vmath.V3(0.9, 0.9, 0.9))
	ground := w.Texture(texture.NewChecker(1/0.32, even, odd))
	w.Add(geometry.NewSpherePrim(vmath.V3(0, -1000, 0), 1000), material.NewLambertian(), ground)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := rng.Float()
			center := vmath.V3(float64(a)+0.9*rng.Float(), 0.2, float64(b)+0.9*rng.Float())

			if center.Sub(vmath.V3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := rng.Vec(0, 1).Mul(rng.Vec(0, 1))
				motion := vmath.V3(0, rng.FloatRange(0, 0.5), 0)
				w.Add(geometry.NewMovingSpherePrim(center, 0.2, motion),
					material.NewLambertian(), w.SolidTexture(albedo))
			case chooseMat < 0.95:
				albedo := rng.Vec(0.5, 1)
				fuzz := rng.FloatRange(0, 0.5)
				w.Add(geometry.NewSpherePrim(center, 0.2),
					material.NewMetal(fuzz), w.SolidTexture(albedo))
			default:
				w.Add(geometry.NewSpherePrim(center, 0.2),
					material.NewDielectric(1.5), w.SolidTexture(vmath.V3(1, 1, 1)))
			}
		}
	}

	w.Add(geometry.NewSpherePrim(vmath.V3(0, 1, 0), 1),
		material.NewDielectric(1.5), w.SolidTexture(vmath.V3(1, 1, 1)))
	w.Add(geometry.NewSpherePrim(vmath.V3(-4, 1, 0), 1),
		material.NewLambertian(), w.SolidTexture(vmath.V3(0.4, 0.2, 0.1)))
	w.Add(geometry.NewSpherePrim(vmath.V3(4, 1, 0), 1),
		material.NewMetal(0), w.SolidTexture(vmath.V3(0.7, 0.6, 0.5)))

	w.SplitTree()
	w.Finalize()

	return w, Camera{
		AspectRatio:  16.0 / 9.0,
		VFov:         20,
		LookFrom:     vmath.V3(13, 2, 3),
		LookAt:       vmath.V3(0, 0, 0),
		VUp:          vmath.V3(0, 1, 0),
		DefocusAngle: 0.6,
		FocusDist:    10,
		Background:   skyBackground,
	}
}

// Quads covers the five principal directions with colored quads
func Quads() (*World, Camera) {
	w := NewWorld()

	add := func(q geometry.Primitive, c vmath.Vec3) {
		w.Add(q, material.NewLambertian(), w.SolidTexture(c))
	}

	add(geometry.NewQuadPrim(vmath.V3(-3, -2, 5), vmath.V3(0, 0, -4), vmath.V3(0, 4, 0)), vmath.V3(1.0, 0.2, 0.2))
	add(geometry.NewQuadPrim(vmath.V3(-2, -2, 0), vmath.V3(4, 0, 0), vmath.V3(0, 4, 0)), vmath.V3(0.2, 1.0, 0.2))
	add(geometry.NewQuadPrim(vmath.V3(3, -2, 1), vmath.V3(0, 0, 4), vmath.V3(0, 4, 0)), vmath.V3(0.2, 0.2, 1.0))
	add(geometry.NewQuadPrim(vmath.V3(-2, 3, 1), vmath.V3(4, 0, 0), vmath.V3(0, 0, 4)), vmath.V3(1.0, 0.5, 0.0))
	add(geometry.NewQuadPrim(vmath.V3(-2, -3, 5), vmath.V3(4, 0, 0), vmath.V3(0, 0, -4)), vmath.V3(0.2, 0.8, 0.8))

	w.SplitTree()
	w.Finalize()

	return w, Camera{
		AspectRatio: 1,
		VFov:        80,
		LookFrom:    vmath.V3(0, 0, 9),
		LookAt:      vmath.V3(0, 0, 0),
		VUp:         vmath.V3(0, 1, 0),
		FocusDist:   10,
		Background:  skyBackground,
	}
}

// Perlin places two marble-noise spheres on a big ground sphere
func Perlin() (*World, Camera) {
	w := NewWorld()

	noise := w.Texture(texture.NewNoise(4))
	w.Add(geometry.NewSpherePrim(vmath.V3(0, -1000, 0), 1000), material.NewLambertian(), noise)
	w.Add(geometry.NewSpherePrim(vmath.V3(0, 2, 0), 2), material.NewLambertian(), noise)

	w.SplitTree()
	w.Finalize()

	return w, Camera{
		AspectRatio: 16.0 / 9.0,
		VFov:        20,
		LookFrom:    vmath.V3(13, 2, 3),
		LookAt:      vmath.V3(0, 0, 0),
		VUp:         vmath.V3(0, 1, 0),
		FocusDist:   10,
		Background:  skyBackground,
	}
}

// Earth wraps the earth map around a single sphere
func Earth() (*World, Camera) {
	w := NewWorld()

	tex := w.Texture(texture.NewImage(asset.Load("earthmap.jpg")))
	w.Add(geometry.NewSpherePrim(vmath.V3(0, 0, 0), 2), material.NewLambertian(), tex)

	w.SplitTree()
	w.Finalize()

	return w, Camera{
		AspectRatio: 16.0 / 9.0,
		VFov:        20,
		LookFrom:    vmath.V3(0, 0, 12),
		LookAt:      vmath.V3(0, 0, 0),
		VUp:         vmath.V3(0, 1, 0),
		FocusDist:   10,
		Background:  skyBackground,
	}
}

// Light shows emissive surfaces over a dark background: a quad lamp
// and a sphere lamp above two noise spheres
func Light() (*World, Camera) {
	w := NewWorld()

	noise := w.Texture(texture.NewNoise(4))
	w.Add(geometry.NewSpherePrim(vmath.V3(0, -1000, 0), 1000), material.NewLambertian(), noise)
	w.Add(geometry.NewSpherePrim(vmath.V3(0, 2, 0), 2), material.NewLambertian(), noise)

	lamp := w.SolidTexture(vmath.V3(4, 4, 4))
	w.Add(geometry.NewQuadPrim(vmath.V3(3, 1, -2), vmath.V3(2, 0, 0), vmath.V3(0, 2, 0)),
		material.NewDiffuseLight(), lamp)
	w.Add(geometry.NewSpherePrim(vmath.V3(0, 7, 0), 2), material.NewDiffuseLight(), lamp)

	w.SplitTree()
	w.Finalize()

	return w, Camera{
		AspectRatio: 16.0 / 9.0,
		VFov:        20,
		LookFrom:    vmath.V3(26, 3, 6),
		LookAt:      vmath.V3(0, 2, 0),
		VUp:         vmath.V3(0, 1, 0),
		FocusDist:   10,
		Background:  vmath.V3(0, 0, 0),
	}
}

func cornellShell(w *World) {
	red := w.SolidTexture(vmath.V3(0.65, 0.05, 0.05))
	white := w.SolidTexture(vmath.V3(0.73, 0.73, 0.73))
	green := w.SolidTexture(vmath.V3(0.12, 0.45, 0.15))
	lamp := w.SolidTexture(vmath.V3(15, 15, 15))

	w.Add(geometry.NewAAQuadPrim(vmath.V3(555, 0, 0), 0, 555, 555), material.NewLambertian(), green)
	w.Add(geometry.NewAAQuadPrim(vmath.V3(0, 0, 0), 0, 555, 555), material.NewLambertian(), red)
	// Axis-1 quads span z then x
	w.Add(geometry.NewAAQuadPrim(vmath.V3(343, 554, 332), 1, -105, -130), material.NewDiffuseLight(), lamp)
	w.Add(geometry.NewAAQuadPrim(vmath.V3(0, 0, 0), 1, 555, 555), material.NewLambertian(), white)
	w.Add(geometry.NewAAQuadPrim(vmath.V3(555, 555, 555), 1, -555, -555), material.NewLambertian(), white)
	w.Add(geometry.NewAAQuadPrim(vmath.V3(0, 0, 555), 2, 555, 555), material.NewLambertian(), white)
}

func cornellCamera() Camera {
	return Camera{
		AspectRatio: 1,
		VFov:        40,
		LookFrom:    vmath.V3(278, 278, -800),
		LookAt:      vmath.V3(278, 278, 0),
		VUp:         vmath.V3(0, 1, 0),
		FocusDist:   10,
		Background:  vmath.V3(0, 0, 0),
	}
}

// Cornell is the classic box with two rotated blocks
func Cornell() (*World, Camera) {
	w := NewWorld()
	cornellShell(w)

	white := w.SolidTexture(vmath.V3(0.73, 0.73, 0.73))

	tall := geometry.NewBoxPrim(vmath.V3(0, 0, 0), vmath.V3(165, 330, 165))
	w.Add(geometry.NewTransformedPrim(&tall,
		geometry.NewTranslate(vmath.V3(265, 0, 295)),
		geometry.NewRotateY(15),
	), material.NewLambertian(), white)

	short := geometry.NewBoxPrim(vmath.V3(0, 0, 0), vmath.V3(165, 165, 165))
	w.Add(geometry.NewTransformedPrim(&short,
		geometry.NewTranslate(vmath.V3(130, 0, 65)),
		geometry.NewRotateY(-18),
	), material.NewLambertian(), white)

	w.SplitTree()
	w.Finalize()

	return w, cornellCamera()
}

// Smoke fills the two Cornell blocks with constant-density media
func Smoke() (*World, Camera) {
	w := NewWorld()
	cornellShell(w)

	tall := geometry.NewBoxPrim(vmath.V3(0, 0, 0), vmath.V3(165, 330, 165))
	w.AddMedium(geometry.NewTransformedPrim(&tall,
		geometry.NewTranslate(vmath.V3(265, 0, 295)),
		geometry.NewRotateY(15),
	), 0.01, vmath.V3(0, 0, 0))

	short := geometry.NewBoxPrim(vmath.V3(0, 0, 0), vmath.V3(165, 165, 165))
	w.AddMedium(geometry.NewTransformedPrim(&short,
		geometry.NewTranslate(vmath.V3(130, 0, 65)),
		geometry.NewRotateY(-18),
	), 0.01, vmath.V3(1, 1, 1))

	w.SplitTree()
	w.Finalize()

	return w, cornellCamera()
}

// Final is the combined showcase: a box-grid ground, a lamp, moving,
// glass and metal spheres, media, an earth sphere, marble noise, and a
// displaced cluster of small spheres
func Final() (*World, Camera) {
	w := NewWorld()
	rng := vmath.NewRand(40112)

	groundTex := w.SolidTexture(vmath.V3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w0 := 100.0
			x0 := -1000 + float64(i)*w0
			z0 := -1000 + float64(j)*w0
			y1 := rng.FloatRange(1, 101)
			w.Add(geometry.NewBoxPrim(vmath.V3(x0, 0, z0), vmath.V3(x0+w0, y1, z0+w0)),
				material.NewLambertian(), groundTex)
		}
	}
	w.SplitTree()

	lamp := w.SolidTexture(vmath.V3(7, 7, 7))
	w.Add(geometry.NewAAQuadPrim(vmath.V3(123, 554, 147), 1, 265, 300),
		material.NewDiffuseLight(), lamp)

	w.Add(geometry.NewMovingSpherePrim(vmath.V3(400, 400, 200), 50, vmath.V3(30, 0, 0)),
		material.NewLambertian(), w.SolidTexture(vmath.V3(0.7, 0.3, 0.1)))

	w.Add(geometry.NewSpherePrim(vmath.V3(260, 150, 45), 50),
		material.NewDielectric(1.5), w.SolidTexture(vmath.V3(1, 1, 1)))
	w.Add(geometry.NewSpherePrim(vmath.V3(0, 150, 145), 50),
		material.NewMetal(1.0), w.SolidTexture(vmath.V3(0.8, 0.8, 0.9)))

	// A glass sphere with blue haze inside, plus a thin global mist
	boundary := geometry.NewSpherePrim(vmath.V3(360, 150, 145), 70)
	w.Add(boundary, material.NewDielectric(1.5), w.SolidTexture(vmath.V3(1, 1, 1)))
	w.AddMedium(boundary, 0.2, vmath.V3(0.2, 0.4, 0.9))
	w.AddMedium(geometry.NewSpherePrim(vmath.V3(0, 0, 0), 5000), 0.0001, vmath.V3(1, 1, 1))

	w.Add(geometry.NewSpherePrim(vmath.V3(400, 200, 400), 100),
		material.NewLambertian(), w.Texture(texture.NewImage(asset.Load("earthmap.jpg"))))
	w.Add(geometry.NewSpherePrim(vmath.V3(220, 280, 300), 80),
		material.NewLambertian(), w.Texture(texture.NewNoise(0.2)))

	white := w.SolidTexture(vmath.V3(0.73, 0.73, 0.73))
	for i := 0; i < 1000; i++ {
		sphere := geometry.NewSpherePrim(rng.Vec(0, 165), 10)
		w.Add(geometry.NewTransformedPrim(&sphere,
			geometry.NewTranslate(vmath.V3(-100, 270, 395)),
			geometry.NewRotateY(15),
		), material.NewLambertian(), white)
	}
	w.SplitTree()
	w.Finalize()

	return w, Camera{
		AspectRatio: 1,
		VFov:        40,
		LookFrom:    vmath.V3(478, 278, -600),
		LookAt:      vmath.V3(278, 278, 0),
		VUp:         vmath.V3(0, 1, 0),
		FocusDist:   10,
		Background:  vmath.V3(0, 0, 0),
	}
}
