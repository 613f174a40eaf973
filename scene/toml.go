package scene

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/lumen/asset"
	"github.com/lixenwraith/lumen/geometry"
	"github.com/lixenwraith/lumen/material"
	"github.com/lixenwraith/lumen/texture"
	"github.com/lixenwraith/lumen/vmath"
)

// Declarative scene files. The file mirrors the builder API: a camera
// table, object tables with inline material/texture settings, and
// medium tables. Example:
//
//	[camera]
//	aspect = 1.0
//	vfov = 40.0
//	lookfrom = [0.0, 0.0, 3.0]
//	lookat = [0.0, 0.0, 0.0]
//	background = [0.7, 0.8, 1.0]
//
//	[[object]]
//	shape = "sphere"
//	center = [0.0, 0.0, -1.0]
//	radius = 0.5
//	material = "lambertian"
//	texture = "solid"
//	color = [0.5, 0.5, 0.5]

type tomlScene struct {
	Camera  tomlCamera   `toml:"camera"`
	Objects []tomlObject `toml:"object"`
	Mediums []tomlMedium `toml:"medium"`
}

type tomlCamera struct {
	Aspect       float64    `toml:"aspect"`
	VFov         float64    `toml:"vfov"`
	LookFrom     [3]float64 `toml:"lookfrom"`
	LookAt       [3]float64 `toml:"lookat"`
	VUp          [3]float64 `toml:"vup"`
	DefocusAngle float64    `toml:"defocus_angle"`
	FocusDist    float64    `toml:"focus_dist"`
	Background   [3]float64 `toml:"background"`
}

type tomlObject struct {
	Shape string `toml:"shape"`

	// sphere
	Center [3]float64 `toml:"center"`
	Radius float64    `toml:"radius"`
	Motion [3]float64 `toml:"motion"`

	// quads: corner plus either scalar spans on an axis or edge
	// vectors
	Corner [3]float64 `toml:"corner"`
	Axis   int        `toml:"axis"`
	SpanU  float64    `toml:"span_u"`
	SpanV  float64    `toml:"span_v"`
	EdgeU  [3]float64 `toml:"edge_u"`
	EdgeV  [3]float64 `toml:"edge_v"`

	// box
	Min [3]float64 `toml:"min"`
	Max [3]float64 `toml:"max"`

	// transform stack, applied to the object in this order
	RotateY   float64     `toml:"rotate_y"`
	Translate *[3]float64 `toml:"translate"`

	Material string  `toml:"material"`
	Fuzz     float64 `toml:"fuzz"`
	IOR      float64 `toml:"ior"`

	Texture    string      `toml:"texture"`
	Color      [3]float64  `toml:"color"`
	File       string      `toml:"file"`
	Scale      float64     `toml:"scale"`
	InvScale   float64     `toml:"inv_scale"`
	EvenColor  *[3]float64 `toml:"even"`
	OddColor   *[3]float64 `toml:"odd"`
}

type tomlMedium struct {
	Shape     string      `toml:"shape"`
	Center    [3]float64  `toml:"center"`
	Radius    float64     `toml:"radius"`
	Min       [3]float64  `toml:"min"`
	Max       [3]float64  `toml:"max"`
	RotateY   float64     `toml:"rotate_y"`
	Translate *[3]float64 `toml:"translate"`
	Density   float64     `toml:"density"`
	Color     [3]float64  `toml:"color"`
}

func isTOMLPath(name string) bool {
	return strings.HasSuffix(name, ".toml")
}

func vec(a [3]float64) vmath.Vec3 {
	return vmath.V3(a[0], a[1], a[2])
}

// LoadTOML builds a world from a declarative scene file
func LoadTOML(path string) (*World, Camera, error) {
	var spec tomlScene
	if _, err := toml.DecodeFile(path, &spec); err != nil {
		return nil, Camera{}, fmt.Errorf("scene file %s: %w", path, err)
	}

	w := NewWorld()

	for i, obj := range spec.Objects {
		prim, err := buildShape(obj.Shape, obj.Center, obj.Radius, obj.Motion,
			obj.Corner, obj.Axis, obj.SpanU, obj.SpanV, obj.EdgeU, obj.EdgeV,
			obj.Min, obj.Max)
		if err != nil {
			return nil, Camera{}, fmt.Errorf("object %d: %w", i, err)
		}
		prim = wrapTransforms(prim, obj.RotateY, obj.Translate)

		mat, err := buildMaterial(obj.Material, obj.Fuzz, obj.IOR)
		if err != nil {
			return nil, Camera{}, fmt.Errorf("object %d: %w", i, err)
		}

		tex, err := buildTexture(w, obj)
		if err != nil {
			return nil, Camera{}, fmt.Errorf("object %d: %w", i, err)
		}

		w.Add(prim, mat, tex)
	}

	for i, med := range spec.Mediums {
		boundary, err := buildShape(med.Shape, med.Center, med.Radius, [3]float64{},
			[3]float64{}, 0, 0, 0, [3]float64{}, [3]float64{}, med.Min, med.Max)
		if err != nil {
			return nil, Camera{}, fmt.Errorf("medium %d: %w", i, err)
		}
		boundary = wrapTransforms(boundary, med.RotateY, med.Translate)
		if med.Density <= 0 {
			return nil, Camera{}, fmt.Errorf("medium %d: density must be positive", i)
		}
		w.AddMedium(boundary, med.Density, vec(med.Color))
	}

	w.SplitTree()
	w.Finalize()

	cam := Camera{
		AspectRatio:  spec.Camera.Aspect,
		VFov:         spec.Camera.VFov,
		LookFrom:     vec(spec.Camera.LookFrom),
		LookAt:       vec(spec.Camera.LookAt),
		VUp:          vec(spec.Camera.VUp),
		DefocusAngle: spec.Camera.DefocusAngle,
		FocusDist:    spec.Camera.FocusDist,
		Background:   vec(spec.Camera.Background),
	}
	applyCameraDefaults(&cam)

	return w, cam, nil
}

func applyCameraDefaults(cam *Camera) {
	if cam.AspectRatio == 0 {
		cam.AspectRatio = 16.0 / 9.0
	}
	if cam.VFov == 0 {
		cam.VFov = 40
	}
	if cam.VUp == (vmath.Vec3{}) {
		cam.VUp = vmath.V3(0, 1, 0)
	}
	if cam.FocusDist == 0 {
		cam.FocusDist = 10
	}
}

func buildShape(shape string, center [3]float64, radius float64, motion [3]float64,
	corner [3]float64, axis int, spanU, spanV float64, edgeU, edgeV [3]float64,
	boxMin, boxMax [3]float64) (geometry.Primitive, error) {
	switch shape {
	case "sphere":
		if radius <= 0 {
			return geometry.Primitive{}, fmt.Errorf("sphere radius must be positive")
		}
		return geometry.NewMovingSpherePrim(vec(center), radius, vec(motion)), nil
	case "aaquad":
		if axis < 0 || axis > 2 {
			return geometry.Primitive{}, fmt.Errorf("aaquad axis out of range: %d", axis)
		}
		return geometry.NewAAQuadPrim(vec(corner), axis, spanU, spanV), nil
	case "quad":
		return geometry.NewQuadPrim(vec(corner), vec(edgeU), vec(edgeV)), nil
	case "box":
		return geometry.NewBoxPrim(vec(boxMin), vec(boxMax)), nil
	default:
		return geometry.Primitive{}, fmt.Errorf("unknown shape %q", shape)
	}
}

// wrapTransforms applies the declared rotation and translation the
// natural way: rotate first, then place
func wrapTransforms(prim geometry.Primitive, rotateY float64, translate *[3]float64) geometry.Primitive {
	var tfs []geometry.Transform
	if translate != nil {
		tfs = append(tfs, geometry.NewTranslate(vec(*translate)))
	}
	if rotateY != 0 {
		tfs = append(tfs, geometry.NewRotateY(rotateY))
	}
	if len(tfs) == 0 {
		return prim
	}
	inner := prim
	return geometry.NewTransformedPrim(&inner, tfs...)
}

func buildMaterial(name string, fuzz, ior float64) (material.Material, error) {
	switch name {
	case "", "lambertian":
		return material.NewLambertian(), nil
	case "metal":
		return material.NewMetal(fuzz), nil
	case "dielectric":
		if ior == 0 {
			ior = 1.5
		}
		return material.NewDielectric(ior), nil
	case "isotropic":
		return material.NewIsotropic(), nil
	case "light":
		return material.NewDiffuseLight(), nil
	default:
		return material.Material{}, fmt.Errorf("unknown material %q", name)
	}
}

func buildTexture(w *World, obj tomlObject) (*texture.Texture, error) {
	switch obj.Texture {
	case "", "solid":
		return w.SolidTexture(vec(obj.Color)), nil
	case "image":
		if obj.File == "" {
			return nil, fmt.Errorf("image texture needs file")
		}
		return w.Texture(texture.NewImage(asset.Load(obj.File))), nil
	case "noise":
		scale := obj.Scale
		if scale == 0 {
			scale = 1
		}
		return w.Texture(texture.NewNoise(scale)), nil
	case "checker":
		inv := obj.InvScale
		if inv == 0 {
			inv = 1
		}
		evenColor := vmath.V3(1, 1, 1)
		oddColor := vmath.V3(0, 0, 0)
		if obj.EvenColor != nil {
			evenColor = vec(*obj.EvenColor)
		}
		if obj.OddColor != nil {
			oddColor = vec(*obj.OddColor)
		}
		even := w.SolidTexture(evenColor)
		odd := w.SolidTexture(oddColor)
		return w.Texture(texture.NewChecker(inv, even, odd)), nil
	default:
		return nil, fmt.Errorf("unknown texture %q", obj.Texture)
	}
}
