package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lumen/geometry"
	"github.com/lixenwraith/lumen/material"
	"github.com/lixenwraith/lumen/texture"
	"github.com/lixenwraith/lumen/vmath"
)

const sampleScene = `
[camera]
aspect = 1.0
vfov = 40.0
lookfrom = [0.0, 0.0, 3.0]
lookat = [0.0, 0.0, 0.0]
vup = [0.0, 1.0, 0.0]
focus_dist = 10.0
background = [0.7, 0.8, 1.0]

[[object]]
shape = "sphere"
center = [0.0, 0.0, -1.0]
radius = 0.5
material = "lambertian"
texture = "solid"
color = [0.5, 0.5, 0.5]

[[object]]
shape = "box"
min = [0.0, 0.0, 0.0]
max = [1.0, 1.0, 1.0]
rotate_y = 45.0
translate = [2.0, 0.0, 0.0]
material = "metal"
fuzz = 0.1
texture = "checker"
inv_scale = 2.0
even = [1.0, 0.0, 0.0]
odd = [0.0, 0.0, 1.0]

[[object]]
shape = "aaquad"
corner = [3.0, 1.0, -2.0]
axis = 2
span_u = 2.0
span_v = 2.0
material = "light"
color = [4.0, 4.0, 4.0]

[[medium]]
shape = "sphere"
center = [0.0, 0.0, 0.0]
radius = 100.0
density = 0.01
color = [1.0, 1.0, 1.0]
`

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeScene(t, sampleScene)

	w, cam, err := ByName(path)
	require.NoError(t, err)

	assert.Equal(t, 1.0, cam.AspectRatio)
	assert.Equal(t, 40.0, cam.VFov)
	assert.Equal(t, vmath.V3(0, 0, 3), cam.LookFrom)
	assert.Equal(t, vmath.V3(0.7, 0.8, 1.0), cam.Background)

	require.Len(t, w.Surfaces, 3)
	require.Len(t, w.Mediums, 1)

	assert.Equal(t, material.KindLambertian, w.Surfaces[0].Mat.Kind)
	assert.Equal(t, material.KindMetal, w.Surfaces[1].Mat.Kind)
	assert.Equal(t, 0.1, w.Surfaces[1].Mat.Fuzz)
	assert.Equal(t, texture.KindChecker, w.Surfaces[1].Tex.Kind)
	assert.Equal(t, material.KindDiffuseLight, w.Surfaces[2].Mat.Kind)

	// The sphere is hittable where the file put it
	r := vmath.Ray{Orig: vmath.V3(0, 0, 3), Dir: vmath.V3(0, 0, -1)}
	prim, closest := w.HitSelect(r)
	require.NotNil(t, prim)
	assert.Equal(t, geometry.KindSphere, prim.Kind)
	require.InDelta(t, 3.5, closest, 1e-12)
}

func TestLoadTOMLTransformedBox(t *testing.T) {
	path := writeScene(t, sampleScene)
	w, _, err := LoadTOML(path)
	require.NoError(t, err)

	// Find the transformed box and check its placed bounds
	var boxPrim *geometry.Primitive
	for _, tree := range w.Trees {
		for _, p := range tree.Objects {
			if p.Kind == geometry.KindTransformed {
				boxPrim = p
			}
		}
	}
	require.NotNil(t, boxPrim)
	bounds := boxPrim.Bounds()
	require.InDelta(t, 2.0, bounds.X.Min, 1e-9)
	require.InDelta(t, 0.0, bounds.Y.Min, 1e-9)
	require.InDelta(t, 1.0, bounds.Y.Max, 1e-9)
}

func TestLoadTOMLErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad shape", "[[object]]\nshape = \"torus\"\n"},
		{"bad material", "[[object]]\nshape = \"sphere\"\nradius = 1.0\nmaterial = \"velvet\"\n"},
		{"bad texture", "[[object]]\nshape = \"sphere\"\nradius = 1.0\ntexture = \"plasma\"\n"},
		{"zero radius", "[[object]]\nshape = \"sphere\"\n"},
		{"bad density", "[[medium]]\nshape = \"sphere\"\nradius = 1.0\ndensity = 0.0\n"},
		{"image without file", "[[object]]\nshape = \"sphere\"\nradius = 1.0\ntexture = \"image\"\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeScene(t, c.body)
			_, _, err := LoadTOML(path)
			require.Error(t, err)
		})
	}
}

func TestLoadTOMLMissingFile(t *testing.T) {
	_, _, err := LoadTOML("no-such-scene.toml")
	require.Error(t, err)
}
