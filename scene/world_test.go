package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lumen/geometry"
	"github.com/lixenwraith/lumen/material"
	"github.com/lixenwraith/lumen/vmath"
)

func TestHitSelectAcrossTreesAndIndividuals(t *testing.T) {
	w := NewWorld()

	// A far sphere compiled into a tree, a near one left individual
	far := w.Add(geometry.NewSpherePrim(vmath.V3(0, 0, -10), 1),
		material.NewLambertian(), w.SolidTexture(vmath.V3(0.5, 0.5, 0.5)))
	w.SplitTree()
	near := w.Add(geometry.NewSpherePrim(vmath.V3(0, 0, -3), 1),
		material.NewLambertian(), w.SolidTexture(vmath.V3(0.9, 0.1, 0.1)))
	w.Finalize()

	r := vmath.Ray{Orig: vmath.V3(0, 0, 0), Dir: vmath.V3(0, 0, -1)}
	prim, closest := w.HitSelect(r)

	require.NotNil(t, prim)
	assert.Equal(t, near, prim)
	require.InDelta(t, 2.0, closest, 1e-12)

	// Off to the side only the tree sphere is in the way
	r2 := vmath.Ray{Orig: vmath.V3(0, 3, 0), Dir: vmath.V3(0, -3, -10)}
	prim2, _ := w.HitSelect(r2)
	require.NotNil(t, prim2)
	assert.Equal(t, far, prim2)
}

func TestHitSelectMiss(t *testing.T) {
	w := NewWorld()
	w.Add(geometry.NewSpherePrim(vmath.V3(0, 0, -5), 1),
		material.NewLambertian(), w.SolidTexture(vmath.V3(1, 1, 1)))
	w.SplitTree()
	w.Finalize()

	r := vmath.Ray{Orig: vmath.V3(0, 0, 0), Dir: vmath.V3(0, 1, 0)}
	prim, _ := w.HitSelect(r)
	assert.Nil(t, prim)
}

func TestSurfaceLookup(t *testing.T) {
	w := NewWorld()
	tex := w.SolidTexture(vmath.V3(0.1, 0.2, 0.3))
	p := w.Add(geometry.NewSpherePrim(vmath.V3(0, 0, -5), 1), material.NewMetal(0.25), tex)
	w.Finalize()

	s := w.Surface(p)
	assert.Equal(t, material.KindMetal, s.Mat.Kind)
	assert.Equal(t, 0.25, s.Mat.Fuzz)
	assert.Equal(t, tex, s.Tex)
}

func TestSampleConstantMediumsPicksClosest(t *testing.T) {
	w := NewWorld()
	// Dense small ball right in front wins against a thin huge one
	w.AddMedium(geometry.NewSpherePrim(vmath.V3(0, 0, 0), 10000), 0.0001, vmath.V3(1, 0, 0))
	w.AddMedium(geometry.NewSpherePrim(vmath.V3(0, 0, 2), 1), 50, vmath.V3(0, 1, 0))
	w.Finalize()

	rng := vmath.NewRand(88)
	r := vmath.Ray{Orig: vmath.V3(0, 0, 0), Dir: vmath.V3(0, 0, 1)}

	denseWins := 0
	const trials = 2000
	for i := 0; i < trials; i++ {
		m, tHit, ok := w.SampleConstantMediums(r, vmath.Infinity, rng)
		if !ok {
			continue
		}
		require.LessOrEqual(t, tHit, 10000.0)
		if m.Albedo == vmath.V3(0, 1, 0) {
			denseWins++
			require.GreaterOrEqual(t, tHit, 1.0)
			require.LessOrEqual(t, tHit, 3.0)
		}
	}
	assert.Greater(t, denseWins, trials/2, "dense medium should dominate")
}

func TestSampleConstantMediumsRespectsSurface(t *testing.T) {
	w := NewWorld()
	w.AddMedium(geometry.NewSpherePrim(vmath.V3(0, 0, 0), 1000), 0.01, vmath.V3(1, 1, 1))
	w.Finalize()

	rng := vmath.NewRand(12)
	r := vmath.Ray{Orig: vmath.V3(0, 0, 0), Dir: vmath.V3(0, 0, 1)}
	for i := 0; i < 500; i++ {
		if _, tHit, ok := w.SampleConstantMediums(r, 2.0, rng); ok && tHit > 2.0 {
			t.Fatal("medium fired beyond the surface hit")
		}
	}
}

func TestBuiltinScenesConstruct(t *testing.T) {
	for _, name := range Names() {
		if name == "earth" || name == "final" {
			// These hunt for image files on disk; the loader's
			// magenta fallback is exercised in asset tests
			continue
		}
		w, cam, err := ByName(name)
		require.NoError(t, err, name)
		require.NotNil(t, w, name)
		require.NotZero(t, cam.AspectRatio, name)
		require.Greater(t, len(w.Surfaces), 0, name)
	}
}

func TestByNameUnknown(t *testing.T) {
	_, _, err := ByName("nope")
	require.ErrorIs(t, err, ErrUnknownScene)
}
