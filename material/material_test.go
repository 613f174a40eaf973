package material

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lumen/vmath"
)

func TestLambertianNeverFails(t *testing.T) {
	m := NewLambertian()
	rng := vmath.NewRand(1)
	n := vmath.V3(0, 1, 0)
	for i := 0; i < 1000; i++ {
		dir, ok := m.Scatter(rng, vmath.V3(0, -1, 0), n, true)
		require.True(t, ok)
		if dir.NearZero() {
			t.Fatal("degenerate direction escaped")
		}
	}
}

func TestMetalMirrorReflection(t *testing.T) {
	m := NewMetal(0)
	rng := vmath.NewRand(2)
	in := vmath.V3(1, -1, 0)
	n := vmath.V3(0, 1, 0)

	dir, ok := m.Scatter(rng, in, n, true)
	require.True(t, ok)

	want := vmath.V3(1, 1, 0).Unit()
	require.InDelta(t, 0, dir.Sub(want).Length(), 1e-12)
}

func TestMetalBelowHorizonFails(t *testing.T) {
	// Heavy fuzz pushes some samples below the surface; those must be
	// reported as absorbed
	m := NewMetal(3)
	rng := vmath.NewRand(3)
	in := vmath.V3(1, -1, 0)
	n := vmath.V3(0, 1, 0)

	failures := 0
	for i := 0; i < 1000; i++ {
		dir, ok := m.Scatter(rng, in, n, true)
		if !ok {
			failures++
			continue
		}
		if dir.Dot(n) <= 0 {
			t.Fatal("accepted scatter below horizon")
		}
	}
	if failures == 0 {
		t.Error("expected some below-horizon failures at fuzz=3")
	}
}

func TestDielectricStraightThrough(t *testing.T) {
	// Normal incidence refracts without bending
	m := NewDielectric(1.5)
	rng := vmath.NewRand(4)
	in := vmath.V3(0, 0, -1)
	n := vmath.V3(0, 0, 1)

	for i := 0; i < 100; i++ {
		dir, ok := m.Scatter(rng, in, n, true)
		require.True(t, ok)
		// Either reflected straight back or refracted straight through
		require.InDelta(t, 1, math.Abs(dir.Z)/dir.Length(), 1e-9)
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	// From inside glass at a grazing angle, refraction is impossible
	m := NewDielectric(1.5)
	rng := vmath.NewRand(5)
	in := vmath.V3(1, -0.2, 0).Unit()
	n := vmath.V3(0, 1, 0)

	for i := 0; i < 100; i++ {
		dir, ok := m.Scatter(rng, in, n, false)
		require.True(t, ok)
		want := Reflect(in, n)
		require.InDelta(t, 0, dir.Sub(want).Length(), 1e-9, "expected pure reflection")
	}
}

func TestSchlickMonotonicity(t *testing.T) {
	// Reflectance decreases monotonically over cosθ ∈ [0,1]
	for _, ri := range []float64{1.0 / 1.5, 1.5, 2.4} {
		prev := math.Inf(1)
		for i := 0; i <= 100; i++ {
			cos := float64(i) / 100
			r := Reflectance(cos, ri)
			if r > prev+1e-12 {
				t.Fatalf("reflectance not monotone at ri=%v cos=%v", ri, cos)
			}
			prev = r
		}
	}
}

func TestRefractSnell(t *testing.T) {
	// 45° into glass: sin(θt) = sin(45°)/1.5
	in := vmath.V3(1, -1, 0).Unit()
	n := vmath.V3(0, 1, 0)
	out := Refract(in, n, 1/1.5)

	sinIn := math.Sqrt2 / 2
	sinOut := math.Abs(out.Unit().X)
	require.InDelta(t, sinIn/1.5, sinOut, 1e-9)
}

func TestIsotropicUnitDirection(t *testing.T) {
	m := NewIsotropic()
	rng := vmath.NewRand(6)
	for i := 0; i < 100; i++ {
		dir, ok := m.Scatter(rng, vmath.V3(1, 0, 0), vmath.V3(0, 1, 0), true)
		require.True(t, ok)
		require.InDelta(t, 1, dir.Length(), 1e-9)
	}
}

func TestDiffuseLightDoesNotScatter(t *testing.T) {
	m := NewDiffuseLight()
	rng := vmath.NewRand(7)
	_, ok := m.Scatter(rng, vmath.V3(0, -1, 0), vmath.V3(0, 1, 0), true)
	require.False(t, ok)
}
