package vmath

import (
	"testing"
)

func TestRandDeterministic(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)
	for i := 0; i < 1000; i++ {
		if a.Float() != b.Float() {
			t.Fatalf("same seed diverged at step %d", i)
		}
	}
}

func TestRandRange(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 10000; i++ {
		v := r.Float()
		if v < 0 || v >= 1 {
			t.Fatalf("Float out of [0,1): %v", v)
		}
		w := r.FloatRange(-2, 5)
		if w < -2 || w >= 5 {
			t.Fatalf("FloatRange out of [-2,5): %v", w)
		}
	}
}

func TestRandZeroSeed(t *testing.T) {
	r := NewRand(0)
	if r.Float() == r.Float() && r.Float() == r.Float() {
		t.Error("zero-seeded generator looks stuck")
	}
}

func TestInUnitSphere(t *testing.T) {
	r := NewRand(99)
	for i := 0; i < 1000; i++ {
		p := r.InUnitSphere()
		if p.LengthSquared() >= 1 {
			t.Fatalf("point outside unit sphere: %v", p)
		}
	}
}

func TestUnitVectorLength(t *testing.T) {
	r := NewRand(3)
	for i := 0; i < 1000; i++ {
		l := r.UnitVector().Length()
		if l < 1-1e-9 || l > 1+1e-9 {
			t.Fatalf("unit vector length %v", l)
		}
	}
}

func TestInUnitDisk(t *testing.T) {
	r := NewRand(11)
	for i := 0; i < 1000; i++ {
		p := r.InUnitDisk()
		if p.Z != 0 || p.LengthSquared() >= 1 {
			t.Fatalf("point outside unit disk: %v", p)
		}
	}
}
