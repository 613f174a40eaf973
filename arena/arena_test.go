package arena

import (
	"testing"
	"unsafe"
)

func TestAlignment(t *testing.T) {
	var a Arena
	for _, align := range []uintptr{1, 2, 4, 8, 16, 64} {
		for i := 0; i < 50; i++ {
			p := a.AllocRaw(3, align)
			if uintptr(p)%align != 0 {
				t.Fatalf("allocation not aligned to %d", align)
			}
		}
	}
}

func TestDistinctAllocations(t *testing.T) {
	var a Arena
	seen := map[uintptr]bool{}
	for i := 0; i < 1000; i++ {
		p := uintptr(a.AllocRaw(16, 8))
		if seen[p] {
			t.Fatalf("allocation %d reused address %x", i, p)
		}
		seen[p] = true
	}
}

func TestValuesSurvive(t *testing.T) {
	var a Arena
	ptrs := make([]*int64, 500)
	for i := range ptrs {
		ptrs[i] = Put(&a, int64(i*7))
	}
	for i, p := range ptrs {
		if *p != int64(i*7) {
			t.Fatalf("value %d clobbered: got %d", i, *p)
		}
	}
}

func TestOversizeAllocation(t *testing.T) {
	var a Arena
	p := a.AllocRaw(SegmentSize*3, 64)
	if uintptr(p)%64 != 0 {
		t.Error("oversize allocation not aligned")
	}
	// Touch the whole range
	b := unsafe.Slice((*byte)(p), SegmentSize*3)
	for i := range b {
		b[i] = byte(i)
	}
	if len(a.unfinished) != 0 {
		t.Error("oversize request should not create segments")
	}
}

func TestResidualPacking(t *testing.T) {
	var a Arena
	// A large-ish allocation opens a segment with a residual tail
	a.AllocRaw(SegmentSize-128, 8)
	if len(a.unfinished) != 1 {
		t.Fatalf("expected 1 unfinished segment, got %d", len(a.unfinished))
	}
	// A small one must pack into the residual instead of opening a
	// new segment
	a.AllocRaw(64, 8)
	if len(a.unfinished) != 1 {
		t.Fatalf("expected residual reuse, got %d segments", len(a.unfinished))
	}
}

func TestSlice(t *testing.T) {
	var a Arena
	s := Slice[float64](&a, 17)
	if len(s) != 17 {
		t.Fatalf("expected len 17, got %d", len(s))
	}
	for i := range s {
		s[i] = float64(i)
	}
	for i := range s {
		if s[i] != float64(i) {
			t.Fatal("slice storage clobbered")
		}
	}
	if Slice[float64](&a, 0) != nil {
		t.Error("zero-length slice should be nil")
	}
}
