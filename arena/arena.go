// Package arena provides a leaking segmented bump allocator for scene
// construction. Scene entities are built once, shared read-only across
// workers, and live until the process exits; nothing is ever freed.
//
// Placing the whole scene in a handful of 4 KiB segments keeps the hot
// traversal data adjacent instead of scattered across the heap.
//
// Arena memory is untyped bytes: the collector does not trace pointers
// stored inside it. Anything referenced from an arena-resident value
// must itself live in the arena, or be rooted elsewhere for the life
// of the process.
package arena

import (
	"unsafe"
)

// SegmentSize is the granularity of arena growth
const SegmentSize = 4096

type segment struct {
	data []byte
	used uintptr
}

// Arena bump-allocates within segments. Segments with remaining space
// wait in the unfinished queue; full ones are forgotten. Not safe for
// concurrent use: the scene is built single-threaded before rendering
type Arena struct {
	// unfinished holds partially filled segments, most recently
	// useful first
	unfinished []*segment
	// oversize blocks get dedicated allocations, pinned here
	oversize [][]byte
}

// allocInSegment tries to place size bytes at the segment's aligned
// bump position. Returns the start offset and whether it fit
func allocInSegment(s *segment, size, alignMask uintptr) (uintptr, bool) {
	start := (s.used + alignMask) &^ alignMask
	end := start + size
	if end > SegmentSize {
		return 0, false
	}
	return start, true
}

// AllocRaw returns size bytes aligned to align, which must be a power
// of two. Requests of a segment or more bypass the queue entirely and
// get a dedicated allocation
func (a *Arena) AllocRaw(size, align uintptr) unsafe.Pointer {
	if size >= SegmentSize {
		// Not going to fit in a segment and needs no residual
		// management, so take a dedicated block
		block := make([]byte, size+align-1)
		base := uintptr(unsafe.Pointer(unsafe.SliceData(block)))
		idx := ((base + align - 1) &^ (align - 1)) - base
		a.oversize = append(a.oversize, block)
		return unsafe.Pointer(&block[idx])
	}

	alignMask := align - 1

	// Try to finish a waiting segment first
	for i, s := range a.unfinished {
		start, ok := allocInSegment(s, size, alignMask)
		if !ok {
			continue
		}
		end := start + size
		s.used = end
		if SegmentSize-end < align {
			// Exhausted: forget it
			a.unfinished[i] = a.unfinished[len(a.unfinished)-1]
			a.unfinished = a.unfinished[:len(a.unfinished)-1]
		} else if i != 0 {
			// Promote so the next request tries it sooner
			a.unfinished[0], a.unfinished[i] = a.unfinished[i], a.unfinished[0]
		}
		return unsafe.Pointer(&s.data[start])
	}

	// New segment. Queue it at the back so older, emptier segments
	// keep getting packed first
	s := &segment{data: make([]byte, SegmentSize)}
	start, _ := allocInSegment(s, size, alignMask)
	s.used = start + size
	a.unfinished = append(a.unfinished, s)
	return unsafe.Pointer(&s.data[start])
}

// New places a zeroed T in the arena
func New[T any](a *Arena) *T {
	var zero T
	p := a.AllocRaw(unsafe.Sizeof(zero), unsafe.Alignof(zero))
	return (*T)(p)
}

// Put copies v into the arena and returns the stable pointer
func Put[T any](a *Arena, v T) *T {
	p := New[T](a)
	*p = v
	return p
}

// Slice carves a zeroed []T of the given length out of the arena
func Slice[T any](a *Arena, n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	p := a.AllocRaw(uintptr(n)*unsafe.Sizeof(zero), unsafe.Alignof(zero))
	return unsafe.Slice((*T)(p), n)
}
