// Package scene assembles renderable worlds: primitives paired with
// materials and textures, grouped into BVH trees, plus participating
// media sampled separately from surface intersections.
//
// All scene entities are placed in one arena at build time and are
// immutable afterwards; workers share them without synchronization.
package scene

import (
	"github.com/lixenwraith/lumen/arena"
	"github.com/lixenwraith/lumen/asset"
	"github.com/lixenwraith/lumen/bvh"
	"github.com/lixenwraith/lumen/geometry"
	"github.com/lixenwraith/lumen/material"
	"github.com/lixenwraith/lumen/texture"
	"github.com/lixenwraith/lumen/vmath"
)

// Surface pairs the material and texture of one primitive. Primitives
// address their surface through their Rel index
type Surface struct {
	Mat material.Material
	Tex *texture.Texture
}

// Camera describes the view a scene wants, independent of image
// resolution and sampling, which come from the command line
type Camera struct {
	AspectRatio  float64
	VFov         float64
	LookFrom     vmath.Vec3
	LookAt       vmath.Vec3
	VUp          vmath.Vec3
	DefocusAngle float64
	FocusDist    float64
	Background   vmath.Vec3
}

// World aggregates everything hit testing needs. Trees answer the bulk
// of intersections; Objects holds primitives kept out of any tree;
// Mediums are sampled stochastically alongside surface hits
type World struct {
	Trees    []*bvh.Tree
	Objects  []*geometry.Primitive
	Mediums  []geometry.ConstantMedium
	Surfaces []Surface

	arena *arena.Arena
	// images referenced from arena-resident textures are rooted here;
	// the collector cannot see through arena bytes
	images  []*asset.Image
	pending []*geometry.Primitive
}

// NewWorld starts an empty world with its own arena
func NewWorld() *World {
	return &World{arena: &arena.Arena{}}
}

// Arena exposes the world's allocator for callers that co-locate
// their own construction data with the scene
func (w *World) Arena() *arena.Arena {
	return w.arena
}

// Texture places a texture node in the scene arena
func (w *World) Texture(t texture.Texture) *texture.Texture {
	if t.Kind == texture.KindImage {
		w.images = append(w.images, t.Image)
	}
	return arena.Put(w.arena, t)
}

// SolidTexture is shorthand for a solid color node
func (w *World) SolidTexture(c vmath.Vec3) *texture.Texture {
	return w.Texture(texture.NewSolid(c))
}

// intern copies a primitive into the arena. Transformed wrappers pull
// their inner primitive and transform storage in with them: arena
// memory is invisible to the collector, so nothing reachable from it
// may stay on the regular heap
func (w *World) intern(p geometry.Primitive) *geometry.Primitive {
	if p.Kind == geometry.KindTransformed {
		p.Inner = w.intern(*p.Inner)
		ts := arena.Slice[geometry.Transform](w.arena, len(p.Transforms))
		copy(ts, p.Transforms)
		p.Transforms = ts
	}
	return arena.Put(w.arena, p)
}

// Add places a primitive in the arena, wires its surface pairing, and
// queues it for the next tree. The returned pointer stays valid for
// the life of the world
func (w *World) Add(p geometry.Primitive, mat material.Material, tex *texture.Texture) *geometry.Primitive {
	p.Rel = int32(len(w.Surfaces))
	ptr := w.intern(p)
	w.Surfaces = append(w.Surfaces, Surface{Mat: mat, Tex: tex})
	w.pending = append(w.pending, ptr)
	return ptr
}

// AddMedium registers a constant-density medium. The boundary is only
// used for containment sampling and never surface-hit directly
func (w *World) AddMedium(boundary geometry.Primitive, density float64, albedo vmath.Vec3) {
	w.Mediums = append(w.Mediums, geometry.NewConstantMedium(w.intern(boundary), density, albedo))
}

// SplitTree compiles the primitives queued since the last split into
// one BVH tree
func (w *World) SplitTree() {
	if len(w.pending) == 0 {
		return
	}
	objects := arena.Slice[*geometry.Primitive](w.arena, len(w.pending))
	copy(objects, w.pending)
	w.Trees = append(w.Trees, bvh.Build(objects))
	w.pending = w.pending[:0]
}

// Finalize turns any still-queued primitives into the linear list that
// is scanned alongside the trees. Must be called once, after the last
// Add
func (w *World) Finalize() {
	w.Objects = append(w.Objects, w.pending...)
	w.pending = nil
}

// HitSelect returns the closest surface hit along the ray, if any,
// with the tightened hit parameter
func (w *World) HitSelect(r vmath.Ray) (*geometry.Primitive, float64) {
	closest := vmath.Infinity
	var best *geometry.Primitive

	for _, tree := range w.Trees {
		if next := tree.HitSelect(r, &closest); next != nil {
			best = next
		}
	}

	if next := geometry.HitSpan(w.Objects, r, &closest); next != nil {
		best = next
	}

	return best, closest
}

// SampleConstantMediums draws stochastic scatter events from every
// registered medium along the ray up to maxT and returns the closest
// one that fired
func (w *World) SampleConstantMediums(r vmath.Ray, maxT float64, rng *vmath.Rand) (*geometry.ConstantMedium, float64, bool) {
	bestT := maxT
	var best *geometry.ConstantMedium

	for i := range w.Mediums {
		m := &w.Mediums[i]
		if t, ok := m.SampleHit(r, bestT, rng); ok && (best == nil || t < bestT) {
			best = m
			bestT = t
		}
	}

	return best, bestT, best != nil
}

// Surface returns the material/texture pairing of a primitive
func (w *World) Surface(p *geometry.Primitive) Surface {
	return w.Surfaces[p.Rel]
}
