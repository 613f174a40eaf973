// Package bvh builds and traverses a bounding volume hierarchy over
// scene primitives.
//
// Nodes live in one flat array. An interior node stores the index of
// its left child; the right child is always left+1, and both children
// precede their parent, because the build appends left then right
// before emitting the parent.
package bvh

import (
	"github.com/lixenwraith/lumen/geometry"
	"github.com/lixenwraith/lumen/vmath"
)

// Node is one flat-array BVH node. Left ≥ 0 indexes the left child
// (right child at Left+1); Left < 0 marks a leaf of -Left primitives
// starting at ObjectIndex
type Node struct {
	BBox        geometry.AABB
	ObjectIndex int32
	Left        int32
}

// Tree is a BVH over a primitive slice. The slice is a non-owning view
// that the build partitions in place
type Tree struct {
	Nodes   []Node
	Root    Node
	Objects []*geometry.Primitive
}

// Build constructs a tree over the objects, reordering the slice
func Build(objects []*geometry.Primitive) *Tree {
	t := &Tree{Objects: objects}
	t.Root = t.buildNode(objects, 0, int32(len(objects)))
	return t
}

func (t *Tree) addNode(n Node) int32 {
	t.Nodes = append(t.Nodes, n)
	return int32(len(t.Nodes) - 1)
}

func (t *Tree) buildNode(objects []*geometry.Primitive, start, end int32) Node {
	// Build the bounding box of the span of source objects
	bbox := geometry.EmptyAABB
	for i := start; i < end; i++ {
		bbox = geometry.Union(bbox, objects[i].Bounds())
	}

	if end-start == 1 {
		return Node{BBox: bbox, ObjectIndex: start, Left: -1}
	}

	// Split in half along the longest axis
	axis := bbox.LongestAxis()
	partitionPoint := bbox.AxisInterval(axis).MidPoint()

	mid := partition(objects[start:end], func(p *geometry.Primitive) bool {
		return p.Bounds().AxisInterval(axis).MidPoint() <= partitionPoint
	}) + start

	if mid == start || mid == end {
		// Cannot split these objects
		return Node{BBox: bbox, ObjectIndex: start, Left: -(end - start)}
	}

	left := t.buildNode(objects, start, mid)
	right := t.buildNode(objects, mid, end)
	leftIndex := t.addNode(left)
	t.addNode(right) // right child lands at leftIndex+1

	return Node{BBox: bbox, ObjectIndex: start, Left: leftIndex}
}

// partition moves elements satisfying pred to the front and returns
// the boundary index
func partition(s []*geometry.Primitive, pred func(*geometry.Primitive) bool) int32 {
	i := 0
	for j, p := range s {
		if pred(p) {
			s[i], s[j] = s[j], s[i]
			i++
		}
	}
	return int32(i)
}

// HitSelect finds the closest primitive hit below *closest, tightening
// it in place. Returns nil on a miss
func (t *Tree) HitSelect(r vmath.Ray, closest *float64) *geometry.Primitive {
	if len(t.Objects) == 0 {
		return nil
	}
	return t.hitNode(r, closest, &t.Root)
}

func (t *Tree) hitNode(r vmath.Ray, closest *float64, n *Node) *geometry.Primitive {
	if !n.BBox.HitWithin(r, vmath.Interval{Min: geometry.MinRayDist, Max: *closest}) {
		return nil
	}
	if n.Left < 0 {
		span := t.Objects[n.ObjectIndex : n.ObjectIndex-n.Left]
		return geometry.HitSpan(span, r, closest)
	}

	hitLeft := t.hitNode(r, closest, &t.Nodes[n.Left])
	hitRight := t.hitNode(r, closest, &t.Nodes[n.Left+1])
	// The right branch ran against the tightened bound, so its hit,
	// if any, is the closer one
	if hitRight != nil {
		return hitRight
	}
	return hitLeft
}

// Bounds returns the root bounding box
func (t *Tree) Bounds() geometry.AABB {
	return t.Root.BBox
}
