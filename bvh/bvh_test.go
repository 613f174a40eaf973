package bvh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/lumen/geometry"
	"github.com/lixenwraith/lumen/vmath"
)

func sphereGrid(n int) []*geometry.Primitive {
	objects := make([]*geometry.Primitive, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p := geometry.NewSpherePrim(vmath.V3(float64(i)*3, float64(j)*3, -10), 1)
			objects = append(objects, &p)
		}
	}
	return objects
}

// scalarClosest is the reference the tree must agree with
func scalarClosest(objects []*geometry.Primitive, r vmath.Ray) (*geometry.Primitive, float64) {
	closest := vmath.Infinity
	best := geometry.HitSpan(objects, r, &closest)
	return best, closest
}

func TestFlatTreeRightChildInvariant(t *testing.T) {
	tree := Build(sphereGrid(6))

	check := func(n Node, idx int32) {
		if n.Left < 0 {
			return
		}
		right := n.Left + 1
		require.Less(t, int(right), len(tree.Nodes), "right child exists")
		require.Less(t, n.Left, idx, "children precede parent")
	}
	for i, n := range tree.Nodes {
		check(n, int32(i))
	}
	check(tree.Root, int32(len(tree.Nodes)))
}

func TestLeafCountsCoverAllObjects(t *testing.T) {
	objects := sphereGrid(5)
	tree := Build(objects)

	covered := make([]bool, len(objects))
	mark := func(n Node) {
		if n.Left >= 0 {
			return
		}
		for i := n.ObjectIndex; i < n.ObjectIndex-n.Left; i++ {
			require.False(t, covered[i], "object %d in two leaves", i)
			covered[i] = true
		}
	}
	for _, n := range tree.Nodes {
		mark(n)
	}
	mark(tree.Root)

	for i, c := range covered {
		assert.True(t, c, "object %d not covered by any leaf", i)
	}
}

func TestRootBoxCoversPrimitives(t *testing.T) {
	// Every ray that hits a primitive must also cross the root box.
	// Sample rays that barely graze the outermost spheres
	objects := sphereGrid(4)
	tree := Build(objects)
	root := tree.Bounds()

	rng := vmath.NewRand(101)
	for i := 0; i < 2000; i++ {
		object := objects[int(rng.Float()*float64(len(objects)))]
		sphere := object.Sphere
		// Aim at a point near the sphere's rim
		target := sphere.Center1.Add(rng.UnitVector().Scale(sphere.Radius * 0.999))
		orig := vmath.V3(rng.FloatRange(-30, 30), rng.FloatRange(-30, 30), 20)
		r := vmath.Ray{Orig: orig, Dir: target.Sub(orig)}

		if _, ok := object.Hit(r, vmath.Interval{Min: geometry.MinRayDist, Max: vmath.Infinity}); ok {
			if !root.HitWithin(r, vmath.Interval{Min: geometry.MinRayDist, Max: vmath.Infinity}) {
				t.Fatalf("ray hits primitive but misses root box: %+v", r)
			}
		}
	}
}

func TestTraversalMatchesScalarReference(t *testing.T) {
	// S5 generalized: traversal result equals the linear scan
	objects := sphereGrid(6)
	scratch := make([]*geometry.Primitive, len(objects))
	copy(scratch, objects)
	tree := Build(scratch)

	rng := vmath.NewRand(999)
	hits := 0
	for i := 0; i < 5000; i++ {
		r := vmath.Ray{
			Orig: vmath.V3(rng.FloatRange(-5, 20), rng.FloatRange(-5, 20), 15),
			Dir:  vmath.V3(rng.FloatRange(-0.3, 0.3), rng.FloatRange(-0.3, 0.3), -1),
		}

		wantPrim, wantT := scalarClosest(objects, r)

		gotT := vmath.Infinity
		gotPrim := tree.HitSelect(r, &gotT)

		require.Equal(t, wantPrim == nil, gotPrim == nil, "hit disagreement for ray %+v", r)
		if wantPrim != nil {
			require.InDelta(t, wantT, gotT, 1e-12)
			require.Equal(t, wantPrim, gotPrim)
			hits++
		}
	}
	require.Greater(t, hits, 100, "sanity: the sample must actually hit")
}

func TestOccluderWins(t *testing.T) {
	// S5: two primitives on one ray, the nearer one occludes
	front := geometry.NewSpherePrim(vmath.V3(0, 0, -3), 1)
	back := geometry.NewSpherePrim(vmath.V3(0, 0, -8), 1)
	objects := []*geometry.Primitive{&back, &front}
	tree := Build(objects)

	r := vmath.Ray{Orig: vmath.V3(0, 0, 0), Dir: vmath.V3(0, 0, -1)}
	closest := vmath.Infinity
	got := tree.HitSelect(r, &closest)

	require.NotNil(t, got)
	assert.Equal(t, &front, got)
	require.InDelta(t, 2.0, closest, 1e-12)
}

func TestDegeneratePartitionFallsBackToLeaf(t *testing.T) {
	// Identical midpoints cannot be split: the span becomes one leaf
	objects := make([]*geometry.Primitive, 0, 8)
	for i := 0; i < 8; i++ {
		p := geometry.NewSpherePrim(vmath.V3(0, 0, -5), 1)
		objects = append(objects, &p)
	}
	tree := Build(objects)

	require.Empty(t, tree.Nodes, "degenerate split emits a single leaf")
	require.Equal(t, int32(-8), tree.Root.Left)

	r := vmath.Ray{Orig: vmath.V3(0, 0, 0), Dir: vmath.V3(0, 0, -1)}
	closest := vmath.Infinity
	require.NotNil(t, tree.HitSelect(r, &closest))
}

func TestSingleObjectTree(t *testing.T) {
	p := geometry.NewSpherePrim(vmath.V3(0, 0, -5), 1)
	tree := Build([]*geometry.Primitive{&p})

	require.Equal(t, int32(-1), tree.Root.Left)
	closest := vmath.Infinity
	r := vmath.Ray{Orig: vmath.V3(0, 0, 0), Dir: vmath.V3(0, 0, -1)}
	require.NotNil(t, tree.HitSelect(r, &closest))
	require.InDelta(t, 4.0, closest, 1e-12)
}

func TestEmptyTree(t *testing.T) {
	tree := Build(nil)
	closest := vmath.Infinity
	r := vmath.Ray{Orig: vmath.V3(0, 0, 0), Dir: vmath.V3(0, 0, -1)}
	require.Nil(t, tree.HitSelect(r, &closest))
}
