package geometry

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/material"
)

// MockShape for testing
type MockShape struct {
	boundingBox core.AABB
	hitFn       func(ray core.Ray, rayT core.Interval, rec *material.HitRecord) bool
}

func (m MockShape) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	return m.hitFn(ray, rayT, rec)
}

func (m MockShape) BoundingBox() core.AABB {
	return m.boundingBox
}

func neverHit(ray core.Ray, rayT core.Interval, rec *material.HitRecord) bool {
	return false
}

func mockRow(n int) []Hittable {
	shapes := make([]Hittable, n)
	for i := 0; i < n; i++ {
		shapes[i] = MockShape{
			boundingBox: core.NewAABB(core.NewVec3(float64(i), 0, 0), core.NewVec3(float64(i)+1, 1, 1)),
			hitFn:       neverHit,
		}
	}
	return shapes
}

// randomScene mixes spheres and quads with a handful of shared materials
func randomScene(seed int64, n int) []Hittable {
	sampler := core.NewSeededSampler(seed)
	materials := []material.Material{
		material.NewLambertian(core.NewVec3(0.8, 0.2, 0.2)),
		material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.1),
		material.NewDielectric(1.5),
	}

	objects := make([]Hittable, 0, n)
	for i := 0; i < n; i++ {
		mat := materials[i%len(materials)]
		center := core.RandomVec3(sampler, -20, 20)
		if i%4 == 3 {
			u := core.RandomVec3(sampler, -2, 2)
			v := core.RandomVec3(sampler, -2, 2)
			objects = append(objects, NewQuad(center, u, v, mat))
		} else {
			objects = append(objects, NewSphere(center, core.RandomRange(sampler, 0.2, 1.5), mat))
		}
	}
	return objects
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	objects := randomScene(42, 300)
	linear := NewHittableList(objects...)

	configs := []struct {
		name   string
		config BVHConfig
	}{
		{"Centroid", DefaultBVHConfig()},
		{"Median sort", BVHConfig{Strategy: SplitMedianSort}},
		{"Centroid parallel", BVHConfig{Strategy: SplitCentroid, ParallelThreshold: 8, MaxWorkers: 4}},
		{"Median parallel", BVHConfig{Strategy: SplitMedianSort, ParallelThreshold: 8, MaxWorkers: 4}},
		{"Centroid large leaves", BVHConfig{Strategy: SplitCentroid, LeafSize: 16}},
	}

	for _, tc := range configs {
		t.Run(tc.name, func(t *testing.T) {
			bvh := NewBVH(objects, tc.config)
			if bvh.BoundingBox() != linear.BoundingBox() {
				t.Errorf("BVH box %v differs from list box %v", bvh.BoundingBox(), linear.BoundingBox())
			}

			sampler := core.NewSeededSampler(7)
			hits := 0
			for i := 0; i < 3000; i++ {
				origin := core.RandomVec3(sampler, -30, 30)
				direction := core.RandomUnitVector(sampler)
				ray := core.NewRay(origin, direction)

				var expected, got material.HitRecord
				expectedHit := linear.Hit(ray, testRayT, &expected, nil)
				gotHit := bvh.Hit(ray, testRayT, &got, nil)

				if expectedHit != gotHit {
					t.Fatalf("Ray %d: linear hit=%v, BVH hit=%v", i, expectedHit, gotHit)
				}
				if !expectedHit {
					continue
				}
				hits++
				if math.Abs(expected.T-got.T) > 1e-12 {
					t.Fatalf("Ray %d: linear t=%f, BVH t=%f", i, expected.T, got.T)
				}
				if expected.Point.Subtract(got.Point).Length() > 1e-9 {
					t.Fatalf("Ray %d: linear point %v, BVH point %v", i, expected.Point, got.Point)
				}
				if expected.Material != got.Material {
					t.Fatalf("Ray %d: materials differ", i)
				}
			}
			if hits == 0 {
				t.Fatal("Test scene produced no hits")
			}
		})
	}
}

func TestBVH_LeafSizeBoundary(t *testing.T) {
	tests := []struct {
		name           string
		config         BVHConfig
		count          int
		expectedNodes  int
		expectedLeaves int
	}{
		{"Centroid at leaf size", DefaultBVHConfig(), 4, 1, 1},
		{"Centroid above leaf size", DefaultBVHConfig(), 5, 3, 2},
		{"Median single", BVHConfig{Strategy: SplitMedianSort}, 1, 1, 1},
		{"Median pair stays together", BVHConfig{Strategy: SplitMedianSort}, 2, 1, 1},
		{"Median triple splits", BVHConfig{Strategy: SplitMedianSort}, 3, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := NewBVH(mockRow(tt.count), tt.config).Stats()
			if stats.Nodes != tt.expectedNodes {
				t.Errorf("Expected %d nodes, got %d", tt.expectedNodes, stats.Nodes)
			}
			if stats.Leaves != tt.expectedLeaves {
				t.Errorf("Expected %d leaves, got %d", tt.expectedLeaves, stats.Leaves)
			}
			if stats.Primitives != tt.count {
				t.Errorf("Expected %d primitives, got %d", tt.count, stats.Primitives)
			}
		})
	}
}

func TestBVH_EmptyAndSingleShape(t *testing.T) {
	empty := NewBVH(nil, DefaultBVHConfig())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	var rec material.HitRecord
	if empty.Hit(ray, testRayT, &rec, nil) {
		t.Error("Expected no hit for empty BVH")
	}
	if !empty.BoundingBox().IsEmpty() {
		t.Errorf("Expected empty bounding box, got %v", empty.BoundingBox())
	}
	if stats := empty.Stats(); stats.Nodes != 0 {
		t.Errorf("Expected 0 nodes, got %d", stats.Nodes)
	}

	sphere := NewSphere(core.NewVec3(5, 0, 0), 1, nil)
	single := NewBVH([]Hittable{sphere}, DefaultBVHConfig())
	if !single.Hit(ray, testRayT, &rec, nil) {
		t.Fatal("Expected hit on single-sphere BVH")
	}
	if math.Abs(rec.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %f", rec.T)
	}
	if single.BoundingBox() != sphere.BoundingBox() {
		t.Errorf("Expected BVH box to equal the sphere's box")
	}
}

func TestBVH_CoincidentCentroidsFormOneLeaf(t *testing.T) {
	shapes := make([]Hittable, 10)
	for i := range shapes {
		shapes[i] = MockShape{
			boundingBox: core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1)),
			hitFn:       neverHit,
		}
	}

	stats := NewBVH(shapes, DefaultBVHConfig()).Stats()
	if stats.Nodes != 1 || stats.MaxLeafSize != 10 {
		t.Errorf("Expected a single leaf of 10, got %s", stats)
	}
}

func TestBVH_TreeShapeIsDeterministic(t *testing.T) {
	objects := randomScene(99, 2000)
	ids := make(map[Hittable]int, len(objects))
	for i, object := range objects {
		ids[object] = i
	}

	for _, strategy := range []SplitStrategy{SplitCentroid, SplitMedianSort} {
		t.Run(strategy.String(), func(t *testing.T) {
			serial := NewBVH(objects, BVHConfig{Strategy: strategy, ParallelThreshold: 0})
			parallel := NewBVH(objects, BVHConfig{Strategy: strategy, ParallelThreshold: 2, MaxWorkers: 8})

			serialShape := treeShape(serial, ids)
			parallelShape := treeShape(parallel, ids)
			if serialShape != parallelShape {
				t.Error("Serial and parallel builds produced different trees")
			}
			if again := treeShape(NewBVH(objects, BVHConfig{Strategy: strategy, ParallelThreshold: 2}), ids); again != parallelShape {
				t.Error("Repeated parallel builds produced different trees")
			}
		})
	}
}

func TestBVH_BalancedAndComplete(t *testing.T) {
	objects := randomScene(5, 1000)
	bvh := NewBVH(objects, DefaultBVHConfig())
	stats := bvh.Stats()

	if stats.Nodes != 2*stats.Leaves-1 {
		t.Errorf("Binary tree invariant broken: %s", stats)
	}
	// Median partitioning keeps depth close to log2(n / leafSize)
	if stats.MaxDepth > 10 {
		t.Errorf("Expected depth at most 10 for 1000 primitives, got %d", stats.MaxDepth)
	}

	// Every primitive appears in exactly one leaf and each node box holds its children
	seen := make(map[Hittable]int)
	var walk func(index int32)
	walk = func(index int32) {
		node := &bvh.nodes[index]
		if node.isLeaf() {
			for _, object := range bvh.objects[node.start : node.start+node.count] {
				seen[object]++
				if node.bbox.Union(object.BoundingBox()) != node.bbox {
					t.Fatalf("Leaf box does not contain its primitive")
				}
			}
			return
		}
		for _, child := range []int32{node.left, node.right} {
			if node.bbox.Union(bvh.nodes[child].bbox) != node.bbox {
				t.Fatalf("Node box does not contain child box")
			}
			walk(child)
		}
	}
	walk(0)

	if len(seen) != len(objects) {
		t.Errorf("Expected %d distinct primitives in leaves, got %d", len(objects), len(seen))
	}
	for _, count := range seen {
		if count != 1 {
			t.Fatalf("Primitive referenced by %d leaves", count)
		}
	}
}

func TestBVH_FindsClosestAmongOverlapping(t *testing.T) {
	// A row of spheres along -Z; the first one must win whatever the traversal order
	near := material.NewLambertian(core.NewVec3(1, 0, 0))
	other := material.NewLambertian(core.NewVec3(0, 1, 0))
	objects := []Hittable{}
	for i := 10; i >= 1; i-- {
		mat := other
		if i == 1 {
			mat = near
		}
		objects = append(objects, NewSphere(core.NewVec3(0, 0, -3*float64(i)), 1, mat))
	}

	for _, strategy := range []SplitStrategy{SplitCentroid, SplitMedianSort} {
		bvh := NewBVH(objects, BVHConfig{Strategy: strategy, LeafSize: 1})
		for _, direction := range []core.Vec3{core.NewVec3(0, 0, -1), core.NewVec3(0, 0.0001, -1)} {
			var rec material.HitRecord
			if !bvh.Hit(core.NewRay(core.Vec3{}, direction), testRayT, &rec, nil) {
				t.Fatalf("%s: expected hit", strategy)
			}
			if rec.Material != near || math.Abs(rec.T-2) > 1e-3 {
				t.Errorf("%s: expected nearest sphere at t≈2, got t=%f", strategy, rec.T)
			}
		}

		// From the far end the last sphere is nearest
		var rec material.HitRecord
		if !bvh.Hit(core.NewRay(core.NewVec3(0, 0, -40), core.NewVec3(0, 0, 1)), testRayT, &rec, nil) {
			t.Fatalf("%s: expected hit from the far end", strategy)
		}
		if math.Abs(rec.T-9) > 1e-9 {
			t.Errorf("%s: expected t=9 from the far end, got %f", strategy, rec.T)
		}
	}
}

func TestSelectNth(t *testing.T) {
	sampler := core.NewSeededSampler(3)
	for trial := 0; trial < 50; trial++ {
		n := 1 + int(sampler.Get1D()*40)
		entries := make([]bvhEntry, n)
		values := make([]float64, n)
		for i := range entries {
			// Coarse values force plenty of duplicates
			v := math.Floor(sampler.Get1D() * 8)
			entries[i].centroid = core.NewVec3(0, v, 0)
			values[i] = v
		}
		sort.Float64s(values)

		k := int(sampler.Get1D() * float64(n))
		selectNth(entries, k, 1)

		if entries[k].centroid.Y != values[k] {
			t.Fatalf("Trial %d: expected %f at %d, got %f", trial, values[k], k, entries[k].centroid.Y)
		}
		for i := 0; i < k; i++ {
			if entries[i].centroid.Y > entries[k].centroid.Y {
				t.Fatalf("Trial %d: entry %d greater than pivot", trial, i)
			}
		}
		for i := k + 1; i < n; i++ {
			if entries[i].centroid.Y < entries[k].centroid.Y {
				t.Fatalf("Trial %d: entry %d smaller than pivot", trial, i)
			}
		}
	}
}

func TestParseSplitStrategy(t *testing.T) {
	tests := []struct {
		input    string
		expected SplitStrategy
		wantErr  bool
	}{
		{"centroid", SplitCentroid, false},
		{"", SplitCentroid, false},
		{"Median", SplitMedianSort, false},
		{"sort", SplitMedianSort, false},
		{"octree", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSplitStrategy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// treeShape serializes the tree structure independently of node index assignment
func treeShape(bvh *BVH, ids map[Hittable]int) string {
	var sb strings.Builder
	var walk func(index int32)
	walk = func(index int32) {
		node := &bvh.nodes[index]
		if node.isLeaf() {
			sb.WriteString("[")
			for _, object := range bvh.objects[node.start : node.start+node.count] {
				fmt.Fprintf(&sb, "%d,", ids[object])
			}
			sb.WriteString("]")
			return
		}
		fmt.Fprintf(&sb, "(%d ", node.axis)
		walk(node.left)
		walk(node.right)
		sb.WriteString(")")
	}
	walk(0)
	return sb.String()
}

func BenchmarkBVHBuild(b *testing.B) {
	objects := randomScene(11, 20000)
	for _, strategy := range []SplitStrategy{SplitCentroid, SplitMedianSort} {
		b.Run(strategy.String(), func(b *testing.B) {
			config := DefaultBVHConfig()
			config.Strategy = strategy
			for i := 0; i < b.N; i++ {
				NewBVH(objects, config)
			}
		})
	}
}

func BenchmarkBVHHit(b *testing.B) {
	objects := randomScene(11, 20000)
	sampler := core.NewSeededSampler(12)
	rays := make([]core.Ray, 1024)
	for i := range rays {
		rays[i] = core.NewRay(core.RandomVec3(sampler, -25, 25), core.RandomUnitVector(sampler))
	}

	for _, strategy := range []SplitStrategy{SplitCentroid, SplitMedianSort} {
		b.Run(strategy.String(), func(b *testing.B) {
			config := DefaultBVHConfig()
			config.Strategy = strategy
			config.LeafSize = 0
			bvh := NewBVH(objects, config)
			var rec material.HitRecord
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				bvh.Hit(rays[i%len(rays)], testRayT, &rec, nil)
			}
		})
	}
}
