package geometry

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/material"
	"golang.org/x/sync/errgroup"
)

// SplitStrategy selects how the BVH partitions a primitive range
type SplitStrategy int

const (
	// SplitCentroid partitions around the median centroid on the axis of widest centroid spread
	SplitCentroid SplitStrategy = iota
	// SplitMedianSort sorts by box minimum on the longest axis and splits at the middle index
	SplitMedianSort
)

func (s SplitStrategy) String() string {
	switch s {
	case SplitCentroid:
		return "centroid"
	case SplitMedianSort:
		return "median"
	default:
		return fmt.Sprintf("SplitStrategy(%d)", int(s))
	}
}

// ParseSplitStrategy converts a strategy name ("centroid" or "median") to a SplitStrategy
func ParseSplitStrategy(name string) (SplitStrategy, error) {
	switch strings.ToLower(name) {
	case "centroid", "lbvh", "":
		return SplitCentroid, nil
	case "median", "sort":
		return SplitMedianSort, nil
	default:
		return 0, fmt.Errorf("unknown BVH strategy %q", name)
	}
}

// BVHConfig controls BVH construction
type BVHConfig struct {
	Strategy          SplitStrategy
	LeafSize          int // Max primitives per leaf; 0 uses the strategy default
	ParallelThreshold int // Ranges at least this large build their left subtree on another goroutine
	MaxWorkers        int // Goroutines used for construction; 0 uses GOMAXPROCS
}

// DefaultBVHConfig returns the default centroid-partitioned configuration
func DefaultBVHConfig() BVHConfig {
	return BVHConfig{
		Strategy:          SplitCentroid,
		LeafSize:          4,
		ParallelThreshold: 1024,
	}
}

func (c BVHConfig) leafSize() int {
	if c.LeafSize > 0 {
		return c.LeafSize
	}
	if c.Strategy == SplitMedianSort {
		return 2
	}
	return 4
}

// bvhNode is either an interior node with two children or a leaf over a
// contiguous range of the BVH's primitive array (count > 0).
type bvhNode struct {
	bbox  core.AABB
	left  int32
	right int32
	start int32
	count int32
	axis  uint8
}

func (n *bvhNode) isLeaf() bool {
	return n.count > 0
}

// bvhEntry caches a primitive's box and centroid for construction
type bvhEntry struct {
	object   Hittable
	bbox     core.AABB
	centroid core.Vec3
}

// BVH is a bounding volume hierarchy stored as flat node and primitive arrays.
// It is immutable after construction and safe for concurrent traversal.
type BVH struct {
	nodes   []bvhNode
	objects []Hittable // leaf ranges index into this slice
	bbox    core.AABB
}

// NewBVH builds a BVH over objects. The input slice is not modified.
func NewBVH(objects []Hittable, config BVHConfig) *BVH {
	if len(objects) == 0 {
		return &BVH{bbox: core.EmptyAABB}
	}

	entries := make([]bvhEntry, len(objects))
	for i, object := range objects {
		box := object.BoundingBox()
		entries[i] = bvhEntry{object: object, bbox: box, centroid: box.Centroid()}
	}

	// A binary tree over n primitives has at most 2n-1 nodes
	b := &bvhBuilder{
		config:  config,
		leaf:    config.leafSize(),
		entries: entries,
		nodes:   make([]bvhNode, 2*len(entries)-1),
	}

	workers := config.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	b.group.SetLimit(workers)

	root := b.allocNode()
	b.build(root, 0, len(entries))
	_ = b.group.Wait() // build never returns an error

	bvh := &BVH{
		nodes:   b.nodes[:b.nextNode.Load()],
		objects: make([]Hittable, len(entries)),
	}
	for i := range entries {
		bvh.objects[i] = entries[i].object
	}
	bvh.bbox = bvh.nodes[0].bbox
	return bvh
}

// NewBVHFromList builds a BVH over the objects of a list
func NewBVHFromList(list *HittableList, config BVHConfig) *BVH {
	return NewBVH(list.Objects, config)
}

// bvhBuilder holds shared construction state. Each build call writes only
// its own node and its own range of entries, so subtrees build concurrently.
type bvhBuilder struct {
	config   BVHConfig
	leaf     int
	entries  []bvhEntry
	nodes    []bvhNode
	nextNode atomic.Int32
	group    errgroup.Group
}

func (b *bvhBuilder) allocNode() int32 {
	return b.nextNode.Add(1) - 1
}

func (b *bvhBuilder) build(nodeIndex int32, start, end int) {
	node := &b.nodes[nodeIndex]

	bbox := core.EmptyAABB
	for i := start; i < end; i++ {
		bbox = bbox.Union(b.entries[i].bbox)
	}
	node.bbox = bbox

	count := end - start
	if count <= b.leaf {
		b.makeLeaf(node, start, count)
		return
	}

	var axis, mid int
	switch b.config.Strategy {
	case SplitMedianSort:
		axis = bbox.LongestAxis()
		b.sortByBoxMin(start, end, axis)
		mid = start + count/2
	default:
		centroidBounds := core.EmptyAABB
		for i := start; i < end; i++ {
			centroidBounds = centroidBounds.Union(pointBox(b.entries[i].centroid))
		}
		axis = centroidBounds.LongestAxis()
		if centroidBounds.Axis(axis).Size() <= 0 {
			// All centroids coincide, no split can separate them
			b.makeLeaf(node, start, count)
			return
		}
		mid = start + count/2
		selectNth(b.entries[start:end], mid-start, axis)
	}

	left := b.allocNode()
	right := b.allocNode()
	node.left = left
	node.right = right
	node.axis = uint8(axis)

	// The parent box is already final, so children need no join before returning
	if count >= b.config.ParallelThreshold && b.config.ParallelThreshold > 0 {
		if !b.group.TryGo(func() error {
			b.build(left, start, mid)
			return nil
		}) {
			b.build(left, start, mid)
		}
	} else {
		b.build(left, start, mid)
	}
	b.build(right, mid, end)
}

func (b *bvhBuilder) makeLeaf(node *bvhNode, start, count int) {
	node.start = int32(start)
	node.count = int32(count)
}

func (b *bvhBuilder) sortByBoxMin(start, end, axis int) {
	entries := b.entries[start:end]
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].bbox.Axis(axis).Min < entries[j].bbox.Axis(axis).Min
	})
}

// selectNth reorders entries so the k-th smallest centroid on axis sits at
// index k with no larger centroid before it and no smaller one after it.
func selectNth(entries []bvhEntry, k, axis int) {
	lo, hi := 0, len(entries)-1
	for lo < hi {
		pivot := entries[k].centroid.Axis(axis)
		i, j := lo, hi
		for i <= j {
			for entries[i].centroid.Axis(axis) < pivot {
				i++
			}
			for pivot < entries[j].centroid.Axis(axis) {
				j--
			}
			if i <= j {
				entries[i], entries[j] = entries[j], entries[i]
				i++
				j--
			}
		}
		if j < k {
			lo = i
		}
		if k < i {
			hi = j
		}
	}
}

// pointBox is an unpadded box around a single point
func pointBox(p core.Vec3) core.AABB {
	return core.AABB{
		X: core.NewInterval(p.X, p.X),
		Y: core.NewInterval(p.Y, p.Y),
		Z: core.NewInterval(p.Z, p.Z),
	}
}

// Hit finds the closest intersection using an explicit stack. The upper
// bound of the search interval shrinks with every closer hit, pruning
// subtrees whose boxes lie beyond it.
func (bvh *BVH) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	if len(bvh.nodes) == 0 {
		return false
	}

	directionNegative := [3]bool{ray.Direction.X < 0, ray.Direction.Y < 0, ray.Direction.Z < 0}

	var buf [64]int32
	stack := append(buf[:0], 0)

	hitAnything := false
	closestSoFar := rayT.Max

	for len(stack) > 0 {
		node := &bvh.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if !node.bbox.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)) {
			continue
		}

		if node.isLeaf() {
			for _, object := range bvh.objects[node.start : node.start+node.count] {
				if object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar), rec, sampler) {
					hitAnything = true
					closestSoFar = rec.T
				}
			}
			continue
		}

		// Push the far child first so the near child is popped next
		if directionNegative[node.axis] {
			stack = append(stack, node.left, node.right)
		} else {
			stack = append(stack, node.right, node.left)
		}
	}

	return hitAnything
}

// BoundingBox returns the root box
func (bvh *BVH) BoundingBox() core.AABB {
	return bvh.bbox
}

// BVHStats describes the shape of a built BVH
type BVHStats struct {
	Nodes       int
	Leaves      int
	MaxDepth    int
	MaxLeafSize int
	Primitives  int
}

func (s BVHStats) String() string {
	return fmt.Sprintf("%d primitives, %d nodes, %d leaves, depth %d, max leaf %d",
		s.Primitives, s.Nodes, s.Leaves, s.MaxDepth, s.MaxLeafSize)
}

// Stats walks the tree and collects its shape statistics
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{Primitives: len(bvh.objects)}
	if len(bvh.nodes) == 0 {
		return stats
	}
	bvh.collectStats(0, 0, &stats)
	return stats
}

func (bvh *BVH) collectStats(index int32, depth int, stats *BVHStats) {
	node := &bvh.nodes[index]
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.isLeaf() {
		stats.Leaves++
		if int(node.count) > stats.MaxLeafSize {
			stats.MaxLeafSize = int(node.count)
		}
		return
	}
	bvh.collectStats(node.left, depth+1, stats)
	bvh.collectStats(node.right, depth+1, stats)
}
