package core

import (
	"sort"
)

// bvhEntry pairs a shape with its index in the slice the BVH was built from
type bvhEntry struct {
	shape  Shape
	geomID int
}

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	entries     []bvhEntry // Shapes for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of shapes. Intersect reports the
// index of the hit shape in this slice as the ray's GeomID.
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{Root: nil}
	}

	entries := make([]bvhEntry, len(shapes))
	for i, shape := range shapes {
		entries[i] = bvhEntry{shape: shape, geomID: i}
	}

	return &BVH{
		Root: buildBVH(entries, 0),
	}
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// buildBVH recursively builds the BVH using a median split along the longest axis
func buildBVH(entries []bvhEntry, depth int) *BVHNode {
	var boundingBox AABB
	if len(entries) > 0 {
		boundingBox = entries[0].shape.Bounds()
		for i := 1; i < len(entries); i++ {
			boundingBox = boundingBox.Union(entries[i].shape.Bounds())
		}
	}

	if len(entries) <= leafThreshold {
		return &BVHNode{
			BoundingBox: boundingBox,
			entries:     entries,
		}
	}

	axis := boundingBox.LongestAxis()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].shape.Bounds().Center().Axis(axis) <
			entries[j].shape.Bounds().Center().Axis(axis)
	})

	mid := len(entries) / 2
	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(entries[:mid], depth+1),
		Right:       buildBVH(entries[mid:], depth+1),
	}
}

// Intersect traces ray against every shape and keeps the closest hit. On a
// hit ray.T, ray.Ng and ray.GeomID describe it; on a miss ray is unchanged.
func (bvh *BVH) Intersect(ray *Ray) bool {
	if bvh.Root == nil || ray.Disabled() {
		return false
	}
	return bvh.intersectNode(bvh.Root, ray)
}

// intersectNode visits node; every hit shortens ray.T, so later tests only
// accept closer surfaces
func (bvh *BVH) intersectNode(node *BVHNode, ray *Ray) bool {
	if _, _, ok := node.BoundingBox.Intersect(*ray); !ok {
		return false
	}

	hit := false
	if node.entries != nil {
		for _, entry := range node.entries {
			if entry.shape.Intersect(ray) {
				ray.GeomID = entry.geomID
				hit = true
			}
		}
		return hit
	}

	for _, child := range [2]*BVHNode{node.Left, node.Right} {
		if child != nil && bvh.intersectNode(child, ray) {
			hit = true
		}
	}
	return hit
}

// Occluded reports whether any shape crosses the ray segment, stopping at the
// first one found. The ray is not modified.
func (bvh *BVH) Occluded(ray Ray) bool {
	if bvh.Root == nil || ray.Disabled() {
		return false
	}
	return bvh.occludedNode(bvh.Root, ray)
}

func (bvh *BVH) occludedNode(node *BVHNode, ray Ray) bool {
	if _, _, ok := node.BoundingBox.Intersect(ray); !ok {
		return false
	}

	if node.entries != nil {
		for _, entry := range node.entries {
			segment := ray
			if entry.shape.Intersect(&segment) {
				return true
			}
		}
		return false
	}

	return (node.Left != nil && bvh.occludedNode(node.Left, ray)) ||
		(node.Right != nil && bvh.occludedNode(node.Right, ray))
}

// getStats returns statistics about the BVH structure
func (bvh *BVH) getStats() bvhStats {
	if bvh.Root == nil {
		return bvhStats{}
	}

	stats := bvhStats{}
	bvh.collectStats(bvh.Root, 0, &stats)

	if stats.leafNodes > 0 {
		stats.avgDepth = stats.avgDepth / float64(stats.leafNodes)
	}

	return stats
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafNodes   int
	maxDepth    int
	avgDepth    float64
	totalShapes int
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *bvhStats) {
	stats.totalNodes++
	stats.maxDepth = max(stats.maxDepth, depth)

	if node.entries != nil {
		stats.leafNodes++
		stats.totalShapes += len(node.entries)
		stats.avgDepth += float64(depth)
		return
	}

	if node.Left != nil {
		bvh.collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		bvh.collectStats(node.Right, depth+1, stats)
	}
}
