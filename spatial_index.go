package main

import (
	"github.com/dhconnelly/rtreego"
)

// bboxPad widens every rectangle stored in or queried against the tree.
// rtreego rejects zero-length sides (a due-east step has no height) and
// treats touching rectangles as disjoint, while a touching segment still
// counts as a fence hit.
const bboxPad = 1e-9

// fenceEntry wraps a geofence for R-tree storage
type fenceEntry struct {
	fence *Geofence
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *fenceEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// FenceIndex answers "which fences could this step touch?" so the planner
// only runs the exact edge test against nearby zones. It is read-only once
// built and safe for concurrent queries.
type FenceIndex struct {
	tree   *rtreego.Rtree
	fences []*Geofence
}

// NewFenceIndex creates a new spatial index over the given fences
func NewFenceIndex(fences []*Geofence) *FenceIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for _, fence := range fences {
		bbox, err := paddedRect(fence.bbox())
		if err != nil {
			// Cannot happen with a positive pad; fall back to checking the
			// fence on every query rather than silently dropping it.
			Logf("⚠️  Failed to index no-fly zone %q: %v\n", fence.Name, err)
			return &FenceIndex{fences: fences}
		}
		tree.Insert(&fenceEntry{fence: fence, bbox: bbox})
	}

	return &FenceIndex{tree: tree, fences: fences}
}

// Len returns the number of indexed fences.
func (fi *FenceIndex) Len() int {
	return len(fi.fences)
}

// Fences returns every indexed fence, in insertion order.
func (fi *FenceIndex) Fences() []*Geofence {
	return fi.fences
}

// QuerySegment returns the fences whose bounding box overlaps the
// bounding box of segment a-b.
func (fi *FenceIndex) QuerySegment(a, b Point) []*Geofence {
	if fi.tree == nil {
		return fi.fences
	}
	bbox, err := paddedRect(min(a.X, b.X), min(a.Y, b.Y), max(a.X, b.X), max(a.Y, b.Y))
	if err != nil {
		return fi.fences
	}

	results := fi.tree.SearchIntersect(bbox)
	fences := make([]*Geofence, 0, len(results))
	for _, item := range results {
		fences = append(fences, item.(*fenceEntry).fence)
	}
	return fences
}

// Blocks reports whether segment a-b touches any indexed fence.
func (fi *FenceIndex) Blocks(a, b Point) bool {
	for _, fence := range fi.QuerySegment(a, b) {
		if fence.Intersects(a, b) {
			return true
		}
	}
	return false
}

// paddedRect builds an R-tree rectangle grown by bboxPad on every side
func paddedRect(minX, minY, maxX, maxY float64) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{minX - bboxPad, minY - bboxPad},
		[]float64{maxX - minX + 2*bboxPad, maxY - minY + 2*bboxPad},
	)
}
