package main

import (
	"errors"
	"fmt"
)

// ErrMalformedGeofence is returned when a no-fly zone has too few vertices
// to form a ring.
var ErrMalformedGeofence = errors.New("geofence: fewer than 3 vertices")

// Geofence is a single no-fly zone boundary.
//
// Edges join consecutive vertices only. The ring is not wrapped from the
// last vertex back to the first, so a closed ring must repeat its first
// vertex at the end (as GeoJSON rings do).
type Geofence struct {
	Name     string
	vertices []Point
}

func NewGeofence(name string, vertices []Point) (*Geofence, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%q has %d vertices: %w", name, len(vertices), ErrMalformedGeofence)
	}
	v := make([]Point, len(vertices))
	copy(v, vertices)
	return &Geofence{Name: name, vertices: v}, nil
}

// Vertices returns a copy of the boundary ring.
func (g *Geofence) Vertices() []Point {
	v := make([]Point, len(g.vertices))
	copy(v, g.vertices)
	return v
}

// Intersects reports whether the segment a-b touches or crosses any edge
// of the boundary.
func (g *Geofence) Intersects(a, b Point) bool {
	seg := LineSegment{P1: a, P2: b}
	for i := 0; i < len(g.vertices)-1; i++ {
		edge := LineSegment{P1: g.vertices[i], P2: g.vertices[i+1]}
		if DoSegmentsIntersect(seg, edge) {
			return true
		}
	}
	return false
}

// Contains reports whether p lies strictly inside the ring.
func (g *Geofence) Contains(p Point) bool {
	return IsPointInPolygon(p, g.vertices)
}

// bbox computes the axis-aligned bounding box of the ring
func (g *Geofence) bbox() (minX, minY, maxX, maxY float64) {
	minX, minY = g.vertices[0].X, g.vertices[0].Y
	maxX, maxY = minX, minY
	for _, v := range g.vertices[1:] {
		minX = min(minX, v.X)
		minY = min(minY, v.Y)
		maxX = max(maxX, v.X)
		maxY = max(maxY, v.Y)
	}
	return
}
