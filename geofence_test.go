package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeofenceTooFewVertices(t *testing.T) {
	_, err := NewGeofence("line", []Point{{0, 0}, {1, 1}})
	require.ErrorIs(t, err, ErrMalformedGeofence)

	_, err = NewGeofence("empty", nil)
	require.ErrorIs(t, err, ErrMalformedGeofence)
}

func TestGeofenceCopiesVertices(t *testing.T) {
	vertices := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 0}}
	g, err := NewGeofence("tri", vertices)
	require.NoError(t, err)

	vertices[0] = Point{9, 9}
	assert.Equal(t, Point{0, 0}, g.Vertices()[0])

	g.Vertices()[1] = Point{9, 9}
	assert.Equal(t, Point{1, 0}, g.Vertices()[1])
}

func TestGeofenceIntersects(t *testing.T) {
	g := box(t, "square", 0, 0, 1, 1)

	assert.True(t, g.Intersects(Point{-1, 0.5}, Point{0.5, 0.5}), "crosses the left edge")
	assert.True(t, g.Intersects(Point{-1, -1}, Point{2, 2}), "passes through")
	assert.True(t, g.Intersects(Point{-1, 1}, Point{0, 1}), "ends on a vertex")
	assert.True(t, g.Intersects(Point{0.5, -1}, Point{0.5, 0}), "ends on an edge")

	assert.False(t, g.Intersects(Point{0.2, 0.2}, Point{0.8, 0.8}), "wholly inside")
	assert.False(t, g.Intersects(Point{2, 0}, Point{2, 1}), "wholly outside")
}

func TestGeofenceDoesNotWrap(t *testing.T) {
	// The ring is open: no edge joins (0,1) back to (0,0).
	open, err := NewGeofence("open", []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	require.NoError(t, err)

	assert.False(t, open.Intersects(Point{-1, 0.5}, Point{0.5, 0.5}))
	assert.True(t, open.Intersects(Point{0.5, 0.5}, Point{2, 0.5}))
}

func TestGeofenceContains(t *testing.T) {
	g := box(t, "square", 0, 0, 1, 1)
	assert.True(t, g.Contains(Point{0.5, 0.5}))
	assert.False(t, g.Contains(Point{1.5, 0.5}))
}
