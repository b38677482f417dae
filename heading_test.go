package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHeading(t *testing.T) {
	tests := []struct {
		deg  float64
		want Heading
	}{
		{0, 0},
		{4.9, 0},
		{5, 10},
		{14.99, 10},
		{45, 50},
		{89.7, 90},
		{184.9, 180},
		{354.9, 350},
		{355, 0},
		{359.99, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHeading(tt.deg, 10), "RoundHeading(%v)", tt.deg)
	}

	assert.Equal(t, Heading(45), RoundHeading(44, 15))
}

func TestHeadingDifference(t *testing.T) {
	tests := []struct {
		a, b Heading
		want int
	}{
		{0, 0, 0},
		{10, 350, 20},
		{350, 10, 20},
		{0, 180, 180},
		{90, 270, 180},
		{30, 20, 10},
		{720, 10, 10},
		{-10, 10, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HeadingDifference(tt.a, tt.b), "HeadingDifference(%d, %d)", tt.a, tt.b)
	}
}

func TestHeadingOpposite(t *testing.T) {
	assert.Equal(t, Heading(180), Heading(0).Opposite())
	assert.Equal(t, Heading(270), Heading(90).Opposite())
	assert.Equal(t, Heading(20), Heading(200).Opposite())
	assert.Equal(t, Heading(350), Heading(-10).Normalize())
	assert.Equal(t, Heading(170), Heading(-190).Normalize())
}

func TestBearing(t *testing.T) {
	o := Point{}
	assert.InDelta(t, 0, Bearing(o, Point{1, 0}), 1e-9)
	assert.InDelta(t, 45, Bearing(o, Point{1, 1}), 1e-9)
	assert.InDelta(t, 90, Bearing(o, Point{0, 1}), 1e-9)
	assert.InDelta(t, 180, Bearing(o, Point{-1, 0}), 1e-9)
	assert.InDelta(t, 270, Bearing(o, Point{0, -1}), 1e-9)
	assert.InDelta(t, 315, Bearing(o, Point{1, -1}), 1e-9)
}
