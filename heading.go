package main

import "math"

// Heading is a direction of travel in whole degrees, measured
// counter-clockwise from the +longitude axis. Planned steps only ever use
// multiples of the configured heading increment.
type Heading int

// Normalize wraps h into [0, 360).
func (h Heading) Normalize() Heading {
	h %= 360
	if h < 0 {
		h += 360
	}
	return h
}

// Opposite returns the heading pointing the other way.
func (h Heading) Opposite() Heading {
	return (h + 180).Normalize()
}

func (h Heading) Radians() float64 {
	return float64(h) * math.Pi / 180
}

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference(a, b Heading) int {
	d := int(a.Normalize() - b.Normalize())
	if d < 0 {
		d = -d
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Bearing returns the exact angle from one point to another in degrees,
// in the range [0, 360).
func Bearing(from, to Point) float64 {
	deg := math.Atan2(to.Y-from.Y, to.X-from.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// RoundHeading snaps an angle in degrees to the nearest multiple of
// increment. Halfway angles round up, away from zero.
func RoundHeading(deg float64, increment int) Heading {
	inc := float64(increment)
	return Heading(int(math.Round(deg/inc)) * increment).Normalize()
}
