package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkerStyle(t *testing.T) {
	tests := []struct {
		battery float64
		reading string
		colour  string
		symbol  string
	}{
		{5, "NaN", "#000000", "cross"},
		{10, "200", "#000000", "cross"},
		{50, "0", "#00ff00", "lighthouse"},
		{50, "31.9", "#00ff00", "lighthouse"},
		{50, "32", "#40ff00", "lighthouse"},
		{50, "127.99", "#c0ff00", "lighthouse"},
		{50, "128", "#ffc000", "danger"},
		{50, "200.5", "#ff4000", "danger"},
		{50, "255.9", "#ff0000", "danger"},
	}
	for _, tt := range tests {
		colour, symbol, err := markerStyle(SensorReading{Location: "a.b.c", Battery: tt.battery, Reading: tt.reading})
		require.NoError(t, err, tt.reading)
		assert.Equal(t, tt.colour, colour, tt.reading)
		assert.Equal(t, tt.symbol, symbol, tt.reading)
	}
}

func TestMarkerStyleBadReadings(t *testing.T) {
	for _, reading := range []string{"256", "-1", "NaN"} {
		_, _, err := markerStyle(SensorReading{Location: "a.b.c", Battery: 80, Reading: reading})
		assert.ErrorIs(t, err, ErrReadingOutOfRange, reading)
	}

	_, _, err := markerStyle(SensorReading{Location: "a.b.c", Battery: 80, Reading: "null"})
	assert.Error(t, err)
}

func TestReadingsMap(t *testing.T) {
	readings := []SensorReading{
		{Location: "slips.mass.baking", Battery: 52.3, Reading: "170.8"},
		{Location: "take.ears.lose", Battery: 4.1, Reading: "null"},
	}
	waypoints := []Waypoint{
		{Point: Point{X: -3.1880, Y: 55.9440}},
		{Point: Point{X: -3.1900, Y: 55.9450}, Sensor: "slips.mass.baking"},
		{Point: Point{X: -3.1865, Y: 55.9435}, Sensor: "take.ears.lose"},
	}
	plan := &FlightPlan{Order: Tour{0, 1, 0}, Legs: []Leg{{
		{Start: waypoints[0].Point, End: waypoints[0].Move(90, 0.0003), Heading: 90},
	}}}

	fc, err := ReadingsMap(readings, waypoints, plan)
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)

	first := fc.Features[0]
	assert.Equal(t, orb.Point{-3.1900, 55.9450}, first.Geometry)
	assert.Equal(t, "slips.mass.baking", first.Properties["location"])
	assert.Equal(t, "1", first.Properties["text"])
	assert.Equal(t, "#ff8000", first.Properties["marker-color"])
	assert.Equal(t, "danger", first.Properties["marker-symbol"])
	assert.Equal(t, "cross", fc.Features[1].Properties["marker-symbol"])

	line, ok := fc.Features[2].Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Len(t, line, 2)

	_, err = ReadingsMap(readings, waypoints[:2], plan)
	assert.Error(t, err)
}

func TestWriteReadingsMap(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Point{1, 2}))

	path, err := WriteReadingsMap(t.TempDir(), "15", "06", "2021", fc)
	require.NoError(t, err)
	assert.Equal(t, "readings-15-06-2021.geojson", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	back, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Len(t, back.Features, 1)
}
