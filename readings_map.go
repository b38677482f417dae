package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrReadingOutOfRange is returned for a sensor reading outside [0, 256).
var ErrReadingOutOfRange = errors.New("reading out of range")

// lowBattery is the battery percentage at or below which a reading is
// not trusted.
const lowBattery = 10

// readingColours maps each band of 32 over [0, 256) to a marker colour,
// green through red.
var readingColours = [...]string{
	"#00ff00", "#40ff00", "#80ff00", "#c0ff00",
	"#ffc000", "#ff8000", "#ff4000", "#ff0000",
}

// markerStyle returns the rgb colour and marker symbol for a sensor.
func markerStyle(r SensorReading) (colour, symbol string, err error) {
	if r.Battery <= lowBattery {
		return "#000000", "cross", nil
	}

	value, err := strconv.ParseFloat(r.Reading, 64)
	if err != nil {
		return "", "", fmt.Errorf("sensor %s: bad reading %q: %w", r.Location, r.Reading, err)
	}
	if math.IsNaN(value) || value < 0 || value >= 256 {
		return "", "", fmt.Errorf("sensor %s: %g: %w", r.Location, value, ErrReadingOutOfRange)
	}

	symbol = "lighthouse"
	if value >= 128 {
		symbol = "danger"
	}
	return readingColours[int(value)/32], symbol, nil
}

// ReadingsMap builds the GeoJSON map: one marker per sensor, in the order
// the provider listed them, plus the flight path as a LineString.
// waypoints[i+1] must be the location of readings[i].
func ReadingsMap(readings []SensorReading, waypoints []Waypoint, plan *FlightPlan) (*geojson.FeatureCollection, error) {
	if len(waypoints) != len(readings)+1 {
		return nil, fmt.Errorf("have %d waypoints for %d sensors", len(waypoints), len(readings))
	}

	fc := geojson.NewFeatureCollection()
	for i, r := range readings {
		colour, symbol, err := markerStyle(r)
		if err != nil {
			return nil, err
		}
		f := geojson.NewFeature(waypoints[i+1].orb())
		f.Properties["location"] = r.Location
		f.Properties["text"] = strconv.Itoa(i + 1)
		f.Properties["rgb-string"] = colour
		f.Properties["marker-color"] = colour
		f.Properties["marker-symbol"] = symbol
		fc.Append(f)
	}

	if plan != nil {
		path := plan.Path()
		line := make(orb.LineString, 0, len(path))
		for _, p := range path {
			line = append(line, p.orb())
		}
		fc.Append(geojson.NewFeature(line))
	}
	return fc, nil
}

// WriteReadingsMap writes readings-DD-MM-YYYY.geojson into dir and
// returns its path.
func WriteReadingsMap(dir, day, month, year string, fc *geojson.FeatureCollection) (string, error) {
	data, err := fc.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to marshal readings map: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("readings-%s-%s-%s.geojson", day, month, year))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	Logf("💾 Wrote %s\n", path)
	return path, nil
}
