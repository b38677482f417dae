package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ParseNoFlyZones converts a GeoJSON FeatureCollection into geofences.
// Polygon features contribute their outer ring; MultiPolygon features
// contribute the outer ring of each member, named "<name>#<i>".
// Other geometry types are skipped with a warning.
func ParseNoFlyZones(data []byte) ([]*Geofence, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse no-fly zones: %w", err)
	}

	var fences []*Geofence
	for i, feature := range fc.Features {
		name := feature.Properties.MustString("name", fmt.Sprintf("zone-%d", i))

		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			fence, err := fenceFromPolygon(name, g)
			if err != nil {
				return nil, err
			}
			fences = append(fences, fence)

		case orb.MultiPolygon:
			for j, poly := range g {
				fence, err := fenceFromPolygon(fmt.Sprintf("%s#%d", name, j), poly)
				if err != nil {
					return nil, err
				}
				fences = append(fences, fence)
			}

		default:
			Logf("⚠️  Skipping no-fly zone %q with geometry %T\n", name, feature.Geometry)
		}
	}

	Logf("Total no-fly zones loaded: %d polygons\n", len(fences))
	return fences, nil
}

// fenceFromPolygon builds a geofence from the outer ring of a polygon
func fenceFromPolygon(name string, poly orb.Polygon) (*Geofence, error) {
	if len(poly) == 0 {
		return nil, fmt.Errorf("%q has no rings: %w", name, ErrMalformedGeofence)
	}
	// First ring is the outer boundary
	vertices := make([]Point, 0, len(poly[0]))
	for _, p := range poly[0] {
		vertices = append(vertices, pointFromOrb(p))
	}
	return NewGeofence(name, vertices)
}

// LoadNoFlyZonesFromFile reads and parses a GeoJSON no-fly zone file.
// A missing file yields no zones.
func LoadNoFlyZonesFromFile(path string) ([]*Geofence, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		Logf("ℹ️  No no-fly zone file at %s\n", path)
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseNoFlyZones(data)
}
