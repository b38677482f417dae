package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SensorReading is one air-quality sensor as listed by the data provider.
// Location is a three-word address ("word.word.word").
type SensorReading struct {
	Location string  `json:"location"`
	Battery  float64 `json:"battery"`
	Reading  string  `json:"reading"` // "null" or "NaN" when the battery is flat
}

// wordsDetails is the subset of /words/.../details.json we use
type wordsDetails struct {
	Coordinates struct {
		Lng float64 `json:"lng"`
		Lat float64 `json:"lat"`
	} `json:"coordinates"`
}

// DataClient fetches sensor lists, word locations and no-fly zones from
// the data provider.
type DataClient struct {
	baseURL string
	http    *http.Client
}

// NewDataClient returns a client for the provider at baseURL, e.g.
// "http://localhost:9898".
func NewDataClient(baseURL string) *DataClient {
	return &DataClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SensorReadings returns the sensors to visit on the given day.
func (c *DataClient) SensorReadings(ctx context.Context, year, month, day string) ([]SensorReading, error) {
	data, err := c.get(ctx, "maps", []string{year, month, day}, "air-quality-data.json")
	if err != nil {
		return nil, err
	}
	var readings []SensorReading
	if err := json.Unmarshal(data, &readings); err != nil {
		return nil, fmt.Errorf("failed to parse sensor data: %w", err)
	}
	return readings, nil
}

// Locate resolves a three-word location to coordinates.
func (c *DataClient) Locate(ctx context.Context, location string) (Point, error) {
	words := strings.Split(location, ".")
	if len(words) != 3 {
		return Point{}, fmt.Errorf("location %q is not three words", location)
	}
	data, err := c.get(ctx, "words", words, "details.json")
	if err != nil {
		return Point{}, err
	}
	var details wordsDetails
	if err := json.Unmarshal(data, &details); err != nil {
		return Point{}, fmt.Errorf("failed to parse details for %q: %w", location, err)
	}
	return Point{X: details.Coordinates.Lng, Y: details.Coordinates.Lat}, nil
}

// NoFlyZones fetches and parses the no-fly zone polygons.
func (c *DataClient) NoFlyZones(ctx context.Context) ([]*Geofence, error) {
	data, err := c.get(ctx, "buildings", nil, "no-fly-zones.geojson")
	if err != nil {
		return nil, err
	}
	return ParseNoFlyZones(data)
}

// Waypoints fetches the day's sensors and resolves their locations,
// returning the sensor list and the waypoints with origin at index 0.
func (c *DataClient) Waypoints(ctx context.Context, origin Point, year, month, day string) ([]SensorReading, []Waypoint, error) {
	readings, err := c.SensorReadings(ctx, year, month, day)
	if err != nil {
		return nil, nil, err
	}
	Logf("📡 Fetched %d sensors for %s-%s-%s\n", len(readings), day, month, year)

	waypoints := make([]Waypoint, 0, len(readings)+1)
	waypoints = append(waypoints, Waypoint{Point: origin})
	for _, r := range readings {
		p, err := c.Locate(ctx, r.Location)
		if err != nil {
			return nil, nil, err
		}
		waypoints = append(waypoints, Waypoint{Point: p, Sensor: r.Location})
	}
	return readings, waypoints, nil
}

// get builds <base>/<dir>/<args...>/<file> and returns the response body.
func (c *DataClient) get(ctx context.Context, dir string, args []string, file string) ([]byte, error) {
	url := c.baseURL + "/" + strings.Join(append(append([]string{dir}, args...), file), "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	return data, nil
}
