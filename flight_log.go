package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFlightLog writes one line per move:
//
//	n,startLng,startLat,heading,endLng,endLat,sensor
//
// n counts from 1 and sensor is "null" for moves that reach no sensor.
func WriteFlightLog(w io.Writer, plan *FlightPlan) error {
	bw := bufio.NewWriter(w)
	for i, step := range plan.Steps() {
		sensor := step.Sensor
		if sensor == "" {
			sensor = "null"
		}
		if _, err := fmt.Fprintf(bw, "%d,%f,%f,%d,%f,%f,%s\n", i+1,
			step.Start.X, step.Start.Y, step.Heading, step.End.X, step.End.Y, sensor); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFlightLogFile writes flightpath-DD-MM-YYYY.txt into dir and returns
// its path.
func WriteFlightLogFile(dir, day, month, year string, plan *FlightPlan) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("flightpath-%s-%s-%s.txt", day, month, year))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteFlightLog(f, plan); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write flight log: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	Logf("💾 Wrote %s\n", path)
	return path, nil
}
