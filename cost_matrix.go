package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Waypoint is a location the tour must visit. Index 0 of a waypoint list
// is the origin, which has no sensor.
type Waypoint struct {
	Point
	Sensor string `json:"sensor,omitempty"`
}

// CostMatrix holds, for every ordered pair of waypoints, the number of
// steps the planner needs to fly from one to the other. The values are
// estimates used only to rank edges: the final tour re-plans each leg from
// wherever the previous one actually ended.
type CostMatrix struct {
	n     int
	steps []int // row-major; the diagonal is unused
}

// BuildCostMatrix plans every ordered pair (i, j), i != j, using up to
// workers goroutines. Each cell is written exactly once, so the result
// does not depend on scheduling.
func BuildCostMatrix(ctx context.Context, planner LegPlanner, waypoints []Waypoint, workers int) (*CostMatrix, error) {
	startTime := time.Now()
	n := len(waypoints)
	cm := &CostMatrix{n: n, steps: make([]int, n*n)}

	Logf("🧮 Building %dx%d cost matrix (%d legs)...\n", n, n, n*(n-1))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))
	for i := range n {
		for j := range n {
			if i == j {
				continue
			}
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				leg, err := planner.Plan(waypoints[i].Point, waypoints[j].Point, waypoints[j].Sensor)
				if err != nil {
					return fmt.Errorf("cost %d -> %d: %w", i, j, err)
				}
				cm.steps[i*n+j] = leg.Len()
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	Logf("   ✅ Cost matrix built in %.2f seconds\n", time.Since(startTime).Seconds())
	return cm, nil
}

// NewCostMatrix builds a matrix from explicit step counts. rows must be
// square; diagonal values are ignored.
func NewCostMatrix(rows [][]int) (*CostMatrix, error) {
	n := len(rows)
	cm := &CostMatrix{n: n, steps: make([]int, n*n)}
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("cost matrix row %d has %d columns, want %d", i, len(row), n)
		}
		copy(cm.steps[i*n:], row)
	}
	return cm, nil
}

// Size returns the number of waypoints, origin included.
func (cm *CostMatrix) Size() int { return cm.n }

// At returns the estimated step count from waypoint i to waypoint j.
func (cm *CostMatrix) At(i, j int) int { return cm.steps[i*cm.n+j] }
