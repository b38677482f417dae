package main

import (
	"context"
	"fmt"
	"time"
)

// FlightPlan is the planned closed tour.
type FlightPlan struct {
	Order Tour
	Legs  []Leg
}

// TotalSteps counts the moves across the whole tour.
func (fp *FlightPlan) TotalSteps() int {
	return TotalSteps(fp.Legs)
}

// Acceptable reports whether the tour fits within maxSteps moves.
func (fp *FlightPlan) Acceptable(maxSteps int) bool {
	return fp.TotalSteps() <= maxSteps
}

// Path returns the origin followed by the end of every step.
func (fp *FlightPlan) Path() []Point {
	if len(fp.Legs) == 0 {
		return nil
	}
	path := []Point{fp.Legs[0][0].Start}
	for _, leg := range fp.Legs {
		for _, step := range leg {
			path = append(path, step.End)
		}
	}
	return path
}

// Steps returns every step of the tour in flying order.
func (fp *FlightPlan) Steps() []Step {
	steps := make([]Step, 0, fp.TotalSteps())
	for _, leg := range fp.Legs {
		steps = append(steps, leg...)
	}
	return steps
}

// FlightPlanner ties the cost matrix, tour construction and leg assembly
// together for one set of no-fly zones.
type FlightPlanner struct {
	cfg     Config
	fences  *FenceIndex
	planner LegPlanner
}

func NewFlightPlanner(cfg Config, fences []*Geofence) (*FlightPlanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	index := NewFenceIndex(fences)
	planner, err := NewLegCache(NewStepPlanner(cfg, index), cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create leg cache: %w", err)
	}
	return &FlightPlanner{cfg: cfg, fences: index, planner: planner}, nil
}

// Plan computes the tour over waypoints; waypoints[0] must be the origin.
// A tour longer than Config.MaxTourSteps is still returned; callers decide
// with FlightPlan.Acceptable.
func (fp *FlightPlanner) Plan(ctx context.Context, waypoints []Waypoint) (*FlightPlan, error) {
	startTime := time.Now()
	Logf("🗺️  Planning tour over %d waypoints, %d no-fly zones\n", len(waypoints), fp.fences.Len())
	fp.warnInsideFences(waypoints)

	if len(waypoints) < 2 {
		return nil, ErrTooFewWaypoints
	}

	cm, err := BuildCostMatrix(ctx, fp.planner, waypoints, fp.cfg.workers())
	if err != nil {
		return nil, err
	}

	Logf("🔍 Building tour...\n")
	order, err := BuildTour(cm)
	if err != nil {
		return nil, err
	}

	legs, err := AssemblePath(fp.planner, waypoints, order)
	if err != nil {
		return nil, err
	}

	plan := &FlightPlan{Order: order, Legs: legs}
	Logf("✅ Tour planned: %d moves in %d legs (%.2f seconds)\n",
		plan.TotalSteps(), len(legs), time.Since(startTime).Seconds())
	return plan, nil
}

// warnInsideFences logs waypoints that sit inside a no-fly zone; the
// drone can only reach those if a sensor is within range of the boundary.
func (fp *FlightPlanner) warnInsideFences(waypoints []Waypoint) {
	for i, wp := range waypoints {
		for _, fence := range fp.fences.Fences() {
			if fence.Contains(wp.Point) {
				Logf("⚠️  Waypoint %d (%s) lies inside no-fly zone %q\n", i, wp.Sensor, fence.Name)
			}
		}
	}
}
