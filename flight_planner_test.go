package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// georgeSquare is an origin and five sensors inside the default
// confinement area.
func georgeSquare() []Waypoint {
	return []Waypoint{
		{Point: Point{X: -3.1880, Y: 55.9440}},
		{Point: Point{X: -3.1900, Y: 55.9450}, Sensor: "slips.mass.baking"},
		{Point: Point{X: -3.1870, Y: 55.9455}, Sensor: "take.ears.lose"},
		{Point: Point{X: -3.1860, Y: 55.9435}, Sensor: "cost.kind.spite"},
		{Point: Point{X: -3.1895, Y: 55.9432}, Sensor: "mops.fame.clip"},
		{Point: Point{X: -3.1885, Y: 55.9458}, Sensor: "lofty.lamp.hunt"},
	}
}

func TestFlightPlannerPlan(t *testing.T) {
	cfg := DefaultConfig()
	fp, err := NewFlightPlanner(cfg, nil)
	require.NoError(t, err)

	waypoints := georgeSquare()
	plan, err := fp.Plan(context.Background(), waypoints)
	require.NoError(t, err)

	requireClosedTour(t, plan.Order, len(waypoints))
	require.Len(t, plan.Legs, len(waypoints))

	start := waypoints[0].Point
	for i, leg := range plan.Legs {
		requireValidLeg(t, cfg, nil, leg, start)
		target := waypoints[plan.Order[i+1]]
		assert.LessOrEqual(t, leg.End().Distance(target.Point), cfg.ArriveRadius)
		assert.Equal(t, target.Sensor, leg[len(leg)-1].Sensor)
		start = leg.End()
	}

	steps := plan.Steps()
	assert.Len(t, steps, plan.TotalSteps())
	path := plan.Path()
	require.Len(t, path, plan.TotalSteps()+1)
	assert.Equal(t, waypoints[0].Point, path[0])
	assert.Equal(t, steps[len(steps)-1].End, path[len(path)-1])

	assert.True(t, plan.Acceptable(plan.TotalSteps()))
	assert.False(t, plan.Acceptable(plan.TotalSteps()-1))
}

func TestFlightPlannerDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 8

	fp1, err := NewFlightPlanner(cfg, nil)
	require.NoError(t, err)
	first, err := fp1.Plan(context.Background(), georgeSquare())
	require.NoError(t, err)

	fp2, err := NewFlightPlanner(cfg, nil)
	require.NoError(t, err)
	second, err := fp2.Plan(context.Background(), georgeSquare())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A warm leg cache must not change the answer.
	third, err := fp1.Plan(context.Background(), georgeSquare())
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestFlightPlannerWithFences(t *testing.T) {
	cfg := localConfig()
	fences := []*Geofence{sliver(t), box(t, "block", 0.0014, 0.0008, 0.0018, 0.0012)}
	fp, err := NewFlightPlanner(cfg, fences)
	require.NoError(t, err)

	waypoints := []Waypoint{
		{Point: Point{0, 0}},
		{Point: Point{0.003, 0}, Sensor: "a"},
		{Point: Point{0.003, 0.002}, Sensor: "b"},
		{Point: Point{0, 0.002}, Sensor: "c"},
	}
	plan, err := fp.Plan(context.Background(), waypoints)
	require.NoError(t, err)
	requireClosedTour(t, plan.Order, len(waypoints))

	start := waypoints[0].Point
	for _, leg := range plan.Legs {
		requireValidLeg(t, cfg, fences, leg, start)
		start = leg.End()
	}
}

func TestFlightPlannerSingleSensor(t *testing.T) {
	fp, err := NewFlightPlanner(DefaultConfig(), nil)
	require.NoError(t, err)

	waypoints := georgeSquare()[:2]
	plan, err := fp.Plan(context.Background(), waypoints)
	require.NoError(t, err)
	assert.Equal(t, Tour{0, 1, 0}, plan.Order)
	assert.Len(t, plan.Legs, 2)
}

func TestFlightPlannerTooFewWaypoints(t *testing.T) {
	fp, err := NewFlightPlanner(DefaultConfig(), nil)
	require.NoError(t, err)

	_, err = fp.Plan(context.Background(), georgeSquare()[:1])
	assert.ErrorIs(t, err, ErrTooFewWaypoints)
}

func TestNewFlightPlannerValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArriveRadius = cfg.StepLength
	_, err := NewFlightPlanner(cfg, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
