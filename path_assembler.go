package main

import "fmt"

// AssemblePath flies the tour leg by leg. The first leg leaves the exact
// origin; every later leg starts where the previous leg's last step ended,
// since the planner only gets within arrival range of a waypoint.
func AssemblePath(planner LegPlanner, waypoints []Waypoint, tour Tour) ([]Leg, error) {
	if len(tour) < 2 {
		return nil, fmt.Errorf("tour of length %d: %w", len(tour), ErrTooFewWaypoints)
	}

	legs := make([]Leg, 0, tour.Legs())
	from := waypoints[tour[0]].Point
	for i := 1; i < len(tour); i++ {
		to := waypoints[tour[i]]
		Logf("   ✈️  Leg %d: %d -> %d\n", i, tour[i-1], tour[i])
		leg, err := planner.Plan(from, to.Point, to.Sensor)
		if err != nil {
			return nil, fmt.Errorf("leg %d (%d -> %d): %w", i, tour[i-1], tour[i], err)
		}
		legs = append(legs, leg)
		from = leg.End()
	}
	return legs, nil
}

// TotalSteps counts the moves across all legs.
func TotalSteps(legs []Leg) int {
	total := 0
	for _, leg := range legs {
		total += leg.Len()
	}
	return total
}
