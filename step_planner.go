package main

import (
	"errors"
	"fmt"
)

var (
	// ErrInfeasibleStep is returned when no heading within the deflection
	// bound leads to a safe step.
	ErrInfeasibleStep = errors.New("no feasible local step")

	// ErrLegTooLong is returned when a walk exceeds Config.MaxLegSteps
	// without reaching its target.
	ErrLegTooLong = errors.New("leg exceeded step limit")
)

// noHeading marks the absence of a previous step on a leg.
const noHeading Heading = -1

// Step is a single fixed-length move.
type Step struct {
	Start   Point   `json:"start"`
	End     Point   `json:"end"`
	Heading Heading `json:"heading"`
	Sensor  string  `json:"sensor,omitempty"` // sensor reached by this move, if any
}

// Leg is the non-empty sequence of steps between two consecutive
// waypoints of a tour.
type Leg []Step

// Len returns the number of steps in the leg.
func (l Leg) Len() int { return len(l) }

// End returns where the last step of the leg finishes.
func (l Leg) End() Point { return l[len(l)-1].End }

// LegPlanner plans a single leg. StepPlanner implements it directly and
// LegCache wraps one.
type LegPlanner interface {
	Plan(start, target Point, sensor string) (Leg, error)
}

// StepPlanner walks from a start point to a target one discretised step at
// a time, deflecting around no-fly zones and the confinement rectangle.
// It holds no per-leg state and may be used from several goroutines.
type StepPlanner struct {
	cfg    Config
	fences *FenceIndex
}

func NewStepPlanner(cfg Config, fences *FenceIndex) *StepPlanner {
	if fences == nil {
		fences = NewFenceIndex(nil)
	}
	return &StepPlanner{cfg: cfg, fences: fences}
}

// Plan returns the leg from start to target. Every step but the last ends
// farther than Config.ArriveRadius from target; the last is tagged with
// sensor.
func (sp *StepPlanner) Plan(start, target Point, sensor string) (Leg, error) {
	if sp.arrived(start, target) {
		return sp.planDegenerate(start, target, sensor)
	}

	var (
		leg  Leg
		cur  = start
		prev = noHeading
	)
	for !sp.arrived(cur, target) {
		if len(leg) >= sp.cfg.MaxLegSteps {
			return nil, fmt.Errorf("(%.6f, %.6f) -> (%.6f, %.6f) after %d steps: %w",
				start.X, start.Y, target.X, target.Y, len(leg), ErrLegTooLong)
		}

		step, err := sp.nextStep(cur, target, prev)
		if err != nil {
			return nil, err
		}
		if sp.arrived(step.End, target) {
			step.Sensor = sensor
		}
		leg = append(leg, step)
		cur = step.End
		prev = step.Heading
	}
	return leg, nil
}

// planDegenerate handles a start already within reach of the target. A
// leg must contain at least one move, so the drone steps towards the
// target and, if that carries it out of range, straight back again.
func (sp *StepPlanner) planDegenerate(start, target Point, sensor string) (Leg, error) {
	step, err := sp.nextStep(start, target, noHeading)
	if err != nil {
		return nil, err
	}
	if sp.arrived(step.End, target) {
		step.Sensor = sensor
		return Leg{step}, nil
	}

	back := step.Heading.Opposite()
	return Leg{step, {
		Start:   step.End,
		End:     step.End.Move(back, sp.cfg.StepLength),
		Heading: back,
		Sensor:  sensor,
	}}, nil
}

// nextStep takes one move from cur towards target. prev is the heading of
// the previous step on this leg, or noHeading for the first step.
func (sp *StepPlanner) nextStep(cur, target Point, prev Heading) (Step, error) {
	ideal := RoundHeading(Bearing(cur, target), sp.cfg.HeadingStep)
	heading := ideal
	if !sp.safe(cur, ideal) {
		ref := ideal
		if prev != noHeading {
			ref = prev
		}
		var err error
		if heading, err = sp.deflect(cur, ideal, ref); err != nil {
			return Step{}, err
		}
	}
	return Step{
		Start:   cur,
		End:     cur.Move(heading, sp.cfg.StepLength),
		Heading: heading,
	}, nil
}

// deflect searches outward from a blocked heading in both directions and
// returns the safe heading closest to ref. When both sides are equally
// close the clockwise one wins.
func (sp *StepPlanner) deflect(cur Point, blocked, ref Heading) (Heading, error) {
	inc, incOK := sp.search(cur, blocked, 1)
	dec, decOK := sp.search(cur, blocked, -1)

	switch {
	case incOK && decOK:
		if HeadingDifference(ref, inc) < HeadingDifference(ref, dec) {
			return inc, nil
		}
		return dec, nil
	case incOK:
		return inc, nil
	case decOK:
		return dec, nil
	}
	return 0, fmt.Errorf("at (%.6f, %.6f) around heading %d: %w", cur.X, cur.Y, blocked, ErrInfeasibleStep)
}

// search turns from blocked one increment at a time, counter-clockwise
// for dir 1 and clockwise for dir -1, up to Config.MaxDeflection, and
// returns the first safe heading.
func (sp *StepPlanner) search(cur Point, blocked Heading, dir int) (Heading, bool) {
	for turned := sp.cfg.HeadingStep; turned <= sp.cfg.MaxDeflection; turned += sp.cfg.HeadingStep {
		h := (blocked + Heading(dir*turned)).Normalize()
		if sp.safe(cur, h) {
			return h, true
		}
	}
	return 0, false
}

// safe reports whether a step from cur along h stays clear of every fence
// and ends inside the confinement rectangle. Only the endpoint is tested
// against the rectangle.
func (sp *StepPlanner) safe(cur Point, h Heading) bool {
	next := cur.Move(h, sp.cfg.StepLength)
	return sp.cfg.Confinement.Contains(next) && !sp.fences.Blocks(cur, next)
}

func (sp *StepPlanner) arrived(p, target Point) bool {
	return p.Distance(target) <= sp.cfg.ArriveRadius
}
