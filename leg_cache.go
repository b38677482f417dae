package main

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

type legKey struct {
	start, target Point
	sensor        string
}

// LegCache memoises legs planned by an underlying LegPlanner. Planning is
// deterministic, so a leg for the same (start, target, sensor) can be
// handed out again. The opening leg of a tour always repeats a cost
// matrix cell, and the service re-plans the same sensors many times a day.
//
// Cached legs are shared and must not be modified.
type LegCache struct {
	planner LegPlanner
	cache   *lru.Cache[legKey, Leg]
}

// NewLegCache wraps planner with an LRU of the given size. A non-positive
// size returns a cache that always delegates.
func NewLegCache(planner LegPlanner, size int) (*LegCache, error) {
	lc := &LegCache{planner: planner}
	if size <= 0 {
		return lc, nil
	}
	c, err := lru.New[legKey, Leg](size)
	if err != nil {
		return nil, err
	}
	lc.cache = c
	return lc, nil
}

func (lc *LegCache) Plan(start, target Point, sensor string) (Leg, error) {
	if lc.cache == nil {
		return lc.planner.Plan(start, target, sensor)
	}

	key := legKey{start: start, target: target, sensor: sensor}
	if leg, ok := lc.cache.Get(key); ok {
		return leg, nil
	}
	leg, err := lc.planner.Plan(start, target, sensor)
	if err != nil {
		return nil, err
	}
	lc.cache.Add(key, leg)
	return leg, nil
}

// Len returns the number of cached legs.
func (lc *LegCache) Len() int {
	if lc.cache == nil {
		return 0
	}
	return lc.cache.Len()
}
