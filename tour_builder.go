package main

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooFewWaypoints is returned when there is nothing to tour.
	ErrTooFewWaypoints = errors.New("tour needs the origin and at least one sensor")

	// ErrNoValidEdge is returned if the greedy search runs out of edges
	// before the cycle closes.
	ErrNoValidEdge = errors.New("no valid edge left to add")
)

// Tour is a closed visiting order over waypoint indices. It starts and
// ends at the origin: for n waypoints len(tour) == n+1 and
// tour[0] == tour[n] == 0.
type Tour []int

// connectivity is the undirected graph grown while building a tour. Nodes
// are waypoint indices; no node ever has more than two links.
type connectivity struct {
	n      int
	degree []int
	linked []bool // n*n adjacency, symmetric
}

func newConnectivity(n int) *connectivity {
	return &connectivity{
		n:      n,
		degree: make([]int, n),
		linked: make([]bool, n*n),
	}
}

func (c *connectivity) has(u, v int) bool { return c.linked[u*c.n+v] }

func (c *connectivity) link(u, v int) {
	c.linked[u*c.n+v] = true
	c.linked[v*c.n+u] = true
	c.degree[u]++
	c.degree[v]++
}

func (c *connectivity) saturated(u int) bool { return c.degree[u] >= 2 }

// neighbor returns the lowest-index node linked to u other than skip, or
// -1 if there is none.
func (c *connectivity) neighbor(u, skip int) int {
	for v := 0; v < c.n; v++ {
		if v != skip && c.has(u, v) {
			return v
		}
	}
	return -1
}

// trace follows links from u until they run out or return to u, and
// returns the nodes visited in order, u first.
func (c *connectivity) trace(u int) []int {
	path := []int{u}
	prev, cur := -1, u
	for {
		next := c.neighbor(cur, prev)
		if next == -1 || next == u {
			return path
		}
		path = append(path, next)
		prev, cur = cur, next
	}
}

// closesEarly reports whether linking u and v would close a loop that
// leaves some node out.
func (c *connectivity) closesEarly(u, v int) bool {
	if c.degree[u] == 0 {
		return false
	}
	path := c.trace(u)
	return path[len(path)-1] == v && len(path) < c.n
}

// BuildTour orders the waypoints with the sorted greedy edge heuristic:
// repeatedly add the globally cheapest edge that keeps every node at
// degree two or less and does not close a cycle before all nodes are on
// it, then read the finished cycle off from the origin.
//
// Ties go to the lowest (from, to) pair, so the result is deterministic.
func BuildTour(cm *CostMatrix) (Tour, error) {
	n := cm.Size()
	switch {
	case n < 2:
		return nil, ErrTooFewWaypoints
	case n == 2:
		return Tour{0, 1, 0}, nil
	}

	conn := newConnectivity(n)
	for edges := 0; ; edges++ {
		u, v, cost := cheapestEdge(cm, conn)
		if u == -1 {
			if edges == n {
				break
			}
			return nil, fmt.Errorf("after %d of %d edges: %w", edges, n, ErrNoValidEdge)
		}
		Logf("   🔗 Linking %d and %d (%d moves)\n", u, v, cost)
		conn.link(u, v)
	}

	tour := make(Tour, 0, n+1)
	tour = append(tour, conn.trace(0)...)
	tour = append(tour, 0)
	return tour, nil
}

// cheapestEdge scans every pending node for its cheapest valid edge and
// returns the cheapest overall, or u == -1 once no node is pending.
func cheapestEdge(cm *CostMatrix, conn *connectivity) (u, v, cost int) {
	u, v, cost = -1, -1, math.MaxInt
	for from := 0; from < conn.n; from++ {
		if conn.saturated(from) {
			continue
		}
		for to := 0; to < conn.n; to++ {
			c := cm.At(from, to)
			if c >= cost || to == from || conn.has(from, to) || conn.saturated(to) {
				continue
			}
			if conn.closesEarly(from, to) {
				continue
			}
			u, v, cost = from, to, c
		}
	}
	return u, v, cost
}

// Legs returns the number of legs flown along the tour.
func (t Tour) Legs() int {
	return max(len(t)-1, 0)
}
