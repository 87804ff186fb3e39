package routing

import (
	"errors"
	"fmt"
	"math"

	"flight_router/pkg/dataset"
	"flight_router/pkg/graph"
)

// ErrNoRoute is returned when the target cannot be reached from the source.
var ErrNoRoute = errors.New("no route found")

const noNode = -1 // sentinel for "no predecessor"

// PathResult is the outcome of a single shortest-path query.
type PathResult struct {
	Path     []dataset.ID // source..target inclusive; nil when no route exists
	Distance float64      // km; +Inf when no route exists
}

// queryState is the per-query working set, indexed by matrix position.
type queryState struct {
	dist    []float64
	pred    []int
	visited []bool
}

func newQueryState(n, source int) *queryState {
	qs := &queryState{
		dist:    make([]float64, n),
		pred:    make([]int, n),
		visited: make([]bool, n),
	}
	for i := range qs.dist {
		qs.dist[i] = math.Inf(1)
		qs.pred[i] = noNode
	}
	qs.dist[source] = 0
	return qs
}

// nextUnvisited returns the unvisited node with the smallest tentative
// distance, lowest index first on ties, or noNode when every remaining node
// is unvisited at +Inf.
func (qs *queryState) nextUnvisited() int {
	best := noNode
	bestDist := math.Inf(1)
	for i, d := range qs.dist {
		if !qs.visited[i] && d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// ShortestPath runs Dijkstra's algorithm on m from source to target.
// Selection is a linear scan, which suits the small dense graphs this
// package is built for. The matrix is only read, so concurrent queries on
// the same matrix are safe.
//
// Unknown airports yield graph.ErrUnknownAirport; an unreachable target
// yields ErrNoRoute together with an infinite distance.
func ShortestPath(m *graph.Matrix, source, target dataset.ID) (PathResult, error) {
	s, err := m.Index(source)
	if err != nil {
		return PathResult{Distance: math.Inf(1)}, fmt.Errorf("source: %w", err)
	}
	t, err := m.Index(target)
	if err != nil {
		return PathResult{Distance: math.Inf(1)}, fmt.Errorf("target: %w", err)
	}

	qs := newQueryState(m.N(), s)

	for {
		u := qs.nextUnvisited()
		if u == noNode {
			break // everything left is unreachable
		}

		if u == t {
			return PathResult{
				Path:     qs.reconstruct(m, t),
				Distance: qs.dist[t],
			}, nil
		}

		qs.visited[u] = true

		// Relax outgoing edges to unvisited neighbors.
		row := m.Row(u)
		for v, w := range row {
			if qs.visited[v] || math.IsInf(w, 1) {
				continue
			}
			if cand := qs.dist[u] + w; cand < qs.dist[v] {
				qs.dist[v] = cand
				qs.pred[v] = u
			}
		}
	}

	return PathResult{Distance: math.Inf(1)}, fmt.Errorf("%d->%d: %w", source, target, ErrNoRoute)
}

// reconstruct follows predecessors back from target and returns the path in
// source-to-target order.
func (qs *queryState) reconstruct(m *graph.Matrix, target int) []dataset.ID {
	var path []dataset.ID
	for node := target; node != noNode; node = qs.pred[node] {
		path = append(path, m.ID(node))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
