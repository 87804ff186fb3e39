package graph

import (
	"fmt"
	"math"

	"flight_router/pkg/dataset"
	"flight_router/pkg/geo"
)

// Build creates the distance matrix for the given airports and directed
// routes. Airport order fixes the index assignment. Only direct routes are
// encoded; multi-hop reachability is left to the shortest-path search.
// A route listed twice overwrites the same cell rather than accumulating.
func Build(airports []dataset.Airport, routes dataset.Routes) (*Matrix, error) {
	n := len(airports)

	// Step 1: Assign a compact index to every airport.
	ids := make([]dataset.ID, n)
	index := make(map[dataset.ID]int, n)
	for i, a := range airports {
		if _, dup := index[a.ID]; dup {
			return nil, fmt.Errorf("airport %d: %w", a.ID, ErrDuplicateAirport)
		}
		ids[i] = a.ID
		index[a.ID] = i
	}

	// Step 2: +Inf everywhere, 0 on the diagonal.
	dist := make([]float64, n*n)
	inf := math.Inf(1)
	for i := range dist {
		dist[i] = inf
	}
	for i := 0; i < n; i++ {
		dist[i*n+i] = 0
	}

	// Step 3: Fill direct routes. Sources are visited in ascending ID order
	// so the first reported error is deterministic.
	for _, from := range routes.Sources() {
		u, ok := index[from]
		if !ok {
			return nil, fmt.Errorf("route source %d: %w", from, ErrUnknownAirport)
		}
		for _, to := range routes[from] {
			v, ok := index[to]
			if !ok {
				return nil, fmt.Errorf("route %d->%d: %w", from, to, ErrUnknownAirport)
			}
			if u == v {
				continue
			}
			a, b := airports[u], airports[v]
			dist[u*n+v] = geo.Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
		}
	}

	return &Matrix{
		n:     n,
		ids:   ids,
		index: index,
		dist:  dist,
	}, nil
}
