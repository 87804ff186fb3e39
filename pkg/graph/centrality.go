package graph

import (
	"fmt"
	"sort"

	"flight_router/pkg/dataset"
)

// OutDegree counts the directed routes leaving each airport of m. Airports
// without routes map to 0. Duplicate entries in a destination list are counted
// each time. Both endpoints of every route must exist in m.
func OutDegree(m *Matrix, routes dataset.Routes) (map[dataset.ID]int, error) {
	deg := make(map[dataset.ID]int, m.N())
	for _, id := range m.ids {
		deg[id] = 0
	}
	for _, from := range routes.Sources() {
		if _, err := m.Index(from); err != nil {
			return nil, fmt.Errorf("route source: %w", err)
		}
		for _, to := range routes[from] {
			if _, err := m.Index(to); err != nil {
				return nil, fmt.Errorf("route %d->%d: %w", from, to, err)
			}
			deg[from]++
		}
	}
	return deg, nil
}

// DegreeEntry is one airport's row in a Centrality table.
type DegreeEntry struct {
	ID  dataset.ID
	Out int
	In  int
}

// Centrality holds per-airport degree counts in matrix index order.
type Centrality struct {
	Entries []DegreeEntry
}

// ComputeCentrality returns out- and in-degree for every airport of m,
// including airports without routes. Route endpoints must exist in m.
func ComputeCentrality(m *Matrix, routes dataset.Routes) (*Centrality, error) {
	entries := make([]DegreeEntry, m.N())
	for i := range entries {
		entries[i].ID = m.ID(i)
	}

	out, err := OutDegree(m, routes)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Out = out[entries[i].ID]
	}
	for _, dsts := range routes {
		for _, to := range dsts {
			entries[m.index[to]].In++
		}
	}

	return &Centrality{Entries: entries}, nil
}

// Out returns the out-degree of an airport. ok is false if id is not in the
// table.
func (c *Centrality) Out(id dataset.ID) (n int, ok bool) {
	for _, e := range c.Entries {
		if e.ID == id {
			return e.Out, true
		}
	}
	return 0, false
}

// Ranked returns the entries sorted by out-degree descending, then by ID.
func (c *Centrality) Ranked() []DegreeEntry {
	out := make([]DegreeEntry, len(c.Entries))
	copy(out, c.Entries)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Out != out[j].Out {
			return out[i].Out > out[j].Out
		}
		return out[i].ID < out[j].ID
	})
	return out
}
