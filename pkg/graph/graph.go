package graph

import (
	"errors"
	"fmt"
	"math"

	"flight_router/pkg/dataset"
)

var (
	// ErrUnknownAirport is returned when a route or query names an airport
	// that is not part of the node set.
	ErrUnknownAirport = errors.New("unknown airport")

	// ErrDuplicateAirport is returned when two airports share an ID.
	ErrDuplicateAirport = errors.New("duplicate airport")
)

// Matrix is a dense n×n distance table in row-major order. Cell (i,j) holds
// the great-circle distance in km of the direct route i→j, +Inf when there is
// no such route, and 0 on the diagonal. It is read-only once built and safe
// to share between goroutines.
type Matrix struct {
	n     int
	ids   []dataset.ID       // index → airport ID
	index map[dataset.ID]int // airport ID → index
	dist  []float64          // len: n*n
}

// N returns the number of airports.
func (m *Matrix) N() int { return m.n }

// At returns the distance stored in cell (i,j).
func (m *Matrix) At(i, j int) float64 {
	return m.dist[i*m.n+j]
}

// Row returns row i. Callers must not modify it.
func (m *Matrix) Row(i int) []float64 {
	return m.dist[i*m.n : (i+1)*m.n]
}

// ID returns the airport ID at matrix index i.
func (m *Matrix) ID(i int) dataset.ID { return m.ids[i] }

// IDs returns the airport IDs in index order.
func (m *Matrix) IDs() []dataset.ID {
	out := make([]dataset.ID, len(m.ids))
	copy(out, m.ids)
	return out
}

// Index returns the matrix index of an airport ID.
func (m *Matrix) Index(id dataset.ID) (int, error) {
	i, ok := m.index[id]
	if !ok {
		return -1, fmt.Errorf("airport %d: %w", id, ErrUnknownAirport)
	}
	return i, nil
}

// Distance returns the direct-route distance from one airport to another,
// +Inf when there is no direct route.
func (m *Matrix) Distance(from, to dataset.ID) (float64, error) {
	i, err := m.Index(from)
	if err != nil {
		return 0, err
	}
	j, err := m.Index(to)
	if err != nil {
		return 0, err
	}
	return m.At(i, j), nil
}

// HasEdge reports whether cell (i,j) is a direct route.
func (m *Matrix) HasEdge(i, j int) bool {
	return i != j && !math.IsInf(m.At(i, j), 1)
}

// NumEdges returns the number of distinct direct routes.
func (m *Matrix) NumEdges() int {
	count := 0
	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			if m.HasEdge(i, j) {
				count++
			}
		}
	}
	return count
}
