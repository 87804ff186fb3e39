package routing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight_router/pkg/dataset"
	"flight_router/pkg/geo"
	"flight_router/pkg/graph"
)

// buildDefaultMatrix creates the five-airport test network.
//
//	GRU(1) -> GIG, BSB, CNF
//	GIG(2) -> GRU, SSA
//	BSB(3) -> GRU, SSA, CNF
//	SSA(4) -> GIG, BSB, CNF
//	CNF(5) -> GRU, BSB, SSA
func buildDefaultMatrix(t testing.TB) (*dataset.Dataset, *graph.Matrix) {
	t.Helper()
	ds, err := dataset.Default()
	require.NoError(t, err)
	m, err := graph.Build(ds.Airports, ds.Routes)
	require.NoError(t, err)
	return ds, m
}

// floydWarshall computes all-pairs shortest distances as a reference.
func floydWarshall(m *graph.Matrix) [][]float64 {
	n := m.N()
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		copy(d[i], m.Row(i))
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if c := d[i][k] + d[k][j]; c < d[i][j] {
					d[i][j] = c
				}
			}
		}
	}
	return d
}

func haversineBetween(t *testing.T, ds *dataset.Dataset, from, to dataset.ID) float64 {
	t.Helper()
	a, ok := ds.ByID(from)
	require.True(t, ok)
	b, ok := ds.ByID(to)
	require.True(t, ok)
	return geo.Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

// pathLength sums the matrix weights along path.
func pathLength(t *testing.T, m *graph.Matrix, path []dataset.ID) float64 {
	t.Helper()
	var total float64
	for i := 0; i+1 < len(path); i++ {
		d, err := m.Distance(path[i], path[i+1])
		require.NoError(t, err)
		require.False(t, math.IsInf(d, 1), "path uses missing edge %d->%d", path[i], path[i+1])
		total += d
	}
	return total
}

func TestShortestPathSalvadorToGuarulhos(t *testing.T) {
	ds, m := buildDefaultMatrix(t)

	got, err := ShortestPath(m, 4, 1)
	require.NoError(t, err)

	require.NotEmpty(t, got.Path)
	assert.Equal(t, dataset.ID(4), got.Path[0])
	assert.Equal(t, dataset.ID(1), got.Path[len(got.Path)-1])
	assert.InDelta(t, pathLength(t, m, got.Path), got.Distance, 1e-9)

	// Every two-hop alternative is at least as long.
	for _, via := range []dataset.ID{2, 3, 5} {
		alt := haversineBetween(t, ds, 4, via) + haversineBetween(t, ds, via, 1)
		assert.LessOrEqual(t, got.Distance, alt+1e-9, "via %d", via)
	}

	// SSA -> CNF -> GRU is the shortest (~1455.7 km).
	assert.Equal(t, []dataset.ID{4, 5, 1}, got.Path)
	assert.InDelta(t, 1455.69, got.Distance, 0.01)
}

func TestShortestPathSameSourceAndTarget(t *testing.T) {
	_, m := buildDefaultMatrix(t)

	for _, id := range m.IDs() {
		got, err := ShortestPath(m, id, id)
		require.NoError(t, err)
		assert.Equal(t, []dataset.ID{id}, got.Path)
		assert.Zero(t, got.Distance)
	}
}

func TestShortestPathDirectNeighbor(t *testing.T) {
	ds, m := buildDefaultMatrix(t)

	got, err := ShortestPath(m, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []dataset.ID{1, 2}, got.Path)
	assert.InDelta(t, haversineBetween(t, ds, 1, 2), got.Distance, 1e-9)
}

func TestShortestPathMatchesFloydWarshall(t *testing.T) {
	_, m := buildDefaultMatrix(t)
	ref := floydWarshall(m)

	for i := 0; i < m.N(); i++ {
		for j := 0; j < m.N(); j++ {
			got, err := ShortestPath(m, m.ID(i), m.ID(j))
			require.NoError(t, err)
			assert.InDelta(t, ref[i][j], got.Distance, 1e-6, "s=%d d=%d", m.ID(i), m.ID(j))
			assert.InDelta(t, got.Distance, pathLength(t, m, got.Path), 1e-6)
		}
	}
}

func TestShortestPathPrefixIsShortest(t *testing.T) {
	_, m := buildDefaultMatrix(t)

	for _, src := range m.IDs() {
		for _, dst := range m.IDs() {
			got, err := ShortestPath(m, src, dst)
			require.NoError(t, err)

			for k := 1; k < len(got.Path)-1; k++ {
				prefix, err := ShortestPath(m, src, got.Path[k])
				require.NoError(t, err)
				assert.InDelta(t, pathLength(t, m, got.Path[:k+1]), prefix.Distance, 1e-6,
					"prefix %v of %d->%d", got.Path[:k+1], src, dst)
			}
		}
	}
}

func TestShortestPathTriangleInequality(t *testing.T) {
	_, m := buildDefaultMatrix(t)
	ids := m.IDs()

	dist := func(a, b dataset.ID) float64 {
		r, err := ShortestPath(m, a, b)
		require.NoError(t, err)
		return r.Distance
	}

	for _, a := range ids {
		for _, b := range ids {
			for _, c := range ids {
				assert.LessOrEqual(t, dist(a, c), dist(a, b)+dist(b, c)+1e-6, "a=%d b=%d c=%d", a, b, c)
			}
		}
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	ds, err := dataset.Default()
	require.NoError(t, err)

	// Add an airport nobody flies to.
	airports := append(ds.Airports, dataset.Airport{ID: 6, Name: "Recife", Code: "REC", Lat: -8.1265, Lon: -34.9236})
	routes := dataset.Routes{}
	for k, v := range ds.Routes {
		routes[k] = v
	}
	routes[6] = []dataset.ID{4}

	m, err := graph.Build(airports, routes)
	require.NoError(t, err)

	got, err := ShortestPath(m, 1, 6)
	assert.ErrorIs(t, err, ErrNoRoute)
	assert.NotErrorIs(t, err, graph.ErrUnknownAirport)
	assert.Nil(t, got.Path)
	assert.True(t, math.IsInf(got.Distance, 1))

	// Outgoing routes from the isolated airport still work.
	got, err = ShortestPath(m, 6, 1)
	require.NoError(t, err)
	assert.Equal(t, dataset.ID(6), got.Path[0])
}

func TestShortestPathOneWay(t *testing.T) {
	ds, err := dataset.Default()
	require.NoError(t, err)
	m, err := graph.Build(ds.Airports, dataset.Routes{1: {2}})
	require.NoError(t, err)

	_, err = ShortestPath(m, 1, 2)
	require.NoError(t, err)

	got, err := ShortestPath(m, 2, 1)
	assert.ErrorIs(t, err, ErrNoRoute)
	assert.True(t, math.IsInf(got.Distance, 1))
}

func TestShortestPathUnknownAirport(t *testing.T) {
	_, m := buildDefaultMatrix(t)

	tests := []struct {
		name           string
		source, target dataset.ID
	}{
		{name: "unknown source", source: 99, target: 1},
		{name: "unknown target", source: 1, target: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShortestPath(m, tt.source, tt.target)
			assert.ErrorIs(t, err, graph.ErrUnknownAirport)
			assert.NotErrorIs(t, err, ErrNoRoute)
			assert.Nil(t, got.Path)
		})
	}
}

func TestShortestPathTieBreakLowestIndex(t *testing.T) {
	// S reaches T through X or Y; both detours have identical length by
	// symmetry about the meridian through S and T.
	s := dataset.Airport{ID: 1, Code: "SSS", Lat: 0, Lon: 0}
	x := dataset.Airport{ID: 2, Code: "XXX", Lat: 0, Lon: 1}
	y := dataset.Airport{ID: 3, Code: "YYY", Lat: 0, Lon: -1}
	tgt := dataset.Airport{ID: 4, Code: "TTT", Lat: 1, Lon: 0}
	routes := dataset.Routes{1: {2, 3}, 2: {4}, 3: {4}}

	tests := []struct {
		name     string
		airports []dataset.Airport
		want     []dataset.ID
	}{
		{name: "X indexed first", airports: []dataset.Airport{s, x, y, tgt}, want: []dataset.ID{1, 2, 4}},
		{name: "Y indexed first", airports: []dataset.Airport{s, y, x, tgt}, want: []dataset.ID{1, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := graph.Build(tt.airports, routes)
			require.NoError(t, err)

			got, err := ShortestPath(m, 1, 4)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Path)
		})
	}
}

func BenchmarkShortestPath(b *testing.B) {
	_, m := buildDefaultMatrix(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ShortestPath(m, 4, 1)
	}
}
