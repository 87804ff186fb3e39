package graph

import (
	"sort"

	"flight_router/pkg/dataset"
)

// unionFind is a disjoint-set forest with path halving and union by size.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := 0; i < n; i++ {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // path halving
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(x, y int) {
	rx, ry := uf.find(x), uf.find(y)
	if rx == ry {
		return
	}
	if uf.size[rx] < uf.size[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
}

// Components returns the weakly connected components of m (routes treated as
// undirected), largest first. Airports inside a component are listed in
// matrix index order; equal-sized components are ordered by their first
// airport's index.
//
// A single component does not imply every pair is reachable, since routes
// are directed.
func Components(m *Matrix) [][]dataset.ID {
	n := m.N()
	if n == 0 {
		return nil
	}

	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if m.HasEdge(i, j) {
				uf.union(i, j)
			}
		}
	}

	groups := make(map[int][]int)
	var roots []int
	for i := 0; i < n; i++ {
		r := uf.find(i)
		if _, ok := groups[r]; !ok {
			roots = append(roots, r)
		}
		groups[r] = append(groups[r], i)
	}

	sort.SliceStable(roots, func(a, b int) bool {
		return len(groups[roots[a]]) > len(groups[roots[b]])
	})

	comps := make([][]dataset.ID, len(roots))
	for k, r := range roots {
		members := groups[r]
		ids := make([]dataset.ID, len(members))
		for x, idx := range members {
			ids[x] = m.ID(idx)
		}
		comps[k] = ids
	}
	return comps
}
