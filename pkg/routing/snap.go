package routing

import (
	"errors"

	"github.com/tidwall/rtree"

	"flight_router/pkg/dataset"
	"flight_router/pkg/geo"
)

var (
	// ErrPointTooFar is returned when no airport lies within the snap radius.
	ErrPointTooFar = errors.New("point too far from any airport")

	// ErrNoAirports is returned when snapping against an empty airport set.
	ErrNoAirports = errors.New("no airports to snap to")
)

// SnapResult is a query point matched to its nearest airport.
type SnapResult struct {
	Airport    dataset.Airport
	DistanceKm float64 // great-circle distance from the query point
}

// Snapper answers nearest-airport queries from an R-tree over airport
// locations. Entries are keyed by [lon, lat].
type Snapper struct {
	tr       rtree.RTreeG[int]
	airports []dataset.Airport
	maxDist  float64
}

// NewSnapper indexes airports. maxDistKm bounds how far a query point may be
// from the airport it snaps to.
func NewSnapper(airports []dataset.Airport, maxDistKm float64) *Snapper {
	s := &Snapper{
		airports: airports,
		maxDist:  maxDistKm,
	}
	for i, a := range airports {
		p := [2]float64{a.Lon, a.Lat}
		s.tr.Insert(p, p, i)
	}
	return s
}

// Snap finds the airport nearest to lat/lng by great-circle distance.
func (s *Snapper) Snap(lat, lng float64) (SnapResult, error) {
	if s.tr.Len() == 0 {
		return SnapResult{}, ErrNoAirports
	}

	// Boxes are ranked by a km lower bound and items by their exact distance,
	// so the first item visited is the nearest airport.
	found := false
	var best SnapResult
	s.tr.Nearby(
		func(lo, hi [2]float64, idx int, item bool) float64 {
			if item {
				a := s.airports[idx]
				return geo.Haversine(lat, lng, a.Lat, a.Lon)
			}
			return geo.MinBoxDist(lat, lng, lo[1], lo[0], hi[1], hi[0])
		},
		func(_, _ [2]float64, idx int, dist float64) bool {
			best = SnapResult{Airport: s.airports[idx], DistanceKm: dist}
			found = true
			return false
		},
	)

	if !found || !(best.DistanceKm <= s.maxDist) {
		return SnapResult{}, ErrPointTooFar
	}
	return best, nil
}
