package dataset

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/paulmach/orb"
)

var (
	// ErrInvalidDataset is returned when a dataset fails validation.
	ErrInvalidDataset = errors.New("invalid dataset")

	// ErrUnknownCode is returned when an IATA code does not match any airport.
	ErrUnknownCode = errors.New("unknown airport code")
)

// ID identifies an airport. Airports imported from OSM keep their node ID.
type ID int64

// Airport is a graph node. Coordinates are in degrees.
type Airport struct {
	ID   ID      `yaml:"id"`
	Name string  `yaml:"name"`
	Code string  `yaml:"code"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

// Point returns the airport location in orb's [lon, lat] order.
func (a Airport) Point() orb.Point {
	return orb.Point{a.Lon, a.Lat}
}

// Routes maps a source airport to its direct destinations.
type Routes map[ID][]ID

// Sources returns the route sources in ascending order.
func (r Routes) Sources() []ID {
	ids := make([]ID, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// NumEdges returns the number of directed edges, counting duplicates.
func (r Routes) NumEdges() int {
	n := 0
	for _, dsts := range r {
		n += len(dsts)
	}
	return n
}

// Dataset is the node set and directed edge list for one graph snapshot.
// The order of Airports fixes each airport's matrix index.
type Dataset struct {
	Airports []Airport
	Routes   Routes
}

// ByID returns the airport with the given ID.
func (d *Dataset) ByID(id ID) (Airport, bool) {
	for _, a := range d.Airports {
		if a.ID == id {
			return a, true
		}
	}
	return Airport{}, false
}

// ByCode returns the airport with the given IATA code (case-insensitive).
func (d *Dataset) ByCode(code string) (Airport, error) {
	for _, a := range d.Airports {
		if strings.EqualFold(a.Code, code) {
			return a, nil
		}
	}
	return Airport{}, fmt.Errorf("%q: %w", code, ErrUnknownCode)
}

// Bound returns the bounding box enclosing every airport.
func (d *Dataset) Bound() orb.Bound {
	mp := make(orb.MultiPoint, len(d.Airports))
	for i, a := range d.Airports {
		mp[i] = a.Point()
	}
	return mp.Bound()
}

// Validate checks airport attributes: unique IDs and codes, a non-empty code,
// and coordinates inside the valid degree range. Route endpoints are checked
// by the graph builder.
func (d *Dataset) Validate() error {
	if len(d.Airports) == 0 {
		return fmt.Errorf("no airports: %w", ErrInvalidDataset)
	}

	seenIDs := make(map[ID]struct{}, len(d.Airports))
	seenCodes := make(map[string]ID, len(d.Airports))
	for _, a := range d.Airports {
		if _, dup := seenIDs[a.ID]; dup {
			return fmt.Errorf("duplicate airport id %d: %w", a.ID, ErrInvalidDataset)
		}
		seenIDs[a.ID] = struct{}{}

		if a.Code == "" {
			return fmt.Errorf("airport %d has no code: %w", a.ID, ErrInvalidDataset)
		}
		code := strings.ToUpper(a.Code)
		if other, dup := seenCodes[code]; dup {
			return fmt.Errorf("code %s used by airports %d and %d: %w", code, other, a.ID, ErrInvalidDataset)
		}
		seenCodes[code] = a.ID

		if err := validateCoord(a.Lat, a.Lon); err != nil {
			return fmt.Errorf("airport %d (%s): %v: %w", a.ID, a.Code, err, ErrInvalidDataset)
		}
	}
	return nil
}

func validateCoord(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}
