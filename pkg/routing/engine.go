package routing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"flight_router/pkg/dataset"
	"flight_router/pkg/graph"
)

// LatLng represents a geographic coordinate.
type LatLng struct {
	Lat float64
	Lng float64
}

// Leg is one direct flight of a route.
type Leg struct {
	From       dataset.Airport
	To         dataset.Airport
	DistanceKm float64
}

// RouteResult is the output of a route query.
type RouteResult struct {
	Airports        []dataset.Airport // source..target inclusive
	Legs            []Leg
	TotalDistanceKm float64

	// Set by RouteNear only.
	StartSnap *SnapResult
	EndSnap   *SnapResult
}

// Router is the interface for route queries.
type Router interface {
	Route(ctx context.Context, from, to dataset.ID) (*RouteResult, error)
}

// EngineConfig holds engine configuration.
type EngineConfig struct {
	MaxSnapDistanceKm float64
}

// DefaultEngineConfig returns sensible defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxSnapDistanceKm: 150,
	}
}

// Stats summarizes the loaded graph.
type Stats struct {
	NumAirports   int
	NumRoutes     int
	NumComponents int
}

// Engine implements Router over one immutable dataset snapshot.
type Engine struct {
	ds      *dataset.Dataset
	m       *graph.Matrix
	snapper *Snapper
	logger  zerolog.Logger
}

// NewEngine builds the distance matrix and snapping index for ds.
func NewEngine(ds *dataset.Dataset, cfg EngineConfig, logger zerolog.Logger) (*Engine, error) {
	m, err := graph.Build(ds.Airports, ds.Routes)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	return &Engine{
		ds:      ds,
		m:       m,
		snapper: NewSnapper(ds.Airports, cfg.MaxSnapDistanceKm),
		logger:  logger,
	}, nil
}

// Matrix returns the engine's distance matrix.
func (e *Engine) Matrix() *graph.Matrix { return e.m }

// Dataset returns the engine's dataset.
func (e *Engine) Dataset() *dataset.Dataset { return e.ds }

// Centrality returns degree counts for every airport.
func (e *Engine) Centrality() (*graph.Centrality, error) {
	return graph.ComputeCentrality(e.m, e.ds.Routes)
}

// Stats returns graph size and connectivity figures.
func (e *Engine) Stats() Stats {
	return Stats{
		NumAirports:   e.m.N(),
		NumRoutes:     e.m.NumEdges(),
		NumComponents: len(graph.Components(e.m)),
	}
}

// Route computes the shortest route between two airports.
func (e *Engine) Route(ctx context.Context, from, to dataset.ID) (*RouteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pr, err := ShortestPath(e.m, from, to)
	if err != nil {
		e.logger.Debug().Err(err).Int64("from", int64(from)).Int64("to", int64(to)).Msg("route query failed")
		return nil, err
	}

	result, err := e.buildResult(pr)
	if err != nil {
		return nil, err
	}
	e.logger.Debug().
		Int64("from", int64(from)).
		Int64("to", int64(to)).
		Int("hops", len(result.Legs)).
		Float64("distance_km", result.TotalDistanceKm).
		Msg("route found")
	return result, nil
}

// RouteByCode computes the shortest route between two IATA codes.
func (e *Engine) RouteByCode(ctx context.Context, fromCode, toCode string) (*RouteResult, error) {
	from, err := e.ds.ByCode(fromCode)
	if err != nil {
		return nil, err
	}
	to, err := e.ds.ByCode(toCode)
	if err != nil {
		return nil, err
	}
	return e.Route(ctx, from.ID, to.ID)
}

// RouteNear snaps both points to their nearest airports and routes between
// them.
func (e *Engine) RouteNear(ctx context.Context, start, end LatLng) (*RouteResult, error) {
	startSnap, err := e.snapper.Snap(start.Lat, start.Lng)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	endSnap, err := e.snapper.Snap(end.Lat, end.Lng)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	e.logger.Debug().
		Str("start_airport", startSnap.Airport.Code).
		Float64("start_snap_km", startSnap.DistanceKm).
		Str("end_airport", endSnap.Airport.Code).
		Float64("end_snap_km", endSnap.DistanceKm).
		Msg("snapped query points")

	result, err := e.Route(ctx, startSnap.Airport.ID, endSnap.Airport.ID)
	if err != nil {
		return nil, err
	}
	result.StartSnap = &startSnap
	result.EndSnap = &endSnap
	return result, nil
}

// buildResult expands a path of IDs into airports and per-hop legs.
func (e *Engine) buildResult(pr PathResult) (*RouteResult, error) {
	airports := make([]dataset.Airport, len(pr.Path))
	for i, id := range pr.Path {
		a, ok := e.ds.ByID(id)
		if !ok {
			return nil, fmt.Errorf("airport %d: %w", id, graph.ErrUnknownAirport)
		}
		airports[i] = a
	}

	legs := make([]Leg, 0, len(airports)-1)
	for i := 0; i+1 < len(airports); i++ {
		d, err := e.m.Distance(airports[i].ID, airports[i+1].ID)
		if err != nil {
			return nil, err
		}
		legs = append(legs, Leg{From: airports[i], To: airports[i+1], DistanceKm: d})
	}

	return &RouteResult{
		Airports:        airports,
		Legs:            legs,
		TotalDistanceKm: pr.Distance,
	}, nil
}
