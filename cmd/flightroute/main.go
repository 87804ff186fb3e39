package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"

	"flight_router/pkg/dataset"
	"flight_router/pkg/graph"
	osmparser "flight_router/pkg/osm"
	"flight_router/pkg/report"
	"flight_router/pkg/routing"
)

func main() {
	datasetPath := flag.String("dataset", "", "Path to a YAML dataset (default: built-in Brazilian airports)")
	osmPath := flag.String("osm", "", "Load airports from an .osm.pbf or .osm extract instead of -dataset")
	routesPath := flag.String("routes", "", "YAML route list keyed by IATA code (required with -osm)")
	bbox := flag.String("bbox", "", "Bounding box filter for -osm: minLat,minLng,maxLat,maxLng")
	from := flag.String("from", "SSA", "Origin IATA code")
	to := flag.String("to", "GRU", "Destination IATA code")
	nearFrom := flag.String("near-from", "", "Origin as lat,lng; snaps to the nearest airport (overrides -from)")
	nearTo := flag.String("near-to", "", "Destination as lat,lng; snaps to the nearest airport (overrides -to)")
	maxSnapKm := flag.Float64("max-snap-km", routing.DefaultEngineConfig().MaxSnapDistanceKm, "Maximum distance from a -near point to its airport")
	showMatrix := flag.Bool("matrix", false, "Print the distance matrix")
	showCentrality := flag.Bool("centrality", false, "Print out/in degree per airport")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(1)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()

	ctx := context.Background()
	start := time.Now()

	// Step 1: Load dataset.
	ds, err := loadDataset(ctx, logger, *datasetPath, *osmPath, *routesPath, *bbox)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load dataset")
	}
	logger.Info().Msgf("Loaded %d airports, %d routes", len(ds.Airports), ds.Routes.NumEdges())

	// Step 2: Build graph.
	cfg := routing.DefaultEngineConfig()
	cfg.MaxSnapDistanceKm = *maxSnapKm
	engine, err := routing.NewEngine(ds, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build graph")
	}

	stats := engine.Stats()
	logger.Info().Msgf("Graph: %d airports, %d direct routes, %d component(s) in %s",
		stats.NumAirports, stats.NumRoutes, stats.NumComponents, time.Since(start).Round(time.Microsecond))
	if stats.NumComponents > 1 {
		comps := graph.Components(engine.Matrix())
		logger.Warn().Msgf("Network is split: largest component has %d of %d airports", len(comps[0]), stats.NumAirports)
	}

	if *showMatrix {
		if err := report.WriteMatrix(os.Stdout, ds, engine.Matrix()); err != nil {
			logger.Fatal().Err(err).Msg("Failed to write matrix")
		}
		fmt.Println()
	}
	if *showCentrality {
		c, err := engine.Centrality()
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to compute centrality")
		}
		if err := report.WriteCentrality(os.Stdout, ds, c); err != nil {
			logger.Fatal().Err(err).Msg("Failed to write centrality")
		}
		fmt.Println()
	}

	// Step 3: Route.
	result, err := route(ctx, engine, *from, *to, *nearFrom, *nearTo)
	switch {
	case errors.Is(err, routing.ErrNoRoute):
		if err := report.WriteNoRoute(os.Stdout); err != nil {
			logger.Fatal().Err(err).Msg("Failed to write result")
		}
		return
	case err != nil:
		logger.Fatal().Err(err).Msg("Route query failed")
	}

	if err := report.WriteRoute(os.Stdout, result); err != nil {
		logger.Fatal().Err(err).Msg("Failed to write result")
	}
}

func route(ctx context.Context, engine *routing.Engine, from, to, nearFrom, nearTo string) (*routing.RouteResult, error) {
	if nearFrom == "" && nearTo == "" {
		return engine.RouteByCode(ctx, from, to)
	}

	start, err := resolvePoint(engine.Dataset(), nearFrom, from)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	end, err := resolvePoint(engine.Dataset(), nearTo, to)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	return engine.RouteNear(ctx, start, end)
}

// resolvePoint parses a lat,lng flag, falling back to the coordinates of an
// airport code.
func resolvePoint(ds *dataset.Dataset, latLng, code string) (routing.LatLng, error) {
	if latLng == "" {
		a, err := ds.ByCode(code)
		if err != nil {
			return routing.LatLng{}, err
		}
		return routing.LatLng{Lat: a.Lat, Lng: a.Lon}, nil
	}
	var p routing.LatLng
	if _, err := fmt.Sscanf(latLng, "%f,%f", &p.Lat, &p.Lng); err != nil {
		return routing.LatLng{}, fmt.Errorf("invalid point %q (expected lat,lng): %w", latLng, err)
	}
	return p, nil
}

func loadDataset(ctx context.Context, logger zerolog.Logger, datasetPath, osmPath, routesPath, bbox string) (*dataset.Dataset, error) {
	if osmPath == "" {
		if datasetPath == "" {
			logger.Info().Msg("Using built-in dataset")
			return dataset.Default()
		}
		logger.Info().Msgf("Loading dataset from %s...", datasetPath)
		return dataset.Load(datasetPath)
	}

	if routesPath == "" {
		return nil, errors.New("-routes is required with -osm")
	}

	opts := osmparser.ParseOptions{
		Format: osmparser.FormatFromPath(osmPath),
		Logger: logger,
	}
	if bbox != "" {
		var minLat, minLng, maxLat, maxLng float64
		if _, err := fmt.Sscanf(bbox, "%f,%f,%f,%f", &minLat, &minLng, &maxLat, &maxLng); err != nil {
			return nil, fmt.Errorf("invalid bbox format (expected minLat,minLng,maxLat,maxLng): %w", err)
		}
		opts.Bound = orb.Bound{Min: orb.Point{minLng, minLat}, Max: orb.Point{maxLng, maxLat}}
		logger.Info().Msgf("Using bounding box filter: lat [%.4f, %.4f], lng [%.4f, %.4f]", minLat, maxLat, minLng, maxLng)
	}

	logger.Info().Msgf("Parsing OSM airports from %s...", osmPath)
	f, err := os.Open(osmPath)
	if err != nil {
		return nil, fmt.Errorf("open osm file: %w", err)
	}
	defer f.Close()

	airports, err := osmparser.ParseAirports(ctx, f, opts)
	if err != nil {
		return nil, err
	}

	routes, err := dataset.LoadCodeRoutes(routesPath, airports)
	if err != nil {
		return nil, err
	}

	ds := &dataset.Dataset{Airports: airports, Routes: routes}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	b := ds.Bound()
	logger.Debug().Msgf("Airport extent: lat [%.4f, %.4f], lng [%.4f, %.4f]", b.Min.Lat(), b.Max.Lat(), b.Min.Lon(), b.Max.Lon())
	return ds, nil
}
