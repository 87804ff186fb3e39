package osm

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/rs/zerolog"

	"flight_router/pkg/dataset"
)

// Format selects the OSM encoding of the input.
type Format int

const (
	FormatPBF Format = iota
	FormatXML
)

// FormatFromPath guesses the encoding from a file name.
func FormatFromPath(path string) Format {
	if strings.HasSuffix(path, ".osm") || strings.HasSuffix(path, ".xml") {
		return FormatXML
	}
	return FormatPBF
}

// airportKinds lists aeroway tag values treated as airports.
var airportKinds = map[string]bool{
	"aerodrome": true,
	"airport":   true,
}

// isAirport returns true if the node is a public airport with an IATA code.
func isAirport(tags osm.Tags) bool {
	if !airportKinds[tags.Find("aeroway")] {
		return false
	}
	if strings.TrimSpace(tags.Find("iata")) == "" {
		return false
	}

	// Skip military and private fields.
	switch tags.Find("aerodrome:type") {
	case "military", "private":
		return false
	}
	if access := tags.Find("access"); access == "no" || access == "private" {
		return false
	}

	return true
}

// airportName picks the best display name, falling back to the IATA code.
func airportName(tags osm.Tags) string {
	for _, key := range []string{"name:en", "name", "official_name"} {
		if v := tags.Find(key); v != "" {
			return v
		}
	}
	return strings.ToUpper(tags.Find("iata"))
}

// ParseOptions configures the OSM parser.
type ParseOptions struct {
	Format Format
	Bound  orb.Bound      // if non-zero, only airports inside are kept
	Logger zerolog.Logger // zero value discards output
}

// ParseAirports reads an OSM extract and returns one Airport per tagged
// aerodrome node, in file order. The node ID becomes the airport ID. When
// two nodes share an IATA code the first one wins.
func ParseAirports(ctx context.Context, r io.Reader, opts ParseOptions) ([]dataset.Airport, error) {
	useBound := !opts.Bound.IsZero()

	var scanner osm.Scanner
	switch opts.Format {
	case FormatXML:
		scanner = osmxml.New(ctx, r)
	default:
		s := osmpbf.New(ctx, r, 1)
		s.SkipWays = true
		s.SkipRelations = true
		scanner = s
	}
	defer scanner.Close()

	var (
		airports     []dataset.Airport
		seenCodes    = make(map[string]osm.NodeID)
		nodesScanned int
		duplicates   int
		boundSkipped int
	)

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		nodesScanned++

		if !isAirport(n.Tags) {
			continue
		}

		if useBound && !opts.Bound.Contains(orb.Point{n.Lon, n.Lat}) {
			boundSkipped++
			continue
		}

		code := strings.ToUpper(strings.TrimSpace(n.Tags.Find("iata")))
		if first, dup := seenCodes[code]; dup {
			opts.Logger.Warn().
				Str("code", code).
				Int64("node", int64(n.ID)).
				Int64("kept_node", int64(first)).
				Msg("duplicate IATA code, skipping node")
			duplicates++
			continue
		}
		seenCodes[code] = n.ID

		airports = append(airports, dataset.Airport{
			ID:   dataset.ID(n.ID),
			Name: airportName(n.Tags),
			Code: code,
			Lat:  n.Lat,
			Lon:  n.Lon,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan airports: %w", err)
	}

	if boundSkipped > 0 {
		opts.Logger.Info().Msgf("Filtered %d airports outside bounding box", boundSkipped)
	}
	opts.Logger.Info().Msgf("Parsed %d airports from %d nodes (%d duplicate codes)", len(airports), nodesScanned, duplicates)

	return airports, nil
}
