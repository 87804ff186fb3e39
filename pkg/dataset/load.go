package dataset

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

//go:embed default.yaml
var defaultYAML []byte

// routeDoc is one adjacency entry as written in YAML: a source and its
// direct destinations. K is an airport ID or an IATA code.
type routeDoc[K any] struct {
	From K   `yaml:"from"`
	To   []K `yaml:"to"`
}

type datasetDoc struct {
	Airports []Airport       `yaml:"airports"`
	Routes   []routeDoc[ID] `yaml:"routes"`
}

type codeRoutesDoc struct {
	Routes []routeDoc[string] `yaml:"routes"`
}

// Default returns a fresh copy of the built-in five-airport dataset.
func Default() (*Dataset, error) {
	return Decode(defaultYAML)
}

// Load reads and validates a YAML dataset file.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	ds, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Decode parses a YAML dataset document and validates its airports.
// Repeated "from" entries are merged in document order.
func Decode(data []byte) (*Dataset, error) {
	var doc datasetDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	routes := make(Routes, len(doc.Routes))
	for _, r := range doc.Routes {
		routes[r.From] = append(routes[r.From], r.To...)
	}

	ds := &Dataset{Airports: doc.Airports, Routes: routes}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// LoadCodeRoutes reads a YAML route list keyed by IATA code and resolves it
// against airports. It is used when airports come from an OSM extract and
// therefore carry OSM node IDs rather than hand-assigned ones.
func LoadCodeRoutes(path string, airports []Airport) (Routes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes: %w", err)
	}
	var doc codeRoutesDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode routes %s: %w", path, err)
	}

	byCode := make(map[string][]string, len(doc.Routes))
	var order []string
	for _, r := range doc.Routes {
		if _, ok := byCode[r.From]; !ok {
			order = append(order, r.From)
		}
		byCode[r.From] = append(byCode[r.From], r.To...)
	}

	ds := &Dataset{Airports: airports}
	routes := make(Routes, len(byCode))
	for _, from := range order {
		src, err := ds.ByCode(from)
		if err != nil {
			return nil, fmt.Errorf("route source: %w", err)
		}
		for _, to := range byCode[from] {
			dst, err := ds.ByCode(to)
			if err != nil {
				return nil, fmt.Errorf("route %s->%s: %w", from, to, err)
			}
			routes[src.ID] = append(routes[src.ID], dst.ID)
		}
	}
	return routes, nil
}
