package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"flight_router/pkg/dataset"
	"flight_router/pkg/graph"
	"flight_router/pkg/routing"
)

// NoRoute is printed when the target cannot be reached.
const NoRoute = "No route found."

// WriteRoute prints the numbered airport list and total distance.
func WriteRoute(w io.Writer, r *routing.RouteResult) error {
	var b strings.Builder
	if r.StartSnap != nil {
		fmt.Fprintf(&b, "Start snapped to %s (%.2f km away)\n", label(r.StartSnap.Airport), r.StartSnap.DistanceKm)
	}
	if r.EndSnap != nil {
		fmt.Fprintf(&b, "End snapped to %s (%.2f km away)\n", label(r.EndSnap.Airport), r.EndSnap.DistanceKm)
	}

	b.WriteString("Best route:\n")
	for i, a := range r.Airports {
		fmt.Fprintf(&b, "%d. %s\n", i+1, label(a))
	}
	if len(r.Legs) > 1 {
		for _, leg := range r.Legs {
			fmt.Fprintf(&b, "   %s -> %s: %.2f km\n", leg.From.Code, leg.To.Code, leg.DistanceKm)
		}
	}
	fmt.Fprintf(&b, "Total distance: %.2f km\n", r.TotalDistanceKm)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteNoRoute prints the no-route message.
func WriteNoRoute(w io.Writer) error {
	_, err := fmt.Fprintln(w, NoRoute)
	return err
}

// WriteCentrality prints airports ranked by out-degree.
func WriteCentrality(w io.Writer, ds *dataset.Dataset, c *graph.Centrality) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "AIRPORT\tOUT\tIN")
	for _, e := range c.Ranked() {
		name := fmt.Sprint(e.ID)
		if a, ok := ds.ByID(e.ID); ok {
			name = label(a)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\n", name, e.Out, e.In)
	}
	return tw.Flush()
}

// WriteMatrix prints the distance matrix with airport codes as headers.
// Missing direct routes print as "inf".
func WriteMatrix(w io.Writer, ds *dataset.Dataset, m *graph.Matrix) error {
	codes := make([]string, m.N())
	for i := range codes {
		codes[i] = fmt.Sprint(m.ID(i))
		if a, ok := ds.ByID(m.ID(i)); ok {
			codes[i] = a.Code
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(codes, "\t"))
	for i := 0; i < m.N(); i++ {
		cells := make([]string, m.N())
		for j, d := range m.Row(i) {
			if math.IsInf(d, 1) {
				cells[j] = "inf"
			} else {
				cells[j] = fmt.Sprintf("%.2f", d)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", codes[i], strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func label(a dataset.Airport) string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Code)
}
