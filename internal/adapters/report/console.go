package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"distribution-planner/internal/domain"
)

var rule = strings.Repeat("=", 80)

// StopsLine renders a route as "A (5) → B (7)".
func StopsLine(customers []string, demandOf func(string) int) string {
	parts := lo.Map(customers, func(c string, _ int) string {
		return fmt.Sprintf("%s (%d)", c, demandOf(c))
	})
	return strings.Join(parts, " → ")
}

func money(v float64) string {
	return humanize.Commaf(v)
}

// PrintReport writes a human readable summary of a solved dataset.
func PrintReport(w io.Writer, ds *domain.Dataset, sol *domain.Solution) error {
	var b strings.Builder
	depot := ds.Depot()

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "DISTRIBUTION ROUTES AND COST")
	fmt.Fprintln(&b, rule)
	if ds.Title != "" {
		fmt.Fprintf(&b, "\nDataset: %s\n", ds.Title)
	}
	fmt.Fprintf(&b, "\nDepot: %s\n", depot.Name)
	fmt.Fprintf(&b, "Coordinates: (%v, %v)\n", depot.Y, depot.X)
	fmt.Fprintf(&b, "Truck capacity: %d units\n", ds.Truck.Capacity)
	fmt.Fprintf(&b, "Fixed cost per truck: %s\n", money(ds.Truck.FixedCost))
	fmt.Fprintf(&b, "Cost per km: %s\n", money(ds.Truck.CostPerKm))
	if sol.MergeMode != "" {
		fmt.Fprintf(&b, "Merge mode: %s\n", sol.MergeMode)
	}

	fmt.Fprintln(&b, "\n"+rule)
	fmt.Fprintln(&b, "ROUTES:")
	fmt.Fprintln(&b, rule)
	for _, r := range sol.Routes {
		fmt.Fprintf(&b, "\nRoute %d:\n", r.RouteID)
		fmt.Fprintf(&b, "  Stops: %s\n", StopsLine(r.Customers, ds.DemandOf))
		fmt.Fprintf(&b, "  Load: %d units (%.1f%%)\n", r.Demand, r.Utilization*100)
		fmt.Fprintf(&b, "  Distance: %v km\n", r.DistanceKm)
		fmt.Fprintf(&b, "  Variable cost: %s\n", money(r.VariableCost))
		fmt.Fprintf(&b, "  Fixed cost: %s\n", money(r.FixedCost))
		fmt.Fprintf(&b, "  Route total: %s\n", money(r.TotalCost))
	}

	s := sol.Summary
	fmt.Fprintln(&b, "\n"+rule)
	fmt.Fprintln(&b, "SUMMARY:")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Trucks: %d\n", s.TotalRoutes)
	fmt.Fprintf(&b, "Total demand: %d units\n", s.TotalDemand)
	fmt.Fprintf(&b, "Total distance: %v km\n", s.TotalDistanceKm)
	fmt.Fprintf(&b, "Total variable cost: %s\n", money(s.TotalVariableCost))
	fmt.Fprintf(&b, "Total fixed cost: %s\n", money(s.TotalFixedCost))
	fmt.Fprintln(&b, strings.Repeat("-", 80))
	fmt.Fprintf(&b, "TOTAL DISTRIBUTION COST: %s\n", money(s.TotalCost))
	fmt.Fprintln(&b, rule)

	fmt.Fprintln(&b, "\nEFFICIENCY:")
	if s.AverageUtilization != nil {
		fmt.Fprintf(&b, "Average truck utilization: %.1f%%\n", *s.AverageUtilization*100)
	} else {
		fmt.Fprintln(&b, "Average truck utilization: n/a")
	}
	if s.CostPerUnit != nil {
		fmt.Fprintf(&b, "Cost per unit: %s\n", humanize.Comma(int64(math.Round(*s.CostPerUnit))))
	} else {
		fmt.Fprintln(&b, "Cost per unit: n/a")
	}
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}

// PrintDistanceMatrix writes the matrix as an aligned table, rows in input order.
func PrintDistanceMatrix(w io.Writer, m *domain.DistanceMatrix) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	names := m.Names()

	fmt.Fprint(tw, "km\t")
	fmt.Fprintln(tw, strings.Join(names, "\t")+"\t")
	for _, from := range names {
		row := lo.Map(m.Row(from), func(km float64, _ int) string {
			return fmt.Sprintf("%.2f", km)
		})
		fmt.Fprintf(tw, "%s\t%s\t\n", from, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
