package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"distribution-planner/internal/api/dto"
	"distribution-planner/internal/domain"
)

// Default file names inside the output directory.
const (
	SolutionFile = "vrp_solution.json"
	GeoJSONFile  = "routes.geojson"
)

// WriteSolutionJSON writes the solution in its wire form, indented.
func WriteSolutionJSON(path string, sol *domain.Solution) error {
	data, err := json.MarshalIndent(dto.FromSolution(sol), "", "  ")
	if err != nil {
		return fmt.Errorf("write solution: encode: %w", err)
	}
	return writeFile(path, data)
}

// WriteGeoJSON writes one LineString per route (depot to depot) and one
// Point per location.
func WriteGeoJSON(path string, ds *domain.Dataset, sol *domain.Solution) error {
	fc, err := RouteFeatures(ds, sol)
	if err != nil {
		return err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("write geojson: encode: %w", err)
	}
	return writeFile(path, data)
}

func RouteFeatures(ds *domain.Dataset, sol *domain.Solution) (*geojson.FeatureCollection, error) {
	points := make(map[string]orb.Point, len(ds.Locations))
	for _, l := range ds.Locations {
		points[l.Name] = l.Coords().Point()
	}
	depot := ds.Depot()

	fc := geojson.NewFeatureCollection()
	for _, r := range sol.Routes {
		line := make(orb.LineString, 0, len(r.Customers)+2)
		line = append(line, points[depot.Name])
		for _, c := range r.Customers {
			p, ok := points[c]
			if !ok {
				return nil, fmt.Errorf("route %d: unknown location %q", r.RouteID, c)
			}
			line = append(line, p)
		}
		line = append(line, points[depot.Name])

		f := geojson.NewFeature(line)
		f.Properties["route_id"] = r.RouteID
		f.Properties["customers"] = r.Customers
		f.Properties["demand"] = r.Demand
		f.Properties["distance_km"] = r.DistanceKm
		f.Properties["total_cost"] = r.TotalCost
		fc.Append(f)
	}

	for i, l := range ds.Locations {
		f := geojson.NewFeature(points[l.Name])
		f.Properties["name"] = l.Name
		f.Properties["demand"] = l.Demand
		f.Properties["depot"] = i == 0
		fc.Append(f)
	}
	return fc, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
