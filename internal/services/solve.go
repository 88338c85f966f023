package services

import (
	"fmt"

	"distribution-planner/internal/domain"
)

// Solve runs the savings heuristic on one dataset with a freshly computed
// distance matrix. The dataset is validated first.
func Solve(ds *domain.Dataset, mode MergeMode) (*domain.Solution, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	m := BuildDistanceMatrix(ds.Locations)
	sol := SolveWithMatrix(ds, m, mode)
	return &sol, nil
}

// SolveWithMatrix runs savings, merging and assembly against a prepared
// matrix. ds must already be valid and m must cover all of its locations.
func SolveWithMatrix(ds *domain.Dataset, m *domain.DistanceMatrix, mode MergeMode) domain.Solution {
	if mode == "" {
		mode = MergeRestricted
	}

	depot := ds.Depot().Name
	customers := ds.CustomerNames()
	demands := ds.Demands()

	savings := CalculateSavings(m, depot, customers)
	routes := MergeRoutes(depot, customers, demands, ds.Truck.Capacity, savings, mode)

	sol := AssembleSolution(routes, m, ds.Truck, func(name string) int { return demands[name] })
	sol.MergeMode = mode.String()
	return sol
}
