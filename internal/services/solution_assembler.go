package services

import (
	"math"

	"distribution-planner/internal/domain"
)

// Turn the final route set into a costed solution.
//
// Route distance is the sum of consecutive legs depot→…→depot taken from the
// (already rounded) matrix. Distances and monetary amounts are rounded to two
// decimals in the output; utilizations to four. Route ids are 1-based in route
// order. AverageUtilization is nil when there are no routes and CostPerUnit is
// nil when no demand is served.
func AssembleSolution(
	routes []domain.Route,
	m *domain.DistanceMatrix,
	truck domain.Truck,
	demandOf func(name string) int,
) domain.Solution {
	out := make([]domain.RouteCost, 0, len(routes))
	totalDistance := 0.0
	totalDemand := 0

	for i, r := range routes {
		distance := routeDistance(m, r.Stops)
		totalDistance += distance

		customers := append([]string(nil), r.Customers()...)
		for _, c := range customers {
			totalDemand += demandOf(c)
		}

		out = append(out, domain.RouteCost{
			RouteID:      i + 1,
			Customers:    customers,
			Demand:       r.Demand,
			Capacity:     truck.Capacity,
			Utilization:  round4(truck.Utilization(r.Demand)),
			DistanceKm:   round2(distance),
			VariableCost: round2(truck.VariableCost(distance)),
			FixedCost:    truck.FixedCost,
			TotalCost:    round2(truck.TripCost(distance)),
		})
	}

	totalVariable := truck.VariableCost(totalDistance)
	totalFixed := float64(len(out)) * truck.FixedCost
	totalCost := totalFixed + totalVariable

	summary := domain.Summary{
		TotalRoutes:       len(out),
		TotalDemand:       totalDemand,
		TotalDistanceKm:   round2(totalDistance),
		TotalVariableCost: round2(totalVariable),
		TotalFixedCost:    totalFixed,
		TotalCost:         round2(totalCost),
		TruckCapacity:     truck.Capacity,
		CostPerKm:         truck.CostPerKm,
		FixedCostPerTruck: truck.FixedCost,
	}

	if len(out) > 0 {
		avg := round4(float64(totalDemand) / float64(len(out)*truck.Capacity))
		summary.AverageUtilization = &avg
	}
	if totalDemand > 0 {
		perUnit := round2(totalCost / float64(totalDemand))
		summary.CostPerUnit = &perUnit
	}

	return domain.Solution{Routes: out, Summary: summary}
}

func routeDistance(m *domain.DistanceMatrix, stops []string) float64 {
	total := 0.0
	for i := 0; i+1 < len(stops); i++ {
		total += m.Distance(stops[i], stops[i+1])
	}
	return total
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
