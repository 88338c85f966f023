package domain

import "time"

// A Saving is the distance saved by joining two customers' depot round-trips
// into one route leg From–To.
type Saving struct {
	Value float64
	From  string
	To    string
}

// Represents a truck route during and after construction.
// Stops begins and ends with the depot name. Endpoints are the customers at
// which the route may still be joined to another route.
type Route struct {
	Stops     []string
	Demand    int
	Endpoints [2]string
}

// Customers returns the stops without the depot at either end.
func (r Route) Customers() []string {
	if len(r.Stops) < 2 {
		return nil
	}
	return r.Stops[1 : len(r.Stops)-1]
}

// First returns the first customer after the depot.
func (r Route) First() string { return r.Stops[1] }

// Last returns the last customer before the return to the depot.
func (r Route) Last() string { return r.Stops[len(r.Stops)-2] }

// Cost breakdown of a single final route.
type RouteCost struct {
	RouteID      int
	Customers    []string
	Demand       int
	Capacity     int
	Utilization  float64
	DistanceKm   float64
	VariableCost float64
	FixedCost    float64
	TotalCost    float64
}

// Fleet-wide totals for a solution. AverageUtilization and CostPerUnit are nil
// when they are undefined (no routes, or no demand served).
type Summary struct {
	TotalRoutes        int
	TotalDemand        int
	TotalDistanceKm    float64
	TotalVariableCost  float64
	TotalFixedCost     float64
	TotalCost          float64
	AverageUtilization *float64
	CostPerUnit        *float64
	TruckCapacity      int
	CostPerKm          float64
	FixedCostPerTruck  float64
}

// Solution is the planning output for one dataset.
// ID, DatasetKey, MergeMode and CreatedAt are filled in by the planner when the
// solution is stored; the solver leaves them empty.
type Solution struct {
	ID         string
	DatasetKey string
	MergeMode  string
	CreatedAt  time.Time
	Routes     []RouteCost
	Summary    Summary
}

// SolutionHeader is the listing view of a stored solution.
type SolutionHeader struct {
	ID          string
	DatasetKey  string
	Title       string
	MergeMode   string
	TotalRoutes int
	TotalCost   float64
	CreatedAt   time.Time
}
