package dto

import (
	"encoding/json"
	"time"

	"distribution-planner/internal/domain"
)

type RouteResponse struct {
	RouteID      int      `json:"route_id"`
	Customers    []string `json:"customers"`
	Demand       int      `json:"demand"`
	Capacity     int      `json:"capacity"`
	Utilization  float64  `json:"utilization"`
	DistanceKm   float64  `json:"distance_km"`
	VariableCost float64  `json:"variable_cost"`
	FixedCost    float64  `json:"fixed_cost"`
	TotalCost    float64  `json:"total_cost"`
}

// Undefined metrics are encoded as null.
type SummaryResponse struct {
	TotalRoutes        int      `json:"total_routes"`
	TotalDemand        int      `json:"total_demand"`
	TotalDistanceKm    float64  `json:"total_distance_km"`
	TotalVariableCost  float64  `json:"total_variable_cost"`
	TotalFixedCost     float64  `json:"total_fixed_cost"`
	TotalCost          float64  `json:"total_cost"`
	AverageUtilization *float64 `json:"average_utilization"`
	CostPerUnit        *float64 `json:"cost_per_unit"`
	TruckCapacity      int      `json:"truck_capacity"`
	CostPerKm          float64  `json:"cost_per_km"`
	FixedCostPerTruck  float64  `json:"fixed_cost_per_truck"`
}

type SolutionResponse struct {
	ID         string          `json:"id,omitempty"`
	DatasetKey string          `json:"dataset_key,omitempty"`
	MergeMode  string          `json:"merge_mode,omitempty"`
	CreatedAt  *time.Time      `json:"created_at,omitempty"`
	Routes     []RouteResponse `json:"routes"`
	Summary    SummaryResponse `json:"summary"`
}

type SolutionHeaderResponse struct {
	ID          string    `json:"id"`
	DatasetKey  string    `json:"dataset_key"`
	Title       string    `json:"title"`
	MergeMode   string    `json:"merge_mode"`
	TotalRoutes int       `json:"total_routes"`
	TotalCost   float64   `json:"total_cost"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListSolutionsResponse struct {
	Solutions []SolutionHeaderResponse `json:"solutions"`
}

func FromSolution(sol *domain.Solution) SolutionResponse {
	routes := make([]RouteResponse, 0, len(sol.Routes))
	for _, r := range sol.Routes {
		customers := r.Customers
		if customers == nil {
			customers = []string{}
		}
		routes = append(routes, RouteResponse{
			RouteID:      r.RouteID,
			Customers:    customers,
			Demand:       r.Demand,
			Capacity:     r.Capacity,
			Utilization:  r.Utilization,
			DistanceKm:   r.DistanceKm,
			VariableCost: r.VariableCost,
			FixedCost:    r.FixedCost,
			TotalCost:    r.TotalCost,
		})
	}

	s := sol.Summary
	res := SolutionResponse{
		ID:         sol.ID,
		DatasetKey: sol.DatasetKey,
		MergeMode:  sol.MergeMode,
		Routes:     routes,
		Summary: SummaryResponse{
			TotalRoutes:        s.TotalRoutes,
			TotalDemand:        s.TotalDemand,
			TotalDistanceKm:    s.TotalDistanceKm,
			TotalVariableCost:  s.TotalVariableCost,
			TotalFixedCost:     s.TotalFixedCost,
			TotalCost:          s.TotalCost,
			AverageUtilization: s.AverageUtilization,
			CostPerUnit:        s.CostPerUnit,
			TruckCapacity:      s.TruckCapacity,
			CostPerKm:          s.CostPerKm,
			FixedCostPerTruck:  s.FixedCostPerTruck,
		},
	}
	if !sol.CreatedAt.IsZero() {
		created := sol.CreatedAt
		res.CreatedAt = &created
	}
	return res
}

// ToDomain is the inverse of FromSolution.
func (r SolutionResponse) ToDomain() *domain.Solution {
	routes := make([]domain.RouteCost, 0, len(r.Routes))
	for _, rt := range r.Routes {
		routes = append(routes, domain.RouteCost{
			RouteID:      rt.RouteID,
			Customers:    rt.Customers,
			Demand:       rt.Demand,
			Capacity:     rt.Capacity,
			Utilization:  rt.Utilization,
			DistanceKm:   rt.DistanceKm,
			VariableCost: rt.VariableCost,
			FixedCost:    rt.FixedCost,
			TotalCost:    rt.TotalCost,
		})
	}

	s := r.Summary
	sol := &domain.Solution{
		ID:         r.ID,
		DatasetKey: r.DatasetKey,
		MergeMode:  r.MergeMode,
		Routes:     routes,
		Summary: domain.Summary{
			TotalRoutes:        s.TotalRoutes,
			TotalDemand:        s.TotalDemand,
			TotalDistanceKm:    s.TotalDistanceKm,
			TotalVariableCost:  s.TotalVariableCost,
			TotalFixedCost:     s.TotalFixedCost,
			TotalCost:          s.TotalCost,
			AverageUtilization: s.AverageUtilization,
			CostPerUnit:        s.CostPerUnit,
			TruckCapacity:      s.TruckCapacity,
			CostPerKm:          s.CostPerKm,
			FixedCostPerTruck:  s.FixedCostPerTruck,
		},
	}
	if r.CreatedAt != nil {
		sol.CreatedAt = *r.CreatedAt
	}
	return sol
}

func FromHeader(h domain.SolutionHeader) SolutionHeaderResponse {
	return SolutionHeaderResponse{
		ID:          h.ID,
		DatasetKey:  h.DatasetKey,
		Title:       h.Title,
		MergeMode:   h.MergeMode,
		TotalRoutes: h.TotalRoutes,
		TotalCost:   h.TotalCost,
		CreatedAt:   h.CreatedAt,
	}
}

// MarshalSolution encodes a solution in its wire form.
func MarshalSolution(sol *domain.Solution) ([]byte, error) {
	return json.Marshal(FromSolution(sol))
}

func UnmarshalSolution(data []byte) (*domain.Solution, error) {
	var res SolutionResponse
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return res.ToDomain(), nil
}
