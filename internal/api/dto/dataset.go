package dto

import (
	"fmt"
	"strings"

	"distribution-planner/internal/domain"
)

// Wire form of a distribution problem, shared by dataset files (JSON/YAML)
// and the HTTP API. Required numeric fields are pointers so that an absent
// field can be told apart from an explicit zero.
type DatasetRequest struct {
	Title             string            `json:"title" yaml:"title"`
	Description       string            `json:"description" yaml:"description"`
	Locations         []LocationRequest `json:"locations" yaml:"locations"`
	TruckCapacity     *int              `json:"truck_capacity" yaml:"truck_capacity"`
	CostPerKm         *float64          `json:"cost_per_km" yaml:"cost_per_km"`
	FixedCostPerTruck *float64          `json:"fixed_cost_per_truck" yaml:"fixed_cost_per_truck"`
}

// X is the longitude and Y the latitude. An absent demand means 0.
type LocationRequest struct {
	Name   string   `json:"name" yaml:"name"`
	X      *float64 `json:"x" yaml:"x"`
	Y      *float64 `json:"y" yaml:"y"`
	Demand int      `json:"demand,omitempty" yaml:"demand,omitempty"`
}

// SolveRequest is the POST /solutions body: a dataset plus an optional merge mode.
type SolveRequest struct {
	DatasetRequest `yaml:",inline"`
	MergeMode      string `json:"merge_mode,omitempty" yaml:"merge_mode,omitempty"`
}

// ToDomain checks that required fields are present and builds a validated dataset.
// Every error wraps domain.ErrInvalidDataset.
func (r DatasetRequest) ToDomain() (*domain.Dataset, error) {
	if len(r.Locations) == 0 {
		return nil, fmt.Errorf("%w: locations is required", domain.ErrInvalidDataset)
	}
	if r.TruckCapacity == nil {
		return nil, fmt.Errorf("%w: truck_capacity is required", domain.ErrInvalidDataset)
	}
	if r.CostPerKm == nil {
		return nil, fmt.Errorf("%w: cost_per_km is required", domain.ErrInvalidDataset)
	}
	if r.FixedCostPerTruck == nil {
		return nil, fmt.Errorf("%w: fixed_cost_per_truck is required", domain.ErrInvalidDataset)
	}

	locs := make([]domain.Location, 0, len(r.Locations))
	for i, l := range r.Locations {
		if l.X == nil || l.Y == nil {
			return nil, fmt.Errorf("%w: location %d (%q) needs both x and y", domain.ErrInvalidDataset, i, l.Name)
		}
		locs = append(locs, domain.Location{
			Name:   strings.TrimSpace(l.Name),
			X:      *l.X,
			Y:      *l.Y,
			Demand: l.Demand,
		})
	}

	ds := &domain.Dataset{
		Title:       r.Title,
		Description: r.Description,
		Locations:   locs,
		Truck:       domain.NewTruck(*r.TruckCapacity, *r.CostPerKm, *r.FixedCostPerTruck),
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// FromDataset is the inverse of ToDomain.
func FromDataset(ds *domain.Dataset) DatasetRequest {
	locs := make([]LocationRequest, 0, len(ds.Locations))
	for _, l := range ds.Locations {
		x, y := l.X, l.Y
		locs = append(locs, LocationRequest{Name: l.Name, X: &x, Y: &y, Demand: l.Demand})
	}
	capacity := ds.Truck.Capacity
	rate := ds.Truck.CostPerKm
	fixed := ds.Truck.FixedCost

	return DatasetRequest{
		Title:             ds.Title,
		Description:       ds.Description,
		Locations:         locs,
		TruckCapacity:     &capacity,
		CostPerKm:         &rate,
		FixedCostPerTruck: &fixed,
	}
}
