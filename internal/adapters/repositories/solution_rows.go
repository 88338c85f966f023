package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"distribution-planner/internal/domain"
)

// Fixed-width UTC layout so that created_at sorts correctly as TEXT in SQLite.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const listLimitDefault = 50

type rowScanner interface {
	Scan(dest ...any) error
}

func encodeCustomers(customers []string) (string, error) {
	if customers == nil {
		customers = []string{}
	}
	b, err := json.Marshal(customers)
	if err != nil {
		return "", fmt.Errorf("encode customers: %w", err)
	}
	return string(b), nil
}

func decodeCustomers(raw []byte) ([]string, error) {
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}
	return out, nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return listLimitDefault
	}
	return limit
}

// scanSolution reads the solutions columns in the order used by both
// repositories' SELECTs. created is scanned by the caller's driver-specific
// destination.
func scanSolution(row rowScanner, created any) (*domain.Solution, error) {
	var (
		sol     domain.Solution
		avgUtil sql.NullFloat64
		perUnit sql.NullFloat64
	)
	s := &sol.Summary
	err := row.Scan(
		&sol.ID, &sol.DatasetKey, &sol.MergeMode, created,
		&s.TotalRoutes, &s.TotalDemand, &s.TotalDistanceKm, &s.TotalVariableCost,
		&s.TotalFixedCost, &s.TotalCost, &avgUtil, &perUnit,
		&s.TruckCapacity, &s.CostPerKm, &s.FixedCostPerTruck,
	)
	if err != nil {
		return nil, err
	}
	s.AverageUtilization = floatPtr(avgUtil)
	s.CostPerUnit = floatPtr(perUnit)
	return &sol, nil
}

func scanRoute(row rowScanner) (domain.RouteCost, error) {
	var (
		rc  domain.RouteCost
		raw []byte
	)
	if err := row.Scan(
		&rc.RouteID, &raw, &rc.Demand, &rc.Capacity, &rc.Utilization,
		&rc.DistanceKm, &rc.VariableCost, &rc.FixedCost, &rc.TotalCost,
	); err != nil {
		return rc, err
	}

	customers, err := decodeCustomers(raw)
	if err != nil {
		return rc, err
	}
	rc.Customers = customers
	return rc, nil
}

func parseSqliteTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse created_at %q: %w", s, err)
	}
	return t.UTC(), nil
}

const selectSolutionColumns = `
	id, dataset_key, merge_mode, created_at,
	total_routes, total_demand, total_distance_km, total_variable_cost,
	total_fixed_cost, total_cost, average_utilization, cost_per_unit,
	truck_capacity, cost_per_km, fixed_cost_per_truck`

const selectRouteColumns = `
	route_id, customers, demand, capacity, utilization,
	distance_km, variable_cost, fixed_cost, total_cost`
