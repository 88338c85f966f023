package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"distribution-planner/internal/domain"
	"distribution-planner/internal/platform/obs"
	"distribution-planner/internal/ports"
)

// SQLite-backed implementation of the SolutionRepository port.
type SqliteSolutionRepository struct{ DB *sql.DB }

func NewSqliteSolutionRepository(db *sql.DB) *SqliteSolutionRepository {
	return &SqliteSolutionRepository{DB: db}
}

// Store a solution and its routes in one transaction.
func (s *SqliteSolutionRepository) Save(ctx context.Context, title string, sol *domain.Solution) (err error) {
	defer obs.Time(ctx, "solutions.sqlite.Save")(&err)

	if s.DB == nil {
		return errors.New("sqlite solution repository: DB is nil")
	}
	if sol == nil || sol.ID == "" {
		return errors.New("save solution: solution id must not be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save solution: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	sum := sol.Summary
	_, err = tx.ExecContext(ctx, `
	INSERT INTO solutions (
		id, dataset_key, title, merge_mode, created_at,
		total_routes, total_demand, total_distance_km, total_variable_cost,
		total_fixed_cost, total_cost, average_utilization, cost_per_unit,
		truck_capacity, cost_per_km, fixed_cost_per_truck
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		sol.ID, sol.DatasetKey, title, sol.MergeMode, sol.CreatedAt.UTC().Format(sqliteTimeLayout),
		sum.TotalRoutes, sum.TotalDemand, sum.TotalDistanceKm, sum.TotalVariableCost,
		sum.TotalFixedCost, sum.TotalCost, nullFloat(sum.AverageUtilization), nullFloat(sum.CostPerUnit),
		sum.TruckCapacity, sum.CostPerKm, sum.FixedCostPerTruck,
	)
	if err != nil {
		return fmt.Errorf("save solution %s: insert solution: %w", sol.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO solution_routes (
		solution_id, route_id, customers, demand, capacity, utilization,
		distance_km, variable_cost, fixed_cost, total_cost
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save solution %s: prepare route insert: %w", sol.ID, err)
	}
	defer stmt.Close()

	for _, r := range sol.Routes {
		customers, err := encodeCustomers(r.Customers)
		if err != nil {
			return fmt.Errorf("save solution %s route %d: %w", sol.ID, r.RouteID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			sol.ID, r.RouteID, customers, r.Demand, r.Capacity, r.Utilization,
			r.DistanceKm, r.VariableCost, r.FixedCost, r.TotalCost,
		); err != nil {
			return fmt.Errorf("save solution %s route %d: %w", sol.ID, r.RouteID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save solution %s: commit: %w", sol.ID, err)
	}
	return nil
}

// Load one solution with its routes ordered by route id.
func (s *SqliteSolutionRepository) Get(ctx context.Context, id string) (_ *domain.Solution, err error) {
	defer obs.Time(ctx, "solutions.sqlite.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite solution repository: DB is nil")
	}

	var created string
	row := s.DB.QueryRowContext(ctx, `SELECT `+selectSolutionColumns+` FROM solutions WHERE id = ?;`, id)
	sol, err := scanSolution(row, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get solution %q: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get solution %q: scan: %w", id, err)
	}

	if sol.CreatedAt, err = parseSqliteTime(created); err != nil {
		return nil, fmt.Errorf("get solution %q: %w", id, err)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT `+selectRouteColumns+`
	FROM solution_routes
	WHERE solution_id = ?
	ORDER BY route_id;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get solution %q: query routes: %w", id, err)
	}
	defer rows.Close()

	sol.Routes = make([]domain.RouteCost, 0, sol.Summary.TotalRoutes)
	for rows.Next() {
		rc, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("get solution %q: scan route: %w", id, err)
		}
		sol.Routes = append(sol.Routes, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get solution %q: route iteration: %w", id, err)
	}

	return sol, nil
}

// List the newest solutions first.
func (s *SqliteSolutionRepository) List(ctx context.Context, limit int) (_ []domain.SolutionHeader, err error) {
	defer obs.Time(ctx, "solutions.sqlite.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite solution repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, dataset_key, title, merge_mode, total_routes, total_cost, created_at
	FROM solutions
	ORDER BY created_at DESC, id
	LIMIT ?;
	`, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list solutions: query solutions table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.SolutionHeader, 0, 16)
	for rows.Next() {
		var h domain.SolutionHeader
		var created string
		if err := rows.Scan(&h.ID, &h.DatasetKey, &h.Title, &h.MergeMode, &h.TotalRoutes, &h.TotalCost, &created); err != nil {
			return nil, fmt.Errorf("list solutions: scan row: %w", err)
		}
		if h.CreatedAt, err = parseSqliteTime(created); err != nil {
			return nil, fmt.Errorf("list solutions: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list solutions: row iteration: %w", err)
	}

	return out, nil
}
