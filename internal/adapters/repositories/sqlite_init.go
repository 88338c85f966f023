package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS solutions (
		id TEXT PRIMARY KEY,
		dataset_key TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		merge_mode TEXT NOT NULL,
		created_at TEXT NOT NULL,
		total_routes INTEGER NOT NULL,
		total_demand INTEGER NOT NULL,
		total_distance_km REAL NOT NULL,
		total_variable_cost REAL NOT NULL,
		total_fixed_cost REAL NOT NULL,
		total_cost REAL NOT NULL,
		average_utilization REAL,
		cost_per_unit REAL,
		truck_capacity INTEGER NOT NULL,
		cost_per_km REAL NOT NULL,
		fixed_cost_per_truck REAL NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS solution_routes (
		solution_id TEXT NOT NULL REFERENCES solutions(id) ON DELETE CASCADE,
		route_id INTEGER NOT NULL,
		customers TEXT NOT NULL,
		demand INTEGER NOT NULL,
		capacity INTEGER NOT NULL,
		utilization REAL NOT NULL,
		distance_km REAL NOT NULL,
		variable_cost REAL NOT NULL,
		fixed_cost REAL NOT NULL,
		total_cost REAL NOT NULL,
		PRIMARY KEY (solution_id, route_id)
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS distance_cache (
		dataset_key TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_km REAL NOT NULL,
		PRIMARY KEY (dataset_key, origin, destination)
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_solutions_created_at
	ON solutions(created_at);
	`,
	}

	return execSchema(context.Background(), db, statements)
}

// Initialize the Postgres schema. Same tables as InitSchema with native
// timestamp and double precision columns.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS solutions (
		id TEXT PRIMARY KEY,
		dataset_key TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		merge_mode TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		total_routes INTEGER NOT NULL,
		total_demand INTEGER NOT NULL,
		total_distance_km DOUBLE PRECISION NOT NULL,
		total_variable_cost DOUBLE PRECISION NOT NULL,
		total_fixed_cost DOUBLE PRECISION NOT NULL,
		total_cost DOUBLE PRECISION NOT NULL,
		average_utilization DOUBLE PRECISION,
		cost_per_unit DOUBLE PRECISION,
		truck_capacity INTEGER NOT NULL,
		cost_per_km DOUBLE PRECISION NOT NULL,
		fixed_cost_per_truck DOUBLE PRECISION NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS solution_routes (
		solution_id TEXT NOT NULL REFERENCES solutions(id) ON DELETE CASCADE,
		route_id INTEGER NOT NULL,
		customers JSONB NOT NULL,
		demand INTEGER NOT NULL,
		capacity INTEGER NOT NULL,
		utilization DOUBLE PRECISION NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		variable_cost DOUBLE PRECISION NOT NULL,
		fixed_cost DOUBLE PRECISION NOT NULL,
		total_cost DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (solution_id, route_id)
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS distance_cache (
		dataset_key TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (dataset_key, origin, destination)
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_solutions_created_at
	ON solutions(created_at DESC);
	`,
	}

	return execSchema(ctx, db, statements)
}

func execSchema(ctx context.Context, db *sql.DB, statements []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
