package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"distribution-planner/internal/platform/obs"
)

// SQLDistanceCache is a Postgres-backed cache for origin->destination kilometer distances.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

// Fetch cached distances for one origin and multiple destinations.
func (s *SQLDistanceCache) GetMany(
	ctx context.Context,
	key string,
	origin string,
	destinations []string,
) (_ map[string]float64, err error) {
	defer obs.Time(ctx, "distance.cache.sql.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("distance cache: db is nil")
	}
	if key == "" || origin == "" {
		return nil, errors.New("get distance cache: key and origin must not be empty")
	}

	uniq := uniqueNames(destinations)
	if len(uniq) == 0 {
		return map[string]float64{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT destination, distance_km
	FROM distance_cache
	WHERE dataset_key = $1
		AND origin = $2
		AND destination = ANY($3::text[]);
	`, key, origin, uniq)
	if err != nil {
		return nil, fmt.Errorf("get distance cache: query distance_cache table: %w", err)
	}
	defer rows.Close()

	return scanDistances(rows, len(uniq))
}

// Store distances from a single origin.
func (s *SQLDistanceCache) PutMany(ctx context.Context, key, origin string, km map[string]float64) error {
	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}
	if key == "" || origin == "" {
		return errors.New("insert distance cache: key and origin must not be empty")
	}
	if len(km) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert distance cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO distance_cache (dataset_key, origin, destination, distance_km)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (dataset_key, origin, destination) DO UPDATE
	SET distance_km = EXCLUDED.distance_km;
	`)
	if err != nil {
		return fmt.Errorf("insert distance cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, d := range km {
		if strings.TrimSpace(dest) == "" {
			return fmt.Errorf("insert distance cache: empty destination key")
		}
		if _, err := stmt.ExecContext(ctx, key, origin, dest, d); err != nil {
			return fmt.Errorf("insert distance cache dest=%q: %w", dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert distance cache commit: %w", err)
	}

	return nil
}
