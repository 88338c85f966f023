package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"distribution-planner/internal/platform/obs"
)

// SQLite backed cache for origin->destination kilometer distances,
// scoped by dataset geometry key.
type SqliteDistanceCache struct {
	DB *sql.DB
}

func NewSqliteDistanceCache(db *sql.DB) *SqliteDistanceCache {
	return &SqliteDistanceCache{DB: db}
}

// Fetch cached distances for one origin and multiple destinations.
func (s *SqliteDistanceCache) GetMany(
	ctx context.Context,
	key string,
	origin string,
	destinations []string,
) (_ map[string]float64, err error) {
	defer obs.Time(ctx, "distance.cache.sqlite.GetMany")(&err)

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

	ph := make([]string, len(uniq))
	args := make([]any, 0, 2+len(uniq))
	args = append(args, key, origin)
	for i, d := range uniq {
		ph[i] = "?"
		args = append(args, d)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT destination, distance_km
	FROM distance_cache
	WHERE dataset_key = ?
		AND origin = ?
		AND destination IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get distance cache: query distance_cache table: %w", err)
	}
	defer rows.Close()

	return scanDistances(rows, len(uniq))
}

// Store distances from a single origin.
func (s *SqliteDistanceCache) PutMany(ctx context.Context, key, origin string, km map[string]float64) error {
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
	INSERT OR REPLACE INTO distance_cache (dataset_key, origin, destination, distance_km)
	VALUES (?, ?, ?, ?)
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

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func scanDistances(rows *sql.Rows, size int) (map[string]float64, error) {
	out := make(map[string]float64, size)
	for rows.Next() {
		var dest string
		var km float64
		if err := rows.Scan(&dest, &km); err != nil {
			return nil, fmt.Errorf("get distance cache: scan rows: %w", err)
		}
		out[dest] = km
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get distance cache: row iteration: %w", err)
	}
	return out, nil
}
