package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"distribution-planner/internal/adapters/cache"
	"distribution-planner/internal/adapters/repositories"
	"distribution-planner/internal/config"
	"distribution-planner/internal/platform/db"
	"distribution-planner/internal/ports"
	"distribution-planner/internal/services"
)

// Stores holds the concrete adapters selected by configuration.
type Stores struct {
	DB        *sql.DB
	Driver    string
	Solutions ports.SolutionRepository
	Distances ports.DistanceCache
	Cache     ports.SolutionCache

	redis *cache.RedisSolutionCache
}

// OpenStores connects to the configured database (DB_DRIVER, DB_PATH or
// DATABASE_URL), initializes its schema and, when REDIS_URL is set, the
// solution cache.
func OpenStores(ctx context.Context) (*Stores, error) {
	driver := strings.ToLower(config.Get("DB_DRIVER", "sqlite"))

	dsn := config.Get("DB_PATH", "data/app.db")
	if driver == "pgx" || driver == "postgres" {
		dsn = config.Get("DATABASE_URL", "")
		if strings.TrimSpace(dsn) == "" {
			return nil, errors.New("open stores: DATABASE_URL is required for postgres")
		}
	}

	conn, err := db.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open stores: %w", err)
	}

	s := &Stores{DB: conn, Driver: driver}
	if driver == "sqlite" {
		err = repositories.InitSchema(conn)
		s.Solutions = repositories.NewSqliteSolutionRepository(conn)
		s.Distances = cache.NewSqliteDistanceCache(conn)
	} else {
		err = repositories.InitPostgresSchema(ctx, conn)
		s.Solutions = repositories.NewSQLSolutionRepository(conn)
		s.Distances = cache.NewSQLDistanceCache(conn)
	}
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open stores: %w", err)
	}

	if url := config.Get("REDIS_URL", ""); url != "" {
		ttl := config.GetDuration("SOLUTION_TTL", time.Hour)
		rc, err := cache.NewRedisSolutionCacheFromURL(ctx, url, ttl)
		if err != nil {
			_ = s.DB.Close()
			return nil, err
		}
		s.redis = rc
		s.Cache = rc
		log.Printf("solution cache enabled ttl=%s", ttl)
	}

	return s, nil
}

// NewPlanner builds a planner over the stores using MERGE_MODE as the default mode.
func (s *Stores) NewPlanner() (*services.Planner, error) {
	mode, err := services.ParseMergeMode(config.Get("MERGE_MODE", string(services.MergeRestricted)))
	if err != nil {
		return nil, err
	}
	return services.NewPlanner(s.Solutions, s.Cache, s.Distances, mode), nil
}

func (s *Stores) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}
	return errors.Join(errs...)
}
