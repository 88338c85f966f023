package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"distribution-planner/internal/domain"
	"distribution-planner/internal/platform/metrics"
	"distribution-planner/internal/platform/obs"
	"distribution-planner/internal/ports"
)

// Planner is the application service behind the CLI and the HTTP API.
//
// Every dependency is optional: without Solutions nothing is persisted,
// without Cache every request is solved, and without Matrix distances are
// always computed. Identical concurrent requests (same dataset fingerprint and
// merge mode) are solved once and share the result.
type Planner struct {
	Solutions ports.SolutionRepository
	Cache     ports.SolutionCache
	Matrix    *CachedMatrixBuilder
	Mode      MergeMode

	now   func() time.Time
	group singleflight.Group
}

func NewPlanner(
	solutions ports.SolutionRepository,
	cache ports.SolutionCache,
	distances ports.DistanceCache,
	mode MergeMode,
) *Planner {
	if mode == "" {
		mode = MergeRestricted
	}
	return &Planner{
		Solutions: solutions,
		Cache:     cache,
		Matrix:    NewCachedMatrixBuilder(distances),
		Mode:      mode,
		now:       time.Now,
	}
}

// Plan validates and solves a dataset. mode overrides the planner default
// when non-empty. The returned solution is shared with concurrent callers of
// the same request and must not be modified; it is stored once, under the
// title of the caller that started the solve.
func (p *Planner) Plan(ctx context.Context, ds *domain.Dataset, mode MergeMode) (_ *domain.Solution, err error) {
	defer obs.Time(ctx, "planner.Plan")(&err)

	if mode == "" {
		mode = p.Mode
	}
	if mode == "" {
		mode = MergeRestricted
	}

	if err := ds.Validate(); err != nil {
		metrics.Solves.WithLabelValues(mode.String(), "invalid").Inc()
		return nil, fmt.Errorf("plan: %w", err)
	}

	fingerprint := ds.Fingerprint()

	if p.Cache != nil {
		sol, err := p.Cache.Get(ctx, fingerprint, mode.String())
		switch {
		case err == nil:
			metrics.Solves.WithLabelValues(mode.String(), "cached").Inc()
			return sol, nil
		case !errors.Is(err, ports.ErrNotFound):
			log.Printf("req_id=%s solution cache read failed key=%s err=%v", obs.RequestID(ctx), fingerprint, err)
		}
	}

	// The shared solve outlives any single caller; each caller stops waiting
	// when its own context ends.
	ch := p.group.DoChan(fingerprint+":"+mode.String(), func() (any, error) {
		return p.solve(context.WithoutCancel(ctx), ds, fingerprint, mode)
	})

	select {
	case <-ctx.Done():
		metrics.Solves.WithLabelValues(mode.String(), "error").Inc()
		return nil, fmt.Errorf("plan: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			metrics.Solves.WithLabelValues(mode.String(), "error").Inc()
			return nil, res.Err
		}
		metrics.Solves.WithLabelValues(mode.String(), "solved").Inc()
		return res.Val.(*domain.Solution), nil
	}
}

func (p *Planner) solve(ctx context.Context, ds *domain.Dataset, fingerprint string, mode MergeMode) (*domain.Solution, error) {
	start := time.Now()

	m, err := p.Matrix.Build(ctx, ds)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	sol := SolveWithMatrix(ds, m, mode)
	sol.ID = uuid.NewString()
	sol.DatasetKey = fingerprint
	sol.CreatedAt = p.clock().UTC()

	metrics.SolveDuration.WithLabelValues(mode.String()).Observe(time.Since(start).Seconds())
	metrics.RoutesPerSolution.Observe(float64(len(sol.Routes)))

	if p.Solutions != nil {
		if err := p.Solutions.Save(ctx, ds.Title, &sol); err != nil {
			return nil, fmt.Errorf("plan: save solution %s: %w", sol.ID, err)
		}
	}

	if p.Cache != nil {
		if err := p.Cache.Put(ctx, fingerprint, mode.String(), &sol); err != nil {
			log.Printf("req_id=%s solution cache write failed key=%s err=%v", obs.RequestID(ctx), fingerprint, err)
		}
	}

	return &sol, nil
}

// DistanceMatrix validates a dataset and returns its rounded distance matrix.
func (p *Planner) DistanceMatrix(ctx context.Context, ds *domain.Dataset) (*domain.DistanceMatrix, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("distance matrix: %w", err)
	}
	return p.Matrix.Build(ctx, ds)
}

func (p *Planner) clock() time.Time {
	if p.now == nil {
		return time.Now()
	}
	return p.now()
}
