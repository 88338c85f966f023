package services

import (
	"context"
	"fmt"
	"log"

	"distribution-planner/internal/domain"
	"distribution-planner/internal/platform/metrics"
	"distribution-planner/internal/platform/obs"
	"distribution-planner/internal/ports"
)

// CachedMatrixBuilder builds distance matrices row by row, reusing rows that a
// DistanceCache already holds for the same dataset geometry. Cache failures
// are logged and the row is computed instead.
type CachedMatrixBuilder struct {
	Cache ports.DistanceCache
}

func NewCachedMatrixBuilder(cache ports.DistanceCache) *CachedMatrixBuilder {
	return &CachedMatrixBuilder{Cache: cache}
}

func (b *CachedMatrixBuilder) Build(ctx context.Context, ds *domain.Dataset) (_ *domain.DistanceMatrix, err error) {
	defer obs.Time(ctx, "matrix.Build")(&err)

	if b == nil || b.Cache == nil {
		return BuildDistanceMatrix(ds.Locations), nil
	}

	key := ds.GeometryKey()
	reqID := obs.RequestID(ctx)

	names := make([]string, len(ds.Locations))
	for i, l := range ds.Locations {
		names[i] = l.Name
	}
	m := domain.NewDistanceMatrix(names)

	for _, from := range ds.Locations {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build matrix: %w", err)
		}

		dests := make([]string, 0, len(names)-1)
		for _, n := range names {
			if n != from.Name {
				dests = append(dests, n)
			}
		}

		cached, err := b.Cache.GetMany(ctx, key, from.Name, dests)
		if err != nil {
			log.Printf("req_id=%s matrix cache read failed origin=%q err=%v", reqID, from.Name, err)
			cached = nil
		}

		if err == nil && len(cached) == len(dests) {
			for dest, km := range cached {
				m.Set(from.Name, dest, km)
			}
			metrics.DistanceCacheLookups.WithLabelValues("hit").Inc()
			continue
		}

		row := fillRow(m, from, ds.Locations)
		metrics.DistanceCacheLookups.WithLabelValues("miss").Inc()

		// Write failures are logged only.
		if err := b.Cache.PutMany(ctx, key, from.Name, row); err != nil {
			log.Printf("req_id=%s matrix cache write failed origin=%q err=%v", reqID, from.Name, err)
		}
	}

	return m, nil
}
