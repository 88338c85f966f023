package ports

import (
	"context"

	"distribution-planner/internal/domain"
)

// Short-lived cache of solved datasets, keyed by dataset fingerprint and merge mode.
type SolutionCache interface {
	// Returns ErrNotFound on a miss.
	Get(ctx context.Context, fingerprint, mode string) (*domain.Solution, error)
	Put(ctx context.Context, fingerprint, mode string, sol *domain.Solution) error
}
