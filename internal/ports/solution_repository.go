package ports

import (
	"context"

	"distribution-planner/internal/domain"
)

// Port: a boundary for persisting planned solutions.
type SolutionRepository interface {
	// Store a solution. sol.ID must be set; title labels it in listings.
	Save(ctx context.Context, title string, sol *domain.Solution) error
	// Load one solution with its routes. Returns ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (*domain.Solution, error)
	// List the most recent solutions, newest first.
	List(ctx context.Context, limit int) ([]domain.SolutionHeader, error)
}
