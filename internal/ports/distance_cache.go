package ports

import "context"

// Cache of computed kilometer distances between named locations.
// Names are only unique within one dataset geometry, so every call is scoped
// by key (see domain.Dataset.GeometryKey).
type DistanceCache interface {
	// Return cached distances from origin to the given destinations.
	// Destinations that are not cached are absent from the result.
	GetMany(ctx context.Context, key, origin string, destinations []string) (map[string]float64, error)
	// Store distances from origin, keyed by destination name.
	PutMany(ctx context.Context, key, origin string, km map[string]float64) error
}
