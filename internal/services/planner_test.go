package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distribution-planner/internal/domain"
	"distribution-planner/internal/ports"
)

type memSolutionRepo struct {
	mu     sync.Mutex
	saved  map[string]*domain.Solution
	titles map[string]string
	err    error
}

func newMemSolutionRepo() *memSolutionRepo {
	return &memSolutionRepo{saved: map[string]*domain.Solution{}, titles: map[string]string{}}
}

func (r *memSolutionRepo) Save(_ context.Context, title string, sol *domain.Solution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saved[sol.ID] = sol
	r.titles[sol.ID] = title
	return nil
}

func (r *memSolutionRepo) Get(_ context.Context, id string) (*domain.Solution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sol, ok := r.saved[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return sol, nil
}

func (r *memSolutionRepo) List(_ context.Context, _ int) ([]domain.SolutionHeader, error) {
	return nil, nil
}

type memSolutionCache struct {
	mu      sync.Mutex
	entries map[string]*domain.Solution
	getErr  error
}

func (c *memSolutionCache) Get(_ context.Context, fingerprint, mode string) (*domain.Solution, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	sol, ok := c.entries[fingerprint+":"+mode]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return sol, nil
}

func (c *memSolutionCache) Put(_ context.Context, fingerprint, mode string, sol *domain.Solution) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = map[string]*domain.Solution{}
	}
	c.entries[fingerprint+":"+mode] = sol
	return nil
}

type memDistanceCache struct {
	mu   sync.Mutex
	rows map[string]map[string]float64
	gets int
	puts int
}

func (c *memDistanceCache) GetMany(_ context.Context, key, origin string, destinations []string) (map[string]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	out := map[string]float64{}
	for _, d := range destinations {
		if km, ok := c.rows[key+"|"+origin][d]; ok {
			out[d] = km
		}
	}
	return out, nil
}

func (c *memDistanceCache) PutMany(_ context.Context, key, origin string, km map[string]float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	if c.rows == nil {
		c.rows = map[string]map[string]float64{}
	}
	row := c.rows[key+"|"+origin]
	if row == nil {
		row = map[string]float64{}
		c.rows[key+"|"+origin] = row
	}
	for d, v := range km {
		row[d] = v
	}
	return nil
}

type failingDistanceCache struct{}

func (failingDistanceCache) GetMany(context.Context, string, string, []string) (map[string]float64, error) {
	return nil, errors.New("cache down")
}

func (failingDistanceCache) PutMany(context.Context, string, string, map[string]float64) error {
	return errors.New("cache down")
}

func TestPlannerSolvesAndSaves(t *testing.T) {
	repo := newMemSolutionRepo()
	p := NewPlanner(repo, nil, nil, "")
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	ds := twoCustomerDataset(10)
	sol, err := p.Plan(context.Background(), ds, "")
	require.NoError(t, err)

	assert.NotEmpty(t, sol.ID)
	assert.Equal(t, ds.Fingerprint(), sol.DatasetKey)
	assert.Equal(t, "restricted", sol.MergeMode)
	assert.Equal(t, fixed, sol.CreatedAt)
	require.Len(t, sol.Routes, 1)

	stored, err := repo.Get(context.Background(), sol.ID)
	require.NoError(t, err)
	assert.Equal(t, sol, stored)
	assert.Equal(t, "two customers", repo.titles[sol.ID])
}

func TestPlannerModeOverride(t *testing.T) {
	p := NewPlanner(nil, nil, nil, MergeCanonical)

	sol, err := p.Plan(context.Background(), twoCustomerDataset(10), "")
	require.NoError(t, err)
	assert.Equal(t, "canonical", sol.MergeMode)

	sol, err = p.Plan(context.Background(), twoCustomerDataset(10), MergeRestricted)
	require.NoError(t, err)
	assert.Equal(t, "restricted", sol.MergeMode)
}

func TestPlannerInvalidDataset(t *testing.T) {
	repo := newMemSolutionRepo()
	p := NewPlanner(repo, nil, nil, "")

	ds := twoCustomerDataset(10)
	ds.Locations[2].Name = "A"

	_, err := p.Plan(context.Background(), ds, "")
	assert.ErrorIs(t, err, domain.ErrInvalidDataset)
	assert.Empty(t, repo.saved)
}

func TestPlannerUsesSolutionCache(t *testing.T) {
	repo := newMemSolutionRepo()
	cache := &memSolutionCache{}
	p := NewPlanner(repo, cache, nil, "")

	first, err := p.Plan(context.Background(), twoCustomerDataset(10), "")
	require.NoError(t, err)

	second, err := p.Plan(context.Background(), twoCustomerDataset(10), "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.saved, 1)

	// Another mode is a different cache entry.
	third, err := p.Plan(context.Background(), twoCustomerDataset(10), MergeCanonical)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestPlannerCacheReadErrorFallsBackToSolve(t *testing.T) {
	cache := &memSolutionCache{getErr: errors.New("redis down")}
	p := NewPlanner(nil, cache, nil, "")

	sol, err := p.Plan(context.Background(), twoCustomerDataset(10), "")
	require.NoError(t, err)
	assert.Len(t, sol.Routes, 1)
}

func TestPlannerSaveErrorIsReturned(t *testing.T) {
	repo := newMemSolutionRepo()
	repo.err = errors.New("disk full")
	p := NewPlanner(repo, nil, nil, "")

	_, err := p.Plan(context.Background(), twoCustomerDataset(10), "")
	assert.ErrorContains(t, err, "disk full")
}

func TestPlannerConcurrentIdenticalRequests(t *testing.T) {
	repo := newMemSolutionRepo()
	p := NewPlanner(repo, &memSolutionCache{}, nil, "")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Plan(context.Background(), cityDataset(), "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.GreaterOrEqual(t, len(repo.saved), 1)
}

// blockingDistanceCache holds every lookup until release is closed.
type blockingDistanceCache struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (c *blockingDistanceCache) GetMany(ctx context.Context, _, _ string, _ []string) (map[string]float64, error) {
	c.once.Do(func() { close(c.entered) })
	select {
	case <-c.release:
		return map[string]float64{}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *blockingDistanceCache) PutMany(context.Context, string, string, map[string]float64) error {
	return nil
}

func TestPlannerCancelledCallerDoesNotFailSharedSolve(t *testing.T) {
	repo := newMemSolutionRepo()
	distances := &blockingDistanceCache{entered: make(chan struct{}), release: make(chan struct{})}
	p := NewPlanner(repo, nil, distances, "")

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := p.Plan(ctx, cityDataset(), "")
		first <- err
	}()
	<-distances.entered

	type result struct {
		sol *domain.Solution
		err error
	}
	second := make(chan result, 1)
	go func() {
		sol, err := p.Plan(context.Background(), cityDataset(), "")
		second <- result{sol, err}
	}()
	// Give the second caller time to join the in-flight solve.
	time.Sleep(50 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(distances.release)
	res := <-second
	require.NoError(t, res.err)
	assert.NotEmpty(t, res.sol.Routes)
	assert.Len(t, repo.saved, 1)
}

func TestCachedMatrixBuilderReusesRows(t *testing.T) {
	cache := &memDistanceCache{}
	b := NewCachedMatrixBuilder(cache)
	ds := cityDataset()

	first, err := b.Build(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, len(ds.Locations), cache.puts)

	second, err := b.Build(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, len(ds.Locations), cache.puts, "second build must be served from cache")

	want := BuildDistanceMatrix(ds.Locations)
	for _, a := range want.Names() {
		for _, c := range want.Names() {
			assert.Equal(t, want.Distance(a, c), first.Distance(a, c))
			assert.Equal(t, want.Distance(a, c), second.Distance(a, c))
		}
	}
}

func TestCachedMatrixBuilderIgnoresCacheFailures(t *testing.T) {
	b := NewCachedMatrixBuilder(failingDistanceCache{})
	ds := twoCustomerDataset(10)

	m, err := b.Build(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, 222.39, m.Distance("Depot", "B"))
}

func TestCachedMatrixBuilderCancelledContext(t *testing.T) {
	b := NewCachedMatrixBuilder(&memDistanceCache{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx, twoCustomerDataset(10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlannerDistanceMatrix(t *testing.T) {
	p := NewPlanner(nil, nil, &memDistanceCache{}, "")

	m, err := p.DistanceMatrix(context.Background(), twoCustomerDataset(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"Depot", "A", "B"}, m.Names())

	_, err = p.DistanceMatrix(context.Background(), &domain.Dataset{})
	assert.ErrorIs(t, err, domain.ErrInvalidDataset)
}
