package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distribution-planner/internal/domain"
	"distribution-planner/internal/platform/db"
	"distribution-planner/internal/ports"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, InitSchema(conn))
	return conn
}

func floatp(v float64) *float64 { return &v }

func sampleSolution(id string, created time.Time) *domain.Solution {
	return &domain.Solution{
		ID:         id,
		DatasetKey: "abc123",
		MergeMode:  "restricted",
		CreatedAt:  created,
		Routes: []domain.RouteCost{
			{RouteID: 1, Customers: []string{"A", "B"}, Demand: 10, Capacity: 10, Utilization: 1, DistanceKm: 444.77, VariableCost: 889.54, FixedCost: 100, TotalCost: 989.54},
			{RouteID: 2, Customers: []string{"C"}, Demand: 3, Capacity: 10, Utilization: 0.3, DistanceKm: 12.5, VariableCost: 25, FixedCost: 100, TotalCost: 125},
		},
		Summary: domain.Summary{
			TotalRoutes: 2, TotalDemand: 13, TotalDistanceKm: 457.27,
			TotalVariableCost: 914.54, TotalFixedCost: 200, TotalCost: 1114.54,
			AverageUtilization: floatp(0.65), CostPerUnit: nil,
			TruckCapacity: 10, CostPerKm: 2, FixedCostPerTruck: 100,
		},
	}
}

func TestSqliteSolutionRepositoryRoundTrip(t *testing.T) {
	repo := NewSqliteSolutionRepository(setupTestDB(t))
	ctx := context.Background()

	created := time.Date(2026, 4, 5, 6, 7, 8, 123456789, time.UTC)
	sol := sampleSolution("sol-1", created)
	require.NoError(t, repo.Save(ctx, "demo", sol))

	got, err := repo.Get(ctx, "sol-1")
	require.NoError(t, err)
	assert.Equal(t, sol, got)
}

func TestSqliteSolutionRepositoryNotFound(t *testing.T) {
	repo := NewSqliteSolutionRepository(setupTestDB(t))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSqliteSolutionRepositoryDuplicateID(t *testing.T) {
	repo := NewSqliteSolutionRepository(setupTestDB(t))
	ctx := context.Background()

	sol := sampleSolution("dup", time.Now().UTC())
	require.NoError(t, repo.Save(ctx, "", sol))
	assert.Error(t, repo.Save(ctx, "", sol))
}

func TestSqliteSolutionRepositoryList(t *testing.T) {
	repo := NewSqliteSolutionRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, "first", sampleSolution("a", base)))
	require.NoError(t, repo.Save(ctx, "third", sampleSolution("c", base.Add(2*time.Second))))
	require.NoError(t, repo.Save(ctx, "second", sampleSolution("b", base.Add(1500*time.Millisecond))))

	list, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, []string{"c", "b", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, 2, list[0].TotalRoutes)
	assert.InDelta(t, 1114.54, list[0].TotalCost, 1e-9)
	assert.Equal(t, base.Add(2*time.Second), list[0].CreatedAt)

	limited, err := repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSqliteSolutionRepositoryNilDB(t *testing.T) {
	repo := NewSqliteSolutionRepository(nil)

	assert.Error(t, repo.Save(context.Background(), "", sampleSolution("x", time.Now())))
	_, err := repo.Get(context.Background(), "x")
	assert.Error(t, err)
}

func TestInitSchemaIdempotent(t *testing.T) {
	conn := setupTestDB(t)
	assert.NoError(t, InitSchema(conn))
	assert.Error(t, InitSchema(nil))
}

const datasetJSON = `{
	"title": "Bansos",
	"description": "sample",
	"locations": [
		{"name": "Gudang", "x": 110.3695, "y": -7.7956},
		{"name": "Mlati", "x": 110.3220, "y": -7.7327, "demand": 45},
		{"name": "Depok", "x": 110.4180, "y": -7.7612, "demand": 38}
	],
	"truck_capacity": 120,
	"cost_per_km": 5000,
	"fixed_cost_per_truck": 250000
}`

const datasetYAML = `
title: Bansos
description: sample
truck_capacity: 120
cost_per_km: 5000
fixed_cost_per_truck: 250000
locations:
  - {name: Gudang, x: 110.3695, y: -7.7956}
  - {name: Mlati, x: 110.3220, y: -7.7327, demand: 45}
  - {name: Depok, x: 110.4180, y: -7.7612, demand: 38}
`

func TestDecodeDatasetFormats(t *testing.T) {
	fromJSON, err := DecodeDataset(strings.NewReader(datasetJSON), FormatJSON)
	require.NoError(t, err)

	fromYAML, err := DecodeDataset(strings.NewReader(datasetYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, "Gudang", fromJSON.Depot().Name)
	assert.Equal(t, []string{"Mlati", "Depok"}, fromJSON.CustomerNames())
	assert.Equal(t, 120, fromJSON.Truck.Capacity)
}

func TestDecodeDatasetErrors(t *testing.T) {
	_, err := DecodeDataset(strings.NewReader(`{"locations": [`), FormatJSON)
	assert.ErrorIs(t, err, domain.ErrInvalidDataset)

	_, err = DecodeDataset(strings.NewReader(`{"locations": [{"name": "D", "x": 0, "y": 0}]}`), FormatJSON)
	assert.ErrorIs(t, err, domain.ErrInvalidDataset)

	_, err = DecodeDataset(strings.NewReader(`{}`), "toml")
	assert.Error(t, err)
}

func TestLoadDatasetFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.yml")
	require.NoError(t, os.WriteFile(path, []byte(datasetYAML), 0o644))

	ds, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Equal(t, "Bansos", ds.Title)

	_, err = LoadDataset(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadDataset(filepath.Join(dir, "data.csv"))
	assert.Error(t, err)
}

func TestSaveDatasetRoundTrip(t *testing.T) {
	ds, err := DecodeDataset(strings.NewReader(datasetJSON), FormatJSON)
	require.NoError(t, err)

	for _, name := range []string{"out.json", "out.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, SaveDataset(path, ds))

		back, err := LoadDataset(path)
		require.NoError(t, err, name)
		assert.Equal(t, ds, back, name)
	}
}
