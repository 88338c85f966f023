package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title: "sample",
		Locations: []Location{
			{Name: "Depot", X: 0, Y: 0},
			{Name: "A", X: 0, Y: 1, Demand: 5},
			{Name: "B", X: 0, Y: 2, Demand: 7},
		},
		Truck: NewTruck(10, 2, 100),
	}
}

func TestDatasetAccessors(t *testing.T) {
	ds := sampleDataset()

	assert.Equal(t, "Depot", ds.Depot().Name)
	assert.Equal(t, []string{"A", "B"}, ds.CustomerNames())
	assert.Equal(t, 5, ds.DemandOf("A"))
	assert.Equal(t, 0, ds.DemandOf("Depot"))
	assert.Equal(t, 0, ds.DemandOf("missing"))
	assert.Equal(t, map[string]int{"A": 5, "B": 7}, ds.Demands())
	assert.Equal(t, 12, ds.TotalDemand())
}

func TestDatasetDepotOnly(t *testing.T) {
	ds := Dataset{Locations: []Location{{Name: "Depot"}}, Truck: NewTruck(1, 0, 0)}

	require.NoError(t, ds.Validate())
	assert.Empty(t, ds.Customers())
	assert.Empty(t, ds.CustomerNames())
}

func TestDatasetValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Dataset)
	}{
		{name: "no locations", mutate: func(d *Dataset) { d.Locations = nil }},
		{name: "zero capacity", mutate: func(d *Dataset) { d.Truck.Capacity = 0 }},
		{name: "empty name", mutate: func(d *Dataset) { d.Locations[1].Name = "  " }},
		{name: "duplicate name", mutate: func(d *Dataset) { d.Locations[2].Name = "A" }},
		{name: "nan coordinate", mutate: func(d *Dataset) { d.Locations[1].X = math.NaN() }},
		{name: "inf coordinate", mutate: func(d *Dataset) { d.Locations[2].Y = math.Inf(1) }},
		{name: "negative demand", mutate: func(d *Dataset) { d.Locations[1].Demand = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ds := sampleDataset()
			tc.mutate(&ds)
			assert.ErrorIs(t, ds.Validate(), ErrInvalidDataset)
		})
	}
}

func TestDatasetFingerprint(t *testing.T) {
	a := sampleDataset()
	b := sampleDataset()
	b.Title = "renamed"
	b.Description = "same content"

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 16)

	b.Locations[1].Demand = 6
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	c := sampleDataset()
	c.Truck.Capacity = 11
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestDatasetGeometryKey(t *testing.T) {
	a := sampleDataset()
	b := sampleDataset()
	b.Locations[1].Demand = 1
	b.Truck = NewTruck(99, 1, 1)

	assert.Equal(t, a.GeometryKey(), b.GeometryKey())
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	b.Locations[2].X = 0.5
	assert.NotEqual(t, a.GeometryKey(), b.GeometryKey())
}

func TestDistanceMatrix(t *testing.T) {
	m := NewDistanceMatrix([]string{"Depot", "A"})
	m.Set("Depot", "A", 1.5)
	m.Set("A", "Depot", 1.5)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 1.5, m.Distance("A", "Depot"))
	assert.Equal(t, 0.0, m.Distance("A", "A"))
	assert.Equal(t, []float64{0, 1.5}, m.Row("Depot"))

	_, ok := m.Lookup("A", "Z")
	assert.False(t, ok)
	assert.Panics(t, func() { m.Distance("Z", "A") })
}
