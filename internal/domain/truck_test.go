package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruckCosts(t *testing.T) {
	truck := NewTruck(10, 2, 100)

	if got := truck.VariableCost(12.5); got != 25 {
		t.Fatalf("variable cost = %v, want 25", got)
	}
	if got := truck.TripCost(12.5); got != 125 {
		t.Fatalf("trip cost = %v, want 125", got)
	}
	if got := truck.Utilization(4); got != 0.4 {
		t.Fatalf("utilization = %v, want 0.4", got)
	}
}

func TestTruckFits(t *testing.T) {
	truck := NewTruck(10, 0, 0)

	assert.True(t, truck.Fits(10))
	assert.True(t, truck.Fits(0))
	assert.False(t, truck.Fits(11))
}

func TestTruckValidate(t *testing.T) {
	cases := []struct {
		name    string
		truck   Truck
		wantErr bool
	}{
		{name: "ok", truck: NewTruck(10, 1.5, 20)},
		{name: "zero costs ok", truck: NewTruck(1, 0, 0)},
		{name: "zero capacity", truck: NewTruck(0, 1, 1), wantErr: true},
		{name: "negative capacity", truck: NewTruck(-5, 1, 1), wantErr: true},
		{name: "negative rate", truck: NewTruck(10, -1, 1), wantErr: true},
		{name: "negative fixed", truck: NewTruck(10, 1, -1), wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.truck.Validate()
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDataset), "error should wrap ErrInvalidDataset: %v", err)
		})
	}
}
