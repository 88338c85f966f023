package domain

import "fmt"

// Delivery truck parameters shared by the whole (homogeneous) fleet.
type Truck struct {
	Capacity  int
	CostPerKm float64
	FixedCost float64
}

func NewTruck(capacity int, costPerKm, fixedCost float64) Truck {
	return Truck{
		Capacity:  capacity,
		CostPerKm: costPerKm,
		FixedCost: fixedCost,
	}
}

// Fits reports whether a load of the given demand fits on one truck.
func (t Truck) Fits(demand int) bool {
	return demand <= t.Capacity
}

// TripCost returns the fixed plus variable cost of driving distanceKm.
func (t Truck) TripCost(distanceKm float64) float64 {
	return t.FixedCost + t.VariableCost(distanceKm)
}

func (t Truck) VariableCost(distanceKm float64) float64 {
	return distanceKm * t.CostPerKm
}

// Utilization returns demand as a fraction of capacity.
func (t Truck) Utilization(demand int) float64 {
	return float64(demand) / float64(t.Capacity)
}

func (t Truck) Validate() error {
	if t.Capacity <= 0 {
		return fmt.Errorf("%w: truck capacity must be positive (capacity=%d)", ErrInvalidDataset, t.Capacity)
	}
	if t.CostPerKm < 0 {
		return fmt.Errorf("%w: cost per km must not be negative (cost_per_km=%v)", ErrInvalidDataset, t.CostPerKm)
	}
	if t.FixedCost < 0 {
		return fmt.Errorf("%w: fixed cost must not be negative (fixed_cost=%v)", ErrInvalidDataset, t.FixedCost)
	}
	return nil
}
