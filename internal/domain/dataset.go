package domain

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Dataset is one distribution problem: a depot, its customers and the fleet
// parameters. Locations[0] is the depot; every other location is a customer.
type Dataset struct {
	Title       string
	Description string
	Locations   []Location
	Truck       Truck
}

// Depot returns the first location.
func (d *Dataset) Depot() Location {
	return d.Locations[0]
}

// Customers returns every location after the depot, in input order.
func (d *Dataset) Customers() []Location {
	if len(d.Locations) == 0 {
		return nil
	}
	return d.Locations[1:]
}

// CustomerNames returns customer names in input order.
func (d *Dataset) CustomerNames() []string {
	customers := d.Customers()
	names := make([]string, 0, len(customers))
	for _, c := range customers {
		names = append(names, c.Name)
	}
	return names
}

// DemandOf returns the demand of the named customer, or 0 when the name is the
// depot or unknown.
func (d *Dataset) DemandOf(name string) int {
	for _, c := range d.Customers() {
		if c.Name == name {
			return c.Demand
		}
	}
	return 0
}

// Demands returns a customer name -> demand lookup.
func (d *Dataset) Demands() map[string]int {
	customers := d.Customers()
	out := make(map[string]int, len(customers))
	for _, c := range customers {
		out[c.Name] = c.Demand
	}
	return out
}

// TotalDemand sums the demand of all customers.
func (d *Dataset) TotalDemand() int {
	total := 0
	for _, c := range d.Customers() {
		total += c.Demand
	}
	return total
}

// Validate checks the fields the solver depends on.
// Coordinate ranges are not checked; out-of-range values still produce numbers.
func (d *Dataset) Validate() error {
	if len(d.Locations) == 0 {
		return fmt.Errorf("%w: at least the depot location is required", ErrInvalidDataset)
	}

	if err := d.Truck.Validate(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(d.Locations))
	for i, loc := range d.Locations {
		name := strings.TrimSpace(loc.Name)
		if name == "" {
			return fmt.Errorf("%w: location at index %d has an empty name", ErrInvalidDataset, i)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: duplicate location name %q", ErrInvalidDataset, name)
		}
		seen[name] = struct{}{}

		if !isFinite(loc.X) || !isFinite(loc.Y) {
			return fmt.Errorf("%w: location %q has non-finite coordinates", ErrInvalidDataset, name)
		}
		if loc.Demand < 0 {
			return fmt.Errorf("%w: location %q has negative demand %d", ErrInvalidDataset, name, loc.Demand)
		}
	}

	return nil
}

// Fingerprint identifies the solver-relevant content of the dataset.
// Title and description do not take part, so renamed copies share cache entries.
func (d *Dataset) Fingerprint() string {
	h := xxhash.New()
	d.writeLocations(h, true)
	_, _ = h.WriteString(strconv.Itoa(d.Truck.Capacity))
	writeFloat(h, d.Truck.CostPerKm)
	writeFloat(h, d.Truck.FixedCost)
	return fmt.Sprintf("%016x", h.Sum64())
}

// GeometryKey identifies only the location names and coordinates. Distances
// depend on nothing else, so it is the distance cache key.
func (d *Dataset) GeometryKey() string {
	h := xxhash.New()
	d.writeLocations(h, false)
	return fmt.Sprintf("%016x", h.Sum64())
}

func (d *Dataset) writeLocations(h *xxhash.Digest, withDemand bool) {
	for _, loc := range d.Locations {
		_, _ = h.WriteString(loc.Name)
		_, _ = h.Write([]byte{0})
		writeFloat(h, loc.X)
		writeFloat(h, loc.Y)
		if withDemand {
			_, _ = h.WriteString(strconv.Itoa(loc.Demand))
			_, _ = h.Write([]byte{0})
		}
	}
}

func writeFloat(h *xxhash.Digest, f float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	_, _ = h.Write(buf[:])
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
