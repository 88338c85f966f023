package services

import (
	"fmt"
	"slices"
	"strings"

	"distribution-planner/internal/domain"
)

// MergeMode selects which endpoint pairings may join two routes.
type MergeMode string

const (
	// MergeRestricted joins two routes only at route1's last customer and
	// route2's first customer. After a merge the joined pair becomes the
	// route's mergeable endpoints. This is the established behavior and the
	// default.
	MergeRestricted MergeMode = "restricted"
	// MergeCanonical accepts any head/tail pairing and reverses a route when
	// needed (textbook Clarke–Wright). Endpoints are the real first and last
	// customers of the merged route.
	MergeCanonical MergeMode = "canonical"
)

// ParseMergeMode maps a config or request value to a MergeMode.
// An empty string selects MergeRestricted.
func ParseMergeMode(s string) (MergeMode, error) {
	switch MergeMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MergeRestricted:
		return MergeRestricted, nil
	case MergeCanonical:
		return MergeCanonical, nil
	default:
		return "", fmt.Errorf("parse merge mode: unknown mode %q (want %q or %q)", s, MergeRestricted, MergeCanonical)
	}
}

func (m MergeMode) String() string { return string(m) }

type routeSlot struct {
	domain.Route
	absorbed bool
}

// RouteMerger owns the routes while savings are applied.
//
// Routes live in an arena and are addressed by their slot index, which never
// changes. endpointOf maps each mergeable customer to the slot of the route it
// currently belongs to; a customer has at most one entry. Absorbed routes are
// tombstoned rather than removed, so the surviving routes keep their creation
// order.
type RouteMerger struct {
	depot      string
	truck      domain.Truck
	mode       MergeMode
	slots      []*routeSlot
	endpointOf map[string]int
}

// Start one depot–customer–depot route per customer, in input order.
func NewRouteMerger(depot string, customers []string, demand map[string]int, capacity int, mode MergeMode) *RouteMerger {
	if mode == "" {
		mode = MergeRestricted
	}

	rm := &RouteMerger{
		depot:      depot,
		truck:      domain.Truck{Capacity: capacity},
		mode:       mode,
		slots:      make([]*routeSlot, 0, len(customers)),
		endpointOf: make(map[string]int, len(customers)),
	}

	for i, c := range customers {
		rm.slots = append(rm.slots, &routeSlot{Route: domain.Route{
			Stops:     []string{depot, c, depot},
			Demand:    demand[c],
			Endpoints: [2]string{c, c},
		}})
		rm.endpointOf[c] = i
	}

	return rm
}

// Apply tries to merge the routes of the saving's two customers.
// It reports whether a merge happened; rejected savings change nothing.
func (rm *RouteMerger) Apply(s domain.Saving) bool {
	h1, ok1 := rm.endpointOf[s.From]
	h2, ok2 := rm.endpointOf[s.To]
	if !ok1 || !ok2 || h1 == h2 {
		return false
	}

	r1, r2 := rm.slots[h1], rm.slots[h2]
	if !rm.truck.Fits(r1.Demand + r2.Demand) {
		return false
	}

	var (
		stops     []string
		endpoints [2]string
		ok        bool
	)
	if rm.mode == MergeCanonical {
		stops, ok = joinCanonical(r1.Route, r2.Route, s.From, s.To)
		if ok {
			endpoints = [2]string{stops[1], stops[len(stops)-2]}
		}
	} else {
		stops, ok = joinRestricted(r1.Route, r2.Route, s.From, s.To)
		endpoints = [2]string{s.From, s.To}
	}
	if !ok {
		return false
	}

	for _, h := range []int{h1, h2} {
		for _, e := range rm.slots[h].Endpoints {
			delete(rm.endpointOf, e)
		}
	}

	r1.Stops = stops
	r1.Demand += r2.Demand
	r1.Endpoints = endpoints
	r2.absorbed = true
	r2.Stops = nil

	for _, e := range endpoints {
		rm.endpointOf[e] = h1
	}

	return true
}

// Routes returns the surviving routes in creation order.
func (rm *RouteMerger) Routes() []domain.Route {
	out := make([]domain.Route, 0, len(rm.slots))
	for _, slot := range rm.slots {
		if slot.absorbed {
			continue
		}
		r := slot.Route
		r.Stops = slices.Clone(slot.Stops)
		out = append(out, r)
	}
	return out
}

// Merge routes greedily in savings order, subject to truck capacity.
//
// Every customer starts on its own route. Each saving is applied at most once;
// savings whose customers are no longer route endpoints, already share a
// route, exceed capacity together, or do not meet in a permitted orientation
// are skipped. A customer whose demand alone exceeds capacity keeps its own
// route.
func MergeRoutes(
	depot string,
	customers []string,
	demand map[string]int,
	capacity int,
	savings []domain.Saving,
	mode MergeMode,
) []domain.Route {
	rm := NewRouteMerger(depot, customers, demand, capacity, mode)
	for _, s := range savings {
		rm.Apply(s)
	}
	return rm.Routes()
}

// joinRestricted connects r1's last customer to r2's first customer.
// The second orientation check mirrors the first with the saving's customers
// swapped; it cannot match while every customer sits on exactly one route.
func joinRestricted(r1, r2 domain.Route, c1, c2 string) ([]string, bool) {
	tail1 := r1.Last()
	head2 := r2.First()

	if (tail1 == c1 && head2 == c2) || (tail1 == c2 && head2 == c1) {
		return concatRoutes(r1.Stops, r2.Stops), true
	}
	return nil, false
}

// joinCanonical accepts all four head/tail pairings of c1 (on r1) and c2 (on r2).
func joinCanonical(r1, r2 domain.Route, c1, c2 string) ([]string, bool) {
	head1, tail1 := r1.First(), r1.Last()
	head2, tail2 := r2.First(), r2.Last()

	switch {
	case tail1 == c1 && head2 == c2:
		return concatRoutes(r1.Stops, r2.Stops), true
	case tail2 == c2 && head1 == c1:
		return concatRoutes(r2.Stops, r1.Stops), true
	case tail1 == c1 && tail2 == c2:
		return concatRoutes(r1.Stops, reversed(r2.Stops)), true
	case head1 == c1 && head2 == c2:
		return concatRoutes(reversed(r1.Stops), r2.Stops), true
	}
	return nil, false
}

// concatRoutes drops the depot between a and b: a[:-1] + b[1:].
func concatRoutes(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b)-2)
	out = append(out, a[:len(a)-1]...)
	return append(out, b[1:]...)
}

func reversed(stops []string) []string {
	out := slices.Clone(stops)
	slices.Reverse(out)
	return out
}
