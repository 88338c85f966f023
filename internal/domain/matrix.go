package domain

import "fmt"

// DistanceMatrix holds kilometer distances between every pair of locations,
// depot included. It is symmetric with a zero diagonal and is not modified
// after it has been built.
type DistanceMatrix struct {
	names []string
	index map[string]int
	km    [][]float64
}

// NewDistanceMatrix allocates an all-zero matrix for the given names.
func NewDistanceMatrix(names []string) *DistanceMatrix {
	m := &DistanceMatrix{
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
		km:    make([][]float64, len(names)),
	}
	for i, n := range names {
		m.index[n] = i
		m.km[i] = make([]float64, len(names))
	}
	return m
}

// Set stores the distance for the ordered pair (from, to).
func (m *DistanceMatrix) Set(from, to string, km float64) {
	m.km[m.mustIndex(from)][m.mustIndex(to)] = km
}

// Distance returns the distance between two locations.
// It panics when either name is not part of the matrix.
func (m *DistanceMatrix) Distance(from, to string) float64 {
	return m.km[m.mustIndex(from)][m.mustIndex(to)]
}

// Lookup is Distance without the panic.
func (m *DistanceMatrix) Lookup(from, to string) (float64, bool) {
	i, ok := m.index[from]
	if !ok {
		return 0, false
	}
	j, ok := m.index[to]
	if !ok {
		return 0, false
	}
	return m.km[i][j], true
}

// Row returns a copy of the distances from one location, in Names order.
func (m *DistanceMatrix) Row(from string) []float64 {
	return append([]float64(nil), m.km[m.mustIndex(from)]...)
}

// Names returns location names in input order.
func (m *DistanceMatrix) Names() []string {
	return append([]string(nil), m.names...)
}

func (m *DistanceMatrix) Len() int { return len(m.names) }

func (m *DistanceMatrix) mustIndex(name string) int {
	i, ok := m.index[name]
	if !ok {
		panic(fmt.Sprintf("distance matrix: unknown location %q", name))
	}
	return i
}
