package services

import (
	"math"

	"distribution-planner/internal/domain"
)

// Mean Earth radius used by the great-circle formula.
const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two points in kilometers.
// Coordinates are not range-checked.
func Haversine(a, b domain.Coordinates) float64 {
	lat1, lon1 := radians(a.Lat), radians(a.Lon)
	lat2, lon2 := radians(b.Lat), radians(b.Lon)
	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Build the pairwise distance matrix for all locations (depot included).
//
// Self-distances are exactly zero and never computed; every other entry is
// the haversine distance rounded to two decimals. Rounding happens here, so
// savings and route lengths are computed from the rounded values.
func BuildDistanceMatrix(locs []domain.Location) *domain.DistanceMatrix {
	names := make([]string, len(locs))
	for i, l := range locs {
		names[i] = l.Name
	}

	m := domain.NewDistanceMatrix(names)
	for _, from := range locs {
		fillRow(m, from, locs)
	}
	return m
}

func fillRow(m *domain.DistanceMatrix, from domain.Location, locs []domain.Location) map[string]float64 {
	row := make(map[string]float64, len(locs))
	for _, to := range locs {
		if from.Name == to.Name {
			continue
		}
		km := round2(Haversine(from.Coords(), to.Coords()))
		m.Set(from.Name, to.Name, km)
		row[to.Name] = km
	}
	return row
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
