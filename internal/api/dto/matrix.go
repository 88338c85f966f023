package dto

import "distribution-planner/internal/domain"

type MatrixResponse struct {
	Locations   []string    `json:"locations"`
	DistancesKm [][]float64 `json:"distances_km"`
}

func FromMatrix(m *domain.DistanceMatrix) MatrixResponse {
	names := m.Names()
	rows := make([][]float64, 0, len(names))
	for _, n := range names {
		rows = append(rows, m.Row(n))
	}
	return MatrixResponse{Locations: names, DistancesKm: rows}
}
