package services

import (
	"cmp"
	"slices"

	"distribution-planner/internal/domain"
)

// Compute the Clarke–Wright saving for every unordered customer pair.
//
// For i < j in input order, s(i,j) = d(depot,i) + d(depot,j) - d(i,j).
// The result is sorted by descending saving; the sort is stable, so equal
// savings keep their enumeration order. From is always the earlier customer.
func CalculateSavings(m *domain.DistanceMatrix, depot string, customers []string) []domain.Saving {
	n := len(customers)
	if n < 2 {
		return []domain.Saving{}
	}

	savings := make([]domain.Saving, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		c1 := customers[i]
		for j := i + 1; j < n; j++ {
			c2 := customers[j]
			savings = append(savings, domain.Saving{
				Value: m.Distance(depot, c1) + m.Distance(depot, c2) - m.Distance(c1, c2),
				From:  c1,
				To:    c2,
			})
		}
	}

	slices.SortStableFunc(savings, func(a, b domain.Saving) int {
		return cmp.Compare(b.Value, a.Value)
	})

	return savings
}
