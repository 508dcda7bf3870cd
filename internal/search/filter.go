package search

import (
	"strings"

	"github.com/anshulpatil/catalog-search/internal/catalog"
	"github.com/anshulpatil/catalog-search/internal/query"
)

// Filter narrows the candidate set using the intent's structured
// constraints, all AND-combined. Only constraints actually present apply.
// It resolves IDs against the same store view the collector used and
// returns the surviving products ordered by ID.
func Filter(tx *catalog.Txn, candidates map[int64]struct{}, filters query.Filters) []*catalog.Product {
	result := make([]*catalog.Product, 0, len(candidates))
	for _, p := range tx.All() {
		if _, ok := candidates[p.ID]; !ok {
			continue
		}
		if matchesFilters(p, filters) {
			result = append(result, p)
		}
	}
	return result
}

func matchesFilters(p *catalog.Product, filters query.Filters) bool {
	if pr := filters.PriceRange; pr != nil {
		if pr.Max > 0 && p.Price > pr.Max {
			return false
		}
		if p.Price < pr.Min {
			return false
		}
	}
	if filters.Color != "" {
		color := strings.ToLower(p.Metadata["color"])
		if !strings.Contains(color, filters.Color) {
			return false
		}
	}
	if filters.Model != "" {
		model := strings.ToLower(p.Metadata["model"])
		if model == "" {
			model = strings.ToLower(p.Title)
		}
		if !strings.Contains(model, strings.ToLower(filters.Model)) {
			return false
		}
	}
	if filters.Brand != "" {
		if !strings.EqualFold(p.Brand, filters.Brand) {
			return false
		}
	}
	return true
}
