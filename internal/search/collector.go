// Package search implements candidate retrieval, constraint filtering, and
// the pipeline service that glues query processing, matching, and ranking
// together.
package search

import (
	"strings"

	"github.com/anshulpatil/catalog-search/internal/catalog"
	"github.com/anshulpatil/catalog-search/internal/query"
)

// categoryHintWords trigger the category expansion stage. Whichever word
// matches, the expansion unions the hardcoded "mobile" category; the
// constant is deliberate (see DESIGN.md).
var categoryHintWords = []string{
	"phone", "mobile", "laptop", "headphone", "charger", "cover", "case",
}

const hintedCategory = "mobile"

// Collector produces an unordered candidate set of product IDs for a
// processed query by union-combining several matching strategies.
type Collector struct {
	// FuzzyMinCandidates is the candidate-set size below which the
	// catalog-wide fuzzy scan runs.
	FuzzyMinCandidates int
}

// NewCollector returns a Collector with the given fuzzy-fallback threshold.
func NewCollector(fuzzyMinCandidates int) *Collector {
	if fuzzyMinCandidates <= 0 {
		fuzzyMinCandidates = 10
	}
	return &Collector{FuzzyMinCandidates: fuzzyMinCandidates}
}

// Collect runs all matching stages against one consistent store view and
// returns the union of their results.
func (c *Collector) Collect(tx *catalog.Txn, q *query.Processed) map[int64]struct{} {
	candidates := make(map[int64]struct{})
	if q.Corrected == "" {
		return candidates
	}
	all := tx.All()

	// Full-query substring over title and description.
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Title), q.Corrected) ||
			strings.Contains(strings.ToLower(p.Description), q.Corrected) {
			candidates[p.ID] = struct{}{}
		}
	}

	// Keyword AND: every query keyword must be a substring of the product's
	// search text.
	if len(q.Keywords) > 0 {
		for _, p := range all {
			if containsAll(p.SearchText, q.Keywords) {
				candidates[p.ID] = struct{}{}
			}
		}
	}

	// Keyword-index OR expansion. Strictly broader than the AND stage for
	// any product sharing at least one token; in practice it dominates the
	// candidate set.
	for _, kw := range q.Keywords {
		for id := range tx.ByKeyword(kw) {
			candidates[id] = struct{}{}
		}
	}

	// Brand expansion from the extracted intent.
	if brand := q.Intent.FilterBy.Brand; brand != "" {
		for id := range tx.ByBrand(brand) {
			candidates[id] = struct{}{}
		}
	}

	// Category expansion: any hint word unions the "mobile" category,
	// regardless of which word matched.
	for _, hint := range categoryHintWords {
		if strings.Contains(q.Normalized, hint) {
			for id := range tx.ByCategory(hintedCategory) {
				candidates[id] = struct{}{}
			}
			break
		}
	}

	// Fuzzy fallback: only when the set is still thin, scan the catalog for
	// products with a word within edit distance 2 of a query keyword.
	if len(candidates) < c.FuzzyMinCandidates {
		c.collectFuzzy(all, q.Keywords, candidates)
	}

	// Secondary fallback for an empty set: index-only AND intersection over
	// the residual terms, degrading to their union.
	if len(candidates) == 0 {
		candidates = c.collectFromIndex(tx, q.Intent.SearchTerms)
	}

	return candidates
}

func (c *Collector) collectFuzzy(all []*catalog.Product, keywords []string, candidates map[int64]struct{}) {
	queryWords := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if len(kw) > 3 {
			queryWords = append(queryWords, kw)
		}
	}
	if len(queryWords) == 0 {
		return
	}
	for _, p := range all {
		if _, ok := candidates[p.ID]; ok {
			continue
		}
		if fuzzyMatches(p, queryWords) {
			candidates[p.ID] = struct{}{}
		}
	}
}

func fuzzyMatches(p *catalog.Product, queryWords []string) bool {
	for _, word := range p.SearchKeywords {
		if len(word) <= 3 {
			continue
		}
		for _, qw := range queryWords {
			if query.Within(word, qw, 2) {
				return true
			}
		}
	}
	return false
}

// collectFromIndex intersects the per-keyword ID sets of the residual search
// terms; an empty intersection falls back to their union.
func (c *Collector) collectFromIndex(tx *catalog.Txn, terms []string) map[int64]struct{} {
	intersection := make(map[int64]struct{})
	union := make(map[int64]struct{})
	for i, term := range terms {
		bucket := tx.ByKeyword(term)
		for id := range bucket {
			union[id] = struct{}{}
		}
		if i == 0 {
			for id := range bucket {
				intersection[id] = struct{}{}
			}
			continue
		}
		for id := range intersection {
			if _, ok := bucket[id]; !ok {
				delete(intersection, id)
			}
		}
	}
	if len(intersection) > 0 {
		return intersection
	}
	return union
}

func containsAll(text string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}
