package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/anshulpatil/catalog-search/internal/catalog"
	"github.com/anshulpatil/catalog-search/internal/query"
	"github.com/anshulpatil/catalog-search/internal/rank"
	"github.com/anshulpatil/catalog-search/pkg/logger"
)

// suggestSearchLimit is the broadened internal result count a suggestion
// request runs the pipeline with before extracting title fragments.
const suggestSearchLimit = 20

// Result is the outcome of one pipeline run. Results hold references into
// the catalog, not copies.
type Result struct {
	Query        string        `json:"query"`
	Corrected    string        `json:"corrected_query"`
	Intent       query.Intent  `json:"intent"`
	TotalMatched int           `json:"total_matched"`
	Count        int           `json:"count"`
	Results      []rank.Scored `json:"results"`
}

// Service runs the full query-understanding → retrieval → filter → ranking
// pipeline against a catalog store.
type Service struct {
	store        *catalog.Store
	collector    *Collector
	defaultLimit int
	maxResults   int
	suggestLimit int
	logger       *slog.Logger
}

// NewService wires the pipeline. defaultLimit applies when the caller passes
// a non-positive limit; maxResults is the hard result ceiling.
func NewService(store *catalog.Store, collector *Collector, defaultLimit, maxResults, suggestLimit int) *Service {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	if maxResults <= 0 {
		maxResults = 100
	}
	if suggestLimit <= 0 {
		suggestLimit = 10
	}
	return &Service{
		store:        store,
		collector:    collector,
		defaultLimit: defaultLimit,
		maxResults:   maxResults,
		suggestLimit: suggestLimit,
		logger:       slog.Default().With("component", "search-service"),
	}
}

// Search runs the pipeline end to end. An empty query is not an error; it
// returns an empty result. No input makes Search fail.
func (s *Service) Search(ctx context.Context, raw string, limit int) *Result {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxResults {
		limit = s.maxResults
	}

	q := query.Process(raw)
	result := &Result{
		Query:     raw,
		Corrected: q.Corrected,
		Intent:    q.Intent,
		Results:   []rank.Scored{},
	}
	if q.Corrected == "" {
		return result
	}

	// One store view for the whole collect/filter/rank pass, so the
	// pipeline never observes a half-applied catalog mutation.
	s.store.View(func(tx *catalog.Txn) {
		candidates := s.collector.Collect(tx, q)
		filtered := Filter(tx, candidates, q.Intent.FilterBy)
		result.TotalMatched = len(filtered)
		result.Results = rank.Rank(filtered, q, limit)
	})
	result.Count = len(result.Results)

	log.Debug("search pipeline completed",
		"query", raw,
		"corrected", q.Corrected,
		"sort_by", q.Intent.SortBy,
		"matched", result.TotalMatched,
		"returned", result.Count,
	)
	return result
}

// Suggest returns autocomplete candidates for a query prefix: leading
// n-gram fragments of matching product titles that start with the prefix,
// plus brand names sharing it. Prefixes shorter than two characters yield
// an empty list.
func (s *Service) Suggest(ctx context.Context, prefix string) []string {
	normalized := query.Normalize(prefix)
	if len([]rune(normalized)) < 2 {
		return []string{}
	}

	result := s.Search(ctx, prefix, suggestSearchLimit)

	suggestions := make([]string, 0, s.suggestLimit)
	seen := make(map[string]struct{})
	add := func(candidate string) bool {
		if candidate == "" {
			return false
		}
		if _, dup := seen[candidate]; dup {
			return false
		}
		seen[candidate] = struct{}{}
		suggestions = append(suggestions, candidate)
		return len(suggestions) >= s.suggestLimit
	}

	for _, scored := range result.Results {
		for _, fragment := range titleFragments(scored.Product.Title, normalized) {
			if add(fragment) {
				return suggestions
			}
		}
	}
	for _, brand := range query.Brands() {
		if strings.HasPrefix(brand, normalized) {
			if add(brand) {
				return suggestions
			}
		}
	}
	return suggestions
}

// titleFragments returns the leading word n-grams (up to four words) of the
// title that start with the prefix.
func titleFragments(title, prefix string) []string {
	words := strings.Fields(strings.ToLower(title))
	fragments := make([]string, 0, 4)
	for n := 1; n <= 4 && n <= len(words); n++ {
		fragment := strings.Join(words[:n], " ")
		if strings.HasPrefix(fragment, prefix) {
			fragments = append(fragments, fragment)
		}
	}
	return fragments
}
