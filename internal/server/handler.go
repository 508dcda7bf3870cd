// Package server exposes the catalog search pipeline and product CRUD over
// HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/anshulpatil/catalog-search/internal/analytics"
	"github.com/anshulpatil/catalog-search/internal/catalog"
	"github.com/anshulpatil/catalog-search/internal/catalog/repository"
	"github.com/anshulpatil/catalog-search/internal/search"
	"github.com/anshulpatil/catalog-search/internal/search/cache"
	"github.com/anshulpatil/catalog-search/pkg/logger"
	"github.com/anshulpatil/catalog-search/pkg/metrics"
)

// Handler serves the search and catalog endpoints. Repo, cache, collector,
// and metrics are optional; a nil value disables that concern.
type Handler struct {
	store     *catalog.Store
	svc       *search.Service
	repo      *repository.Repository
	cache     *cache.ResultCache
	collector *analytics.Collector
	metrics   *metrics.Metrics

	defaultLimit int
	maxResults   int
	logger       *slog.Logger
}

// Config carries the Handler dependencies.
type Config struct {
	Store     *catalog.Store
	Service   *search.Service
	Repo      *repository.Repository
	Cache     *cache.ResultCache
	Collector *analytics.Collector
	Metrics   *metrics.Metrics

	DefaultLimit int
	MaxResults   int
}

// New creates a Handler.
func New(cfg Config) *Handler {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 50
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 100
	}
	return &Handler{
		store:        cfg.Store,
		svc:          cfg.Service,
		repo:         cfg.Repo,
		cache:        cfg.Cache,
		collector:    cfg.Collector,
		metrics:      cfg.Metrics,
		defaultLimit: cfg.DefaultLimit,
		maxResults:   cfg.MaxResults,
		logger:       slog.Default().With("component", "http-handler"),
	}
}

// Search handles GET /api/v1/search?q=...&limit=...
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	rawQuery := r.URL.Query().Get("q")

	limit := h.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > h.maxResults {
		limit = h.maxResults
	}

	var result *search.Result
	cacheHit := false
	if h.cache != nil && rawQuery != "" {
		var err error
		result, cacheHit, err = h.cache.GetOrCompute(ctx, rawQuery, limit, func() (*search.Result, error) {
			return h.svc.Search(ctx, rawQuery, limit), nil
		})
		if err != nil {
			log.Error("search failed", "query", rawQuery, "error", err)
			h.writeError(w, http.StatusInternalServerError, "search failed")
			return
		}
	} else {
		result = h.svc.Search(ctx, rawQuery, limit)
	}

	latencyMs := time.Since(start).Milliseconds()
	log.Info("search completed",
		"query", rawQuery,
		"corrected", result.Corrected,
		"total_matched", result.TotalMatched,
		"returned", result.Count,
		"cache_hit", cacheHit,
		"latency_ms", latencyMs,
	)

	h.recordSearchMetrics(result, cacheHit, time.Since(start))
	h.trackSearchEvent(ctx, result, cacheHit, latencyMs)

	h.writeJSON(w, http.StatusOK, result)
}

// Suggest handles GET /api/v1/suggest?q=...
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("q")
	suggestions := h.svc.Suggest(r.Context(), prefix)
	if h.metrics != nil {
		h.metrics.SuggestRequestsTotal.Inc()
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"query":       prefix,
		"suggestions": suggestions,
	})
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	hits, misses := h.cache.Stats()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"hits":     hits,
		"misses":   misses,
		"total":    total,
		"hit_rate": fmt.Sprintf("%.1f%%", hitRate),
	})
}

// CacheInvalidate handles POST /api/v1/cache/invalidate.
func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		h.writeError(w, http.StatusServiceUnavailable, "caching is disabled")
		return
	}
	if err := h.cache.Invalidate(r.Context()); err != nil {
		h.logger.Error("cache invalidation failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "cache invalidation failed")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *Handler) recordSearchMetrics(result *search.Result, cacheHit bool, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}
	resultType := "hit"
	if result.Count == 0 {
		resultType = "zero_result"
	}
	cacheStatus := "miss"
	if cacheHit {
		cacheStatus = "hit"
	}
	h.metrics.SearchQueriesTotal.WithLabelValues(resultType).Inc()
	h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(elapsed.Seconds())
	h.metrics.SearchResultsCount.Observe(float64(result.Count))
	if cacheHit {
		h.metrics.CacheHitsTotal.Inc()
	} else {
		h.metrics.CacheMissesTotal.Inc()
	}
}

func (h *Handler) trackSearchEvent(ctx context.Context, result *search.Result, cacheHit bool, latencyMs int64) {
	if h.collector == nil {
		return
	}
	eventType := analytics.EventSearch
	switch {
	case result.Count == 0:
		eventType = analytics.EventZeroResult
	case cacheHit:
		eventType = analytics.EventCacheHit
	}
	event := analytics.SearchEvent{
		Type:      eventType,
		Query:     result.Query,
		Corrected: result.Corrected,
		SortBy:    string(result.Intent.SortBy),
		Brand:     result.Intent.FilterBy.Brand,
		TotalHits: result.TotalMatched,
		Returned:  result.Count,
		LatencyMs: latencyMs,
		CacheHit:  cacheHit,
		Timestamp: time.Now().UTC(),
		RequestID: logger.RequestID(ctx),
	}
	if pr := result.Intent.FilterBy.PriceRange; pr != nil {
		event.MaxPrice = pr.Max
	}
	h.collector.Track(event)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
