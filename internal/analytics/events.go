// Package analytics publishes search events to Kafka through a batching
// collector and aggregates consumed events into queryable stats.
package analytics

import "time"

type EventType string

const (
	EventSearch     EventType = "search"
	EventCacheHit   EventType = "cache_hit"
	EventCacheMiss  EventType = "cache_miss"
	EventZeroResult EventType = "zero_result"
	EventSuggest    EventType = "suggest"
)

// SearchEvent records one pipeline run, including the interpreted intent.
type SearchEvent struct {
	Type      EventType `json:"type"`
	Query     string    `json:"query"`
	Corrected string    `json:"corrected"`
	SortBy    string    `json:"sort_by,omitempty"`
	Brand     string    `json:"brand,omitempty"`
	MaxPrice  float64   `json:"max_price,omitempty"`
	TotalHits int       `json:"total_hits"`
	Returned  int       `json:"returned"`
	LatencyMs int64     `json:"latency_ms"`
	CacheHit  bool      `json:"cache_hit"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}
