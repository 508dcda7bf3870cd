package analytics

import (
	"testing"
	"time"
)

func searchEvent(query string, hits int, latencyMs int64, cacheHit bool) SearchEvent {
	return SearchEvent{
		Type:      EventSearch,
		Query:     query,
		TotalHits: hits,
		LatencyMs: latencyMs,
		CacheHit:  cacheHit,
		Timestamp: time.Now().UTC(),
	}
}

func TestAggregatorRecordAndStats(t *testing.T) {
	agg := NewAggregator()

	agg.Record(searchEvent("iphone", 5, 10, false))
	agg.Record(searchEvent("iphone", 5, 20, true))
	agg.Record(searchEvent("samsung", 3, 30, false))
	agg.Record(searchEvent("qwerty", 0, 40, false))

	stats := agg.Stats()
	if stats.TotalSearches != 4 {
		t.Errorf("TotalSearches = %d, want 4", stats.TotalSearches)
	}
	if stats.CacheHits != 1 || stats.CacheMisses != 3 {
		t.Errorf("cache hits/misses = %d/%d, want 1/3", stats.CacheHits, stats.CacheMisses)
	}
	if stats.ZeroResultCount != 1 {
		t.Errorf("ZeroResultCount = %d, want 1", stats.ZeroResultCount)
	}
	if stats.AvgLatencyMs != 25 {
		t.Errorf("AvgLatencyMs = %v, want 25", stats.AvgLatencyMs)
	}
	if len(stats.TopQueries) == 0 || stats.TopQueries[0].Query != "iphone" || stats.TopQueries[0].Count != 2 {
		t.Errorf("TopQueries = %+v, want iphone with count 2 first", stats.TopQueries)
	}
	if len(stats.ZeroResultQueries) != 1 || stats.ZeroResultQueries[0].Query != "qwerty" {
		t.Errorf("ZeroResultQueries = %+v, want only qwerty", stats.ZeroResultQueries)
	}
}

func TestAggregatorBrandCounts(t *testing.T) {
	agg := NewAggregator()
	for i := 0; i < 3; i++ {
		e := searchEvent("samsung mobile", 2, 5, false)
		e.Brand = "samsung"
		agg.Record(e)
	}
	e := searchEvent("iphone", 2, 5, false)
	e.Brand = "apple"
	agg.Record(e)

	stats := agg.Stats()
	if len(stats.TopBrands) != 2 {
		t.Fatalf("TopBrands = %+v, want 2 entries", stats.TopBrands)
	}
	if stats.TopBrands[0].Query != "samsung" || stats.TopBrands[0].Count != 3 {
		t.Errorf("TopBrands[0] = %+v, want samsung with 3", stats.TopBrands[0])
	}
}

func TestPercentile(t *testing.T) {
	sorted := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tests := []struct {
		pct  int
		want int64
	}{
		{50, 6},
		{95, 10},
		{99, 10},
	}
	for _, tt := range tests {
		if got := percentile(sorted, tt.pct); got != tt.want {
			t.Errorf("percentile(%d) = %d, want %d", tt.pct, got, tt.want)
		}
	}
	if got := percentile(nil, 50); got != 0 {
		t.Errorf("percentile(nil) = %d, want 0", got)
	}
}

func TestTopNOrdering(t *testing.T) {
	counts := map[string]int64{
		"alpha": 2,
		"beta":  5,
		"gamma": 2,
		"delta": 1,
	}
	got := topN(counts, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Query != "beta" {
		t.Errorf("first = %+v, want beta", got[0])
	}
	// Equal counts break ties alphabetically.
	if got[1].Query != "alpha" || got[2].Query != "gamma" {
		t.Errorf("tie order = %q, %q, want alpha, gamma", got[1].Query, got[2].Query)
	}
}

func TestCollectorTrackBuffers(t *testing.T) {
	c := NewCollector(nil, 100, time.Minute)
	for i := 0; i < 5; i++ {
		c.Track(searchEvent("iphone", 1, 2, false))
	}
	if got := c.BufferLen(); got != 5 {
		t.Errorf("BufferLen = %d, want 5", got)
	}
}
