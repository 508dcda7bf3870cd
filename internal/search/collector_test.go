package search

import (
	"testing"

	"github.com/anshulpatil/catalog-search/internal/catalog"
	"github.com/anshulpatil/catalog-search/internal/query"
)

func seedStore(t *testing.T) *catalog.Store {
	t.Helper()
	s := catalog.NewStore()
	products := []*catalog.Product{
		{
			Title:       "Apple iPhone 16",
			Description: "Latest flagship smartphone",
			Brand:       "Apple",
			Category:    "mobile",
			Price:       80000,
			Rating:      4.8,
			Stock:       10,
			Metadata:    map[string]string{"color": "black", "model": "iphone 16"},
		},
		{
			Title:       "Apple iPhone 13",
			Description: "Reliable everyday smartphone",
			Brand:       "Apple",
			Category:    "mobile",
			Price:       45000,
			Rating:      4.5,
			Stock:       25,
			Metadata:    map[string]string{"color": "blue", "model": "iphone 13"},
		},
		{
			Title:       "Samsung Galaxy S24",
			Description: "Android flagship with great camera",
			Brand:       "Samsung",
			Category:    "mobile",
			Price:       70000,
			Rating:      4.6,
			Stock:       15,
			Metadata:    map[string]string{"color": "gray", "model": "galaxy s24"},
		},
		{
			Title:       "Sony WH-1000XM5",
			Description: "Noise cancelling wireless headphones",
			Brand:       "Sony",
			Category:    "headphone",
			Price:       28000,
			Rating:      4.7,
			Stock:       8,
			Metadata:    map[string]string{"color": "black"},
		},
		{
			Title:       "Dell Inspiron 15",
			Description: "Everyday laptop with 8GB RAM",
			Brand:       "Dell",
			Category:    "laptop",
			Price:       55000,
			Rating:      4.2,
			Stock:       5,
			Metadata:    map[string]string{"ram": "8gb"},
		},
	}
	for _, p := range products {
		s.Create(p)
	}
	return s
}

func collect(t *testing.T, s *catalog.Store, raw string) map[int64]struct{} {
	t.Helper()
	c := NewCollector(2)
	var got map[int64]struct{}
	s.View(func(tx *catalog.Txn) {
		got = c.Collect(tx, query.Process(raw))
	})
	return got
}

func TestCollectEmptyQuery(t *testing.T) {
	s := seedStore(t)
	if got := collect(t, s, ""); len(got) != 0 {
		t.Errorf("candidates = %v, want none", got)
	}
}

func TestCollectKeywordMatch(t *testing.T) {
	s := seedStore(t)
	got := collect(t, s, "iphone")
	if _, ok := got[1]; !ok {
		t.Error("iphone 16 missing")
	}
	if _, ok := got[2]; !ok {
		t.Error("iphone 13 missing")
	}
}

func TestCollectCategoryHint(t *testing.T) {
	s := seedStore(t)
	// "phone" triggers the category expansion, which unions the mobile
	// category, so the Samsung lands in the set too.
	got := collect(t, s, "phone")
	for _, id := range []int64{1, 2, 3} {
		if _, ok := got[id]; !ok {
			t.Errorf("mobile product %d missing from category expansion", id)
		}
	}
}

func TestCollectBrandExpansion(t *testing.T) {
	s := seedStore(t)
	got := collect(t, s, "samsung")
	if _, ok := got[3]; !ok {
		t.Error("samsung product missing from brand expansion")
	}
}

func TestCollectFuzzyFallback(t *testing.T) {
	s := seedStore(t)
	c := NewCollector(10)
	// A token neither dictionary nor vocabulary corrects, two edits from
	// "inspiron"; only the fuzzy stage can reach it.
	q := &query.Processed{
		Normalized: "inspirn",
		Corrected:  "inspirn",
		Keywords:   []string{"inspirn"},
	}
	var got map[int64]struct{}
	s.View(func(tx *catalog.Txn) {
		got = c.Collect(tx, q)
	})
	if _, ok := got[5]; !ok {
		t.Error("fuzzy fallback did not find the Dell Inspiron")
	}
}

func TestCollectFuzzyOnlyBelowThreshold(t *testing.T) {
	s := seedStore(t)
	// "galaxi" is one edit from "galaxy": reachable only by the fuzzy scan.
	// "sony" hits the keyword index and puts one candidate in the set.
	q := &query.Processed{
		Normalized: "sony galaxi",
		Corrected:  "sony galaxi",
		Keywords:   []string{"sony", "galaxi"},
	}

	var got map[int64]struct{}
	s.View(func(tx *catalog.Txn) {
		got = NewCollector(1).Collect(tx, q)
	})
	if _, ok := got[3]; ok {
		t.Error("fuzzy scan ran although the set already met the threshold")
	}

	s.View(func(tx *catalog.Txn) {
		got = NewCollector(10).Collect(tx, q)
	})
	if _, ok := got[3]; !ok {
		t.Error("fuzzy scan did not run below the threshold")
	}
}

func TestCollectFromIndexIntersection(t *testing.T) {
	s := seedStore(t)
	c := NewCollector(10)
	var got map[int64]struct{}
	s.View(func(tx *catalog.Txn) {
		got = c.collectFromIndex(tx, []string{"apple", "flagship"})
	})
	// Intersection: only the iPhone 16 carries both tokens.
	if len(got) != 1 {
		t.Fatalf("candidates = %v, want exactly the iPhone 16", got)
	}
	if _, ok := got[1]; !ok {
		t.Error("iPhone 16 missing from intersection")
	}
}

func TestCollectFromIndexUnionFallback(t *testing.T) {
	s := seedStore(t)
	c := NewCollector(10)
	var got map[int64]struct{}
	s.View(func(tx *catalog.Txn) {
		got = c.collectFromIndex(tx, []string{"sony", "dell"})
	})
	// No product carries both tokens; the empty intersection degrades to
	// the union.
	if len(got) != 2 {
		t.Fatalf("candidates = %v, want the Sony and the Dell", got)
	}
}
