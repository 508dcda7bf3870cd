package search

import (
	"testing"

	"github.com/anshulpatil/catalog-search/internal/catalog"
	"github.com/anshulpatil/catalog-search/internal/query"
)

func filterAll(t *testing.T, s *catalog.Store, filters query.Filters) []*catalog.Product {
	t.Helper()
	var got []*catalog.Product
	s.View(func(tx *catalog.Txn) {
		candidates := make(map[int64]struct{})
		for _, p := range tx.All() {
			candidates[p.ID] = struct{}{}
		}
		got = Filter(tx, candidates, filters)
	})
	return got
}

func ids(products []*catalog.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterNoConstraints(t *testing.T) {
	s := seedStore(t)
	got := filterAll(t, s, query.Filters{})
	if len(got) != 5 {
		t.Errorf("survivors = %v, want all 5", ids(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].ID >= got[i].ID {
			t.Fatal("result not ordered by ID")
		}
	}
}

func TestFilterMaxPrice(t *testing.T) {
	s := seedStore(t)
	got := filterAll(t, s, query.Filters{
		PriceRange: &query.PriceRange{Max: 50000},
	})
	for _, p := range got {
		if p.Price > 50000 {
			t.Errorf("product %d price %v exceeds the cap", p.ID, p.Price)
		}
	}
	if len(got) != 2 {
		t.Errorf("survivors = %v, want the iPhone 13 and the Sony", ids(got))
	}
}

func TestFilterBrand(t *testing.T) {
	s := seedStore(t)
	got := filterAll(t, s, query.Filters{Brand: "apple"})
	if len(got) != 2 {
		t.Fatalf("survivors = %v, want both iPhones", ids(got))
	}
	for _, p := range got {
		if p.Brand != "Apple" {
			t.Errorf("non-Apple product %d survived", p.ID)
		}
	}
}

func TestFilterColor(t *testing.T) {
	s := seedStore(t)
	got := filterAll(t, s, query.Filters{Color: "black"})
	if len(got) != 2 {
		t.Errorf("survivors = %v, want the two black products", ids(got))
	}
}

func TestFilterModelFallsBackToTitle(t *testing.T) {
	s := seedStore(t)
	// The Dell has no model metadata; the constraint runs against its title.
	got := filterAll(t, s, query.Filters{Model: "inspiron 15"})
	if len(got) != 1 || got[0].ID != 5 {
		t.Errorf("survivors = %v, want only the Dell", ids(got))
	}
}

func TestFilterConstraintsCombine(t *testing.T) {
	s := seedStore(t)
	got := filterAll(t, s, query.Filters{
		Brand:      "apple",
		Color:      "blue",
		PriceRange: &query.PriceRange{Max: 50000},
	})
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("survivors = %v, want only the blue iPhone 13", ids(got))
	}
}
