package rank

import (
	"testing"

	"github.com/anshulpatil/catalog-search/internal/catalog"
	"github.com/anshulpatil/catalog-search/internal/query"
)

func product(id int64, title, brand string) *catalog.Product {
	p := &catalog.Product{
		ID:     id,
		Title:  title,
		Brand:  brand,
		Price:  50000,
		Rating: 4.0,
		Stock:  10,
	}
	p.RefreshSearchText()
	return p
}

func TestScoreClamped(t *testing.T) {
	q := query.Process("cheap latest black iphone 16 under 90k")
	p := product(1, "Apple iPhone 16", "Apple")
	p.Metadata = map[string]string{"color": "black", "model": "iphone 16"}
	p.Rating = 5
	p.ReviewCount = 50000
	p.UnitsSold = 500000
	p.DiscountPercentage = 90
	p.IsLatest = true
	p.Price = 100
	p.RefreshSearchText()

	score := Score(p, q)
	if score < 0 || score > 1 {
		t.Errorf("Score = %v, want within [0, 1]", score)
	}
}

func TestRelevanceZeroForEmptyQuery(t *testing.T) {
	q := query.Process("")
	p := product(1, "Apple iPhone 16", "Apple")

	if got := relevance(p, q); got != 0 {
		t.Errorf("relevance = %v, want 0", got)
	}
}

func TestRankTitleMatchOutranksMiss(t *testing.T) {
	q := query.Process("iphone")
	match := product(1, "Apple iPhone 16", "Apple")
	miss := product(2, "Samsung Galaxy S24", "Samsung")

	ranked := Rank([]*catalog.Product{miss, match}, q, 10)
	if len(ranked) != 2 {
		t.Fatalf("len = %d", len(ranked))
	}
	if ranked[0].Product.ID != 1 {
		t.Errorf("first = %d, want the title match", ranked[0].Product.ID)
	}
	if ranked[0].Score <= ranked[1].Score {
		t.Errorf("scores not descending: %v, %v", ranked[0].Score, ranked[1].Score)
	}
}

func TestRankTieBreaksByID(t *testing.T) {
	q := query.Process("iphone")
	a := product(3, "Apple iPhone 16", "Apple")
	b := product(1, "Apple iPhone 16", "Apple")
	c := product(2, "Apple iPhone 16", "Apple")

	ranked := Rank([]*catalog.Product{a, b, c}, q, 10)
	for i, wantID := range []int64{1, 2, 3} {
		if ranked[i].Product.ID != wantID {
			t.Errorf("position %d = ID %d, want %d", i, ranked[i].Product.ID, wantID)
		}
	}
}

func TestRankPriceAscTieBreak(t *testing.T) {
	q := query.Process("cheap iphone")
	if q.Intent.SortBy != query.SortPriceAsc {
		t.Fatalf("SortBy = %q", q.Intent.SortBy)
	}
	expensive := product(1, "Apple iPhone 16", "Apple")
	expensive.Price = 90000
	budget := product(2, "Apple iPhone 16", "Apple")
	budget.Price = 40000

	ranked := Rank([]*catalog.Product{expensive, budget}, q, 10)
	if ranked[0].Product.ID != 2 {
		t.Errorf("first = %d, want the cheaper product on a near-tie", ranked[0].Product.ID)
	}
}

func TestRankLatestSortPrefersLatest(t *testing.T) {
	q := query.Process("latest samsung")
	old := product(1, "Samsung Galaxy S23", "Samsung")
	fresh := product(2, "Samsung Galaxy S24", "Samsung")
	fresh.IsLatest = true

	ranked := Rank([]*catalog.Product{old, fresh}, q, 10)
	if ranked[0].Product.ID != 2 {
		t.Errorf("first = %d, want the latest product", ranked[0].Product.ID)
	}
}

func TestRankRatingTieBreak(t *testing.T) {
	q := query.Process("best headphone")
	if q.Intent.SortBy != query.SortRating {
		t.Fatalf("SortBy = %q", q.Intent.SortBy)
	}
	lower := product(1, "Sony Headphone", "Sony")
	lower.Category = "headphone"
	lower.Rating = 4.0
	lower.RefreshSearchText()
	higher := product(2, "Sony Headphone", "Sony")
	higher.Category = "headphone"
	higher.Rating = 4.1
	higher.RefreshSearchText()

	ranked := Rank([]*catalog.Product{lower, higher}, q, 10)
	if ranked[0].Product.ID != 2 {
		t.Errorf("first = %d, want the higher-rated product", ranked[0].Product.ID)
	}
}

func TestRankLimitTruncates(t *testing.T) {
	q := query.Process("iphone")
	products := make([]*catalog.Product, 0, 30)
	for i := int64(1); i <= 30; i++ {
		products = append(products, product(i, "Apple iPhone", "Apple"))
	}
	ranked := Rank(products, q, 5)
	if len(ranked) != 5 {
		t.Errorf("len = %d, want 5", len(ranked))
	}
}

func TestSpecialBoostPriceProximity(t *testing.T) {
	q := query.Process("iphone under 60k")
	cheap := product(1, "Apple iPhone 13", "Apple")
	cheap.Price = 30000
	atCap := product(2, "Apple iPhone 13", "Apple")
	atCap.Price = 60000

	cheapScore := Score(cheap, q)
	capScore := Score(atCap, q)
	if cheapScore <= capScore {
		t.Errorf("cheaper-under-budget score %v not above at-budget score %v", cheapScore, capScore)
	}
}

func TestQualityStockGate(t *testing.T) {
	inStock := product(1, "Apple iPhone", "Apple")
	outOfStock := product(2, "Apple iPhone", "Apple")
	outOfStock.Stock = 0

	if quality(inStock) <= quality(outOfStock) {
		t.Errorf("in-stock quality %v not above out-of-stock %v", quality(inStock), quality(outOfStock))
	}
}

func TestCapRatio(t *testing.T) {
	tests := []struct {
		value, ceiling, want float64
	}{
		{0, 100, 0},
		{50, 100, 0.5},
		{150, 100, 1},
		{-5, 100, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := capRatio(tt.value, tt.ceiling); got != tt.want {
			t.Errorf("capRatio(%v, %v) = %v, want %v", tt.value, tt.ceiling, got, tt.want)
		}
	}
}
