// Package rank scores filtered candidates on weighted relevance, quality,
// and popularity axes, applies special boosts, and orders the final result
// with intent-aware tie-breaking.
package rank

import (
	"sort"
	"strings"

	"github.com/anshulpatil/catalog-search/internal/catalog"
	"github.com/anshulpatil/catalog-search/internal/query"
)

// Axis weights of the final score.
const (
	weightRelevance  = 0.5
	weightQuality    = 0.3
	weightPopularity = 0.2
)

// Relevance components.
const (
	titleWeight    = 0.35
	descWeight     = 0.15
	metaWeight     = 0.10
	titleBonus     = 0.15
	brandBonus     = 0.15
	// modelBonus is shared by the color match; the coupling is kept on
	// purpose (see DESIGN.md).
	modelBonus  = 0.10
	fuzzyWeight = 0.10
)

// Quality components.
const (
	qualityRatingWeight     = 0.3
	qualityReviewsWeight    = 0.2
	qualityReturnsWeight    = 0.2
	qualityComplaintsWeight = 0.1
	qualityStockWeight      = 0.2

	reviewCountCap    = 10000
	complaintCountCap = 1000
)

// Popularity components.
const (
	popularitySalesWeight    = 0.4
	popularityDiscountWeight = 0.3
	popularityLatestWeight   = 0.3

	unitsSoldCap = 100000
	discountCap  = 50
)

// Special boosts.
const (
	priceProximityBoostMax = 0.2
	stockBoost             = 0.1
	latestSortBoost        = 0.15
	colorConstraintBoost   = 0.1
	modelConstraintBoost   = 0.1
	minStockForBoost       = 1
)

// scoreTieEpsilon is the score difference below which two products count as
// tied for the secondary sort comparators.
const scoreTieEpsilon = 0.01

// Scored pairs a catalog product reference with its final score.
type Scored struct {
	Product *catalog.Product `json:"product"`
	Score   float64          `json:"score"`
}

// Rank scores every candidate, orders by descending final score, applies
// the intent's secondary comparator when a sort preference is present, and
// truncates to limit.
func Rank(candidates []*catalog.Product, q *query.Processed, limit int) []Scored {
	scored := make([]Scored, 0, len(candidates))
	for _, p := range candidates {
		scored = append(scored, Scored{
			Product: p,
			Score:   Score(p, q),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Product.ID < scored[j].Product.ID
	})

	// A full re-sort with a comparator that embeds the score ordering as
	// its default branch; near-ties are broken by the sort preference.
	switch q.Intent.SortBy {
	case query.SortPriceAsc:
		sort.SliceStable(scored, func(i, j int) bool {
			if nearTie(scored[i].Score, scored[j].Score) {
				return scored[i].Product.Price < scored[j].Product.Price
			}
			return scored[i].Score > scored[j].Score
		})
	case query.SortLatest:
		sort.SliceStable(scored, func(i, j int) bool {
			if nearTie(scored[i].Score, scored[j].Score) {
				pi, pj := scored[i].Product, scored[j].Product
				if pi.IsLatest != pj.IsLatest {
					return pi.IsLatest
				}
				return pi.ID > pj.ID
			}
			return scored[i].Score > scored[j].Score
		})
	case query.SortRating:
		sort.SliceStable(scored, func(i, j int) bool {
			if nearTie(scored[i].Score, scored[j].Score) {
				return scored[i].Product.Rating > scored[j].Product.Rating
			}
			return scored[i].Score > scored[j].Score
		})
	}

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func nearTie(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < scoreTieEpsilon
}

// Score computes the final clamped score for one product.
func Score(p *catalog.Product, q *query.Processed) float64 {
	score := weightRelevance*relevance(p, q) +
		weightQuality*quality(p) +
		weightPopularity*popularity(p)
	score += specialBoosts(p, q)
	return clamp01(score)
}

func relevance(p *catalog.Product, q *query.Processed) float64 {
	if len(q.Keywords) == 0 && q.Corrected == "" {
		return 0
	}
	var score float64
	title := strings.ToLower(p.Title)
	total := len(q.Keywords)

	if q.Corrected != "" && strings.Contains(title, q.Corrected) {
		score += titleWeight + titleBonus
	} else if total > 0 {
		score += titleWeight * overlapRatio(title, q.Keywords)
	}
	if total > 0 {
		score += descWeight * overlapRatio(strings.ToLower(p.Description), q.Keywords)
		score += metaWeight * overlapRatio(metadataText(p), q.Keywords)
	}

	if p.Brand != "" && strings.Contains(q.Corrected, strings.ToLower(p.Brand)) {
		score += brandBonus
	}
	if model := strings.ToLower(p.Metadata["model"]); model != "" && strings.Contains(q.Corrected, model) {
		score += modelBonus
	}
	if color := strings.ToLower(p.Metadata["color"]); color != "" && strings.Contains(q.Corrected, color) {
		score += modelBonus
	}

	score += fuzzyWeight * fuzzyProximity(p, q.Keywords)

	return clamp01(score)
}

// overlapRatio is matched-keyword-count over total-keyword-count for
// substring matches of each keyword in text.
func overlapRatio(text string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords))
}

func metadataText(p *catalog.Product) string {
	if len(p.Metadata) == 0 {
		return ""
	}
	values := make([]string, 0, len(p.Metadata))
	for _, v := range p.Metadata {
		values = append(values, strings.ToLower(v))
	}
	return strings.Join(values, " ")
}

// fuzzyProximity returns the best edit-distance closeness between any
// product word and any query keyword (both longer than three characters),
// normalized so distance 0 is 1.0 and distance 2 is 1/3.
func fuzzyProximity(p *catalog.Product, keywords []string) float64 {
	var best float64
	for _, word := range p.SearchKeywords {
		if len(word) <= 3 {
			continue
		}
		for _, kw := range keywords {
			if len(kw) <= 3 {
				continue
			}
			if !query.Within(word, kw, 2) {
				continue
			}
			proximity := 1.0 - float64(query.Distance(word, kw))/3.0
			if proximity > best {
				best = proximity
			}
		}
	}
	return best
}

func quality(p *catalog.Product) float64 {
	score := qualityRatingWeight * (p.Rating / 5.0)
	score += qualityReviewsWeight * capRatio(float64(p.ReviewCount), reviewCountCap)
	score += qualityReturnsWeight * clamp01(1.0-p.ReturnRate)
	score += qualityComplaintsWeight * (1.0 - capRatio(float64(p.ComplaintCount), complaintCountCap))
	if p.Stock > 0 {
		score += qualityStockWeight
	}
	return clamp01(score)
}

func popularity(p *catalog.Product) float64 {
	score := popularitySalesWeight * capRatio(float64(p.UnitsSold), unitsSoldCap)
	score += popularityDiscountWeight * capRatio(p.DiscountPercentage, discountCap)
	if p.IsLatest {
		score += popularityLatestWeight
	}
	return clamp01(score)
}

func specialBoosts(p *catalog.Product, q *query.Processed) float64 {
	var boost float64
	filters := q.Intent.FilterBy

	if pr := filters.PriceRange; pr != nil && pr.Max > 0 && p.Price <= pr.Max {
		boost += priceProximityBoostMax * (pr.Max - p.Price) / pr.Max
	}
	if p.Stock >= minStockForBoost {
		boost += stockBoost
	}
	if q.Intent.SortBy == query.SortLatest && p.IsLatest {
		boost += latestSortBoost
	}
	if filters.Color != "" && strings.Contains(strings.ToLower(p.Metadata["color"]), filters.Color) {
		boost += colorConstraintBoost
	}
	if filters.Model != "" && strings.Contains(strings.ToLower(p.Metadata["model"]), strings.ToLower(filters.Model)) {
		boost += modelConstraintBoost
	}
	return boost
}

func capRatio(value, ceiling float64) float64 {
	if ceiling <= 0 {
		return 0
	}
	if value > ceiling {
		value = ceiling
	}
	if value < 0 {
		value = 0
	}
	return value / ceiling
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
