package query

import (
	"regexp"
	"strconv"
	"strings"
)

// SortOrder is the sort preference extracted from a query.
type SortOrder string

const (
	SortNone     SortOrder = ""
	SortLatest   SortOrder = "latest"
	SortPriceAsc SortOrder = "price_asc"
	SortRating   SortOrder = "rating"
)

// PriceRange is a price constraint. No extraction branch ever assigns Min;
// the field exists because the filter honors it, and the asymmetry is kept
// deliberately (see DESIGN.md).
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Filters holds the structured constraints of an Intent. Empty string means
// the constraint is absent.
type Filters struct {
	Brand      string      `json:"brand,omitempty"`
	Color      string      `json:"color,omitempty"`
	Model      string      `json:"model,omitempty"`
	PriceRange *PriceRange `json:"price_range,omitempty"`
}

// Intent is the structured interpretation of a query.
type Intent struct {
	SortBy      SortOrder `json:"sort_by,omitempty"`
	FilterBy    Filters   `json:"filter_by"`
	SearchTerms []string  `json:"search_terms,omitempty"`
}

// modelPatterns are brand-specific model matchers tried in order, with a
// bare standalone number as the final fallback. They run against the query
// with price expressions blanked out, so "50k" never becomes a model.
var modelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`iphone\s+(\d{1,3}(?:\s*(?:pro\s*max|pro|plus|mini|air))?)\b`),
	regexp.MustCompile(`galaxy\s+s\s*(\d{1,3}(?:\s*(?:ultra|plus|fe))?)\b`),
	regexp.MustCompile(`\b(\d{1,3})\b`),
}

// priceRules are evaluated in order over the whole query; every match,
// tagged or untagged, assigns only the maximum price, and the last rule to
// match wins.
var priceRules = []struct {
	re   *regexp.Regexp
	mult float64
}{
	{regexp.MustCompile(`(?:under|below|upto|max|within)\s+(\d+(?:\.\d+)?)\s*(?:k|thousand)\b`), 1000},
	{regexp.MustCompile(`(?:under|below|upto|max|within)\s+(\d+(?:\.\d+)?)\s*(?:lakh|lac)\b`), 100000},
	{regexp.MustCompile(`(?:under|below|upto|max|within)\s+(\d+(?:\.\d+)?)\b`), 1},
	{regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:k|thousand)\b`), 1000},
	{regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:lakh|lac)\b`), 100000},
	{regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*(?:rupees|rs)\b`), 1},
}

// ExtractIntent derives the sort preference, filters, and residual search
// terms from the corrected query text.
func ExtractIntent(corrected string) Intent {
	intent := Intent{}
	tokens := strings.Fields(corrected)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = struct{}{}
	}

	// Last-match-wins across the sort rule groups.
	for _, rule := range sortRules {
		for _, kw := range rule.keywords {
			if _, ok := tokenSet[kw]; ok {
				intent.SortBy = rule.order
				break
			}
		}
	}

	// First vocabulary entry whose substring appears wins, in list order.
	for _, color := range colorVocabulary {
		if strings.Contains(corrected, color) {
			intent.FilterBy.Color = color
			break
		}
	}

	for _, brand := range brandVocabulary {
		if _, ok := tokenSet[brand]; ok {
			if alias, hasAlias := brandAliases[brand]; hasAlias {
				intent.FilterBy.Brand = alias
			} else {
				intent.FilterBy.Brand = brand
			}
			break
		}
	}

	priceRange, scrubbed := extractPriceRange(corrected)
	intent.FilterBy.PriceRange = priceRange
	intent.FilterBy.Model = extractModel(scrubbed)

	for _, t := range tokens {
		if len(t) <= 2 || isStopword(t) {
			continue
		}
		intent.SearchTerms = append(intent.SearchTerms, t)
	}

	return intent
}

// extractPriceRange scans the query with every price rule. The last matching
// rule wins, and all of them set only the maximum. The returned string is
// the query with matched spans blanked, for model extraction.
func extractPriceRange(corrected string) (*PriceRange, string) {
	var result *PriceRange
	scrubbed := corrected
	for _, rule := range priceRules {
		matches := rule.re.FindAllStringSubmatchIndex(corrected, -1)
		if len(matches) == 0 {
			continue
		}
		// Multiple matches of one rule: the last one evaluated wins.
		last := matches[len(matches)-1]
		raw := corrected[last[2]:last[3]]
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		result = &PriceRange{Max: value * rule.mult}
		for _, m := range matches {
			scrubbed = scrubbed[:m[0]] + strings.Repeat(" ", m[1]-m[0]) + scrubbed[m[1]:]
		}
	}
	return result, scrubbed
}

func extractModel(scrubbed string) string {
	for _, re := range modelPatterns {
		if m := re.FindStringSubmatch(scrubbed); m != nil {
			return whitespacePattern.ReplaceAllString(strings.TrimSpace(m[1]), " ")
		}
	}
	return ""
}
