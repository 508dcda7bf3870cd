// Package catalog holds the product model and the in-memory indexed store
// that serves the search pipeline.
package catalog

import (
	"sort"
	"strings"
	"unicode"
)

// Product is a single catalog entry. SearchText and SearchKeywords are
// derived from the descriptive fields and must be refreshed whenever title,
// description, or metadata change; RefreshSearchText is the only place that
// computes them.
type Product struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`

	Price        float64 `json:"price"`
	MRP          float64 `json:"mrp"`
	SellingPrice float64 `json:"selling_price"`
	Currency     string  `json:"currency"`
	Rating       float64 `json:"rating"`
	Stock        int     `json:"stock"`

	// Metadata is an open-ended string attribute map (ram, storage, color,
	// model, ...). All keys are optional.
	Metadata map[string]string `json:"metadata,omitempty"`

	SearchText     string   `json:"-"`
	SearchKeywords []string `json:"-"`

	UnitsSold          int     `json:"units_sold"`
	ReturnRate         float64 `json:"return_rate"`
	ReviewCount        int     `json:"review_count"`
	ComplaintCount     int     `json:"complaint_count"`
	DiscountPercentage float64 `json:"discount_percentage"`
	IsLatest           bool    `json:"is_latest"`
}

// RefreshSearchText recomputes the derived SearchText and SearchKeywords
// from the current field values. SearchText is the lowercased concatenation
// of title, description, brand, category, and every metadata value;
// SearchKeywords is the deduplicated token set of SearchText keeping tokens
// longer than two characters or pure digits.
func (p *Product) RefreshSearchText() {
	parts := make([]string, 0, 4+len(p.Metadata))
	parts = append(parts, p.Title, p.Description, p.Brand, p.Category)
	// Metadata iteration order is random; sort keys so SearchText is stable.
	keys := make([]string, 0, len(p.Metadata))
	for k := range p.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, p.Metadata[k])
	}
	p.SearchText = strings.ToLower(strings.Join(parts, " "))
	p.SearchKeywords = Tokenize(p.SearchText)
}

// Tokenize splits text on non-alphanumeric boundaries and returns the
// deduplicated tokens that are either longer than two characters or pure
// digits, preserving first-appearance order.
func Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]struct{}, len(words))
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) <= 2 && !isDigits(word) {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		tokens = append(tokens, word)
	}
	return tokens
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
