// Package query turns a raw catalog query into a ProcessedQuery: normalized
// and spelling-corrected text plus a structured Intent (sort preference,
// filters, residual search terms). Every stage is total: malformed input
// narrows the result, it never fails.
package query

import (
	"regexp"
	"strings"
)

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Processed is the fully interpreted form of one raw query. It is created
// per request and never persisted.
type Processed struct {
	Original   string `json:"original"`
	Normalized string `json:"normalized"`
	Corrected  string `json:"corrected"`
	Intent     Intent `json:"intent"`

	// Keywords are the matchable tokens of the corrected text: longer than
	// two characters or pure digits, deduplicated.
	Keywords []string `json:"-"`
}

// Process runs the full pipeline: normalize, translate Hinglish terms,
// correct spelling, extract intent.
func Process(raw string) *Processed {
	normalized := Normalize(raw)
	translated := translateHinglish(normalized)
	corrected := CorrectSpelling(translated)

	return &Processed{
		Original:   raw,
		Normalized: normalized,
		Corrected:  corrected,
		Intent:     ExtractIntent(corrected),
		Keywords:   keywordTokens(corrected),
	}
}

// Normalize strips everything except word characters and whitespace,
// lowercases, and collapses runs of whitespace.
func Normalize(raw string) string {
	s := nonWordPattern.ReplaceAllString(raw, "")
	s = strings.ToLower(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// translateHinglish substitutes Romanized-Hindi function words with their
// English equivalents, whole-word only.
func translateHinglish(text string) string {
	words := strings.Fields(text)
	changed := false
	for i, w := range words {
		if repl, ok := hinglishTerms[w]; ok {
			words[i] = repl
			changed = true
		}
	}
	if !changed {
		return text
	}
	return strings.Join(words, " ")
}

// CorrectSpelling first applies the known-misspelling dictionary whole-word,
// then compares each remaining word longer than three characters against the
// brand vocabulary and, failing that, the category vocabulary; a word within
// edit distance 2 (and at least 1) of a vocabulary term is replaced by it.
// Brands are checked before category terms, first match wins.
func CorrectSpelling(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		if repl, ok := misspellings[w]; ok {
			words[i] = repl
		}
	}
	for i, w := range words {
		if len(w) <= 3 || isStopword(w) || inVocabulary(w) {
			continue
		}
		if repl, ok := nearestVocabularyTerm(w); ok {
			words[i] = repl
		}
	}
	return strings.Join(words, " ")
}

func nearestVocabularyTerm(word string) (string, bool) {
	for _, b := range brandVocabulary {
		if d := Distance(word, b); d > 0 && d <= 2 {
			return b, true
		}
	}
	for _, c := range categoryVocabulary {
		if d := Distance(word, c); d > 0 && d <= 2 {
			return c, true
		}
	}
	return "", false
}

// keywordTokens returns the deduplicated tokens of text that are longer than
// two characters or pure digits.
func keywordTokens(text string) []string {
	words := strings.Fields(text)
	seen := make(map[string]struct{}, len(words))
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) <= 2 && !isDigits(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		tokens = append(tokens, w)
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
