// Package extract pulls structured attributes (ram, storage, color, model)
// out of free-text product titles and descriptions at ingestion time. Rules
// are ordered pattern tables; the first match per attribute wins, and
// attributes already present in the metadata are never overwritten.
package extract

import (
	"regexp"
	"strings"
)

type rule struct {
	key string
	re  *regexp.Regexp
}

var rules = []rule{
	{"ram", regexp.MustCompile(`(?i)\b(\d{1,3}\s*gb)\s*ram\b`)},
	{"ram", regexp.MustCompile(`(?i)\bram\s*(\d{1,3}\s*gb)\b`)},
	{"storage", regexp.MustCompile(`(?i)\b(\d{1,4}\s*(?:gb|tb))\s*(?:storage|rom|ssd)\b`)},
	{"storage", regexp.MustCompile(`(?i)\b(?:storage|rom|ssd)\s*(\d{1,4}\s*(?:gb|tb))\b`)},
	{"model", regexp.MustCompile(`(?i)\b(iphone\s*\d{1,3}(?:\s*(?:pro\s*max|pro|plus|mini))?)\b`)},
	{"model", regexp.MustCompile(`(?i)\b(galaxy\s*s\s*\d{1,3}(?:\s*(?:ultra|plus|fe))?)\b`)},
}

var colorPattern = regexp.MustCompile(`(?i)\b(space gray|space grey|midnight blue|rose gold|black|white|blue|red|green|purple|pink|gold|silver|gray|grey|yellow|orange)\b`)

// Attributes scans title and description and fills the missing keys of
// metadata in place, returning it. A nil metadata map is allocated.
func Attributes(title, description string, metadata map[string]string) map[string]string {
	if metadata == nil {
		metadata = make(map[string]string)
	}
	text := title + " " + description

	for _, r := range rules {
		if metadata[r.key] != "" {
			continue
		}
		if m := r.re.FindStringSubmatch(text); m != nil {
			metadata[r.key] = normalizeValue(m[1])
		}
	}
	if metadata["color"] == "" {
		if m := colorPattern.FindStringSubmatch(text); m != nil {
			metadata["color"] = strings.ToLower(m[1])
		}
	}
	return metadata
}

var innerSpace = regexp.MustCompile(`\s+`)

func normalizeValue(v string) string {
	return innerSpace.ReplaceAllString(strings.ToLower(strings.TrimSpace(v)), " ")
}
