package query

// The tables below drive every heuristic stage of the processor. They are
// plain ordered data so the precedence rules stay auditable: each table
// documents whether it is first-match-wins or last-match-wins.

// hinglishTerms maps Romanized-Hindi function words to English equivalents.
// Substitution is whole-word only, applied after normalization.
var hinglishTerms = map[string]string{
	"sasta":    "cheap",
	"sastha":   "cheap",
	"saste":    "cheap",
	"mehenga":  "expensive",
	"mehnga":   "expensive",
	"wala":     "with",
	"wale":     "with",
	"chahiye":  "want",
	"accha":    "good",
	"achha":    "good",
	"badhiya":  "good",
	"naya":     "new",
	"nayi":     "new",
	"sabse":    "most",
	"kharido":  "buy",
	"kharidna": "buy",
	"dikhao":   "show",
}

// misspellings maps known misspellings to canonical terms. Whole-word
// substitution, applied before the edit-distance pass.
var misspellings = map[string]string{
	"ifone":     "iphone",
	"iphon":     "iphone",
	"ihpone":    "iphone",
	"aifone":    "iphone",
	"samsang":   "samsung",
	"sumsung":   "samsung",
	"samsund":   "samsung",
	"xaomi":     "xiaomi",
	"ziaomi":    "xiaomi",
	"redmy":     "redmi",
	"onplus":    "oneplus",
	"moblie":    "mobile",
	"mobil":     "mobile",
	"labtop":    "laptop",
	"leptop":    "laptop",
	"hedphone":  "headphone",
	"headfone":  "headphone",
	"earfone":   "earphone",
	"charjar":   "charger",
	"chepest":   "cheapest",
	"galxy":     "galaxy",
}

// brandVocabulary is scanned in order for brand intent and is the first
// vocabulary checked by the edit-distance correction pass.
var brandVocabulary = []string{
	"apple",
	"iphone",
	"samsung",
	"xiaomi",
	"redmi",
	"oneplus",
	"realme",
	"oppo",
	"vivo",
	"motorola",
	"nokia",
	"sony",
	"boat",
	"jbl",
	"dell",
	"lenovo",
	"asus",
	"acer",
}

// Brands returns the brand vocabulary in scan order.
func Brands() []string {
	return brandVocabulary
}

// brandAliases normalizes vocabulary entries that are product lines rather
// than brands.
var brandAliases = map[string]string{
	"iphone": "apple",
}

// categoryVocabulary is the second vocabulary checked by the edit-distance
// correction pass.
var categoryVocabulary = []string{
	"mobile",
	"phone",
	"smartphone",
	"laptop",
	"tablet",
	"headphone",
	"earphone",
	"earbuds",
	"speaker",
	"charger",
	"cover",
	"case",
	"smartwatch",
	"television",
	"galaxy",
}

// colorVocabulary is scanned in list order; the first entry whose substring
// appears in the query wins, so compound phrases must precede their base
// color.
var colorVocabulary = []string{
	"space gray",
	"space grey",
	"midnight blue",
	"rose gold",
	"black",
	"white",
	"blue",
	"red",
	"green",
	"purple",
	"pink",
	"gold",
	"silver",
	"gray",
	"grey",
	"yellow",
	"orange",
}

// sortRules is evaluated top to bottom and is last-match-wins: when the
// query contains keywords from more than one group, the group evaluated
// later overwrites the earlier assignment.
var sortRules = []struct {
	keywords []string
	order    SortOrder
}{
	{[]string{"latest", "new", "newest"}, SortLatest},
	{[]string{"cheap", "cheapest", "sasta", "sastha", "affordable", "budget"}, SortPriceAsc},
	{[]string{"best", "top"}, SortRating},
}

// stopwords are sort/filter keywords stripped from the residual search
// terms.
var stopwords = map[string]struct{}{
	"under": {}, "below": {}, "upto": {}, "max": {}, "within": {},
	"price": {}, "rupees": {}, "thousand": {}, "lakh": {}, "lac": {},
	"cheap": {}, "cheapest": {}, "affordable": {}, "budget": {},
	"best": {}, "top": {}, "latest": {}, "new": {}, "newest": {},
	"with": {}, "want": {}, "buy": {}, "show": {}, "good": {},
	"most": {}, "expensive": {}, "the": {}, "for": {}, "and": {},
}

func isStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}

// inVocabulary reports whether the word is already an exact member of one of
// the correction vocabularies, in which case the edit-distance pass must
// leave it alone ("phone" is one edit from "iphone" but is a category term).
func inVocabulary(word string) bool {
	for _, b := range brandVocabulary {
		if word == b {
			return true
		}
	}
	for _, c := range categoryVocabulary {
		if word == c {
			return true
		}
	}
	return false
}
