package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// streetAbbreviations expands common street-type shorthand to its
// canonical form before matching.
var streetAbbreviations = map[string]string{
	"bd":   "boulevard",
	"bld":  "boulevard",
	"boul": "boulevard",
	"av":   "avenue",
	"ave":  "avenue",
	"r":    "rue",
	"pl":   "place",
	"che":  "chemin",
	"chem": "chemin",
	"imp":  "impasse",
	"sq":   "square",
	"crs":  "cours",
	"rte":  "route",
	"all":  "allee",
	"fg":   "faubourg",
	"st":   "saint",
	"ste":  "sainte",
}

var diacriticsRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics removes combining marks: "Hôtel-de-Ville" becomes
// "Hotel-de-Ville".
func StripDiacritics(s string) string {
	out, _, err := transform.String(diacriticsRemover, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowers, strips diacritics and expands street-type
// abbreviations, token by token. Both queries and candidates go
// through the same normalization so scoring compares like with like.
func Normalize(s string) string {
	s = strings.ToLower(StripDiacritics(s))

	tokens := strings.Fields(s)
	for i, token := range tokens {
		trimmed := strings.TrimSuffix(token, ".")
		if full, ok := streetAbbreviations[trimmed]; ok {
			tokens[i] = full
		} else {
			tokens[i] = trimmed
		}
	}
	return strings.Join(tokens, " ")
}

// Tokens splits a normalized string into match terms.
func Tokens(s string) []string {
	return strings.Fields(s)
}

// StartsWithDigit reports whether the query targets a specific street
// number rather than a street.
func StartsWithDigit(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return s[0] >= '0' && s[0] <= '9'
}
