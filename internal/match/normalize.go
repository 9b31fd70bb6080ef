// Package match selects the catalog candidate closest to a user query
// using normalized Levenshtein distance.
package match

import (
	"strings"
	"unicode"
)

// Normalize strips every rune that is not a Unicode letter or digit.
// Whitespace and punctuation are removed, so "Веном!" and " 12  стульев "
// normalize to "Веном" and "12стульев". Comparison between a query and a
// candidate name is always done on normalized strings.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
