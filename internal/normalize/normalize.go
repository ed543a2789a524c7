// Package normalize canonicalises venue names for fuzzy comparison. The
// output is a dedup key, never display text.
package normalize

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords are generic venue words and company/country suffixes that carry
// no identity: "Joe's Pizza Restaurant" and "joes pizza" must collide.
var stopwords = map[string]bool{
	"restaurant": true,
	"cafe":       true,
	"bistro":     true,
	"eatery":     true,
	"the":        true,
	"and":        true,
	"of":         true,
	"at":         true,
	"pte":        true,
	"ltd":        true,
	"llp":        true,
	"inc":        true,
	"co":         true,
	"sg":         true,
	"singapore":  true,
}

// fold lowercases s, deletes apostrophes so possessives keep their word
// ("mcdonald's" becomes "mcdonalds", not "mcdonald s"), and maps the
// remaining punctuation to spaces.
func fold(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r == '\'' || r == '’':
			// drop
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// Name lowercases, strips punctuation, drops stopwords and returns the
// remaining tokens sorted and space-joined. Idempotent:
// Name(Name(x)) == Name(x).
func Name(s string) string {
	var tokens []string
	for _, tok := range strings.Fields(fold(s)) {
		if !stopwords[tok] {
			tokens = append(tokens, tok)
		}
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Tokens returns the normalised tokens of s, stopwords included. Used for
// token-subset term matching.
func Tokens(s string) []string {
	return strings.Fields(fold(s))
}
