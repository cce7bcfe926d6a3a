// Package textnorm provides the text normalization pipeline shared by the
// assistant's classifier, rewriter and retriever.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// Normalize lowercases the text, replaces every character that is not a
// letter, digit or whitespace with a single space, collapses repeated
// whitespace and trims. Total and idempotent.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Keywords splits normalized text on whitespace and drops stop words and
// tokens of length <= 2. Order is preserved; downstream scoring uses sets.
func Keywords(text string) []string {
	fields := strings.Fields(Normalize(text))
	out := make([]string, 0, len(fields))
	for _, tok := range fields {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Stem reduces a single token to its root form. Tokens the stemmer rejects
// pass through unchanged.
func Stem(token string) string {
	stemmed, err := snowball.Stem(token, "english", false)
	if err != nil || stemmed == "" {
		return token
	}
	return stemmed
}

// Stems maps every token through Stem.
func Stems(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = Stem(tok)
	}
	return out
}

// StemSet returns the set of stemmed keywords of the text.
func StemSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Keywords(text) {
		set[Stem(tok)] = struct{}{}
	}
	return set
}
