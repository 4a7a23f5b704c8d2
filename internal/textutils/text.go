// Package textutils provides the text normalization helpers shared by the
// parsers and categorizers.
package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// CleanDescription replaces every rune other than letters, digits,
// underscores, whitespace, ampersands, hyphens and apostrophes with a space,
// then collapses whitespace runs and trims the result.
func CleanDescription(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
			return r
		case r == '_', r == '&', r == '-', r == '\'':
			return r
		}
		return ' '
	}, s)
	return CollapseWhitespace(mapped)
}

// CollapseWhitespace trims s and replaces each whitespace run with one space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fold returns the Unicode case-folded form of s for caseless matching.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Words splits s into case-folded words.
func Words(s string) []string {
	return strings.Fields(Fold(s))
}

// WordSet returns the set of case-folded words of s.
func WordSet(s string) map[string]struct{} {
	words := Words(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Jaccard returns |A∩B| / |A∪B| over the word sets of a and b. Two empty
// inputs have similarity 0.
func Jaccard(a, b string) float64 {
	setA, setB := WordSet(a), WordSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}
	inter := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}
