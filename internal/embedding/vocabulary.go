package embedding

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"fjacquet/pdf-expenses/internal/textutils"
)

// VocabularyEmbedder is an offline bag-of-words embedder. Its dimensions are
// the distinct words of a fixed phrase set; other words are ignored, so text
// sharing no word with the phrases embeds to the zero vector.
type VocabularyEmbedder struct {
	index map[string]int
	words []string
}

// NewVocabularyEmbedder builds the vocabulary from phrases.
func NewVocabularyEmbedder(phrases []string) *VocabularyEmbedder {
	seen := make(map[string]struct{})
	for _, p := range phrases {
		for _, w := range tokenize(p) {
			seen[w] = struct{}{}
		}
	}
	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)

	index := make(map[string]int, len(words))
	for i, w := range words {
		index[w] = i
	}
	return &VocabularyEmbedder{index: index, words: words}
}

// Dimensions returns the vocabulary size.
func (v *VocabularyEmbedder) Dimensions() int {
	return len(v.words)
}

// Embed returns term counts over the vocabulary. It never fails.
func (v *VocabularyEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, len(v.words))
	for _, w := range tokenize(text) {
		if i, ok := v.index[w]; ok {
			vec[i]++
		}
	}
	return vec, nil
}

func tokenize(s string) []string {
	return strings.FieldsFunc(textutils.Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
