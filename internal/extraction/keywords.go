package extraction

import (
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// keywordSet matches a fixed list of lower-case phrases in a single pass.
// The underlying matcher keeps per-call state, so Match is serialized.
type keywordSet struct {
	mu      sync.Mutex
	words   []string
	matcher *ahocorasick.Matcher
}

func newKeywordSet(words ...string) *keywordSet {
	return &keywordSet{
		words:   words,
		matcher: ahocorasick.NewStringMatcher(words),
	}
}

// matches returns the distinct phrases found in folded text.
func (k *keywordSet) matches(folded string) []string {
	k.mu.Lock()
	hits := k.matcher.Match([]byte(folded))
	k.mu.Unlock()

	seen := make(map[int]bool, len(hits))
	out := make([]string, 0, len(hits))
	for _, idx := range hits {
		if idx < 0 || idx >= len(k.words) || seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, k.words[idx])
	}
	return out
}

func (k *keywordSet) count(folded string) int {
	return len(k.matches(folded))
}

func (k *keywordSet) any(folded string) bool {
	return k.count(folded) > 0
}

// keywordRule maps a keyword set to a label. Rules are evaluated in order and
// the first rule with a hit wins.
type keywordRule[T any] struct {
	keywords *keywordSet
	label    T
}

func firstRule[T any](rules []keywordRule[T], folded string, fallback T) T {
	for _, r := range rules {
		if r.keywords.any(folded) {
			return r.label
		}
	}
	return fallback
}
