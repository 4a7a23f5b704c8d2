package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Joe's Diner", "Joe's Diner"},
		{"  Coffee   Shop ", "Coffee Shop"},
		{"AT&T / Wireless*", "AT&T Wireless"},
		{"Café #12 (main)", "Café 12 main"},
		{"snake_case-name", "snake_case-name"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDescription(tt.in))
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "grand total", Fold("GRAND Total"))
	assert.Equal(t, "strasse", Fold("STRASSE"))
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Coffee Shop", "coffee shop", 1},
		{"disjoint", "coffee", "tea", 0},
		{"half", "coffee shop", "coffee", 0.5},
		{"repeated words count once", "coffee coffee shop", "shop coffee", 1},
		{"both empty", "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Jaccard(tt.a, tt.b), 1e-9)
		})
	}
}
