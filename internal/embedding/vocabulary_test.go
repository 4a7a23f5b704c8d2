package embedding

import (
	"context"
	"testing"

	"fjacquet/pdf-expenses/internal/categorizer"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPhraseList() []string {
	var out []string
	for _, p := range models.DefaultPrototypePhrases() {
		out = append(out, p)
	}
	return out
}

func TestVocabularyEmbedder_Embed(t *testing.T) {
	v := NewVocabularyEmbedder([]string{"Coffee shop", "coffee, tea"})
	require.Equal(t, 3, v.Dimensions())

	vec, err := v.Embed(context.Background(), "COFFEE coffee and cake")
	require.NoError(t, err)
	// Vocabulary is sorted: coffee, shop, tea.
	assert.Equal(t, []float32{2, 0, 0}, vec)

	vec, err = v.Embed(context.Background(), "nothing known")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0}, vec)
}

func TestVocabularyEmbedder_WithSemanticCategorizer(t *testing.T) {
	emb := NewVocabularyEmbedder(defaultPhraseList())
	cat, err := categorizer.NewSemanticCategorizer(context.Background(), emb,
		models.DefaultPrototypePhrases(), categorizer.DefaultThreshold, logging.NewMockLogger())
	require.NoError(t, err)

	tests := []struct {
		desc string
		want models.Category
	}{
		{"Uber ride to airport", models.CategoryTransportation},
		{"xyzzy plugh", models.CategoryOther},
		{"Pharmacy medicine", models.CategoryHealthcare},
		{"Hotel flight booking", models.CategoryTravel},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, cat.Categorize(context.Background(), tt.desc))
		})
	}
}
