package categorizer

import (
	"context"
	"errors"
	"math"
	"testing"

	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"
	"fjacquet/pdf-expenses/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phraseVectors() (map[models.Category]string, map[string][]float32) {
	phrases := map[models.Category]string{
		models.CategoryFood:           "food phrase",
		models.CategoryTransportation: "transport phrase",
		models.CategoryShopping:       "shopping phrase",
	}
	vectors := map[string][]float32{
		"food phrase":      {1, 0, 0},
		"transport phrase": {0, 1, 0},
		"shopping phrase":  {0, 0, 1},
	}
	return phrases, vectors
}

func TestNewSemanticCategorizer_OrdersPrototypes(t *testing.T) {
	phrases, vectors := phraseVectors()
	emb := &MockEmbedder{Vectors: vectors}

	s, err := NewSemanticCategorizer(context.Background(), emb, phrases, DefaultThreshold, logging.NewMockLogger())
	require.NoError(t, err)

	protos := s.Prototypes()
	require.Len(t, protos, 3)
	assert.Equal(t, models.CategoryFood, protos[0].Category)
	assert.Equal(t, models.CategoryTransportation, protos[1].Category)
	assert.Equal(t, models.CategoryShopping, protos[2].Category)
	assert.Equal(t, 3, emb.Calls)
	assert.Equal(t, "Semantic", s.Name())
}

func TestNewSemanticCategorizer_FailsOnPrototypeError(t *testing.T) {
	phrases, vectors := phraseVectors()
	emb := &MockEmbedder{Vectors: vectors, FailOn: map[string]error{"shopping phrase": errors.New("quota")}}

	_, err := NewSemanticCategorizer(context.Background(), emb, phrases, DefaultThreshold, nil)
	require.Error(t, err)
	var catErr *parsererror.CategorizationError
	assert.ErrorAs(t, err, &catErr)
	assert.Equal(t, "shopping phrase", catErr.Input)

	_, err = NewSemanticCategorizer(context.Background(), nil, phrases, DefaultThreshold, nil)
	assert.Error(t, err)
}

func TestNewSemanticCategorizer_DefaultPhrases(t *testing.T) {
	emb := &MockEmbedder{Default: []float32{1, 1}}
	s, err := NewSemanticCategorizer(context.Background(), emb, nil, DefaultThreshold, nil)
	require.NoError(t, err)
	assert.Len(t, s.Prototypes(), 10)
}

func TestSemanticCategorizer_Categorize(t *testing.T) {
	phrases, vectors := phraseVectors()
	vectors["lunch"] = []float32{0.9, 0.1, 0}
	vectors["tie"] = []float32{1, 1, 0}
	vectors["weak"] = []float32{-1, -1, 0.2}
	vectors["zero"] = []float32{0, 0, 0}
	vectors["short"] = []float32{1, 0}

	emb := &MockEmbedder{Vectors: vectors, FailOn: map[string]error{"broken": errors.New("timeout")}}
	logger := logging.NewMockLogger()
	s, err := NewSemanticCategorizer(context.Background(), emb, phrases, DefaultThreshold, logger)
	require.NoError(t, err)

	tests := []struct {
		desc string
		want models.Category
	}{
		{"lunch", models.CategoryFood},
		{"tie", models.CategoryFood},
		{"weak", models.CategoryOther},
		{"zero", models.CategoryOther},
		{"short", models.CategoryOther},
		{"broken", models.CategoryOther},
		{"   ", models.CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Categorize(context.Background(), tt.desc))
		})
	}
	assert.True(t, logger.HasEntry("WARN", "Failed to embed description, using other"))
}

func TestSemanticCategorizer_ThresholdBoundary(t *testing.T) {
	phrases := map[models.Category]string{models.CategoryBills: "bills"}
	// cos(edge, bills) is 0.3 up to float32 rounding.
	a := []float32{0.3, float32(math.Sqrt(0.91))}
	emb := &MockEmbedder{Vectors: map[string][]float32{"bills": {1, 0}, "edge": a, "below": {0.2, 1}}}

	s, err := NewSemanticCategorizer(context.Background(), emb, phrases, 0.25, nil)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryBills, s.Categorize(context.Background(), "edge"))
	assert.Equal(t, models.CategoryOther, s.Categorize(context.Background(), "below"))
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"length mismatch", []float32{1}, []float32{1, 0}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-6)
		})
	}
}

func TestSemanticCategorizer_ZeroVectorWithZeroThreshold(t *testing.T) {
	phrases, vectors := phraseVectors()
	vectors["nothing known"] = []float32{0, 0, 0}
	s, err := NewSemanticCategorizer(context.Background(), &MockEmbedder{Vectors: vectors}, phrases, 0, logging.NewMockLogger())
	require.NoError(t, err)

	assert.Equal(t, models.CategoryOther, s.Categorize(context.Background(), "nothing known"))
	assert.Equal(t, models.CategoryFood, s.Categorize(context.Background(), "food phrase"))
}
