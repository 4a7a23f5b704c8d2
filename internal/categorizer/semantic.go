package categorizer

import (
	"context"
	"fmt"
	"math"
	"strings"

	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"
	"fjacquet/pdf-expenses/internal/parsererror"
)

// SemanticCategorizer picks the category whose prototype phrase embedding is
// most similar to the description embedding. The prototype table is built
// once by the constructor and never mutated, so a value is safe for
// concurrent use.
type SemanticCategorizer struct {
	embedder   Embedder
	prototypes []models.CategoryPrototype
	threshold  float64
	log        logging.Logger
}

// NewSemanticCategorizer embeds every prototype phrase. Prototypes are
// ordered by category enumeration order regardless of input order. It fails
// if any phrase cannot be embedded.
func NewSemanticCategorizer(ctx context.Context, embedder Embedder, phrases map[models.Category]string, threshold float64, logger logging.Logger) (*SemanticCategorizer, error) {
	if embedder == nil {
		return nil, fmt.Errorf("semantic categorizer requires an embedder")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	if len(phrases) == 0 {
		phrases = models.DefaultPrototypePhrases()
	}

	prototypes := make([]models.CategoryPrototype, 0, len(phrases))
	for _, cat := range models.AllCategories() {
		phrase, ok := phrases[cat]
		if !ok || strings.TrimSpace(phrase) == "" {
			continue
		}
		vec, err := embedder.Embed(ctx, phrase)
		if err != nil {
			return nil, &parsererror.CategorizationError{Backend: "semantic", Input: phrase, Err: err}
		}
		prototypes = append(prototypes, models.CategoryPrototype{
			Category:  cat,
			Phrase:    phrase,
			Embedding: vec,
		})
	}

	logger.Info("Semantic prototypes initialized",
		logging.Field{Key: logging.FieldCount, Value: len(prototypes)})

	return &SemanticCategorizer{
		embedder:   embedder,
		prototypes: prototypes,
		threshold:  threshold,
		log:        logger,
	}, nil
}

func (s *SemanticCategorizer) Name() string {
	return "Semantic"
}

// Prototypes returns a copy of the prototype table in enumeration order.
func (s *SemanticCategorizer) Prototypes() []models.CategoryPrototype {
	out := make([]models.CategoryPrototype, len(s.prototypes))
	copy(out, s.prototypes)
	return out
}

// Categorize returns the best matching category, or "other" when the best
// similarity is below the threshold or the description cannot be embedded.
// Ties keep the earlier category.
func (s *SemanticCategorizer) Categorize(ctx context.Context, description string) models.Category {
	if strings.TrimSpace(description) == "" {
		return models.CategoryOther
	}

	vec, err := s.embedder.Embed(ctx, description)
	if err != nil {
		s.log.WithError(err).Warn("Failed to embed description, using other")
		return models.CategoryOther
	}
	if isZero(vec) {
		return models.CategoryOther
	}

	best := models.CategoryOther
	bestScore := math.Inf(-1)
	for _, p := range s.prototypes {
		score := CosineSimilarity(vec, p.Embedding)
		if score > bestScore {
			best, bestScore = p.Category, score
		}
	}

	if bestScore < s.threshold {
		return models.CategoryOther
	}

	s.log.Debug("Semantic match found",
		logging.Field{Key: logging.FieldCategory, Value: string(best)},
		logging.Field{Key: logging.FieldScore, Value: bestScore})
	return best
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0 when
// the lengths differ or either vector is zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func isZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
