// Package categorizer assigns one of the fixed expense categories to a line
// item description.
package categorizer

import (
	"context"

	"fjacquet/pdf-expenses/internal/models"
)

// Categorizer maps a description to a category. Implementations never fail;
// anything they cannot place is categorized as "other".
type Categorizer interface {
	Categorize(ctx context.Context, description string) models.Category

	// Name identifies the categorizer in logs.
	Name() string
}

// Embedder turns text into a fixed-length vector. The same embedder must be
// used for prototypes and descriptions.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// DefaultThreshold is the minimum cosine similarity needed to commit to a
// category other than "other".
const DefaultThreshold = 0.3
