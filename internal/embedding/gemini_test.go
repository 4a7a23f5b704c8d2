package embedding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestNewGeminiEmbedder_RequiresKey(t *testing.T) {
	_, err := NewGeminiEmbedder(context.Background(), GeminiConfig{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestNewLimiter(t *testing.T) {
	assert.Equal(t, rate.Inf, newLimiter(0).Limit())

	l := newLimiter(60)
	assert.InDelta(t, 1.0, float64(l.Limit()), 1e-9)
	assert.Equal(t, 1, l.Burst())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.NoError(t, l.Wait(ctx))
	assert.Error(t, l.Wait(ctx), "second token is a second away")
}
