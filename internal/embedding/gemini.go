// Package embedding provides the text embedding backends used by the
// semantic categorizer.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fjacquet/pdf-expenses/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

const (
	// DefaultGeminiModel is the embedding model used when none is configured.
	DefaultGeminiModel = "text-embedding-004"

	DefaultTimeout           = 10 * time.Second
	DefaultRequestsPerMinute = 600
)

// GeminiConfig configures a GeminiEmbedder.
type GeminiConfig struct {
	APIKey            string
	Model             string
	Timeout           time.Duration
	RequestsPerMinute int
}

// GeminiEmbedder embeds text with the Gemini embedding API. Calls are rate
// limited on the client side and bounded by a per-call timeout.
type GeminiEmbedder struct {
	client  *genai.Client
	model   *genai.EmbeddingModel
	name    string
	limiter *rate.Limiter
	timeout time.Duration
	log     logging.Logger
}

// NewGeminiEmbedder creates a Gemini client. Close must be called to release
// it.
func NewGeminiEmbedder(ctx context.Context, cfg GeminiConfig, logger logging.Logger) (*GeminiEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini embedder requires an API key")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.Info("Gemini embedder initialized",
		logging.Field{Key: logging.FieldModel, Value: cfg.Model},
		logging.Field{Key: "requests_per_minute", Value: cfg.RequestsPerMinute})

	return &GeminiEmbedder{
		client:  client,
		model:   client.EmbeddingModel(cfg.Model),
		name:    cfg.Model,
		limiter: newLimiter(cfg.RequestsPerMinute),
		timeout: cfg.Timeout,
		log:     logger,
	}, nil
}

func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
}

// Embed returns the embedding of text.
func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	res, err := g.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if res == nil || res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, errors.New("gemini embed: empty embedding")
	}

	g.log.Debug("Embedded text",
		logging.Field{Key: logging.FieldModel, Value: g.name},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return res.Embedding.Values, nil
}

// Close releases the underlying client.
func (g *GeminiEmbedder) Close() error {
	return g.client.Close()
}
