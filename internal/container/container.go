// Package container wires the application dependencies. Components receive
// their collaborators through constructors; this is the only place that
// decides which implementations are used.
package container

import (
	"context"
	"fmt"

	"fjacquet/pdf-expenses/internal/categorizer"
	"fjacquet/pdf-expenses/internal/config"
	"fjacquet/pdf-expenses/internal/embedding"
	"fjacquet/pdf-expenses/internal/extraction"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"
	"fjacquet/pdf-expenses/internal/pdfextract"
	"fjacquet/pdf-expenses/internal/store"
)

// Container holds the wired dependencies. It is immutable after creation.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       store.PrototypeSource
	embedder    categorizer.Embedder
	categorizer categorizer.Categorizer
	extractor   pdfextract.TextExtractor
	validator   *pdfextract.StructureValidator
	pipeline    *extraction.Pipeline
	closers     []func() error
}

// NewContainer creates the logger from cfg and wires everything else.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	return NewContainerWithLogger(ctx, cfg, logger, store.NewPrototypeStore(cfg.Categorization.PrototypesFile, logger))
}

// NewContainerWithLogger wires the dependencies around an existing logger and
// prototype source.
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger logging.Logger, prototypes store.PrototypeSource) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	c := &Container{logger: logger, config: cfg, store: prototypes}

	phrases, err := prototypes.LoadPhrases()
	if err != nil {
		return nil, fmt.Errorf("failed to load prototypes: %w", err)
	}

	if err := c.initEmbedder(ctx, phrases); err != nil {
		return nil, err
	}

	semantic, err := categorizer.NewSemanticCategorizer(ctx, c.embedder, phrases, cfg.Categorization.ConfidenceThreshold, logger)
	if err != nil {
		logger.WithError(err).Warn("Semantic categorizer unavailable, using keyword categorizer")
		c.categorizer = categorizer.NewKeywordCategorizer(logger)
	} else {
		c.categorizer = semantic
	}

	c.extractor = pdfextract.NewLedongthucExtractor(cfg.PDF.MaxTextBytes, logger)
	c.validator = pdfextract.NewStructureValidator()

	pcfg := extraction.PipelineConfig{
		Extractor:   c.extractor,
		Categorizer: c.categorizer,
		Logger:      logger,
	}
	if cfg.PDF.StrictValidation {
		pcfg.Validator = c.validator
	}
	c.pipeline, err = extraction.NewPipeline(pcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	logger.Info("Container initialized",
		logging.Field{Key: "categorizer", Value: c.categorizer.Name()},
		logging.Field{Key: "strict_validation", Value: cfg.PDF.StrictValidation})
	return c, nil
}

func (c *Container) initEmbedder(ctx context.Context, phrases map[models.Category]string) error {
	if c.config.UseGemini() {
		gemini, err := embedding.NewGeminiEmbedder(ctx, embedding.GeminiConfig{
			APIKey:            c.config.Embedding.APIKey,
			Model:             c.config.Embedding.Model,
			Timeout:           c.config.EmbeddingTimeout(),
			RequestsPerMinute: c.config.Embedding.RequestsPerMinute,
		}, c.logger)
		if err == nil {
			c.embedder = gemini
			c.closers = append(c.closers, gemini.Close)
			c.logger.Info("Using Gemini embeddings", logging.Field{Key: logging.FieldProvider, Value: config.ProviderGemini})
			return nil
		}
		if c.config.Embedding.Provider == config.ProviderGemini {
			return fmt.Errorf("failed to create Gemini embedder: %w", err)
		}
		c.logger.WithError(err).Warn("Gemini embedder unavailable, using vocabulary embeddings")
	}

	list := make([]string, 0, len(phrases))
	for _, p := range phrases {
		list = append(list, p)
	}
	vocab := embedding.NewVocabularyEmbedder(list)
	c.embedder = vocab
	c.logger.Debug("Using vocabulary embeddings",
		logging.Field{Key: logging.FieldProvider, Value: config.ProviderVocabulary},
		logging.Field{Key: "dimensions", Value: vocab.Dimensions()})
	return nil
}

// GetLogger returns the application logger.
func (c *Container) GetLogger() logging.Logger { return c.logger }

// GetConfig returns the configuration the container was built from.
func (c *Container) GetConfig() *config.Config { return c.config }

// GetCategorizer returns the active categorizer.
func (c *Container) GetCategorizer() categorizer.Categorizer { return c.categorizer }

// GetExtractor returns the PDF text extractor.
func (c *Container) GetExtractor() pdfextract.TextExtractor { return c.extractor }

// GetValidator returns the PDF structure validator.
func (c *Container) GetValidator() *pdfextract.StructureValidator { return c.validator }

// GetPipeline returns the extraction pipeline.
func (c *Container) GetPipeline() *extraction.Pipeline { return c.pipeline }

// Close releases clients held by the container.
func (c *Container) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
