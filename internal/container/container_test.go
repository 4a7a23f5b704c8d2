package container

import (
	"context"
	"errors"
	"testing"

	"fjacquet/pdf-expenses/internal/config"
	"fjacquet/pdf-expenses/internal/extraction"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"
	"fjacquet/pdf-expenses/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.Extraction.Mode = "itemized"
	cfg.Embedding.Provider = config.ProviderAuto
	cfg.Embedding.TimeoutSeconds = 5
	cfg.Categorization.ConfidenceThreshold = 0.3
	cfg.PDF.MaxTextBytes = 4096
	return cfg
}

func TestNewContainer_NilConfig(t *testing.T) {
	_, err := NewContainer(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewContainerWithLogger_VocabularyWiring(t *testing.T) {
	logger := logging.NewMockLogger()
	c, err := NewContainerWithLogger(context.Background(), testConfig(), logger, &store.MockPrototypeStore{})
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "Semantic", c.GetCategorizer().Name())
	assert.NotNil(t, c.GetExtractor())
	assert.NotNil(t, c.GetValidator())
	assert.Same(t, logger, c.GetLogger())

	var dims interface{}
	for _, e := range logger.EntriesByLevel("DEBUG") {
		if e.Message == "Using vocabulary embeddings" {
			dims, _ = e.FieldValue("dimensions")
		}
	}
	require.IsType(t, 0, dims)
	assert.Greater(t, dims.(int), 0)

	got := c.GetCategorizer().Categorize(context.Background(), "Uber ride to airport")
	assert.Equal(t, models.CategoryTransportation, got)

	expenses, err := c.GetPipeline().ProcessText(context.Background(), "42.50 Joe's Diner 03/14/2024", extraction.ModeItemized)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Joe's Diner", expenses[0].Description)
}

func TestNewContainerWithLogger_PrototypeError(t *testing.T) {
	_, err := NewContainerWithLogger(context.Background(), testConfig(), logging.NewMockLogger(),
		&store.MockPrototypeStore{Err: errors.New("bad yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad yaml")
}

func TestNewContainerWithLogger_StrictValidation(t *testing.T) {
	cfg := testConfig()
	cfg.PDF.StrictValidation = true
	c, err := NewContainerWithLogger(context.Background(), cfg, logging.NewMockLogger(), &store.MockPrototypeStore{})
	require.NoError(t, err)

	_, err = c.GetPipeline().ProcessDocument(context.Background(),
		extraction.Document{Name: "x.pdf", Data: []byte("not a pdf")}, extraction.ModeBill)
	assert.Error(t, err)
	assert.NoError(t, c.Close())
}
