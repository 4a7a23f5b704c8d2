package models

import (
	"testing"

	"fjacquet/pdf-expenses/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionStats(t *testing.T) {
	s := NewExtractionStats()
	s.Reject("amount_range")
	s.Reject("amount_range")
	s.Reject("description_length")
	s.Accepted = 4
	assert.Equal(t, 3, s.TotalRejected())

	var zero ExtractionStats
	zero.Reject("amount_format")
	assert.Equal(t, 1, zero.TotalRejected())
}

func TestExtractionStats_LogSummary(t *testing.T) {
	s := NewExtractionStats()
	s.LinesScanned = 7
	s.Reject("amount_range")

	logger := logging.NewMockLogger()
	s.LogSummary(logger, "itemized")

	entries := logger.EntriesByLevel("DEBUG")
	require.Len(t, entries, 1)
	v, ok := entries[0].FieldValue("rejected_amount_range")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	total, ok := entries[0].FieldValue("rejected")
	assert.True(t, ok)
	assert.Equal(t, 1, total)
	assert.Empty(t, logger.EntriesByLevel("ERROR"))

	assert.NotPanics(t, func() { s.LogSummary(nil, "bill") })
}
