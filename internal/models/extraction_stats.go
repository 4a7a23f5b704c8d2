package models

import (
	"sort"

	"fjacquet/pdf-expenses/internal/logging"
)

// ExtractionStats tracks how many candidates a parsing run accepted and why
// the others were skipped.
type ExtractionStats struct {
	LinesScanned int
	Accepted     int
	Duplicates   int
	Truncated    int
	Rejected     map[string]int
}

// NewExtractionStats creates an empty ExtractionStats.
func NewExtractionStats() *ExtractionStats {
	return &ExtractionStats{Rejected: make(map[string]int)}
}

// Reject records one skipped candidate for the given reason.
func (s *ExtractionStats) Reject(reason string) {
	if s.Rejected == nil {
		s.Rejected = make(map[string]int)
	}
	s.Rejected[reason]++
}

// TotalRejected returns the number of skipped candidates over all reasons.
func (s *ExtractionStats) TotalRejected() int {
	n := 0
	for _, c := range s.Rejected {
		n += c
	}
	return n
}

// LogSummary logs the statistics at debug level. Skipped candidates are
// expected and are never reported as errors.
func (s *ExtractionStats) LogSummary(logger logging.Logger, mode string) {
	if logger == nil {
		return
	}

	reasons := make([]string, 0, len(s.Rejected))
	for r := range s.Rejected {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)

	fields := []logging.Field{
		{Key: logging.FieldMode, Value: mode},
		{Key: "lines_scanned", Value: s.LinesScanned},
		{Key: "accepted", Value: s.Accepted},
		{Key: "duplicates", Value: s.Duplicates},
		{Key: "truncated", Value: s.Truncated},
		{Key: "rejected", Value: s.TotalRejected()},
	}
	for _, r := range reasons {
		fields = append(fields, logging.Field{Key: "rejected_" + r, Value: s.Rejected[r]})
	}
	logger.Debug("Extraction summary", fields...)
}
