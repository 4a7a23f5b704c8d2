// Package batch runs extraction over a directory of PDFs and consolidates
// the results into one chronologically ordered expense list.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"fjacquet/pdf-expenses/internal/dateutils"
	"fjacquet/pdf-expenses/internal/extraction"
	"fjacquet/pdf-expenses/internal/fileutils"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"
	"fjacquet/pdf-expenses/internal/parsererror"
	"fjacquet/pdf-expenses/internal/textutils"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return dr.Start.Format(dateutils.DateLayoutISO) + "_" + dr.End.Format(dateutils.DateLayoutISO)
}

// Extend widens the range to include t.
func (dr DateRange) Extend(t time.Time) DateRange {
	if dr.Start.IsZero() || t.Before(dr.Start) {
		dr.Start = t
	}
	if dr.End.IsZero() || t.After(dr.End) {
		dr.End = t
	}
	return dr
}

// DocumentProcessor turns one PDF document into candidate expenses.
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, doc extraction.Document, mode extraction.Mode) ([]models.CandidateExpense, error)
}

// FileResult records the outcome for one input file.
type FileResult struct {
	File  string
	Count int
	Err   error
}

// Result is the consolidated outcome of a batch run.
type Result struct {
	Expenses   []models.CandidateExpense
	Files      []FileResult
	DateRange  DateRange
	Duplicates int
}

// Failed returns the number of files that produced no expenses.
func (r *Result) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Aggregator processes every PDF of a directory in turn.
type Aggregator struct {
	processor DocumentProcessor
	logger    logging.Logger
}

// NewAggregator creates a new Aggregator instance
func NewAggregator(processor DocumentProcessor, logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Aggregator{processor: processor, logger: logger}
}

// Run processes the PDFs under dir. A file that fails is recorded in the
// result and skipped; only listing errors and context cancellation abort
// the run.
func (a *Aggregator) Run(ctx context.Context, dir string, mode extraction.Mode) (*Result, error) {
	files, err := fileutils.ListFilesWithExtension(dir, ".pdf")
	if err != nil {
		return nil, err
	}
	a.logger.Info("Starting batch extraction",
		logging.Field{Key: "input_dir", Value: dir},
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: logging.FieldMode, Value: string(mode)})

	result := &Result{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch interrupted: %w", err)
		}

		expenses, err := a.processFile(ctx, file, mode)
		result.Files = append(result.Files, FileResult{File: file, Count: len(expenses), Err: err})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("batch interrupted: %w", ctxErr)
			}
			log := a.logger.WithError(err).WithField(logging.FieldFile, filepath.Base(file))
			if parsererror.IsNothingToImport(err) {
				log.Warn("Nothing to import from file")
			} else {
				log.Error("Failed to process file")
			}
			continue
		}
		result.Expenses = append(result.Expenses, expenses...)
	}

	sortChronologically(result.Expenses)
	for _, e := range result.Expenses {
		result.DateRange = result.DateRange.Extend(e.Date)
	}
	result.Duplicates = a.detectAndLogDuplicates(result.Expenses)

	a.logger.Info("Batch extraction finished",
		logging.Field{Key: "files", Value: len(files)},
		logging.Field{Key: "failed", Value: result.Failed()},
		logging.Field{Key: logging.FieldCount, Value: len(result.Expenses)})
	return result, nil
}

func (a *Aggregator) processFile(ctx context.Context, file string, mode extraction.Mode) ([]models.CandidateExpense, error) {
	data, err := fileutils.ReadDocument(file)
	if err != nil {
		return nil, parsererror.AsReadError(filepath.Base(file), err)
	}
	return a.processor.ProcessDocument(ctx, extraction.Document{Name: filepath.Base(file), Data: data}, mode)
}

// sortChronologically orders by date, then amount, then case-folded
// description, so that duplicates end up adjacent.
func sortChronologically(expenses []models.CandidateExpense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		a, b := expenses[i], expenses[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.LessThan(b.Amount)
		}
		return textutils.Fold(a.Description) < textutils.Fold(b.Description)
	})
}

// detectAndLogDuplicates warns about expenses sharing date, amount and
// description. They are kept: two documents may legitimately repeat one.
// expenses must be sorted chronologically.
func (a *Aggregator) detectAndLogDuplicates(expenses []models.CandidateExpense) int {
	count := 0
	for i := 1; i < len(expenses); i++ {
		prev, cur := expenses[i-1], expenses[i]
		if !prev.Date.Equal(cur.Date) || !prev.Amount.Equal(cur.Amount) {
			continue
		}
		if textutils.Fold(prev.Description) != textutils.Fold(cur.Description) {
			continue
		}
		count++
		a.logger.Warn("Potential duplicate expense",
			logging.Field{Key: "date", Value: cur.DateString()},
			logging.Field{Key: logging.FieldAmount, Value: cur.Amount.StringFixed(2)},
			logging.Field{Key: "description", Value: cur.Description})
	}
	return count
}

// OutputFilename names the consolidated CSV after the expense date range.
func OutputFilename(dr DateRange) string {
	if s := dr.String(); s != "" {
		return fmt.Sprintf("expenses_%s.csv", s)
	}
	return "expenses.csv"
}
