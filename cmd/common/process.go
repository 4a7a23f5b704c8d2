// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/pdf-expenses/internal/common"
	"fjacquet/pdf-expenses/internal/extraction"
	"fjacquet/pdf-expenses/internal/fileutils"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"
	"fjacquet/pdf-expenses/internal/pdfextract"
)

// DocumentProcessor turns one PDF document into candidate expenses.
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, doc extraction.Document, mode extraction.Mode) ([]models.CandidateExpense, error)
}

// ProcessOptions describes one extraction run.
type ProcessOptions struct {
	InputFile  string
	OutputFile string
	Mode       extraction.Mode
	Delimiter  rune
}

// ProcessFile reads a PDF, extracts its expenses and writes them as CSV to
// OutputFile, or to out when OutputFile is empty. It returns the number of
// expenses written.
func ProcessFile(ctx context.Context, p DocumentProcessor, opts ProcessOptions, out io.Writer, log logging.Logger) (int, error) {
	if opts.InputFile == "" {
		return 0, fmt.Errorf("input file is required")
	}
	if err := pdfextract.ValidateFilename(opts.InputFile); err != nil {
		return 0, err
	}

	data, err := fileutils.ReadDocument(opts.InputFile)
	if err != nil {
		return 0, fmt.Errorf("error reading input file: %w", err)
	}

	expenses, err := p.ProcessDocument(ctx, extraction.Document{Name: filepath.Base(opts.InputFile), Data: data}, opts.Mode)
	if err != nil {
		return 0, err
	}

	if opts.OutputFile == "" {
		if err := common.WriteExpenses(out, expenses, opts.Delimiter); err != nil {
			return 0, fmt.Errorf("error writing CSV: %w", err)
		}
	} else if err := common.WriteExpensesToCSV(expenses, opts.OutputFile, opts.Delimiter, log); err != nil {
		return 0, err
	}

	log.Info("Extraction completed",
		logging.Field{Key: logging.FieldFile, Value: opts.InputFile},
		logging.Field{Key: logging.FieldCount, Value: len(expenses)})
	return len(expenses), nil
}
