// Package common provides the CSV output shared by the commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/pdf-expenses/internal/fileutils"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter is the CSV field separator used when none is configured.
const DefaultDelimiter = ','

// WriteExpenses writes expenses as CSV rows with a header to w.
func WriteExpenses(w io.Writer, expenses []models.CandidateExpense, delimiter rune) error {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	rows := make([]models.ExpenseRow, len(expenses))
	for i, e := range expenses {
		rows[i] = e.ToRow()
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteExpensesToCSV writes expenses to csvFile, creating parent directories
// as needed.
func WriteExpensesToCSV(expenses []models.CandidateExpense, csvFile string, delimiter rune, logger logging.Logger) error {
	if expenses == nil {
		return fmt.Errorf("cannot write nil expenses to CSV")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(csvFile)); err != nil {
		logger.WithError(err).Error("Failed to create directory")
		return err
	}

	file, err := os.Create(csvFile)
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := WriteExpenses(file, expenses, delimiter); err != nil {
		logger.WithError(err).Error("Failed to marshal expenses to CSV")
		return err
	}

	logger.Info("Wrote expenses to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(expenses)})
	return nil
}
