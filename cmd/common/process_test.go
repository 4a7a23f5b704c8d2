package common_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/pdf-expenses/cmd/common"
	"fjacquet/pdf-expenses/internal/extraction"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"
	"fjacquet/pdf-expenses/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) ProcessDocument(ctx context.Context, doc extraction.Document, mode extraction.Mode) ([]models.CandidateExpense, error) {
	args := m.Called(ctx, doc, mode)
	expenses, _ := args.Get(0).([]models.CandidateExpense)
	return expenses, args.Error(1)
}

func writePDF(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0600))
	return path
}

func sampleExpenses() []models.CandidateExpense {
	return []models.CandidateExpense{{
		Amount:      decimal.RequireFromString("42.50"),
		Description: "Joe's Diner",
		Date:        time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		Category:    models.CategoryFood,
		FromPDF:     true,
	}}
}

func TestProcessFile_Stdout(t *testing.T) {
	input := writePDF(t, "statement.pdf")
	p := new(MockProcessor)
	p.On("ProcessDocument", mock.Anything, mock.MatchedBy(func(doc extraction.Document) bool {
		return doc.Name == "statement.pdf" && string(doc.Data) == "%PDF-1.4 test"
	}), extraction.ModeItemized).Return(sampleExpenses(), nil)

	var out bytes.Buffer
	n, err := common.ProcessFile(context.Background(), p, common.ProcessOptions{
		InputFile: input,
		Mode:      extraction.ModeItemized,
		Delimiter: ',',
	}, &out, logging.NewMockLogger())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, out.String(), "42.50,Joe's Diner,2024-03-14,food,Food & Dining,true")
	p.AssertExpectations(t)
}

func TestProcessFile_OutputFile(t *testing.T) {
	input := writePDF(t, "bill.pdf")
	output := filepath.Join(t.TempDir(), "out", "expenses.csv")
	p := new(MockProcessor)
	p.On("ProcessDocument", mock.Anything, mock.Anything, extraction.ModeBill).Return(sampleExpenses(), nil)

	logger := logging.NewMockLogger()
	n, err := common.ProcessFile(context.Background(), p, common.ProcessOptions{
		InputFile:  input,
		OutputFile: output,
		Mode:       extraction.ModeBill,
		Delimiter:  ';',
	}, nil, logger)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "42.50;Joe's Diner;2024-03-14;food;Food & Dining;true", lines[1])
	assert.True(t, logger.HasEntry("INFO", "Extraction completed"))
}

func TestProcessFile_Errors(t *testing.T) {
	nothing := &parsererror.NoExpensesFoundError{Source: "statement.pdf"}

	tests := []struct {
		name    string
		input   func(t *testing.T) string
		procErr error
		wantErr func(t *testing.T, err error)
	}{
		{
			name:  "missing input",
			input: func(t *testing.T) string { return "" },
			wantErr: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "input file is required")
			},
		},
		{
			name:  "not a pdf",
			input: func(t *testing.T) string { return "statement.txt" },
			wantErr: func(t *testing.T, err error) {
				var target *parsererror.InvalidFormatError
				assert.ErrorAs(t, err, &target)
			},
		},
		{
			name:  "unreadable file",
			input: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.pdf") },
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, os.ErrNotExist)
			},
		},
		{
			name:    "nothing to import",
			input:   func(t *testing.T) string { return writePDF(t, "statement.pdf") },
			procErr: nothing,
			wantErr: func(t *testing.T, err error) {
				assert.True(t, parsererror.IsNothingToImport(err))
			},
		},
		{
			name:    "processing failure",
			input:   func(t *testing.T) string { return writePDF(t, "statement.pdf") },
			procErr: errors.New("boom"),
			wantErr: func(t *testing.T, err error) {
				assert.EqualError(t, err, "boom")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := new(MockProcessor)
			p.On("ProcessDocument", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.procErr)

			var out bytes.Buffer
			n, err := common.ProcessFile(context.Background(), p, common.ProcessOptions{
				InputFile: tt.input(t),
				Mode:      extraction.ModeItemized,
				Delimiter: ',',
			}, &out, logging.NewMockLogger())

			require.Error(t, err)
			assert.Zero(t, n)
			assert.Empty(t, out.String())
			tt.wantErr(t, err)
		})
	}
}
