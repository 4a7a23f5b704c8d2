package models

import (
	"time"

	"fjacquet/pdf-expenses/internal/dateutils"

	"github.com/shopspring/decimal"
)

// CandidateExpense is an expense recovered from document text. It is handed
// to the caller for persistence; nothing in this module stores it.
type CandidateExpense struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	Category    Category
	FromPDF     bool
}

// DateString returns the expense date as an ISO calendar date.
func (e CandidateExpense) DateString() string {
	return dateutils.ToISODate(e.Date)
}

// TotalCandidate is a scored line that may hold a bill's grand total.
type TotalCandidate struct {
	Amount     decimal.Decimal
	SourceLine string
	Confidence int
}

// ExpenseRow is the CSV projection of a CandidateExpense.
type ExpenseRow struct {
	Amount       string `csv:"amount"`
	Description  string `csv:"description"`
	Date         string `csv:"date"`
	Category     string `csv:"category"`
	CategoryName string `csv:"category_name"`
	FromPDF      bool   `csv:"is_from_pdf"`
}

// ToRow converts the expense to its CSV row.
func (e CandidateExpense) ToRow() ExpenseRow {
	return ExpenseRow{
		Amount:       e.Amount.StringFixed(2),
		Description:  e.Description,
		Date:         e.DateString(),
		Category:     e.Category.String(),
		CategoryName: e.Category.DisplayName(),
		FromPDF:      e.FromPDF,
	}
}
