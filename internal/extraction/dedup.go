package extraction

import (
	"fjacquet/pdf-expenses/internal/models"
	"fjacquet/pdf-expenses/internal/textutils"

	"github.com/shopspring/decimal"
)

// MaxItemizedExpenses caps the number of line items returned per document.
const MaxItemizedExpenses = 20

const duplicateSimilarity = 0.8

var duplicateAmountTolerance = decimal.RequireFromString("0.01")

// Deduplicate drops every expense that has an earlier kept expense with an
// amount closer than one cent and a description word-set Jaccard similarity
// above 0.8. Order is preserved and the function is idempotent.
func Deduplicate(expenses []models.CandidateExpense) []models.CandidateExpense {
	kept := make([]models.CandidateExpense, 0, len(expenses))
	for _, e := range expenses {
		dup := false
		for _, k := range kept {
			if isDuplicate(k, e) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, e)
		}
	}
	return kept
}

func isDuplicate(a, b models.CandidateExpense) bool {
	if !a.Amount.Sub(b.Amount).Abs().LessThan(duplicateAmountTolerance) {
		return false
	}
	return textutils.Jaccard(a.Description, b.Description) > duplicateSimilarity
}
