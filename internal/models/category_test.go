package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllCategories_Order(t *testing.T) {
	cats := AllCategories()
	require.Len(t, cats, 10)
	assert.Equal(t, CategoryFood, cats[0])
	assert.Equal(t, CategoryOther, cats[9])

	cats[0] = "mutated"
	assert.Equal(t, CategoryFood, AllCategories()[0])
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"food", CategoryFood},
		{"  Groceries \n", CategoryGroceries},
		{"BILLS", CategoryBills},
		{"utilities", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategory(tt.in))
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Food & Dining", CategoryFood.DisplayName())
	assert.Equal(t, "Bills & Utilities", CategoryBills.DisplayName())
	assert.Equal(t, "Other", Category("bogus").DisplayName())
	for _, c := range AllCategories() {
		assert.True(t, c.IsValid())
		assert.NotEmpty(t, c.DisplayName())
	}
}

func TestDefaultPrototypePhrases(t *testing.T) {
	phrases := DefaultPrototypePhrases()
	assert.Len(t, phrases, 10)
	for _, c := range AllCategories() {
		assert.NotEmpty(t, phrases[c], "missing phrase for %s", c)
	}
	phrases[CategoryFood] = "changed"
	assert.NotEqual(t, "changed", DefaultPrototypePhrases()[CategoryFood])
}

func TestCandidateExpense_ToRow(t *testing.T) {
	e := CandidateExpense{
		Amount:      decimal.RequireFromString("12.5"),
		Description: "Coffee Shop",
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Category:    CategoryFood,
		FromPDF:     true,
	}
	row := e.ToRow()
	assert.Equal(t, "12.50", row.Amount)
	assert.Equal(t, "2024-03-15", row.Date)
	assert.Equal(t, "food", row.Category)
	assert.Equal(t, "Food & Dining", row.CategoryName)
	assert.True(t, row.FromPDF)
}
