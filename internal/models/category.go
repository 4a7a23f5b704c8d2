// Package models provides the data structures used throughout the application.
package models

import "strings"

// Category is one of the ten fixed expense labels. The zero value is not a
// valid category; use ParseCategory to obtain one from free text.
type Category string

// Expense categories in enumeration order. Categorizers that break ties rely
// on this order.
const (
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryShopping       Category = "shopping"
	CategoryEntertainment  Category = "entertainment"
	CategoryBills          Category = "bills"
	CategoryHealthcare     Category = "healthcare"
	CategoryEducation      Category = "education"
	CategoryTravel         Category = "travel"
	CategoryGroceries      Category = "groceries"
	CategoryOther          Category = "other"
)

var allCategories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBills,
	CategoryHealthcare,
	CategoryEducation,
	CategoryTravel,
	CategoryGroceries,
	CategoryOther,
}

var displayNames = map[Category]string{
	CategoryFood:           "Food & Dining",
	CategoryTransportation: "Transportation",
	CategoryShopping:       "Shopping",
	CategoryEntertainment:  "Entertainment",
	CategoryBills:          "Bills & Utilities",
	CategoryHealthcare:     "Healthcare",
	CategoryEducation:      "Education",
	CategoryTravel:         "Travel",
	CategoryGroceries:      "Groceries",
	CategoryOther:          "Other",
}

// AllCategories returns the ten categories in enumeration order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory maps free text (for example a model output) onto a Category.
// Anything that is not one of the ten labels becomes CategoryOther.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.IsValid() {
		return c
	}
	return CategoryOther
}

// IsValid reports whether c is one of the ten labels.
func (c Category) IsValid() bool {
	_, ok := displayNames[c]
	return ok
}

// DisplayName returns the human readable label, e.g. "Bills & Utilities".
func (c Category) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return displayNames[CategoryOther]
}

func (c Category) String() string {
	return string(c)
}
