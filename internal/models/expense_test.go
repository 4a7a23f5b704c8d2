package models

import (
	"testing"
	"time"

	"fjacquet/pdf-expenses/internal/dateutils"

	"github.com/stretchr/testify/assert"
)

func TestCandidateExpense_DateString(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"padded month and day", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), "2024-03-05"},
		{"time of day dropped", time.Date(2023, time.December, 31, 23, 59, 0, 0, time.UTC), "2023-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := CandidateExpense{Date: tt.date}
			assert.Equal(t, tt.want, e.DateString())
			assert.Equal(t, tt.date.Format(dateutils.DateLayoutISO), e.DateString())
		})
	}
}
