// Package dateutils provides the date layouts and parsing helpers used by the
// expense parsers.
package dateutils

import (
	"strings"
	"time"
)

// DateLayoutISO is the layout of every emitted date.
const DateLayoutISO = "2006-01-02"

// ItemizedLayouts are tried in order on dates found next to line items.
// Month comes first; one or two digit months and days are accepted.
var ItemizedLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"1/2/06",
	"1-2-06",
}

// BillLayouts are tried in order on dates found on single-total bills.
var BillLayouts = []string{
	"1/2/2006",
	"2/1/2006",
	DateLayoutISO,
	"1-2-2006",
	"2-1-2006",
	"2.1.2006",
}

// Clock returns the current time. Parsers take one so tests can pin "today".
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// Today returns the calendar date of now as midnight UTC, matching the
// values produced by ParseFirst.
func Today(now Clock) time.Time {
	if now == nil {
		now = SystemClock
	}
	t := now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseFirst parses s with each layout in order and returns the first
// success together with the layout that matched.
func ParseFirst(s string, layouts []string) (time.Time, string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, "", false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, layout, true
		}
	}
	return time.Time{}, "", false
}

// ParseOrToday parses s with the layouts and falls back to today's date.
func ParseOrToday(s string, layouts []string, now Clock) time.Time {
	if t, _, ok := ParseFirst(s, layouts); ok {
		return t
	}
	return Today(now)
}

// ToISODate formats a date as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
