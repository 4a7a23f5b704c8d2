package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"fjacquet/pdf-expenses/internal/currencyutils"
	"fjacquet/pdf-expenses/internal/dateutils"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"
	"fjacquet/pdf-expenses/internal/textutils"

	"github.com/shopspring/decimal"
)

// RejectReason names why a matched candidate was skipped.
type RejectReason string

const (
	ReasonAmountFormat      RejectReason = "amount_format"
	ReasonAmountRange       RejectReason = "amount_range"
	ReasonDescriptionLength RejectReason = "description_length"
)

const (
	minLineLength        = 5
	minDescriptionLength = 3
	maxDescriptionLength = 100
)

var (
	maxItemizedAmount = decimal.NewFromInt(10000)
)

// lineTemplate is one field ordering recognized on a statement line.
type lineTemplate struct {
	name string
	re   *regexp.Regexp
}

// Templates are tried in order; the first one producing a valid candidate
// owns the line.
var itemizedTemplates = []lineTemplate{
	{"amount_description_date", regexp.MustCompile(`(\$?\d+\.?\d*)\s+([A-Za-z\s&\-']+)\s+(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`)},
	{"date_description_amount", regexp.MustCompile(`(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})\s+([A-Za-z\s&\-']+)\s+\$?(\d+\.?\d*)`)},
	{"description_amount", regexp.MustCompile(`([A-Za-z\s&\-']{3,})\s+\$(\d+\.?\d*)`)},
	{"amount_description", regexp.MustCompile(`(\d+\.?\d*)\s+([A-Za-z\s&\-']{3,})`)},
}

// candidateResult is the outcome of validating one regex match. A non-empty
// reason means the candidate is skipped.
type candidateResult struct {
	expense models.CandidateExpense
	reason  RejectReason
}

func (r candidateResult) ok() bool {
	return r.reason == ""
}

// ItemizedParser extracts line-item expenses from statement text.
type ItemizedParser struct {
	opts parserOptions
}

// NewItemizedParser creates an ItemizedParser.
func NewItemizedParser(opts ...Option) *ItemizedParser {
	return &ItemizedParser{opts: buildOptions(opts)}
}

// Parse returns the deduplicated line items of text in document order, at
// most MaxItemizedExpenses of them. Every returned expense has category
// "other"; categorization is left to the caller. An empty result means
// nothing was extractable.
func (p *ItemizedParser) Parse(text string) []models.CandidateExpense {
	stats := models.NewExtractionStats()
	var found []models.CandidateExpense

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || utf8.RuneCountInString(line) < minLineLength {
			continue
		}
		stats.LinesScanned++
		found = append(found, p.parseLine(line, stats)...)
	}

	unique := Deduplicate(found)
	stats.Duplicates = len(found) - len(unique)
	if len(unique) > MaxItemizedExpenses {
		stats.Truncated = len(unique) - MaxItemizedExpenses
		unique = unique[:MaxItemizedExpenses]
	}
	stats.Accepted = len(unique)
	stats.LogSummary(p.opts.logger, string(ModeItemized))

	return unique
}

func (p *ItemizedParser) parseLine(line string, stats *models.ExtractionStats) []models.CandidateExpense {
	for _, tmpl := range itemizedTemplates {
		matches := tmpl.re.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}

		var accepted []models.CandidateExpense
		for _, m := range matches {
			res := p.buildCandidate(m[1:])
			if !res.ok() {
				stats.Reject(string(res.reason))
				p.opts.logger.Debug("Skipping candidate",
					logging.Field{Key: logging.FieldReason, Value: string(res.reason)},
					logging.Field{Key: logging.FieldLine, Value: line},
					logging.Field{Key: "template", Value: tmpl.name})
				continue
			}
			accepted = append(accepted, res.expense)
		}
		if len(accepted) > 0 {
			return accepted
		}
	}
	return nil
}

// buildCandidate assigns the captured groups to fields and validates them.
func (p *ItemizedParser) buildCandidate(groups []string) candidateResult {
	var amountStr, description, dateStr string

	switch len(groups) {
	case 3:
		if strings.ContainsAny(groups[0], "$.") {
			amountStr, description, dateStr = groups[0], groups[1], groups[2]
		} else {
			dateStr, description, amountStr = groups[0], groups[1], groups[2]
		}
	case 2:
		if strings.Contains(groups[0], ".") || isAllDigits(groups[0]) {
			amountStr, description = groups[0], groups[1]
		} else {
			description, amountStr = groups[0], groups[1]
		}
	default:
		return candidateResult{reason: ReasonAmountFormat}
	}

	amount, reason := parseItemAmount(amountStr)
	if reason != "" {
		return candidateResult{reason: reason}
	}

	desc := textutils.CleanDescription(description)
	if n := utf8.RuneCountInString(desc); n < minDescriptionLength || n > maxDescriptionLength {
		return candidateResult{reason: ReasonDescriptionLength}
	}

	return candidateResult{expense: models.CandidateExpense{
		Amount:      amount,
		Description: desc,
		Date:        dateutils.ParseOrToday(dateStr, dateutils.ItemizedLayouts, p.opts.now),
		Category:    models.CategoryOther,
	}}
}

func parseItemAmount(s string) (decimal.Decimal, RejectReason) {
	amount, err := currencyutils.ParseAmount(s)
	if err != nil {
		return decimal.Zero, ReasonAmountFormat
	}
	if !currencyutils.InRange(amount, decimal.Zero, maxItemizedAmount, false) {
		return decimal.Zero, ReasonAmountRange
	}
	return amount, ""
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
