package extraction

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"fjacquet/pdf-expenses/internal/currencyutils"
	"fjacquet/pdf-expenses/internal/dateutils"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"
	"fjacquet/pdf-expenses/internal/textutils"

	"github.com/shopspring/decimal"
)

// Confidence weights for a total-like line.
const (
	keywordBonus     = 10
	positionBonus    = 5
	twoDecimalsBonus = 3
)

const (
	// DefaultBillDescription is used when no better description is found.
	DefaultBillDescription = "Bill Payment"

	descriptionScanLines    = 10
	minHeaderLineLength     = 5
	maxBillDescriptionChars = 50
)

var (
	minBillAmount = decimal.NewFromInt(1)
	maxBillAmount = decimal.NewFromInt(100000)
)

const (
	amountToken    = `(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)`
	twoDecimalNum  = `(\d{1,3}(?:,\d{3})+\.\d{2}|\d+\.\d{2})`
	currencyMarker = `[$₹]?`
	dateToken      = `(\d{1,4}[/\-.]\d{1,2}[/\-.]\d{1,4})`
)

// totalKeywords are the phrases that earn the keyword bonus, most specific
// first.
var totalKeywords = []string{"grand total", "amount due", "final amount", "net amount", "balance due", "total"}

var totalKeywordSet = newKeywordSet(totalKeywords...)

type totalTemplate struct {
	re *regexp.Regexp
	// mention, when set, must also match somewhere on the line.
	mention *regexp.Regexp
}

var totalTemplates = buildTotalTemplates()

func buildTotalTemplates() []totalTemplate {
	templates := make([]totalTemplate, 0, len(totalKeywords)+2)
	for _, kw := range totalKeywords {
		templates = append(templates, totalTemplate{
			re: regexp.MustCompile(regexp.QuoteMeta(kw) + `[:\s]*` + currencyMarker + `\s*` + amountToken),
		})
	}
	templates = append(templates,
		totalTemplate{re: regexp.MustCompile(`(?:total|amount)[^\d]*` + twoDecimalNum + `\s*$`)},
		totalTemplate{
			re:      regexp.MustCompile(`(?:^|[\s:$₹])` + twoDecimalNum + `\s*$`),
			mention: regexp.MustCompile(`total|amount`),
		},
	)
	return templates
}

var (
	anyAmountRe  = regexp.MustCompile(currencyMarker + `\s*` + amountToken)
	twoDecimalRe = regexp.MustCompile(`\.\d{2}$`)
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`invoice date:\s*` + dateToken),
		regexp.MustCompile(`bill date:\s*` + dateToken),
		regexp.MustCompile(`date:\s*` + dateToken),
		regexp.MustCompile(dateToken),
	}
)

var descriptionRules = []keywordRule[string]{
	{newKeywordSet("hotel", "room", "stay"), "Hotel Bill"},
	{newKeywordSet("restaurant", "food", "dining"), "Restaurant Bill"},
	{newKeywordSet("electricity", "water", "gas"), "Utility Bill"},
	{newKeywordSet("phone", "mobile", "internet"), "Telecom Bill"},
	{newKeywordSet("medical", "hospital", "doctor"), "Medical Bill"},
	{newKeywordSet("shopping", "store", "retail"), "Shopping Bill"},
}

var categoryRules = []keywordRule[models.Category]{
	{newKeywordSet("hotel", "room", "stay", "booking"), models.CategoryTravel},
	{newKeywordSet("restaurant", "meal", "dining", "cafe", "bar"), models.CategoryFood},
	{newKeywordSet("electricity", "water", "gas", "utility", "power"), models.CategoryBills},
	{newKeywordSet("phone", "mobile", "internet", "telecom", "broadband"), models.CategoryBills},
	{newKeywordSet("medical", "hospital", "doctor", "pharmacy"), models.CategoryHealthcare},
	{newKeywordSet("shopping", "store", "retail", "purchase"), models.CategoryShopping},
	{newKeywordSet("taxi", "uber", "transport", "fuel", "gas"), models.CategoryTransportation},
}

// BillTotalParser extracts the single grand total of an invoice or receipt.
type BillTotalParser struct {
	opts parserOptions
}

// NewBillTotalParser creates a BillTotalParser.
func NewBillTotalParser(opts ...Option) *BillTotalParser {
	return &BillTotalParser{opts: buildOptions(opts)}
}

// ParseTotal returns zero or one expense holding the document total.
func (p *BillTotalParser) ParseTotal(text string) []models.CandidateExpense {
	folded := textutils.Fold(text)
	candidates := p.Candidates(text)

	if len(candidates) == 0 {
		amount, ok := largestAmount(folded)
		if !ok {
			p.opts.logger.Debug("No amount in range found for bill total")
			return nil
		}
		p.opts.logger.Debug("No total keyword found, using largest amount",
			logging.Field{Key: logging.FieldAmount, Value: amount.String()})
		return []models.CandidateExpense{{
			Amount:      amount,
			Description: DefaultBillDescription,
			Date:        dateutils.Today(p.opts.now),
			Category:    models.CategoryBills,
		}}
	}

	best := candidates[0]
	p.opts.logger.Debug("Selected bill total",
		logging.Field{Key: logging.FieldAmount, Value: best.Amount.String()},
		logging.Field{Key: logging.FieldScore, Value: best.Confidence},
		logging.Field{Key: logging.FieldCount, Value: len(candidates)})

	return []models.CandidateExpense{{
		Amount:      best.Amount,
		Description: inferBillDescription(text, folded),
		Date:        p.inferBillDate(folded),
		Category:    inferBillCategory(folded),
	}}
}

// Candidates returns every scored total-like line, highest confidence first.
// Lines with equal confidence keep document order.
func (p *BillTotalParser) Candidates(text string) []models.TotalCandidate {
	var out []models.TotalCandidate
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(textutils.Fold(raw))
		if line == "" {
			continue
		}
		token, amount, ok := matchTotalLine(line)
		if !ok {
			continue
		}
		out = append(out, models.TotalCandidate{
			Amount:     amount,
			SourceLine: line,
			Confidence: scoreTotalLine(line, token),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// matchTotalLine returns the number captured by the first template whose
// match is an acceptable bill amount. A template capturing an out-of-range
// number does not stop the later ones.
func matchTotalLine(line string) (string, decimal.Decimal, bool) {
	for _, t := range totalTemplates {
		if t.mention != nil && !t.mention.MatchString(line) {
			continue
		}
		m := t.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if amount, ok := parseBillAmount(m[1]); ok {
			return m[1], amount, true
		}
	}
	return "", decimal.Zero, false
}

// scoreTotalLine adds the keyword, position and two-decimal bonuses. The
// position bonus applies to every line.
func scoreTotalLine(line, token string) int {
	score := keywordBonus*totalKeywordSet.count(line) + positionBonus
	if twoDecimalRe.MatchString(token) {
		score += twoDecimalsBonus
	}
	return score
}

func parseBillAmount(token string) (decimal.Decimal, bool) {
	amount, err := currencyutils.ParseAmount(token)
	if err != nil {
		return decimal.Zero, false
	}
	if !currencyutils.InRange(amount, minBillAmount, maxBillAmount, true) {
		return decimal.Zero, false
	}
	return amount, true
}

func largestAmount(folded string) (decimal.Decimal, bool) {
	var best decimal.Decimal
	found := false
	for _, m := range anyAmountRe.FindAllStringSubmatch(folded, -1) {
		amount, ok := parseBillAmount(m[1])
		if !ok {
			continue
		}
		if !found || amount.GreaterThan(best) {
			best, found = amount, true
		}
	}
	return best, found
}

// inferBillDescription uses the first header-like line among the first ten
// lines, or a label derived from keywords in the document.
func inferBillDescription(text, folded string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > descriptionScanLines {
		lines = lines[:descriptionScanLines]
	}
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if utf8.RuneCountInString(line) < minHeaderLineLength {
			continue
		}
		first, _ := utf8.DecodeRuneInString(line)
		if unicode.IsDigit(first) {
			continue
		}
		cleaned := textutils.CleanDescription(line)
		if n := utf8.RuneCountInString(cleaned); n >= minDescriptionLength && n <= maxBillDescriptionChars {
			return "Bill from " + cleaned
		}
		break
	}
	return firstRule(descriptionRules, folded, DefaultBillDescription)
}

func (p *BillTotalParser) inferBillDate(folded string) time.Time {
	for _, re := range datePatterns {
		for _, m := range re.FindAllStringSubmatch(folded, -1) {
			if t, _, ok := dateutils.ParseFirst(m[1], dateutils.BillLayouts); ok {
				return t
			}
		}
	}
	return dateutils.Today(p.opts.now)
}

func inferBillCategory(folded string) models.Category {
	return firstRule(categoryRules, folded, models.CategoryBills)
}
