// Package currencyutils parses the monetary amounts found in statement text.
package currencyutils

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var symbolStripper = strings.NewReplacer("$", "", "₹", "", ",", "")

// ParseAmount parses a US-formatted amount such as "$1,234.56" or "₹ 99".
// Currency symbols, thousands separators and whitespace are ignored.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount %q", amountStr)
	}
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount strips everything decimal.NewFromString cannot read.
func StandardizeAmount(amountStr string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, symbolStripper.Replace(amountStr))
}

// InRange reports whether lo < amount <= hi, or lo <= amount <= hi when
// inclusive is set.
func InRange(amount, lo, hi decimal.Decimal, inclusive bool) bool {
	if amount.GreaterThan(hi) {
		return false
	}
	if inclusive {
		return amount.GreaterThanOrEqual(lo)
	}
	return amount.GreaterThan(lo)
}
