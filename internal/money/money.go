// Package money holds the decimal helpers shared by totals, aggregation and imports.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits shown for monetary values.
const Places = 2

var hundred = decimal.NewFromInt(100)

// ErrInvalidAmount is returned when a string cannot be read as an amount.
var ErrInvalidAmount = errors.New("invalid amount")

// Round rounds an amount to presentation precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Format renders an amount with exactly two fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Percent returns rate percent of d, at full precision.
func Percent(d, rate decimal.Decimal) decimal.Decimal {
	return d.Mul(rate).Div(hundred)
}

// ClampRate bounds a percentage rate into [0, 100].
func ClampRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsNegative() {
		return decimal.Zero
	}

	if rate.GreaterThan(hundred) {
		return hundred
	}

	return rate
}

// Parse reads an amount written either as "1,234.56" or "1.234,56".
// Currency symbols, spaces and a leading sign are accepted.
func Parse(s string) (decimal.Decimal, error) {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			return r
		default:
			return -1
		}
	}, strings.TrimSpace(s))

	if clean == "" || clean == "-" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastComma > lastDot:
		// decimal comma: "1.234,56" or "12,5"
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	default:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return d, nil
}
