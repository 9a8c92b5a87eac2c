package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money represents a monetary amount in reais with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// RoundCents rounds to two places, halves away from zero (half-up for amounts >= 0).
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FloorCents drops everything below one cent. Intended for non-negative amounts.
func FloorCents(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(2)
}

// String returns the plain two-place representation ("1234.50")
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount the way Brazilian documents print it: "R$ 1.234,56".
func (m Money) Format() string {
	return "R$ " + FormatNumber(m.Decimal, 2)
}

// FormatNumber renders d with pt-BR separators ("." thousands, "," decimals).
func FormatNumber(d decimal.Decimal, places int32) string {
	s := d.Round(places).StringFixed(places)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return b.String()
}

// FormatPercent renders a fraction (0.075) as a pt-BR percentage ("7,50%").
func FormatPercent(fraction decimal.Decimal) string {
	return FormatNumber(fraction.Mul(hundred), 2) + "%"
}
