package output

import (
	"strconv"

	fdec "github.com/contabilizei/fiscal-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as BRL ("R$ 1.234,56").
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return fdec.NewMoneyFromDecimal(amount).Format() }

// FormatPercentage formats a fraction as a pt-BR percentage ("7,50%").
func FormatPercentage(fraction decimal.Decimal) string { return fdec.FormatPercent(fraction) }

func intToString(i int) string { return strconv.Itoa(i) }
