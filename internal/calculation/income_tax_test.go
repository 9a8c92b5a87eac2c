package calculation

import (
	"errors"
	"testing"

	"github.com/contabilizei/fiscal-calculator/internal/config"
	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeBracketTax(t *testing.T) {
	brackets := config.DefaultIncomeTaxBrackets()

	tests := []struct {
		name          string
		taxable       string
		exempt        string
		deductions    string
		expectedBase  string
		expectedTax   string
		expectedIndex int
	}{
		{"exempt range", "2000", "0", "0", "2000", "0", 0},
		{"exact exemption limit", "2259.20", "0", "0", "2259.20", "0", 0},
		{"second bracket", "2500", "0", "0", "2500", "18.06", 1},
		{"third bracket", "3000", "0", "0", "3000", "68.56", 2},
		{"deductions move base down a bracket", "5000", "1200", "1100", "3900", "214.73", 3},
		{"top bracket", "10000", "0", "0", "10000", "1854.00", 4},
		{"deductions above income", "1500", "0", "2000", "0", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeBracketTax(d(tt.taxable), d(tt.exempt), d(tt.deductions), brackets)
			require.NoError(t, err)

			assert.True(t, result.TaxableBase.Equal(d(tt.expectedBase)),
				"Expected base %s, got %s", tt.expectedBase, result.TaxableBase)
			assert.True(t, result.TaxDue.Equal(d(tt.expectedTax)),
				"Expected tax %s, got %s", tt.expectedTax, result.TaxDue)
			assert.Equal(t, tt.expectedIndex, result.BracketIndex)
		})
	}
}

func TestComputeBracketTax_ExampleScenario(t *testing.T) {
	result, err := ComputeBracketTax(d("5000"), d("1200"), d("1100"), config.DefaultIncomeTaxBrackets())
	require.NoError(t, err)

	assert.Equal(t, "3900", result.TaxableBase.String())
	assert.Equal(t, "214.73", result.TaxDue.StringFixed(2))
	assert.Equal(t, 3, result.BracketIndex)
	assert.True(t, result.EffectiveRate.Equal(d("0.042946")), "effective rate: %s", result.EffectiveRate)

	require.Len(t, result.Breakdown, 4)
	amounts := []string{"2259.2", "567.45", "924.4", "148.95"}
	base := decimal.Zero
	for i, share := range result.Breakdown {
		assert.Equal(t, i, share.BracketIndex)
		assert.True(t, share.AmountInBracket.Equal(d(amounts[i])), "bracket %d amount: %s", i, share.AmountInBracket)
		base = base.Add(share.AmountInBracket)
	}
	assert.True(t, base.Equal(result.TaxableBase))
	assert.True(t, result.BreakdownTotal().Equal(d("214.7325")), "breakdown: %s", result.BreakdownTotal())
}

func TestComputeBracketTax_ZeroIncome(t *testing.T) {
	result, err := ComputeBracketTax(decimal.Zero, d("300"), d("100"), config.DefaultIncomeTaxBrackets())
	require.NoError(t, err)

	assert.True(t, result.TaxDue.IsZero())
	assert.True(t, result.TaxableBase.IsZero())
	assert.True(t, result.EffectiveRate.IsZero())
	assert.Empty(t, result.Breakdown)
	assert.True(t, result.ExemptIncome.Equal(d("300")))
}

func TestComputeBracketTax_BreakdownReconciles(t *testing.T) {
	brackets := config.DefaultIncomeTaxBrackets()
	tolerance := d("0.01")
	step := d("13.37")

	for income := d("0.01"); income.LessThan(d("20000")); income = income.Add(step) {
		for _, deductions := range []decimal.Decimal{decimal.Zero, d("189.59"), d("1100")} {
			result, err := ComputeBracketTax(income, decimal.Zero, deductions, brackets)
			require.NoError(t, err)

			drift := result.BreakdownTotal().Sub(result.TaxDue).Abs()
			require.True(t, drift.LessThanOrEqual(tolerance),
				"income %s deductions %s: breakdown %s vs due %s", income, deductions, result.BreakdownTotal(), result.TaxDue)
		}
	}
}

func TestComputeBracketTax_Monotonic(t *testing.T) {
	brackets := config.DefaultIncomeTaxBrackets()
	deductions := d("528.00")
	previous := decimal.Zero

	for income := decimal.Zero; income.LessThan(d("15000")); income = income.Add(d("7.31")) {
		result, err := ComputeBracketTax(income, decimal.Zero, deductions, brackets)
		require.NoError(t, err)
		require.True(t, result.TaxDue.GreaterThanOrEqual(previous),
			"tax decreased at income %s: %s < %s", income, result.TaxDue, previous)
		previous = result.TaxDue
	}
}

func TestComputeBracketTax_InvalidInput(t *testing.T) {
	valid := config.DefaultIncomeTaxBrackets()
	bounded := valid[:4]

	tests := []struct {
		name       string
		taxable    decimal.Decimal
		exempt     decimal.Decimal
		deductions decimal.Decimal
		brackets   []domain.TaxBracket
		field      string
	}{
		{"negative taxable income", d("-1"), decimal.Zero, decimal.Zero, valid, "taxable_income"},
		{"negative exempt income", d("100"), d("-5"), decimal.Zero, valid, "exempt_income"},
		{"negative deductions", d("100"), decimal.Zero, d("-0.01"), valid, "deductions"},
		{"empty table", d("100"), decimal.Zero, decimal.Zero, nil, "brackets"},
		{"bounded last bracket", d("100"), decimal.Zero, decimal.Zero, bounded, "brackets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeBracketTax(tt.taxable, tt.exempt, tt.deductions, tt.brackets)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			field, ok := domain.InvalidField(err)
			assert.True(t, ok)
			assert.Equal(t, tt.field, field)
		})
	}
}
