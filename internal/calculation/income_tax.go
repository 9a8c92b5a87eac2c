package calculation

import (
	"github.com/contabilizei/fiscal-calculator/internal/domain"
	fdec "github.com/contabilizei/fiscal-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ComputeBracketTax computes the monthly progressive income tax (IRPF) for
// one taxpayer using the "parcela a deduzir" table in brackets.
//
// The amount due comes from the single matched bracket (base*rate - subtract)
// and is rounded half-up to cents. The breakdown walks every bracket up to
// the base and is left unrounded; it is an explanatory view that reconciles
// with TaxDue within one cent but is never adjusted to match it.
func ComputeBracketTax(taxableIncome, exemptIncome, deductions decimal.Decimal, brackets []domain.TaxBracket) (domain.BracketComputationResult, error) {
	if taxableIncome.IsNegative() {
		return domain.BracketComputationResult{}, domain.NewInvalidInput("taxable_income", "cannot be negative, got %s", taxableIncome.String())
	}
	if exemptIncome.IsNegative() {
		return domain.BracketComputationResult{}, domain.NewInvalidInput("exempt_income", "cannot be negative, got %s", exemptIncome.String())
	}
	if deductions.IsNegative() {
		return domain.BracketComputationResult{}, domain.NewInvalidInput("deductions", "cannot be negative, got %s", deductions.String())
	}
	if err := checkBrackets(brackets); err != nil {
		return domain.BracketComputationResult{}, err
	}

	result := domain.BracketComputationResult{
		TaxableIncome: taxableIncome,
		ExemptIncome:  exemptIncome,
		Deductions:    deductions,
		TaxableBase:   decimal.Zero,
		TaxDue:        decimal.Zero,
		EffectiveRate: decimal.Zero,
		Breakdown:     []domain.BracketShare{},
	}
	if taxableIncome.IsZero() {
		return result, nil
	}

	base := decimal.Max(decimal.Zero, taxableIncome.Sub(deductions))
	idx := matchBracket(base, brackets)
	matched := brackets[idx]

	taxDue := decimal.Max(decimal.Zero, base.Mul(matched.Rate).Sub(matched.SubtractAmount))
	taxDue = fdec.RoundCents(taxDue)

	result.TaxableBase = base
	result.TaxDue = taxDue
	result.BracketIndex = idx
	result.EffectiveRate = taxDue.Div(taxableIncome)
	result.Breakdown = bracketBreakdown(base, brackets)
	return result, nil
}

// checkBrackets rejects tables the matching rule cannot work with.
func checkBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return domain.NewInvalidInput("brackets", "table is empty")
	}
	if !brackets[len(brackets)-1].Unbounded() {
		return domain.NewInvalidInput("brackets", "last bracket must be unbounded")
	}
	var prev *decimal.Decimal
	for i, b := range brackets[:len(brackets)-1] {
		if b.Unbounded() {
			return domain.NewInvalidInput("brackets", "bracket %d is unbounded but not last", i)
		}
		if prev != nil && b.UpperBound.LessThanOrEqual(*prev) {
			return domain.NewInvalidInput("brackets", "bracket %d upper bound is not ascending", i)
		}
		prev = b.UpperBound
	}
	return nil
}

// matchBracket returns the index of the first bracket whose upper bound
// covers base. checkBrackets guarantees the last one always does.
func matchBracket(base decimal.Decimal, brackets []domain.TaxBracket) int {
	for i, b := range brackets {
		if b.Covers(base) {
			return i
		}
	}
	return len(brackets) - 1
}

func bracketBreakdown(base decimal.Decimal, brackets []domain.TaxBracket) []domain.BracketShare {
	shares := make([]domain.BracketShare, 0, len(brackets))
	remaining := base
	previousUpper := decimal.Zero

	for i, b := range brackets {
		if !remaining.IsPositive() {
			break
		}
		amount := remaining
		if !b.Unbounded() {
			amount = decimal.Min(remaining, b.UpperBound.Sub(previousUpper))
			previousUpper = *b.UpperBound
		}
		shares = append(shares, domain.BracketShare{
			BracketIndex:    i,
			AmountInBracket: amount,
			Rate:            b.Rate,
			TaxInBracket:    amount.Mul(b.Rate),
		})
		remaining = remaining.Sub(amount)
	}
	return shares
}
