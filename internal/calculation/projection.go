package calculation

import (
	"time"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/pkg/dateutil"
	fdec "github.com/contabilizei/fiscal-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// DefaultMaxMonths caps a projection horizon when the rules leave it unset.
const DefaultMaxMonths = 60

// ProjectTaxes estimates the tax due over the forecast horizon and spreads it
// over months (starting at now's month) and tax types.
//
// Every month gets the cent-floored share of the total and the last month
// absorbs the remainder, so the monthly amounts always add up to TotalPeriod
// exactly. The per-type split works the same way.
func ProjectTaxes(forecast domain.Forecast, rules domain.ProjectionRules, now time.Time) (domain.ProjectionResult, error) {
	maxMonths := rules.MaxMonths
	if maxMonths == 0 {
		maxMonths = DefaultMaxMonths
	}
	if forecast.Months < 1 || forecast.Months > maxMonths {
		return domain.ProjectionResult{}, domain.NewInvalidInput("months", "must be between 1 and %d, got %d", maxMonths, forecast.Months)
	}
	if !forecast.ProjectedRevenue.IsPositive() {
		return domain.ProjectionResult{}, domain.NewInvalidInput("projected_revenue", "must be positive, got %s", forecast.ProjectedRevenue.String())
	}
	if forecast.ProjectedExpenses.IsNegative() {
		return domain.ProjectionResult{}, domain.NewInvalidInput("projected_expenses", "cannot be negative, got %s", forecast.ProjectedExpenses.String())
	}
	if !forecast.Regime.Valid() {
		return domain.ProjectionResult{}, domain.NewInvalidInput("tax_regime", "unrecognized tax regime %q", forecast.Regime)
	}
	rate, ok := rules.EstimatedRates[forecast.Regime]
	if !ok {
		return domain.ProjectionResult{}, domain.NewInvalidInput("tax_regime", "no estimated rate configured for %s", forecast.Regime)
	}
	splits, err := taxTypeSplits(forecast.Regime, rules)
	if err != nil {
		return domain.ProjectionResult{}, err
	}

	uplift := rules.UpliftFactor
	if uplift.IsZero() {
		uplift = decimal.NewFromInt(1)
	}
	total := fdec.RoundCents(forecast.ProjectedRevenue.Mul(uplift).Mul(rate))
	months := decimal.NewFromInt(int64(forecast.Months))

	return domain.ProjectionResult{
		Regime:         forecast.Regime,
		Sector:         forecast.Sector,
		PerMonth:       distributeMonthly(total, forecast.Months, dateutil.YearMonthOf(now)),
		TotalPeriod:    total,
		MonthlyAverage: fdec.RoundCents(total.Div(months)),
		ByTaxType:      DistributeByType(total, splits),
	}, nil
}

// taxTypeSplits returns the split used for regime. The Simples Nacional is
// always collected as a single DAS.
func taxTypeSplits(regime domain.TaxRegime, rules domain.ProjectionRules) ([]domain.TaxTypeSplit, error) {
	if regime == domain.SimplesNacional {
		return []domain.TaxTypeSplit{{Type: "DAS", Percentage: decimal.NewFromInt(1)}}, nil
	}
	splits := rules.TaxTypeSplits[regime]
	if len(splits) == 0 {
		return nil, domain.NewInvalidInput("tax_type_splits", "no split configured for %s", regime)
	}
	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.Percentage)
	}
	if !sum.Equal(decimal.NewFromInt(1)) {
		return nil, domain.NewInvalidInput("tax_type_splits", "%s percentages sum to %s, want 1", regime, sum.String())
	}
	return splits, nil
}

func distributeMonthly(total decimal.Decimal, months int, start dateutil.YearMonth) []domain.MonthlyAmount {
	share := fdec.FloorCents(total.Div(decimal.NewFromInt(int64(months))))
	out := make([]domain.MonthlyAmount, months)
	allocated := decimal.Zero
	for i := range out {
		amount := share
		if i == months-1 {
			amount = total.Sub(allocated)
		}
		ym := start.AddMonths(i)
		out[i] = domain.MonthlyAmount{Month: ym, Label: ym.Label(), Amount: amount}
		allocated = allocated.Add(amount)
	}
	return out
}

// DistributeByType splits total across the tax types, rounding each share to
// cents; the last type absorbs the remainder so the shares sum to total.
func DistributeByType(total decimal.Decimal, splits []domain.TaxTypeSplit) []domain.TaxTypeShare {
	out := make([]domain.TaxTypeShare, len(splits))
	allocated := decimal.Zero
	for i, s := range splits {
		amount := fdec.RoundCents(total.Mul(s.Percentage))
		if i == len(splits)-1 {
			amount = total.Sub(allocated)
		}
		out[i] = domain.TaxTypeShare{Type: s.Type, Total: amount, Percentage: s.Percentage}
		allocated = allocated.Add(amount)
	}
	return out
}
