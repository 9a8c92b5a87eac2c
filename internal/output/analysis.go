package output

import (
	"sort"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Highlights is the short list of findings shown at the top of summaries.
type Highlights struct {
	TopRecommendation *domain.Recommendation
	BestOpportunity   *domain.Opportunity
	// BurdenRate is the tax burden as a fraction of revenue.
	BurdenRate decimal.Decimal
	// NextPayment is the first projected month, when a projection exists.
	NextPayment *domain.MonthlyAmount
}

// AnalyzeReport picks the most urgent recommendation and the largest savings
// opportunity of a report. Ties keep the order the rules emitted them in.
// Extracted from embedded console logic for testability.
func AnalyzeReport(report *domain.FiscalReport) Highlights {
	var h Highlights

	if recs := report.Risk.Recommendations; len(recs) > 0 {
		ranked := append([]domain.Recommendation(nil), recs...)
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Priority > ranked[j].Priority })
		h.TopRecommendation = &ranked[0]
	}

	for i := range report.Risk.Opportunities {
		o := report.Risk.Opportunities[i]
		if h.BestOpportunity == nil || o.EstimatedSavings.GreaterThan(h.BestOpportunity.EstimatedSavings) {
			h.BestOpportunity = &o
		}
	}

	h.BurdenRate = decimal.Zero
	if report.Profile.Revenue.IsPositive() {
		h.BurdenRate = report.Risk.TaxBurden.Div(report.Profile.Revenue)
	}

	if report.Projection != nil && len(report.Projection.PerMonth) > 0 {
		first := report.Projection.PerMonth[0]
		h.NextPayment = &first
	}
	return h
}
