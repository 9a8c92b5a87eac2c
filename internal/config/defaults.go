package config

import (
	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultDASBaseURL is where generated DAS guides are linked for display.
const DefaultDASBaseURL = "https://das.contabilizei.local/guias"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func bound(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// DefaultIncomeTaxBrackets is the monthly IRPF table (2024/2025).
func DefaultIncomeTaxBrackets() []domain.TaxBracket {
	return []domain.TaxBracket{
		{UpperBound: bound("2259.20"), Rate: decimal.Zero, SubtractAmount: decimal.Zero},
		{UpperBound: bound("2826.65"), Rate: dec("0.075"), SubtractAmount: dec("169.44")},
		{UpperBound: bound("3751.05"), Rate: dec("0.15"), SubtractAmount: dec("381.44")},
		{UpperBound: bound("4664.68"), Rate: dec("0.225"), SubtractAmount: dec("662.77")},
		{UpperBound: nil, Rate: dec("0.275"), SubtractAmount: dec("896.00")},
	}
}

// DefaultSimplesBands are the simplified-regime DAS bands.
func DefaultSimplesBands() []domain.RevenueBand {
	return []domain.RevenueBand{
		{UpperBound: bound("180000"), Rate: dec("0.04")},
		{UpperBound: bound("360000"), Rate: dec("0.073")},
		{UpperBound: bound("720000"), Rate: dec("0.095")},
		{UpperBound: bound("1800000"), Rate: dec("0.107")},
		{UpperBound: bound("3600000"), Rate: dec("0.143")},
		{UpperBound: nil, Rate: dec("0.19")},
	}
}

// DefaultRegimeRates are simplified flat burdens per regime. They are
// heuristics, not statutory rates.
func DefaultRegimeRates() map[domain.TaxRegime]decimal.Decimal {
	return map[domain.TaxRegime]decimal.Decimal{
		domain.SimplesNacional: dec("0.06"),
		domain.LucroPresumido:  dec("0.115"),
		domain.LucroReal:       dec("0.15"),
	}
}

// DefaultRiskRules returns the thresholds of the fiscal risk heuristics.
func DefaultRiskRules() domain.RiskRules {
	return domain.RiskRules{
		RegimeRates:               DefaultRegimeRates(),
		SimplesRevenueCeiling:     dec("3600000"),
		RegimeReviewSavingsRate:   dec("0.015"),
		FixedCostRatio:            dec("0.70"),
		CostReductionSavingsRate:  dec("0.05"),
		RevenuePerEmployeeFloor:   dec("60000"),
		PayrollRatio:              dec("0.50"),
		PayrollSavingsRate:        dec("0.03"),
		SimplesEligibilityCeiling: dec("4800000"),
	}
}

// DefaultProjectionRules returns the projection constants.
func DefaultProjectionRules() domain.ProjectionRules {
	return domain.ProjectionRules{
		UpliftFactor:   dec("1.05"),
		EstimatedRates: DefaultRegimeRates(),
		TaxTypeSplits: map[domain.TaxRegime][]domain.TaxTypeSplit{
			domain.SimplesNacional: {
				{Type: "DAS", Percentage: decimal.NewFromInt(1)},
			},
			domain.LucroPresumido: {
				{Type: "IRPJ", Percentage: dec("0.32")},
				{Type: "CSLL", Percentage: dec("0.18")},
				{Type: "PIS", Percentage: dec("0.10")},
				{Type: "COFINS", Percentage: dec("0.40")},
			},
			domain.LucroReal: {
				{Type: "IRPJ", Percentage: dec("0.35")},
				{Type: "CSLL", Percentage: dec("0.20")},
				{Type: "PIS", Percentage: dec("0.10")},
				{Type: "COFINS", Percentage: dec("0.35")},
			},
		},
		MaxMonths: 60,
	}
}

// DefaultRules assembles every default table.
func DefaultRules() *domain.TaxRules {
	return &domain.TaxRules{
		Year:               2025,
		IncomeTaxBrackets:  DefaultIncomeTaxBrackets(),
		SimplesBands:       DefaultSimplesBands(),
		Risk:               DefaultRiskRules(),
		Projection:         DefaultProjectionRules(),
		DASDocumentBaseURL: DefaultDASBaseURL,
	}
}
