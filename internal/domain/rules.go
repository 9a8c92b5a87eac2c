package domain

import "github.com/shopspring/decimal"

// TaxRules holds every configurable table the calculators read.
// It is loaded from rules.yaml or built from config.DefaultRules.
type TaxRules struct {
	Year               int             `yaml:"year" json:"year"`
	IncomeTaxBrackets  []TaxBracket    `yaml:"income_tax_brackets" json:"income_tax_brackets"`
	SimplesBands       []RevenueBand   `yaml:"simples_bands" json:"simples_bands"`
	Risk               RiskRules       `yaml:"risk" json:"risk"`
	Projection         ProjectionRules `yaml:"projection" json:"projection"`
	DASDocumentBaseURL string          `yaml:"das_document_base_url,omitempty" json:"das_document_base_url,omitempty"`
}

// RiskRules are the thresholds and rates used by the fiscal risk heuristics.
type RiskRules struct {
	// RegimeRates is the flat burden applied to revenue per regime.
	RegimeRates map[TaxRegime]decimal.Decimal `yaml:"regime_rates" json:"regime_rates"`

	SimplesRevenueCeiling     decimal.Decimal `yaml:"simples_revenue_ceiling" json:"simples_revenue_ceiling"`
	RegimeReviewSavingsRate   decimal.Decimal `yaml:"regime_review_savings_rate" json:"regime_review_savings_rate"`
	FixedCostRatio            decimal.Decimal `yaml:"fixed_cost_ratio" json:"fixed_cost_ratio"`
	CostReductionSavingsRate  decimal.Decimal `yaml:"cost_reduction_savings_rate" json:"cost_reduction_savings_rate"`
	RevenuePerEmployeeFloor   decimal.Decimal `yaml:"revenue_per_employee_floor" json:"revenue_per_employee_floor"`
	PayrollRatio              decimal.Decimal `yaml:"payroll_ratio" json:"payroll_ratio"`
	PayrollSavingsRate        decimal.Decimal `yaml:"payroll_savings_rate" json:"payroll_savings_rate"`
	SimplesEligibilityCeiling decimal.Decimal `yaml:"simples_eligibility_ceiling" json:"simples_eligibility_ceiling"`
}

// TaxTypeSplit is the fraction of a projected total attributed to one tax.
type TaxTypeSplit struct {
	Type       string          `yaml:"type" json:"type"`
	Percentage decimal.Decimal `yaml:"percentage" json:"percentage"`
}

// ProjectionRules are the constants behind the tax projection.
type ProjectionRules struct {
	UpliftFactor   decimal.Decimal               `yaml:"uplift_factor" json:"uplift_factor"`
	EstimatedRates map[TaxRegime]decimal.Decimal `yaml:"estimated_rates" json:"estimated_rates"`
	TaxTypeSplits  map[TaxRegime][]TaxTypeSplit  `yaml:"tax_type_splits" json:"tax_type_splits"`
	MaxMonths      int                           `yaml:"max_months" json:"max_months"`
}
