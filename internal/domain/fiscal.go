package domain

import (
	"time"

	"github.com/contabilizei/fiscal-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// FiscalProfile is the annual picture of a company fed to the risk heuristics.
// Expenses and Payroll are optional; when Expenses is nil the sum of fixed and
// variable costs is used instead.
type FiscalProfile struct {
	Revenue       decimal.Decimal  `yaml:"revenue" json:"revenue"`
	FixedCosts    decimal.Decimal  `yaml:"fixed_costs" json:"fixed_costs"`
	VariableCosts decimal.Decimal  `yaml:"variable_costs" json:"variable_costs"`
	Employees     int              `yaml:"employees" json:"employees"`
	Regime        TaxRegime        `yaml:"tax_regime" json:"tax_regime"`
	Expenses      *decimal.Decimal `yaml:"expenses,omitempty" json:"expenses,omitempty"`
	Payroll       *decimal.Decimal `yaml:"payroll,omitempty" json:"payroll,omitempty"`
}

// TotalExpenses returns the explicit expense figure or fixed+variable costs.
func (p FiscalProfile) TotalExpenses() decimal.Decimal {
	if p.Expenses != nil {
		return *p.Expenses
	}
	return p.FixedCosts.Add(p.VariableCosts)
}

// Recommendation is an actionable suggestion emitted by a risk rule.
type Recommendation struct {
	Code        string    `yaml:"code" json:"code"`
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description" json:"description"`
	Priority    RiskLevel `yaml:"priority" json:"priority"`
}

// Opportunity is a naive savings estimate attached to a rule.
type Opportunity struct {
	Code             string          `yaml:"code" json:"code"`
	Description      string          `yaml:"description" json:"description"`
	EstimatedSavings decimal.Decimal `yaml:"estimated_savings" json:"estimated_savings"`
}

// RiskAnalysis is the derived (never persisted) output of the heuristics.
type RiskAnalysis struct {
	TaxBurden        decimal.Decimal  `yaml:"tax_burden" json:"tax_burden"`
	PotentialSavings decimal.Decimal  `yaml:"potential_savings" json:"potential_savings"`
	RiskLevel        RiskLevel        `yaml:"risk_level" json:"risk_level"`
	Recommendations  []Recommendation `yaml:"recommendations" json:"recommendations"`
	Opportunities    []Opportunity    `yaml:"opportunities" json:"opportunities"`
	Alerts           []string         `yaml:"alerts" json:"alerts"`
}

// Forecast is the input to the projection distributor.
type Forecast struct {
	ProjectedRevenue  decimal.Decimal `yaml:"projected_revenue" json:"projected_revenue"`
	ProjectedExpenses decimal.Decimal `yaml:"projected_expenses" json:"projected_expenses"`
	Regime            TaxRegime       `yaml:"tax_regime" json:"tax_regime"`
	Months            int             `yaml:"months" json:"months"`
	Sector            string          `yaml:"sector,omitempty" json:"sector,omitempty"`
}

// MonthlyAmount is one month of a projection.
type MonthlyAmount struct {
	Month  dateutil.YearMonth `yaml:"month" json:"month"`
	Label  string             `yaml:"label" json:"label"`
	Amount decimal.Decimal    `yaml:"amount" json:"amount"`
}

// TaxTypeShare is the part of a projection attributed to one tax.
type TaxTypeShare struct {
	Type       string          `yaml:"type" json:"type"`
	Total      decimal.Decimal `yaml:"total" json:"total"`
	Percentage decimal.Decimal `yaml:"percentage" json:"percentage"`
}

// ProjectionResult spreads an estimated tax total over months and tax types.
type ProjectionResult struct {
	Regime         TaxRegime       `yaml:"tax_regime" json:"tax_regime"`
	Sector         string          `yaml:"sector,omitempty" json:"sector,omitempty"`
	PerMonth       []MonthlyAmount `yaml:"per_month" json:"per_month"`
	TotalPeriod    decimal.Decimal `yaml:"total_period" json:"total_period"`
	MonthlyAverage decimal.Decimal `yaml:"monthly_average" json:"monthly_average"`
	ByTaxType      []TaxTypeShare  `yaml:"by_tax_type" json:"by_tax_type"`
}

// FiscalReport bundles every calculator output for one company snapshot.
type FiscalReport struct {
	Title       string                    `yaml:"title" json:"title"`
	GeneratedAt time.Time                 `yaml:"generated_at" json:"generated_at"`
	Company     string                    `yaml:"company,omitempty" json:"company,omitempty"`
	TaxpayerID  string                    `yaml:"taxpayer_id,omitempty" json:"taxpayer_id,omitempty"`
	Profile     FiscalProfile             `yaml:"profile" json:"profile"`
	Risk        RiskAnalysis              `yaml:"risk" json:"risk"`
	Ledger      *LedgerResult             `yaml:"ledger,omitempty" json:"ledger,omitempty"`
	Projection  *ProjectionResult         `yaml:"projection,omitempty" json:"projection,omitempty"`
	IncomeTax   *BracketComputationResult `yaml:"income_tax,omitempty" json:"income_tax,omitempty"`
	DAS         *FlatTaxDocument          `yaml:"das,omitempty" json:"das,omitempty"`
	Assumptions []string                  `yaml:"assumptions,omitempty" json:"assumptions,omitempty"`
}
