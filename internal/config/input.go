package config

import (
	"fmt"
	"os"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/pkg/taxid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of rule tables and client workbooks
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadRulesFromFile loads tax tables from a YAML file. Fields left out of
// the file keep their default values.
func (ip *InputParser) LoadRulesFromFile(filename string) (*domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseRules(data)
}

// ParseRules decodes a YAML rules document on top of DefaultRules and
// validates the result. Maps are merged key by key; lists replace the
// default list as a whole.
func (ip *InputParser) ParseRules(data []byte) (*domain.TaxRules, error) {
	rules := DefaultRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var explicit struct {
		Risk struct {
			RegimeRates map[domain.TaxRegime]decimal.Decimal `yaml:"regime_rates"`
		} `yaml:"risk"`
		Projection struct {
			EstimatedRates map[domain.TaxRegime]decimal.Decimal `yaml:"estimated_rates"`
		} `yaml:"projection"`
	}
	if err := yaml.Unmarshal(data, &explicit); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	// estimated rates follow the regime rates unless the file sets them
	if len(explicit.Risk.RegimeRates) > 0 && len(explicit.Projection.EstimatedRates) == 0 {
		rules.Projection.EstimatedRates = make(map[domain.TaxRegime]decimal.Decimal, len(rules.Risk.RegimeRates))
		for regime, rate := range rules.Risk.RegimeRates {
			rules.Projection.EstimatedRates[regime] = rate
		}
	}
	if rules.DASDocumentBaseURL == "" {
		rules.DASDocumentBaseURL = DefaultDASBaseURL
	}

	if err := ip.ValidateRules(rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return rules, nil
}

// ValidateRules validates a complete rule set
func (ip *InputParser) ValidateRules(rules *domain.TaxRules) error {
	if err := validateBrackets(rules.IncomeTaxBrackets); err != nil {
		return fmt.Errorf("income tax brackets: %w", err)
	}
	if err := validateBands(rules.SimplesBands); err != nil {
		return fmt.Errorf("simples bands: %w", err)
	}
	if err := validateRegimeRates(rules.Risk.RegimeRates); err != nil {
		return fmt.Errorf("risk regime rates: %w", err)
	}
	if err := validateRiskRules(&rules.Risk); err != nil {
		return fmt.Errorf("risk rules: %w", err)
	}
	if err := validateProjectionRules(&rules.Projection); err != nil {
		return fmt.Errorf("projection rules: %w", err)
	}
	return nil
}

func validateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("at least one bracket is required")
	}
	var prev *decimal.Decimal
	for i, b := range brackets {
		if err := validateFraction(b.Rate); err != nil {
			return fmt.Errorf("bracket %d rate: %w", i, err)
		}
		if b.SubtractAmount.IsNegative() {
			return fmt.Errorf("bracket %d subtract amount cannot be negative", i)
		}
		last := i == len(brackets)-1
		if b.Unbounded() != last {
			return fmt.Errorf("bracket %d: only the last bracket may (and must) be unbounded", i)
		}
		if b.UpperBound != nil {
			if b.UpperBound.IsNegative() {
				return fmt.Errorf("bracket %d upper bound cannot be negative", i)
			}
			if prev != nil && b.UpperBound.LessThanOrEqual(*prev) {
				return fmt.Errorf("bracket %d upper bound must be greater than bracket %d", i, i-1)
			}
			prev = b.UpperBound
		}
	}
	return nil
}

func validateBands(bands []domain.RevenueBand) error {
	if len(bands) == 0 {
		return fmt.Errorf("at least one band is required")
	}
	var prev *decimal.Decimal
	for i, b := range bands {
		if err := validateFraction(b.Rate); err != nil {
			return fmt.Errorf("band %d rate: %w", i, err)
		}
		last := i == len(bands)-1
		if (b.UpperBound == nil) != last {
			return fmt.Errorf("band %d: only the last band may (and must) be unbounded", i)
		}
		if b.UpperBound != nil {
			if prev != nil && b.UpperBound.LessThanOrEqual(*prev) {
				return fmt.Errorf("band %d upper bound must be greater than band %d", i, i-1)
			}
			prev = b.UpperBound
		}
	}
	return nil
}

func validateRegimeRates(rates map[domain.TaxRegime]decimal.Decimal) error {
	for _, regime := range domain.Regimes {
		rate, ok := rates[regime]
		if !ok {
			return fmt.Errorf("missing rate for %s", regime)
		}
		if err := validateFraction(rate); err != nil {
			return fmt.Errorf("%s: %w", regime, err)
		}
	}
	for regime := range rates {
		if !regime.Valid() {
			return fmt.Errorf("unknown regime %q", regime)
		}
	}
	return nil
}

func validateRiskRules(r *domain.RiskRules) error {
	fractions := map[string]decimal.Decimal{
		"regime_review_savings_rate":  r.RegimeReviewSavingsRate,
		"fixed_cost_ratio":            r.FixedCostRatio,
		"cost_reduction_savings_rate": r.CostReductionSavingsRate,
		"payroll_ratio":               r.PayrollRatio,
		"payroll_savings_rate":        r.PayrollSavingsRate,
	}
	for name, v := range fractions {
		if err := validateFraction(v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	positive := []struct {
		name  string
		value decimal.Decimal
	}{
		{"simples_revenue_ceiling", r.SimplesRevenueCeiling},
		{"fixed_cost_ratio", r.FixedCostRatio},
		{"revenue_per_employee_floor", r.RevenuePerEmployeeFloor},
		{"payroll_ratio", r.PayrollRatio},
	}
	for _, p := range positive {
		if !p.value.IsPositive() {
			return fmt.Errorf("%s must be positive, got %s", p.name, p.value.String())
		}
	}
	if r.SimplesEligibilityCeiling.IsNegative() {
		return fmt.Errorf("simples eligibility ceiling cannot be negative")
	}
	return nil
}

func validateProjectionRules(p *domain.ProjectionRules) error {
	if !p.UpliftFactor.IsPositive() {
		return fmt.Errorf("uplift factor must be positive")
	}
	if p.MaxMonths < 1 || p.MaxMonths > 60 {
		return fmt.Errorf("max months must be between 1 and 60")
	}
	if err := validateRegimeRates(p.EstimatedRates); err != nil {
		return fmt.Errorf("estimated rates: %w", err)
	}
	one := decimal.NewFromInt(1)
	for _, regime := range domain.Regimes {
		splits, ok := p.TaxTypeSplits[regime]
		if !ok || len(splits) == 0 {
			return fmt.Errorf("missing tax type split for %s", regime)
		}
		sum := decimal.Zero
		for _, s := range splits {
			if s.Type == "" {
				return fmt.Errorf("%s: tax type name is required", regime)
			}
			if err := validateFraction(s.Percentage); err != nil {
				return fmt.Errorf("%s %s: %w", regime, s.Type, err)
			}
			sum = sum.Add(s.Percentage)
		}
		if !sum.Equal(one) {
			return fmt.Errorf("%s: percentages must sum to 1, got %s", regime, sum.String())
		}
	}
	return nil
}

func validateFraction(v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("must be between 0 and 1, got %s", v.String())
	}
	return nil
}

// LoadWorkbookFromFile loads a client workbook from a YAML file
func (ip *InputParser) LoadWorkbookFromFile(filename string) (*domain.Workbook, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var wb domain.Workbook
	if err := yaml.Unmarshal(data, &wb); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateWorkbook(&wb); err != nil {
		return nil, fmt.Errorf("workbook validation failed: %w", err)
	}
	return &wb, nil
}

// ValidateWorkbook normalizes regime aliases and checks the taxpayer id.
// Monetary ranges are left to the calculators, which reject them with
// domain.InvalidInputError.
func (ip *InputParser) ValidateWorkbook(wb *domain.Workbook) error {
	if wb.Company == "" {
		return fmt.Errorf("company name is required")
	}
	if wb.TaxpayerID != "" && taxid.Detect(wb.TaxpayerID) == taxid.KindUnknown {
		return fmt.Errorf("taxpayer id %q is not a valid CPF or CNPJ", wb.TaxpayerID)
	}

	regime, err := domain.ParseTaxRegime(string(wb.Profile.Regime))
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	wb.Profile.Regime = regime

	if wb.Forecast != nil {
		if wb.Forecast.Regime == "" {
			wb.Forecast.Regime = regime
		} else {
			fr, err := domain.ParseTaxRegime(string(wb.Forecast.Regime))
			if err != nil {
				return fmt.Errorf("forecast: %w", err)
			}
			wb.Forecast.Regime = fr
		}
	}

	if wb.DAS != nil && wb.TaxpayerID == "" {
		return fmt.Errorf("das: taxpayer id is required to issue a DAS")
	}
	return nil
}

// SaveRules writes a rule set back out as YAML.
func SaveRules(rules *domain.TaxRules, filename string) error {
	b, err := yaml.Marshal(rules)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
