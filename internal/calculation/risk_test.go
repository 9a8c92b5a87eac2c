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

func ptr(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func codes(recs []domain.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Code
	}
	return out
}

func TestAnalyzeFiscalRisk(t *testing.T) {
	rules := config.DefaultRiskRules()

	tests := []struct {
		name            string
		profile         domain.FiscalProfile
		expectedLevel   domain.RiskLevel
		expectedBurden  string
		expectedSavings string
		expectedCodes   []string
		expectedAlerts  int
	}{
		{
			name: "healthy simples company",
			profile: domain.FiscalProfile{
				Revenue: d("1000000"), FixedCosts: d("200000"), VariableCosts: d("300000"),
				Employees: 10, Regime: domain.SimplesNacional, Payroll: ptr("300000"),
			},
			expectedLevel:   domain.RiskLow,
			expectedBurden:  "60000",
			expectedSavings: "0",
			expectedCodes:   []string{},
		},
		{
			name: "simples above revenue ceiling",
			profile: domain.FiscalProfile{
				Revenue: d("4000000"), FixedCosts: d("500000"), VariableCosts: d("1000000"),
				Employees: 20, Regime: domain.SimplesNacional,
			},
			expectedLevel:   domain.RiskMedium,
			expectedBurden:  "240000",
			expectedSavings: "60000",
			expectedCodes:   []string{CodeRegimeReview},
		},
		{
			name: "fixed costs above ratio",
			profile: domain.FiscalProfile{
				Revenue: d("1000000"), FixedCosts: d("750000"), VariableCosts: d("100000"),
				Employees: 10, Regime: domain.SimplesNacional,
			},
			expectedLevel:   domain.RiskHigh,
			expectedBurden:  "60000",
			expectedSavings: "37500",
			expectedCodes:   []string{CodeFixedCosts},
		},
		{
			name: "low revenue per employee",
			profile: domain.FiscalProfile{
				Revenue: d("500000"), FixedCosts: d("100000"), VariableCosts: d("100000"),
				Employees: 10, Regime: domain.SimplesNacional,
			},
			expectedLevel:   domain.RiskMedium,
			expectedBurden:  "30000",
			expectedSavings: "0",
			expectedCodes:   []string{CodeProductivity},
		},
		{
			name: "costs exceed revenue",
			profile: domain.FiscalProfile{
				Revenue: d("500000"), FixedCosts: d("300000"), VariableCosts: d("300000"),
				Employees: 5, Regime: domain.SimplesNacional,
			},
			expectedLevel:   domain.RiskHigh,
			expectedBurden:  "30000",
			expectedSavings: "0",
			expectedCodes:   []string{},
			expectedAlerts:  1,
		},
		{
			name: "explicit expenses override cost sum",
			profile: domain.FiscalProfile{
				Revenue: d("500000"), FixedCosts: d("300000"), VariableCosts: d("300000"),
				Employees: 5, Regime: domain.SimplesNacional, Expenses: ptr("400000"),
			},
			expectedLevel:   domain.RiskLow,
			expectedBurden:  "30000",
			expectedSavings: "0",
			expectedCodes:   []string{},
		},
		{
			name: "heavy payroll",
			profile: domain.FiscalProfile{
				Revenue: d("1000000"), FixedCosts: d("200000"), VariableCosts: d("100000"),
				Employees: 10, Regime: domain.SimplesNacional, Payroll: ptr("600000"),
			},
			expectedLevel:   domain.RiskMedium,
			expectedBurden:  "60000",
			expectedSavings: "18000",
			expectedCodes:   []string{CodePayroll},
			expectedAlerts:  1,
		},
		{
			name: "presumed profit eligible for simples",
			profile: domain.FiscalProfile{
				Revenue: d("1000000"), FixedCosts: d("200000"), VariableCosts: d("200000"),
				Employees: 10, Regime: domain.LucroPresumido,
			},
			expectedLevel:   domain.RiskLow,
			expectedBurden:  "115000",
			expectedSavings: "55000",
			expectedCodes:   []string{CodeRegimeMigration},
		},
		{
			name: "real profit at eligibility ceiling",
			profile: domain.FiscalProfile{
				Revenue: d("4800000"), FixedCosts: d("1000000"), VariableCosts: d("1000000"),
				Employees: 40, Regime: domain.LucroReal,
			},
			expectedLevel:   domain.RiskLow,
			expectedBurden:  "720000",
			expectedSavings: "432000",
			expectedCodes:   []string{CodeRegimeMigration},
		},
		{
			name: "real profit above eligibility ceiling",
			profile: domain.FiscalProfile{
				Revenue: d("5000000"), FixedCosts: d("1000000"), VariableCosts: d("1000000"),
				Employees: 40, Regime: domain.LucroReal,
			},
			expectedLevel:   domain.RiskLow,
			expectedBurden:  "750000",
			expectedSavings: "0",
			expectedCodes:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := AnalyzeFiscalRisk(tt.profile, rules)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedLevel, analysis.RiskLevel)
			assert.True(t, analysis.TaxBurden.Equal(d(tt.expectedBurden)),
				"Expected burden %s, got %s", tt.expectedBurden, analysis.TaxBurden)
			assert.True(t, analysis.PotentialSavings.Equal(d(tt.expectedSavings)),
				"Expected savings %s, got %s", tt.expectedSavings, analysis.PotentialSavings)
			assert.Equal(t, tt.expectedCodes, codes(analysis.Recommendations))
			assert.Len(t, analysis.Alerts, tt.expectedAlerts)
		})
	}
}

func TestAnalyzeFiscalRisk_SeverityNeverDrops(t *testing.T) {
	// fixed costs raise to high first; productivity and payroll only reach medium
	profile := domain.FiscalProfile{
		Revenue: d("1000000"), FixedCosts: d("800000"), VariableCosts: d("100000"),
		Employees: 20, Regime: domain.SimplesNacional, Payroll: ptr("600000"),
	}

	analysis, err := AnalyzeFiscalRisk(profile, config.DefaultRiskRules())
	require.NoError(t, err)

	assert.Equal(t, domain.RiskHigh, analysis.RiskLevel)
	assert.Equal(t, []string{CodeFixedCosts, CodeProductivity, CodePayroll}, codes(analysis.Recommendations))
	// 800000*0.05 + 600000*0.03
	assert.True(t, analysis.PotentialSavings.Equal(d("58000")), "savings: %s", analysis.PotentialSavings)
	require.Len(t, analysis.Opportunities, 2)
	assert.Equal(t, CodeFixedCosts, analysis.Opportunities[0].Code)
	assert.Equal(t, CodePayroll, analysis.Opportunities[1].Code)
}

func TestAnalyzeFiscalRisk_Deterministic(t *testing.T) {
	profile := domain.FiscalProfile{
		Revenue: d("4000000"), FixedCosts: d("3000000"), VariableCosts: d("2000000"),
		Employees: 100, Regime: domain.SimplesNacional, Payroll: ptr("2500000"),
	}
	first, err := AnalyzeFiscalRisk(profile, config.DefaultRiskRules())
	require.NoError(t, err)
	second, err := AnalyzeFiscalRisk(profile, config.DefaultRiskRules())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.RiskHigh, first.RiskLevel)
	assert.Len(t, first.Alerts, 2)
}

func TestAnalyzeFiscalRisk_InvalidInput(t *testing.T) {
	base := domain.FiscalProfile{
		Revenue: d("100000"), FixedCosts: d("10000"), VariableCosts: d("10000"),
		Employees: 1, Regime: domain.SimplesNacional,
	}

	tests := []struct {
		name   string
		mutate func(p *domain.FiscalProfile)
		rules  func(r *domain.RiskRules)
		field  string
	}{
		{name: "negative revenue", mutate: func(p *domain.FiscalProfile) { p.Revenue = d("-1") }, field: "revenue"},
		{name: "negative fixed costs", mutate: func(p *domain.FiscalProfile) { p.FixedCosts = d("-1") }, field: "fixed_costs"},
		{name: "negative payroll", mutate: func(p *domain.FiscalProfile) { p.Payroll = ptr("-1") }, field: "payroll"},
		{name: "negative employees", mutate: func(p *domain.FiscalProfile) { p.Employees = -3 }, field: "employees"},
		{name: "unknown regime", mutate: func(p *domain.FiscalProfile) { p.Regime = "mei" }, field: "tax_regime"},
		{
			name:   "regime without configured rate",
			mutate: func(p *domain.FiscalProfile) { p.Regime = domain.LucroReal },
			rules:  func(r *domain.RiskRules) { delete(r.RegimeRates, domain.LucroReal) },
			field:  "tax_regime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := base
			tt.mutate(&profile)
			rules := config.DefaultRiskRules()
			if tt.rules != nil {
				tt.rules(&rules)
			}

			_, err := AnalyzeFiscalRisk(profile, rules)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			field, _ := domain.InvalidField(err)
			assert.Equal(t, tt.field, field)
		})
	}
}
