package calculation

import (
	"fmt"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
	fdec "github.com/contabilizei/fiscal-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Recommendation and opportunity codes emitted by the risk rules.
const (
	CodeRegimeReview     = "regime_review"
	CodeFixedCosts       = "fixed_costs"
	CodeProductivity     = "productivity"
	CodePayroll          = "payroll_structure"
	CodeRegimeMigration  = "regime_migration"
	AlertExpensesRevenue = "expenses_exceed_revenue"
)

// riskAccumulator collects the output of the rules as they run.
type riskAccumulator struct {
	analysis domain.RiskAnalysis
}

func (a *riskAccumulator) recommend(code, title, description string, priority domain.RiskLevel) {
	a.analysis.Recommendations = append(a.analysis.Recommendations, domain.Recommendation{
		Code:        code,
		Title:       title,
		Description: description,
		Priority:    priority,
	})
}

func (a *riskAccumulator) opportunity(code, description string, savings decimal.Decimal) {
	savings = fdec.RoundCents(savings)
	a.analysis.Opportunities = append(a.analysis.Opportunities, domain.Opportunity{
		Code:             code,
		Description:      description,
		EstimatedSavings: savings,
	})
	a.analysis.PotentialSavings = a.analysis.PotentialSavings.Add(savings)
}

func (a *riskAccumulator) alert(msg string) {
	a.analysis.Alerts = append(a.analysis.Alerts, msg)
}

func (a *riskAccumulator) escalate(level domain.RiskLevel) {
	a.analysis.RiskLevel = a.analysis.RiskLevel.Raise(level)
}

// riskRule inspects a profile and records its findings. Rules never read
// each other's output.
type riskRule func(p domain.FiscalProfile, r domain.RiskRules, taxBurden decimal.Decimal, a *riskAccumulator)

var riskRules = []riskRule{
	simplesCeilingRule,
	fixedCostRule,
	productivityRule,
	expenseRule,
	payrollRule,
	regimeMigrationRule,
}

// AnalyzeFiscalRisk applies the fiscal risk heuristics to a company profile.
// Rules run in a fixed order; each one may only raise the severity.
func AnalyzeFiscalRisk(profile domain.FiscalProfile, rules domain.RiskRules) (domain.RiskAnalysis, error) {
	if err := checkProfile(profile); err != nil {
		return domain.RiskAnalysis{}, err
	}
	rate, ok := rules.RegimeRates[profile.Regime]
	if !ok {
		return domain.RiskAnalysis{}, domain.NewInvalidInput("tax_regime", "no rate configured for %s", profile.Regime)
	}

	taxBurden := fdec.RoundCents(profile.Revenue.Mul(rate))
	acc := &riskAccumulator{analysis: domain.RiskAnalysis{
		TaxBurden:        taxBurden,
		PotentialSavings: decimal.Zero,
		RiskLevel:        domain.RiskLow,
		Recommendations:  []domain.Recommendation{},
		Opportunities:    []domain.Opportunity{},
		Alerts:           []string{},
	}}

	for _, rule := range riskRules {
		rule(profile, rules, taxBurden, acc)
	}
	return acc.analysis, nil
}

type amountCheck struct {
	field string
	value decimal.Decimal
}

func checkProfile(p domain.FiscalProfile) error {
	checks := []amountCheck{
		{"revenue", p.Revenue},
		{"fixed_costs", p.FixedCosts},
		{"variable_costs", p.VariableCosts},
	}
	if p.Expenses != nil {
		checks = append(checks, amountCheck{"expenses", *p.Expenses})
	}
	if p.Payroll != nil {
		checks = append(checks, amountCheck{"payroll", *p.Payroll})
	}
	for _, c := range checks {
		if c.value.IsNegative() {
			return domain.NewInvalidInput(c.field, "cannot be negative, got %s", c.value.String())
		}
	}
	if p.Employees < 0 {
		return domain.NewInvalidInput("employees", "cannot be negative, got %d", p.Employees)
	}
	if !p.Regime.Valid() {
		return domain.NewInvalidInput("tax_regime", "unrecognized tax regime %q", p.Regime)
	}
	return nil
}

func simplesCeilingRule(p domain.FiscalProfile, r domain.RiskRules, _ decimal.Decimal, a *riskAccumulator) {
	if p.Regime != domain.SimplesNacional || !p.Revenue.GreaterThan(r.SimplesRevenueCeiling) {
		return
	}
	a.recommend(CodeRegimeReview, "Revisar regime tributário",
		fmt.Sprintf("Faturamento de %s acima do teto do Simples Nacional (%s).",
			fdec.NewMoneyFromDecimal(p.Revenue).Format(), fdec.NewMoneyFromDecimal(r.SimplesRevenueCeiling).Format()),
		domain.RiskMedium)
	a.opportunity(CodeRegimeReview, "Economia estimada com a mudança de regime", p.Revenue.Mul(r.RegimeReviewSavingsRate))
	a.escalate(domain.RiskMedium)
}

func fixedCostRule(p domain.FiscalProfile, r domain.RiskRules, _ decimal.Decimal, a *riskAccumulator) {
	if !p.FixedCosts.GreaterThan(p.Revenue.Mul(r.FixedCostRatio)) {
		return
	}
	a.recommend(CodeFixedCosts, "Reduzir custos fixos",
		fmt.Sprintf("Custos fixos acima de %s do faturamento.", fdec.FormatPercent(r.FixedCostRatio)),
		domain.RiskHigh)
	a.opportunity(CodeFixedCosts, "Economia estimada com a redução de custos fixos", p.FixedCosts.Mul(r.CostReductionSavingsRate))
	a.escalate(domain.RiskHigh)
}

func productivityRule(p domain.FiscalProfile, r domain.RiskRules, _ decimal.Decimal, a *riskAccumulator) {
	if p.Employees <= 0 {
		return
	}
	perEmployee := p.Revenue.Div(decimal.NewFromInt(int64(p.Employees)))
	if !perEmployee.LessThan(r.RevenuePerEmployeeFloor) {
		return
	}
	a.recommend(CodeProductivity, "Melhorar produtividade",
		fmt.Sprintf("Faturamento por funcionário de %s abaixo de %s.",
			fdec.NewMoneyFromDecimal(fdec.RoundCents(perEmployee)).Format(), fdec.NewMoneyFromDecimal(r.RevenuePerEmployeeFloor).Format()),
		domain.RiskMedium)
	a.escalate(domain.RiskMedium)
}

func expenseRule(p domain.FiscalProfile, _ domain.RiskRules, _ decimal.Decimal, a *riskAccumulator) {
	expenses := p.TotalExpenses()
	if !expenses.GreaterThan(p.Revenue) {
		return
	}
	a.alert(fmt.Sprintf("%s: despesas de %s superam o faturamento de %s", AlertExpensesRevenue,
		fdec.NewMoneyFromDecimal(expenses).Format(), fdec.NewMoneyFromDecimal(p.Revenue).Format()))
	a.escalate(domain.RiskHigh)
}

func payrollRule(p domain.FiscalProfile, r domain.RiskRules, _ decimal.Decimal, a *riskAccumulator) {
	if p.Payroll == nil || !p.Payroll.GreaterThan(p.Revenue.Mul(r.PayrollRatio)) {
		return
	}
	a.alert(fmt.Sprintf("%s: folha de pagamento acima de %s do faturamento", CodePayroll, fdec.FormatPercent(r.PayrollRatio)))
	a.recommend(CodePayroll, "Revisar estrutura da folha",
		"Avaliar pró-labore, benefícios e terceirização para reduzir encargos.",
		domain.RiskMedium)
	a.opportunity(CodePayroll, "Economia estimada com a reestruturação da folha", p.Payroll.Mul(r.PayrollSavingsRate))
	a.escalate(domain.RiskMedium)
}

func regimeMigrationRule(p domain.FiscalProfile, r domain.RiskRules, taxBurden decimal.Decimal, a *riskAccumulator) {
	if p.Regime == domain.SimplesNacional || p.Revenue.GreaterThan(r.SimplesEligibilityCeiling) {
		return
	}
	simplesRate, ok := r.RegimeRates[domain.SimplesNacional]
	if !ok {
		return
	}
	diff := taxBurden.Sub(p.Revenue.Mul(simplesRate))
	if !diff.IsPositive() {
		return
	}
	a.recommend(CodeRegimeMigration, "Avaliar migração para o Simples Nacional",
		fmt.Sprintf("Faturamento de %s permite optar pelo Simples Nacional.", fdec.NewMoneyFromDecimal(p.Revenue).Format()),
		domain.RiskLow)
	a.opportunity(CodeRegimeMigration, "Diferença estimada de carga tributária no Simples Nacional", diff)
}
