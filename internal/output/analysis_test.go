package output

import (
	"strings"
	"testing"

	"github.com/contabilizei/fiscal-calculator/internal/config"
	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

func TestAnalyzeReport_PicksMostUrgentRecommendation(t *testing.T) {
	report := &domain.FiscalReport{
		Profile: domain.FiscalProfile{Revenue: decimal.NewFromInt(1000000)},
		Risk: domain.RiskAnalysis{
			TaxBurden: decimal.NewFromInt(60000),
			Recommendations: []domain.Recommendation{
				{Code: "productivity", Priority: domain.RiskMedium},
				{Code: "fixed_costs", Priority: domain.RiskHigh},
				{Code: "payroll_structure", Priority: domain.RiskHigh},
			},
			Opportunities: []domain.Opportunity{
				{Code: "fixed_costs", EstimatedSavings: decimal.NewFromInt(37500)},
				{Code: "payroll_structure", EstimatedSavings: decimal.NewFromInt(18000)},
			},
		},
	}

	h := AnalyzeReport(report)
	if h.TopRecommendation == nil || h.TopRecommendation.Code != "fixed_costs" {
		t.Fatalf("expected fixed_costs as top recommendation, got %+v", h.TopRecommendation)
	}
	if h.BestOpportunity == nil || !h.BestOpportunity.EstimatedSavings.Equal(decimal.NewFromInt(37500)) {
		t.Fatalf("expected 37500 opportunity, got %+v", h.BestOpportunity)
	}
	if !h.BurdenRate.Equal(decimal.RequireFromString("0.06")) {
		t.Fatalf("expected burden rate 0.06, got %s", h.BurdenRate)
	}
	if h.NextPayment != nil {
		t.Fatalf("no projection, expected nil next payment")
	}
	// ranking must not reorder the report itself
	if report.Risk.Recommendations[0].Code != "productivity" {
		t.Fatalf("AnalyzeReport mutated recommendations")
	}
}

func TestAnalyzeReport_EmptyReport(t *testing.T) {
	h := AnalyzeReport(&domain.FiscalReport{})
	if h.TopRecommendation != nil || h.BestOpportunity != nil {
		t.Fatalf("expected no highlights, got %+v", h)
	}
	if !h.BurdenRate.IsZero() {
		t.Fatalf("zero revenue should give zero burden rate, got %s", h.BurdenRate)
	}
}

func TestAnalyzeReport_NextPayment(t *testing.T) {
	h := AnalyzeReport(buildTestReport(t))
	if h.NextPayment == nil {
		t.Fatalf("expected next payment from projection")
	}
	if h.NextPayment.Label != "out/2026" || !h.NextPayment.Amount.Equal(decimal.NewFromInt(4725)) {
		t.Fatalf("unexpected next payment: %+v", h.NextPayment)
	}
}

func TestGenerateAssumptions(t *testing.T) {
	got := GenerateAssumptions(config.DefaultRules())
	if len(got) != len(DefaultAssumptions) {
		t.Fatalf("expected %d assumptions, got %d", len(DefaultAssumptions), len(got))
	}
	want := []string{
		"Simples Nacional 6,00%, Lucro Presumido 11,50%, Lucro Real 15,00%",
		"acréscimo de 5,00%",
		"tabela mensal progressiva 2025 (5 faixas)",
	}
	for i, w := range want {
		if !strings.Contains(got[i], w) {
			t.Fatalf("assumption %d: %q does not contain %q", i, got[i], w)
		}
	}
}
