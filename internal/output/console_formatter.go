package output

import (
	"bytes"
	"fmt"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.FiscalReport) ([]byte, error) {
	var buf bytes.Buffer
	h := AnalyzeReport(report)

	fmt.Fprintln(&buf, "RESUMO FISCAL")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintln(&buf, report.Title)
	if report.Company != "" {
		fmt.Fprintf(&buf, "%s (%s)\n", report.Company, report.Profile.Regime.DisplayName())
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Carga tributária: %s (%s do faturamento)\n", FormatCurrency(report.Risk.TaxBurden), FormatPercentage(h.BurdenRate))
	fmt.Fprintf(&buf, "Nível de risco: %s\n", RiskLabel(report.Risk.RiskLevel))
	fmt.Fprintf(&buf, "Economia potencial: %s\n", FormatCurrency(report.Risk.PotentialSavings))
	if report.Ledger != nil {
		fmt.Fprintf(&buf, "Saldo do livro caixa: %s\n", FormatCurrency(report.Ledger.ClosingBalance))
	}
	if h.NextPayment != nil {
		fmt.Fprintf(&buf, "Próximo mês projetado: %s %s\n", h.NextPayment.Label, FormatCurrency(h.NextPayment.Amount))
	}
	if report.IncomeTax != nil {
		fmt.Fprintf(&buf, "IRPF devido: %s\n", FormatCurrency(report.IncomeTax.TaxDue))
	}
	if report.DAS != nil {
		fmt.Fprintf(&buf, "DAS %s: %s, vencimento %s\n", report.DAS.Period.Label(), FormatCurrency(report.DAS.AmountDue), report.DAS.DueDate.Format("02/01/2006"))
	}
	if h.TopRecommendation != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Prioridade: %s [%s]\n", h.TopRecommendation.Title, RiskLabel(h.TopRecommendation.Priority))
	}
	if h.BestOpportunity != nil {
		fmt.Fprintf(&buf, "Maior oportunidade: %s (%s)\n", h.BestOpportunity.Description, FormatCurrency(h.BestOpportunity.EstimatedSavings))
	}
	for _, a := range report.Risk.Alerts {
		fmt.Fprintf(&buf, "Alerta: %s\n", a)
	}
	return buf.Bytes(), nil
}
