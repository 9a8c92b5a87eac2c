package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/pkg/taxid"
)

const ruleWidth = 81

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.FiscalReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(&buf, strings.ToUpper(report.Title))
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	if report.Company != "" {
		fmt.Fprintf(&buf, "Empresa:   %s\n", report.Company)
	}
	if report.TaxpayerID != "" {
		fmt.Fprintf(&buf, "Documento: %s\n", taxid.Format(report.TaxpayerID))
	}
	fmt.Fprintf(&buf, "Regime:    %s\n", report.Profile.Regime.DisplayName())
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Gerado em: %s\n", report.GeneratedAt.Format("02/01/2006 15:04"))
	}
	fmt.Fprintln(&buf)

	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	fmt.Fprintln(&buf, "PREMISSAS:")
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeProfile(&buf, report.Profile)
	writeRisk(&buf, report.Risk)
	if report.Ledger != nil {
		writeLedger(&buf, report.Ledger)
	}
	if report.Projection != nil {
		writeProjection(&buf, report.Projection)
	}
	if report.IncomeTax != nil {
		writeIncomeTax(&buf, report.IncomeTax)
	}
	if report.DAS != nil {
		writeDAS(&buf, report.DAS)
	}
	return buf.Bytes(), nil
}

func section(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", len([]rune(title))))
}

func line(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "  %-28s %s\n", label+":", value)
}

// RiskLabel is the pt-BR label of a risk level.
func RiskLabel(l domain.RiskLevel) string {
	switch l {
	case domain.RiskHigh:
		return "ALTO"
	case domain.RiskMedium:
		return "MÉDIO"
	default:
		return "BAIXO"
	}
}

func writeProfile(buf *bytes.Buffer, p domain.FiscalProfile) {
	section(buf, "PERFIL FISCAL")
	line(buf, "Faturamento anual", FormatCurrency(p.Revenue))
	line(buf, "Custos fixos", FormatCurrency(p.FixedCosts))
	line(buf, "Custos variáveis", FormatCurrency(p.VariableCosts))
	line(buf, "Despesas totais", FormatCurrency(p.TotalExpenses()))
	if p.Payroll != nil {
		line(buf, "Folha de pagamento", FormatCurrency(*p.Payroll))
	}
	line(buf, "Funcionários", intToString(p.Employees))
	fmt.Fprintln(buf)
}

func writeRisk(buf *bytes.Buffer, r domain.RiskAnalysis) {
	section(buf, "ANÁLISE DE RISCO")
	line(buf, "Nível de risco", RiskLabel(r.RiskLevel))
	line(buf, "Carga tributária estimada", FormatCurrency(r.TaxBurden))
	line(buf, "Economia potencial", FormatCurrency(r.PotentialSavings))
	if len(r.Recommendations) > 0 {
		fmt.Fprintln(buf, "RECOMENDAÇÕES:")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(buf, "  [%s] %s\n", RiskLabel(rec.Priority), rec.Title)
			fmt.Fprintf(buf, "      %s\n", rec.Description)
		}
	}
	if len(r.Opportunities) > 0 {
		fmt.Fprintln(buf, "OPORTUNIDADES:")
		for _, o := range r.Opportunities {
			fmt.Fprintf(buf, "  • %s: %s\n", o.Description, FormatCurrency(o.EstimatedSavings))
		}
	}
	if len(r.Alerts) > 0 {
		fmt.Fprintln(buf, "ALERTAS:")
		for _, a := range r.Alerts {
			fmt.Fprintf(buf, "  ! %s\n", a)
		}
	}
	fmt.Fprintln(buf)
}

func writeLedger(buf *bytes.Buffer, l *domain.LedgerResult) {
	section(buf, "LIVRO CAIXA")
	fmt.Fprintf(buf, "%-10s %-30s %18s %18s\n", "DATA", "DESCRIÇÃO", "VALOR", "SALDO")
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	for _, e := range l.Entries {
		fmt.Fprintf(buf, "%-10s %-30s %18s %18s\n",
			e.Date.Format("02/01/2006"), truncateText(e.Description, 30), FormatCurrency(e.Signed()), FormatCurrency(e.RunningBalance))
	}
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	line(buf, "Total de entradas", FormatCurrency(l.TotalInflow))
	line(buf, "Total de saídas", FormatCurrency(l.TotalOutflow))
	line(buf, "Saldo final", FormatCurrency(l.ClosingBalance))
	fmt.Fprintln(buf)
}

func writeProjection(buf *bytes.Buffer, p *domain.ProjectionResult) {
	section(buf, "PROJEÇÃO DE IMPOSTOS")
	for _, m := range p.PerMonth {
		fmt.Fprintf(buf, "  %-10s %18s\n", m.Label, FormatCurrency(m.Amount))
	}
	line(buf, "Total do período", FormatCurrency(p.TotalPeriod))
	line(buf, "Média mensal", FormatCurrency(p.MonthlyAverage))
	fmt.Fprintln(buf, "POR TRIBUTO:")
	for _, s := range p.ByTaxType {
		fmt.Fprintf(buf, "  %-8s %18s (%s)\n", s.Type, FormatCurrency(s.Total), FormatPercentage(s.Percentage))
	}
	fmt.Fprintln(buf)
}

func writeIncomeTax(buf *bytes.Buffer, r *domain.BracketComputationResult) {
	section(buf, "IMPOSTO DE RENDA (IRPF)")
	line(buf, "Rendimentos tributáveis", FormatCurrency(r.TaxableIncome))
	line(buf, "Rendimentos isentos", FormatCurrency(r.ExemptIncome))
	line(buf, "Deduções", FormatCurrency(r.Deductions))
	line(buf, "Base de cálculo", FormatCurrency(r.TaxableBase))
	line(buf, "Faixa", intToString(r.BracketIndex+1))
	line(buf, "Imposto devido", FormatCurrency(r.TaxDue))
	line(buf, "Alíquota efetiva", FormatPercentage(r.EffectiveRate))
	for _, s := range r.Breakdown {
		fmt.Fprintf(buf, "  faixa %d %18s × %-7s = %s\n",
			s.BracketIndex+1, FormatCurrency(s.AmountInBracket), FormatPercentage(s.Rate), FormatCurrency(s.TaxInBracket))
	}
	fmt.Fprintln(buf)
}

func writeDAS(buf *bytes.Buffer, d *domain.FlatTaxDocument) {
	section(buf, "DAS - SIMPLES NACIONAL")
	line(buf, "Período de apuração", d.Period.Label())
	line(buf, "Faturamento", FormatCurrency(d.Revenue))
	line(buf, "Alíquota", FormatPercentage(d.Rate))
	line(buf, "Valor a pagar", FormatCurrency(d.AmountDue))
	line(buf, "Vencimento", d.DueDate.Format("02/01/2006"))
	line(buf, "Referência", d.ReferenceCode)
	if d.DocumentURL != "" {
		line(buf, "Guia", d.DocumentURL)
	}
	fmt.Fprintln(buf)
}

func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
