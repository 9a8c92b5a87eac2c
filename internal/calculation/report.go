package calculation

import (
	"fmt"
	"time"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/pkg/dateutil"
)

// ReportTitle is the heading of a report generated at t, e.g.
// "Relatório Fiscal - outubro/2026".
func ReportTitle(t time.Time) string {
	return fmt.Sprintf("Relatório Fiscal - %s/%d", dateutil.MonthNamePT(t.Month()), t.Year())
}

// BuildFiscalReport runs every calculator the workbook has input for.
// Only the title and GeneratedAt depend on now.
func BuildFiscalReport(wb domain.Workbook, rules domain.TaxRules, now time.Time, opts ...FlatTaxOption) (*domain.FiscalReport, error) {
	risk, err := AnalyzeFiscalRisk(wb.Profile, rules.Risk)
	if err != nil {
		return nil, fmt.Errorf("risk analysis: %w", err)
	}

	report := &domain.FiscalReport{
		Title:       ReportTitle(now),
		GeneratedAt: now,
		Company:     wb.Company,
		TaxpayerID:  wb.TaxpayerID,
		Profile:     wb.Profile,
		Risk:        risk,
	}

	if len(wb.Inflows) > 0 || len(wb.Outflows) > 0 {
		ledger, err := ledgerFromWorkbook(wb)
		if err != nil {
			return nil, fmt.Errorf("ledger: %w", err)
		}
		report.Ledger = &ledger
	}

	if wb.Forecast != nil {
		projection, err := ProjectTaxes(*wb.Forecast, rules.Projection, now)
		if err != nil {
			return nil, fmt.Errorf("projection: %w", err)
		}
		report.Projection = &projection
	}

	if wb.IncomeTax != nil {
		it := wb.IncomeTax
		result, err := ComputeBracketTax(it.TaxableIncome, it.ExemptIncome, it.Deductions, rules.IncomeTaxBrackets)
		if err != nil {
			return nil, fmt.Errorf("income tax: %w", err)
		}
		report.IncomeTax = &result
	}

	if wb.DAS != nil {
		doc, err := ComputeFlatTax(wb.TaxpayerID, wb.DAS.Period, wb.DAS.Revenue, rules.SimplesBands, opts...)
		if err != nil {
			return nil, fmt.Errorf("das: %w", err)
		}
		report.DAS = &doc
	}

	return report, nil
}

func ledgerFromWorkbook(wb domain.Workbook) (domain.LedgerResult, error) {
	inflows, err := TransactionsFromInputs("inflows", wb.Inflows, domain.Inflow)
	if err != nil {
		return domain.LedgerResult{}, err
	}
	outflows, err := TransactionsFromInputs("outflows", wb.Outflows, domain.Outflow)
	if err != nil {
		return domain.LedgerResult{}, err
	}
	return BuildLedger(inflows, outflows)
}
