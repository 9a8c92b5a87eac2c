package calculation

import (
	"time"

	"github.com/contabilizei/fiscal-calculator/internal/config"
	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine binds a rule set to the calculators and logs what it runs.
type Engine struct {
	Rules  *domain.TaxRules
	Logger Logger

	// Now and NewReference default to the package providers.
	Now          func() time.Time
	NewReference func() string
}

// NewEngine creates an engine with the built-in tax tables
func NewEngine() *Engine {
	return NewEngineWithRules(config.DefaultRules())
}

// NewEngineWithRules creates an engine with a loaded rule set. A nil rule set
// falls back to the built-in tables.
func NewEngineWithRules(rules *domain.TaxRules) *Engine {
	if rules == nil {
		rules = config.DefaultRules()
	}
	return &Engine{
		Rules:        rules,
		Logger:       NopLogger{},
		Now:          nowFunc,
		NewReference: referenceFunc,
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) flatTaxOptions() []FlatTaxOption {
	return []FlatTaxOption{
		WithReferenceGenerator(e.NewReference),
		WithDocumentBaseURL(e.Rules.DASDocumentBaseURL),
	}
}

// IncomeTax computes the monthly IRPF with the engine's bracket table.
func (e *Engine) IncomeTax(taxableIncome, exemptIncome, deductions decimal.Decimal) (domain.BracketComputationResult, error) {
	e.Logger.Debugf("income tax: taxable=%s exempt=%s deductions=%s", taxableIncome, exemptIncome, deductions)
	result, err := ComputeBracketTax(taxableIncome, exemptIncome, deductions, e.Rules.IncomeTaxBrackets)
	if err != nil {
		logFailure(e.Logger, "income tax", err)
		return result, err
	}
	e.Logger.Infof("income tax: base=%s bracket=%d due=%s", result.TaxableBase, result.BracketIndex, result.TaxDue.StringFixed(2))
	return result, nil
}

// SimplesDAS issues a DAS guide for one period.
func (e *Engine) SimplesDAS(taxpayerID, period string, revenue decimal.Decimal) (domain.FlatTaxDocument, error) {
	e.Logger.Debugf("das: taxpayer=%s period=%s revenue=%s", taxpayerID, period, revenue)
	doc, err := ComputeFlatTax(taxpayerID, period, revenue, e.Rules.SimplesBands, e.flatTaxOptions()...)
	if err != nil {
		logFailure(e.Logger, "das", err)
		return doc, err
	}
	e.Logger.Infof("das: ref=%s amount=%s due=%s", doc.ReferenceCode, doc.AmountDue.StringFixed(2), doc.DueDate.Format("2006-01-02"))
	return doc, nil
}

// Ledger builds the cash-book view.
func (e *Engine) Ledger(inflows, outflows []domain.Transaction) (domain.LedgerResult, error) {
	e.Logger.Debugf("ledger: %d inflows, %d outflows", len(inflows), len(outflows))
	result, err := BuildLedger(inflows, outflows)
	if err != nil {
		logFailure(e.Logger, "ledger", err)
		return result, err
	}
	e.Logger.Infof("ledger: %d entries, closing balance %s", len(result.Entries), result.ClosingBalance.StringFixed(2))
	return result, nil
}

// Risk runs the fiscal risk heuristics.
func (e *Engine) Risk(profile domain.FiscalProfile) (domain.RiskAnalysis, error) {
	analysis, err := AnalyzeFiscalRisk(profile, e.Rules.Risk)
	if err != nil {
		logFailure(e.Logger, "risk analysis", err)
		return analysis, err
	}
	e.Logger.Infof("risk analysis: level=%s recommendations=%d alerts=%d", analysis.RiskLevel, len(analysis.Recommendations), len(analysis.Alerts))
	return analysis, nil
}

// Project distributes the estimated taxes of a forecast, starting this month.
func (e *Engine) Project(forecast domain.Forecast) (domain.ProjectionResult, error) {
	result, err := ProjectTaxes(forecast, e.Rules.Projection, e.Now())
	if err != nil {
		logFailure(e.Logger, "projection", err)
		return result, err
	}
	e.Logger.Infof("projection: %d months, total %s", len(result.PerMonth), result.TotalPeriod.StringFixed(2))
	return result, nil
}

// Report assembles the full fiscal report of a workbook.
func (e *Engine) Report(wb domain.Workbook) (*domain.FiscalReport, error) {
	e.Logger.Debugf("report: company=%q", wb.Company)
	report, err := BuildFiscalReport(wb, *e.Rules, e.Now(), e.flatTaxOptions()...)
	if err != nil {
		logFailure(e.Logger, "report", err)
		return nil, err
	}
	e.Logger.Infof("report: %s", report.Title)
	return report, nil
}
