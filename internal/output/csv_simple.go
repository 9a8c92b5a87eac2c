package output

import (
	"bytes"
	"encoding/csv"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
)

// CSVLedgerExporter writes the Livro Caixa, one row per entry in the
// ledger's current order. Amounts use plain two-place decimals so
// spreadsheets can re-read them.
type CSVLedgerExporter struct{}

func (c CSVLedgerExporter) Name() string { return "csv" }

func (c CSVLedgerExporter) Format(report *domain.FiscalReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Date", "Kind", "Description", "Category", "Amount", "RunningBalance", "Sequence"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if report.Ledger != nil {
		for _, e := range report.Ledger.Entries {
			row := []string{
				e.Date.Format("2006-01-02"),
				string(e.Kind),
				e.Description,
				e.Category,
				e.Signed().StringFixed(2),
				e.RunningBalance.StringFixed(2),
				intToString(e.Sequence),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
