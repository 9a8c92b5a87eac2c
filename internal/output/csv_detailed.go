package output

import (
	"bytes"
	"encoding/csv"

	"github.com/contabilizei/fiscal-calculator/internal/calculation"
	"github.com/contabilizei/fiscal-calculator/internal/domain"
)

// CSVProjectionExporter writes the monthly tax projection, one row per month
// with each month's amount split across the tax types. The split columns
// always add up to the month's amount.
type CSVProjectionExporter struct{}

func (c CSVProjectionExporter) Name() string { return "projection-csv" }

func (c CSVProjectionExporter) Format(report *domain.FiscalReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Period", "Label", "Amount"}
	var splits []domain.TaxTypeSplit
	if report.Projection != nil {
		for _, s := range report.Projection.ByTaxType {
			header = append(header, s.Type)
			splits = append(splits, domain.TaxTypeSplit{Type: s.Type, Percentage: s.Percentage})
		}
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if report.Projection != nil {
		for _, m := range report.Projection.PerMonth {
			row := []string{m.Month.String(), m.Label, m.Amount.StringFixed(2)}
			for _, share := range calculation.DistributeByType(m.Amount, splits) {
				row = append(row, share.Total.StringFixed(2))
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
