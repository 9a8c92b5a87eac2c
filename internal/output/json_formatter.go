package output

import (
	"encoding/json"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
)

// JSONFormatter serializes the fiscal report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.FiscalReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
