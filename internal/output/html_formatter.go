package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/pkg/taxid"
)

// HTMLFormatter produces a self-contained HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"risk": RiskLabel,
	"doc":  taxid.Format,
	"add":  func(i, j int) int { return i + j },
	"date": func(layout string, v interface{ Format(string) string }) string { return v.Format(layout) },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.FiscalReport) ([]byte, error) {
	var buf bytes.Buffer

	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}

	data := struct {
		*domain.FiscalReport
		Highlights  Highlights
		Assumptions []string
	}{report, AnalyzeReport(report), assumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
