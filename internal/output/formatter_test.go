package output

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/contabilizei/fiscal-calculator/internal/calculation"
	"github.com/contabilizei/fiscal-calculator/internal/config"
	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

var fixtureNow = time.Date(2026, time.October, 19, 14, 30, 0, 0, time.UTC)

func buildTestReport(t *testing.T) *domain.FiscalReport {
	t.Helper()
	wb, err := config.NewInputParser().LoadWorkbookFromFile("../../testdata/workbook.yaml")
	if err != nil {
		t.Fatalf("load workbook: %v", err)
	}
	report, err := calculation.BuildFiscalReport(*wb, *config.DefaultRules(), fixtureNow,
		calculation.WithReferenceGenerator(func() string { return "DAS-TEST0001" }))
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	return report
}

func TestConsoleLiteFormatter(t *testing.T) {
	f := ConsoleFormatter{}
	out, err := f.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"Relatório Fiscal - outubro/2026",
		"Carga tributária: R$ 51.000,00 (6,00% do faturamento)",
		"Nível de risco: BAIXO",
		"Saldo do livro caixa: R$ 5.700,50",
		"IRPF devido: R$ 214,73",
		"DAS dez/2025: R$ 2.833,33, vencimento 20/01/2026",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in summary, got: %s", want, content)
		}
	}
}

func TestConsoleVerboseFormatter(t *testing.T) {
	f := ConsoleVerboseFormatter{}
	out, err := f.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "RELATÓRIO FISCAL - OUTUBRO/2026") {
		t.Fatalf("expected verbose heading, got: %s", truncate(content, 200))
	}
	for _, heading := range []string{"PERFIL FISCAL", "ANÁLISE DE RISCO", "LIVRO CAIXA", "PROJEÇÃO DE IMPOSTOS", "IMPOSTO DE RENDA (IRPF)", "DAS - SIMPLES NACIONAL"} {
		if !strings.Contains(content, heading) {
			t.Fatalf("missing section %q", heading)
		}
	}
	if !strings.Contains(content, "11.222.333/0001-81") {
		t.Fatalf("expected formatted CNPJ in header")
	}
}

func TestConsoleVerboseFormatter_OmitsMissingSections(t *testing.T) {
	report := buildTestReport(t)
	report.Ledger = nil
	report.DAS = nil
	out, err := ConsoleVerboseFormatter{}.Format(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if strings.Contains(content, "LIVRO CAIXA") || strings.Contains(content, "DAS - SIMPLES NACIONAL") {
		t.Fatalf("sections without data should be skipped")
	}
}

func TestCSVLedgerExporterRows(t *testing.T) {
	out, err := CSVLedgerExporter{}.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines (header+4 rows), got %d", len(lines))
	}
	if lines[1] != "2025-05-05,inflow,Venda balcão,vendas,3500.00,3500.00,0" {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if !strings.HasSuffix(lines[4], ",-800.00,5700.50,3") {
		t.Fatalf("unexpected last row: %q", lines[4])
	}
}

func TestCSVProjectionExporterRows(t *testing.T) {
	out, err := CSVProjectionExporter{}.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 13 {
		t.Fatalf("expected 13 lines (header+12 months), got %d", len(lines))
	}
	if lines[1] != "2026-10,out/2026,4725.00,4725.00" {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
}

// Golden snapshot tests (prefix-based) ensure key headers remain stable.
func TestGoldenSnapshots(t *testing.T) {
	cases := []struct {
		name      string
		golden    string
		formatter Formatter
	}{
		{"console_verbose", "console_verbose.golden", ConsoleVerboseFormatter{}},
		{"console_lite", "console_lite.golden", ConsoleFormatter{}},
		{"csv_ledger", "csv_ledger.golden", CSVLedgerExporter{}},
		{"csv_projection", "csv_projection.golden", CSVProjectionExporter{}},
		{"html", "html_prefix.golden", HTMLFormatter{}},
	}

	report := buildTestReport(t)
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	for _, tc := range cases {
		out, err := tc.formatter.Format(report)
		if err != nil {
			t.Fatalf("%s: format error: %v", tc.name, err)
		}
		goldenPath := filepath.Join("testdata", tc.golden)
		if update {
			// only first line to keep golden small & stable
			line := firstLine(string(out)) + "\n"
			if err := os.WriteFile(goldenPath, []byte(line), 0644); err != nil {
				t.Fatalf("%s: update golden failed: %v", tc.name, err)
			}
		}
		data, err := os.ReadFile(goldenPath)
		if err != nil {
			t.Fatalf("%s: read golden: %v", tc.name, err)
		}
		if !strings.HasPrefix(string(out), strings.TrimSpace(string(data))) {
			t.Fatalf("%s: output does not match golden prefix %q", tc.name, strings.TrimSpace(string(data)))
		}
	}
}

func TestHTMLFormatterBasic(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"Análise de Risco", "Livro Caixa", "R$ 2.833,33", "DAS-TEST0001"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in HTML output", want)
		}
	}
}

func TestHTMLAssumptionsSectionPresent(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t))
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Premissas") {
		t.Fatalf("expected Premissas section in HTML output")
	}
	found := false
	for _, a := range DefaultAssumptions {
		if strings.Contains(content, a) {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected at least one default assumption to be rendered in HTML")
	}
}

func TestJSONAndYAMLFormatters(t *testing.T) {
	report := buildTestReport(t)

	out, err := JSONFormatter{}.Format(report)
	if err != nil {
		t.Fatalf("json format error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("json output does not parse: %v", err)
	}
	if decoded["title"] != "Relatório Fiscal - outubro/2026" {
		t.Fatalf("unexpected json title: %v", decoded["title"])
	}

	out, err = YAMLFormatter{}.Format(report)
	if err != nil {
		t.Fatalf("yaml format error: %v", err)
	}
	var doc struct {
		Company string `yaml:"company"`
	}
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("yaml output does not parse: %v", err)
	}
	if doc.Company != "Padaria Pão Quente LTDA" {
		t.Fatalf("unexpected yaml company: %q", doc.Company)
	}
}

func TestGetFormatterByNameResolvesAliases(t *testing.T) {
	cases := map[string]string{
		"console":     "console",
		"verbose":     "console",
		"RESUMO":      "console-lite",
		"livro-caixa": "csv",
		" yml ":       "yaml",
		"html-report": "html",
	}
	for in, want := range cases {
		f := GetFormatterByName(in)
		if f == nil {
			t.Fatalf("%q: no formatter", in)
		}
		if f.Name() != want {
			t.Fatalf("%q: got %s, want %s", in, f.Name(), want)
		}
	}
	if GetFormatterByName("pdf") != nil {
		t.Fatalf("pdf should not resolve")
	}
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{"console": "txt", "console-lite": "txt", "csv": "csv", "projection-csv": "csv", "json": "json", "html": "html"}
	for in, want := range cases {
		if got := ExtensionFor(in); got != want {
			t.Fatalf("ExtensionFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(buildTestReport(t), "pdf")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
