package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
)

// ErrUnsupportedFormat is returned when no formatter matches a requested name.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// allFormats are written by the "all" pseudo-format.
var allFormats = []string{"console", "csv", "projection-csv", "json"}

// GenerateReport writes report to dir in the requested format and returns the
// files it created. "all" writes the detailed console, both CSVs and JSON.
func GenerateReport(report *domain.FiscalReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range allFormats {
			written, err := GenerateReport(report, name, dir)
			if err != nil {
				return files, err
			}
			files = append(files, written...)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	ext := ExtensionFor(f.Name())
	// both CSV exports share an extension
	if f.Name() == "projection-csv" {
		ext = "projecao.csv"
	}
	name, err := WriteFormatted(f, report, dir, ext)
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// Render formats report in memory, resolving aliases.
func Render(report *domain.FiscalReport, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "))
	}
	return f.Format(report)
}
