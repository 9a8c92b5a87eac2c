package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/contabilizei/fiscal-calculator/internal/calculation"
	"github.com/contabilizei/fiscal-calculator/internal/config"
	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/internal/output"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// parseAmount reads a decimal flag; empty means zero.
func parseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewInvalidInput(field, "not a number: %q", s)
	}
	return d, nil
}

// parseDay reads an optional ISO date flag.
func parseDay(field, s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.NewInvalidInput(field, "expected YYYY-MM-DD, got %q", s)
	}
	return t, nil
}

// emit writes v as JSON or YAML, or calls console for the styled view.
func emit(w io.Writer, format string, v any, console func(io.Writer)) error {
	switch output.NormalizeFormatName(format) {
	case "", "console", "console-lite":
		console(w)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q (use console, json or yaml)", output.ErrUnsupportedFormat, format)
	}
}

func loadWorkbook(path string) (*domain.Workbook, error) {
	if path == "" {
		return nil, domain.NewInvalidInput("workbook", "a workbook file is required (--workbook)")
	}
	wb, err := config.NewInputParser().LoadWorkbookFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load workbook: %w", err)
	}
	return wb, nil
}

func workbookTransactions(wb *domain.Workbook) (inflows, outflows []domain.Transaction, err error) {
	inflows, err = calculation.TransactionsFromInputs("inflows", wb.Inflows, domain.Inflow)
	if err != nil {
		return nil, nil, err
	}
	outflows, err = calculation.TransactionsFromInputs("outflows", wb.Outflows, domain.Outflow)
	if err != nil {
		return nil, nil, err
	}
	return inflows, outflows, nil
}
