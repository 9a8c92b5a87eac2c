package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/internal/output"
)

var (
	primaryColor = lipgloss.Color("#0B7285")
	successColor = lipgloss.Color("#2B8A3E")
	warningColor = lipgloss.Color("#E67700")
	errorColor   = lipgloss.Color("#C92A2A")
	subtleColor  = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	boldStyle = lipgloss.NewStyle().
			Bold(true)
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-26s", label+":")), value)
}

func riskStyle(level domain.RiskLevel) lipgloss.Style {
	switch level {
	case domain.RiskHigh:
		return errorStyle
	case domain.RiskMedium:
		return warningStyle
	default:
		return successStyle
	}
}

func renderRisk(level domain.RiskLevel) string {
	return riskStyle(level).Render(output.RiskLabel(level))
}
