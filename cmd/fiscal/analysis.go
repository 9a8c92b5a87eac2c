package main

import (
	"fmt"
	"io"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) ledgerCmd() *cobra.Command {
	var workbook, order, from, to, format string

	cmd := &cobra.Command{
		Use:     "ledger",
		Short:   "Monta o livro caixa a partir das entradas e saídas da planilha",
		Example: "  fiscal ledger --workbook empresa.yaml --order desc --from 2025-05-01 --to 2025-05-31",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sortOrder, err := domain.ParseSortOrder(order)
			if err != nil {
				return err
			}
			fromDay, err := parseDay("from", from)
			if err != nil {
				return err
			}
			toDay, err := parseDay("to", to)
			if err != nil {
				return err
			}

			wb, err := loadWorkbook(workbook)
			if err != nil {
				return err
			}
			inflows, outflows, err := workbookTransactions(wb)
			if err != nil {
				return err
			}

			engine, err := a.engine()
			if err != nil {
				return err
			}
			ledger, err := engine.Ledger(inflows, outflows)
			if err != nil {
				return err
			}

			view := ledger.Sorted(sortOrder)
			view.Entries = view.Between(fromDay, toDay)

			if output.NormalizeFormatName(format) == "csv" {
				data, err := output.CSVLedgerExporter{}.Format(&domain.FiscalReport{Ledger: &view})
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			return emit(cmd.OutOrStdout(), format, view, func(w io.Writer) {
				printTitle(w, "LIVRO CAIXA")
				if wb.Company != "" {
					fmt.Fprintln(w, labelStyle.Render("  "+wb.Company))
				}
				for _, e := range view.Entries {
					fmt.Fprintf(w, "  %s  %-30s %16s %16s\n",
						e.Date.Format("02/01/2006"), e.Description, output.FormatCurrency(e.Signed()), output.FormatCurrency(e.RunningBalance))
				}
				printField(w, "Total de entradas", output.FormatCurrency(view.TotalInflow))
				printField(w, "Total de saídas", output.FormatCurrency(view.TotalOutflow))
				printField(w, "Saldo final", boldStyle.Render(output.FormatCurrency(view.ClosingBalance)))
			})
		},
	}

	cmd.Flags().StringVarP(&workbook, "workbook", "w", "", "planilha YAML da empresa")
	cmd.Flags().StringVar(&order, "order", "asc", "ordem por data (asc, desc)")
	cmd.Flags().StringVar(&from, "from", "", "data inicial (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "data final (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, csv, json, yaml)")
	return cmd
}

func (a *app) riskCmd() *cobra.Command {
	var workbook, format string

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Avalia riscos fiscais e sugere economias",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wb, err := loadWorkbook(workbook)
			if err != nil {
				return err
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}
			analysis, err := engine.Risk(wb.Profile)
			if err != nil {
				return err
			}

			return emit(cmd.OutOrStdout(), format, analysis, func(w io.Writer) {
				printTitle(w, "ANÁLISE DE RISCO")
				printField(w, "Regime", wb.Profile.Regime.DisplayName())
				printField(w, "Nível de risco", renderRisk(analysis.RiskLevel))
				printField(w, "Carga tributária estimada", output.FormatCurrency(analysis.TaxBurden))
				printField(w, "Economia potencial", output.FormatCurrency(analysis.PotentialSavings))
				for _, r := range analysis.Recommendations {
					fmt.Fprintf(w, "  [%s] %s\n", renderRisk(r.Priority), boldStyle.Render(r.Title))
					fmt.Fprintf(w, "      %s\n", r.Description)
				}
				for _, alert := range analysis.Alerts {
					fmt.Fprintln(w, errorStyle.Render("  ! "+alert))
				}
			})
		},
	}

	cmd.Flags().StringVarP(&workbook, "workbook", "w", "", "planilha YAML da empresa")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json, yaml)")
	return cmd
}

func (a *app) projectCmd() *cobra.Command {
	var revenue, expenses, regime, sector, format string
	var months int

	cmd := &cobra.Command{
		Use:     "project",
		Short:   "Projeta os impostos dos próximos meses",
		Example: "  fiscal project --revenue 900000 --regime simples --months 12",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := parseAmount("projected_revenue", revenue)
			if err != nil {
				return err
			}
			e, err := parseAmount("projected_expenses", expenses)
			if err != nil {
				return err
			}
			reg, err := domain.ParseTaxRegime(regime)
			if err != nil {
				return err
			}

			engine, err := a.engine()
			if err != nil {
				return err
			}
			projection, err := engine.Project(domain.Forecast{
				ProjectedRevenue:  r,
				ProjectedExpenses: e,
				Regime:            reg,
				Months:            months,
				Sector:            sector,
			})
			if err != nil {
				return err
			}

			if output.NormalizeFormatName(format) == "projection-csv" || output.NormalizeFormatName(format) == "csv" {
				data, err := output.CSVProjectionExporter{}.Format(&domain.FiscalReport{Projection: &projection})
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			return emit(cmd.OutOrStdout(), format, projection, func(w io.Writer) {
				printTitle(w, "PROJEÇÃO DE IMPOSTOS - "+reg.DisplayName())
				for _, m := range projection.PerMonth {
					fmt.Fprintf(w, "  %-10s %16s\n", m.Label, output.FormatCurrency(m.Amount))
				}
				printField(w, "Total do período", boldStyle.Render(output.FormatCurrency(projection.TotalPeriod)))
				printField(w, "Média mensal", output.FormatCurrency(projection.MonthlyAverage))
				for _, s := range projection.ByTaxType {
					printField(w, s.Type, fmt.Sprintf("%s (%s)", output.FormatCurrency(s.Total), output.FormatPercentage(s.Percentage)))
				}
			})
		},
	}

	cmd.Flags().StringVar(&revenue, "revenue", "", "faturamento previsto para o período")
	cmd.Flags().StringVar(&expenses, "expenses", "", "despesas previstas")
	cmd.Flags().StringVar(&regime, "regime", "simples", "regime tributário (simples, presumido, real)")
	cmd.Flags().IntVar(&months, "months", 12, "número de meses (1 a 60)")
	cmd.Flags().StringVar(&sector, "sector", "", "setor de atividade")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, csv, json, yaml)")
	_ = cmd.MarkFlagRequired("revenue")
	return cmd
}
