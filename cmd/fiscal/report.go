package main

import (
	"fmt"

	"github.com/contabilizei/fiscal-calculator/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) reportCmd() *cobra.Command {
	var workbook, format, dir string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Gera o relatório fiscal completo de uma planilha",
		Long: fmt.Sprintf(`Gera o relatório fiscal completo de uma planilha.

Formatos: %v
Apelidos: %v
Com --output os arquivos são gravados no diretório; "all" grava todos os formatos principais.`,
			output.AvailableFormatterNames(), output.AvailableFormatAliases()),
		Example: "  fiscal report --workbook empresa.yaml --format html --output relatorios/",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wb, err := loadWorkbook(workbook)
			if err != nil {
				return err
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}
			report, err := engine.Report(*wb)
			if err != nil {
				return err
			}
			report.Assumptions = output.GenerateAssumptions(engine.Rules)

			if dir == "" {
				data, err := output.Render(report, format)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			files, err := output.GenerateReport(report, format, dir)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ "+f))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workbook, "workbook", "w", "", "planilha YAML da empresa")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "report format or alias")
	cmd.Flags().StringVarP(&dir, "output", "o", "", "diretório de saída (padrão: imprime na tela)")
	return cmd
}
