package main

import (
	"fmt"
	"io"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/internal/output"
	"github.com/contabilizei/fiscal-calculator/internal/storage"
	"github.com/contabilizei/fiscal-calculator/pkg/taxid"
	"github.com/spf13/cobra"
)

func (a *app) irpfCmd() *cobra.Command {
	var taxable, exempt, deductions, format string

	cmd := &cobra.Command{
		Use:     "irpf",
		Short:   "Calcula o IRPF mensal pela tabela progressiva",
		Example: "  fiscal irpf --taxable 5000 --exempt 1200 --deductions 1100",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := parseAmount("taxable_income", taxable)
			if err != nil {
				return err
			}
			e, err := parseAmount("exempt_income", exempt)
			if err != nil {
				return err
			}
			d, err := parseAmount("deductions", deductions)
			if err != nil {
				return err
			}

			engine, err := a.engine()
			if err != nil {
				return err
			}
			result, err := engine.IncomeTax(t, e, d)
			if err != nil {
				return err
			}

			return emit(cmd.OutOrStdout(), format, result, func(w io.Writer) {
				printTitle(w, "IMPOSTO DE RENDA (IRPF)")
				printField(w, "Base de cálculo", output.FormatCurrency(result.TaxableBase))
				printField(w, "Faixa", fmt.Sprintf("%d de %d", result.BracketIndex+1, len(engine.Rules.IncomeTaxBrackets)))
				printField(w, "Imposto devido", boldStyle.Render(output.FormatCurrency(result.TaxDue)))
				printField(w, "Alíquota efetiva", output.FormatPercentage(result.EffectiveRate))
			})
		},
	}

	cmd.Flags().StringVar(&taxable, "taxable", "", "rendimentos tributáveis do mês")
	cmd.Flags().StringVar(&exempt, "exempt", "", "rendimentos isentos")
	cmd.Flags().StringVar(&deductions, "deductions", "", "deduções legais")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json, yaml)")
	_ = cmd.MarkFlagRequired("taxable")
	return cmd
}

func (a *app) dasCmd() *cobra.Command {
	var taxpayer, period, revenue, format string
	var save bool

	cmd := &cobra.Command{
		Use:     "das",
		Short:   "Gera a guia DAS do Simples Nacional",
		Example: "  fiscal das --taxpayer 11.222.333/0001-81 --period 2025-12 --revenue 70833.33 --save",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !taxid.ValidateCPF(taxpayer) && !taxid.ValidateCNPJ(taxpayer) {
				return domain.NewInvalidInput("taxpayer_id", "invalid CPF/CNPJ %q", taxpayer)
			}
			r, err := parseAmount("revenue", revenue)
			if err != nil {
				return err
			}

			engine, err := a.engine()
			if err != nil {
				return err
			}
			doc, err := engine.SimplesDAS(taxpayer, period, r)
			if err != nil {
				return err
			}

			if save {
				archive, err := storage.NewDASArchive(cmd.Context(), a.v.GetString("storage.path"))
				if err != nil {
					return fmt.Errorf("failed to open DAS archive: %w", err)
				}
				defer func() { _ = archive.Close() }()
				if err := archive.Save(cmd.Context(), doc); err != nil {
					return err
				}
				a.log.Info().Str("reference", doc.ReferenceCode).Msg("DAS archived")
			}

			return emit(cmd.OutOrStdout(), format, doc, func(w io.Writer) {
				printDAS(w, doc)
				if save {
					fmt.Fprintln(w, successStyle.Render("✓ guia arquivada"))
				}
			})
		},
	}

	cmd.Flags().StringVar(&taxpayer, "taxpayer", "", "CNPJ ou CPF do contribuinte")
	cmd.Flags().StringVar(&period, "period", "", "período de apuração (YYYY-MM)")
	cmd.Flags().StringVar(&revenue, "revenue", "", "faturamento do período")
	cmd.Flags().BoolVar(&save, "save", false, "arquiva a guia no banco local")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json, yaml)")
	_ = cmd.MarkFlagRequired("taxpayer")
	_ = cmd.MarkFlagRequired("period")
	_ = cmd.MarkFlagRequired("revenue")

	cmd.AddCommand(a.dasListCmd())
	return cmd
}

func (a *app) dasListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list <cnpj|cpf>",
		Short: "Lista as guias DAS arquivadas de um contribuinte",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := storage.NewDASArchive(cmd.Context(), a.v.GetString("storage.path"))
			if err != nil {
				return fmt.Errorf("failed to open DAS archive: %w", err)
			}
			defer func() { _ = archive.Close() }()

			docs, err := archive.ListByTaxpayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), format, docs, func(w io.Writer) {
				printTitle(w, "GUIAS DAS - "+taxid.Format(args[0]))
				if len(docs) == 0 {
					fmt.Fprintln(w, labelStyle.Render("  nenhuma guia arquivada"))
					return
				}
				for _, d := range docs {
					fmt.Fprintf(w, "  %-9s %-22s %16s  vence %s\n",
						d.Period.Label(), d.ReferenceCode, output.FormatCurrency(d.AmountDue), d.DueDate.Format("02/01/2006"))
				}
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json, yaml)")
	return cmd
}

func printDAS(w io.Writer, doc domain.FlatTaxDocument) {
	printTitle(w, "DAS - SIMPLES NACIONAL")
	printField(w, "Contribuinte", taxid.Format(doc.TaxpayerID))
	printField(w, "Período de apuração", doc.Period.Label())
	printField(w, "Faturamento", output.FormatCurrency(doc.Revenue))
	printField(w, "Alíquota", output.FormatPercentage(doc.Rate))
	printField(w, "Valor a pagar", boldStyle.Render(output.FormatCurrency(doc.AmountDue)))
	printField(w, "Vencimento", doc.DueDate.Format("02/01/2006"))
	printField(w, "Referência", doc.ReferenceCode)
	if doc.DocumentURL != "" {
		printField(w, "Guia", doc.DocumentURL)
	}
}
