package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/contabilizei/fiscal-calculator/internal/assistant"
	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/pkg/taxid"
	"github.com/spf13/cobra"
)

func (a *app) taxidCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "taxid <cpf|cnpj>",
		Short: "Valida e formata um CPF ou CNPJ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			kind := taxid.Detect(id)
			if kind == taxid.KindUnknown {
				return domain.NewInvalidInput("taxpayer_id", "%q is not a valid CPF or CNPJ", id)
			}

			result := struct {
				Kind       taxid.Kind `json:"kind" yaml:"kind"`
				Normalized string     `json:"normalized" yaml:"normalized"`
				Formatted  string     `json:"formatted" yaml:"formatted"`
			}{kind, taxid.Normalize(id), taxid.Format(id)}

			return emit(cmd.OutOrStdout(), format, result, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s %s\n", successStyle.Render("✓"), strings.ToUpper(string(kind)), boldStyle.Render(result.Formatted))
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json, yaml)")
	return cmd
}

func (a *app) askCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "ask <pergunta>",
		Short:   "Responde dúvidas fiscais frequentes",
		Example: `  fiscal ask "quando vence o DAS?"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			category := assistant.Classify(question)
			a.log.Debug().Str("category", string(category)).Msg("question classified")

			result := struct {
				Category assistant.Category `json:"category" yaml:"category"`
				Answer   string             `json:"answer" yaml:"answer"`
			}{category, assistant.Answer(category)}

			return emit(cmd.OutOrStdout(), format, result, func(w io.Writer) {
				fmt.Fprintln(w, labelStyle.Render("["+string(category)+"]"))
				fmt.Fprintln(w, result.Answer)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json, yaml)")
	return cmd
}
