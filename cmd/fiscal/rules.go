package main

import (
	"fmt"

	"github.com/contabilizei/fiscal-calculator/internal/config"
	"github.com/spf13/cobra"
)

func (a *app) rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspeciona as tabelas de regras fiscais",
	}
	cmd.AddCommand(a.rulesDumpCmd())
	return cmd
}

func (a *app) rulesDumpCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Exporta as tabelas em uso como YAML editável",
		Long: `dump escreve as tabelas efetivas (padrão ou --rules, com os campos omitidos
preenchidos) em YAML. O arquivo gerado pode ser editado e usado com --rules.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, source, err := a.rules()
			if err != nil {
				return err
			}
			if out == "" {
				return emit(cmd.OutOrStdout(), "yaml", rules, nil)
			}
			if err := config.SaveRules(rules, out); err != nil {
				return fmt.Errorf("failed to save rules: %w", err)
			}
			a.log.Info().Str("source", source).Str("file", out).Msg("rules exported")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("✓"), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
