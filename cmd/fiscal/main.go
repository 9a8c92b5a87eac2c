package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/contabilizei/fiscal-calculator/internal/calculation"
	"github.com/contabilizei/fiscal-calculator/internal/config"
	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/internal/logger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v       *viper.Viper
	log     zerolog.Logger
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "fiscal",
		Short: "Calculadora fiscal para pequenas empresas brasileiras",
		Long: `fiscal calcula IRPF, gera guias DAS do Simples Nacional, monta o livro caixa,
avalia riscos fiscais e projeta impostos a partir de uma planilha YAML.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/fiscal/fiscal.yaml)")
	pf.String("rules", "", "YAML tax rule tables (default: built-in tables)")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")

	_ = a.v.BindPFlag("rules", pf.Lookup("rules"))
	_ = a.v.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", pf.Lookup("log-format"))

	root.AddCommand(a.irpfCmd())
	root.AddCommand(a.dasCmd())
	root.AddCommand(a.ledgerCmd())
	root.AddCommand(a.riskCmd())
	root.AddCommand(a.projectCmd())
	root.AddCommand(a.reportCmd())
	root.AddCommand(a.taxidCmd())
	root.AddCommand(a.askCmd())
	root.AddCommand(a.rulesCmd())
	root.AddCommand(versionCmd())
	return root
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("erro: "+err.Error()))
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	// .env values never override variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", "fiscal"))
		}
		a.v.AddConfigPath(".")
		a.v.SetConfigName("fiscal")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("FISCAL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()
	a.v.SetDefault("storage.path", defaultArchivePath())

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	log, err := logger.Configure(logger.Options{
		Level:  a.v.GetString("logging.level"),
		Format: a.v.GetString("logging.format"),
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.log = log
	cmd.SetContext(logger.WithContext(cmd.Context(), log))

	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug().Str("file", used).Msg("loaded config")
	}
	return nil
}

func defaultArchivePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "fiscal-das.db"
	}
	return filepath.Join(home, ".local", "share", "fiscal", "das.db")
}

// engine builds a calculation engine from the configured rule tables.
func (a *app) engine() (*calculation.Engine, error) {
	rules, source, err := a.rules()
	if err != nil {
		return nil, err
	}

	e := calculation.NewEngineWithRules(rules)
	log := logger.WithFields(a.log, map[string]interface{}{
		"rules_year":   rules.Year,
		"rules_source": source,
	})
	e.SetLogger(logger.NewAdapter(log, "engine"))
	return e, nil
}

// rules resolves the effective rule tables and names where they came from.
func (a *app) rules() (*domain.TaxRules, string, error) {
	rules, source := config.DefaultRules(), "builtin"
	if path := a.v.GetString("rules"); path != "" {
		loaded, err := config.NewInputParser().LoadRulesFromFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load rules: %w", err)
		}
		rules, source = loaded, path
	}
	if base := a.v.GetString("das.base_url"); base != "" {
		rules.DASDocumentBaseURL = base
	}
	return rules, source, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Mostra a versão",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fiscal %s\n", version)
		},
	}
}
