package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/finplan/internal/advisor"
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "finplan",
		Short: "Personal finance planner: tax regimes, SIP, loans, budgets and goals",
		Long: `finplan compares the old and new Indian income-tax regimes for a salaried
profile, suggests deductions, and finds the extra deduction at which the old
regime starts to win. It also projects SIPs, computes loan EMIs, reviews a
monthly budget, plans savings goals, values portfolios and categorises bank
statements, on the command line or over HTTP.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "Settings file (default: ./finplan.yaml or ~/.config/finplan/finplan.yaml)")

	root.AddCommand(
		taxCmd(),
		validateCmd(),
		compareCmd(),
		breakEvenCmd(),
		templatesCmd(),
		sipCmd(),
		loanCmd(),
		budgetCmd(),
		goalCmd(),
		portfolioCmd(),
		expensesCmd(),
		serveCmd(),
		versionCmd(),
	)

	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// loadSettings reads the --config settings file and environment
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.LoadSettings(path)
}

// newLogger builds the zap logger for settings, forcing debug level when
// debug is set
func newLogger(s *config.Settings, debug bool) (*zap.Logger, error) {
	level := s.Log.Level
	if debug {
		level = "debug"
	}
	return logging.New(level, s.Log.Format)
}

// newEvaluator builds an evaluator from the rules file named by --rules or
// the settings, falling back to the built-in tables
func newEvaluator(cmd *cobra.Command, s *config.Settings) (*calculation.TaxEvaluator, error) {
	rulesPath := s.RulesPath
	if cmd.Flags().Lookup("rules") != nil {
		if p, _ := cmd.Flags().GetString("rules"); p != "" {
			rulesPath = p
		}
	}

	if rulesPath == "" {
		return calculation.NewTaxEvaluator(), nil
	}

	rules, err := config.NewInputParser().LoadRules(rulesPath)
	if err != nil {
		return nil, err
	}
	return calculation.NewTaxEvaluatorWithRules(*rules), nil
}

// attachAdvisor installs the chat-completions advisor. Without an API key
// the advisor reports itself unavailable rather than failing the command.
func attachAdvisor(e *calculation.TaxEvaluator, s *config.Settings) {
	if s.Advisor.APIKey == "" {
		e.SetAdvisor(calculation.AdvisorFunc(func(ctx context.Context, p domain.TaxProfile) (string, error) {
			return "", errors.New("no API key configured (set OPENAI_API_KEY or FINPLAN_ADVISOR_API_KEY)")
		}), s.Advisor.Timeout)
		return
	}

	client := advisor.NewClient(s.Advisor.APIKey,
		advisor.WithBaseURL(s.Advisor.BaseURL),
		advisor.WithModel(s.Advisor.Model),
		advisor.WithCurrency(e.Rules.Currency),
	)
	e.SetAdvisor(client, s.Advisor.Timeout)
}

// loadProfile reads the profile named by args, or returns the demonstration
// profile when no file is given
func loadProfile(args []string) (*domain.TaxProfile, error) {
	if len(args) == 0 {
		p := domain.SampleTaxProfile()
		return &p, nil
	}
	return config.NewInputParser().LoadProfile(args[0])
}
