package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/finplan/internal/breakeven"
	"github.com/rgehrsitz/finplan/internal/compare"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/logging"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/rgehrsitz/finplan/internal/transform"
)

func taxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax [profile.yaml]",
		Short: "Compare the old and new tax regimes for a profile",
		Long: `Compute tax under both regimes, pick the cheaper one and suggest
deductions. Without a profile file the built-in demonstration profile is used.

Examples:
  finplan tax profile.yaml
  finplan tax profile.yaml --format json
  finplan tax profile.yaml --rules rules-2024.yaml --advice`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			debugMode, _ := cmd.Flags().GetBool("debug")
			logger, err := newLogger(settings, debugMode)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			evaluator, err := newEvaluator(cmd, settings)
			if err != nil {
				return err
			}
			evaluator.SetLogger(logging.Sugared(logger))
			evaluator.Debug = debugMode

			withAdvice, _ := cmd.Flags().GetBool("advice")
			if withAdvice || settings.Advisor.Enabled {
				attachAdvisor(evaluator, settings)
			}

			profile, err := loadProfile(args)
			if err != nil {
				return err
			}

			decision := evaluator.Evaluate(cmd.Context(), *profile)

			format, _ := cmd.Flags().GetString("format")
			return output.GenerateReport(cmd.OutOrStdout(), decision, format, evaluator.Rules.Currency)
		},
	}

	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormats(), ", ")+")")
	cmd.Flags().String("rules", "", "Rules YAML overriding the built-in slabs and limits")
	cmd.Flags().Bool("advice", false, "Ask the advisor for narrative suggestions")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	return cmd
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [profile.yaml]",
		Short: "Validate a profile file, and optionally a rules file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			if _, err := parser.LoadProfile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s is valid\n", args[0])

			if rulesPath, _ := cmd.Flags().GetString("rules"); rulesPath != "" {
				if _, err := parser.LoadRules(rulesPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rules %s are valid\n", rulesPath)
			}
			return nil
		},
	}

	cmd.Flags().String("rules", "", "Rules YAML to validate as well")

	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [profile.yaml]",
		Short: "Compare a profile against what-if templates and transforms",
		Long: `Evaluate the profile as entered and each alternative, and show how the
recommended regime and its tax change.

Examples:
  finplan compare profile.yaml --with max_80c,raise_10pct
  finplan compare profile.yaml --transform add_deduction:section=80D,amount=25000
  finplan compare profile.yaml --with max_all --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			evaluator, err := newEvaluator(cmd, settings)
			if err != nil {
				return err
			}

			profile, err := loadProfile(args)
			if err != nil {
				return err
			}

			templatesStr, _ := cmd.Flags().GetString("with")
			transforms, _ := cmd.Flags().GetStringArray("transform")
			templates := transform.ParseTemplateList(templatesStr)
			if len(templates) == 0 && len(transforms) == 0 {
				return fmt.Errorf("--with or --transform is required (see 'finplan templates')")
			}

			set, err := compare.NewCompareEngine(evaluator).Compare(cmd.Context(), *profile, compare.CompareOptions{
				Templates:      templates,
				TransformSpecs: transforms,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			if len(args) > 0 {
				set.ProfilePath = args[0]
			}

			out := cmd.OutOrStdout()
			format, _ := cmd.Flags().GetString("format")
			switch strings.ToLower(format) {
			case "csv":
				s, err := (&compare.CSVFormatter{}).Format(set)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, s)
			case "json":
				s, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, s)
			case "table", "console", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(set))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", format)
			}
			return nil
		},
	}

	cmd.Flags().String("with", "", "Comma-separated list of templates")
	cmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().String("rules", "", "Rules YAML overriding the built-in slabs and limits")

	return cmd
}

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven [profile.yaml]",
		Short: "Find the extra deduction at which the old regime wins",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			debugMode, _ := cmd.Flags().GetBool("debug")
			logger, err := newLogger(settings, debugMode)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			evaluator, err := newEvaluator(cmd, settings)
			if err != nil {
				return err
			}
			evaluator.SetLogger(logging.Sugared(logger))
			evaluator.Debug = debugMode

			profile, err := loadProfile(args)
			if err != nil {
				return err
			}

			result, err := breakeven.NewDefaultSolver(evaluator).Solve(cmd.Context(), *profile)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			switch strings.ToLower(format) {
			case "json":
				s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
			case "table", "console", "":
				fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().String("rules", "", "Rules YAML overriding the built-in slabs and limits")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	return cmd
}

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the what-if templates and transforms",
		Run: func(cmd *cobra.Command, args []string) {
			limits := domain.DefaultTaxRules().SuggestionLimits
			out := cmd.OutOrStdout()
			fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates(limits)))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Available Transforms:")
			for _, name := range transform.NewTransformRegistry(limits).List() {
				fmt.Fprintf(out, "  %s\n", name)
			}
		},
	}
}
