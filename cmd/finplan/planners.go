package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/planner"
)

const currency = "₹"

// decimalFlag reads a string flag holding a decimal amount
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return v, nil
}

// decimalFlags reads several decimal flags, stopping at the first error
func decimalFlags(cmd *cobra.Command, names ...string) ([]decimal.Decimal, error) {
	values := make([]decimal.Decimal, len(names))
	for i, name := range names {
		v, err := decimalFlag(cmd, name)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// printResult writes v as indented JSON when --json is set, otherwise calls
// table
func printResult(cmd *cobra.Command, v any, table func(w io.Writer)) error {
	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func money(v decimal.Decimal) string {
	return domain.FormatMoney(currency, v)
}

func sipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sip",
		Short: "Project the value of a monthly SIP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := decimalFlags(cmd, "amount", "rate")
			if err != nil {
				return err
			}
			years, _ := cmd.Flags().GetInt("years")

			result, err := planner.ProjectSIP(domain.SIPInput{MonthlyAmount: values[0], Years: years, AnnualRate: values[1]})
			if err != nil {
				return err
			}

			return printResult(cmd, result, func(w io.Writer) {
				fmt.Fprintf(w, "Monthly Investment:\t%s\n", money(result.MonthlyInvestment))
				fmt.Fprintf(w, "Duration:\t%d years at %s%%\n", result.Years, result.Rate)
				fmt.Fprintf(w, "Total Invested:\t%s\n", money(result.TotalInvested))
				fmt.Fprintf(w, "Projected Value:\t%s\n", money(result.ProjectedValue))
				fmt.Fprintf(w, "Estimated Gain:\t%s\n", money(result.EstimatedGain))
				fmt.Fprintln(w)
				fmt.Fprintln(w, "Year\tValue")
				for i, v := range result.YearEndValues {
					fmt.Fprintf(w, "%d\t%s\n", i+1, money(v))
				}
			})
		},
	}

	cmd.Flags().String("amount", "10000", "Monthly investment")
	cmd.Flags().Int("years", 10, "Investment period in years")
	cmd.Flags().String("rate", "12", "Expected annual return in percent")
	cmd.Flags().Bool("json", false, "Print JSON")

	return cmd
}

func loanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Compute the EMI of a loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := decimalFlags(cmd, "principal", "rate")
			if err != nil {
				return err
			}
			years, _ := cmd.Flags().GetInt("years")

			result, err := planner.CalculateEMI(domain.LoanInput{Principal: values[0], Years: years, AnnualRate: values[1]})
			if err != nil {
				return err
			}

			return printResult(cmd, result, func(w io.Writer) {
				fmt.Fprintf(w, "Principal:\t%s\n", money(result.Principal))
				fmt.Fprintf(w, "Tenure:\t%d years at %s%%\n", result.Years, result.Rate)
				fmt.Fprintf(w, "Monthly EMI:\t%s\n", money(result.EMI))
				fmt.Fprintf(w, "Total Payment:\t%s\n", money(result.TotalPayment))
				fmt.Fprintf(w, "Total Interest:\t%s\n", money(result.TotalInterest))
			})
		},
	}

	cmd.Flags().String("principal", "500000", "Loan amount")
	cmd.Flags().Int("years", 5, "Tenure in years")
	cmd.Flags().String("rate", "10", "Annual interest rate in percent")
	cmd.Flags().Bool("json", false, "Print JSON")

	return cmd
}

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Review a monthly budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := decimalFlags(cmd, "income", "rent", "food", "transport", "entertainment", "other")
			if err != nil {
				return err
			}

			result, err := planner.AnalyzeBudget(domain.BudgetInput{
				Income:        v[0],
				Rent:          v[1],
				Food:          v[2],
				Transport:     v[3],
				Entertainment: v[4],
				Other:         v[5],
			})
			if err != nil {
				return err
			}

			return printResult(cmd, result, func(w io.Writer) {
				fmt.Fprintln(w, "Category\tAmount\tShare")
				for _, c := range result.Categories {
					fmt.Fprintf(w, "%s\t%s\t%s%%\n", c.Name, money(c.Amount), c.Share.StringFixed(1))
				}
				fmt.Fprintln(w)
				fmt.Fprintf(w, "Total Expenses:\t%s\n", money(result.TotalExpenses))
				fmt.Fprintf(w, "Savings:\t%s (%s%%)\n", money(result.Savings), result.SavingsPercent.StringFixed(1))
				fmt.Fprintln(w)
				fmt.Fprintln(w, result.Advice)
			})
		},
	}

	cmd.Flags().String("income", "50000", "Monthly income")
	cmd.Flags().String("rent", "15000", "Monthly rent")
	cmd.Flags().String("food", "8000", "Monthly food spend")
	cmd.Flags().String("transport", "5000", "Monthly transport spend")
	cmd.Flags().String("entertainment", "3000", "Monthly entertainment spend")
	cmd.Flags().String("other", "2000", "Other monthly spend")
	cmd.Flags().Bool("json", false, "Print JSON")

	return cmd
}

func goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Plan the monthly SIP needed to reach a savings goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := decimalFlags(cmd, "target", "income", "return")
			if err != nil {
				return err
			}
			years, _ := cmd.Flags().GetInt("years")

			result, err := planner.PlanGoal(domain.GoalInput{
				GoalAmount:    values[0],
				Years:         years,
				MonthlyIncome: values[1],
				AnnualReturn:  values[2],
			})
			if err != nil {
				return err
			}

			return printResult(cmd, result, func(w io.Writer) {
				fmt.Fprintf(w, "Goal:\t%s in %d years at %s%%\n", money(result.GoalAmount), result.Years, result.AnnualReturn)
				fmt.Fprintf(w, "Required SIP:\t%s per month\n", money(result.RequiredSIP))
				if result.Affordable {
					fmt.Fprintf(w, "Affordability:\tfits within a monthly income of %s\n", money(result.MonthlyIncome))
				} else {
					fmt.Fprintf(w, "Affordability:\texceeds a monthly income of %s\n", money(result.MonthlyIncome))
				}
				fmt.Fprintln(w)
				fmt.Fprintln(w, "Year\tValue")
				for i, v := range result.YearEndValues {
					fmt.Fprintf(w, "%d\t%s\n", i+1, money(v))
				}
			})
		},
	}

	cmd.Flags().String("target", "1000000", "Goal amount")
	cmd.Flags().Int("years", 5, "Years to reach the goal")
	cmd.Flags().String("income", "50000", "Monthly income")
	cmd.Flags().String("return", "12", "Expected annual return in percent")
	cmd.Flags().Bool("json", false, "Print JSON")

	return cmd
}
