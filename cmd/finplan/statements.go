package main

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/expense"
	"github.com/rgehrsitz/finplan/internal/planner"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses [statement.csv]",
		Short: "Categorise a bank statement and flag unusual spends",
		Long: `Reads a CSV statement with Description and Amount columns (Date optional),
sorts each row into Rent, Groceries, Food, Shopping, Travel or Other, and
flags amounts more than two standard deviations above the mean.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open statement: %w", err)
			}
			defer f.Close()

			stmt, err := expense.ParseCSV(f, currency, nil)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}
			summary := expense.Summarize(stmt, currency)

			return printResult(cmd, summary, func(w io.Writer) {
				fmt.Fprintln(w, "Category\tTransactions\tTotal")
				for _, c := range summary.Categories {
					fmt.Fprintf(w, "%s\t%d\t%s\n", c.Type, c.Count, money(c.Total.Amount))
				}
				fmt.Fprintf(w, "Total\t%d\t%s\n", len(stmt.Transactions), money(summary.Total.Amount))
				if summary.Skipped > 0 {
					fmt.Fprintf(w, "\nSkipped %d rows without a numeric amount\n", summary.Skipped)
				}
				if len(summary.Unusual) > 0 {
					fmt.Fprintln(w, "\nUnusual Expenses:")
					for _, tx := range summary.Unusual {
						fmt.Fprintf(w, "%s\t%s\t%s\n", tx.Date, tx.Description, money(tx.Amount.Amount))
					}
				}
			})
		},
	}

	cmd.Flags().Bool("json", false, "Print JSON")
	return cmd
}

// portfolioFile lists holdings with the prices to value them at
type portfolioFile struct {
	Holdings []domain.Holding          `yaml:"holdings"`
	Prices   map[string]decimal.Decimal `yaml:"prices"`
}

func portfolioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio [portfolio.yaml]",
		Short: "Value holdings against a price table",
		Long: `Reads holdings (symbol, quantity, buy_price) and a prices table from YAML.
Holdings without a price are valued at zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", args[0], err)
			}
			var pf portfolioFile
			if err := yaml.Unmarshal(data, &pf); err != nil {
				return fmt.Errorf("failed to parse YAML: %w", err)
			}

			result, err := planner.ValuePortfolio(cmd.Context(), pf.Holdings, planner.StaticPrices(pf.Prices))
			if err != nil {
				return err
			}

			return printResult(cmd, result, func(w io.Writer) {
				fmt.Fprintln(w, "Symbol\tQty\tBuy\tCurrent\tInvested\tNow\tProfit/Loss\tReturn")
				for _, h := range result.Holdings {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s%%\n",
						h.Symbol, h.Quantity, money(h.BuyPrice), money(h.CurrentPrice),
						money(h.Invested), money(h.CurrentValue), money(h.ProfitLoss), h.ReturnPercent.StringFixed(2))
				}
				fmt.Fprintln(w)
				fmt.Fprintf(w, "Total Invested:\t%s\n", money(result.TotalInvested))
				fmt.Fprintf(w, "Current Value:\t%s\n", money(result.CurrentValue))
				fmt.Fprintf(w, "Net Profit/Loss:\t%s\n", money(result.NetProfitLoss))
				fmt.Fprintf(w, "Overall Return:\t%s%%\n", result.ReturnPercent.StringFixed(2))
				for _, h := range result.Holdings {
					if h.PriceError != "" {
						fmt.Fprintf(w, "warning: %s valued at zero: %s\n", h.Symbol, h.PriceError)
					}
				}
			})
		},
	}

	cmd.Flags().Bool("json", false, "Print JSON")
	return cmd
}
