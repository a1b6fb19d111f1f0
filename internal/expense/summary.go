package expense

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Summary totals a statement per category and lists its outliers
type Summary struct {
	Categories []Category    `json:"categories"`
	Total      Money         `json:"total"`
	Unusual    []Transaction `json:"unusual"`
	Skipped    int           `json:"skipped"`
}

// Summarize totals transactions per category in Categories order and flags
// every transaction whose absolute amount lies more than two sample standard
// deviations above the mean absolute amount.
func Summarize(stmt *Statement, currency string) Summary {
	byType := make(map[CategoryType]*Category, len(Categories))
	summary := Summary{
		Categories: make([]Category, len(Categories)),
		Total:      NewMoneyZero(currency),
		Unusual:    []Transaction{},
		Skipped:    stmt.Skipped,
	}
	for i, t := range Categories {
		summary.Categories[i] = Category{Type: t, Total: NewMoneyZero(currency)}
		byType[t] = &summary.Categories[i]
	}

	for _, tx := range stmt.Transactions {
		if c, ok := byType[tx.Category]; ok {
			c.Credit(tx.Amount)
		} else {
			byType[Other].Credit(tx.Amount)
		}
		summary.Total = summary.Total.Add(tx.Amount)
	}

	summary.Unusual = unusual(stmt.Transactions)
	return summary
}

// unusual compares squared deviations against four times the variance, so
// |x| - mean > 2 sd becomes |x| > mean and (|x| - mean)^2 > 4 var.
func unusual(txs []Transaction) []Transaction {
	out := []Transaction{}
	n := len(txs)
	if n < 2 {
		return out
	}

	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount.Amount.Abs())
	}
	mean := sum.Div(decimal.NewFromInt(int64(n)))

	squares := decimal.Zero
	for _, tx := range txs {
		dev := tx.Amount.Amount.Abs().Sub(mean)
		squares = squares.Add(dev.Mul(dev))
	}
	variance := squares.Div(decimal.NewFromInt(int64(n - 1)))
	threshold := variance.Mul(decimal.NewFromInt(4))

	for _, tx := range txs {
		dev := tx.Amount.Amount.Abs().Sub(mean)
		if dev.IsPositive() && dev.Mul(dev).GreaterThan(threshold) {
			out = append(out, tx)
		}
	}
	return out
}

// Report renders the summary as markdown
func Report(s Summary) string {
	var sb strings.Builder
	sb.WriteString("### Expense Breakdown\n")
	for _, c := range s.Categories {
		fmt.Fprintf(&sb, "- **%s:** %s\n", c.Type, domain.FormatMoney(c.Total.Currency, c.Total.Amount))
	}

	if len(s.Unusual) > 0 {
		sb.WriteString("\n**Unusual Expenses Detected:**\n")
		for _, tx := range s.Unusual {
			fmt.Fprintf(&sb, "- %s: %s (%s)\n", tx.Date, tx.Description, domain.FormatMoney(tx.Amount.Currency, tx.Amount.Amount))
		}
	}
	return sb.String()
}
