package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("TAX SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ProfilePath != "" {
		sb.WriteString(fmt.Sprintf("Profile: %s\n", compSet.ProfilePath))
	}
	sb.WriteString("\n")

	nameWidth := 26
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Old Regime",
		numWidth, "New Regime",
		numWidth, "Best",
		numWidth, "Best Tax"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, compSet.Currency, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, compSet.Currency, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))
			sb.WriteString(fmt.Sprintf("  Old Regime:  %s\n", tf.formatDelta(alt.OldTaxDiffFromBase, compSet.Currency)))
			sb.WriteString(fmt.Sprintf("  New Regime:  %s\n", tf.formatDelta(alt.NewTaxDiffFromBase, compSet.Currency)))
			sb.WriteString(fmt.Sprintf("  Best:        %s (%s%%)\n",
				tf.formatDelta(alt.BestTaxDiffFromBase, compSet.Currency),
				alt.BestTaxPctFromBase.StringFixed(1)))
			if alt.RegimeChanged {
				sb.WriteString(fmt.Sprintf("  Regime:      switches to %s\n", alt.BestRegime.DisplayName()))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, currency string, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, domain.FormatMoney(currency, result.OldRegimeTax),
		numWidth, domain.FormatMoney(currency, result.NewRegimeTax),
		numWidth, string(result.BestRegime),
		numWidth, domain.FormatMoney(currency, result.BestTax))
}

// formatDelta renders a tax delta; a reduction is shown as savings
func (tf *TableFormatter) formatDelta(delta decimal.Decimal, currency string) string {
	switch {
	case delta.IsNegative():
		return fmt.Sprintf("-%s (saves)", domain.FormatMoney(currency, delta.Abs()))
	case delta.IsPositive():
		return fmt.Sprintf("+%s", domain.FormatMoney(currency, delta))
	default:
		return "no change"
	}
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.BestTaxDiffFromBase.IsPositive() {
			change = "+" + domain.FormatMoney(compSet.Currency, alt.BestTaxDiffFromBase)
		} else if alt.BestTaxDiffFromBase.IsNegative() {
			change = "-" + domain.FormatMoney(compSet.Currency, alt.BestTaxDiffFromBase.Abs())
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
