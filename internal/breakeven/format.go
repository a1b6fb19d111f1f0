package breakeven

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted report for a break-even result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("REGIME BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("CURRENT POSITION\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Old Regime Tax:      %s\n", domain.FormatMoney(result.Currency, result.BaseOldTax)))
	sb.WriteString(fmt.Sprintf("New Regime Tax:      %s\n", domain.FormatMoney(result.Currency, result.BaseNewTax)))
	sb.WriteString(fmt.Sprintf("Recommended:         %s\n", result.BaseBest.DisplayName()))
	sb.WriteString("\n")

	sb.WriteString("BREAK-EVEN POINT\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	switch {
	case result.AlreadyOldBest:
		sb.WriteString("The Old Regime is already the better choice; no extra deduction is needed.\n")
	case !result.Reachable:
		sb.WriteString("No additional deduction makes the Old Regime cheaper. Stay with the New Regime.\n")
	default:
		sb.WriteString(fmt.Sprintf("Extra Deduction:     %s\n", domain.FormatMoney(result.Currency, result.RequiredDeduction)))
		sb.WriteString(fmt.Sprintf("Old Regime Tax:      %s\n", domain.FormatMoney(result.Currency, result.OldTaxAtBreakEven)))
		sb.WriteString(fmt.Sprintf("New Regime Tax:      %s\n", domain.FormatMoney(result.Currency, result.NewTaxAtBreakEven)))
	}
	sb.WriteString("\n")

	sb.WriteString("DEDUCTION HEADROOM\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-26s %14s %14s %14s\n", "Section", "Claimed", "Limit", "Remaining"))
	for _, h := range result.Headroom {
		sb.WriteString(fmt.Sprintf("%-26s %14s %14s %14s\n",
			h.Section.Label(),
			domain.FormatMoney(result.Currency, h.Claimed),
			domain.FormatMoney(result.Currency, h.Limit),
			domain.FormatMoney(result.Currency, h.Remaining)))
	}
	sb.WriteString(fmt.Sprintf("%-26s %14s %14s %14s\n", "Total", "", "", domain.FormatMoney(result.Currency, result.TotalHeadroom)))
	sb.WriteString("\n")

	if result.Reachable && !result.AlreadyOldBest {
		if result.WithinHeadroom {
			sb.WriteString("The break-even amount fits within your remaining deduction limits:\n")
		} else {
			sb.WriteString("The break-even amount exceeds your remaining deduction limits. Best effort:\n")
		}
		for _, a := range result.Plan {
			sb.WriteString(fmt.Sprintf("• %s: %s\n", a.Section.Label(), domain.FormatMoney(result.Currency, a.Amount)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(result); err != nil {
		return "", err
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}
