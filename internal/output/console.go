package output

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// ConsoleFormatter renders the markdown summary shown in terminals and
// returned as the summary field of the HTTP API.
type ConsoleFormatter struct {
	Currency string
}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(d *domain.TaxDecision) ([]byte, error) {
	return []byte(Summary(d, c.Currency)), nil
}

// Summary renders a decision as markdown
func Summary(d *domain.TaxDecision, currency string) string {
	var sb strings.Builder
	sb.WriteString("### Tax Optimization Summary\n\n")

	for _, regime := range []domain.Regime{domain.RegimeOld, domain.RegimeNew} {
		r := d.Result(regime)
		fmt.Fprintf(&sb, "- **%s:**\n", regime.DisplayName())
		fmt.Fprintf(&sb, "    - Taxable Income: %s\n", domain.FormatMoney(currency, r.TaxableIncome))
		fmt.Fprintf(&sb, "    - Tax Payable: %s\n\n", domain.FormatMoney(currency, r.TaxPayable))
	}

	fmt.Fprintf(&sb, "**Best for you:** %s", d.Best.DisplayName())
	if savings := d.Savings(); savings.IsPositive() {
		fmt.Fprintf(&sb, " (saves %s)", domain.FormatMoney(currency, savings))
	}
	sb.WriteString("\n\n#### Suggestions:\n")
	for _, s := range d.Suggestions {
		fmt.Fprintf(&sb, "- %s\n", s)
	}

	if d.Advisory != nil {
		if d.Advisory.Available {
			fmt.Fprintf(&sb, "\n---\n**Advisor Suggestions:**\n%s\n", strings.TrimSpace(d.Advisory.Raw))
		} else {
			fmt.Fprintf(&sb, "\n*%s*\n", d.Advisory.Message)
		}
	}

	return sb.String()
}
