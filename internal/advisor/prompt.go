package advisor

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

const systemPrompt = "You are a tax advisor for India (FY 2023-24). Answer with short bullet points."

// BuildPrompt renders the advisory request for a profile.
func BuildPrompt(currency string, p domain.TaxProfile) string {
	money := func(v decimal.Decimal) string { return domain.FormatMoney(currency, v) }

	var sb strings.Builder
	sb.WriteString("The user has:\n")
	fmt.Fprintf(&sb, "- Salary: %s\n", money(p.GrossSalary))
	fmt.Fprintf(&sb, "- Basic Salary: %s\n", money(p.BasicSalary))
	fmt.Fprintf(&sb, "- Rent Paid: %s\n", money(p.RentPaid))
	fmt.Fprintf(&sb, "- HRA Received: %s\n", money(p.HRAReceived))
	fmt.Fprintf(&sb, "- 80C: %s\n", money(p.Deduction80C))
	fmt.Fprintf(&sb, "- 80D: %s\n", money(p.Deduction80D))
	fmt.Fprintf(&sb, "- 80E: %s\n", money(p.Deduction80E))
	fmt.Fprintf(&sb, "- 80G: %s\n", money(p.Deduction80G))
	fmt.Fprintf(&sb, "- Employer NPS: %s\n", money(p.EmployerNPSContribution))
	sb.WriteString("\nSuggest in a friendly, conversational tone:\n")
	sb.WriteString("- The best ways to save more tax (with numbers)\n")
	sb.WriteString("- Missed opportunities\n")
	sb.WriteString("- Any smart tips for this profile\n")
	sb.WriteString("- Keep it concise and actionable.\n")
	return sb.String()
}
