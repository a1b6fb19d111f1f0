package calculation

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// AlreadyOptimizedSuggestion is emitted when no other suggestion applies
const AlreadyOptimizedSuggestion = "You are already using the major tax benefits available to you."

// SuggestionGenerator produces deduction-improvement hints from rule gaps.
type SuggestionGenerator struct {
	Limits   domain.SuggestionLimits
	HRARules domain.HRARules
	Currency string
}

// NewSuggestionGenerator creates a generator from the rule tables
func NewSuggestionGenerator(rules domain.TaxRules) *SuggestionGenerator {
	return &SuggestionGenerator{
		Limits:   rules.SuggestionLimits,
		HRARules: rules.HRA,
		Currency: rules.Currency,
	}
}

// Suggest runs every check independently; several may fire together and
// their order is the check order, not the size of the gap.
func (g *SuggestionGenerator) Suggest(profile domain.TaxProfile) []string {
	var suggestions []string

	if profile.Deduction80C.LessThan(g.Limits.Section80C) {
		suggestions = append(suggestions, fmt.Sprintf(
			"Invest %s more under Section 80C (ELSS, PPF, EPF, life insurance premiums) to use the full deduction.",
			g.money(g.Limits.Section80C.Sub(profile.Deduction80C))))
	}

	if profile.Deduction80D.LessThan(g.Limits.Section80D) {
		suggestions = append(suggestions, fmt.Sprintf(
			"Buy health insurance to claim up to %s more under Section 80D.",
			g.money(g.Limits.Section80D.Sub(profile.Deduction80D))))
	}

	if profile.Deduction80E.LessThan(g.Limits.Section80E) {
		suggestions = append(suggestions, fmt.Sprintf(
			"Interest on an education loan is deductible under Section 80E; up to %s more can be claimed.",
			g.money(g.Limits.Section80E.Sub(profile.Deduction80E))))
	}

	if profile.Deduction80G.LessThan(g.Limits.Section80G) {
		suggestions = append(suggestions,
			"Donations to eligible charities can be claimed under Section 80G.")
	}

	if profile.EmployerNPSContribution.LessThan(g.Limits.EmployerNPS) {
		suggestions = append(suggestions,
			"Ask your employer to contribute to NPS under Section 80CCD(2) for an additional deduction.")
	}

	rentFloor := profile.GrossSalary.Mul(g.HRARules.RentFloorRate)
	if !profile.RentPaid.IsZero() && !profile.HRAReceived.IsZero() && profile.RentPaid.GreaterThan(rentFloor) {
		suggestions = append(suggestions,
			"Submit rent receipts to your employer so the full HRA exemption is applied.")
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, AlreadyOptimizedSuggestion)
	}

	return suggestions
}

func (g *SuggestionGenerator) money(d decimal.Decimal) string {
	return domain.FormatMoney(g.Currency, d)
}
