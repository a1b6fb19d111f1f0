package breakeven

import (
	"github.com/shopspring/decimal"
)

// AllocateDeduction spreads required across the sections' remaining room in
// HeadroomSections order. Employer NPS comes last because it also lowers
// new-regime tax. The plan may cover less than required when headroom runs
// out.
func AllocateDeduction(required decimal.Decimal, headroom []SectionHeadroom) []Allocation {
	var plan []Allocation
	left := required

	for _, h := range headroom {
		if !left.IsPositive() {
			break
		}
		if !h.Remaining.IsPositive() {
			continue
		}
		amount := decimal.Min(left, h.Remaining)
		plan = append(plan, Allocation{Section: h.Section, Amount: amount})
		left = left.Sub(amount)
	}

	return plan
}
