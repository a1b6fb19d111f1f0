package calculation

import (
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Slabs, rebate thresholds and standard deductions come from
//    domain.TaxRules (FY 2023-24 by default). No indexing between years.
//
// 2. HRA exemption assumes a metro city (50% of salary cap). There is no
//    non-metro branch.
//
// 3. The rebate zeroes the whole liability at or below the threshold; there
//    is no marginal relief just above it, so tax jumps at the threshold.
//
// 4. Cess is charged on the slab tax after the rebate. Surcharge for very
//    high incomes is not modelled.

// HRAExemption computes the house rent allowance exemption: the least of the
// HRA actually received, the salary cap, and rent paid in excess of the rent
// floor. It is zero when either HRA received or rent paid is zero.
func HRAExemption(profile domain.TaxProfile, rules domain.HRARules) decimal.Decimal {
	if profile.HRAReceived.IsZero() || profile.RentPaid.IsZero() {
		return decimal.Zero
	}

	salaryCap := profile.GrossSalary.Mul(rules.SalaryCapRate)

	rentFloor := profile.GrossSalary.Mul(rules.RentFloorRate)
	rentExcess := decimal.Zero
	if profile.RentPaid.GreaterThan(rentFloor) {
		rentExcess = profile.RentPaid.Sub(rentFloor)
	}

	return decimal.Min(profile.HRAReceived, salaryCap, rentExcess)
}

// CalculateSlabTax applies progressive slabs in order. Each slab taxes only
// the income that falls inside its width; nothing is taxed once the remaining
// income is no longer positive, so negative incomes produce zero.
func CalculateSlabTax(income decimal.Decimal, slabs []domain.Slab) decimal.Decimal {
	tax := decimal.Zero
	remaining := income

	for _, slab := range slabs {
		if !remaining.IsPositive() {
			break
		}
		inSlab := remaining
		if !slab.IsOpenEnded() && slab.Width.LessThan(remaining) {
			inSlab = slab.Width
		}
		tax = tax.Add(inSlab.Mul(slab.Rate))
		remaining = remaining.Sub(inSlab)
	}

	return tax
}

// RegimeTaxCalculator computes the liability under a single regime
type RegimeTaxCalculator struct {
	Regime   domain.Regime
	Rules    domain.RegimeRules
	HRARules domain.HRARules
	CessRate decimal.Decimal
}

// NewOldRegimeCalculator creates the deduction-heavy regime calculator
func NewOldRegimeCalculator(rules domain.TaxRules) *RegimeTaxCalculator {
	return &RegimeTaxCalculator{
		Regime:   domain.RegimeOld,
		Rules:    rules.OldRegime,
		HRARules: rules.HRA,
		CessRate: rules.CessRate,
	}
}

// NewNewRegimeCalculator creates the simplified-slab regime calculator
func NewNewRegimeCalculator(rules domain.TaxRules) *RegimeTaxCalculator {
	return &RegimeTaxCalculator{
		Regime:   domain.RegimeNew,
		Rules:    rules.NewRegime,
		HRARules: rules.HRA,
		CessRate: rules.CessRate,
	}
}

// TaxableIncome returns the unclamped taxable income and, for the old
// regime, the HRA exemption that went into it.
func (c *RegimeTaxCalculator) TaxableIncome(profile domain.TaxProfile) (taxable, hraExemption decimal.Decimal) {
	taxable = profile.GrossSalary.Sub(c.Rules.StandardDeduction)

	if c.Regime == domain.RegimeNew {
		// Only the employer NPS contribution survives under the new regime.
		return taxable.Sub(profile.EmployerNPSContribution), decimal.Zero
	}

	hraExemption = HRAExemption(profile, c.HRARules)
	taxable = taxable.
		Sub(hraExemption).
		Sub(profile.TotalChapterVIA())
	return taxable, hraExemption
}

// CalculateTax computes the liability for a profile. It never fails;
// pathological inputs produce zero.
func (c *RegimeTaxCalculator) CalculateTax(profile domain.TaxProfile) domain.RegimeResult {
	taxable, hraExemption := c.TaxableIncome(profile)
	return c.taxOnIncome(taxable, hraExemption)
}

// TaxOnTaxableIncome computes the liability directly from a taxable income
// figure, skipping the exemption and deduction steps.
func (c *RegimeTaxCalculator) TaxOnTaxableIncome(taxable decimal.Decimal) domain.RegimeResult {
	return c.taxOnIncome(taxable, decimal.Zero)
}

func (c *RegimeTaxCalculator) taxOnIncome(taxable, hraExemption decimal.Decimal) domain.RegimeResult {
	slabTax := CalculateSlabTax(taxable, c.Rules.Slabs)

	tax := slabTax
	rebate := false
	if taxable.LessThanOrEqual(c.Rules.RebateThreshold) {
		tax = decimal.Zero
		rebate = true
	}

	cess := tax.Mul(c.CessRate)
	tax = tax.Add(cess)

	return domain.RegimeResult{
		Regime:             c.Regime,
		TaxableIncome:      clampRound(taxable),
		TaxPayable:         clampRound(tax),
		GrossTaxableIncome: taxable,
		HRAExemption:       hraExemption,
		SlabTax:            slabTax,
		RebateApplied:      rebate,
		Cess:               cess,
	}
}

// clampRound rounds to whole currency units (half to even) and floors at zero
func clampRound(d decimal.Decimal) decimal.Decimal {
	d = d.RoundBank(0)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// SelectRegime recommends the regime with strictly lower tax payable. Equal
// liabilities resolve to tieBreak.
func SelectRegime(oldResult, newResult domain.RegimeResult, tieBreak domain.Regime) domain.Regime {
	switch {
	case newResult.TaxPayable.LessThan(oldResult.TaxPayable):
		return domain.RegimeNew
	case oldResult.TaxPayable.LessThan(newResult.TaxPayable):
		return domain.RegimeOld
	case tieBreak == domain.RegimeNew:
		return domain.RegimeNew
	default:
		return domain.RegimeOld
	}
}
