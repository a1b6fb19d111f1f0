package transform

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

var minusHundred = decimal.NewFromInt(-100)

// AdjustSalary scales gross salary, basic salary and HRA by a percentage,
// e.g. 10 for a 10% raise or -5 for a 5% cut.
type AdjustSalary struct {
	Percent decimal.Decimal
}

func (as *AdjustSalary) Name() string {
	return "adjust_salary"
}

func (as *AdjustSalary) Description() string {
	if as.Percent.IsNegative() {
		return fmt.Sprintf("Cut salary by %s%%", as.Percent.Abs())
	}
	return fmt.Sprintf("Raise salary by %s%%", as.Percent)
}

func (as *AdjustSalary) Validate(base domain.TaxProfile) error {
	if as.Percent.LessThanOrEqual(minusHundred) {
		return NewTransformError(as.Name(), "validate", "percent must be greater than -100", nil)
	}
	return nil
}

func (as *AdjustSalary) Apply(base domain.TaxProfile) (domain.TaxProfile, error) {
	factor := decimal.NewFromInt(1).Add(as.Percent.Div(decimal.NewFromInt(100)))

	modified := base
	modified.GrossSalary = base.GrossSalary.Mul(factor).Round(2)
	modified.BasicSalary = base.BasicSalary.Mul(factor).Round(2)
	modified.HRAReceived = base.HRAReceived.Mul(factor).Round(2)

	return modified, nil
}

// SetRent replaces the annual rent paid.
type SetRent struct {
	Amount decimal.Decimal
}

func (sr *SetRent) Name() string {
	return "set_rent"
}

func (sr *SetRent) Description() string {
	if sr.Amount.IsZero() {
		return "Stop paying rent (no HRA exemption)"
	}
	return fmt.Sprintf("Pay %s rent per year", domain.FormatAmount(sr.Amount))
}

func (sr *SetRent) Validate(base domain.TaxProfile) error {
	if sr.Amount.IsNegative() {
		return NewTransformError(sr.Name(), "validate", "rent cannot be negative", nil)
	}
	return nil
}

func (sr *SetRent) Apply(base domain.TaxProfile) (domain.TaxProfile, error) {
	modified := base
	modified.RentPaid = sr.Amount
	return modified, nil
}
