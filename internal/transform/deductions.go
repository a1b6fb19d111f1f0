package transform

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

func validateSection(name string, s domain.Section) error {
	if _, err := domain.ParseSection(string(s)); err != nil {
		return NewTransformError(name, "validate", "invalid section", err)
	}
	return nil
}

// SetDeduction replaces the amount claimed under a section.
type SetDeduction struct {
	Section domain.Section
	Amount  decimal.Decimal
}

func (sd *SetDeduction) Name() string {
	return "set_deduction"
}

func (sd *SetDeduction) Description() string {
	return fmt.Sprintf("Claim %s under %s", domain.FormatAmount(sd.Amount), sd.Section.Label())
}

func (sd *SetDeduction) Validate(base domain.TaxProfile) error {
	if err := validateSection(sd.Name(), sd.Section); err != nil {
		return err
	}
	if sd.Amount.IsNegative() {
		return NewTransformError(sd.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (sd *SetDeduction) Apply(base domain.TaxProfile) (domain.TaxProfile, error) {
	return base.WithDeduction(sd.Section, sd.Amount), nil
}

// AddDeduction increases (or, with a negative amount, reduces) a section's
// claim. The result is floored at zero.
type AddDeduction struct {
	Section domain.Section
	Amount  decimal.Decimal
}

func (ad *AddDeduction) Name() string {
	return "add_deduction"
}

func (ad *AddDeduction) Description() string {
	if ad.Amount.IsNegative() {
		return fmt.Sprintf("Reduce %s by %s", ad.Section.Label(), domain.FormatAmount(ad.Amount.Abs()))
	}
	return fmt.Sprintf("Invest %s more under %s", domain.FormatAmount(ad.Amount), ad.Section.Label())
}

func (ad *AddDeduction) Validate(base domain.TaxProfile) error {
	return validateSection(ad.Name(), ad.Section)
}

func (ad *AddDeduction) Apply(base domain.TaxProfile) (domain.TaxProfile, error) {
	next := decimal.Max(base.Deduction(ad.Section).Add(ad.Amount), decimal.Zero)
	return base.WithDeduction(ad.Section, next), nil
}

// MaxDeduction raises a section's claim to its configured limit. Claims
// already above the limit are left alone.
type MaxDeduction struct {
	Section domain.Section
	Limits  domain.SuggestionLimits
}

func (md *MaxDeduction) Name() string {
	return "max_deduction"
}

func (md *MaxDeduction) Description() string {
	return fmt.Sprintf("Use the full %s limit of %s", md.Section.Label(), domain.FormatAmount(md.Limits.Limit(md.Section)))
}

func (md *MaxDeduction) Validate(base domain.TaxProfile) error {
	if err := validateSection(md.Name(), md.Section); err != nil {
		return err
	}
	if !md.Limits.Limit(md.Section).IsPositive() {
		return NewTransformError(md.Name(), "validate", fmt.Sprintf("no limit configured for %s", md.Section), nil)
	}
	return nil
}

func (md *MaxDeduction) Apply(base domain.TaxProfile) (domain.TaxProfile, error) {
	next := decimal.Max(base.Deduction(md.Section), md.Limits.Limit(md.Section))
	return base.WithDeduction(md.Section, next), nil
}
