package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxProfile holds a salaried taxpayer's annual figures. All amounts are in a
// single currency unit and are expected to be non-negative.
type TaxProfile struct {
	GrossSalary             decimal.Decimal `yaml:"gross_salary" json:"salary"`
	BasicSalary             decimal.Decimal `yaml:"basic_salary" json:"basic_salary"`
	RentPaid                decimal.Decimal `yaml:"rent_paid" json:"rent"`
	HRAReceived             decimal.Decimal `yaml:"hra_received" json:"hra_received"`
	Deduction80C            decimal.Decimal `yaml:"deductions_80c" json:"deductions_80c"`
	Deduction80D            decimal.Decimal `yaml:"deductions_80d" json:"deductions_80d"`
	Deduction80E            decimal.Decimal `yaml:"deductions_80e" json:"deductions_80e"`
	Deduction80G            decimal.Decimal `yaml:"deductions_80g" json:"deductions_80g"`
	EmployerNPSContribution decimal.Decimal `yaml:"nps_employer" json:"nps_employer"`
}

// TotalChapterVIA sums the itemised deductions claimed under the old regime
// (80C, 80D, 80E, 80G and the employer NPS contribution).
func (p TaxProfile) TotalChapterVIA() decimal.Decimal {
	return p.Deduction80C.
		Add(p.Deduction80D).
		Add(p.Deduction80E).
		Add(p.Deduction80G).
		Add(p.EmployerNPSContribution)
}

// SampleTaxProfile is the demonstration profile used when no input is given
func SampleTaxProfile() TaxProfile {
	return TaxProfile{
		GrossSalary:  decimal.NewFromInt(800000),
		BasicSalary:  decimal.NewFromInt(400000),
		RentPaid:     decimal.NewFromInt(180000),
		HRAReceived:  decimal.NewFromInt(120000),
		Deduction80C: decimal.NewFromInt(100000),
		Deduction80D: decimal.Zero,
	}
}

// Regime identifies one of the two mutually exclusive rule sets.
type Regime string

const (
	RegimeOld Regime = "old"
	RegimeNew Regime = "new"
)

// DisplayName returns the label used in reports and API responses.
func (r Regime) DisplayName() string {
	switch r {
	case RegimeOld:
		return "Old Regime"
	case RegimeNew:
		return "New Regime"
	default:
		return string(r)
	}
}

// ParseRegime accepts "old", "new" or the display names, case-insensitively.
func ParseRegime(s string) (Regime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "old", "old regime":
		return RegimeOld, nil
	case "new", "new regime":
		return RegimeNew, nil
	default:
		return "", fmt.Errorf("unknown regime %q (expected old or new)", s)
	}
}

// RegimeResult is the outcome of computing tax under one regime.
type RegimeResult struct {
	Regime        Regime          `json:"regime" yaml:"regime"`
	TaxableIncome decimal.Decimal `json:"taxable_income" yaml:"taxable_income"`
	TaxPayable    decimal.Decimal `json:"tax_payable" yaml:"tax_payable"`

	// Breakdown, informational only.
	GrossTaxableIncome decimal.Decimal `json:"-" yaml:"-"` // before clamping, may be negative
	HRAExemption       decimal.Decimal `json:"-" yaml:"-"`
	SlabTax            decimal.Decimal `json:"-" yaml:"-"`
	RebateApplied      bool            `json:"-" yaml:"-"`
	Cess               decimal.Decimal `json:"-" yaml:"-"`
}

// Advisory is free-text advice from the narrative collaborator. When the
// collaborator fails, Available is false and Message explains why.
type Advisory struct {
	Available bool     `json:"available"`
	Raw       string   `json:"raw,omitempty"`
	Tips      []string `json:"tips,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// TaxDecision aggregates both regime results, the recommendation and the
// suggestions produced for a profile.
type TaxDecision struct {
	Profile     TaxProfile   `json:"profile"`
	OldRegime   RegimeResult `json:"old_regime"`
	NewRegime   RegimeResult `json:"new_regime"`
	Best        Regime       `json:"best"`
	Suggestions []string     `json:"suggestions"`
	Advisory    *Advisory    `json:"advisory,omitempty"`
}

// Result returns the result for the given regime.
func (d *TaxDecision) Result(r Regime) RegimeResult {
	if r == RegimeNew {
		return d.NewRegime
	}
	return d.OldRegime
}

// Savings is how much less tax the recommended regime costs than the other.
func (d *TaxDecision) Savings() decimal.Decimal {
	return d.OldRegime.TaxPayable.Sub(d.NewRegime.TaxPayable).Abs()
}
