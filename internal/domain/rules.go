package domain

import (
	"github.com/shopspring/decimal"
)

// TaxRules contains the statutory tables both regimes are computed from.
// It is loaded from a rules YAML file or taken from DefaultTaxRules, so a new
// tax year is a data edit.
type TaxRules struct {
	Metadata         RulesMetadata    `yaml:"metadata" json:"metadata"`
	OldRegime        RegimeRules      `yaml:"old_regime" json:"old_regime"`
	NewRegime        RegimeRules      `yaml:"new_regime" json:"new_regime"`
	CessRate         decimal.Decimal  `yaml:"cess_rate" json:"cess_rate"`
	HRA              HRARules         `yaml:"hra" json:"hra"`
	SuggestionLimits SuggestionLimits `yaml:"suggestion_limits" json:"suggestion_limits"`
	TieBreak         Regime           `yaml:"tie_break" json:"tie_break"`
	Currency         string           `yaml:"currency" json:"currency"`
}

// RulesMetadata describes where a rules table came from
type RulesMetadata struct {
	FinancialYear string `yaml:"financial_year" json:"financial_year"`
	Description   string `yaml:"description" json:"description"`
}

// Slab is a contiguous band of income taxed at one marginal rate. A zero
// Width marks the open-ended top slab.
type Slab struct {
	Width decimal.Decimal `yaml:"width" json:"width"`
	Rate  decimal.Decimal `yaml:"rate" json:"rate"`
}

// IsOpenEnded reports whether the slab absorbs all remaining income
func (s Slab) IsOpenEnded() bool {
	return s.Width.IsZero()
}

// RegimeRules holds the per-regime tables
type RegimeRules struct {
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	Slabs             []Slab          `yaml:"slabs" json:"slabs"`
	RebateThreshold   decimal.Decimal `yaml:"rebate_threshold" json:"rebate_threshold"`
}

// HRARules parameterises the house rent allowance exemption
type HRARules struct {
	SalaryCapRate decimal.Decimal `yaml:"salary_cap_rate" json:"salary_cap_rate"`
	RentFloorRate decimal.Decimal `yaml:"rent_floor_rate" json:"rent_floor_rate"`
}

// SuggestionLimits are the amounts the suggestion generator compares the
// profile against. Section80G is a heuristic rather than a statutory cap.
type SuggestionLimits struct {
	Section80C  decimal.Decimal `yaml:"section_80c" json:"section_80c"`
	Section80D  decimal.Decimal `yaml:"section_80d" json:"section_80d"`
	Section80E  decimal.Decimal `yaml:"section_80e" json:"section_80e"`
	Section80G  decimal.Decimal `yaml:"section_80g" json:"section_80g"`
	EmployerNPS decimal.Decimal `yaml:"employer_nps" json:"employer_nps"`
}

// Regime returns the tables for the given regime
func (r TaxRules) Regime(regime Regime) RegimeRules {
	if regime == RegimeNew {
		return r.NewRegime
	}
	return r.OldRegime
}

// DefaultTaxRules returns the FY 2023-24 tables.
func DefaultTaxRules() TaxRules {
	return TaxRules{
		Metadata: RulesMetadata{
			FinancialYear: "2023-24",
			Description:   "Salaried individual, metro HRA assumption",
		},
		OldRegime: RegimeRules{
			StandardDeduction: decimal.NewFromInt(50000),
			Slabs: []Slab{
				{Width: decimal.NewFromInt(250000), Rate: decimal.Zero},
				{Width: decimal.NewFromInt(250000), Rate: decimal.RequireFromString("0.05")},
				{Width: decimal.NewFromInt(500000), Rate: decimal.RequireFromString("0.20")},
				{Width: decimal.Zero, Rate: decimal.RequireFromString("0.30")},
			},
			RebateThreshold: decimal.NewFromInt(500000),
		},
		NewRegime: RegimeRules{
			StandardDeduction: decimal.NewFromInt(50000),
			Slabs: []Slab{
				{Width: decimal.NewFromInt(300000), Rate: decimal.Zero},
				{Width: decimal.NewFromInt(300000), Rate: decimal.RequireFromString("0.05")},
				{Width: decimal.NewFromInt(300000), Rate: decimal.RequireFromString("0.10")},
				{Width: decimal.NewFromInt(300000), Rate: decimal.RequireFromString("0.15")},
				{Width: decimal.NewFromInt(300000), Rate: decimal.RequireFromString("0.20")},
				{Width: decimal.Zero, Rate: decimal.RequireFromString("0.30")},
			},
			RebateThreshold: decimal.NewFromInt(700000),
		},
		CessRate: decimal.RequireFromString("0.04"),
		HRA: HRARules{
			SalaryCapRate: decimal.RequireFromString("0.5"),
			RentFloorRate: decimal.RequireFromString("0.1"),
		},
		SuggestionLimits: SuggestionLimits{
			Section80C:  decimal.NewFromInt(150000),
			Section80D:  decimal.NewFromInt(25000),
			Section80E:  decimal.NewFromInt(50000),
			Section80G:  decimal.NewFromInt(100000),
			EmployerNPS: decimal.NewFromInt(50000),
		},
		TieBreak: RegimeOld,
		Currency: "₹",
	}
}
