package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MaxAmount caps every profile amount; larger values are input errors
var MaxAmount = decimal.New(1, 15)

// InputParser handles parsing of profile and rules files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadProfile loads a tax profile from a YAML file
func (ip *InputParser) LoadProfile(filename string) (*domain.TaxProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseProfile(data)
}

// ParseProfile parses and validates a tax profile from YAML bytes
func (ip *InputParser) ParseProfile(data []byte) (*domain.TaxProfile, error) {
	var profile domain.TaxProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateProfile(&profile); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}

	return &profile, nil
}

// ValidateProfile checks the invariants the evaluator assumes: every amount
// is non-negative and basic salary does not exceed gross salary.
func (ip *InputParser) ValidateProfile(p *domain.TaxProfile) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"gross_salary", p.GrossSalary},
		{"basic_salary", p.BasicSalary},
		{"rent_paid", p.RentPaid},
		{"hra_received", p.HRAReceived},
		{"deductions_80c", p.Deduction80C},
		{"deductions_80d", p.Deduction80D},
		{"deductions_80e", p.Deduction80E},
		{"deductions_80g", p.Deduction80G},
		{"nps_employer", p.EmployerNPSContribution},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return domain.NewValidationError(f.name, "cannot be negative, got %s", f.value)
		}
		if f.value.GreaterThan(MaxAmount) {
			return domain.NewValidationError(f.name, "cannot exceed %s, got %s", MaxAmount, f.value)
		}
	}

	if p.BasicSalary.GreaterThan(p.GrossSalary) {
		return domain.NewValidationError("basic_salary", "%s exceeds gross salary %s", p.BasicSalary, p.GrossSalary)
	}

	return nil
}

// LoadRules loads rule tables from a YAML file. Keys the file omits keep
// their DefaultTaxRules values.
func (ip *InputParser) LoadRules(filename string) (*domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseRules(data)
}

// ParseRules parses and validates rule tables from YAML bytes
func (ip *InputParser) ParseRules(data []byte) (*domain.TaxRules, error) {
	rules := domain.DefaultTaxRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}

	return &rules, nil
}

// ValidateRules validates loaded rule tables
func (ip *InputParser) ValidateRules(rules *domain.TaxRules) error {
	if err := ip.validateRegime("old_regime", &rules.OldRegime); err != nil {
		return err
	}
	if err := ip.validateRegime("new_regime", &rules.NewRegime); err != nil {
		return err
	}

	if !isRate(rules.CessRate) {
		return domain.NewValidationError("cess_rate", "must be between 0 and 1, got %s", rules.CessRate)
	}
	if !isRate(rules.HRA.SalaryCapRate) {
		return domain.NewValidationError("hra.salary_cap_rate", "must be between 0 and 1, got %s", rules.HRA.SalaryCapRate)
	}
	if !isRate(rules.HRA.RentFloorRate) {
		return domain.NewValidationError("hra.rent_floor_rate", "must be between 0 and 1, got %s", rules.HRA.RentFloorRate)
	}

	limits := []struct {
		name  string
		value decimal.Decimal
	}{
		{"suggestion_limits.section_80c", rules.SuggestionLimits.Section80C},
		{"suggestion_limits.section_80d", rules.SuggestionLimits.Section80D},
		{"suggestion_limits.section_80e", rules.SuggestionLimits.Section80E},
		{"suggestion_limits.section_80g", rules.SuggestionLimits.Section80G},
		{"suggestion_limits.employer_nps", rules.SuggestionLimits.EmployerNPS},
	}
	for _, l := range limits {
		if l.value.IsNegative() {
			return domain.NewValidationError(l.name, "cannot be negative, got %s", l.value)
		}
	}

	tieBreak, err := domain.ParseRegime(string(rules.TieBreak))
	if err != nil {
		return domain.NewValidationError("tie_break", "%v", err)
	}
	rules.TieBreak = tieBreak
	if rules.Currency == "" {
		return domain.NewValidationError("currency", "is required")
	}

	return nil
}

// validateRegime checks one regime's slab table. Only the last slab may be
// open-ended, and the table must end with one so every income is taxed.
func (ip *InputParser) validateRegime(name string, r *domain.RegimeRules) error {
	if r.StandardDeduction.IsNegative() {
		return domain.NewValidationError(name+".standard_deduction", "cannot be negative, got %s", r.StandardDeduction)
	}
	if r.RebateThreshold.IsNegative() {
		return domain.NewValidationError(name+".rebate_threshold", "cannot be negative, got %s", r.RebateThreshold)
	}
	if len(r.Slabs) == 0 {
		return domain.NewValidationError(name+".slabs", "at least one slab is required")
	}

	last := len(r.Slabs) - 1
	for i, s := range r.Slabs {
		field := fmt.Sprintf("%s.slabs[%d]", name, i)
		if s.Width.IsNegative() {
			return domain.NewValidationError(field, "width cannot be negative, got %s", s.Width)
		}
		if !isRate(s.Rate) {
			return domain.NewValidationError(field, "rate must be between 0 and 1, got %s", s.Rate)
		}
		if s.IsOpenEnded() && i != last {
			return domain.NewValidationError(field, "only the last slab may be open-ended")
		}
	}
	if !r.Slabs[last].IsOpenEnded() {
		return domain.NewValidationError(fmt.Sprintf("%s.slabs[%d]", name, last), "last slab must be open-ended (width 0)")
	}

	return nil
}

func isRate(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(1))
}
