package breakeven

import (
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// HeadroomSections are the deductions an individual can still grow to chase
// the old regime. 80G is excluded because its limit is a heuristic.
var HeadroomSections = []domain.Section{
	domain.Section80C,
	domain.Section80D,
	domain.Section80E,
	domain.SectionNPS,
}

// SectionHeadroom is the unused room under one section's limit
type SectionHeadroom struct {
	Section   domain.Section  `json:"section"`
	Claimed   decimal.Decimal `json:"claimed"`
	Limit     decimal.Decimal `json:"limit"`
	Remaining decimal.Decimal `json:"remaining"`
}

// Allocation is one step of a plan to reach the break-even deduction
type Allocation struct {
	Section domain.Section  `json:"section"`
	Amount  decimal.Decimal `json:"amount"`
}

// Result contains the outcome of a break-even search
type Result struct {
	Profile domain.TaxProfile `json:"profile"`

	// Search metadata
	Success         bool   `json:"success"`
	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergence_info"`

	// Base position
	BaseOldTax     decimal.Decimal `json:"base_old_tax"`
	BaseNewTax     decimal.Decimal `json:"base_new_tax"`
	BaseBest       domain.Regime   `json:"base_best"`
	AlreadyOldBest bool            `json:"already_old_best"`

	// Break-even point. Reachable is false when no amount of extra
	// deduction makes the old regime win.
	Reachable         bool            `json:"reachable"`
	RequiredDeduction decimal.Decimal `json:"required_deduction"`
	OldTaxAtBreakEven decimal.Decimal `json:"old_tax_at_break_even"`
	NewTaxAtBreakEven decimal.Decimal `json:"new_tax_at_break_even"`

	// Statutory room left to claim the required amount
	Headroom       []SectionHeadroom `json:"headroom"`
	TotalHeadroom  decimal.Decimal   `json:"total_headroom"`
	WithinHeadroom bool              `json:"within_headroom"`
	Plan           []Allocation      `json:"plan,omitempty"`

	Currency string `json:"currency"`
}

// SolverOptions configures the search
type SolverOptions struct {
	Tolerance     decimal.Decimal // Width of the final bracket, in currency units
	MaxIterations int             // Maximum bisection steps
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 64,
	}
}

// Validate checks the options are usable
func (o SolverOptions) Validate() error {
	if !o.Tolerance.IsPositive() {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "tolerance must be positive",
		}
	}
	if o.MaxIterations <= 0 {
		return &BreakEvenError{
			Operation: "validate_options",
			Message:   "max iterations must be positive",
		}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
