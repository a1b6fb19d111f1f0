package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver finds the smallest extra old-regime deduction that makes the old
// regime the recommended one.
type Solver struct {
	Evaluator *calculation.TaxEvaluator
	Options   SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(evaluator *calculation.TaxEvaluator, options SolverOptions) *Solver {
	return &Solver{
		Evaluator: evaluator,
		Options:   options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(evaluator *calculation.TaxEvaluator) *Solver {
	return NewSolver(evaluator, DefaultSolverOptions())
}

// Solve runs the search for profile. Old-regime tax is non-increasing in
// the deduction while new-regime tax ignores it, so the predicate "old is
// best" is monotone and bisection applies.
func (s *Solver) Solve(ctx context.Context, profile domain.TaxProfile) (*Result, error) {
	if err := s.Options.Validate(); err != nil {
		return nil, err
	}

	base := s.Evaluator.Compute(profile)
	result := &Result{
		Profile:    profile,
		BaseOldTax: base.OldRegime.TaxPayable,
		BaseNewTax: base.NewRegime.TaxPayable,
		BaseBest:   base.Best,
		Currency:   s.Evaluator.Rules.Currency,
	}
	s.fillHeadroom(result, profile)

	if base.Best == domain.RegimeOld {
		result.Success = true
		result.AlreadyOldBest = true
		result.Reachable = true
		result.RequiredDeduction = decimal.Zero
		result.OldTaxAtBreakEven = base.OldRegime.TaxPayable
		result.NewTaxAtBreakEven = base.NewRegime.TaxPayable
		result.WithinHeadroom = true
		result.ConvergenceInfo = "Old regime already recommended"
		return result, nil
	}

	// Deducting the whole pre-clamp taxable income zeroes old-regime tax, so
	// it bounds the search from above.
	upper := decimal.Max(base.OldRegime.GrossTaxableIncome, decimal.Zero).Ceil()
	oldWins, decision, err := s.probe(profile, upper)
	if err != nil {
		return nil, err
	}
	if !oldWins {
		result.Success = true
		result.Reachable = false
		result.ConvergenceInfo = fmt.Sprintf("Old regime cannot win: new regime tax is %s even with zero old-regime tax",
			domain.FormatMoney(result.Currency, decision.NewRegime.TaxPayable))
		return result, nil
	}

	lo, hi := decimal.Zero, upper
	best := decision
	two := decimal.NewFromInt(2)

	for hi.Sub(lo).GreaterThan(s.Options.Tolerance) {
		if result.Iterations >= s.Options.MaxIterations {
			return nil, &BreakEvenError{
				Operation: "solve",
				Message:   fmt.Sprintf("search did not converge after %d iterations", s.Options.MaxIterations),
			}
		}
		result.Iterations++

		select {
		case <-ctx.Done():
			return nil, &BreakEvenError{Operation: "solve", Message: "search cancelled", Cause: ctx.Err()}
		default:
		}

		mid := lo.Add(hi.Sub(lo).Div(two).Floor())
		if mid.Equal(lo) {
			mid = lo.Add(decimal.NewFromInt(1))
		}

		oldWins, decision, err := s.probe(profile, mid)
		if err != nil {
			return nil, err
		}
		if oldWins {
			hi = mid
			best = decision
		} else {
			lo = mid
		}
	}

	result.Success = true
	result.Reachable = true
	result.RequiredDeduction = hi
	result.OldTaxAtBreakEven = best.OldRegime.TaxPayable
	result.NewTaxAtBreakEven = best.NewRegime.TaxPayable
	result.WithinHeadroom = hi.LessThanOrEqual(result.TotalHeadroom)
	result.Plan = AllocateDeduction(hi, result.Headroom)
	result.ConvergenceInfo = fmt.Sprintf("Converged within %s after %d iterations",
		domain.FormatMoney(result.Currency, s.Options.Tolerance), result.Iterations)

	return result, nil
}

// probe evaluates the profile with extra added to 80C, a deduction only the
// old regime recognises.
func (s *Solver) probe(profile domain.TaxProfile, extra decimal.Decimal) (bool, domain.TaxDecision, error) {
	modified, err := transform.ApplyTransforms(profile, []transform.ProfileTransform{
		&transform.AddDeduction{Section: domain.Section80C, Amount: extra},
	})
	if err != nil {
		return false, domain.TaxDecision{}, &BreakEvenError{
			Operation: "probe",
			Message:   "failed to apply deduction",
			Cause:     err,
		}
	}

	decision := s.Evaluator.Compute(modified)
	return decision.Best == domain.RegimeOld, decision, nil
}

func (s *Solver) fillHeadroom(result *Result, profile domain.TaxProfile) {
	limits := s.Evaluator.Rules.SuggestionLimits
	total := decimal.Zero

	for _, section := range HeadroomSections {
		claimed := profile.Deduction(section)
		limit := limits.Limit(section)
		remaining := decimal.Max(limit.Sub(claimed), decimal.Zero)
		result.Headroom = append(result.Headroom, SectionHeadroom{
			Section:   section,
			Claimed:   claimed,
			Limit:     limit,
			Remaining: remaining,
		})
		total = total.Add(remaining)
	}

	result.TotalHeadroom = total
}
