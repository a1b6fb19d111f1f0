package breakeven

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestNewSolver(t *testing.T) {
	evaluator := calculation.NewTaxEvaluator()
	options := DefaultSolverOptions()

	solver := NewSolver(evaluator, options)

	if solver == nil {
		t.Fatal("Expected solver to be created, got nil")
	}
	if solver.Evaluator != evaluator {
		t.Error("Expected Evaluator to match input")
	}
	if !solver.Options.Tolerance.Equal(dec(1)) || solver.Options.MaxIterations != 64 {
		t.Errorf("Expected default options, got %+v", solver.Options)
	}
}

func TestSolver_AlreadyOldBest(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewTaxEvaluator())

	result, err := solver.Solve(context.Background(), domain.TaxProfile{
		GrossSalary:  dec(800000),
		BasicSalary:  dec(400000),
		RentPaid:     dec(180000),
		HRAReceived:  dec(120000),
		Deduction80C: dec(100000),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.AlreadyOldBest || !result.Reachable || !result.Success {
		t.Errorf("Expected already-old result, got %+v", result)
	}
	if !result.RequiredDeduction.IsZero() {
		t.Errorf("Expected zero required deduction, got %s", result.RequiredDeduction)
	}
	if result.Iterations != 0 {
		t.Errorf("Expected no iterations, got %d", result.Iterations)
	}
}

func TestSolver_FindsMinimalDeduction(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewTaxEvaluator())

	result, err := solver.Solve(context.Background(), domain.TaxProfile{GrossSalary: dec(1000000)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.BaseBest != domain.RegimeNew {
		t.Fatalf("Expected new regime at base, got %s", result.BaseBest)
	}
	if !result.BaseOldTax.Equal(dec(106600)) || !result.BaseNewTax.Equal(dec(54600)) {
		t.Errorf("Unexpected base taxes: old %s new %s", result.BaseOldTax, result.BaseNewTax)
	}

	// rounding to whole units lets 249,998 tie at 54,600
	if !result.RequiredDeduction.Equal(dec(249998)) {
		t.Errorf("Expected 249998, got %s", result.RequiredDeduction)
	}
	if !result.OldTaxAtBreakEven.Equal(dec(54600)) {
		t.Errorf("Expected old tax 54600 at break-even, got %s", result.OldTaxAtBreakEven)
	}
	if !result.TotalHeadroom.Equal(dec(275000)) || !result.WithinHeadroom {
		t.Errorf("Expected to fit within 275000 headroom, got %s (within=%t)", result.TotalHeadroom, result.WithinHeadroom)
	}
	if result.Iterations == 0 || result.Iterations > 64 {
		t.Errorf("Unexpected iteration count %d", result.Iterations)
	}

	total := decimal.Zero
	for _, a := range result.Plan {
		total = total.Add(a.Amount)
	}
	if !total.Equal(result.RequiredDeduction) {
		t.Errorf("Plan allocates %s, expected %s", total, result.RequiredDeduction)
	}
}

func TestSolver_RebateThresholdBreakEven(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewTaxEvaluator())

	result, err := solver.Solve(context.Background(), domain.TaxProfile{GrossSalary: dec(750000)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.Reachable || !result.RequiredDeduction.Equal(dec(200000)) {
		t.Errorf("Expected 200000 to reach the old-regime rebate, got %s (reachable=%t)", result.RequiredDeduction, result.Reachable)
	}
}

func TestSolver_UnreachableWhenTiesFavourNew(t *testing.T) {
	rules := domain.DefaultTaxRules()
	rules.TieBreak = domain.RegimeNew
	solver := NewDefaultSolver(calculation.NewTaxEvaluatorWithRules(rules))

	result, err := solver.Solve(context.Background(), domain.TaxProfile{GrossSalary: dec(750000)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Reachable {
		t.Errorf("Expected unreachable break-even, got %s", result.RequiredDeduction)
	}
	if !result.Success {
		t.Error("An unreachable break-even is still a successful search")
	}
}

func TestSolver_ExceedsHeadroom(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewTaxEvaluator())

	result, err := solver.Solve(context.Background(), domain.TaxProfile{GrossSalary: dec(3000000)})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.RequiredDeduction.Equal(dec(374999)) {
		t.Errorf("Expected 374999, got %s", result.RequiredDeduction)
	}
	if result.WithinHeadroom {
		t.Error("Expected break-even to exceed headroom")
	}
	if len(result.Plan) != len(HeadroomSections) {
		t.Errorf("Expected plan to use every section, got %d allocations", len(result.Plan))
	}
}

func TestSolver_ContextCancellation(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewTaxEvaluator())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Solve(ctx, domain.TaxProfile{GrossSalary: dec(1000000)})
	if err == nil {
		t.Fatal("Expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled in chain, got %v", err)
	}
}

func TestSolver_InvalidOptions(t *testing.T) {
	evaluator := calculation.NewTaxEvaluator()

	_, err := NewSolver(evaluator, SolverOptions{Tolerance: decimal.Zero, MaxIterations: 10}).
		Solve(context.Background(), domain.TaxProfile{GrossSalary: dec(1000000)})
	var bee *BreakEvenError
	if !errors.As(err, &bee) || bee.Operation != "validate_options" {
		t.Errorf("Expected validate_options error, got %v", err)
	}

	_, err = NewSolver(evaluator, SolverOptions{Tolerance: dec(1), MaxIterations: 2}).
		Solve(context.Background(), domain.TaxProfile{GrossSalary: dec(1000000)})
	if !errors.As(err, &bee) || bee.Operation != "solve" {
		t.Errorf("Expected non-convergence error, got %v", err)
	}
}
