package calculation

import (
	"context"
	"time"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// TaxEvaluator runs the full regime comparison for a profile. It holds no
// per-call state, so one evaluator may serve concurrent requests.
type TaxEvaluator struct {
	Rules         domain.TaxRules
	OldCalc       *RegimeTaxCalculator
	NewCalc       *RegimeTaxCalculator
	Suggestions   *SuggestionGenerator
	Advisor       Advisor
	AdviceTimeout time.Duration
	Logger        Logger
	Debug         bool
}

// NewTaxEvaluator creates an evaluator with the default rule tables
func NewTaxEvaluator() *TaxEvaluator {
	return NewTaxEvaluatorWithRules(domain.DefaultTaxRules())
}

// NewTaxEvaluatorWithRules creates an evaluator with configurable rule tables
func NewTaxEvaluatorWithRules(rules domain.TaxRules) *TaxEvaluator {
	return &TaxEvaluator{
		Rules:         rules,
		OldCalc:       NewOldRegimeCalculator(rules),
		NewCalc:       NewNewRegimeCalculator(rules),
		Suggestions:   NewSuggestionGenerator(rules),
		AdviceTimeout: DefaultAdviceTimeout,
		Logger:        NopLogger{},
	}
}

// SetLogger sets the logger; nil installs a no-op logger
func (e *TaxEvaluator) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// SetAdvisor installs the narrative collaborator. A non-positive timeout
// keeps the default.
func (e *TaxEvaluator) SetAdvisor(a Advisor, timeout time.Duration) {
	e.Advisor = a
	if timeout > 0 {
		e.AdviceTimeout = timeout
	}
}

// Compute produces the numeric decision without consulting the advisor.
func (e *TaxEvaluator) Compute(profile domain.TaxProfile) domain.TaxDecision {
	oldResult := e.OldCalc.CalculateTax(profile)
	newResult := e.NewCalc.CalculateTax(profile)
	best := SelectRegime(oldResult, newResult, e.Rules.TieBreak)

	if e.Debug {
		e.Logger.Debugf("old regime: hra_exempt=%s taxable=%s slab_tax=%s rebate=%t payable=%s",
			oldResult.HRAExemption, oldResult.GrossTaxableIncome, oldResult.SlabTax, oldResult.RebateApplied, oldResult.TaxPayable)
		e.Logger.Debugf("new regime: taxable=%s slab_tax=%s rebate=%t payable=%s",
			newResult.GrossTaxableIncome, newResult.SlabTax, newResult.RebateApplied, newResult.TaxPayable)
	}

	return domain.TaxDecision{
		Profile:     profile,
		OldRegime:   oldResult,
		NewRegime:   newResult,
		Best:        best,
		Suggestions: e.Suggestions.Suggest(profile),
	}
}

// Evaluate computes the decision and, when an advisor is configured,
// attaches its advice. Advisor failures never affect the numeric results.
func (e *TaxEvaluator) Evaluate(ctx context.Context, profile domain.TaxProfile) *domain.TaxDecision {
	decision := e.Compute(profile)

	if e.Advisor != nil {
		decision.Advisory = RequestAdvisory(ctx, e.Advisor, profile, e.AdviceTimeout)
		if !decision.Advisory.Available {
			e.Logger.Warnf("%s", decision.Advisory.Message)
		}
	}

	e.Logger.Infof("evaluated profile: old=%s new=%s best=%s",
		decision.OldRegime.TaxPayable, decision.NewRegime.TaxPayable, decision.Best)

	return &decision
}
