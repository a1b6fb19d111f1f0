package calculation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaxEvaluator(t *testing.T) {
	evaluator := NewTaxEvaluator()

	assert.NotNil(t, evaluator, "Should create evaluator")
	assert.NotNil(t, evaluator.OldCalc, "Should initialize old regime calculator")
	assert.NotNil(t, evaluator.NewCalc, "Should initialize new regime calculator")
	assert.NotNil(t, evaluator.Suggestions, "Should initialize suggestion generator")
	assert.NotNil(t, evaluator.Logger, "Should initialize logger")
	assert.Nil(t, evaluator.Advisor, "Advisor is opt-in")
	assert.Equal(t, DefaultAdviceTimeout, evaluator.AdviceTimeout)
}

func TestTaxEvaluator_SetLogger(t *testing.T) {
	evaluator := NewTaxEvaluator()

	customLogger := &TestLogger{}
	evaluator.SetLogger(customLogger)
	assert.Equal(t, customLogger, evaluator.Logger, "Should set custom logger")

	evaluator.SetLogger(nil)
	assert.NotNil(t, evaluator.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, evaluator.Logger, "Should be no-op logger")
}

func TestTaxEvaluator_SetAdvisor(t *testing.T) {
	evaluator := NewTaxEvaluator()
	advisor := AdvisorFunc(func(context.Context, domain.TaxProfile) (string, error) { return "tip", nil })

	evaluator.SetAdvisor(advisor, 0)
	assert.NotNil(t, evaluator.Advisor)
	assert.Equal(t, DefaultAdviceTimeout, evaluator.AdviceTimeout, "non-positive timeout keeps default")

	evaluator.SetAdvisor(advisor, 3*time.Second)
	assert.Equal(t, 3*time.Second, evaluator.AdviceTimeout)
}

func TestTaxEvaluator_Compute_WorkedExample(t *testing.T) {
	evaluator := NewTaxEvaluator()

	decision := evaluator.Compute(sampleProfile())

	assert.True(t, decision.OldRegime.TaxPayable.Equal(d(23400)))
	assert.True(t, decision.NewRegime.TaxPayable.Equal(d(31200)))
	assert.Equal(t, domain.RegimeOld, decision.Best)
	assert.Equal(t, "Old Regime", decision.Best.DisplayName())
	assert.True(t, decision.Savings().Equal(d(7800)))
	assert.Nil(t, decision.Advisory)
	assert.NotEmpty(t, decision.Suggestions)
}

func TestTaxEvaluator_Compute_PrefersNewRegimeWhenCheaper(t *testing.T) {
	evaluator := NewTaxEvaluator()

	decision := evaluator.Compute(domain.TaxProfile{GrossSalary: d(750000)})

	assert.True(t, decision.NewRegime.TaxPayable.IsZero())
	assert.True(t, decision.OldRegime.TaxPayable.IsPositive())
	assert.Equal(t, domain.RegimeNew, decision.Best)
}

func TestTaxEvaluator_Compute_TieBreak(t *testing.T) {
	// both regimes rebate to zero
	profile := domain.TaxProfile{GrossSalary: d(400000)}

	evaluator := NewTaxEvaluator()
	assert.Equal(t, domain.RegimeOld, evaluator.Compute(profile).Best)

	rules := domain.DefaultTaxRules()
	rules.TieBreak = domain.RegimeNew
	assert.Equal(t, domain.RegimeNew, NewTaxEvaluatorWithRules(rules).Compute(profile).Best)
}

func TestTaxEvaluator_Compute_IsIdempotent(t *testing.T) {
	evaluator := NewTaxEvaluator()
	profile := sampleProfile()

	first := evaluator.Compute(profile)
	second := evaluator.Compute(profile)

	assert.Equal(t, first, second)
	assert.Equal(t, sampleProfile(), profile, "input profile must not be mutated")
}

func TestTaxEvaluator_Compute_Concurrent(t *testing.T) {
	evaluator := NewTaxEvaluator()
	want := evaluator.Compute(sampleProfile())

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := evaluator.Compute(sampleProfile())
			assert.True(t, want.OldRegime.TaxPayable.Equal(got.OldRegime.TaxPayable))
			assert.True(t, want.NewRegime.TaxPayable.Equal(got.NewRegime.TaxPayable))
		}()
	}
	wg.Wait()
}

func TestTaxEvaluator_Evaluate_WithAdvice(t *testing.T) {
	evaluator := NewTaxEvaluator()
	var seen domain.TaxProfile
	evaluator.SetAdvisor(AdvisorFunc(func(_ context.Context, p domain.TaxProfile) (string, error) {
		seen = p
		return "Consider these:\n- Top up your PPF\n- Buy a family floater", nil
	}), time.Second)

	decision := evaluator.Evaluate(context.Background(), sampleProfile())

	require.NotNil(t, decision)
	require.NotNil(t, decision.Advisory)
	assert.True(t, decision.Advisory.Available)
	assert.Equal(t, []string{"Consider these:", "Top up your PPF", "Buy a family floater"}, decision.Advisory.Tips)
	assert.Equal(t, sampleProfile(), seen, "advisor receives the full profile")
	assert.True(t, decision.OldRegime.TaxPayable.Equal(d(23400)))
}

func TestTaxEvaluator_Evaluate_AdvisorFailureKeepsNumbers(t *testing.T) {
	evaluator := NewTaxEvaluator()
	logger := &TestLogger{}
	evaluator.SetLogger(logger)
	evaluator.SetAdvisor(AdvisorFunc(func(context.Context, domain.TaxProfile) (string, error) {
		return "", errors.New("upstream unavailable")
	}), time.Second)

	decision := evaluator.Evaluate(context.Background(), sampleProfile())

	require.NotNil(t, decision.Advisory)
	assert.False(t, decision.Advisory.Available)
	assert.Contains(t, decision.Advisory.Message, "upstream unavailable")
	assert.True(t, decision.OldRegime.TaxPayable.Equal(d(23400)))
	assert.True(t, decision.NewRegime.TaxPayable.Equal(d(31200)))
	assert.Equal(t, domain.RegimeOld, decision.Best)
	assert.Contains(t, logger.messages, "WARN: %s")
}

func TestTaxEvaluator_Evaluate_WithoutAdvisor(t *testing.T) {
	decision := NewTaxEvaluator().Evaluate(context.Background(), sampleProfile())

	assert.Nil(t, decision.Advisory)
	assert.Equal(t, domain.RegimeOld, decision.Best)
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	mu       sync.Mutex
	messages []string
}

func (tl *TestLogger) record(msg string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.messages = append(tl.messages, msg)
}

func (tl *TestLogger) Debugf(format string, args ...any) { tl.record("DEBUG: " + format) }
func (tl *TestLogger) Infof(format string, args ...any)  { tl.record("INFO: " + format) }
func (tl *TestLogger) Warnf(format string, args ...any)  { tl.record("WARN: " + format) }
func (tl *TestLogger) Errorf(format string, args ...any) { tl.record("ERROR: " + format) }
