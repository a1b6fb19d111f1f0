package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func testProfile() domain.TaxProfile {
	return domain.TaxProfile{
		GrossSalary:  dec(800000),
		BasicSalary:  dec(400000),
		RentPaid:     dec(180000),
		HRAReceived:  dec(120000),
		Deduction80C: dec(100000),
	}
}

func TestCompareEngine_Templates(t *testing.T) {
	engine := NewCompareEngine(calculation.NewTaxEvaluator())

	compSet, err := engine.Compare(context.Background(), testProfile(), CompareOptions{
		Templates: []string{"max_80c", "raise_10pct", "no_rent"},
	})
	require.NoError(t, err)

	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, "base", compSet.BaseScenarioName)
	assert.True(t, compSet.BaseResult.BestTax.Equal(dec(23400)))
	assert.Equal(t, domain.RegimeOld, compSet.BaseResult.BestRegime)
	require.Len(t, compSet.AlternativeResults, 3)

	max80c := compSet.AlternativeResults[0]
	assert.Equal(t, "max_80c", max80c.ScenarioName)
	assert.True(t, max80c.OldRegimeTax.IsZero(), "taxable drops to the rebate threshold")
	assert.True(t, max80c.BestTaxDiffFromBase.Equal(dec(-23400)))
	assert.True(t, max80c.BestTaxPctFromBase.Equal(dec(-100)))
	assert.False(t, max80c.RegimeChanged)

	raise := compSet.AlternativeResults[1]
	assert.True(t, raise.OldRegimeTax.Equal(dec(41704)), "old %s", raise.OldRegimeTax)
	assert.True(t, raise.NewRegimeTax.Equal(dec(39520)), "new %s", raise.NewRegimeTax)
	assert.Equal(t, domain.RegimeNew, raise.BestRegime)
	assert.True(t, raise.RegimeChanged)

	noRent := compSet.AlternativeResults[2]
	assert.True(t, noRent.OldRegimeTax.Equal(dec(44200)), "old %s", noRent.OldRegimeTax)
	assert.True(t, noRent.NewTaxDiffFromBase.IsZero(), "rent never affects the new regime")

	require.NotEmpty(t, compSet.Recommendations)
	assert.Contains(t, compSet.Recommendations[0], "Lowest Tax: max_80c saves ₹23,400")
	assert.Contains(t, compSet.Recommendations, "Regime Switch: raise_10pct makes the New Regime the better choice")
}

func TestCompareEngine_TransformSpecs(t *testing.T) {
	engine := NewCompareEngine(calculation.NewTaxEvaluator())

	compSet, err := engine.Compare(context.Background(), testProfile(), CompareOptions{
		BaseScenarioName: "current",
		TransformSpecs:   []string{"add_deduction:section=80c,amount=50000"},
	})
	require.NoError(t, err)

	require.Len(t, compSet.AlternativeResults, 1)
	alt := compSet.AlternativeResults[0]
	assert.Equal(t, "add_deduction:section=80c,amount=50000", alt.ScenarioName)
	assert.Equal(t, "Invest 50,000 more under Section 80C", alt.Description)
	assert.True(t, alt.Profile.Deduction80C.Equal(dec(150000)))
	assert.Equal(t, "current", compSet.BaseScenarioName)
}

func TestCompareEngine_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewTaxEvaluator())

	_, err := engine.Compare(context.Background(), testProfile(), CompareOptions{Templates: []string{"retire_early"}})
	assert.ErrorContains(t, err, "template retire_early not found")

	_, err = engine.Compare(context.Background(), testProfile(), CompareOptions{TransformSpecs: []string{"set_rent:amount=-5"}})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Compare(ctx, testProfile(), CompareOptions{Templates: []string{"max_80c"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareEngine_NoAlternatives(t *testing.T) {
	engine := NewCompareEngine(calculation.NewTaxEvaluator())

	compSet, err := engine.Compare(context.Background(), testProfile(), CompareOptions{})
	require.NoError(t, err)

	assert.Empty(t, compSet.AlternativeResults)
	assert.Empty(t, compSet.Recommendations)
}
