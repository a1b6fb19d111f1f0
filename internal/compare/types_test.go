package compare

import (
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	mc := NewMetricsCalculator()

	decision := domain.TaxDecision{
		Profile:   testProfile(),
		OldRegime: domain.RegimeResult{Regime: domain.RegimeOld, TaxPayable: dec(23400)},
		NewRegime: domain.RegimeResult{Regime: domain.RegimeNew, TaxPayable: dec(31200)},
		Best:      domain.RegimeOld,
	}

	result := mc.CalculateMetrics("base", decision)

	assert.Equal(t, "base", result.ScenarioName)
	assert.True(t, result.OldRegimeTax.Equal(dec(23400)))
	assert.True(t, result.NewRegimeTax.Equal(dec(31200)))
	assert.True(t, result.BestTax.Equal(dec(23400)))
	assert.Equal(t, domain.RegimeOld, result.BestRegime)
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	mc := NewMetricsCalculator()

	base := ComparisonResult{OldRegimeTax: dec(23400), NewRegimeTax: dec(31200), BestTax: dec(23400), BestRegime: domain.RegimeOld}
	alt := ComparisonResult{OldRegimeTax: dec(41704), NewRegimeTax: dec(39520), BestTax: dec(39520), BestRegime: domain.RegimeNew}

	result := mc.CalculateComparison(alt, base)

	assert.True(t, result.OldTaxDiffFromBase.Equal(dec(18304)))
	assert.True(t, result.NewTaxDiffFromBase.Equal(dec(8320)))
	assert.True(t, result.BestTaxDiffFromBase.Equal(dec(16120)))
	assert.True(t, result.BestTaxPctFromBase.Equal(decimal.RequireFromString("68.89")), "pct %s", result.BestTaxPctFromBase)
	assert.True(t, result.RegimeChanged)
}

func TestMetricsCalculator_CalculateComparison_ZeroBase(t *testing.T) {
	mc := NewMetricsCalculator()

	base := ComparisonResult{BestTax: decimal.Zero, BestRegime: domain.RegimeOld}
	alt := ComparisonResult{BestTax: dec(1000), BestRegime: domain.RegimeOld}

	result := mc.CalculateComparison(alt, base)

	assert.True(t, result.BestTaxPctFromBase.IsZero(), "no percentage against a zero base")
	assert.False(t, result.RegimeChanged)
}

func TestGenerateRecommendations(t *testing.T) {
	recs := GenerateRecommendations(sampleComparisonSet())

	assert.Equal(t, []string{
		"Lowest Tax: max_80c saves ₹23,400 under the Old Regime",
		"Regime Switch: raise_10pct makes the New Regime the better choice",
	}, recs)
}

func TestGenerateRecommendations_NoImprovement(t *testing.T) {
	compSet := &ComparisonSet{
		Currency:   "₹",
		BaseResult: &ComparisonResult{ScenarioName: "base", BestTax: dec(0), BestRegime: domain.RegimeOld},
		AlternativeResults: []ComparisonResult{
			{ScenarioName: "raise", BestTax: dec(5000), BestRegime: domain.RegimeOld},
		},
	}

	recs := GenerateRecommendations(compSet)

	assert.Equal(t, []string{"No alternative lowers your tax below the base scenario"}, recs)
}

func TestGenerateRecommendations_Empty(t *testing.T) {
	assert.Empty(t, GenerateRecommendations(&ComparisonSet{BaseResult: &ComparisonResult{}}))
}
