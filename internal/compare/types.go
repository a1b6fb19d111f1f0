package compare

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single what-if scenario with calculated metrics
type ComparisonResult struct {
	ScenarioName string            `json:"scenarioName"`
	Description  string            `json:"description"`
	Profile      domain.TaxProfile `json:"profile"`

	// Key Metrics
	OldRegimeTax decimal.Decimal `json:"oldRegimeTax"`
	NewRegimeTax decimal.Decimal `json:"newRegimeTax"`
	BestRegime   domain.Regime   `json:"bestRegime"`
	BestTax      decimal.Decimal `json:"bestTax"`

	// Comparison to Base
	OldTaxDiffFromBase  decimal.Decimal `json:"oldTaxDiffFromBase"`
	NewTaxDiffFromBase  decimal.Decimal `json:"newTaxDiffFromBase"`
	BestTaxDiffFromBase decimal.Decimal `json:"bestTaxDiffFromBase"`
	BestTaxPctFromBase  decimal.Decimal `json:"bestTaxPctFromBase"`
	RegimeChanged       bool            `json:"regimeChanged"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ProfilePath        string             `json:"profilePath,omitempty"`
	Currency           string             `json:"currency"`
}

// MetricsCalculator extracts key metrics from tax decisions
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one decision
func (mc *MetricsCalculator) CalculateMetrics(name string, decision domain.TaxDecision) ComparisonResult {
	return ComparisonResult{
		ScenarioName: name,
		Profile:      decision.Profile,
		OldRegimeTax: decision.OldRegime.TaxPayable,
		NewRegimeTax: decision.NewRegime.TaxPayable,
		BestRegime:   decision.Best,
		BestTax:      decision.Result(decision.Best).TaxPayable,
	}
}

// CalculateComparison computes deltas between a scenario and the base.
// Negative diffs mean the scenario pays less tax.
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.OldTaxDiffFromBase = scenario.OldRegimeTax.Sub(base.OldRegimeTax)
	scenario.NewTaxDiffFromBase = scenario.NewRegimeTax.Sub(base.NewRegimeTax)
	scenario.BestTaxDiffFromBase = scenario.BestTax.Sub(base.BestTax)

	if !base.BestTax.IsZero() {
		scenario.BestTaxPctFromBase = scenario.BestTaxDiffFromBase.
			Div(base.BestTax).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	scenario.RegimeChanged = scenario.BestRegime != base.BestRegime

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	// Find the scenario with the lowest tax under its best regime
	lowest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.BestTax.LessThan(lowest.BestTax) {
			lowest = alt
		}
	}

	if lowest != compSet.BaseResult {
		savings := compSet.BaseResult.BestTax.Sub(lowest.BestTax)
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Tax: %s saves %s under the %s",
				lowest.ScenarioName,
				domain.FormatMoney(compSet.Currency, savings),
				lowest.BestRegime.DisplayName()))
	} else {
		recommendations = append(recommendations,
			"No alternative lowers your tax below the base scenario")
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.RegimeChanged {
			recommendations = append(recommendations,
				fmt.Sprintf("Regime Switch: %s makes the %s the better choice",
					alt.ScenarioName, alt.BestRegime.DisplayName()))
		}
	}

	return recommendations
}
