// Package planner holds the personal-finance calculators that sit alongside
// the tax evaluator: SIP projection, loan EMI, monthly budget, goal-based
// SIP planning and portfolio valuation. Rates are annual percentages
// compounded monthly.
package planner

import (
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// workingPrecision bounds the digits carried between compounding steps
const workingPrecision = 10

var (
	hundred         = decimal.NewFromInt(100)
	monthsPerYear   = decimal.NewFromInt(12)
	monthlyDivisor  = hundred.Mul(monthsPerYear)
	healthySavings  = decimal.NewFromInt(20)
	affordableShare = decimal.RequireFromString("0.4")
)

func decimalInt(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// monthlyRate converts an annual percentage into a monthly fraction
func monthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(monthlyDivisor)
}

// growthFactor returns (1+r)^n
func growthFactor(r decimal.Decimal, months int) decimal.Decimal {
	return decimal.NewFromInt(1).Add(r).Pow(decimal.NewFromInt(int64(months)))
}

func requirePositiveYears(years int) error {
	if years <= 0 {
		return domain.NewValidationError("years", "must be positive, got %d", years)
	}
	return nil
}

func requireNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.NewValidationError(field, "cannot be negative, got %s", v)
	}
	return nil
}

// compound runs a monthly contribution plan and returns the final balance
// along with the balance at the end of each year.
func compound(contribution, r decimal.Decimal, years int) (decimal.Decimal, []decimal.Decimal) {
	factor := decimal.NewFromInt(1).Add(r)
	balance := decimal.Zero
	yearEnds := make([]decimal.Decimal, 0, years)

	for month := 1; month <= years*12; month++ {
		balance = balance.Mul(factor).Add(contribution).Round(workingPrecision)
		if month%12 == 0 {
			yearEnds = append(yearEnds, balance.Round(0))
		}
	}

	return balance, yearEnds
}
