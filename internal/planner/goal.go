package planner

import (
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// RequiredSIP returns the monthly investment that grows to goal over the
// given number of years: goal·r / ((1+r)^n − 1), rounded to two places.
func RequiredSIP(goal decimal.Decimal, years int, annualReturn decimal.Decimal) decimal.Decimal {
	months := years * 12
	r := monthlyRate(annualReturn)
	if r.IsZero() {
		return goal.Div(decimalInt(int64(months))).Round(2)
	}
	return goal.Mul(r).Div(growthFactor(r, months).Sub(decimal.NewFromInt(1))).Round(2)
}

// PlanGoal works out the SIP needed for a goal and whether it fits within
// 40% of monthly income.
func PlanGoal(in domain.GoalInput) (*domain.GoalResult, error) {
	if !in.GoalAmount.IsPositive() {
		return nil, domain.NewValidationError("goal_amount", "must be positive, got %s", in.GoalAmount)
	}
	if err := requirePositiveYears(in.Years); err != nil {
		return nil, err
	}
	if err := requireNonNegative("income", in.MonthlyIncome); err != nil {
		return nil, err
	}
	if err := requireNonNegative("annual_return", in.AnnualReturn); err != nil {
		return nil, err
	}

	sip := RequiredSIP(in.GoalAmount, in.Years, in.AnnualReturn)
	_, yearEnds := compound(sip, monthlyRate(in.AnnualReturn), in.Years)

	return &domain.GoalResult{
		GoalAmount:    in.GoalAmount,
		Years:         in.Years,
		AnnualReturn:  in.AnnualReturn,
		RequiredSIP:   sip,
		Affordable:    sip.LessThanOrEqual(in.MonthlyIncome.Mul(affordableShare)),
		MonthlyIncome: in.MonthlyIncome,
		YearEndValues: yearEnds,
	}, nil
}
