package planner

import (
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestProjectSIP(t *testing.T) {
	result, err := ProjectSIP(domain.SIPInput{MonthlyAmount: d(10000), Years: 10, AnnualRate: d(12)})
	require.NoError(t, err)

	assert.True(t, result.TotalInvested.Equal(d(1200000)))
	assert.InDelta(t, 2300386.89, result.ProjectedValue.InexactFloat64(), 0.05)
	assert.InDelta(t, 1100386.89, result.EstimatedGain.InexactFloat64(), 0.05)
	require.Len(t, result.YearEndValues, 10)
	assert.True(t, result.YearEndValues[9].Equal(result.ProjectedValue.Round(0)))
	for i := 1; i < len(result.YearEndValues); i++ {
		assert.True(t, result.YearEndValues[i].GreaterThan(result.YearEndValues[i-1]))
	}
}

func TestProjectSIP_ZeroRate(t *testing.T) {
	result, err := ProjectSIP(domain.SIPInput{MonthlyAmount: d(5000), Years: 2, AnnualRate: decimal.Zero})
	require.NoError(t, err)

	assert.True(t, result.ProjectedValue.Equal(d(120000)))
	assert.True(t, result.EstimatedGain.IsZero())
}

func TestProjectSIP_InvalidInput(t *testing.T) {
	_, err := ProjectSIP(domain.SIPInput{MonthlyAmount: d(1000), Years: 0, AnnualRate: d(12)})
	assert.True(t, domain.IsValidationError(err))

	_, err = ProjectSIP(domain.SIPInput{MonthlyAmount: d(-1), Years: 5, AnnualRate: d(12)})
	assert.True(t, domain.IsValidationError(err))
}

func TestCalculateEMI(t *testing.T) {
	result, err := CalculateEMI(domain.LoanInput{Principal: d(500000), Years: 5, AnnualRate: d(10)})
	require.NoError(t, err)

	assert.InDelta(t, 10623.52, result.EMI.InexactFloat64(), 0.01)
	assert.InDelta(t, 637411.34, result.TotalPayment.InexactFloat64(), 1)
	assert.InDelta(t, 137411.34, result.TotalInterest.InexactFloat64(), 1)
}

func TestCalculateEMI_ZeroRate(t *testing.T) {
	result, err := CalculateEMI(domain.LoanInput{Principal: d(120000), Years: 1, AnnualRate: decimal.Zero})
	require.NoError(t, err)

	assert.True(t, result.EMI.Equal(d(10000)))
	assert.True(t, result.TotalInterest.IsZero())
}

func TestCalculateEMI_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input domain.LoanInput
	}{
		{"zero years", domain.LoanInput{Principal: d(100000), Years: 0, AnnualRate: d(10)}},
		{"negative years", domain.LoanInput{Principal: d(100000), Years: -2, AnnualRate: d(10)}},
		{"zero principal", domain.LoanInput{Principal: decimal.Zero, Years: 5, AnnualRate: d(10)}},
		{"negative rate", domain.LoanInput{Principal: d(100000), Years: 5, AnnualRate: d(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateEMI(tt.input)
			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err))
		})
	}
}

func TestAnalyzeBudget(t *testing.T) {
	result, err := AnalyzeBudget(domain.BudgetInput{
		Income:        d(50000),
		Rent:          d(15000),
		Food:          d(8000),
		Transport:     d(5000),
		Entertainment: d(3000),
		Other:         d(2000),
	})
	require.NoError(t, err)

	assert.True(t, result.TotalExpenses.Equal(d(33000)))
	assert.True(t, result.Savings.Equal(d(17000)))
	assert.True(t, result.SavingsPercent.Equal(d(34)))
	assert.True(t, result.Healthy)
	assert.Equal(t, HealthyBudgetAdvice, result.Advice)
	require.Len(t, result.Categories, 6)
	assert.Equal(t, "Savings", result.Categories[5].Name)
	assert.True(t, result.Categories[0].Share.Equal(d(30)))
}

func TestAnalyzeBudget_Overspending(t *testing.T) {
	result, err := AnalyzeBudget(domain.BudgetInput{Income: d(30000), Rent: d(20000), Food: d(15000)})
	require.NoError(t, err)

	assert.True(t, result.Savings.Equal(d(-5000)))
	assert.False(t, result.Healthy)
	assert.Equal(t, UnhealthyBudgetAdvice, result.Advice)
	assert.True(t, result.Categories[5].Amount.IsZero(), "savings slice never goes negative")
}

func TestAnalyzeBudget_BoundaryAndZeroIncome(t *testing.T) {
	result, err := AnalyzeBudget(domain.BudgetInput{Income: d(10000), Rent: d(8000)})
	require.NoError(t, err)
	assert.True(t, result.Healthy, "exactly 20% saved is healthy")

	result, err = AnalyzeBudget(domain.BudgetInput{})
	require.NoError(t, err)
	assert.True(t, result.SavingsPercent.IsZero())
	assert.False(t, result.Healthy)

	_, err = AnalyzeBudget(domain.BudgetInput{Income: d(1000), Food: d(-5)})
	assert.True(t, domain.IsValidationError(err))
}

func TestRequiredSIP(t *testing.T) {
	assert.True(t, RequiredSIP(d(1000000), 5, d(12)).Equal(decimal.RequireFromString("12244.45")))
	assert.True(t, RequiredSIP(d(120000), 1, decimal.Zero).Equal(d(10000)))
}

func TestPlanGoal(t *testing.T) {
	result, err := PlanGoal(domain.GoalInput{
		GoalAmount:    d(1000000),
		Years:         5,
		MonthlyIncome: d(50000),
		AnnualReturn:  d(12),
	})
	require.NoError(t, err)

	assert.True(t, result.RequiredSIP.Equal(decimal.RequireFromString("12244.45")))
	assert.True(t, result.Affordable)
	require.Len(t, result.YearEndValues, 5)
	assert.InDelta(t, 1000000, result.YearEndValues[4].InexactFloat64(), 5)
}

func TestPlanGoal_Unaffordable(t *testing.T) {
	result, err := PlanGoal(domain.GoalInput{
		GoalAmount:    d(1000000),
		Years:         5,
		MonthlyIncome: d(20000),
		AnnualReturn:  d(12),
	})
	require.NoError(t, err)
	assert.False(t, result.Affordable)
}

func TestPlanGoal_InvalidInput(t *testing.T) {
	_, err := PlanGoal(domain.GoalInput{GoalAmount: d(1000000), Years: 0, MonthlyIncome: d(50000), AnnualReturn: d(12)})
	assert.True(t, domain.IsValidationError(err))

	_, err = PlanGoal(domain.GoalInput{GoalAmount: decimal.Zero, Years: 5, MonthlyIncome: d(50000), AnnualReturn: d(12)})
	assert.True(t, domain.IsValidationError(err))
}
