package planner

import (
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	HealthyBudgetAdvice   = "Great! You're saving well."
	UnhealthyBudgetAdvice = "Try to reduce expenses or increase income."
)

// AnalyzeBudget totals monthly expenses and judges the savings rate. A budget
// is healthy when at least 20% of income is saved.
func AnalyzeBudget(in domain.BudgetInput) (*domain.BudgetResult, error) {
	categories := []domain.BudgetCategory{
		{Name: "Rent", Amount: in.Rent},
		{Name: "Food", Amount: in.Food},
		{Name: "Transport", Amount: in.Transport},
		{Name: "Entertainment", Amount: in.Entertainment},
		{Name: "Other", Amount: in.Other},
	}

	if err := requireNonNegative("income", in.Income); err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, c := range categories {
		if err := requireNonNegative(c.Name, c.Amount); err != nil {
			return nil, err
		}
		total = total.Add(c.Amount)
	}

	savings := in.Income.Sub(total)
	categories = append(categories, domain.BudgetCategory{Name: "Savings", Amount: decimal.Max(savings, decimal.Zero)})

	savingsPercent := decimal.Zero
	if in.Income.IsPositive() {
		savingsPercent = savings.Div(in.Income).Mul(hundred).Round(2)
		for i := range categories {
			categories[i].Share = categories[i].Amount.Div(in.Income).Mul(hundred).Round(2)
		}
	}

	healthy := savingsPercent.GreaterThanOrEqual(healthySavings)
	advice := UnhealthyBudgetAdvice
	if healthy {
		advice = HealthyBudgetAdvice
	}

	return &domain.BudgetResult{
		Income:         in.Income,
		TotalExpenses:  total,
		Savings:        savings,
		SavingsPercent: savingsPercent,
		Healthy:        healthy,
		Advice:         advice,
		Categories:     categories,
	}, nil
}
