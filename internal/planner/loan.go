package planner

import (
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateEMI computes the equated monthly instalment of an amortising loan:
// P·r·(1+r)^n / ((1+r)^n − 1). A zero rate repays the principal evenly.
func CalculateEMI(in domain.LoanInput) (*domain.LoanResult, error) {
	if !in.Principal.IsPositive() {
		return nil, domain.NewValidationError("principal", "must be positive, got %s", in.Principal)
	}
	if err := requirePositiveYears(in.Years); err != nil {
		return nil, err
	}
	if err := requireNonNegative("rate", in.AnnualRate); err != nil {
		return nil, err
	}

	months := in.Years * 12
	n := decimalInt(int64(months))
	r := monthlyRate(in.AnnualRate)

	var emi decimal.Decimal
	if r.IsZero() {
		emi = in.Principal.Div(n)
	} else {
		factor := growthFactor(r, months)
		emi = in.Principal.Mul(r).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))
	}

	totalPayment := emi.Mul(n)

	return &domain.LoanResult{
		Principal:     in.Principal,
		Years:         in.Years,
		Rate:          in.AnnualRate,
		EMI:           emi.Round(2),
		TotalPayment:  totalPayment.Round(2),
		TotalInterest: totalPayment.Sub(in.Principal).Round(2),
	}, nil
}
