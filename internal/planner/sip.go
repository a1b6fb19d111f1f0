package planner

import (
	"github.com/rgehrsitz/finplan/internal/domain"
)

// ProjectSIP projects the value of a fixed monthly investment.
func ProjectSIP(in domain.SIPInput) (*domain.SIPResult, error) {
	if err := requireNonNegative("amount", in.MonthlyAmount); err != nil {
		return nil, err
	}
	if err := requirePositiveYears(in.Years); err != nil {
		return nil, err
	}
	if err := requireNonNegative("rate", in.AnnualRate); err != nil {
		return nil, err
	}

	months := int64(in.Years * 12)
	value, yearEnds := compound(in.MonthlyAmount, monthlyRate(in.AnnualRate), in.Years)
	invested := in.MonthlyAmount.Mul(decimalInt(months))
	value = value.Round(2)

	return &domain.SIPResult{
		MonthlyInvestment: in.MonthlyAmount,
		Years:             in.Years,
		Rate:              in.AnnualRate,
		TotalInvested:     invested,
		ProjectedValue:    value,
		EstimatedGain:     value.Sub(invested),
		YearEndValues:     yearEnds,
	}, nil
}
