package domain

import "github.com/shopspring/decimal"

// SIPInput describes a monthly systematic investment plan
type SIPInput struct {
	MonthlyAmount decimal.Decimal `json:"amount" yaml:"amount"`
	Years         int             `json:"years" yaml:"years"`
	AnnualRate    decimal.Decimal `json:"rate" yaml:"rate"` // percent, e.g. 12 for 12%
}

// SIPResult is the projected outcome of a SIP
type SIPResult struct {
	MonthlyInvestment decimal.Decimal   `json:"monthly_investment"`
	Years             int               `json:"years"`
	Rate              decimal.Decimal   `json:"rate"`
	TotalInvested     decimal.Decimal   `json:"total_invested"`
	ProjectedValue    decimal.Decimal   `json:"projected_value"`
	EstimatedGain     decimal.Decimal   `json:"estimated_gain"`
	YearEndValues     []decimal.Decimal `json:"year_end_values"`
}

// LoanInput describes an amortising loan
type LoanInput struct {
	Principal  decimal.Decimal `json:"principal" yaml:"principal"`
	Years      int             `json:"years" yaml:"years"`
	AnnualRate decimal.Decimal `json:"rate" yaml:"rate"` // percent
}

// LoanResult is the EMI breakdown of a loan
type LoanResult struct {
	Principal     decimal.Decimal `json:"principal"`
	Years         int             `json:"years"`
	Rate          decimal.Decimal `json:"rate"`
	EMI           decimal.Decimal `json:"emi"`
	TotalPayment  decimal.Decimal `json:"total_payment"`
	TotalInterest decimal.Decimal `json:"total_interest"`
}

// BudgetInput holds monthly income and expense categories
type BudgetInput struct {
	Income        decimal.Decimal `json:"income" yaml:"income"`
	Rent          decimal.Decimal `json:"rent" yaml:"rent"`
	Food          decimal.Decimal `json:"food" yaml:"food"`
	Transport     decimal.Decimal `json:"transport" yaml:"transport"`
	Entertainment decimal.Decimal `json:"entertainment" yaml:"entertainment"`
	Other         decimal.Decimal `json:"other" yaml:"other"`
}

// BudgetCategory is one slice of the monthly budget
type BudgetCategory struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Share  decimal.Decimal `json:"share"` // percent of income
}

// BudgetResult summarises a monthly budget
type BudgetResult struct {
	Income         decimal.Decimal  `json:"income"`
	TotalExpenses  decimal.Decimal  `json:"total_expenses"`
	Savings        decimal.Decimal  `json:"savings"`
	SavingsPercent decimal.Decimal  `json:"savings_percent"`
	Healthy        bool             `json:"healthy"`
	Advice         string           `json:"advice"`
	Categories     []BudgetCategory `json:"categories"`
}

// GoalInput describes a savings goal
type GoalInput struct {
	GoalAmount    decimal.Decimal `json:"goal_amount" yaml:"goal_amount"`
	Years         int             `json:"years" yaml:"years"`
	MonthlyIncome decimal.Decimal `json:"income" yaml:"income"`
	AnnualReturn  decimal.Decimal `json:"annual_return" yaml:"annual_return"` // percent
}

// GoalResult is the SIP plan that reaches a goal
type GoalResult struct {
	GoalAmount    decimal.Decimal   `json:"goal_amount"`
	Years         int               `json:"years"`
	AnnualReturn  decimal.Decimal   `json:"annual_return"`
	RequiredSIP   decimal.Decimal   `json:"required_sip"`
	Affordable    bool              `json:"affordable"`
	MonthlyIncome decimal.Decimal   `json:"income"`
	YearEndValues []decimal.Decimal `json:"year_end_values"`
}

// Holding is a quantity of one listed security bought at a price
type Holding struct {
	Symbol   string          `json:"symbol" yaml:"symbol"`
	Quantity decimal.Decimal `json:"quantity" yaml:"quantity"`
	BuyPrice decimal.Decimal `json:"buy_price" yaml:"buy_price"`
}

// HoldingValuation is a holding marked to its current price. A failed price
// lookup values the holding at zero and records why in PriceError.
type HoldingValuation struct {
	Symbol        string          `json:"symbol"`
	Quantity      decimal.Decimal `json:"quantity"`
	BuyPrice      decimal.Decimal `json:"buy_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	Invested      decimal.Decimal `json:"invested"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	ProfitLoss    decimal.Decimal `json:"profit_loss"`
	ReturnPercent decimal.Decimal `json:"return_percent"`
	PriceError    string          `json:"price_error,omitempty"`
}

// PortfolioResult totals a valued portfolio
type PortfolioResult struct {
	Holdings      []HoldingValuation `json:"holdings"`
	TotalInvested decimal.Decimal    `json:"total_invested"`
	CurrentValue  decimal.Decimal    `json:"current_value"`
	NetProfitLoss decimal.Decimal    `json:"net_profit_loss"`
	ReturnPercent decimal.Decimal    `json:"return_percent"`
}
