// Package expense categorises bank-statement transactions and flags unusual
// spends.
package expense

import (
	"github.com/shopspring/decimal"
)

// Money is an amount in a single currency
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

func NewMoneyZero(currency string) Money {
	return Money{
		Amount:   decimal.Zero,
		Currency: currency,
	}
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}
