package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxPriceLookups bounds concurrent calls into a PriceSource
const maxPriceLookups = 4

// PriceSource quotes the current price of a symbol. Implementations may
// block on network I/O and should honour ctx.
type PriceSource interface {
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// PriceFunc adapts a plain function to PriceSource
type PriceFunc func(ctx context.Context, symbol string) (decimal.Decimal, error)

func (f PriceFunc) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	return f(ctx, symbol)
}

// ErrPriceUnavailable is reported for symbols a source cannot quote
var ErrPriceUnavailable = errors.New("price unavailable")

// StaticPrices quotes from a fixed symbol table
type StaticPrices map[string]decimal.Decimal

func (s StaticPrices) Price(_ context.Context, symbol string) (decimal.Decimal, error) {
	p, ok := s[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s: %w", symbol, ErrPriceUnavailable)
	}
	return p, nil
}

// ValuePortfolio marks every holding to its current price. Symbols are
// trimmed and upper-cased before lookup. A lookup that fails, or returns a
// negative price, values that holding at zero instead of failing the whole
// portfolio. Amounts are rounded to 2 places and totals are summed from the
// rounded rows.
func ValuePortfolio(ctx context.Context, holdings []domain.Holding, prices PriceSource) (*domain.PortfolioResult, error) {
	if len(holdings) == 0 {
		return nil, domain.NewValidationError("holdings", "at least one holding is required")
	}
	normalised := make([]domain.Holding, len(holdings))
	for i, h := range holdings {
		h.Symbol = strings.ToUpper(strings.TrimSpace(h.Symbol))
		if h.Symbol == "" {
			return nil, domain.NewValidationError(fmt.Sprintf("holdings[%d].symbol", i), "cannot be empty")
		}
		if err := requireNonNegative(fmt.Sprintf("holdings[%d].quantity", i), h.Quantity); err != nil {
			return nil, err
		}
		if err := requireNonNegative(fmt.Sprintf("holdings[%d].buy_price", i), h.BuyPrice); err != nil {
			return nil, err
		}
		normalised[i] = h
	}

	quotes := make([]decimal.Decimal, len(normalised))
	failures := make([]error, len(normalised))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxPriceLookups)
	for i, h := range normalised {
		i, h := i, h
		g.Go(func() error {
			quotes[i], failures[i] = lookup(gCtx, prices, h.Symbol)
			return nil
		})
	}
	g.Wait()

	result := &domain.PortfolioResult{
		Holdings:      make([]domain.HoldingValuation, len(normalised)),
		TotalInvested: decimal.Zero,
		CurrentValue:  decimal.Zero,
		NetProfitLoss: decimal.Zero,
	}

	for i, h := range normalised {
		v := valueHolding(h, quotes[i])
		if failures[i] != nil {
			v.PriceError = failures[i].Error()
		}
		result.Holdings[i] = v

		result.TotalInvested = result.TotalInvested.Add(v.Invested)
		result.CurrentValue = result.CurrentValue.Add(v.CurrentValue)
		result.NetProfitLoss = result.NetProfitLoss.Add(v.ProfitLoss)
	}
	result.ReturnPercent = percentOf(result.NetProfitLoss, result.TotalInvested)

	return result, nil
}

func lookup(ctx context.Context, prices PriceSource, symbol string) (decimal.Decimal, error) {
	if prices == nil {
		return decimal.Zero, fmt.Errorf("%s: %w", symbol, ErrPriceUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	p, err := prices.Price(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	if p.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s: negative price %s", symbol, p)
	}
	return p, nil
}

func valueHolding(h domain.Holding, price decimal.Decimal) domain.HoldingValuation {
	invested := h.Quantity.Mul(h.BuyPrice)
	current := h.Quantity.Mul(price)
	gain := current.Sub(invested)

	return domain.HoldingValuation{
		Symbol:        h.Symbol,
		Quantity:      h.Quantity,
		BuyPrice:      h.BuyPrice,
		CurrentPrice:  price.Round(2),
		Invested:      invested.Round(2),
		CurrentValue:  current.Round(2),
		ProfitLoss:    gain.Round(2),
		ReturnPercent: percentOf(gain, invested),
	}
}

// percentOf returns part as a percentage of whole, 0 when whole is 0
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
