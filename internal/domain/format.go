package domain

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount with thousands separators, keeping up to
// two decimal places only when the amount has a fractional part.
func FormatAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatAmount(d.Neg())
	}

	r := d.Round(2)
	whole := r.Truncate(0)
	out := humanize.BigComma(whole.BigInt())

	frac := strings.TrimRight(r.Sub(whole).StringFixed(2), "0")
	if frac == "0." {
		return out
	}
	return out + strings.TrimPrefix(frac, "0")
}

// FormatMoney prefixes FormatAmount with a currency symbol
func FormatMoney(symbol string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + symbol + FormatAmount(d.Abs())
	}
	return symbol + FormatAmount(d)
}
