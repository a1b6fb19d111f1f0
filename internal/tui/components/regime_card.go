package components

import (
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

// RegimeCards renders one metric card per regime, highlighting the
// recommended one.
func RegimeCards(d *domain.TaxDecision, currency string, width int) string {
	cards := make([]*MetricCard, 0, 2)
	for _, regime := range []domain.Regime{domain.RegimeOld, domain.RegimeNew} {
		r := d.Result(regime)
		card := NewMetricCard(regime.DisplayName(), tuistyles.FormatCurrency(currency, r.TaxPayable)).
			WithDescription("Taxable " + tuistyles.FormatCurrency(currency, r.TaxableIncome)).
			WithWidth(width)
		if regime == d.Best {
			card.WithHighlight(true).
				WithTrend(true, tuistyles.FormatCurrency(currency, d.Savings())+" less")
		}
		cards = append(cards, card)
	}
	return MetricGrid(cards, 2)
}
