package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct {
	Currency string
	// Now stamps the report; nil uses time.Now
	Now func() time.Time
}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Parse(htmlTemplateSource))

type htmlRegime struct {
	Name          string
	TaxableIncome string
	TaxPayable    string
	Best          bool
}

func (h HTMLFormatter) Format(d *domain.TaxDecision) ([]byte, error) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	money := func(v decimal.Decimal) string { return domain.FormatMoney(h.Currency, v) }

	data := struct {
		Generated   string
		Regimes     []htmlRegime
		Best        string
		Savings     string
		Suggestions []string
		Advisory    *domain.Advisory
	}{
		Generated:   now().Format("2006-01-02 15:04:05"),
		Best:        d.Best.DisplayName(),
		Savings:     money(d.Savings()),
		Suggestions: d.Suggestions,
		Advisory:    d.Advisory,
	}
	for _, regime := range []domain.Regime{domain.RegimeOld, domain.RegimeNew} {
		r := d.Result(regime)
		data.Regimes = append(data.Regimes, htmlRegime{
			Name:          regime.DisplayName(),
			TaxableIncome: money(r.TaxableIncome),
			TaxPayable:    money(r.TaxPayable),
			Best:          regime == d.Best,
		})
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
