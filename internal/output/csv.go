package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// CSVFormatter writes one row per regime
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(d *domain.TaxDecision) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Regime", "TaxableIncome", "GrossTaxableIncome", "HRAExemption", "SlabTax", "RebateApplied", "Cess", "TaxPayable", "Recommended"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, regime := range []domain.Regime{domain.RegimeOld, domain.RegimeNew} {
		r := d.Result(regime)
		row := []string{
			regime.DisplayName(),
			r.TaxableIncome.String(),
			r.GrossTaxableIncome.String(),
			r.HRAExemption.String(),
			r.SlabTax.StringFixed(2),
			strconv.FormatBool(r.RebateApplied),
			r.Cess.StringFixed(2),
			r.TaxPayable.String(),
			strconv.FormatBool(regime == d.Best),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
