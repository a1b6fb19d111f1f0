package output

import (
	"bytes"
	"encoding/json"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// RegimeAmounts is the wire form of one regime's result
type RegimeAmounts struct {
	TaxableIncome json.Number `json:"taxable_income"`
	TaxPayable    json.Number `json:"tax_payable"`
}

// TaxResponse is the JSON shape shared by the json formatter and the HTTP
// API. Amounts are plain JSON numbers.
type TaxResponse struct {
	OldRegime          RegimeAmounts `json:"old_regime"`
	NewRegime          RegimeAmounts `json:"new_regime"`
	Best               string        `json:"best"`
	Savings            json.Number   `json:"savings"`
	Suggestions        []string      `json:"suggestions"`
	GPTSuggestionsRaw  *string       `json:"gpt_suggestions_raw,omitempty"`
	GPTSuggestionsList []string      `json:"gpt_suggestions_list,omitempty"`
	AdvisoryMessage    string        `json:"advisory_message,omitempty"`
	Summary            string        `json:"summary"`
}

// NewTaxResponse converts a decision to its wire form
func NewTaxResponse(d *domain.TaxDecision, currency string) TaxResponse {
	resp := TaxResponse{
		OldRegime:   amounts(d.OldRegime),
		NewRegime:   amounts(d.NewRegime),
		Best:        d.Best.DisplayName(),
		Savings:     number(d.Savings()),
		Suggestions: d.Suggestions,
		Summary:     Summary(d, currency),
	}
	if resp.Suggestions == nil {
		resp.Suggestions = []string{}
	}

	if d.Advisory != nil {
		if d.Advisory.Available {
			raw := d.Advisory.Raw
			resp.GPTSuggestionsRaw = &raw
			resp.GPTSuggestionsList = d.Advisory.Tips
		} else {
			resp.AdvisoryMessage = d.Advisory.Message
		}
	}

	return resp
}

func amounts(r domain.RegimeResult) RegimeAmounts {
	return RegimeAmounts{
		TaxableIncome: number(r.TaxableIncome),
		TaxPayable:    number(r.TaxPayable),
	}
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// JSONFormatter renders the API response shape
type JSONFormatter struct {
	Currency string
	Indent   bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(d *domain.TaxDecision) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if j.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(NewTaxResponse(d, j.Currency)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
