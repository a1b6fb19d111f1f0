package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTaxProfile_TotalChapterVIA(t *testing.T) {
	p := TaxProfile{
		Deduction80C:            decimal.NewFromInt(150000),
		Deduction80D:            decimal.NewFromInt(25000),
		Deduction80E:            decimal.NewFromInt(10000),
		Deduction80G:            decimal.NewFromInt(5000),
		EmployerNPSContribution: decimal.NewFromInt(40000),
		HRAReceived:             decimal.NewFromInt(99999),
	}

	assert.True(t, p.TotalChapterVIA().Equal(decimal.NewFromInt(230000)))
}

func TestParseRegime(t *testing.T) {
	tests := []struct {
		in      string
		want    Regime
		wantErr bool
	}{
		{"old", RegimeOld, false},
		{"NEW", RegimeNew, false},
		{" Old Regime ", RegimeOld, false},
		{"new regime", RegimeNew, false},
		{"flat", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRegime(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegime_DisplayName(t *testing.T) {
	assert.Equal(t, "Old Regime", RegimeOld.DisplayName())
	assert.Equal(t, "New Regime", RegimeNew.DisplayName())
	assert.Equal(t, "other", Regime("other").DisplayName())
}

func TestTaxDecision_ResultAndSavings(t *testing.T) {
	decision := TaxDecision{
		OldRegime: RegimeResult{Regime: RegimeOld, TaxPayable: decimal.NewFromInt(23400)},
		NewRegime: RegimeResult{Regime: RegimeNew, TaxPayable: decimal.NewFromInt(31200)},
		Best:      RegimeOld,
	}

	assert.Equal(t, RegimeOld, decision.Result(RegimeOld).Regime)
	assert.Equal(t, RegimeNew, decision.Result(RegimeNew).Regime)
	assert.True(t, decision.Savings().Equal(decimal.NewFromInt(7800)))
}

func TestRegimeResult_JSONHidesBreakdown(t *testing.T) {
	result := RegimeResult{
		Regime:        RegimeOld,
		TaxableIncome: decimal.NewFromInt(550000),
		TaxPayable:    decimal.NewFromInt(23400),
		SlabTax:       decimal.NewFromInt(22500),
		RebateApplied: true,
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Len(t, fields, 3)
	assert.Contains(t, fields, "taxable_income")
	assert.Contains(t, fields, "tax_payable")
	assert.NotContains(t, fields, "SlabTax")
}

func TestTaxProfile_YAMLDecodesDecimals(t *testing.T) {
	doc := []byte(`
gross_salary: 800000
basic_salary: 400000
rent_paid: 180000
hra_received: 120000
deductions_80c: 100000
nps_employer: 12500.50
`)

	var p TaxProfile
	require.NoError(t, yaml.Unmarshal(doc, &p))

	assert.True(t, p.GrossSalary.Equal(decimal.NewFromInt(800000)))
	assert.True(t, p.RentPaid.Equal(decimal.NewFromInt(180000)))
	assert.True(t, p.EmployerNPSContribution.Equal(decimal.RequireFromString("12500.50")))
	assert.True(t, p.Deduction80D.IsZero())
}

func TestDefaultTaxRules(t *testing.T) {
	rules := DefaultTaxRules()

	for _, regime := range []Regime{RegimeOld, RegimeNew} {
		slabs := rules.Regime(regime).Slabs
		require.NotEmpty(t, slabs)
		assert.True(t, slabs[len(slabs)-1].IsOpenEnded(), "%s top slab must be open-ended", regime)
		for _, s := range slabs[:len(slabs)-1] {
			assert.False(t, s.IsOpenEnded())
		}
	}
	assert.True(t, rules.Regime(RegimeOld).RebateThreshold.Equal(decimal.NewFromInt(500000)))
	assert.True(t, rules.Regime(RegimeNew).RebateThreshold.Equal(decimal.NewFromInt(700000)))
	assert.Equal(t, RegimeOld, rules.TieBreak)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "₹150,000", FormatMoney("₹", decimal.NewFromInt(150000)))
	assert.Equal(t, "₹0", FormatMoney("₹", decimal.Zero))
	assert.Equal(t, "-₹7,800", FormatMoney("₹", decimal.NewFromInt(-7800)))
	assert.Equal(t, "₹10,623.5", FormatMoney("₹", decimal.RequireFromString("10623.50")))
	assert.Equal(t, "1,234.57", FormatAmount(decimal.RequireFromString("1234.567")))
	assert.Equal(t, "-0.5", FormatAmount(decimal.RequireFromString("-0.5")))
	assert.Equal(t, "1,000", FormatAmount(decimal.RequireFromString("999.999")))
	assert.Equal(t, "12,345,678,901,234,567,890,123", FormatAmount(decimal.RequireFromString("12345678901234567890123")))
}
