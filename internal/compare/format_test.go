package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

func sampleComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "base",
		ProfilePath:      "/path/to/profile.yaml",
		Currency:         "₹",
		BaseResult: &ComparisonResult{
			ScenarioName: "base",
			Description:  "Profile as entered",
			OldRegimeTax: decimal.NewFromInt(23400),
			NewRegimeTax: decimal.NewFromInt(31200),
			BestRegime:   domain.RegimeOld,
			BestTax:      decimal.NewFromInt(23400),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:        "max_80c",
				Description:         "Invest the full 150,000 under Section 80C",
				OldRegimeTax:        decimal.Zero,
				NewRegimeTax:        decimal.NewFromInt(31200),
				BestRegime:          domain.RegimeOld,
				BestTax:             decimal.Zero,
				OldTaxDiffFromBase:  decimal.NewFromInt(-23400),
				BestTaxDiffFromBase: decimal.NewFromInt(-23400),
				BestTaxPctFromBase:  decimal.NewFromInt(-100),
			},
			{
				ScenarioName:        "raise_10pct",
				Description:         "Salary (gross, basic and HRA) rises by 10%",
				OldRegimeTax:        decimal.NewFromInt(41704),
				NewRegimeTax:        decimal.NewFromInt(39520),
				BestRegime:          domain.RegimeNew,
				BestTax:             decimal.NewFromInt(39520),
				OldTaxDiffFromBase:  decimal.NewFromInt(18304),
				NewTaxDiffFromBase:  decimal.NewFromInt(8320),
				BestTaxDiffFromBase: decimal.NewFromInt(16120),
				BestTaxPctFromBase:  decimal.RequireFromString("68.89"),
				RegimeChanged:       true,
			},
		},
		Recommendations: []string{
			"Lowest Tax: max_80c saves ₹23,400 under the Old Regime",
			"Regime Switch: raise_10pct makes the New Regime the better choice",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(sampleComparisonSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}

	for _, want := range []string{
		"TAX SCENARIO COMPARISON",
		"Base Scenario: base",
		"Profile: /path/to/profile.yaml",
		"base (base)",
		"₹23,400",
		"₹31,200",
		"COMPARISON TO BASE",
		"-₹23,400 (saves)",
		"+₹16,120",
		"switches to New Regime",
		"RECOMMENDATIONS",
		"• Lowest Tax: max_80c",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.FormatCompact(sampleComparisonSet())

	expected := "Base: base | max_80c: -₹23,400 | raise_10pct: +₹16,120"
	if result != expected {
		t.Errorf("Expected %q, got %q", expected, result)
	}
}

func TestTableFormatter_Truncate(t *testing.T) {
	formatter := &TableFormatter{}

	if got := formatter.truncate("short", 10); got != "short" {
		t.Errorf("Expected short to be unchanged, got %s", got)
	}
	if got := formatter.truncate("add_deduction:section=80c,amount=50000", 20); len(got) != 20 || !strings.HasSuffix(got, "...") {
		t.Errorf("Expected truncated string of length 20, got %q", got)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	result, err := formatter.Format(sampleComparisonSet())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(result)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("Expected header + 3 rows, got %d", len(records))
	}
	if records[0][0] != "Scenario" || len(records[0]) != 12 {
		t.Errorf("Unexpected header: %v", records[0])
	}
	if records[1][1] != "base" || records[2][1] != "alternative" {
		t.Errorf("Unexpected row types: %s, %s", records[1][1], records[2][1])
	}
	if records[3][5] != "new" || records[3][11] != "true" {
		t.Errorf("Unexpected raise_10pct row: %v", records[3])
	}
	if records[3][10] != "68.89" {
		t.Errorf("Expected pct 68.89, got %s", records[3][10])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		formatter := &JSONFormatter{Pretty: pretty}

		result, err := formatter.Format(sampleComparisonSet())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}

		if decoded["baseScenarioName"] != "base" {
			t.Errorf("Expected baseScenarioName base, got %v", decoded["baseScenarioName"])
		}
		if !strings.Contains(result, "₹23,400") {
			t.Error("Expected currency symbol to be written unescaped")
		}
		if pretty != strings.Contains(result, "\n  ") {
			t.Errorf("Pretty=%t but indentation presence mismatched", pretty)
		}
	}
}
