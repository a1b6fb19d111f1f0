package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args in an empty working directory
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdirTemp(t)
	t.Setenv("OPENAI_API_KEY", "")

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	return writeFile(t, "profile.yaml", body)
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "finplan", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	expected := []string{"tax", "validate", "compare", "breakeven", "templates", "sip", "loan", "budget", "goal", "portfolio", "expenses", "serve", "version"}
	for _, name := range expected {
		found, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "breakeven")
}

func TestTaxCommand_DemoProfile(t *testing.T) {
	out, err := run(t, "tax")
	require.NoError(t, err)

	assert.Contains(t, out, "### Tax Optimization Summary")
	assert.Contains(t, out, "Tax Payable: ₹23,400")
	assert.Contains(t, out, "Tax Payable: ₹31,200")
	assert.Contains(t, out, "**Best for you:** Old Regime (saves ₹7,800)")
}

func TestTaxCommand_JSONFromFile(t *testing.T) {
	path := writeProfile(t, `
gross_salary: 1000000
basic_salary: 500000
`)

	out, err := run(t, "tax", path, "--format", "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "New Regime", decoded["best"])
	assert.Equal(t, 54600.0, decoded["new_regime"].(map[string]any)["tax_payable"])
}

func TestTaxCommand_AdviceWithoutKey(t *testing.T) {
	out, err := run(t, "tax", "--advice")
	require.NoError(t, err)
	assert.Contains(t, out, "Advisory suggestions unavailable")
	assert.Contains(t, out, "Tax Payable: ₹23,400")
}

func TestTaxCommand_Errors(t *testing.T) {
	_, err := run(t, "tax", "--format", "pdf")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = run(t, "tax", "does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	good := writeProfile(t, "gross_salary: 800000\nbasic_salary: 400000\n")
	out, err := run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	bad := writeProfile(t, "gross_salary: 100000\nbasic_salary: 200000\n")
	_, err = run(t, "validate", bad)
	assert.ErrorContains(t, err, "profile validation failed")
}

func TestCompareCommand(t *testing.T) {
	out, err := run(t, "compare", "--with", "max_80c,no_rent")
	require.NoError(t, err)
	assert.Contains(t, out, "max_80c")
	assert.Contains(t, out, "no_rent")

	out, err = run(t, "compare", "--transform", "add_deduction:section=80D,amount=25000", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "add_deduction")

	_, err = run(t, "compare")
	assert.ErrorContains(t, err, "--with or --transform is required")

	_, err = run(t, "compare", "--with", "retire_early")
	assert.Error(t, err)
}

func TestBreakEvenCommand(t *testing.T) {
	path := writeProfile(t, "gross_salary: 1000000\n")

	out, err := run(t, "breakeven", path, "--format", "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "249998", decoded["required_deduction"])

	out, err = run(t, "breakeven", path)
	require.NoError(t, err)
	assert.Contains(t, out, "REGIME BREAK-EVEN ANALYSIS")
}

func TestPlannerCommands(t *testing.T) {
	out, err := run(t, "loan", "--json")
	require.NoError(t, err)
	var loan map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &loan))
	assert.Equal(t, "10623.52", loan["emi"])

	out, err = run(t, "budget")
	require.NoError(t, err)
	assert.Contains(t, out, "Great! You're saving well.")

	out, err = run(t, "sip", "--years", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "₹240,000")

	out, err = run(t, "goal")
	require.NoError(t, err)
	assert.Contains(t, out, "Required SIP")

	_, err = run(t, "sip", "--amount", "abc")
	assert.ErrorContains(t, err, "invalid --amount")

	_, err = run(t, "loan", "--years", "0")
	assert.Error(t, err)
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestExpensesCommand(t *testing.T) {
	path := writeFile(t, "statement.csv", "Date,Description,Amount\n"+
		"2024-04-01,House rent,20000\n"+
		"2024-04-02,Uber,250\n"+
		"2024-04-03,Reversal,n/a\n")

	out, err := run(t, "expenses", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Rent")
	assert.Contains(t, out, "₹20,000")
	assert.Contains(t, out, "Skipped 1 rows")

	out, err = run(t, "expenses", path, "--json")
	require.NoError(t, err)
	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Len(t, summary["categories"], 6)
	assert.Equal(t, "20250", summary["total"].(map[string]any)["amount"])

	_, err = run(t, "expenses", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "failed to open statement")
}

func TestPortfolioCommand(t *testing.T) {
	path := writeFile(t, "portfolio.yaml", `holdings:
  - symbol: AAPL
    quantity: 10
    buy_price: 150
  - symbol: TSLA
    quantity: 5
    buy_price: 600
prices:
  AAPL: 180
`)

	out, err := run(t, "portfolio", path)
	require.NoError(t, err)
	assert.Contains(t, out, "₹1,800")
	assert.Contains(t, out, "warning: TSLA valued at zero")

	out, err = run(t, "portfolio", path, "--json")
	require.NoError(t, err)
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "1800", result["current_value"])
	assert.Equal(t, "4500", result["total_invested"])

	empty := writeFile(t, "empty.yaml", "holdings: []\n")
	_, err = run(t, "portfolio", empty)
	assert.ErrorContains(t, err, "at least one holding")
}

func TestTemplatesAndVersion(t *testing.T) {
	out, err := run(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "max_80c")
	assert.Contains(t, out, "add_deduction")

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "finplan dev")
}
