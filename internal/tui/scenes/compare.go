package scenes

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/finplan/internal/compare"
	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

// CompareModel lists the built-in what-if templates against the current
// profile
type CompareModel struct {
	set    *compare.ComparisonSet
	table  table.Model
	width  int
	height int
}

// NewCompareModel creates a new comparison scene model
func NewCompareModel() *CompareModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Scenario", Width: 14},
			{Title: "Old Regime", Width: 12},
			{Title: "New Regime", Width: 12},
			{Title: "Best", Width: 11},
			{Title: "Change", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(tuistyles.ColorForeground).
		Background(tuistyles.ColorPrimary)
	t.SetStyles(styles)

	return &CompareModel{table: t}
}

// SetComparison replaces the rows with a new comparison
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
	if set == nil {
		m.table.SetRows(nil)
		return
	}

	rows := []table.Row{comparisonRow(set.BaseResult, set.Currency)}
	for i := range set.AlternativeResults {
		rows = append(rows, comparisonRow(&set.AlternativeResults[i], set.Currency))
	}
	m.table.SetRows(rows)
}

// Rows returns the rendered table rows
func (m *CompareModel) Rows() []table.Row {
	return m.table.Rows()
}

func comparisonRow(r *compare.ComparisonResult, currency string) table.Row {
	change := "="
	if !r.BestTaxDiffFromBase.IsZero() {
		change = tuistyles.FormatCurrency(currency, r.BestTaxDiffFromBase)
		if r.BestTaxDiffFromBase.GreaterThan(decimal.Zero) {
			change = "+" + change
		}
	}
	return table.Row{
		r.ScenarioName,
		tuistyles.FormatCurrency(currency, r.OldRegimeTax),
		tuistyles.FormatCurrency(currency, r.NewRegimeTax),
		r.BestRegime.DisplayName(),
		change,
	}
}

// SetSize updates the scene dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if height > 12 {
		m.table.SetHeight(height - 12)
	}
}

// Update moves the table cursor
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the comparison scene
func (m *CompareModel) View() string {
	if m.set == nil {
		return tuistyles.SubtitleStyle.Render("No comparison yet. Press c on the calculator.")
	}

	sections := []string{
		tuistyles.TitleStyle.Render("What-If Scenarios"),
		"",
		tuistyles.BorderStyle.Padding(0, 1).Render(m.table.View()),
	}

	if cursor := m.table.Cursor(); cursor > 0 && cursor <= len(m.set.AlternativeResults) {
		sections = append(sections, "", tuistyles.InfoStyle.Render(m.set.AlternativeResults[cursor-1].Description))
	}

	if len(m.set.Recommendations) > 0 {
		sections = append(sections, "")
		for _, rec := range m.set.Recommendations {
			sections = append(sections, "• "+rec)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
