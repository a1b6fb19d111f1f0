package scenes

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finplan/internal/breakeven"
	"github.com/rgehrsitz/finplan/internal/tui/components"
	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

// BreakEvenModel shows how much extra deduction tips the choice to the old
// regime
type BreakEvenModel struct {
	result *breakeven.Result
	width  int
	height int
}

// NewBreakEvenModel creates a new break-even scene model
func NewBreakEvenModel() *BreakEvenModel {
	return &BreakEvenModel{}
}

// SetResult updates the result to display
func (m *BreakEvenModel) SetResult(result *breakeven.Result) {
	m.result = result
}

// SetSize updates the scene dimensions
func (m *BreakEvenModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the break-even scene. It is read-only.
func (m *BreakEvenModel) Update(msg tea.Msg) (*BreakEvenModel, tea.Cmd) {
	return m, nil
}

// View renders the break-even scene
func (m *BreakEvenModel) View() string {
	if m.result == nil {
		return tuistyles.SubtitleStyle.Render("No break-even analysis yet. Press b on the calculator.")
	}
	r := m.result

	cards := []*components.MetricCard{
		components.NewMetricCard("Old Regime Tax", tuistyles.FormatCurrency(r.Currency, r.BaseOldTax)).WithWidth(24),
		components.NewMetricCard("New Regime Tax", tuistyles.FormatCurrency(r.Currency, r.BaseNewTax)).WithWidth(24),
	}

	var verdict string
	switch {
	case r.AlreadyOldBest:
		verdict = "The Old Regime already wins. No extra deduction needed."
	case !r.Reachable:
		verdict = "No extra deduction makes the Old Regime cheaper."
	default:
		cards = append(cards, components.NewMetricCard("Extra Deduction", tuistyles.FormatCurrency(r.Currency, r.RequiredDeduction)).
			WithHighlight(r.WithinHeadroom).
			WithDescription("Headroom "+tuistyles.FormatCurrency(r.Currency, r.TotalHeadroom)).
			WithWidth(24))
		if r.WithinHeadroom {
			verdict = "Reachable within your remaining deduction limits:"
		} else {
			verdict = "More than your remaining deduction limits allow. Best effort:"
		}
	}

	sections := []string{
		tuistyles.TitleStyle.Render("Regime Break-Even"),
		"",
		components.MetricGrid(cards, 3),
		"",
		verdict,
	}
	if r.Reachable && !r.AlreadyOldBest {
		for _, a := range r.Plan {
			sections = append(sections, fmt.Sprintf("• %s: %s", a.Section.Label(), tuistyles.FormatCurrency(r.Currency, a.Amount)))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
