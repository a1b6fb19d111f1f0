package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/tui/components"
	"github.com/rgehrsitz/finplan/internal/tui/tuimsg"
	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

// profileField binds one slider to one TaxProfile amount
type profileField struct {
	label string
	desc  string
	max   int64
	step  int64
	get   func(p *domain.TaxProfile) decimal.Decimal
	set   func(p *domain.TaxProfile, v decimal.Decimal)
}

var profileFields = []profileField{
	{"Gross Salary", "Annual gross salary", 10_000_000, 50_000,
		func(p *domain.TaxProfile) decimal.Decimal { return p.GrossSalary },
		func(p *domain.TaxProfile, v decimal.Decimal) { p.GrossSalary = v }},
	{"Basic Salary", "Basic component, drives the HRA exemption", 5_000_000, 25_000,
		func(p *domain.TaxProfile) decimal.Decimal { return p.BasicSalary },
		func(p *domain.TaxProfile, v decimal.Decimal) { p.BasicSalary = v }},
	{"Rent Paid", "Annual rent paid", 2_000_000, 10_000,
		func(p *domain.TaxProfile) decimal.Decimal { return p.RentPaid },
		func(p *domain.TaxProfile, v decimal.Decimal) { p.RentPaid = v }},
	{"HRA Received", "House rent allowance from the employer", 2_000_000, 10_000,
		func(p *domain.TaxProfile) decimal.Decimal { return p.HRAReceived },
		func(p *domain.TaxProfile, v decimal.Decimal) { p.HRAReceived = v }},
	{"Section 80C", "PPF, ELSS, EPF, life insurance", 300_000, 10_000,
		func(p *domain.TaxProfile) decimal.Decimal { return p.Deduction80C },
		func(p *domain.TaxProfile, v decimal.Decimal) { p.Deduction80C = v }},
	{"Section 80D", "Health insurance premiums", 200_000, 5_000,
		func(p *domain.TaxProfile) decimal.Decimal { return p.Deduction80D },
		func(p *domain.TaxProfile, v decimal.Decimal) { p.Deduction80D = v }},
	{"Section 80E", "Education loan interest", 500_000, 10_000,
		func(p *domain.TaxProfile) decimal.Decimal { return p.Deduction80E },
		func(p *domain.TaxProfile, v decimal.Decimal) { p.Deduction80E = v }},
	{"Section 80G", "Eligible donations", 500_000, 5_000,
		func(p *domain.TaxProfile) decimal.Decimal { return p.Deduction80G },
		func(p *domain.TaxProfile, v decimal.Decimal) { p.Deduction80G = v }},
	{"Employer NPS", "Employer contribution under 80CCD(2)", 500_000, 10_000,
		func(p *domain.TaxProfile) decimal.Decimal { return p.EmployerNPSContribution },
		func(p *domain.TaxProfile, v decimal.Decimal) { p.EmployerNPSContribution = v }},
}

// calculatorKeys are the bindings the calculator scene handles itself
type calculatorKeys struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Advice    key.Binding
	BreakEven key.Binding
	Compare   key.Binding
	Reset     key.Binding
}

var defaultCalculatorKeys = calculatorKeys{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "decrease")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "increase")),
	Advice:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "advice")),
	BreakEven: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "break-even")),
	Compare:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "what-ifs")),
	Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
}

// CalculatorModel is the slider scene that edits the profile and shows
// both regimes side by side
type CalculatorModel struct {
	profile       domain.TaxProfile
	decision      *domain.TaxDecision
	advisory      *domain.Advisory
	adviceLoading bool
	currency      string
	sliders       []*components.ParameterSlider
	focusedSlider int
	keys          calculatorKeys
	width         int
	height        int
}

// NewCalculatorModel creates the scene for profile
func NewCalculatorModel(profile domain.TaxProfile, currency string) *CalculatorModel {
	m := &CalculatorModel{
		currency: currency,
		keys:     defaultCalculatorKeys,
	}
	m.SetProfile(profile)
	return m
}

// SetProfile replaces the profile and rebuilds the sliders
func (m *CalculatorModel) SetProfile(profile domain.TaxProfile) {
	m.profile = profile
	m.sliders = make([]*components.ParameterSlider, len(profileFields))
	for i, f := range profileFields {
		upper := decimal.NewFromInt(f.max)
		// keep loaded values reachable even when they exceed the default range
		if v := f.get(&profile); v.GreaterThan(upper) {
			upper = v
		}
		m.sliders[i] = components.NewParameterSlider(f.label, f.get(&profile), decimal.Zero, upper, decimal.NewFromInt(f.step)).
			WithCurrency(m.currency).
			WithWidth(32).
			WithDescription(f.desc)
	}
	if m.focusedSlider >= len(m.sliders) {
		m.focusedSlider = 0
	}
	m.sliders[m.focusedSlider].SetFocused(true)
}

// Profile returns the profile as currently edited
func (m *CalculatorModel) Profile() domain.TaxProfile {
	return m.profile
}

// Focused returns the index of the focused slider
func (m *CalculatorModel) Focused() int {
	return m.focusedSlider
}

// SetDecision stores the latest evaluation
func (m *CalculatorModel) SetDecision(d *domain.TaxDecision) {
	m.decision = d
}

// SetAdviceLoading marks an advice request in flight
func (m *CalculatorModel) SetAdviceLoading(loading bool) {
	m.adviceLoading = loading
	if loading {
		m.advisory = nil
	}
}

// SetAdvisory stores the advisor's reply
func (m *CalculatorModel) SetAdvisory(a *domain.Advisory) {
	m.adviceLoading = false
	m.advisory = a
}

// SetSize updates the scene dimensions
func (m *CalculatorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the calculator scene
func (m *CalculatorModel) Update(msg tea.Msg) (*CalculatorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(keyMsg, m.keys.Left):
		m.sliders[m.focusedSlider].Decrement()
		return m, m.applyChanges()
	case key.Matches(keyMsg, m.keys.Right):
		m.sliders[m.focusedSlider].Increment()
		return m, m.applyChanges()
	case key.Matches(keyMsg, m.keys.Advice):
		profile := m.profile
		return m, func() tea.Msg { return tuimsg.AdviceRequestedMsg{Profile: profile} }
	case key.Matches(keyMsg, m.keys.BreakEven):
		profile := m.profile
		return m, func() tea.Msg { return tuimsg.BreakEvenRequestedMsg{Profile: profile} }
	case key.Matches(keyMsg, m.keys.Compare):
		profile := m.profile
		return m, func() tea.Msg { return tuimsg.CompareRequestedMsg{Profile: profile} }
	case key.Matches(keyMsg, m.keys.Reset):
		return m, func() tea.Msg { return tuimsg.ResetMsg{} }
	}

	return m, nil
}

func (m *CalculatorModel) moveFocus(delta int) {
	next := m.focusedSlider + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focusedSlider].SetFocused(false)
	m.focusedSlider = next
	m.sliders[m.focusedSlider].SetFocused(true)
}

// applyChanges copies the focused slider into the profile and asks for a
// recomputation
func (m *CalculatorModel) applyChanges() tea.Cmd {
	profileFields[m.focusedSlider].set(&m.profile, m.sliders[m.focusedSlider].Value)
	profile := m.profile
	return func() tea.Msg { return tuimsg.ProfileChangedMsg{Profile: profile} }
}

// View renders the calculator scene
func (m *CalculatorModel) View() string {
	var sliders strings.Builder
	for i, s := range m.sliders {
		if i > 0 {
			sliders.WriteString("\n")
		}
		sliders.WriteString(s.Render())
		sliders.WriteString("\n")
	}

	left := lipgloss.NewStyle().Width(44).Render(sliders.String())
	right := m.renderResults()

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m *CalculatorModel) renderResults() string {
	if m.decision == nil {
		return tuistyles.InfoStyle.Render("Calculating...")
	}

	sections := []string{
		components.RegimeCards(m.decision, m.currency, 24),
		"",
		tuistyles.BadgeStyle.Render("Best: " + m.decision.Best.DisplayName()),
		"",
		tuistyles.TitleStyle.Render("Suggestions"),
	}
	for _, s := range m.decision.Suggestions {
		sections = append(sections, "• "+s)
	}

	sections = append(sections, "", tuistyles.TitleStyle.Render("Advisor"))
	switch {
	case m.adviceLoading:
		sections = append(sections, tuistyles.InfoStyle.Render("Asking the advisor..."))
	case m.advisory == nil:
		sections = append(sections, tuistyles.SubtitleStyle.Render("Press a for narrative advice"))
	case !m.advisory.Available:
		sections = append(sections, tuistyles.ErrorStyle.Render(m.advisory.Message))
	default:
		for _, tip := range m.advisory.Tips {
			sections = append(sections, "• "+tip)
		}
	}

	return lipgloss.NewStyle().Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// ShortHelp lists the scene's bindings for the status bar
func (m *CalculatorModel) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Advice, m.keys.BreakEven, m.keys.Compare, m.keys.Reset}
}
