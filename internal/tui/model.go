// Package tui is the interactive terminal front end: sliders edit a tax
// profile and both regimes are recomputed on every change.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finplan/internal/breakeven"
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/compare"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/tui/scenes"
)

// compareTemplates are the what-ifs the compare scene runs
var compareTemplates = []string{"max_80c", "max_80d", "max_nps", "max_all", "raise_10pct", "no_rent"}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	evaluator *calculation.TaxEvaluator
	initial   domain.TaxProfile
	seq       int

	calculatorModel *scenes.CalculatorModel
	breakEvenModel  *scenes.BreakEvenModel
	compareModel    *scenes.CompareModel

	spinner        spinner.Model
	loading        bool
	loadingMessage string

	err error
}

// NewModel creates a new application model editing profile
func NewModel(evaluator *calculation.TaxEvaluator, profile domain.TaxProfile) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = InfoStyle

	return Model{
		currentScene:    SceneCalculator,
		evaluator:       evaluator,
		initial:         profile,
		calculatorModel: scenes.NewCalculatorModel(profile, evaluator.Rules.Currency),
		breakEvenModel:  scenes.NewBreakEvenModel(),
		compareModel:    scenes.NewCompareModel(),
		spinner:         sp,
		width:           100,
		height:          30,
	}
}

// Init evaluates the starting profile (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(evaluateCmd(m.evaluator, m.seq, m.initial), m.spinner.Tick)
}

// evaluateCmd recomputes both regimes. The numeric core never blocks, so
// this does not consult the advisor.
func evaluateCmd(evaluator *calculation.TaxEvaluator, seq int, profile domain.TaxProfile) tea.Cmd {
	return func() tea.Msg {
		d := evaluator.Compute(profile)
		return EvaluatedMsg{Seq: seq, Decision: &d}
	}
}

// adviceCmd asks the advisor off the update loop
func adviceCmd(evaluator *calculation.TaxEvaluator, profile domain.TaxProfile) tea.Cmd {
	return func() tea.Msg {
		return AdviceCompleteMsg{
			Advisory: calculation.RequestAdvisory(context.Background(), evaluator.Advisor, profile, evaluator.AdviceTimeout),
		}
	}
}

// breakEvenCmd runs the break-even search
func breakEvenCmd(evaluator *calculation.TaxEvaluator, profile domain.TaxProfile) tea.Cmd {
	return func() tea.Msg {
		result, err := breakeven.NewDefaultSolver(evaluator).Solve(context.Background(), profile)
		return BreakEvenCompleteMsg{Result: result, Err: err}
	}
}

// compareCmd runs the built-in templates
func compareCmd(evaluator *calculation.TaxEvaluator, profile domain.TaxProfile) tea.Cmd {
	return func() tea.Msg {
		set, err := compare.NewCompareEngine(evaluator).Compare(context.Background(), profile, compare.CompareOptions{
			Templates: compareTemplates,
		})
		return CompareCompleteMsg{Set: set, Err: err}
	}
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneCalculator:
		return "Calculator"
	case SceneBreakEven:
		return "Break-Even"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
