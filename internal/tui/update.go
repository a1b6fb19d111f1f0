package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finplan/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.calculatorModel.SetSize(msg.Width, msg.Height)
		m.breakEvenModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.ProfileChangedMsg:
		m.seq++
		return m, evaluateCmd(m.evaluator, m.seq, msg.Profile)

	case tuimsg.ResetMsg:
		m.calculatorModel.SetProfile(m.initial)
		m.seq++
		return m, evaluateCmd(m.evaluator, m.seq, m.initial)

	case EvaluatedMsg:
		if msg.Seq == m.seq {
			m.calculatorModel.SetDecision(msg.Decision)
		}
		return m, nil

	case tuimsg.AdviceRequestedMsg:
		m.calculatorModel.SetAdviceLoading(true)
		return m, adviceCmd(m.evaluator, msg.Profile)

	case AdviceCompleteMsg:
		m.calculatorModel.SetAdvisory(msg.Advisory)
		return m, nil

	case tuimsg.BreakEvenRequestedMsg:
		m.loading = true
		m.loadingMessage = "Searching for the break-even deduction..."
		return m, breakEvenCmd(m.evaluator, msg.Profile)

	case BreakEvenCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.breakEvenModel.SetResult(msg.Result)
		return m.navigate(SceneBreakEven)

	case tuimsg.CompareRequestedMsg:
		m.loading = true
		m.loadingMessage = "Comparing what-if scenarios..."
		return m, compareCmd(m.evaluator, msg.Profile)

	case CompareCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetComparison(msg.Set)
		return m.navigate(SceneCompare)
	}

	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	m.previousScene = m.currentScene
	m.currentScene = scene
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// an error screen is dismissed by any key
	if m.err != nil {
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		if m.currentScene != SceneHelp {
			return m.navigate(SceneHelp)
		}

	case "esc":
		if m.currentScene != SceneCalculator {
			return m.navigate(SceneCalculator)
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneCalculator:
		m.calculatorModel, cmd = m.calculatorModel.Update(msg)
	case SceneBreakEven:
		m.breakEvenModel, cmd = m.breakEvenModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
