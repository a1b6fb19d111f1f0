package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/tui/tuimsg"
)

func sampleProfile() domain.TaxProfile {
	return domain.TaxProfile{
		GrossSalary:  decimal.NewFromInt(800000),
		BasicSalary:  decimal.NewFromInt(400000),
		RentPaid:     decimal.NewFromInt(180000),
		HRAReceived:  decimal.NewFromInt(120000),
		Deduction80C: decimal.NewFromInt(100000),
	}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msg and returns the updated model and the message produced by
// the resulting command, if any
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	if cmd == nil {
		return updated, nil
	}
	return updated, cmd()
}

func evaluated(t *testing.T) Model {
	t.Helper()
	m := NewModel(calculation.NewTaxEvaluator(), sampleProfile())
	msg := evaluateCmd(m.evaluator, m.seq, m.initial)()
	m, _ = send(t, m, msg)
	return m
}

func TestModel_InitialEvaluation(t *testing.T) {
	m := evaluated(t)

	view := m.View()
	assert.Contains(t, view, "Old Regime")
	assert.Contains(t, view, "₹23,400")
	assert.Contains(t, view, "₹31,200")
	assert.Contains(t, view, "Best: Old Regime")
}

func TestModel_SliderRecomputes(t *testing.T) {
	m := evaluated(t)

	m, msg := send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	changed, ok := msg.(tuimsg.ProfileChangedMsg)
	require.True(t, ok, "expected ProfileChangedMsg, got %T", msg)
	assert.True(t, changed.Profile.GrossSalary.Equal(decimal.NewFromInt(850000)))

	m, msg = send(t, m, changed)
	ev, ok := msg.(EvaluatedMsg)
	require.True(t, ok)
	assert.Equal(t, 1, ev.Seq)
	assert.True(t, ev.Decision.Profile.GrossSalary.Equal(decimal.NewFromInt(850000)))

	// a stale evaluation is dropped
	stale := evaluateCmd(m.evaluator, 0, sampleProfile())().(EvaluatedMsg)
	m, _ = send(t, m, ev)
	m, _ = send(t, m, stale)
	assert.NotContains(t, m.View(), "₹23,400")
}

func TestModel_FocusMovesBetweenSliders(t *testing.T) {
	m := evaluated(t)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.calculatorModel.Focused())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.calculatorModel.Focused())
}

func TestModel_Reset(t *testing.T) {
	m := evaluated(t)

	m, msg := send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(t, m, msg)

	m, msg = send(t, m, runeKey("r"))
	require.IsType(t, tuimsg.ResetMsg{}, msg)
	m, msg = send(t, m, msg)
	assert.True(t, m.calculatorModel.Profile().GrossSalary.Equal(decimal.NewFromInt(800000)))
	require.IsType(t, EvaluatedMsg{}, msg)
}

func TestModel_BreakEven(t *testing.T) {
	m := evaluated(t)

	m, msg := send(t, m, runeKey("b"))
	require.IsType(t, tuimsg.BreakEvenRequestedMsg{}, msg)

	m, msg = send(t, m, msg)
	assert.True(t, m.loading)
	done, ok := msg.(BreakEvenCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.True(t, done.Result.AlreadyOldBest)

	m, _ = send(t, m, done)
	assert.False(t, m.loading)
	assert.Equal(t, SceneBreakEven, m.currentScene)
	assert.Contains(t, m.View(), "Old Regime already wins")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneCalculator, m.currentScene)
}

func TestModel_Compare(t *testing.T) {
	m := evaluated(t)

	m, msg := send(t, m, runeKey("c"))
	m, msg = send(t, m, msg)
	done, ok := msg.(CompareCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)

	m, _ = send(t, m, done)
	assert.Equal(t, SceneCompare, m.currentScene)
	assert.Len(t, m.compareModel.Rows(), len(compareTemplates)+1)
	assert.Contains(t, m.View(), "max_80c")
}

func TestModel_AdviceWithoutAdvisor(t *testing.T) {
	m := evaluated(t)

	m, msg := send(t, m, runeKey("a"))
	m, msg = send(t, m, msg)
	done, ok := msg.(AdviceCompleteMsg)
	require.True(t, ok)
	assert.False(t, done.Advisory.Available)

	m, _ = send(t, m, done)
	assert.Contains(t, m.View(), "Advisory suggestions unavailable")
}

func TestModel_AdviceWithAdvisor(t *testing.T) {
	evaluator := calculation.NewTaxEvaluator()
	evaluator.SetAdvisor(calculation.AdvisorFunc(func(ctx context.Context, p domain.TaxProfile) (string, error) {
		return "- Top up your PPF", nil
	}), 0)
	m := NewModel(evaluator, sampleProfile())
	m, _ = send(t, m, evaluateCmd(evaluator, 0, sampleProfile())())

	m, msg := send(t, m, runeKey("a"))
	m, msg = send(t, m, msg)
	m, _ = send(t, m, msg)

	assert.Contains(t, m.View(), "Top up your PPF")
}

func TestModel_ErrorAndQuit(t *testing.T) {
	m := evaluated(t)

	m, _ = send(t, m, ErrorMsg{Err: errors.New("boom")})
	assert.Contains(t, m.View(), "Error: boom")

	m, _ = send(t, m, runeKey("x"))
	assert.Nil(t, m.err)

	_, msg := send(t, m, runeKey("q"))
	assert.IsType(t, tea.QuitMsg{}, msg)
}

func TestModel_Help(t *testing.T) {
	m := evaluated(t)

	m, _ = send(t, m, runeKey("?"))
	assert.Equal(t, SceneHelp, m.currentScene)
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")
}
