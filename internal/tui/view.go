package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderError()
	}
	if m.loading {
		return m.renderLoading()
	}

	var content string
	switch m.currentScene {
	case SceneCalculator:
		content = m.calculatorModel.View()
	case SceneBreakEven:
		content = m.breakEvenModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 5
	if contentHeight < 0 {
		contentHeight = 0
	}

	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Render("finplan - Tax Regime Calculator"),
		SubtitleStyle.Render(m.currentScene.String()),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	var shortcuts []string
	if m.currentScene == SceneCalculator {
		for _, b := range m.calculatorModel.ShortHelp() {
			shortcuts = append(shortcuts, formatBinding(b))
		}
	} else {
		shortcuts = append(shortcuts, formatShortcut("esc", "back"))
	}
	shortcuts = append(shortcuts, formatShortcut("?", "help"), formatShortcut("q", "quit"))

	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

func formatBinding(b key.Binding) string {
	h := b.Help()
	return formatShortcut(h.Key, h.Desc)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders the spinner and what is being computed
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), message)))
}

// renderError renders an error message
func (m Model) renderError() string {
	return m.renderApp(ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err),
	))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	rows := [][2]string{
		{"↑/↓ j/k", "Select a field"},
		{"←/→ h/l", "Decrease / increase the selected amount"},
		{"a", "Ask the advisor for narrative suggestions"},
		{"b", "Find the deduction that makes the Old Regime win"},
		{"c", "Compare built-in what-if scenarios"},
		{"r", "Reset to the loaded profile"},
		{"esc", "Back to the calculator"},
		{"?", "Show this help"},
		{"q/Ctrl+C", "Quit"},
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("KEYBOARD SHORTCUTS"))
	sb.WriteString("\n\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s  %s\n", HelpKeyStyle.Width(10).Render(r[0]), HelpDescStyle.Render(r[1])))
	}

	return BorderStyle.Render(sb.String())
}
