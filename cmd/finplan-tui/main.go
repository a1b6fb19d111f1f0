package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/finplan/internal/advisor"
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/tui"
)

func main() {
	profile := domain.SampleTaxProfile()
	if len(os.Args) > 1 {
		loaded, err := config.NewInputParser().LoadProfile(os.Args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		profile = *loaded
	}

	settings, err := config.LoadSettings("")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	evaluator := calculation.NewTaxEvaluator()
	if settings.RulesPath != "" {
		rules, err := config.NewInputParser().LoadRules(settings.RulesPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		evaluator = calculation.NewTaxEvaluatorWithRules(*rules)
	}
	if settings.Advisor.APIKey != "" {
		evaluator.SetAdvisor(newAdvisor(settings, evaluator.Rules.Currency), settings.Advisor.Timeout)
	}

	p := tea.NewProgram(
		tui.NewModel(evaluator, profile),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func newAdvisor(s *config.Settings, currency string) *advisor.Client {
	return advisor.NewClient(s.Advisor.APIKey,
		advisor.WithBaseURL(s.Advisor.BaseURL),
		advisor.WithModel(s.Advisor.Model),
		advisor.WithCurrency(currency),
	)
}
