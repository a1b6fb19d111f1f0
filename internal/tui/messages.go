package tui

import (
	"github.com/rgehrsitz/finplan/internal/breakeven"
	"github.com/rgehrsitz/finplan/internal/compare"
	"github.com/rgehrsitz/finplan/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneCalculator Scene = iota
	SceneBreakEven
	SceneCompare
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// EvaluatedMsg carries a fresh evaluation. Seq discards results that
// arrive after a newer edit.
type EvaluatedMsg struct {
	Seq      int
	Decision *domain.TaxDecision
}

// AdviceCompleteMsg carries the advisor's reply
type AdviceCompleteMsg struct {
	Advisory *domain.Advisory
}

// BreakEvenCompleteMsg signals the break-even search has finished
type BreakEvenCompleteMsg struct {
	Result *breakeven.Result
	Err    error
}

// CompareCompleteMsg signals the template comparison has finished
type CompareCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}
