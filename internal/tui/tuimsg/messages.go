// Package tuimsg holds the messages scenes send to the root model. It sits
// below both so neither imports the other.
package tuimsg

import (
	"github.com/rgehrsitz/finplan/internal/domain"
)

// ProfileChangedMsg signals a slider moved and the profile must be re-evaluated
type ProfileChangedMsg struct {
	Profile domain.TaxProfile
}

// AdviceRequestedMsg asks the root model to fetch narrative advice
type AdviceRequestedMsg struct {
	Profile domain.TaxProfile
}

// BreakEvenRequestedMsg asks the root model to run the break-even search
type BreakEvenRequestedMsg struct {
	Profile domain.TaxProfile
}

// CompareRequestedMsg asks the root model to run the built-in templates
type CompareRequestedMsg struct {
	Profile domain.TaxProfile
}

// ResetMsg restores the profile that was loaded at startup
type ResetMsg struct{}
