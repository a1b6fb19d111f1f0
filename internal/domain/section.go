package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Section names an old-regime deduction bucket on a TaxProfile.
type Section string

const (
	Section80C Section = "80c"
	Section80D Section = "80d"
	Section80E Section = "80e"
	Section80G Section = "80g"
	SectionNPS Section = "nps"
)

// AllSections lists the deduction buckets in reporting order.
var AllSections = []Section{Section80C, Section80D, Section80E, Section80G, SectionNPS}

// ParseSection accepts "80c", "80C", "section_80c" or "nps".
func ParseSection(s string) (Section, error) {
	normalized := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "section_")
	for _, sec := range AllSections {
		if normalized == string(sec) {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown deduction section %q (expected one of 80c, 80d, 80e, 80g, nps)", s)
}

// Label returns the section as written in tax documents.
func (s Section) Label() string {
	if s == SectionNPS {
		return "Employer NPS (80CCD(2))"
	}
	return "Section " + strings.ToUpper(string(s))
}

// Deduction returns the amount claimed under the section.
func (p TaxProfile) Deduction(s Section) decimal.Decimal {
	switch s {
	case Section80C:
		return p.Deduction80C
	case Section80D:
		return p.Deduction80D
	case Section80E:
		return p.Deduction80E
	case Section80G:
		return p.Deduction80G
	case SectionNPS:
		return p.EmployerNPSContribution
	default:
		return decimal.Zero
	}
}

// WithDeduction returns a copy of the profile with the section set to v.
func (p TaxProfile) WithDeduction(s Section, v decimal.Decimal) TaxProfile {
	switch s {
	case Section80C:
		p.Deduction80C = v
	case Section80D:
		p.Deduction80D = v
	case Section80E:
		p.Deduction80E = v
	case Section80G:
		p.Deduction80G = v
	case SectionNPS:
		p.EmployerNPSContribution = v
	}
	return p
}

// Limit returns the configured ceiling for a section.
func (l SuggestionLimits) Limit(s Section) decimal.Decimal {
	switch s {
	case Section80C:
		return l.Section80C
	case Section80D:
		return l.Section80D
	case Section80E:
		return l.Section80E
	case Section80G:
		return l.Section80G
	case SectionNPS:
		return l.EmployerNPS
	default:
		return decimal.Zero
	}
}
