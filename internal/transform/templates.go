package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ProfileTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with the common what-ifs,
// using limits as the ceiling for the "max" templates.
func CreateBuiltInTemplates(limits domain.SuggestionLimits) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "max_80c",
		Description: fmt.Sprintf("Invest the full %s under Section 80C", domain.FormatAmount(limits.Section80C)),
		Transforms:  []ProfileTransform{&MaxDeduction{Section: domain.Section80C, Limits: limits}},
	})

	registry.Register(Template{
		Name:        "max_80d",
		Description: fmt.Sprintf("Claim the full %s health insurance deduction (80D)", domain.FormatAmount(limits.Section80D)),
		Transforms:  []ProfileTransform{&MaxDeduction{Section: domain.Section80D, Limits: limits}},
	})

	registry.Register(Template{
		Name:        "max_80e",
		Description: fmt.Sprintf("Claim %s of education loan interest (80E)", domain.FormatAmount(limits.Section80E)),
		Transforms:  []ProfileTransform{&MaxDeduction{Section: domain.Section80E, Limits: limits}},
	})

	registry.Register(Template{
		Name:        "max_nps",
		Description: fmt.Sprintf("Route %s through employer NPS (80CCD(2))", domain.FormatAmount(limits.EmployerNPS)),
		Transforms:  []ProfileTransform{&MaxDeduction{Section: domain.SectionNPS, Limits: limits}},
	})

	registry.Register(Template{
		Name:        "max_all",
		Description: "Max out 80C, 80D, 80E and employer NPS together",
		Transforms: []ProfileTransform{
			&MaxDeduction{Section: domain.Section80C, Limits: limits},
			&MaxDeduction{Section: domain.Section80D, Limits: limits},
			&MaxDeduction{Section: domain.Section80E, Limits: limits},
			&MaxDeduction{Section: domain.SectionNPS, Limits: limits},
		},
	})

	registry.Register(Template{
		Name:        "raise_10pct",
		Description: "Salary (gross, basic and HRA) rises by 10%",
		Transforms:  []ProfileTransform{&AdjustSalary{Percent: decimal.NewFromInt(10)}},
	})

	registry.Register(Template{
		Name:        "no_rent",
		Description: "Stop paying rent, losing the HRA exemption",
		Transforms:  []ProfileTransform{&SetRent{Amount: decimal.Zero}},
	})

	return registry
}

// ApplyTemplate applies a template to a base profile
func ApplyTemplate(base domain.TaxProfile, template Template) (domain.TaxProfile, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{
		"Deductions": {},
		"Income":     {},
		"Housing":    {},
	}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "max_"):
			categories["Deductions"] = append(categories["Deductions"], template)
		case strings.HasPrefix(name, "raise_"):
			categories["Income"] = append(categories["Income"], template)
		default:
			categories["Housing"] = append(categories["Housing"], template)
		}
	}

	for _, category := range []string{"Deductions", "Income", "Housing"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-14s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  finplan compare profile.yaml --with max_80c,max_nps\n")
	sb.WriteString("  finplan compare profile.yaml --transform add_deduction:section=80d,amount=10000\n")

	return sb.String()
}
