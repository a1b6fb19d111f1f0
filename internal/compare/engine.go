package compare

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/transform"
	"golang.org/x/sync/errgroup"
)

// CompareEngine orchestrates what-if comparison
type CompareEngine struct {
	Evaluator         *calculation.TaxEvaluator
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(evaluator *calculation.TaxEvaluator) *CompareEngine {
	limits := evaluator.Rules.SuggestionLimits
	return &CompareEngine{
		Evaluator:         evaluator,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(limits),
		TransformRegistry: transform.NewTransformRegistry(limits),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Label for the unmodified profile
	Templates        []string // Template names, each becomes one alternative
	TransformSpecs   []string // "name:key=value" specs, each becomes one alternative
	ProfilePath      string
}

// Compare evaluates the base profile and every requested alternative
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base domain.TaxProfile,
	options CompareOptions,
) (*ComparisonSet, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, ce.Evaluator.Compute(base))
	baseResult.Description = "Profile as entered"

	var pending []candidate

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		pending = append(pending, candidate{template.Name, template.Description, modified})
	}

	for _, spec := range options.TransformSpecs {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}

		modified, err := transform.ApplyTransforms(base, []transform.ProfileTransform{t})
		if err != nil {
			return nil, fmt.Errorf("failed to apply transform %q: %w", spec, err)
		}

		pending = append(pending, candidate{spec, t.Description(), modified})
	}

	// Results keep request order regardless of completion order
	alternatives := make([]ComparisonResult, len(pending))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range pending {
		i, c := i, c
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			alternatives[i] = ce.alternative(c.name, c.description, c.profile, baseResult)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ProfilePath:        options.ProfilePath,
		Currency:           ce.Evaluator.Rules.Currency,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

type candidate struct {
	name        string
	description string
	profile     domain.TaxProfile
}

func (ce *CompareEngine) alternative(name, description string, profile domain.TaxProfile, base ComparisonResult) ComparisonResult {
	result := ce.MetricsCalculator.CalculateMetrics(name, ce.Evaluator.Compute(profile))
	result.Description = description
	return ce.MetricsCalculator.CalculateComparison(result, base)
}
