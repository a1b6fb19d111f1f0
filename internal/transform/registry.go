package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
	limits    domain.SuggestionLimits
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ProfileTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms
// registered. limits backs max_deduction.
func NewTransformRegistry(limits domain.SuggestionLimits) *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
		limits:    limits,
	}

	registry.Register("set_deduction", createSetDeduction)
	registry.Register("add_deduction", createAddDeduction)
	registry.Register("max_deduction", registry.createMaxDeduction)
	registry.Register("adjust_salary", createAdjustSalary)
	registry.Register("set_rent", createSetRent)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ProfileTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "add_deduction:section=80c,amount=50000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ProfileTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireSection(transform string, params map[string]string) (domain.Section, error) {
	raw, ok := params["section"]
	if !ok {
		return "", fmt.Errorf("%s requires 'section' parameter", transform)
	}
	return domain.ParseSection(raw)
}

func requireDecimal(transform, key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// Factory functions for each transform

func createSetDeduction(params map[string]string) (ProfileTransform, error) {
	section, err := requireSection("set_deduction", params)
	if err != nil {
		return nil, err
	}
	amount, err := requireDecimal("set_deduction", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetDeduction{Section: section, Amount: amount}, nil
}

func createAddDeduction(params map[string]string) (ProfileTransform, error) {
	section, err := requireSection("add_deduction", params)
	if err != nil {
		return nil, err
	}
	amount, err := requireDecimal("add_deduction", "amount", params)
	if err != nil {
		return nil, err
	}
	return &AddDeduction{Section: section, Amount: amount}, nil
}

func (r *TransformRegistry) createMaxDeduction(params map[string]string) (ProfileTransform, error) {
	section, err := requireSection("max_deduction", params)
	if err != nil {
		return nil, err
	}
	return &MaxDeduction{Section: section, Limits: r.limits}, nil
}

func createAdjustSalary(params map[string]string) (ProfileTransform, error) {
	percent, err := requireDecimal("adjust_salary", "percent", params)
	if err != nil {
		return nil, err
	}
	return &AdjustSalary{Percent: percent}, nil
}

func createSetRent(params map[string]string) (ProfileTransform, error) {
	amount, err := requireDecimal("set_rent", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetRent{Amount: amount}, nil
}
