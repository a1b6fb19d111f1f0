package transform

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// ProfileTransform defines the interface for all what-if edits to a tax profile.
// Transforms are composable operations that modify profiles in predictable ways,
// enabling scenario comparison, break-even analysis and interactive exploration.
type ProfileTransform interface {
	// Apply returns a modified copy of base. The base profile is never mutated.
	Apply(base domain.TaxProfile) (domain.TaxProfile, error)

	// Name returns a short identifier for this transform (e.g., "set_deduction").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid without applying it.
	Validate(base domain.TaxProfile) error
}

// ApplyTransforms applies a sequence of transforms to a base profile.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base domain.TaxProfile, transforms []ProfileTransform) (domain.TaxProfile, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return domain.TaxProfile{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.TaxProfile{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.TaxProfile{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
