package driven

import (
	"context"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// CalculatorStore persists calculators and their assignments.
type CalculatorStore interface {
	// Save creates or replaces a calculator, including its assignments.
	Save(ctx context.Context, calc domain.Calculator) error

	// Get retrieves a calculator by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id int) (*domain.Calculator, error)

	// List returns all calculators ordered by ID.
	List(ctx context.Context) ([]domain.Calculator, error)

	// Delete removes a calculator and its assignments.
	Delete(ctx context.Context, id int) error

	// ReplaceAll swaps the full set of calculators atomically.
	ReplaceAll(ctx context.Context, calcs []domain.Calculator) error
}

// GradeScaleStore persists the user's GPA scale.
type GradeScaleStore interface {
	// GetScale returns the stored scale.
	// Returns nil and no error if the default scale is in use.
	GetScale(ctx context.Context) (*domain.GradeScale, error)

	// SaveScale stores a custom scale.
	SaveScale(ctx context.Context, scale domain.GradeScale) error

	// ResetScale removes any custom scale.
	ResetScale(ctx context.Context) error
}
