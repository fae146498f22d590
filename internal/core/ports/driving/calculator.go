package driving

import (
	"context"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// CalculatorService manages per-subject grade calculators.
type CalculatorService interface {
	// Create adds a calculator with the next free ID. An empty name becomes
	// "Subject N"; no assignments gives one blank row.
	Create(ctx context.Context, name string, assignments []domain.Assignment) (*domain.Calculator, error)

	// List returns all calculators, newest first.
	List(ctx context.Context) ([]domain.Calculator, error)

	// Get retrieves a calculator by ID.
	Get(ctx context.Context, id int) (*domain.Calculator, error)

	// Rename changes a calculator's name.
	Rename(ctx context.Context, id int, name string) error

	// SetDesiredGrade sets the target final percentage. Empty clears it.
	SetDesiredGrade(ctx context.Context, id int, desired string) error

	// AddAssignment appends a row and returns it with its new ID.
	AddAssignment(ctx context.Context, id int, a domain.Assignment) (*domain.Assignment, error)

	// UpdateAssignment replaces the row with the same assignment ID.
	UpdateAssignment(ctx context.Context, id int, a domain.Assignment) error

	// RemoveAssignment deletes a row.
	RemoveAssignment(ctx context.Context, id int, assignmentID string) error

	// MoveAssignment moves a row to a zero-based position.
	MoveAssignment(ctx context.Context, id int, assignmentID string, to int) error

	// Delete removes a calculator.
	Delete(ctx context.Context, id int) error

	// Summary computes current and required grades for a calculator.
	Summary(ctx context.Context, id int) (*domain.GradeSummary, error)
}

// ChangeNotifier is told whenever calculators or the scale change locally.
type ChangeNotifier interface {
	NotifyChanged()
}
