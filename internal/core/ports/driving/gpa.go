package driving

import (
	"context"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// GPAService manages the grade scale and derives GPA from calculators.
type GPAService interface {
	// Scale returns the active scale (custom or default).
	Scale(ctx context.Context) (*domain.GradeScale, error)

	// SetScale validates and stores a custom scale.
	SetScale(ctx context.Context, scale domain.GradeScale) error

	// ResetScale reverts to the default 4.0 scale.
	ResetScale(ctx context.Context) error

	// GradeInfo maps a percentage to a band of the active scale.
	GradeInfo(ctx context.Context, pct float64) (domain.GradeInfo, error)

	// Overall computes the GPA across all calculators.
	Overall(ctx context.Context) (*GPAReport, error)
}

// GPAReport is the overall GPA with a per-subject breakdown.
type GPAReport struct {
	// GPA is the mean band points over counted subjects.
	GPA float64

	// Counted is how many subjects contributed.
	Counted int

	// Subjects lists every calculator, counted or not.
	Subjects []SubjectGrade
}

// SubjectGrade is one row of a GPA report.
type SubjectGrade struct {
	CalculatorID int
	Name         string
	Current      float64
	Info         domain.GradeInfo

	// Counted is false when nothing has been graded yet.
	Counted bool
}
