package services

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

// Ensure GPAService implements the interface.
var _ driving.GPAService = (*GPAService)(nil)

// GPAService manages the grade scale and derives GPA from calculators.
type GPAService struct {
	calcs    driven.CalculatorStore
	scales   driven.GradeScaleStore
	notifier driving.ChangeNotifier
}

// NewGPAService creates a GPA service.
func NewGPAService(calcs driven.CalculatorStore, scales driven.GradeScaleStore) *GPAService {
	return &GPAService{calcs: calcs, scales: scales}
}

// SetNotifier registers the receiver of scale change notifications.
func (s *GPAService) SetNotifier(n driving.ChangeNotifier) {
	s.notifier = n
}

// Scale returns the active scale, custom or default.
func (s *GPAService) Scale(ctx context.Context) (*domain.GradeScale, error) {
	scale, err := activeScale(ctx, s.scales)
	if err != nil {
		return nil, err
	}
	sorted := scale.Sorted()
	return &sorted, nil
}

// SetScale validates and stores a custom scale.
func (s *GPAService) SetScale(ctx context.Context, scale domain.GradeScale) error {
	if err := scale.Validate(); err != nil {
		return err
	}
	if scale.Name == "" {
		scale.Name = "Custom"
	}
	if scale.Max == 0 {
		scale.Max = lo.MaxBy(scale.Bands, func(a, b domain.GradeBand) bool {
			return a.Points > b.Points
		}).Points
	}
	if err := s.scales.SaveScale(ctx, scale.Sorted()); err != nil {
		return fmt.Errorf("save grade scale: %w", err)
	}
	s.notify()
	return nil
}

// ResetScale reverts to the default 4.0 scale.
func (s *GPAService) ResetScale(ctx context.Context) error {
	if err := s.scales.ResetScale(ctx); err != nil {
		return fmt.Errorf("reset grade scale: %w", err)
	}
	s.notify()
	return nil
}

// GradeInfo maps a percentage to a band of the active scale.
func (s *GPAService) GradeInfo(ctx context.Context, pct float64) (domain.GradeInfo, error) {
	scale, err := activeScale(ctx, s.scales)
	if err != nil {
		return domain.GradeInfo{}, err
	}
	return scale.GradeInfo(pct), nil
}

// Overall computes the GPA across all calculators.
func (s *GPAService) Overall(ctx context.Context) (*driving.GPAReport, error) {
	scale, err := activeScale(ctx, s.scales)
	if err != nil {
		return nil, err
	}
	calcs, err := s.calcs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list calculators: %w", err)
	}

	gpa, counted := domain.OverallGPA(calcs, scale)
	subjects := lo.Map(calcs, func(c domain.Calculator, _ int) driving.SubjectGrade {
		summary := domain.Summarise(c, scale)
		return driving.SubjectGrade{
			CalculatorID: c.ID,
			Name:         c.Name,
			Current:      summary.Current,
			Info:         summary.Letter,
			Counted:      summary.CompletedWeight > 0 && summary.Letter.Valid,
		}
	})

	return &driving.GPAReport{
		GPA:      gpa,
		Counted:  counted,
		Subjects: subjects,
	}, nil
}

func (s *GPAService) notify() {
	if s.notifier != nil {
		s.notifier.NotifyChanged()
	}
}
