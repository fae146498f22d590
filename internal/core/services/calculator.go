package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

// Ensure CalculatorService implements the interface.
var _ driving.CalculatorService = (*CalculatorService)(nil)

// CalculatorService manages calculators and their assignment rows.
type CalculatorService struct {
	store    driven.CalculatorStore
	scales   driven.GradeScaleStore
	validate *inputValidator

	mu       sync.Mutex
	notifier driving.ChangeNotifier
	now      func() time.Time
}

// NewCalculatorService creates a calculator service.
// scales may be nil, in which case summaries use the default scale.
func NewCalculatorService(store driven.CalculatorStore, scales driven.GradeScaleStore) *CalculatorService {
	return &CalculatorService{
		store:    store,
		scales:   scales,
		validate: newInputValidator(),
		now:      time.Now,
	}
}

// SetNotifier registers the receiver of local change notifications,
// typically the sync service.
func (s *CalculatorService) SetNotifier(n driving.ChangeNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// Create adds a calculator with the next free ID.
func (s *CalculatorService) Create(
	ctx context.Context,
	name string,
	assignments []domain.Assignment,
) (*domain.Calculator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list calculators: %w", err)
	}
	id := domain.NextCalculatorID(existing)

	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultCalculatorName(id)
	}
	if err := s.validate.check(calculatorInput{Name: name}); err != nil {
		return nil, err
	}

	rows := make([]domain.Assignment, 0, max(len(assignments), 1))
	for _, a := range assignments {
		if err := s.validate.checkAssignment(a); err != nil {
			return nil, err
		}
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		rows = append(rows, a)
	}
	if len(rows) == 0 {
		rows = append(rows, domain.Assignment{ID: uuid.New().String()})
	}

	now := s.now()
	calc := domain.Calculator{
		ID:          id,
		Name:        name,
		Assignments: rows,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Save(ctx, calc); err != nil {
		return nil, fmt.Errorf("save calculator: %w", err)
	}
	s.notifyLocked()
	return &calc, nil
}

// List returns all calculators, newest first.
func (s *CalculatorService) List(ctx context.Context) ([]domain.Calculator, error) {
	calcs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Reverse(calcs), nil
}

// Get retrieves a calculator by ID.
func (s *CalculatorService) Get(ctx context.Context, id int) (*domain.Calculator, error) {
	return s.store.Get(ctx, id)
}

// Rename changes a calculator's name.
func (s *CalculatorService) Rename(ctx context.Context, id int, name string) error {
	name = strings.TrimSpace(name)
	if err := s.validate.check(calculatorInput{Name: name}); err != nil {
		return err
	}
	return s.update(ctx, id, func(c *domain.Calculator) error {
		c.Name = name
		return nil
	})
}

// SetDesiredGrade sets the target final percentage.
func (s *CalculatorService) SetDesiredGrade(ctx context.Context, id int, desired string) error {
	desired = strings.TrimSpace(desired)
	return s.update(ctx, id, func(c *domain.Calculator) error {
		if err := s.validate.check(calculatorInput{Name: c.Name, DesiredGrade: desired}); err != nil {
			return err
		}
		c.DesiredGrade = desired
		return nil
	})
}

// AddAssignment appends a row and returns it with its new ID.
func (s *CalculatorService) AddAssignment(
	ctx context.Context,
	id int,
	a domain.Assignment,
) (*domain.Assignment, error) {
	if err := s.validate.checkAssignment(a); err != nil {
		return nil, err
	}
	a.ID = uuid.New().String()
	err := s.update(ctx, id, func(c *domain.Calculator) error {
		c.Assignments = append(c.Assignments, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAssignment replaces the row with the same assignment ID.
func (s *CalculatorService) UpdateAssignment(ctx context.Context, id int, a domain.Assignment) error {
	if err := s.validate.checkAssignment(a); err != nil {
		return err
	}
	return s.update(ctx, id, func(c *domain.Calculator) error {
		_, idx, ok := lo.FindIndexOf(c.Assignments, func(row domain.Assignment) bool {
			return row.ID == a.ID
		})
		if !ok {
			return fmt.Errorf("assignment %s: %w", a.ID, domain.ErrNotFound)
		}
		c.Assignments[idx] = a
		return nil
	})
}

// RemoveAssignment deletes a row.
func (s *CalculatorService) RemoveAssignment(ctx context.Context, id int, assignmentID string) error {
	return s.update(ctx, id, func(c *domain.Calculator) error {
		kept := lo.Reject(c.Assignments, func(row domain.Assignment, _ int) bool {
			return row.ID == assignmentID
		})
		if len(kept) == len(c.Assignments) {
			return fmt.Errorf("assignment %s: %w", assignmentID, domain.ErrNotFound)
		}
		c.Assignments = kept
		return nil
	})
}

// MoveAssignment moves a row to a zero-based position. Positions past
// the end move the row last.
func (s *CalculatorService) MoveAssignment(ctx context.Context, id int, assignmentID string, to int) error {
	if to < 0 {
		return fmt.Errorf("%w: position must not be negative", domain.ErrInvalidInput)
	}
	return s.update(ctx, id, func(c *domain.Calculator) error {
		row, from, ok := lo.FindIndexOf(c.Assignments, func(r domain.Assignment) bool {
			return r.ID == assignmentID
		})
		if !ok {
			return fmt.Errorf("assignment %s: %w", assignmentID, domain.ErrNotFound)
		}
		rest := append(c.Assignments[:from:from], c.Assignments[from+1:]...)
		to = min(to, len(rest))
		moved := make([]domain.Assignment, 0, len(c.Assignments))
		moved = append(moved, rest[:to]...)
		moved = append(moved, row)
		moved = append(moved, rest[to:]...)
		c.Assignments = moved
		return nil
	})
}

// Delete removes a calculator.
func (s *CalculatorService) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete calculator: %w", err)
	}
	s.notifyLocked()
	return nil
}

// Summary computes current and required grades for a calculator.
func (s *CalculatorService) Summary(ctx context.Context, id int) (*domain.GradeSummary, error) {
	calc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	scale, err := activeScale(ctx, s.scales)
	if err != nil {
		return nil, err
	}
	summary := domain.Summarise(*calc, scale)
	return &summary, nil
}

// update applies fn to a stored calculator and saves the result.
func (s *CalculatorService) update(ctx context.Context, id int, fn func(*domain.Calculator) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	calc, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(calc); err != nil {
		return err
	}
	calc.UpdatedAt = s.now()
	if err := s.store.Save(ctx, *calc); err != nil {
		return fmt.Errorf("save calculator: %w", err)
	}
	s.notifyLocked()
	return nil
}

func (s *CalculatorService) notifyLocked() {
	if s.notifier != nil {
		s.notifier.NotifyChanged()
	}
}

// activeScale returns the stored scale, or the default when none is stored.
func activeScale(ctx context.Context, store driven.GradeScaleStore) (domain.GradeScale, error) {
	if store == nil {
		return domain.DefaultGradeScale(), nil
	}
	scale, err := store.GetScale(ctx)
	if err != nil {
		return domain.GradeScale{}, fmt.Errorf("get grade scale: %w", err)
	}
	if scale == nil || len(scale.Bands) == 0 {
		return domain.DefaultGradeScale(), nil
	}
	return *scale, nil
}
