package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
)

// Ensure CalculatorStore implements the interface.
var _ driven.CalculatorStore = (*CalculatorStore)(nil)

// CalculatorStore is an in-memory implementation of driven.CalculatorStore.
// Calculators are deep-copied on the way in and out.
type CalculatorStore struct {
	mu          sync.RWMutex
	calculators map[int]domain.Calculator
}

// NewCalculatorStore creates a new in-memory calculator store.
func NewCalculatorStore() *CalculatorStore {
	return &CalculatorStore{
		calculators: make(map[int]domain.Calculator),
	}
}

// Save stores or replaces a calculator.
func (s *CalculatorStore) Save(_ context.Context, calc domain.Calculator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calculators[calc.ID] = calc.Clone()
	return nil
}

// Get retrieves a calculator by ID.
func (s *CalculatorStore) Get(_ context.Context, id int) (*domain.Calculator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	calc, ok := s.calculators[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := calc.Clone()
	return &out, nil
}

// List returns all calculators ordered by ID.
func (s *CalculatorStore) List(_ context.Context) ([]domain.Calculator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Calculator, 0, len(s.calculators))
	for _, calc := range s.calculators {
		out = append(out, calc.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete removes a calculator.
func (s *CalculatorStore) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.calculators, id)
	return nil
}

// ReplaceAll swaps the full set of calculators.
func (s *CalculatorStore) ReplaceAll(_ context.Context, calcs []domain.Calculator) error {
	next := make(map[int]domain.Calculator, len(calcs))
	for _, calc := range calcs {
		next[calc.ID] = calc.Clone()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calculators = next
	return nil
}

// Ensure GradeScaleStore implements the interface.
var _ driven.GradeScaleStore = (*GradeScaleStore)(nil)

// GradeScaleStore is an in-memory implementation of driven.GradeScaleStore.
type GradeScaleStore struct {
	mu    sync.RWMutex
	scale *domain.GradeScale
}

// NewGradeScaleStore creates a store with the default scale in use.
func NewGradeScaleStore() *GradeScaleStore {
	return &GradeScaleStore{}
}

// GetScale returns the custom scale, or nil when none is stored.
func (s *GradeScaleStore) GetScale(_ context.Context) (*domain.GradeScale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.scale == nil {
		return nil, nil //nolint:nilnil // nil means the default scale
	}
	out := s.scale.Sorted()
	return &out, nil
}

// SaveScale stores a custom scale.
func (s *GradeScaleStore) SaveScale(_ context.Context, scale domain.GradeScale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := scale.Sorted()
	s.scale = &stored
	return nil
}

// ResetScale removes the custom scale.
func (s *GradeScaleStore) ResetScale(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scale = nil
	return nil
}
