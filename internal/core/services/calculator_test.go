package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

func newTestCalculatorService() (*CalculatorService, *memory.CalculatorStore, *countingNotifier) {
	store := memory.NewCalculatorStore()
	service := NewCalculatorService(store, memory.NewGradeScaleStore())
	notifier := &countingNotifier{}
	service.SetNotifier(notifier)
	return service, store, notifier
}

func TestCalculatorService_Create(t *testing.T) {
	service, _, notifier := newTestCalculatorService()
	ctx := context.Background()

	first, err := service.Create(ctx, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Subject 1", first.Name)
	require.Len(t, first.Assignments, 1, "a new calculator starts with one blank row")
	assert.NotEmpty(t, first.Assignments[0].ID)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := service.Create(ctx, "  Maths  ", []domain.Assignment{
		{Name: "Quiz", Weight: "10"},
		{Name: "Final", Weight: "50", DueDate: "Dec 1 2025"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, "Maths", second.Name)
	require.Len(t, second.Assignments, 2)
	assert.NotEqual(t, second.Assignments[0].ID, second.Assignments[1].ID)

	assert.Equal(t, 2, notifier.Count())
}

func TestCalculatorService_Create_IDFollowsMaximum(t *testing.T) {
	service, store, _ := newTestCalculatorService()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.Calculator{ID: 7, Name: "Existing"}))

	calc, err := service.Create(ctx, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 8, calc.ID)
	assert.Equal(t, "Subject 8", calc.Name)
}

func TestCalculatorService_Create_InvalidRows(t *testing.T) {
	tests := []struct {
		name string
		row  domain.Assignment
	}{
		{"weight above 100", domain.Assignment{Name: "Essay", Weight: "120"}},
		{"weight not a number", domain.Assignment{Name: "Essay", Weight: "lots"}},
		{"grade with zero denominator", domain.Assignment{Name: "Essay", Grade: "4/0"}},
		{"grade not a number", domain.Assignment{Name: "Essay", Grade: "A+"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store, notifier := newTestCalculatorService()
			ctx := context.Background()

			_, err := service.Create(ctx, "Maths", []domain.Assignment{tt.row})
			require.ErrorIs(t, err, domain.ErrInvalidInput)

			list, err := store.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)
			assert.Zero(t, notifier.Count())
		})
	}
}

func TestCalculatorService_List_NewestFirst(t *testing.T) {
	service, _, _ := newTestCalculatorService()
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := service.Create(ctx, name, nil)
		require.NoError(t, err)
	}

	list, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "C", list[0].Name)
	assert.Equal(t, "A", list[2].Name)
}

func TestCalculatorService_RenameAndTarget(t *testing.T) {
	service, _, notifier := newTestCalculatorService()
	ctx := context.Background()
	calc, err := service.Create(ctx, "Maths", nil)
	require.NoError(t, err)

	require.NoError(t, service.Rename(ctx, calc.ID, "Calculus"))
	require.NoError(t, service.SetDesiredGrade(ctx, calc.ID, "85"))

	got, err := service.Get(ctx, calc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Calculus", got.Name)
	assert.Equal(t, "85", got.DesiredGrade)
	assert.Equal(t, 3, notifier.Count())

	assert.ErrorIs(t, service.Rename(ctx, calc.ID, "   "), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetDesiredGrade(ctx, calc.ID, "high"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Rename(ctx, 99, "Ghost"), domain.ErrNotFound)

	require.NoError(t, service.SetDesiredGrade(ctx, calc.ID, ""))
	got, err = service.Get(ctx, calc.ID)
	require.NoError(t, err)
	assert.Empty(t, got.DesiredGrade)
}

func TestCalculatorService_AssignmentRows(t *testing.T) {
	service, _, _ := newTestCalculatorService()
	ctx := context.Background()
	calc, err := service.Create(ctx, "Maths", []domain.Assignment{{Name: "Quiz", Weight: "10"}})
	require.NoError(t, err)

	added, err := service.AddAssignment(ctx, calc.ID, domain.Assignment{Name: "Exam", Weight: "60"})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	added.Grade = "45/50"
	require.NoError(t, service.UpdateAssignment(ctx, calc.ID, *added))

	got, err := service.Get(ctx, calc.ID)
	require.NoError(t, err)
	require.Len(t, got.Assignments, 2)
	assert.Equal(t, "45/50", got.Assignments[1].Grade)

	err = service.UpdateAssignment(ctx, calc.ID, domain.Assignment{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, service.RemoveAssignment(ctx, calc.ID, calc.Assignments[0].ID))
	assert.ErrorIs(t, service.RemoveAssignment(ctx, calc.ID, calc.Assignments[0].ID), domain.ErrNotFound)

	got, err = service.Get(ctx, calc.ID)
	require.NoError(t, err)
	require.Len(t, got.Assignments, 1)
	assert.Equal(t, "Exam", got.Assignments[0].Name)
}

func TestCalculatorService_MoveAssignment(t *testing.T) {
	tests := []struct {
		name string
		move string
		to   int
		want []string
	}{
		{"first to last", "A", 2, []string{"B", "C", "A"}},
		{"last to first", "C", 0, []string{"C", "A", "B"}},
		{"middle stays", "B", 1, []string{"A", "B", "C"}},
		{"past the end goes last", "A", 10, []string{"B", "C", "A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestCalculatorService()
			ctx := context.Background()
			calc, err := service.Create(ctx, "Maths", []domain.Assignment{
				{ID: "A", Name: "A"},
				{ID: "B", Name: "B"},
				{ID: "C", Name: "C"},
			})
			require.NoError(t, err)

			require.NoError(t, service.MoveAssignment(ctx, calc.ID, tt.move, tt.to))

			got, err := service.Get(ctx, calc.ID)
			require.NoError(t, err)
			names := make([]string, 0, len(got.Assignments))
			for _, a := range got.Assignments {
				names = append(names, a.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestCalculatorService_MoveAssignment_Errors(t *testing.T) {
	service, _, _ := newTestCalculatorService()
	ctx := context.Background()
	calc, err := service.Create(ctx, "Maths", []domain.Assignment{{ID: "A", Name: "A"}})
	require.NoError(t, err)

	assert.ErrorIs(t, service.MoveAssignment(ctx, calc.ID, "A", -1), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.MoveAssignment(ctx, calc.ID, "Z", 0), domain.ErrNotFound)
}

func TestCalculatorService_Delete(t *testing.T) {
	service, _, notifier := newTestCalculatorService()
	ctx := context.Background()
	calc, err := service.Create(ctx, "Maths", nil)
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, calc.ID))
	assert.ErrorIs(t, service.Delete(ctx, calc.ID), domain.ErrNotFound)

	_, err = service.Get(ctx, calc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 2, notifier.Count())
}

func TestCalculatorService_Summary(t *testing.T) {
	service, _, _ := newTestCalculatorService()
	ctx := context.Background()
	calc, err := service.Create(ctx, "Maths", []domain.Assignment{
		{Name: "Quiz", Weight: "20", Grade: "90"},
		{Name: "Midterm", Weight: "30", Grade: "40/50"},
		{Name: "Final", Weight: "50"},
	})
	require.NoError(t, err)
	require.NoError(t, service.SetDesiredGrade(ctx, calc.ID, "85"))

	summary, err := service.Summary(ctx, calc.ID)
	require.NoError(t, err)

	// (90*20 + 80*30) / 50 = 84
	assert.InDelta(t, 84.0, summary.Current, 0.001)
	assert.InDelta(t, 50.0, summary.CompletedWeight, 0.001)
	require.NotNil(t, summary.Required)
	// (85*100 - 4200) / 50 = 86
	assert.InDelta(t, 86.0, *summary.Required, 0.001)
	assert.Equal(t, "B", summary.Letter.Letter)
}
