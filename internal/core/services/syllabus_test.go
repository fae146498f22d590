package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gradebook-cli/internal/syllabus"
)

func newTestSyllabusService(parser *stubParser, registry *stubRegistry) (*SyllabusService, *memory.CalculatorStore) {
	store := memory.NewCalculatorStore()
	calcs := NewCalculatorService(store, nil)
	if registry == nil {
		return NewSyllabusService(parser, nil, calcs), store
	}
	return NewSyllabusService(parser, registry, calcs), store
}

func TestSyllabusService_ImportText(t *testing.T) {
	parser := &stubParser{result: domain.ParseResult{
		Name: "Biology 101",
		Assignments: []domain.ParsedAssignment{
			{Name: "Lab reports", Weight: "20"},
			{Name: "Final exam", Weight: "50", DueDate: "Dec 12 2025"},
		},
	}}
	service, store := newTestSyllabusService(parser, nil)

	result, err := service.ImportText(context.Background(), "syllabus text", driving.ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"syllabus text"}, parser.seen)
	require.NotNil(t, result.Calculator)
	assert.Equal(t, "Biology 101", result.Calculator.Name)
	require.Len(t, result.Calculator.Assignments, 2)
	assert.Equal(t, "Final exam", result.Calculator.Assignments[1].Name)
	assert.Equal(t, "Dec 12 2025", result.Calculator.Assignments[1].DueDate)
	assert.Empty(t, result.Calculator.Assignments[1].Grade)

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSyllabusService_ImportText_NamePriority(t *testing.T) {
	tests := []struct {
		name   string
		parsed string
		opt    string
		want   string
	}{
		{"option wins", "Biology", "My Bio", "My Bio"},
		{"parsed subject", "Biology", "", "Biology"},
		{"falls back to default", "", "  ", "Subject 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &stubParser{result: domain.ParseResult{Name: tt.parsed, Assignments: []domain.ParsedAssignment{}}}
			service, _ := newTestSyllabusService(parser, nil)

			result, err := service.ImportText(context.Background(), "x", driving.ImportOptions{Name: tt.opt})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Calculator.Name)
		})
	}
}

func TestSyllabusService_ImportText_EmptyResultStillCreatesRow(t *testing.T) {
	parser := &stubParser{result: domain.ParseResult{Assignments: []domain.ParsedAssignment{}}}
	service, _ := newTestSyllabusService(parser, nil)

	result, err := service.ImportText(context.Background(), "nothing useful", driving.ImportOptions{})
	require.NoError(t, err)
	require.Len(t, result.Calculator.Assignments, 1)
	assert.Empty(t, result.Calculator.Assignments[0].Name)
}

func TestSyllabusService_ImportText_DryRun(t *testing.T) {
	parser := &stubParser{result: domain.ParseResult{
		Name:        "Chemistry",
		Assignments: []domain.ParsedAssignment{{Name: "Essay", Weight: "20"}},
	}}
	service, store := newTestSyllabusService(parser, nil)

	result, err := service.ImportText(context.Background(), "x", driving.ImportOptions{DryRun: true})
	require.NoError(t, err)
	assert.Nil(t, result.Calculator)
	assert.Equal(t, "Chemistry", result.Parsed.Name)

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSyllabusService_ImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bio_101.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>Essay 20%</p>"), 0o600))

	parser := &stubParser{result: domain.ParseResult{Assignments: []domain.ParsedAssignment{{Name: "Essay", Weight: "20"}}}}
	registry := &stubRegistry{text: &domain.SyllabusText{Title: "bio 101", Content: "Essay 20%"}}
	service, _ := newTestSyllabusService(parser, registry)

	result, err := service.ImportFile(context.Background(), path, driving.ImportOptions{})
	require.NoError(t, err)

	require.Len(t, registry.calls, 1)
	assert.Equal(t, "bio_101.html", registry.calls[0].Metadata["filename"])
	assert.Equal(t, []string{"Essay 20%"}, parser.seen)
	assert.Equal(t, path, result.Source)
	assert.Equal(t, "bio 101", result.Calculator.Name, "file title is used when no subject is found")
}

func TestSyllabusService_ImportFile_Errors(t *testing.T) {
	parser := &stubParser{}
	registry := &stubRegistry{err: domain.ErrUnsupportedType}
	service, _ := newTestSyllabusService(parser, registry)
	ctx := context.Background()

	_, err := service.ImportFile(ctx, filepath.Join(t.TempDir(), "missing.txt"), driving.ImportOptions{})
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = service.ImportFile(ctx, t.TempDir(), driving.ImportOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = service.ImportFile(ctx, empty, driving.ImportOptions{})
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)

	binary := filepath.Join(t.TempDir(), "image.png")
	require.NoError(t, os.WriteFile(binary, []byte{0x89, 'P', 'N', 'G'}, 0o600))
	_, err = service.ImportFile(ctx, binary, driving.ImportOptions{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Empty(t, parser.seen)
}

func TestSyllabusService_ImportRaw_NoExtractors(t *testing.T) {
	service, _ := newTestSyllabusService(&stubParser{}, nil)

	_, err := service.ImportRaw(context.Background(), &domain.RawSyllabus{URI: "x", Content: []byte("a")}, driving.ImportOptions{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Nil(t, service.SupportedMIMETypes())
}

func TestSyllabusService_WithRealParser(t *testing.T) {
	calcs := NewCalculatorService(memory.NewCalculatorStore(), nil)
	service := NewSyllabusService(syllabus.New(syllabus.WithDefaultYear(2024)), nil, calcs)

	result, err := service.ImportText(context.Background(),
		"Subject: Chemistry\nEssay 20%\nReflection 5%\n", driving.ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Chemistry", result.Calculator.Name)
	require.Len(t, result.Calculator.Assignments, 2)
	assert.Equal(t, "Reflection", result.Calculator.Assignments[0].Name)
	assert.Equal(t, "5", result.Calculator.Assignments[0].Weight)
	assert.Equal(t, "Essay", result.Calculator.Assignments[1].Name)
}
