package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gradebook-cli/internal/logger"
)

// Ensure SyllabusService implements the interface.
var _ driving.SyllabusService = (*SyllabusService)(nil)

// maxSyllabusBytes caps the size of a syllabus file read from disk.
const maxSyllabusBytes = 20 << 20

// SyllabusService turns syllabus text and files into calculators.
type SyllabusService struct {
	parser      driven.SyllabusParser
	extractors  driven.ExtractorRegistry
	calculators driving.CalculatorService
}

// NewSyllabusService creates a syllabus service.
// extractors may be nil when only pasted text is imported.
func NewSyllabusService(
	parser driven.SyllabusParser,
	extractors driven.ExtractorRegistry,
	calculators driving.CalculatorService,
) *SyllabusService {
	return &SyllabusService{
		parser:      parser,
		extractors:  extractors,
		calculators: calculators,
	}
}

// Parse runs the parser without storing anything.
func (s *SyllabusService) Parse(text string) domain.ParseResult {
	return s.parser.Parse(text)
}

// ImportText parses pasted text and creates a calculator from it.
func (s *SyllabusService) ImportText(
	ctx context.Context,
	text string,
	opts driving.ImportOptions,
) (*driving.ImportResult, error) {
	return s.importText(ctx, &domain.SyllabusText{URI: "text", Content: text}, opts)
}

// ImportFile reads a file, extracts its text and imports it.
func (s *SyllabusService) ImportFile(
	ctx context.Context,
	path string,
	opts driving.ImportOptions,
) (*driving.ImportResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat syllabus: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	if info.Size() > maxSyllabusBytes {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", domain.ErrInvalidInput, path, maxSyllabusBytes)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read syllabus: %w", err)
	}
	raw := &domain.RawSyllabus{
		URI:     path,
		Content: content,
		Metadata: map[string]any{
			"filename": filepath.Base(path),
		},
	}
	return s.ImportRaw(ctx, raw, opts)
}

// ImportRaw extracts text from bytes already in memory and imports it.
func (s *SyllabusService) ImportRaw(
	ctx context.Context,
	raw *domain.RawSyllabus,
	opts driving.ImportOptions,
) (*driving.ImportResult, error) {
	if raw == nil || len(raw.Content) == 0 {
		return nil, domain.ErrEmptyDocument
	}
	if s.extractors == nil {
		return nil, fmt.Errorf("%w: no extractors configured", domain.ErrUnsupportedType)
	}
	text, err := s.extractors.Extract(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", raw.URI, err)
	}
	return s.importText(ctx, text, opts)
}

// SupportedMIMETypes lists the file types ImportFile understands.
func (s *SyllabusService) SupportedMIMETypes() []string {
	if s.extractors == nil {
		return nil
	}
	return s.extractors.SupportedMIMETypes()
}

func (s *SyllabusService) importText(
	ctx context.Context,
	text *domain.SyllabusText,
	opts driving.ImportOptions,
) (*driving.ImportResult, error) {
	done := logger.Timer("parse " + text.URI)
	parsed := s.parser.Parse(text.Content)
	done()

	result := &driving.ImportResult{
		Source: text.URI,
		Parsed: parsed,
	}
	logger.Debug("parsed %d assignments from %s (subject %q)", len(parsed.Assignments), text.URI, parsed.Name)
	if opts.DryRun {
		return result, nil
	}

	// An empty name lets the calculator service pick "Subject N".
	name := firstNonBlank(opts.Name, parsed.Name, text.Title)
	rows := lo.Map(parsed.Assignments, func(p domain.ParsedAssignment, _ int) domain.Assignment {
		return domain.Assignment{
			Name:    p.Name,
			Weight:  p.Weight,
			DueDate: p.DueDate,
		}
	})

	calc, err := s.calculators.Create(ctx, name, rows)
	if err != nil {
		return nil, fmt.Errorf("create calculator: %w", err)
	}
	result.Calculator = calc
	return result, nil
}

func firstNonBlank(values ...string) string {
	v, _ := lo.Find(values, func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
	return strings.TrimSpace(v)
}
