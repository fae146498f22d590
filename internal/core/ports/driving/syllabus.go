package driving

import (
	"context"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// SyllabusService reads syllabi and turns them into calculators.
type SyllabusService interface {
	// Parse runs the parser over text without storing anything.
	Parse(text string) domain.ParseResult

	// ImportText parses pasted text and creates a calculator from it.
	ImportText(ctx context.Context, text string, opts ImportOptions) (*ImportResult, error)

	// ImportFile extracts text from a file, parses it and creates a calculator.
	ImportFile(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error)

	// ImportRaw is ImportFile for bytes already in memory.
	ImportRaw(ctx context.Context, raw *domain.RawSyllabus, opts ImportOptions) (*ImportResult, error)

	// SupportedMIMETypes lists the file types ImportFile understands.
	SupportedMIMETypes() []string
}

// ImportOptions tune an import.
type ImportOptions struct {
	// Name overrides the calculator name.
	Name string

	// DryRun parses without creating a calculator.
	DryRun bool
}

// ImportResult is the outcome of an import.
type ImportResult struct {
	// Source is where the text came from.
	Source string

	// Parsed is the raw parser output.
	Parsed domain.ParseResult

	// Calculator is the created calculator; nil on a dry run.
	Calculator *domain.Calculator
}
