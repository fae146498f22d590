package driven

import (
	"context"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// ExtractorRegistry selects the extractor for a file.
// It detects the MIME type when the caller leaves it empty and
// dispatches to the highest-priority extractor for that type.
type ExtractorRegistry interface {
	// Extract converts a raw syllabus using the best matching extractor.
	// Returns domain.ErrUnsupportedType when no extractor applies.
	Extract(ctx context.Context, raw *domain.RawSyllabus) (*domain.SyllabusText, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedMIMETypes returns all MIME types that can be extracted.
	SupportedMIMETypes() []string
}
