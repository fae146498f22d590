package driven

import (
	"context"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// Extractor turns the bytes of one file format into plain syllabus text.
type Extractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors return 50-89; fallbacks return 1-9.
	Priority() int

	// Extract converts raw bytes to text.
	Extract(ctx context.Context, raw *domain.RawSyllabus) (*domain.SyllabusText, error)
}
