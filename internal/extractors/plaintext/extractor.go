package plaintext

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text files.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/tab-separated-values",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5 // Fallback extractor
}

// Extract returns the content as text with line endings normalised.
func (e *Extractor) Extract(_ context.Context, raw *domain.RawSyllabus) (*domain.SyllabusText, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	return &domain.SyllabusText{
		URI:      raw.URI,
		Title:    TitleFor(raw),
		MIMEType: raw.MIMEType,
		Content:  Clean(raw.Content),
	}, nil
}

// Clean converts raw bytes to text. It drops a byte order mark,
// replaces invalid UTF-8 and turns CRLF and CR line endings into LF.
func Clean(content []byte) string {
	text := strings.TrimPrefix(string(content), "\ufeff")
	text = strings.ToValidUTF8(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// TitleFor checks metadata for a title first, then falls back to the URI.
func TitleFor(raw *domain.RawSyllabus) string {
	if raw.Metadata != nil {
		if title, ok := raw.Metadata["title"].(string); ok && strings.TrimSpace(title) != "" {
			return strings.TrimSpace(title)
		}
	}
	return TitleFromURI(raw.URI)
}

// TitleFromURI turns a file path into a human-readable title.
// Streams without a file name produce an empty title.
func TitleFromURI(uri string) string {
	if uri == "" || uri == "stdin" || uri == "-" {
		return ""
	}

	filename := filepath.Base(uri)

	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}

	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")

	return strings.TrimSpace(filename)
}
