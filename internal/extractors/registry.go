package extractors

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// extensionTypes covers formats that content sniffing reports as plain text.
var extensionTypes = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".htm":      "text/html",
	".html":     "text/html",
}

// Registry maps MIME types to the extractors that handle them.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string][]driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string][]driven.Extractor),
	}
}

// Register adds an extractor for each MIME type it supports.
// Extractors for the same type are kept in descending priority order.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mimeType := range extractor.SupportedMIMETypes() {
		key := baseType(mimeType)
		list := append(r.extractors[key], extractor)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.extractors[key] = list
	}
}

// Has reports whether any extractor handles the MIME type.
func (r *Registry) Has(mimeType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.extractors[baseType(mimeType)]) > 0
}

// SupportedMIMETypes returns all registered MIME types, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.extractors))
	for mimeType := range r.extractors {
		types = append(types, mimeType)
	}
	sort.Strings(types)
	return types
}

// Extract converts raw bytes to text with the best matching extractor.
// An empty MIME type is detected from the file extension, then the content.
// Types with no extractor of their own fall back to their parent type,
// so any text-based format can still be read as plain text.
func (r *Registry) Extract(ctx context.Context, raw *domain.RawSyllabus) (*domain.SyllabusText, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	mimeType := baseType(raw.MIMEType)
	if mimeType == "" {
		mimeType = detect(raw)
	}

	extractor, resolved := r.resolve(mimeType)
	if extractor == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, mimeType)
	}

	input := *raw
	input.MIMEType = resolved
	text, err := extractor.Extract(ctx, &input)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text.Content) == "" {
		return nil, domain.ErrEmptyDocument
	}
	if text.MIMEType == "" {
		text.MIMEType = resolved
	}
	return text, nil
}

// resolve finds the extractor for a type, walking up the mimetype
// hierarchy when the exact type is not registered.
func (r *Registry) resolve(mimeType string) (driven.Extractor, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if list := r.extractors[mimeType]; len(list) > 0 {
		return list[0], mimeType
	}

	known := mimetype.Lookup(mimeType)
	if known == nil {
		return nil, mimeType
	}
	for parent := known.Parent(); parent != nil; parent = parent.Parent() {
		key := baseType(parent.String())
		if list := r.extractors[key]; len(list) > 0 {
			return list[0], key
		}
	}
	return nil, mimeType
}

// detect guesses the MIME type of raw content.
func detect(raw *domain.RawSyllabus) string {
	if mimeType, ok := extensionTypes[strings.ToLower(filepath.Ext(raw.URI))]; ok {
		return mimeType
	}
	return baseType(mimetype.Detect(raw.Content).String())
}

// baseType lowercases a MIME type and drops parameters such as charset.
func baseType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
