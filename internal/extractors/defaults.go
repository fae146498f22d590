package extractors

import (
	"github.com/custodia-labs/gradebook-cli/internal/extractors/docx"
	"github.com/custodia-labs/gradebook-cli/internal/extractors/html"
	"github.com/custodia-labs/gradebook-cli/internal/extractors/markdown"
	"github.com/custodia-labs/gradebook-cli/internal/extractors/plaintext"
)

// RegisterDefaults registers all built-in extractors with the registry.
// Call this during application initialisation.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	r.Register(docx.New())
}

// NewDefaultRegistry returns a registry with every built-in extractor.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
