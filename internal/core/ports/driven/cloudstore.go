package driven

import (
	"context"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// CloudStore holds one snapshot document per user in remote storage.
type CloudStore interface {
	// Name identifies the provider for status output.
	Name() string

	// Load fetches the stored snapshot.
	// Returns nil and no error when nothing has been saved yet.
	Load(ctx context.Context) (*domain.Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, snap domain.Snapshot) error
}
