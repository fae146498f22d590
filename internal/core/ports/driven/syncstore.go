package driven

import (
	"context"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// SyncStateStore persists cloud sync bookkeeping.
type SyncStateStore interface {
	// Save stores the sync state.
	Save(ctx context.Context, state domain.SyncState) error

	// Get retrieves the sync state.
	// Returns a zero state if nothing has been recorded.
	Get(ctx context.Context) (*domain.SyncState, error)
}
