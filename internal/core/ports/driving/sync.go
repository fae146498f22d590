package driving

import (
	"context"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// SyncService keeps local calculators and the cloud snapshot in step.
type SyncService interface {
	ChangeNotifier

	// Pull merges the cloud snapshot into local storage.
	Pull(ctx context.Context) (*domain.MergeReport, error)

	// Push writes local calculators and scale to the cloud.
	Push(ctx context.Context) error

	// Sync pulls then pushes.
	Sync(ctx context.Context) (*domain.MergeReport, error)

	// HasChanges reports whether local data differs from the cloud.
	HasChanges(ctx context.Context) (bool, error)

	// Status returns provider and bookkeeping information.
	Status(ctx context.Context) (*SyncStatus, error)

	// Flush runs any pending debounced push now and stops the timer.
	Flush(ctx context.Context) error
}

// SyncStatus represents the current state of cloud sync.
type SyncStatus struct {
	// Provider names the cloud store, empty when none is configured.
	Provider string

	// Running indicates if a sync is currently in progress.
	Running bool

	// State is the persisted bookkeeping.
	State domain.SyncState
}
