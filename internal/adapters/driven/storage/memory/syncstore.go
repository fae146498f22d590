package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
)

// Ensure SyncStateStore implements the interface.
var _ driven.SyncStateStore = (*SyncStateStore)(nil)

// SyncStateStore is an in-memory implementation of driven.SyncStateStore.
type SyncStateStore struct {
	mu    sync.RWMutex
	state domain.SyncState
}

// NewSyncStateStore creates a new in-memory sync state store.
func NewSyncStateStore() *SyncStateStore {
	return &SyncStateStore{}
}

// Save stores the sync state.
func (s *SyncStateStore) Save(_ context.Context, state domain.SyncState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	return nil
}

// Get retrieves the sync state, zero if nothing was saved.
func (s *SyncStateStore) Get(_ context.Context) (*domain.SyncState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state := s.state
	return &state, nil
}

// Ensure CloudStore implements the interface.
var _ driven.CloudStore = (*CloudStore)(nil)

// CloudStore keeps a snapshot in memory. It stands in for a remote
// provider in tests and offline runs.
type CloudStore struct {
	mu   sync.RWMutex
	snap *domain.Snapshot

	// LoadErr and SaveErr, when set, are returned by Load and Save.
	LoadErr error
	SaveErr error

	saves int
}

// NewCloudStore creates an empty in-memory cloud store.
func NewCloudStore() *CloudStore {
	return &CloudStore{}
}

// Name identifies the provider.
func (s *CloudStore) Name() string {
	return "memory"
}

// Load returns a copy of the stored snapshot, nil if none.
func (s *CloudStore) Load(_ context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.snap == nil {
		return nil, nil //nolint:nilnil // nil means nothing saved yet
	}
	out := copySnapshot(*s.snap)
	return &out, nil
}

// Save replaces the stored snapshot.
func (s *CloudStore) Save(_ context.Context, snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	stored := copySnapshot(snap)
	s.snap = &stored
	s.saves++
	return nil
}

// Saves returns how many snapshots have been written.
func (s *CloudStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func copySnapshot(snap domain.Snapshot) domain.Snapshot {
	out := snap
	if snap.Calculators != nil {
		out.Calculators = make([]domain.Calculator, len(snap.Calculators))
		for i, c := range snap.Calculators {
			out.Calculators[i] = c.Clone()
		}
	}
	if snap.GPAGrades != nil {
		out.GPAGrades = make([]domain.GradeBand, len(snap.GPAGrades))
		copy(out.GPAGrades, snap.GPAGrades)
	}
	return out
}
