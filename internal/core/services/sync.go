package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gradebook-cli/internal/logger"
)

// Ensure SyncService implements the interface.
var _ driving.SyncService = (*SyncService)(nil)

// debouncedPushTimeout bounds a push started by the debounce timer.
const debouncedPushTimeout = 30 * time.Second

// SyncService merges local calculators with the cloud snapshot and
// pushes local edits back after they settle.
type SyncService struct {
	calcs  driven.CalculatorStore
	scales driven.GradeScaleStore
	state  driven.SyncStateStore
	cloud  driven.CloudStore

	debounce time.Duration
	now      func() time.Time

	mu      sync.Mutex
	running bool
	timer   *time.Timer
	pending bool
}

// NewSyncService creates a sync service.
// cloud may be nil, in which case sync operations return
// domain.ErrCloudUnavailable and change notifications are ignored.
func NewSyncService(
	calcs driven.CalculatorStore,
	scales driven.GradeScaleStore,
	state driven.SyncStateStore,
	cloud driven.CloudStore,
	debounce time.Duration,
) *SyncService {
	return &SyncService{
		calcs:    calcs,
		scales:   scales,
		state:    state,
		cloud:    cloud,
		debounce: debounce,
		now:      time.Now,
	}
}

// NotifyChanged schedules a push once local edits have been quiet for
// the debounce period. Each call restarts the wait.
func (s *SyncService) NotifyChanged() {
	if s.cloud == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.debouncedPush)
}

func (s *SyncService) debouncedPush() {
	ctx, cancel := context.WithTimeout(context.Background(), debouncedPushTimeout)
	defer cancel()

	if err := s.Push(ctx); err != nil {
		logger.Warn("sync: debounced push failed: %v", err)
	}
}

// Flush stops any waiting debounce timer and pushes pending edits now.
func (s *SyncService) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	pending := s.pending
	s.mu.Unlock()

	if !pending || s.cloud == nil {
		return nil
	}
	return s.Push(ctx)
}

// Pull merges the cloud snapshot into local storage.
func (s *SyncService) Pull(ctx context.Context) (*domain.MergeReport, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	report, err := s.pull(ctx)
	s.record(ctx, func(st *domain.SyncState) {
		if err == nil {
			st.LastPull = s.now()
		}
	}, err)
	return report, err
}

// Push writes local calculators and scale to the cloud.
func (s *SyncService) Push(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	err := s.push(ctx)
	s.record(ctx, func(st *domain.SyncState) {
		if err == nil {
			st.LastPush = s.now()
		}
	}, err)
	return err
}

// Sync pulls then pushes under one lock so concurrent edits to the cloud
// copy are merged before being overwritten.
func (s *SyncService) Sync(ctx context.Context) (*domain.MergeReport, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	report, err := s.pull(ctx)
	pulledAt := s.now()
	if err == nil {
		err = s.push(ctx)
	}
	s.record(ctx, func(st *domain.SyncState) {
		if report != nil {
			st.LastPull = pulledAt
		}
		if err == nil {
			st.LastPush = s.now()
		}
	}, err)
	return report, err
}

// HasChanges reports whether any local calculator has no identical
// calculator in the cloud snapshot.
func (s *SyncService) HasChanges(ctx context.Context) (bool, error) {
	if s.cloud == nil {
		return false, domain.ErrCloudUnavailable
	}
	snap, err := s.cloud.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load cloud snapshot: %w", err)
	}
	local, err := s.calcs.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list calculators: %w", err)
	}
	if snap == nil {
		return len(local) > 0, nil
	}
	snap.Normalise()
	return domain.HasCalculatorChanges(local, snap.Calculators), nil
}

// Status returns provider and bookkeeping information.
func (s *SyncService) Status(ctx context.Context) (*driving.SyncStatus, error) {
	status := &driving.SyncStatus{}
	if s.cloud != nil {
		status.Provider = s.cloud.Name()
	}
	s.mu.Lock()
	status.Running = s.running
	pending := s.pending
	s.mu.Unlock()

	state, err := s.state.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get sync state: %w", err)
	}
	status.State = *state
	status.State.Pending = status.State.Pending || pending
	return status, nil
}

// pull loads the cloud snapshot and replaces local data with the merge.
func (s *SyncService) pull(ctx context.Context) (*domain.MergeReport, error) {
	defer logger.Timer("sync pull")()

	snap, err := s.cloud.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cloud snapshot: %w", err)
	}
	if snap == nil {
		logger.Debug("sync: cloud snapshot is empty, nothing to pull")
		return &domain.MergeReport{}, nil
	}
	snap.Normalise()

	local, err := s.calcs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list calculators: %w", err)
	}
	merged, appended := domain.MergeCalculators(local, snap.Calculators)
	stamp := s.now()
	for i := range merged {
		if merged[i].CreatedAt.IsZero() {
			merged[i].CreatedAt = stamp
		}
		if merged[i].UpdatedAt.IsZero() {
			merged[i].UpdatedAt = stamp
		}
	}
	if err := s.calcs.ReplaceAll(ctx, merged); err != nil {
		return nil, fmt.Errorf("store merged calculators: %w", err)
	}

	report := &domain.MergeReport{
		Kept:     len(merged) - appended,
		Appended: appended,
	}

	if len(snap.GPAGrades) > 0 {
		replaced, err := s.adoptScale(ctx, snap.GPAGrades)
		if err != nil {
			return nil, err
		}
		report.ScaleReplaced = replaced
	}

	logger.Info("sync: pulled %d calculators, appended %d local", report.Kept, report.Appended)
	return report, nil
}

// adoptScale stores the cloud bands when they differ from the local scale.
func (s *SyncService) adoptScale(ctx context.Context, bands []domain.GradeBand) (bool, error) {
	current, err := activeScale(ctx, s.scales)
	if err != nil {
		return false, err
	}
	if domain.SameBands(current.Bands, bands) {
		return false, nil
	}
	scale := domain.GradeScale{Name: "Custom", Bands: bands}
	for _, b := range bands {
		scale.Max = max(scale.Max, b.Points)
	}
	if err := s.scales.SaveScale(ctx, scale.Sorted()); err != nil {
		return false, fmt.Errorf("store cloud grade scale: %w", err)
	}
	return true, nil
}

// push saves the local calculators and custom scale as the cloud snapshot.
func (s *SyncService) push(ctx context.Context) error {
	defer logger.Timer("sync push")()

	calcs, err := s.calcs.List(ctx)
	if err != nil {
		return fmt.Errorf("list calculators: %w", err)
	}
	snap := domain.Snapshot{
		Calculators: calcs,
		LastUpdated: s.now().UTC(),
	}
	if s.scales != nil {
		custom, err := s.scales.GetScale(ctx)
		if err != nil {
			return fmt.Errorf("get grade scale: %w", err)
		}
		if custom != nil {
			snap.GPAGrades = custom.Bands
		}
	}
	snap.Normalise()

	if err := s.cloud.Save(ctx, snap); err != nil {
		return fmt.Errorf("save cloud snapshot: %w", err)
	}

	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()

	logger.Info("sync: pushed %d calculators", len(calcs))
	return nil
}

func (s *SyncService) begin() error {
	if s.cloud == nil {
		return domain.ErrCloudUnavailable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return domain.ErrSyncInProgress
	}
	s.running = true
	return nil
}

func (s *SyncService) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}

// record updates the stored sync state after an operation.
func (s *SyncService) record(ctx context.Context, apply func(*domain.SyncState), opErr error) {
	state, err := s.state.Get(ctx)
	if err != nil {
		logger.Warn("sync: failed to read sync state: %v", err)
		state = &domain.SyncState{}
	}
	apply(state)
	if opErr != nil {
		state.LastError = opErr.Error()
	} else {
		state.LastError = ""
	}
	s.mu.Lock()
	state.Pending = s.pending
	s.mu.Unlock()

	if err := s.state.Save(ctx, *state); err != nil {
		logger.Warn("sync: failed to save sync state: %v", err)
	}
}
