package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gradebook-cli/internal/logger"
)

// historyKeep is how many runs are kept per task.
const historyKeep = 100

// pollInterval is how often the loop looks for due tasks.
const pollInterval = time.Minute

var _ driving.Scheduler = (*Scheduler)(nil)

// taskRunner does one run of a task and reports how many items it touched.
type taskRunner func(ctx context.Context) (int, error)

// Scheduler runs cloud sync and run-log housekeeping in the background
// while the TUI or the MCP server is up.
type Scheduler struct {
	config  domain.SchedulerConfig
	store   driven.SchedulerStore
	syncer  driving.SyncService
	runners map[string]taskRunner
	names   map[string]string
	now     func() time.Time

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler. syncer is nil when no cloud provider
// is configured, in which case the sync task is never registered.
func NewScheduler(
	config domain.SchedulerConfig,
	store driven.SchedulerStore,
	syncer driving.SyncService,
) *Scheduler {
	s := &Scheduler{
		config: config,
		store:  store,
		syncer: syncer,
		now:    time.Now,
		names: map[string]string{
			domain.TaskIDCloudSync:    "Cloud Sync",
			domain.TaskIDHistoryPrune: "History Prune",
		},
	}
	s.runners = map[string]taskRunner{
		domain.TaskIDCloudSync: s.runCloudSync,
		domain.TaskIDHistoryPrune: func(ctx context.Context) (int, error) {
			return 0, s.store.PruneHistory(ctx, historyKeep)
		},
	}
	return s
}

// Start registers the configured tasks and blocks until Stop is called
// or ctx ends. A second Start while running returns immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stop := s.stopCh
	s.mu.Unlock()

	if err := s.registerTasks(ctx); err != nil {
		logger.Warn("scheduler: registering tasks: %v", err)
	}

	s.runDue(ctx)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		case <-ticker.C:
			s.runDue(ctx)
		}
	}
}

// Stop ends the loop and waits for in-flight runs.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// registerTasks stores every enabled task. Cloud sync is skipped without
// a syncer.
func (s *Scheduler) registerTasks(ctx context.Context) error {
	for _, id := range []string{domain.TaskIDCloudSync, domain.TaskIDHistoryPrune} {
		cfg := s.config.GetTaskConfig(id)
		if !cfg.Enabled || (id == domain.TaskIDCloudSync && s.syncer == nil) {
			continue
		}
		if err := s.ensureTask(ctx, id, s.names[id], cfg); err != nil {
			return err
		}
	}
	return nil
}

// ensureTask creates the task or refreshes its settings. A changed
// interval restarts the countdown from now.
func (s *Scheduler) ensureTask(ctx context.Context, id, name string, cfg domain.TaskConfig) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	switch {
	case task == nil:
		task = &domain.ScheduledTask{
			ID:       id,
			Name:     name,
			Interval: cfg.Interval,
			NextRun:  s.now().Add(cfg.Interval),
		}
	case task.Interval != cfg.Interval:
		task.Interval = cfg.Interval
		task.NextRun = s.now().Add(cfg.Interval)
	}
	task.Enabled = cfg.Enabled

	return s.store.SaveTask(ctx, task)
}

// runDue starts every enabled task whose next run has arrived.
func (s *Scheduler) runDue(ctx context.Context) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		logger.Warn("scheduler: listing tasks: %v", err)
		return
	}

	now := s.now()
	for i := range tasks {
		task := tasks[i]
		if task.Due(now) {
			s.dispatch(ctx, &task)
		}
	}
}

// dispatch runs task in its own goroutine, then stores the outcome, the
// next run time and a run log entry.
func (s *Scheduler) dispatch(ctx context.Context, task *domain.ScheduledTask) {
	runner, ok := s.runners[task.ID]
	if !ok {
		logger.Warn("scheduler: no runner for task %q", task.ID)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		result := &domain.TaskResult{
			ID:        uuid.New().String(),
			TaskID:    task.ID,
			StartedAt: s.now(),
		}
		items, err := runner(ctx)
		result.EndedAt = s.now()
		result.ItemsProcessed = items
		result.Success = err == nil

		task.LastRun = result.StartedAt
		if err != nil {
			result.Error = err.Error()
			task.LastError = err.Error()
		} else {
			task.LastError = ""
			task.LastSuccess = result.EndedAt
		}

		// Failed runs come back after the retry interval.
		cfg := s.config.GetTaskConfig(task.ID)
		cfg.Interval = task.Interval
		task.NextRun = cfg.NextRunAfter(result.EndedAt, err != nil)

		if err := s.store.SaveTask(ctx, task); err != nil {
			logger.Warn("scheduler: saving task %s: %v", task.ID, err)
		}
		if err := s.store.RecordResult(ctx, result); err != nil {
			logger.Warn("scheduler: recording run of %s: %v", task.ID, err)
		}
		if err := s.store.PruneHistory(ctx, historyKeep); err != nil {
			logger.Warn("scheduler: pruning history: %v", err)
		}
	}()
}

// runCloudSync merges with the cloud snapshot and counts the calculators
// that came out of it. An unreachable provider is not a failure.
func (s *Scheduler) runCloudSync(ctx context.Context) (int, error) {
	if s.syncer == nil {
		return 0, nil
	}
	report, err := s.syncer.Sync(ctx)
	switch {
	case errors.Is(err, domain.ErrCloudUnavailable):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return report.Kept + report.Appended, nil
}
