package domain

import "time"

// Built-in background tasks.
const (
	TaskIDCloudSync    = "cloud-sync"
	TaskIDHistoryPrune = "history-prune"
)

// ScheduledTask is the persisted state of a recurring background task.
type ScheduledTask struct {
	ID       string
	Name     string
	Interval time.Duration
	Enabled  bool

	LastRun     time.Time
	NextRun     time.Time
	LastSuccess time.Time
	// LastError is empty after a successful run.
	LastError string
}

// Due reports whether the task should run at now. A task that has never
// been scheduled is due straight away.
func (t ScheduledTask) Due(now time.Time) bool {
	return t.Enabled && !t.NextRun.After(now)
}

// TaskResult is one entry in a task's run log.
type TaskResult struct {
	ID        string
	TaskID    string
	StartedAt time.Time
	EndedAt   time.Time
	Success   bool
	Error     string
	// ItemsProcessed counts calculators merged by a sync run.
	ItemsProcessed int
}

// SchedulerConfig switches the scheduler and each of its tasks.
type SchedulerConfig struct {
	Enabled     bool
	TaskConfigs map[string]TaskConfig
}

// TaskConfig is the schedule of a single task. A zero RetryInterval
// makes a failed run wait the full Interval.
type TaskConfig struct {
	Enabled       bool
	Interval      time.Duration
	RetryInterval time.Duration
}

// NextRunAfter returns when a run that ended at end should be followed.
// The retry interval only applies when it is shorter than the interval.
func (c TaskConfig) NextRunAfter(end time.Time, failed bool) time.Time {
	if failed && c.RetryInterval > 0 && c.RetryInterval < c.Interval {
		return end.Add(c.RetryInterval)
	}
	return end.Add(c.Interval)
}

// GetTaskConfig returns the zero TaskConfig for an unknown task.
func (c *SchedulerConfig) GetTaskConfig(taskID string) TaskConfig {
	return c.TaskConfigs[taskID]
}

// DefaultSchedulerConfig syncs every 15 minutes, retrying failures
// after 2, and prunes the run log daily.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled: true,
		TaskConfigs: map[string]TaskConfig{
			TaskIDCloudSync:    {Enabled: true, Interval: 15 * time.Minute, RetryInterval: 2 * time.Minute},
			TaskIDHistoryPrune: {Enabled: true, Interval: 24 * time.Hour},
		},
	}
}
