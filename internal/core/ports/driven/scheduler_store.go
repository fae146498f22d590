package driven

import (
	"context"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// SchedulerStore keeps background task state and a run log so the
// schedule survives restarts.
type SchedulerStore interface {
	// GetTask returns nil, nil for an unknown id.
	GetTask(ctx context.Context, taskID string) (*domain.ScheduledTask, error)
	ListTasks(ctx context.Context) ([]domain.ScheduledTask, error)
	// SaveTask inserts or replaces the task with the same id.
	SaveTask(ctx context.Context, task *domain.ScheduledTask) error
	DeleteTask(ctx context.Context, taskID string) error

	// RecordResult appends a run to the log.
	RecordResult(ctx context.Context, result *domain.TaskResult) error
	// GetTaskHistory lists the newest runs first. limit <= 0 means all.
	GetTaskHistory(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error)
	// PruneHistory drops all but the newest keep runs of each task.
	PruneHistory(ctx context.Context, keep int) error
}
