package sqlite

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
)

func openSchedulerStore(t *testing.T) driven.SchedulerStore {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.SchedulerStore()
}

func recordRun(t *testing.T, s driven.SchedulerStore, taskID string, started time.Time, success bool) *domain.TaskResult {
	t.Helper()
	result := &domain.TaskResult{
		TaskID:    taskID,
		StartedAt: started,
		EndedAt:   started.Add(time.Second),
		Success:   success,
	}
	if !success {
		result.Error = "drive: 503 backend error"
	}
	require.NoError(t, s.RecordResult(t.Context(), result))
	return result
}

func TestSchedulerStore_TaskRoundTrip(t *testing.T) {
	s := openSchedulerStore(t)
	ctx := t.Context()
	now := time.Now().UTC().Truncate(time.Second)

	sync := &domain.ScheduledTask{
		ID:          domain.TaskIDCloudSync,
		Name:        "Cloud Sync",
		Interval:    45 * time.Minute,
		LastRun:     now.Add(-30 * time.Minute),
		NextRun:     now.Add(15 * time.Minute),
		LastSuccess: now.Add(-30 * time.Minute),
		Enabled:     true,
	}
	require.NoError(t, s.SaveTask(ctx, sync))

	got, err := s.GetTask(ctx, domain.TaskIDCloudSync)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Cloud Sync", got.Name)
	assert.Equal(t, 45*time.Minute, got.Interval)
	assert.True(t, got.Enabled)
	assert.True(t, sync.LastRun.Equal(got.LastRun))
	assert.True(t, sync.NextRun.Equal(got.NextRun))
	assert.Empty(t, got.LastError)

	// Saving again updates in place.
	sync.Enabled = false
	sync.LastError = "token expired"
	sync.LastSuccess = time.Time{}
	require.NoError(t, s.SaveTask(ctx, sync))

	got, err = s.GetTask(ctx, domain.TaskIDCloudSync)
	require.NoError(t, err)
	assert.False(t, got.Enabled)
	assert.Equal(t, "token expired", got.LastError)
	assert.True(t, got.LastSuccess.IsZero())

	tasks, err := s.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestSchedulerStore_GetTaskMissing(t *testing.T) {
	s := openSchedulerStore(t)

	got, err := s.GetTask(t.Context(), domain.TaskIDHistoryPrune)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSchedulerStore_NilInput(t *testing.T) {
	s := openSchedulerStore(t)

	require.ErrorIs(t, s.SaveTask(t.Context(), nil), domain.ErrInvalidInput)
	require.ErrorIs(t, s.RecordResult(t.Context(), nil), domain.ErrInvalidInput)
}

func TestSchedulerStore_ListAndDelete(t *testing.T) {
	s := openSchedulerStore(t)
	ctx := t.Context()

	tasks, err := s.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	for _, task := range []*domain.ScheduledTask{
		{ID: domain.TaskIDHistoryPrune, Name: "History Prune", Interval: 24 * time.Hour, Enabled: true},
		{ID: domain.TaskIDCloudSync, Name: "Cloud Sync", Interval: time.Hour, Enabled: true},
	} {
		require.NoError(t, s.SaveTask(ctx, task))
	}

	tasks, err = s.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, domain.TaskIDCloudSync, tasks[0].ID, "ordered by id")
	assert.True(t, tasks[1].NextRun.IsZero())

	require.NoError(t, s.DeleteTask(ctx, domain.TaskIDCloudSync))
	require.NoError(t, s.DeleteTask(ctx, "never-existed"))

	tasks, err = s.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.TaskIDHistoryPrune, tasks[0].ID)
}

func TestSchedulerStore_History(t *testing.T) {
	s := openSchedulerStore(t)
	ctx := t.Context()
	base := time.Date(2025, time.September, 1, 8, 0, 0, 0, time.UTC)

	first := recordRun(t, s, domain.TaskIDCloudSync, base, true)
	recordRun(t, s, domain.TaskIDCloudSync, base.Add(time.Hour), false)
	last := recordRun(t, s, domain.TaskIDCloudSync, base.Add(2*time.Hour), true)
	recordRun(t, s, domain.TaskIDHistoryPrune, base, true)

	assert.NotEmpty(t, first.ID, "an id is assigned on record")

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "limited", limit: 2, want: 2},
		{name: "zero means all", limit: 0, want: 3},
		{name: "negative means all", limit: -1, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history, err := s.GetTaskHistory(ctx, domain.TaskIDCloudSync, tt.limit)
			require.NoError(t, err)
			require.Len(t, history, tt.want)
			assert.Equal(t, last.ID, history[0].ID, "most recent first")
			assert.True(t, last.EndedAt.Equal(history[0].EndedAt))
		})
	}

	history, err := s.GetTaskHistory(ctx, domain.TaskIDCloudSync, 0)
	require.NoError(t, err)
	assert.False(t, history[1].Success)
	assert.Equal(t, "drive: 503 backend error", history[1].Error)

	none, err := s.GetTaskHistory(ctx, "unknown", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSchedulerStore_PruneHistory(t *testing.T) {
	s := openSchedulerStore(t)
	ctx := t.Context()
	base := time.Date(2025, time.September, 1, 8, 0, 0, 0, time.UTC)

	for i := range 5 {
		recordRun(t, s, domain.TaskIDCloudSync, base.Add(time.Duration(i)*time.Hour), true)
	}
	recordRun(t, s, domain.TaskIDHistoryPrune, base, true)

	require.NoError(t, s.PruneHistory(ctx, 2))

	syncs, err := s.GetTaskHistory(ctx, domain.TaskIDCloudSync, 0)
	require.NoError(t, err)
	require.Len(t, syncs, 2)
	assert.True(t, base.Add(4*time.Hour).Equal(syncs[0].StartedAt))
	assert.True(t, base.Add(3*time.Hour).Equal(syncs[1].StartedAt))

	prunes, err := s.GetTaskHistory(ctx, domain.TaskIDHistoryPrune, 0)
	require.NoError(t, err)
	assert.Len(t, prunes, 1, "retention is per task")
}

func TestNullableHelpers(t *testing.T) {
	at := time.Date(2025, time.December, 12, 9, 30, 0, 0, time.UTC)

	assert.Nil(t, formatNullableTime(time.Time{}))
	assert.Equal(t, formatTime(at), formatNullableTime(at))
	assert.True(t, at.Equal(parseNullableTime(sql.NullString{String: formatTime(at), Valid: true})))
	assert.True(t, parseNullableTime(sql.NullString{String: "Dec 12", Valid: true}).IsZero())
	assert.True(t, parseNullableTime(sql.NullString{}).IsZero())

	assert.Nil(t, nullString(""))
	assert.Equal(t, "x", nullString("x"))
	assert.Equal(t, 1, boolToInt(true))
	assert.Equal(t, 0, boolToInt(false))
}
