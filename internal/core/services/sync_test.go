package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/logger"
)

type syncFixture struct {
	calcs   *memory.CalculatorStore
	scales  *memory.GradeScaleStore
	state   *memory.SyncStateStore
	cloud   *memory.CloudStore
	service *SyncService
}

func newSyncFixture(debounce time.Duration) *syncFixture {
	f := &syncFixture{
		calcs:  memory.NewCalculatorStore(),
		scales: memory.NewGradeScaleStore(),
		state:  memory.NewSyncStateStore(),
		cloud:  memory.NewCloudStore(),
	}
	f.service = NewSyncService(f.calcs, f.scales, f.state, f.cloud, debounce)
	return f
}

func TestSyncService_NoCloud(t *testing.T) {
	service := NewSyncService(memory.NewCalculatorStore(), memory.NewGradeScaleStore(),
		memory.NewSyncStateStore(), nil, time.Millisecond)
	ctx := context.Background()

	_, err := service.Pull(ctx)
	assert.ErrorIs(t, err, domain.ErrCloudUnavailable)
	assert.ErrorIs(t, service.Push(ctx), domain.ErrCloudUnavailable)
	_, err = service.HasChanges(ctx)
	assert.ErrorIs(t, err, domain.ErrCloudUnavailable)

	service.NotifyChanged()
	require.NoError(t, service.Flush(ctx))

	status, err := service.Status(ctx)
	require.NoError(t, err)
	assert.Empty(t, status.Provider)
	assert.False(t, status.State.Pending)
}

func TestSyncService_Pull_EmptyCloud(t *testing.T) {
	f := newSyncFixture(time.Hour)
	ctx := context.Background()
	require.NoError(t, f.calcs.Save(ctx, domain.Calculator{ID: 1, Name: "Maths"}))

	report, err := f.service.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.MergeReport{}, *report)

	list, err := f.calcs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "local data is untouched when the cloud is empty")
}

func TestSyncService_Pull_Merges(t *testing.T) {
	f := newSyncFixture(time.Hour)
	ctx := context.Background()

	quiz := domain.Assignment{Name: "Quiz", Weight: "10", Grade: "80"}
	require.NoError(t, f.cloud.Save(ctx, domain.Snapshot{
		Calculators: []domain.Calculator{
			{ID: 1, Name: "Maths", Assignments: []domain.Assignment{quiz}},
			{ID: 4, Name: "Art"},
		},
		GPAGrades: passFailScale().Bands,
	}))
	require.NoError(t, f.calcs.Save(ctx, domain.Calculator{ID: 1, Name: "Maths", Assignments: []domain.Assignment{quiz}}))
	require.NoError(t, f.calcs.Save(ctx, domain.Calculator{ID: 2, Name: "Physics"}))

	report, err := f.service.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Kept)
	assert.Equal(t, 1, report.Appended)
	assert.True(t, report.ScaleReplaced)

	list, err := f.calcs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 5, list[2].ID)
	assert.Equal(t, "Physics", list[2].Name)
	assert.False(t, list[0].CreatedAt.IsZero())

	scale, err := f.scales.GetScale(ctx)
	require.NoError(t, err)
	require.NotNil(t, scale)
	assert.Equal(t, "P", scale.Bands[0].Letter)

	state, err := f.state.Get(ctx)
	require.NoError(t, err)
	assert.False(t, state.LastPull.IsZero())
	assert.Empty(t, state.LastError)

	// Pulling again with an unchanged scale does not replace it.
	report, err = f.service.Pull(ctx)
	require.NoError(t, err)
	assert.False(t, report.ScaleReplaced)
}

func TestSyncService_Push(t *testing.T) {
	f := newSyncFixture(time.Hour)
	ctx := context.Background()
	require.NoError(t, f.calcs.Save(ctx, domain.Calculator{ID: 1, Name: "Maths"}))

	require.NoError(t, f.service.Push(ctx))

	snap, err := f.cloud.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.Len(t, snap.Calculators, 1)
	assert.NotNil(t, snap.GPAGrades)
	assert.Empty(t, snap.GPAGrades, "the default scale is not pushed")
	assert.False(t, snap.LastUpdated.IsZero())

	require.NoError(t, f.scales.SaveScale(ctx, passFailScale()))
	require.NoError(t, f.service.Push(ctx))
	snap, err = f.cloud.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.GPAGrades, 2)
}

func TestSyncService_Push_RecordsError(t *testing.T) {
	f := newSyncFixture(time.Hour)
	ctx := context.Background()
	f.cloud.SaveErr = errors.New("quota exceeded")

	err := f.service.Push(ctx)
	require.Error(t, err)

	status, err := f.service.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "memory", status.Provider)
	assert.Contains(t, status.State.LastError, "quota exceeded")
	assert.True(t, status.State.LastPush.IsZero())
}

func TestSyncService_Sync(t *testing.T) {
	f := newSyncFixture(time.Hour)
	ctx := context.Background()
	require.NoError(t, f.cloud.Save(ctx, domain.Snapshot{Calculators: []domain.Calculator{{ID: 1, Name: "Cloud"}}}))
	require.NoError(t, f.calcs.Save(ctx, domain.Calculator{ID: 1, Name: "Local"}))

	report, err := f.service.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Appended)

	snap, err := f.cloud.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Calculators, 2)
	assert.Equal(t, "Cloud", snap.Calculators[0].Name)
	assert.Equal(t, "Local", snap.Calculators[1].Name)

	changed, err := f.service.HasChanges(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSyncService_HasChanges(t *testing.T) {
	f := newSyncFixture(time.Hour)
	ctx := context.Background()

	changed, err := f.service.HasChanges(ctx)
	require.NoError(t, err)
	assert.False(t, changed, "nothing local and nothing in the cloud")

	require.NoError(t, f.calcs.Save(ctx, domain.Calculator{ID: 1, Name: "Maths"}))
	changed, err = f.service.HasChanges(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestSyncService_SyncInProgress(t *testing.T) {
	f := newSyncFixture(time.Hour)
	require.NoError(t, f.service.begin())
	defer f.service.end()

	_, err := f.service.Pull(context.Background())
	assert.ErrorIs(t, err, domain.ErrSyncInProgress)

	status, err := f.service.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Running)
}

func TestSyncService_DebouncedPush(t *testing.T) {
	f := newSyncFixture(20 * time.Millisecond)
	ctx := context.Background()
	require.NoError(t, f.calcs.Save(ctx, domain.Calculator{ID: 1, Name: "Maths"}))

	for i := 0; i < 5; i++ {
		f.service.NotifyChanged()
	}

	status, err := f.service.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.State.Pending)

	assert.Eventually(t, func() bool { return f.cloud.Saves() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, f.cloud.Saves(), "bursts of edits collapse into one push")
}

// lockedBuffer is a bytes.Buffer safe to share with timer goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSyncService_DebouncedPushFailureLogging(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		want    string
	}{
		{name: "quiet by default", verbose: false, want: ""},
		{name: "warns when verbose", verbose: true, want: "[WARN] sync: debounced push failed: save cloud snapshot: offline\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &lockedBuffer{}
			logger.SetOutput(out)
			logger.SetVerbose(tt.verbose)
			t.Cleanup(func() {
				logger.SetOutput(os.Stderr)
				logger.SetVerbose(false)
			})

			f := newSyncFixture(10 * time.Millisecond)
			f.cloud.SaveErr = errors.New("offline")
			f.service.NotifyChanged()

			assert.Eventually(t, func() bool {
				status, err := f.service.Status(context.Background())
				return err == nil && status.State.LastError != ""
			}, time.Second, 5*time.Millisecond)
			// The warning follows the state save.
			time.Sleep(20 * time.Millisecond)

			if tt.want == "" {
				assert.Empty(t, out.String())
				return
			}
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestSyncService_Flush(t *testing.T) {
	f := newSyncFixture(time.Hour)
	ctx := context.Background()

	require.NoError(t, f.service.Flush(ctx))
	assert.Zero(t, f.cloud.Saves(), "nothing pending")

	f.service.NotifyChanged()
	require.NoError(t, f.service.Flush(ctx))
	assert.Equal(t, 1, f.cloud.Saves())

	status, err := f.service.Status(ctx)
	require.NoError(t, err)
	assert.False(t, status.State.Pending)
}
