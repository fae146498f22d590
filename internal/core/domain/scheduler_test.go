package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSchedulerConfig(t *testing.T) {
	config := DefaultSchedulerConfig()

	assert.True(t, config.Enabled)
	assert.NotNil(t, config.TaskConfigs)
	assert.Len(t, config.TaskConfigs, 2)

	syncCfg := config.TaskConfigs[TaskIDCloudSync]
	assert.True(t, syncCfg.Enabled)
	assert.Equal(t, 15*time.Minute, syncCfg.Interval)
	assert.Equal(t, 2*time.Minute, syncCfg.RetryInterval)

	pruneCfg := config.TaskConfigs[TaskIDHistoryPrune]
	assert.True(t, pruneCfg.Enabled)
	assert.Equal(t, 24*time.Hour, pruneCfg.Interval)
}

func TestSchedulerConfig_GetTaskConfig(t *testing.T) {
	config := DefaultSchedulerConfig()

	syncCfg := config.GetTaskConfig(TaskIDCloudSync)
	assert.True(t, syncCfg.Enabled)

	unknownCfg := config.GetTaskConfig("unknown-task")
	assert.False(t, unknownCfg.Enabled)
	assert.Equal(t, time.Duration(0), unknownCfg.Interval)

	var empty SchedulerConfig
	assert.Equal(t, TaskConfig{}, empty.GetTaskConfig(TaskIDCloudSync))
}

func TestTaskConfig_NextRunAfter(t *testing.T) {
	end := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		cfg      TaskConfig
		failed   bool
		expected time.Time
	}{
		{
			name:     "success uses interval",
			cfg:      TaskConfig{Interval: time.Hour, RetryInterval: time.Minute},
			failed:   false,
			expected: end.Add(time.Hour),
		},
		{
			name:     "failure uses retry interval",
			cfg:      TaskConfig{Interval: time.Hour, RetryInterval: time.Minute},
			failed:   true,
			expected: end.Add(time.Minute),
		},
		{
			name:     "failure without retry interval uses interval",
			cfg:      TaskConfig{Interval: time.Hour},
			failed:   true,
			expected: end.Add(time.Hour),
		},
		{
			name:     "retry longer than interval is ignored",
			cfg:      TaskConfig{Interval: time.Minute, RetryInterval: time.Hour},
			failed:   true,
			expected: end.Add(time.Minute),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.NextRunAfter(end, tt.failed))
		})
	}
}

func TestScheduledTask_Due(t *testing.T) {
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task ScheduledTask
		want bool
	}{
		{"never scheduled", ScheduledTask{Enabled: true}, true},
		{"past", ScheduledTask{Enabled: true, NextRun: now.Add(-time.Second)}, true},
		{"exactly now", ScheduledTask{Enabled: true, NextRun: now}, true},
		{"future", ScheduledTask{Enabled: true, NextRun: now.Add(time.Second)}, false},
		{"disabled", ScheduledTask{NextRun: now.Add(-time.Hour)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.Due(now))
		})
	}
}
