package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/logger"
)

// startBackground runs the scheduler for the life of a long-running
// command. The returned func stops it and waits for in-flight runs.
func startBackground(ctx context.Context) func() {
	if scheduler == nil || !schedulerConfig().Enabled {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("scheduler stopped: %v", err)
		}
	}()

	return func() {
		if err := scheduler.Stop(); err != nil {
			logger.Warn("stopping scheduler: %v", err)
		}
		cancel()
		<-done
	}
}

// schedulerConfig reads the scheduler settings, or a disabled config
// before services are wired.
func schedulerConfig() domain.SchedulerConfig {
	if settingsService == nil {
		return domain.SchedulerConfig{}
	}
	return settingsService.GetSchedulerConfig()
}
