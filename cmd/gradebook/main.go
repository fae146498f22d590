// Command gradebook tracks grades per subject and builds grade
// calculators from course syllabi.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driven/cloud/gdrive"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gradebook-cli/internal/core/services"
	"github.com/custodia-labs/gradebook-cli/internal/extractors"
	"github.com/custodia-labs/gradebook-cli/internal/logger"
	"github.com/custodia-labs/gradebook-cli/internal/syllabus"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file in the working directory may supply GRADEBOOK_ overrides.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env: %w", err)
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	if settings.Verbose {
		logger.SetVerbose(true)
	}

	store, err := sqlite.NewStore(configStore.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	calcs := store.CalculatorStore()
	scales := store.GradeScaleStore()

	ctx := context.Background()

	var cloud driven.CloudStore
	if settings.Cloud.IsConfigured() {
		drive, err := gdrive.New(ctx, settings.Cloud)
		if err != nil {
			// Calculators stay local until the cloud settings are fixed.
			logger.Warn("cloud sync disabled: %v", err)
		} else {
			cloud = drive
		}
	}

	syncService := services.NewSyncService(calcs, scales, store.SyncStateStore(), cloud, settings.Sync.Debounce)
	defer func() {
		if err := syncService.Flush(ctx); err != nil {
			logger.Debug("final sync: %v", err)
		}
	}()

	calculatorService := services.NewCalculatorService(calcs, scales)
	calculatorService.SetNotifier(syncService)
	gpaService := services.NewGPAService(calcs, scales)
	gpaService.SetNotifier(syncService)

	var parserOpts []syllabus.Option
	if settings.Parser.DefaultYear > 0 {
		parserOpts = append(parserOpts, syllabus.WithDefaultYear(settings.Parser.DefaultYear))
	}
	syllabusService := services.NewSyllabusService(
		syllabus.New(parserOpts...),
		extractors.NewDefaultRegistry(),
		calculatorService,
	)

	var syncer driving.SyncService
	if settings.Sync.Enabled && cloud != nil {
		syncer = syncService
	}
	scheduler := services.NewScheduler(settingsService.GetSchedulerConfig(), store.SchedulerStore(), syncer)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Calculator: calculatorService,
		Syllabus:   syllabusService,
		GPA:        gpaService,
		Deadline:   services.NewDeadlineService(calcs),
		Sync:       syncService,
		Settings:   settingsService,
		Scheduler:  scheduler,
	})

	return cli.Execute()
}
