package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driven"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDefaultYear       = "parser.default_year"
	keySyncEnabled       = "sync.enabled"
	keySyncInterval      = "sync.interval"
	keySyncRetryInterval = "sync.retry_interval"
	keySyncDebounce      = "sync.debounce"
	keyCloudProvider     = "cloud.provider"
	keyCloudTokenFile    = "cloud.token_file"
	keyCloudClientID     = "cloud.client_id"
	keyCloudClientSecret = "cloud.client_secret"
	keyWatchDir          = "watch.dir"
	keyVerbose           = "logging.verbose"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Parser: domain.ParserSettings{
			DefaultYear: s.getInt(keyDefaultYear, defaults.Parser.DefaultYear),
		},
		Sync: domain.SyncSettings{
			Enabled:       s.getBool(keySyncEnabled, defaults.Sync.Enabled),
			Interval:      s.getDuration(keySyncInterval, defaults.Sync.Interval),
			RetryInterval: s.getDuration(keySyncRetryInterval, defaults.Sync.RetryInterval),
			Debounce:      s.getDuration(keySyncDebounce, defaults.Sync.Debounce),
		},
		Cloud: domain.CloudSettings{
			Provider:     s.getProvider(defaults.Cloud.Provider),
			TokenFile:    s.configStore.GetString(keyCloudTokenFile),
			ClientID:     s.configStore.GetString(keyCloudClientID),
			ClientSecret: s.configStore.GetString(keyCloudClientSecret),
		},
		Watch: domain.WatchSettings{
			Dir: s.configStore.GetString(keyWatchDir),
		},
		Verbose: s.getBool(keyVerbose, defaults.Verbose),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyDefaultYear, settings.Parser.DefaultYear},
		{keySyncEnabled, settings.Sync.Enabled},
		{keySyncInterval, settings.Sync.Interval.String()},
		{keySyncRetryInterval, settings.Sync.RetryInterval.String()},
		{keySyncDebounce, settings.Sync.Debounce.String()},
		{keyCloudProvider, settings.Cloud.Provider.String()},
		{keyCloudTokenFile, settings.Cloud.TokenFile},
		{keyCloudClientID, settings.Cloud.ClientID},
		{keyWatchDir, settings.Watch.Dir},
		{keyVerbose, settings.Verbose},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// An empty secret keeps whatever is already stored.
	if settings.Cloud.ClientSecret != "" {
		if err := s.configStore.Set(keyCloudClientSecret, settings.Cloud.ClientSecret); err != nil {
			return fmt.Errorf("save %s: %w", keyCloudClientSecret, err)
		}
	}

	return nil
}

// SetCloudProvider configures cloud sync credentials.
func (s *SettingsService) SetCloudProvider(
	provider domain.CloudProvider,
	tokenFile, clientID, clientSecret string,
) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid cloud provider: %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Cloud = domain.CloudSettings{
		Provider:     provider,
		TokenFile:    tokenFile,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}
	if provider != domain.CloudProviderNone && !settings.Cloud.IsConfigured() {
		return fmt.Errorf("%w: %s needs a token file and client ID", domain.ErrInvalidInput, provider)
	}
	if provider == domain.CloudProviderNone {
		settings.Cloud = domain.CloudSettings{Provider: provider}
		settings.Sync.Enabled = false
		if err := s.configStore.Delete(keyCloudClientSecret); err != nil {
			return fmt.Errorf("clear %s: %w", keyCloudClientSecret, err)
		}
	}

	return s.Save(settings)
}

// SetSyncEnabled turns background sync on or off.
func (s *SettingsService) SetSyncEnabled(enabled bool) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if enabled && !settings.Cloud.IsConfigured() {
		return fmt.Errorf("%w: configure a cloud provider before enabling sync", domain.ErrCloudUnavailable)
	}
	settings.Sync.Enabled = enabled
	return s.Save(settings)
}

// SetDefaultYear sets the year given to undated syllabus deadlines.
func (s *SettingsService) SetDefaultYear(year int) error {
	if year != 0 && (year < 1000 || year > 9999) {
		return fmt.Errorf("%w: year must have four digits", domain.ErrInvalidInput)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Parser.DefaultYear = year
	return s.Save(settings)
}

// SetWatchDir sets the folder watched for new syllabi.
func (s *SettingsService) SetWatchDir(dir string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Watch.Dir = dir
	return s.Save(settings)
}

// Validate checks that the stored settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Cloud.Provider.IsValid() {
		return fmt.Errorf("invalid cloud provider: %s", settings.Cloud.Provider)
	}
	if settings.Sync.Enabled && !settings.Cloud.IsConfigured() {
		return fmt.Errorf(
			"sync is enabled but cloud provider %q is not configured",
			settings.Cloud.Provider.Description(),
		)
	}
	if settings.Sync.Interval <= 0 {
		return fmt.Errorf("sync interval must be positive, got %s", settings.Sync.Interval)
	}
	if settings.Sync.Debounce < 0 {
		return fmt.Errorf("sync debounce must not be negative, got %s", settings.Sync.Debounce)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// GetSchedulerConfig returns the scheduler configuration.
// The cloud sync task follows the sync settings; other tasks read
// scheduler.<task>.enabled and scheduler.<task>.interval.
func (s *SettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	defaults := domain.DefaultSchedulerConfig()

	// Master switch
	if _, exists := s.configStore.Get("scheduler.enabled"); exists {
		defaults.Enabled = s.configStore.GetBool("scheduler.enabled")
	}

	settings, err := s.Get()
	if err == nil {
		syncCfg := defaults.TaskConfigs[domain.TaskIDCloudSync]
		syncCfg.Enabled = settings.Sync.Enabled && settings.Cloud.IsConfigured()
		if settings.Sync.Interval > 0 {
			syncCfg.Interval = settings.Sync.Interval
		}
		syncCfg.RetryInterval = settings.Sync.RetryInterval
		defaults.TaskConfigs[domain.TaskIDCloudSync] = syncCfg
	}

	// Map from task ID to config key (underscore version for TOML)
	taskKeys := map[string]string{
		domain.TaskIDHistoryPrune: "history_prune",
	}

	for taskID, configKey := range taskKeys {
		prefix := "scheduler." + configKey + "."

		taskCfg := defaults.TaskConfigs[taskID]

		if _, exists := s.configStore.Get(prefix + "enabled"); exists {
			taskCfg.Enabled = s.configStore.GetBool(prefix + "enabled")
		}

		// Duration string like "45m" or "24h"
		if interval := s.configStore.GetString(prefix + "interval"); interval != "" {
			if d, err := time.ParseDuration(interval); err == nil && d > 0 {
				taskCfg.Interval = d
			}
		}

		defaults.TaskConfigs[taskID] = taskCfg
	}

	return defaults
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getProvider(defaultVal domain.CloudProvider) domain.CloudProvider {
	val := s.configStore.GetString(keyCloudProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.CloudProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
