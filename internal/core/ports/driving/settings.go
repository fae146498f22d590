package driving

import "github.com/custodia-labs/gradebook-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetCloudProvider configures cloud sync credentials.
	SetCloudProvider(provider domain.CloudProvider, tokenFile, clientID, clientSecret string) error

	// SetSyncEnabled turns background sync on or off.
	SetSyncEnabled(enabled bool) error

	// SetDefaultYear sets the year given to undated syllabus deadlines.
	// Zero means the current year.
	SetDefaultYear(year int) error

	// SetWatchDir sets the folder watched for new syllabi.
	SetWatchDir(dir string) error

	// Validate checks the stored settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// GetSchedulerConfig derives the scheduler configuration.
	GetSchedulerConfig() domain.SchedulerConfig
}
