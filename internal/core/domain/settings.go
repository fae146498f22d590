package domain

import "time"

const unknownDescription = "Unknown"

// CloudProvider identifies where snapshots are synced.
type CloudProvider string

// Available cloud providers.
const (
	// CloudProviderNone keeps everything on this device.
	CloudProviderNone CloudProvider = "none"

	// CloudProviderGoogleDrive stores the snapshot in the Drive app data folder.
	CloudProviderGoogleDrive CloudProvider = "gdrive"
)

// IsValid returns true if the provider is recognised.
func (p CloudProvider) IsValid() bool {
	switch p {
	case CloudProviderNone, CloudProviderGoogleDrive:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p CloudProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p CloudProvider) Description() string {
	switch p {
	case CloudProviderNone:
		return "None (this device only)"
	case CloudProviderGoogleDrive:
		return "Google Drive (app data folder)"
	default:
		return unknownDescription
	}
}

// AllCloudProviders returns every selectable provider.
func AllCloudProviders() []CloudProvider {
	return []CloudProvider{CloudProviderNone, CloudProviderGoogleDrive}
}

// ParserSettings holds syllabus parser configuration.
type ParserSettings struct {
	// DefaultYear is appended to due dates written without a year.
	// Zero means the current calendar year.
	DefaultYear int
}

// SyncSettings holds cloud sync behaviour.
type SyncSettings struct {
	// Enabled turns background sync on.
	Enabled bool

	// Interval is how often the scheduler syncs.
	Interval time.Duration

	// RetryInterval is how soon a failed sync is retried.
	RetryInterval time.Duration

	// Debounce is how long local edits settle before a push.
	Debounce time.Duration
}

// CloudSettings holds cloud provider configuration.
type CloudSettings struct {
	// Provider selects the cloud store.
	Provider CloudProvider

	// TokenFile is the path to a stored OAuth token (JSON).
	TokenFile string

	// ClientID and ClientSecret identify the OAuth client used to refresh the token.
	ClientID     string
	ClientSecret string
}

// IsConfigured returns true if the provider has what it needs to connect.
func (c CloudSettings) IsConfigured() bool {
	switch c.Provider {
	case CloudProviderGoogleDrive:
		return c.TokenFile != "" && c.ClientID != ""
	default:
		return false
	}
}

// WatchSettings holds the syllabus folder watcher configuration.
type WatchSettings struct {
	// Dir is the folder scanned for new syllabus files.
	Dir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Parser ParserSettings
	Sync   SyncSettings
	Cloud  CloudSettings
	Watch  WatchSettings

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultAppSettings returns settings with sensible defaults.
// Cloud sync is left unconfigured; the user points it at a token file.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Sync: SyncSettings{
			Enabled:       false,
			Interval:      15 * time.Minute,
			RetryInterval: 2 * time.Minute,
			Debounce:      400 * time.Millisecond,
		},
		Cloud: CloudSettings{
			Provider: CloudProviderNone,
		},
	}
}
