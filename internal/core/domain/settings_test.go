package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCloudProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider CloudProvider
		expected bool
	}{
		{"none is valid", CloudProviderNone, true},
		{"gdrive is valid", CloudProviderGoogleDrive, true},
		{"empty is invalid", CloudProvider(""), false},
		{"dropbox is invalid", CloudProvider("dropbox"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

func TestCloudProvider_Description(t *testing.T) {
	for _, p := range AllCloudProviders() {
		assert.NotEqual(t, unknownDescription, p.Description(), p.String())
	}
	assert.Equal(t, unknownDescription, CloudProvider("x").Description())
}

func TestCloudSettings_IsConfigured(t *testing.T) {
	assert.False(t, CloudSettings{Provider: CloudProviderNone}.IsConfigured())
	assert.False(t, CloudSettings{Provider: CloudProviderGoogleDrive}.IsConfigured())
	assert.False(t, CloudSettings{Provider: CloudProviderGoogleDrive, TokenFile: "t.json"}.IsConfigured())
	assert.True(t, CloudSettings{
		Provider:  CloudProviderGoogleDrive,
		TokenFile: "t.json",
		ClientID:  "client",
	}.IsConfigured())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.False(t, s.Sync.Enabled)
	assert.Equal(t, 400*time.Millisecond, s.Sync.Debounce)
	assert.Equal(t, 15*time.Minute, s.Sync.Interval)
	assert.Equal(t, CloudProviderNone, s.Cloud.Provider)
	assert.Zero(t, s.Parser.DefaultYear)
}
