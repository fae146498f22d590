package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure cloud sync, the syllabus parser and the watch folder.

Settings are stored in ~/.gradebook/config.toml. Any key can be
overridden with an environment variable such as GRADEBOOK_SYNC__ENABLED
or a .env file in the working directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsCloudCmd = &cobra.Command{
	Use:   "cloud",
	Short: "Configure the cloud provider",
	Long: `Choose where calculators are synced.

Without flags an interactive prompt asks for each value. Google Drive
needs an OAuth token file (JSON with access and refresh tokens) and the
client ID it was issued to.`,
	Args: cobra.NoArgs,
	RunE: runSettingsCloud,
}

var settingsSyncCmd = &cobra.Command{
	Use:       "sync [on|off]",
	Short:     "Turn background sync on or off",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runSettingsSync,
}

var settingsYearCmd = &cobra.Command{
	Use:   "year [year]",
	Short: "Set the year for syllabus dates without one",
	Long:  `Set the year appended to due dates written without a year. Use 0 for the current year.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsYear,
}

var settingsWatchDirCmd = &cobra.Command{
	Use:   "watch-dir [dir]",
	Short: "Set the folder watched for new syllabi",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsWatchDir,
}

// Cloud flags.
var (
	cloudProvider     string
	cloudTokenFile    string
	cloudClientID     string
	cloudClientSecret string
)

func init() {
	settingsCloudCmd.Flags().StringVar(&cloudProvider, "provider", "", "Provider: none or gdrive")
	settingsCloudCmd.Flags().StringVar(&cloudTokenFile, "token-file", "", "Path to the OAuth token file")
	settingsCloudCmd.Flags().StringVar(&cloudClientID, "client-id", "", "OAuth client ID")
	settingsCloudCmd.Flags().StringVar(&cloudClientSecret, "client-secret", "", "OAuth client secret")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsCloudCmd)
	settingsCmd.AddCommand(settingsSyncCmd)
	settingsCmd.AddCommand(settingsYearCmd)
	settingsCmd.AddCommand(settingsWatchDirCmd)
	rootCmd.AddCommand(settingsCmd)
}

func requireSettingsService() error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Parser]")
	if settings.Parser.DefaultYear == 0 {
		cmd.Println("  Default year: current year")
	} else {
		cmd.Printf("  Default year: %d\n", settings.Parser.DefaultYear)
	}
	cmd.Println()

	cmd.Println("[Cloud]")
	cmd.Printf("  Provider: %s\n", settings.Cloud.Provider.Description())
	if settings.Cloud.Provider != domain.CloudProviderNone {
		cmd.Printf("  Token file: %s\n", orDash(settings.Cloud.TokenFile))
		cmd.Printf("  Client ID: %s\n", orDash(settings.Cloud.ClientID))
		if settings.Cloud.ClientSecret != "" {
			cmd.Printf("  Client secret: %s\n", maskSecret(settings.Cloud.ClientSecret))
		} else {
			cmd.Println("  Client secret: (not set)")
		}
	}
	status := "configured"
	if !settings.Cloud.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Sync]")
	if settings.Sync.Enabled {
		cmd.Println("  Background sync: on")
	} else {
		cmd.Println("  Background sync: off")
	}
	cmd.Printf("  Interval: %s\n", settings.Sync.Interval)
	cmd.Printf("  Retry interval: %s\n", settings.Sync.RetryInterval)
	cmd.Printf("  Debounce: %s\n", settings.Sync.Debounce)
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Folder: %s\n", orDash(settings.Watch.Dir))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'gradebook settings cloud' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsCloud(cmd *cobra.Command, _ []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("provider") {
		return configureCloudProvider(cmd, bufio.NewReader(cmd.InOrStdin()))
	}

	provider := domain.CloudProvider(strings.ToLower(strings.TrimSpace(cloudProvider)))
	if err := settingsService.SetCloudProvider(provider, cloudTokenFile, cloudClientID, cloudClientSecret); err != nil {
		return fmt.Errorf("failed to configure cloud provider: %w", err)
	}
	cmd.Printf("Cloud provider set to: %s\n", provider.Description())
	return nil
}

func configureCloudProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select Cloud Provider")
	providers := domain.AllCloudProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	selected := providers[idx-1]

	var tokenFile, clientID, clientSecret string
	if selected != domain.CloudProviderNone {
		cmd.Print("Token file path: ")
		tokenFile = readLine(reader)
		cmd.Print("OAuth client ID: ")
		clientID = readLine(reader)
		cmd.Print("OAuth client secret (optional): ")
		clientSecret = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
		if tokenFile == "" || clientID == "" {
			return errors.New("token file and client ID are required for this provider")
		}
	}

	if err := settingsService.SetCloudProvider(selected, tokenFile, clientID, clientSecret); err != nil {
		return fmt.Errorf("failed to configure cloud provider: %w", err)
	}
	cmd.Printf("Cloud provider configured: %s\n", selected.Description())
	return nil
}

func runSettingsSync(cmd *cobra.Command, args []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	var enabled bool
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes":
		enabled = true
	case "off", "false", "no":
		enabled = false
	default:
		return fmt.Errorf("%w: expected on or off, got %q", domain.ErrInvalidInput, args[0])
	}

	if err := settingsService.SetSyncEnabled(enabled); err != nil {
		return fmt.Errorf("failed to set background sync: %w", syncHint(err))
	}
	if enabled {
		cmd.Println("Background sync turned on.")
	} else {
		cmd.Println("Background sync turned off.")
	}
	return nil
}

func runSettingsYear(cmd *cobra.Command, args []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	year, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("%w: year must be a number, got %q", domain.ErrInvalidInput, args[0])
	}
	if err := settingsService.SetDefaultYear(year); err != nil {
		return fmt.Errorf("failed to set default year: %w", err)
	}
	if year == 0 {
		cmd.Println("Dates without a year will use the current year.")
	} else {
		cmd.Printf("Dates without a year will use %d.\n", year)
	}
	return nil
}

func runSettingsWatchDir(cmd *cobra.Command, args []string) error {
	if err := requireSettingsService(); err != nil {
		return err
	}

	if err := settingsService.SetWatchDir(args[0]); err != nil {
		return fmt.Errorf("failed to set watch folder: %w", err)
	}
	cmd.Printf("Watch folder set to: %s\n", args[0])
	return nil
}

// readLine returns one trimmed line of input, or "" at EOF.
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// parseChoice reads a 1-based menu choice, falling back to def for
// anything outside 1..n.
func parseChoice(input string, n, def int) int {
	if val, err := strconv.Atoi(input); err == nil && val >= 1 && val <= n {
		return val
	}
	return def
}

// readPassword reads without echo when in is a terminal.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

// maskSecret keeps the ends of a secret so the user can tell which one
// is stored. Short secrets are hidden completely.
func maskSecret(secret string) string {
	const shown = 4
	if len(secret) <= 2*shown {
		return "****"
	}
	return secret[:shown] + "..." + secret[len(secret)-shown:]
}
