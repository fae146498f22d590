package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise calculators with the cloud",
	Long: `Merges the cloud copy of your calculators into this device, then
uploads the result. Calculators that exist only here, or that differ from
their cloud copy, are kept under a new ID.

Configure a provider first with 'gradebook settings cloud'.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Merge the cloud copy into this device",
	Args:  cobra.NoArgs,
	RunE:  runSyncPull,
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload this device's calculators",
	Args:  cobra.NoArgs,
	RunE:  runSyncPush,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cloud sync status",
	Args:  cobra.NoArgs,
	RunE:  runSyncStatus,
}

func init() {
	syncCmd.AddCommand(syncPullCmd)
	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncStatusCmd)
	rootCmd.AddCommand(syncCmd)
}

func requireSyncService() error {
	if syncService == nil {
		return errors.New("sync service not configured")
	}
	return nil
}

func runSync(cmd *cobra.Command, _ []string) error {
	if err := requireSyncService(); err != nil {
		return err
	}

	cmd.Println("Synchronising calculators...")
	report, err := syncService.Sync(context.Background())
	if err != nil {
		return fmt.Errorf("sync failed: %w", syncHint(err))
	}
	printMergeReport(cmd, report)
	cmd.Println("Sync complete.")
	return nil
}

func runSyncPull(cmd *cobra.Command, _ []string) error {
	if err := requireSyncService(); err != nil {
		return err
	}

	report, err := syncService.Pull(context.Background())
	if err != nil {
		return fmt.Errorf("pull failed: %w", syncHint(err))
	}
	printMergeReport(cmd, report)
	return nil
}

func runSyncPush(cmd *cobra.Command, _ []string) error {
	if err := requireSyncService(); err != nil {
		return err
	}

	if err := syncService.Push(context.Background()); err != nil {
		return fmt.Errorf("push failed: %w", syncHint(err))
	}
	cmd.Println("Uploaded calculators to the cloud.")
	return nil
}

func runSyncStatus(cmd *cobra.Command, _ []string) error {
	if err := requireSyncService(); err != nil {
		return err
	}

	status, err := syncService.Status(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get sync status: %w", err)
	}

	provider := status.Provider
	if provider == "" {
		provider = "none (this device only)"
	}
	cmd.Printf("Provider: %s\n", provider)
	cmd.Printf("Last pull: %s\n", formatWhen(status.State.LastPull))
	cmd.Printf("Last push: %s\n", formatWhen(status.State.LastPush))
	if status.Running {
		cmd.Println("A sync is running now.")
	}
	if status.State.Pending {
		cmd.Println("Local changes are waiting to be uploaded.")
	}
	if status.State.LastError != "" {
		cmd.Printf("Last error: %s\n", status.State.LastError)
	}
	return nil
}

func printMergeReport(cmd *cobra.Command, report *domain.MergeReport) {
	if report == nil {
		return
	}
	cmd.Printf("Kept %d cloud calculators, added %d from this device.\n", report.Kept, report.Appended)
	if report.ScaleReplaced {
		cmd.Println("Grade scale updated from the cloud.")
	}
}

// syncHint adds a next step to errors the user can fix.
func syncHint(err error) error {
	switch {
	case errors.Is(err, domain.ErrCloudUnavailable):
		return fmt.Errorf("%w (run 'gradebook settings cloud' to configure a provider)", err)
	case errors.Is(err, domain.ErrAuthRequired), errors.Is(err, domain.ErrAuthExpired):
		return fmt.Errorf("%w (check cloud.token_file)", err)
	default:
		return err
	}
}

func formatWhen(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
