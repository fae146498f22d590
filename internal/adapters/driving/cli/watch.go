package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import syllabi dropped into a folder",
	Long: `Watch a folder and create a calculator for every new syllabus file.

The folder defaults to the watch.dir setting. Hidden files are ignored and
each file is imported once. Press Ctrl+C to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

// watchExisting imports files already in the folder before watching.
var watchExisting bool

func init() {
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "Import files already in the folder first")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if syllabusService == nil {
		return errors.New("syllabus service not configured")
	}

	dir := ""
	if len(args) > 0 {
		dir = args[0]
	} else if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		dir = settings.Watch.Dir
	}
	if dir == "" {
		return errors.New("no folder to watch: pass one or run 'gradebook settings watch-dir <dir>'")
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report := func(r watch.Result) {
		if r.Err != nil {
			cmd.PrintErrf("Skipped %s: %v\n", r.Path, r.Err)
			return
		}
		calc := r.Import.Calculator
		cmd.Printf("Imported %s as calculator #%d: %s (%d assignments)\n",
			r.Path, calc.ID, calc.Name, len(r.Import.Parsed.Assignments))
	}

	w := watch.New(dir, syllabusService)
	if watchExisting {
		if err := w.Scan(ctx, report); err != nil {
			return fmt.Errorf("scan %s: %w", dir, err)
		}
	}

	cmd.Printf("Watching %s for syllabi. Press Ctrl+C to stop.\n", dir)
	return w.Run(ctx, report)
}
