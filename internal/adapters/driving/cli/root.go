package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gradebook-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// verbose is the global --verbose flag.
var verbose bool

// Services used by commands. Set by main before Execute.
var (
	calculatorService driving.CalculatorService
	syllabusService   driving.SyllabusService
	gpaService        driving.GPAService
	deadlineService   driving.DeadlineService
	syncService       driving.SyncService
	settingsService   driving.SettingsService
	scheduler         driving.Scheduler
)

var rootCmd = &cobra.Command{
	Use:   "gradebook",
	Short: "Track grades and import them from course syllabi",
	Long: `Gradebook keeps a grade calculator per subject.

Paste or import a course syllabus and the grading breakdown becomes a
calculator with one row per assignment. Enter grades as you get them to
see your current mark, what you need on the rest to reach a target, and
your overall GPA.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output to stderr")
}

// Services holds the driving ports the commands call into.
type Services struct {
	Calculator driving.CalculatorService
	Syllabus   driving.SyllabusService
	GPA        driving.GPAService
	Deadline   driving.DeadlineService
	Sync       driving.SyncService
	Settings   driving.SettingsService
	Scheduler  driving.Scheduler
}

// SetServices wires the services used by every command.
func SetServices(s Services) {
	calculatorService = s.Calculator
	syllabusService = s.Syllabus
	gpaService = s.GPA
	deadlineService = s.Deadline
	syncService = s.Sync
	settingsService = s.Settings
	scheduler = s.Scheduler
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
