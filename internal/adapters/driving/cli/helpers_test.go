package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/services"
	"github.com/custodia-labs/gradebook-cli/internal/extractors"
	"github.com/custodia-labs/gradebook-cli/internal/syllabus"
)

const testSyllabus = `subject: Organic Chemistry
Lab report 15%
Final examination 40% due Dec 12
`

// testEnv holds the stores behind the services wired for a test.
type testEnv struct {
	calcs  *memory.CalculatorStore
	scales *memory.GradeScaleStore
	cloud  *memory.CloudStore
	config *memory.ConfigStore
}

// setupTestServices wires real services over in-memory stores and
// restores the previous services when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		calcs:  memory.NewCalculatorStore(),
		scales: memory.NewGradeScaleStore(),
		cloud:  memory.NewCloudStore(),
		config: memory.NewConfigStore(),
	}

	calc := services.NewCalculatorService(env.calcs, env.scales)
	gpa := services.NewGPAService(env.calcs, env.scales)
	sync := services.NewSyncService(env.calcs, env.scales, memory.NewSyncStateStore(), env.cloud, time.Hour)
	parser := syllabus.New(syllabus.WithDefaultYear(2025))

	previous := Services{
		Calculator: calculatorService,
		Syllabus:   syllabusService,
		GPA:        gpaService,
		Deadline:   deadlineService,
		Sync:       syncService,
		Settings:   settingsService,
		Scheduler:  scheduler,
	}
	SetServices(Services{
		Calculator: calc,
		Syllabus:   services.NewSyllabusService(parser, extractors.NewDefaultRegistry(), calc),
		GPA:        gpa,
		Deadline:   services.NewDeadlineService(env.calcs),
		Sync:       sync,
		Settings:   services.NewSettingsService(env.config),
	})
	t.Cleanup(func() { SetServices(previous) })

	return env
}

// clearServices unsets every service for the duration of a test.
func clearServices(t *testing.T) {
	t.Helper()
	previous := Services{
		Calculator: calculatorService,
		Syllabus:   syllabusService,
		GPA:        gpaService,
		Deadline:   deadlineService,
		Sync:       syncService,
		Settings:   settingsService,
		Scheduler:  scheduler,
	}
	SetServices(Services{})
	t.Cleanup(func() { SetServices(previous) })
}

// executeCommand runs the root command with args and stdin, returning
// combined output. Flags are reset first so values do not leak between runs.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	var in io.Reader = strings.NewReader(stdin)
	rootCmd.SetIn(in)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// createCalculator stores a calculator through the wired service.
func createCalculator(t *testing.T, name string, rows ...domain.Assignment) *domain.Calculator {
	t.Helper()
	calc, err := calculatorService.Create(t.Context(), name, rows)
	require.NoError(t, err)
	return calc
}
