package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List upcoming assignment due dates",
	Long: `List ungraded assignments with a due date, soonest first.

Dates that could not be read are listed last. Use --all to include
assignments whose due date has passed.`,
	Args: cobra.NoArgs,
	RunE: runDue,
}

// Due flags.
var (
	dueLimit int
	dueAll   bool
	dueFrom  string
)

func init() {
	dueCmd.Flags().IntVarP(&dueLimit, "limit", "l", 0, "Maximum number of deadlines (0 = all)")
	dueCmd.Flags().BoolVarP(&dueAll, "all", "a", false, "Include past due dates")
	dueCmd.Flags().StringVar(&dueFrom, "from", "", "List deadlines on or after this date (default today)")
	rootCmd.AddCommand(dueCmd)
}

func runDue(cmd *cobra.Command, _ []string) error {
	if deadlineService == nil {
		return errors.New("deadline service not configured")
	}

	from, err := dueStart(time.Now())
	if err != nil {
		return err
	}

	deadlines, err := deadlineService.Upcoming(context.Background(), from, dueLimit)
	if err != nil {
		return fmt.Errorf("failed to list deadlines: %w", err)
	}
	if len(deadlines) == 0 {
		cmd.Println("No upcoming deadlines.")
		return nil
	}

	rows := make([][]string, 0, len(deadlines))
	for _, d := range deadlines {
		when := d.Assignment.DueDate
		if !d.Due.IsZero() {
			when = d.Due.Format("Mon Jan 2 2006")
		}
		rows = append(rows, []string{
			when,
			d.Assignment.Name,
			withPercent(d.Assignment.Weight),
			d.CalculatorName + " (#" + strconv.Itoa(d.CalculatorID) + ")",
		})
	}
	cmd.Println(renderTable([]string{"Due", "Assignment", "Weight", "Subject"}, rows))
	return nil
}

// dueStart returns the earliest date to list.
func dueStart(now time.Time) (time.Time, error) {
	if dueAll {
		return time.Time{}, nil
	}
	if dueFrom == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	}
	from, err := dateparse.ParseLocal(dueFrom)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: cannot read date %q", domain.ErrInvalidInput, dueFrom)
	}
	return from, nil
}
