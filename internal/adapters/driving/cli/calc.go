package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

var calcCmd = &cobra.Command{
	Use:     "calc",
	Aliases: []string{"calculator"},
	Short:   "Manage grade calculators",
	Long: `List, create and edit grade calculators.

Each calculator holds the assignments of one subject. Rows are addressed
by their number as shown in 'calc show' or by their ID.`,
}

var calcListCmd = &cobra.Command{
	Use:   "list",
	Short: "List calculators, newest first",
	Args:  cobra.NoArgs,
	RunE:  runCalcList,
}

var calcShowCmd = &cobra.Command{
	Use:   "show [calc-id]",
	Short: "Show a calculator and its grades",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalcShow,
}

var calcCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an empty calculator",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCalcCreate,
}

var calcRenameCmd = &cobra.Command{
	Use:   "rename [calc-id] [name]",
	Short: "Rename a calculator",
	Args:  cobra.ExactArgs(2),
	RunE:  runCalcRename,
}

var calcTargetCmd = &cobra.Command{
	Use:   "target [calc-id] [grade]",
	Short: "Set the desired final grade",
	Long:  `Set the desired final percentage. Omit the grade to clear it.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCalcTarget,
}

var calcDeleteCmd = &cobra.Command{
	Use:   "delete [calc-id]",
	Short: "Delete a calculator",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalcDelete,
}

var calcAddCmd = &cobra.Command{
	Use:   "add [calc-id] [name]",
	Short: "Add an assignment row",
	Args:  cobra.ExactArgs(2),
	RunE:  runCalcAdd,
}

var calcSetCmd = &cobra.Command{
	Use:   "set [calc-id] [row]",
	Short: "Change an assignment row",
	Long: `Change the name, weight, grade or due date of an assignment row.

Grades may be percentages (88) or fractions (44/50).`,
	Args: cobra.ExactArgs(2),
	RunE: runCalcSet,
}

var calcRemoveCmd = &cobra.Command{
	Use:   "remove [calc-id] [row]",
	Short: "Remove an assignment row",
	Args:  cobra.ExactArgs(2),
	RunE:  runCalcRemove,
}

var calcMoveCmd = &cobra.Command{
	Use:   "move [calc-id] [row] [position]",
	Short: "Move an assignment row",
	Args:  cobra.ExactArgs(3),
	RunE:  runCalcMove,
}

// Row flags shared by add and set.
var (
	rowName   string
	rowWeight string
	rowGrade  string
	rowDue    string
)

func init() {
	for _, c := range []*cobra.Command{calcAddCmd, calcSetCmd} {
		c.Flags().StringVarP(&rowWeight, "weight", "w", "", "Weight as a percentage of the final grade")
		c.Flags().StringVarP(&rowGrade, "grade", "g", "", "Grade received (88 or 44/50)")
		c.Flags().StringVarP(&rowDue, "due", "d", "", "Due date (e.g. Oct 12 2025)")
	}
	calcSetCmd.Flags().StringVarP(&rowName, "name", "n", "", "Assignment name")

	calcCmd.AddCommand(calcListCmd)
	calcCmd.AddCommand(calcShowCmd)
	calcCmd.AddCommand(calcCreateCmd)
	calcCmd.AddCommand(calcRenameCmd)
	calcCmd.AddCommand(calcTargetCmd)
	calcCmd.AddCommand(calcDeleteCmd)
	calcCmd.AddCommand(calcAddCmd)
	calcCmd.AddCommand(calcSetCmd)
	calcCmd.AddCommand(calcRemoveCmd)
	calcCmd.AddCommand(calcMoveCmd)
	rootCmd.AddCommand(calcCmd)
}

func requireCalculatorService() error {
	if calculatorService == nil {
		return errors.New("calculator service not configured")
	}
	return nil
}

func runCalcList(cmd *cobra.Command, _ []string) error {
	if err := requireCalculatorService(); err != nil {
		return err
	}

	ctx := context.Background()
	calcs, err := calculatorService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list calculators: %w", err)
	}

	if len(calcs) == 0 {
		cmd.Println("No calculators yet.")
		cmd.Println("Create one with 'gradebook calc create' or import a syllabus with 'gradebook import'.")
		return nil
	}

	rows := make([][]string, 0, len(calcs))
	for i := range calcs {
		current := domain.CurrentGrade(calcs[i].Assignments)
		rows = append(rows, []string{
			strconv.Itoa(calcs[i].ID),
			calcs[i].Name,
			strconv.Itoa(len(calcs[i].Assignments)),
			formatPercent(current),
			orDash(calcs[i].DesiredGrade),
		})
	}
	cmd.Println(renderTable([]string{"ID", "Subject", "Rows", "Current", "Target"}, rows))
	cmd.Printf("Total: %d calculators\n", len(calcs))
	return nil
}

func runCalcShow(cmd *cobra.Command, args []string) error {
	if err := requireCalculatorService(); err != nil {
		return err
	}
	id, err := parseCalculatorID(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	calc, err := calculatorService.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get calculator: %w", err)
	}
	summary, err := calculatorService.Summary(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to compute grades: %w", err)
	}

	printCalculator(cmd, calc, summary)
	return nil
}

func printCalculator(cmd *cobra.Command, calc *domain.Calculator, summary *domain.GradeSummary) {
	cmd.Printf("%s (#%d)\n", calc.Name, calc.ID)
	cmd.Println(renderTable(
		[]string{"#", "Assignment", "Weight", "Grade", "Due"},
		assignmentRows(calc.Assignments),
	))
	if summary == nil {
		return
	}
	cmd.Printf("Current grade: %s (%s)\n", formatPercent(summary.Current), summary.Letter.Letter)
	cmd.Printf("Graded weight: %.0f%%, remaining: %.0f%%\n", summary.CompletedWeight, summary.RemainingWeight)
	if calc.DesiredGrade != "" {
		cmd.Printf("Target: %s%%, needed on remaining work: %s\n", calc.DesiredGrade, formatRequired(summary.Required))
	}
}

func runCalcCreate(cmd *cobra.Command, args []string) error {
	if err := requireCalculatorService(); err != nil {
		return err
	}
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	calc, err := calculatorService.Create(context.Background(), name, nil)
	if err != nil {
		return fmt.Errorf("failed to create calculator: %w", err)
	}
	cmd.Printf("Created calculator #%d: %s\n", calc.ID, calc.Name)
	return nil
}

func runCalcRename(cmd *cobra.Command, args []string) error {
	if err := requireCalculatorService(); err != nil {
		return err
	}
	id, err := parseCalculatorID(args[0])
	if err != nil {
		return err
	}

	if err := calculatorService.Rename(context.Background(), id, args[1]); err != nil {
		return fmt.Errorf("failed to rename calculator: %w", err)
	}
	cmd.Printf("Renamed calculator #%d to %s\n", id, args[1])
	return nil
}

func runCalcTarget(cmd *cobra.Command, args []string) error {
	if err := requireCalculatorService(); err != nil {
		return err
	}
	id, err := parseCalculatorID(args[0])
	if err != nil {
		return err
	}
	desired := ""
	if len(args) > 1 {
		desired = args[1]
	}

	ctx := context.Background()
	if err := calculatorService.SetDesiredGrade(ctx, id, desired); err != nil {
		return fmt.Errorf("failed to set target: %w", err)
	}
	if desired == "" {
		cmd.Printf("Cleared target for calculator #%d\n", id)
		return nil
	}

	summary, err := calculatorService.Summary(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to compute grades: %w", err)
	}
	cmd.Printf("Target set to %s%%. Needed on remaining work: %s\n", desired, formatRequired(summary.Required))
	return nil
}

func runCalcDelete(cmd *cobra.Command, args []string) error {
	if err := requireCalculatorService(); err != nil {
		return err
	}
	id, err := parseCalculatorID(args[0])
	if err != nil {
		return err
	}

	if err := calculatorService.Delete(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete calculator: %w", err)
	}
	cmd.Printf("Deleted calculator #%d\n", id)
	return nil
}

func runCalcAdd(cmd *cobra.Command, args []string) error {
	if err := requireCalculatorService(); err != nil {
		return err
	}
	id, err := parseCalculatorID(args[0])
	if err != nil {
		return err
	}

	row, err := calculatorService.AddAssignment(context.Background(), id, domain.Assignment{
		Name:    args[1],
		Weight:  rowWeight,
		Grade:   rowGrade,
		DueDate: rowDue,
	})
	if err != nil {
		return fmt.Errorf("failed to add assignment: %w", err)
	}
	cmd.Printf("Added %s to calculator #%d (id %s)\n", row.Name, id, row.ID)
	return nil
}

func runCalcSet(cmd *cobra.Command, args []string) error {
	if err := requireCalculatorService(); err != nil {
		return err
	}
	id, err := parseCalculatorID(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	calc, err := calculatorService.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get calculator: %w", err)
	}
	idx, err := resolveRow(calc, args[1])
	if err != nil {
		return err
	}

	row := calc.Assignments[idx]
	flags := cmd.Flags()
	changed := false
	if flags.Changed("name") {
		row.Name, changed = rowName, true
	}
	if flags.Changed("weight") {
		row.Weight, changed = rowWeight, true
	}
	if flags.Changed("grade") {
		row.Grade, changed = rowGrade, true
	}
	if flags.Changed("due") {
		row.DueDate, changed = rowDue, true
	}
	if !changed {
		return errors.New("nothing to change: pass --name, --weight, --grade or --due")
	}

	if err := calculatorService.UpdateAssignment(ctx, id, row); err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}

	summary, err := calculatorService.Summary(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to compute grades: %w", err)
	}
	cmd.Printf("Updated row %d. Current grade: %s\n", idx+1, formatPercent(summary.Current))
	return nil
}

func runCalcRemove(cmd *cobra.Command, args []string) error {
	if err := requireCalculatorService(); err != nil {
		return err
	}
	id, err := parseCalculatorID(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	calc, err := calculatorService.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get calculator: %w", err)
	}
	idx, err := resolveRow(calc, args[1])
	if err != nil {
		return err
	}

	row := calc.Assignments[idx]
	if err := calculatorService.RemoveAssignment(ctx, id, row.ID); err != nil {
		return fmt.Errorf("failed to remove assignment: %w", err)
	}
	cmd.Printf("Removed row %d (%s)\n", idx+1, orDash(row.Name))
	return nil
}

func runCalcMove(cmd *cobra.Command, args []string) error {
	if err := requireCalculatorService(); err != nil {
		return err
	}
	id, err := parseCalculatorID(args[0])
	if err != nil {
		return err
	}
	to, err := strconv.Atoi(args[2])
	if err != nil || to < 1 {
		return fmt.Errorf("%w: position must be a row number, got %q", domain.ErrInvalidInput, args[2])
	}

	ctx := context.Background()
	calc, err := calculatorService.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get calculator: %w", err)
	}
	idx, err := resolveRow(calc, args[1])
	if err != nil {
		return err
	}

	if err := calculatorService.MoveAssignment(ctx, id, calc.Assignments[idx].ID, to-1); err != nil {
		return fmt.Errorf("failed to move assignment: %w", err)
	}
	cmd.Printf("Moved row %d to position %d\n", idx+1, to)
	return nil
}
