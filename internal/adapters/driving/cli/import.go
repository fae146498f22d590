package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Create a calculator from a syllabus",
	Long: `Parse a syllabus and create a calculator from its grading breakdown.

Reads the file if given, otherwise syllabus text piped on stdin. The
calculator is named after the subject found in the text, falling back to
the document title or "Subject N". Use --dry-run to preview.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

// Import flags.
var (
	importName   string
	importDryRun bool
)

func init() {
	importCmd.Flags().StringVarP(&importName, "name", "n", "", "Calculator name (overrides the parsed subject)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without saving")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if syllabusService == nil {
		return errors.New("syllabus service not configured")
	}

	res, err := importInput(cmd, args, driving.ImportOptions{Name: importName, DryRun: importDryRun})
	if err != nil {
		return fmt.Errorf("failed to import syllabus: %w", err)
	}

	printImportResult(cmd, res)
	return nil
}

func printImportResult(cmd *cobra.Command, res *driving.ImportResult) {
	if res.Calculator == nil {
		cmd.Printf("Dry run: %s\n", res.Source)
		cmd.Printf("Subject: %s\n", orDash(res.Parsed.Name))
		rows := make([][]string, 0, len(res.Parsed.Assignments))
		for i, a := range res.Parsed.Assignments {
			rows = append(rows, []string{strconv.Itoa(i + 1), a.Name, withPercent(a.Weight), orDash(a.DueDate)})
		}
		if len(rows) > 0 {
			cmd.Println(renderTable([]string{"#", "Assignment", "Weight", "Due"}, rows))
		}
		cmd.Printf("%d assignments found. Nothing was saved.\n", len(res.Parsed.Assignments))
		return
	}

	calc := res.Calculator
	cmd.Printf("Created calculator #%d: %s\n", calc.ID, calc.Name)
	if len(res.Parsed.Assignments) == 0 {
		cmd.Println("No graded assignments were found; added one blank row.")
		return
	}
	cmd.Printf("Imported %d assignments (total weight %s)\n",
		len(res.Parsed.Assignments), totalWeight(res.Parsed.Assignments))
}

func totalWeight(assignments []domain.ParsedAssignment) string {
	var total float64
	for _, a := range assignments {
		total += domain.ParseWeight(a.Weight)
	}
	return strconv.FormatFloat(total, 'f', -1, 64) + "%"
}
