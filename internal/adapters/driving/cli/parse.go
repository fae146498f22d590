package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a syllabus and print the grading breakdown",
	Long: `Parse a syllabus without saving anything.

Reads the file if given, otherwise syllabus text piped on stdin. Text,
Markdown, HTML and Word (.docx) files are supported. The result is
printed as JSON with the subject name and one entry per assignment.

Examples:
  gradebook parse syllabus.docx
  pbpaste | gradebook parse
  gradebook parse --table notes.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

// parseTable prints a table instead of JSON.
var parseTable bool

func init() {
	parseCmd.Flags().BoolVarP(&parseTable, "table", "t", false, "Print a table instead of JSON")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if syllabusService == nil {
		return errors.New("syllabus service not configured")
	}

	res, err := importInput(cmd, args, driving.ImportOptions{DryRun: true})
	if err != nil {
		return fmt.Errorf("failed to parse syllabus: %w", err)
	}

	if !parseTable {
		out, err := json.MarshalIndent(res.Parsed, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Printf("Subject: %s\n", orDash(res.Parsed.Name))
	if len(res.Parsed.Assignments) == 0 {
		cmd.Println("No graded assignments found.")
		return nil
	}
	rows := make([][]string, 0, len(res.Parsed.Assignments))
	for _, a := range res.Parsed.Assignments {
		rows = append(rows, []string{a.Name, withPercent(a.Weight), orDash(a.DueDate)})
	}
	cmd.Println(renderTable([]string{"Assignment", "Weight", "Due"}, rows))
	return nil
}

// importInput runs an import from the file argument or stdin.
func importInput(cmd *cobra.Command, args []string, opts driving.ImportOptions) (*driving.ImportResult, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if path := fileArg(args); path != "" {
		return syllabusService.ImportFile(ctx, path, opts)
	}

	raw, err := readStdin(cmd)
	if err != nil {
		return nil, err
	}
	return syllabusService.ImportRaw(ctx, raw, opts)
}
