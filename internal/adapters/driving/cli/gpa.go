package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

var gpaCmd = &cobra.Command{
	Use:   "gpa",
	Short: "Show your GPA and manage the grade scale",
	RunE:  runGPAShow,
}

var gpaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show overall GPA with a per-subject breakdown",
	Args:  cobra.NoArgs,
	RunE:  runGPAShow,
}

var gpaScaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Show or replace the grade scale",
	Long: `Show the active grade scale, or replace it with --band.

Each band is LETTER:MIN:POINTS, for example:
  gradebook gpa scale --band A:90:4 --band B:80:3 --band C:70:2 --band F:0:0

One band must start at 0 so every percentage maps to a letter.`,
	Args: cobra.NoArgs,
	RunE: runGPAScale,
}

var gpaResetScaleCmd = &cobra.Command{
	Use:   "reset-scale",
	Short: "Revert to the default 4.0 scale",
	Args:  cobra.NoArgs,
	RunE:  runGPAResetScale,
}

// Scale flags.
var (
	scaleBands []string
	scaleName  string
)

func init() {
	gpaScaleCmd.Flags().StringArrayVarP(&scaleBands, "band", "b", nil, "Band as LETTER:MIN:POINTS (repeatable)")
	gpaScaleCmd.Flags().StringVar(&scaleName, "name", "Custom", "Scale name")

	gpaCmd.AddCommand(gpaShowCmd)
	gpaCmd.AddCommand(gpaScaleCmd)
	gpaCmd.AddCommand(gpaResetScaleCmd)
	rootCmd.AddCommand(gpaCmd)
}

func runGPAShow(cmd *cobra.Command, _ []string) error {
	if gpaService == nil {
		return errors.New("gpa service not configured")
	}

	report, err := gpaService.Overall(context.Background())
	if err != nil {
		return fmt.Errorf("failed to compute GPA: %w", err)
	}

	cmd.Printf("Overall GPA: %s (%d of %d subjects graded)\n",
		domain.FormatGPA(report.GPA), report.Counted, len(report.Subjects))
	if len(report.Subjects) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(report.Subjects))
	for _, s := range report.Subjects {
		current, letter, points := "-", "-", "-"
		if s.Counted {
			current = formatPercent(s.Current)
			letter = s.Info.Letter
			points = s.Info.PointsString()
		}
		rows = append(rows, []string{strconv.Itoa(s.CalculatorID), s.Name, current, letter, points})
	}
	cmd.Println(renderTable([]string{"ID", "Subject", "Current", "Grade", "Points"}, rows))
	return nil
}

func runGPAScale(cmd *cobra.Command, _ []string) error {
	if gpaService == nil {
		return errors.New("gpa service not configured")
	}
	ctx := context.Background()

	if len(scaleBands) > 0 {
		bands := make([]domain.GradeBand, 0, len(scaleBands))
		for _, spec := range scaleBands {
			band, err := parseBand(spec)
			if err != nil {
				return err
			}
			bands = append(bands, band)
		}
		scale := domain.GradeScale{Name: scaleName, Bands: bands}
		for _, b := range bands {
			scale.Max = max(scale.Max, b.Points)
		}
		if err := gpaService.SetScale(ctx, scale); err != nil {
			return fmt.Errorf("failed to set grade scale: %w", err)
		}
		cmd.Println("Grade scale updated.")
	}

	scale, err := gpaService.Scale(ctx)
	if err != nil {
		return fmt.Errorf("failed to get grade scale: %w", err)
	}
	printScale(cmd, scale)
	return nil
}

func printScale(cmd *cobra.Command, scale *domain.GradeScale) {
	cmd.Printf("%s (max %.1f)\n", scale.Name, scale.Max)
	rows := make([][]string, 0, len(scale.Bands))
	for _, b := range scale.Bands {
		rows = append(rows, []string{
			b.Letter,
			strconv.FormatFloat(b.Min, 'f', -1, 64) + "%",
			fmt.Sprintf("%.1f", b.Points),
		})
	}
	cmd.Println(renderTable([]string{"Grade", "From", "Points"}, rows))
}

func runGPAResetScale(cmd *cobra.Command, _ []string) error {
	if gpaService == nil {
		return errors.New("gpa service not configured")
	}
	if err := gpaService.ResetScale(context.Background()); err != nil {
		return fmt.Errorf("failed to reset grade scale: %w", err)
	}
	cmd.Println("Grade scale reset to the default 4.0 scale.")
	return nil
}

// parseBand reads LETTER:MIN:POINTS.
func parseBand(spec string) (domain.GradeBand, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return domain.GradeBand{}, fmt.Errorf("%w: band %q must be LETTER:MIN:POINTS", domain.ErrInvalidInput, spec)
	}
	minPct, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.GradeBand{}, fmt.Errorf("%w: band %q has a bad minimum", domain.ErrInvalidInput, spec)
	}
	points, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return domain.GradeBand{}, fmt.Errorf("%w: band %q has bad points", domain.ErrInvalidInput, spec)
	}
	return domain.GradeBand{
		Letter: strings.TrimSpace(parts[0]),
		Min:    minPct,
		Points: points,
	}, nil
}
