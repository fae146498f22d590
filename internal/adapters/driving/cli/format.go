package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

// renderTable draws rows under headers with a plain border.
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}

// assignmentRows formats assignments for renderTable, numbering from 1.
func assignmentRows(assignments []domain.Assignment) [][]string {
	rows := make([][]string, 0, len(assignments))
	for i, a := range assignments {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			orDash(a.Name),
			orDash(withPercent(a.Weight)),
			orDash(a.Grade),
			orDash(a.DueDate),
		})
	}
	return rows
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func withPercent(s string) string {
	if s == "" || strings.HasSuffix(s, "%") {
		return s
	}
	return s + "%"
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// formatRequired renders the grade needed on the remaining work.
func formatRequired(required *float64) string {
	if required == nil {
		return "-"
	}
	return formatPercent(*required)
}

// parseCalculatorID reads a calculator ID argument.
func parseCalculatorID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: calculator id must be a positive number, got %q", domain.ErrInvalidInput, arg)
	}
	return id, nil
}

// resolveRow finds an assignment by 1-based row number or by ID.
func resolveRow(calc *domain.Calculator, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(calc.Assignments) {
			return 0, fmt.Errorf("%w: row %d is out of range (1-%d)", domain.ErrNotFound, n, len(calc.Assignments))
		}
		return n - 1, nil
	}
	for i, a := range calc.Assignments {
		if a.ID == ref {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no assignment %q in calculator %d", domain.ErrNotFound, ref, calc.ID)
}
