// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewCalculators lists every calculator.
	ViewCalculators
	// ViewDetail shows and edits a single calculator.
	ViewDetail
	// ViewImport is the paste-a-syllabus view.
	ViewImport
	// ViewDeadlines lists upcoming due dates.
	ViewDeadlines
	// ViewGPA shows the overall GPA.
	ViewGPA
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewCalculators:
		return "calculators"
	case ViewDetail:
		return "detail"
	case ViewImport:
		return "import"
	case ViewDeadlines:
		return "deadlines"
	case ViewGPA:
		return "gpa"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// CalculatorsLoaded carries the calculator list from the service.
type CalculatorsLoaded struct {
	Calculators []domain.Calculator
	Err         error
}

// CalculatorSelected opens a calculator in the detail view.
type CalculatorSelected struct {
	ID int
}

// CalculatorLoaded carries one calculator and its computed summary.
type CalculatorLoaded struct {
	Calculator *domain.Calculator
	Summary    *domain.GradeSummary
	Err        error
}

// CalculatorChanged signals an edit to a calculator finished.
// Status is a short description shown to the user on success.
type CalculatorChanged struct {
	ID     int
	Status string
	Err    error
}

// CalculatorDeleted signals a calculator was removed.
type CalculatorDeleted struct {
	ID  int
	Err error
}

// ImportCompleted carries the outcome of a syllabus import or preview.
type ImportCompleted struct {
	Result *driving.ImportResult
	Err    error
}

// DeadlinesLoaded carries upcoming due dates.
type DeadlinesLoaded struct {
	Deadlines []domain.Deadline
	Err       error
}

// GPALoaded carries the GPA report and the scale it was computed with.
type GPALoaded struct {
	Report *driving.GPAReport
	Scale  *domain.GradeScale
	Err    error
}

// SyncCompleted signals a manual sync finished.
type SyncCompleted struct {
	Report *domain.MergeReport
	Err    error
}
