// Package tui provides an interactive terminal user interface for gradebook.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Calculator manages calculators and their rows.
	Calculator driving.CalculatorService

	// Syllabus parses pasted syllabi into calculators.
	Syllabus driving.SyllabusService

	// GPA computes the overall GPA. Optional.
	GPA driving.GPAService

	// Deadline lists upcoming due dates. Optional.
	Deadline driving.DeadlineService

	// Sync runs a manual cloud sync. Optional.
	Sync driving.SyncService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(calculator driving.CalculatorService, syllabus driving.SyllabusService) *Ports {
	return &Ports{
		Calculator: calculator,
		Syllabus:   syllabus,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Calculator == nil {
		return ErrMissingCalculatorService
	}
	if p.Syllabus == nil {
		return ErrMissingSyllabusService
	}
	return nil
}
