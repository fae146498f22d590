package mcp

import (
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Calculator manages calculators and their grades.
	Calculator driving.CalculatorService

	// Syllabus parses syllabus text into calculators.
	Syllabus driving.SyllabusService

	// GPA reports the overall GPA and the grade scale.
	GPA driving.GPAService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
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
	// GPA is optional
	return nil
}
