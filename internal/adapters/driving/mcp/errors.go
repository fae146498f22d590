// Package mcp provides an MCP (Model Context Protocol) server adapter for gradebook.
// It lets AI assistants parse syllabi, create calculators and read grades.
package mcp

import "errors"

var (
	// ErrMissingCalculatorService is returned when the calculator service is not provided.
	ErrMissingCalculatorService = errors.New("mcp: calculator service is required")

	// ErrMissingSyllabusService is returned when the syllabus service is not provided.
	ErrMissingSyllabusService = errors.New("mcp: syllabus service is required")

	// ErrInvalidPorts is returned when no ports are provided at all.
	ErrInvalidPorts = errors.New("mcp: ports are required")
)
