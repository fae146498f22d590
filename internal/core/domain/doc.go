// Package domain defines the core business entities for gradebook.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Calculator: A per-subject grade calculator and its assignments
//   - GradeScale: The letter-grade bands used for GPA
//   - ParseResult: The output of reading a syllabus
//   - Snapshot: The document exchanged with cloud storage
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
