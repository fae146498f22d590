// Package syllabus recovers graded components from free-form course syllabus text.
//
// The parser is heuristic. It scans the text line by line, looking for a
// weight token ("20%", "15 marks", "10 points") and deriving an assignment
// name and optional due date from the same line. Lines that look like
// policy prose, totals or headings are dropped. The result is best-effort
// and callers should let users correct it.
//
// Stages, each a pure function in its own file:
//
//   - subject.go: course or subject label
//   - table.go: tabular region tracking and column slicing
//   - weight.go: weight token extraction
//   - name.go: name derivation, cleaning and validation
//   - date.go: due date extraction
//   - policy.go: narrative and policy rejection
//   - dedupe.go: duplicate suppression and ordering
//
// A Parser holds only configuration; Parse keeps its scan state in local
// variables and is safe for concurrent use.
package syllabus
