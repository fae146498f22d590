// Package services implements the driving port interfaces.
// Services hold the grade arithmetic, syllabus import and cloud merge
// logic, and orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no CGO.
package services
