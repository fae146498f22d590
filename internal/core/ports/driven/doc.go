// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CalculatorStore: Calculator persistence
//   - GradeScaleStore: GPA scale persistence
//   - SyllabusParser: Turns syllabus text into assignments
//   - Extractor / ExtractorRegistry: Turns syllabus files into text
//   - ConfigStore: Application configuration
//   - SchedulerStore: Background task state
//   - SyncStateStore: Cloud sync bookkeeping
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CloudStore: Remote snapshot storage. Without it, sync reports
//     domain.ErrCloudUnavailable and calculators stay local.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
