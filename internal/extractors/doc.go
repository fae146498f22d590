// Package extractors provides implementations of the Extractor interface
// for the file formats a syllabus usually arrives in. Each extractor knows
// how to pull plain text out of a specific MIME type.
//
// Extractors are registered with the Registry at startup.
package extractors
