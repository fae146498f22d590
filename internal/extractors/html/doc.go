// Package html provides an Extractor for HTML syllabi.
// It strips tags, scripts and styles, decodes entities and keeps
// table rows on a single line so grade tables stay readable.
package html
