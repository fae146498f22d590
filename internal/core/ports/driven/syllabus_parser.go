package driven

import "github.com/custodia-labs/gradebook-cli/internal/core/domain"

// SyllabusParser recovers assignments from syllabus text.
// Implementations never fail; unreadable lines are skipped.
type SyllabusParser interface {
	Parse(text string) domain.ParseResult
}
