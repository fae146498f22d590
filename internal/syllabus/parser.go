package syllabus

import (
	"strings"
	"time"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/logger"
)

// Parser extracts a ParseResult from syllabus text.
type Parser struct {
	defaultYear int
}

// Option configures a Parser.
type Option func(*Parser)

// WithDefaultYear sets the year appended to due dates written without one.
// Values outside 1000..9999 are ignored.
func WithDefaultYear(year int) Option {
	return func(p *Parser) {
		if year >= 1000 && year <= 9999 {
			p.defaultYear = year
		}
	}
}

// New creates a parser. Without options, dates missing a year get the
// current calendar year.
func New(opts ...Option) *Parser {
	p := &Parser{defaultYear: time.Now().Year()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultYear returns the year appended to year-less due dates.
func (p *Parser) DefaultYear() int {
	return p.defaultYear
}

// Parse runs a single pass over text. It never fails; lines it cannot
// read are skipped.
func Parse(text string) domain.ParseResult {
	return New().Parse(text)
}

// Parse scans text line by line and returns the subject name and the
// assignments it could recover, ordered by ascending weight.
func (p *Parser) Parse(text string) domain.ParseResult {
	result := domain.ParseResult{
		Name:        extractSubject(text),
		Assignments: []domain.ParsedAssignment{},
	}

	var state scanState
	seen := make(map[string]bool)

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch state.classify(line) {
		case lineHeader, lineFooter:
			continue
		}

		weight, digits, ok := extractWeight(line)
		if !ok {
			continue
		}
		if !state.acceptWeight(digits) {
			logger.Debug("syllabus: line %d: repeated weight %s%% outside table", i+1, weight)
			continue
		}

		name := p.deriveName(line, state.inTable)
		if reason := rejectName(name); reason != "" {
			logger.Debug("syllabus: line %d: name %q rejected: %s", i+1, name, reason)
			continue
		}

		due := extractDate(line, p.defaultYear)

		if isPolicyText(name) {
			logger.Debug("syllabus: line %d: policy text %q", i+1, name)
			continue
		}

		key := dedupeKey(name, weight)
		if seen[key] {
			logger.Debug("syllabus: line %d: duplicate %q at %s%%", i+1, name, weight)
			continue
		}
		seen[key] = true

		result.Assignments = append(result.Assignments, domain.ParsedAssignment{
			Name:    name,
			Weight:  weight,
			Grade:   "",
			DueDate: due,
		})
	}

	sortByWeight(result.Assignments)
	logger.Debug("syllabus: subject %q, %d assignments", result.Name, len(result.Assignments))
	return result
}

// deriveName picks the table or fallback strategy and cleans the outcome.
func (p *Parser) deriveName(line string, inTable bool) string {
	raw := ""
	if inTable && isTableRow(line) {
		raw = sliceTableName(line)
	}
	if raw == "" {
		raw = fallbackName(line)
	}
	return cleanName(raw)
}
