package syllabus

import (
	"regexp"
	"strings"
)

// rowKeywords are the component types that open a row in a grading table.
const rowKeywords = `Assignment|Quiz|Lab|Project|Tutorial|Other|Term|Final|Group`

var (
	tableHeader = regexp.MustCompile(
		`(?i)^(?:\s*type|\s*component|\s*description|\s*weight|\s*due|\s*date).*?(?:type|component|description|weight|due|date)`)
	tableRow = regexp.MustCompile(`(?i)^(?:` + rowKeywords + `)`)
)

type lineKind int

const (
	lineData lineKind = iota
	lineHeader
	lineFooter
)

// scanState is the state carried between lines of one parse.
type scanState struct {
	inTable    bool
	lastWeight string
}

// classify updates the table flag for header and footer lines.
// Header and footer lines carry no assignment.
func (s *scanState) classify(line string) lineKind {
	if tableHeader.MatchString(line) {
		s.inTable = true
		return lineHeader
	}
	if strings.Contains(strings.ToLower(line), "total") {
		s.inTable = false
		return lineFooter
	}
	return lineData
}

// acceptWeight applies the repeated-weight rule and records the weight.
// Outside a table a weight written exactly like the previous accepted one
// is taken as a restatement of the same item and rejected. digits is the
// weight as it appears on the line, so "05%" does not repeat "5%".
func (s *scanState) acceptWeight(digits string) bool {
	if !s.inTable && digits == s.lastWeight {
		return false
	}
	s.lastWeight = digits
	return true
}

// isTableRow reports whether a line opens with a component type keyword.
func isTableRow(line string) bool {
	return tableRow.MatchString(line)
}

// sliceTableName joins the tokens from the first type token up to, not
// including, the first weight token. It returns "" when either is missing
// or the weight comes first.
func sliceTableName(line string) string {
	tokens := strings.Fields(line)
	typeIdx, weightIdx := -1, -1
	for i, tok := range tokens {
		if typeIdx == -1 && tableRow.MatchString(tok) {
			typeIdx = i
		}
		if weightIdx == -1 && weightToken.MatchString(tok) {
			weightIdx = i
		}
	}
	if typeIdx == -1 || weightIdx == -1 || weightIdx <= typeIdx {
		return ""
	}
	return strings.Join(tokens[typeIdx:weightIdx], " ")
}
