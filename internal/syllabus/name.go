package syllabus

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	edgeNonWord    = regexp.MustCompile(`^\W+|\W+$`)
	leadingKeyword = regexp.MustCompile(`(?i)^(?:` + rowKeywords + `)(?:\b|\d)\s*\d*\s*[:\-–—]?\s*`)
	dashTail       = regexp.MustCompile(`\s*[-–—]\s*.*$`)
	parenthetical  = regexp.MustCompile(`\([^)]*\)`)
	trailingYear   = regexp.MustCompile(`\d{4}$`)
	leadingNumber  = regexp.MustCompile(`^\d+\s*[-:.)]?\s*`)
	allDigits      = regexp.MustCompile(`^\d+$`)
	hasLetter      = regexp.MustCompile(`[a-zA-Z]`)
	singleLetter   = regexp.MustCompile(`(?i)^[a-z]$`)
)

// deniedTokens mark narrative sentences rather than component names.
var deniedTokens = []string{
	"otherwise",
	"final mark",
	"pass",
	"course",
	"obtain",
	"achieve",
	"submit",
	"hand in",
	"total",
	"breakdown",
	"grade",
	"marking scheme",
	"worth",
	"may",
	"must",
	"will",
	"should",
	"can",
	"marks",
	"get",
	"required",
}

// fallbackName strips the weight and date tokens and any surrounding
// punctuation from the line.
func fallbackName(line string) string {
	name := stripWeight(line)
	name = stripDate(name)
	name = edgeNonWord.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// cleanName removes numbering, type keywords, trailing separators and
// asides from a raw name.
func cleanName(name string) string {
	name = leadingKeyword.ReplaceAllString(name, "")
	name = dashTail.ReplaceAllString(name, "")
	name = parenthetical.ReplaceAllString(name, "")
	name = trailingYear.ReplaceAllString(name, "")
	name = whitespaceRun.ReplaceAllString(name, " ")
	name = leadingNumber.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// rejectName returns why a cleaned name is unusable, or "" if it is fine.
func rejectName(name string) string {
	n := utf8.RuneCountInString(name)
	switch {
	case n < 2:
		return "too short"
	case n > 50:
		return "too long"
	case allDigits.MatchString(name):
		return "numeric"
	case !hasLetter.MatchString(name):
		return "no letters"
	case singleLetter.MatchString(name):
		return "single letter"
	}
	lower := strings.ToLower(name)
	for _, tok := range deniedTokens {
		if strings.Contains(lower, tok) {
			return "contains " + tok
		}
	}
	return ""
}
