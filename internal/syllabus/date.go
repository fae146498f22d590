package syllabus

import (
	"regexp"
	"strconv"
)

const monthNames = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?` +
	`|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`

var (
	datePattern = regexp.MustCompile(`(?i)\b(?:\d{4}[-/.]\d{2}[-/.]\d{2}` +
		`|(?:` + monthNames + `)\.?\s+\d{1,2}(?:st|nd|rd|th)?\b(,?\s*\d{4}\b)?)`)
	numericDate = regexp.MustCompile(`^\d{4}`)
	ordinal     = regexp.MustCompile(`(?i)(\d)(?:st|nd|rd|th)\b`)
)

// extractDate returns the first date on the line. A month-day date with
// no year loses its ordinal suffix and gets defaultYear appended.
func extractDate(line string, defaultYear int) string {
	m := datePattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	date := m[0]
	if numericDate.MatchString(date) || m[1] != "" {
		return date
	}
	date = ordinal.ReplaceAllString(date, "$1")
	return date + " " + strconv.Itoa(defaultYear)
}

// stripDate removes the first date from s.
func stripDate(s string) string {
	loc := datePattern.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}
