package syllabus

import (
	"regexp"
	"strings"
)

var (
	coursePrefix  = regexp.MustCompile(`(?i)^Course(?:\s+Title)?[:|\s]+([^(\n]+)`)
	subjectPrefix = regexp.MustCompile(`(?i)^Subject[:|\s]+([^(\n]+)`)
	courseCode    = regexp.MustCompile(`([A-Z]{2,4})\s*-?\s*(\d{2,4}[A-Z]?\d*)`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// extractSubject returns the first course label found in text.
// Each line is tried against a "Course:" prefix, a "Subject:" prefix and
// a bare course code, in that order; the first match wins even when the
// prefix is followed only by an aside, as in "Course: (PSYC 101)".
func extractSubject(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		for _, re := range []*regexp.Regexp{coursePrefix, subjectPrefix} {
			if m := re.FindStringSubmatch(line); m != nil {
				return collapseSpaces(m[1])
			}
		}

		if m := courseCode.FindStringSubmatch(line); m != nil {
			return m[1] + " " + m[2]
		}
	}
	return ""
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
