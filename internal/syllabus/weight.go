package syllabus

import (
	"regexp"
	"strconv"
)

var weightToken = regexp.MustCompile(`(?i)(\d{1,3})(?:\s*%|\s*percent|\s*marks?|\s*points?)`)

// extractWeight finds the first weight token on the line and returns its
// value in canonical form ("05%" gives "5") along with the digits as
// written. Values outside 1..100 are rejected.
func extractWeight(line string) (value, digits string, ok bool) {
	m := weightToken.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > 100 {
		return "", "", false
	}
	return strconv.Itoa(n), m[1], true
}

// stripWeight removes the first weight token from the line.
func stripWeight(line string) string {
	loc := weightToken.FindStringIndex(line)
	if loc == nil {
		return line
	}
	return line[:loc[0]] + line[loc[1]:]
}
