package syllabus

import "regexp"

var policyText = regexp.MustCompile(`(?i)penalty|policy|submit|required|late|must|minimum|maximum|guidelines?`)

// isPolicyText reports whether a cleaned name still reads like course policy.
func isPolicyText(name string) bool {
	return policyText.MatchString(name)
}
