package domain

// ParsedAssignment is one graded component recovered from syllabus text.
type ParsedAssignment struct {
	// Name is the cleaned label, 2 to 50 characters.
	Name string `json:"name"`

	// Weight is an integer percentage in 1..100, in canonical decimal form.
	Weight string `json:"weight"`

	// Grade is always empty; the parser never invents marks.
	Grade string `json:"grade"`

	// DueDate is empty or a month-day expression with a year.
	DueDate string `json:"dueDate"`
}

// ParseResult is the output of one parse of syllabus text.
type ParseResult struct {
	// Name is the best-guess subject label, possibly empty.
	Name string `json:"name"`

	// Assignments are ordered by ascending weight. Never nil.
	Assignments []ParsedAssignment `json:"assignments"`
}

// SyllabusText is syllabus content after format extraction.
type SyllabusText struct {
	// URI is where the text came from (file path or "stdin").
	URI string

	// Title is a fallback subject name taken from document metadata
	// or the file name.
	Title string

	// MIMEType is the detected type of the original bytes.
	MIMEType string

	// Content is the plain text handed to the parser.
	Content string
}
