package syllabus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSubject(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"course prefix", "Course: Introduction to Psychology (PSYC 101)", "Introduction to Psychology"},
		{"course title prefix", "Course Title:   Data   Structures", "Data Structures"},
		{"subject prefix", "subject: Organic Chemistry", "Organic Chemistry"},
		{"pipe separator", "Subject | Linear Algebra", "Linear Algebra"},
		{"course code", "Welcome to CS 101!", "CS 101"},
		{"hyphenated code", "PSYC-101 Syllabus", "PSYC 101"},
		{"code with suffix", "MATH2050B Calculus", "MATH 2050B"},
		{"first line wins", "Syllabus for PSYC 101\nCourse: Intro", "PSYC 101"},
		{"later line", "Welcome!\n\nSubject: History", "History"},
		{"prefix with only an aside", "Course: (PSYC 101)", ""},
		{"prefix with only an aside stops the search", "Course: (CS101)\nSubject: Programming", ""},
		{"unspaced aside is not a prefix", "Course:(CS101)", "CS 101"},
		{"lowercase code ignored", "cs 101 notes", ""},
		{"nothing", "Read the chapters.", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractSubject(tt.text))
		})
	}
}
