package syllabus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackName(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"Assignment 1: Midterm Exam - 20% - Oct 15th", "Assignment 1: Midterm Exam"},
		{"Reflection journal Nov 3, 2024 15%", "Reflection journal"},
		{"* Essay: 20%", "Essay"},
		{"Project proposal 2024-10-01 10%", "Project proposal"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, fallbackName(tt.line))
		})
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"Assignment 1: Midterm Exam", "Midterm Exam"},
		{"Assignment12: Proof set", "Proof set"},
		{"Quiz - Chapter 3", "Chapter 3"},
		{"Quiz 2 - Chapter 3", "Chapter 3"},
		{"Research essay - see rubric", "Research essay"},
		{"Research essay (2,000 words)", "Research essay"},
		{"Portfolio 2024", "Portfolio"},
		{"3. Reflection", "Reflection"},
		{"2) Reflection", "Reflection"},
		{"Group   presentation", "presentation"},
		{"Labs and   workshops", "Labs and workshops"},
		{"Final", ""},
		{"Quiz 3", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanName(tt.raw))
		})
	}
}

func TestRejectName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reject bool
	}{
		{"valid", "Research essay", false},
		{"valid with digits", "Problem set 3", false},
		{"empty", "", true},
		{"single letter", "A", true},
		{"all digits", "12", true},
		{"no letters", "12 / 34", true},
		{"too long", strings.Repeat("a", 51), true},
		{"exactly fifty", strings.Repeat("a", 50), false},
		{"denied course", "Course project", true},
		{"denied grade", "Grade breakdown", true},
		{"denied case-insensitive", "You WILL write", true},
		{"denied inside word", "Canvas quiz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason := rejectName(tt.input)
			if tt.reject {
				assert.NotEmpty(t, reason)
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}
