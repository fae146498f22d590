package syllabus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractWeight(t *testing.T) {
	tests := []struct {
		line     string
		expected string
		digits   string
		ok       bool
	}{
		{"Midterm 20%", "20", "20", true},
		{"Essay 15 percent", "15", "15", true},
		{"Lab 5 marks", "5", "5", true},
		{"Participation 1 mark", "1", "1", true},
		{"Project 30 Points", "30", "30", true},
		{"20 % of the final", "20", "20", true},
		{"Final 100%", "100", "100", true},
		{"Worth 05%", "5", "05", true},
		{"Bonus 0%", "", "", false},
		{"Essay 150%", "", "", false},
		{"Chapter 12", "", "", false},
		{"No weight here", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, digits, ok := extractWeight(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.digits, digits)
		})
	}
}

func TestStripWeight(t *testing.T) {
	assert.Equal(t, "Essay  due", stripWeight("Essay 20% due"))
	assert.Equal(t, "Essay ", stripWeight("Essay 20 points"))
	assert.Equal(t, "Essay", stripWeight("Essay"))
}
