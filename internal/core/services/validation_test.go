package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
)

func TestInputValidator_Calculator(t *testing.T) {
	v := newInputValidator()

	tests := []struct {
		name    string
		input   calculatorInput
		wantMsg string
	}{
		{"valid", calculatorInput{Name: "Maths", DesiredGrade: "85.5"}, ""},
		{"blank name", calculatorInput{Name: "   "}, "name must not be blank"},
		{"long name", calculatorInput{Name: strings.Repeat("x", 101)}, "name"},
		{"desired not a number", calculatorInput{Name: "Maths", DesiredGrade: "A"}, "desiredGrade"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.check(tt.input)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestInputValidator_Assignment(t *testing.T) {
	v := newInputValidator()

	tests := []struct {
		name    string
		row     domain.Assignment
		wantMsg string
	}{
		{"blank row", domain.Assignment{}, ""},
		{"graded row", domain.Assignment{Name: "Quiz", Weight: "12.5", Grade: "42/50"}, ""},
		{"percent grade", domain.Assignment{Name: "Quiz", Weight: "100", Grade: "87"}, ""},
		{"negative weight", domain.Assignment{Weight: "-5"}, "weight must be a number between 0 and 100"},
		{"weight too large", domain.Assignment{Weight: "101"}, "weight must be a number between 0 and 100"},
		{"letter grade", domain.Assignment{Grade: "B+"}, "grade must be a number or a fraction"},
		{"zero denominator", domain.Assignment{Grade: "3/0"}, "grade must be a number or a fraction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.checkAssignment(tt.row)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
