package domain

import (
	"fmt"
	"time"
)

// Assignment is one graded component tracked inside a calculator.
// Weight and Grade hold what the student typed; Grade may be a
// percentage ("87.5") or a fraction ("42/50").
type Assignment struct {
	// ID is the unique identifier for the row.
	ID string `json:"id"`

	// Name is the label shown for the row.
	Name string `json:"name"`

	// Weight is the percentage of the final mark.
	Weight string `json:"weight"`

	// Grade is the mark received, empty until graded.
	Grade string `json:"grade"`

	// DueDate is a free-form date expression, usually from a syllabus.
	DueDate string `json:"dueDate,omitempty"`
}

// IsCompleted reports whether the assignment counts towards the current grade.
func (a Assignment) IsCompleted() bool {
	return a.Grade != "" && a.Weight != ""
}

// Calculator tracks the assignments of one subject.
type Calculator struct {
	// ID is a small positive integer, unique per user.
	ID int `json:"id"`

	// Name is the subject label.
	Name string `json:"name"`

	// DesiredGrade is the target final percentage, empty when unset.
	DesiredGrade string `json:"desiredGrade"`

	// Assignments are kept in display order.
	Assignments []Assignment `json:"assignments"`

	// CreatedAt is when the calculator was first stored locally.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the calculator was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the calculator.
func (c Calculator) Clone() Calculator {
	out := c
	if c.Assignments != nil {
		out.Assignments = make([]Assignment, len(c.Assignments))
		copy(out.Assignments, c.Assignments)
	}
	return out
}

// SameContent reports whether two calculators hold the same user-visible data.
// IDs and timestamps are ignored; assignments are compared by position on
// name, grade and weight.
func (c Calculator) SameContent(other Calculator) bool {
	if c.Name != other.Name || c.DesiredGrade != other.DesiredGrade {
		return false
	}
	if len(c.Assignments) != len(other.Assignments) {
		return false
	}
	for i, a := range c.Assignments {
		b := other.Assignments[i]
		if a.Name != b.Name || a.Grade != b.Grade || a.Weight != b.Weight {
			return false
		}
	}
	return true
}

// TotalWeight sums the parseable weights of every assignment.
func (c Calculator) TotalWeight() float64 {
	var total float64
	for _, a := range c.Assignments {
		total += ParseWeight(a.Weight)
	}
	return total
}

// NextCalculatorID returns one more than the largest ID in use.
func NextCalculatorID(calcs []Calculator) int {
	maxID := 0
	for _, c := range calcs {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	return maxID + 1
}

// DefaultCalculatorName is the name given to a calculator created without one.
func DefaultCalculatorName(id int) string {
	return fmt.Sprintf("Subject %d", id)
}
