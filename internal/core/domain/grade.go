package domain

import (
	"math"
	"strconv"
	"strings"
)

// GradeSummary is the computed state of a calculator.
type GradeSummary struct {
	// Current is the weighted average of completed assignments, 0..100.
	Current float64

	// Required is the average needed on the remaining weight to reach
	// the desired grade. Nil when no meaningful answer exists.
	Required *float64

	// CompletedWeight is the weight already graded.
	CompletedWeight float64

	// RemainingWeight is 100 minus CompletedWeight.
	RemainingWeight float64

	// Letter is the band the current grade falls into.
	Letter GradeInfo
}

// ParseGrade converts a grade entry to a percentage.
// Fractions are scaled and clamped to 0..100; a malformed fraction
// or zero denominator yields 0. The bool is false when the entry is
// neither a number nor a fraction.
func ParseGrade(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if errN != nil || errD != nil || d == 0 {
			return 0, true
		}
		return clamp(n/d*100, 0, 100), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ParseWeight converts a weight entry to a number, treating anything
// unparseable as zero.
func ParseWeight(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

// IsValidGrade reports whether s is empty, a number or a fraction with a
// non-zero denominator.
func IsValidGrade(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		_, errN := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, errD := strconv.ParseFloat(strings.TrimSpace(den), 64)
		return errN == nil && errD == nil && d != 0
	}
	_, ok := ParseGrade(s)
	return ok
}

// CurrentGrade is the weighted average over completed assignments,
// clamped to 0..100 and rounded to two decimals.
func CurrentGrade(assignments []Assignment) float64 {
	weightedSum, totalWeight := completedTotals(assignments)
	if totalWeight == 0 {
		return 0
	}
	return round2(clamp(weightedSum/totalWeight, 0, 100))
}

// RequiredGrade is the average needed on the ungraded weight to finish
// at desired. It returns false when desired is empty or not a number,
// when nothing is left to grade, or when more than 100 would be needed.
func RequiredGrade(assignments []Assignment, desired string) (float64, bool) {
	target, err := strconv.ParseFloat(strings.TrimSpace(desired), 64)
	if err != nil || math.IsNaN(target) {
		return 0, false
	}
	weightedSum, completedWeight := completedTotals(assignments)
	remaining := 100 - completedWeight
	if remaining <= 0 {
		return 0, false
	}
	required := (target*100 - weightedSum) / remaining
	if required > 100 {
		return 0, false
	}
	return round2(math.Max(0, required)), true
}

// Summarise computes the grade summary of a calculator against a scale.
func Summarise(c Calculator, scale GradeScale) GradeSummary {
	_, completed := completedTotals(c.Assignments)
	summary := GradeSummary{
		Current:         CurrentGrade(c.Assignments),
		CompletedWeight: completed,
		RemainingWeight: 100 - completed,
	}
	if req, ok := RequiredGrade(c.Assignments, c.DesiredGrade); ok {
		summary.Required = &req
	}
	summary.Letter = scale.GradeInfo(summary.Current)
	return summary
}

// completedTotals returns the grade-weight product sum and the weight sum
// over assignments with both a grade and a weight entered.
func completedTotals(assignments []Assignment) (weightedSum, totalWeight float64) {
	for _, a := range assignments {
		if !a.IsCompleted() {
			continue
		}
		w := ParseWeight(a.Weight)
		g, _ := ParseGrade(a.Grade)
		weightedSum += g * w
		totalWeight += w
	}
	return weightedSum, totalWeight
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
