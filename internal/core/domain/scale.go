package domain

import (
	"fmt"
	"math"
	"sort"
)

// NoGrade is the letter reported when a percentage maps to no band.
const NoGrade = "N/A"

// GradeBand maps every percentage at or above Min to a letter and points.
type GradeBand struct {
	Min    float64 `json:"min"`
	Letter string  `json:"grade"`
	Points float64 `json:"points"`
}

// GradeScale is an ordered list of bands, highest Min first.
type GradeScale struct {
	Name  string      `json:"name"`
	Max   float64     `json:"max"`
	Bands []GradeBand `json:"grades"`
}

// GradeInfo is the result of looking a percentage up in a scale.
type GradeInfo struct {
	Letter string
	Points float64
	Min    float64

	// Valid is false when the percentage matched no band.
	Valid bool
}

// PointsString renders the points the way the GPA screens show them.
func (g GradeInfo) PointsString() string {
	if !g.Valid {
		return NoGrade
	}
	return fmt.Sprintf("%.1f", g.Points)
}

// DefaultGradeScale returns the standard 4.0 scale.
func DefaultGradeScale() GradeScale {
	return GradeScale{
		Name: "4.0 Scale",
		Max:  4.0,
		Bands: []GradeBand{
			{Min: 93, Letter: "A", Points: 4.0},
			{Min: 90, Letter: "A-", Points: 3.7},
			{Min: 87, Letter: "B+", Points: 3.3},
			{Min: 83, Letter: "B", Points: 3.0},
			{Min: 80, Letter: "B-", Points: 2.7},
			{Min: 77, Letter: "C+", Points: 2.3},
			{Min: 73, Letter: "C", Points: 2.0},
			{Min: 70, Letter: "C-", Points: 1.7},
			{Min: 67, Letter: "D+", Points: 1.3},
			{Min: 63, Letter: "D", Points: 1.0},
			{Min: 60, Letter: "D-", Points: 0.7},
			{Min: 0, Letter: "F", Points: 0.0},
		},
	}
}

// Sorted returns a copy of the scale with bands ordered by Min descending.
func (s GradeScale) Sorted() GradeScale {
	out := s
	out.Bands = make([]GradeBand, len(s.Bands))
	copy(out.Bands, s.Bands)
	sort.SliceStable(out.Bands, func(i, j int) bool {
		return out.Bands[i].Min > out.Bands[j].Min
	})
	return out
}

// GradeInfo returns the first band whose Min the percentage reaches.
func (s GradeScale) GradeInfo(pct float64) GradeInfo {
	if math.IsNaN(pct) {
		return GradeInfo{Letter: NoGrade}
	}
	for _, b := range s.Bands {
		if pct >= b.Min {
			return GradeInfo{Letter: b.Letter, Points: b.Points, Min: b.Min, Valid: true}
		}
	}
	return GradeInfo{Letter: NoGrade}
}

// Validate checks that the scale can grade every percentage.
func (s GradeScale) Validate() error {
	if len(s.Bands) == 0 {
		return fmt.Errorf("%w: scale has no bands", ErrInvalidInput)
	}
	seen := make(map[string]bool, len(s.Bands))
	hasFloor := false
	for _, b := range s.Bands {
		if b.Letter == "" {
			return fmt.Errorf("%w: band with min %.0f has no letter", ErrInvalidInput, b.Min)
		}
		if seen[b.Letter] {
			return fmt.Errorf("%w: duplicate letter %q", ErrInvalidInput, b.Letter)
		}
		seen[b.Letter] = true
		if b.Min < 0 || b.Min > 100 {
			return fmt.Errorf("%w: min for %q must be between 0 and 100", ErrInvalidInput, b.Letter)
		}
		if b.Points < 0 {
			return fmt.Errorf("%w: points for %q must not be negative", ErrInvalidInput, b.Letter)
		}
		if b.Min == 0 {
			hasFloor = true
		}
	}
	if !hasFloor {
		return fmt.Errorf("%w: scale needs a band starting at 0", ErrInvalidInput)
	}
	return nil
}

// OverallGPA averages band points across calculators that have at least
// one completed assignment with positive weight. Subjects count equally.
func OverallGPA(calcs []Calculator, scale GradeScale) (float64, int) {
	var totalPoints float64
	var counted int
	for _, c := range calcs {
		_, weight := completedTotals(c.Assignments)
		if weight <= 0 {
			continue
		}
		info := scale.GradeInfo(CurrentGrade(c.Assignments))
		if !info.Valid {
			continue
		}
		totalPoints += info.Points
		counted++
	}
	if counted == 0 {
		return 0, 0
	}
	return totalPoints / float64(counted), counted
}

// FormatGPA renders a GPA with two decimals.
func FormatGPA(gpa float64) string {
	return fmt.Sprintf("%.2f", gpa)
}
