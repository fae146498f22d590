package domain

import "time"

// Snapshot is the per-user document held by cloud storage.
type Snapshot struct {
	// Calculators is every calculator the user owns.
	Calculators []Calculator `json:"calculators"`

	// GPAGrades is the user's grade scale bands. Empty means the default.
	GPAGrades []GradeBand `json:"gpaGrades"`

	// LastUpdated is when the snapshot was written.
	LastUpdated time.Time `json:"lastUpdated"`
}

// Normalise fills missing collections so callers never see nil slices.
func (s *Snapshot) Normalise() {
	if s.Calculators == nil {
		s.Calculators = []Calculator{}
	}
	for i := range s.Calculators {
		if s.Calculators[i].Assignments == nil {
			s.Calculators[i].Assignments = []Assignment{}
		}
	}
	if s.GPAGrades == nil {
		s.GPAGrades = []GradeBand{}
	}
}

// SyncState records the outcome of the last cloud sync.
type SyncState struct {
	// LastPull is when calculators were last merged from the cloud.
	LastPull time.Time

	// LastPush is when local data was last written to the cloud.
	LastPush time.Time

	// LastError is the message of the most recent failure, if any.
	LastError string

	// Pending is true when local edits have not reached the cloud yet.
	Pending bool
}

// MergeReport describes what a pull changed locally.
type MergeReport struct {
	// Kept is the number of cloud calculators taken as-is.
	Kept int

	// Appended is the number of local calculators re-added with new IDs.
	Appended int

	// ScaleReplaced is true when the cloud grade scale replaced the local one.
	ScaleReplaced bool
}

// Deadline is an upcoming due date across calculators.
type Deadline struct {
	CalculatorID   int
	CalculatorName string
	Assignment     Assignment

	// Due is the parsed date; zero when DueDate could not be read.
	Due time.Time
}
