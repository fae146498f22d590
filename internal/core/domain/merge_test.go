package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func calcWith(id int, name string, rows ...Assignment) Calculator {
	return Calculator{ID: id, Name: name, Assignments: rows}
}

func TestMergeCalculators(t *testing.T) {
	quiz := Assignment{ID: "a", Name: "Quiz", Weight: "10", Grade: "80"}
	quizRegraded := Assignment{ID: "a", Name: "Quiz", Weight: "10", Grade: "95"}

	tests := []struct {
		name         string
		local        []Calculator
		cloud        []Calculator
		wantIDs      []int
		wantNames    []string
		wantAppended int
	}{
		{
			name:         "both empty",
			wantIDs:      []int{},
			wantNames:    []string{},
			wantAppended: 0,
		},
		{
			name:         "cloud only",
			cloud:        []Calculator{calcWith(3, "Maths"), calcWith(1, "Art")},
			wantIDs:      []int{3, 1},
			wantNames:    []string{"Maths", "Art"},
			wantAppended: 0,
		},
		{
			name:         "local only starts at one",
			local:        []Calculator{calcWith(7, "Physics")},
			wantIDs:      []int{1},
			wantNames:    []string{"Physics"},
			wantAppended: 1,
		},
		{
			name:         "identical calculator is not duplicated",
			local:        []Calculator{calcWith(1, "Maths", quiz)},
			cloud:        []Calculator{calcWith(1, "Maths", quiz)},
			wantIDs:      []int{1},
			wantNames:    []string{"Maths"},
			wantAppended: 0,
		},
		{
			name:         "changed calculator is appended under a new ID",
			local:        []Calculator{calcWith(1, "Maths", quizRegraded)},
			cloud:        []Calculator{calcWith(1, "Maths", quiz)},
			wantIDs:      []int{1, 2},
			wantNames:    []string{"Maths", "Maths"},
			wantAppended: 1,
		},
		{
			name:         "unknown local ID is renumbered above cloud maximum",
			local:        []Calculator{calcWith(2, "History")},
			cloud:        []Calculator{calcWith(5, "Maths")},
			wantIDs:      []int{5, 6},
			wantNames:    []string{"Maths", "History"},
			wantAppended: 1,
		},
		{
			name: "local ID colliding with an appended calculator is compared against it",
			local: []Calculator{
				calcWith(1, "Maths v2"),
				calcWith(2, "Chemistry"),
			},
			cloud:        []Calculator{calcWith(1, "Maths")},
			wantIDs:      []int{1, 2, 3},
			wantNames:    []string{"Maths", "Maths v2", "Chemistry"},
			wantAppended: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, appended := MergeCalculators(tt.local, tt.cloud)

			ids := make([]int, 0, len(merged))
			names := make([]string, 0, len(merged))
			for _, c := range merged {
				ids = append(ids, c.ID)
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantAppended, appended)
		})
	}
}

func TestMergeCalculators_DoesNotAliasInputs(t *testing.T) {
	local := []Calculator{calcWith(9, "Local", Assignment{Name: "Essay"})}
	cloud := []Calculator{calcWith(1, "Cloud", Assignment{Name: "Exam"})}

	merged, _ := MergeCalculators(local, cloud)
	merged[0].Assignments[0].Name = "changed"
	merged[1].Assignments[0].Name = "changed"

	assert.Equal(t, "Exam", cloud[0].Assignments[0].Name)
	assert.Equal(t, "Essay", local[0].Assignments[0].Name)
	assert.Equal(t, 9, local[0].ID)
}

func TestHasCalculatorChanges(t *testing.T) {
	maths := calcWith(1, "Maths", Assignment{Name: "Quiz", Weight: "10"})
	mathsElsewhere := calcWith(4, "Maths", Assignment{Name: "Quiz", Weight: "10"})
	art := calcWith(2, "Art")

	tests := []struct {
		name  string
		local []Calculator
		cloud []Calculator
		want  bool
	}{
		{"no local calculators", nil, []Calculator{maths}, false},
		{"identical sets", []Calculator{maths}, []Calculator{maths}, false},
		{"match ignores IDs", []Calculator{maths}, []Calculator{mathsElsewhere}, false},
		{"local calculator missing from cloud", []Calculator{maths, art}, []Calculator{maths}, true},
		{"empty cloud", []Calculator{art}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasCalculatorChanges(tt.local, tt.cloud))
		})
	}
}

func TestSameBands(t *testing.T) {
	a := []GradeBand{{Min: 0, Letter: "F"}, {Min: 50, Letter: "P", Points: 1}}
	b := []GradeBand{{Min: 50, Letter: "P", Points: 1}, {Min: 0, Letter: "F"}}
	c := []GradeBand{{Min: 50, Letter: "P", Points: 2}, {Min: 0, Letter: "F"}}

	assert.True(t, SameBands(a, b))
	assert.True(t, SameBands(nil, []GradeBand{}))
	assert.False(t, SameBands(a, c))
	assert.False(t, SameBands(a, a[:1]))
}
