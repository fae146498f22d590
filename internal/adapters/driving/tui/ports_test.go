package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gradebook-cli/internal/core/services"
	"github.com/custodia-labs/gradebook-cli/internal/extractors"
	"github.com/custodia-labs/gradebook-cli/internal/syllabus"
)

// newTestPorts wires real services over in-memory stores.
func newTestPorts() *Ports {
	store := memory.NewCalculatorStore()
	scales := memory.NewGradeScaleStore()
	calc := services.NewCalculatorService(store, scales)

	return &Ports{
		Calculator: calc,
		Syllabus: services.NewSyllabusService(
			syllabus.New(syllabus.WithDefaultYear(2025)), extractors.NewDefaultRegistry(), calc,
		),
		GPA:      services.NewGPAService(store, scales),
		Deadline: services.NewDeadlineService(store),
	}
}

func TestNewPorts(t *testing.T) {
	full := newTestPorts()

	ports := NewPorts(full.Calculator, full.Syllabus)

	require.NotNil(t, ports)
	assert.Equal(t, full.Calculator, ports.Calculator)
	assert.Equal(t, full.Syllabus, ports.Syllabus)
	assert.Nil(t, ports.GPA)
	assert.Nil(t, ports.Deadline)
	assert.Nil(t, ports.Sync)
}

func TestPorts_Validate(t *testing.T) {
	full := newTestPorts()

	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{name: "nil ports", ports: nil, wantErr: ErrInvalidPorts},
		{name: "missing calculator", ports: &Ports{Syllabus: full.Syllabus}, wantErr: ErrMissingCalculatorService},
		{name: "missing syllabus", ports: &Ports{Calculator: full.Calculator}, wantErr: ErrMissingSyllabusService},
		{name: "required only", ports: NewPorts(full.Calculator, full.Syllabus)},
		{name: "all services", ports: full},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
