package deadlines

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/services"
)

func fixedClock() time.Time {
	return time.Date(2025, time.November, 1, 10, 0, 0, 0, time.Local)
}

func newView(t *testing.T) *View {
	t.Helper()
	store := memory.NewCalculatorStore()
	calc := services.NewCalculatorService(store, memory.NewGradeScaleStore())

	_, err := calc.Create(t.Context(), "Physics", []domain.Assignment{
		{Name: "Lab 3", Weight: "10", DueDate: "Nov 3 2025"},
		{Name: "Final", Weight: "50", DueDate: "Dec 12 2025"},
		{Name: "Lab 1", Weight: "10", DueDate: "Oct 1 2025"},
		{Name: "Lab 2", Weight: "10", DueDate: "Nov 2 2025", Grade: "90"},
	})
	require.NoError(t, err)
	_, err = calc.Create(t.Context(), "History", []domain.Assignment{
		{Name: "Essay", Weight: "30", DueDate: "Nov 1 2025"},
		{Name: "Presentation", Weight: "20", DueDate: "sometime in spring"},
	})
	require.NoError(t, err)

	v := NewView(nil, services.NewDeadlineService(store)).
		WithContext(t.Context()).
		WithClock(fixedClock)
	v.SetDimensions(100, 40)
	_, cmd := v.Update(v.Init()())
	assert.Nil(t, cmd)
	return v
}

func TestView_LoadsUpcoming(t *testing.T) {
	v := newView(t)

	require.NoError(t, v.Err())
	names := make([]string, 0, len(v.Deadlines()))
	for _, d := range v.Deadlines() {
		names = append(names, d.Assignment.Name)
	}
	assert.Equal(t, []string{"Essay", "Lab 3", "Final", "Presentation"}, names)
}

func TestView_Render(t *testing.T) {
	v := newView(t)

	out := v.View()

	assert.Contains(t, out, "Upcoming deadlines")
	assert.Contains(t, out, "(today)")
	assert.Contains(t, out, "(in 2 days)")
	assert.Contains(t, out, "Fri Dec 12")
	assert.Contains(t, out, "sometime in spring (unread)")
	assert.Contains(t, out, "History, worth 30%")
	assert.NotContains(t, out, "Lab 1")
	assert.NotContains(t, out, "Lab 2")
}

func TestView_EnterOpensCalculator(t *testing.T) {
	v := newView(t)

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.CalculatorSelected{ID: 1}, cmd())
}

func TestView_Back(t *testing.T) {
	v := newView(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Empty(t *testing.T) {
	v := NewView(nil, services.NewDeadlineService(memory.NewCalculatorStore())).WithContext(t.Context())

	v.Update(v.Init()())

	assert.Contains(t, v.View(), "No upcoming deadlines.")
}

func TestView_MissingService(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(v.Init()())

	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "deadline service not available")
}

func TestStartOfDay(t *testing.T) {
	got := startOfDay(fixedClock())

	assert.Equal(t, time.Date(2025, time.November, 1, 0, 0, 0, 0, time.Local), got)
}
