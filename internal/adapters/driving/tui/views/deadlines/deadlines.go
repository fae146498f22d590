// Package deadlines provides the upcoming due dates view for the TUI.
package deadlines

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

// soonWindow marks deadlines close enough to highlight.
const soonWindow = 7 * 24 * time.Hour

// View lists ungraded assignments by due date.
type View struct {
	ctx       context.Context
	styles    *styles.Styles
	deadlines driving.DeadlineService
	now       func() time.Time

	list    *list.List
	items   []domain.Deadline
	err     error
	loading bool
	width   int
	height  int
}

// NewView creates a new deadlines view.
func NewView(s *styles.Styles, deadlines driving.DeadlineService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:       context.Background(),
		styles:    s,
		deadlines: deadlines,
		now:       time.Now,
		list:      list.New(s, "No upcoming deadlines."),
	}
}

// WithContext sets the context used by service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithClock replaces the clock used to decide what counts as upcoming.
func (v *View) WithClock(now func() time.Time) *View {
	v.now = now
	return v
}

// Init loads deadlines from the start of today.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.deadlines == nil {
			return messages.DeadlinesLoaded{Err: fmt.Errorf("deadline service not available")}
		}
		items, err := v.deadlines.Upcoming(v.ctx, startOfDay(v.now()), 0)
		return messages.DeadlinesLoaded{Deadlines: items, Err: err}
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Update handles messages for the deadlines view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.DeadlinesLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.items = msg.Deadlines
			v.list.SetItems(v.listItems())
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			idx := v.list.Selected()
			if idx >= 0 && idx < len(v.items) {
				id := v.items[idx].CalculatorID
				return v, func() tea.Msg { return messages.CalculatorSelected{ID: id} }
			}
		case "r":
			v.loading = true
			return v, v.load()
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		default:
			v.list, _ = v.list.Update(msg)
		}
	}
	return v, nil
}

func (v *View) listItems() []list.Item {
	today := startOfDay(v.now())
	items := make([]list.Item, len(v.items))
	for i, d := range v.items {
		name := d.Assignment.Name
		if name == "" {
			name = "(unnamed)"
		}
		detail := d.CalculatorName
		if d.Assignment.Weight != "" {
			detail += ", worth " + d.Assignment.Weight + "%"
		}
		items[i] = list.Item{
			Title:  name,
			Detail: detail,
			Badge:  v.dueBadge(d, today),
		}
	}
	return items
}

func (v *View) dueBadge(d domain.Deadline, today time.Time) string {
	if d.Due.IsZero() {
		return v.styles.Muted.Render(d.Assignment.DueDate + " (unread)")
	}
	text := d.Due.Format("Mon Jan 2")
	days := int(d.Due.Sub(today).Hours() / 24)
	switch {
	case days == 0:
		return v.styles.Error.Render(text + " (today)")
	case days == 1:
		return v.styles.Warning.Render(text + " (tomorrow)")
	case d.Due.Sub(today) < soonWindow:
		return v.styles.Warning.Render(fmt.Sprintf("%s (in %d days)", text, days))
	default:
		return v.styles.Normal.Render(text)
	}
}

// View renders the deadlines view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Upcoming deadlines"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading deadlines..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] open calculator  [r] reload  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-6)
}

// Deadlines returns the loaded deadlines.
func (v *View) Deadlines() []domain.Deadline {
	return v.items
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
