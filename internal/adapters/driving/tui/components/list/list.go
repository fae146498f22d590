// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/styles"
)

// Item is one row of a list.
type Item struct {
	// Title is the main text of the row.
	Title string

	// Detail is muted text shown on a second line. Optional.
	Detail string

	// Badge is right-aligned text, already styled by the caller. Optional.
	Badge string
}

// List displays items in a navigable, scrolling list.
type List struct {
	items    []Item
	selected int
	styles   *styles.Styles
	empty    string
	width    int
	height   int
}

// New creates a new list component. empty is shown when there are no items.
func New(s *styles.Styles, empty string) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &List{
		styles: s,
		empty:  empty,
		width:  80,
		height: 20,
	}
}

// Init initialises the list.
func (l *List) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			l.SetSelected(len(l.items) - 1)
		}
	}
	return l, nil
}

// View renders the visible window of items.
func (l *List) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render(l.empty)
	}

	start, end := l.window()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i, &l.items[i]))
	}

	out := strings.Join(lines, "\n")
	if start > 0 || end < len(l.items) {
		out += "\n" + l.styles.Muted.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(l.items)))
	}
	return out
}

// window returns the range of items that fit the height around the selection.
func (l *List) window() (int, int) {
	perItem := 1
	for i := range l.items {
		if l.items[i].Detail != "" {
			perItem = 2
			break
		}
	}

	visible := (l.height - 1) / perItem
	if visible < 1 {
		visible = 1
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.items) {
		end = len(l.items)
	}
	return start, end
}

// renderItem formats a single row.
func (l *List) renderItem(index int, item *Item) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	badgeWidth := lipgloss.Width(item.Badge)
	maxTitle := l.width - badgeWidth - 6
	if maxTitle < 10 {
		maxTitle = 10
	}
	title := truncate(item.Title, maxTitle)

	var line string
	if index == l.selected {
		line = l.styles.Selected.Render(fmt.Sprintf("%s%-*s", indicator, maxTitle, title))
	} else {
		line = l.styles.Normal.Render(fmt.Sprintf("%s%-*s", indicator, maxTitle, title))
	}
	if item.Badge != "" {
		line += "  " + item.Badge
	}

	if item.Detail != "" {
		line += "\n" + l.styles.Muted.Render("    "+truncate(item.Detail, l.width-6))
	}
	return line
}

func truncate(s string, limit int) string {
	if limit < 4 {
		limit = 4
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

// SetItems replaces the items, keeping the selection in range.
func (l *List) SetItems(items []Item) {
	l.items = items
	if l.selected >= len(items) {
		l.selected = len(items) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Items returns the current items.
func (l *List) Items() []Item {
	return l.items
}

// Selected returns the index of the selected item.
func (l *List) Selected() int {
	return l.selected
}

// SetSelected sets the selected index. Out-of-range values are ignored.
func (l *List) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// MoveUp moves selection up.
func (l *List) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *List) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *List) Width() int {
	return l.width
}

// Height returns the current height.
func (l *List) Height() int {
	return l.height
}

// Count returns the number of items.
func (l *List) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *List) IsEmpty() bool {
	return len(l.items) == 0
}
