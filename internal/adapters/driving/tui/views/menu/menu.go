// Package menu is the TUI start screen.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/styles"
)

// Item is one menu entry. Quit entries end the program instead of
// switching view.
type Item struct {
	Label  string
	Detail string
	View   messages.ViewType
	Quit   bool
}

// View is the start screen listing every other view.
type View struct {
	styles   *styles.Styles
	keys     *keymap.KeyMap
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates the menu with every entry visible.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		keys:   keymap.DefaultKeyMap(),
		items: []Item{
			{Label: "Calculators", Detail: "enter grades and see what you need", View: messages.ViewCalculators},
			{Label: "Import syllabus", Detail: "paste a grading policy", View: messages.ViewImport},
			{Label: "Deadlines", Detail: "ungraded work by due date", View: messages.ViewDeadlines},
			{Label: "GPA", Detail: "overall GPA across subjects", View: messages.ViewGPA},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Hide removes the item leading to view, used when its service is missing.
func (v *View) Hide(view messages.ViewType) {
	kept := v.items[:0]
	for _, item := range v.items {
		if item.Quit || item.View != view {
			kept = append(kept, item)
		}
	}
	v.items = kept
	if v.selected >= len(v.items) {
		v.selected = len(v.items) - 1
	}
}

// Init has nothing to load.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and turns a choice into a ViewChanged message.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keys.Up):
			v.selected = max(v.selected-1, 0)
		case keymap.Matches(k, v.keys.Down):
			v.selected = min(v.selected+1, len(v.items)-1)
		case keymap.Matches(k, v.keys.Select):
			return v, v.choose(v.selected)
		case keymap.Matches(k, v.keys.Quit):
			return v, tea.Quit
		case len(k) == 1 && k[0] >= '1' && k[0] <= '9':
			if idx := int(k[0] - '1'); idx < len(v.items) {
				v.selected = idx
				return v, v.choose(idx)
			}
		}
	}
	return v, nil
}

func (v *View) choose(idx int) tea.Cmd {
	item := v.items[idx]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Gradebook"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Grade calculators from your syllabi"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		label := fmt.Sprintf("%d. %s", i+1, item.Label)
		if i != v.selected {
			b.WriteString("  " + v.styles.Normal.Render(label) + "\n")
			continue
		}
		b.WriteString("> " + v.styles.Subtitle.Render(label))
		if item.Detail != "" {
			b.WriteString("  " + v.styles.Muted.Render(item.Detail))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [1-9] Jump  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the visible menu items.
func (v *View) Items() []Item {
	return v.items
}
