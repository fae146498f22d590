// Package calculators provides the calculator list view for the TUI.
package calculators

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

// View lists every calculator with its current grade.
type View struct {
	ctx         context.Context
	styles      *styles.Styles
	calculators driving.CalculatorService
	sync        driving.SyncService

	list      *list.List
	items     []domain.Calculator
	summaries map[int]*domain.GradeSummary

	// pendingDelete is the ID awaiting a y/n confirmation, 0 when none.
	pendingDelete int

	status  string
	err     error
	loading bool
	syncing bool
	width   int
	height  int
}

// NewView creates a new calculator list view. sync may be nil.
func NewView(s *styles.Styles, calculators driving.CalculatorService, sync driving.SyncService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:         context.Background(),
		styles:      s,
		calculators: calculators,
		sync:        sync,
		list:        list.New(s, "No calculators yet. Press [a] to add one or [i] to import a syllabus."),
		summaries:   make(map[int]*domain.GradeSummary),
	}
}

// WithContext sets the context used by service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the calculators.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.pendingDelete = 0
	return v.load()
}

// calculatorsLoadedMsg extends messages.CalculatorsLoaded with summaries.
type calculatorsLoadedMsg struct {
	messages.CalculatorsLoaded
	Summaries map[int]*domain.GradeSummary
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.calculators == nil {
			return calculatorsLoadedMsg{
				CalculatorsLoaded: messages.CalculatorsLoaded{Err: fmt.Errorf("calculator service not available")},
			}
		}

		calcs, err := v.calculators.List(v.ctx)
		if err != nil {
			return calculatorsLoadedMsg{CalculatorsLoaded: messages.CalculatorsLoaded{Err: err}}
		}

		summaries := make(map[int]*domain.GradeSummary, len(calcs))
		for i := range calcs {
			if sum, err := v.calculators.Summary(v.ctx, calcs[i].ID); err == nil {
				summaries[calcs[i].ID] = sum
			}
		}

		return calculatorsLoadedMsg{
			CalculatorsLoaded: messages.CalculatorsLoaded{Calculators: calcs},
			Summaries:         summaries,
		}
	}
}

// Update handles messages for the calculator list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case calculatorsLoadedMsg:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.items = msg.Calculators
		v.summaries = msg.Summaries
		v.list.SetItems(v.listItems())
		return v, nil

	case messages.CalculatorChanged:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.status = msg.Status
		return v, v.load()

	case messages.CalculatorDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.status = fmt.Sprintf("Deleted calculator #%d", msg.ID)
		return v, v.load()

	case messages.SyncCompleted:
		v.syncing = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.status = "Sync complete"
		if msg.Report != nil {
			v.status = fmt.Sprintf("Sync complete: kept %d, added %d", msg.Report.Kept, msg.Report.Appended)
		}
		return v, v.load()
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.pendingDelete != 0 {
		id := v.pendingDelete
		v.pendingDelete = 0
		if msg.String() == "y" || msg.String() == "Y" {
			return v, v.delete(id)
		}
		v.status = "Delete cancelled"
		return v, nil
	}

	switch msg.String() {
	case "enter":
		if c := v.selectedCalculator(); c != nil {
			id := c.ID
			return v, func() tea.Msg { return messages.CalculatorSelected{ID: id} }
		}
	case "a":
		return v, v.create()
	case "d", "delete":
		if c := v.selectedCalculator(); c != nil {
			v.pendingDelete = c.ID
		}
	case "i":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewImport} }
	case "r":
		v.loading = true
		return v, v.load()
	case "s":
		if v.sync != nil && !v.syncing {
			v.syncing = true
			v.err = nil
			return v, v.runSync()
		}
	default:
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

func (v *View) create() tea.Cmd {
	return func() tea.Msg {
		c, err := v.calculators.Create(v.ctx, "", nil)
		if err != nil {
			return messages.CalculatorChanged{Err: err}
		}
		return messages.CalculatorChanged{ID: c.ID, Status: fmt.Sprintf("Created calculator #%d: %s", c.ID, c.Name)}
	}
}

func (v *View) delete(id int) tea.Cmd {
	return func() tea.Msg {
		return messages.CalculatorDeleted{ID: id, Err: v.calculators.Delete(v.ctx, id)}
	}
}

func (v *View) runSync() tea.Cmd {
	return func() tea.Msg {
		report, err := v.sync.Sync(v.ctx)
		return messages.SyncCompleted{Report: report, Err: err}
	}
}

func (v *View) listItems() []list.Item {
	items := make([]list.Item, len(v.items))
	for i := range v.items {
		c := &v.items[i]
		items[i] = list.Item{
			Title:  fmt.Sprintf("#%-3d %s", c.ID, c.Name),
			Detail: describe(c),
			Badge:  v.badge(v.summaries[c.ID]),
		}
	}
	return items
}

func describe(c *domain.Calculator) string {
	graded := 0
	for _, a := range c.Assignments {
		if a.IsCompleted() {
			graded++
		}
	}
	detail := fmt.Sprintf("%d of %d graded", graded, len(c.Assignments))
	if c.DesiredGrade != "" {
		detail += ", target " + c.DesiredGrade + "%"
	}
	return detail
}

func (v *View) badge(sum *domain.GradeSummary) string {
	if sum == nil || sum.CompletedWeight == 0 {
		return v.styles.Muted.Render("     -")
	}
	text := fmt.Sprintf("%6.2f%%", sum.Current)
	if sum.Letter.Valid {
		text += " " + sum.Letter.Letter
	}
	return v.styles.ForPercent(sum.Current).Render(text)
}

func (v *View) selectedCalculator() *domain.Calculator {
	idx := v.list.Selected()
	if idx < 0 || idx >= len(v.items) {
		return nil
	}
	return &v.items[idx]
}

// View renders the calculator list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Calculators"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading calculators..."))
	case v.err != nil && len(v.items) == 0:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	default:
		b.WriteString(v.list.View())
	}
	b.WriteString("\n\n")

	switch {
	case v.pendingDelete != 0:
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Delete calculator #%d? [y/n]", v.pendingDelete)))
		b.WriteString("\n")
	case v.syncing:
		b.WriteString(v.styles.Muted.Render("Syncing..."))
		b.WriteString("\n")
	case v.err != nil && len(v.items) > 0:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	case v.status != "":
		b.WriteString(v.styles.Success.Render(v.status))
		b.WriteString("\n")
	}

	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	help := "[enter] open  [a] add  [i] import  [d] delete  [r] reload"
	if v.sync != nil {
		help += "  [s] sync"
	}
	return v.styles.Help.Render(help + "  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-8)
}

// Calculators returns the loaded calculators.
func (v *View) Calculators() []domain.Calculator {
	return v.items
}

// SelectedIndex returns the currently selected row.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// PendingDelete returns the calculator awaiting delete confirmation, or 0.
func (v *View) PendingDelete() int {
	return v.pendingDelete
}

// Status returns the last success message.
func (v *View) Status() string {
	return v.status
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
