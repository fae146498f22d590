// Package detail provides the single-calculator editing view for the TUI.
package detail

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

// Field identifies what an open edit changes.
type Field int

const (
	FieldNone Field = iota
	FieldGrade
	FieldWeight
	FieldRowName
	FieldDueDate
	FieldTarget
	FieldCalculatorName
)

var fieldLabels = map[Field]string{
	FieldGrade:          "Grade",
	FieldWeight:         "Weight %",
	FieldRowName:        "Assignment",
	FieldDueDate:        "Due date",
	FieldTarget:         "Target %",
	FieldCalculatorName: "Subject",
}

// View shows one calculator's rows and grade summary and edits them in place.
type View struct {
	ctx         context.Context
	styles      *styles.Styles
	keys        *keymap.KeyMap
	calculators driving.CalculatorService

	id      int
	calc    *domain.Calculator
	summary *domain.GradeSummary
	rows    *list.List
	field   *input.Field
	editing Field

	// selectAfterLoad moves the cursor once the next load lands, -1 for none.
	selectAfterLoad int
	// pendingDelete is the assignment awaiting a y/n confirmation.
	pendingDelete string

	status  string
	err     error
	loading bool
	width   int
	height  int
}

// NewView creates a new detail view.
func NewView(s *styles.Styles, calculators driving.CalculatorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:             context.Background(),
		styles:          s,
		keys:            keymap.DefaultKeyMap(),
		calculators:     calculators,
		rows:            list.New(s, "No assignments. Press [a] to add one."),
		field:           input.NewField(s, ""),
		selectAfterLoad: -1,
	}
}

// WithContext sets the context used by service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetCalculator switches the view to calculator id and loads it.
func (v *View) SetCalculator(id int) tea.Cmd {
	if id != v.id {
		v.calc = nil
		v.summary = nil
		v.rows.SetItems(nil)
	}
	v.id = id
	v.editing = FieldNone
	v.pendingDelete = ""
	v.status = ""
	v.err = nil
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	id := v.id
	return func() tea.Msg {
		if v.calculators == nil {
			return messages.CalculatorLoaded{Err: fmt.Errorf("calculator service not available")}
		}
		calc, err := v.calculators.Get(v.ctx, id)
		if err != nil {
			return messages.CalculatorLoaded{Err: err}
		}
		sum, err := v.calculators.Summary(v.ctx, id)
		if err != nil {
			return messages.CalculatorLoaded{Err: err}
		}
		return messages.CalculatorLoaded{Calculator: calc, Summary: sum}
	}
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.editing != FieldNone {
			return v.handleEditKey(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.CalculatorLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		if msg.Calculator == nil || msg.Calculator.ID != v.id {
			return v, nil
		}
		v.calc = msg.Calculator
		v.summary = msg.Summary
		v.rows.SetItems(v.rowItems())
		if v.selectAfterLoad >= 0 {
			v.rows.SetSelected(v.selectAfterLoad)
			v.selectAfterLoad = -1
		}
		return v, nil

	case messages.CalculatorChanged:
		if msg.ID != v.id {
			return v, nil
		}
		if msg.Err != nil {
			v.err = msg.Err
			v.selectAfterLoad = -1
			return v, nil
		}
		v.err = nil
		v.status = msg.Status
		return v, v.load()
	}

	if v.editing != FieldNone {
		var cmd tea.Cmd
		v.field, cmd = v.field.Update(msg)
		return v, cmd
	}
	return v, nil
}

//nolint:gocyclo // flat key dispatch
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.pendingDelete != "" {
		rowID := v.pendingDelete
		v.pendingDelete = ""
		if msg.String() == "y" || msg.String() == "Y" {
			return v, v.change("Row removed", func(ctx context.Context) error {
				return v.calculators.RemoveAssignment(ctx, v.id, rowID)
			})
		}
		v.status = "Delete cancelled"
		return v, nil
	}

	if v.calc == nil {
		if keymap.Matches(msg.String(), v.keys.Back) {
			return v, backToList
		}
		return v, nil
	}

	key := msg.String()
	row := v.selectedRow()
	switch {
	case keymap.Matches(key, v.keys.Back):
		return v, backToList
	case keymap.Matches(key, v.keys.Grade) && row != nil:
		return v, v.startEdit(FieldGrade, row.Grade)
	case keymap.Matches(key, v.keys.Weight) && row != nil:
		return v, v.startEdit(FieldWeight, row.Weight)
	case keymap.Matches(key, v.keys.Rename) && row != nil:
		return v, v.startEdit(FieldRowName, row.Name)
	case keymap.Matches(key, v.keys.Due) && row != nil:
		return v, v.startEdit(FieldDueDate, row.DueDate)
	case keymap.Matches(key, v.keys.Target):
		return v, v.startEdit(FieldTarget, v.calc.DesiredGrade)
	case key == "N":
		return v, v.startEdit(FieldCalculatorName, v.calc.Name)
	case keymap.Matches(key, v.keys.Add):
		v.selectAfterLoad = len(v.calc.Assignments)
		return v, v.change("Row added", func(ctx context.Context) error {
			_, err := v.calculators.AddAssignment(ctx, v.id, domain.Assignment{})
			return err
		})
	case keymap.Matches(key, v.keys.Delete) && row != nil:
		v.pendingDelete = row.ID
		return v, nil
	case keymap.Matches(key, v.keys.MoveUp) && row != nil:
		return v, v.move(row.ID, v.rows.Selected()-1)
	case keymap.Matches(key, v.keys.MoveDown) && row != nil:
		return v, v.move(row.ID, v.rows.Selected()+1)
	case keymap.Matches(key, v.keys.Reload):
		v.loading = true
		return v, v.load()
	default:
		v.rows, _ = v.rows.Update(msg)
	}
	return v, nil
}

func backToList() tea.Msg {
	return messages.ViewChanged{View: messages.ViewCalculators}
}

func (v *View) move(rowID string, to int) tea.Cmd {
	if to < 0 || to >= len(v.calc.Assignments) {
		return nil
	}
	v.selectAfterLoad = to
	return v.change(fmt.Sprintf("Moved to position %d", to+1), func(ctx context.Context) error {
		return v.calculators.MoveAssignment(ctx, v.id, rowID, to)
	})
}

func (v *View) startEdit(f Field, current string) tea.Cmd {
	v.editing = f
	v.status = ""
	v.err = nil
	v.field.Reset()
	v.field.SetLabel(fieldLabels[f])
	v.field.SetValidator(validatorFor(f))
	v.field.SetPlaceholder(placeholderFor(f))
	v.field.SetValue(current)
	return v.field.Focus()
}

func validatorFor(f Field) func(string) error {
	switch f {
	case FieldGrade:
		return func(s string) error {
			if !domain.IsValidGrade(s) {
				return errors.New("enter a number or a fraction such as 42/50")
			}
			return nil
		}
	case FieldWeight, FieldTarget:
		return func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" {
				return nil
			}
			if n, err := strconv.ParseFloat(s, 64); err != nil || n < 0 {
				return errors.New("enter a non-negative number")
			}
			return nil
		}
	default:
		return nil
	}
}

func placeholderFor(f Field) string {
	switch f {
	case FieldGrade:
		return "e.g. 85 or 42/50, empty if not graded"
	case FieldWeight:
		return "e.g. 20"
	case FieldDueDate:
		return "e.g. Dec 12"
	case FieldTarget:
		return "e.g. 85, empty to clear"
	default:
		return ""
	}
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // only confirm and cancel are special
	switch msg.Type {
	case tea.KeyEsc:
		v.editing = FieldNone
		v.field.Blur()
		return v, nil
	case tea.KeyEnter:
		if v.field.Err() != nil {
			return v, nil
		}
		return v, v.commit()
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

func (v *View) commit() tea.Cmd {
	f := v.editing
	value := strings.TrimSpace(v.field.Value())
	v.editing = FieldNone
	v.field.Blur()

	switch f {
	case FieldTarget:
		status := "Target set to " + value + "%"
		if value == "" {
			status = "Target cleared"
		}
		return v.change(status, func(ctx context.Context) error {
			return v.calculators.SetDesiredGrade(ctx, v.id, value)
		})
	case FieldCalculatorName:
		return v.change("Renamed to "+value, func(ctx context.Context) error {
			return v.calculators.Rename(ctx, v.id, value)
		})
	case FieldNone:
		return nil
	}

	row := v.selectedRow()
	if row == nil {
		return nil
	}
	updated := *row
	switch f {
	case FieldGrade:
		updated.Grade = value
	case FieldWeight:
		updated.Weight = value
	case FieldRowName:
		updated.Name = value
	case FieldDueDate:
		updated.DueDate = value
	case FieldNone, FieldTarget, FieldCalculatorName:
	}
	n := v.rows.Selected() + 1
	return v.change(fmt.Sprintf("Updated row %d", n), func(ctx context.Context) error {
		return v.calculators.UpdateAssignment(ctx, v.id, updated)
	})
}

// change runs fn against the service and reports the outcome.
func (v *View) change(status string, fn func(context.Context) error) tea.Cmd {
	id := v.id
	return func() tea.Msg {
		if err := fn(v.ctx); err != nil {
			return messages.CalculatorChanged{ID: id, Err: err}
		}
		return messages.CalculatorChanged{ID: id, Status: status}
	}
}

func (v *View) rowItems() []list.Item {
	items := make([]list.Item, len(v.calc.Assignments))
	for i, a := range v.calc.Assignments {
		name := a.Name
		if name == "" {
			name = "(unnamed)"
		}
		weight := "-"
		if a.Weight != "" {
			weight = a.Weight + "%"
		}
		due := a.DueDate
		if due == "" {
			due = "-"
		}
		items[i] = list.Item{
			Title: fmt.Sprintf("%2d. %-28s %7s  due %s", i+1, name, weight, due),
			Badge: v.gradeBadge(a),
		}
	}
	return items
}

func (v *View) gradeBadge(a domain.Assignment) string {
	if !a.IsCompleted() {
		return v.styles.Muted.Render("      -")
	}
	pct, _ := domain.ParseGrade(a.Grade)
	return v.styles.ForPercent(pct).Render(fmt.Sprintf("%7s", a.Grade))
}

func (v *View) selectedRow() *domain.Assignment {
	if v.calc == nil {
		return nil
	}
	idx := v.rows.Selected()
	if idx < 0 || idx >= len(v.calc.Assignments) {
		return nil
	}
	return &v.calc.Assignments[idx]
}

// View renders the detail view.
func (v *View) View() string {
	var b strings.Builder

	if v.calc == nil {
		b.WriteString(v.styles.Title.Render("Calculator"))
		b.WriteString("\n\n")
		switch {
		case v.err != nil:
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		default:
			b.WriteString(v.styles.Muted.Render("Loading calculator..."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("%s (#%d)", v.calc.Name, v.calc.ID)))
	b.WriteString("\n\n")
	b.WriteString(v.rows.View())
	b.WriteString("\n\n")
	b.WriteString(v.renderSummary())
	b.WriteString("\n\n")

	switch {
	case v.editing != FieldNone:
		b.WriteString(v.field.View())
		b.WriteString("\n")
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
		return b.String()
	case v.pendingDelete != "":
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Delete row %d? [y/n]", v.rows.Selected()+1)))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n")
	case v.status != "":
		b.WriteString(v.styles.Success.Render(v.status))
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render(
		"[g] grade  [w] weight  [n] name  [u] due  [t] target  [N] rename subject\n" +
			"[a] add row  [d] delete row  [K/J] move  [r] reload  [esc] back",
	))
	return b.String()
}

func (v *View) renderSummary() string {
	sum := v.summary
	if sum == nil {
		return ""
	}

	var lines []string
	if sum.CompletedWeight == 0 {
		lines = append(lines, v.styles.Muted.Render("Current grade: nothing graded yet"))
	} else {
		current := fmt.Sprintf("%.2f%%", sum.Current)
		if sum.Letter.Valid {
			current += fmt.Sprintf(" (%s, %s points)", sum.Letter.Letter, sum.Letter.PointsString())
		}
		lines = append(lines, v.styles.Normal.Render("Current grade: ")+v.styles.ForPercent(sum.Current).Render(current))
	}
	lines = append(lines, v.styles.Muted.Render(fmt.Sprintf(
		"Graded weight: %s%%, remaining %s%%",
		strconv.FormatFloat(sum.CompletedWeight, 'f', -1, 64),
		strconv.FormatFloat(sum.RemainingWeight, 'f', -1, 64),
	)))

	switch {
	case v.calc.DesiredGrade == "":
		lines = append(lines, v.styles.Muted.Render("Target: none"))
	case sum.Required != nil:
		lines = append(lines, v.styles.Normal.Render(fmt.Sprintf(
			"Target: %s%%, needed on remaining work: %.2f%%", v.calc.DesiredGrade, *sum.Required,
		)))
	case sum.RemainingWeight <= 0:
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf(
			"Target: %s%%, no ungraded work left", v.calc.DesiredGrade,
		)))
	default:
		lines = append(lines, v.styles.Warning.Render(fmt.Sprintf(
			"Target: %s%% is out of reach", v.calc.DesiredGrade,
		)))
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.rows.SetDimensions(width, height-12)
	v.field.SetWidth(width)
}

// CalculatorID returns the calculator being shown.
func (v *View) CalculatorID() int {
	return v.id
}

// Calculator returns the loaded calculator, nil before the first load.
func (v *View) Calculator() *domain.Calculator {
	return v.calc
}

// Summary returns the loaded grade summary.
func (v *View) Summary() *domain.GradeSummary {
	return v.summary
}

// Editing returns the field being edited, FieldNone when browsing.
func (v *View) Editing() Field {
	return v.editing
}

// Selected returns the selected row index.
func (v *View) Selected() int {
	return v.rows.Selected()
}

// Status returns the last success message.
func (v *View) Status() string {
	return v.status
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
