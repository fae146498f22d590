// Package importer provides the paste-a-syllabus view for the TUI.
package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
)

// View takes pasted syllabus text, previews what the parser finds and
// creates a calculator from it.
type View struct {
	ctx      context.Context
	styles   *styles.Styles
	keys     *keymap.KeyMap
	syllabus driving.SyllabusService

	text textarea.Model
	name *input.Field
	// nameFocused is true while the name override has focus.
	nameFocused bool

	result  *driving.ImportResult
	err     error
	working bool
	width   int
	height  int
}

// NewView creates a new import view.
func NewView(s *styles.Styles, syllabus driving.SyllabusService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ta := textarea.New()
	ta.Placeholder = "Paste syllabus text here..."
	ta.ShowLineNumbers = false
	// Zero lifts the length and line limits; syllabi run long.
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(76)
	ta.SetHeight(12)
	ta.Focus()

	name := input.NewField(s, "Name")
	name.SetPlaceholder("optional, defaults to the detected subject")
	name.Blur()

	return &View{
		ctx:      context.Background(),
		styles:   s,
		keys:     keymap.DefaultKeyMap(),
		syllabus: syllabus,
		text:     ta,
		name:     name,
	}
}

// WithContext sets the context used by service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the text area.
func (v *View) Init() tea.Cmd {
	return textarea.Blink
}

// Reset clears the text, the name and any previous result.
func (v *View) Reset() {
	v.text.Reset()
	v.name.Reset()
	v.result = nil
	v.err = nil
	v.working = false
	v.focusText()
}

func (v *View) focusText() {
	v.nameFocused = false
	v.name.Blur()
	v.text.Focus()
}

func (v *View) focusName() {
	v.nameFocused = true
	v.text.Blur()
	v.name.Focus()
}

// Update handles messages for the import view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ImportCompleted:
		v.working = false
		v.result = msg.Result
		v.err = msg.Err
		return v, nil
	}

	return v.forward(msg)
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	if v.imported() {
		switch key {
		case "enter":
			id := v.result.Calculator.ID
			return v, func() tea.Msg { return messages.CalculatorSelected{ID: id} }
		case "n":
			v.Reset()
			return v, textarea.Blink
		case "esc":
			return v, backToMenu
		}
		return v, nil
	}

	switch {
	case keymap.Matches(key, v.keys.Back):
		return v, backToMenu
	case key == "tab" || key == "shift+tab":
		if v.nameFocused {
			v.focusText()
		} else {
			v.focusName()
		}
		return v, nil
	case keymap.Matches(key, v.keys.Preview):
		return v, v.submit(true)
	case keymap.Matches(key, v.keys.Submit):
		return v, v.submit(false)
	}

	return v.forward(msg)
}

func (v *View) forward(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	if v.nameFocused {
		v.name, cmd = v.name.Update(msg)
		return v, cmd
	}
	v.text, cmd = v.text.Update(msg)
	return v, cmd
}

func backToMenu() tea.Msg {
	return messages.ViewChanged{View: messages.ViewMenu}
}

func (v *View) submit(dryRun bool) tea.Cmd {
	text := v.text.Value()
	if strings.TrimSpace(text) == "" {
		v.err = fmt.Errorf("%w: paste some syllabus text first", domain.ErrEmptyDocument)
		v.result = nil
		return nil
	}
	if v.working {
		return nil
	}
	v.working = true
	v.err = nil

	opts := driving.ImportOptions{Name: strings.TrimSpace(v.name.Value()), DryRun: dryRun}
	return func() tea.Msg {
		if v.syllabus == nil {
			return messages.ImportCompleted{Err: fmt.Errorf("syllabus service not available")}
		}
		res, err := v.syllabus.ImportText(v.ctx, text, opts)
		return messages.ImportCompleted{Result: res, Err: err}
	}
}

// imported reports whether the last submit created a calculator.
func (v *View) imported() bool {
	return v.result != nil && v.result.Calculator != nil
}

// View renders the import view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Import syllabus"))
	b.WriteString("\n\n")

	if v.imported() {
		c := v.result.Calculator
		b.WriteString(v.styles.Success.Render(fmt.Sprintf("Created calculator #%d: %s", c.ID, c.Name)))
		b.WriteString("\n\n")
		b.WriteString(v.renderParsed(v.result.Parsed))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] open calculator  [n] import another  [esc] back"))
		return b.String()
	}

	b.WriteString(v.styles.Border.Render(v.text.View()))
	b.WriteString("\n")
	b.WriteString(v.name.View())
	b.WriteString("\n\n")

	switch {
	case v.working:
		b.WriteString(v.styles.Muted.Render("Parsing..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	case v.result != nil:
		b.WriteString(v.styles.Subtitle.Render("Preview"))
		b.WriteString("\n")
		b.WriteString(v.renderParsed(v.result.Parsed))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[ctrl+p] preview  [ctrl+s] import  [tab] switch field  [esc] back"))
	return b.String()
}

func (v *View) renderParsed(p domain.ParseResult) string {
	lines := []string{v.styles.Normal.Render("Subject: " + orDash(p.Name))}
	if len(p.Assignments) == 0 {
		lines = append(lines, v.styles.Warning.Render("No graded assignments found; one blank row will be added."))
		return strings.Join(lines, "\n")
	}

	total := 0.0
	for i, a := range p.Assignments {
		total += domain.ParseWeight(a.Weight)
		line := fmt.Sprintf("%2d. %-32s %6s%%", i+1, a.Name, a.Weight)
		if a.DueDate != "" {
			line += "  due " + a.DueDate
		}
		lines = append(lines, v.styles.Normal.Render(line))
	}
	summary := fmt.Sprintf("%d assignments, total weight %s%%",
		len(p.Assignments), strconv.FormatFloat(total, 'f', -1, 64))
	style := v.styles.Muted
	if total != 100 {
		style = v.styles.Warning
	}
	lines = append(lines, style.Render(summary))
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height

	w := width - 4
	if w < 30 {
		w = 30
	}
	h := height - 16
	if h < 5 {
		h = 5
	}
	v.text.SetWidth(w)
	v.text.SetHeight(h)
	v.name.SetWidth(width)
}

// SetText replaces the pasted text.
func (v *View) SetText(text string) {
	v.text.SetValue(text)
}

// Text returns the pasted text.
func (v *View) Text() string {
	return v.text.Value()
}

// SetName sets the calculator name override.
func (v *View) SetName(name string) {
	v.name.SetValue(name)
}

// NameFocused reports whether the name field has focus.
func (v *View) NameFocused() bool {
	return v.nameFocused
}

// Result returns the last import or preview result.
func (v *View) Result() *driving.ImportResult {
	return v.result
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
