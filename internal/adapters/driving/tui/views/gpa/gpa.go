// Package gpa provides the overall GPA view for the TUI.
package gpa

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

// View shows the overall GPA, the per-subject breakdown and the active scale.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	service driving.GPAService

	list      *list.List
	report    *driving.GPAReport
	scale     *domain.GradeScale
	showScale bool
	err       error
	loading   bool
	width     int
	height    int
}

// NewView creates a new GPA view.
func NewView(s *styles.Styles, service driving.GPAService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:     context.Background(),
		styles:  s,
		service: service,
		list:    list.New(s, "No calculators yet."),
	}
}

// WithContext sets the context used by service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the report.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		if v.service == nil {
			return messages.GPALoaded{Err: fmt.Errorf("GPA service not available")}
		}
		report, err := v.service.Overall(v.ctx)
		if err != nil {
			return messages.GPALoaded{Err: err}
		}
		scale, err := v.service.Scale(v.ctx)
		return messages.GPALoaded{Report: report, Scale: scale, Err: err}
	}
}

// Update handles messages for the GPA view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.GPALoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.report = msg.Report
			v.scale = msg.Scale
			v.list.SetItems(v.listItems())
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if v.report != nil {
				idx := v.list.Selected()
				if idx >= 0 && idx < len(v.report.Subjects) {
					id := v.report.Subjects[idx].CalculatorID
					return v, func() tea.Msg { return messages.CalculatorSelected{ID: id} }
				}
			}
		case "tab":
			v.showScale = !v.showScale
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
	items := make([]list.Item, len(v.report.Subjects))
	for i, s := range v.report.Subjects {
		item := list.Item{Title: s.Name}
		if s.Counted {
			item.Badge = v.styles.ForPercent(s.Current).Render(
				fmt.Sprintf("%6.2f%%  %-3s %s", s.Current, s.Info.Letter, s.Info.PointsString()),
			)
		} else {
			item.Badge = v.styles.Muted.Render("not graded yet")
		}
		items[i] = item
	}
	return items
}

// View renders the GPA view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("GPA"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Calculating..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.report != nil:
		b.WriteString(v.renderReport())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] open calculator  [tab] toggle scale  [r] reload  [esc] back"))
	return b.String()
}

func (v *View) renderReport() string {
	var b strings.Builder

	total := len(v.report.Subjects)
	if v.report.Counted == 0 {
		b.WriteString(v.styles.Muted.Render("Overall GPA: - (no graded subjects)"))
	} else {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf(
			"Overall GPA: %s (%d of %d subjects graded)",
			domain.FormatGPA(v.report.GPA), v.report.Counted, total,
		)))
	}
	b.WriteString("\n\n")
	b.WriteString(v.list.View())

	if v.showScale && v.scale != nil {
		b.WriteString("\n\n")
		b.WriteString(v.renderScale())
	}
	return b.String()
}

func (v *View) renderScale() string {
	sorted := v.scale.Sorted()
	lines := []string{v.styles.Subtitle.Render(fmt.Sprintf("%s (max %.1f)", sorted.Name, sorted.Max))}
	for _, band := range sorted.Bands {
		lines = append(lines, v.styles.Normal.Render(fmt.Sprintf(
			"  %-3s from %5.1f%%  %.2f points", band.Letter, band.Min, band.Points,
		)))
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-8)
}

// Report returns the loaded report.
func (v *View) Report() *driving.GPAReport {
	return v.report
}

// ShowingScale reports whether the scale table is visible.
func (v *View) ShowingScale() bool {
	return v.showScale
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
