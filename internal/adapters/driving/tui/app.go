package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/views/calculators"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/views/deadlines"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/views/gpa"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/views/importer"
	"github.com/custodia-labs/gradebook-cli/internal/adapters/driving/tui/views/menu"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles    *styles.Styles
	keys      *keymap.KeyMap
	statusBar *status.Bar

	menuView        *menu.View
	calculatorsView *calculators.View
	detailView      *detail.View
	importView      *importer.View
	deadlinesView   *deadlines.View
	gpaView         *gpa.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	menuView := menu.NewView(s)
	if ports.Deadline == nil {
		menuView.Hide(messages.ViewDeadlines)
	}
	if ports.GPA == nil {
		menuView.Hide(messages.ViewGPA)
	}

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keys:            km,
		statusBar:       status.NewBar(s, km),
		menuView:        menuView,
		calculatorsView: calculators.NewView(s, ports.Calculator, ports.Sync),
		detailView:      detail.NewView(s, ports.Calculator),
		importView:      importer.NewView(s, ports.Syllabus),
		deadlinesView:   deadlines.NewView(s, ports.Deadline),
		gpaView:         gpa.NewView(s, ports.GPA),
		currentView:     messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.calculatorsView.WithContext(ctx)
	a.detailView.WithContext(ctx)
	a.importView.WithContext(ctx)
	a.deadlinesView.WithContext(ctx)
	a.gpaView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("gradebook"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo,funlen // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	defer a.refreshStatus()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.CalculatorSelected:
		a.currentView = messages.ViewDetail
		a.statusBar.Clear()
		return a, a.detailView.SetCalculator(msg.ID)

	case messages.CalculatorLoaded:
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd

	case messages.CalculatorChanged:
		a.reportChange(msg.Status, msg.Err)
		if a.currentView == messages.ViewDetail {
			a.detailView, cmd = a.detailView.Update(msg)
		} else {
			a.calculatorsView, cmd = a.calculatorsView.Update(msg)
		}
		return a, cmd

	case messages.CalculatorDeleted, messages.SyncCompleted:
		a.calculatorsView, cmd = a.calculatorsView.Update(msg)
		return a, cmd

	case messages.ImportCompleted:
		a.importView, cmd = a.importView.Update(msg)
		return a, cmd

	case messages.DeadlinesLoaded:
		a.deadlinesView, cmd = a.deadlinesView.Update(msg)
		return a, cmd

	case messages.GPALoaded:
		a.gpaView, cmd = a.gpaView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.reportChange("", msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			a.currentView = messages.ViewMenu
		}
		return a, nil
	case messages.ViewMenu, messages.ViewCalculators, messages.ViewDeadlines, messages.ViewGPA:
		if keymap.Matches(msg.String(), a.keys.Help) {
			a.currentView = messages.ViewHelp
			return a, nil
		}
	case messages.ViewDetail, messages.ViewImport:
		// These views take free text, so "?" is typed rather than handled.
	}

	if a.currentView == messages.ViewCalculators && msg.Type == tea.KeyEsc &&
		a.calculatorsView.PendingDelete() == 0 {
		a.currentView = messages.ViewMenu
		a.statusBar.Clear()
		return a, nil
	}

	return a, a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewCalculators:
		a.calculatorsView, cmd = a.calculatorsView.Update(msg)
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewImport:
		a.importView, cmd = a.importView.Update(msg)
	case messages.ViewDeadlines:
		a.deadlinesView, cmd = a.deadlinesView.Update(msg)
	case messages.ViewGPA:
		a.gpaView, cmd = a.gpaView.Update(msg)
	case messages.ViewHelp:
		// Help is static
	}
	return cmd
}

// switchTo activates view and runs its initial load.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.statusBar.Clear()

	switch view {
	case messages.ViewCalculators:
		return a.calculatorsView.Init()
	case messages.ViewImport:
		a.importView.Reset()
		return a.importView.Init()
	case messages.ViewDeadlines:
		return a.deadlinesView.Init()
	case messages.ViewGPA:
		return a.gpaView.Init()
	case messages.ViewDetail:
		return a.detailView.SetCalculator(a.detailView.CalculatorID())
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

func (a *App) reportChange(statusText string, err error) {
	if err != nil {
		a.err = err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(err.Error())
		return
	}
	if statusText != "" {
		a.statusBar.SetState(status.StateSaved)
		a.statusBar.SetMessage(statusText)
	}
}

// refreshStatus matches the status bar hints to the active view.
func (a *App) refreshStatus() {
	a.statusBar.SetCount(len(a.calculatorsView.Calculators()))

	switch a.currentView {
	case messages.ViewCalculators:
		a.statusBar.SetHints(a.keys.ListHelp())
	case messages.ViewDetail:
		a.statusBar.SetHints(a.keys.DetailHelp())
	case messages.ViewImport:
		a.statusBar.SetHints(a.keys.ImportHelp())
	case messages.ViewMenu, messages.ViewDeadlines, messages.ViewGPA, messages.ViewHelp:
		a.statusBar.SetHints(nil)
	}

	if a.currentView == messages.ViewHelp {
		a.statusBar.SetState(status.StateHelp)
	} else if a.statusBar.State() == status.StateHelp {
		a.statusBar.Clear()
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewMenu:
		body = a.menuView.View()
	case messages.ViewCalculators:
		body = a.calculatorsView.View()
	case messages.ViewDetail:
		body = a.detailView.View()
	case messages.ViewImport:
		body = a.importView.View()
	case messages.ViewDeadlines:
		body = a.deadlinesView.View()
	case messages.ViewGPA:
		body = a.gpaView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}
	return body + "\n\n" + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  j/k, ↑/↓    Move
  enter       Open
  esc         Back
  ?           This help
  ctrl+c      Quit

Calculators:
  a           New blank calculator
  i           Import a syllabus
  d           Delete (asks first)
  s           Sync with the cloud

Calculator:
  g / w / n   Edit grade, weight, name of the row
  u           Edit the row's due date
  t           Set the target final grade
  N           Rename the subject
  a / d       Add or delete a row
  K / J       Move the row up or down

Import:
  (paste)     Syllabus text
  tab         Switch to the name field
  ctrl+p      Preview what will be imported
  ctrl+s      Create the calculator

` + a.styles.Help.Render("[esc] back to menu")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// StatusBar returns the status bar, for inspection in tests.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	// One line for the status bar and one for the gap above it.
	body := height - 2
	a.menuView.SetDimensions(width, body)
	a.calculatorsView.SetDimensions(width, body)
	a.detailView.SetDimensions(width, body)
	a.importView.SetDimensions(width, body)
	a.deadlinesView.SetDimensions(width, body)
	a.gpaView.SetDimensions(width, body)
	a.statusBar.SetWidth(width)
}
