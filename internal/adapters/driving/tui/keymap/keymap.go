// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Add creates a calculator or row.
	Add key.Binding

	// Delete removes the selected calculator or row.
	Delete key.Binding

	// Reload refreshes the current view.
	Reload key.Binding

	// Sync runs a cloud sync.
	Sync key.Binding

	// Grade edits the selected row's grade.
	Grade key.Binding

	// Weight edits the selected row's weight.
	Weight key.Binding

	// Rename edits the selected row's or calculator's name.
	Rename key.Binding

	// Due edits the selected row's due date.
	Due key.Binding

	// Target edits the desired final grade.
	Target key.Binding

	// MoveUp moves the selected row up.
	MoveUp key.Binding

	// MoveDown moves the selected row down.
	MoveDown key.Binding

	// Preview parses pasted text without saving.
	Preview key.Binding

	// Submit saves pasted text as a calculator.
	Submit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Sync: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sync"),
		),
		Grade: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "grade"),
		),
		Weight: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "weight"),
		),
		Rename: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "name"),
		),
		Due: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "due date"),
		),
		Target: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "target"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Preview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "preview"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "import"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ListHelp returns keybindings for the calculator list.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Select, k.Add, k.Delete, k.Sync, k.Back}
}

// DetailHelp returns keybindings for the calculator detail view.
func (k *KeyMap) DetailHelp() []key.Binding {
	return []key.Binding{k.Grade, k.Weight, k.Rename, k.Due, k.Target, k.Add, k.Delete, k.Back}
}

// ImportHelp returns keybindings for the import view.
func (k *KeyMap) ImportHelp() []key.Binding {
	return []key.Binding{k.Preview, k.Submit, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Add, k.Delete, k.Reload, k.Sync},
		{k.Grade, k.Weight, k.Rename, k.Due, k.Target, k.MoveUp, k.MoveDown},
		{k.Preview, k.Submit},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
