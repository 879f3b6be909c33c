package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all application keybindings
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Dialog focus
	NextButton key.Binding
	PrevButton key.Binding
	Activate   key.Binding
	Escape     key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// Keys is the default keybinding configuration
var Keys = KeyMap{
	// Navigation
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+b"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+f"),
		key.WithHelp("pgdn", "page down"),
	),

	// Dialog focus
	NextButton: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab", "next button"),
	),
	PrevButton: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("shift+tab", "previous button"),
	),
	Activate: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "press button"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close dialog"),
	),

	// General
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns keybindings for the short help view
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.NextButton, k.PrevButton, k.Activate, k.Escape},
		{k.Help, k.Quit},
	}
}

// DialogHelp returns the bindings active while a dialog holds focus.
func (k *KeyMap) DialogHelp() []key.Binding {
	return []key.Binding{k.NextButton, k.Activate, k.Escape}
}
