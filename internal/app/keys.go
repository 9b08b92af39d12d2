package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for every mode
type KeyMap struct {
	Quit       key.Binding
	NewNote    key.Binding
	ChangeDir  key.Binding
	Template   key.Binding
	Search     key.Binding
	Settings   key.Binding
	Delete     key.Binding
	Move       key.Binding
	Rename     key.Binding
	Open       key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Enter      key.Binding
	Back       key.Binding
	Select     key.Binding // confirms the browsed folder
	Confirm    key.Binding
	Decline    key.Binding
	ToggleLock key.Binding
	Unlock     key.Binding // leaves locked search results for the query
	Export     key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NewNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		ChangeDir: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chdir"),
		),
		Template: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "template"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "theme"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "parent"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "open"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Select: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "use folder"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Decline: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
		ToggleLock: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "lock/unlock"),
		),
		Unlock: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "edit query"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "copy"),
		),
	}
}
