package ui

import "github.com/charmbracelet/bubbles/key"

// GState represents the state for "gg" navigation.
type GState int

const (
	GStateIdle GState = iota
	GStateFirstG
)

// KeyMap defines all keybindings for nav and carry mode.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	Top           key.Binding
	Bottom        key.Binding
	PickUp        key.Binding
	Open          key.Binding
	Back          key.Binding
	MoveUp        key.Binding
	MoveDown      key.Binding
	MoveLeft      key.Binding
	MoveRight     key.Binding
	AddDay        key.Binding
	RenameDay     key.Binding
	DeleteDay     key.Binding
	ShiftDayLeft  key.Binding
	ShiftDayRight key.Binding
	Note          key.Binding
	Filter        key.Binding
	Distances     key.Binding
	Reload        key.Binding
	Quit          key.Binding
	Help          key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next day"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		PickUp: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pick up/drop"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "to prev day"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "to next day"),
		),
		AddDay: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add day"),
		),
		RenameDay: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename day"),
		),
		DeleteDay: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete day"),
		),
		ShiftDayLeft: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "day left"),
		),
		ShiftDayRight: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "day right"),
		),
		Note: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "note"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Distances: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "distances"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// FormKeyMap defines keybindings for dialogs.
type FormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

// DefaultFormKeyMap returns the default dialog keybindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
