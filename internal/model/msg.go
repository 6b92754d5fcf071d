package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// BoardLoadedMsg is sent once the catalog and the persisted itinerary are loaded.
type BoardLoadedMsg struct {
	Offline bool // catalog served from the local snapshot
}

// SaveResultMsg is sent when a persist call for an itinerary snapshot resolves.
type SaveResultMsg struct {
	Version    uint64
	Label      string
	Err        error
	Superseded bool
}

// FormCancelledMsg is sent when a dialog is cancelled.
type FormCancelledMsg struct{}

// FormSubmittedMsg carries the value entered in a dialog.
type FormSubmittedMsg struct {
	Value string
}

// Screen represents different app screens.
type Screen int

const (
	ScreenBoard Screen = iota
	ScreenLocationDetail
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav    Mode = iota
	ModeCarry              // an item is picked up and follows the cursor
	ModeInsert             // a dialog owns the keyboard
)
