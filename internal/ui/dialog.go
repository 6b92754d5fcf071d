package ui

import (
	"strings"
	"tripboard/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dialogKind int

const (
	dialogAddDay dialogKind = iota
	dialogRenameDay
	dialogDeleteDay
	dialogNote
	dialogFilter
)

// DialogModel is a single-field prompt. Delete confirmations have no input
// and answer with y/n.
type DialogModel struct {
	kind   dialogKind
	title  string
	hint   string
	target string // container or location id the dialog acts on
	input  textinput.Model
	keys   FormKeyMap
	error  string
}

func newDialog(kind dialogKind, title, target, value, placeholder string) *DialogModel {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 200
	input.SetValue(value)
	input.CursorEnd()
	input.Focus()

	return &DialogModel{
		kind:   kind,
		title:  title,
		target: target,
		input:  input,
		keys:   DefaultFormKeyMap(),
	}
}

// NewAddDayDialog prompts for the title of a new day.
func NewAddDayDialog(defaultTitle string) *DialogModel {
	d := newDialog(dialogAddDay, "Add day", "", "", defaultTitle)
	d.hint = "leave empty for " + defaultTitle
	return d
}

// NewRenameDayDialog prompts for a day's new title.
func NewRenameDayDialog(c model.Container) *DialogModel {
	return newDialog(dialogRenameDay, "Rename "+c.Title, c.ID, c.Title, "Day title")
}

// NewDeleteDayDialog asks to confirm removing a day.
func NewDeleteDayDialog(c model.Container, items int) *DialogModel {
	d := newDialog(dialogDeleteDay, "Delete "+c.Title+"?", c.ID, "", "")
	d.input.Blur()
	if items > 0 {
		d.hint = "its places go back to " + model.Unscheduled
	}
	return d
}

// NewNoteDialog edits the note on an item.
func NewNoteDialog(loc model.Location, note string) *DialogModel {
	return newDialog(dialogNote, "Note for "+loc.Name, loc.ID, note, "e.g. book tickets ahead")
}

// NewFilterDialog edits the board filter.
func NewFilterDialog(current string) *DialogModel {
	d := newDialog(dialogFilter, "Filter places", "", current, "name or city")
	d.hint = "empty clears the filter"
	return d
}

// Update handles input.
func (d DialogModel) Update(msg tea.Msg) (DialogModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}

	if d.kind == dialogDeleteDay {
		switch keyMsg.String() {
		case "y", "Y", "enter":
			return d, submit("y")
		case "n", "N", "esc":
			return d, cancel
		}
		return d, nil
	}

	switch {
	case key.Matches(keyMsg, d.keys.Cancel):
		return d, cancel
	case key.Matches(keyMsg, d.keys.Submit):
		return d, submit(strings.TrimSpace(d.input.Value()))
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(keyMsg)
	return d, cmd
}

func cancel() tea.Msg {
	return model.FormCancelledMsg{}
}

func submit(value string) tea.Cmd {
	return func() tea.Msg {
		return model.FormSubmittedMsg{Value: value}
	}
}

// View renders the dialog.
func (d *DialogModel) View(width int) string {
	var parts []string
	parts = append(parts, LabelStyle.Render(d.title))
	if d.kind == dialogDeleteDay {
		parts = append(parts, NormalRowStyle.Render("y confirm   n cancel"))
	} else {
		parts = append(parts, ActiveBorderStyle.Padding(0, 1).Render(d.input.View()))
	}
	if d.hint != "" {
		parts = append(parts, HelpDescStyle.Render(d.hint))
	}
	if d.error != "" {
		parts = append(parts, ErrorStyle.Render(d.error))
	}

	w := width - 4
	if w > 60 {
		w = 60
	}
	return PanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
