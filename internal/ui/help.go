package ui

import (
	"strings"
	"tripboard/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	switch mode {
	case model.ModeInsert:
		return renderDialogHelp(width)
	case model.ModeCarry:
		return renderCarryHelp(width)
	}

	if screen == model.ScreenLocationDetail {
		return renderDetailHelp(width)
	}
	return renderBoardHelp(width)
}

func renderBoardHelp(width int) string {
	keys := []string{
		helpKey("hjkl", "navigate"),
		helpKey("space", "pick up"),
		helpKey("HJKL", "move"),
		helpKey("enter", "details"),
		helpKey("a/r/D", "add/rename/delete day"),
		helpKey("n", "note"),
		helpKey("/", "filter"),
		helpKey("?", "help"),
	}
	return renderHelpLine(keys, width)
}

func renderCarryHelp(width int) string {
	keys := []string{
		helpKey("hjkl", "choose spot"),
		helpKey("space/enter", "drop"),
		helpKey("esc", "put back"),
	}
	return renderHelpLine(keys, width)
}

func renderDetailHelp(width int) string {
	keys := []string{
		helpKey("h/esc", "back"),
		helpKey("n", "note"),
	}
	return renderHelpLine(keys, width)
}

func renderDialogHelp(width int) string {
	keys := []string{
		helpKey("enter", "save"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Board"),
		helpSection([]helpItem{
			{"j / k", "Move down / up within a day"},
			{"h / l", "Previous / next day"},
			{"gg / G", "Jump to top / bottom"},
			{"enter", "Open place details"},
			{"/", "Filter by name or city"},
			{"t", "Toggle distances between stops"},
			{"R", "Reload from storage"},
			{"q", "Quit"},
			{"?", "Toggle help"},
		}),
		titleSection("Moving places"),
		helpSection([]helpItem{
			{"space", "Pick up the selected place"},
			{"hjkl", "Choose where to drop it"},
			{"space / enter", "Drop before the selected place, or at the end of the day on its header"},
			{"esc", "Put it back"},
			{"J / K", "Move one step down / up"},
			{"H / L", "Send to the end of the previous / next day"},
		}),
		titleSection("Days"),
		helpSection([]helpItem{
			{"a", "Add a day"},
			{"r", "Rename the selected day"},
			{"D", "Delete the selected day"},
			{"< / >", "Move the selected day left / right"},
			{"n", "Edit the note on a place"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
