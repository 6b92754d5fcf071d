package ui

import (
	"fmt"
	"strings"
	"tripboard/internal/model"
	"tripboard/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// LocationDetailModel represents the location detail screen.
type LocationDetailModel struct {
	location model.Location
	item     model.ItineraryItem
	prev     *model.Location // previous stop on the same day
}

// NewLocationDetailModel creates a new location detail model.
func NewLocationDetailModel(loc model.Location, item model.ItineraryItem, prev *model.Location) *LocationDetailModel {
	return &LocationDetailModel{location: loc, item: item, prev: prev}
}

// View renders the location detail.
func (m *LocationDetailModel) View(width, height int) string {
	l := m.location

	shortcuts := HelpDescStyle.Render("n note  h back")
	header := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(shortcuts)

	var fields []string
	fields = append(fields, renderField("Name", l.Name))
	fields = append(fields, renderField("City", l.City))
	if l.Type != "" {
		fields = append(fields, renderField("Type", l.Type))
	}
	position := fmt.Sprintf("%s, stop %d", m.item.Day, m.item.Order+1)
	if m.item.Day == model.Unscheduled {
		position = model.Unscheduled
	}
	fields = append(fields, renderField("Planned", position))

	if l.HasCoordinates() {
		fields = append(fields, renderField("Coordinates", fmt.Sprintf("%.5f, %.5f", *l.Lat, *l.Lng)))
		if hub := util.FormatHubDistance(l.City, l.Lat, l.Lng); hub != "" {
			fields = append(fields, renderField("Distance", hub))
		}
		if m.prev != nil && m.prev.HasCoordinates() {
			km := util.HaversineKm(*m.prev.Lat, *m.prev.Lng, *l.Lat, *l.Lng)
			fields = append(fields, renderField("From previous", fmt.Sprintf("%s (%s)", util.FormatDistance(km), m.prev.Name)))
		}
	}
	if l.GoogleMapsURL != "" {
		fields = append(fields, renderField("Map", l.GoogleMapsURL))
	}

	sections := []string{strings.Join(fields, "\n")}

	divider := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render(strings.Repeat("─", max(width-8, 0)))

	if l.Description != "" {
		sections = append(sections, divider, NormalRowStyle.Render(l.Description))
	}
	if m.item.Note != "" {
		sections = append(sections, divider, LabelStyle.Render("Note:")+" "+NormalRowStyle.Render(m.item.Note))
	} else {
		sections = append(sections, HelpDescStyle.Render("No note yet. Press 'n' to add one."))
	}

	info := PanelStyle.
		Width(width - 4).
		Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, info)
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + NormalRowStyle.Render(value)
}
