package itinerary

import (
	"strings"
	"tripboard/internal/model"
)

// Column is one container with its items in order.
type Column struct {
	Container model.Container
	Items     []model.ItineraryItem
}

// Len returns the number of items in the column.
func (c Column) Len() int {
	return len(c.Items)
}

// Group splits the full itinerary into columns following the container
// order. Items naming a day the registry does not know get a trailing column
// of their own rather than being hidden.
func Group(items []model.ItineraryItem, containers []model.Container) []Column {
	columns := make([]Column, 0, len(containers))
	known := make(map[string]bool, len(containers))
	for _, c := range containers {
		known[c.ID] = true
		columns = append(columns, Column{Container: c, Items: ItemsIn(items, c.ID)})
	}

	stray := NewRegistry(nil)
	stray.adopt(items)
	for _, c := range stray.Containers() {
		if known[c.ID] {
			continue
		}
		columns = append(columns, Column{Container: c, Items: ItemsIn(items, c.ID)})
	}
	return columns
}

// Filter keeps the items whose location name or city contains query, ignoring
// case. An empty query keeps everything.
func Filter(items []model.ItineraryItem, lookup func(string) (model.Location, bool), query string) []model.ItineraryItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	var out []model.ItineraryItem
	for _, item := range items {
		loc, ok := lookup(item.LocationID)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(loc.Name), query) || strings.Contains(strings.ToLower(loc.City), query) {
			out = append(out, item)
		}
	}
	return out
}
