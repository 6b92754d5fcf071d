package itinerary

import "tripboard/internal/model"

// Move applies a drag-end: activeID is the location being dragged and overID
// is either a container id (drop on a column) or a sibling's location id (drop
// on an item). Dropping on a container appends; dropping on a sibling inserts
// at the sibling's position and shifts it down. Both affected containers are
// renumbered 0..n-1.
//
// The returned flag is false when nothing changed: unknown active item,
// unresolvable target, a drop onto the item itself, or a drop that leaves the
// item where it was. In that case items is returned as is.
func Move(activeID, overID string, items []model.ItineraryItem, containers []model.Container) ([]model.ItineraryItem, bool) {
	src := indexOfLocation(items, activeID)
	if src < 0 || overID == activeID {
		return items, false
	}
	active := items[src]
	source := active.Day

	var target string
	onContainer := false
	if containsContainer(containers, overID) {
		target = overID
		onContainer = true
	} else if i := indexOfLocation(items, overID); i >= 0 {
		target = items[i].Day
	} else {
		return items, false
	}

	rest := make([]model.ItineraryItem, 0, len(items)-1)
	rest = append(rest, items[:src]...)
	rest = append(rest, items[src+1:]...)

	column := ItemsIn(rest, target)
	at := len(column)
	if !onContainer {
		for i, item := range column {
			if item.LocationID == overID {
				at = i
				break
			}
		}
	}

	active.Day = target
	column = append(column, model.ItineraryItem{})
	copy(column[at+1:], column[at:])
	column[at] = active
	renumber(column)

	updated := make(map[string]model.ItineraryItem, len(column))
	for _, item := range column {
		updated[item.LocationID] = item
	}
	if source != target {
		remaining := ItemsIn(rest, source)
		renumber(remaining)
		for _, item := range remaining {
			updated[item.LocationID] = item
		}
	}

	return applyUpdates(items, updated)
}

// Reorder places activeID at index within day. An index at or past the end of
// the day (not counting the active item) appends.
func Reorder(activeID, day string, index int, items []model.ItineraryItem, containers []model.Container) ([]model.ItineraryItem, bool) {
	var column []model.ItineraryItem
	for _, item := range ItemsIn(items, day) {
		if item.LocationID != activeID {
			column = append(column, item)
		}
	}
	if index < 0 {
		index = 0
	}
	if index < len(column) {
		return Move(activeID, column[index].LocationID, items, containers)
	}
	if !containsContainer(containers, day) {
		return items, false
	}
	return Move(activeID, day, items, containers)
}

// applyUpdates keeps the slice positions of items and swaps in updated rows.
func applyUpdates(items []model.ItineraryItem, updated map[string]model.ItineraryItem) ([]model.ItineraryItem, bool) {
	out := make([]model.ItineraryItem, len(items))
	changed := false
	for i, item := range items {
		if u, ok := updated[item.LocationID]; ok {
			if u != item {
				changed = true
			}
			out[i] = u
			continue
		}
		out[i] = item
	}
	if !changed {
		return items, false
	}
	return out, true
}

func containsContainer(containers []model.Container, id string) bool {
	for _, c := range containers {
		if c.ID == id {
			return true
		}
	}
	return false
}
