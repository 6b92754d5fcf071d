package itinerary

import (
	"sort"
	"tripboard/internal/model"
)

// Reconcile merges the persisted assignment with the catalog into the full
// itinerary. Rows without a location id, rows whose location is no longer in
// the catalog and repeated location ids are dropped, and the surviving rows
// of each day are renumbered 0..n-1 in their stored order. Every catalog
// location left without a row is appended to Unscheduled in catalog order,
// numbered after any persisted Unscheduled rows.
func Reconcile(persisted []model.ItineraryItem, catalog []model.Location) []model.ItineraryItem {
	known := make(map[string]bool, len(catalog))
	for _, loc := range catalog {
		known[loc.ID] = true
	}

	full := make([]model.ItineraryItem, 0, len(catalog))
	assigned := make(map[string]bool, len(persisted))
	next := 0
	for _, item := range persisted {
		if item.LocationID == "" || !known[item.LocationID] || assigned[item.LocationID] {
			continue
		}
		if item.Day == "" {
			item.Day = model.Unscheduled
		}
		assigned[item.LocationID] = true
		full = append(full, item)
		if item.Day == model.Unscheduled {
			next++
		}
	}
	renumberDays(full)

	for _, loc := range catalog {
		if assigned[loc.ID] {
			continue
		}
		assigned[loc.ID] = true
		full = append(full, model.ItineraryItem{
			Day:        model.Unscheduled,
			LocationID: loc.ID,
			Order:      next,
		})
		next++
	}
	return full
}

// ItemsIn returns a copy of the items assigned to day, sorted by order. Ties
// keep their relative position in items.
func ItemsIn(items []model.ItineraryItem, day string) []model.ItineraryItem {
	var column []model.ItineraryItem
	for _, item := range items {
		if item.Day == day {
			column = append(column, item)
		}
	}
	sort.SliceStable(column, func(i, j int) bool {
		return column[i].Order < column[j].Order
	})
	return column
}

// OrdersContiguous reports whether every container's orders form 0..n-1.
func OrdersContiguous(items []model.ItineraryItem) bool {
	seen := make(map[string]map[int]bool)
	for _, item := range items {
		if seen[item.Day] == nil {
			seen[item.Day] = make(map[int]bool)
		}
		if seen[item.Day][item.Order] {
			return false
		}
		seen[item.Day][item.Order] = true
	}
	for _, orders := range seen {
		for i := 0; i < len(orders); i++ {
			if !orders[i] {
				return false
			}
		}
	}
	return true
}

// renumberDays closes the order gaps left by dropped rows. Slice positions
// are kept.
func renumberDays(items []model.ItineraryItem) {
	byDay := make(map[string][]int)
	for i, item := range items {
		byDay[item.Day] = append(byDay[item.Day], i)
	}
	for _, idx := range byDay {
		sort.SliceStable(idx, func(a, b int) bool {
			return items[idx[a]].Order < items[idx[b]].Order
		})
		for pos, i := range idx {
			items[i].Order = pos
		}
	}
}

func renumber(column []model.ItineraryItem) {
	for i := range column {
		column[i].Order = i
	}
}

func indexOfLocation(items []model.ItineraryItem, locationID string) int {
	for i, item := range items {
		if item.LocationID == locationID {
			return i
		}
	}
	return -1
}

func cloneItems(items []model.ItineraryItem) []model.ItineraryItem {
	return append([]model.ItineraryItem(nil), items...)
}
