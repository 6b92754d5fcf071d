package itinerary

import (
	"testing"
	"tripboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogOf(ids ...string) []model.Location {
	locs := make([]model.Location, 0, len(ids))
	for _, id := range ids {
		locs = append(locs, model.Location{ID: id, Name: "Place " + id, City: "Kyoto"})
	}
	return locs
}

func item(day, id string, order int) model.ItineraryItem {
	return model.ItineraryItem{Day: day, LocationID: id, Order: order}
}

// idsIn lists the location ids of day in order.
func idsIn(items []model.ItineraryItem, day string) []string {
	var ids []string
	for _, it := range ItemsIn(items, day) {
		ids = append(ids, it.LocationID)
	}
	return ids
}

func ordersIn(items []model.ItineraryItem, day string) []int {
	var orders []int
	for _, it := range ItemsIn(items, day) {
		orders = append(orders, it.Order)
	}
	return orders
}

func TestReconcileSynthesizesPool(t *testing.T) {
	full := Reconcile(
		[]model.ItineraryItem{item("Day 1", "A", 0)},
		catalogOf("A", "B", "C"),
	)

	require.Len(t, full, 3)
	assert.Equal(t, []string{"A"}, idsIn(full, "Day 1"))
	assert.Equal(t, []string{"B", "C"}, idsIn(full, model.Unscheduled))
	assert.Equal(t, []int{0, 1}, ordersIn(full, model.Unscheduled))
	for _, it := range ItemsIn(full, model.Unscheduled) {
		assert.Empty(t, it.Note)
	}
}

func TestReconcileDropsOrphansAndDuplicates(t *testing.T) {
	persisted := []model.ItineraryItem{
		item("Day 1", "A", 0),
		item("Day 1", "gone", 1),
		item("Day 2", "A", 0),
		item("Day 2", "", 1),
	}
	full := Reconcile(persisted, catalogOf("A", "B"))

	assert.Equal(t, []string{"A"}, idsIn(full, "Day 1"))
	assert.Empty(t, idsIn(full, "Day 2"))
	assert.Equal(t, []string{"B"}, idsIn(full, model.Unscheduled))
	for _, it := range full {
		assert.NotEqual(t, "gone", it.LocationID)
	}
}

func TestReconcileNumbersAfterPersistedPool(t *testing.T) {
	persisted := []model.ItineraryItem{
		item(model.Unscheduled, "C", 0),
		item(model.Unscheduled, "A", 1),
	}
	full := Reconcile(persisted, catalogOf("A", "B", "C", "D"))

	assert.Equal(t, []string{"C", "A", "B", "D"}, idsIn(full, model.Unscheduled))
	assert.True(t, OrdersContiguous(full))
}

func TestReconcileClosesOrphanGaps(t *testing.T) {
	persisted := []model.ItineraryItem{
		item("Day 1", "C", 2),
		item("Day 1", "A", 0),
		item("Day 1", "B", 1),
		item("Day 2", "D", 0),
		item(model.Unscheduled, "G", 1),
		item(model.Unscheduled, "F", 4),
	}
	full := Reconcile(persisted, catalogOf("A", "C", "D", "E", "F"))

	require.True(t, OrdersContiguous(full))
	assert.Equal(t, []string{"A", "C"}, idsIn(full, "Day 1"))
	assert.Equal(t, []string{"F", "E"}, idsIn(full, model.Unscheduled))

	// The gap does not come back through a later move elsewhere.
	moved, changed := Move("E", "Day 2", full, []model.Container{
		{ID: model.Unscheduled, Title: model.Unscheduled},
		{ID: "Day 1", Title: "Day 1"},
		{ID: "Day 2", Title: "Day 2"},
	})
	require.True(t, changed)
	assert.True(t, OrdersContiguous(moved))
	assert.Equal(t, []int{0, 1}, ordersIn(moved, "Day 1"))
}

func TestReconcileCompleteness(t *testing.T) {
	catalog := catalogOf("A", "B", "C", "D", "E")
	persisted := []model.ItineraryItem{
		item("Day 1", "E", 0),
		item("Day 2", "B", 0),
		item("Day 2", "Z", 1),
		item("Day 1", "B", 1),
	}
	full := Reconcile(persisted, catalog)

	counts := map[string]int{}
	for _, it := range full {
		counts[it.LocationID]++
	}
	require.Len(t, counts, len(catalog))
	for _, loc := range catalog {
		assert.Equal(t, 1, counts[loc.ID], loc.ID)
	}
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	persisted := []model.ItineraryItem{{Day: "", LocationID: "A", Order: 3}}
	Reconcile(persisted, catalogOf("A"))
	assert.Equal(t, "", persisted[0].Day)
}

func TestOrdersContiguous(t *testing.T) {
	assert.True(t, OrdersContiguous(nil))
	assert.True(t, OrdersContiguous([]model.ItineraryItem{item("D", "A", 1), item("D", "B", 0)}))
	assert.False(t, OrdersContiguous([]model.ItineraryItem{item("D", "A", 0), item("D", "B", 2)}))
	assert.False(t, OrdersContiguous([]model.ItineraryItem{item("D", "A", 0), item("D", "B", 0)}))
}

func TestPoolPolicy(t *testing.T) {
	full := []model.ItineraryItem{item("Day 1", "A", 0), item(model.Unscheduled, "B", 0)}

	assert.Len(t, PersistedPool.Persistable(full), 2)
	assert.Equal(t, []model.ItineraryItem{item("Day 1", "A", 0)}, DerivedPool.Persistable(full))

	p, err := ParsePoolPolicy("Derived")
	require.NoError(t, err)
	assert.Equal(t, DerivedPool, p)
	p, err = ParsePoolPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PersistedPool, p)
	_, err = ParsePoolPolicy("sometimes")
	assert.Error(t, err)
}
