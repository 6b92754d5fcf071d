package itinerary

import (
	"math/rand"
	"testing"
	"tripboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func containersOf(days ...string) []model.Container {
	return NewRegistry(days).Containers()
}

func TestMoveFromPoolOntoSibling(t *testing.T) {
	full := Reconcile([]model.ItineraryItem{item("Day 1", "A", 0)}, catalogOf("A", "B", "C"))

	out, changed := Move("B", "A", full, containersOf("Day 1"))

	require.True(t, changed)
	assert.Equal(t, []string{"B", "A"}, idsIn(out, "Day 1"))
	assert.Equal(t, []int{0, 1}, ordersIn(out, "Day 1"))
	assert.Equal(t, []string{"C"}, idsIn(out, model.Unscheduled))
	assert.Equal(t, []int{0}, ordersIn(out, model.Unscheduled))
}

func TestMoveReorderWithinDay(t *testing.T) {
	full := []model.ItineraryItem{item("Day 1", "A", 0), item("Day 1", "B", 1), item("Day 1", "C", 2)}

	out, changed := Reorder("B", "Day 1", 0, full, containersOf("Day 1"))

	require.True(t, changed)
	assert.Equal(t, []string{"B", "A", "C"}, idsIn(out, "Day 1"))
	assert.Equal(t, []int{0, 1, 2}, ordersIn(out, "Day 1"))
}

func TestMoveOntoContainerAppends(t *testing.T) {
	full := []model.ItineraryItem{
		item("Day 1", "A", 0),
		item("Day 2", "B", 0),
		item("Day 2", "C", 1),
	}

	out, changed := Move("A", "Day 2", full, containersOf("Day 1", "Day 2"))

	require.True(t, changed)
	assert.Equal(t, []string{"B", "C", "A"}, idsIn(out, "Day 2"))
	assert.Empty(t, idsIn(out, "Day 1"))
}

func TestMoveRenumbersSourceGap(t *testing.T) {
	full := []model.ItineraryItem{
		item("Day 1", "A", 0),
		item("Day 1", "B", 1),
		item("Day 1", "C", 2),
		item("Day 2", "D", 0),
	}

	out, changed := Move("B", "D", full, containersOf("Day 1", "Day 2"))

	require.True(t, changed)
	assert.Equal(t, []string{"A", "C"}, idsIn(out, "Day 1"))
	assert.Equal(t, []int{0, 1}, ordersIn(out, "Day 1"))
	assert.Equal(t, []string{"B", "D"}, idsIn(out, "Day 2"))
}

func TestMoveIgnoresUnresolvableDrops(t *testing.T) {
	full := []model.ItineraryItem{item("Day 1", "A", 0), item("Day 1", "B", 1)}
	containers := containersOf("Day 1")

	tests := []struct {
		name   string
		active string
		over   string
	}{
		{"unknown active", "Z", "Day 1"},
		{"unknown target", "A", "nowhere"},
		{"dropped on itself", "A", "A"},
		{"empty target", "A", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, changed := Move(tt.active, tt.over, full, containers)
			assert.False(t, changed)
			assert.Equal(t, full, out)
		})
	}
}

func TestMoveToCurrentPositionIsIdempotent(t *testing.T) {
	full := []model.ItineraryItem{item("Day 1", "A", 0), item("Day 1", "B", 1), item("Day 1", "C", 2)}
	containers := containersOf("Day 1")

	// A dropped on its next sibling lands where it already is.
	out, changed := Move("A", "B", full, containers)
	assert.False(t, changed)
	assert.Equal(t, full, out)

	// The last item dropped on its own column stays last.
	out, changed = Move("C", "Day 1", full, containers)
	assert.False(t, changed)
	assert.Equal(t, full, out)

	out, changed = Reorder("B", "Day 1", 1, full, containers)
	assert.False(t, changed)
	assert.Equal(t, full, out)
}

func TestMoveKeepsSlicePositions(t *testing.T) {
	full := []model.ItineraryItem{item("Day 2", "X", 0), item("Day 1", "A", 0), item("Day 1", "B", 1)}

	out, changed := Move("B", "A", full, containersOf("Day 1", "Day 2"))

	require.True(t, changed)
	assert.Equal(t, full[0], out[0])
	assert.Equal(t, "A", out[1].LocationID)
	assert.Equal(t, 1, out[1].Order)
	assert.Equal(t, "B", out[2].LocationID)
	assert.Equal(t, 0, out[2].Order)
}

func TestReorderPastEndAppends(t *testing.T) {
	full := []model.ItineraryItem{item("Day 1", "A", 0), item("Day 1", "B", 1), item(model.Unscheduled, "C", 0)}

	out, changed := Reorder("C", "Day 1", 99, full, containersOf("Day 1"))

	require.True(t, changed)
	assert.Equal(t, []string{"A", "B", "C"}, idsIn(out, "Day 1"))

	_, changed = Reorder("C", "Day 9", 99, full, containersOf("Day 1"))
	assert.False(t, changed)
}

// Random drops must conserve the location set and keep every column
// contiguous.
func TestMovePropertiesUnderRandomDrops(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	containers := containersOf("Day 1", "Day 2", "Day 3")
	ids := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	full := Reconcile(nil, catalogOf(ids...))

	for step := 0; step < 500; step++ {
		active := ids[rng.Intn(len(ids))]
		var over string
		if rng.Intn(3) == 0 {
			over = containers[rng.Intn(len(containers))].ID
		} else {
			over = ids[rng.Intn(len(ids))]
		}

		out, _ := Move(active, over, full, containers)

		require.Len(t, out, len(full))
		seen := map[string]bool{}
		for _, it := range out {
			seen[it.LocationID] = true
		}
		require.Len(t, seen, len(ids))
		require.True(t, OrdersContiguous(out), "step %d: %s onto %s", step, active, over)
		full = out
	}
}
