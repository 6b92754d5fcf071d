package itinerary

import (
	"testing"
	"tripboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryUnscheduledFirst(t *testing.T) {
	r := NewRegistry([]string{"Day 1", " ", "Day 1", model.Unscheduled, "Day 2"})

	c := r.Containers()
	require.Len(t, c, 3)
	assert.True(t, c[0].IsUnscheduled())
	assert.Equal(t, []string{"Day 1", "Day 2"}, r.Days())
}

func TestLoadRegistry(t *testing.T) {
	items := []model.ItineraryItem{
		item("Day 10", "A", 0),
		item("Day 2", "B", 0),
		item("Arrival", "C", 0),
		item(model.Unscheduled, "D", 0),
	}

	r := LoadRegistry([]string{"Day 1"}, items)
	assert.Equal(t, []string{"Day 1", "Arrival", "Day 2", "Day 10"}, r.Days())

	r = LoadRegistry(nil, []model.ItineraryItem{item(model.Unscheduled, "D", 0)})
	assert.Equal(t, DefaultDays(), r.Days())
}

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry([]string{"Day 1", "Day 2"})

	id, err := r.Add("")
	require.NoError(t, err)
	assert.Equal(t, "Day 3", id)

	id, err = r.Add("  Onsen  ")
	require.NoError(t, err)
	assert.Equal(t, "Onsen", id)
	assert.Equal(t, []string{"Day 1", "Day 2", "Day 3", "Onsen"}, r.Days())

	_, err = r.Add("Onsen")
	assert.ErrorIs(t, err, ErrTitleExists)

	// Collisions are case-sensitive.
	_, err = r.Add("onsen")
	assert.NoError(t, err)

	_, err = r.Add(model.Unscheduled)
	assert.ErrorIs(t, err, ErrTitleExists)
}

func TestRegistryAddDefaultCollision(t *testing.T) {
	r := NewRegistry([]string{"Day 1", "Day 3"})

	_, err := r.Add("")
	assert.ErrorIs(t, err, ErrTitleExists)
	assert.Equal(t, []string{"Day 1", "Day 3"}, r.Days())
}

func TestRegistryRename(t *testing.T) {
	r := NewRegistry([]string{"Day 1", "Day 2"})
	items := []model.ItineraryItem{
		item("Day 1", "A", 0),
		item("Day 1", "B", 1),
		item("Day 2", "C", 0),
	}

	out, changed, err := r.Rename("Day 1", "Day One", items)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, idsIn(out, "Day 1"))
	assert.Equal(t, []string{"A", "B"}, idsIn(out, "Day One"))
	assert.Equal(t, []string{"Day One", "Day 2"}, r.Days())
	assert.False(t, r.Has("Day 1"))
	assert.Equal(t, "Day 1", items[0].Day, "input must not change")
}

func TestRegistryRenameRejections(t *testing.T) {
	items := []model.ItineraryItem{item("Day 1", "A", 0)}

	tests := []struct {
		name  string
		id    string
		title string
		want  error
	}{
		{"reserved", model.Unscheduled, "Pool", ErrReservedContainer},
		{"unknown", "Day 9", "Nine", ErrUnknownContainer},
		{"empty", "Day 1", "   ", ErrEmptyTitle},
		{"taken", "Day 1", "Day 2", ErrTitleExists},
		{"taken by pool", "Day 1", model.Unscheduled, ErrTitleExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry([]string{"Day 1", "Day 2"})
			out, changed, err := r.Rename(tt.id, tt.title, items)
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, changed)
			assert.Equal(t, items, out)
			assert.Equal(t, []string{"Day 1", "Day 2"}, r.Days())
		})
	}
}

func TestRegistryRenameSameTitle(t *testing.T) {
	r := NewRegistry([]string{"Day 1"})
	items := []model.ItineraryItem{item("Day 1", "A", 0)}

	out, changed, err := r.Rename("Day 1", "Day 1", items)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, items, out)
}

func TestRegistryRemoveAppendsToPool(t *testing.T) {
	r := NewRegistry([]string{"Day 1", "Day 2"})
	items := []model.ItineraryItem{
		item("Day 1", "B", 1),
		item(model.Unscheduled, "C", 0),
		item("Day 1", "A", 0),
		item("Day 2", "D", 0),
	}

	out, err := r.Remove("Day 1", items)

	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, idsIn(out, model.Unscheduled))
	assert.Equal(t, []int{0, 1, 2}, ordersIn(out, model.Unscheduled))
	assert.Empty(t, idsIn(out, "Day 1"))
	assert.Equal(t, []string{"D"}, idsIn(out, "Day 2"))
	assert.Equal(t, []string{"Day 2"}, r.Days())
}

func TestRegistryRemoveRejections(t *testing.T) {
	r := NewRegistry([]string{"Day 1"})

	_, err := r.Remove(model.Unscheduled, nil)
	assert.ErrorIs(t, err, ErrReservedContainer)
	_, err = r.Remove("Day 7", nil)
	assert.ErrorIs(t, err, ErrUnknownContainer)
	assert.Equal(t, []string{"Day 1"}, r.Days())
}

func TestRegistryShift(t *testing.T) {
	r := NewRegistry([]string{"Day 1", "Day 2", "Day 3"})

	require.NoError(t, r.Shift("Day 1", 1))
	assert.Equal(t, []string{"Day 2", "Day 1", "Day 3"}, r.Days())

	require.NoError(t, r.Shift("Day 3", -5))
	assert.Equal(t, []string{"Day 3", "Day 2", "Day 1"}, r.Days())
	assert.True(t, r.Containers()[0].IsUnscheduled())

	require.NoError(t, r.Shift("Day 1", 3))
	assert.Equal(t, []string{"Day 3", "Day 2", "Day 1"}, r.Days())

	assert.ErrorIs(t, r.Shift(model.Unscheduled, 1), ErrReservedContainer)
}

func TestNaturalLess(t *testing.T) {
	assert.True(t, naturalLess("Day 2", "Day 10"))
	assert.False(t, naturalLess("Day 10", "Day 2"))
	assert.True(t, naturalLess("Arrival", "Day 1"))
	assert.True(t, naturalLess("Day 1", "Day 1b"))
	assert.False(t, naturalLess("Day 1", "Day 1"))
}

func TestGroupAndFilter(t *testing.T) {
	items := []model.ItineraryItem{
		item("Day 1", "B", 1),
		item("Day 1", "A", 0),
		item("Lost", "C", 0),
	}
	columns := Group(items, containersOf("Day 1"))

	require.Len(t, columns, 3)
	assert.Equal(t, model.Unscheduled, columns[0].Container.ID)
	assert.Equal(t, 0, columns[0].Len())
	assert.Equal(t, []string{"A", "B"}, idsIn(columns[1].Items, "Day 1"))
	assert.Equal(t, "Lost", columns[2].Container.ID)

	places := map[string]model.Location{
		"A": {ID: "A", Name: "Fushimi Inari", City: "Kyoto"},
		"B": {ID: "B", Name: "Dotonbori", City: "Osaka"},
	}
	lookup := func(id string) (model.Location, bool) {
		loc, ok := places[id]
		return loc, ok
	}
	got := Filter(columns[1].Items, lookup, "osaka")
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].LocationID)
	assert.Len(t, Filter(columns[1].Items, lookup, " "), 2)
	assert.Empty(t, Filter(columns[1].Items, lookup, "tokyo"))
}
