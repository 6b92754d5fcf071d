package ui

import (
	"testing"
	"tripboard/internal/itinerary"
	"tripboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLookup(locations ...model.Location) lookupFunc {
	index := make(map[string]model.Location, len(locations))
	for _, loc := range locations {
		index[loc.ID] = loc
	}
	return func(id string) (model.Location, bool) {
		loc, ok := index[id]
		return loc, ok
	}
}

func testColumns() ([]itinerary.Column, lookupFunc) {
	lookup := testLookup(
		model.Location{ID: "a", Name: "Senso-ji", City: "Tokyo"},
		model.Location{ID: "b", Name: "Kinkaku-ji", City: "Kyoto"},
		model.Location{ID: "c", Name: "Dotonbori", City: "Osaka"},
	)
	columns := []itinerary.Column{
		{
			Container: model.Container{ID: model.Unscheduled, Title: model.Unscheduled},
			Items:     []model.ItineraryItem{{Day: model.Unscheduled, LocationID: "c", Order: 0}},
		},
		{
			Container: model.Container{ID: "Day 1", Title: "Day 1"},
			Items: []model.ItineraryItem{
				{Day: "Day 1", LocationID: "a", Order: 0},
				{Day: "Day 1", LocationID: "b", Order: 1},
			},
		},
		{Container: model.Container{ID: "Day 2", Title: "Day 2"}},
	}
	return columns, lookup
}

func TestBoardRefreshFollowsFocus(t *testing.T) {
	columns, lookup := testColumns()
	b := NewBoardModel()
	b.Refresh(columns, lookup, "b")

	it, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", it.LocationID)
	c, ok := b.Column()
	require.True(t, ok)
	assert.Equal(t, "Day 1", c.ID)
	assert.Equal(t, 1, b.IndexInColumn("b"))
	assert.Equal(t, 2, b.ColumnLen())
}

func TestBoardRefreshClampsWhenFocusMissing(t *testing.T) {
	columns, lookup := testColumns()
	b := NewBoardModel()
	b.Refresh(columns, lookup, "b")

	// the day shrinks to one item
	columns[1].Items = columns[1].Items[:1]
	b.Refresh(columns, lookup, "")

	it, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", it.LocationID)
}

func TestBoardHeaderIsDropTarget(t *testing.T) {
	columns, lookup := testColumns()
	b := NewBoardModel()
	b.Refresh(columns, lookup, "a")

	b.Up(false)
	assert.Equal(t, "a", b.DropTarget(), "nav mode stops at the first item")

	b.Up(true)
	_, ok := b.Selected()
	assert.False(t, ok)
	assert.Equal(t, "Day 1", b.DropTarget())

	b.Down()
	assert.Equal(t, "a", b.DropTarget())

	b.Top(true)
	assert.Equal(t, "Day 1", b.DropTarget())
	b.Bottom()
	assert.Equal(t, "b", b.DropTarget())
}

func TestBoardEmptyColumnTargetsItself(t *testing.T) {
	columns, lookup := testColumns()
	b := NewBoardModel()
	b.Refresh(columns, lookup, "b")

	b.Right()
	c, ok := b.Column()
	require.True(t, ok)
	assert.Equal(t, "Day 2", c.ID)
	assert.Equal(t, "Day 2", b.DropTarget())

	b.Right()
	c, _ = b.Column()
	assert.Equal(t, "Day 2", c.ID, "cursor stays on the last column")
}

func TestBoardNeighborColumn(t *testing.T) {
	columns, lookup := testColumns()
	b := NewBoardModel()
	b.Refresh(columns, lookup, "a")

	prev, ok := b.NeighborColumn(-1)
	require.True(t, ok)
	assert.Equal(t, model.Unscheduled, prev.ID)

	next, ok := b.NeighborColumn(1)
	require.True(t, ok)
	assert.Equal(t, "Day 2", next.ID)

	_, ok = b.NeighborColumn(2)
	assert.False(t, ok)
}

func TestBoardFilterKeepsUnfilteredIndex(t *testing.T) {
	columns, lookup := testColumns()
	b := NewBoardModel()
	b.Refresh(columns, lookup, "a")

	b.SetFilter("KYOTO", lookup)
	assert.Equal(t, "KYOTO", b.Filter())

	// a is hidden, so the cursor lands on the only visible item
	it, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", it.LocationID)
	assert.Equal(t, 1, b.IndexInColumn("b"))

	b.SetFilter("", lookup)
	it, ok = b.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", it.LocationID)
}

func TestBoardViewMarksCarriedItem(t *testing.T) {
	columns, lookup := testColumns()
	b := NewBoardModel()
	b.Refresh(columns, lookup, "a")

	view := b.View(120, 20, 28, lookup, "a", false)
	assert.Contains(t, view, "» Senso-ji")
	assert.Contains(t, view, "Kinkaku-ji")
	assert.Contains(t, view, "Day 2")
}

func TestBoardViewEmpty(t *testing.T) {
	b := NewBoardModel()
	assert.Contains(t, b.View(80, 20, 28, testLookup(), "", false), "No days yet")
}
