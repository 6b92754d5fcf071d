package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"tripboard/internal/itinerary"
	"tripboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := Open(filepath.Join(t.TempDir(), "tripboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func newTrip(t *testing.T, conn *sql.DB, name string) model.Trip {
	t.Helper()
	trip, err := CreateTrip(conn, name)
	require.NoError(t, err)
	return trip
}

func ptr(f float64) *float64 { return &f }

func TestTrips(t *testing.T) {
	conn := openTest(t)

	japan := newTrip(t, conn, "Japan 2026")
	assert.Len(t, japan.ID, 36)

	_, err := CreateTrip(conn, "Japan 2026")
	assert.Error(t, err, "names are unique")
	_, err = CreateTrip(conn, "  ")
	assert.Error(t, err)

	byName, err := FindTrip(conn, "Japan 2026")
	require.NoError(t, err)
	assert.Equal(t, japan.ID, byName.ID)

	byID, err := FindTrip(conn, japan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Japan 2026", byID.Name)
	assert.True(t, japan.CreatedAt.Equal(byID.CreatedAt))

	_, err = FindTrip(conn, "Peru")
	assert.ErrorIs(t, err, ErrTripNotFound)

	peru, err := EnsureTrip(conn, "Peru")
	require.NoError(t, err)
	again, err := EnsureTrip(conn, "Peru")
	require.NoError(t, err)
	assert.Equal(t, peru.ID, again.ID)

	trips, err := ListTrips(conn)
	require.NoError(t, err)
	assert.Len(t, trips, 2)
}

func TestLocations(t *testing.T) {
	conn := openTest(t)
	trip := newTrip(t, conn, "Japan")
	other := newTrip(t, conn, "Elsewhere")

	added, err := UpsertLocations(conn, trip.ID, []model.Location{
		{ID: "fushimi", Name: "Fushimi Inari", City: "Kyoto", Lat: ptr(34.9671), Lng: ptr(135.7727)},
		{ID: "dotonbori", Name: "Dotonbori", City: "Osaka"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	id, err := InsertLocation(conn, trip.ID, model.Location{Name: "Hakone Open-Air Museum", City: "Hakone"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = InsertLocation(conn, other.ID, model.Location{ID: "fushimi", Name: "Same id, other trip"})
	require.NoError(t, err)

	// Updating keeps position and clears emptied columns.
	added, err = UpsertLocations(conn, trip.ID, []model.Location{
		{ID: "fushimi", Name: "Fushimi Inari Taisha", City: "Kyoto"},
	})
	require.NoError(t, err)
	assert.Zero(t, added)

	locs, err := ListLocations(conn, trip.ID)
	require.NoError(t, err)
	require.Len(t, locs, 3)
	assert.Equal(t, "Fushimi Inari Taisha", locs[0].Name)
	assert.False(t, locs[0].HasCoordinates())
	assert.Equal(t, "dotonbori", locs[1].ID)
	assert.Equal(t, id, locs[2].ID)

	_, err = UpsertLocations(conn, trip.ID, []model.Location{{ID: "x"}})
	assert.Error(t, err)

	require.NoError(t, DeleteLocation(conn, trip.ID, "dotonbori"))
	assert.Error(t, DeleteLocation(conn, trip.ID, "dotonbori"))

	locs, err = ListLocations(conn, trip.ID)
	require.NoError(t, err)
	assert.Len(t, locs, 2)
}

func TestLocationCoordinatesRoundTrip(t *testing.T) {
	conn := openTest(t)
	trip := newTrip(t, conn, "Japan")

	_, err := InsertLocation(conn, trip.ID, model.Location{ID: "k", Name: "Kinkaku-ji", Lat: ptr(35.0394), Lng: ptr(135.7292)})
	require.NoError(t, err)

	locs, err := ListLocations(conn, trip.ID)
	require.NoError(t, err)
	require.Len(t, locs, 1)
	require.True(t, locs[0].HasCoordinates())
	assert.InDelta(t, 35.0394, *locs[0].Lat, 1e-9)
	assert.InDelta(t, 135.7292, *locs[0].Lng, 1e-9)
}

func TestItineraryReplace(t *testing.T) {
	conn := openTest(t)
	trip := newTrip(t, conn, "Japan")

	items := []model.ItineraryItem{
		{Day: "Day 1", LocationID: "a", Order: 0, Note: "early"},
		{Day: "Day 1", LocationID: "b", Order: 1},
		{Day: model.Unscheduled, LocationID: "c", Order: 0},
	}
	require.NoError(t, UpdateItinerary(conn, trip.ID, items))

	got, err := GetItinerary(conn, trip.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, items, got)

	require.NoError(t, UpdateItinerary(conn, trip.ID, items[:1]))
	got, err = GetItinerary(conn, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, items[:1], got)

	require.NoError(t, UpdateItinerary(conn, trip.ID, nil))
	got, err = GetItinerary(conn, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestItineraryRejectsNegativeOrder(t *testing.T) {
	conn := openTest(t)
	trip := newTrip(t, conn, "Japan")
	require.NoError(t, UpdateItinerary(conn, trip.ID, []model.ItineraryItem{{Day: "Day 1", LocationID: "a"}}))

	err := UpdateItinerary(conn, trip.ID, []model.ItineraryItem{{Day: "Day 1", LocationID: "b", Order: -1}})
	require.Error(t, err)

	// The failed transaction leaves the previous rows.
	got, err := GetItinerary(conn, trip.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].LocationID)
}

func TestDays(t *testing.T) {
	conn := openTest(t)
	trip := newTrip(t, conn, "Japan")

	days, err := GetDays(conn, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, days)

	require.NoError(t, UpdateDays(conn, trip.ID, []string{"Day 2", "Arrival", "Day 1"}))
	days, err = GetDays(conn, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Day 2", "Arrival", "Day 1"}, days)

	assert.Error(t, UpdateDays(conn, trip.ID, []string{"A", "A"}))
}

func TestStoreBacksPlanner(t *testing.T) {
	conn := openTest(t)
	trip := newTrip(t, conn, "Japan")
	_, err := UpsertLocations(conn, trip.ID, []model.Location{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
		{ID: "c", Name: "C"},
	})
	require.NoError(t, err)

	ctx := context.Background()
	store := NewStore(conn)
	p := itinerary.NewPlanner(trip.ID, store)
	require.NoError(t, p.Load(ctx, store))

	save := p.Move("b", "Day 2")
	require.NotNil(t, save)
	require.NoError(t, save.Run(ctx).Err)

	_, save, err = p.AddDay("Onsen")
	require.NoError(t, err)
	require.NoError(t, save.Run(ctx).Err)

	reloaded := itinerary.NewPlanner(trip.ID, store)
	require.NoError(t, reloaded.Load(ctx, store))
	assert.Equal(t, p.Containers(), reloaded.Containers())
	assert.ElementsMatch(t, p.Items(), reloaded.Items())

	days, err := GetDays(conn, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Day 1", "Day 2", "Day 3", "Onsen"}, days)
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	store := NewStore(openTest(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.GetItinerary(ctx, "t")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.UpdateDays(ctx, "t", nil), context.Canceled)
}

func TestUpdatePlanRollsBackDays(t *testing.T) {
	conn := openTest(t)
	trip := newTrip(t, conn, "Japan")
	require.NoError(t, UpdatePlan(conn, trip.ID, []string{"Day 1"}, []model.ItineraryItem{{Day: "Day 1", LocationID: "a"}}))

	// a rename whose item rows fail to insert
	err := UpdatePlan(conn, trip.ID, []string{"Day One"}, []model.ItineraryItem{{Day: "Day One", LocationID: "a", Order: -1}})
	require.Error(t, err)

	days, err := GetDays(conn, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Day 1"}, days)
	got, err := GetItinerary(conn, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.ItineraryItem{{Day: "Day 1", LocationID: "a"}}, got)

	var _ itinerary.SnapshotStore = NewStore(conn)
}
