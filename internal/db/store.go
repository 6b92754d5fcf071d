package db

import (
	"context"
	"database/sql"
	"tripboard/internal/model"
)

// Store exposes the database as an itinerary gateway, catalog and day store.
// Saves write days and items in one transaction.
type Store struct {
	DB *sql.DB
}

// NewStore wraps an open database.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) GetItinerary(ctx context.Context, tripID string) ([]model.ItineraryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return GetItinerary(s.DB, tripID)
}

func (s *Store) UpdateItinerary(ctx context.Context, tripID string, items []model.ItineraryItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return UpdateItinerary(s.DB, tripID, items)
}

func (s *Store) GetLocations(ctx context.Context, tripID string) ([]model.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ListLocations(s.DB, tripID)
}

func (s *Store) GetDays(ctx context.Context, tripID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return GetDays(s.DB, tripID)
}

func (s *Store) UpdateDays(ctx context.Context, tripID string, days []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return UpdateDays(s.DB, tripID, days)
}

func (s *Store) UpdateSnapshot(ctx context.Context, tripID string, days []string, items []model.ItineraryItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return UpdatePlan(s.DB, tripID, days, items)
}
