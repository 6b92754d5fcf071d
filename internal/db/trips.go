package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"tripboard/internal/model"

	"github.com/google/uuid"
)

// ErrTripNotFound is returned when no trip matches an id or name.
var ErrTripNotFound = errors.New("trip not found")

// CreateTrip inserts a trip with a fresh id.
func CreateTrip(db *sql.DB, name string) (model.Trip, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Trip{}, errors.New("trip name cannot be empty")
	}

	t := model.Trip{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	_, err := db.Exec(
		`INSERT INTO trips (id, name, created_at) VALUES (?, ?, ?)`,
		t.ID, t.Name, t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Trip{}, fmt.Errorf("failed to create trip: %w", err)
	}
	return t, nil
}

// ListTrips returns every trip, oldest first.
func ListTrips(db *sql.DB) ([]model.Trip, error) {
	rows, err := db.Query(`SELECT id, name, created_at FROM trips ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []model.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trip rows: %w", err)
	}
	return trips, nil
}

// FindTrip looks a trip up by id, then by name.
func FindTrip(db *sql.DB, ref string) (model.Trip, error) {
	row := db.QueryRow(`
		SELECT id, name, created_at
		FROM trips
		WHERE id = ? OR name = ?
		ORDER BY id = ? DESC
		LIMIT 1
	`, ref, ref, ref)

	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Trip{}, fmt.Errorf("%q: %w", ref, ErrTripNotFound)
	}
	return t, err
}

// EnsureTrip returns the trip named ref, creating it when absent.
func EnsureTrip(db *sql.DB, ref string) (model.Trip, error) {
	t, err := FindTrip(db, ref)
	if errors.Is(err, ErrTripNotFound) {
		return CreateTrip(db, ref)
	}
	return t, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(s scanner) (model.Trip, error) {
	var t model.Trip
	var createdAt string
	if err := s.Scan(&t.ID, &t.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("failed to scan trip row: %w", err)
	}
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = ts
	}
	return t, nil
}
