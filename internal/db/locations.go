package db

import (
	"database/sql"
	"fmt"
	"strings"
	"tripboard/internal/model"

	"github.com/google/uuid"
)

// ListLocations returns a trip's catalog in insertion order.
func ListLocations(db *sql.DB, tripID string) ([]model.Location, error) {
	query := `
		SELECT
			id,
			name,
			COALESCE(city, ''),
			COALESCE(type, ''),
			latitude,
			longitude,
			COALESCE(photo_url, ''),
			COALESCE(google_maps_url, ''),
			COALESCE(description, ''),
			COALESCE(place_id, '')
		FROM locations
		WHERE trip_id = ?
		ORDER BY position, name
	`

	rows, err := db.Query(query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	var results []model.Location
	for rows.Next() {
		var l model.Location
		var latitude, longitude sql.NullFloat64
		if err := rows.Scan(&l.ID, &l.Name, &l.City, &l.Type, &latitude, &longitude,
			&l.PhotoURL, &l.GoogleMapsURL, &l.Description, &l.PlaceID); err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		if latitude.Valid {
			l.Lat = &latitude.Float64
		}
		if longitude.Valid {
			l.Lng = &longitude.Float64
		}
		results = append(results, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating location rows: %w", err)
	}

	return results, nil
}

// InsertLocation appends a location to the catalog. An empty ID is replaced
// with a generated one, which is returned.
func InsertLocation(db *sql.DB, tripID string, l model.Location) (string, error) {
	if strings.TrimSpace(l.Name) == "" {
		return "", fmt.Errorf("location name cannot be empty")
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}

	var next int
	if err := db.QueryRow(`SELECT COALESCE(MAX(position) + 1, 0) FROM locations WHERE trip_id = ?`, tripID).Scan(&next); err != nil {
		return "", fmt.Errorf("failed to get next position: %w", err)
	}

	if _, err := db.Exec(insertLocationSQL, locationArgs(tripID, l, next)...); err != nil {
		return "", fmt.Errorf("failed to insert location: %w", err)
	}
	return l.ID, nil
}

// UpsertLocations inserts or updates locations by id in one transaction.
// Existing rows keep their position; new rows are appended in slice order.
// It returns the number of new rows.
func UpsertLocations(db *sql.DB, tripID string, locs []model.Location) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(position) + 1, 0) FROM locations WHERE trip_id = ?`, tripID).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to get next position: %w", err)
	}

	added := 0
	for _, l := range locs {
		if l.ID == "" || strings.TrimSpace(l.Name) == "" {
			return 0, fmt.Errorf("location %q: id and name are required", l.ID)
		}
		res, err := tx.Exec(`
			UPDATE locations
			SET name = ?, city = ?, type = ?, latitude = ?, longitude = ?,
				photo_url = ?, google_maps_url = ?, description = ?, place_id = ?
			WHERE trip_id = ? AND id = ?
		`, append(locationFields(l), tripID, l.ID)...)
		if err != nil {
			return 0, fmt.Errorf("failed to update location %q: %w", l.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to update location %q: %w", l.ID, err)
		}
		if n > 0 {
			continue
		}
		if _, err := tx.Exec(insertLocationSQL, locationArgs(tripID, l, next)...); err != nil {
			return 0, fmt.Errorf("failed to insert location %q: %w", l.ID, err)
		}
		next++
		added++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit locations: %w", err)
	}
	return added, nil
}

// DeleteLocation removes a location from the catalog. Itinerary rows that
// reference it are left to be dropped on the next read.
func DeleteLocation(db *sql.DB, tripID, id string) error {
	res, err := db.Exec(`DELETE FROM locations WHERE trip_id = ? AND id = ?`, tripID, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("location %q not found", id)
	}
	return nil
}

const insertLocationSQL = `
	INSERT INTO locations (trip_id, id, name, city, type, latitude, longitude,
		photo_url, google_maps_url, description, place_id, position)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func locationArgs(tripID string, l model.Location, position int) []interface{} {
	args := append([]interface{}{tripID, l.ID}, locationFields(l)...)
	return append(args, position)
}

// locationFields returns the mutable columns in table order.
func locationFields(l model.Location) []interface{} {
	var latitude, longitude interface{}
	if l.Lat != nil {
		latitude = *l.Lat
	}
	if l.Lng != nil {
		longitude = *l.Lng
	}
	return []interface{}{
		l.Name,
		nullString(l.City),
		nullString(l.Type),
		latitude,
		longitude,
		nullString(l.PhotoURL),
		nullString(l.GoogleMapsURL),
		nullString(l.Description),
		nullString(l.PlaceID),
	}
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
