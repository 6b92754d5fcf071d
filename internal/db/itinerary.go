package db

import (
	"database/sql"
	"fmt"
	"tripboard/internal/model"
)

// GetItinerary returns the persisted rows of a trip as stored. Rows are
// grouped by day and ordered within it.
func GetItinerary(db *sql.DB, tripID string) ([]model.ItineraryItem, error) {
	rows, err := db.Query(`
		SELECT day, location_id, ord, note
		FROM itinerary_items
		WHERE trip_id = ?
		ORDER BY day, ord, rowid
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}
	defer rows.Close()

	var items []model.ItineraryItem
	for rows.Next() {
		var it model.ItineraryItem
		if err := rows.Scan(&it.Day, &it.LocationID, &it.Order, &it.Note); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary row: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating itinerary rows: %w", err)
	}
	return items, nil
}

// UpdateItinerary replaces every row of a trip in one transaction.
func UpdateItinerary(db *sql.DB, tripID string, items []model.ItineraryItem) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceItems(tx, tripID, items); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit itinerary: %w", err)
	}
	return nil
}

// UpdatePlan replaces the day list and every itinerary row of a trip in one
// transaction.
func UpdatePlan(db *sql.DB, tripID string, days []string, items []model.ItineraryItem) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceDays(tx, tripID, days); err != nil {
		return err
	}
	if err := replaceItems(tx, tripID, items); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit plan: %w", err)
	}
	return nil
}

func replaceItems(tx *sql.Tx, tripID string, items []model.ItineraryItem) error {
	if _, err := tx.Exec(`DELETE FROM itinerary_items WHERE trip_id = ?`, tripID); err != nil {
		return fmt.Errorf("failed to clear itinerary: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO itinerary_items (trip_id, day, location_id, ord, note)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare itinerary insert: %w", err)
	}
	defer stmt.Close()

	for _, it := range items {
		if _, err := stmt.Exec(tripID, it.Day, it.LocationID, it.Order, it.Note); err != nil {
			return fmt.Errorf("failed to insert itinerary row %q: %w", it.LocationID, err)
		}
	}
	return nil
}

// GetDays returns the stored day titles of a trip in board order.
func GetDays(db *sql.DB, tripID string) ([]string, error) {
	rows, err := db.Query(`SELECT title FROM days WHERE trip_id = ? ORDER BY position`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan day row: %w", err)
		}
		days = append(days, title)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating day rows: %w", err)
	}
	return days, nil
}

// UpdateDays replaces the day list of a trip.
func UpdateDays(db *sql.DB, tripID string, days []string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceDays(tx, tripID, days); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit days: %w", err)
	}
	return nil
}

func replaceDays(tx *sql.Tx, tripID string, days []string) error {
	if _, err := tx.Exec(`DELETE FROM days WHERE trip_id = ?`, tripID); err != nil {
		return fmt.Errorf("failed to clear days: %w", err)
	}
	for i, title := range days {
		if _, err := tx.Exec(`INSERT INTO days (trip_id, position, title) VALUES (?, ?, ?)`, tripID, i, title); err != nil {
			return fmt.Errorf("failed to insert day %q: %w", title, err)
		}
	}
	return nil
}
