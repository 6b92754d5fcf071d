package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// itinerary_items carries no foreign key to locations: rows whose location
// left the catalog are kept and dropped on read.
const schema = `
CREATE TABLE IF NOT EXISTS trips (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);

CREATE TABLE IF NOT EXISTS locations (
    trip_id         TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
    id              TEXT NOT NULL,
    name            TEXT NOT NULL,
    city            TEXT,
    type            TEXT,
    latitude        REAL,
    longitude       REAL,
    photo_url       TEXT,
    google_maps_url TEXT,
    description     TEXT,
    place_id        TEXT,
    position        INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (trip_id, id)
);

CREATE TABLE IF NOT EXISTS days (
    trip_id  TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    title    TEXT NOT NULL,
    PRIMARY KEY (trip_id, title)
);

CREATE TABLE IF NOT EXISTS itinerary_items (
    trip_id     TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
    day         TEXT NOT NULL,
    location_id TEXT NOT NULL,
    ord         INTEGER NOT NULL CHECK(ord >= 0),
    note        TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_locations_position ON locations(trip_id, position);
CREATE INDEX IF NOT EXISTS idx_itinerary_items_trip ON itinerary_items(trip_id, day, ord);
`

// Open opens or creates the SQLite database and initializes the schema.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps writes serialized and the pragma applied.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}
