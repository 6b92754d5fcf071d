package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"tripboard/internal/cache"
	"tripboard/internal/db"
	"tripboard/internal/itinerary"
	"tripboard/internal/model"
	"tripboard/internal/remote"
)

// backend is an opened storage backend scoped to one trip.
type backend struct {
	gateway itinerary.Gateway
	catalog itinerary.Catalog
	db      *sql.DB // nil for the http backend
	trip    model.Trip
	logger  *slog.Logger
	closers []io.Closer
}

// openBackend opens the configured storage and resolves the trip.
func openBackend(cfg *Config) (*backend, error) {
	logger, logCloser, err := newLogger(cfg.LogFile)
	if err != nil {
		return nil, err
	}
	b := &backend{logger: logger}
	if logCloser != nil {
		b.closers = append(b.closers, logCloser)
	}

	switch cfg.Backend {
	case backendHTTP:
		if cfg.APIURL == "" {
			b.Close()
			return nil, errors.New("the http backend needs api-url")
		}
		if cfg.Trip == "" {
			b.Close()
			return nil, errors.New("the http backend needs --trip (the owner id)")
		}
		client := remote.NewClient(cfg.APIURL, cfg.APIToken)
		b.gateway = client
		b.catalog = cache.NewCatalog(client, cfg.CacheDir, logger)
		b.trip = model.Trip{ID: cfg.Trip, Name: cfg.Trip}

	default:
		database, err := openDB(cfg)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.db = database
		b.closers = append(b.closers, database)

		trip, err := resolveTrip(database, cfg.Trip)
		if err != nil {
			b.Close()
			return nil, err
		}
		store := db.NewStore(database)
		b.gateway = store
		b.catalog = store
		b.trip = trip
	}

	logger.Info("backend opened", "backend", cfg.Backend, "trip", b.trip.ID)
	return b, nil
}

// openDB opens the SQLite database, creating its directory.
func openDB(cfg *Config) (*sql.DB, error) {
	if cfg.Backend == backendHTTP {
		return nil, errors.New("this command needs the sqlite backend")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// resolveTrip picks the trip named by ref. Without a ref the oldest trip is
// used, and a default one is created for an empty database.
func resolveTrip(database *sql.DB, ref string) (model.Trip, error) {
	if ref != "" {
		return db.FindTrip(database, ref)
	}
	trips, err := db.ListTrips(database)
	if err != nil {
		return model.Trip{}, err
	}
	if len(trips) > 0 {
		return trips[0], nil
	}
	return db.CreateTrip(database, defaultTripName)
}

// requireDB fails for commands that edit the local catalog or trip list.
func (b *backend) requireDB() error {
	if b.db == nil {
		return errors.New("this command needs the sqlite backend")
	}
	return nil
}

// planner loads a planner for the backend's trip.
func (b *backend) planner(ctx context.Context, cfg *Config) (*itinerary.Planner, error) {
	p := b.newPlanner(cfg)
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := p.Load(ctx, b.catalog); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *backend) newPlanner(cfg *Config) *itinerary.Planner {
	return itinerary.NewPlanner(b.trip.ID, b.gateway,
		itinerary.WithPolicy(cfg.Pool),
		itinerary.WithLogger(b.logger))
}

// Close releases the database and the log file.
func (b *backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// newLogger opens path for appending and returns a text logger over it. An
// empty path discards logs.
func newLogger(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	level := slog.LevelInfo
	if os.Getenv("TRIPBOARD_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}
