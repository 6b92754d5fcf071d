package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
	"tripboard/internal/itinerary"
	"tripboard/internal/model"

	"github.com/peterbourgon/diskv/v3"
)

const catalogPrefix = "catalog"

type snapshot struct {
	TripID    string           `json:"tripId"`
	FetchedAt time.Time        `json:"fetchedAt"`
	Locations []model.Location `json:"locations"`
}

// Catalog serves a trip's locations from source and keeps the last good
// response on disk. When source fails, the snapshot is served instead and
// Offline reports true until source answers again.
type Catalog struct {
	source itinerary.Catalog
	d      *diskv.Diskv
	logger *slog.Logger
	now    func() time.Time

	mu        sync.Mutex
	offline   bool
	fetchedAt time.Time
}

// NewCatalog wraps source with a snapshot cache rooted at basePath.
func NewCatalog(source itinerary.Catalog, basePath string, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Catalog{
		source: source,
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		logger: logger,
		now:    time.Now,
	}
}

// GetLocations implements itinerary.Catalog.
func (c *Catalog) GetLocations(ctx context.Context, tripID string) ([]model.Location, error) {
	locs, err := c.source.GetLocations(ctx, tripID)
	if err == nil {
		c.store(tripID, locs)
		c.setOffline(false, c.now())
		return locs, nil
	}

	snap, rerr := c.load(tripID)
	if rerr != nil {
		return nil, err
	}
	c.logger.Warn("serving cached catalog", "trip", tripID, "fetched_at", snap.FetchedAt, "err", err)
	c.setOffline(true, snap.FetchedAt)
	return snap.Locations, nil
}

// Offline reports whether the last GetLocations was served from disk, and
// when that snapshot was fetched.
func (c *Catalog) Offline() (bool, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offline, c.fetchedAt
}

// Forget removes the snapshot of a trip.
func (c *Catalog) Forget(tripID string) error {
	key := toKey(tripID)
	if !c.d.Has(key) {
		return nil
	}
	return c.d.Erase(key)
}

func (c *Catalog) setOffline(offline bool, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offline = offline
	c.fetchedAt = at
}

func (c *Catalog) store(tripID string, locs []model.Location) {
	b, err := json.Marshal(snapshot{TripID: tripID, FetchedAt: c.now(), Locations: locs})
	if err != nil {
		c.logger.Warn("failed to encode catalog snapshot", "trip", tripID, "err", err)
		return
	}
	if err := c.d.Write(toKey(tripID), b); err != nil {
		c.logger.Warn("failed to write catalog snapshot", "trip", tripID, "err", err)
	}
}

func (c *Catalog) load(tripID string) (snapshot, error) {
	var snap snapshot
	b, err := c.d.Read(toKey(tripID))
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(b, &snap); err != nil {
		return snap, fmt.Errorf("failed to decode catalog snapshot: %w", err)
	}
	return snap, nil
}

// toKey makes `catalog-<trip>`; the trip id is base64url-encoded so it is
// safe as a file name.
func toKey(tripID string) string {
	return catalogPrefix + "-" + base64.RawURLEncoding.EncodeToString([]byte(tripID))
}

func keyToPathTransform(s string) *diskv.PathKey {
	// The encoded trip id may itself contain '-'.
	parts := strings.SplitN(s, "-", 2)
	if len(parts) < 2 {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     parts[:1],
		FileName: parts[1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
