package itinerary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
	"tripboard/internal/model"
)

// ErrUnknownLocation is returned for a location id absent from the itinerary.
var ErrUnknownLocation = errors.New("unknown location")

// ErrPoolNote is returned for a note on an Unscheduled place when pool rows
// are not persisted.
var ErrPoolNote = errors.New("notes on Unscheduled places are not saved with the derived pool; plan the place first")

// Gateway loads and replaces a trip's persisted itinerary. UpdateItinerary
// replaces the whole collection.
type Gateway interface {
	GetItinerary(ctx context.Context, tripID string) ([]model.ItineraryItem, error)
	UpdateItinerary(ctx context.Context, tripID string, items []model.ItineraryItem) error
}

// Catalog supplies the locations of a trip.
type Catalog interface {
	GetLocations(ctx context.Context, tripID string) ([]model.Location, error)
}

// DayStore is implemented by gateways that also keep the ordered day list,
// so that empty days survive a reload.
type DayStore interface {
	GetDays(ctx context.Context, tripID string) ([]string, error)
	UpdateDays(ctx context.Context, tripID string, days []string) error
}

// SnapshotStore is implemented by day stores that can replace the day list
// and the items together, so a failed save leaves neither half written.
type SnapshotStore interface {
	UpdateSnapshot(ctx context.Context, tripID string, days []string, items []model.ItineraryItem) error
}

// SaveState is the user-facing persistence flag.
type SaveState int

const (
	StatusIdle SaveState = iota
	StatusSaving
	StatusError
)

func (s SaveState) String() string {
	switch s {
	case StatusSaving:
		return "saving"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Status is a snapshot of the persistence state.
type Status struct {
	State     SaveState
	Pending   int
	LastSaved time.Time
	Err       error
}

// Result is the outcome of one Save.
type Result struct {
	Version    uint64
	Label      string
	SavedAt    time.Time
	Err        error
	Superseded bool // a newer snapshot was already written; nothing was sent
}

// Option configures a Planner.
type Option func(*Planner)

// WithPolicy selects the pool persistence policy.
func WithPolicy(policy PoolPolicy) Option {
	return func(p *Planner) { p.policy = policy }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// Planner owns the local itinerary state of one trip. Mutations apply
// immediately and return a Save that writes the new snapshot; a failed Save
// leaves local state as it is.
type Planner struct {
	tripID  string
	gateway Gateway
	policy  PoolPolicy
	logger  *slog.Logger
	now     func() time.Time

	mu        sync.Mutex
	catalog   []model.Location
	index     map[string]model.Location
	local     []model.ItineraryItem
	registry  *Registry
	version   uint64 // last snapshot handed out
	written   uint64 // newest snapshot the gateway accepted
	acked     uint64 // newest snapshot with a known outcome
	pending   int
	state     SaveState
	lastSaved time.Time
	lastErr   error

	saveMu sync.Mutex
}

// NewPlanner creates a planner for tripID backed by gateway.
func NewPlanner(tripID string, gateway Gateway, opts ...Option) *Planner {
	p := &Planner{
		tripID:   tripID,
		gateway:  gateway,
		policy:   PersistedPool,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		index:    map[string]model.Location{},
		registry: NewRegistry(DefaultDays()),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TripID returns the trip the planner edits.
func (p *Planner) TripID() string {
	return p.tripID
}

// Policy returns the pool persistence policy.
func (p *Planner) Policy() PoolPolicy {
	return p.policy
}

// Load fetches the catalog, the persisted items and, when the gateway keeps
// one, the day list.
func (p *Planner) Load(ctx context.Context, catalog Catalog) error {
	locations, err := catalog.GetLocations(ctx, p.tripID)
	if err != nil {
		return fmt.Errorf("failed to load locations: %w", err)
	}
	items, err := p.gateway.GetItinerary(ctx, p.tripID)
	if err != nil {
		return fmt.Errorf("failed to load itinerary: %w", err)
	}
	var days []string
	if store, ok := p.gateway.(DayStore); ok {
		days, err = store.GetDays(ctx, p.tripID)
		if err != nil {
			return fmt.Errorf("failed to load days: %w", err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.setCatalogLocked(locations)
	p.local = cloneItems(items)
	p.registry = LoadRegistry(days, Reconcile(p.local, p.catalog))
	p.logger.Info("itinerary loaded",
		"trip", p.tripID,
		"locations", len(locations),
		"rows", len(items),
		"days", len(p.registry.Days()))
	return nil
}

// SetCatalog replaces the catalog. The full itinerary is recomputed on the
// next read.
func (p *Planner) SetCatalog(locations []model.Location) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setCatalogLocked(locations)
	p.registry.adopt(Reconcile(p.local, p.catalog))
}

func (p *Planner) setCatalogLocked(locations []model.Location) {
	p.catalog = append([]model.Location(nil), locations...)
	p.index = make(map[string]model.Location, len(locations))
	for _, loc := range locations {
		p.index[loc.ID] = loc
	}
}

// Catalog returns a copy of the current catalog.
func (p *Planner) Catalog() []model.Location {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Location(nil), p.catalog...)
}

// Location looks up a catalog entry.
func (p *Planner) Location(id string) (model.Location, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	loc, ok := p.index[id]
	return loc, ok
}

// Items returns the full itinerary: persisted rows plus the derived pool.
func (p *Planner) Items() []model.ItineraryItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Reconcile(p.local, p.catalog)
}

// Containers returns the container list, Unscheduled first.
func (p *Planner) Containers() []model.Container {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.registry.Containers()
}

// Columns returns the full itinerary grouped by container.
func (p *Planner) Columns() []Column {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Group(Reconcile(p.local, p.catalog), p.registry.Containers())
}

// Status returns the persistence state.
func (p *Planner) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{State: p.state, Pending: p.pending, LastSaved: p.lastSaved, Err: p.lastErr}
}

// Move handles a drag-end. It returns nil when the drop changes nothing.
func (p *Planner) Move(activeID, overID string) *Save {
	p.mu.Lock()
	defer p.mu.Unlock()
	out, changed := Move(activeID, overID, Reconcile(p.local, p.catalog), p.registry.Containers())
	if !changed {
		p.logger.Debug("drop ignored", "active", activeID, "over", overID)
		return nil
	}
	return p.commitLocked(out, "moved "+p.nameLocked(activeID))
}

// Reorder places activeID at index within day. It returns nil when nothing
// changes.
func (p *Planner) Reorder(activeID, day string, index int) *Save {
	p.mu.Lock()
	defer p.mu.Unlock()
	out, changed := Reorder(activeID, day, index, Reconcile(p.local, p.catalog), p.registry.Containers())
	if !changed {
		return nil
	}
	return p.commitLocked(out, "moved "+p.nameLocked(activeID))
}

// AddDay appends a day and returns its id.
func (p *Planner) AddDay(title string) (string, *Save, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, err := p.registry.Add(title)
	if err != nil {
		return "", nil, err
	}
	return id, p.commitLocked(Reconcile(p.local, p.catalog), "added "+id), nil
}

// RenameDay retitles a day. The Save is nil when the title is unchanged.
func (p *Planner) RenameDay(id, title string) (*Save, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out, changed, err := p.registry.Rename(id, title, Reconcile(p.local, p.catalog))
	if err != nil || !changed {
		return nil, err
	}
	return p.commitLocked(out, "renamed "+id), nil
}

// RemoveDay deletes a day, returning its items to Unscheduled.
func (p *Planner) RemoveDay(id string) (*Save, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out, err := p.registry.Remove(id, Reconcile(p.local, p.catalog))
	if err != nil {
		return nil, err
	}
	return p.commitLocked(out, "deleted "+id), nil
}

// ShiftDay moves a day column left (negative delta) or right.
func (p *Planner) ShiftDay(id string, delta int) (*Save, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	before := p.registry.Days()
	if err := p.registry.Shift(id, delta); err != nil {
		return nil, err
	}
	if equalStrings(before, p.registry.Days()) {
		return nil, nil
	}
	return p.commitLocked(Reconcile(p.local, p.catalog), "reordered days"), nil
}

// SetNote sets the note of a location's item. With DerivedPool only planned
// items can carry a note.
func (p *Planner) SetNote(locationID, note string) (*Save, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := Reconcile(p.local, p.catalog)
	i := indexOfLocation(out, locationID)
	if i < 0 {
		return nil, fmt.Errorf("%q: %w", locationID, ErrUnknownLocation)
	}
	if out[i].Note == note {
		return nil, nil
	}
	if note != "" && out[i].Day == model.Unscheduled && p.policy == DerivedPool {
		return nil, fmt.Errorf("%s: %w", p.nameLocked(locationID), ErrPoolNote)
	}
	out[i].Note = note
	return p.commitLocked(out, "note on "+p.nameLocked(locationID)), nil
}

// Commit replaces local state with full and returns the Save that writes it.
func (p *Planner) Commit(full []model.ItineraryItem, label string) *Save {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.commitLocked(full, label)
}

func (p *Planner) commitLocked(full []model.ItineraryItem, label string) *Save {
	p.local = cloneItems(full)
	p.version++
	p.pending++
	p.state = StatusSaving
	save := &Save{
		planner: p,
		Version: p.version,
		Label:   label,
		items:   p.policy.Persistable(full),
		days:    p.registry.Days(),
	}
	p.logger.Debug("snapshot committed", "version", save.Version, "label", label, "rows", len(save.items))
	return save
}

func (p *Planner) nameLocked(locationID string) string {
	if loc, ok := p.index[locationID]; ok && loc.Name != "" {
		return loc.Name
	}
	return locationID
}

// Save writes one committed snapshot.
type Save struct {
	planner *Planner
	Version uint64
	Label   string
	items   []model.ItineraryItem
	days    []string
}

// Items returns the rows this save sends to the gateway.
func (s *Save) Items() []model.ItineraryItem {
	return cloneItems(s.items)
}

// Run sends the snapshot. Saves are sent one at a time; a snapshot older than
// one already written is skipped. There is no retry.
func (s *Save) Run(ctx context.Context) Result {
	p := s.planner
	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	p.mu.Lock()
	stale := s.Version <= p.written
	p.mu.Unlock()
	if stale {
		p.finish(s.Version, nil, true)
		return Result{Version: s.Version, Label: s.Label, Superseded: true}
	}

	err := s.write(ctx)
	at := p.finish(s.Version, err, false)
	if err != nil {
		p.logger.Warn("save failed", "trip", p.tripID, "version", s.Version, "err", err)
	} else {
		p.logger.Info("itinerary saved", "trip", p.tripID, "version", s.Version, "rows", len(s.items))
	}
	return Result{Version: s.Version, Label: s.Label, SavedAt: at, Err: err}
}

func (s *Save) write(ctx context.Context) error {
	p := s.planner
	if store, ok := p.gateway.(SnapshotStore); ok {
		if err := store.UpdateSnapshot(ctx, p.tripID, s.days, s.items); err != nil {
			return fmt.Errorf("failed to save itinerary: %w", err)
		}
		return nil
	}
	if store, ok := p.gateway.(DayStore); ok {
		if err := store.UpdateDays(ctx, p.tripID, s.days); err != nil {
			return fmt.Errorf("failed to save days: %w", err)
		}
	}
	if err := p.gateway.UpdateItinerary(ctx, p.tripID, s.items); err != nil {
		return fmt.Errorf("failed to save itinerary: %w", err)
	}
	return nil
}

func (p *Planner) finish(version uint64, err error, superseded bool) time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending--
	var at time.Time
	switch {
	case superseded:
	case version < p.acked:
		// outcome of an older snapshot; the newer one already set the status
		if err == nil && version > p.written {
			p.written = version
		}
	case err != nil:
		p.acked = version
		p.lastErr = err
		p.state = StatusError
		return at
	default:
		p.acked = version
		at = p.now()
		p.written = version
		p.lastSaved = at
		p.lastErr = nil
		p.state = StatusIdle
	}
	if p.state != StatusError {
		if p.pending > 0 {
			p.state = StatusSaving
		} else {
			p.state = StatusIdle
		}
	}
	return at
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
