package itinerary

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"tripboard/internal/model"
)

var (
	ErrTitleExists       = errors.New("a day with that name already exists")
	ErrReservedContainer = errors.New("the Unscheduled pool cannot be renamed or deleted")
	ErrUnknownContainer  = errors.New("unknown day")
	ErrEmptyTitle        = errors.New("day name cannot be empty")
)

// DefaultDays is the day list of a trip that has nothing stored yet.
func DefaultDays() []string {
	return []string{"Day 1", "Day 2", "Day 3"}
}

// Registry is the ordered list of containers. Unscheduled is always first.
type Registry struct {
	containers []model.Container
}

// NewRegistry builds a registry from day titles. Blank, repeated and reserved
// titles are skipped.
func NewRegistry(days []string) *Registry {
	r := &Registry{containers: []model.Container{{ID: model.Unscheduled, Title: model.Unscheduled}}}
	for _, day := range days {
		day = strings.TrimSpace(day)
		if day == "" || r.Has(day) {
			continue
		}
		r.containers = append(r.containers, model.Container{ID: day, Title: day})
	}
	return r
}

// LoadRegistry combines the stored day list with day keys found in items.
// Days only known from items are appended in natural order. With neither,
// the registry starts with DefaultDays.
func LoadRegistry(stored []string, items []model.ItineraryItem) *Registry {
	r := NewRegistry(stored)
	r.adopt(items)
	if len(r.containers) == 1 {
		return NewRegistry(DefaultDays())
	}
	return r
}

// adopt appends any day referenced by items that the registry lacks.
func (r *Registry) adopt(items []model.ItineraryItem) bool {
	var extra []string
	seen := make(map[string]bool)
	for _, item := range items {
		if item.Day == "" || r.Has(item.Day) || seen[item.Day] {
			continue
		}
		seen[item.Day] = true
		extra = append(extra, item.Day)
	}
	sort.SliceStable(extra, func(i, j int) bool {
		return naturalLess(extra[i], extra[j])
	})
	for _, day := range extra {
		r.containers = append(r.containers, model.Container{ID: day, Title: day})
	}
	return len(extra) > 0
}

// Containers returns a copy of the container list.
func (r *Registry) Containers() []model.Container {
	return append([]model.Container(nil), r.containers...)
}

// Days returns the day titles in order, without Unscheduled.
func (r *Registry) Days() []string {
	days := make([]string, 0, len(r.containers)-1)
	for _, c := range r.containers {
		if !c.IsUnscheduled() {
			days = append(days, c.Title)
		}
	}
	return days
}

// Has reports whether a container with the given id exists.
func (r *Registry) Has(id string) bool {
	return r.index(id) >= 0
}

// Get returns the container with the given id.
func (r *Registry) Get(id string) (model.Container, bool) {
	i := r.index(id)
	if i < 0 {
		return model.Container{}, false
	}
	return r.containers[i], true
}

func (r *Registry) index(id string) int {
	for i, c := range r.containers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// titleTaken checks title against every container but skip. The comparison
// is case-sensitive.
func (r *Registry) titleTaken(title, skip string) bool {
	for _, c := range r.containers {
		if c.ID != skip && c.Title == title {
			return true
		}
	}
	return false
}

// Add appends a day. An empty title defaults to "Day N", N being the number
// of days after the addition.
func (r *Registry) Add(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = fmt.Sprintf("Day %d", len(r.containers))
	}
	if r.titleTaken(title, "") {
		return "", fmt.Errorf("%q: %w", title, ErrTitleExists)
	}
	r.containers = append(r.containers, model.Container{ID: title, Title: title})
	return title, nil
}

// Rename retitles day id and re-keys every item assigned to it. The returned
// flag is false when newTitle equals the current title.
func (r *Registry) Rename(id, newTitle string, items []model.ItineraryItem) ([]model.ItineraryItem, bool, error) {
	if id == model.Unscheduled {
		return items, false, ErrReservedContainer
	}
	i := r.index(id)
	if i < 0 {
		return items, false, fmt.Errorf("%q: %w", id, ErrUnknownContainer)
	}
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return items, false, ErrEmptyTitle
	}
	if newTitle == r.containers[i].Title {
		return items, false, nil
	}
	if r.titleTaken(newTitle, id) {
		return items, false, fmt.Errorf("%q: %w", newTitle, ErrTitleExists)
	}

	r.containers[i] = model.Container{ID: newTitle, Title: newTitle}
	out := cloneItems(items)
	for j := range out {
		if out[j].Day == id {
			out[j].Day = newTitle
		}
	}
	return out, true, nil
}

// Remove deletes day id. Its items are appended to Unscheduled after the
// existing pool, keeping their relative order.
func (r *Registry) Remove(id string, items []model.ItineraryItem) ([]model.ItineraryItem, error) {
	if id == model.Unscheduled {
		return items, ErrReservedContainer
	}
	i := r.index(id)
	if i < 0 {
		return items, fmt.Errorf("%q: %w", id, ErrUnknownContainer)
	}

	pool := ItemsIn(items, model.Unscheduled)
	for _, item := range ItemsIn(items, id) {
		item.Day = model.Unscheduled
		pool = append(pool, item)
	}
	renumber(pool)

	updated := make(map[string]model.ItineraryItem, len(pool))
	for _, item := range pool {
		updated[item.LocationID] = item
	}
	out, _ := applyUpdates(items, updated)

	r.containers = append(r.containers[:i], r.containers[i+1:]...)
	return out, nil
}

// Shift moves day id by delta positions. Unscheduled keeps the first slot.
func (r *Registry) Shift(id string, delta int) error {
	if id == model.Unscheduled {
		return ErrReservedContainer
	}
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%q: %w", id, ErrUnknownContainer)
	}
	j := i + delta
	if j < 1 {
		j = 1
	}
	if j > len(r.containers)-1 {
		j = len(r.containers) - 1
	}
	if i == j {
		return nil
	}
	c := r.containers[i]
	r.containers = append(r.containers[:i], r.containers[i+1:]...)
	r.containers = append(r.containers[:j], append([]model.Container{c}, r.containers[j:]...)...)
	return nil
}

// naturalLess orders strings with embedded numbers numerically, so that
// "Day 2" sorts before "Day 10".
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ca, ra := leadingChunk(a)
		cb, rb := leadingChunk(b)
		if ca != cb {
			if isDigits(ca) && isDigits(cb) {
				na := strings.TrimLeft(ca, "0")
				nb := strings.TrimLeft(cb, "0")
				if len(na) != len(nb) {
					return len(na) < len(nb)
				}
				if na != nb {
					return na < nb
				}
			} else {
				return ca < cb
			}
		}
		a, b = ra, rb
	}
	return len(a) < len(b)
}

func leadingChunk(s string) (string, string) {
	digit := s[0] >= '0' && s[0] <= '9'
	i := 1
	for i < len(s) && (s[i] >= '0' && s[i] <= '9') == digit {
		i++
	}
	return s[:i], s[i:]
}

func isDigits(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
