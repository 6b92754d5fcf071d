package itinerary

import (
	"fmt"
	"strings"
	"tripboard/internal/model"
)

// PoolPolicy decides whether Unscheduled rows are written back to the gateway.
type PoolPolicy int

const (
	// PersistedPool writes Unscheduled rows like any other day, so the pool
	// order survives a reload.
	PersistedPool PoolPolicy = iota
	// DerivedPool writes day rows only; the pool is rebuilt from the catalog
	// on every load.
	DerivedPool
)

// ParsePoolPolicy parses "persisted" or "derived".
func ParsePoolPolicy(s string) (PoolPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "persisted":
		return PersistedPool, nil
	case "derived":
		return DerivedPool, nil
	default:
		return PersistedPool, fmt.Errorf("unknown pool policy %q (want persisted or derived)", s)
	}
}

func (p PoolPolicy) String() string {
	if p == DerivedPool {
		return "derived"
	}
	return "persisted"
}

// Persistable returns the subset of the full itinerary handed to the gateway.
func (p PoolPolicy) Persistable(full []model.ItineraryItem) []model.ItineraryItem {
	if p == PersistedPool {
		return cloneItems(full)
	}
	out := make([]model.ItineraryItem, 0, len(full))
	for _, item := range full {
		if item.Day != model.Unscheduled {
			out = append(out, item)
		}
	}
	return out
}
