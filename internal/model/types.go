package model

import "time"

// Unscheduled is the reserved container holding every location that has not
// been placed on a day.
const Unscheduled = "Unscheduled"

// Trip scopes a location catalog and its itinerary.
type Trip struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Location is a saved point of interest in a trip's catalog.
type Location struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	City          string   `json:"city" yaml:"city"`
	Type          string   `json:"type,omitempty" yaml:"type,omitempty"`
	Lat           *float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty" yaml:"lng,omitempty"`
	PhotoURL      string   `json:"photoUrl,omitempty" yaml:"photo_url,omitempty"`
	GoogleMapsURL string   `json:"googleMapsUrl,omitempty" yaml:"google_maps_url,omitempty"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	PlaceID       string   `json:"googlePlaceId,omitempty" yaml:"place_id,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are known.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}

// ItineraryItem places a location at position Order within container Day.
type ItineraryItem struct {
	Day        string `json:"day"`
	LocationID string `json:"locationId"`
	Order      int    `json:"order"`
	Note       string `json:"note"`
}

// Container is a named, ordered bucket of items. For days the ID is the key
// stored in ItineraryItem.Day, which is the title itself.
type Container struct {
	ID    string
	Title string
}

// IsUnscheduled reports whether c is the reserved pool container.
func (c Container) IsUnscheduled() bool {
	return c.ID == Unscheduled
}
