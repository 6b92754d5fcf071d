package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const earthRadiusKm = 6371

// Hub is a reference point for showing how far a place is from a city's
// main station.
type Hub struct {
	Name string
	Lat  float64
	Lng  float64
}

var cityHubs = map[string]Hub{
	"Tokyo":  {Name: "Tokyo Station", Lat: 35.6812, Lng: 139.7671},
	"Kyoto":  {Name: "Kyoto Station", Lat: 34.9858, Lng: 135.7588},
	"Osaka":  {Name: "Osaka Station", Lat: 34.7025, Lng: 135.4959},
	"Hakone": {Name: "Hakone-Yumoto", Lat: 35.2333, Lng: 139.1039},
}

// HubFor returns the hub of a city, matched case-insensitively.
func HubFor(city string) (Hub, bool) {
	city = strings.TrimSpace(city)
	for name, hub := range cityHubs {
		if strings.EqualFold(name, city) {
			return hub, true
		}
	}
	return Hub{}, false
}

// HaversineKm returns the great-circle distance between two points.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// DistanceFromHub returns the distance of lat/lng from the hub of city.
// ok is false for cities without a hub.
func DistanceFromHub(city string, lat, lng float64) (km float64, hub Hub, ok bool) {
	hub, ok = HubFor(city)
	if !ok {
		return 0, Hub{}, false
	}
	return HaversineKm(hub.Lat, hub.Lng, lat, lng), hub, true
}

// FormatDistance formats kilometers with one decimal, e.g. "3.2 km".
func FormatDistance(km float64) string {
	return strconv.FormatFloat(km, 'f', 1, 64) + " km"
}

// FormatHubDistance returns "3.2 km from Kyoto Station", or "" when the
// distance is unknown.
func FormatHubDistance(city string, lat, lng *float64) string {
	if lat == nil || lng == nil {
		return ""
	}
	km, hub, ok := DistanceFromHub(city, *lat, *lng)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s from %s", FormatDistance(km), hub.Name)
}

// FormatLastSaved renders the time of the last successful save relative to
// now: "never", "just now", "5 minutes ago".
func FormatLastSaved(at, now time.Time) string {
	if at.IsZero() {
		return "never"
	}
	if now.Sub(at) < 5*time.Second {
		return "just now"
	}
	return humanize.RelTime(at, now, "ago", "from now")
}

// FormatCount formats n with a singular or plural noun: "1 place", "3 places".
func FormatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
