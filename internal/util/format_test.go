package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 0, HaversineKm(35, 139, 35, 139), 1e-9)
	// Tokyo Station to Kyoto Station, in a straight line.
	assert.InDelta(t, 372, HaversineKm(35.6812, 139.7671, 34.9858, 135.7588), 3)
}

func TestDistanceFromHub(t *testing.T) {
	km, hub, ok := DistanceFromHub("kyoto", 34.9671, 135.7727)
	require.True(t, ok)
	assert.Equal(t, "Kyoto Station", hub.Name)
	assert.InDelta(t, 2.4, km, 0.3)

	_, _, ok = DistanceFromHub("Sapporo", 43.06, 141.35)
	assert.False(t, ok)
}

func TestFormatHubDistance(t *testing.T) {
	lat, lng := 35.6812, 139.7671
	assert.Equal(t, "0.0 km from Tokyo Station", FormatHubDistance("Tokyo", &lat, &lng))
	assert.Empty(t, FormatHubDistance("Tokyo", nil, &lng))
	assert.Empty(t, FormatHubDistance("Nara", &lat, &lng))
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "3.2 km", FormatDistance(3.21))
	assert.Equal(t, "12.0 km", FormatDistance(11.96))
}

func TestFormatLastSaved(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "never", FormatLastSaved(time.Time{}, now))
	assert.Equal(t, "just now", FormatLastSaved(now.Add(-2*time.Second), now))
	assert.Equal(t, "5 minutes ago", FormatLastSaved(now.Add(-5*time.Minute), now))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1 place", FormatCount(1, "place"))
	assert.Equal(t, "0 places", FormatCount(0, "place"))
	assert.Equal(t, "1,200 places", FormatCount(1200, "place"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "Fushimi", TruncateString("Fushimi", 10))
	assert.Equal(t, "Fushimi...", TruncateString("Fushimi Inari", 10))
	assert.Equal(t, "清水", TruncateString("清水寺", 2))
}
