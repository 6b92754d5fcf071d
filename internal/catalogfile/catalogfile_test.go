package catalogfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
trip: Japan 2026
locations:
  - id: fushimi
    name: Fushimi Inari Taisha
    city: Kyoto
    type: shrine
    lat: 34.9671
    lng: 135.7727
  - name: "  Dotonbori "
    city: Osaka
    google_maps_url: https://maps.google.com/?q=dotonbori
`

func TestParse(t *testing.T) {
	file, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, "Japan 2026", file.Trip)
	require.Len(t, file.Locations, 2)

	fushimi := file.Locations[0]
	assert.Equal(t, "fushimi", fushimi.ID)
	assert.Equal(t, "shrine", fushimi.Type)
	require.True(t, fushimi.HasCoordinates())
	assert.InDelta(t, 34.9671, *fushimi.Lat, 1e-9)

	dotonbori := file.Locations[1]
	assert.Equal(t, "dotonbori-osaka", dotonbori.ID)
	assert.Equal(t, "Dotonbori", dotonbori.Name)
	assert.Equal(t, "https://maps.google.com/?q=dotonbori", dotonbori.GoogleMapsURL)
	assert.False(t, dotonbori.HasCoordinates())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "catalog is empty"},
		{"unknown key", "locations:\n  - name: A\n    rating: 5\n", "rating"},
		{"missing name", "locations:\n  - id: a\n", "name is required"},
		{"half coordinates", "locations:\n  - name: A\n    lat: 1.5\n", "lat and lng"},
		{"duplicate id", "locations:\n  - name: A\n    city: B\n  - name: a b\n", "already used"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteThenLoad(t *testing.T) {
	file, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, file))

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, file, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "kiyomizu-dera-kyoto", Slug("Kiyomizu-dera, Kyoto"))
	assert.Equal(t, "7-eleven", Slug("  7-Eleven!  "))
	assert.Equal(t, "", Slug("--"))
}
