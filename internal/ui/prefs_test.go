package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardPrefsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ui_prefs.json")

	assert.Equal(t, defaultBoardPrefs(), loadBoardPrefs(path), "missing file falls back to defaults")

	want := BoardPrefs{ColumnWidth: 34, ShowDistances: true}
	require.NoError(t, saveBoardPrefs(path, want))
	assert.Equal(t, want, loadBoardPrefs(path))
}

func TestBoardPrefsRejectsNarrowColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui_prefs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"column_width": 4, "show_distances": true}`), 0644))

	prefs := loadBoardPrefs(path)
	assert.Equal(t, defaultColumnWidth, prefs.ColumnWidth)
	assert.True(t, prefs.ShowDistances)
}

func TestBoardPrefsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui_prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	assert.Equal(t, defaultBoardPrefs(), loadBoardPrefs(path))
}

func TestBoardPrefsEmptyPathIsNoop(t *testing.T) {
	assert.NoError(t, saveBoardPrefs("", BoardPrefs{ShowDistances: true}))
	assert.Equal(t, defaultBoardPrefs(), loadBoardPrefs(""))
}
