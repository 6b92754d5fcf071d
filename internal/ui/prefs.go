package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

const (
	defaultColumnWidth = 28
	minColumnWidth     = 18
)

// BoardPrefs stores persisted board preferences.
type BoardPrefs struct {
	ColumnWidth   int  `json:"column_width"`
	ShowDistances bool `json:"show_distances"`
}

func defaultBoardPrefs() BoardPrefs {
	return BoardPrefs{ColumnWidth: defaultColumnWidth}
}

// DefaultPrefsPath returns ~/.tripboard/ui_prefs.json.
func DefaultPrefsPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}
	return filepath.Join(home, ".tripboard", "ui_prefs.json"), nil
}

func loadBoardPrefs(path string) BoardPrefs {
	if path == "" {
		return defaultBoardPrefs()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultBoardPrefs()
	}

	prefs := defaultBoardPrefs()
	if err := json.Unmarshal(data, &prefs); err != nil {
		return defaultBoardPrefs()
	}
	if prefs.ColumnWidth < minColumnWidth {
		prefs.ColumnWidth = defaultColumnWidth
	}
	return prefs
}

func saveBoardPrefs(path string, prefs BoardPrefs) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create prefs dir: %w", err)
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}
