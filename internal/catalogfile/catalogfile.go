// Package catalogfile reads location catalogs from YAML files.
//
//	trip: Japan 2026
//	locations:
//	  - id: fushimi-inari
//	    name: Fushimi Inari Taisha
//	    city: Kyoto
//	    lat: 34.9671
//	    lng: 135.7727
package catalogfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"tripboard/internal/model"
	"unicode"

	"gopkg.in/yaml.v3"
)

// File is a parsed catalog file.
type File struct {
	Trip      string           `yaml:"trip,omitempty"`
	Locations []model.Location `yaml:"locations"`
}

// Load reads and validates a catalog file from disk.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a catalog. Unknown keys are rejected. Locations without an
// id get one derived from their name and city.
func Parse(r io.Reader) (File, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, errors.New("catalog is empty")
		}
		return File{}, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]int, len(file.Locations))
	for i := range file.Locations {
		loc := &file.Locations[i]
		loc.Name = strings.TrimSpace(loc.Name)
		loc.City = strings.TrimSpace(loc.City)
		if loc.Name == "" {
			return File{}, fmt.Errorf("location %d: name is required", i+1)
		}
		if (loc.Lat == nil) != (loc.Lng == nil) {
			return File{}, fmt.Errorf("location %q: lat and lng must be given together", loc.Name)
		}
		if loc.ID == "" {
			loc.ID = Slug(loc.Name + " " + loc.City)
		}
		if prev, ok := seen[loc.ID]; ok {
			return File{}, fmt.Errorf("location %d: id %q already used by location %d", i+1, loc.ID, prev)
		}
		seen[loc.ID] = i + 1
	}
	return file, nil
}

// Write encodes a catalog as YAML.
func Write(w io.Writer, file File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return enc.Close()
}

// Slug lowercases s and joins its letter and digit runs with '-'.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
