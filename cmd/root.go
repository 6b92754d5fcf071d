package cmd

import (
	"context"
	"fmt"
	"strings"
	"tripboard/internal/db"
	"tripboard/internal/itinerary"
	"tripboard/internal/model"
	"tripboard/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Execute runs the command tree.
func Execute(version string) error {
	return New(version).Execute()
}

// New builds the root command. Without a subcommand it opens the board.
func New(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tripboard",
		Short:         "Plan a trip day by day in the terminal.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd)
		},
	}
	addConfigFlags(cmd)

	addBoard(cmd)
	addShow(cmd)
	addMove(cmd)
	addDay(cmd)
	addNote(cmd)
	addTrip(cmd)
	addImport(cmd)
	addExport(cmd)
	addPlaces(cmd)
	return cmd
}

func addBoard(topLevel *cobra.Command) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "board",
		Short: "Open the itinerary board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd)
		},
	})
}

func runBoard(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if shouldRunOnboarding(cfg.settings) {
		settings, err := runOnboarding(cfg.ConfigDir, cfg.Trip, cfg.YelpAPIKey)
		if err != nil {
			return fmt.Errorf("failed to run onboarding: %w", err)
		}
		cfg.settings = settings
		if err := cfg.applySettings(cfg.YelpAPIKey); err != nil {
			return err
		}
		if cfg.Backend == backendSQLite && cfg.Trip != "" {
			if err := ensureTrip(cfg); err != nil {
				return err
			}
		}
	}

	b, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	prefsPath, err := ui.DefaultPrefsPath()
	if err != nil {
		b.logger.Warn("preferences disabled", "err", err)
	}

	m := ui.New(b.newPlanner(cfg), b.catalog, ui.Config{
		TripName:  b.trip.Name,
		Logger:    b.logger,
		PrefsPath: prefsPath,
		Timeout:   cfg.Timeout,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// ensureTrip creates the trip named in the first-run answers.
func ensureTrip(cfg *Config) error {
	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()
	_, err = db.EnsureTrip(database, cfg.Trip)
	return err
}

// session opens the backend and loads a planner. Callers close the backend.
func session(cmd *cobra.Command) (*Config, *backend, *itinerary.Planner, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	b, err := openBackend(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := b.planner(ctxOf(cmd), cfg)
	if err != nil {
		b.Close()
		return nil, nil, nil, err
	}
	return cfg, b, p, nil
}

// persist runs save to completion. A nil save means nothing changed.
func persist(cmd *cobra.Command, cfg *Config, save *itinerary.Save) error {
	if save == nil {
		fmt.Fprintln(color.Output, color.New(color.Faint).Sprint("Nothing changed."))
		return nil
	}
	ctx, cancel := context.WithTimeout(ctxOf(cmd), cfg.Timeout)
	defer cancel()
	res := save.Run(ctx)
	if res.Err != nil {
		return res.Err
	}
	fmt.Fprintln(color.Output, color.GreenString("✓"), capitalize(res.Label))
	return nil
}

// findPlace resolves a location by id, then by case-insensitive name.
func findPlace(p *itinerary.Planner, ref string) (model.Location, error) {
	if loc, ok := p.Location(ref); ok {
		return loc, nil
	}
	var matches []model.Location
	for _, loc := range p.Catalog() {
		if strings.EqualFold(loc.Name, ref) {
			return loc, nil
		}
		if strings.Contains(strings.ToLower(loc.Name), strings.ToLower(ref)) {
			matches = append(matches, loc)
		}
	}
	switch len(matches) {
	case 0:
		return model.Location{}, fmt.Errorf("%q: %w", ref, itinerary.ErrUnknownLocation)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return model.Location{}, fmt.Errorf("%q matches %s", ref, strings.Join(names, ", "))
	}
}

// findDay resolves a container by id, ignoring case.
func findDay(p *itinerary.Planner, ref string) (model.Container, bool) {
	for _, c := range p.Containers() {
		if c.ID == ref {
			return c, true
		}
	}
	for _, c := range p.Containers() {
		if strings.EqualFold(c.ID, ref) {
			return c, true
		}
	}
	return model.Container{}, false
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
