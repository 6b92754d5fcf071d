package cmd

import (
	"fmt"
	"io"
	"time"
	"tripboard/internal/db"
	"tripboard/internal/model"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func addTrip(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "trip",
		Aliases: []string{"trips"},
		Short:   "Manage trips",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "new NAME",
		Short: "Create a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			t, err := db.CreateTrip(database, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(color.Output, "%s Created %s %s\n", color.GreenString("✓"), color.New(color.Bold).Sprint(t.Name), color.New(color.Faint).Sprint(t.ID))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			trips, err := db.ListTrips(database)
			if err != nil {
				return err
			}
			current := ""
			if len(trips) > 0 {
				if t, err := resolveTrip(database, cfg.Trip); err == nil {
					current = t.ID
				}
			}
			printTrips(color.Output, trips, current, time.Now())
			return nil
		},
	})

	topLevel.AddCommand(cmd)
}

func printTrips(w io.Writer, trips []model.Trip, current string, now time.Time) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", "NAME", "CREATED", "ID")
	for _, t := range trips {
		mark := ""
		if t.ID == current {
			mark = "*"
		}
		tbl.AddRow(mark, t.Name, humanize.RelTime(t.CreatedAt, now, "ago", "from now"), t.ID)
	}
	_, _ = fmt.Fprintln(w, tbl)
}
