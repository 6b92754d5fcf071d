package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"tripboard/internal/db"
	"tripboard/internal/model"
	"tripboard/internal/search"
	"tripboard/internal/util"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

type placesOptions struct {
	City  string
	Limit int
}

func addPlaces(topLevel *cobra.Command) {
	o := &placesOptions{}

	cmd := &cobra.Command{
		Use:     "places",
		Aliases: []string{"place"},
		Short:   "Look up places on Yelp and add them to the catalog",
	}

	searchCmd := &cobra.Command{
		Use:   "search TERM...",
		Short: "Search Yelp for places",
		Example: `
tripboard places search ramen --city Kyoto
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(ctxOf(cmd), cfg.Timeout)
			defer cancel()

			results, err := search.NewYelpClient(cfg.YelpAPIKey).Search(ctx, strings.Join(args, " "), o.City, o.Limit)
			if err != nil {
				return err
			}
			printPlaces(color.Output, results)
			return nil
		},
	}
	searchCmd.Flags().StringVar(&o.City, "city", "", "City to search in (default: Tokyo, Japan)")
	searchCmd.Flags().IntVar(&o.Limit, "limit", 0, "Maximum results")
	cmd.AddCommand(searchCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "add YELP_ID",
		Short: "Add a Yelp business to the trip's catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			b, err := openBackend(cfg)
			if err != nil {
				return err
			}
			defer b.Close()
			if err := b.requireDB(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctxOf(cmd), cfg.Timeout)
			defer cancel()
			loc, err := search.NewYelpClient(cfg.YelpAPIKey).Lookup(ctx, strings.TrimPrefix(args[0], "yelp-"))
			if err != nil {
				return err
			}

			added, err := db.UpsertLocations(b.db, b.trip.ID, []model.Location{loc})
			if err != nil {
				return err
			}
			verb := "Updated"
			if added > 0 {
				verb = "Added"
			}
			fmt.Fprintf(color.Output, "%s %s %s to %s\n", color.GreenString("✓"), verb, color.New(color.Bold).Sprint(loc.Name), b.trip.Name)
			return nil
		},
	})

	topLevel.AddCommand(cmd)
}

func printPlaces(w io.Writer, places []model.Location) {
	if len(places) == 0 {
		_, _ = fmt.Fprintln(w, color.New(color.Faint).Sprint("No places found."))
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow("ID", "NAME", "CITY", "TYPE", "DISTANCE")
	for _, p := range places {
		tbl.AddRow(p.ID, p.Name, p.City, p.Type, util.FormatHubDistance(p.City, p.Lat, p.Lng))
	}
	_, _ = fmt.Fprintln(w, tbl)
}
