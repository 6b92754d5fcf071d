package cmd

import (
	"fmt"
	"io"
	"tripboard/internal/itinerary"
	"tripboard/internal/model"
	"tripboard/internal/util"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

type showOptions struct {
	Day    string
	Filter string
	Pool   bool
}

func addShow(topLevel *cobra.Command) {
	o := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the itinerary",
		Example: `
tripboard show
tripboard show --day "Day 2"
tripboard show --filter kyoto --pool
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, b, p, err := session(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			columns := p.Columns()
			if o.Day != "" {
				c, ok := findDay(p, o.Day)
				if !ok {
					return fmt.Errorf("%q: %w", o.Day, itinerary.ErrUnknownContainer)
				}
				columns = selectColumn(columns, c.ID)
			}
			printItinerary(color.Output, b.trip.Name, columns, p.Location, o.Filter, o.Pool || o.Day != "")
			return nil
		},
	}

	cmd.Flags().StringVarP(&o.Day, "day", "d", "", "Only print this day")
	cmd.Flags().StringVarP(&o.Filter, "filter", "f", "", "Only print places whose name or city matches")
	cmd.Flags().BoolVar(&o.Pool, "pool", false, "Also print the Unscheduled pool")
	topLevel.AddCommand(cmd)
}

func selectColumn(columns []itinerary.Column, id string) []itinerary.Column {
	for _, c := range columns {
		if c.Container.ID == id {
			return []itinerary.Column{c}
		}
	}
	return nil
}

// printItinerary writes one table per day with the distance walked from the
// previous stop.
func printItinerary(w io.Writer, trip string, columns []itinerary.Column, lookup func(string) (model.Location, bool), filter string, withPool bool) {
	title := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)

	scheduled, total := 0, 0
	for _, c := range columns {
		total += c.Len()
		if !c.Container.IsUnscheduled() {
			scheduled += c.Len()
		}
	}
	_, _ = fmt.Fprintln(w, title.Sprint(trip))
	_, _ = fmt.Fprintln(w, faint.Sprintf("%s of %s scheduled", util.FormatCount(scheduled, "place"), util.FormatCount(total, "place")))

	for _, c := range columns {
		if c.Container.IsUnscheduled() && !withPool {
			continue
		}
		items := itinerary.Filter(c.Items, lookup, filter)
		header := fmt.Sprintf("\n%s  %s", c.Container.Title, faint.Sprint(util.FormatCount(c.Len(), "place")))
		_, _ = fmt.Fprintln(w, color.New(color.Bold).Sprint(header))
		if len(items) == 0 {
			_, _ = fmt.Fprintln(w, faint.Sprint("  nothing planned"))
			continue
		}

		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = 40
		tbl.AddRow("", "PLACE", "CITY", "FROM PREV", "NOTE")

		// distances follow the full column, not the filtered view
		prev := map[string]*model.Location{}
		var last *model.Location
		for _, it := range c.Items {
			prev[it.LocationID] = last
			if loc, ok := lookup(it.LocationID); ok {
				l := loc
				last = &l
			} else {
				last = nil
			}
		}

		for _, it := range items {
			loc, ok := lookup(it.LocationID)
			if !ok {
				continue
			}
			leg := ""
			if p := prev[it.LocationID]; p != nil && p.HasCoordinates() && loc.HasCoordinates() && !c.Container.IsUnscheduled() {
				leg = util.FormatDistance(util.HaversineKm(*p.Lat, *p.Lng, *loc.Lat, *loc.Lng))
			}
			tbl.AddRow(fmt.Sprintf("%d.", it.Order+1), loc.Name, loc.City, leg, it.Note)
		}
		_, _ = fmt.Fprintln(w, tbl)
	}
}
