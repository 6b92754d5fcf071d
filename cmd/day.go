package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"tripboard/internal/itinerary"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

func addDay(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "day",
		Aliases: []string{"days"},
		Short:   "Manage the days of a trip",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List days with their place counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, b, p, err := session(cmd)
			if err != nil {
				return err
			}
			defer b.Close()
			printDays(color.Output, p.Columns())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add [TITLE]",
		Short: "Append a day (defaults to the next \"Day N\")",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, b, p, err := session(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			title := ""
			if len(args) == 1 {
				title = args[0]
			}
			_, save, err := p.AddDay(title)
			if err != nil {
				return err
			}
			return persist(cmd, cfg, save)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename DAY TITLE",
		Short: "Rename a day; its places follow",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, b, p, err := session(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			day, err := requireDay(p, args[0])
			if err != nil {
				return err
			}
			save, err := p.RenameDay(day, args[1])
			if err != nil {
				return err
			}
			return persist(cmd, cfg, save)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm DAY",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a day; its places go back to Unscheduled",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, b, p, err := session(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			day, err := requireDay(p, args[0])
			if err != nil {
				return err
			}
			save, err := p.RemoveDay(day)
			if err != nil {
				return err
			}
			return persist(cmd, cfg, save)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "shift DAY left|right|N",
		Short: "Move a day left or right among the days",
		Example: `
tripboard day shift "Day 3" left
tripboard day shift "Day 1" -- -2
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := parseDelta(args[1])
			if err != nil {
				return err
			}
			cfg, b, p, err := session(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			day, err := requireDay(p, args[0])
			if err != nil {
				return err
			}
			save, err := p.ShiftDay(day, delta)
			if err != nil {
				return err
			}
			return persist(cmd, cfg, save)
		},
	})

	topLevel.AddCommand(cmd)
}

func requireDay(p *itinerary.Planner, ref string) (string, error) {
	c, ok := findDay(p, ref)
	if !ok {
		return "", fmt.Errorf("%q: %w", ref, itinerary.ErrUnknownContainer)
	}
	return c.ID, nil
}

func parseDelta(s string) (int, error) {
	switch strings.ToLower(s) {
	case "left":
		return -1, nil
	case "right":
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid shift %q (want left, right or a number)", s)
	}
	return n, nil
}

func printDays(w io.Writer, columns []itinerary.Column) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("#", "DAY", "PLACES")
	n := 0
	for _, c := range columns {
		pos := "-"
		if !c.Container.IsUnscheduled() {
			n++
			pos = strconv.Itoa(n)
		}
		tbl.AddRow(pos, c.Container.Title, strconv.Itoa(c.Len()))
	}
	_, _ = fmt.Fprintln(w, tbl)
}
