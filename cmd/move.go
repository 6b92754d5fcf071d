package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type moveOptions struct {
	Position int
}

func addMove(topLevel *cobra.Command) {
	o := &moveOptions{}

	cmd := &cobra.Command{
		Use:   "move PLACE TARGET",
		Short: "Move a place onto a day or in front of another place",
		Long: `Move PLACE the way a drop on the board does. When TARGET names a day the
place goes to the end of that day; when it names a place, PLACE takes its
position. With --at, PLACE goes to that 1-based position of the day TARGET.`,
		Example: `
tripboard move "Fushimi Inari" "Day 2"
tripboard move "Fushimi Inari" "Kiyomizu-dera"
tripboard move "Fushimi Inari" "Day 2" --at 1
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, b, p, err := session(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			place, err := findPlace(p, args[0])
			if err != nil {
				return err
			}
			target := strings.TrimSpace(args[1])

			if day, ok := findDay(p, target); ok {
				if o.Position > 0 {
					return persist(cmd, cfg, p.Reorder(place.ID, day.ID, o.Position-1))
				}
				return persist(cmd, cfg, p.Move(place.ID, day.ID))
			}
			if o.Position > 0 {
				return fmt.Errorf("--at needs a day as TARGET, %q is not one", target)
			}

			over, err := findPlace(p, target)
			if err != nil {
				return fmt.Errorf("target is neither a day nor a place: %w", err)
			}
			return persist(cmd, cfg, p.Move(place.ID, over.ID))
		},
	}

	cmd.Flags().IntVar(&o.Position, "at", 0, "1-based position within the target day")
	topLevel.AddCommand(cmd)
}
