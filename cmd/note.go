package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func addNote(topLevel *cobra.Command) {
	var clearNote bool

	cmd := &cobra.Command{
		Use:   "note PLACE [TEXT...]",
		Short: "Set or clear the note on a planned place",
		Example: `
tripboard note "Fushimi Inari" go before 8am
tripboard note "Fushimi Inari" --clear
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a place")
			}
			if len(args) == 1 && !clearNote {
				return errors.New("requires a note, or --clear")
			}
			return nil
		},
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
			text := ""
			if !clearNote {
				text = strings.Join(args[1:], " ")
			}
			save, err := p.SetNote(place.ID, text)
			if err != nil {
				return err
			}
			return persist(cmd, cfg, save)
		},
	}

	cmd.Flags().BoolVar(&clearNote, "clear", false, "Remove the note")
	topLevel.AddCommand(cmd)
}
