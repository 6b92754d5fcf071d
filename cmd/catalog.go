package cmd

import (
	"fmt"
	"os"
	"tripboard/internal/catalogfile"
	"tripboard/internal/db"
	"tripboard/internal/model"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add or update catalog places from a YAML file",
		Long: `Import reads a YAML catalog and upserts its places by id. When --trip is
not given, the file's trip is used and created if missing.`,
		Example: `
tripboard import japan.yaml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := catalogfile.Load(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			var trip model.Trip
			if !cmd.Flags().Changed("trip") && file.Trip != "" {
				trip, err = db.EnsureTrip(database, file.Trip)
			} else {
				trip, err = resolveTrip(database, cfg.Trip)
			}
			if err != nil {
				return err
			}

			added, err := db.UpsertLocations(database, trip.ID, file.Locations)
			if err != nil {
				return err
			}
			fmt.Fprintf(color.Output, "%s %s: %d added, %d updated\n",
				color.GreenString("✓"), trip.Name, added, len(file.Locations)-added)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command) {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the trip's catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, b, p, err := session(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			file := catalogfile.File{Trip: b.trip.Name, Locations: p.Catalog()}
			if out == "" || out == "-" {
				return catalogfile.Write(cmd.OutOrStdout(), file)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := catalogfile.Write(f, file); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file (default: stdout)")
	topLevel.AddCommand(cmd)
}
