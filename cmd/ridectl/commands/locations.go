package commands

import (
	"fmt"
	"io"
	"ride-match-service/internal/domain"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func locationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations [query]",
		Short: "List known locations, or look one up by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locations := wire.Registry.Locations()
			if len(args) == 1 {
				found, ok := wire.Registry.FindByName(args[0])
				if !ok {
					return fmt.Errorf("no location matches %q", args[0])
				}
				locations = []domain.Location{found}
			}
			return printLocations(cmd.OutOrStdout(), locations)
		},
	}
	return cmd
}

func printLocations(out io.Writer, locations []domain.Location) error {
	if asJSON {
		return printJSON(out, locations)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLON\tLAT")
	for _, l := range locations {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\n", l.Name, l.Coordinates.Lon, l.Coordinates.Lat)
	}
	return tw.Flush()
}
