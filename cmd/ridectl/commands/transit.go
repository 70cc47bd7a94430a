package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func transitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transit",
		Short: "List public transit legs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			legs := wire.Transit.Legs()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), legs)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ROUTE\tFROM\tTO\tDEPARTS\tMIN\tEVERY\tWALK")
			for _, l := range legs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
					l.RouteName, l.From, l.To, l.DepartureTime, l.DurationMinutes, l.Frequency, l.WalkingDistance)
			}
			return tw.Flush()
		},
	}
	return cmd
}
