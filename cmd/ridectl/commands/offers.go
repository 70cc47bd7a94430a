package commands

import (
	"fmt"
	"io"
	"ride-match-service/internal/domain"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func offersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offers",
		Short: "List every offer, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			offers, err := wire.Offers.ListOffers(cmd.Context())
			if err != nil {
				return err
			}
			return printOffers(cmd.OutOrStdout(), offers)
		},
	}
	return cmd
}

func printOffers(out io.Writer, offers []domain.Offer) error {
	if asJSON {
		return printJSON(out, offers)
	}
	if len(offers) == 0 {
		fmt.Fprintln(out, "No offers found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDRIVER\tFROM\tTO\tDEPARTS\tSEATS\tAED/SEAT\tMIN\tKM\tTRANSIT")
	for _, o := range offers {
		via := "-"
		if leg := o.TransitContinuation; leg != nil {
			via = fmt.Sprintf("%s to %s (+%d min)", leg.RouteName, leg.To, leg.DurationMinutes)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d/%d\t%.2f\t%d\t%.1f\t%s\n",
			o.ID, o.DriverName, o.StartLocation.Name, o.EndLocation.Name, o.DepartureTime,
			o.AvailableSeats, o.PassengerCapacity, o.CostPerSeat, o.TotalDurationMinutes(), o.DistanceKm, via)
	}
	return tw.Flush()
}
