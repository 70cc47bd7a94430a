package commands

import (
	"fmt"
	"ride-match-service/internal/domain"
	"ride-match-service/internal/services"

	"github.com/spf13/cobra"
)

func postCmd() *cobra.Command {
	var req services.PostOfferRequest
	var from, to string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Publish a new ride offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.StartLocation = canonical(namedLocation(from))
			req.EndLocation = canonical(namedLocation(to))

			offer, err := wire.Poster.Post(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), offer)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Posted %s: %s to %s, %d min, %.1f km, %.3f kg CO2 saved\n",
				offer.ID, offer.StartLocation.Name, offer.EndLocation.Name,
				offer.EstimatedDurationMinutes, offer.DistanceKm, offer.CO2SavedKg)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start location name")
	cmd.Flags().StringVar(&to, "to", "", "end location name")
	cmd.Flags().Float64Var(&req.CostPerSeat, "cost", 0, "cost per seat in AED")
	cmd.Flags().IntVar(&req.PassengerCapacity, "capacity", 0, "passenger capacity")
	cmd.Flags().StringVar(&req.DepartureTime, "departure", "", "departure time, e.g. 08:30")
	cmd.Flags().StringVar(&req.DriverName, "driver", "", "driver name (default "+services.DefaultDriverName+")")
	cmd.Flags().StringVar(&req.VehicleType, "vehicle", "", "vehicle type (default "+services.DefaultVehicleType+")")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// canonical swaps a typed name for the registry entry it matches, keeping the typed
// name when nothing matches.
func canonical(l *domain.Location) *domain.Location {
	if l == nil {
		return nil
	}
	if found, ok := wire.Registry.FindByName(l.Name); ok {
		return &found
	}
	return l
}
