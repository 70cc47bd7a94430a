package commands

import (
	"ride-match-service/internal/domain"
	"strings"

	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var (
		from, to, sort string
		passengers     int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find direct offers and offers that connect to a transit leg",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pref, err := domain.ParseSortPreference(sort)
			if err != nil {
				return err
			}

			q := domain.Query{
				Origin:         namedLocation(from),
				Destination:    namedLocation(to),
				Sort:           pref,
				PassengerCount: passengers,
			}
			offers, err := wire.Searcher.Search(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printOffers(cmd.OutOrStdout(), offers)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start location name (substring match)")
	cmd.Flags().StringVar(&to, "to", "", "destination name (substring match)")
	cmd.Flags().StringVar(&sort, "sort", "", "fastest, cheapest or none")
	cmd.Flags().IntVar(&passengers, "passengers", 0, "minimum available seats")
	return cmd
}

// namedLocation returns nil for a blank name so the query leaves that side open.
func namedLocation(name string) *domain.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &domain.Location{Name: name}
}
