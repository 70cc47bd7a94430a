package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"ride-match-service/internal/app"
	"ride-match-service/internal/config"

	"github.com/spf13/cobra"
)

var (
	wire    *app.Wire
	asJSON  bool
	seedDir string
)

func Execute() error {
	return execute(context.Background(), newRootCmd())
}

// execute runs root and closes the wire whether or not the command failed; cobra
// skips post-run hooks after a RunE error.
func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if wire != nil {
		if cerr := wire.Close(); err == nil {
			err = cerr
		}
		wire = nil
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ridectl",
		Short:        "Search and post Dubai ride-share offers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if seedDir != "" {
				cfg.SeedDir = seedDir
			}

			w, err := app.NewWire(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			wire = w
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	root.PersistentFlags().StringVar(&seedDir, "seeds", "", "seed directory (default SEED_DIR or data/seeds)")

	root.AddCommand(offersCmd(), searchCmd(), postCmd(), locationsCmd(), transitCmd())
	return root
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
