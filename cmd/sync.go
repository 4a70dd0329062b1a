package cmd

import (
	"card-tracker/core/config"
	"card-tracker/core/metrics"
	"card-tracker/core/sorare"
	"card-tracker/feature/gallery"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dryRunSync bool

// syncCmd aligns the main sheet with the gallery.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Align the card sheet with the user's gallery",
	Long: `Adds a row for every gallery card missing from the card sheet and
removes rows of cards the user no longer owns.

Examples:
  # Show what would change
  sync --dry-run

  # Apply
  sync`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Plan without touching the sheet")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx, config.OpSync)
	if err != nil {
		return err
	}
	defer a.close()

	client := sorare.NewClient(a.cfg.Sorare, a.logger)
	svc := gallery.NewService(a.book, client, gallery.Options{
		DryRun:      dryRunSync,
		PagePause:   a.cfg.Jobs.Pause(),
		DeletePause: a.cfg.Jobs.DeletePause(),
	}, a.logger)

	plan, err := svc.Run(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}

	if dryRunSync {
		for _, act := range plan.Actions {
			a.logger.Info("Planned action",
				zap.String("action", string(act.Type)),
				zap.String("key", act.Key),
				zap.Int("row", act.RowIndex),
				zap.String("reason", act.Reason),
			)
		}
		a.succeed(ctx, "dry-run", "")
		return nil
	}

	a.succeed(ctx, metrics.OutcomeCompleted, gallery.Message(plan))
	return nil
}
