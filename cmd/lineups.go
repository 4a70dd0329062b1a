package cmd

import (
	"card-tracker/core/config"
	"card-tracker/core/metrics"
	"card-tracker/core/sorare"
	"card-tracker/feature/lineups"

	"github.com/spf13/cobra"
)

// checkLineupsCmd lists the cards fielded in the active game week.
var checkLineupsCmd = &cobra.Command{
	Use:   "check-lineups",
	Short: "List the cards fielded in the active game week",
	RunE:  runCheckLineups,
}

func init() {
	RootCmd.AddCommand(checkLineupsCmd)
}

func runCheckLineups(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx, config.OpCheckLineups)
	if err != nil {
		return err
	}
	defer a.close()

	client := sorare.NewClient(a.cfg.Sorare, a.logger)
	res, err := lineups.NewService(a.book, client, a.cfg.Jobs.LineupPause(), a.logger).Run(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.succeed(ctx, metrics.OutcomeCompleted, lineups.Message(res))
	return nil
}
