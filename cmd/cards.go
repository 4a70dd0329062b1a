package cmd

import (
	"card-tracker/core/batch"
	"card-tracker/core/config"
	"card-tracker/core/fx"
	"card-tracker/core/metrics"
	"card-tracker/core/sorare"
	"card-tracker/feature/cards"

	"github.com/spf13/cobra"
)

// updateCardsCmd refreshes stale card rows.
var updateCardsCmd = &cobra.Command{
	Use:   "update-cards",
	Short: "Refresh prices, scores and fixtures of stale card rows",
	Long: `Refreshes every card row not updated within jobs.card_refresh_minutes.

The run stops when jobs.card_budget_seconds is spent or on SIGINT/SIGTERM,
saving a checkpoint. The next invocation resumes from it.`,
	RunE: runUpdateCards,
}

func init() {
	RootCmd.AddCommand(updateCardsCmd)
}

func runUpdateCards(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx, config.OpUpdateCards)
	if err != nil {
		return err
	}
	defer a.close()

	loc, err := a.cfg.Jobs.Location()
	if err != nil {
		return a.fail(ctx, err)
	}
	store, err := a.checkpoints(ctx, cards.Operation)
	if err != nil {
		return a.fail(ctx, err)
	}

	client := sorare.NewClient(a.cfg.Sorare, a.logger)
	rates := fx.NewProvider(a.cfg.FX, a.logger)
	job := cards.NewJob(a.book, client, rates, batch.SystemClock, cards.Options{
		Refresh:  a.cfg.Jobs.CardRefresh(),
		Location: loc,
	}, a.logger)

	res, err := cards.NewService(job, store, a.batchOptions(), a.logger).
		Run(ctx, a.budget(ctx, a.cfg.Jobs.CardBudget()))
	if err != nil {
		return a.fail(ctx, err)
	}

	if res.Suspended {
		a.succeed(ctx, metrics.OutcomeSuspended, "")
		return nil
	}
	a.succeed(ctx, metrics.OutcomeCompleted, cards.Message(res, a.elapsed()))
	return nil
}
