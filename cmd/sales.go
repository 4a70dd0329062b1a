package cmd

import (
	"card-tracker/core/batch"
	"card-tracker/core/config"
	"card-tracker/core/metrics"
	"card-tracker/core/reconcile"
	"card-tracker/core/sorare"
	"card-tracker/feature/sales"

	"github.com/spf13/cobra"
)

// updateSalesCmd merges recent sales into the sales history sheet.
var updateSalesCmd = &cobra.Command{
	Use:   "update-sales",
	Short: "Merge recent sales into the sales history sheet",
	Long: `Fetches recent sales for every player and rarity of the card sheet and
merges them into the sales history, keeping jobs.max_sales per pair.

The run stops when jobs.sales_budget_seconds is spent or on SIGINT/SIGTERM,
saving a checkpoint. The next invocation resumes from it.`,
	RunE: runUpdateSales,
}

func init() {
	RootCmd.AddCommand(updateSalesCmd)
}

func runUpdateSales(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx, config.OpUpdateSales)
	if err != nil {
		return err
	}
	defer a.close()

	loc, err := a.cfg.Jobs.Location()
	if err != nil {
		return a.fail(ctx, err)
	}
	store, err := a.checkpoints(ctx, sales.Operation)
	if err != nil {
		return a.fail(ctx, err)
	}

	engine := reconcile.NewEngine(reconcile.Options{
		FreshLimit:   a.cfg.Jobs.SalesFetchLimit,
		InitialLimit: a.cfg.Jobs.SalesInitialFetchLimit,
		MaxEvents:    a.cfg.Jobs.MaxSales,
		Correction:   a.cfg.Jobs.PriceCorrection,
		Location:     loc,
	}, a.logger)

	client := sorare.NewClient(a.cfg.Sorare, a.logger)
	job := sales.NewJob(a.book, client, engine, batch.SystemClock, a.metrics, a.logger)

	rep, err := sales.NewService(job, store, a.batchOptions(), a.logger).
		Run(ctx, a.budget(ctx, a.cfg.Jobs.SalesBudget()))
	if err != nil {
		return a.fail(ctx, err)
	}

	if rep.Result.Suspended {
		a.succeed(ctx, metrics.OutcomeSuspended, "")
		return nil
	}
	a.succeed(ctx, metrics.OutcomeCompleted, sales.Message(rep, a.elapsed()))
	return nil
}
