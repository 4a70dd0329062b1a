package cmd

import (
	"card-tracker/core/config"
	"card-tracker/core/metrics"
	"card-tracker/feature/charts"

	"github.com/spf13/cobra"
)

// renderChartsCmd rebuilds the score chart sheet.
var renderChartsCmd = &cobra.Command{
	Use:   "render-charts",
	Short: "Rebuild the SO5 score chart sheet",
	Long:  `Writes one chart URL per player with recent scores in the card sheet.`,
	RunE:  runRenderCharts,
}

func init() {
	RootCmd.AddCommand(renderChartsCmd)
}

func runRenderCharts(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx, config.OpRenderCharts)
	if err != nil {
		return err
	}
	defer a.close()

	n, err := charts.NewService(a.book, a.logger).Run(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.succeed(ctx, metrics.OutcomeCompleted, charts.Message(n, a.elapsed()))
	return nil
}
