package cmd

import (
	"fmt"
	"os"

	"card-tracker/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "card-tracker",
	Short: "Sorare card portfolio tracker",
	Long: `Card Tracker keeps a spreadsheet of a Sorare gallery up to date.
Each subcommand is one scheduled job: gallery sync, card data refresh,
sales history, score charts and lineup checks. Long jobs run under a time
budget and resume from a checkpoint on their next invocation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with ISO8601 timestamps for CLI output
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
