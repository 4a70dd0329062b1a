package cmd

import (
	"encoding/json"
	"fmt"

	"card-tracker/core/config"
	"card-tracker/feature/cards"
	"card-tracker/feature/sales"

	"github.com/spf13/cobra"
)

// resumable lists the operations that keep a checkpoint.
var resumable = []string{cards.Operation, sales.Operation}

// checkpointCmd is the parent command for checkpoint maintenance.
var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Inspect or reset the checkpoint of a resumable operation",
}

var checkpointShowCmd = &cobra.Command{
	Use:       "show <operation>",
	Short:     "Print the stored checkpoint as JSON",
	Args:      checkpointArgs,
	ValidArgs: resumable,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := bootstrap(ctx, config.OpCheckpoint)
		if err != nil {
			return err
		}
		defer a.close()

		store, err := a.checkpoints(ctx, args[0])
		if err != nil {
			return err
		}
		cp := store.Load(ctx)
		if cp.IsEmpty() {
			fmt.Fprintf(cmd.OutOrStdout(), "No checkpoint for %s\n", args[0])
			return nil
		}
		out, err := json.MarshalIndent(cp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var checkpointClearCmd = &cobra.Command{
	Use:       "clear <operation>",
	Short:     "Delete the stored checkpoint so the next run starts a fresh pass",
	Args:      checkpointArgs,
	ValidArgs: resumable,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := bootstrap(ctx, config.OpCheckpoint)
		if err != nil {
			return err
		}
		defer a.close()

		store, err := a.checkpoints(ctx, args[0])
		if err != nil {
			return err
		}
		return store.Clear(ctx)
	},
}

func checkpointArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	return cobra.OnlyValidArgs(cmd, args)
}

func init() {
	checkpointCmd.AddCommand(checkpointShowCmd, checkpointClearCmd)
	RootCmd.AddCommand(checkpointCmd)
}
