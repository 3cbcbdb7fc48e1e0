// Sync command for the wayfarer CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replay queued offline operations against the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, s, err := openEngine()
		if err != nil {
			return err
		}
		defer s.Close()

		result, err := engine.SyncAllPending()
		if err != nil {
			return fmt.Errorf("sync: %w", err)
		}

		if flagJSON {
			return printJSON(result)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Synced %d, failed %d\n", result.Synced, result.Failed)
		if !result.Success {
			fmt.Fprintln(cmd.OutOrStdout(), "Failed operations stay queued for the next sync")
		}
		return nil
	},
}
