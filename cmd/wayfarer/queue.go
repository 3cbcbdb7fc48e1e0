// Queue commands for the wayfarer CLI.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect the offline mutation queue",
}

var queueSizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Count queued operations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := openQueue()
		if err != nil {
			return err
		}

		size, err := q.Size()
		if err != nil {
			return fmt.Errorf("queue size: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), size)
		return nil
	},
}

var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queued operations in replay order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := openQueue()
		if err != nil {
			return err
		}

		ops, err := q.DrainAll()
		if err != nil {
			return fmt.Errorf("list queue: %w", err)
		}

		if flagJSON {
			return printJSON(ops)
		}
		for _, op := range ops {
			ts := time.UnixMilli(op.Timestamp).UTC().Format(time.RFC3339)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s %s\t%s\n", op.ID, op.Operation, op.EntityType, ts)
		}
		return nil
	},
}

var queueClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop all queued operations without replaying them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := openQueue()
		if err != nil {
			return err
		}

		if err := q.Clear(); err != nil {
			return fmt.Errorf("clear queue: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Queue cleared")
		return nil
	},
}

func init() {
	queueCmd.AddCommand(queueSizeCmd)
	queueCmd.AddCommand(queueListCmd)
	queueCmd.AddCommand(queueClearCmd)
}
