// Init command for the wayfarer CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize wayfarer storage",
	Long:  "Create configuration and data directories, then initialize the storage backend.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Config dir and config.yaml were created by PersistentPreRunE.
		// Opening the store bootstraps the schema on the selected backend.
		s, err := openStore()
		if err != nil {
			return err
		}
		if err := s.Close(); err != nil {
			return fmt.Errorf("finalize storage: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Wayfarer initialized successfully")
		return nil
	},
}
