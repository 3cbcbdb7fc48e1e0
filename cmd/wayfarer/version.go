// Version command for the wayfarer CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfarer-app/wayfarer/pkg/wayfarer"
)

const modulePath = "github.com/wayfarer-app/wayfarer"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the wayfarer version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "wayfarer v%s\nmodule: %s\n", wayfarer.Version, modulePath)
		return nil
	},
}
