package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Checks whether the backend is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if splitClient().CheckBackendHealth(cmd.Context()) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is reachable\n", backendOrigin)
			return nil
		}

		return errors.Newf("%s is not reachable", backendOrigin)
	},
}
